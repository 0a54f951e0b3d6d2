package validator

import (
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"time"

	"pagegen/internal/domain/entity"
	"pagegen/internal/domain/repository"
	"pagegen/internal/infrastructure/metrics"
)

const (
	MinCodeLength     = 50
	MinNonCommentCode = 100
)

var (
	reDeclaration  = regexp.MustCompile(`function\s+\w+|const\s+\w+\s*=`)
	reOpeningTag   = regexp.MustCompile(`<\w+[\s>]`)
	reLineComment  = regexp.MustCompile(`(?m)//.*$`)
	reBlockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	reExport       = regexp.MustCompile(`export\s+(?:default\s+)?(?:function|const)`)
	reBareDecl     = regexp.MustCompile(`function\s+\w+|const\s+\w+\s*=\s*\(`)
	reClassName    = regexp.MustCompile(`className="[^"]*"`)

	// Any one of these counts as visible content.
	contentSignals = []*regexp.Regexp{
		regexp.MustCompile(`<h[1-6]`),
		regexp.MustCompile(`<p[\s>]`),
		regexp.MustCompile(`<button`),
		regexp.MustCompile(`<img`),
		regexp.MustCompile(`<a[\s>]`),
		regexp.MustCompile(`<span`),
		regexp.MustCompile(`<li`),
		regexp.MustCompile(`<input`),
		regexp.MustCompile(`<label`),
		regexp.MustCompile(`>\s*\w+\s*<`),
		regexp.MustCompile(`[A-Z][a-z]{2,}`),
		regexp.MustCompile(`<svg`),
		regexp.MustCompile(`<form`),
	}

	reFenceOpen  = regexp.MustCompile("(?m)^```[\\w-]*[ \\t]*\\r?\\n")
	reFenceClose = regexp.MustCompile("(?m)\\r?\\n```[ \\t]*$")
)

// softCheck is a section specific heuristic. A miss is logged, never rejected.
type softCheck struct {
	sections []string // lowercased exact names
	markers  []string // lowercased substrings, any one satisfies the check
	warning  string
}

var softChecks = []softCheck{
	{
		sections: []string{"footer"},
		markers:  []string{"copyright", "©", "<a", "footer", "<nav", "link"},
		warning:  "footer might lack typical content",
	},
	{
		sections: []string{"socialproof", "testimonials", "reviews"},
		markers:  []string{"testimonial", "review", "customer", "rating", "⭐", "★", "\"", "“", "quote"},
		warning:  "social proof might lack testimonials",
	},
}

type CodeValidator struct {
	logger *slog.Logger
}

var _ repository.CodeValidator = (*CodeValidator)(nil)

func NewCodeValidator(logger *slog.Logger) *CodeValidator {
	return &CodeValidator{logger: logger}
}

// Validate runs the hard checks in order and stops at the first failure.
func (v *CodeValidator) Validate(code, sectionName string) entity.ValidationResult {
	start := time.Now()
	res := v.validate(code, sectionName)

	outcome := "pass"
	if !res.IsValid {
		outcome = "fail"
	}
	metrics.IncValidationRun("code", outcome)
	metrics.ObserveValidationDuration("code", time.Since(start))
	return res
}

func (v *CodeValidator) validate(code, sectionName string) entity.ValidationResult {
	trimmed := strings.TrimSpace(code)
	if len(trimmed) < MinCodeLength {
		return reject(fmt.Sprintf("code is empty or too short (%d chars)", len(trimmed)))
	}
	if !reDeclaration.MatchString(code) {
		return reject("no component function found")
	}
	if !strings.Contains(strings.ToLower(code), "return") {
		return reject("no return statement found")
	}
	if !reOpeningTag.MatchString(code) {
		return reject("no JSX/HTML elements found")
	}
	if !hasVisibleContent(code) {
		return reject("code appears to have no visible content")
	}
	if len(strings.TrimSpace(stripComments(code))) < MinNonCommentCode {
		return reject("code is mostly comments")
	}
	if !reExport.MatchString(code) && !reBareDecl.MatchString(code) {
		return reject("no component export or function found")
	}

	v.runSoftChecks(code, sectionName)
	return entity.ValidationResult{IsValid: true, Reason: "valid"}
}

// CleanAndValidate strips markdown fences, trims and validates. The error
// wraps entity.ErrInvalidCode.
func (v *CodeValidator) CleanAndValidate(code, sectionName string) (string, error) {
	cleaned := StripFences(code)
	res := v.Validate(cleaned, sectionName)
	if !res.IsValid {
		return "", fmt.Errorf("%w for %s: %s", entity.ErrInvalidCode, sectionName, res.Reason)
	}
	return cleaned, nil
}

// StripFences removes a leading ```lang line and a trailing ``` line.
func StripFences(code string) string {
	code = strings.TrimSpace(code)
	code = reFenceOpen.ReplaceAllString(code, "")
	code = reFenceClose.ReplaceAllString(code, "")
	return strings.TrimSpace(code)
}

func (v *CodeValidator) runSoftChecks(code, sectionName string) {
	name := strings.ToLower(sectionName)
	lower := strings.ToLower(code)
	for _, check := range softChecks {
		if !slices.Contains(check.sections, name) {
			continue
		}
		if !containsAnySubstring(lower, check.markers) {
			v.logger.Warn("soft validation check missed", "section", sectionName, "reason", check.warning)
		}
	}
}

func hasVisibleContent(code string) bool {
	for _, re := range contentSignals {
		if re.MatchString(code) {
			return true
		}
	}
	return reClassName.MatchString(code) && len(code) > 200
}

func stripComments(code string) string {
	code = reBlockComment.ReplaceAllString(code, "")
	return reLineComment.ReplaceAllString(code, "")
}

func reject(reason string) entity.ValidationResult {
	return entity.ValidationResult{IsValid: false, Reason: reason}
}

func containsAnySubstring(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

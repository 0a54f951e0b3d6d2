package usecase

import (
	"regexp"
	"slices"
	"strings"
)

const DefaultComponentName = "Component"

var (
	reImport = regexp.MustCompile(`(?m)^\s*import\s+(?:[^'"\n]*?\s+from\s+)?['"]([^'"]+)['"]`)

	componentNamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`export\s+(?:default\s+)?function\s+([A-Za-z_]\w*)`),
		regexp.MustCompile(`export\s+const\s+([A-Za-z_]\w*)`),
		regexp.MustCompile(`function\s+([A-Za-z_]\w*)`),
		regexp.MustCompile(`const\s+([A-Za-z_]\w*)\s*=`),
	}

	promptComponentWords = []struct {
		re   *regexp.Regexp
		name string
	}{
		{regexp.MustCompile(`(?i)\b(?:navbar|navigation|nav bar|menu)\b`), "Navigation"},
		{regexp.MustCompile(`(?i)\bhero\b`), "Hero"},
		{regexp.MustCompile(`(?i)\bpricing\b`), "Pricing"},
		{regexp.MustCompile(`(?i)\bfeatures?\b`), "Features"},
		{regexp.MustCompile(`(?i)\btestimonials?\b`), "Testimonials"},
		{regexp.MustCompile(`(?i)\bfaq\b`), "FAQ"},
		{regexp.MustCompile(`(?i)\bfooter\b`), "Footer"},
		{regexp.MustCompile(`(?i)\b(?:contact|form)\b`), "ContactForm"},
		{regexp.MustCompile(`(?i)\b(?:cta|call to action)\b`), "CTA"},
		{regexp.MustCompile(`(?i)\bmodal\b`), "Modal"},
		{regexp.MustCompile(`(?i)\bcard\b`), "Card"},
		{regexp.MustCompile(`(?i)\bheader\b`), "Header"},
	}
)

// ExtractDependencies lists external packages imported by code, in order of
// first appearance. Relative and alias ("@/") imports are skipped.
func ExtractDependencies(code string) []string {
	deps := []string{}
	for _, m := range reImport.FindAllStringSubmatch(code, -1) {
		path := m[1]
		if strings.HasPrefix(path, ".") || strings.HasPrefix(path, "@/") || strings.HasPrefix(path, "/") {
			continue
		}
		pkg := packageName(path)
		if !slices.Contains(deps, pkg) {
			deps = append(deps, pkg)
		}
	}
	return deps
}

// packageName trims a sub-path import to its package: "@scope/pkg/x" and
// "pkg/x" become "@scope/pkg" and "pkg".
func packageName(path string) string {
	parts := strings.Split(path, "/")
	if strings.HasPrefix(path, "@") && len(parts) > 1 {
		return parts[0] + "/" + parts[1]
	}
	return parts[0]
}

// DetectComponentName returns the first declared component name in code.
func DetectComponentName(code string) string {
	for _, re := range componentNamePatterns {
		if m := re.FindStringSubmatch(code); m != nil {
			return m[1]
		}
	}
	return DefaultComponentName
}

// ComponentNameFromPrompt guesses a component name from a free text request.
func ComponentNameFromPrompt(prompt string) string {
	for _, w := range promptComponentWords {
		if w.re.MatchString(prompt) {
			return w.name
		}
	}
	return DefaultComponentName
}

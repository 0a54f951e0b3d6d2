package planner

import (
	"regexp"
	"strings"

	"pagegen/internal/domain/entity"
)

const DefaultSubject = "a modern web application"

var subjectPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bfor\s+((?:a|an|my|our)\s+.+?)(?:\s+with\b|\s+that\b|[.!?]?$)`),
	regexp.MustCompile(`(?i)\b(?:about|showcasing|promoting)\s+(.+?)(?:\s+with\b|\s+that\b|[.!?]?$)`),
	regexp.MustCompile(`(?i)landing page\s+(?:(?:for|about)\s+)?(.+?)(?:\s+with\b|\s+that\b|[.!?]?$)`),
}

var (
	leadingArticle = regexp.MustCompile(`(?i)^(?:a|an|the|my|our)\s`)
	noiseWords     = regexp.MustCompile(`(?i)\b(?:landing page|website)\b`)
	spaces         = regexp.MustCompile(`\s+`)
)

// ExtractSubject pulls the thing the page is about out of the prompt, e.g.
// "Create a landing page for a project management tool" gives
// "a project management tool".
func ExtractSubject(prompt string) string {
	for _, re := range subjectPatterns {
		m := re.FindStringSubmatch(prompt)
		if m == nil {
			continue
		}
		subject := noiseWords.ReplaceAllString(m[1], "")
		subject = spaces.ReplaceAllString(subject, " ")
		subject = strings.Trim(subject, " \t.,!?;:")
		if subject == "" {
			continue
		}
		if !leadingArticle.MatchString(subject + " ") {
			subject = "a " + subject
		}
		return subject
	}
	return DefaultSubject
}

// Plan builds the ordered section list for a page type. Unknown page types
// get the product template.
func Plan(prompt string, pageType entity.PageType) entity.GenerationPlan {
	templates, ok := sectionTemplates[pageType]
	if !ok {
		pageType = entity.PageTypeProduct
		templates = sectionTemplates[pageType]
	}

	subject := ExtractSubject(prompt)
	sections := make([]entity.SectionDescriptor, len(templates))
	for i, t := range templates {
		sections[i] = entity.SectionDescriptor{
			Name:   t.name,
			Prompt: strings.ReplaceAll(t.prompt, subjectPlaceholder, subject),
			Order:  i,
			Kind:   t.kind,
		}
	}

	return entity.GenerationPlan{
		IsMultiSection: true,
		PageType:       pageType,
		Sections:       sections,
		OriginalPrompt: prompt,
	}
}

// Build classifies the prompt and, for whole-page requests, plans it. A
// single-component prompt yields a plan with no sections.
func Build(prompt string) entity.GenerationPlan {
	intent := Classify(prompt)
	if !intent.IsMultiSection {
		return entity.GenerationPlan{
			IsMultiSection: false,
			PageType:       intent.PageType,
			OriginalPrompt: prompt,
		}
	}
	return Plan(prompt, intent.PageType)
}

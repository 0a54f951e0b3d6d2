package entity

import (
	"fmt"
	"strings"
)

type PageType string

const (
	PageTypeProduct   PageType = "product"
	PageTypePortfolio PageType = "portfolio"
	PageTypeService   PageType = "service"
	PageTypeCommerce  PageType = "commerce"
	PageTypeContent   PageType = "content"
)

type OutputFormat string

const (
	OutputFormatPlain OutputFormat = "plain" // JSX, no build step
	OutputFormatTyped OutputFormat = "typed" // TSX with typed props
)

// ParseOutputFormat accepts the canonical names and the aliases used by the
// browser client ("react", "typescript"). Empty input means plain.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "plain", "react", "jsx":
		return OutputFormatPlain, nil
	case "typed", "typescript", "tsx":
		return OutputFormatTyped, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// FileExt returns the component file extension for the format.
func (f OutputFormat) FileExt() string {
	if f == OutputFormatTyped {
		return ".tsx"
	}
	return ".jsx"
}

type SectionDescriptor struct {
	Name   string `json:"name"`
	Prompt string `json:"prompt"`
	Order  int    `json:"order"`
	Kind   string `json:"kind"`
}

type GenerationPlan struct {
	IsMultiSection bool                `json:"is_multi_section"`
	PageType       PageType            `json:"page_type"`
	Sections       []SectionDescriptor `json:"sections"`
	OriginalPrompt string              `json:"original_prompt"`
}

// SectionNames returns the section names in plan order.
func (p GenerationPlan) SectionNames() []string {
	names := make([]string, len(p.Sections))
	for i, s := range p.Sections {
		names[i] = s.Name
	}
	return names
}

type SectionSource string

const (
	SourcePrimary   SectionSource = "primary"
	SourceSecondary SectionSource = "secondary"
	SourceFallback  SectionSource = "fallback"
)

type SectionResult struct {
	SectionName  string        `json:"section_name" bson:"section_name"`
	Code         string        `json:"code" bson:"code"`
	Kind         string        `json:"kind" bson:"kind"`
	Order        int           `json:"order" bson:"order"`
	Dependencies []string      `json:"dependencies" bson:"dependencies"`
	Source       SectionSource `json:"source,omitempty" bson:"source,omitempty"`
}

type ValidationResult struct {
	IsValid bool   `json:"is_valid"`
	Reason  string `json:"reason"`
}

// GenerationAttempt is one provider call inside the section loop. It never
// outlives the loop iteration that produced it.
type GenerationAttempt struct {
	SectionName  string
	AttemptIndex int
	Temperature  float64
	ProviderUsed string
	RawOutput    string
	Validation   ValidationResult
}

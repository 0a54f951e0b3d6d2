package entity

// GenerationRequest is the inbound request shared by the streaming,
// multi-section and single-component flows.
type GenerationRequest struct {
	Prompt       string         `json:"prompt"`
	OutputFormat OutputFormat   `json:"output_format"`
	Constraints  []string       `json:"constraints,omitempty"`
	DesignTokens map[string]any `json:"design_tokens,omitempty"`
}

// SectionRequest carries everything the section generator needs for one
// descriptor. Passed by value.
type SectionRequest struct {
	Descriptor   SectionDescriptor
	Format       OutputFormat
	PageType     PageType
	MultiSection bool
	Constraints  []string
	DesignTokens map[string]any
}

type MultiSectionResponse struct {
	IsMultiSection bool            `json:"is_multi_section"`
	PageType       PageType        `json:"page_type"`
	Sections       []SectionResult `json:"sections"`
}

type ComponentResponse struct {
	Code          string   `json:"code"`
	Explanation   string   `json:"explanation"`
	Dependencies  []string `json:"dependencies"`
	ComponentType string   `json:"component_type"`
	Confidence    float64  `json:"confidence"`
}

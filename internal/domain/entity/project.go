package entity

import (
	"time"

	"github.com/google/uuid"
)

// Project is a caller-saved set of generated sections, kept so a page can be
// reopened or exported later.
type Project struct {
	ID        string          `json:"id" bson:"id"`
	Name      string          `json:"name" bson:"name"`
	Prompt    string          `json:"prompt,omitempty" bson:"prompt,omitempty"`
	PageType  PageType        `json:"page_type" bson:"page_type"`
	Format    OutputFormat    `json:"output_format" bson:"output_format"`
	Sections  []SectionResult `json:"sections" bson:"sections"`
	CreatedAt time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" bson:"updated_at"`
}

func NewProject(name, prompt string, pageType PageType, format OutputFormat, sections []SectionResult) *Project {
	now := time.Now()
	return &Project{
		ID:        uuid.New().String(),
		Name:      name,
		Prompt:    prompt,
		PageType:  pageType,
		Format:    format,
		Sections:  sections,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (p *Project) ReplaceSections(sections []SectionResult) {
	p.Sections = sections
	p.UpdatedAt = time.Now()
}

// ProjectFile is one file of an exported project tree.
type ProjectFile struct {
	ProjectID string `json:"project_id"`
	Name      string `json:"name"` // slash separated, relative to the project root
	Content   string `json:"content"`
	Type      string `json:"type"` // component, entry, manifest
}

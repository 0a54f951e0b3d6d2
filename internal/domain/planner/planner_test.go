package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagegen/internal/domain/entity"
)

func TestBuild_ProductLandingPage(t *testing.T) {
	plan := Build("Create a landing page for a project management tool")

	require.True(t, plan.IsMultiSection)
	assert.Equal(t, entity.PageTypeProduct, plan.PageType)
	assert.Equal(t, "Create a landing page for a project management tool", plan.OriginalPrompt)
	assert.Equal(t,
		[]string{"Navigation", "Hero", "Features", "SocialProof", "Pricing", "CTA", "Footer"},
		plan.SectionNames())

	for i, s := range plan.Sections {
		assert.Equal(t, i, s.Order)
		assert.NotEmpty(t, s.Kind)
		assert.Contains(t, s.Prompt, "a project management tool", s.Name)
		assert.NotContains(t, s.Prompt, subjectPlaceholder)
	}
}

func TestBuild_SaaSProductUsesProductTemplate(t *testing.T) {
	plan := Build("Create a landing page for a SaaS product")

	assert.Equal(t, entity.PageTypeProduct, plan.PageType)
	assert.Equal(t, []string{"Navigation", "Hero", "Features", "SocialProof", "Pricing", "CTA", "Footer"}, plan.SectionNames())
}

func TestBuild_SubjectWithoutArticle(t *testing.T) {
	plan := Build("landing page for project management")

	for _, s := range plan.Sections {
		assert.NotContains(t, s.Prompt, "for project management")
		assert.NotContains(t, s.Prompt, "a for ")
	}
}

func TestBuild_SingleSectionHasNoSections(t *testing.T) {
	plan := Build("just a hero section")

	assert.False(t, plan.IsMultiSection)
	assert.Empty(t, plan.Sections)
}

func TestExtractSubject(t *testing.T) {
	tests := []struct {
		prompt string
		want   string
	}{
		{"Create a landing page for a project management tool", "a project management tool"},
		{"landing page for an AI note taker with dark mode", "an AI note taker"},
		{"Website for my bakery that sells croissants", "my bakery"},
		{"A landing page about sustainable fashion.", "a sustainable fashion"},
		{"landing page promoting the new phone", "the new phone"},
		{"landing page for project management", "a project management"},
		{"landing page about remote hiring", "a remote hiring"},
		{"build me a website", DefaultSubject},
		{"", DefaultSubject},
	}
	for _, tt := range tests {
		t.Run(tt.prompt, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSubject(tt.prompt))
		})
	}
}

func TestPlan_EveryPageTypeHasUniqueOrderedSections(t *testing.T) {
	for pageType := range sectionTemplates {
		t.Run(string(pageType), func(t *testing.T) {
			plan := Plan("landing page for a test subject", pageType)
			require.NotEmpty(t, plan.Sections)
			assert.Equal(t, pageType, plan.PageType)

			seen := map[string]bool{}
			for i, s := range plan.Sections {
				assert.Equal(t, i, s.Order)
				assert.False(t, seen[s.Name], "duplicate section %s", s.Name)
				seen[s.Name] = true
				assert.Contains(t, s.Prompt, "a test subject")
			}
		})
	}
}

func TestPlan_FooterPromptsDemandFooterContent(t *testing.T) {
	for pageType := range sectionTemplates {
		for _, s := range Plan("landing page", pageType).Sections {
			if s.Name != "Footer" {
				continue
			}
			assert.Contains(t, s.Prompt, "copyright", pageType)
			assert.Contains(t, s.Prompt, "social media icons", pageType)
			assert.Contains(t, s.Prompt, "columns of links", pageType)
		}
	}
}

func TestPlan_UnknownPageTypeFallsBackToProduct(t *testing.T) {
	plan := Plan("landing page", entity.PageType("wiki"))
	assert.Equal(t, entity.PageTypeProduct, plan.PageType)
	assert.Len(t, plan.Sections, 7)
}

package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagegen/internal/domain/entity"
	"pagegen/internal/domain/planner"
	"pagegen/internal/domain/repository"
	"pagegen/internal/infrastructure/validator"
)

func newTestGenerator(p *fakePrimary, s repository.SecondaryGenerator) (*SectionGenerator, *validator.CodeValidator) {
	v := validator.NewCodeValidator(discardLogger())
	return NewSectionGenerator(p, s, v, DefaultGenerationSettings(), discardLogger()), v
}

func sectionReq(name string, format entity.OutputFormat, multi bool) entity.SectionRequest {
	return entity.SectionRequest{
		Descriptor:   entity.SectionDescriptor{Name: name, Prompt: "Create a " + name + " section", Order: 3, Kind: strings.ToLower(name)},
		Format:       format,
		PageType:     entity.PageTypeProduct,
		MultiSection: multi,
	}
}

func temperatures(calls []repository.GenerateParams) []float64 {
	out := make([]float64, len(calls))
	for i, c := range calls {
		out[i] = c.Temperature
	}
	return out
}

func TestSectionGenerator_FirstAttemptAccepted(t *testing.T) {
	p := &fakePrimary{outputs: []string{validHero}}
	g, _ := newTestGenerator(p, nil)

	res := g.Generate(context.Background(), sectionReq("Hero", entity.OutputFormatPlain, true))

	require.Len(t, p.calls, 1)
	assert.Equal(t, 0.8, p.calls[0].Temperature)
	assert.Equal(t, 3000, p.calls[0].MaxTokens)
	assert.Equal(t, "auto", p.calls[0].Model)
	assert.Equal(t, "Create a Hero section", p.calls[0].Prompt)
	assert.Contains(t, p.calls[0].SystemPrompt, "ONE section")

	assert.Equal(t, entity.SourcePrimary, res.Source)
	assert.Equal(t, validHero, res.Code)
	assert.Equal(t, "Hero", res.SectionName)
	assert.Equal(t, 3, res.Order)
	assert.Equal(t, "hero", res.Kind)
	assert.NotNil(t, res.Dependencies)
	assert.Empty(t, res.Dependencies)
}

func TestSectionGenerator_RetriesWithRisingTemperature(t *testing.T) {
	p := &fakePrimary{outputs: []string{"<div>hi</div>", validHero}}
	g, _ := newTestGenerator(p, nil)

	res := g.Generate(context.Background(), sectionReq("Hero", entity.OutputFormatPlain, true))

	assert.Equal(t, []float64{0.8, 0.9}, temperatures(p.calls))
	assert.Equal(t, entity.SourcePrimary, res.Source)
	assert.Equal(t, validHero, res.Code)
}

func TestSectionGenerator_PricingFallsBackToTemplate(t *testing.T) {
	p := &fakePrimary{}
	g, v := newTestGenerator(p, nil)

	res := g.Generate(context.Background(), sectionReq("Pricing", entity.OutputFormatPlain, true))

	assert.Equal(t, []float64{0.8, 0.9, 1.0}, temperatures(p.calls))
	assert.Equal(t, FallbackTemplate("Pricing", entity.OutputFormatPlain), res.Code)
	assert.Contains(t, res.Code, ">Pricing</h2>")
	assert.Equal(t, entity.SourceFallback, res.Source)
	assert.True(t, v.Validate(res.Code, res.SectionName).IsValid)
}

func TestSectionGenerator_SecondaryAfterPrimaryExhausted(t *testing.T) {
	p := &fakePrimary{outputs: []string{"not code at all"}}
	s := &fakeSecondary{output: validHero}
	g, _ := newTestGenerator(p, s)

	res := g.Generate(context.Background(), sectionReq("Hero", entity.OutputFormatPlain, true))

	assert.Len(t, p.calls, 3)
	require.Len(t, s.calls, 1)
	assert.Equal(t, 0.7, s.calls[0].temperature)
	assert.Equal(t, 3000, s.calls[0].maxTokens)
	assert.Equal(t, "Create a Hero section", s.calls[0].userPrompt)
	assert.Equal(t, entity.SourceSecondary, res.Source)
	assert.Equal(t, validHero, res.Code)
}

func TestSectionGenerator_SecondaryFailureUsesTemplate(t *testing.T) {
	p := &fakePrimary{}
	s := &fakeSecondary{err: errProviderDown}
	g, _ := newTestGenerator(p, s)

	res := g.Generate(context.Background(), sectionReq("CTA", entity.OutputFormatTyped, true))

	assert.Len(t, s.calls, 1)
	assert.Equal(t, entity.SourceFallback, res.Source)
	assert.Equal(t, FallbackTemplate("CTA", entity.OutputFormatTyped), res.Code)
}

func TestSectionGenerator_EveryPlannedSectionValidInTotalOutage(t *testing.T) {
	pageTypes := []entity.PageType{
		entity.PageTypeProduct, entity.PageTypePortfolio, entity.PageTypeService,
		entity.PageTypeCommerce, entity.PageTypeContent,
	}
	formats := []entity.OutputFormat{entity.OutputFormatPlain, entity.OutputFormatTyped}

	for _, pt := range pageTypes {
		for _, f := range formats {
			p := &fakePrimary{}
			g, v := newTestGenerator(p, &fakeSecondary{err: errProviderDown})

			for _, d := range planner.Plan("a landing page for a bakery", pt).Sections {
				res := g.Generate(context.Background(), entity.SectionRequest{
					Descriptor: d, Format: f, PageType: pt, MultiSection: true,
				})
				assert.True(t, v.Validate(res.Code, d.Name).IsValid, "%s/%s/%s", pt, f, d.Name)
				assert.Equal(t, d.Order, res.Order)
			}
		}
	}
}

func TestSectionGenerator_CanceledContextSkipsProviders(t *testing.T) {
	p := &fakePrimary{outputs: []string{validHero}}
	s := &fakeSecondary{output: validHero}
	g, _ := newTestGenerator(p, s)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := g.Generate(ctx, sectionReq("Hero", entity.OutputFormatPlain, true))

	assert.Empty(t, p.calls)
	assert.Empty(t, s.calls)
	assert.Equal(t, entity.SourceFallback, res.Source)
}

func TestSectionGenerator_UnavailablePrimaryIsSkipped(t *testing.T) {
	p := &fakePrimary{unavailable: true}
	s := &fakeSecondary{output: validHero}
	g, _ := newTestGenerator(p, s)

	res := g.Generate(context.Background(), sectionReq("Hero", entity.OutputFormatPlain, true))

	assert.Empty(t, p.calls)
	assert.Equal(t, entity.SourceSecondary, res.Source)
}

func TestSectionGenerator_StandaloneComponentExtractsDependencies(t *testing.T) {
	code := `import { useState } from 'react'
import { motion } from 'framer-motion'
import Button from './Button'

interface CardProps { title?: string }

export default function Card({ title = 'Plan' }: CardProps) {
  const [open, setOpen] = useState<boolean>(false)
  return <motion.div onClick={() => setOpen(!open)}><h3>{title}</h3><Button /></motion.div>
}`
	p := &fakePrimary{outputs: []string{"```tsx\n" + code + "\n```"}}
	g, _ := newTestGenerator(p, nil)

	res := g.Generate(context.Background(), sectionReq("Card", entity.OutputFormatTyped, false))

	require.Len(t, p.calls, 1)
	assert.Equal(t, 2000, p.calls[0].MaxTokens)
	assert.Contains(t, p.calls[0].SystemPrompt, "SINGLE production-ready TypeScript")
	assert.Equal(t, code, res.Code)
	assert.Equal(t, []string{"react", "framer-motion"}, res.Dependencies)
}

func TestSectionGenerator_RequestContextReachesSystemPrompt(t *testing.T) {
	p := &fakePrimary{outputs: []string{validHero}}
	g, _ := newTestGenerator(p, nil)

	req := sectionReq("Hero", entity.OutputFormatPlain, true)
	req.Constraints = []string{"no carousels"}
	req.DesignTokens = map[string]any{"primary": "#0f766e"}
	g.Generate(context.Background(), req)

	require.Len(t, p.calls, 1)
	assert.Contains(t, p.calls[0].SystemPrompt, "- no carousels")
	assert.Contains(t, p.calls[0].SystemPrompt, "#0f766e")
}

func TestSectionGenerator_FinalPassFailureUsesSimpleTemplate(t *testing.T) {
	p := &fakePrimary{outputs: []string{validHero}}
	v := rejectingCleaner{validator.NewCodeValidator(discardLogger())}
	g := NewSectionGenerator(p, nil, v, DefaultGenerationSettings(), discardLogger())

	res := g.Generate(context.Background(), sectionReq("Hero", entity.OutputFormatPlain, true))

	assert.Equal(t, SimpleFallbackTemplate("Hero", entity.OutputFormatPlain), res.Code)
	assert.Equal(t, entity.SourceFallback, res.Source)
}

package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"pagegen/internal/domain/entity"
	"pagegen/internal/domain/planner"
)

const (
	providerConfidence = 0.9
	fallbackConfidence = 0.5
)

// ComponentService serves the non-streaming flows: a whole page in one
// response, or a single standalone component.
type ComponentService struct {
	sections SectionProducer
	logger   *slog.Logger
}

func NewComponentService(sections SectionProducer, logger *slog.Logger) *ComponentService {
	return &ComponentService{sections: sections, logger: logger}
}

// GeneratePage returns entity.ErrNotLandingPage when the prompt does not
// describe a whole page.
func (s *ComponentService) GeneratePage(ctx context.Context, req entity.GenerationRequest) (*entity.MultiSectionResponse, error) {
	plan := planner.Build(req.Prompt)
	if !plan.IsMultiSection {
		return nil, entity.ErrNotLandingPage
	}

	sections := make([]entity.SectionResult, 0, len(plan.Sections))
	for _, d := range plan.Sections {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("generate %s: %w", d.Name, err)
		}
		sections = append(sections, s.sections.Generate(ctx, entity.SectionRequest{
			Descriptor:   d,
			Format:       req.OutputFormat,
			PageType:     plan.PageType,
			MultiSection: true,
			Constraints:  req.Constraints,
			DesignTokens: req.DesignTokens,
		}))
	}

	s.logger.Info("page generated", "page_type", plan.PageType, "sections", len(sections))
	return &entity.MultiSectionResponse{
		IsMultiSection: true,
		PageType:       plan.PageType,
		Sections:       sections,
	}, nil
}

func (s *ComponentService) GenerateComponent(ctx context.Context, req entity.GenerationRequest) (*entity.ComponentResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("generate component: %w", err)
	}

	name := ComponentNameFromPrompt(req.Prompt)
	res := s.sections.Generate(ctx, entity.SectionRequest{
		Descriptor: entity.SectionDescriptor{
			Name:   name,
			Prompt: req.Prompt,
			Kind:   "component",
		},
		Format:       req.OutputFormat,
		PageType:     planner.DetectPageType(req.Prompt),
		Constraints:  req.Constraints,
		DesignTokens: req.DesignTokens,
	})

	confidence := providerConfidence
	explanation := fmt.Sprintf("Generated %s component", name)
	if res.Source == entity.SourceFallback {
		confidence = fallbackConfidence
		explanation = fmt.Sprintf("Providers unavailable, returned a placeholder %s component", name)
	}

	return &entity.ComponentResponse{
		Code:          res.Code,
		Explanation:   explanation,
		Dependencies:  res.Dependencies,
		ComponentType: DetectComponentName(res.Code),
		Confidence:    confidence,
	}, nil
}

package usecase

import (
	"context"
	"log/slog"
	"math"
	"time"

	"pagegen/internal/domain/entity"
	"pagegen/internal/domain/repository"
	"pagegen/internal/infrastructure/metrics"
)

// GenerationSettings are the knobs of the per-section retry loop.
type GenerationSettings struct {
	Model                string
	BaseTemperature      float64
	TemperatureStep      float64
	MaxAttempts          int
	SectionMaxTokens     int
	ComponentMaxTokens   int
	SecondaryTemperature float64
	ProviderTimeout      time.Duration
}

func DefaultGenerationSettings() GenerationSettings {
	return GenerationSettings{
		Model:                "auto",
		BaseTemperature:      0.7,
		TemperatureStep:      0.1,
		MaxAttempts:          3,
		SectionMaxTokens:     3000,
		ComponentMaxTokens:   2000,
		SecondaryTemperature: 0.7,
		ProviderTimeout:      60 * time.Second,
	}
}

// SectionProducer turns one section request into a result. Implementations
// never fail.
type SectionProducer interface {
	Generate(ctx context.Context, req entity.SectionRequest) entity.SectionResult
}

var _ SectionProducer = (*SectionGenerator)(nil)

type sectionState int

const (
	stateAttempting sectionState = iota
	stateSecondary
	stateTemplate
	stateDone
)

type SectionGenerator struct {
	primary   repository.PrimaryGenerator
	secondary repository.SecondaryGenerator // may be nil
	validator repository.CodeValidator
	settings  GenerationSettings
	logger    *slog.Logger
}

func NewSectionGenerator(
	primary repository.PrimaryGenerator,
	secondary repository.SecondaryGenerator,
	validator repository.CodeValidator,
	settings GenerationSettings,
	logger *slog.Logger,
) *SectionGenerator {
	return &SectionGenerator{
		primary:   primary,
		secondary: secondary,
		validator: validator,
		settings:  settings,
		logger:    logger,
	}
}

// Generate walks attempts on the primary provider, one secondary call and
// finally the fallback template. The returned code always passes validation.
func (g *SectionGenerator) Generate(ctx context.Context, req entity.SectionRequest) entity.SectionResult {
	start := time.Now()
	name := req.Descriptor.Name

	systemPrompt := entity.SystemPrompt(req.PageType, req.Format, req.MultiSection).
		WithRequestContext(req.Constraints, req.DesignTokens)
	maxTokens := g.settings.SectionMaxTokens
	if !req.MultiSection {
		maxTokens = g.settings.ComponentMaxTokens
	}

	var (
		code    string
		source  entity.SectionSource
		attempt = 1
		state   = stateAttempting
	)
	if g.primary == nil || !g.primary.Available() {
		g.logger.Warn("primary provider unavailable", "section", name)
		state = stateSecondary
	}

	for state != stateDone {
		if ctx.Err() != nil && state != stateTemplate {
			g.logger.Warn("request canceled, skipping provider calls", "section", name, "err", ctx.Err())
			state = stateTemplate
			continue
		}

		switch state {
		case stateAttempting:
			if attempt > g.settings.MaxAttempts {
				state = stateSecondary
				continue
			}
			a := g.attemptPrimary(ctx, req.Descriptor, systemPrompt, attempt, maxTokens)
			if a.Validation.IsValid {
				code, source, state = a.RawOutput, entity.SourcePrimary, stateDone
				continue
			}
			attempt++

		case stateSecondary:
			state = stateTemplate
			if g.secondary == nil || !g.secondary.Available() {
				continue
			}
			a := g.attemptSecondary(ctx, req.Descriptor, systemPrompt, maxTokens)
			if a.Validation.IsValid {
				code, source, state = a.RawOutput, entity.SourceSecondary, stateDone
			}

		case stateTemplate:
			g.logger.Warn("using fallback template", "section", name)
			metrics.IncFallback("template")
			code, source, state = FallbackTemplate(name, req.Format), entity.SourceFallback, stateDone
		}
	}

	cleaned, err := g.validator.CleanAndValidate(code, name)
	if err != nil {
		g.logger.Warn("final validation failed, using simple template", "section", name, "err", err)
		metrics.IncFallback("simple_template")
		cleaned, source = SimpleFallbackTemplate(name, req.Format), entity.SourceFallback
	}

	deps := []string{}
	if !req.MultiSection {
		deps = ExtractDependencies(cleaned)
	}

	metrics.IncSectionCompleted(string(source))
	metrics.ObserveSectionDuration(time.Since(start))
	g.logger.Info("section generated",
		"section", name,
		"source", source,
		"duration", time.Since(start),
	)

	return entity.SectionResult{
		SectionName:  name,
		Code:         cleaned,
		Kind:         req.Descriptor.Kind,
		Order:        req.Descriptor.Order,
		Dependencies: deps,
		Source:       source,
	}
}

func (g *SectionGenerator) attemptPrimary(ctx context.Context, d entity.SectionDescriptor, systemPrompt string, attempt, maxTokens int) entity.GenerationAttempt {
	a := entity.GenerationAttempt{
		SectionName:  d.Name,
		AttemptIndex: attempt,
		Temperature:  g.temperature(attempt),
		ProviderUsed: g.primary.Name(),
	}

	callCtx, cancel := context.WithTimeout(ctx, g.settings.ProviderTimeout)
	defer cancel()

	out, err := g.primary.Generate(callCtx, repository.GenerateParams{
		Prompt:       d.Prompt,
		SystemPrompt: systemPrompt,
		Model:        g.settings.Model,
		Temperature:  a.Temperature,
		MaxTokens:    maxTokens,
	})
	if err != nil {
		g.logger.Warn("provider call failed",
			"section", d.Name, "attempt", attempt, "provider", a.ProviderUsed,
			"temperature", a.Temperature, "err", err)
		a.Validation = entity.ValidationResult{Reason: "provider error"}
		return a
	}

	a.RawOutput = out
	a.Validation = g.validator.Validate(out, d.Name)
	if !a.Validation.IsValid {
		g.logger.Warn("generated code rejected",
			"section", d.Name, "attempt", attempt, "provider", a.ProviderUsed,
			"reason", a.Validation.Reason)
	}
	return a
}

func (g *SectionGenerator) attemptSecondary(ctx context.Context, d entity.SectionDescriptor, systemPrompt string, maxTokens int) entity.GenerationAttempt {
	a := entity.GenerationAttempt{
		SectionName:  d.Name,
		AttemptIndex: g.settings.MaxAttempts + 1,
		Temperature:  g.settings.SecondaryTemperature,
		ProviderUsed: g.secondary.Name(),
	}

	callCtx, cancel := context.WithTimeout(ctx, g.settings.ProviderTimeout)
	defer cancel()

	out, err := g.secondary.ChatComplete(callCtx, systemPrompt, d.Prompt, a.Temperature, maxTokens)
	if err != nil {
		g.logger.Warn("secondary provider failed", "section", d.Name, "provider", a.ProviderUsed, "err", err)
		a.Validation = entity.ValidationResult{Reason: "provider error"}
		return a
	}

	a.RawOutput = out
	a.Validation = g.validator.Validate(out, d.Name)
	if !a.Validation.IsValid {
		g.logger.Warn("secondary code rejected", "section", d.Name, "reason", a.Validation.Reason)
	}
	return a
}

// temperature rounds to two decimals so 0.7+0.1 is sent as 0.8.
func (g *SectionGenerator) temperature(attempt int) float64 {
	t := g.settings.BaseTemperature + float64(attempt)*g.settings.TemperatureStep
	return math.Round(t*100) / 100
}

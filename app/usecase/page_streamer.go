package usecase

import (
	"context"
	"fmt"
	"iter"
	"log/slog"

	"pagegen/internal/domain/entity"
	"pagegen/internal/domain/planner"
	"pagegen/internal/infrastructure/metrics"
)

const notLandingPageMessage = "Not a landing page request"

// PageStreamer runs one multi-section generation per call and reports
// progress as a sequence of events.
type PageStreamer struct {
	sections SectionProducer
	logger   *slog.Logger
}

func NewPageStreamer(sections SectionProducer, logger *slog.Logger) *PageStreamer {
	return &PageStreamer{sections: sections, logger: logger}
}

// Stream returns a fresh single-use event sequence. Sections are generated
// one after another in plan order; the sequence ends with exactly one
// complete or error event unless the consumer stops early or ctx is canceled.
func (s *PageStreamer) Stream(ctx context.Context, req entity.GenerationRequest) iter.Seq[entity.StreamEvent] {
	return func(yield func(entity.StreamEvent) bool) {
		metrics.IncStreamStarted()
		outcome := "completed"
		defer func() { metrics.IncStreamFinished(outcome) }()

		plan, err := safePlan(req.Prompt)
		if err != nil {
			outcome = "failed"
			s.logger.Error("planning failed", "err", err)
			yield(entity.NewErrorEvent(err.Error()))
			return
		}
		if !plan.IsMultiSection {
			outcome = "rejected"
			yield(entity.NewErrorEvent(notLandingPageMessage))
			return
		}

		s.logger.Info("page plan ready",
			"page_type", plan.PageType,
			"sections", len(plan.Sections),
		)
		if !yield(entity.NewInitEvent(plan)) {
			outcome = "disconnected"
			return
		}

		for _, d := range plan.Sections {
			if ctx.Err() != nil {
				outcome = "canceled"
				s.logger.Info("stream canceled", "section", d.Name, "err", ctx.Err())
				return
			}
			if !yield(entity.NewStatusEvent(d.Name)) {
				outcome = "disconnected"
				return
			}

			res, err := s.generate(ctx, entity.SectionRequest{
				Descriptor:   d,
				Format:       req.OutputFormat,
				PageType:     plan.PageType,
				MultiSection: true,
				Constraints:  req.Constraints,
				DesignTokens: req.DesignTokens,
			})
			if err != nil {
				outcome = "failed"
				s.logger.Error("section generation failed", "section", d.Name, "err", err)
				yield(entity.NewErrorEvent(err.Error()))
				return
			}
			if !yield(entity.NewSectionCompleteEvent(res)) {
				outcome = "disconnected"
				return
			}
		}

		yield(entity.NewCompleteEvent(fmt.Sprintf("All %d sections generated", len(plan.Sections))))
	}
}

// generate converts a panic in the producer into an error so the stream can
// end with an error event.
func (s *PageStreamer) generate(ctx context.Context, req entity.SectionRequest) (res entity.SectionResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected failure generating %s: %v", req.Descriptor.Name, r)
		}
	}()
	return s.sections.Generate(ctx, req), nil
}

func safePlan(prompt string) (plan entity.GenerationPlan, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected failure planning page: %v", r)
		}
	}()
	return planner.Build(prompt), nil
}

package repository

import (
	"context"
)

// GenerateParams is a single completion call. Model is a catalog selector;
// "auto" leaves the choice to the provider.
type GenerateParams struct {
	Prompt       string
	SystemPrompt string
	Model        string
	Temperature  float64
	MaxTokens    int
}

// PrimaryGenerator is the multi-model aggregator reached over HTTP.
type PrimaryGenerator interface {
	Generate(ctx context.Context, params GenerateParams) (string, error)
	Available() bool
	Name() string
}

// SecondaryGenerator is a single fixed-model provider reached through an SDK.
type SecondaryGenerator interface {
	ChatComplete(ctx context.Context, systemPrompt, userPrompt string, temperature float64, maxTokens int) (string, error)
	Available() bool
	Name() string
}

package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"pagegen/internal/domain/entity"
	"pagegen/internal/domain/repository"
	"pagegen/internal/infrastructure/metrics"
)

const (
	DefaultGeminiModel = "gemini-2.0-flash"
	geminiName         = "gemini"
)

// contentGenerator is the slice of *genai.Models the generator needs.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiGenerator calls one fixed Gemini model through the genai SDK.
type GeminiGenerator struct {
	models contentGenerator
	model  string
	logger *slog.Logger
}

var _ repository.SecondaryGenerator = (*GeminiGenerator)(nil)

// NewGeminiGenerator returns an unavailable generator when apiKey is empty.
func NewGeminiGenerator(ctx context.Context, apiKey, model string, logger *slog.Logger) (*GeminiGenerator, error) {
	if model == "" {
		model = DefaultGeminiModel
	}
	g := &GeminiGenerator{model: model, logger: logger}
	if apiKey == "" {
		return g, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	g.models = client.Models
	return g, nil
}

func (g *GeminiGenerator) Name() string { return geminiName }

func (g *GeminiGenerator) Available() bool { return g.models != nil }

func (g *GeminiGenerator) ChatComplete(ctx context.Context, systemPrompt, userPrompt string, temperature float64, maxTokens int) (string, error) {
	if !g.Available() {
		return "", fmt.Errorf("%s: %w", geminiName, entity.ErrProviderUnavailable)
	}

	metrics.IncLLMRequest(geminiName, g.model)
	start := time.Now()
	defer func() { metrics.ObserveLLMDuration(geminiName, time.Since(start)) }()

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr(float32(temperature)),
	}
	if maxTokens > 0 {
		config.MaxOutputTokens = int32(maxTokens)
	}

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(userPrompt), config)
	if err != nil {
		metrics.IncError("llm", "gemini_generate")
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		metrics.IncError("llm", "gemini_empty")
		return "", fmt.Errorf("empty response from model")
	}
	return text, nil
}

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"pagegen/internal/domain/entity"
	"pagegen/internal/domain/repository"
	"pagegen/internal/infrastructure/metrics"
)

const (
	DefaultOpenRouterURL = "https://openrouter.ai/api/v1"
	openRouterName       = "openrouter"
)

type OpenRouterGenerator struct {
	apiKey   string
	baseURL  string
	siteURL  string
	siteName string
	client   *http.Client
	logger   *slog.Logger
}

var _ repository.PrimaryGenerator = (*OpenRouterGenerator)(nil)

func NewOpenRouterGenerator(apiKey, baseURL, siteURL, siteName string, timeout time.Duration, logger *slog.Logger) *OpenRouterGenerator {
	if baseURL == "" {
		baseURL = DefaultOpenRouterURL
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &OpenRouterGenerator{
		apiKey:   apiKey,
		baseURL:  strings.TrimRight(baseURL, "/"),
		siteURL:  siteURL,
		siteName: siteName,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

func (g *OpenRouterGenerator) Name() string { return openRouterName }

func (g *OpenRouterGenerator) Available() bool { return g.apiKey != "" }

func (g *OpenRouterGenerator) Generate(ctx context.Context, params repository.GenerateParams) (string, error) {
	if !g.Available() {
		return "", fmt.Errorf("%s: %w", openRouterName, entity.ErrProviderUnavailable)
	}

	selector := params.Model
	if selector == "" {
		selector = AutoModel
	}
	model, ok := lookupModel(selector)
	if !ok {
		metrics.IncError("llm", "unknown_model")
		return "", fmt.Errorf("unknown model: %s", selector)
	}

	metrics.IncLLMRequest(openRouterName, model.Key)
	start := time.Now()
	defer func() { metrics.ObserveLLMDuration(openRouterName, time.Since(start)) }()

	request := map[string]interface{}{
		"model": model.ID,
		"messages": []map[string]string{
			{"role": "system", "content": params.SystemPrompt},
			{"role": "user", "content": params.Prompt},
		},
		"temperature":       params.Temperature,
		"max_tokens":        params.MaxTokens,
		"top_p":             1,
		"frequency_penalty": 0,
		"presence_penalty":  0,
	}

	response, err := g.makeRequest(ctx, request)
	if err != nil {
		metrics.IncError("llm", "make_request")
		return "", fmt.Errorf("failed to make OpenRouter request: %w", err)
	}

	content, err := parseContent(response)
	if err != nil {
		metrics.IncError("llm", "parse_response")
		return "", fmt.Errorf("failed to parse OpenRouter response: %w", err)
	}

	if usage, ok := response["usage"].(map[string]interface{}); ok {
		g.logger.Debug("openrouter token usage",
			"model", model.Key,
			"prompt_tokens", usage["prompt_tokens"],
			"completion_tokens", usage["completion_tokens"],
		)
	}

	return content, nil
}

func (g *OpenRouterGenerator) makeRequest(ctx context.Context, request map[string]interface{}) (map[string]interface{}, error) {
	jsonData, err := json.Marshal(request)
	if err != nil {
		metrics.IncError("llm", "marshal_request")
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		metrics.IncError("llm", "create_request")
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	if g.siteURL != "" {
		req.Header.Set("HTTP-Referer", g.siteURL)
	}
	if g.siteName != "" {
		req.Header.Set("X-Title", g.siteName)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		metrics.IncError("llm", "http_do")
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			g.logger.Warn("close body failed", "err", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		metrics.IncError("llm", fmt.Sprintf("api_error_%d", resp.StatusCode))
		return nil, fmt.Errorf("openrouter api error: %d - %s", resp.StatusCode, string(body))
	}

	var response map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		metrics.IncError("llm", "decode_response")
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return response, nil
}

func parseContent(response map[string]interface{}) (string, error) {
	choices, ok := response["choices"].([]interface{})
	if !ok || len(choices) == 0 {
		return "", fmt.Errorf("invalid response format: no choices")
	}

	choice, ok := choices[0].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("invalid response format: invalid choice")
	}

	message, ok := choice["message"].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("invalid response format: no message")
	}

	content, ok := message["content"].(string)
	if !ok {
		return "", fmt.Errorf("invalid response format: no content")
	}

	return strings.TrimSpace(content), nil
}

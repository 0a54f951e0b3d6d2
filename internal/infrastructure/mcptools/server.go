package mcptools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"pagegen/internal/domain/entity"
	"pagegen/internal/domain/planner"
)

var version = "dev"

// Generator is the subset of the component service the tools call into.
type Generator interface {
	GeneratePage(ctx context.Context, req entity.GenerationRequest) (*entity.MultiSectionResponse, error)
	GenerateComponent(ctx context.Context, req entity.GenerationRequest) (*entity.ComponentResponse, error)
}

type PromptInput struct {
	Prompt string `json:"prompt" jsonschema:"natural-language description of the page or component"`
}

type GenerateInput struct {
	Prompt       string         `json:"prompt" jsonschema:"natural-language description of the page or component"`
	OutputFormat string         `json:"outputFormat,omitempty" jsonschema:"plain (JSX) or typed (TSX); defaults to plain"`
	Constraints  []string       `json:"constraints,omitempty" jsonschema:"extra requirements appended to every section prompt"`
	DesignTokens map[string]any `json:"designTokens,omitempty" jsonschema:"design tokens passed through to the generator"`
}

type ClassifyOutput struct {
	IsMultiSection bool            `json:"is_multi_section"`
	PageType       entity.PageType `json:"page_type"`
}

// Service adapts the planner and generator to MCP tool handlers.
type Service struct {
	gen    Generator
	logger *slog.Logger
}

func NewService(gen Generator, logger *slog.Logger) *Service {
	return &Service{gen: gen, logger: logger}
}

// NewServer registers the page tools on a fresh MCP server.
func NewServer(svc *Service) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "pagegen",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "classify_prompt",
		Description: "Report whether a prompt asks for a multi-section page and which page type it maps to.",
	}, svc.Classify)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "plan_page",
		Description: "Return the ordered section plan for a prompt without calling any model.",
	}, svc.PlanPage)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_page",
		Description: "Generate every section of a landing page. Fails for prompts that are not landing pages.",
	}, svc.GeneratePage)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_component",
		Description: "Generate a single React component from a prompt.",
	}, svc.GenerateComponent)

	return server
}

// RunStdio blocks until stdin is closed or ctx is cancelled.
func RunStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Service) Classify(_ context.Context, _ *mcp.CallToolRequest, in PromptInput) (*mcp.CallToolResult, ClassifyOutput, error) {
	intent := planner.Classify(in.Prompt)
	return nil, ClassifyOutput{
		IsMultiSection: intent.IsMultiSection,
		PageType:       intent.PageType,
	}, nil
}

func (s *Service) PlanPage(_ context.Context, _ *mcp.CallToolRequest, in PromptInput) (*mcp.CallToolResult, entity.GenerationPlan, error) {
	return nil, planner.Build(in.Prompt), nil
}

func (s *Service) GeneratePage(ctx context.Context, _ *mcp.CallToolRequest, in GenerateInput) (*mcp.CallToolResult, entity.MultiSectionResponse, error) {
	req, err := in.request()
	if err != nil {
		return nil, entity.MultiSectionResponse{}, err
	}
	resp, err := s.gen.GeneratePage(ctx, req)
	if err != nil {
		s.logger.Warn("mcp generate_page failed", "err", err)
		return nil, entity.MultiSectionResponse{}, err
	}
	return nil, *resp, nil
}

func (s *Service) GenerateComponent(ctx context.Context, _ *mcp.CallToolRequest, in GenerateInput) (*mcp.CallToolResult, entity.ComponentResponse, error) {
	req, err := in.request()
	if err != nil {
		return nil, entity.ComponentResponse{}, err
	}
	resp, err := s.gen.GenerateComponent(ctx, req)
	if err != nil {
		s.logger.Warn("mcp generate_component failed", "err", err)
		return nil, entity.ComponentResponse{}, err
	}
	return nil, *resp, nil
}

func (in GenerateInput) request() (entity.GenerationRequest, error) {
	if in.Prompt == "" {
		return entity.GenerationRequest{}, fmt.Errorf("prompt is required")
	}
	format, err := entity.ParseOutputFormat(in.OutputFormat)
	if err != nil {
		return entity.GenerationRequest{}, err
	}
	return entity.GenerationRequest{
		Prompt:       in.Prompt,
		OutputFormat: format,
		Constraints:  in.Constraints,
		DesignTokens: in.DesignTokens,
	}, nil
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"pagegen/app/config"
	"pagegen/app/usecase"
	"pagegen/internal/infrastructure/mcptools"
)

func newMCPCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the page tools over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			return serveMCP(cmd.Context(), cfg)
		},
	}
}

func serveMCP(parent context.Context, cfg *config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// stdout carries the protocol
	logger := newLoggerTo(os.Stderr, cfg)

	_, _, sections, err := buildGenerators(ctx, cfg, logger)
	if err != nil {
		return err
	}
	components := usecase.NewComponentService(sections, logger)

	server := mcptools.NewServer(mcptools.NewService(components, logger))
	logger.Info("serving MCP on stdio")
	if err := mcptools.RunStdio(ctx, server); err != nil && ctx.Err() == nil {
		logger.Error("mcp server stopped with error", "err", err)
		return err
	}
	return nil
}

var _ mcptools.Generator = (*usecase.ComponentService)(nil)

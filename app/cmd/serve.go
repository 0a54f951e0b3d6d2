package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"pagegen/app/config"
	"pagegen/app/usecase"
	"pagegen/internal/infrastructure/llm"
	"pagegen/internal/infrastructure/store/filesystem"
	mongorepo "pagegen/internal/infrastructure/store/mongodb"
	"pagegen/internal/infrastructure/transport"
	"pagegen/internal/infrastructure/validator"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(parent context.Context, cfg *config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := newLogger(cfg)

	primary, secondary, sections, err := buildGenerators(ctx, cfg, logger)
	if err != nil {
		return err
	}
	streamer := usecase.NewPageStreamer(sections, logger)
	components := usecase.NewComponentService(sections, logger)

	var projects usecase.ProjectUsecase
	if cfg.Mongo.URI != "" {
		client, err := mongorepo.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.ConnectTimeout)
		if err != nil {
			return err
		}
		defer func() {
			dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := client.Disconnect(dctx); err != nil {
				logger.Error("mongo disconnect error", "err", err)
			}
		}()
		logger.Info("connected to mongo", "database", cfg.Mongo.Database)

		fileRepo, err := filesystem.NewFileRepository(cfg.Export.Dir)
		if err != nil {
			return err
		}
		projectRepo := mongorepo.NewMongoProjectRepo(ctx, client.Database(cfg.Mongo.Database), logger)
		projects = usecase.NewProjectService(projectRepo, fileRepo, usecase.NewProjectExporter(fileRepo, logger), logger)
	} else {
		logger.Warn("MONGO_URI not set, project endpoints disabled")
	}

	// Transport
	handler := transport.NewGeneratorHandler(
		streamer,
		components,
		projects,
		[]transport.Provider{primary, secondary},
		llm.Models(),
		logger,
	)

	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Request-ID"}),
		handlers.ExposedHeaders([]string{"X-Request-ID"}),
	)(r)

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           corsHandler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting HTTP server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", "err", err)
		return err
	}
	logger.Info("service stopped")
	return nil
}

// buildGenerators wires both providers and the section generator shared by
// the HTTP and MCP entry points.
func buildGenerators(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*llm.OpenRouterGenerator, *llm.GeminiGenerator, *usecase.SectionGenerator, error) {
	primary := llm.NewOpenRouterGenerator(
		cfg.OpenRouter.APIKey,
		cfg.OpenRouter.BaseURL,
		cfg.OpenRouter.SiteURL,
		cfg.OpenRouter.SiteName,
		cfg.Generation.ProviderTimeout,
		logger,
	)
	secondary, err := llm.NewGeminiGenerator(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	if !primary.Available() {
		logger.Warn("OPENROUTER_API_KEY not set, primary provider unavailable")
	}
	if !secondary.Available() {
		logger.Info("GEMINI_API_KEY not set, secondary provider disabled")
	}

	sections := usecase.NewSectionGenerator(
		primary,
		secondary,
		validator.NewCodeValidator(logger),
		generationSettings(cfg),
		logger,
	)
	return primary, secondary, sections, nil
}

func generationSettings(cfg *config.Config) usecase.GenerationSettings {
	return usecase.GenerationSettings{
		Model:                cfg.OpenRouter.Model,
		BaseTemperature:      cfg.Generation.BaseTemperature,
		TemperatureStep:      cfg.Generation.TemperatureStep,
		MaxAttempts:          cfg.Generation.MaxAttempts,
		SectionMaxTokens:     cfg.Generation.SectionMaxTokens,
		ComponentMaxTokens:   cfg.Generation.ComponentMaxTokens,
		SecondaryTemperature: cfg.Generation.SecondaryTemperature,
		ProviderTimeout:      cfg.Generation.ProviderTimeout,
	}
}

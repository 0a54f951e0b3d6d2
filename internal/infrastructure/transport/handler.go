package transport

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"pagegen/app/usecase"
	"pagegen/internal/domain/entity"
	"pagegen/internal/infrastructure/llm"
	"pagegen/internal/infrastructure/metrics"
)

const requestIDHeader = "X-Request-ID"

type PageStreamer interface {
	Stream(ctx context.Context, req entity.GenerationRequest) iter.Seq[entity.StreamEvent]
}

type ComponentGenerator interface {
	GeneratePage(ctx context.Context, req entity.GenerationRequest) (*entity.MultiSectionResponse, error)
	GenerateComponent(ctx context.Context, req entity.GenerationRequest) (*entity.ComponentResponse, error)
}

// Provider is what the health endpoint reports on.
type Provider interface {
	Name() string
	Available() bool
}

var errProjectsDisabled = errors.New("project storage is not configured")

type GeneratorHandler struct {
	streamer   PageStreamer
	components ComponentGenerator
	projects   usecase.ProjectUsecase // nil when storage is disabled
	providers  []Provider
	models     []llm.ModelInfo
	logger     *slog.Logger
	upgrader   websocket.Upgrader
}

func NewGeneratorHandler(
	streamer PageStreamer,
	components ComponentGenerator,
	projects usecase.ProjectUsecase,
	providers []Provider,
	models []llm.ModelInfo,
	logger *slog.Logger,
) *GeneratorHandler {
	return &GeneratorHandler{
		streamer:   streamer,
		components: components,
		projects:   projects,
		providers:  providers,
		models:     models,
		logger:     logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *GeneratorHandler) RegisterRoutes(r *mux.Router) {
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/generate/stream", h.withMetrics(h.handleGenerateStream)).Methods(http.MethodPost)
	api.HandleFunc("/ws/generate", h.withMetrics(h.handleGenerateWS)).Methods(http.MethodGet)
	api.HandleFunc("/generate/multi-section", h.withMetrics(h.handleGeneratePage)).Methods(http.MethodPost)
	api.HandleFunc("/generate/component", h.withMetrics(h.handleGenerateComponent)).Methods(http.MethodPost)
	api.HandleFunc("/models", h.withMetrics(h.handleModels)).Methods(http.MethodGet)
	api.HandleFunc("/health", h.withMetrics(h.handleHealth)).Methods(http.MethodGet)

	api.HandleFunc("/projects", h.withMetrics(h.handleCreateProject)).Methods(http.MethodPost)
	api.HandleFunc("/projects", h.withMetrics(h.handleListProjects)).Methods(http.MethodGet)
	api.HandleFunc("/projects/{id}", h.withMetrics(h.handleGetProject)).Methods(http.MethodGet)
	api.HandleFunc("/projects/{id}", h.withMetrics(h.handleUpdateProject)).Methods(http.MethodPut)
	api.HandleFunc("/projects/{id}", h.withMetrics(h.handleDeleteProject)).Methods(http.MethodDelete)
	api.HandleFunc("/projects/{id}/export", h.withMetrics(h.handleExportProject)).Methods(http.MethodPost)
	api.HandleFunc("/projects/{id}/files", h.withMetrics(h.handleGetExportFiles)).Methods(http.MethodGet)

	r.Handle("/metrics", metrics.Handler())
}

// withMetrics records request metrics under the route template and tags the
// response with a request id.
func (h *GeneratorHandler) withMetrics(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				path = tmpl
			}
		}

		reqID := r.Header.Get(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, reqID)

		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rw, r)

		metrics.ObserveHTTPRequest(r.Method, path, rw.status, time.Since(start))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return hj.Hijack()
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func (h *GeneratorHandler) requestLogger(w http.ResponseWriter) *slog.Logger {
	return h.logger.With("request_id", w.Header().Get(requestIDHeader))
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

// writeServiceError maps domain errors to status codes. Anything unknown is
// logged and hidden behind a generic 500.
func (h *GeneratorHandler) writeServiceError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, entity.ErrNotLandingPage), errors.Is(err, entity.ErrInvalidProject):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, entity.ErrProjectNotFound):
		writeError(w, http.StatusNotFound, entity.ErrProjectNotFound)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusRequestTimeout, errors.New("request canceled"))
	default:
		h.requestLogger(w).Error(op+" failed", "err", err)
		writeError(w, http.StatusInternalServerError, errors.New("internal error"))
	}
}

// GET /api/v1/models
func (h *GeneratorHandler) handleModels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"models": h.models})
}

// GET /api/v1/health
func (h *GeneratorHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	providers := make(map[string]bool, len(h.providers))
	for _, p := range h.providers {
		providers[p.Name()] = p.Available()
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":        true,
		"ts":        time.Now().UTC(),
		"providers": providers,
		"projects":  h.projects != nil,
	})
}

package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"pagegen/internal/domain/entity"
	"pagegen/internal/infrastructure/metrics"
)

const (
	maxRequestBody = 1 << 20
	wsReadTimeout  = 30 * time.Second
	wsWriteTimeout = 10 * time.Second
)

// generateReq accepts both snake_case and camelCase output format keys.
type generateReq struct {
	Prompt            string         `json:"prompt"`
	OutputFormat      string         `json:"output_format"`
	OutputFormatCamel string         `json:"outputFormat"`
	Constraints       []string       `json:"constraints"`
	DesignTokens      map[string]any `json:"design_tokens"`
}

func (g generateReq) toEntity() (entity.GenerationRequest, error) {
	prompt := strings.TrimSpace(g.Prompt)
	if prompt == "" {
		return entity.GenerationRequest{}, errors.New("prompt is required")
	}

	raw := g.OutputFormat
	if raw == "" {
		raw = g.OutputFormatCamel
	}
	format, err := entity.ParseOutputFormat(raw)
	if err != nil {
		return entity.GenerationRequest{}, err
	}

	return entity.GenerationRequest{
		Prompt:       prompt,
		OutputFormat: format,
		Constraints:  g.Constraints,
		DesignTokens: g.DesignTokens,
	}, nil
}

func decodeGenerateRequest(body io.Reader) (entity.GenerationRequest, error) {
	var req generateReq
	if err := json.NewDecoder(io.LimitReader(body, maxRequestBody)).Decode(&req); err != nil {
		return entity.GenerationRequest{}, fmt.Errorf("bad request body: %w", err)
	}
	return req.toEntity()
}

// POST /api/v1/generate/stream
func (h *GeneratorHandler) handleGenerateStream(w http.ResponseWriter, r *http.Request) {
	req, err := decodeGenerateRequest(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	logger := h.requestLogger(w)
	logger.Info("stream started", "format", req.OutputFormat)

	sw := NewSSEWriter(w)
	sw.Init()
	for ev := range h.streamer.Stream(r.Context(), req) {
		if err := sw.WriteEvent(ev); err != nil {
			logger.Warn("client went away", "err", err)
			return
		}
	}
	logger.Info("stream finished")
}

// GET /api/v1/ws/generate
//
// The client sends one generation request as the first text message; every
// event is written back as its own JSON message and the connection is closed
// after the terminal event.
func (h *GeneratorHandler) handleGenerateWS(w http.ResponseWriter, r *http.Request) {
	logger := h.requestLogger(w)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer func() { _ = conn.Close() }()

	metrics.IncWSConnections()
	defer metrics.DecWSConnections()

	conn.SetReadLimit(maxRequestBody)
	_ = conn.SetReadDeadline(time.Now().Add(wsReadTimeout))

	var in generateReq
	if err := conn.ReadJSON(&in); err != nil {
		logger.Warn("websocket read request failed", "err", err)
		h.writeWSEvent(conn, entity.NewErrorEvent("bad request: "+err.Error()))
		h.closeWS(conn, websocket.CloseUnsupportedData, "bad request")
		return
	}
	req, err := in.toEntity()
	if err != nil {
		h.writeWSEvent(conn, entity.NewErrorEvent(err.Error()))
		h.closeWS(conn, websocket.CloseUnsupportedData, err.Error())
		return
	}
	_ = conn.SetReadDeadline(time.Time{})

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Any further read returns once the peer closes, which cancels generation.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	for ev := range h.streamer.Stream(ctx, req) {
		if err := h.writeWSEvent(conn, ev); err != nil {
			logger.Warn("websocket write failed", "err", err)
			return
		}
	}
	h.closeWS(conn, websocket.CloseNormalClosure, "done")
}

func (h *GeneratorHandler) writeWSEvent(conn *websocket.Conn, ev entity.StreamEvent) error {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return conn.WriteJSON(ev)
}

func (h *GeneratorHandler) closeWS(conn *websocket.Conn, code int, text string) {
	msg := websocket.FormatCloseMessage(code, text)
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(wsWriteTimeout))
}

// POST /api/v1/generate/multi-section
func (h *GeneratorHandler) handleGeneratePage(w http.ResponseWriter, r *http.Request) {
	req, err := decodeGenerateRequest(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	resp, err := h.components.GeneratePage(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err, "generate page")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// POST /api/v1/generate/component
func (h *GeneratorHandler) handleGenerateComponent(w http.ResponseWriter, r *http.Request) {
	req, err := decodeGenerateRequest(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	resp, err := h.components.GenerateComponent(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err, "generate component")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

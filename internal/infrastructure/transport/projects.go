package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"pagegen/app/usecase"
	"pagegen/internal/domain/entity"
)

type createProjectReq struct {
	Name         string                 `json:"name"`
	Prompt       string                 `json:"prompt"`
	PageType     entity.PageType        `json:"page_type"`
	OutputFormat string                 `json:"output_format"`
	Sections     []entity.SectionResult `json:"sections"`
}

type updateProjectReq struct {
	Sections []entity.SectionResult `json:"sections"`
}

// projectsEnabled answers 503 when no project store is wired.
func (h *GeneratorHandler) projectsEnabled(w http.ResponseWriter) bool {
	if h.projects == nil {
		writeError(w, http.StatusServiceUnavailable, errProjectsDisabled)
		return false
	}
	return true
}

func projectID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := mux.Vars(r)["id"]
	if id == "" {
		writeError(w, http.StatusBadRequest, errors.New("id required"))
		return "", false
	}
	return id, true
}

// POST /api/v1/projects
func (h *GeneratorHandler) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	if !h.projectsEnabled(w) {
		return
	}

	var req createProjectReq
	if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("bad request body: %w", err))
		return
	}
	format, err := entity.ParseOutputFormat(req.OutputFormat)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	project, err := h.projects.CreateProject(r.Context(), usecase.CreateProjectInput{
		Name:         req.Name,
		Prompt:       req.Prompt,
		PageType:     req.PageType,
		OutputFormat: format,
		Sections:     req.Sections,
	})
	if err != nil {
		h.writeServiceError(w, err, "create project")
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

// GET /api/v1/projects
func (h *GeneratorHandler) handleListProjects(w http.ResponseWriter, r *http.Request) {
	if !h.projectsEnabled(w) {
		return
	}
	projects, err := h.projects.ListProjects(r.Context())
	if err != nil {
		h.writeServiceError(w, err, "list projects")
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

// GET /api/v1/projects/{id}
func (h *GeneratorHandler) handleGetProject(w http.ResponseWriter, r *http.Request) {
	if !h.projectsEnabled(w) {
		return
	}
	id, ok := projectID(w, r)
	if !ok {
		return
	}
	project, err := h.projects.GetProject(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, "get project")
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// PUT /api/v1/projects/{id}
func (h *GeneratorHandler) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	if !h.projectsEnabled(w) {
		return
	}
	id, ok := projectID(w, r)
	if !ok {
		return
	}

	var req updateProjectReq
	if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("bad request body: %w", err))
		return
	}
	project, err := h.projects.UpdateSections(r.Context(), id, req.Sections)
	if err != nil {
		h.writeServiceError(w, err, "update project")
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// DELETE /api/v1/projects/{id}
func (h *GeneratorHandler) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if !h.projectsEnabled(w) {
		return
	}
	id, ok := projectID(w, r)
	if !ok {
		return
	}
	if err := h.projects.DeleteProject(r.Context(), id); err != nil {
		h.writeServiceError(w, err, "delete project")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/v1/projects/{id}/export
func (h *GeneratorHandler) handleExportProject(w http.ResponseWriter, r *http.Request) {
	if !h.projectsEnabled(w) {
		return
	}
	id, ok := projectID(w, r)
	if !ok {
		return
	}
	dir, err := h.projects.ExportProject(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, "export project")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"project_id": id, "path": dir})
}

// GET /api/v1/projects/{id}/files
func (h *GeneratorHandler) handleGetExportFiles(w http.ResponseWriter, r *http.Request) {
	if !h.projectsEnabled(w) {
		return
	}
	id, ok := projectID(w, r)
	if !ok {
		return
	}
	files, err := h.projects.GetExportFiles(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, "get export files")
		return
	}
	writeJSON(w, http.StatusOK, files)
}

package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"pagegen/internal/domain/entity"
	"pagegen/internal/domain/planner"
	"pagegen/internal/domain/repository"
)

type CreateProjectInput struct {
	Name         string                 `json:"name"`
	Prompt       string                 `json:"prompt"`
	PageType     entity.PageType        `json:"page_type"`
	OutputFormat entity.OutputFormat    `json:"output_format"`
	Sections     []entity.SectionResult `json:"sections"`
}

type ProjectUsecase interface {
	CreateProject(ctx context.Context, in CreateProjectInput) (*entity.Project, error)
	GetProject(ctx context.Context, id string) (*entity.Project, error)
	ListProjects(ctx context.Context) ([]*entity.Project, error)
	UpdateSections(ctx context.Context, id string, sections []entity.SectionResult) (*entity.Project, error)
	DeleteProject(ctx context.Context, id string) error
	ExportProject(ctx context.Context, id string) (string, error)
	GetExportFiles(ctx context.Context, id string) ([]*entity.ProjectFile, error)
}

var _ ProjectUsecase = (*ProjectService)(nil)

type ProjectService struct {
	projects repository.ProjectRepository
	files    repository.ProjectFileRepository
	exporter Exporter
	logger   *slog.Logger
}

func NewProjectService(
	pr repository.ProjectRepository,
	fr repository.ProjectFileRepository,
	e Exporter,
	logger *slog.Logger,
) *ProjectService {
	return &ProjectService{
		projects: pr,
		files:    fr,
		exporter: e,
		logger:   logger,
	}
}

func (u *ProjectService) CreateProject(ctx context.Context, in CreateProjectInput) (*entity.Project, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", entity.ErrInvalidProject)
	}
	if len(in.Sections) == 0 {
		return nil, fmt.Errorf("%w: at least one section is required", entity.ErrInvalidProject)
	}

	pageType := in.PageType
	if pageType == "" {
		pageType = planner.DetectPageType(in.Prompt)
	}
	format := in.OutputFormat
	if format == "" {
		format = entity.OutputFormatPlain
	}

	project := entity.NewProject(name, in.Prompt, pageType, format, sortedSections(in.Sections))
	if err := u.projects.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	u.logger.Info("project created", "project_id", project.ID, "sections", len(project.Sections))
	return project, nil
}

func (u *ProjectService) GetProject(ctx context.Context, id string) (*entity.Project, error) {
	return u.projects.GetByID(ctx, id)
}

func (u *ProjectService) ListProjects(ctx context.Context) ([]*entity.Project, error) {
	return u.projects.List(ctx)
}

func (u *ProjectService) UpdateSections(ctx context.Context, id string, sections []entity.SectionResult) (*entity.Project, error) {
	if len(sections) == 0 {
		return nil, fmt.Errorf("%w: at least one section is required", entity.ErrInvalidProject)
	}

	project, err := u.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	project.ReplaceSections(sortedSections(sections))
	if err := u.projects.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return project, nil
}

// DeleteProject removes the stored project and any exported tree.
func (u *ProjectService) DeleteProject(ctx context.Context, id string) error {
	if err := u.projects.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if err := u.files.DeleteProject(ctx, id); err != nil {
		u.logger.Warn("delete project export failed", "project_id", id, "err", err)
	}
	return nil
}

func (u *ProjectService) ExportProject(ctx context.Context, id string) (string, error) {
	project, err := u.projects.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	dir, err := u.exporter.Export(ctx, project)
	if err != nil {
		return "", fmt.Errorf("export project: %w", err)
	}
	u.logger.Info("project exported", "project_id", id, "dir", dir)
	return dir, nil
}

// GetExportFiles reads back the last export of a project.
func (u *ProjectService) GetExportFiles(ctx context.Context, id string) ([]*entity.ProjectFile, error) {
	if _, err := u.projects.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return u.files.GetFiles(ctx, id)
}

func sortedSections(sections []entity.SectionResult) []entity.SectionResult {
	out := slices.Clone(sections)
	slices.SortStableFunc(out, func(a, b entity.SectionResult) int { return a.Order - b.Order })
	return out
}

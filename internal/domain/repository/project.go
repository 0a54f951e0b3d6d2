package repository

import (
	"context"

	"pagegen/internal/domain/entity"
)

// ProjectRepository stores saved projects. GetByID returns
// entity.ErrProjectNotFound for unknown ids.
type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	GetByID(ctx context.Context, id string) (*entity.Project, error)
	List(ctx context.Context) ([]*entity.Project, error)
	Update(ctx context.Context, project *entity.Project) error
	Delete(ctx context.Context, id string) error
}

// ProjectFileRepository writes and reads exported project trees.
type ProjectFileRepository interface {
	SaveFiles(ctx context.Context, files []*entity.ProjectFile, projectID string) (string, error)
	GetFiles(ctx context.Context, projectID string) ([]*entity.ProjectFile, error)
	DeleteProject(ctx context.Context, projectID string) error
}

package filesystem

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pagegen/internal/domain/entity"
	"pagegen/internal/domain/repository"
	"pagegen/internal/infrastructure/metrics"
)

const metadataFile = "metadata.json"

// FileRepository writes exported project trees under basePath/<projectID>.
type FileRepository struct {
	basePath string
}

var _ repository.ProjectFileRepository = (*FileRepository)(nil)

type fileEntry struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int    `json:"size"`
}

type exportMetadata struct {
	ProjectID  string      `json:"project_id"`
	ExportedAt time.Time   `json:"exported_at"`
	FilesCount int         `json:"files_count"`
	Files      []fileEntry `json:"files"`
}

func NewFileRepository(basePath string) (*FileRepository, error) {
	info, err := os.Stat(basePath)
	if os.IsNotExist(err) {
		if mkErr := os.MkdirAll(basePath, 0o755); mkErr != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", basePath, mkErr)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to check directory %s: %w", basePath, err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("path %s exists but is not a directory", basePath)
	}

	return &FileRepository{basePath: basePath}, nil
}

func (r *FileRepository) GetBasePath() string {
	return r.basePath
}

// SaveFiles replaces any previous export of the project and returns the
// export directory.
func (r *FileRepository) SaveFiles(ctx context.Context, files []*entity.ProjectFile, projectID string) (string, error) {
	projectDir, err := r.projectDir(projectID)
	if err != nil {
		return "", err
	}
	if err := os.RemoveAll(projectDir); err != nil {
		return "", fmt.Errorf("failed to clear project directory: %w", err)
	}

	meta := exportMetadata{
		ProjectID:  projectID,
		ExportedAt: time.Now().UTC(),
		FilesCount: len(files),
		Files:      make([]fileEntry, 0, len(files)),
	}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		filePath, err := safeJoin(projectDir, file.Name)
		if err != nil {
			return "", err
		}
		if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
			return "", fmt.Errorf("failed to create directory for %s: %w", file.Name, err)
		}
		if err := os.WriteFile(filePath, []byte(file.Content), 0o644); err != nil {
			metrics.IncError("file_repo", "write_error")
			return "", fmt.Errorf("failed to write file %s: %w", file.Name, err)
		}
		meta.Files = append(meta.Files, fileEntry{Name: file.Name, Type: file.Type, Size: len(file.Content)})
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(projectDir, metadataFile), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write metadata: %w", err)
	}

	metrics.IncDBOp("export")
	return projectDir, nil
}

func (r *FileRepository) GetFiles(ctx context.Context, projectID string) ([]*entity.ProjectFile, error) {
	projectDir, err := r.projectDir(projectID)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(projectDir, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("export of %s: %w", projectID, entity.ErrProjectNotFound)
		}
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	var meta exportMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
	}

	files := make([]*entity.ProjectFile, 0, len(meta.Files))
	for _, f := range meta.Files {
		filePath, err := safeJoin(projectDir, f.Name)
		if err != nil {
			return nil, err
		}
		content, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", f.Name, err)
		}
		files = append(files, &entity.ProjectFile{
			ProjectID: projectID,
			Name:      f.Name,
			Content:   string(content),
			Type:      f.Type,
		})
	}
	return files, nil
}

func (r *FileRepository) DeleteProject(ctx context.Context, projectID string) error {
	projectDir, err := r.projectDir(projectID)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(projectDir); err != nil {
		return fmt.Errorf("failed to delete project directory: %w", err)
	}
	return nil
}

func (r *FileRepository) projectDir(projectID string) (string, error) {
	if projectID == "" || strings.ContainsAny(projectID, `/\`) || projectID == "." || projectID == ".." {
		return "", fmt.Errorf("invalid project id %q", projectID)
	}
	return filepath.Join(r.basePath, projectID), nil
}

// safeJoin keeps name inside root.
func safeJoin(root, name string) (string, error) {
	if name == "" || filepath.IsAbs(name) {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	p := filepath.Join(root, filepath.FromSlash(name))
	rel, err := filepath.Rel(root, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("file name %q escapes project directory", name)
	}
	return p, nil
}

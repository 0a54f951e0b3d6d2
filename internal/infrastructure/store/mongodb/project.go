package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"pagegen/internal/domain/entity"
	"pagegen/internal/domain/repository"
	"pagegen/internal/infrastructure/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const projectsCollection = "projects"

type MongoProjectRepo struct {
	col    *mongo.Collection
	logger *slog.Logger
}

var _ repository.ProjectRepository = (*MongoProjectRepo)(nil)

func NewMongoProjectRepo(ctx context.Context, db *mongo.Database, logger *slog.Logger) *MongoProjectRepo {
	col := db.Collection(projectsCollection)

	_, err := col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{bson.E{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{bson.E{Key: "created_at", Value: -1}}},
	})
	if err != nil {
		logger.Warn("create project indexes failed", "err", err)
	}

	return &MongoProjectRepo{col: col, logger: logger}
}

func (r *MongoProjectRepo) Create(ctx context.Context, project *entity.Project) error {
	metrics.IncDBOp("create")

	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now
	if _, err := r.col.InsertOne(ctx, project); err != nil {
		metrics.IncError("mongo_project_repo", "create_error")
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

func (r *MongoProjectRepo) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	metrics.IncDBOp("get")

	var project entity.Project
	err := r.col.FindOne(ctx, bson.M{"id": id}).Decode(&project)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entity.ErrProjectNotFound
		}
		metrics.IncError("mongo_project_repo", "get_error")
		return nil, fmt.Errorf("find project %s: %w", id, err)
	}
	return &project, nil
}

// List returns projects newest first.
func (r *MongoProjectRepo) List(ctx context.Context) ([]*entity.Project, error) {
	metrics.IncDBOp("list")

	opts := options.Find().SetSort(bson.D{bson.E{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.D{}, opts)
	if err != nil {
		metrics.IncError("mongo_project_repo", "list_error")
		return nil, fmt.Errorf("find projects: %w", err)
	}
	defer func() {
		if err := cur.Close(ctx); err != nil {
			r.logger.Warn("close cursor failed", "err", err)
		}
	}()

	projects := []*entity.Project{}
	for cur.Next(ctx) {
		var p entity.Project
		if err := cur.Decode(&p); err != nil {
			metrics.IncError("mongo_project_repo", "list_decode_error")
			return nil, fmt.Errorf("decode project: %w", err)
		}
		projects = append(projects, &p)
	}
	if err := cur.Err(); err != nil {
		metrics.IncError("mongo_project_repo", "list_cursor_error")
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return projects, nil
}

func (r *MongoProjectRepo) Update(ctx context.Context, project *entity.Project) error {
	metrics.IncDBOp("put")

	project.UpdatedAt = time.Now()
	res, err := r.col.ReplaceOne(ctx, bson.M{"id": project.ID}, project)
	if err != nil {
		metrics.IncError("mongo_project_repo", "update_error")
		return fmt.Errorf("replace project %s: %w", project.ID, err)
	}
	if res.MatchedCount == 0 {
		return entity.ErrProjectNotFound
	}
	return nil
}

func (r *MongoProjectRepo) Delete(ctx context.Context, id string) error {
	metrics.IncDBOp("delete")

	res, err := r.col.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		metrics.IncError("mongo_project_repo", "delete_error")
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return entity.ErrProjectNotFound
	}
	return nil
}

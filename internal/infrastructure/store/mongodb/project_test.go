package mongodb

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagegen/internal/domain/entity"
)

// newTestRepo connects to MONGO_URI and hands out a repo on a throwaway
// database. Skipped when no server is configured.
func newTestRepo(t *testing.T) *MongoProjectRepo {
	t.Helper()

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set")
	}

	ctx := context.Background()
	client, err := Connect(ctx, uri, 5*time.Second)
	require.NoError(t, err)

	db := client.Database("pagegen_test_" + uuid.NewString()[:8])
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	return NewMongoProjectRepo(ctx, db, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testProject(name string) *entity.Project {
	return entity.NewProject(name, "landing page for a bakery", entity.PageTypeProduct, entity.OutputFormatPlain,
		[]entity.SectionResult{
			{SectionName: "Hero", Code: "export function Hero() {}", Kind: "hero", Order: 0, Dependencies: []string{}},
		})
}

func TestMongoProjectRepo_CreateAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	p := testProject("Bakery")
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bakery", got.Name)
	assert.Equal(t, entity.PageTypeProduct, got.PageType)
	require.Len(t, got.Sections, 1)
	assert.Equal(t, "Hero", got.Sections[0].SectionName)
}

func TestMongoProjectRepo_MissingProject(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, entity.ErrProjectNotFound)

	assert.ErrorIs(t, repo.Update(ctx, testProject("ghost")), entity.ErrProjectNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "missing"), entity.ErrProjectNotFound)
}

func TestMongoProjectRepo_ListNewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	older := testProject("older")
	require.NoError(t, repo.Create(ctx, older))
	time.Sleep(5 * time.Millisecond)
	newer := testProject("newer")
	require.NoError(t, repo.Create(ctx, newer))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
}

func TestMongoProjectRepo_UpdateAndDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	p := testProject("Bakery")
	require.NoError(t, repo.Create(ctx, p))

	p.ReplaceSections([]entity.SectionResult{
		{SectionName: "Footer", Code: "export function Footer() {}", Kind: "footer", Order: 0, Dependencies: []string{}},
	})
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, got.Sections, 1)
	assert.Equal(t, "Footer", got.Sections[0].SectionName)

	require.NoError(t, repo.Delete(ctx, p.ID))
	_, err = repo.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, entity.ErrProjectNotFound)
}

package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagegen/internal/domain/entity"
)

func newTestProjectService() (*ProjectService, *memProjects, *memFiles) {
	projects, files := newMemProjects(), newMemFiles()
	svc := NewProjectService(projects, files, NewProjectExporter(files, discardLogger()), discardLogger())
	return svc, projects, files
}

func sampleSections() []entity.SectionResult {
	return []entity.SectionResult{
		{SectionName: "Footer", Code: FallbackTemplate("Footer", entity.OutputFormatPlain), Order: 1, Dependencies: []string{}},
		{SectionName: "Hero", Code: validHero, Order: 0, Dependencies: []string{}},
	}
}

func TestProjectService_CreateSortsSectionsAndDetectsPageType(t *testing.T) {
	svc, projects, _ := newTestProjectService()

	p, err := svc.CreateProject(context.Background(), CreateProjectInput{
		Name:     "Studio",
		Prompt:   "portfolio website for a designer",
		Sections: sampleSections(),
	})

	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, entity.PageTypePortfolio, p.PageType)
	assert.Equal(t, entity.OutputFormatPlain, p.Format)
	assert.Equal(t, "Hero", p.Sections[0].SectionName)
	assert.Equal(t, "Footer", p.Sections[1].SectionName)
	assert.Contains(t, projects.items, p.ID)
}

func TestProjectService_CreateValidatesInput(t *testing.T) {
	svc, _, _ := newTestProjectService()

	_, err := svc.CreateProject(context.Background(), CreateProjectInput{Name: "  ", Sections: sampleSections()})
	assert.ErrorIs(t, err, entity.ErrInvalidProject)

	_, err = svc.CreateProject(context.Background(), CreateProjectInput{Name: "x"})
	assert.ErrorIs(t, err, entity.ErrInvalidProject)
}

func TestProjectService_UpdateGetDelete(t *testing.T) {
	svc, _, files := newTestProjectService()
	ctx := context.Background()

	p, err := svc.CreateProject(ctx, CreateProjectInput{Name: "Acme", Sections: sampleSections()})
	require.NoError(t, err)

	updated, err := svc.UpdateSections(ctx, p.ID, sampleSections()[1:])
	require.NoError(t, err)
	assert.Len(t, updated.Sections, 1)

	got, err := svc.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, got.Sections, 1)

	require.NoError(t, svc.DeleteProject(ctx, p.ID))
	assert.Equal(t, []string{p.ID}, files.deleted)

	_, err = svc.GetProject(ctx, p.ID)
	assert.ErrorIs(t, err, entity.ErrProjectNotFound)
	assert.ErrorIs(t, svc.DeleteProject(ctx, p.ID), entity.ErrProjectNotFound)
}

func TestProjectService_Export(t *testing.T) {
	svc, _, files := newTestProjectService()
	ctx := context.Background()

	p, err := svc.CreateProject(ctx, CreateProjectInput{Name: "Acme", Sections: sampleSections()})
	require.NoError(t, err)

	dir, err := svc.ExportProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "/exports/"+p.ID, dir)
	assert.NotEmpty(t, files.saved[p.ID])

	_, err = svc.ExportProject(ctx, "missing")
	assert.ErrorIs(t, err, entity.ErrProjectNotFound)
}

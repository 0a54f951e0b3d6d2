package usecase

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagegen/internal/domain/entity"
	"pagegen/internal/infrastructure/store/filesystem"
)

func filesByName(files []*entity.ProjectFile) map[string]*entity.ProjectFile {
	out := make(map[string]*entity.ProjectFile, len(files))
	for _, f := range files {
		out[f.Name] = f
	}
	return out
}

func TestBuildProjectFiles_Plain(t *testing.T) {
	project := entity.NewProject("Acme Launch!", "", entity.PageTypeProduct, entity.OutputFormatPlain, sampleSections())

	files, err := BuildProjectFiles(project)
	require.NoError(t, err)
	byName := filesByName(files)

	hero := byName["src/components/Hero.jsx"]
	require.NotNil(t, hero)
	assert.Equal(t, "component", hero.Type)
	assert.Contains(t, hero.Content, "import React from 'react';")
	require.NotNil(t, byName["src/components/Footer.jsx"])

	app := byName["src/App.jsx"].Content
	assert.Contains(t, app, "import { Hero } from './components/Hero';")
	assert.Contains(t, app, "import { Footer } from './components/Footer';")
	assert.Less(t, strings.Index(app, "<Hero />"), strings.Index(app, "<Footer />"))

	require.NotNil(t, byName["src/main.jsx"])
	assert.Contains(t, byName["index.html"].Content, "/src/main.jsx")

	var manifest packageManifest
	require.NoError(t, json.Unmarshal([]byte(byName["package.json"].Content), &manifest))
	assert.Equal(t, "acme-launch", manifest.Name)
	assert.Equal(t, reactVersion, manifest.Dependencies["react"])
	assert.NotContains(t, manifest.DevDependencies, "typescript")
}

func TestBuildProjectFiles_TypedDefaultExportsAndDependencies(t *testing.T) {
	code := `import { motion } from 'framer-motion'

export default function Hero() {
  return <motion.section><h1>Hello</h1><p>World of typed components</p></motion.section>
}`
	sections := []entity.SectionResult{
		{SectionName: "Hero", Code: code, Order: 0},
		{SectionName: "Hero", Code: code, Order: 1},
	}
	project := entity.NewProject("x", "", entity.PageTypeProduct, entity.OutputFormatTyped, sections)

	files, err := BuildProjectFiles(project)
	require.NoError(t, err)
	byName := filesByName(files)

	require.NotNil(t, byName["src/components/Hero.tsx"])
	require.NotNil(t, byName["src/components/Hero2.tsx"])
	assert.NotContains(t, byName["src/components/Hero.tsx"].Content, "import React from")

	app := byName["src/App.tsx"].Content
	assert.Contains(t, app, "import Hero from './components/Hero';")
	assert.Contains(t, app, "import Hero1 from './components/Hero2';")
	assert.Contains(t, app, "<Hero1 />")

	var manifest packageManifest
	require.NoError(t, json.Unmarshal([]byte(byName["package.json"].Content), &manifest))
	assert.Equal(t, "latest", manifest.Dependencies["framer-motion"])
	assert.Contains(t, manifest.DevDependencies, "typescript")
}

func TestProjectExporter_WritesTree(t *testing.T) {
	repo, err := filesystem.NewFileRepository(t.TempDir())
	require.NoError(t, err)
	exporter := NewProjectExporter(repo, discardLogger())

	project := entity.NewProject("Acme", "", entity.PageTypeProduct, entity.OutputFormatPlain, sampleSections())
	dir, err := exporter.Export(context.Background(), project)
	require.NoError(t, err)

	for _, name := range []string{"package.json", "index.html", "metadata.json", "src/App.jsx", "src/components/Hero.jsx"} {
		_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(name)))
		assert.NoError(t, err, name)
	}
}

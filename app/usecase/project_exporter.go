package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"pagegen/internal/domain/entity"
	"pagegen/internal/domain/repository"
)

const (
	reactVersion = "^18.2.0"
	viteVersion  = "^5.0.0"
)

var (
	reDefaultExport = regexp.MustCompile(`export\s+default\s+`)
	reReactImport   = regexp.MustCompile(`(?m)^\s*import\s+[^\n]*from\s+['"]react['"]`)
	reSlugStrip     = regexp.MustCompile(`[^a-z0-9]+`)
)

type Exporter interface {
	Export(ctx context.Context, project *entity.Project) (string, error)
}

var _ Exporter = (*ProjectExporter)(nil)

// ProjectExporter packages a project's sections into a runnable Vite tree.
type ProjectExporter struct {
	files  repository.ProjectFileRepository
	logger *slog.Logger
}

func NewProjectExporter(files repository.ProjectFileRepository, logger *slog.Logger) *ProjectExporter {
	return &ProjectExporter{files: files, logger: logger}
}

func (e *ProjectExporter) Export(ctx context.Context, project *entity.Project) (string, error) {
	if project.ID == "" {
		return "", fmt.Errorf("project id is empty")
	}

	files, err := BuildProjectFiles(project)
	if err != nil {
		return "", err
	}

	dir, err := e.files.SaveFiles(ctx, files, project.ID)
	if err != nil {
		return "", fmt.Errorf("save project files: %w", err)
	}
	e.logger.Debug("project files written", "project_id", project.ID, "files", len(files))
	return dir, nil
}

type componentRef struct {
	file       string // module path without extension, relative to App
	name       string
	defaultExp bool
}

// BuildProjectFiles returns one component file per section in order, the App
// and entry files and package.json.
func BuildProjectFiles(project *entity.Project) ([]*entity.ProjectFile, error) {
	ext := project.Format.FileExt()
	sections := sortedSections(project.Sections)

	var (
		files []*entity.ProjectFile
		refs  []componentRef
		deps  []string
		used  = map[string]int{}
	)

	for _, s := range sections {
		base := ComponentIdentifier(s.SectionName)
		used[base]++
		if n := used[base]; n > 1 {
			base = fmt.Sprintf("%s%d", base, n)
		}

		code := s.Code
		if project.Format == entity.OutputFormatPlain && !reReactImport.MatchString(code) {
			code = "import React from 'react';\n\n" + code
		}

		files = append(files, &entity.ProjectFile{
			ProjectID: project.ID,
			Name:      "src/components/" + base + ext,
			Content:   code + "\n",
			Type:      "component",
		})
		refs = append(refs, componentRef{
			file:       "./components/" + base,
			name:       DetectComponentName(s.Code),
			defaultExp: reDefaultExport.MatchString(s.Code),
		})

		for _, d := range s.Dependencies {
			if !slices.Contains(deps, d) {
				deps = append(deps, d)
			}
		}
		for _, d := range ExtractDependencies(s.Code) {
			if !slices.Contains(deps, d) {
				deps = append(deps, d)
			}
		}
	}

	manifest, err := packageJSON(project, deps)
	if err != nil {
		return nil, err
	}

	files = append(files,
		&entity.ProjectFile{ProjectID: project.ID, Name: "src/App" + ext, Content: appSource(refs), Type: "entry"},
		&entity.ProjectFile{ProjectID: project.ID, Name: "src/main" + ext, Content: mainSource(ext), Type: "entry"},
		&entity.ProjectFile{ProjectID: project.ID, Name: "index.html", Content: indexHTML(project.Name, ext), Type: "entry"},
		&entity.ProjectFile{ProjectID: project.ID, Name: "package.json", Content: manifest, Type: "manifest"},
	)
	return files, nil
}

func appSource(refs []componentRef) string {
	var b strings.Builder
	for i, r := range refs {
		alias := r.name
		// Two sections may declare the same component name.
		if slices.ContainsFunc(refs[:i], func(o componentRef) bool { return o.name == r.name }) {
			alias = fmt.Sprintf("%s%d", r.name, i)
		}
		refs[i].name = alias

		switch {
		case r.defaultExp:
			fmt.Fprintf(&b, "import %s from '%s';\n", alias, r.file)
		case alias != r.name:
			fmt.Fprintf(&b, "import { %s as %s } from '%s';\n", r.name, alias, r.file)
		default:
			fmt.Fprintf(&b, "import { %s } from '%s';\n", r.name, r.file)
		}
	}

	b.WriteString("\nexport default function App() {\n  return (\n    <main>\n")
	for _, r := range refs {
		fmt.Fprintf(&b, "      <%s />\n", r.name)
	}
	b.WriteString("    </main>\n  );\n}\n")
	return b.String()
}

func mainSource(ext string) string {
	root := "document.getElementById('root')"
	if ext == ".tsx" {
		root += "!"
	}
	return "import React from 'react';\n" +
		"import ReactDOM from 'react-dom/client';\n" +
		"import App from './App';\n\n" +
		"ReactDOM.createRoot(" + root + ").render(\n" +
		"  <React.StrictMode>\n    <App />\n  </React.StrictMode>\n);\n"
}

func indexHTML(title, ext string) string {
	return `<!doctype html>
<html lang="en">
  <head>
    <meta charset="UTF-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />
    <script src="https://cdn.tailwindcss.com"></script>
    <title>` + htmlEscaper.Replace(title) + `</title>
  </head>
  <body>
    <div id="root"></div>
    <script type="module" src="/src/main` + ext + `"></script>
  </body>
</html>
`
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

type packageManifest struct {
	Name            string            `json:"name"`
	Private         bool              `json:"private"`
	Version         string            `json:"version"`
	Type            string            `json:"type"`
	Scripts         map[string]string `json:"scripts"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

func packageJSON(project *entity.Project, deps []string) (string, error) {
	m := packageManifest{
		Name:    slug(project.Name),
		Private: true,
		Version: "0.1.0",
		Type:    "module",
		Scripts: map[string]string{
			"dev":     "vite",
			"build":   "vite build",
			"preview": "vite preview",
		},
		Dependencies: map[string]string{
			"react":     reactVersion,
			"react-dom": reactVersion,
		},
		DevDependencies: map[string]string{
			"vite":                 viteVersion,
			"@vitejs/plugin-react": "^4.2.0",
		},
	}
	for _, d := range deps {
		if _, ok := m.Dependencies[d]; !ok {
			m.Dependencies[d] = "latest"
		}
	}
	if project.Format == entity.OutputFormatTyped {
		m.DevDependencies["typescript"] = "^5.3.0"
		m.DevDependencies["@types/react"] = reactVersion
		m.DevDependencies["@types/react-dom"] = reactVersion
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal package.json: %w", err)
	}
	return string(data) + "\n", nil
}

func slug(name string) string {
	s := strings.Trim(reSlugStrip.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if s == "" {
		return "generated-page"
	}
	return s
}

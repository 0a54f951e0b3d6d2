package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"pagegen/internal/domain/entity"
	"pagegen/internal/domain/repository"
)

const validHero = `export function Hero() {
  return (
    <section className="py-20">
      <h1 className="text-4xl font-bold">Ship faster with Acme</h1>
      <p>Plan, track and release in one place.</p>
    </section>
  );
}`

var errProviderDown = errors.New("provider down")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakePrimary replays outputs in order; once exhausted it repeats the last
// entry. A nil outputs slice means every call fails.
type fakePrimary struct {
	mu          sync.Mutex
	unavailable bool
	outputs     []string
	calls       []repository.GenerateParams
}

func (f *fakePrimary) Name() string    { return "fake-primary" }
func (f *fakePrimary) Available() bool { return !f.unavailable }

func (f *fakePrimary) Generate(ctx context.Context, p repository.GenerateParams) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, p)
	if len(f.outputs) == 0 {
		return "", errProviderDown
	}
	i := min(len(f.calls)-1, len(f.outputs)-1)
	return f.outputs[i], nil
}

type secondaryCall struct {
	systemPrompt, userPrompt string
	temperature              float64
	maxTokens                int
}

type fakeSecondary struct {
	output string
	err    error
	calls  []secondaryCall
}

func (f *fakeSecondary) Name() string    { return "fake-secondary" }
func (f *fakeSecondary) Available() bool { return true }

func (f *fakeSecondary) ChatComplete(ctx context.Context, systemPrompt, userPrompt string, temperature float64, maxTokens int) (string, error) {
	f.calls = append(f.calls, secondaryCall{systemPrompt, userPrompt, temperature, maxTokens})
	return f.output, f.err
}

// fakeProducer echoes descriptors into results and can be told to panic or
// to run a hook per call.
type fakeProducer struct {
	requests []entity.SectionRequest
	panicOn  string
	source   entity.SectionSource
	hook     func(req entity.SectionRequest)
}

func (f *fakeProducer) Generate(ctx context.Context, req entity.SectionRequest) entity.SectionResult {
	f.requests = append(f.requests, req)
	if f.hook != nil {
		f.hook(req)
	}
	if req.Descriptor.Name == f.panicOn {
		panic("boom")
	}
	source := f.source
	if source == "" {
		source = entity.SourcePrimary
	}
	return entity.SectionResult{
		SectionName:  req.Descriptor.Name,
		Code:         FallbackTemplate(req.Descriptor.Name, req.Format),
		Kind:         req.Descriptor.Kind,
		Order:        req.Descriptor.Order,
		Dependencies: []string{},
		Source:       source,
	}
}

type memProjects struct {
	items map[string]*entity.Project
}

func newMemProjects() *memProjects {
	return &memProjects{items: map[string]*entity.Project{}}
}

func (m *memProjects) Create(ctx context.Context, p *entity.Project) error {
	m.items[p.ID] = p
	return nil
}

func (m *memProjects) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, entity.ErrProjectNotFound
	}
	return p, nil
}

func (m *memProjects) List(ctx context.Context) ([]*entity.Project, error) {
	out := make([]*entity.Project, 0, len(m.items))
	for _, p := range m.items {
		out = append(out, p)
	}
	return out, nil
}

func (m *memProjects) Update(ctx context.Context, p *entity.Project) error {
	if _, ok := m.items[p.ID]; !ok {
		return entity.ErrProjectNotFound
	}
	m.items[p.ID] = p
	return nil
}

func (m *memProjects) Delete(ctx context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return entity.ErrProjectNotFound
	}
	delete(m.items, id)
	return nil
}

type memFiles struct {
	saved   map[string][]*entity.ProjectFile
	deleted []string
}

func newMemFiles() *memFiles {
	return &memFiles{saved: map[string][]*entity.ProjectFile{}}
}

func (m *memFiles) SaveFiles(ctx context.Context, files []*entity.ProjectFile, projectID string) (string, error) {
	m.saved[projectID] = files
	return "/exports/" + projectID, nil
}

func (m *memFiles) GetFiles(ctx context.Context, projectID string) ([]*entity.ProjectFile, error) {
	return m.saved[projectID], nil
}

func (m *memFiles) DeleteProject(ctx context.Context, projectID string) error {
	m.deleted = append(m.deleted, projectID)
	return nil
}

type rejectingCleaner struct {
	repository.CodeValidator
}

func (rejectingCleaner) CleanAndValidate(code, sectionName string) (string, error) {
	return "", entity.ErrInvalidCode
}

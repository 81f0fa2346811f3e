package repository

import (
	"context"
	"sync"

	"github.com/doubletutu/portfolio-api/internal/domain"
)

type projectsFile struct {
	Projects []domain.Project `json:"projects"`
}

// ProjectRepository persists the project showcase list in a single JSON file.
// Same discipline as ArticleRepository: serialized writers, atomic replace.
type ProjectRepository struct {
	path string
	mu   sync.Mutex
}

// NewProjectRepository creates a ProjectRepository backed by the file at path.
func NewProjectRepository(path string) *ProjectRepository {
	return &ProjectRepository{path: path}
}

func (r *ProjectRepository) load() ([]domain.Project, error) {
	var doc projectsFile
	if err := readJSONFile(r.path, &doc); err != nil {
		return nil, err
	}
	return doc.Projects, nil
}

// GetAll returns every stored project.
func (r *ProjectRepository) GetAll(ctx context.Context) ([]domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

// GetByID returns the project with the given id, or ErrNotFound.
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	projects, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if projects[i].ID == id {
			return &projects[i], nil
		}
	}
	return nil, ErrNotFound
}

// Update applies a partial update to the admin-editable fields of a project.
// A nil patch field leaves the stored value untouched; a pointer to an empty
// string clears it. Returns ErrNotFound when the id is unknown.
func (r *ProjectRepository) Update(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	projects, err := r.load()
	if err != nil {
		return nil, err
	}

	for i := range projects {
		if projects[i].ID != id {
			continue
		}
		if patch.Emoji != nil {
			projects[i].Emoji = *patch.Emoji
		}
		if patch.Catchphrase != nil {
			projects[i].Catchphrase = *patch.Catchphrase
		}
		if patch.ImageURL != nil {
			projects[i].ImageURL = *patch.ImageURL
		}
		if err := writeJSONFile(r.path, &projectsFile{Projects: projects}); err != nil {
			return nil, err
		}
		return &projects[i], nil
	}
	return nil, ErrNotFound
}

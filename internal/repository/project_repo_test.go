package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/doubletutu/portfolio-api/internal/domain"
)

func newTestProjectRepo(t *testing.T, projects []domain.Project) *ProjectRepository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "projects.json")
	if err := writeJSONFile(path, &projectsFile{Projects: projects}); err != nil {
		t.Fatalf("Failed to seed projects file: %v", err)
	}
	return NewProjectRepository(path)
}

func strPtr(s string) *string { return &s }

// TestProjectUpdatePartial verifies nil patch fields leave stored values
// untouched while set fields are applied
func TestProjectUpdatePartial(t *testing.T) {
	repo := newTestProjectRepo(t, []domain.Project{
		{ID: "p1", Emoji: "🐒", Title: "Ledger", Catchphrase: "old phrase", ImageURL: "/projects/a.png"},
	})
	ctx := context.Background()

	updated, err := repo.Update(ctx, "p1", domain.ProjectPatch{
		Catchphrase: strPtr("new phrase"),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Catchphrase != "new phrase" {
		t.Errorf("Catchphrase = %q, want %q", updated.Catchphrase, "new phrase")
	}
	if updated.Emoji != "🐒" || updated.ImageURL != "/projects/a.png" {
		t.Errorf("Untouched fields changed: %+v", updated)
	}
	if updated.Title != "Ledger" {
		t.Errorf("Title is not patchable, got %q", updated.Title)
	}
}

// TestProjectUpdateClearsField verifies a pointer to an empty string clears
// the stored value, unlike an absent field
func TestProjectUpdateClearsField(t *testing.T) {
	repo := newTestProjectRepo(t, []domain.Project{
		{ID: "p1", Emoji: "🔥", ImageURL: "/projects/a.png"},
	})
	ctx := context.Background()

	updated, err := repo.Update(ctx, "p1", domain.ProjectPatch{
		ImageURL: strPtr(""),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.ImageURL != "" {
		t.Errorf("ImageURL = %q, want cleared", updated.ImageURL)
	}
	if updated.Emoji != "🔥" {
		t.Errorf("Emoji changed: %q", updated.Emoji)
	}
}

// TestProjectUpdateNotFound verifies unknown ids surface ErrNotFound
func TestProjectUpdateNotFound(t *testing.T) {
	repo := newTestProjectRepo(t, nil)

	_, err := repo.Update(context.Background(), "missing", domain.ProjectPatch{Emoji: strPtr("x")})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Update on unknown id = %v, want ErrNotFound", err)
	}
}

// TestProjectPatchEmpty verifies the all-nil patch is recognized as empty
func TestProjectPatchEmpty(t *testing.T) {
	empty := domain.ProjectPatch{}
	if !empty.Empty() {
		t.Error("All-nil patch should be empty")
	}
	set := domain.ProjectPatch{Emoji: strPtr("")}
	if set.Empty() {
		t.Error("Patch with a set pointer should not be empty")
	}
}

package handler

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/doubletutu/portfolio-api/internal/repository"
)

func writeTestFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

func newProjectTestRouter(t *testing.T, seed string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "projects.json")
	if seed != "" {
		if err := writeTestFile(path, seed); err != nil {
			t.Fatalf("Failed to seed projects file: %v", err)
		}
	}

	h := NewProjectHandler(repository.NewProjectRepository(path), nil)
	r := gin.New()
	r.GET("/api/projects", h.List)
	r.PATCH("/api/projects", h.Patch)
	return r
}

// TestProjectPatchValidation verifies the 400 paths: missing id and empty patch
func TestProjectPatchValidation(t *testing.T) {
	router := newProjectTestRouter(t, `{"projects":[{"id":"p1","emoji":"x","title":"T"}]}`)

	testCases := []struct {
		name string
		body string
	}{
		{name: "missing id", body: `{"emoji":"y"}`},
		{name: "no updatable fields", body: `{"id":"p1"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPatch, "/api/projects", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("Status = %d, want 400; body: %s", w.Code, w.Body.String())
			}
		})
	}
}

// TestProjectPatchNotFound verifies unknown ids map to 404
func TestProjectPatchNotFound(t *testing.T) {
	router := newProjectTestRouter(t, `{"projects":[]}`)

	req := httptest.NewRequest(http.MethodPatch, "/api/projects", strings.NewReader(`{"id":"missing","emoji":"y"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Status = %d, want 404; body: %s", w.Code, w.Body.String())
	}
}

// TestProjectPatchApplies verifies a valid patch is applied and returned
func TestProjectPatchApplies(t *testing.T) {
	router := newProjectTestRouter(t, `{"projects":[{"id":"p1","emoji":"old","title":"T","catchphrase":"c"}]}`)

	req := httptest.NewRequest(http.MethodPatch, "/api/projects", strings.NewReader(`{"id":"p1","emoji":"new"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, `"emoji":"new"`) {
		t.Errorf("Response missing patched emoji: %s", body)
	}
	if !strings.Contains(body, `"catchphrase":"c"`) {
		t.Errorf("Untouched field lost: %s", body)
	}
}

// TestProjectList verifies listing returns the stored projects
func TestProjectList(t *testing.T) {
	router := newProjectTestRouter(t, `{"projects":[{"id":"p1","emoji":"x","title":"Ledger"}]}`)

	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Ledger") {
		t.Errorf("Response missing project: %s", w.Body.String())
	}
}

package testsupport

import (
	"context"
	"testing"

	"fastrak/internal/config"
	"fastrak/internal/logging"
	"fastrak/internal/projects"
)

// MustOpenStore opens a projects.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *projects.Store {
	t.Helper()

	store, err := projects.Open(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("projects.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// RegisterProject registers a draft for tests using the provided store.
func RegisterProject(t testing.TB, store *projects.Store, draft projects.Draft) *projects.Project {
	t.Helper()

	project, _, err := store.Register(draft)
	if err != nil {
		t.Fatalf("store.Register: %v", err)
	}
	return project
}

package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fastrak/internal/projects"
)

// resolveProject looks up a project by id first, then by stored path.
func resolveProject(store *projects.Store, arg string) (*projects.Project, error) {
	trimmed := strings.TrimSpace(arg)
	if trimmed == "" {
		return nil, errors.New("project id or path is required")
	}

	project, err := store.GetByID(trimmed)
	if err == nil {
		return project, nil
	}
	if !errors.Is(err, projects.ErrNotFound) {
		return nil, err
	}

	project, err = store.GetByPath(trimmed)
	if err != nil {
		if errors.Is(err, projects.ErrNotFound) {
			return nil, fmt.Errorf("no project matches %q", trimmed)
		}
		return nil, err
	}
	return project, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("2006-01-02 15:04")
}

// parseKeyValues splits repeated name=value flag values into a map.
func parseKeyValues(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	values := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("expected name=value, got %q", pair)
		}
		values[name] = strings.TrimSpace(value)
	}
	return values, nil
}

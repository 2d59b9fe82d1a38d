package scaffold

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fastrak/internal/projects"
)

//go:embed templates/*.txt
var embeddedTemplates embed.FS

// templateName maps a project type to its template file basename.
func templateName(projectType string) string {
	return strings.ToLower(strings.TrimSpace(projectType)) + ".txt"
}

// isCanonicalType reports whether the type is one of the template-backed
// canonical types, not a legacy spelling.
func isCanonicalType(projectType string) bool {
	for _, known := range projects.KnownTypes() {
		if strings.EqualFold(known, strings.TrimSpace(projectType)) {
			return true
		}
	}
	return false
}

// Template returns the tree template text for a project type. A matching
// file in overrideDir wins over the embedded default.
func Template(projectType, overrideDir string) (string, error) {
	if !isCanonicalType(projectType) {
		return "", fmt.Errorf("no template for project type %q", projectType)
	}
	name := templateName(projectType)

	if overrideDir != "" {
		override := filepath.Join(overrideDir, name)
		if data, err := os.ReadFile(override); err == nil {
			return string(data), nil
		} else if !os.IsNotExist(err) {
			return "", fmt.Errorf("read template override: %w", err)
		}
	}

	data, err := embeddedTemplates.ReadFile("templates/" + name)
	if err != nil {
		return "", fmt.Errorf("embedded template for %s: %w", projectType, err)
	}
	return string(data), nil
}

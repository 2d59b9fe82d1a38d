package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Node is one folder entry parsed from a tree template.
type Node struct {
	// Path is the slash-joined relative folder path.
	Path string
	// Conditional is the [CONDITIONAL:tag] value, empty when unconditional.
	Conditional string
}

var (
	branchRe      = regexp.MustCompile(`^((?:[| ] {3})*)[+\\]---(.+)$`)
	conditionalRe = regexp.MustCompile(`^(.+?)\s+\[CONDITIONAL:(\w+)\]$`)
)

// ParseTree parses "tree /a /f" formatted text into folder nodes. Lines that
// are not branch lines (headers, file names, connectors) are ignored.
func ParseTree(text string) []Node {
	var nodes []Node
	var stack []string

	for _, line := range strings.Split(text, "\n") {
		stripped := strings.TrimRight(line, " \t\r")
		if stripped == "" {
			continue
		}
		match := branchRe.FindStringSubmatch(stripped)
		if match == nil {
			continue
		}

		depth := len(match[1]) / 4
		name := strings.TrimSpace(match[2])

		conditional := ""
		if cond := conditionalRe.FindStringSubmatch(name); cond != nil {
			name = strings.TrimSpace(cond[1])
			conditional = cond[2]
		}

		if depth > len(stack) {
			depth = len(stack)
		}
		stack = append(stack[:depth], name)
		nodes = append(nodes, Node{
			Path:        strings.Join(stack, "/"),
			Conditional: conditional,
		})
	}
	return nodes
}

// PlanTree resolves parsed nodes into relative folder paths: replacements
// substitute placeholders inside each path segment, and folders whose
// conditional tag is false are dropped along with their children. Paths come
// back slash-joined in template order.
func PlanTree(nodes []Node, replacements map[string]string, conditionals map[string]bool) []string {
	var planned []string
	var skipped []string

	for _, node := range nodes {
		if underSkipped(node.Path, skipped) {
			continue
		}
		if node.Conditional != "" {
			if enabled, ok := conditionals[node.Conditional]; ok && !enabled {
				skipped = append(skipped, node.Path)
				continue
			}
		}

		segments := strings.Split(node.Path, "/")
		for i, segment := range segments {
			for placeholder, value := range replacements {
				segment = strings.ReplaceAll(segment, placeholder, value)
			}
			segments[i] = segment
		}
		planned = append(planned, strings.Join(segments, "/"))
	}
	return planned
}

// CreateTree materializes parsed nodes under base. It returns the created
// directories in template order.
func CreateTree(base string, nodes []Node, replacements map[string]string, conditionals map[string]bool) ([]string, error) {
	var created []string
	for _, rel := range PlanTree(nodes, replacements, conditionals) {
		dir := filepath.Join(base, filepath.FromSlash(rel))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
		created = append(created, dir)
	}
	return created, nil
}

// WriteGitkeeps drops a .gitkeep file into every leaf directory of the
// created set.
func WriteGitkeeps(created []string) error {
	for _, dir := range created {
		leaf := true
		for _, other := range created {
			if other != dir && strings.HasPrefix(other, dir+string(os.PathSeparator)) {
				leaf = false
				break
			}
		}
		if !leaf {
			continue
		}
		keep := filepath.Join(dir, ".gitkeep")
		if _, err := os.Stat(keep); err == nil {
			continue
		}
		if err := os.WriteFile(keep, nil, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", keep, err)
		}
	}
	return nil
}

func underSkipped(path string, skipped []string) bool {
	for _, prefix := range skipped {
		if strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

package scaffold

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"fastrak/internal/config"
	"fastrak/internal/projects"
	"fastrak/internal/winpath"
)

// PersonalSubdir is the subfolder personal projects are created under.
const PersonalSubdir = "_Personal"

// datePlaceholder is replaced with the project date in template folder names.
const datePlaceholder = "YYY-MM-DD"

// typeTokens are the folder-name markers that distinguish project types on
// disk. Types without a token use the plain date_client_project form.
var typeTokens = map[string]string{
	projects.TypeVFX:      "FX",
	projects.TypeVJ:       "VJ",
	projects.TypeGodot:    "Godot",
	projects.TypeTD:       "TD",
	projects.TypePhysical: "3DPrint",
}

// typeSoftware lists the config software keys written into the specs file
// for each project type.
var typeSoftware = map[string][]string{
	projects.TypeGD:       {"blender", "after_effects"},
	projects.TypeVFX:      {"houdini", "blender", "fusion"},
	projects.TypeVJ:       {"resolume", "after_effects"},
	projects.TypeGodot:    {"godot", "platform", "renderer", "resolution"},
	projects.TypeTD:       {"touchdesigner", "python"},
	projects.TypeAudio:    {"ableton", "reaper"},
	projects.TypePhysical: {"slicer", "printer"},
}

// Request carries the inputs for one project scaffold.
type Request struct {
	Type        string
	ClientName  string
	ProjectName string
	// Date in YYYY-MM-DD form; empty means today.
	Date string
	// BaseDir overrides the category work path as the parent directory.
	BaseDir  string
	Personal bool
	Notes    string
	// IncludeShots toggles the [CONDITIONAL:shots] template folders.
	IncludeShots bool
	// Software overrides or extends the config defaults for the specs file.
	Software map[string]string
}

// Result describes a completed scaffold.
type Result struct {
	Project *projects.Project
	// Path is the canonical project folder path.
	Path string
	// Created lists the directories materialized from the template.
	Created []string
}

// Creator builds project folders and registers them.
type Creator struct {
	cfg    *config.Config
	store  *projects.Store
	logger *slog.Logger
	rules  winpath.Rules
}

// NewCreator constructs a scaffold creator bound to a store.
func NewCreator(cfg *config.Config, store *projects.Store, logger *slog.Logger) *Creator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Creator{
		cfg:    cfg,
		store:  store,
		logger: logger.With("component", "scaffold"),
		rules:  cfg.Rules(),
	}
}

// FolderName builds the on-disk folder name for a project. Personal projects
// drop the client segment when the type carries a token; otherwise the
// client segment stays so the name remains parseable.
func FolderName(projectType, date, client, project string, personal bool) string {
	token := typeTokens[strings.TrimSpace(projectType)]
	parts := []string{date}
	if token != "" {
		parts = append(parts, token)
	}
	if !personal {
		parts = append(parts, client)
	} else if token == "" {
		parts = append(parts, projects.PersonalClientName)
	}
	parts = append(parts, project)
	return strings.Join(parts, "_")
}

// Create builds the folder structure for the request and registers the
// project in the database.
func (c *Creator) Create(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.ProjectName) == "" {
		return nil, fmt.Errorf("project name is required")
	}
	if !isCanonicalType(req.Type) {
		return nil, fmt.Errorf("unknown project type %q", req.Type)
	}

	client := strings.TrimSpace(req.ClientName)
	if client == "" || strings.EqualFold(client, projects.PersonalClientName) {
		client = projects.PersonalClientName
		req.Personal = true
	}
	date := strings.TrimSpace(req.Date)
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	base := req.BaseDir
	if base == "" {
		base = c.cfg.ActivePath(projects.CategoryForType(req.Type))
	}
	base = c.rules.Normalize(base)
	if req.Personal {
		base = winpath.Join(base, PersonalSubdir)
	}

	folder := FolderName(req.Type, date, client, strings.TrimSpace(req.ProjectName), req.Personal)
	target := winpath.Join(base, folder)
	targetFS := c.rules.ToPlatform(target)

	if _, err := os.Stat(targetFS); err == nil {
		return nil, fmt.Errorf("project folder %s already exists", target)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("stat project folder: %w", err)
	}

	text, err := Template(req.Type, c.cfg.Storage.TemplateDir)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(targetFS, 0o755); err != nil {
		return nil, fmt.Errorf("create project folder: %w", err)
	}

	nodes := ParseTree(text)
	created, err := CreateTree(targetFS, nodes, map[string]string{datePlaceholder: date}, map[string]bool{"shots": req.IncludeShots})
	if err != nil {
		return nil, err
	}
	if err := WriteGitkeeps(created); err != nil {
		return nil, err
	}

	software := c.softwareSpecs(req)
	if err := c.writeSpecsFile(targetFS, req, client, date, software); err != nil {
		return nil, err
	}

	project, _, err := c.store.Register(projects.Draft{
		ClientName:    client,
		ProjectName:   strings.TrimSpace(req.ProjectName),
		ProjectType:   req.Type,
		DateCreated:   date,
		Path:          target,
		BaseDirectory: base,
		Status:        projects.StatusActive,
		Notes:         req.Notes,
		Metadata: map[string]any{
			"software_specs": software,
			"include_shots":  req.IncludeShots,
			"is_personal":    req.Personal,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("register scaffolded project: %w", err)
	}

	c.logger.Info("created project structure",
		"id", project.ID,
		"path", target,
		"type", req.Type,
		"folders", len(created))
	return &Result{Project: project, Path: target, Created: created}, nil
}

// softwareSpecs merges config defaults for the type with request overrides.
func (c *Creator) softwareSpecs(req Request) map[string]string {
	specs := map[string]string{}
	for _, key := range typeSoftware[strings.TrimSpace(req.Type)] {
		if version := c.cfg.SoftwareVersion(key); version != "" {
			specs[key] = version
		}
	}
	for name, version := range req.Software {
		key := strings.ToLower(strings.TrimSpace(name))
		if key != "" {
			specs[key] = strings.TrimSpace(version)
		}
	}
	return specs
}

func (c *Creator) writeSpecsFile(projectDir string, req Request, client, date string, software map[string]string) error {
	docsDir := filepath.Join(projectDir, "_LIBRARY", "Documents")
	if err := os.MkdirAll(docsDir, 0o755); err != nil {
		return fmt.Errorf("create documents folder: %w", err)
	}

	notes := strings.TrimSpace(req.Notes)
	if notes == "" {
		notes = "No notes provided."
	}
	shots := "Excluded"
	if req.IncludeShots {
		shots = "Included"
	}

	var lines []string
	for _, key := range sortedKeys(software) {
		lines = append(lines, fmt.Sprintf("%s: %s", key, software[key]))
	}
	softwareBlock := "None selected"
	if len(lines) > 0 {
		softwareBlock = strings.Join(lines, "\n")
	}

	content := fmt.Sprintf(`PROJECT SPECIFICATIONS
======================
Generated: %s

Project: %s
Client: %s
Date: %s
Type: %s

SOFTWARE VERSIONS
======================
%s

SHOT FOLDERS
======================
%s

NOTES
======================
%s
`, time.Now().Format("2006-01-02 15:04:05"), strings.TrimSpace(req.ProjectName), client, date, req.Type, softwareBlock, shots, notes)

	path := filepath.Join(docsDir, "project_specifications.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write specifications file: %w", err)
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

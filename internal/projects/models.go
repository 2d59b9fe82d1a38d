package projects

import (
	"strings"
	"time"
)

// SchemaVersion identifies the JSON document layout.
const SchemaVersion = "1.0.0"

// Status represents the lifecycle state of a project.
type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
	// StatusAll is a filter value only; it is never stored.
	StatusAll Status = "all"
)

// ParseStatus converts a string into a known Status filter value.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	switch normalized {
	case StatusActive, StatusArchived, StatusAll:
		return normalized, true
	}
	return "", false
}

// History actions recorded on archive transitions.
const (
	ActionArchived = "archived"
	ActionRestored = "unarchived"
)

// Document is the root of the JSON database.
type Document struct {
	Version        string          `json:"version"`
	Clients        []*Client       `json:"clients"`
	Projects       []*Project      `json:"projects"`
	ArchiveHistory []*HistoryEntry `json:"archive_history"`
}

// Client is a registered client, created on first project registration.
type Client struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	FirstSeen    time.Time `json:"first_seen"`
	ProjectCount int       `json:"project_count"`
	IsPersonal   bool      `json:"is_personal"`
}

// Project is one tracked project folder.
type Project struct {
	ID            string         `json:"id"`
	ClientID      string         `json:"client_id"`
	ClientName    string         `json:"client_name"`
	ProjectName   string         `json:"project_name"`
	ProjectType   string         `json:"project_type"`
	DateCreated   string         `json:"date_created"`
	Path          string         `json:"path"`
	BaseDirectory string         `json:"base_directory"`
	Status        Status         `json:"status"`
	ArchivedDate  *time.Time     `json:"archived_date"`
	ArchivedFrom  string         `json:"archived_from,omitempty"`
	Notes         string         `json:"notes"`
	Metadata      map[string]any `json:"metadata"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// IsPersonal reports whether the project was flagged personal at registration.
func (p *Project) IsPersonal() bool {
	if p == nil || p.Metadata == nil {
		return false
	}
	flag, ok := p.Metadata["is_personal"].(bool)
	return ok && flag
}

// HistoryEntry records one archive or restore transition.
type HistoryEntry struct {
	ProjectID string    `json:"project_id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
	FromPath  string    `json:"from_path"`
	ToPath    string    `json:"to_path"`
}

// Draft carries the caller-supplied fields for a new registration.
type Draft struct {
	ClientName    string
	ProjectName   string
	ProjectType   string
	DateCreated   string
	Path          string
	BaseDirectory string
	Status        Status
	Notes         string
	Metadata      map[string]any
}

// Stats aggregates project counts for diagnostic output.
type Stats struct {
	Total    int
	Active   int
	Archived int
	Clients  int
	ByType   map[string]int
}

// PersonalClientName is the reserved client used for personal projects.
const PersonalClientName = "Personal"

func emptyDocument() *Document {
	return &Document{
		Version:        SchemaVersion,
		Clients:        []*Client{},
		Projects:       []*Project{},
		ArchiveHistory: []*HistoryEntry{},
	}
}

package projects

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Register stores a new project, creating or updating its client record.
// If a project already exists at the draft's normalized path the existing
// project is returned unchanged and created reports false.
func (s *Store) Register(draft Draft) (*Project, bool, error) {
	project, created, err := s.register(draft)
	if err != nil {
		return nil, false, err
	}
	if created {
		if err := s.save(); err != nil {
			return nil, false, err
		}
	}
	return project, created, nil
}

// RegisterBatch registers every draft, skipping paths already present, and
// writes the database once at the end.
func (s *Store) RegisterBatch(drafts []Draft) (imported, skipped int, err error) {
	for _, draft := range drafts {
		_, created, registerErr := s.register(draft)
		if registerErr != nil {
			return imported, skipped, registerErr
		}
		if created {
			imported++
		} else {
			skipped++
		}
	}
	if imported > 0 {
		if err := s.save(); err != nil {
			return imported, skipped, err
		}
	}
	return imported, skipped, nil
}

func (s *Store) register(draft Draft) (*Project, bool, error) {
	normalized := s.rules.Normalize(draft.Path)
	if normalized == "" {
		return nil, false, fmt.Errorf("register project: empty path")
	}
	if existing := s.findByPath(normalized); existing != nil {
		s.logger.Debug("project already registered", "path", normalized, "id", existing.ID)
		return existing, false, nil
	}

	clientName := strings.TrimSpace(draft.ClientName)
	if clientName == "" {
		clientName = PersonalClientName
	}
	isPersonal := strings.EqualFold(clientName, PersonalClientName)

	now := time.Now().UTC()
	client := s.upsertClient(clientName, isPersonal, now)

	status := draft.Status
	if status == "" || status == StatusAll {
		status = StatusActive
	}
	dateCreated := draft.DateCreated
	if dateCreated == "" {
		dateCreated = now.Format("2006-01-02")
	}
	metadata := draft.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	if isPersonal {
		metadata["is_personal"] = true
	}

	project := &Project{
		ID:            uuid.NewString(),
		ClientID:      client.ID,
		ClientName:    client.Name,
		ProjectName:   strings.TrimSpace(draft.ProjectName),
		ProjectType:   strings.TrimSpace(draft.ProjectType),
		DateCreated:   dateCreated,
		Path:          normalized,
		BaseDirectory: s.rules.Normalize(draft.BaseDirectory),
		Status:        status,
		Notes:         draft.Notes,
		Metadata:      metadata,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.doc.Projects = append(s.doc.Projects, project)
	s.logger.Info("registered project",
		"id", project.ID,
		"client", project.ClientName,
		"name", project.ProjectName,
		"type", project.ProjectType)
	return project, true, nil
}

// upsertClient finds a client by case-insensitive name or creates one, and
// bumps its project count.
func (s *Store) upsertClient(name string, isPersonal bool, now time.Time) *Client {
	for _, client := range s.doc.Clients {
		if strings.EqualFold(client.Name, name) {
			client.ProjectCount++
			return client
		}
	}
	client := &Client{
		ID:           uuid.NewString(),
		Name:         name,
		FirstSeen:    now,
		ProjectCount: 1,
		IsPersonal:   isPersonal,
	}
	s.doc.Clients = append(s.doc.Clients, client)
	return client
}

// GetByID returns the project with the given id, or ErrNotFound.
func (s *Store) GetByID(id string) (*Project, error) {
	for _, project := range s.doc.Projects {
		if project.ID == id {
			return project, nil
		}
	}
	return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
}

// GetByPath returns the project stored at the path, or ErrNotFound. The path
// is normalized before the lookup.
func (s *Store) GetByPath(path string) (*Project, error) {
	normalized := s.rules.Normalize(path)
	if project := s.findByPath(normalized); project != nil {
		return project, nil
	}
	return nil, fmt.Errorf("project at %s: %w", normalized, ErrNotFound)
}

func (s *Store) findByPath(normalized string) *Project {
	for _, project := range s.doc.Projects {
		if strings.EqualFold(project.Path, normalized) {
			return project
		}
	}
	return nil
}

// HasPath reports whether any project is stored at the path.
func (s *Store) HasPath(path string) bool {
	return s.findByPath(s.rules.Normalize(path)) != nil
}

// List returns projects matching the status filter, newest registration
// first. StatusAll returns everything.
func (s *Store) List(status Status) []*Project {
	var matched []*Project
	for _, project := range s.doc.Projects {
		if status == StatusAll || project.Status == status {
			matched = append(matched, project)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched
}

// Search returns projects whose client name, project name, type, notes, or
// path contains the query, case-insensitively. Archived projects are only
// included when requested.
func (s *Store) Search(query string, includeArchived bool) []*Project {
	needle := strings.ToLower(strings.TrimSpace(query))
	var matched []*Project
	for _, project := range s.doc.Projects {
		if !includeArchived && project.Status == StatusArchived {
			continue
		}
		if needle == "" || projectMatches(project, needle) {
			matched = append(matched, project)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched
}

func projectMatches(project *Project, needle string) bool {
	for _, field := range []string{
		project.ClientName,
		project.ProjectName,
		project.ProjectType,
		project.Notes,
		project.Path,
	} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// UpdateNotes replaces a project's notes.
func (s *Store) UpdateNotes(id, notes string) (*Project, error) {
	project, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	project.Notes = notes
	project.UpdatedAt = time.Now().UTC()
	if err := s.save(); err != nil {
		return nil, err
	}
	return project, nil
}

// UpdateStatus transitions a project between active and archived without
// moving its folder. The stored path is kept; use MarkArchived or
// MarkRestored when a move supplies the new location.
func (s *Store) UpdateStatus(id string, status Status) (*Project, error) {
	project, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	switch status {
	case StatusArchived:
		return s.MarkArchived(id, project.Path)
	case StatusActive:
		return s.MarkRestored(id, project.Path)
	}
	return nil, fmt.Errorf("update status %s to %q: %w", id, status, ErrInvalidTransition)
}

// MarkArchived transitions an active project to archived, pointing its path
// at the archive location and recording a history entry.
func (s *Store) MarkArchived(id, archivePath string) (*Project, error) {
	project, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if project.Status != StatusActive {
		return nil, fmt.Errorf("archive %s (status %s): %w", id, project.Status, ErrInvalidTransition)
	}

	now := time.Now().UTC()
	fromPath := project.Path
	normalized := s.rules.Normalize(archivePath)

	project.ArchivedFrom = fromPath
	project.Path = normalized
	project.Status = StatusArchived
	project.ArchivedDate = &now
	project.UpdatedAt = now
	s.doc.ArchiveHistory = append(s.doc.ArchiveHistory, &HistoryEntry{
		ProjectID: id,
		Action:    ActionArchived,
		Timestamp: now,
		FromPath:  fromPath,
		ToPath:    normalized,
	})
	if err := s.save(); err != nil {
		return nil, err
	}
	s.logger.Info("marked project archived", "id", id, "to", normalized)
	return project, nil
}

// MarkRestored transitions an archived project back to active at the
// restored path and records a history entry.
func (s *Store) MarkRestored(id, restoredPath string) (*Project, error) {
	project, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if project.Status != StatusArchived {
		return nil, fmt.Errorf("restore %s (status %s): %w", id, project.Status, ErrInvalidTransition)
	}

	now := time.Now().UTC()
	fromPath := project.Path
	normalized := s.rules.Normalize(restoredPath)

	project.Path = normalized
	project.Status = StatusActive
	project.ArchivedDate = nil
	project.ArchivedFrom = ""
	project.UpdatedAt = now
	s.doc.ArchiveHistory = append(s.doc.ArchiveHistory, &HistoryEntry{
		ProjectID: id,
		Action:    ActionRestored,
		Timestamp: now,
		FromPath:  fromPath,
		ToPath:    normalized,
	})
	if err := s.save(); err != nil {
		return nil, err
	}
	s.logger.Info("marked project restored", "id", id, "to", normalized)
	return project, nil
}

// History returns archive transitions, newest first. An empty projectID
// returns the full log.
func (s *Store) History(projectID string) []*HistoryEntry {
	var entries []*HistoryEntry
	for _, entry := range s.doc.ArchiveHistory {
		if projectID == "" || entry.ProjectID == projectID {
			entries = append(entries, entry)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	return entries
}

// Clients returns registered clients sorted by name. The personal client is
// omitted when excludePersonal is set.
func (s *Store) Clients(excludePersonal bool) []*Client {
	var clients []*Client
	for _, client := range s.doc.Clients {
		if excludePersonal && client.IsPersonal {
			continue
		}
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return strings.ToLower(clients[i].Name) < strings.ToLower(clients[j].Name)
	})
	return clients
}

// ClientProjects returns all projects registered under a client, newest
// first.
func (s *Store) ClientProjects(clientID string) []*Project {
	var matched []*Project
	for _, project := range s.doc.Projects {
		if project.ClientID == clientID {
			matched = append(matched, project)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched
}

// Stats aggregates counts across the database.
func (s *Store) Stats() Stats {
	stats := Stats{
		Clients: len(s.doc.Clients),
		ByType:  map[string]int{},
	}
	for _, project := range s.doc.Projects {
		stats.Total++
		switch project.Status {
		case StatusArchived:
			stats.Archived++
		default:
			stats.Active++
		}
		if project.ProjectType != "" {
			stats.ByType[project.ProjectType]++
		}
	}
	return stats
}

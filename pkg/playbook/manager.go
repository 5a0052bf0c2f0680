package playbook

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kaliagent/kaliagent/pkg/storage"
)

// Summary is the listing view of a stored playbook.
type Summary struct {
	Slug     string
	Name     string
	Category string
	Steps    int
}

// Manager stores playbooks in the workspace as JSON documents.
type Manager struct {
	store *storage.DocumentStore
}

// NewManager creates a manager rooted at workspaceDir/playbooks.
func NewManager(workspaceDir string) *Manager {
	return &Manager{
		store: storage.NewDocumentStore(workspaceDir, "playbooks", "playbook"),
	}
}

// Create builds a new playbook stamped with the current time.
func (m *Manager) Create(name, description, author, category, targetType string, tags []string) *Playbook {
	return &Playbook{
		Name:        name,
		Description: description,
		Author:      author,
		Created:     time.Now(),
		Category:    category,
		TargetType:  targetType,
		Tags:        tags,
	}
}

// Save persists the playbook under its slug, replacing any previous version.
func (m *Manager) Save(p *Playbook) error {
	if p.Name == "" {
		return fmt.Errorf("playbook name must not be empty")
	}
	return m.store.Put(p.Slug(), p, true)
}

// Load reads a playbook by name or slug.
func (m *Manager) Load(name string) (*Playbook, error) {
	var p Playbook
	if err := m.store.Get(Slug(name), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes a stored playbook.
func (m *Manager) Delete(name string) error {
	return m.store.Delete(Slug(name))
}

// List returns summaries of all stored playbooks. Unreadable documents are
// skipped with a log line.
func (m *Manager) List() ([]Summary, error) {
	slugs, err := m.store.List()
	if err != nil {
		return nil, err
	}

	var out []Summary
	for _, slug := range slugs {
		var p Playbook
		if err := m.store.Get(slug, &p); err != nil {
			log.Warn().Err(err).Str("component", "playbook").Str("playbook", slug).Msg("skipping unreadable playbook")
			continue
		}
		out = append(out, Summary{
			Slug:     slug,
			Name:     p.Name,
			Category: p.Category,
			Steps:    len(p.Steps),
		})
	}
	return out, nil
}

// ExportMarkdown writes the playbook as a markdown file.
func (m *Manager) ExportMarkdown(p *Playbook, path string) error {
	if err := os.WriteFile(path, []byte(p.Markdown()), 0o600); err != nil {
		return fmt.Errorf("exporting playbook %q: %w", p.Name, err)
	}
	return nil
}

// InitDefaults saves the built-in playbooks into the workspace. Existing
// playbooks with the same slug are left untouched.
func (m *Manager) InitDefaults() error {
	for _, p := range DefaultPlaybooks() {
		if err := m.store.Put(p.Slug(), p, false); err != nil {
			if storage.IsAlreadyExists(err) {
				continue
			}
			return err
		}
	}
	return nil
}

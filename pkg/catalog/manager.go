package catalog

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/kaliagent/kaliagent/pkg/storage"
)

// Manager serves templates from the built-in library plus custom ones saved
// in the workspace. Custom templates shadow builtins with the same name.
type Manager struct {
	templates map[string]Template
	store     *storage.DocumentStore
}

// NewManager builds a manager with the builtin library loaded. workspaceDir
// may be empty to run without a custom template store.
func NewManager(workspaceDir string) *Manager {
	m := &Manager{
		templates: make(map[string]Template),
	}
	for _, t := range builtinTemplates() {
		m.templates[t.Name] = t
	}

	if workspaceDir != "" {
		m.store = storage.NewDocumentStore(workspaceDir, "templates", "template")
		m.loadCustom()
	}
	return m
}

// loadCustom merges saved custom templates over the builtins. Unreadable
// documents are skipped with a log line rather than failing startup.
func (m *Manager) loadCustom() {
	names, err := m.store.List()
	if err != nil {
		log.Warn().Err(err).Str("component", "catalog").Msg("failed to list custom templates")
		return
	}
	for _, name := range names {
		var t Template
		if err := m.store.Get(name, &t); err != nil {
			log.Warn().Err(err).Str("component", "catalog").Str("template", name).Msg("skipping unreadable custom template")
			continue
		}
		if t.Name == "" {
			t.Name = name
		}
		m.templates[t.Name] = t
	}
}

// Get returns the named template.
func (m *Manager) Get(name string) (Template, error) {
	t, ok := m.templates[name]
	if !ok {
		return Template{}, fmt.Errorf("template %q not found", name)
	}
	return t, nil
}

// List returns templates sorted by category then name, optionally filtered
// to one category. An empty category means all.
func (m *Manager) List(category string) []Template {
	var out []Template
	for _, t := range m.templates {
		if category != "" && t.Category != category {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Categories returns all distinct categories, sorted.
func (m *Manager) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range m.templates {
		if !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	sort.Strings(out)
	return out
}

// Render looks up the named template and fills in params.
func (m *Manager) Render(name string, params map[string]string) (string, error) {
	t, err := m.Get(name)
	if err != nil {
		return "", err
	}
	return t.Render(params)
}

// SaveCustom persists a template into the workspace store and makes it
// available immediately.
func (m *Manager) SaveCustom(t Template) error {
	if m.store == nil {
		return fmt.Errorf("no workspace configured for custom templates")
	}
	if t.Name == "" {
		return fmt.Errorf("template name must not be empty")
	}
	if t.RiskLevel != "" && !t.RiskLevel.IsValid() {
		return fmt.Errorf("unknown risk level %q", t.RiskLevel)
	}
	if err := m.store.Put(t.Name, t, true); err != nil {
		return err
	}
	m.templates[t.Name] = t
	return nil
}

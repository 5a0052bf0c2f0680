// Package playbook saves, loads, and replays sequences of security testing
// commands. A playbook is a documented workflow; the runner replays it step
// by step through the command safety gateway, never around it.
package playbook

import (
	"fmt"
	"strings"
	"time"
)

// Step is a single command in a playbook. Timestamp, Output and Success are
// nil until the step has been replayed at least once.
type Step struct {
	Command         string     `json:"command"`
	Description     string     `json:"description"`
	ExpectedOutcome string     `json:"expected_outcome"`
	Notes           string     `json:"notes,omitempty"`
	Timestamp       *time.Time `json:"timestamp,omitempty"`
	Output          *string    `json:"output,omitempty"`
	Success         *bool      `json:"success,omitempty"`
}

// Playbook is an ordered collection of security testing steps.
type Playbook struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Author      string    `json:"author"`
	Created     time.Time `json:"created"`
	Category    string    `json:"category"`
	TargetType  string    `json:"target_type"` // network, web-app, database, wireless, etc.
	Tags        []string  `json:"tags,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	Steps       []Step    `json:"steps"`
}

// AddStep appends a step to the playbook.
func (p *Playbook) AddStep(step Step) {
	p.Steps = append(p.Steps, step)
}

// Slug returns the storage name for the playbook: lowercased, spaces
// replaced with underscores.
func (p *Playbook) Slug() string {
	return Slug(p.Name)
}

// Slug normalizes a playbook name into its storage name.
func Slug(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "_"))
}

// Markdown renders the playbook as a markdown document.
func (p *Playbook) Markdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", p.Name)
	fmt.Fprintf(&b, "**Description:** %s\n\n", p.Description)
	fmt.Fprintf(&b, "**Author:** %s\n\n", p.Author)
	fmt.Fprintf(&b, "**Created:** %s\n\n", p.Created.Format(time.RFC3339))
	fmt.Fprintf(&b, "**Category:** %s\n\n", p.Category)
	fmt.Fprintf(&b, "**Target Type:** %s\n\n", p.TargetType)

	if len(p.Tags) > 0 {
		fmt.Fprintf(&b, "**Tags:** %s\n\n", strings.Join(p.Tags, ", "))
	}
	if p.Notes != "" {
		fmt.Fprintf(&b, "## Notes\n\n%s\n\n", p.Notes)
	}

	b.WriteString("## Steps\n\n")
	for i, step := range p.Steps {
		fmt.Fprintf(&b, "### Step %d: %s\n\n", i+1, step.Description)
		fmt.Fprintf(&b, "**Command:**\n```bash\n%s\n```\n\n", step.Command)
		fmt.Fprintf(&b, "**Expected Outcome:** %s\n\n", step.ExpectedOutcome)
		if step.Notes != "" {
			fmt.Fprintf(&b, "**Notes:** %s\n\n", step.Notes)
		}
	}

	return b.String()
}

// Package catalog holds the command template library: curated, parameterized
// invocations of the allowed security tools, each annotated with a risk level
// so the operator knows what they are about to point at a target.
package catalog

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// RiskLevel grades how intrusive a template is when run against a target.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// IsValid checks if the RiskLevel is one of the known grades.
func (r RiskLevel) IsValid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	default:
		return false
	}
}

// Template is one parameterized command. Placeholders in Command use
// {name} syntax and must all be filled before the command is usable.
type Template struct {
	Name        string            `json:"name"`
	Category    string            `json:"category"`
	Description string            `json:"description"`
	Command     string            `json:"command"`
	Parameters  map[string]string `json:"parameters"`
	Examples    []string          `json:"examples"`
	Notes       string            `json:"notes"`
	RiskLevel   RiskLevel         `json:"risk_level"`
}

var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// Placeholders returns the parameter names referenced by the command text,
// in order of first appearance.
func (t Template) Placeholders() []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range placeholderPattern.FindAllStringSubmatch(t.Command, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// Render substitutes params into the command text. Every placeholder must be
// filled; unresolved ones make the render fail so a literal "{target}" never
// reaches the safety gateway.
func (t Template) Render(params map[string]string) (string, error) {
	command, err := RenderCommand(t.Command, params)
	if err != nil {
		return "", fmt.Errorf("template %q: %w", t.Name, err)
	}
	return command, nil
}

// RenderCommand fills {name} placeholders in a command string. Any
// placeholder left unresolved is an error.
func RenderCommand(command string, params map[string]string) (string, error) {
	for name, value := range params {
		command = strings.ReplaceAll(command, "{"+name+"}", value)
	}

	if leftover := placeholderPattern.FindAllStringSubmatch(command, -1); len(leftover) > 0 {
		missing := make([]string, 0, len(leftover))
		seen := make(map[string]bool)
		for _, m := range leftover {
			if !seen[m[1]] {
				seen[m[1]] = true
				missing = append(missing, m[1])
			}
		}
		sort.Strings(missing)
		return "", fmt.Errorf("missing parameters: %s", strings.Join(missing, ", "))
	}

	return command, nil
}

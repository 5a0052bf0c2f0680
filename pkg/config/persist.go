// pkg/config/persist.go
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnsureWorkspace creates the workspace directory if it does not exist yet.
// The directory holds the config file, saved templates and playbooks, so it
// is created private to the operator.
func EnsureWorkspace(dir string) error {
	if dir == "" {
		dir = DefaultWorkspaceDir()
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating workspace %s: %w", dir, err)
	}
	return nil
}

// Save writes cfg to the workspace config file as YAML, replacing whatever
// was there. Key names match the koanf tags so a saved file round-trips
// through the file source unchanged.
func Save(dir string, cfg Config) error {
	if dir == "" {
		dir = DefaultWorkspaceDir()
	}
	if err := EnsureWorkspace(dir); err != nil {
		return err
	}

	doc := map[string]any{
		"log": map[string]any{
			"level":  cfg.Log.Level,
			"format": cfg.Log.Format,
			"file":   cfg.Log.File,
		},
		"security": map[string]any{
			"allowed_tools":         cfg.Security.AllowedTools,
			"safe_mode":             cfg.Security.SafeMode,
			"require_confirmation":  cfg.Security.RequireConfirmation,
			"allow_private_targets": cfg.Security.AllowPrivateTargets,
		},
		"execution": map[string]any{
			"timeout_seconds":       cfg.Execution.TimeoutSeconds,
			"probe_timeout_seconds": cfg.Execution.ProbeTimeoutSeconds,
		},
		"workspace": map[string]any{
			"dir": cfg.Workspace.Dir,
		},
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// pkg/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// One process-wide Koanf instance; every Manager shares it so repeated
// loads merge rather than reset.
var (
	k    *koanf.Koanf
	once sync.Once
)

// InitGlobalConfig sets up the shared Koanf instance. Called implicitly by
// NewManager; safe to call more than once.
func InitGlobalConfig() {
	once.Do(func() {
		k = koanf.New(".")
	})
}

// Manager loads and serves the merged configuration.
type Manager struct {
	koanfInstance *koanf.Koanf
	currentConfig Config
	mu            sync.RWMutex
}

// NewManager builds a Manager over the shared Koanf instance.
func NewManager() *Manager {
	InitGlobalConfig()
	return &Manager{
		koanfInstance: k,
	}
}

// DefaultWorkspaceDir returns the default on-disk workspace, ~/.kaliagent.
// Falls back to a relative .kaliagent when the home directory is unknown.
func DefaultWorkspaceDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".kaliagent"
	}
	return filepath.Join(home, ".kaliagent")
}

// DefaultConfig returns a new Config struct populated with hardcoded default values.
// These serve as the baseline configuration if no other sources override them.
func DefaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			File:   "",
		},
		Security: SecurityConfig{
			AllowedTools:        append([]string(nil), DefaultAllowedTools...),
			SafeMode:            true,
			RequireConfirmation: true,
			AllowPrivateTargets: true,
		},
		Execution: ExecutionConfig{
			TimeoutSeconds:      300,
			ProbeTimeoutSeconds: 2,
		},
		Workspace: WorkspaceConfig{
			Dir: DefaultWorkspaceDir(),
		},
	}
}

// Load merges the standard source chain into the current configuration:
// defaults, then the workspace config file (or customConfigFilePath when
// given), then KALIAGENT_-prefixed environment variables, then explicitly
// changed command-line flags. Environment variables map the first
// underscore to a dot, so KALIAGENT_SECURITY_SAFE_MODE lands on
// security.safe_mode. Use LoadWithSources for a custom chain.
func (m *Manager) Load(flags *pflag.FlagSet, customConfigFilePath string) error {
	// The --debug flag adds a top-priority log.level override.
	debug := false
	if flags != nil {
		debugFlag := flags.Lookup("debug")
		if debugFlag != nil && debugFlag.Value.String() == "true" {
			debug = true
		}
	}

	return m.LoadWithSources(DefaultSources(customConfigFilePath, flags, debug))
}

// LoadWithSources merges the given sources in ascending priority order and
// unmarshals the result. Later sources override earlier ones key by key.
func (m *Manager) LoadWithSources(sources []ConfigSource) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sort.Slice(sources, func(i, j int) bool {
		return sources[i].Priority() < sources[j].Priority()
	})

	for _, src := range sources {
		if err := src.Load(m.koanfInstance); err != nil {
			return fmt.Errorf("error loading config from %s: %w", src.Name(), err)
		}
	}

	var newCfg Config
	if err := m.koanfInstance.UnmarshalWithConf("", &newCfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return fmt.Errorf("error unmarshaling final config: %w", err)
	}
	m.currentConfig = newCfg
	m.postProcessConfig()

	return nil
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cfgCopy := m.currentConfig
	cfgCopy.Security.AllowedTools = append([]string(nil), m.currentConfig.Security.AllowedTools...)
	return cfgCopy
}

// GetValue retrieves a configuration value by key path.
// Example: GetValue("security.safe_mode")
// Returns nil if key doesn't exist.
func (m *Manager) GetValue(key string) any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.koanfInstance.Get(key)
}

// postProcessConfig handles any adjustments needed after loading and unmarshaling.
// Nonsense values fall back to defaults rather than failing the load.
func (m *Manager) postProcessConfig() {
	def := DefaultConfig()
	if len(m.currentConfig.Security.AllowedTools) == 0 {
		m.currentConfig.Security.AllowedTools = def.Security.AllowedTools
	}
	if m.currentConfig.Execution.TimeoutSeconds <= 0 {
		m.currentConfig.Execution.TimeoutSeconds = def.Execution.TimeoutSeconds
	}
	if m.currentConfig.Execution.ProbeTimeoutSeconds <= 0 {
		m.currentConfig.Execution.ProbeTimeoutSeconds = def.Execution.ProbeTimeoutSeconds
	}
	if m.currentConfig.Workspace.Dir == "" {
		m.currentConfig.Workspace.Dir = def.Workspace.Dir
	}
}

// DefaultConfigAsMap converts the DefaultConfig struct to a map[string]interface{}
// for Koanf's confmap.Provider. This is a bit manual but ensures Koanf knows all keys.
func DefaultConfigAsMap() map[string]any {
	def := DefaultConfig()
	return map[string]any{
		// Log configuration
		"log.level":  def.Log.Level,
		"log.format": def.Log.Format,
		"log.file":   def.Log.File,

		// Security policy
		"security.allowed_tools":         def.Security.AllowedTools,
		"security.safe_mode":             def.Security.SafeMode,
		"security.require_confirmation":  def.Security.RequireConfirmation,
		"security.allow_private_targets": def.Security.AllowPrivateTargets,

		// Execution bounds
		"execution.timeout_seconds":       def.Execution.TimeoutSeconds,
		"execution.probe_timeout_seconds": def.Execution.ProbeTimeoutSeconds,

		// Workspace
		"workspace.dir": def.Workspace.Dir,
	}
}

// BindFlags defines command-line flags corresponding to configuration settings.
// These flags allow overriding config file / environment variable settings.
// This function should be called when setting up Cobra commands.
func BindFlags(flags *pflag.FlagSet) {
	var flagvar bool
	flags.BoolVar(&flagvar, "debug", false, "Enable debug logging")

	flags.Bool("security.safe_mode", true, "Display commands instead of executing them")
	flags.Bool("security.require_confirmation", true, "Ask before executing any command")

	// Note: The main --config / -c flag for specifying the config file path
	// is typically defined directly on the root Cobra command's PersistentFlags.
}

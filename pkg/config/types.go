package config

import "time"

// Config is the fully merged application configuration.
type Config struct {
	Log       LogConfig       `koanf:"log"`
	Security  SecurityConfig  `koanf:"security"`
	Execution ExecutionConfig `koanf:"execution"`
	Workspace WorkspaceConfig `koanf:"workspace"`
}

// LogConfig controls zerolog output.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	File   string `koanf:"file"`
}

// SecurityConfig carries the policy toggles the safety gateway and target
// validator are handed. The gateway never reads these from ambient state;
// callers build an explicit policy value from this struct per call.
type SecurityConfig struct {
	// AllowedTools is the allow-list of base command names permitted to run.
	AllowedTools []string `koanf:"allowed_tools"`

	// SafeMode displays commands without executing them.
	SafeMode bool `koanf:"safe_mode"`

	// RequireConfirmation demands an explicit operator go-ahead before any
	// execution.
	RequireConfirmation bool `koanf:"require_confirmation"`

	// AllowPrivateTargets permits scanning RFC 1918 and loopback space.
	AllowPrivateTargets bool `koanf:"allow_private_targets"`
}

// ExecutionConfig bounds child processes and network probes.
type ExecutionConfig struct {
	// TimeoutSeconds is the hard ceiling for one command execution.
	TimeoutSeconds int `koanf:"timeout_seconds"`

	// ProbeTimeoutSeconds bounds the target reachability probe.
	ProbeTimeoutSeconds int `koanf:"probe_timeout_seconds"`
}

// Timeout returns the execution ceiling as a duration.
func (e ExecutionConfig) Timeout() time.Duration {
	return time.Duration(e.TimeoutSeconds) * time.Second
}

// ProbeTimeout returns the reachability probe ceiling as a duration.
func (e ExecutionConfig) ProbeTimeout() time.Duration {
	return time.Duration(e.ProbeTimeoutSeconds) * time.Second
}

// WorkspaceConfig locates on-disk state (config file, templates, playbooks).
type WorkspaceConfig struct {
	Dir string `koanf:"dir"`
}

// DefaultAllowedTools is the stock allow-list of security tools.
var DefaultAllowedTools = []string{
	"nmap", "nikto", "dirb", "gobuster", "wpscan", "sqlmap",
	"wireshark", "metasploit", "hydra", "john", "hashcat",
	"burpsuite", "aircrack-ng", "maltego", "beef", "zaproxy",
}

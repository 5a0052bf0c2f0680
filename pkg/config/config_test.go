package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper to reset global variables for testing
func resetGlobalConfig() {
	k = nil
	once = sync.Once{}
}

func TestInitGlobalConfig_InitializesKoanfOnce(t *testing.T) {
	resetGlobalConfig()
	InitGlobalConfig()
	assert.NotNil(t, k, "Global koanf instance should be initialized")
}

func TestInitGlobalConfig_IsIdempotent(t *testing.T) {
	resetGlobalConfig()
	InitGlobalConfig()
	firstInstance := k
	InitGlobalConfig()
	secondInstance := k
	assert.Equal(t, firstInstance, secondInstance, "Koanf instance should not change on repeated InitGlobalConfig calls")
}

func TestNewManager_InitializesManagerWithGlobalKoanf(t *testing.T) {
	resetGlobalConfig()
	manager := NewManager()
	assert.NotNil(t, manager, "Manager should not be nil")
	assert.NotNil(t, manager.koanfInstance, "Manager's koanfInstance should not be nil")
	assert.Equal(t, k, manager.koanfInstance, "Manager's koanfInstance should use the global Koanf instance")
}

func TestNewManager_MultipleManagersShareGlobalKoanf(t *testing.T) {
	resetGlobalConfig()
	manager1 := NewManager()
	manager2 := NewManager()
	assert.Equal(t, manager1.koanfInstance, manager2.koanfInstance, "All managers should share the same global Koanf instance")
}

func TestDefaultConfig_ReturnsExpectedDefaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "info", cfg.Log.Level, "Default log level should be 'info'")
	assert.Equal(t, "text", cfg.Log.Format, "Default log format should be 'text'")
	assert.True(t, cfg.Security.SafeMode, "Safe mode should be on by default")
	assert.True(t, cfg.Security.RequireConfirmation, "Confirmation should be required by default")
	assert.True(t, cfg.Security.AllowPrivateTargets, "Private targets should be allowed by default")
	assert.Equal(t, 300, cfg.Execution.TimeoutSeconds, "Default execution ceiling should be five minutes")
	assert.Equal(t, 2, cfg.Execution.ProbeTimeoutSeconds, "Default probe timeout should be two seconds")
	assert.Equal(t, DefaultAllowedTools, cfg.Security.AllowedTools, "Default allow-list should be the stock tool set")
}

func TestDefaultConfig_AllowListCoversCoreTools(t *testing.T) {
	cfg := DefaultConfig()
	for _, tool := range []string{"nmap", "sqlmap", "hydra", "zaproxy"} {
		assert.Contains(t, cfg.Security.AllowedTools, tool)
	}
	assert.Len(t, cfg.Security.AllowedTools, 16)
}

func TestManager_Load_LoadsDefaultsWhenNoFlags(t *testing.T) {
	resetGlobalConfig()
	manager := NewManager()
	err := manager.Load(nil, "")
	assert.NoError(t, err, "Load should not return error when loading defaults")
	cfg := manager.Get()
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Security.SafeMode)
	assert.Equal(t, 300, cfg.Execution.TimeoutSeconds)
}

func TestManager_Load_OverridesWithFlags(t *testing.T) {
	resetGlobalConfig()
	manager := NewManager()
	flags := newTestFlagSet()
	_ = flags.Set("log.level", "error")
	_ = flags.Set("security.safe_mode", "false")
	err := manager.Load(flags, "")
	assert.NoError(t, err, "Load should not return error when loading with flags")
	cfg := manager.Get()
	assert.Equal(t, "error", cfg.Log.Level, "Flag should override log level")
	assert.False(t, cfg.Security.SafeMode, "Flag should override safe mode")
}

func TestManager_Load_DebugFlagSetsLogLevelToDebug(t *testing.T) {
	resetGlobalConfig()
	manager := NewManager()
	flags := newTestFlagSet()
	_ = flags.Set("debug", "true")
	err := manager.Load(flags, "")
	assert.NoError(t, err, "Load should not return error when loading with debug flag")
	cfg := manager.Get()
	assert.Equal(t, "debug", cfg.Log.Level, "Debug flag should set log level to debug")
}

func TestManager_Load_EnvVarsOverrideDefaults(t *testing.T) {
	resetGlobalConfig()

	t.Setenv("KALIAGENT_LOG_LEVEL", "warn")
	t.Setenv("KALIAGENT_SECURITY_SAFE_MODE", "false")
	t.Setenv("KALIAGENT_EXECUTION_TIMEOUT_SECONDS", "60")

	manager := NewManager()
	err := manager.Load(nil, "")
	assert.NoError(t, err, "Load should not return error when loading with env vars")

	cfg := manager.Get()
	assert.Equal(t, "warn", cfg.Log.Level, "ENV var should override log level")
	assert.False(t, cfg.Security.SafeMode, "ENV var should override safe mode")
	assert.Equal(t, 60, cfg.Execution.TimeoutSeconds, "ENV var should map to nested config key")
}

func TestManager_Load_FlagsOverrideEnvVars(t *testing.T) {
	resetGlobalConfig()

	t.Setenv("KALIAGENT_LOG_LEVEL", "warn")

	manager := NewManager()
	flags := newTestFlagSet()
	_ = flags.Set("log.level", "error") // Flag should win over env var

	err := manager.Load(flags, "")
	assert.NoError(t, err, "Load should not return error")

	cfg := manager.Get()
	assert.Equal(t, "error", cfg.Log.Level, "CLI flag should override ENV var")
}

func TestManager_Load_ConfigFileOverridesDefaults(t *testing.T) {
	resetGlobalConfig()

	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	body := "security:\n  safe_mode: false\n  allowed_tools:\n    - nmap\n    - nikto\nexecution:\n  timeout_seconds: 120\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	manager := NewManager()
	err := manager.Load(nil, path)
	require.NoError(t, err, "Load should read the explicit config file")

	cfg := manager.Get()
	assert.False(t, cfg.Security.SafeMode)
	assert.Equal(t, []string{"nmap", "nikto"}, cfg.Security.AllowedTools)
	assert.Equal(t, 120, cfg.Execution.TimeoutSeconds)
	assert.Equal(t, 2, cfg.Execution.ProbeTimeoutSeconds, "Keys absent from the file keep their defaults")
}

func TestManager_Load_MissingExplicitConfigFileFails(t *testing.T) {
	resetGlobalConfig()
	manager := NewManager()
	err := manager.Load(nil, filepath.Join(t.TempDir(), "no-such.yaml"))
	assert.Error(t, err, "An explicitly requested config file must exist")
}

func TestManager_PostProcess_RepairsNonsenseValues(t *testing.T) {
	resetGlobalConfig()

	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	body := "execution:\n  timeout_seconds: -5\n  probe_timeout_seconds: 0\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	manager := NewManager()
	require.NoError(t, manager.Load(nil, path))

	cfg := manager.Get()
	assert.Equal(t, 300, cfg.Execution.TimeoutSeconds, "Nonsense timeout should fall back to default")
	assert.Equal(t, 2, cfg.Execution.ProbeTimeoutSeconds, "Nonsense probe timeout should fall back to default")
}

func TestManager_Get_ReturnsIndependentAllowListCopy(t *testing.T) {
	resetGlobalConfig()
	manager := NewManager()
	_ = manager.Load(nil, "")

	cfg := manager.Get()
	cfg.Security.AllowedTools[0] = "tampered"

	again := manager.Get()
	assert.NotEqual(t, "tampered", again.Security.AllowedTools[0], "Mutating a returned config must not affect the manager")
}

func TestSave_RoundTripsThroughFileSource(t *testing.T) {
	resetGlobalConfig()

	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Security.SafeMode = false
	cfg.Security.AllowedTools = []string{"nmap", "gobuster"}
	cfg.Execution.TimeoutSeconds = 90
	cfg.Workspace.Dir = dir

	require.NoError(t, Save(dir, cfg))

	manager := NewManager()
	require.NoError(t, manager.Load(nil, filepath.Join(dir, ConfigFileName)))

	loaded := manager.Get()
	assert.False(t, loaded.Security.SafeMode)
	assert.Equal(t, []string{"nmap", "gobuster"}, loaded.Security.AllowedTools)
	assert.Equal(t, 90, loaded.Execution.TimeoutSeconds)
	assert.Equal(t, dir, loaded.Workspace.Dir)
}

func TestEnsureWorkspace_CreatesPrivateDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "ws")
	require.NoError(t, EnsureWorkspace(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(0o700), info.Mode().Perm())
}

func TestBindFlags_AddsDebugFlag(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(flags)
	debugFlag := flags.Lookup("debug")
	assert.NotNil(t, debugFlag, "BindFlags should add a 'debug' flag")
	assert.Equal(t, "false", debugFlag.DefValue, "Debug flag should default to false")
}

func TestExecutionConfig_DurationHelpers(t *testing.T) {
	exec := ExecutionConfig{TimeoutSeconds: 300, ProbeTimeoutSeconds: 2}
	assert.Equal(t, "5m0s", exec.Timeout().String())
	assert.Equal(t, "2s", exec.ProbeTimeout().String())
}

func newTestFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log.level", "info", "")
	flags.String("log.format", "text", "")
	flags.Bool("security.safe_mode", true, "")
	flags.Bool("debug", false, "")
	return flags
}

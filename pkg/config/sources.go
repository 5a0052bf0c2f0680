// pkg/config/sources.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix is the prefix recognized on configuration environment variables.
const EnvPrefix = "KALIAGENT_"

// ConfigFileName is the config file looked up inside the workspace directory.
const ConfigFileName = "config.yaml"

// ConfigSource is a single configuration provider in the loading chain.
// Sources are loaded in ascending Priority order; later loads override
// earlier values key by key.
type ConfigSource interface {
	Name() string
	Priority() int
	Load(k *koanf.Koanf) error
}

// Source priorities, lowest loads first.
const (
	priorityDefaults = 10
	priorityFile     = 20
	priorityEnv      = 30
	priorityFlags    = 40
	priorityDebug    = 50
)

// defaultsSource seeds the baseline configuration from DefaultConfigAsMap.
type defaultsSource struct{}

func (defaultsSource) Name() string  { return "defaults" }
func (defaultsSource) Priority() int { return priorityDefaults }
func (defaultsSource) Load(k *koanf.Koanf) error {
	return k.Load(confmap.Provider(DefaultConfigAsMap(), "."), nil)
}

// fileSource loads a YAML config file. A missing file is only an error when
// the path was explicitly requested.
type fileSource struct {
	path     string
	explicit bool
}

func (s fileSource) Name() string  { return fmt.Sprintf("file %s", s.path) }
func (s fileSource) Priority() int { return priorityFile }
func (s fileSource) Load(k *koanf.Koanf) error {
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) && !s.explicit {
			return nil
		}
		return err
	}
	return k.Load(file.Provider(s.path), yaml.Parser())
}

// envSource maps KALIAGENT_* environment variables onto config keys.
// The prefix is stripped, the rest lowercased, and single underscores
// become dots for the first segment only, so KALIAGENT_SECURITY_SAFE_MODE
// lands on security.safe_mode.
type envSource struct{}

func (envSource) Name() string  { return "environment" }
func (envSource) Priority() int { return priorityEnv }
func (envSource) Load(k *koanf.Koanf) error {
	return k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		// Section and leaf are separated at the first underscore; leaves keep
		// their own underscores (safe_mode, allowed_tools).
		if i := strings.Index(key, "_"); i > 0 {
			return key[:i] + "." + key[i+1:]
		}
		return key
	}), nil)
}

// flagSource overrides config values from a pflag set. Only flags the user
// actually changed take effect.
type flagSource struct {
	flags *pflag.FlagSet
}

func (flagSource) Name() string  { return "flags" }
func (flagSource) Priority() int { return priorityFlags }
func (s flagSource) Load(k *koanf.Koanf) error {
	return k.Load(posflag.Provider(s.flags, ".", k), nil)
}

// debugSource forces debug logging when --debug was given. Highest priority
// so it wins over an explicit log.level from any other source.
type debugSource struct{}

func (debugSource) Name() string  { return "debug override" }
func (debugSource) Priority() int { return priorityDebug }
func (debugSource) Load(k *koanf.Koanf) error {
	return k.Load(confmap.Provider(map[string]any{"log.level": "debug"}, "."), nil)
}

// DefaultSources builds the standard source chain: defaults, workspace config
// file (or customConfigFilePath when given), environment, flags, and the
// debug override.
func DefaultSources(customConfigFilePath string, flags *pflag.FlagSet, debug bool) []ConfigSource {
	path := customConfigFilePath
	explicit := path != ""
	if !explicit {
		path = filepath.Join(DefaultWorkspaceDir(), ConfigFileName)
	}

	sources := []ConfigSource{
		defaultsSource{},
		fileSource{path: path, explicit: explicit},
		envSource{},
	}
	if flags != nil {
		sources = append(sources, flagSource{flags: flags})
	}
	if debug {
		sources = append(sources, debugSource{})
	}
	return sources
}

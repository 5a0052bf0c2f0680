// Package appctx moves application-scoped values through context without the
// command tree and the service layer importing each other.
package appctx

import (
	"context"

	"github.com/kaliagent/kaliagent/pkg/config"
)

type contextKey string

const configKey contextKey = "config"

// WithConfig attaches the loaded configuration to ctx.
func WithConfig(ctx context.Context, cfg config.Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// ConfigFrom extracts the configuration from ctx. Falls back to defaults when
// none was attached, so library code never observes a zero config.
func ConfigFrom(ctx context.Context) config.Config {
	if cfg, ok := ctx.Value(configKey).(config.Config); ok {
		return cfg
	}
	return config.DefaultConfig()
}

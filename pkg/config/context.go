package config

import (
	"context"
	"sync"

	"github.com/finbench/pixiu-adapters/pkg/logger"
)

// ContextKey is an alias used for storing values in context
type ContextKey string

const (
	// ConfigCtxKey is the context key used to store the active *Config
	ConfigCtxKey ContextKey = "config"
)

// ContextWithConfig stores the configuration in the context
func ContextWithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ConfigCtxKey, cfg)
}

var defaultConfig *Config
var defaultConfigOnce sync.Once

// FromContext returns the active configuration for the provided context.
// If none is attached it falls back to a lazily-initialized default loaded
// from built-in defaults plus environment overrides, mirroring the logger
// package behavior so components always have a usable configuration.
func FromContext(ctx context.Context) *Config {
	if ctx != nil {
		if cfg, ok := ctx.Value(ConfigCtxKey).(*Config); ok && cfg != nil {
			return cfg
		}
	}
	return getDefaultConfig(ctx)
}

func getDefaultConfig(ctx context.Context) *Config {
	defaultConfigOnce.Do(func() {
		cfg, err := NewService().Load(ctx)
		if err != nil {
			log := logger.FromContext(ctx)
			log.Warn("failed to load configuration, using built-in defaults", "error", err)
			cfg = Default()
		}
		defaultConfig = cfg
	})
	return defaultConfig
}

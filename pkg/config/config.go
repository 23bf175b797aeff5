package config

import (
	"time"
)

// Config represents the complete configuration for the adapter CLI.
// It provides type-safe access to all configuration values with validation.
type Config struct {
	HuggingFace HuggingFaceConfig `koanf:"huggingface" validate:"required"`
	Runtime     RuntimeConfig     `koanf:"runtime"     validate:"required"`
}

// HuggingFaceConfig contains settings for the datasets-server API.
type HuggingFaceConfig struct {
	BaseURL    string          `koanf:"base_url"    validate:"required,url"       env:"HF_BASE_URL"`
	Token      SensitiveString `koanf:"token"                                     env:"HF_TOKEN"       sensitive:"true"`
	ConfigName string          `koanf:"config_name" validate:"required"           env:"HF_CONFIG_NAME"`
	PageSize   int             `koanf:"page_size"   validate:"min=1,max=100"      env:"HF_PAGE_SIZE"`
	Timeout    time.Duration   `koanf:"timeout"                                   env:"HF_TIMEOUT"`
}

// RuntimeConfig contains runtime behavior configuration.
type RuntimeConfig struct {
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn error" env:"RUNTIME_LOG_LEVEL"`
	LogJSON  bool   `koanf:"log_json"                                         env:"RUNTIME_LOG_JSON"`
}

// Default returns the built-in configuration values. Environment variables
// override these during Load.
func Default() *Config {
	return &Config{
		HuggingFace: HuggingFaceConfig{
			BaseURL:    "https://datasets-server.huggingface.co",
			ConfigName: "default",
			PageSize:   100,
			Timeout:    30 * time.Second,
		},
		Runtime: RuntimeConfig{
			LogLevel: "info",
			LogJSON:  false,
		},
	}
}

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type envConfig struct {
	ServerEndpointAddr *string        `env:"INFLUENCE_SERVER_ADDR"`
	Privileged         *bool          `env:"INFLUENCE_GM"`
	CacheDSN           *string        `env:"INFLUENCE_CACHE_DSN"`
	ReconnectInterval  *time.Duration `env:"INFLUENCE_RECONNECT_INTERVAL"`
	EmitTimeout        *time.Duration `env:"INFLUENCE_EMIT_TIMEOUT"`
	LogFormat          *string        `env:"INFLUENCE_LOG_FORMAT"`
	LogLevel           *string        `env:"INFLUENCE_LOG_LEVEL"`
}

// parseEnv overlays cfg with INFLUENCE_* variables; unset ones are skipped.
func parseEnv(cfg *Config) {
	var e envConfig
	if err := env.Parse(&e); err != nil {
		panic(fmt.Errorf("parse env: %w", err))
	}

	if e.ServerEndpointAddr != nil {
		cfg.ServerEndpointAddr = *e.ServerEndpointAddr
	}
	if e.Privileged != nil {
		cfg.Privileged = *e.Privileged
	}
	if e.CacheDSN != nil {
		cfg.CacheDSN = *e.CacheDSN
	}
	if e.ReconnectInterval != nil {
		cfg.ReconnectInterval = *e.ReconnectInterval
	}
	if e.EmitTimeout != nil {
		cfg.EmitTimeout = *e.EmitTimeout
	}
	if e.LogFormat != nil {
		cfg.LogFormat = *e.LogFormat
	}
	if e.LogLevel != nil {
		cfg.LogLevel = *e.LogLevel
	}
}

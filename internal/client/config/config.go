package config

import "time"

// Config holds runtime settings for the influence client.
//
// Fields:
//   - ServerEndpointAddr: host:port of the server gRPC endpoint.
//   - Privileged: run as the operator (GM) instead of an observer.
//   - CacheDSN: SQLite file holding the last received snapshot.
//   - ReconnectInterval: delay between attempts to re-open the snapshot stream.
//   - EmitTimeout: deadline for one outbound event.
//   - LogFormat / LogLevel: logging backend ("slog" or "zap") and level.
type Config struct {
	ServerEndpointAddr string
	Privileged         bool
	CacheDSN           string
	ReconnectInterval  time.Duration
	EmitTimeout        time.Duration
	LogFormat          string
	LogLevel           string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.Privileged = false
	c.CacheDSN = "influence.db"
	c.ReconnectInterval = 3 * time.Second
	c.EmitTimeout = 5 * time.Second
	c.LogFormat = "slog"
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), INFLUENCE_* environment variables and command-line
// flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

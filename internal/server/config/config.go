// Package config handles configuration for the server component: defaults,
// an optional JSON file, environment variables and command-line flags, in
// that order of precedence (later wins).
package config

import "time"

// Config holds runtime settings for the influence server.
//
// Fields:
//   - EndpointAddrGRPC: bind address for the gRPC endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty keeps profiles in memory.
//   - SecretKey: HMAC secret for signing operator JWTs (HS256).
//   - OperatorPassphrase: passphrase the GM client logs in with.
//   - AccessTokenValidityDuration: operator token lifetime.
//   - S3RootUser / S3RootPassword / S3Bucket / S3Region / S3BaseEndpoint:
//     object storage for photos. An empty S3BaseEndpoint stores photos in UploadDir.
//   - UploadDir: local photo directory.
//   - LogFormat / LogLevel: logging backend ("slog" or "zap") and level.
type Config struct {
	EndpointAddrGRPC            string
	DatabaseDSN                 string
	SecretKey                   string
	OperatorPassphrase          string
	AccessTokenValidityDuration time.Duration
	S3RootUser                  string
	S3RootPassword              string
	S3Bucket                    string
	S3Region                    string
	S3BaseEndpoint              string
	UploadDir                   string
	LogFormat                   string
	LogLevel                    string
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret and passphrase must be overridden outside development.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.OperatorPassphrase = "gretchen"
	c.AccessTokenValidityDuration = 12 * time.Hour
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "portraits"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = ""
	c.UploadDir = "static/uploads"
	c.LogFormat = "slog"
	c.LogLevel = "info"
}

// LoadConfig builds a Config from defaults, then the JSON file, then the
// environment, then command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

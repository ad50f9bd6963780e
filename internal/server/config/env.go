package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig lists the environment variables the server reads. Unset
// variables keep the value from earlier sources.
type envConfig struct {
	EndpointAddrGRPC            *string        `env:"INFLUENCE_GRPC_ADDR"`
	DatabaseDSN                 *string        `env:"INFLUENCE_DATABASE_DSN"`
	SecretKey                   *string        `env:"INFLUENCE_SECRET_KEY"`
	OperatorPassphrase          *string        `env:"INFLUENCE_OPERATOR_PASSPHRASE"`
	AccessTokenValidityDuration *time.Duration `env:"INFLUENCE_TOKEN_TTL"`
	S3RootUser                  *string        `env:"INFLUENCE_S3_USER"`
	S3RootPassword              *string        `env:"INFLUENCE_S3_PASSWORD"`
	S3Bucket                    *string        `env:"INFLUENCE_S3_BUCKET"`
	S3Region                    *string        `env:"INFLUENCE_S3_REGION"`
	S3BaseEndpoint              *string        `env:"INFLUENCE_S3_ENDPOINT"`
	UploadDir                   *string        `env:"INFLUENCE_UPLOAD_DIR"`
	LogFormat                   *string        `env:"INFLUENCE_LOG_FORMAT"`
	LogLevel                    *string        `env:"INFLUENCE_LOG_LEVEL"`
}

// parseEnv overlays config with INFLUENCE_* variables. A malformed value panics,
// matching the JSON and flag loaders.
func parseEnv(config *Config) {
	var e envConfig
	if err := env.Parse(&e); err != nil {
		panic(fmt.Errorf("parse env: %w", err))
	}

	setString(&config.EndpointAddrGRPC, e.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, e.DatabaseDSN)
	setString(&config.SecretKey, e.SecretKey)
	setString(&config.OperatorPassphrase, e.OperatorPassphrase)
	if e.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = *e.AccessTokenValidityDuration
	}
	setString(&config.S3RootUser, e.S3RootUser)
	setString(&config.S3RootPassword, e.S3RootPassword)
	setString(&config.S3Bucket, e.S3Bucket)
	setString(&config.S3Region, e.S3Region)
	setString(&config.S3BaseEndpoint, e.S3BaseEndpoint)
	setString(&config.UploadDir, e.UploadDir)
	setString(&config.LogFormat, e.LogFormat)
	setString(&config.LogLevel, e.LogLevel)
}

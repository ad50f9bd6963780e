// Package config loads runtime configuration for the influence client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the server gRPC endpoint
//	-gm         operator mode; the passphrase is asked for at startup
//	-db string  SQLite snapshot cache
//	-i int      reconnect interval (seconds)
//	-w int      emit timeout (seconds)
//	-l string   log format (slog|zap)
//	-v string   log level
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "privileged": true,
//	  "cache_dsn": "influence.db",
//	  "reconnect_interval": "3s",
//	  "emit_timeout": "5s"
//	}
package config

package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/influence/internal/flagx"
	"github.com/dmitrijs2005/influence/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Intervals
// accept strings like "3s" or integer nanoseconds (timex.Duration).
// Missing keys leave the current value untouched.
type JsonConfig struct {
	ServerEndpointAddr *string         `json:"server_endpoint_addr"`
	Privileged         *bool           `json:"privileged"`
	CacheDSN           *string         `json:"cache_dsn"`
	ReconnectInterval  *timex.Duration `json:"reconnect_interval"`
	EmitTimeout        *timex.Duration `json:"emit_timeout"`
	LogFormat          *string         `json:"log_format"`
	LogLevel           *string         `json:"log_level"`
}

// parseJson overlays cfg with the JSON file named by -c / -config. Read or
// unmarshal errors panic.
func parseJson(cfg *Config) {
	path := flagx.ConfigFile()
	if path == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != nil {
		cfg.ServerEndpointAddr = *jc.ServerEndpointAddr
	}
	if jc.Privileged != nil {
		cfg.Privileged = *jc.Privileged
	}
	if jc.CacheDSN != nil {
		cfg.CacheDSN = *jc.CacheDSN
	}
	if jc.ReconnectInterval != nil {
		cfg.ReconnectInterval = jc.ReconnectInterval.Duration
	}
	if jc.EmitTimeout != nil {
		cfg.EmitTimeout = jc.EmitTimeout.Duration
	}
	if jc.LogFormat != nil {
		cfg.LogFormat = *jc.LogFormat
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
}

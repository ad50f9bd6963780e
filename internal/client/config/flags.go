package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/influence/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   address and port of the server
//	-gm         run as the operator
//	-db string  snapshot cache file
//	-i int      reconnect interval in seconds
//	-w int      emit timeout in seconds
//	-l string   log format (slog|zap)
//	-v string   log level
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-db", "-i", "-w", "-l", "-v"}, "-gm")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	fs.BoolVar(&cfg.Privileged, "gm", cfg.Privileged, "run as the operator")
	fs.StringVar(&cfg.CacheDSN, "db", cfg.CacheDSN, "snapshot cache file")
	reconnect := fs.Int("i", int(cfg.ReconnectInterval.Seconds()), "reconnect interval (in seconds)")
	emitTimeout := fs.Int("w", int(cfg.EmitTimeout.Seconds()), "emit timeout (in seconds)")
	fs.StringVar(&cfg.LogFormat, "l", cfg.LogFormat, "log format (slog|zap)")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.ReconnectInterval = time.Duration(*reconnect) * time.Second
	cfg.EmitTimeout = time.Duration(*emitTimeout) * time.Second
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseEnv(t *testing.T) {
	t.Run("overrides set variables only", func(t *testing.T) {
		t.Setenv("INFLUENCE_GM", "true")
		t.Setenv("INFLUENCE_EMIT_TIMEOUT", "2s")

		cfg := &Config{}
		cfg.LoadDefaults()
		parseEnv(cfg)

		assert.True(t, cfg.Privileged)
		assert.Equal(t, 2*time.Second, cfg.EmitTimeout)
		assert.Equal(t, "influence.db", cfg.CacheDSN)
	})

	t.Run("bad bool panics", func(t *testing.T) {
		t.Setenv("INFLUENCE_GM", "sometimes")

		cfg := &Config{}
		require.Panics(t, func() { parseEnv(cfg) })
	})
}

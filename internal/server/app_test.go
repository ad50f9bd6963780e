package server

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/influence/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrGRPC = "127.0.0.1:0"
	c.UploadDir = t.TempDir()
	c.LogLevel = "error"
	return c
}

func TestNewApp_InMemory(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(t))
	require.NoError(t, err)

	assert.NotNil(t, app.profiles)
	assert.NotNil(t, app.photos)
	assert.NotNil(t, app.operator)
	assert.Empty(t, app.profiles.Snapshot())

	tok, err := app.operator.Login("gretchen")
	require.NoError(t, err)
	assert.NotEmpty(t, tok)
}

func TestNewApp_BadUploadDir(t *testing.T) {
	c := testConfig(t)
	c.UploadDir = "/dev/null/uploads"

	_, err := NewApp(context.Background(), c)
	assert.Error(t, err)
}

func TestRun_StopsOnCancel(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop")
	}
}

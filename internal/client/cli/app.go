package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/influence/internal/client/cache"
	"github.com/dmitrijs2005/influence/internal/client/client"
	"github.com/dmitrijs2005/influence/internal/client/config"
	"github.com/dmitrijs2005/influence/internal/client/session"
	"github.com/dmitrijs2005/influence/internal/cryptox"
	"github.com/dmitrijs2005/influence/internal/logging"
	"github.com/dmitrijs2005/influence/internal/model"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// snapshotCache is the part of cache.Cache the App uses.
type snapshotCache interface {
	Load(ctx context.Context) ([]model.Profile, error)
	Store(ctx context.Context, snapshot []model.Profile) error
	Close() error
}

var _ session.Emitter = (*client.Outbox)(nil)

// getPassword is an indirection used to facilitate testing.
var getPassword = GetPassword

type App struct {
	config  *config.Config
	log     logging.Logger
	client  client.Client
	outbox  *client.Outbox
	cache   snapshotCache
	session *session.Session
	in      *bufio.Scanner
	out     io.Writer

	mu   sync.Mutex
	mode Mode
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogFormat, c.LogLevel, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	apiClient, err := client.NewProfileClient(c.ServerEndpointAddr, c.ReconnectInterval, logger.With("module", "client"))
	if err != nil {
		return nil, err
	}

	outbox := client.NewOutbox(apiClient, c.EmitTimeout, logger.With("module", "outbox"))
	app := &App{
		config:  c,
		log:     logger,
		client:  apiClient,
		outbox:  outbox,
		session: session.New(c.Privileged, outbox, apiClient, logger.With("module", "session")),
		in:      bufio.NewScanner(os.Stdin),
		out:     os.Stdout,
		mode:    ModeOffline,
	}

	if c.CacheDSN != "" {
		store, err := cache.Open(ctx, c.CacheDSN)
		if err != nil {
			logger.Warn(ctx, "snapshot cache unavailable", "error", err)
		} else {
			app.cache = store
		}
	}

	return app, nil
}

// Run logs the operator in, starts the background workers and blocks in
// the REPL until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	defer a.close()

	if a.session.Privileged() {
		if err := a.login(ctx); err != nil {
			return err
		}
	}
	a.seedFromCache(ctx)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		a.outbox.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		a.follow(ctx)
	}()
	go func() {
		defer wg.Done()
		a.StartOnlineStatusWatcher(ctx, a.config.ReconnectInterval)
	}()

	fmt.Fprintln(a.out, "Welcome to the influence board (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.in)

	cancel()
	wg.Wait()
	return nil
}

func (a *App) login(ctx context.Context) error {
	passphrase, err := getPassword(a.out)
	if err != nil {
		return fmt.Errorf("read passphrase: %w", err)
	}
	defer cryptox.Wipe(passphrase)

	if err := a.client.Login(ctx, string(passphrase)); err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			return errors.New("wrong operator passphrase")
		}
		return fmt.Errorf("login: %w", err)
	}
	a.log.Info(ctx, "operator logged in")
	return nil
}

func (a *App) seedFromCache(ctx context.Context) {
	if a.cache == nil {
		return
	}
	snapshot, err := a.cache.Load(ctx)
	if err != nil {
		a.log.Warn(ctx, "cached snapshot unreadable", "error", err)
		return
	}
	if len(snapshot) > 0 {
		a.session.Seed(snapshot)
	}
}

// follow feeds pushed snapshots into the session and the cache.
func (a *App) follow(ctx context.Context) {
	err := a.client.Subscribe(ctx, func(snapshot []model.Profile) {
		a.session.ApplySnapshot(snapshot)
		a.setMode(ModeOnline)
		if a.cache == nil {
			return
		}
		if err := a.cache.Store(ctx, snapshot); err != nil {
			a.log.Warn(ctx, "snapshot not cached", "error", err)
		}
	})
	if err != nil {
		a.log.Error(ctx, "snapshot stream stopped", "error", err)
	}
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mode != mode {
		a.mode = mode
		a.log.Info(context.Background(), "connection state changed", "mode", mode)
	}
}

func (a *App) currentMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

// StartOnlineStatusWatcher pings the server every interval and tracks
// whether it is reachable.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, interval)
			err := a.client.Ping(pingCtx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}

func (a *App) status() string {
	role := "observer"
	if a.session.Privileged() {
		role = "operator"
	}
	s := fmt.Sprintf("%s %s", role, a.currentMode())
	if i, ok := a.session.Editing(); ok {
		s += fmt.Sprintf(", editing #%d", i+1)
	} else if a.session.PendingCreation() {
		s += ", creating"
	}
	return "(" + s + ")"
}

func (a *App) close() {
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.log.Warn(context.Background(), "cache close error", "error", err)
		}
	}
	if a.client != nil {
		if err := a.client.Close(); err != nil {
			a.log.Warn(context.Background(), "connection close error", "error", err)
		}
	}
	if z, ok := a.log.(*logging.ZapLogger); ok {
		_ = z.Sync()
	}
}

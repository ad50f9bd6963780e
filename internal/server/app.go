// Package server wires the influence server together: storage backend,
// photo storage, operator auth, snapshot hub and the gRPC endpoint.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/influence/internal/logging"
	"github.com/dmitrijs2005/influence/internal/server/auth"
	"github.com/dmitrijs2005/influence/internal/server/config"
	gs "github.com/dmitrijs2005/influence/internal/server/grpc"
	"github.com/dmitrijs2005/influence/internal/server/hub"
	"github.com/dmitrijs2005/influence/internal/server/photos"
	"github.com/dmitrijs2005/influence/internal/server/profiles"
	profilerepo "github.com/dmitrijs2005/influence/internal/server/repositories/profiles"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	hub      *hub.Hub
	profiles *profiles.Service
	photos   *photos.Uploader
	operator *auth.Operator
	closers  []func() error
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogFormat, c.LogLevel, os.Stdout)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	app := &App{config: c, logger: logger, hub: hub.New()}

	repo, err := app.openRepository(ctx)
	if err != nil {
		return nil, err
	}

	app.profiles, err = profiles.NewService(ctx, repo, app.hub, logger.With("module", "profiles"))
	if err != nil {
		app.close()
		return nil, fmt.Errorf("profile service init error: %w", err)
	}

	storage, err := app.openPhotoStorage(ctx)
	if err != nil {
		app.close()
		return nil, err
	}
	app.photos = photos.NewUploader(storage, logger.With("module", "photos"))

	app.operator, err = auth.NewOperator(c.OperatorPassphrase, []byte(c.SecretKey), c.AccessTokenValidityDuration)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("operator auth init error: %w", err)
	}

	return app, nil
}

func (app *App) openRepository(ctx context.Context) (profilerepo.Repository, error) {
	if app.config.DatabaseDSN == "" {
		app.logger.Warn(ctx, "no database configured, profiles are kept in memory")
		return profilerepo.NewMemoryRepository(), nil
	}

	store, err := profilerepo.OpenPostgres(ctx, app.config.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	app.closers = append(app.closers, store.Close)
	return store, nil
}

func (app *App) openPhotoStorage(ctx context.Context) (photos.Storage, error) {
	if app.config.S3BaseEndpoint == "" {
		s, err := photos.NewDirStorage(app.config.UploadDir)
		if err != nil {
			return nil, fmt.Errorf("upload dir init error: %w", err)
		}
		app.logger.Info(ctx, "photos stored locally", "dir", s.Dir())
		return s, nil
	}

	s, err := photos.NewS3Storage(ctx, photos.S3Config{
		User:         app.config.S3RootUser,
		Password:     app.config.S3RootPassword,
		Bucket:       app.config.S3Bucket,
		Region:       app.config.S3Region,
		BaseEndpoint: app.config.S3BaseEndpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("s3 init error: %w", err)
	}
	return s, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.profiles, app.photos, app.operator, app.hub)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.close()
	app.logger.Info(context.Background(), "App stopped")
	if z, ok := app.logger.(*logging.ZapLogger); ok {
		_ = z.Sync()
	}
}

func (app *App) close() {
	for _, c := range app.closers {
		if err := c(); err != nil {
			app.logger.Error(context.Background(), "close error", "error", err)
		}
	}
	app.closers = nil
}

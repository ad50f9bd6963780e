// Package cache keeps the last received snapshot in a local SQLite file so
// the client has something to show before the server stream is up.
package cache

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/influence/internal/client/migrations"
	"github.com/dmitrijs2005/influence/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/influence/internal/client/repositories/snapshots"
	"github.com/dmitrijs2005/influence/internal/dbx"
	"github.com/dmitrijs2005/influence/internal/model"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

type Cache struct {
	db  *sql.DB
	now func() time.Time
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Open opens (creating if needed) the SQLite cache at dsn and applies
// migrations.
func Open(ctx context.Context, dsn string) (*Cache, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cache open error: %w", err)
	}
	db.SetMaxOpenConns(1)

	c := &Cache{db: db, now: time.Now}
	if err := c.RunMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("cache migration error: %w", err)
	}
	return c, nil
}

// RunMigrations applies the embedded goose migrations.
func (c *Cache) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return gooseUpContext(ctx, c.db, ".")
}

// Store replaces the cached snapshot and stamps its time.
func (c *Cache) Store(ctx context.Context, snapshot []model.Profile) error {
	return dbx.WithTx(ctx, c.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := snapshots.NewSQLiteRepository(tx).Replace(ctx, snapshot); err != nil {
			return err
		}
		stamp := c.now().UTC().Format(time.RFC3339)
		return metadata.NewSQLiteRepository(tx).Set(ctx, metadata.LastSnapshotAt, stamp)
	})
}

// Load returns the cached snapshot, empty if nothing was stored yet.
func (c *Cache) Load(ctx context.Context) ([]model.Profile, error) {
	return snapshots.NewSQLiteRepository(c.db).List(ctx)
}

// LastSnapshotAt reports when Store last succeeded.
func (c *Cache) LastSnapshotAt(ctx context.Context) (time.Time, bool, error) {
	v, ok, err := metadata.NewSQLiteRepository(c.db).Get(ctx, metadata.LastSnapshotAt)
	if err != nil || !ok {
		return time.Time{}, false, err
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("bad %s value %q: %w", metadata.LastSnapshotAt, v, err)
	}
	return t, true, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

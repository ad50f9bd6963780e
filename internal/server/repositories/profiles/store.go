package profiles

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/influence/internal/dbx"
	"github.com/dmitrijs2005/influence/internal/model"
	"github.com/dmitrijs2005/influence/internal/server/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresStore owns the connection pool and runs multi-statement
// operations in transactions.
type PostgresStore struct {
	db *sql.DB
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// sqlOpen is a seam for testing sql.Open.
var sqlOpen = sql.Open

// OpenPostgres connects to dsn through the pgx driver and applies migrations.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sqlOpen("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	s := NewPostgresStore(db)
	if err := s.RunMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return s, nil
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// RunMigrations applies the embedded goose migrations.
func (s *PostgresStore) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, s.db, ".")
}

func (s *PostgresStore) List(ctx context.Context) ([]model.Profile, error) {
	return NewPostgresRepository(s.db).List(ctx)
}

func (s *PostgresStore) Append(ctx context.Context, p model.Profile) error {
	return NewPostgresRepository(s.db).Append(ctx, p)
}

func (s *PostgresStore) Replace(ctx context.Context, p model.Profile) error {
	return NewPostgresRepository(s.db).Replace(ctx, p)
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return NewPostgresRepository(tx).Delete(ctx, id)
	})
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

var (
	_ Repository = (*PostgresRepository)(nil)
	_ Repository = (*PostgresStore)(nil)
	_ Repository = (*MemoryRepository)(nil)
)

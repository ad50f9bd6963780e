// Package snapshots persists the last profiles_updated snapshot in the
// client's SQLite cache.
package snapshots

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/influence/internal/dbx"
	"github.com/dmitrijs2005/influence/internal/model"
)

type Repository interface {
	Replace(ctx context.Context, snapshot []model.Profile) error
	List(ctx context.Context) ([]model.Profile, error)
}

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Replace overwrites the stored snapshot. Callers wrap it in a transaction.
func (r *SQLiteRepository) Replace(ctx context.Context, snapshot []model.Profile) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM snapshot_profiles`); err != nil {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}
	for i, p := range snapshot {
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to encode profile %d: %w", i, err)
		}
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO snapshot_profiles (position, id, version, data) VALUES (?, ?, ?, ?)`,
			i, p.ID, p.Version, string(data))
		if err != nil {
			return fmt.Errorf("failed to store profile %d: %w", i, err)
		}
	}
	return nil
}

// List returns the stored snapshot in display order.
func (r *SQLiteRepository) List(ctx context.Context) ([]model.Profile, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, version, data FROM snapshot_profiles ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshot: %w", err)
	}
	defer rows.Close()

	out := []model.Profile{}
	for rows.Next() {
		var (
			id      string
			version int64
			data    string
		)
		if err := rows.Scan(&id, &version, &data); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		var p model.Profile
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			return nil, fmt.Errorf("failed to decode cached profile %q: %w", id, err)
		}
		p.ID, p.Version = id, version
		p.Normalize()
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshot rows: %w", err)
	}
	return out, nil
}

var _ Repository = (*SQLiteRepository)(nil)

package profiles

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/influence/internal/common"
	"github.com/dmitrijs2005/influence/internal/dbx"
	"github.com/dmitrijs2005/influence/internal/model"
)

// PostgresRepository stores profiles over a dbx.DBTX (*sql.DB or *sql.Tx).
// The record body lives in a jsonb column; id and version have their own
// columns and are authoritative.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]model.Profile, error) {
	query := `SELECT id, version, data FROM profiles ORDER BY position`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select profiles: %w", err)
	}
	defer rows.Close()

	result := []model.Profile{}
	for rows.Next() {
		var (
			id      string
			version int64
			data    []byte
		)
		if err := rows.Scan(&id, &version, &data); err != nil {
			return nil, err
		}
		var p model.Profile
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("decode profile %s: %w", id, err)
		}
		p.ID = id
		p.Version = version
		p.Normalize()
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Append(ctx context.Context, p model.Profile) error {
	query := `
		INSERT INTO profiles (id, position, version, data)
		SELECT $1, COALESCE(MAX(position), -1) + 1, $2, $3 FROM profiles
	`
	data, err := encodeBody(p)
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, p.ID, p.Version, data); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Replace(ctx context.Context, p model.Profile) error {
	query := `UPDATE profiles SET version = $2, data = $3 WHERE id = $1`

	data, err := encodeBody(p)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, p.ID, p.Version, data)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

// Delete issues two statements; run it inside a transaction (see PostgresStore).
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	var position int
	err := r.db.QueryRowContext(ctx, `DELETE FROM profiles WHERE id = $1 RETURNING position`, id).Scan(&position)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `UPDATE profiles SET position = position - 1 WHERE position > $1`, position); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// encodeBody serializes p without id and version.
func encodeBody(p model.Profile) (string, error) {
	p.ID = ""
	p.Version = 0
	b, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode profile: %w", err)
	}
	return string(b), nil
}

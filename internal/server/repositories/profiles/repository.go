// Package profiles persists the ordered profile collection.
//
// Order is kept in a position column; records are addressed by their id.
package profiles

import (
	"context"

	"github.com/dmitrijs2005/influence/internal/model"
)

// Repository is the storage contract used by the profiles service.
type Repository interface {
	// List returns every record in display order.
	List(ctx context.Context) ([]model.Profile, error)
	// Append stores p after the last record.
	Append(ctx context.Context, p model.Profile) error
	// Replace overwrites the record with p.ID. Missing ids yield common.ErrorNotFound.
	Replace(ctx context.Context, p model.Profile) error
	// Delete removes the record with the given id and closes the gap in
	// positions. Missing ids yield common.ErrorNotFound.
	Delete(ctx context.Context, id string) error
}

package metadata

import (
	"context"
)

// Repository is a small key/value table for client bookkeeping such as the
// time of the last cached snapshot.
type Repository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}

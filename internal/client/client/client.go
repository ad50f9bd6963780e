package client

import (
	"context"

	"github.com/dmitrijs2005/influence/internal/model"
)

type Client interface {
	Close() error
	Login(ctx context.Context, passphrase string) error
	Ping(ctx context.Context) error
	Emit(ctx context.Context, event string, payload any) error
	UploadPhoto(ctx context.Context, filename string, data []byte) (string, error)
	Subscribe(ctx context.Context, apply func([]model.Profile)) error
}

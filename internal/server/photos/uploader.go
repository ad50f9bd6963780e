package photos

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/influence/internal/common"
	"github.com/dmitrijs2005/influence/internal/filex"
	"github.com/dmitrijs2005/influence/internal/logging"
	"github.com/google/uuid"
)

// ErrUnsupportedType is returned for file names outside the allowed extensions.
var ErrUnsupportedType = fmt.Errorf("%w: unsupported photo type", common.ErrorInvalidPayload)

var contentTypes = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
}

// Allowed reports whether filename has an accepted image extension.
func Allowed(filename string) bool {
	_, ok := contentTypes[filex.Ext(filename)]
	return ok
}

// newKeyPrefix is a seam for tests.
var newKeyPrefix = func() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Uploader validates, shrinks and stores photos.
type Uploader struct {
	storage Storage
	log     logging.Logger
}

func NewUploader(storage Storage, log logging.Logger) *Uploader {
	return &Uploader{storage: storage, log: log}
}

// Upload stores data under "<random hex>_<sanitized filename>" and returns
// that key. A photo that cannot be thumbnailed is stored unchanged.
func (u *Uploader) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty photo", common.ErrorInvalidPayload)
	}
	if !Allowed(filename) {
		return "", ErrUnsupportedType
	}
	name := filex.SafeName(filename)
	if name == "" || !Allowed(name) {
		return "", ErrUnsupportedType
	}

	if thumb, err := Thumbnail(data, ThumbnailSize); err != nil {
		u.log.Warn(ctx, "thumbnail failed, storing original", "file", name, "error", err)
	} else {
		data = thumb
	}

	key := newKeyPrefix() + "_" + name
	if err := u.storage.Put(ctx, key, contentTypes[filex.Ext(name)], data); err != nil {
		return "", errors.Join(common.ErrorInternal, err)
	}
	u.log.Info(ctx, "photo stored", "key", key, "bytes", len(data))
	return key, nil
}

package photos

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/dmitrijs2005/influence/internal/common"
	"github.com/dmitrijs2005/influence/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStorage struct {
	objects map[string][]byte
	types   map[string]string
	err     error
}

func newMemStorage() *memStorage {
	return &memStorage{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *memStorage) Put(_ context.Context, key, contentType string, data []byte) error {
	if m.err != nil {
		return m.err
	}
	m.objects[key] = data
	m.types[key] = contentType
	return nil
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeSize(t *testing.T, data []byte) (int, int, string) {
	t.Helper()
	img, format, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img.Bounds().Dx(), img.Bounds().Dy(), format
}

func TestAllowed(t *testing.T) {
	for _, name := range []string{"a.png", "a.PNG", "b.jpg", "c.jpeg", "d.gif"} {
		assert.True(t, Allowed(name), name)
	}
	for _, name := range []string{"a.bmp", "noext", "x.png.exe", ""} {
		assert.False(t, Allowed(name), name)
	}
}

func TestThumbnail(t *testing.T) {
	t.Run("landscape png", func(t *testing.T) {
		out, err := Thumbnail(encodePNG(t, 600, 400), 300)
		require.NoError(t, err)
		w, h, format := decodeSize(t, out)
		assert.Equal(t, 300, w)
		assert.Equal(t, 200, h)
		assert.Equal(t, "png", format)
	})

	t.Run("portrait jpeg", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 100, 1000)), nil))

		out, err := Thumbnail(buf.Bytes(), 300)
		require.NoError(t, err)
		w, h, format := decodeSize(t, out)
		assert.Equal(t, 30, w)
		assert.Equal(t, 300, h)
		assert.Equal(t, "jpeg", format)
	})

	t.Run("gif", func(t *testing.T) {
		var buf bytes.Buffer
		pal := image.NewPaletted(image.Rect(0, 0, 900, 900), []color.Color{color.Black, color.White})
		require.NoError(t, gif.Encode(&buf, pal, nil))

		out, err := Thumbnail(buf.Bytes(), 300)
		require.NoError(t, err)
		w, h, format := decodeSize(t, out)
		assert.Equal(t, 300, w)
		assert.Equal(t, 300, h)
		assert.Equal(t, "gif", format)
	})

	t.Run("small image untouched", func(t *testing.T) {
		in := encodePNG(t, 120, 80)
		out, err := Thumbnail(in, 300)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := Thumbnail([]byte("not an image"), 300)
		assert.Error(t, err)
	})
}

func TestUploader_Upload(t *testing.T) {
	orig := newKeyPrefix
	newKeyPrefix = func() string { return "0123456789abcdef0123456789abcdef" }
	t.Cleanup(func() { newKeyPrefix = orig })

	st := newMemStorage()
	u := NewUploader(st, logging.Nop())

	key, err := u.Upload(context.Background(), "../My Portrait.PNG", encodePNG(t, 640, 640))
	require.NoError(t, err)

	assert.Equal(t, "0123456789abcdef0123456789abcdef_My_Portrait.PNG", key)
	assert.Equal(t, "image/png", st.types[key])
	w, h, _ := decodeSize(t, st.objects[key])
	assert.Equal(t, 300, w)
	assert.Equal(t, 300, h)
}

func TestUploader_KeyFormat(t *testing.T) {
	st := newMemStorage()
	u := NewUploader(st, logging.Nop())

	key, err := u.Upload(context.Background(), "face.jpg", []byte("jpeg-ish bytes"))
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{32}_face\.jpg$`), key)
	assert.Equal(t, []byte("jpeg-ish bytes"), st.objects[key], "undecodable data is stored unchanged")
}

func TestUploader_Rejects(t *testing.T) {
	u := NewUploader(newMemStorage(), logging.Nop())
	ctx := context.Background()

	_, err := u.Upload(ctx, "notes.txt", []byte("x"))
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.ErrorIs(t, err, common.ErrorInvalidPayload)

	_, err = u.Upload(ctx, "a.png", nil)
	assert.ErrorIs(t, err, common.ErrorInvalidPayload)

	_, err = u.Upload(ctx, "../.png", []byte("x"))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestUploader_StorageError(t *testing.T) {
	st := newMemStorage()
	st.err = errors.New("bucket gone")
	u := NewUploader(st, logging.Nop())

	_, err := u.Upload(context.Background(), "a.gif", []byte("x"))
	assert.ErrorIs(t, err, common.ErrorInternal)
	assert.ErrorContains(t, err, "bucket gone")
}

func TestDirStorage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	s, err := NewDirStorage(dir)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(s.Dir()))

	require.NoError(t, s.Put(context.Background(), "abc_x.png", "image/png", []byte("data")))
	got, err := os.ReadFile(filepath.Join(dir, "abc_x.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), got)

	for _, bad := range []string{"", "..", "../escape.png", "a/b.png"} {
		assert.Error(t, s.Put(context.Background(), bad, "", []byte("x")), bad)
	}
}

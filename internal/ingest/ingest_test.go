package ingest

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/image/bmp"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func tinyImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	return img
}

func writePNG(t *testing.T) (string, int64) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, tinyImage()))
	p := filepath.Join(t.TempDir(), "tiny.png")
	require.NoError(t, os.WriteFile(p, buf.Bytes(), 0o644))
	return p, int64(buf.Len())
}

func TestReadFileEncodesPNG(t *testing.T) {
	p, size := writePNG(t)
	img, err := ReadFile(p, 0)
	require.NoError(t, err)
	assert.Equal(t, "png", img.Format)
	assert.Equal(t, size, img.Size)
	assert.Equal(t, 4, img.Width)
	assert.Equal(t, 3, img.Height)
	assert.True(t, strings.HasPrefix(img.DataURL, "data:image/png;base64,"))

	raw, mediaType, err := DecodeDataURL(img.DataURL)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mediaType)
	assert.Equal(t, size, int64(len(raw)))
}

func TestReadFileAcceptsBMP(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, tinyImage()))
	img, err := Encode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "bmp", img.Format)
}

func TestReadFileRejectsOversized(t *testing.T) {
	p := filepath.Join(t.TempDir(), "big.png")
	f, err := os.Create(p)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(3<<20))
	require.NoError(t, f.Close())

	_, err = ReadFile(p, MaxImageBytes)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestSizeLimitIsInclusive(t *testing.T) {
	p, size := writePNG(t)
	_, err := ReadFile(p, size)
	assert.NoError(t, err, "a file exactly at the limit is accepted")
	_, err = ReadFile(p, size-1)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestFromReaderCapsUnsizedSources(t *testing.T) {
	_, err := FromReader(bytes.NewReader(make([]byte, 100)), 50)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestReadFileRejectsNonImage(t *testing.T) {
	p := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(p, []byte("just text"), 0o644))
	_, err := ReadFile(p, 0)
	assert.ErrorIs(t, err, ErrNotImage)

	_, err = ReadFile(t.TempDir(), 0)
	assert.ErrorIs(t, err, ErrNotImage)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.png"), 0)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotImage))
}

func TestRequestKeepsTarget(t *testing.T) {
	p, _ := writePNG(t)
	req := Request{Target: 2, Path: p}
	res := <-req.Start(context.Background())
	require.NoError(t, res.Err)
	assert.Equal(t, 2, res.Target)
	assert.Equal(t, p, res.Path)
	assert.NotEmpty(t, res.Image.DataURL)
}

func TestRequestHonoursCancellation(t *testing.T) {
	p, _ := writePNG(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := Request{Target: 4, Path: p}.Run(ctx)
	assert.ErrorIs(t, res.Err, context.Canceled)
	assert.Equal(t, 4, res.Target)
	assert.Empty(t, res.Image.DataURL)
}

func TestDecodeDataURLRejectsGarbage(t *testing.T) {
	for _, u := range []string{"https://x/y.png", "data:image/png;base64", "data:image/png,plain", "data:image/png;base64,@@"} {
		_, _, err := DecodeDataURL(u)
		assert.Error(t, err, u)
	}
}

func TestDecodeDataURLDropsParameters(t *testing.T) {
	raw, mediaType, err := DecodeDataURL("data:image/png;name=logo.png;base64,AAEC")
	require.NoError(t, err)
	assert.Equal(t, "image/png", mediaType)
	assert.Equal(t, []byte{0, 1, 2}, raw)
}

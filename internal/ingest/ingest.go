/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package ingest turns a local image file into a data URL that can be stored
// inline in a slide. Files above the size cap are refused before they are read.
package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"strings"

	// Registered decoders for image.DecodeConfig.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/vincent-petithory/dataurl"

	applog "slidedeck/internal/log"
)

// MaxImageBytes is the default upper bound for an ingested file (2 MiB).
// Files strictly larger are rejected.
const MaxImageBytes int64 = 2 << 20

var (
	ErrTooLarge = errors.New("image is too large")
	ErrNotImage = errors.New("file is not a supported image")
)

// Image is an encoded file ready to be stored in Slide.ImageURL.
type Image struct {
	DataURL string
	Format  string // png, jpeg, gif, bmp, tiff or webp
	Size    int64
	Width   int
	Height  int
}

func limit(maxBytes int64) int64 {
	if maxBytes <= 0 {
		return MaxImageBytes
	}
	return maxBytes
}

// ReadFile stats path, refuses files above maxBytes (0 means MaxImageBytes)
// and encodes the content as a data URL.
func ReadFile(path string, maxBytes int64) (Image, error) {
	maxBytes = limit(maxBytes)
	fi, err := os.Stat(path)
	if err != nil {
		return Image{}, fmt.Errorf("stat image: %w", err)
	}
	if fi.IsDir() {
		return Image{}, fmt.Errorf("%w: %s is a directory", ErrNotImage, path)
	}
	if fi.Size() > maxBytes {
		return Image{}, tooLarge(fi.Size(), maxBytes)
	}
	f, err := os.Open(path)
	if err != nil {
		return Image{}, fmt.Errorf("open image: %w", err)
	}
	defer func() { _ = f.Close() }()
	return FromReader(f, maxBytes)
}

// FromReader reads at most maxBytes+1 bytes from r so that a source without a
// known size is still capped.
func FromReader(r io.Reader, maxBytes int64) (Image, error) {
	maxBytes = limit(maxBytes)
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return Image{}, fmt.Errorf("read image: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return Image{}, tooLarge(int64(len(data)), maxBytes)
	}
	return Encode(data)
}

// Encode checks that data is a decodable image and builds its data URL.
func Encode(data []byte) (Image, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	return Image{
		DataURL: dataurl.New(data, "image/"+format).String(),
		Format:  format,
		Size:    int64(len(data)),
		Width:   cfg.Width,
		Height:  cfg.Height,
	}, nil
}

// DecodeDataURL returns the raw bytes and media type of a base64 data URL.
func DecodeDataURL(u string) ([]byte, string, error) {
	if !strings.HasPrefix(u, "data:") {
		return nil, "", errors.New("not a data URL")
	}
	d, err := dataurl.DecodeString(u)
	if err != nil {
		return nil, "", fmt.Errorf("decode data URL: %w", err)
	}
	if d.Encoding != dataurl.EncodingBase64 {
		return nil, "", errors.New("data URL is not base64 encoded")
	}
	return d.Data, d.ContentType(), nil
}

func tooLarge(size, maxBytes int64) error {
	return fmt.Errorf("%w: %d bytes exceeds the %d byte limit", ErrTooLarge, size, maxBytes)
}

// Request is an upload bound to the slide that was active when it started.
// Navigation after the request is created does not change Target.
type Request struct {
	Target   int
	Path     string
	MaxBytes int64
}

// Result carries the outcome of a Request back to the UI goroutine.
type Result struct {
	Target int
	Path   string
	Image  Image
	Err    error
}

// Run performs the read. Cancellation is checked before and after the read.
func (r Request) Run(ctx context.Context) Result {
	res := Result{Target: r.Target, Path: r.Path}
	l := applog.WithOperation(applog.WithComponent("ingest"), "read").With(
		slog.String("path", r.Path), slog.Int("target", r.Target))
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}
	img, err := ReadFile(r.Path, r.MaxBytes)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		l.Info("image rejected", slog.Any("err", err))
		res.Err = err
		return res
	}
	l.Debug("image encoded", slog.String("format", img.Format), slog.Int64("bytes", img.Size))
	res.Image = img
	return res
}

// Start runs r on its own goroutine. The channel yields exactly one Result
// and is then closed.
func (r Request) Start(ctx context.Context) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		ch <- r.Run(ctx)
	}()
	return ch
}

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"slidedeck/internal/domain"
	"slidedeck/internal/ingest"
)

func embedded(t *testing.T, encode func(*bytes.Buffer, image.Image) error) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	img.Set(2, 2, color.RGBA{G: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, encode(&buf, img))
	enc, err := ingest.Encode(buf.Bytes())
	require.NoError(t, err)
	return enc.DataURL
}

func TestPDFCreatesFile(t *testing.T) {
	slides := domain.DefaultSlides()
	slides[1].ImageURL = embedded(t, func(b *bytes.Buffer, i image.Image) error { return png.Encode(b, i) })
	slides[3].ImageURL = embedded(t, func(b *bytes.Buffer, i image.Image) error { return bmp.Encode(b, i) })

	out := filepath.Join(t.TempDir(), "nested", "handout.pdf")
	require.NoError(t, PDF(slides, out, PDFOptions{Author: "tester"}))

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF-")), "output is not a PDF")
	assert.Greater(t, len(b), 1000)
}

func TestPDFSelectedSlides(t *testing.T) {
	out := filepath.Join(t.TempDir(), "two.pdf")
	require.NoError(t, PDF(domain.DefaultSlides(), out, PDFOptions{Slides: []int{0, 6, 42}, SkipImages: true}))
	st, err := os.Stat(out)
	require.NoError(t, err)
	assert.Positive(t, st.Size())
}

func TestPDFRejectsEmptyInput(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, PDF(nil, filepath.Join(dir, "x.pdf"), PDFOptions{}))
	assert.Error(t, PDF(domain.DefaultSlides(), "", PDFOptions{}))
	assert.Error(t, PDF(domain.DefaultSlides(), filepath.Join(dir, "y.pdf"), PDFOptions{Slides: []int{99}}))
}

func TestBrokenEmbeddedImageIsSkipped(t *testing.T) {
	slides := domain.DefaultSlides()[:1]
	slides[0].ImageURL = "data:image/png;base64,AAAA"
	out := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, PDF(slides, out, PDFOptions{}))
}

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
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"slidedeck/internal/domain"
	"slidedeck/internal/ingest"
	applog "slidedeck/internal/log"
)

// PDFOptions controls the handout export.
// Units are points (pt). Pages are landscape A4 unless Width/Height are set.
// Text uses the built-in Helvetica so nothing needs embedding.
type PDFOptions struct {
	Title      string
	Author     string
	Width      float64
	Height     float64
	SkipImages bool  // draw no images, list URLs only
	Slides     []int // zero-based; empty means all slides
}

const (
	a4LongPt  = 842.0
	a4ShortPt = 595.0
	marginPt  = 48.0
	barPt     = 14.0
)

var (
	inkColor   = domain.RGB{R: 24, G: 24, B: 27}
	mutedColor = domain.RGB{R: 113, G: 113, B: 122}
	defaultAcc = domain.RGB{R: 190, G: 242, B: 100}
)

// PDF writes slides to outPath, one page per slide. Embedded (data URL)
// images are drawn; remote images are only referenced by URL.
func PDF(slides domain.SlideList, outPath string, opt PDFOptions) error {
	if len(slides) == 0 {
		return errors.New("export: deck is empty")
	}
	if strings.TrimSpace(outPath) == "" {
		return errors.New("export: output path is required")
	}
	l := applog.WithOperation(applog.WithComponent("export"), "pdf").With(slog.String("out", outPath))

	w, h := opt.Width, opt.Height
	if w <= 0 || h <= 0 {
		w, h = a4LongPt, a4ShortPt
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: w, Ht: h},
	})
	title := opt.Title
	if title == "" {
		title = slides[0].Title
	}
	pdf.SetTitle(title, true)
	if opt.Author != "" {
		pdf.SetAuthor(opt.Author, true)
	}
	pdf.SetCreator("slidedeck", true)
	pdf.SetAutoPageBreak(false, marginPt)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	indexes := slideIndexes(len(slides), opt.Slides)
	for _, i := range indexes {
		if i < 0 || i >= len(slides) {
			continue
		}
		drawSlide(pdf, tr, slides[i], i, len(slides), w, h, opt.SkipImages, l)
		if err := pdf.Error(); err != nil {
			return fmt.Errorf("render slide %d: %w", i+1, err)
		}
	}
	if pdf.PageCount() == 0 {
		return errors.New("export: no slide selected")
	}

	if dir := filepath.Dir(outPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure out dir: %w", err)
		}
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	l.Info("handout written", slog.Int("pages", pdf.PageCount()))
	return nil
}

func drawSlide(pdf *gofpdf.Fpdf, tr func(string) string, s domain.Slide, i, total int, w, h float64, skipImages bool, l *slog.Logger) {
	pdf.AddPage()
	acc := s.Accent(defaultAcc)

	// accent bar
	setFillColor(pdf, acc)
	pdf.Rect(0, 0, barPt, h, "F")

	// position and kind
	pdf.SetFont("Helvetica", "", 9)
	setTextColor(pdf, mutedColor)
	pdf.SetXY(marginPt, marginPt/2)
	pdf.CellFormat(w-2*marginPt, 12, tr(strings.ToUpper(string(s.Type))), "", 0, "L", false, 0, "")
	pdf.SetXY(marginPt, marginPt/2)
	pdf.CellFormat(w-2*marginPt, 12, fmt.Sprintf("%d / %d", i+1, total), "", 0, "R", false, 0, "")

	textW := w - 2*marginPt
	imgName := ""
	if !skipImages && s.HasEmbeddedImage() {
		if name, ok := registerImage(pdf, s, i); ok {
			imgName = name
			textW = (w-2*marginPt)/2 - 12
		} else {
			l.Warn("embedded image skipped", slog.Int("slide", i+1))
		}
	}

	y := marginPt + 12
	pdf.SetXY(marginPt, y)
	pdf.SetFont("Helvetica", "B", 30)
	setTextColor(pdf, inkColor)
	pdf.MultiCell(textW, 34, tr(s.Title), "", "L", false)

	if s.Subtitle != "" {
		pdf.SetX(marginPt)
		pdf.SetFont("Helvetica", "B", 15)
		setTextColor(pdf, acc)
		pdf.MultiCell(textW, 20, tr(s.Subtitle), "", "L", false)
	}

	pdf.Ln(8)
	pdf.SetX(marginPt)
	pdf.SetFont("Helvetica", "", 13)
	setTextColor(pdf, inkColor)
	pdf.MultiCell(textW, 18, tr(s.Content), "", "L", false)

	if len(s.Tags) > 0 {
		pdf.Ln(8)
		pdf.SetX(marginPt)
		pdf.SetFont("Helvetica", "B", 10)
		setTextColor(pdf, mutedColor)
		pdf.MultiCell(textW, 14, tr(strings.Join(s.Tags, "  /  ")), "", "L", false)
	}

	if imgName != "" {
		x := marginPt + (w-2*marginPt)/2 + 12
		pdf.ImageOptions(imgName, x, marginPt+12, (w-2*marginPt)/2-12, 0, false, gofpdf.ImageOptions{}, 0, "")
	} else if s.ImageURL != "" && !s.HasEmbeddedImage() {
		pdf.SetXY(marginPt, h-marginPt-14)
		pdf.SetFont("Helvetica", "I", 9)
		setTextColor(pdf, mutedColor)
		pdf.CellFormat(w-2*marginPt, 14, tr("Image: "+s.ImageURL), "", 0, "L", false, 0, "")
	}
}

// registerImage hands an embedded image to gofpdf. JPEG passes through;
// every other format is re-encoded as PNG, which gofpdf reads reliably.
func registerImage(pdf *gofpdf.Fpdf, s domain.Slide, i int) (string, bool) {
	data, mediaType, err := ingest.DecodeDataURL(s.ImageURL)
	if err != nil {
		return "", false
	}
	typ := strings.TrimPrefix(mediaType, "image/")
	if typ == "jpg" {
		typ = "jpeg"
	}
	if typ != "jpeg" {
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return "", false
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return "", false
		}
		data, typ = buf.Bytes(), "png"
	} else if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return "", false
	}
	name := fmt.Sprintf("slide-%d", i)
	pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: typ}, bytes.NewReader(data))
	return name, pdf.Ok()
}

func slideIndexes(total int, specific []int) []int {
	if len(specific) == 0 {
		out := make([]int, total)
		for i := range out {
			out[i] = i
		}
		return out
	}
	return specific
}

func setFillColor(pdf *gofpdf.Fpdf, c domain.RGB) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}

func setTextColor(pdf *gofpdf.Fpdf, c domain.RGB) {
	pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
}

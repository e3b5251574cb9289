//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// These tests validate the Fyne-based UI components. They are gated behind the
// "fyne" build tag so CI (which is headless) does not need Fyne or a display.
// To run locally:
//
//	go test -tags fyne ./internal/ui
package ui

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"

	"slidedeck/internal/domain"
	"slidedeck/internal/ingest"
	"slidedeck/internal/present"
)

func viewOf(s domain.Slide) present.View {
	return present.View{Slide: s, Index: 0, Total: 7, Layout: present.LayoutFor(s.ID)}
}

func layoutFor(t *testing.T, v present.View) *slideRenderer {
	t.Helper()
	sc := NewSlideCanvas()
	sc.Show(v)
	r, ok := sc.CreateRenderer().(*slideRenderer)
	if !ok {
		t.Fatalf("expected slideRenderer, got %T", sc.CreateRenderer())
	}
	r.Layout(fyne.NewSize(1200, 700))
	return r
}

func TestSlideCanvas_ImageSideFollowsLayout(t *testing.T) {
	test.NewTempApp(t)
	right := layoutFor(t, viewOf(domain.Slide{ID: 4, Title: "Ruang Publik", Type: domain.KindSplit}))
	if !right.frame.Visible() {
		t.Fatal("split slide should show its image frame")
	}
	if right.frame.Position().X <= right.content.Position().X {
		t.Fatalf("id 4 puts the image right: frame %v content %v", right.frame.Position(), right.content.Position())
	}

	left := layoutFor(t, viewOf(domain.Slide{ID: 1, Title: "Fondasi Dasar", Type: domain.KindSplit}))
	if left.frame.Position().X >= left.content.Position().X {
		t.Fatalf("id 1 puts the image left: frame %v content %v", left.frame.Position(), left.content.Position())
	}
}

func TestSlideCanvas_HeroHasNoImageAndUppercaseTitle(t *testing.T) {
	test.NewTempApp(t)
	r := layoutFor(t, viewOf(domain.Slide{ID: 0, Title: "sopan etika", Type: domain.KindHero, Tags: []string{"SIKAP DASAR"}}))
	if r.frame.Visible() {
		t.Fatal("hero slide should not show an image frame")
	}
	if r.first.Text != "SOPAN" || r.rest.Text != "ETIKA" {
		t.Fatalf("title split = %q / %q", r.first.Text, r.rest.Text)
	}
	if r.counter.Text != "01 / 07" {
		t.Fatalf("counter = %q", r.counter.Text)
	}
}

func TestSlideCanvas_OffsetShiftsCard(t *testing.T) {
	test.NewTempApp(t)
	sc := NewSlideCanvas()
	sc.Show(viewOf(domain.DefaultSlides()[1]))
	r := sc.CreateRenderer().(*slideRenderer)
	size := fyne.NewSize(1000, 600)
	r.Layout(size)
	x0 := r.card.Position().X

	sc.offset = 1
	r.Layout(size)
	if got := r.card.Position().X - x0; got < 999 || got > 1001 {
		t.Fatalf("offset 1 should shift the card one width, moved %v", got)
	}
}

func TestDecodeEmbedded(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 4, 3))); err != nil {
		t.Fatal(err)
	}
	img, err := ingest.Encode(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	got := decodeEmbedded(img.DataURL)
	if got == nil || got.Bounds().Dx() != 4 {
		t.Fatalf("decodeEmbedded = %v", got)
	}
	if decodeEmbedded("https://example.com/a.png") != nil {
		t.Fatal("remote URLs are not decoded")
	}
}

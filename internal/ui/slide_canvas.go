//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"slidedeck/internal/domain"
	"slidedeck/internal/ingest"
	"slidedeck/internal/present"
)

var (
	bgColor        = color.NRGBA{R: 9, G: 9, B: 11, A: 255}
	cardColor      = color.NRGBA{R: 24, G: 24, B: 27, A: 255}
	textColor      = color.NRGBA{R: 228, G: 228, B: 231, A: 255}
	mutedColor     = color.NRGBA{R: 161, G: 161, B: 170, A: 255}
	accentFallback = domain.RGB{R: 0xbe, G: 0xf2, B: 0x64}
)

// SlideCanvas draws one slide of a present.View. The card can be shifted
// horizontally by a fraction of its width for the slide-in motion.
type SlideCanvas struct {
	widget.BaseWidget

	view   present.View
	offset float32

	// Decoded embedded image, cached by its data URL.
	img    image.Image
	imgKey string
}

func NewSlideCanvas() *SlideCanvas {
	c := &SlideCanvas{}
	c.ExtendBaseWidget(c)
	return c
}

// Show replaces the displayed view.
func (c *SlideCanvas) Show(v present.View) {
	c.view = v
	if u := v.Slide.ImageURL; u != c.imgKey {
		c.imgKey = u
		c.img = decodeEmbedded(u)
	}
	c.Refresh()
}

// SetOffset shifts the card by o slide widths (-1 left edge, +1 right edge).
func (c *SlideCanvas) SetOffset(o float64) {
	c.offset = float32(o)
	c.Refresh()
}

func decodeEmbedded(u string) image.Image {
	if !strings.HasPrefix(u, "data:") {
		return nil
	}
	data, _, err := ingest.DecodeDataURL(u)
	if err != nil {
		return nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	return img
}

func nrgba(c domain.RGB) color.NRGBA { return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255} }

func (c *SlideCanvas) CreateRenderer() fyne.WidgetRenderer {
	r := &slideRenderer{
		c:         c,
		bg:        canvas.NewRectangle(bgColor),
		card:      canvas.NewRectangle(cardColor),
		bar:       canvas.NewRectangle(color.Transparent),
		kind:      canvas.NewText("", mutedColor),
		counter:   canvas.NewText("", mutedColor),
		tags:      canvas.NewText("", color.Transparent),
		first:     canvas.NewText("", color.Transparent),
		rest:      canvas.NewText("", textColor),
		subtitle:  canvas.NewText("", mutedColor),
		content:   widget.NewLabel(""),
		frame:     canvas.NewRectangle(color.Transparent),
		picture:   canvas.NewImageFromImage(nil),
		imageNote: canvas.NewText("", mutedColor),
	}
	r.kind.TextStyle = fyne.TextStyle{Bold: true}
	r.kind.TextSize = 12
	r.counter.TextSize = 12
	r.tags.TextSize = 12
	r.tags.TextStyle = fyne.TextStyle{Monospace: true}
	r.first.TextStyle = fyne.TextStyle{Bold: true}
	r.first.TextSize = 40
	r.rest.TextStyle = fyne.TextStyle{Bold: true}
	r.rest.TextSize = 40
	r.subtitle.TextStyle = fyne.TextStyle{Italic: true}
	r.subtitle.TextSize = 16
	r.content.Wrapping = fyne.TextWrapWord
	r.frame.StrokeWidth = 2
	r.frame.CornerRadius = 12
	r.picture.FillMode = canvas.ImageFillContain
	r.imageNote.TextSize = 12
	r.objects = []fyne.CanvasObject{r.bg, r.card, r.bar, r.kind, r.counter, r.tags, r.first, r.rest, r.subtitle, r.content, r.frame, r.picture, r.imageNote}
	r.update()
	return r
}

func (c *SlideCanvas) PreferredSize() fyne.Size { return fyne.NewSize(960, 540) }

type slideRenderer struct {
	c       *SlideCanvas
	objects []fyne.CanvasObject

	bg, card, bar *canvas.Rectangle
	kind, counter *canvas.Text
	tags          *canvas.Text
	first, rest   *canvas.Text
	subtitle      *canvas.Text
	content       *widget.Label
	frame         *canvas.Rectangle
	picture       *canvas.Image
	imageNote     *canvas.Text
	imageLeft     bool
	showImage     bool
	imageOnTop    bool
}

func (r *slideRenderer) Destroy()                     {}
func (r *slideRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *slideRenderer) MinSize() fyne.Size           { return fyne.NewSize(480, 270) }
func (r *slideRenderer) Refresh() {
	r.update()
	r.Layout(r.c.Size())
	canvas.Refresh(r.c)
}

// update copies the view into the canvas objects.
func (r *slideRenderer) update() {
	v := r.c.view
	s := v.Slide
	accent := nrgba(s.Accent(accentFallback))

	r.bar.FillColor = accent
	r.frame.StrokeColor = accent
	r.first.Color = accent
	r.tags.Color = accent
	r.kind.Text = strings.ToUpper(string(s.Type))
	if v.Editing {
		r.kind.Text += "  ·  EDIT"
	}
	r.counter.Text = ""
	if v.Total > 0 {
		r.counter.Text = fmt.Sprintf("%02d / %02d", v.Index+1, v.Total)
	}
	r.tags.Text = strings.Join(s.Tags, "   ")
	r.first.Text, r.rest.Text = present.SplitTitle(present.Heading(s))
	r.subtitle.Text = s.Subtitle
	if s.Type == domain.KindQuote {
		r.content.SetText("“" + s.Content + "”")
	} else {
		r.content.SetText(s.Content)
	}

	switch s.Type {
	case domain.KindSplit, domain.KindGrid, domain.KindStats, domain.KindProcess:
		r.showImage, r.imageOnTop = true, false
	case domain.KindImage:
		r.showImage, r.imageOnTop = true, true
	default:
		r.showImage = false
	}
	r.imageLeft = !v.Layout.ImageRight

	r.picture.Image = r.c.img
	r.imageNote.Text = ""
	switch {
	case r.c.img != nil:
	case s.ImageURL == "":
		r.imageNote.Text = "no image"
	default:
		r.imageNote.Text = s.ImageURL
	}
	for _, o := range []fyne.CanvasObject{r.frame, r.picture, r.imageNote} {
		if r.showImage {
			o.Show()
		} else {
			o.Hide()
		}
	}
	for _, t := range []*canvas.Text{r.kind, r.counter, r.tags, r.first, r.rest, r.subtitle, r.imageNote} {
		t.Refresh()
	}
	r.picture.Refresh()
}

func (r *slideRenderer) Layout(size fyne.Size) {
	const pad = float32(32)
	r.bg.Resize(size)
	r.bg.Move(fyne.NewPos(0, 0))

	shift := r.c.offset * size.Width
	card := fyne.NewSize(size.Width-2*pad, size.Height-2*pad)
	origin := fyne.NewPos(pad+shift, pad)
	r.card.Resize(card)
	r.card.Move(origin)
	r.bar.Resize(fyne.NewSize(card.Width, 6))
	r.bar.Move(origin)

	inner := fyne.NewPos(origin.X+pad, origin.Y+pad)
	innerW := card.Width - 2*pad
	r.kind.Move(inner)
	cw := r.counter.MinSize().Width
	r.counter.Move(fyne.NewPos(inner.X+innerW-cw, inner.Y))

	textX, textW := inner.X, innerW
	top := inner.Y + 32
	if r.showImage {
		imgBox := fyne.NewSize(innerW/2-pad/2, card.Height-2*pad-32)
		imgPos := fyne.NewPos(inner.X+innerW/2+pad/2, top)
		if r.imageOnTop {
			imgBox = fyne.NewSize(innerW, (card.Height-2*pad)*0.5)
			imgPos = fyne.NewPos(inner.X, top)
			top += imgBox.Height + pad/2
		} else {
			textW = innerW/2 - pad/2
			if r.imageLeft {
				imgPos.X = inner.X
				textX = inner.X + innerW/2 + pad/2
			}
		}
		r.frame.Resize(imgBox)
		r.frame.Move(imgPos)
		r.picture.Resize(fyne.NewSize(imgBox.Width-8, imgBox.Height-8))
		r.picture.Move(fyne.NewPos(imgPos.X+4, imgPos.Y+4))
		r.imageNote.Move(fyne.NewPos(imgPos.X+12, imgPos.Y+imgBox.Height/2))
	}

	y := top
	if r.tags.Text != "" {
		r.tags.Move(fyne.NewPos(textX, y))
		y += r.tags.MinSize().Height + 8
	}
	r.first.Move(fyne.NewPos(textX, y))
	r.rest.Move(fyne.NewPos(textX+r.first.MinSize().Width+12, y))
	y += r.first.MinSize().Height + 4
	r.subtitle.Move(fyne.NewPos(textX, y))
	y += r.subtitle.MinSize().Height + 16
	r.content.Resize(fyne.NewSize(textW, max(origin.Y+card.Height-pad-y, 0)))
	r.content.Move(fyne.NewPos(textX, y))
}

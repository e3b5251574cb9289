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
	"context"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"slidedeck/internal/present"
)

// introOverlay covers the window while the intro plays.
type introOverlay struct {
	root  *fyne.Container
	head  *canvas.Text
	sub   *canvas.Text
	bar   *widget.ProgressBar
	phase present.IntroPhase
}

func newIntroOverlay() *introOverlay {
	o := &introOverlay{
		head:  canvas.NewText("", textColor),
		sub:   canvas.NewText("", mutedColor),
		bar:   widget.NewProgressBar(),
		phase: -1,
	}
	o.head.TextStyle = fyne.TextStyle{Bold: true}
	o.head.TextSize = 48
	o.head.Alignment = fyne.TextAlignCenter
	o.sub.TextSize = 14
	o.sub.Alignment = fyne.TextAlignCenter
	o.bar.TextFormatter = func() string { return "" }
	bg := canvas.NewRectangle(color.NRGBA{R: 0, G: 0, B: 0, A: 255})
	center := container.NewCenter(container.NewVBox(o.head, o.sub, container.NewGridWrap(fyne.NewSize(320, 8), o.bar)))
	o.root = container.NewStack(bg, center)
	return o
}

func (o *introOverlay) Hide() { o.root.Hide() }

func (o *introOverlay) show(s *present.Session) {
	phase, progress := s.IntroFrame()
	o.bar.SetValue(progress)
	if phase == o.phase {
		return
	}
	o.phase = phase
	t := present.DefaultIntroText
	switch phase {
	case present.IntroLoading:
		o.head.Text, o.sub.Text = t.Loading, t.LoadingSub
		o.head.Color = textColor
	case present.IntroCredit:
		o.head.Text, o.sub.Text = t.Credit, t.CreditSub
		o.head.Color = textColor
	default:
		o.head.Text, o.sub.Text = t.Title, ""
		o.head.Color = nrgba(s.Current().Accent(accentFallback))
	}
	o.head.Refresh()
	o.sub.Refresh()
}

// run updates the overlay until the intro ends, then hides it and calls done
// on the UI goroutine.
func (o *introOverlay) run(ctx context.Context, s *present.Session, done func()) {
	o.root.Show()
	o.show(s)
	go func() {
		tick := time.NewTicker(50 * time.Millisecond)
		defer tick.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-tick.C:
			}
			finished := false
			fyne.DoAndWait(func() {
				if !s.IntroActive() {
					o.Hide()
					done()
					finished = true
					return
				}
				o.show(s)
			})
			if finished {
				return
			}
		}
	}()
}

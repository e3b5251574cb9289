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
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	fstorage "fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"slidedeck/internal/domain"
	"slidedeck/internal/export"
	"slidedeck/internal/ingest"
	applog "slidedeck/internal/log"
	"slidedeck/internal/present"
	"slidedeck/internal/version"
)

const motionFPS = 60

var imageExts = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

// Run shows s in a desktop window until the window is closed or ctx is
// cancelled.
func Run(ctx context.Context, s *present.Session) error {
	l := applog.WithComponent("ui")
	l.Info("starting desktop presenter")

	fyneApp := app.NewWithID("slidedeck")
	w := fyneApp.NewWindow("SlideDeck")
	prefs := fyneApp.Preferences()
	winW := max(prefs.IntWithFallback("window.width", 1280), 800)
	winH := max(prefs.IntWithFallback("window.height", 760), 500)
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	slide := NewSlideCanvas()
	status := widget.NewLabel("")
	warning := widget.NewLabel("")
	warning.Importance = widget.DangerImportance
	warning.Wrapping = fyne.TextWrapWord
	dismiss := widget.NewButton("Dismiss", nil)
	warningBar := container.NewBorder(nil, nil, nil, dismiss, warning)

	fields := domain.EditableFields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	fieldSelect := widget.NewSelect(names, nil)
	valueEntry := widget.NewMultiLineEntry()
	valueEntry.Wrapping = fyne.TextWrapWord
	valueEntry.SetMinRowsVisible(3)
	applyBtn := widget.NewButton("Apply", nil)
	imageBtn := widget.NewButton("Image…", nil)
	editPanel := container.NewBorder(nil, nil, fieldSelect, container.NewHBox(applyBtn, imageBtn), valueEntry)

	intro := newIntroOverlay()
	motion := present.NewMotion(motionFPS)
	var anim *fyne.Animation

	var refresh func()
	loadField := func() {
		if fieldSelect.Selected == "" {
			return
		}
		v, err := s.Current().Get(domain.Field(fieldSelect.Selected))
		if err != nil {
			return
		}
		text := domain.FormatValue(v)
		if fieldSelect.Selected == string(domain.FieldImageURL) && s.Current().HasEmbeddedImage() {
			text = ""
		}
		valueEntry.SetText(text)
	}
	fieldSelect.OnChanged = func(string) { loadField() }

	animate := func() {
		if anim != nil {
			anim.Stop()
		}
		motion.Start(s.View().Transition.Enter)
		slide.SetOffset(motion.Offset())
		// The spring settles well within two seconds; the tick count bounds it.
		anim = fyne.NewAnimation(2*time.Second, func(float32) {
			motion.Step()
			slide.SetOffset(motion.Offset())
		})
		anim.Curve = fyne.AnimationLinear
		anim.Start()
	}

	advance := func() {
		if s.Advance() {
			animate()
			refresh()
		}
	}
	retreat := func() {
		if s.Retreat() {
			animate()
			refresh()
		}
	}

	prevBtn := widget.NewButton("◀", retreat)
	nextBtn := widget.NewButton("▶", advance)
	editBtn := widget.NewButton("Edit", nil)
	undoBtn := widget.NewButton("Undo", nil)
	redoBtn := widget.NewButton("Redo", nil)
	resetBtn := widget.NewButton("Reset…", nil)
	replayBtn := widget.NewButton("Replay", nil)
	exportBtn := widget.NewButton("Export PDF…", nil)

	refresh = func() {
		v := s.View()
		slide.Show(v)
		status.SetText(fmt.Sprintf("%s · slide %d of %d", s.Store().Source(), v.Index+1, v.Total))
		if v.Warning != "" {
			warning.SetText(v.Warning)
			warningBar.Show()
		} else {
			warningBar.Hide()
		}
		if v.Editing {
			editBtn.SetText("Done")
			editPanel.Show()
		} else {
			editBtn.SetText("Edit")
			editPanel.Hide()
		}
		nav := !v.Editing && !v.Intro
		setEnabled(prevBtn, nav && v.Index > 0)
		setEnabled(nextBtn, nav && v.Index < v.Total-1)
		setEnabled(undoBtn, v.CanUndo)
		setEnabled(redoBtn, s.CanRedo())
	}

	editBtn.OnTapped = func() {
		if s.ToggleEdit() {
			if fieldSelect.Selected == "" {
				fieldSelect.SetSelectedIndex(0)
			}
			loadField()
		}
		refresh()
	}
	applyBtn.OnTapped = func() {
		if fieldSelect.Selected == "" {
			return
		}
		if err := s.CommitText(domain.Field(fieldSelect.Selected), valueEntry.Text); err != nil {
			dialog.ShowError(err, w)
		}
		refresh()
	}
	imageBtn.OnTapped = func() {
		open := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			if rc == nil {
				return
			}
			path := rc.URI().Path()
			_ = rc.Close()
			req, err := s.BeginUpload(path)
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			ch := req.Start(ctx)
			go func() {
				res := <-ch
				fyne.Do(func() {
					if err := s.ApplyUpload(res); err != nil {
						showUploadError(w, err, s.MaxImageBytes())
					}
					loadField()
					refresh()
				})
			}()
		}, w)
		open.SetFilter(fstorage.NewExtensionFileFilter(imageExts))
		open.Show()
	}
	undoBtn.OnTapped = func() {
		s.Undo()
		loadField()
		refresh()
	}
	redoBtn.OnTapped = func() {
		s.Redo()
		loadField()
		refresh()
	}
	dismiss.OnTapped = func() {
		s.DismissWarning()
		refresh()
	}
	resetBtn.OnTapped = func() {
		dialog.NewConfirm("Reset deck", "Restore the default slides? Saved changes are cleared.", func(ok bool) {
			if !ok {
				return
			}
			l.Info("deck reset from desktop")
			s.Reset()
			motion = present.NewMotion(motionFPS)
			slide.SetOffset(0)
			refresh()
		}, w).Show()
	}
	replayBtn.OnTapped = func() {
		s.Replay()
		motion = present.NewMotion(motionFPS)
		slide.SetOffset(0)
		refresh()
		if s.IntroActive() {
			intro.run(ctx, s, func() { refresh() })
		}
	}
	exportBtn.OnTapped = func() {
		save := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			if wc == nil {
				return
			}
			out := wc.URI().Path()
			_ = wc.Close()
			opt := export.PDFOptions{Title: "SlideDeck", Author: "SlideDeck " + version.String()}
			if err := export.PDF(s.Store().Slides(), out, opt); err != nil {
				l.Error("export pdf failed", slog.String("path", out), slog.Any("err", err))
				dialog.ShowError(err, w)
				return
			}
			dialog.ShowInformation("Export PDF", "Saved "+filepath.Base(out), w)
		}, w)
		save.SetFileName("slides.pdf")
		save.SetFilter(fstorage.NewExtensionFileFilter([]string{".pdf"}))
		save.Show()
	}

	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if s.IntroActive() {
			s.EndIntro()
			intro.Hide()
			refresh()
			return
		}
		switch ev.Name {
		case fyne.KeyRight, fyne.KeySpace:
			advance()
		case fyne.KeyLeft:
			retreat()
		}
	})
	w.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) { undoBtn.OnTapped() })
	w.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyE, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) { editBtn.OnTapped() })

	aboutItem := fyne.NewMenuItem("About SlideDeck", func() {
		exe, _ := os.Executable()
		info := fmt.Sprintf("SlideDeck\nVersion: %s\nOS: %s\nArch: %s\nGo: %s\nExecutable: %s",
			version.String(), runtime.GOOS, runtime.GOARCH, runtime.Version(), exe)
		dialog.ShowInformation("About", info, w)
	})
	w.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu("Deck", fyne.NewMenuItem("Export PDF…", exportBtn.OnTapped), fyne.NewMenuItem("Replay", replayBtn.OnTapped), fyne.NewMenuItem("Reset…", resetBtn.OnTapped)),
		fyne.NewMenu("About", aboutItem),
	))

	toolbar := container.NewHBox(prevBtn, nextBtn, widget.NewSeparator(), editBtn, undoBtn, redoBtn, widget.NewSeparator(), replayBtn, resetBtn, exportBtn)
	bottom := container.NewVBox(warningBar, editPanel, container.NewBorder(nil, nil, toolbar, status))
	w.SetContent(container.NewStack(container.NewBorder(nil, bottom, nil, nil, slide), intro.root))

	w.SetCloseIntercept(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
		w.Close()
	})

	refresh()
	if s.IntroActive() {
		intro.run(ctx, s, func() { refresh() })
	} else {
		intro.Hide()
	}
	go func() {
		<-ctx.Done()
		fyne.Do(fyneApp.Quit)
	}()

	w.ShowAndRun()
	return nil
}

type enabler interface {
	Enable()
	Disable()
}

func setEnabled(e enabler, on bool) {
	if on {
		e.Enable()
	} else {
		e.Disable()
	}
}

func showUploadError(w fyne.Window, err error, limit int64) {
	switch {
	case errors.Is(err, ingest.ErrTooLarge):
		dialog.ShowInformation("Image too large", fmt.Sprintf("The image exceeds the %.3g MiB limit.", float64(limit)/(1<<20)), w)
	case errors.Is(err, ingest.ErrNotImage):
		dialog.ShowInformation("Unsupported file", "Choose a png, jpeg, gif, bmp, tiff or webp image.", w)
	default:
		dialog.ShowError(err, w)
	}
}

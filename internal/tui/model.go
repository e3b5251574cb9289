/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package tui is the terminal presenter. It draws a present.Session with
// lipgloss and maps keys to session operations.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"slidedeck/internal/domain"
	"slidedeck/internal/ingest"
	applog "slidedeck/internal/log"
	"slidedeck/internal/present"
)

type mode int

const (
	modeView mode = iota
	modeField
	modeImage
	modeConfirmReset
)

type (
	marqueeMsg    struct{}
	uploadDoneMsg struct{ res ingest.Result }
)

const marqueeEvery = 150 * time.Millisecond

func marqueeTick() tea.Cmd {
	return tea.Tick(marqueeEvery, func(time.Time) tea.Msg { return marqueeMsg{} })
}

// Model is the bubbletea model of a running presentation.
type Model struct {
	ctx  context.Context
	sess *present.Session
	log  *slog.Logger

	keys   keyMap
	help   help.Model
	editor textarea.Model
	path   textinput.Model
	bar    progress.Model
	motion present.Motion

	mode      mode
	field     int
	notice    string
	uploading bool
	marquee   int
	width     int
	height    int
}

// New builds the model. ctx bounds background image reads.
func New(ctx context.Context, s *present.Session) Model {
	ed := textarea.New()
	ed.Placeholder = "Type the new value"
	ed.CharLimit = 0
	ed.ShowLineNumbers = false
	ed.SetWidth(60)
	ed.SetHeight(5)

	in := textinput.New()
	in.Placeholder = "/path/to/image.png"
	in.Prompt = "image › "

	accent := s.Current().Accent(fallbackAccent).Hex()
	return Model{
		ctx:    ctx,
		sess:   s,
		log:    applog.WithComponent("tui"),
		keys:   defaultKeys(),
		help:   help.New(),
		editor: ed,
		path:   in,
		bar:    progress.New(progress.WithSolidFill(accent), progress.WithoutPercentage()),
		motion: present.NewMotion(fps),
		width:  80,
		height: 24,
	}
}

// Init starts the intro frames (when the intro shows) and the marquee.
func (m Model) Init() tea.Cmd {
	if m.sess.IntroActive() {
		return tea.Batch(frameTick(), marqueeTick())
	}
	return marqueeTick()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.editor.SetWidth(max(msg.Width-8, 20))
		m.path.Width = max(msg.Width-16, 20)
		m.help.Width = msg.Width
		m.bar.Width = min(max(msg.Width-20, 10), 60)
		return m, nil
	case frameMsg:
		if m.motion.Step() || m.sess.IntroActive() {
			return m, frameTick()
		}
		return m, nil
	case marqueeMsg:
		m.marquee++
		return m, marqueeTick()
	case uploadDoneMsg:
		m.uploading = false
		if err := m.sess.ApplyUpload(msg.res); err != nil {
			m.notice = uploadNotice(err, m.sess.MaxImageBytes())
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.notice != "" {
		m.notice = ""
		return m, nil
	}
	if m.sess.IntroActive() {
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		m.sess.EndIntro()
		return m, nil
	}
	switch m.mode {
	case modeField:
		return m.updateEditor(msg)
	case modeImage:
		return m.updatePath(msg)
	case modeConfirmReset:
		return m.updateConfirm(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		if m.sess.Advance() {
			return m, m.animate()
		}
	case key.Matches(msg, m.keys.Prev):
		if m.sess.Retreat() {
			return m, m.animate()
		}
	case key.Matches(msg, m.keys.Edit):
		m.sess.ToggleEdit()
	case key.Matches(msg, m.keys.Field):
		if m.sess.Editing() {
			m.field = (m.field + 1) % len(domain.EditableFields())
		}
	case key.Matches(msg, m.keys.Open):
		if m.sess.Editing() {
			return m.openEditor()
		}
	case key.Matches(msg, m.keys.Image):
		if m.sess.Editing() && !m.uploading {
			m.mode = modeImage
			m.path.SetValue("")
			return m, m.path.Focus()
		}
	case key.Matches(msg, m.keys.Undo):
		m.sess.Undo()
	case key.Matches(msg, m.keys.Redo):
		m.sess.Redo()
	case key.Matches(msg, m.keys.Reset):
		m.mode = modeConfirmReset
	case key.Matches(msg, m.keys.Replay):
		m.sess.Replay()
		if m.sess.IntroActive() && !m.motion.Active() {
			return m, frameTick()
		}
	case key.Matches(msg, m.keys.Dismiss):
		m.sess.DismissWarning()
	}
	return m, nil
}

func (m *Model) animate() tea.Cmd {
	wasActive := m.motion.Active()
	m.motion.Start(m.sess.View().Transition.Enter)
	if wasActive {
		// A frame loop is already running.
		return nil
	}
	return frameTick()
}

// currentField is the field the edit cursor is on.
func (m Model) currentField() domain.Field {
	return domain.EditableFields()[m.field]
}

func (m Model) openEditor() (tea.Model, tea.Cmd) {
	f := m.currentField()
	v, err := m.sess.Current().Get(f)
	if err != nil {
		m.notice = err.Error()
		return m, nil
	}
	text := domain.FormatValue(v)
	if f == domain.FieldImageURL && m.sess.Current().HasEmbeddedImage() {
		// Embedded bytes are not editable as text; start from an empty URL.
		text = ""
	}
	m.editor.SetValue(text)
	m.mode = modeField
	return m, m.editor.Focus()
}

func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.editor.Blur()
		m.mode = modeView
		return m, nil
	case key.Matches(msg, m.keys.Save):
		m.editor.Blur()
		m.mode = modeView
		if err := m.sess.CommitText(m.currentField(), m.editor.Value()); err != nil {
			m.notice = err.Error()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m Model) updatePath(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.path.Blur()
		m.mode = modeView
		return m, nil
	case msg.Type == tea.KeyEnter:
		m.path.Blur()
		m.mode = modeView
		req, err := m.sess.BeginUpload(m.path.Value())
		if err != nil {
			m.notice = err.Error()
			return m, nil
		}
		m.uploading = true
		ctx := m.ctx
		return m, func() tea.Msg { return uploadDoneMsg{res: req.Run(ctx)} }
	}
	var cmd tea.Cmd
	m.path, cmd = m.path.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeView
	switch msg.String() {
	case "y", "Y":
		m.sess.Reset()
		m.field = 0
		m.motion = present.NewMotion(fps)
		m.log.Info("deck reset from terminal")
	}
	return m, nil
}

func uploadNotice(err error, limit int64) string {
	switch {
	case errors.Is(err, ingest.ErrTooLarge):
		return fmt.Sprintf("Image is too large. The limit is %s.", formatBytes(limit))
	case errors.Is(err, ingest.ErrNotImage):
		return "That file is not a supported image (png, jpeg, gif, bmp, tiff, webp)."
	}
	return "Image could not be read: " + err.Error()
}

func formatBytes(n int64) string {
	switch {
	case n >= 1<<20 && n%(1<<20) == 0:
		return fmt.Sprintf("%d MiB", n>>20)
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%d KiB", n>>10)
	}
	return fmt.Sprintf("%d B", n)
}

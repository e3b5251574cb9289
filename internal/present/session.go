/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package present implements the input surface of a running presentation.
// A Session combines the deck store, the navigator and the edit history and
// exposes the operations a renderer maps its keys and buttons to. Renderers
// draw from View and never touch the store directly.
package present

import (
	"errors"
	"log/slog"
	"time"

	"slidedeck/internal/deck"
	"slidedeck/internal/domain"
	"slidedeck/internal/ingest"
	applog "slidedeck/internal/log"
	"slidedeck/internal/undo"
)

// ErrNotEditing is returned by edit operations outside edit mode.
var ErrNotEditing = errors.New("not in edit mode")

// DefaultIntro is how long the intro overlay shows when not configured.
const DefaultIntro = 6500 * time.Millisecond

// Options configure a Session.
type Options struct {
	// Intro is how long the intro overlay shows; zero or less disables it.
	Intro time.Duration
	// MaxImageBytes caps uploads; zero means ingest.MaxImageBytes.
	MaxImageBytes int64
	Undo          undo.Config
	// Now is the clock; tests replace it.
	Now func() time.Time
}

// Session is the state of one running presentation. It is not safe for
// concurrent use; renderers call it from their UI goroutine.
type Session struct {
	store *deck.Store
	nav   *deck.Navigator
	hist  *undo.Manager
	opts  Options
	log   *slog.Logger

	editing    bool
	intro      bool
	introUntil time.Time
	warning    string
}

// NewSession starts at the first slide with the intro showing (if enabled).
// When p is non-nil its write failures become the session warning.
func NewSession(store *deck.Store, p *deck.Persister, opts Options) *Session {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Session{
		store: store,
		nav:   deck.NewNavigator(store.Len()),
		hist:  undo.NewManager(opts.Undo),
		opts:  opts,
		log:   applog.WithComponent("present"),
	}
	if opts.Intro > 0 {
		s.intro = true
		s.introUntil = opts.Now().Add(opts.Intro)
	}
	if p != nil {
		s.watch(p)
	}
	return s
}

func (s *Session) watch(p *deck.Persister) {
	prevErr, prevSaved := p.OnError, p.OnSaved
	p.OnError = func(err error) {
		s.warning = "Changes could not be saved: " + err.Error()
		if prevErr != nil {
			prevErr(err)
		}
	}
	p.OnSaved = func(k deck.ChangeKind) {
		s.warning = ""
		if prevSaved != nil {
			prevSaved(k)
		}
	}
}

// Store exposes the underlying store for read access.
func (s *Session) Store() *deck.Store { return s.store }

// Index is the active slide index.
func (s *Session) Index() int { return s.nav.Index() }

// Current returns the active slide.
func (s *Session) Current() domain.Slide {
	sl, _ := s.store.At(s.nav.Index())
	return sl
}

// Editing reports whether edit mode is on.
func (s *Session) Editing() bool { return s.editing }

// IntroActive reports whether the intro overlay is showing. The intro ends by
// itself once its duration has passed.
func (s *Session) IntroActive() bool {
	if s.intro && !s.opts.Now().Before(s.introUntil) {
		s.intro = false
	}
	return s.intro
}

// IntroRemaining is the time left before the intro ends by itself.
func (s *Session) IntroRemaining() time.Duration {
	if !s.IntroActive() {
		return 0
	}
	return s.introUntil.Sub(s.opts.Now())
}

// EndIntro dismisses the intro overlay.
func (s *Session) EndIntro() { s.intro = false }

func (s *Session) navigable() bool { return !s.editing && !s.IntroActive() }

// Advance moves to the next slide. It does nothing while editing or while
// the intro is showing.
func (s *Session) Advance() bool {
	if !s.navigable() {
		return false
	}
	return s.nav.Advance()
}

// Retreat moves to the previous slide under the same conditions as Advance.
func (s *Session) Retreat() bool {
	if !s.navigable() {
		return false
	}
	return s.nav.Retreat()
}

// GoTo jumps to slide i under the same conditions as Advance.
func (s *Session) GoTo(i int) bool {
	if !s.navigable() {
		return false
	}
	return s.nav.GoTo(i)
}

// ToggleEdit switches edit mode and returns the new state.
func (s *Session) ToggleEdit() bool {
	s.editing = !s.editing
	s.log.Debug("edit mode", slog.Bool("on", s.editing))
	return s.editing
}

// Commit sets field f of the active slide. It records the previous value for
// Undo when the value actually changed.
func (s *Session) Commit(f domain.Field, value any) error {
	if !s.editing {
		return ErrNotEditing
	}
	return s.commitAt(s.nav.Index(), f, value)
}

// CommitText is Commit for user-typed text; see domain.ParseValue.
func (s *Session) CommitText(f domain.Field, text string) error {
	return s.Commit(f, domain.ParseValue(f, text))
}

func (s *Session) commitAt(index int, f domain.Field, value any) error {
	before, ok := s.store.At(index)
	if !ok {
		return nil
	}
	prev, err := before.Get(f)
	if err != nil {
		return err
	}
	next, err := s.store.UpdateField(index, f, value)
	if err != nil {
		return err
	}
	if next[index].Equal(before) {
		return nil
	}
	cur, _ := next[index].Get(f)
	s.hist.Push(undo.Edit{Slide: index, Field: f, Prev: prev, Next: cur, TS: s.opts.Now()})
	bytes, slides, edits := s.hist.Stats()
	s.log.Debug("edit recorded",
		slog.Int("slide", index),
		slog.String("field", string(f)),
		slog.Int("history_edits", edits),
		slog.Int("history_slides", slides),
		slog.Int("history_bytes", bytes))
	return nil
}

// BeginUpload starts an image upload for the active slide. The returned
// request keeps that slide as its target even if the user navigates away
// before the file has been read.
func (s *Session) BeginUpload(path string) (ingest.Request, error) {
	if !s.editing {
		return ingest.Request{}, ErrNotEditing
	}
	return ingest.Request{Target: s.nav.Index(), Path: path, MaxBytes: s.opts.MaxImageBytes}, nil
}

// ApplyUpload stores a finished upload on the slide it was started for.
// A failed read (too large, not an image) is returned unchanged so the
// renderer can show it; the slide keeps its image.
func (s *Session) ApplyUpload(res ingest.Result) error {
	if res.Err != nil {
		s.log.Info("upload rejected", slog.Int("target", res.Target), slog.Any("err", res.Err))
		return res.Err
	}
	return s.commitAt(res.Target, domain.FieldImageURL, res.Image.DataURL)
}

// MaxImageBytes is the effective upload limit.
func (s *Session) MaxImageBytes() int64 {
	if s.opts.MaxImageBytes <= 0 {
		return ingest.MaxImageBytes
	}
	return s.opts.MaxImageBytes
}

// Undo reverts the newest edit on whichever slide it was made and shows that
// slide. In edit mode the active slide stays put, as navigation is off. It
// reports false when there is nothing to undo.
func (s *Session) Undo() bool {
	e, ok := s.hist.Undo()
	if !ok {
		return false
	}
	s.apply(e, e.Prev)
	return true
}

// Redo re-applies the newest undone edit.
func (s *Session) Redo() bool {
	e, ok := s.hist.Redo()
	if !ok {
		return false
	}
	s.apply(e, e.Next)
	return true
}

func (s *Session) apply(e undo.Edit, v any) {
	if _, err := s.store.UpdateField(e.Slide, e.Field, v); err != nil {
		s.log.Warn("history entry could not be applied", slog.Int("slide", e.Slide), slog.String("field", string(e.Field)), slog.Any("err", err))
		return
	}
	if !s.editing {
		s.nav.GoTo(e.Slide)
	}
}

// CanUndo reports whether Undo has anything to revert.
func (s *Session) CanUndo() bool { return s.hist.CanUndo() }

// CanRedo reports whether Redo has anything to re-apply.
func (s *Session) CanRedo() bool { return s.hist.CanRedo() }

// Reset restores the default deck, clears the persisted slot and returns to
// the first slide with edit mode off and an empty history. The process keeps
// running.
func (s *Session) Reset() {
	s.warning = ""
	s.editing = false
	s.hist.Clear()
	s.store.Reset()
	s.nav.Resize(s.store.Len())
	s.nav.Reset()
}

// Replay returns to the first slide and shows the intro again. The deck, the
// edit history and any warning are kept.
func (s *Session) Replay() {
	s.editing = false
	s.nav.Reset()
	if s.opts.Intro > 0 {
		s.intro = true
		s.introUntil = s.opts.Now().Add(s.opts.Intro)
	}
	s.log.Debug("replay", slog.Bool("intro", s.intro))
}

// Warning is the last persistence failure, cleared by the next successful write.
func (s *Session) Warning() string { return s.warning }

// DismissWarning hides the warning until the next failure.
func (s *Session) DismissWarning() { s.warning = "" }

// View is everything a renderer needs to draw one frame.
type View struct {
	Slide      domain.Slide
	Index      int
	Total      int
	Direction  deck.Direction
	Transition Transition
	Layout     Layout
	Editing    bool
	Intro      bool
	Warning    string
	CanUndo    bool
}

// View snapshots the session for rendering.
func (s *Session) View() View {
	sl := s.Current()
	return View{
		Slide:      sl,
		Index:      s.nav.Index(),
		Total:      s.nav.Len(),
		Direction:  s.nav.Direction(),
		Transition: TransitionFor(s.nav.Direction()),
		Layout:     LayoutFor(sl.ID),
		Editing:    s.editing,
		Intro:      s.IntroActive(),
		Warning:    s.warning,
		CanUndo:    s.hist.CanUndo(),
	}
}

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package deck

import (
	"context"
	"log/slog"

	"slidedeck/internal/domain"
	applog "slidedeck/internal/log"
	"slidedeck/internal/storage"
)

// Loader reads the raw persisted slot.
type Loader interface {
	LoadRaw(ctx context.Context) (raw []byte, ok bool, err error)
}

// Source tells where the list a Store started with came from.
type Source int

const (
	SourceDefaults Source = iota
	SourceSlot
)

func (s Source) String() string {
	if s == SourceSlot {
		return "slot"
	}
	return "defaults"
}

// ChangeKind distinguishes the two ways the list changes.
type ChangeKind int

const (
	ChangeUpdate ChangeKind = iota + 1
	ChangeReset
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeUpdate:
		return "update"
	case ChangeReset:
		return "reset"
	}
	return "unknown"
}

// Change describes one mutation. Slides is the list after the change.
// Index and Field are only set for ChangeUpdate.
type Change struct {
	Kind   ChangeKind
	Index  int
	Field  domain.Field
	Slides domain.SlideList
}

// Observer is notified after every change, on the goroutine that made it.
type Observer func(Change)

// Store is the single authoritative slide list.
type Store struct {
	slides    domain.SlideList
	defaults  func() domain.SlideList
	observers []*observerEntry
	source    Source
	log       *slog.Logger
}

type observerEntry struct{ fn Observer }

// Option configures a Store.
type Option func(*Store)

// WithLogger replaces the store logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// Open loads the persisted deck through l. An absent slot, a read error, text
// that is not a valid deck, or an empty list all fall back to defaults(); the
// failure is logged and never returned.
func Open(ctx context.Context, l Loader, defaults func() domain.SlideList, opts ...Option) *Store {
	if defaults == nil {
		defaults = domain.DefaultSlides
	}
	s := &Store{defaults: defaults, log: applog.WithComponent("deck")}
	for _, o := range opts {
		o(s)
	}
	s.slides, s.source = s.load(ctx, l)
	return s
}

// New returns a store holding slides without reading any slot.
func New(slides domain.SlideList, defaults func() domain.SlideList) *Store {
	if defaults == nil {
		defaults = domain.DefaultSlides
	}
	if len(slides) == 0 {
		slides = defaults()
	}
	return &Store{slides: slides, defaults: defaults, source: SourceSlot, log: applog.WithComponent("deck")}
}

func (s *Store) load(ctx context.Context, l Loader) (domain.SlideList, Source) {
	lg := applog.WithOperation(s.log, "load")
	if l == nil {
		return s.defaults(), SourceDefaults
	}
	raw, ok, err := l.LoadRaw(ctx)
	if err != nil {
		lg.Warn("reading persisted deck failed; using defaults", slog.Any("err", err))
		return s.defaults(), SourceDefaults
	}
	if !ok {
		lg.Debug("no persisted deck; using defaults")
		return s.defaults(), SourceDefaults
	}
	list, err := storage.Decode(raw)
	if err != nil {
		lg.Warn("persisted deck is malformed; using defaults", slog.Any("err", err), slog.Int("bytes", len(raw)))
		return s.defaults(), SourceDefaults
	}
	lg.Debug("persisted deck loaded", slog.Int("slides", len(list)))
	return list, SourceSlot
}

// Slides returns the current list. Treat it as read-only.
func (s *Store) Slides() domain.SlideList { return s.slides }

// Source reports whether the list came from the persisted slot or the defaults.
func (s *Store) Source() Source { return s.source }

func (s *Store) Len() int { return len(s.slides) }

// At returns the slide at i.
func (s *Store) At(i int) (domain.Slide, bool) {
	if i < 0 || i >= len(s.slides) {
		return domain.Slide{}, false
	}
	return s.slides[i], true
}

// UpdateField replaces one field of the slide at index. An out-of-range index
// or a value equal to the current one changes nothing and notifies no one.
// An unknown field or a value of the wrong type returns an error and leaves the
// list untouched.
func (s *Store) UpdateField(index int, f domain.Field, value any) (domain.SlideList, error) {
	if index < 0 || index >= len(s.slides) {
		return s.slides, nil
	}
	next, err := s.slides.With(index, f, value)
	if err != nil {
		return s.slides, err
	}
	if next[index].Equal(s.slides[index]) {
		return s.slides, nil
	}
	s.slides = next
	s.notify(Change{Kind: ChangeUpdate, Index: index, Field: f, Slides: next})
	return next, nil
}

// Reset replaces the list with fresh defaults.
func (s *Store) Reset() domain.SlideList {
	s.slides = s.defaults()
	s.source = SourceDefaults
	applog.WithOperation(s.log, "reset").Info("deck reset to defaults", slog.Int("slides", len(s.slides)))
	s.notify(Change{Kind: ChangeReset, Index: -1, Slides: s.slides})
	return s.slides
}

// Subscribe registers o and returns a function that removes it again.
func (s *Store) Subscribe(o Observer) (unsubscribe func()) {
	e := &observerEntry{fn: o}
	s.observers = append(s.observers, e)
	return func() {
		for i, x := range s.observers {
			if x == e {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) notify(c Change) {
	for _, e := range s.observers {
		e.fn(c)
	}
}

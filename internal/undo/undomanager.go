/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package undo keeps the history of field edits made in a presentation
// session so they can be reverted in reverse order.
package undo

import (
	"sync"
	"time"

	"slidedeck/internal/domain"
)

// Edit is one reversible field change. Prev and Next hold values as accepted
// by domain.Slide.With. TS is when the edit was made.
type Edit struct {
	Slide int
	Field domain.Field
	Prev  any
	Next  any
	TS    time.Time
}

// size estimates the memory held by an edit; embedded images dominate.
func (e Edit) size() int {
	return valueSize(e.Prev) + valueSize(e.Next)
}

func valueSize(v any) int {
	switch x := v.(type) {
	case string:
		return len(x)
	case domain.Kind:
		return len(x)
	case []string:
		n := 0
		for _, s := range x {
			n += len(s)
		}
		return n
	}
	return 0
}

// Config controls memory and depth caps and coalescing behavior.
type Config struct {
	// MaxBytes is a soft cap; oldest edits are pruned when exceeded.
	MaxBytes int
	// MaxPerSlide limits the number of edits kept for one slide (0 means unlimited).
	MaxPerSlide int
	// MinInterval coalesces consecutive edits of the same slide field made
	// within the interval into one entry that keeps the earliest Prev.
	MinInterval time.Duration
}

// Manager is an undo/redo history across all slides, newest last.
// It is safe for concurrent use.
type Manager struct {
	cfg Config
	mu  sync.Mutex

	undo []Edit
	redo []Edit
	// accounting
	totalBytes int
}

func NewManager(cfg Config) *Manager {
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = 16 * 1024 * 1024 // 16 MiB
	}
	if cfg.MinInterval <= 0 {
		cfg.MinInterval = 250 * time.Millisecond
	}
	return &Manager{cfg: cfg}
}

// Push records an edit and clears the redo history. An edit of the same slide
// field within MinInterval of the previous one is merged into it.
func (m *Manager) Push(e Edit) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.redo = nil
	if n := len(m.undo); n > 0 {
		last := m.undo[n-1]
		if last.Slide == e.Slide && last.Field == e.Field && e.TS.Sub(last.TS) < m.cfg.MinInterval {
			m.totalBytes -= last.size()
			last.Next = e.Next
			last.TS = e.TS
			m.undo[n-1] = last
			m.totalBytes += last.size()
			m.enforceCapsLocked(e.Slide)
			return
		}
	}
	m.undo = append(m.undo, e)
	m.totalBytes += e.size()
	m.enforceCapsLocked(e.Slide)
}

// Undo pops the newest edit and moves it to the redo history.
func (m *Manager) Undo() (Edit, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.undo)
	if n == 0 {
		return Edit{}, false
	}
	e := m.undo[n-1]
	m.undo = m.undo[:n-1]
	m.totalBytes -= e.size()
	m.redo = append(m.redo, e)
	return e, true
}

// Redo pops the newest undone edit and moves it back to the undo history.
func (m *Manager) Redo() (Edit, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.redo)
	if n == 0 {
		return Edit{}, false
	}
	e := m.redo[n-1]
	m.redo = m.redo[:n-1]
	m.undo = append(m.undo, e)
	m.totalBytes += e.size()
	m.enforceCapsLocked(e.Slide)
	return e, true
}

// Clear forgets the whole history.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.undo, m.redo, m.totalBytes = nil, nil, 0
}

// CanUndo reports whether Undo would return an edit.
func (m *Manager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undo) > 0
}

// CanRedo reports whether Redo would return an edit.
func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.redo) > 0
}

// Stats returns current sizes for diagnostics.
func (m *Manager) Stats() (totalBytes int, slides int, totalEdits int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := make(map[int]struct{})
	for _, e := range m.undo {
		seen[e.Slide] = struct{}{}
	}
	return m.totalBytes, len(seen), len(m.undo)
}

func (m *Manager) enforceCapsLocked(slide int) {
	// Per-slide depth cap: drop the oldest edits of that slide.
	if m.cfg.MaxPerSlide > 0 {
		count := 0
		for _, e := range m.undo {
			if e.Slide == slide {
				count++
			}
		}
		if drop := count - m.cfg.MaxPerSlide; drop > 0 {
			keep := make([]Edit, 0, len(m.undo)-drop)
			for _, e := range m.undo {
				if drop > 0 && e.Slide == slide {
					drop--
					m.totalBytes -= e.size()
					continue
				}
				keep = append(keep, e)
			}
			m.undo = keep
		}
	}
	// Global memory cap: prune the oldest edits, but never the newest one.
	for m.cfg.MaxBytes > 0 && m.totalBytes > m.cfg.MaxBytes && len(m.undo) > 1 {
		m.totalBytes -= m.undo[0].size()
		m.undo = m.undo[1:]
	}
}

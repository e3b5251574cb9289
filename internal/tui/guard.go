/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package tui

import (
	"runtime/debug"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"slidedeck/internal/crash"
)

// bubbletea recovers panics in Update, View and commands so it can restore
// the terminal. guarded writes the crash report before that happens and lets
// the panic continue.
type guarded struct {
	tea.Model
	w *crashWatch
}

type crashWatch struct {
	target crash.Target
	once   sync.Once
	report string
}

func guard(m tea.Model, t crash.Target) guarded {
	return guarded{Model: m, w: &crashWatch{target: t}}
}

func (g guarded) Init() tea.Cmd {
	defer g.w.capture()
	return g.w.wrap(g.Model.Init())
}

func (g guarded) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer g.w.capture()
	m, cmd := g.Model.Update(msg)
	return guarded{Model: m, w: g.w}, g.w.wrap(cmd)
}

func (g guarded) View() string {
	defer g.w.capture()
	return g.Model.View()
}

// capture must be deferred directly.
func (w *crashWatch) capture() {
	if r := recover(); r != nil {
		w.once.Do(func() { w.report = crash.Capture(w.target, r, debug.Stack()) })
		panic(r)
	}
}

func (w *crashWatch) wrap(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		defer w.capture()
		msg := cmd()
		if batch, ok := msg.(tea.BatchMsg); ok {
			for i := range batch {
				batch[i] = w.wrap(batch[i])
			}
		}
		return msg
	}
}

// Report is the crash report path, or "" when nothing panicked.
func (w *crashWatch) Report() string { return w.report }

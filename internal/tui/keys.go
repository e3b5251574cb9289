/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Edit    key.Binding
	Field   key.Binding
	Open    key.Binding
	Image   key.Binding
	Undo    key.Binding
	Redo    key.Binding
	Reset   key.Binding
	Replay  key.Binding
	Dismiss key.Binding
	Save    key.Binding
	Cancel  key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Next:    key.NewBinding(key.WithKeys("right", " ", "space", "l"), key.WithHelp("→/space", "next")),
		Prev:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "back")),
		Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit mode")),
		Field:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit field")),
		Image:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "image")),
		Undo:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
		Redo:    key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "redo")),
		Reset:   key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset deck")),
		Replay:  key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "replay")),
		Dismiss: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "hide warning")),
		Save:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "apply")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Edit, k.Field, k.Open, k.Image, k.Undo, k.Redo, k.Reset, k.Replay, k.Dismiss, k.Save, k.Cancel, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Replay, k.Quit},
		{k.Edit, k.Field, k.Open, k.Image},
		{k.Undo, k.Redo, k.Reset, k.Dismiss},
	}
}

// forMode returns a copy with only the bindings that do something right now.
func (k keyMap) forMode(m mode, editing, canUndo, canRedo, warning bool) keyMap {
	nav := m == modeView && !editing
	k.Next.SetEnabled(nav)
	k.Prev.SetEnabled(nav)
	k.Edit.SetEnabled(m == modeView)
	k.Field.SetEnabled(m == modeView && editing)
	k.Open.SetEnabled(m == modeView && editing)
	k.Image.SetEnabled(m == modeView && editing)
	k.Undo.SetEnabled(m == modeView && canUndo)
	k.Redo.SetEnabled(m == modeView && canRedo)
	k.Reset.SetEnabled(m == modeView)
	k.Replay.SetEnabled(m == modeView)
	k.Dismiss.SetEnabled(m == modeView && warning)
	k.Save.SetEnabled(m == modeField)
	k.Cancel.SetEnabled(m == modeField || m == modeImage)
	k.Quit.SetEnabled(m == modeView)
	return k
}

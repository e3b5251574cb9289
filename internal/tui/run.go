/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"slidedeck/internal/crash"
	"slidedeck/internal/present"
)

// Run shows s full-screen until the user quits or ctx is cancelled.
// Cancellation is not an error. A panic is written to a crash report under
// ct and returned as *crash.Crashed.
func Run(ctx context.Context, s *present.Session, ct crash.Target) error {
	return run(ctx, New(ctx, s), ct, tea.WithAltScreen())
}

func run(ctx context.Context, m tea.Model, ct crash.Target, opts ...tea.ProgramOption) error {
	g := guard(m, ct)
	p := tea.NewProgram(g, append(opts, tea.WithContext(ctx))...)
	_, err := p.Run()
	if err != nil && (errors.Is(err, tea.ErrProgramPanic) || g.w.Report() != "") {
		return &crash.Crashed{Report: g.w.Report(), Err: err}
	}
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("run terminal presenter: %w", err)
	}
	return nil
}

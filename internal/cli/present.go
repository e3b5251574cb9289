/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"slidedeck/internal/crash"
	"slidedeck/internal/present"
	"slidedeck/internal/tui"
	"slidedeck/internal/ui"
)

const (
	rendererTUI  = "tui"
	rendererFyne = "fyne"
)

// NewPresentCommand creates the present command (terminal presenter).
func NewPresentCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "present",
		Short: "Present the deck in the terminal",
		Long: `Present the deck full-screen in the terminal.

Keys: → or space next, ← back, e edit mode, tab/enter pick and edit a field,
i set an image, u undo, ctrl+r redo, R reset the deck, q quit.`,
		Args:          exactArgs(0),
		SilenceUsage:  true,
		SilenceErrors: true,
		Annotations:   map[string]string{annotationPresenter: rendererTUI},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPresent(cmd, rootOpts, rendererTUI)
		},
	}
}

// NewUICommand creates the ui command (desktop presenter).
func NewUICommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "ui",
		Short:         "Present the deck in a desktop window (build with -tags fyne)",
		Args:          exactArgs(0),
		SilenceUsage:  true,
		SilenceErrors: true,
		Annotations:   map[string]string{annotationPresenter: rendererFyne},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPresent(cmd, rootOpts, rendererFyne)
		},
	}
}

func runPresent(cmd *cobra.Command, opts *RootOptions, renderer string) error {
	f := opts.formatter(cmd)
	ctx := cmd.Context()
	env, err := openDeck(ctx, opts.cfg)
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeStorage, "open deck", err)
	}
	defer func() { _ = env.Close() }()
	ct := crash.Target{DataDir: env.dataDir, Snapshot: env.store.Slides}
	defer crash.Recover(ct)

	sess := present.NewSession(env.store, env.saver, present.Options{
		Intro:         opts.cfg.Presentation.IntroDuration(),
		MaxImageBytes: opts.cfg.Ingest.MaxImageBytes,
	})
	if renderer == rendererFyne {
		err = ui.Run(ctx, sess)
	} else {
		err = tui.Run(ctx, sess, ct)
	}
	var crashed *crash.Crashed
	if errors.As(err, &crashed) {
		return f.Fail(ExitFailure, ErrCodeGeneric, "presenter crashed; crash report saved to "+crashed.Report, err)
	}
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeGeneric, "presenter failed", err)
	}
	return nil
}

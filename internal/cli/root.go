/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package cli is the slidedeck command line: the presenters plus scripted
// access to the persisted deck.
package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"slidedeck/internal/config"
	applog "slidedeck/internal/log"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Backend string
	DataDir string
	Slot    string

	cfg config.AppConfig
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// annotationPresenter marks commands that run a presenter. The value is the
// renderer, or "config" to use presentation.renderer.
const annotationPresenter = "presenter"

// NewRootCommand creates the root command. Without a subcommand it presents
// the deck with the configured renderer.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "slidedeck",
		Short:         "SlideDeck - present and edit a persistent slide deck",
		Long:          "Present, edit and export a slide deck whose edits are saved after every change and survive restarts.",
		Args:          exactArgs(0),
		SilenceUsage:  true,
		SilenceErrors: true,
		Annotations:   map[string]string{annotationPresenter: "config"},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)
			if !isValidFormat(opts.Format) {
				f.Format = "text"
				return f.Fail(ExitCommandError, ErrCodeUsage, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats), nil)
			}
			cfg, err := config.Load()
			if err != nil {
				return f.Fail(ExitCommandError, ErrCodeConfig, "load config", err)
			}
			opts.apply(&cfg)
			if err := cfg.Validate(); err != nil {
				return f.Fail(ExitCommandError, ErrCodeConfig, "invalid configuration", err)
			}
			opts.cfg = cfg
			initLogging(cmd, opts)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPresent(cmd, opts, opts.cfg.Presentation.Renderer)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Backend, "backend", "", "storage backend (file|sqlite|memory); default from config")
	cmd.PersistentFlags().StringVar(&opts.DataDir, "data-dir", "", "directory holding the saved deck; default from config")
	cmd.PersistentFlags().StringVar(&opts.Slot, "slot", "", "storage slot key; default "+config.DefaultSlot)
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		fmt.Fprintf(c.ErrOrStderr(), "Error: %v\nUsage: %s\n", err, c.UseLine())
		return WrapExitError(ExitCommandError, "invalid flags", err)
	})

	// Add subcommands
	cmd.AddCommand(NewPresentCommand(opts))
	cmd.AddCommand(NewUICommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewEditCommand(opts))
	cmd.AddCommand(NewSetImageCommand(opts))
	cmd.AddCommand(NewResetCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewBackupsCommand(opts))
	cmd.AddCommand(NewSchemaCommand(opts))
	cmd.AddCommand(NewVersionCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))

	return cmd
}

// apply layers the global flags over the loaded configuration.
func (o *RootOptions) apply(cfg *config.AppConfig) {
	if o.Backend != "" {
		cfg.Storage.Backend = o.Backend
	}
	if o.DataDir != "" {
		cfg.Storage.Dir = o.DataDir
	}
	if o.Slot != "" {
		cfg.Storage.Slot = o.Slot
	}
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// initLogging configures slog from the config. The terminal presenter owns
// the screen, so console logging is off while it runs.
func initLogging(cmd *cobra.Command, opts *RootOptions) {
	lc := opts.cfg.Logging
	lo := applog.Options{Level: lc.Level, Format: lc.Format, AddSource: lc.Source, File: lc.File}
	if opts.Verbose {
		lo.Level = "debug"
	}
	renderer := cmd.Annotations[annotationPresenter]
	if renderer == "config" {
		renderer = opts.cfg.Presentation.Renderer
	}
	lo.Quiet = renderer == rendererTUI
	applog.Init(lo)
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// exactArgs is cobra.ExactArgs reporting a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\nUsage: %s\n", err, cmd.UseLine())
			return WrapExitError(ExitCommandError, "invalid arguments", err)
		}
		return nil
	}
}

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"slidedeck/internal/domain"
)

// EditResult is the edit and set-image payload.
type EditResult struct {
	Number  int          `json:"number"`
	Field   domain.Field `json:"field"`
	Changed bool         `json:"changed"`
}

// NewEditCommand creates the edit command.
func NewEditCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <n> <field> <value>",
		Short: "Set one field of slide n and save the deck",
		Long: `Set one field of slide n (1-based) and save the deck.

Fields: title, subtitle, content, tags, imageUrl, accentColor, type.
Tags are comma separated. Type is one of hero, grid, split, quote, stats,
image, process, footer.`,
		Args:          exactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(rootOpts, args, cmd)
		},
	}
}

func runEdit(opts *RootOptions, args []string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	env, err := openDeck(cmd.Context(), opts.cfg)
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeStorage, "open deck", err)
	}
	defer func() { _ = env.Close() }()

	idx, err := slideIndex(args[0], env.store.Len())
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeUsage, err.Error(), nil)
	}
	fld, err := domain.ParseField(args[1])
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeValue, err.Error(), nil)
	}
	return applyEdit(f, env, idx, fld, domain.ParseValue(fld, args[2]))
}

// applyEdit updates one field, checks the write-through and reports.
func applyEdit(f *OutputFormatter, env *deckEnv, idx int, fld domain.Field, value any) error {
	before, _ := env.store.At(idx)
	next, err := env.store.UpdateField(idx, fld, value)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeValue, "invalid value", err)
	}
	if err := env.saved(); err != nil {
		return f.Fail(ExitFailure, ErrCodeStorage, "save deck", err)
	}
	res := EditResult{Number: idx + 1, Field: fld, Changed: !next[idx].Equal(before)}
	if f.JSON() {
		return f.Success(res)
	}
	if !res.Changed {
		fmt.Fprintf(f.Writer, "Slide %d %s unchanged.\n", res.Number, res.Field)
		return nil
	}
	fmt.Fprintf(f.Writer, "Updated slide %d %s.\n", res.Number, res.Field)
	return nil
}

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
	"strings"

	"github.com/spf13/cobra"

	"slidedeck/internal/domain"
	"slidedeck/internal/ingest"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show <n>",
		Short:         "Print every field of slide n (1-based)",
		Args:          exactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, args[0], cmd)
		},
	}
}

func runShow(opts *RootOptions, arg string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	env, err := openDeck(cmd.Context(), opts.cfg)
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeStorage, "open deck", err)
	}
	defer func() { _ = env.Close() }()

	idx, err := slideIndex(arg, env.store.Len())
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeUsage, err.Error(), nil)
	}
	s, _ := env.store.At(idx)
	if f.JSON() {
		return f.Success(s)
	}

	w := f.Writer
	fmt.Fprintf(w, "Slide %d of %d (id %d, %s)\n", idx+1, env.store.Len(), s.ID, s.Type)
	for _, fld := range domain.EditableFields() {
		if fld == domain.FieldType {
			continue
		}
		v, _ := s.Get(fld)
		text := domain.FormatValue(v)
		if fld == domain.FieldImageURL && s.HasEmbeddedImage() {
			text = describeEmbedded(s.ImageURL)
		}
		fmt.Fprintf(w, "%-12s %s\n", string(fld)+":", text)
	}
	return nil
}

func describeEmbedded(u string) string {
	data, mt, err := ingest.DecodeDataURL(u)
	if err != nil {
		return "embedded image (unreadable)"
	}
	return fmt.Sprintf("embedded %s (%d bytes)", strings.TrimSpace(mt), len(data))
}

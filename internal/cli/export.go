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
	"path/filepath"

	"github.com/spf13/cobra"

	"slidedeck/internal/export"
	"slidedeck/internal/version"
)

// ExportResult is the export payload.
type ExportResult struct {
	Path  string `json:"path"`
	Pages int    `json:"pages"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		title      string
		slides     []int
		skipImages bool
	)
	cmd := &cobra.Command{
		Use:           "export <out.pdf>",
		Short:         "Write the deck as a PDF handout, one page per slide",
		Args:          exactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(rootOpts, args[0], title, slides, skipImages, cmd)
		},
	}
	cmd.Flags().StringVar(&title, "title", "SlideDeck", "document title")
	cmd.Flags().IntSliceVar(&slides, "slides", nil, "1-based slide numbers to export (default all)")
	cmd.Flags().BoolVar(&skipImages, "skip-images", false, "do not embed images")
	return cmd
}

func runExport(opts *RootOptions, out, title string, numbers []int, skipImages bool, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	env, err := openDeck(cmd.Context(), opts.cfg)
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeStorage, "open deck", err)
	}
	defer func() { _ = env.Close() }()

	var idx []int
	for _, n := range numbers {
		i, err := slideIndex(fmt.Sprint(n), env.store.Len())
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeUsage, err.Error(), nil)
		}
		idx = append(idx, i)
	}
	abs, err := filepath.Abs(out)
	if err != nil {
		abs = out
	}
	opt := export.PDFOptions{Title: title, Author: version.String(), SkipImages: skipImages, Slides: idx}
	if err := export.PDF(env.store.Slides(), abs, opt); err != nil {
		return f.Fail(ExitFailure, ErrCodeExport, "export pdf", err)
	}
	res := ExportResult{Path: abs, Pages: len(idx)}
	if res.Pages == 0 {
		res.Pages = env.store.Len()
	}
	if f.JSON() {
		return f.Success(res)
	}
	fmt.Fprintf(f.Writer, "Exported %d pages to %s\n", res.Pages, res.Path)
	return nil
}

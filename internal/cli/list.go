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
	"text/tabwriter"

	"github.com/spf13/cobra"

	"slidedeck/internal/domain"
)

// SlideSummary is one row of the list output.
type SlideSummary struct {
	Number int         `json:"number"`
	ID     int         `json:"id"`
	Type   domain.Kind `json:"type"`
	Title  string      `json:"title"`
	Accent string      `json:"accentColor"`
	Image  string      `json:"image"` // "", "url" or "embedded"
}

// ListResult is the list command payload.
type ListResult struct {
	Source string         `json:"source"`
	Slot   string         `json:"slot"`
	Slides []SlideSummary `json:"slides"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List the slides of the saved deck",
		Args:          exactArgs(0),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, cmd)
		},
	}
}

func runList(opts *RootOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	env, err := openDeck(cmd.Context(), opts.cfg)
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeStorage, "open deck", err)
	}
	defer func() { _ = env.Close() }()

	res := ListResult{Source: env.store.Source().String(), Slot: env.gw.Slot()}
	for i, s := range env.store.Slides() {
		res.Slides = append(res.Slides, SlideSummary{
			Number: i + 1,
			ID:     s.ID,
			Type:   s.Type,
			Title:  s.Title,
			Accent: s.AccentColor,
			Image:  imageKind(s),
		})
	}
	f.VerboseLog("%d slides from %s (slot %s)", len(res.Slides), res.Source, res.Slot)
	if f.JSON() {
		return f.Success(res)
	}

	tw := tabwriter.NewWriter(f.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTYPE\tACCENT\tIMAGE\tTITLE")
	for _, s := range res.Slides {
		img := s.Image
		if img == "" {
			img = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", s.Number, s.Type, s.Accent, img, s.Title)
	}
	return tw.Flush()
}

func imageKind(s domain.Slide) string {
	switch {
	case s.ImageURL == "":
		return ""
	case s.HasEmbeddedImage():
		return "embedded"
	}
	return "url"
}

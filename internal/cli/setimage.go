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

	"slidedeck/internal/domain"
	"slidedeck/internal/ingest"
)

// NewSetImageCommand creates the set-image command.
func NewSetImageCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "set-image <n> <path>",
		Short:         "Embed an image file in slide n (at most max_image_bytes, 2 MiB by default)",
		Args:          exactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetImage(rootOpts, args, cmd)
		},
	}
}

func runSetImage(opts *RootOptions, args []string, cmd *cobra.Command) error {
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
	req := ingest.Request{Target: idx, Path: args[1], MaxBytes: opts.cfg.Ingest.MaxImageBytes}
	res := <-req.Start(cmd.Context())
	switch {
	case errors.Is(res.Err, ingest.ErrTooLarge):
		return f.Fail(ExitFailure, ErrCodeImage, "image is too large", res.Err)
	case errors.Is(res.Err, ingest.ErrNotImage):
		return f.Fail(ExitFailure, ErrCodeImage, "file is not a supported image", res.Err)
	case res.Err != nil:
		return f.Fail(ExitFailure, ErrCodeImage, "read image", res.Err)
	}
	f.VerboseLog("encoded %s %dx%d (%d bytes)", res.Image.Format, res.Image.Width, res.Image.Height, res.Image.Size)
	return applyEdit(f, env, res.Target, domain.FieldImageURL, res.Image.DataURL)
}

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// ResetResult is the reset payload.
type ResetResult struct {
	Reset bool `json:"reset"`
}

// NewResetCommand creates the reset command.
func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:           "reset",
		Short:         "Restore the default deck and clear the saved slot",
		Args:          exactArgs(0),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReset(rootOpts, yes, cmd)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func runReset(opts *RootOptions, yes bool, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	if !yes && !confirm(cmd, "Reset the deck to its defaults? Saved changes are cleared. [y/N]: ") {
		if f.JSON() {
			return f.Success(ResetResult{Reset: false})
		}
		fmt.Fprintln(f.Writer, "Reset cancelled.")
		return nil
	}

	env, err := openDeck(cmd.Context(), opts.cfg)
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeStorage, "open deck", err)
	}
	defer func() { _ = env.Close() }()

	env.store.Reset()
	if err := env.saved(); err != nil {
		return f.Fail(ExitFailure, ErrCodeStorage, "clear saved deck", err)
	}
	if f.JSON() {
		return f.Success(ResetResult{Reset: true})
	}
	fmt.Fprintln(f.Writer, "Deck reset to defaults.")
	return nil
}

func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

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
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"slidedeck/internal/storage"
)

// BackupEntry is one earlier value of the slot.
type BackupEntry struct {
	Number  int       `json:"number"`
	SavedAt time.Time `json:"savedAt"`
	Bytes   int       `json:"bytes"`
	Slides  int       `json:"slides"` // 0 when the value is not a valid deck
	Title   string    `json:"title,omitempty"`
}

// RestoreResult is the backups restore payload.
type RestoreResult struct {
	Number  int       `json:"number"`
	SavedAt time.Time `json:"savedAt"`
	Slides  int       `json:"slides"`
}

// NewBackupsCommand creates the backups command group.
func NewBackupsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backups",
		Short: "List or restore earlier versions of the saved deck",
		Long: `The file backend keeps the last max_backups versions of the slot as
backup files; the sqlite backend keeps them in a history table. Every save
and every reset adds one, so a reset can be undone with "backups restore".`,
	}
	cmd.AddCommand(&cobra.Command{
		Use:           "list",
		Short:         "List earlier versions, newest first",
		Args:          exactArgs(0),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackupsList(rootOpts, cmd)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:           "restore [n]",
		Short:         "Write version n (default 1, the newest) back into the slot",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			n := "1"
			if len(args) == 1 {
				n = args[0]
			}
			return runBackupsRestore(rootOpts, n, cmd)
		},
	})
	return cmd
}

// history opens the deck and reads the slot history.
func history(f *OutputFormatter, opts *RootOptions, cmd *cobra.Command) (*deckEnv, []storage.Version, error) {
	env, err := openDeck(cmd.Context(), opts.cfg)
	if err != nil {
		return nil, nil, f.Fail(ExitFailure, ErrCodeStorage, "open deck", err)
	}
	h, ok := env.kv.(storage.Historian)
	if !ok {
		_ = env.Close()
		return nil, nil, f.Fail(ExitCommandError, ErrCodeConfig, fmt.Sprintf("backend %s keeps no backups", opts.cfg.Storage.Backend), nil)
	}
	versions, err := h.History(cmd.Context(), env.gw.Slot())
	if err != nil {
		_ = env.Close()
		return nil, nil, f.Fail(ExitFailure, ErrCodeStorage, "read backups", err)
	}
	return env, versions, nil
}

func runBackupsList(opts *RootOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	env, versions, err := history(f, opts, cmd)
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	entries := make([]BackupEntry, 0, len(versions))
	for i, v := range versions {
		e := BackupEntry{Number: i + 1, SavedAt: v.SavedAt, Bytes: len(v.Value)}
		if list, err := storage.Decode(v.Value); err == nil {
			e.Slides = len(list)
			e.Title = list[0].Title
		}
		entries = append(entries, e)
	}
	if f.JSON() {
		return f.Success(entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(f.Writer, "No backups.")
		return nil
	}
	tw := tabwriter.NewWriter(f.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSAVED\tBYTES\tSLIDES\tFIRST TITLE")
	for _, e := range entries {
		slides, title := strconv.Itoa(e.Slides), e.Title
		if e.Slides == 0 {
			slides, title = "-", "(not a valid deck)"
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n", e.Number, e.SavedAt.Local().Format(time.DateTime), e.Bytes, slides, title)
	}
	return tw.Flush()
}

func runBackupsRestore(opts *RootOptions, arg string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	env, versions, err := history(f, opts, cmd)
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	if len(versions) == 0 {
		return f.Fail(ExitFailure, ErrCodeStorage, "no backups to restore", nil)
	}
	idx, err := slideIndex(arg, len(versions))
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeUsage, fmt.Sprintf("backup number must be between 1 and %d", len(versions)), err)
	}
	v := versions[idx]
	list, err := storage.Decode(v.Value)
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeStorage, fmt.Sprintf("backup %d is not a valid deck", idx+1), err)
	}
	if err := env.gw.Save(cmd.Context(), list); err != nil {
		return f.Fail(ExitFailure, ErrCodeStorage, "save deck", err)
	}
	res := RestoreResult{Number: idx + 1, SavedAt: v.SavedAt, Slides: len(list)}
	if f.JSON() {
		return f.Success(res)
	}
	fmt.Fprintf(f.Writer, "Restored backup %d (%d slides).\n", res.Number, res.Slides)
	return nil
}

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
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"slidedeck/internal/config"
)

// ConfigResult is the config show payload.
type ConfigResult struct {
	Path      string            `json:"path"`
	Config    config.AppConfig  `json:"config"`
	Overrides map[string]string `json:"overrides,omitempty"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:           "path",
		Short:         "Print the config file location",
		Args:          exactArgs(0),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			p, err := config.ConfigPath()
			if err != nil {
				return f.Fail(ExitFailure, ErrCodeConfig, "resolve config path", err)
			}
			return f.Success(p)
		},
	})
	var force bool
	initCmd := &cobra.Command{
		Use:           "init",
		Short:         "Write the effective configuration to the config file",
		Args:          exactArgs(0),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(rootOpts, force, cmd)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	cmd.AddCommand(initCmd)
	cmd.AddCommand(&cobra.Command{
		Use:           "show",
		Short:         "Print the effective configuration (file, environment and flags merged)",
		Args:          exactArgs(0),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(rootOpts, cmd)
		},
	})
	return cmd
}

// InitResult is the config init payload.
type InitResult struct {
	Path string `json:"path"`
}

func runConfigInit(opts *RootOptions, force bool, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	p, err := config.ConfigPath()
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeConfig, "resolve config path", err)
	}
	if _, err := os.Stat(p); err == nil && !force {
		return f.Fail(ExitCommandError, ErrCodeConfig, p+" already exists; use --force to overwrite", nil)
	}
	if err := config.Save(opts.cfg); err != nil {
		return f.Fail(ExitFailure, ErrCodeConfig, "write config", err)
	}
	if f.JSON() {
		return f.Success(InitResult{Path: p})
	}
	fmt.Fprintf(f.Writer, "Wrote %s\n", p)
	return nil
}

func runConfigShow(opts *RootOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	p, err := config.ConfigPath()
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeConfig, "resolve config path", err)
	}
	res := ConfigResult{Path: p, Config: opts.cfg, Overrides: map[string]string{}}
	for _, k := range config.OverridableKeys() {
		if env, ok := config.EnvOverrideFor(k); ok {
			res.Overrides[k] = env
		}
	}
	if f.JSON() {
		return f.Success(res)
	}
	out, err := yaml.Marshal(opts.cfg)
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeConfig, "encode config", err)
	}
	fmt.Fprintf(f.Writer, "# %s\n", p)
	for _, k := range config.OverridableKeys() {
		if env, ok := res.Overrides[k]; ok {
			fmt.Fprintf(f.Writer, "# %s is overridden by %s\n", k, env)
		}
	}
	_, err = f.Writer.Write(out)
	return err
}

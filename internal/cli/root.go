// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package cli implements the nilopt command line tool.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

// ErrIncomplete is returned when a harvest ended with a fatal status.
var ErrIncomplete = errors.New("harvest incomplete")

// globalOptions are the flags shared by all commands.
type globalOptions struct {
	configFile string
	verbose    bool
}

// NewRootCommand creates the nilopt command tree.
func NewRootCommand() *cobra.Command {
	var global globalOptions

	root := &cobra.Command{
		Use:           "nilopt [command]",
		Short:         "nilopt finds declarations sharing nil values.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: `nilopt finds groups of fields, variables, parameters and results that
share nil values. Each group is a candidate for an optional type.`,
	}

	root.CompletionOptions.DisableDefaultCmd = true

	flags := root.PersistentFlags()
	flags.StringVarP(&global.configFile, "config", "c", "", "Path to a YAML configuration file.")
	flags.BoolVarP(&global.verbose, "verbose", "v", false, "Log progress to standard error.")

	root.AddCommand(
		newHarvestCommand(&global),
		newConfigCommand(&global),
	)

	return root
}

// Execute runs the command line tool and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)

		return 1
	}

	return 0
}

// logger returns a text logger on the command's error stream.
func (g *globalOptions) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if g.verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

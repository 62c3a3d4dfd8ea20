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

package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"fillmore-labs.com/nilopt/internal/config"
	"fillmore-labs.com/nilopt/internal/facade"
	"fillmore-labs.com/nilopt/internal/harvest"
	"fillmore-labs.com/nilopt/internal/report"
)

const exampleHarvestUsage = `  # Harvest all packages of the current module
  nilopt harvest ./...

  # Seed only from one package, but search the whole module
  nilopt harvest --root example.com/mod/store ./...

  # Seed from a single declaration and write SARIF
  nilopt harvest --decl example.com/mod/store.Lookup --format sarif -o nilopt.sarif ./...`

type harvestOptions struct {
	*globalOptions

	settings settingsFlags
	format   format
	output   string
	dir      string
	tests    bool
	roots    []string
	decl     string
}

func newHarvestCommand(global *globalOptions) *cobra.Command {
	o := harvestOptions{globalOptions: global, format: formatText}

	cmd := &cobra.Command{
		Use:     "harvest [flags] [packages]",
		Short:   "Find groups of declarations sharing nil values",
		Example: exampleHarvestUsage,
		RunE:    o.run,
	}

	flags := cmd.Flags()
	flags.VarP(&o.format, "format", "f", "Report format: text, json or sarif.")
	flags.StringVarP(&o.output, "output", "o", "", "Write the report to a file instead of standard output.")
	flags.StringVarP(&o.dir, "dir", "C", "", "Load packages relative to this directory.")
	flags.BoolVar(&o.tests, "tests", false, "Include test packages.")
	flags.StringSliceVar(&o.roots, "root", nil, "Seed only from these package paths.")
	flags.StringVar(&o.decl, "decl", "", "Seed only from this declaration, as package.Name.")
	cmd.MarkFlagsMutuallyExclusive("root", "decl")

	o.settings.register(flags)

	return cmd
}

func (o *harvestOptions) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := o.logger(cmd)

	settings, threshold, err := o.settings.resolve(cmd, o.configFile)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		args = []string{"./..."}
	}

	pkgs, err := load(ctx, logger, o.dir, o.tests, args...)
	if err != nil {
		return err
	}

	generated := settings.Behavior.Enabled(config.IncludeGenerated)

	program, err := facade.FromPackages(ctx, pkgs, facade.WithGenerated(generated))
	if err != nil {
		return err
	}

	root, err := selectRoot(program, o.roots, o.decl)
	if err != nil {
		return err
	}

	result, err := harvest.New(program, settings, harvest.WithLogger(logger)).Harvest(ctx, root)
	if err != nil {
		return err
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Harvest finished",
		slog.Int("groups", len(result.Groups)), slog.Bool("complete", result.Complete))

	doc := report.NewDocument(program, result, o.base()).Above(threshold)

	if err := o.write(cmd, doc); err != nil {
		return err
	}

	if !result.Complete {
		return fmt.Errorf("%w: %s", ErrIncomplete, result.Status.Severity())
	}

	return nil
}

// base returns the directory report paths are relative to.
func (o *harvestOptions) base() string {
	dir := o.dir
	if dir == "" {
		dir = "."
	}

	base, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}

	return base
}

func (o *harvestOptions) write(cmd *cobra.Command, doc report.Document) (err error) {
	var w io.Writer = cmd.OutOrStdout()

	if o.output != "" {
		f, cerr := os.Create(o.output)
		if cerr != nil {
			return fmt.Errorf("can't create report: %w", cerr)
		}

		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()

		w = f
	}

	switch o.format {
	case formatJSON:
		return report.WriteJSON(w, doc)

	case formatSARIF:
		return report.WriteSARIF(w, doc)

	default:
		f, ok := w.(*os.File)

		return report.WriteText(w, doc, ok && report.Colorize(f))
	}
}

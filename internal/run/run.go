// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
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

package run

import (
	"context"
	"errors"
	"fmt"
	"runtime/trace"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/nilopt/internal/config"
	"fillmore-labs.com/nilopt/internal/facade"
	"fillmore-labs.com/nilopt/internal/harvest"
	"fillmore-labs.com/nilopt/internal/report"
)

// ErrResultMissing is returned when a required analyzer result is missing.
// This typically indicates a configuration error where the analyzer's
// Requires field is not properly set.
var ErrResultMissing = errors.New("analyzer result missing")

// Run executes the nilopt pipeline on a single package.
func (r *Options) Run(p *analysis.Pass) (any, error) {
	// Retrieves the [inspector.Inspector] from the pass results.
	in, ok := p.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	if !ok {
		return nil, fmt.Errorf("nilopt: %s %w", inspect.Analyzer.Name, ErrResultMissing)
	}

	ctx := context.Background()

	ctx, task := trace.NewTask(ctx, "NilOpt")
	defer task.End()

	trace.Log(ctx, "package", p.Pkg.Path())

	// Stage 1: index all occurrences of the package
	generated := r.Settings.Behavior.Enabled(config.IncludeGenerated)

	program, err := facade.FromPass(ctx, p, in, facade.WithGenerated(generated))
	if err != nil {
		return nil, fmt.Errorf("nilopt: %w", err)
	}

	// Stage 2: seed and propagate to the fixpoint
	h := harvest.New(program, r.Settings, harvest.WithLogger(r.Logger))

	result, err := h.Harvest(ctx, program.Root())
	if err != nil {
		return nil, fmt.Errorf("nilopt: %w", err)
	}

	// Stage 3: report groups and findings
	report.Diagnostics(ctx, p, program, result, r.Threshold)

	return nil, nil
}

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

// Package harvest runs the fixpoint computation partitioning nil-carrying
// elements into groups that must be converted together.
package harvest

import (
	"context"
	"errors"
	"fmt"
	"go/types"
	"log/slog"
	"maps"
	"runtime/trace"
	"slices"

	"fillmore-labs.com/nilopt/internal/config"
	"fillmore-labs.com/nilopt/internal/element"
	"fillmore-labs.com/nilopt/internal/entities"
	"fillmore-labs.com/nilopt/internal/facade"
	"fillmore-labs.com/nilopt/internal/failure"
	"fillmore-labs.com/nilopt/internal/flow"
	"fillmore-labs.com/nilopt/internal/status"
	"fillmore-labs.com/nilopt/internal/worklist"
)

// ErrCancelled is returned when the context of a run is done before it finishes.
var ErrCancelled = errors.New("nilopt: harvest cancelled")

// Result is the outcome of a harvest run.
type Result struct {
	// Status aggregates seeding failures, condemned searches and group findings.
	Status status.Status

	// Groups is the final partition, empty when the run did not complete.
	Groups []entities.Group

	// NotRefactorable are the elements excluded from every group, ordered by position.
	NotRefactorable []*types.Var

	// Complete is false when the run was aborted by a fatal failure.
	Complete bool
}

// Harvester computes the groups of a program.
type Harvester struct {
	program  *facade.Program
	settings config.Settings
	logger   *slog.Logger
}

// Option configures a [Harvester].
type Option func(*Harvester)

// WithLogger sets the logger for progress and failure messages.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harvester) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// New creates a [Harvester] for the given program.
func New(program *facade.Program, settings config.Settings, opts ...Option) *Harvester {
	h := &Harvester{
		program:  program,
		settings: settings,
		logger:   slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Harvest seeds from the root and propagates until no element is left to search.
//
// A fatal failure results in an incomplete [Result] with a fatal status.
// Cancellation returns [ErrCancelled] and no result.
func (h *Harvester) Harvest(ctx context.Context, root facade.Root) (*Result, error) {
	ctx, task := trace.NewTask(ctx, "harvest")
	defer task.End()

	r := &run{
		Harvester:   h,
		ctx:         ctx,
		work:        worklist.New(),
		nr:          make(map[*types.Var]struct{}),
		occurrences: make(map[*types.Var][]flow.Occurrence),
	}

	if err := r.cancelled(); err != nil {
		return nil, err
	}

	if fail := r.seed(root); fail != nil {
		return r.abort(fail), nil
	}

	if err := r.propagate(); err != nil {
		var fail *failure.Failure
		if errors.As(err, &fail) {
			return r.abort(fail), nil
		}

		return nil, err
	}

	return r.finalize(root), nil
}

// run holds the state of a single harvest.
type run struct {
	*Harvester

	ctx         context.Context //nolint:containedctx
	work        *worklist.WorkList
	nr          map[*types.Var]struct{}
	occurrences map[*types.Var][]flow.Occurrence
	status      status.Status
}

func (r *run) cancelled() error {
	if r.ctx.Err() == nil {
		return nil
	}

	return fmt.Errorf("%w: %w", ErrCancelled, context.Cause(r.ctx))
}

func (r *run) seed(root facade.Root) *failure.Failure {
	defer trace.StartRegion(r.ctx, "seed").End()

	result, fail := flow.NewSeeder(r.program, r.settings).Seed(root)
	if fail != nil {
		return fail
	}

	for _, f := range result.Failures {
		r.record(f)
	}

	r.condemn(result.NotRefactorable...)
	r.work.AddAll(nil, result.Discoveries...)
	r.occur(result.Occurrences)
	r.work.RemoveAll(slices.Collect(maps.Keys(r.nr))...)

	usable := 0

	for _, v := range r.work.Forest().Elements() {
		if _, ok := r.nr[v]; !ok {
			usable++
		}
	}

	r.logger.LogAttrs(r.ctx, slog.LevelDebug, "Seeded",
		slog.Int("candidates", usable), slog.Int("failures", len(result.Failures)))

	if usable == 0 {
		return failure.New(failure.NoCandidates, nil, nil, "")
	}

	return nil
}

func (r *run) propagate() error {
	defer trace.StartRegion(r.ctx, "propagate").End()

	propagator := flow.NewPropagator(r.program, r.settings)

	for r.work.HasNext() {
		if err := r.cancelled(); err != nil {
			return err
		}

		x := r.work.Next()

		f, fail := r.search(propagator, x)

		switch {
		case fail == nil:
			r.work.AddAll(x, f.Discoveries...)
			r.occur(f.Occurrences)
			r.evictCondemned(f.Vars())

		case fail.Fatal():
			return fail

		default:
			r.reject(x, f, fail)
		}
	}

	return nil
}

// search finds and classifies all matches of x.
//
// A local failure rejects the whole search, but the remaining matches are still
// classified: the returned flow holds everything reachable from x in this search.
// A fatal failure stops immediately.
func (r *run) search(propagator flow.Propagator, x *types.Var) (flow.Flow, *failure.Failure) {
	defer trace.StartRegion(r.ctx, "search").End()

	var f flow.Flow

	matches, fail := r.program.Search(x)
	if fail != nil {
		return f, fail
	}

	var first *failure.Failure

	for _, m := range matches {
		if m.Accuracy != facade.Exact || m.InDocComment {
			continue
		}

		mf, fail := propagator.Propagate(m)

		switch {
		case fail == nil:
			f.Append(mf)

		case fail.Fatal():
			return flow.Flow{}, fail

		case first == nil:
			first = fail
		}
	}

	r.logger.LogAttrs(r.ctx, slog.LevelDebug, "Searched",
		slog.String("element", r.describe(x)), slog.Int("matches", len(matches)),
		slog.Int("discovered", len(f.Discoveries)), slog.Bool("rejected", first != nil))

	return f, first
}

// reject condemns x, everything discovered through it and the elements
// the failed search found that are not yet part of the forest.
func (r *run) reject(x *types.Var, partial flow.Flow, fail *failure.Failure) {
	sub := r.work.Subtree(x)

	forest := r.work.Forest()
	for _, v := range partial.Vars() {
		if !forest.Contains(v) && !slices.Contains(sub, v) {
			sub = append(sub, v)
		}
	}

	r.condemn(sub...)
	r.work.RemoveAll(sub...)

	for _, v := range sub {
		delete(r.occurrences, v)
	}

	r.record(fail)
}

func (r *run) evictCondemned(vars []*types.Var) {
	var evict []*types.Var

	for _, v := range vars {
		if _, ok := r.nr[v]; ok {
			evict = append(evict, v)
		}
	}

	r.work.RemoveAll(evict...)
}

func (r *run) condemn(vars ...*types.Var) {
	for _, v := range vars {
		r.nr[v] = struct{}{}
	}
}

func (r *run) occur(occurrences []flow.Occurrence) {
	for _, o := range occurrences {
		if _, ok := r.nr[o.Var]; ok {
			continue
		}

		r.occurrences[o.Var] = append(r.occurrences[o.Var], o)
	}
}

func (r *run) record(fail *failure.Failure) {
	e := r.settings.Entry(fail)
	r.status.Add(e)

	r.logger.LogAttrs(r.ctx, slog.LevelInfo, "Precondition failed",
		slog.String("kind", fail.Kind.String()),
		slog.String("severity", e.Severity.String()),
		slog.String("message", e.Message),
		slog.String("position", r.program.Fset().Position(fail.Pos).String()))
}

func (r *run) abort(fail *failure.Failure) *Result {
	r.record(fail)

	return &Result{Status: r.status, NotRefactorable: r.notRefactorable(), Complete: false}
}

func (r *run) finalize(root facade.Root) *Result {
	defer trace.StartRegion(r.ctx, "finalize").End()

	forest, removed := r.work.Forest().Trim(r.nr)
	r.condemn(removed...)

	groups := entities.Build(r.settings, entities.Input{
		Fset:        r.program.Fset(),
		Components:  forest.Components(),
		Implicit:    forest.Implicit,
		Occurrences: r.occurrences,
		Roots:       root.Packages(),
	})

	for _, g := range groups {
		r.status.Merge(g.Status)
	}

	r.logger.LogAttrs(r.ctx, slog.LevelDebug, "Harvested",
		slog.Int("groups", len(groups)), slog.Int("notRefactorable", len(r.nr)))

	return &Result{Status: r.status, Groups: groups, NotRefactorable: r.notRefactorable(), Complete: true}
}

func (r *run) notRefactorable() []*types.Var {
	vars := slices.Collect(maps.Keys(r.nr))
	slices.SortFunc(vars, element.Compare)

	return vars
}

func (r *run) describe(v *types.Var) string {
	return fmt.Sprintf("%s (%s at %s)", v.Name(), element.KindOf(v), r.program.Fset().Position(v.Pos()))
}

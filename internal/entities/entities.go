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

// Package entities builds the final partition of a harvest run: groups of
// elements that must change their type together.
package entities

import (
	"cmp"
	"fmt"
	"go/token"
	"go/types"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/tools/go/types/objectpath"

	"fillmore-labs.com/nilopt/internal/config"
	"fillmore-labs.com/nilopt/internal/element"
	"fillmore-labs.com/nilopt/internal/failure"
	"fillmore-labs.com/nilopt/internal/flow"
	"fillmore-labs.com/nilopt/internal/status"
)

// namespace is the UUID namespace of group IDs.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://fillmore-labs.com/nilopt"))

// Element is a member of a [Group].
type Element struct {
	Var      *types.Var
	Kind     element.Kind
	Implicit bool
}

// Group is a maximal set of elements connected by value flow.
type Group struct {
	// ID is derived from the group's elements and stable across runs.
	ID uuid.UUID

	// Elements are ordered by declaration position.
	Elements []Element

	// Occurrences of all elements, ordered by position.
	Occurrences []flow.Occurrence

	// Status holds the group-level findings.
	Status status.Status
}

// Contains reports whether v is a member of the group.
func (g *Group) Contains(v *types.Var) bool {
	return slices.ContainsFunc(g.Elements, func(e Element) bool { return e.Var == v })
}

// Vars returns the elements of the group.
func (g *Group) Vars() []*types.Var {
	vars := make([]*types.Var, len(g.Elements))
	for i, e := range g.Elements {
		vars[i] = e.Var
	}

	return vars
}

// Input is the state of a finished harvest run.
type Input struct {
	// Fset positions local elements for their keys.
	Fset *token.FileSet

	// Components are the connected element sets of the trimmed forest.
	Components [][]*types.Var

	// Implicit reports whether an element was only discovered implicitly.
	Implicit func(*types.Var) bool

	// Occurrences of the elements.
	Occurrences map[*types.Var][]flow.Occurrence

	// Roots are the packages seeding started from.
	Roots []*types.Package
}

// Build creates one [Group] per component.
func Build(settings config.Settings, in Input) []Group {
	groups := make([]Group, 0, len(in.Components))

	for _, component := range in.Components {
		g := Group{Elements: make([]Element, 0, len(component))}

		keys := make([]string, 0, len(component))

		for _, v := range component {
			e := Element{Var: v, Kind: element.KindOf(v)}
			if in.Implicit != nil {
				e.Implicit = in.Implicit(v)
			}

			g.Elements = append(g.Elements, e)
			g.Occurrences = append(g.Occurrences, in.Occurrences[v]...)
			keys = append(keys, Key(in.Fset, v))

			for _, f := range check(settings, in.Roots, e) {
				g.Status.Add(settings.Entry(f))
			}
		}

		slices.SortStableFunc(g.Occurrences, func(a, b flow.Occurrence) int {
			return cmp.Or(cmp.Compare(a.Pos, b.Pos), cmp.Compare(a.End, b.End))
		})

		g.Occurrences = slices.Compact(g.Occurrences)
		g.ID = uuid.NewSHA1(namespace, []byte(strings.Join(keys, "\n")))

		groups = append(groups, g)
	}

	return groups
}

// check returns the group-level failures of one element.
func check(settings config.Settings, roots []*types.Package, e Element) []*failure.Failure {
	var failures []*failure.Failure

	category := config.CategoryOf(e.Kind)
	if !settings.Eligible.Enabled(category) {
		failures = append(failures, failure.New(failure.Ineligible, nil, e.Var, "%s", e.Kind))
	} else if e.Implicit && !settings.Eligible.Enabled(config.ImplicitFields) {
		failures = append(failures, failure.New(failure.Ineligible, nil, e.Var, "implicit %s", e.Kind))
	}

	if !settings.Behavior.Enabled(config.CrossPackage) && !slices.Contains(roots, e.Var.Pkg()) {
		failures = append(failures, failure.New(failure.ForeignPackage, nil, e.Var, "%s", e.Var.Pkg().Path()))
	}

	for _, f := range failures {
		f.Pos, f.End = e.Var.Pos(), e.Var.Pos()
	}

	return failures
}

// Key returns a stable textual key of v, based on its object path when it has one.
func Key(fset *token.FileSet, v *types.Var) string {
	pkg := v.Pkg()
	if pkg == nil {
		return v.Name()
	}

	if path, err := objectpath.For(v); err == nil {
		return pkg.Path() + "." + string(path)
	}

	if fset == nil || !v.Pos().IsValid() {
		return fmt.Sprintf("%s:%s", pkg.Path(), v.Name())
	}

	p := fset.Position(v.Pos())

	return fmt.Sprintf("%s:%s:%d:%d:%s", pkg.Path(), filepath.Base(p.Filename), p.Line, p.Column, v.Name())
}

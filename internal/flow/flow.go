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

// Package flow classifies the syntactic contexts nil values flow through.
//
// The [Seeder] finds nil literals and the elements they are assigned, passed or
// returned to. The [Propagator] takes one occurrence of an element and finds
// the elements its value flows to or from. Both share one context dispatch, so
// an expression is classified the same way whether it is a nil literal or a
// reference to an element.
package flow

import (
	"go/ast"
	"go/token"
	"go/types"

	"fillmore-labs.com/nilopt/internal/element"
)

// Occurrence is a classified appearance of an element.
type Occurrence struct {
	Var      *types.Var
	Context  Context
	Pos, End token.Pos
}

// Flow accumulates the elements found while classifying expressions.
type Flow struct {
	Discoveries []element.Discovery
	Occurrences []Occurrence
}

// Empty reports whether no element was found.
func (f *Flow) Empty() bool {
	return len(f.Discoveries) == 0
}

// Vars returns all discovered elements in discovery order.
func (f *Flow) Vars() []*types.Var {
	var vars []*types.Var
	for _, d := range f.Discoveries {
		for _, c := range d.Candidates {
			vars = append(vars, c.Var)
		}
	}

	return vars
}

// Append adds the contents of other to f.
func (f *Flow) Append(other Flow) {
	f.Discoveries = append(f.Discoveries, other.Discoveries...)
	f.Occurrences = append(f.Occurrences, other.Occurrences...)
}

func (f *Flow) occur(v *types.Var, ctx Context, pos, end token.Pos) {
	f.Occurrences = append(f.Occurrences, Occurrence{Var: v, Context: ctx, Pos: pos, End: end})
}

func (f *Flow) discover(d element.Discovery, ctx Context, n ast.Node) {
	for _, c := range d.Candidates {
		f.occur(c.Var, ctx, n.Pos(), n.End())
	}

	f.Discoveries = append(f.Discoveries, d)
}

// posRange is an [ast.Node] spanning a source range.
type posRange struct{ pos, end token.Pos }

func (r posRange) Pos() token.Pos { return r.pos }
func (r posRange) End() token.Pos { return r.end }

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

package flow

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/ast/edge"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/nilopt/internal/config"
	"fillmore-labs.com/nilopt/internal/facade"
	"fillmore-labs.com/nilopt/internal/failure"
)

// Propagator finds the elements the value of an element flows to or from.
type Propagator struct {
	program  *facade.Program
	settings config.Settings
}

// NewPropagator creates a [Propagator] for the given program.
func NewPropagator(program *facade.Program, settings config.Settings) Propagator {
	return Propagator{program: program, settings: settings}
}

// Propagate classifies a single match of an element.
//
// The returned flow contains the elements that must share the element's type,
// including an occurrence of the element itself. A failure is attributed to the
// matched element.
func (p Propagator) Propagate(m facade.Match) (Flow, *failure.Failure) {
	var f Flow

	switch m.Kind {
	case facade.MatchDocLink:
		return f, nil

	case facade.MatchFuncValue:
		return f, failure.New(failure.Unclassifiable, posRange{m.Pos, m.End}, m.Var, "function used as a value")
	}

	k := &classifier{program: p.program, settings: p.settings, info: m.Package.Info}
	c, ok := m.Cursor()
	if !ok {
		return f, failure.New(failure.ModelError, posRange{m.Pos, m.End}, m.Var, "%v match without syntax", m.Kind)
	}

	var fail *failure.Failure

	switch m.Kind {
	case facade.MatchCall:
		f.occur(m.Var, Call, m.Pos, m.End)
		fail = k.dependents(&f, callOf(c), m.Slot)

	case facade.MatchReturn:
		f.occur(m.Var, Return, m.Pos, m.End)

		e, ok := c.Node().(ast.Expr)
		if !ok {
			return f, failure.New(failure.ModelError, c.Node(), m.Var, "returned %T", c.Node())
		}

		slot := -1
		if _, ok := k.info.TypeOf(e).(*types.Tuple); ok {
			slot = m.Slot
		}

		fail = k.source(&f, Return, e, slot, m.Var.Type())

	case facade.MatchArgument:
		f.occur(m.Var, Argument, m.Pos, m.End)

		e, ok := c.Node().(ast.Expr)
		if !ok {
			return f, failure.New(failure.ModelError, c.Node(), m.Var, "argument %T", c.Node())
		}

		slot := -1
		if _, ok := k.info.TypeOf(e).(*types.Tuple); ok {
			slot = m.Slot
		}

		fail = k.source(&f, Argument, e, slot, k.argumentType(m.Var, c))

	default:
		if kind, _ := c.ParentEdge(); kind == edge.SelectorExpr_Sel {
			c = c.Parent()
		}

		ctx, _ := contextOf(k.info, c)
		f.occur(m.Var, ctx, m.Pos, m.End)
		fail = k.dependents(&f, c, -1)
	}

	if fail != nil {
		if fail.Var == nil {
			fail.Var = m.Var
		}

		if !fail.Pos.IsValid() {
			fail.Pos, fail.End = m.Pos, m.End
		}
	}

	return f, fail
}

// callOf returns the call expression whose callee is the function identifier at c.
func callOf(c inspector.Cursor) inspector.Cursor {
	for {
		switch kind, _ := c.ParentEdge(); kind {
		case edge.SelectorExpr_Sel, edge.IndexExpr_X, edge.IndexListExpr_X, edge.ParenExpr_X:
			c = c.Parent()

		default:
			return c.Parent()
		}
	}
}

// argumentType returns the type a single argument passed to parameter v at c is assigned to.
func (k *classifier) argumentType(v *types.Var, c inspector.Cursor) types.Type {
	call, ok := c.Parent().Node().(*ast.CallExpr)
	if !ok || call.Ellipsis.IsValid() {
		return v.Type()
	}

	fn, index, ok := k.program.Owner(v)
	if !ok {
		return v.Type()
	}

	sig := fn.Signature()
	if !sig.Variadic() || index != sig.Params().Len()-1 {
		return v.Type()
	}

	if s, ok := v.Type().Underlying().(*types.Slice); ok {
		return s.Elem()
	}

	return v.Type()
}

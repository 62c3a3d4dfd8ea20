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
	"fillmore-labs.com/nilopt/internal/element"
	"fillmore-labs.com/nilopt/internal/facade"
	"fillmore-labs.com/nilopt/internal/failure"
)

// Result is the outcome of seeding.
type Result struct {
	Flow

	// NotRefactorable are elements a nil value flows into through a disallowed context.
	NotRefactorable []*types.Var

	// Failures are the non-fatal failures encountered.
	Failures []*failure.Failure
}

// Seeder finds nil values and the elements they flow into.
type Seeder struct {
	program  *facade.Program
	settings config.Settings
}

// NewSeeder creates a [Seeder] for the given program.
func NewSeeder(program *facade.Program, settings config.Settings) Seeder {
	return Seeder{program: program, settings: settings}
}

// Seed scans the root for nil literals and for nilable fields and package-level
// variables without initializer. The latter are implicit candidates.
//
// A fatal failure stops the scan.
func (s Seeder) Seed(root facade.Root) (Result, *failure.Failure) {
	var r Result

	nodes := []ast.Node{
		(*ast.Ident)(nil),
		(*ast.StructType)(nil),
		(*ast.ValueSpec)(nil),
	}

	for _, rn := range root.Nodes {
		k := &classifier{program: s.program, settings: s.settings, info: rn.Package.Info}

		for c := range rn.Cursor.Preorder(nodes...) {
			switch n := c.Node().(type) {
			case *ast.Ident:
				if !isNil(k.info, n) {
					continue
				}

				if fail := s.seedNil(&r, k, c); fail != nil {
					return r, fail
				}

			case *ast.StructType:
				s.seedFields(&r, k, n)

			case *ast.ValueSpec:
				if len(n.Values) == 0 && packageLevel(c) {
					s.seedImplicit(&r, k, n, n.Names)
				}
			}
		}
	}

	return r, nil
}

func (s Seeder) seedNil(r *Result, k *classifier, c inspector.Cursor) *failure.Failure {
	var f Flow

	fail := k.dependents(&f, c, -1)

	switch {
	case fail == nil:
		r.Append(f)

		return nil

	case fail.Fatal():
		return fail

	case fail.Kind == failure.Disallowed:
		conv, ok := conversionOf(c)
		if !ok {
			break
		}

		var targets Flow
		if tfail := k.dependents(&targets, conv, -1); tfail.Fatal() {
			return tfail
		}

		if targets.Empty() {
			return nil // the converted value is not stored in an element
		}

		r.NotRefactorable = append(r.NotRefactorable, targets.Vars()...)
	}

	if fail.Var != nil {
		r.NotRefactorable = append(r.NotRefactorable, fail.Var)
	}

	if !fail.Pos.IsValid() {
		n := c.Node()
		fail.Pos, fail.End = n.Pos(), n.End()
	}

	r.Failures = append(r.Failures, fail)

	return nil
}

// conversionOf returns the conversion enclosing the nil literal at c.
func conversionOf(c inspector.Cursor) (inspector.Cursor, bool) {
	for {
		kind, _ := c.ParentEdge()

		switch kind {
		case edge.ParenExpr_X:
			c = c.Parent()

		case edge.CallExpr_Args:
			return c.Parent(), true

		default:
			return c, false
		}
	}
}

func (s Seeder) seedFields(r *Result, k *classifier, st *ast.StructType) {
	for _, field := range st.Fields.List {
		s.seedImplicit(r, k, field, field.Names)
	}
}

func (s Seeder) seedImplicit(r *Result, k *classifier, n ast.Node, names []*ast.Ident) {
	for _, v := range k.defined(names, -1) {
		if !k.accepts(v.Type()) {
			continue
		}

		d := element.Discovery{Candidates: []element.Candidate{{Var: element.Normalize(v), Implicit: true}}}
		r.discover(d, Declaration, n)
	}
}

// packageLevel reports whether the value spec at c is declared at package level.
func packageLevel(c inspector.Cursor) bool {
	decl := c.Parent() // GenDecl

	kind, _ := decl.ParentEdge()

	return kind == edge.File_Decls
}

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

package facade

import (
	"go/token"
	"go/types"
	"slices"

	"fillmore-labs.com/nilopt/internal/element"
	"fillmore-labs.com/nilopt/internal/failure"
)

// Search returns all occurrences of v in the program.
//
// The search fails when v is declared outside the scope, or when v or any exact
// match lies in code that must not be rewritten. Parameters and results of
// function literals fail, since their call sites can't be found.
func (p *Program) Search(v *types.Var) ([]Match, *failure.Failure) {
	v = element.Normalize(v)

	if f := p.CheckDeclaration(v); f != nil {
		return nil, f
	}

	switch element.KindOf(v) {
	case element.KindParam, element.KindResult:
		if _, _, ok := p.Owner(v); !ok {
			return nil, failure.New(failure.Unclassifiable, nil, v, "belongs to a function literal")
		}
	}

	matches := p.index.matches[v]

	for _, m := range matches {
		if m.InDocComment {
			continue
		}

		if f := p.checkPos(m.Pos, v); f != nil {
			f.Pos, f.End = m.Pos, m.End

			return nil, f
		}
	}

	return slices.Clone(matches), nil
}

// CheckDeclaration reports whether the declaration of v may be rewritten.
func (p *Program) CheckDeclaration(v *types.Var) *failure.Failure {
	if !element.Valid(v) {
		return failure.New(failure.Binary, nil, v, "")
	}

	f := p.checkPos(v.Pos(), v)
	if f != nil {
		f.Pos, f.End = v.Pos(), v.Pos()
	}

	return f
}

func (p *Program) checkPos(pos token.Pos, v *types.Var) *failure.Failure {
	pkg, current, ok := p.File(pos)

	switch {
	case !ok:
		return failure.New(failure.Binary, nil, v, "")

	case pkg.ReadOnly:
		return failure.New(failure.NonWritable, nil, v, "package %s", pkg.Types.Path())

	case current.Generated() && !p.generated:
		return failure.New(failure.Generated, nil, v, "")

	default:
		return nil
	}
}

// Declared reports whether v is declared in a package in scope.
func (p *Program) Declared(v *types.Var) bool {
	_, _, ok := p.File(v.Pos())

	return ok
}

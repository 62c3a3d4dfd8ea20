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
	"testing"

	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/nilopt/internal/testsource"
)

func TestContextOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want Context
	}{
		{"assigned", "y := x; _ = y", AssignValue},
		{"assignment target", "x = nil", AssignTarget},
		{"compound assignment", "var y any; y, x = nil, nil; _ = y", AssignTarget},
		{"declared", "var y = x; _ = y", SpecValue},
		{"returned", "return x", Return},
		{"argument", "g(x)", Argument},
		{"deferred argument", "defer g(x)", Argument},
		{"conversion", "_ = (*int)(x)", Conversion},
		{"parenthesized", "_ = (x)", Transparent},
		{"address", "_ = &x", Transparent},
		{"dereference", "*x = 1", Container},
		{"equality", "_ = x == nil", Comparison},
		{"condition", "if x != nil { return nil }", Comparison},
		{"switch", "switch x { }", Comparison},
		{"element", "_ = []*int{x}", Element},
		{"keyed element", "_ = map[int]*int{1: x}", KeyedValue},
		{"send", "ch <- x", SendValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			src := "func g(...*int) {}\n\nfunc f(x *int, m map[int]*int, ch chan *int) *int {\n" + tt.body + "\nreturn nil\n}"
			p := testsource.Load(t, src)
			pkg := p.Packages()[0]

			c, ok := use(pkg.Info, pkg.Inspector(), "x")
			if !ok {
				t.Fatal("No use of x found")
			}

			// when
			got, _ := contextOf(pkg.Info, c)

			// then
			if got != tt.want {
				t.Errorf("contextOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

// use returns the first identifier referring to the variable name.
func use(info *types.Info, in *inspector.Inspector, name string) (inspector.Cursor, bool) {
	for c := range in.Root().Preorder((*ast.Ident)(nil)) {
		id := c.Node().(*ast.Ident)
		if v, ok := info.Uses[id].(*types.Var); ok && v.Name() == name {
			return c, true
		}
	}

	return inspector.Cursor{}, false
}

func TestSpread(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                       string
		i, slot, receivers, values int
		want                       int
		ok                         bool
	}{
		{"pairwise", 1, -1, 2, 2, 1, true},
		{"comma-ok", 0, -1, 2, 1, 0, true},
		{"tuple", 0, 1, 2, 1, 1, true},
		{"tuple overflow", 0, 2, 2, 1, 0, false},
		{"mismatch", 0, -1, 3, 2, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := spread(tt.i, tt.slot, tt.receivers, tt.values)
			if got != tt.want || ok != tt.ok {
				t.Errorf("spread() = %d, %t, want %d, %t", got, ok, tt.want, tt.ok)
			}
		})
	}
}

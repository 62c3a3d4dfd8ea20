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

package facade_test

import (
	"go/types"
	"slices"
	"testing"

	"fillmore-labs.com/nilopt/analyzer/level"
	"fillmore-labs.com/nilopt/internal/testsource"
)

func TestDeclarations(t *testing.T) {
	t.Parallel()

	const src = `type Setter interface{ Set(v *int) }

type Other interface {
	Set(v *int)
	Get() int
}

type A struct{}

func (A) Set(v *int) {}

type B struct{}

func (*B) Set(v *int) {}

func (*B) Get() int { return 0 }

type C struct{}

func (C) Set(v *string) {}

func Set(v *int) {}
`

	tests := []struct {
		name   string
		fn     string
		policy level.Overrides
		want   []string
	}{
		{"function", "", level.OverridesImplements, []string{"func"}},
		{"exact", "A", level.OverridesExact, []string{"A"}},
		{"implements", "A", level.OverridesImplements, []string{"Setter", "Other", "A", "B"}},
		{"interface", "Other", level.OverridesImplements, []string{"Setter", "Other", "A", "B"}},
		{"unrelated", "C", level.OverridesImplements, []string{"C"}},
		{"distinct signature", "C", level.OverridesSignature, []string{"C"}},
		{"same signature", "A", level.OverridesSignature, []string{"Setter", "Other", "A", "B"}},
	}

	p := testsource.Load(t, src)
	scope := p.Packages()[0].Types.Scope()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			var fn *types.Func
			if tt.fn == "" {
				fn = scope.Lookup("Set").(*types.Func)
			} else {
				obj, _, _ := types.LookupFieldOrMethod(scope.Lookup(tt.fn).Type(), true, nil, "Set")
				fn = obj.(*types.Func)
			}

			// when
			decls := p.Declarations(fn, tt.policy)

			// then
			got := make([]string, len(decls))
			for i, d := range decls {
				got[i] = receiverName(d)
			}

			if !slices.Equal(got, tt.want) {
				t.Errorf("Declarations() = %v, want %v", got, tt.want)
			}
		})
	}
}

func receiverName(fn *types.Func) string {
	recv := fn.Signature().Recv()
	if recv == nil {
		return "func"
	}

	t := recv.Type()
	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}

	if named, ok := t.(*types.Named); ok {
		return named.Obj().Name()
	}

	return t.String()
}

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

package worklist_test

import (
	"go/token"
	"go/types"
	"slices"
	"testing"

	"fillmore-labs.com/nilopt/internal/element"
	. "fillmore-labs.com/nilopt/internal/worklist"
)

var pkg = types.NewPackage("example.com/p", "p")

func newVars(names ...string) []*types.Var {
	vars := make([]*types.Var, len(names))
	for i, name := range names {
		vars[i] = types.NewVar(token.Pos(10*(i+1)), pkg, name, types.NewPointer(types.Typ[types.Int]))
	}

	return vars
}

func single(v *types.Var) element.Discovery {
	return element.Discovery{Candidates: []element.Candidate{{Var: v}}}
}

func joint(vars ...*types.Var) element.Discovery {
	d := element.Discovery{Joint: true}
	for _, v := range vars {
		d.Candidates = append(d.Candidates, element.Candidate{Var: v})
	}

	return d
}

func names(vars []*types.Var) []string {
	n := make([]string, len(vars))
	for i, v := range vars {
		n[i] = v.Name()
	}

	return n
}

func drain(w *WorkList) []*types.Var {
	var vars []*types.Var
	for w.HasNext() {
		vars = append(vars, w.Next())
	}

	return vars
}

func TestWorkListFIFO(t *testing.T) {
	t.Parallel()

	vs := newVars("a", "b", "c")
	a, b, c := vs[0], vs[1], vs[2]

	w := New()
	w.AddAll(nil, single(a), single(b))

	if got := w.Next(); got != a {
		t.Fatalf("Next() = %v, want a", got)
	}

	w.AddAll(a, single(c), single(b))

	got := names(drain(w))
	if want := []string{"b", "c"}; !slices.Equal(got, want) {
		t.Errorf("frontier = %v, want %v", got, want)
	}

	if w.Next() != nil {
		t.Error("Next() on empty frontier returned an element")
	}
}

func TestWorkListIdempotent(t *testing.T) {
	t.Parallel()

	vs := newVars("a", "b")
	a, b := vs[0], vs[1]

	w := New()
	if added := w.AddAll(nil, single(a)); len(added) != 1 {
		t.Fatalf("AddAll added %d, want 1", len(added))
	}

	w.Next()

	w.AddAll(a, single(b))
	w.Next()

	if added := w.AddAll(b, single(a), single(b)); len(added) != 0 {
		t.Errorf("rediscovery added %v", names(added))
	}

	if w.HasNext() {
		t.Error("rediscovered elements were enqueued again")
	}

	if got := w.Forest().Len(); got != 2 {
		t.Errorf("Forest().Len() = %d, want 2", got)
	}
}

func TestWorkListRemoveAll(t *testing.T) {
	t.Parallel()

	vs := newVars("a", "b", "c")
	a, b, c := vs[0], vs[1], vs[2]

	w := New()
	w.AddAll(nil, single(a), single(b), single(c))
	w.RemoveAll(a, c)

	got := names(drain(w))
	if want := []string{"b"}; !slices.Equal(got, want) {
		t.Errorf("frontier = %v, want %v", got, want)
	}

	if !w.Forest().Contains(a) {
		t.Error("evicted element lost its node")
	}
}

func TestSubtree(t *testing.T) {
	t.Parallel()

	vs := newVars("a", "b", "c", "d", "e")
	a, b, c, d, e := vs[0], vs[1], vs[2], vs[3], vs[4]

	w := New()
	w.AddAll(nil, single(a), single(e))
	w.AddAll(a, single(b))
	w.AddAll(b, joint(c, d))

	got := names(w.Subtree(b))
	if want := []string{"b", "c", "d"}; !slices.Equal(got, want) {
		t.Errorf("Subtree(b) = %v, want %v", got, want)
	}

	if p, ok := w.Forest().Parent(c); !ok || p != b {
		t.Errorf("Parent(c) = %v, %t, want b", p, ok)
	}

	if !w.Forest().InUnion(d) {
		t.Error("joint discovery is not a union")
	}
}

func TestImplicitExplicitWins(t *testing.T) {
	t.Parallel()

	vs := newVars("a", "f")
	a, f := vs[0], vs[1]

	w := New()
	w.AddAll(nil, element.Discovery{Candidates: []element.Candidate{{Var: f, Implicit: true}}})
	w.AddAll(nil, single(a))

	if !w.Forest().Implicit(f) {
		t.Fatal("implicit seed is not implicit")
	}

	w.AddAll(a, single(f))

	if w.Forest().Implicit(f) {
		t.Error("explicit discovery did not clear the implicit flag")
	}
}

func TestTrim(t *testing.T) {
	t.Parallel()

	vs := newVars("a", "b", "c", "d", "e", "f")
	a, b, c, d, e, f := vs[0], vs[1], vs[2], vs[3], vs[4], vs[5]

	w := New()
	w.AddAll(nil, single(a), single(f))
	w.AddAll(a, single(b), joint(c, d))
	w.AddAll(b, single(e))

	trimmed, removed := w.Forest().Trim(map[*types.Var]struct{}{b: {}, c: {}})

	if got, want := names(removed), []string{"b", "c", "e"}; !slices.Equal(got, want) {
		t.Errorf("removed = %v, want %v", got, want)
	}

	if got, want := names(trimmed.Elements()), []string{"a", "f", "d"}; !slices.Equal(got, want) {
		t.Errorf("Elements() = %v, want %v", got, want)
	}

	if !trimmed.InUnion(d) {
		t.Error("union did not narrow to its survivor")
	}

	if w.Forest().Len() != 6 {
		t.Error("Trim modified the original forest")
	}
}

func TestTrimEmptyUnion(t *testing.T) {
	t.Parallel()

	vs := newVars("a", "b", "c")
	a, b, c := vs[0], vs[1], vs[2]

	w := New()
	w.AddAll(nil, single(a))
	w.AddAll(a, joint(b, c))

	trimmed, _ := w.Forest().Trim(map[*types.Var]struct{}{b: {}, c: {}})

	got := trimmed.Components()
	if len(got) != 1 || !slices.Equal(names(got[0]), []string{"a"}) {
		t.Errorf("Components() = %v, want [[a]]", got)
	}
}

func TestComponents(t *testing.T) {
	t.Parallel()

	vs := newVars("a", "b", "c", "d", "e")
	a, b, c, d, e := vs[0], vs[1], vs[2], vs[3], vs[4]

	w := New()
	w.AddAll(nil, single(d), single(a), single(e))
	w.AddAll(d, single(c))
	w.AddAll(a, single(b))
	w.AddAll(e, single(c)) // rediscovery links e to d's tree

	got := w.Forest().Components()

	want := [][]string{{"a", "b"}, {"c", "d", "e"}}
	if len(got) != len(want) {
		t.Fatalf("Components() = %d groups, want %d", len(got), len(want))
	}

	for i := range want {
		if g := names(got[i]); !slices.Equal(g, want[i]) {
			t.Errorf("Components()[%d] = %v, want %v", i, g, want[i])
		}
	}
}

func TestComponentsOrderIndependent(t *testing.T) {
	t.Parallel()

	vs := newVars("a", "b", "c")
	a, b, c := vs[0], vs[1], vs[2]

	first := New()
	first.AddAll(nil, single(a), single(c))
	first.AddAll(a, single(b))
	first.AddAll(c, single(b))

	second := New()
	second.AddAll(nil, single(c), single(a))
	second.AddAll(c, single(b))
	second.AddAll(a, single(b))

	g1, g2 := first.Forest().Components(), second.Forest().Components()
	if len(g1) != 1 || len(g2) != 1 || !slices.Equal(g1[0], g2[0]) {
		t.Errorf("Components() differ: %v and %v", g1, g2)
	}
}

func TestSeedSiblingsShareComponent(t *testing.T) {
	t.Parallel()

	vs := newVars("a", "b")

	w := New()
	w.AddAll(nil, element.Discovery{Candidates: []element.Candidate{{Var: vs[0]}, {Var: vs[1]}}})

	if got := w.Forest().Components(); len(got) != 1 {
		t.Errorf("Components() = %d groups, want 1", len(got))
	}
}

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

package harvest_test

import (
	"context"
	"errors"
	"go/ast"
	"go/types"
	"slices"
	"testing"

	"fillmore-labs.com/nilopt/analyzer/level"
	"fillmore-labs.com/nilopt/internal/config"
	"fillmore-labs.com/nilopt/internal/facade"
	"fillmore-labs.com/nilopt/internal/failure"
	. "fillmore-labs.com/nilopt/internal/harvest"
	"fillmore-labs.com/nilopt/internal/testsource"
)

func harvest(t *testing.T, settings config.Settings, src string) (*facade.Program, *Result) {
	t.Helper()

	p := testsource.Load(t, src)

	result, err := New(p, settings).Harvest(t.Context(), p.Root())
	if err != nil {
		t.Fatalf("Harvest failed: %v", err)
	}

	return p, result
}

func groupNames(r *Result) [][]string {
	groups := make([][]string, 0, len(r.Groups))
	for _, g := range r.Groups {
		var names []string
		for _, e := range g.Elements {
			names = append(names, e.Var.Name())
		}

		groups = append(groups, names)
	}

	return groups
}

func varNames(vars []*types.Var) []string {
	names := make([]string, len(vars))
	for i, v := range vars {
		names[i] = v.Name()
	}

	return names
}

func TestScenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		src    string
		groups [][]string
		nr     []string
		kinds  []failure.Kind
	}{
		{
			name: "chain",
			src: `type T struct{}

func f() {
	var b *T
	b = nil
	a := b
	var control *T
	control = nil
	_, _ = a, control
}`,
			groups: [][]string{{"b", "a"}, {"control"}},
		},
		{
			name: "merge through parameter",
			src: `type T struct{}

func f(c *T) {
	var a *T
	a = nil
	a = c
	d := c
	e := d
	var control *T
	control = nil
	_, _, _ = a, e, control
}`,
			groups: [][]string{{"c", "a", "d", "e"}, {"control"}},
		},
		{
			name: "overriding parameters",
			src: `type T struct{}

type Setter interface{ Set(v *T) }

type A struct{}

func (A) Set(va *T) {}

type B struct{}

func (B) Set(vb *T) {}

type C struct{}

func (C) Set(vc *T) {}

func f(s Setter) { s.Set(nil) }`,
			groups: [][]string{{"v", "va", "vb", "vc"}},
		},
		{
			name: "conversion",
			src: `type T struct{}

func f() {
	x := (*T)(nil)
	var y *T
	y = nil
	_, _ = x, y
}`,
			groups: [][]string{{"y"}},
			nr:     []string{"x"},
			kinds:  []failure.Kind{failure.Disallowed},
		},
		{
			name: "interface assertion",
			src: `type T struct{}

func (*T) M() {}

var _ interface{ M() } = (*T)(nil)

var p *T = nil`,
			groups: [][]string{{"p"}},
		},
		{
			name: "condemned branch",
			src: `type T struct{}

func f() {
	var p *T
	p = nil
	q := p
	g := func() *T { return q }
	r := q
	_, _ = g, r
}`,
			groups: [][]string{{"p"}},
			nr:     []string{"q", "r"},
			kinds:  []failure.Kind{failure.Unclassifiable},
		},
		{
			name: "trimmed seed",
			src: `type T struct{}

func f() {
	var x *T
	x = nil
	z := x
	z = (*T)(nil)
	_ = z
}`,
			groups: [][]string{{"x"}},
			nr:     []string{"z"},
			kinds:  []failure.Kind{failure.Disallowed},
		},
		{
			name: "returns and calls",
			src: `type T struct{}

func get() *T { return nil }

func f() {
	r := get()
	_ = r
}`,
			groups: [][]string{{"", "r"}},
		},
		{
			name: "fields and arguments",
			src: `type T struct{}

type S struct {
	next *T
	size int
}

func set(s *S, n *T) { s.next = n }

func f() {
	s := S{next: nil, size: 1}
	set(&s, nil)
}`,
			groups: [][]string{{"next", "n"}},
		},
		{
			name: "boxing",
			src: `type T struct{}

func f() {
	var p *T
	p = nil
	var i any = p
	_ = i
}`,
			groups: [][]string{{"p"}},
		},
		{
			name: "errors are skipped",
			src: `type T struct{}

func f() (*T, error) { return nil, nil }`,
			groups: [][]string{{""}},
		},
		{
			name: "containers",
			src: `type T struct{}

func f() {
	s := []*T{nil}
	for _, v := range s {
		_ = v
	}
	m := map[string]*T{}
	m["a"] = nil
	w, ok := m["a"]
	_, _ = w, ok
}`,
			groups: [][]string{{"s", "v"}, {"m", "w"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			settings := config.Default()

			// when
			_, result := harvest(t, settings, tt.src)

			// then
			if !result.Complete {
				t.Fatalf("Harvest incomplete: %v", result.Status.Entries())
			}

			got := groupNames(result)
			if !slices.EqualFunc(got, tt.groups, slices.Equal) {
				t.Errorf("groups = %q, want %q", got, tt.groups)
			}

			if got := varNames(result.NotRefactorable); !slices.Equal(got, tt.nr) && len(got)+len(tt.nr) > 0 {
				t.Errorf("not refactorable = %q, want %q", got, tt.nr)
			}

			var kinds []failure.Kind
			for _, e := range result.Status.Entries() {
				kinds = append(kinds, e.Kind)
			}

			if !slices.Equal(kinds, tt.kinds) {
				t.Errorf("status kinds = %v, want %v", kinds, tt.kinds)
			}
		})
	}
}

func TestOverridePolicies(t *testing.T) {
	t.Parallel()

	const src = `type T struct{}

type Setter interface{ Set(v *T) }

type Other interface {
	Set(vo *T)
	Get() int
}

type A struct{}

func (A) Set(va *T) {}

func f(s Setter) { s.Set(nil) }`

	tests := []struct {
		policy level.Overrides
		want   [][]string
	}{
		{level.OverridesExact, [][]string{{"v"}}},
		{level.OverridesImplements, [][]string{{"v", "va"}}},
		{level.OverridesSignature, [][]string{{"v", "vo", "va"}}},
	}

	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			t.Parallel()

			settings := config.Default()
			settings.Overrides = tt.policy

			_, result := harvest(t, settings, src)

			if got := groupNames(result); !slices.EqualFunc(got, tt.want, slices.Equal) {
				t.Errorf("groups = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSettings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      string
		settings func(*config.Settings)
		groups   [][]string
		implicit []bool
		severity level.Severity
	}{
		{
			name:     "error values",
			src:      `func f() error { return nil }`,
			settings: func(s *config.Settings) { s.Behavior.Enable(config.ErrorValues) },
			groups:   [][]string{{""}},
			implicit: []bool{false},
			severity: level.SeverityOK,
		},
		{
			name: "implicit fields",
			src: `type S struct {
	next *S
}`,
			settings: func(s *config.Settings) { s.Eligible.Enable(config.ImplicitFields) },
			groups:   [][]string{{"next"}},
			implicit: []bool{true},
			severity: level.SeverityOK,
		},
		{
			name: "implicit fields not eligible",
			src: `type S struct {
	next *S
}

var v *int`,
			groups:   [][]string{{"next"}, {"v"}},
			implicit: []bool{true},
			severity: level.SeverityError,
		},
		{
			name: "implicit made explicit",
			src: `type S struct {
	next *S
}

func (s *S) reset() { s.next = nil }`,
			settings: func(s *config.Settings) { s.Eligible.Enable(config.ImplicitFields) },
			groups:   [][]string{{"next"}},
			implicit: []bool{false},
			severity: level.SeverityOK,
		},
		{
			name:     "ineligible category",
			src:      `var p *int = nil`,
			settings: func(s *config.Settings) { s.Eligible.Disable(config.Variables) },
			groups:   [][]string{{"p"}},
			implicit: []bool{false},
			severity: level.SeverityError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			settings := config.Default()
			if tt.settings != nil {
				tt.settings(&settings)
			}

			_, result := harvest(t, settings, tt.src)

			if got := groupNames(result); !slices.EqualFunc(got, tt.groups, slices.Equal) {
				t.Fatalf("groups = %q, want %q", got, tt.groups)
			}

			for i, e := range result.Groups[0].Elements {
				if e.Implicit != tt.implicit[i] {
					t.Errorf("element %s implicit = %t, want %t", e.Var.Name(), e.Implicit, tt.implicit[i])
				}
			}

			if got := result.Status.Severity(); got != tt.severity {
				t.Errorf("severity = %v, want %v", got, tt.severity)
			}
		})
	}
}

func TestNoCandidates(t *testing.T) {
	t.Parallel()

	_, result := harvest(t, config.Default(), `func f(p *int) bool { return p == nil }`)

	if result.Complete || !result.Status.Fatal() || len(result.Groups) != 0 {
		t.Fatalf("result = %+v, want incomplete and fatal", result)
	}

	if e := result.Status.Entries(); len(e) != 1 || e[0].Kind != failure.NoCandidates {
		t.Errorf("status = %v, want no candidates", e)
	}
}

func TestMissingBinding(t *testing.T) {
	t.Parallel()

	p := testsource.Load(t, `func f() {
	var a *int
	a = nil
	_ = a
}`)

	// remove the binding of the assignment target
	pkg := p.Packages()[0]
	for _, f := range pkg.Files {
		ast.Inspect(f, func(n ast.Node) bool {
			if as, ok := n.(*ast.AssignStmt); ok {
				for _, lhs := range as.Lhs {
					if id, ok := lhs.(*ast.Ident); ok {
						delete(pkg.Info.Uses, id)
					}
				}
			}

			return true
		})
	}

	result, err := New(p, config.Default()).Harvest(t.Context(), p.Root())
	if err != nil {
		t.Fatalf("Harvest failed: %v", err)
	}

	if result.Complete || !result.Status.Fatal() || len(result.Groups) != 0 {
		t.Errorf("result = %+v, want incomplete and fatal", result)
	}
}

func TestCancelled(t *testing.T) {
	t.Parallel()

	p := testsource.Load(t, `var p *int = nil`)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	result, err := New(p, config.Default()).Harvest(ctx, p.Root())

	if !errors.Is(err, ErrCancelled) || !errors.Is(err, context.Canceled) {
		t.Errorf("Harvest error = %v, want %v", err, ErrCancelled)
	}

	if result != nil {
		t.Errorf("Harvest returned a result on cancellation: %+v", result)
	}
}

func TestDeterministic(t *testing.T) {
	t.Parallel()

	const src = `type T struct{}

func f(c *T) {
	var a, b *T
	a = nil
	b = c
	d := b
	e := a
	_, _ = d, e
}

func g() *T {
	var x *T
	x = nil
	return x
}`

	_, first := harvest(t, config.Default(), src)
	_, second := harvest(t, config.Default(), src)

	if len(first.Groups) != len(second.Groups) {
		t.Fatalf("got %d and %d groups", len(first.Groups), len(second.Groups))
	}

	for i := range first.Groups {
		if first.Groups[i].ID != second.Groups[i].ID {
			t.Errorf("group %d IDs differ", i)
		}
	}

	// every element is in exactly one group or not refactorable
	seen := make(map[*types.Var]int)
	for _, g := range first.Groups {
		for _, e := range g.Elements {
			seen[e.Var]++
		}
	}

	for _, v := range first.NotRefactorable {
		seen[v]++
	}

	for v, n := range seen {
		if n != 1 {
			t.Errorf("element %s appears %d times", v.Name(), n)
		}
	}
}

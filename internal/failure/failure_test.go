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

package failure_test

import (
	"go/token"
	"go/types"
	"strings"
	"testing"

	. "fillmore-labs.com/nilopt/internal/failure"
)

func TestKindString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind  Kind
		code  string
		fatal bool
		wide  bool
	}{
		{Unclassifiable, "ctx", false, false},
		{Disallowed, "cnv", false, false},
		{NonWritable, "ro", false, true},
		{Generated, "gen", false, true},
		{Binary, "bin", false, true},
		{MissingBinding, "bnd", true, false},
		{ModelError, "mdl", true, false},
		{Ineligible, "cat", false, false},
		{ForeignPackage, "pkg", false, false},
		{NoCandidates, "nil", true, false},
	}

	if len(tests) != int(NumKinds) {
		t.Fatalf("Got %d test cases, want %d", len(tests), NumKinds)
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			t.Parallel()

			if got := tt.kind.String(); got != tt.code {
				t.Errorf("String() = %q, want %q", got, tt.code)
			}

			if got := tt.kind.Fatal(); got != tt.fatal {
				t.Errorf("Fatal() = %v, want %v", got, tt.fatal)
			}

			if got := tt.kind.SearchWide(); got != tt.wide {
				t.Errorf("SearchWide() = %v, want %v", got, tt.wide)
			}
		})
	}
}

func TestFailureError(t *testing.T) {
	t.Parallel()

	v := types.NewVar(token.NoPos, nil, "p", types.NewPointer(types.Typ[types.Int]))

	f := New(Disallowed, nil, v, "to %s", "*int")

	got := f.Error()
	for _, want := range []string{"converted", "'p'", "to *int"} {
		if !strings.Contains(got, want) {
			t.Errorf("Error() = %q, want to contain %q", got, want)
		}
	}

	if f.Fatal() {
		t.Error("Disallowed failure is fatal")
	}

	var none *Failure
	if none.Fatal() {
		t.Error("nil failure is fatal")
	}
}

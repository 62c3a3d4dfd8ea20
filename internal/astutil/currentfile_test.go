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

package astutil_test

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	. "fillmore-labs.com/nilopt/internal/astutil"
)

func TestCommentHasNoLint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want bool
	}{
		{"//nolint:nilopt", true},
		{"// nolint:gosec,nilopt", true},
		{"//nolint:all", true},
		{"//nolint:NilOpt // reason", true},
		{"//nolint:gosec", false},
		{"// nilopt", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()

			if got := CommentHasNoLint(&ast.Comment{Text: tt.text}); got != tt.want {
				t.Errorf("CommentHasNoLint(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

const src = `//nolint:nilopt
package a

var a *int //nolint:nilopt

var b *int
// nolint:nilopt
var c *int
`

func TestCurrentFile(t *testing.T) {
	t.Parallel()

	// given
	fset := token.NewFileSet()

	f, err := parser.ParseFile(fset, "a.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("Can't parse source: %v", err)
	}

	// when
	current := NewCurrentFile(fset, f)

	// then
	if !current.Valid() {
		t.Fatal("Expected valid file")
	}

	if current.Generated() {
		t.Error("Expected non-generated file")
	}

	if !current.NoLint() {
		t.Error("Expected file-level nolint")
	}

	pos := func(name string) token.Pos {
		return f.Scope.Lookup(name).Pos()
	}

	for name, want := range map[string]bool{"a": true, "b": false, "c": false} {
		if got := current.NoLintComment(pos(name)); got != want {
			t.Errorf("NoLintComment(%s) = %v, want %v", name, got, want)
		}
	}
}

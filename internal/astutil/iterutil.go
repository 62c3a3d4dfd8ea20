// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
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

package astutil

import (
	"go/ast"
	"iter"
)

// Names yields the position and identifier of all non-blank names.
func Names(names []*ast.Ident) iter.Seq2[int, *ast.Ident] {
	return func(yield func(int, *ast.Ident) bool) {
		for i, id := range names {
			if id == nil || id.Name == "_" {
				continue // blank identifier
			}

			if !yield(i, id) {
				return
			}
		}
	}
}

// Unparen removes any parentheses around an expression.
func Unparen(e ast.Expr) ast.Expr {
	for {
		p, ok := e.(*ast.ParenExpr)
		if !ok {
			return e
		}

		e = p.X
	}
}

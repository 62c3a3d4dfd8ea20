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

package astutil

import "golang.org/x/tools/go/ast/inspector"

// NodeIndex identifies a node by its traversal index in an [inspector.Inspector].
// An index is only meaningful for the inspector it was taken from.
type NodeIndex int32

// InvalidNode marks the absence of a node, like a match inside a doc comment.
const InvalidNode NodeIndex = -1

// NodeIndexOf returns the [NodeIndex] of the node at c.
func NodeIndexOf(c inspector.Cursor) NodeIndex {
	return NodeIndex(c.Index())
}

// Valid reports whether n refers to a node.
func (n NodeIndex) Valid() bool {
	return n > InvalidNode
}

// Cursor returns the cursor at n in in, or false when n is invalid.
func (n NodeIndex) Cursor(in *inspector.Inspector) (inspector.Cursor, bool) {
	if !n.Valid() || in == nil {
		return inspector.Cursor{}, false
	}

	return in.At(int32(n)), true
}

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

package worklist

import (
	"go/types"

	"fillmore-labs.com/nilopt/internal/element"
)

// WorkList is the frontier of elements still to be searched, backed by a provenance [Forest].
//
// Every element is enqueued at most once, no matter how often it is rediscovered.
type WorkList struct {
	forest   *Forest
	frontier []*types.Var
	evicted  map[*types.Var]struct{}
}

// New creates an empty [WorkList].
func New() *WorkList {
	return &WorkList{forest: NewForest(), evicted: make(map[*types.Var]struct{})}
}

// AddAll inserts the discoveries made while processing from, or seeds when from is nil,
// and enqueues the elements not seen before. It returns the newly enqueued elements.
func (w *WorkList) AddAll(from *types.Var, discoveries ...element.Discovery) []*types.Var {
	var added []*types.Var

	for _, d := range discoveries {
		created := w.forest.add(from, d)
		w.frontier = append(w.frontier, created...)
		added = append(added, created...)
	}

	return added
}

// HasNext reports whether an element is waiting to be searched.
func (w *WorkList) HasNext() bool {
	w.skipEvicted()

	return len(w.frontier) > 0
}

// Next dequeues the next element in discovery order, or nil if the frontier is empty.
func (w *WorkList) Next() *types.Var {
	if !w.HasNext() {
		return nil
	}

	v := w.frontier[0]
	w.frontier = w.frontier[1:]

	return v
}

func (w *WorkList) skipEvicted() {
	for len(w.frontier) > 0 {
		if _, ok := w.evicted[w.frontier[0]]; !ok {
			return
		}

		w.frontier = w.frontier[1:]
	}
}

// RemoveAll evicts the elements from the frontier. Their nodes stay in the forest.
func (w *WorkList) RemoveAll(vars ...*types.Var) {
	for _, v := range vars {
		w.evicted[v] = struct{}{}
	}
}

// Pending returns the number of elements in the frontier, including evicted ones not yet skipped.
func (w *WorkList) Pending() int {
	return len(w.frontier)
}

// Forest returns the provenance forest.
func (w *WorkList) Forest() *Forest {
	return w.forest
}

// Subtree returns v and all elements discovered transitively through it.
func (w *WorkList) Subtree(v *types.Var) []*types.Var {
	return w.forest.Descendants(v)
}

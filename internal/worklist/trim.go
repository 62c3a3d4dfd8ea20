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
	"slices"

	"fillmore-labs.com/nilopt/internal/element"
)

// Trim removes the nodes of not-refactorable elements together with everything
// discovered through them. A union keeps its surviving members and disappears
// when none survive.
//
// The returned forest is a new value; the removed elements are returned in discovery order.
func (f *Forest) Trim(nr map[*types.Var]struct{}) (*Forest, []*types.Var) {
	var condemned []NodeID

	for v := range nr {
		if id, ok := f.byVar[v]; ok {
			condemned = append(condemned, id)
		}
	}

	slices.Sort(condemned)

	dead := f.reach(condemned)
	alive := make([]bool, len(f.nodes))

	// children follow their parents in the arena, so a reverse pass settles unions
	for id := len(f.nodes) - 1; id >= 0; id-- {
		n := f.nodes[id]

		switch {
		case dead[id]:
			// condemned

		case n.kind == valueNode:
			alive[id] = true

		default:
			alive[id] = slices.ContainsFunc(n.children, func(c NodeID) bool { return alive[c] })
		}
	}

	t := NewForest()
	remap := make([]NodeID, len(f.nodes))

	var removed []*types.Var

	for id, n := range f.nodes {
		remap[id] = noNode

		if !alive[id] {
			if n.kind == valueNode {
				removed = append(removed, n.v)
			}

			continue
		}

		parent := noNode
		if n.parent != noNode {
			parent = remap[n.parent]
		}

		nid := t.push(node{kind: n.kind, v: n.v, implicit: n.implicit, parent: parent})
		remap[id] = nid

		if n.kind == valueNode {
			t.byVar[n.v] = nid
		}
	}

	for _, l := range f.links {
		if from, to := remap[l.from], remap[l.to]; from != noNode && to != noNode {
			t.links = append(t.links, link{from: from, to: to})
		}
	}

	return t, removed
}

// Components returns the maximal connected element sets of the forest.
// Elements within a component and the components themselves are ordered by position.
func (f *Forest) Components() [][]*types.Var {
	uf := newUnionFind(len(f.nodes))

	for id, n := range f.nodes {
		if n.parent != noNode {
			uf.union(NodeID(id), n.parent)
		}
	}

	for _, l := range f.links {
		uf.union(l.from, l.to)
	}

	byRoot := make(map[NodeID][]*types.Var)

	var order []NodeID

	for id, n := range f.nodes {
		if n.kind != valueNode {
			continue
		}

		r := uf.find(NodeID(id))
		if _, ok := byRoot[r]; !ok {
			order = append(order, r)
		}

		byRoot[r] = append(byRoot[r], n.v)
	}

	components := make([][]*types.Var, 0, len(order))
	for _, r := range order {
		c := byRoot[r]
		slices.SortFunc(c, element.Compare)
		components = append(components, c)
	}

	slices.SortFunc(components, func(a, b []*types.Var) int { return element.Compare(a[0], b[0]) })

	return components
}

type unionFind struct {
	parent []NodeID
	rank   []uint8
}

func newUnionFind(n int) unionFind {
	uf := unionFind{parent: make([]NodeID, n), rank: make([]uint8, n)}
	for i := range uf.parent {
		uf.parent[i] = NodeID(i)
	}

	return uf
}

func (uf unionFind) find(x NodeID) NodeID {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}

	return x
}

func (uf unionFind) union(a, b NodeID) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}

	switch {
	case uf.rank[ra] < uf.rank[rb]:
		uf.parent[ra] = rb

	case uf.rank[ra] > uf.rank[rb]:
		uf.parent[rb] = ra

	default:
		uf.parent[rb] = ra
		uf.rank[ra]++
	}
}

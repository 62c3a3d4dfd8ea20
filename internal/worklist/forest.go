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

// Package worklist keeps the frontier of elements to search and the provenance
// forest recording which element's processing discovered which.
package worklist

import (
	"go/types"
	"slices"

	"fillmore-labs.com/nilopt/internal/element"
)

// NodeID identifies a node of a [Forest].
type NodeID int32

const noNode NodeID = -1

type nodeKind uint8

const (
	valueNode nodeKind = iota
	unionNode
)

type node struct {
	kind     nodeKind
	v        *types.Var // nil for union nodes
	implicit bool
	parent   NodeID
	children []NodeID
}

type link struct{ from, to NodeID }

// Forest is the provenance forest of a harvest run.
//
// Value nodes hold one element each; an element has at most one value node.
// Union nodes group co-equal siblings discovered together. A rediscovered
// element is recorded as a link from the discovering node, so the connected
// components do not depend on the search order.
type Forest struct {
	nodes []node
	byVar map[*types.Var]NodeID
	links []link
}

// NewForest creates an empty [Forest].
func NewForest() *Forest {
	return &Forest{byVar: make(map[*types.Var]NodeID)}
}

// Len returns the number of elements in the forest.
func (f *Forest) Len() int {
	return len(f.byVar)
}

// Contains reports whether v has a node in the forest.
func (f *Forest) Contains(v *types.Var) bool {
	_, ok := f.byVar[v]

	return ok
}

// Implicit reports whether v was only discovered implicitly.
func (f *Forest) Implicit(v *types.Var) bool {
	id, ok := f.byVar[v]

	return ok && f.nodes[id].implicit
}

// Parent returns the element whose processing discovered v, if any.
func (f *Forest) Parent(v *types.Var) (*types.Var, bool) {
	id, ok := f.byVar[v]
	if !ok {
		return nil, false
	}

	p := f.nodes[id].parent
	if p != noNode && f.nodes[p].kind == unionNode {
		p = f.nodes[p].parent
	}

	if p == noNode {
		return nil, false
	}

	return f.nodes[p].v, true
}

// InUnion reports whether v was discovered as a co-equal sibling.
func (f *Forest) InUnion(v *types.Var) bool {
	id, ok := f.byVar[v]
	if !ok {
		return false
	}

	p := f.nodes[id].parent

	return p != noNode && f.nodes[p].kind == unionNode
}

// Elements returns all elements of the forest in discovery order.
func (f *Forest) Elements() []*types.Var {
	vars := make([]*types.Var, 0, len(f.byVar))

	for _, n := range f.nodes {
		if n.kind == valueNode {
			vars = append(vars, n.v)
		}
	}

	return vars
}

// add inserts the discovery under the node of from and returns the newly created elements.
func (f *Forest) add(from *types.Var, d element.Discovery) []*types.Var {
	parent := noNode
	if from != nil {
		if id, ok := f.byVar[from]; ok {
			parent = id
		}
	}

	var fresh []element.Candidate

	var known []NodeID

	for _, c := range d.Candidates {
		if id, ok := f.byVar[c.Var]; ok {
			if !c.Implicit {
				f.nodes[id].implicit = false
			}

			known = append(known, id)

			continue
		}

		if slices.ContainsFunc(fresh, func(e element.Candidate) bool { return e.Var == c.Var }) {
			continue
		}

		fresh = append(fresh, c)
	}

	anchor := parent
	if len(fresh) > 1 && (d.Joint || parent == noNode) {
		anchor = f.push(node{kind: unionNode, parent: parent})
	}

	created := make([]*types.Var, 0, len(fresh))

	for _, c := range fresh {
		id := f.push(node{kind: valueNode, v: c.Var, implicit: c.Implicit, parent: anchor})
		f.byVar[c.Var] = id
		created = append(created, c.Var)
	}

	hub := anchor
	if hub == noNode {
		switch {
		case len(created) > 0:
			hub = f.byVar[created[0]]

		case len(known) > 0:
			hub = known[0]
		}
	}

	for _, id := range known {
		if id != hub {
			f.links = append(f.links, link{from: hub, to: id})
		}
	}

	return created
}

func (f *Forest) push(n node) NodeID {
	id := NodeID(len(f.nodes))
	f.nodes = append(f.nodes, n)

	if n.parent != noNode {
		f.nodes[n.parent].children = append(f.nodes[n.parent].children, id)
	}

	return id
}

// Descendants returns v and every element discovered transitively through it,
// following both tree edges and rediscovery links, in discovery order.
func (f *Forest) Descendants(v *types.Var) []*types.Var {
	start, ok := f.byVar[v]
	if !ok {
		return nil
	}

	reached := f.reach([]NodeID{start})

	var vars []*types.Var

	for id, n := range f.nodes {
		if reached[id] && n.kind == valueNode {
			vars = append(vars, n.v)
		}
	}

	return vars
}

// reach marks all nodes reachable from the start nodes.
func (f *Forest) reach(start []NodeID) []bool {
	out := make([][]NodeID, len(f.nodes))
	for _, l := range f.links {
		out[l.from] = append(out[l.from], l.to)
	}

	reached := make([]bool, len(f.nodes))
	queue := slices.Clone(start)

	for _, id := range start {
		reached[id] = true
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		for _, next := range slices.Concat(f.nodes[id].children, out[id]) {
			if reached[next] {
				continue
			}

			reached[next] = true
			queue = append(queue, next)
		}
	}

	return reached
}

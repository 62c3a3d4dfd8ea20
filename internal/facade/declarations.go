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

package facade

import (
	"go/types"
	"slices"

	"fillmore-labs.com/nilopt/analyzer/level"
)

// Declarations returns all declarations sharing the parameters of fn under the given policy,
// ordered by position. The result always contains fn.
func (p *Program) Declarations(fn *types.Func, policy level.Overrides) []*types.Func {
	fn = fn.Origin()

	if fn.Signature().Recv() == nil {
		return []*types.Func{fn}
	}

	var decls []*types.Func

	switch policy {
	case level.OverridesExact:
		decls = []*types.Func{fn}

	case level.OverridesSignature:
		decls = p.sameSignature(fn)

	default:
		decls = p.implementing(fn)
	}

	slices.SortFunc(decls, func(a, b *types.Func) int { return int(a.Pos() - b.Pos()) })

	return decls
}

// sameSignature returns all methods with the name and signature of fn.
func (p *Program) sameSignature(fn *types.Func) []*types.Func {
	decls := []*types.Func{fn}

	for _, m := range p.index.methods[fn.Name()] {
		if m != fn && types.Identical(m.Signature(), fn.Signature()) {
			decls = append(decls, m)
		}
	}

	return decls
}

// implementing returns the closure of fn over the implements relation:
// interface methods fn implements, and methods of types implementing an interface method in the set.
func (p *Program) implementing(fn *types.Func) []*types.Func {
	candidates := p.index.methods[fn.Name()]

	seen := map[*types.Func]struct{}{fn: {}}
	queue := []*types.Func{fn}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, m := range candidates {
			if _, ok := seen[m]; ok {
				continue
			}

			if !related(current, m) {
				continue
			}

			seen[m] = struct{}{}
			queue = append(queue, m)
		}
	}

	decls := make([]*types.Func, 0, len(seen))
	for m := range seen {
		decls = append(decls, m)
	}

	return decls
}

// related reports whether one method is an interface method the receiver of the other implements.
func related(a, b *types.Func) bool {
	ai, aok := interfaceOf(a)
	bi, bok := interfaceOf(b)

	switch {
	case aok && !bok:
		return implements(b, ai)

	case !aok && bok:
		return implements(a, bi)

	default:
		return false
	}
}

// interfaceOf returns the interface type declaring m, if m is an interface method.
func interfaceOf(m *types.Func) (*types.Interface, bool) {
	recv := m.Signature().Recv()
	if recv == nil {
		return nil, false
	}

	iface, ok := recv.Type().Underlying().(*types.Interface)

	return iface, ok
}

// implements reports whether the receiver type of the concrete method m implements iface.
func implements(m *types.Func, iface *types.Interface) bool {
	recv := m.Signature().Recv().Type()
	if ptr, ok := recv.(*types.Pointer); ok {
		recv = ptr.Elem()
	}

	if named, ok := types.Unalias(recv).(*types.Named); ok && named.TypeParams().Len() > 0 {
		return false // uninstantiated generic receiver
	}

	return types.Implements(recv, iface) || types.Implements(types.NewPointer(recv), iface)
}

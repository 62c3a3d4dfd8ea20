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

package report

import (
	"fmt"
	"go/types"
	"strings"

	"fillmore-labs.com/nilopt/internal/element"
	"fillmore-labs.com/nilopt/internal/facade"
)

// Describe returns a human-readable description of an element, like "parameter 'p' of f".
func Describe(p *facade.Program, v *types.Var) string {
	kind := element.KindOf(v)

	var fn *types.Func
	index := 0

	if kind == element.KindParam || kind == element.KindResult {
		fn, index, _ = p.Owner(v)
	}

	var b strings.Builder

	switch {
	case kind == element.KindParam && index < 0 && fn != nil:
		b.WriteString("receiver")

	case kind == element.KindResult && v.Name() == "":
		fmt.Fprintf(&b, "result %d", index)

	default:
		b.WriteString(kind.String())
	}

	if v.Name() != "" {
		fmt.Fprintf(&b, " '%s'", v.Name())
	}

	if fn != nil {
		fmt.Fprintf(&b, " of %s", funcName(fn))
	}

	return b.String()
}

// funcName returns the name of fn, qualified with its receiver type name for methods.
func funcName(fn *types.Func) string {
	recv := fn.Signature().Recv()
	if recv == nil {
		return fn.Name()
	}

	t := recv.Type()
	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}

	if named, ok := types.Unalias(t).(*types.Named); ok {
		return named.Obj().Name() + "." + fn.Name()
	}

	return fn.Name()
}

// concatNames formats a list of names into a human-readable string (e.g., "a, b and c").
func concatNames(names []string) string {
	var all strings.Builder

	for i, name := range names {
		if i > 0 {
			var separator string
			if i == len(names)-1 {
				separator = " and "
			} else {
				separator = ", "
			}

			all.WriteString(separator) // ignore error
		}

		all.WriteString(name) // ignore error
	}

	return all.String()
}

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

// Package element describes the declarations a nil value can flow through.
//
// An element is a *[types.Var]: a struct field, a package-level or local variable,
// a parameter, or a result variable of a function signature. Unnamed results have
// a result variable too, so every result slot of a declared function is an element.
package element

import (
	"go/token"
	"go/types"
)

// Kind is the category of an element.
type Kind uint8

//go:generate go tool stringer -type Kind -linecomment
const (
	// KindField is a struct field.
	KindField Kind = iota // field

	// KindVar is a package-level or local variable.
	KindVar // variable

	// KindParam is a parameter or receiver.
	KindParam // parameter

	// KindResult is a result slot.
	KindResult // result
)

// KindOf returns the [Kind] of v.
func KindOf(v *types.Var) Kind {
	switch v.Kind() {
	case types.FieldVar:
		return KindField

	case types.ParamVar, types.RecvVar:
		return KindParam

	case types.ResultVar:
		return KindResult

	default:
		return KindVar
	}
}

// Normalize returns the canonical element for v.
// Fields and parameters of instantiated generic types map to their generic origin.
func Normalize(v *types.Var) *types.Var {
	if v == nil {
		return nil
	}

	return v.Origin()
}

// Nilable reports whether values of type t can be nil.
func Nilable(t types.Type) bool {
	switch u := t.Underlying().(type) {
	case *types.Pointer, *types.Interface, *types.Map, *types.Slice, *types.Chan, *types.Signature:
		return !isTypeParam(t)

	case *types.Basic:
		return u.Kind() == types.UnsafePointer || u.Kind() == types.UntypedNil

	default:
		return false
	}
}

func isTypeParam(t types.Type) bool {
	_, ok := types.Unalias(t).(*types.TypeParam)

	return ok
}

// IsError reports whether t is the predeclared error type.
func IsError(t types.Type) bool {
	return types.Identical(t, types.Universe.Lookup("error").Type())
}

// Candidate is an element discovered by seeding or propagation.
type Candidate struct {
	Var *types.Var

	// Implicit is true for fields and package variables that are nil because
	// they lack an initializer, discovered without a nil literal.
	Implicit bool
}

// Discovery is a set of candidates found together at one occurrence.
type Discovery struct {
	Candidates []Candidate

	// Joint marks co-equal siblings, like the parameters of overriding methods.
	Joint bool
}

// Less orders elements by declaration position, then name.
func Less(a, b *types.Var) bool {
	if a.Pos() != b.Pos() {
		return a.Pos() < b.Pos()
	}

	return a.Name() < b.Name()
}

// Compare is the three-way version of [Less], for use with [slices.SortFunc].
func Compare(a, b *types.Var) int {
	switch {
	case a == b:
		return 0

	case Less(a, b):
		return -1

	case Less(b, a):
		return 1

	default:
		return comparePkg(a.Pkg(), b.Pkg())
	}
}

func comparePkg(a, b *types.Package) int {
	var pa, pb string
	if a != nil {
		pa = a.Path()
	}

	if b != nil {
		pb = b.Path()
	}

	switch {
	case pa < pb:
		return -1

	case pa > pb:
		return 1

	default:
		return 0
	}
}

// Valid reports whether v is declared at a known position.
func Valid(v *types.Var) bool {
	return v != nil && v.Pos() != token.NoPos
}

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

package failure

// Kind classifies a precondition failure.
type Kind uint8

//go:generate go tool stringer -type Kind -linecomment
const (
	// Unclassifiable means a nil-dependent expression appears in a syntactic
	// context the flow dispatch does not recognize.
	Unclassifiable Kind = iota // ctx

	// Disallowed means the context is valid Go but never convertible,
	// like a conversion of a nil value.
	Disallowed // cnv

	// NonWritable means the match lies in a package that must not be rewritten.
	NonWritable // ro

	// Generated means the match lies in a generated file.
	Generated // gen

	// Binary means the declaration has no syntax in the search scope.
	Binary // bin

	// MissingBinding means an identifier could not be resolved to an object.
	MissingBinding // bnd

	// ModelError means the type information is inconsistent with the syntax.
	ModelError // mdl

	// Ineligible means a group contains an element of a category not eligible for conversion.
	Ineligible // cat

	// ForeignPackage means a group contains an element declared outside the root packages.
	ForeignPackage // pkg

	// NoCandidates means seeding found no usable nil value.
	NoCandidates // nil

	// NumKinds is the number of failure kinds.
	NumKinds // -
)

// Fatal reports whether a failure of this kind aborts the whole run.
func (k Kind) Fatal() bool {
	switch k {
	case MissingBinding, ModelError, NoCandidates:
		return true

	default:
		return false
	}
}

// SearchWide reports whether a failure of this kind rejects a search match
// itself rather than a single flow.
func (k Kind) SearchWide() bool {
	switch k {
	case NonWritable, Generated, Binary:
		return true

	default:
		return false
	}
}

// Describe returns a human-readable description.
func (k Kind) Describe() string {
	switch k {
	case Unclassifiable:
		return "unsupported nil context"

	case Disallowed:
		return "nil value is converted"

	case NonWritable:
		return "declared in read-only code"

	case Generated:
		return "used in generated code"

	case Binary:
		return "declared outside the analyzed sources"

	case MissingBinding:
		return "unresolved identifier"

	case ModelError:
		return "inconsistent type information"

	case Ineligible:
		return "category not eligible"

	case ForeignPackage:
		return "declared in another package"

	case NoCandidates:
		return "no nil value passed the preconditions"

	default:
		return k.String()
	}
}

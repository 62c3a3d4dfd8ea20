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

package config

import "fillmore-labs.com/nilopt/internal/element"

// Category is an element category eligible for conversion.
type Category uint8

const (
	// Fields are struct fields.
	Fields Category = 1 << iota

	// Variables are package-level and local variables.
	Variables

	// Parameters are function and method parameters.
	Parameters

	// Results are function result slots.
	Results

	// ImplicitFields permits fields and package variables that are nil only because they lack an initializer.
	ImplicitFields
)

// Categories is the set of eligible [Category] values.
type Categories = BitMask[Category]

// DefaultCategories returns all categories except implicit fields.
func DefaultCategories() Categories {
	return NewBitMask(Fields | Variables | Parameters | Results)
}

// CategoryOf returns the [Category] of an element kind.
func CategoryOf(k element.Kind) Category {
	switch k {
	case element.KindField:
		return Fields

	case element.KindVar:
		return Variables

	case element.KindParam:
		return Parameters

	case element.KindResult:
		return Results

	default:
		return 0
	}
}

// Behavior represents behavioral options.
type Behavior uint8

const (
	// IncludeGenerated treats generated files as writable and seeds them.
	IncludeGenerated Behavior = 1 << iota

	// CrossPackage permits groups spanning more than the root packages.
	CrossPackage

	// ErrorValues considers elements of type error.
	ErrorValues
)

// Behaviors is the set of enabled [Behavior] options.
type Behaviors = BitMask[Behavior]

// DefaultBehavior returns the default behavior.
func DefaultBehavior() Behaviors {
	return NewBitMask(CrossPackage)
}

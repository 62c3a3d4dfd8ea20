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

// Package failure defines the typed precondition failures of a harvest run.
package failure

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
)

// Failure is a precondition failure attributed to an element, a syntax range, or both.
type Failure struct {
	// Kind classifies the failure.
	Kind Kind

	// Var is the offending element, if known.
	Var *types.Var

	// Pos and End delimit the offending syntax, if known.
	Pos, End token.Pos

	// Detail is an optional explanation.
	Detail string
}

// New creates a [Failure] at the given range.
func New(kind Kind, rng ast.Node, v *types.Var, format string, args ...any) *Failure {
	f := &Failure{Kind: kind, Var: v}

	if rng != nil {
		f.Pos, f.End = rng.Pos(), rng.End()
	}

	if format != "" {
		f.Detail = fmt.Sprintf(format, args...)
	}

	return f
}

// Error implements [error].
func (f *Failure) Error() string {
	msg := f.Kind.Describe()

	if f.Var != nil && f.Var.Name() != "" {
		msg = fmt.Sprintf("%s: '%s'", msg, f.Var.Name())
	}

	if f.Detail != "" {
		msg = fmt.Sprintf("%s (%s)", msg, f.Detail)
	}

	return msg
}

// Fatal reports whether this failure aborts the run.
func (f *Failure) Fatal() bool {
	return f != nil && f.Kind.Fatal()
}

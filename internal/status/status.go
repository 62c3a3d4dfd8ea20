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

// Package status aggregates status entries of a harvest run.
package status

import (
	"go/token"
	"go/types"
	"slices"

	"fillmore-labs.com/nilopt/analyzer/level"
	"fillmore-labs.com/nilopt/internal/failure"
)

// Entry is a single message of a [Status].
type Entry struct {
	Severity level.Severity
	Kind     failure.Kind
	Message  string

	// Var is the element the entry is attributed to, if any.
	Var *types.Var

	// Pos and End delimit the syntax the entry is attributed to, if any.
	Pos, End token.Pos
}

// Status is an ordered list of [Entry] values.
// The zero value is an OK status.
type Status struct {
	entries []Entry
}

// Add appends an entry.
func (s *Status) Add(e Entry) {
	s.entries = append(s.entries, e)
}

// Merge appends all entries of other.
func (s *Status) Merge(other Status) {
	s.entries = append(s.entries, other.entries...)
}

// Entries returns the entries in insertion order.
func (s Status) Entries() []Entry {
	return slices.Clone(s.entries)
}

// Len returns the number of entries.
func (s Status) Len() int {
	return len(s.entries)
}

// Severity returns the highest severity of all entries.
func (s Status) Severity() level.Severity {
	sev := level.SeverityOK
	for _, e := range s.entries {
		sev = max(sev, e.Severity)
	}

	return sev
}

// OK reports whether there is no entry above [level.SeverityInfo].
func (s Status) OK() bool {
	return s.Severity() <= level.SeverityInfo
}

// Fatal reports whether the status has a fatal entry.
func (s Status) Fatal() bool {
	return s.Severity() == level.SeverityFatal
}

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

package config

import (
	"fillmore-labs.com/nilopt/analyzer/level"
	"fillmore-labs.com/nilopt/internal/failure"
	"fillmore-labs.com/nilopt/internal/status"
)

// Settings configure a harvest run.
type Settings struct {
	// Eligible are the element categories eligible for conversion.
	Eligible Categories

	// Behavior holds behavioral options.
	Behavior Behaviors

	// Overrides is the policy for methods sharing a parameter.
	Overrides level.Overrides

	// Severities maps failure kinds to status severities.
	Severities Severities
}

// Default returns the default settings.
func Default() Settings {
	return Settings{
		Eligible:   DefaultCategories(),
		Behavior:   DefaultBehavior(),
		Overrides:  level.OverridesImplements,
		Severities: DefaultSeverities(),
	}
}

// Entry converts a failure into a status entry using the configured severity.
func (s Settings) Entry(f *failure.Failure) status.Entry {
	return status.Entry{
		Severity: s.Severities.Of(f.Kind),
		Kind:     f.Kind,
		Message:  f.Error(),
		Var:      f.Var,
		Pos:      f.Pos,
		End:      f.End,
	}
}

// Severities maps each [failure.Kind] to a [level.Severity].
type Severities [failure.NumKinds]level.Severity

// DefaultSeverities returns the default severity mapping.
func DefaultSeverities() Severities {
	var s Severities
	for k := range failure.NumKinds {
		switch {
		case k.Fatal():
			s[k] = level.SeverityFatal

		case k == failure.Ineligible, k == failure.ForeignPackage:
			s[k] = level.SeverityError

		default:
			s[k] = level.SeverityWarning
		}
	}

	return s
}

// Of returns the severity of kind.
func (s Severities) Of(kind failure.Kind) level.Severity {
	if kind >= failure.NumKinds {
		return level.SeverityFatal
	}

	if kind.Fatal() {
		return level.SeverityFatal // never downgraded
	}

	return s[kind]
}

// Set changes the severity of kind.
func (s *Severities) Set(kind failure.Kind, severity level.Severity) {
	if kind < failure.NumKinds {
		s[kind] = severity
	}
}

// KindByName returns the failure kind with the given code or description-style name.
func KindByName(name string) (failure.Kind, bool) {
	for k := range failure.NumKinds {
		if k.String() == name || kindNames[k] == name {
			return k, true
		}
	}

	return 0, false
}

var kindNames = [failure.NumKinds]string{
	failure.Unclassifiable: "unclassifiable",
	failure.Disallowed:     "disallowed",
	failure.NonWritable:    "non-writable",
	failure.Generated:      "generated",
	failure.Binary:         "binary",
	failure.MissingBinding: "missing-binding",
	failure.ModelError:     "model-error",
	failure.Ineligible:     "ineligible",
	failure.ForeignPackage: "foreign-package",
	failure.NoCandidates:   "no-candidates",
}

// KindName returns the configuration name of kind.
func KindName(kind failure.Kind) string {
	if kind < failure.NumKinds {
		return kindNames[kind]
	}

	return kind.String()
}

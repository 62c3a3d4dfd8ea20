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

package gclplugin

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"fillmore-labs.com/nilopt/analyzer"
	"fillmore-labs.com/nilopt/analyzer/level"
	"fillmore-labs.com/nilopt/internal/config"
)

// ErrUnknownKind is returned for a severity setting naming no failure kind.
var ErrUnknownKind = errors.New("unknown failure kind")

// Settings represents the configuration options for an instance of the [Plugin].
type Settings struct {
	// Errors seeds nil values of the error type.
	Errors *bool `json:"errors,omitzero"`
	// Fields makes struct fields eligible.
	Fields *bool `json:"fields,omitzero"`
	// Variables makes local and package-level variables eligible.
	Variables *bool `json:"variables,omitzero"`
	// Parameters makes function parameters eligible.
	Parameters *bool `json:"parameters,omitzero"`
	// Results makes function results eligible.
	Results *bool `json:"results,omitzero"`
	// ImplicitFields makes fields and package-level variables nil only by lack of initializer eligible.
	ImplicitFields *bool `json:"implicit-fields,omitzero"`
	// Overrides selects the method declarations sharing parameters.
	Overrides *level.Overrides `json:"overrides,omitzero"`
	// Threshold is the minimum severity of reported findings.
	Threshold *level.Severity `json:"threshold,omitzero"`
	// Severities changes the severity of failure kinds, by name or code.
	Severities map[string]level.Severity `json:"severities,omitzero"`
}

// Options converts [Settings] into a list of [analyzer.Option] for the nilopt analyzer.
// It processes settings and applies them only when explicitly set (non-nil).
func (s Settings) Options() ([]analyzer.Option, error) {
	var opts []analyzer.Option

	opts = appendOption(opts, s.Errors, analyzer.WithErrors)
	opts = appendOption(opts, s.Fields, analyzer.WithFields)
	opts = appendOption(opts, s.Variables, analyzer.WithVariables)
	opts = appendOption(opts, s.Parameters, analyzer.WithParameters)
	opts = appendOption(opts, s.Results, analyzer.WithResults)
	opts = appendOption(opts, s.ImplicitFields, analyzer.WithImplicitFields)
	opts = appendOption(opts, s.Overrides, analyzer.WithOverrides)
	opts = appendOption(opts, s.Threshold, analyzer.WithThreshold)

	for _, kind := range slices.Sorted(maps.Keys(s.Severities)) {
		if _, ok := config.KindByName(kind); !ok {
			return nil, fmt.Errorf("nilopt: severity of %q: %w", kind, ErrUnknownKind)
		}

		opts = append(opts, analyzer.WithSeverity(kind, s.Severities[kind]))
	}

	return opts, nil
}

// appendOption appends a non-nil setting to an [analyzer.Option] list.
func appendOption[T any](opts []analyzer.Option, value *T, constructor func(T) analyzer.Option) []analyzer.Option {
	if value == nil {
		return opts
	}

	return append(opts, constructor(*value))
}

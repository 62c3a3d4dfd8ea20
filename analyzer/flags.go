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

package analyzer

import (
	"flag"
	"strconv"

	"fillmore-labs.com/nilopt/internal/config"
	"fillmore-labs.com/nilopt/internal/run"
)

// registerFlags binds the [run.Options] values to command line flag values.
// A nil flag set value defaults to the program's command line.
func registerFlags(flags *flag.FlagSet, r *run.Options) {
	if flags == nil {
		flags = flag.CommandLine
	}

	s := &r.Settings

	flags.Var(bitValue[config.Behavior, *config.Behaviors]{&s.Behavior, config.IncludeGenerated}, "generated", "check generated files")
	flags.Var(bitValue[config.Behavior, *config.Behaviors]{&s.Behavior, config.ErrorValues}, "errors", "consider elements of type error")

	for _, c := range []struct {
		name     string
		category config.Category
		usage    string
	}{
		{"fields", config.Fields, "struct fields are eligible"},
		{"variables", config.Variables, "variables are eligible"},
		{"parameters", config.Parameters, "parameters are eligible"},
		{"results", config.Results, "function results are eligible"},
		{"implicit-fields", config.ImplicitFields, "fields and package variables nil only by lack of initializer are eligible"},
	} {
		flags.Var(bitValue[config.Category, *config.Categories]{&s.Eligible, c.category}, c.name, c.usage)
	}

	flags.TextVar(&s.Overrides, "overrides", s.Overrides, "methods sharing a parameter: exact, implements or signature")
	flags.TextVar(&r.Threshold, "threshold", r.Threshold, "minimum severity of reported findings: info, warning, error or fatal")
}

// bitValue is a boolean [flag.Value] backed by a single flag of a bit mask.
type bitValue[F any, B bitFlags[F]] struct {
	flags B
	value F
}

type bitFlags[F any] interface {
	comparable
	Set(flag F, value bool)
	Enabled(flag F) bool
}

// Set implements [flag.Value].
func (f bitValue[_, B]) Set(s string) error {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}

	f.flags.Set(f.value, b)

	return nil
}

// Get implements [flag.Getter].
func (f bitValue[_, B]) Get() any {
	var null B
	if f.flags == null {
		return false
	}

	return f.flags.Enabled(f.value)
}

// String implements [flag.Value].
func (f bitValue[_, _]) String() string {
	b, _ := f.Get().(bool)

	return strconv.FormatBool(b)
}

// IsBoolFlag returns true to indicate that this is a boolean [flag.Value].
func (f bitValue[_, _]) IsBoolFlag() bool { return true }

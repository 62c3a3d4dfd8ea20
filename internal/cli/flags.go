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

package cli

import (
	"encoding"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"fillmore-labs.com/nilopt/analyzer/level"
	"fillmore-labs.com/nilopt/internal/config"
)

// ErrUnknownFormat is returned for an unsupported report format.
var ErrUnknownFormat = errors.New("unknown format")

// format is the output format of a report.
type format string

const (
	formatText  format = "text"
	formatJSON  format = "json"
	formatSARIF format = "sarif"
)

var _ pflag.Value = (*format)(nil)

func (f *format) String() string { return string(*f) }

func (f *format) Set(s string) error {
	switch v := format(s); v {
	case formatText, formatJSON, formatSARIF:
		*f = v

		return nil

	default:
		return fmt.Errorf("%w %q, want one of text, json or sarif", ErrUnknownFormat, s)
	}
}

func (f *format) Type() string { return "format" }

// textVar is a value with a textual representation.
type textVar interface {
	encoding.TextMarshaler
	encoding.TextUnmarshaler
}

// textValue adapts a [textVar] to a [pflag.Value].
type textValue struct {
	v   textVar
	typ string
}

var _ pflag.Value = textValue{}

func (t textValue) String() string {
	b, err := t.v.MarshalText()
	if err != nil {
		return ""
	}

	return string(b)
}

func (t textValue) Set(s string) error { return t.v.UnmarshalText([]byte(s)) }

func (t textValue) Type() string { return t.typ }

// settingsFlags are the command line overrides of the configuration.
type settingsFlags struct {
	generated      bool
	errors         bool
	crossPackage   bool
	fields         bool
	variables      bool
	parameters     bool
	results        bool
	implicitFields bool
	overrides      level.Overrides
	threshold      level.Severity
	severities     map[string]string
}

func (s *settingsFlags) register(flags *pflag.FlagSet) {
	defaults := config.Default()

	flags.BoolVar(&s.generated, "generated", defaults.Behavior.Enabled(config.IncludeGenerated), "Seed and rewrite generated files.")
	flags.BoolVar(&s.errors, "errors", defaults.Behavior.Enabled(config.ErrorValues), "Consider elements of type error.")
	flags.BoolVar(&s.crossPackage, "cross-package", defaults.Behavior.Enabled(config.CrossPackage), "Permit groups spanning packages outside the roots.")
	flags.BoolVar(&s.fields, "fields", defaults.Eligible.Enabled(config.Fields), "Struct fields are eligible.")
	flags.BoolVar(&s.variables, "variables", defaults.Eligible.Enabled(config.Variables), "Variables are eligible.")
	flags.BoolVar(&s.parameters, "parameters", defaults.Eligible.Enabled(config.Parameters), "Parameters are eligible.")
	flags.BoolVar(&s.results, "results", defaults.Eligible.Enabled(config.Results), "Results are eligible.")
	flags.BoolVar(&s.implicitFields, "implicit-fields", defaults.Eligible.Enabled(config.ImplicitFields), "Fields and package variables nil only by lack of initializer are eligible.")

	s.overrides = defaults.Overrides
	flags.Var(textValue{&s.overrides, "overrides"}, "overrides", "Methods sharing parameters: implements, exact or signature.")

	s.threshold = level.SeverityWarning
	flags.Var(textValue{&s.threshold, "severity"}, "threshold", "Minimum severity of reported findings.")

	flags.StringToStringVar(&s.severities, "severity", nil, "Severity of failure kinds, as kind=severity.")
}

// resolve returns the settings from the defaults, the configuration file and the changed flags, in that order.
func (s *settingsFlags) resolve(cmd *cobra.Command, configFile string) (config.Settings, level.Severity, error) {
	settings, threshold := config.Default(), level.SeverityWarning

	if configFile != "" {
		file, err := config.LoadFile(configFile)
		if err != nil {
			return settings, threshold, err
		}

		if err := file.Apply(&settings, &threshold); err != nil {
			return settings, threshold, err
		}
	}

	flags := cmd.Flags()

	for _, b := range []struct {
		name  string
		value bool
		set   func(bool)
	}{
		{"generated", s.generated, func(v bool) { settings.Behavior.Set(config.IncludeGenerated, v) }},
		{"errors", s.errors, func(v bool) { settings.Behavior.Set(config.ErrorValues, v) }},
		{"cross-package", s.crossPackage, func(v bool) { settings.Behavior.Set(config.CrossPackage, v) }},
		{"fields", s.fields, func(v bool) { settings.Eligible.Set(config.Fields, v) }},
		{"variables", s.variables, func(v bool) { settings.Eligible.Set(config.Variables, v) }},
		{"parameters", s.parameters, func(v bool) { settings.Eligible.Set(config.Parameters, v) }},
		{"results", s.results, func(v bool) { settings.Eligible.Set(config.Results, v) }},
		{"implicit-fields", s.implicitFields, func(v bool) { settings.Eligible.Set(config.ImplicitFields, v) }},
	} {
		if flags.Changed(b.name) {
			b.set(b.value)
		}
	}

	if flags.Changed("overrides") {
		settings.Overrides = s.overrides
	}

	if flags.Changed("threshold") {
		threshold = s.threshold
	}

	if flags.Changed("severity") {
		file := config.File{Severities: s.severities}
		if err := file.Apply(&settings, &threshold); err != nil {
			return settings, threshold, err
		}
	}

	return settings, threshold, nil
}

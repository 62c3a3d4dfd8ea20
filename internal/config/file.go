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
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"fillmore-labs.com/nilopt/analyzer/level"
	"fillmore-labs.com/nilopt/internal/failure"
)

// ErrInvalidConfig is returned for a configuration file that does not validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// File is the YAML representation of [Settings] plus the report threshold.
//
// Unset values keep their defaults.
type File struct {
	// Eligible enables or disables element categories.
	Eligible EligibleFile `yaml:"eligible,omitempty"`

	// Behavior enables or disables behavioral options.
	Behavior BehaviorFile `yaml:"behavior,omitempty"`

	// Overrides is the policy for methods sharing a parameter.
	Overrides string `yaml:"overrides,omitempty" validate:"omitempty,overrides"`

	// Threshold is the minimum severity of reported findings.
	Threshold string `yaml:"threshold,omitempty" validate:"omitempty,severity"`

	// Severities maps failure kind names or codes to severities.
	Severities map[string]string `yaml:"severities,omitempty" validate:"omitempty,dive,keys,kind,endkeys,severity"`
}

// EligibleFile holds the category switches of a [File].
type EligibleFile struct {
	Fields         *bool `yaml:"fields,omitempty"`
	Variables      *bool `yaml:"variables,omitempty"`
	Parameters     *bool `yaml:"parameters,omitempty"`
	Results        *bool `yaml:"results,omitempty"`
	ImplicitFields *bool `yaml:"implicit-fields,omitempty"`
}

// BehaviorFile holds the behavior switches of a [File].
type BehaviorFile struct {
	Generated    *bool `yaml:"generated,omitempty"`
	CrossPackage *bool `yaml:"cross-package,omitempty"`
	Errors       *bool `yaml:"errors,omitempty"`
}

// LoadFile reads and validates the configuration file at path.
func LoadFile(path string) (File, error) {
	f, err := os.Open(path)
	if err != nil {
		return File{}, fmt.Errorf("can't open configuration: %w", err)
	}
	defer f.Close()

	return ParseFile(f)
}

// ParseFile decodes and validates a YAML configuration. Unknown keys are rejected.
func ParseFile(r io.Reader) (File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file File
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return File{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := validate().Struct(file); err != nil {
		return File{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return file, nil
}

// Apply overlays the values set in the file onto settings and threshold.
func (f File) Apply(s *Settings, threshold *level.Severity) error {
	apply(&s.Eligible, Fields, f.Eligible.Fields)
	apply(&s.Eligible, Variables, f.Eligible.Variables)
	apply(&s.Eligible, Parameters, f.Eligible.Parameters)
	apply(&s.Eligible, Results, f.Eligible.Results)
	apply(&s.Eligible, ImplicitFields, f.Eligible.ImplicitFields)

	apply(&s.Behavior, IncludeGenerated, f.Behavior.Generated)
	apply(&s.Behavior, CrossPackage, f.Behavior.CrossPackage)
	apply(&s.Behavior, ErrorValues, f.Behavior.Errors)

	if f.Overrides != "" {
		if err := s.Overrides.UnmarshalText([]byte(f.Overrides)); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	if f.Threshold != "" {
		if err := threshold.UnmarshalText([]byte(f.Threshold)); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	for name, value := range f.Severities {
		kind, ok := KindByName(name)
		if !ok {
			return fmt.Errorf("%w: unknown failure kind %q", ErrInvalidConfig, name)
		}

		var severity level.Severity
		if err := severity.UnmarshalText([]byte(value)); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}

		s.Severities.Set(kind, severity)
	}

	return nil
}

func apply[T ~uint8 | ~uint16 | ~uint32 | ~uint64](b *BitMask[T], flag T, value *bool) {
	if value != nil {
		b.Set(flag, *value)
	}
}

// FileOf returns the complete configuration file for settings and threshold.
func FileOf(s Settings, threshold level.Severity) File {
	severities := make(map[string]string)

	for kind := range failure.NumKinds {
		if kind.Fatal() {
			continue
		}

		severities[KindName(kind)] = s.Severities.Of(kind).String()
	}

	return File{
		Eligible: EligibleFile{
			Fields:         ptr(s.Eligible.Enabled(Fields)),
			Variables:      ptr(s.Eligible.Enabled(Variables)),
			Parameters:     ptr(s.Eligible.Enabled(Parameters)),
			Results:        ptr(s.Eligible.Enabled(Results)),
			ImplicitFields: ptr(s.Eligible.Enabled(ImplicitFields)),
		},
		Behavior: BehaviorFile{
			Generated:    ptr(s.Behavior.Enabled(IncludeGenerated)),
			CrossPackage: ptr(s.Behavior.Enabled(CrossPackage)),
			Errors:       ptr(s.Behavior.Enabled(ErrorValues)),
		},
		Overrides:  s.Overrides.String(),
		Threshold:  threshold.String(),
		Severities: severities,
	}
}

func ptr[T any](v T) *T { return &v }

var validate = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	_ = v.RegisterValidation("kind", func(fl validator.FieldLevel) bool {
		_, ok := KindByName(fl.Field().String())

		return ok
	})

	_ = v.RegisterValidation("overrides", func(fl validator.FieldLevel) bool {
		var o level.Overrides

		return o.UnmarshalText([]byte(fl.Field().String())) == nil
	})

	_ = v.RegisterValidation("severity", func(fl validator.FieldLevel) bool {
		var s level.Severity

		return s.UnmarshalText([]byte(fl.Field().String())) == nil
	})

	return v
})

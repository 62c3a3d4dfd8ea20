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
	"log/slog"

	"fillmore-labs.com/nilopt/analyzer/level"
	"fillmore-labs.com/nilopt/internal/config"
	"fillmore-labs.com/nilopt/internal/run"
)

// Option configures specific behavior of a [New] nilopt analyzer.
type Option interface {
	apply(r *run.Options)
	LogAttr() slog.Attr
}

// Options is a list of [Option] values that itself satisfies the [Option] interface.
type Options []Option

// LogValue implements [slog.LogValuer].
func (o Options) LogValue() slog.Value {
	as := make([]slog.Attr, 0, len(o))
	as = appendOptions(as, o)

	return slog.GroupValue(as...)
}

func appendOptions(as []slog.Attr, o Options) []slog.Attr {
	for _, opt := range o {
		switch opt := opt.(type) {
		case nil:
			as = append(as, slog.String("nil", "<nil>"))

		case Options:
			as = appendOptions(as, opt)

		default:
			as = append(as, opt.LogAttr())
		}
	}

	return as
}

func (o Options) apply(r *run.Options) {
	for _, opt := range o {
		if opt == nil {
			continue
		}

		opt.apply(r)
	}
}

// LogAttr is for logging with [slog.Logger.LogAttrs].
func (o Options) LogAttr() slog.Attr {
	return slog.Any("options", o)
}

// WithGenerated is an [Option] to treat generated files as writable and seed them.
func WithGenerated(generated bool) Option { return behaviorOption{"generated", config.IncludeGenerated, generated} }

// WithErrors is an [Option] to consider elements of type error.
func WithErrors(enabled bool) Option { return behaviorOption{"errors", config.ErrorValues, enabled} }

type behaviorOption struct {
	name    string
	flag    config.Behavior
	enabled bool
}

func (o behaviorOption) apply(r *run.Options) {
	r.Settings.Behavior.Set(o.flag, o.enabled)
}

func (o behaviorOption) LogAttr() slog.Attr {
	return slog.Bool(o.name, o.enabled)
}

// WithFields is an [Option] to configure whether struct fields are eligible for conversion.
func WithFields(eligible bool) Option { return categoryOption{"fields", config.Fields, eligible} }

// WithVariables is an [Option] to configure whether variables are eligible for conversion.
func WithVariables(eligible bool) Option { return categoryOption{"variables", config.Variables, eligible} }

// WithParameters is an [Option] to configure whether parameters are eligible for conversion.
func WithParameters(eligible bool) Option { return categoryOption{"parameters", config.Parameters, eligible} }

// WithResults is an [Option] to configure whether function results are eligible for conversion.
func WithResults(eligible bool) Option { return categoryOption{"results", config.Results, eligible} }

// WithImplicitFields is an [Option] to configure whether struct fields and package
// variables that are nil only because they lack an initializer are eligible for conversion.
func WithImplicitFields(implicit bool) Option {
	return categoryOption{"implicit-fields", config.ImplicitFields, implicit}
}

type categoryOption struct {
	name     string
	category config.Category
	eligible bool
}

func (o categoryOption) apply(r *run.Options) {
	r.Settings.Eligible.Set(o.category, o.eligible)
}

func (o categoryOption) LogAttr() slog.Attr {
	return slog.Bool(o.name, o.eligible)
}

// WithOverrides is an [Option] to configure which method declarations share a parameter.
func WithOverrides(overrides level.Overrides) Option { return overridesOption{overrides: overrides} }

type overridesOption struct{ overrides level.Overrides }

func (o overridesOption) apply(r *run.Options) {
	r.Settings.Overrides = o.overrides
}

func (o overridesOption) LogAttr() slog.Attr {
	return slog.String("overrides", o.overrides.String())
}

// WithThreshold is an [Option] to configure the minimum severity of reported findings.
func WithThreshold(threshold level.Severity) Option { return thresholdOption{threshold: threshold} }

type thresholdOption struct{ threshold level.Severity }

func (o thresholdOption) apply(r *run.Options) {
	r.Threshold = o.threshold
}

func (o thresholdOption) LogAttr() slog.Attr {
	return slog.String("threshold", o.threshold.String())
}

// WithSeverity is an [Option] to change the severity of a failure kind, named by its
// code ("cnv") or name ("disallowed"). Unknown names and fatal kinds are ignored.
func WithSeverity(kind string, severity level.Severity) Option {
	return severityOption{kind: kind, severity: severity}
}

type severityOption struct {
	kind     string
	severity level.Severity
}

func (o severityOption) apply(r *run.Options) {
	if k, ok := config.KindByName(o.kind); ok {
		r.Settings.Severities.Set(k, o.severity)
	}
}

func (o severityOption) LogAttr() slog.Attr {
	return slog.String("severity."+o.kind, o.severity.String())
}

// WithLogger is an [Option] to receive progress messages.
func WithLogger(logger *slog.Logger) Option { return loggerOption{logger: logger} }

type loggerOption struct{ logger *slog.Logger }

func (o loggerOption) apply(r *run.Options) {
	r.Logger = o.logger
}

func (o loggerOption) LogAttr() slog.Attr {
	return slog.Bool("logger", o.logger != nil)
}

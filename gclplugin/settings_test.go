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

package gclplugin_test

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"fillmore-labs.com/nilopt/analyzer"
	"fillmore-labs.com/nilopt/analyzer/level"
	. "fillmore-labs.com/nilopt/gclplugin"
)

const allSettings = `{
	"errors": true,
	"fields": true,
	"variables": false,
	"parameters": true,
	"results": true,
	"implicit-fields": true,
	"overrides": "signature",
	"threshold": "error",
	"severities": {"cnv": "error"}
}`

func TestSettings(t *testing.T) {
	t.Parallel()

	testCases := [...]struct {
		name     string
		settings string
		want     int
	}{
		{"all", allSettings, reflect.TypeFor[Settings]().NumField()},
		{"none", `{}`, 0},
		{"severities", `{"severities": {"disallowed": "info", "ctx": "error"}}`, 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dec := json.NewDecoder(strings.NewReader(tc.settings))
			dec.DisallowUnknownFields()

			var s Settings
			if err := dec.Decode(&s); err != nil {
				t.Fatalf("Can't decode settings: %v", err)
			}

			got, err := s.Options()
			if err != nil {
				t.Fatalf("Can't convert settings: %v", err)
			}

			if len(got) != tc.want {
				t.Errorf("Got %d options: %s, want %d", len(got), analyzer.Options(got).LogValue(), tc.want)
			}
		})
	}
}

func TestSettingsInvalid(t *testing.T) {
	t.Parallel()

	testCases := [...]struct {
		name     string
		settings string
	}{
		{"overrides", `{"overrides": "sometimes"}`},
		{"threshold", `{"threshold": "severe"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var s Settings
			if err := json.Unmarshal([]byte(tc.settings), &s); err == nil {
				t.Errorf("Decoded invalid settings %s", tc.settings)
			}
		})
	}
}

func TestUnknownKind(t *testing.T) {
	t.Parallel()

	s := Settings{Severities: map[string]level.Severity{"unknown": level.SeverityError}}

	if _, err := s.Options(); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("Got error %v, want %v", err, ErrUnknownKind)
	}
}

func TestPlugin(t *testing.T) {
	t.Parallel()

	p, err := New(map[string]any{"implicit-fields": true, "threshold": "info"})
	if err != nil {
		t.Fatalf("Can't create plugin: %v", err)
	}

	analyzers, err := p.BuildAnalyzers()
	if err != nil {
		t.Fatalf("Can't build analyzers: %v", err)
	}

	if len(analyzers) != 1 || analyzers[0].Name != "nilopt" {
		t.Fatalf("Got analyzers %v, want nilopt", analyzers)
	}

	if got := analyzers[0].Flags.Lookup("threshold").Value.String(); got != "info" {
		t.Errorf("Got threshold %q, want %q", got, "info")
	}

	if _, err := New(map[string]any{"severities": map[string]any{"nope": "error"}}); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("Got error %v, want %v", err, ErrUnknownKind)
	}
}

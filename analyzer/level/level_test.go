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

package level_test

import (
	"testing"

	. "fillmore-labs.com/nilopt/analyzer/level"
)

func TestOverridesText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want Overrides
	}{
		{"", OverridesImplements},
		{"implements", OverridesImplements},
		{"Exact", OverridesExact},
		{"signature", OverridesSignature},
		{"all", OverridesSignature},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()

			var got Overrides
			if err := got.UnmarshalText([]byte(tt.text)); err != nil {
				t.Fatalf("UnmarshalText(%q) failed: %v", tt.text, err)
			}

			if got != tt.want {
				t.Errorf("UnmarshalText(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestOverridesRoundTrip(t *testing.T) {
	t.Parallel()

	for _, o := range []Overrides{OverridesImplements, OverridesExact, OverridesSignature} {
		text, err := o.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%d) failed: %v", o, err)
		}

		var got Overrides
		if err := got.UnmarshalText(text); err != nil || got != o {
			t.Errorf("UnmarshalText(%q) = %v, %v, want %v", text, got, err, o)
		}
	}
}

func TestOverridesInvalid(t *testing.T) {
	t.Parallel()

	var o Overrides
	if err := o.UnmarshalText([]byte("sometimes")); err == nil {
		t.Errorf("UnmarshalText accepted an unknown level: %v", o)
	}

	if _, err := Overrides(42).MarshalText(); err == nil {
		t.Error("MarshalText accepted an unknown level")
	}
}

func TestSeverityOrder(t *testing.T) {
	t.Parallel()

	ordered := []string{"ok", "info", "warning", "error", "fatal"}

	var last Severity

	for i, text := range ordered {
		var s Severity
		if err := s.UnmarshalText([]byte(text)); err != nil {
			t.Fatalf("UnmarshalText(%q) failed: %v", text, err)
		}

		if i > 0 && s <= last {
			t.Errorf("Severity %q = %d is not above %v", text, s, last)
		}

		if got := s.String(); got != text {
			t.Errorf("String() = %q, want %q", got, text)
		}

		last = s
	}
}

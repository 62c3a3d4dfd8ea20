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

package status_test

import (
	"testing"

	"fillmore-labs.com/nilopt/analyzer/level"
	"fillmore-labs.com/nilopt/internal/failure"
	. "fillmore-labs.com/nilopt/internal/status"
)

func TestSeverity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		entries []level.Severity
		want    level.Severity
		ok      bool
	}{
		{"empty", nil, level.SeverityOK, true},
		{"info", []level.Severity{level.SeverityInfo}, level.SeverityInfo, true},
		{"worst warning", []level.Severity{level.SeverityInfo, level.SeverityWarning, level.SeverityInfo}, level.SeverityWarning, false},
		{"fatal dominates", []level.Severity{level.SeverityFatal, level.SeverityError}, level.SeverityFatal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var s Status
			for _, sev := range tt.entries {
				s.Add(Entry{Severity: sev, Kind: failure.Unclassifiable})
			}

			if got := s.Severity(); got != tt.want {
				t.Errorf("Severity() = %v, want %v", got, tt.want)
			}

			if got := s.OK(); got != tt.ok {
				t.Errorf("OK() = %v, want %v", got, tt.ok)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	var a, b Status
	a.Add(Entry{Severity: level.SeverityWarning, Message: "a"})
	b.Add(Entry{Severity: level.SeverityError, Message: "b"})

	a.Merge(b)

	entries := a.Entries()
	if len(entries) != 2 || entries[0].Message != "a" || entries[1].Message != "b" {
		t.Errorf("Merge() = %v, want entries a and b", entries)
	}

	if a.Fatal() {
		t.Error("Merged status is fatal")
	}
}

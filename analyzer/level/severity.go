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

package level

import (
	"fmt"
	"strings"
)

// Severity grades a status entry. Higher values are more severe.
type Severity uint8

const (
	// SeverityOK means no problem was found.
	SeverityOK Severity = iota

	// SeverityInfo is informational only.
	SeverityInfo

	// SeverityWarning marks a problem that leaves the remaining result usable.
	SeverityWarning

	// SeverityError marks a group that should not be converted.
	SeverityError

	// SeverityFatal marks a run whose result can't be trusted.
	SeverityFatal
)

// MarshalText implements [encoding.TextMarshaler].
func (s Severity) MarshalText() ([]byte, error) {
	switch s {
	case SeverityOK:
		return []byte("ok"), nil

	case SeverityInfo:
		return []byte("info"), nil

	case SeverityWarning:
		return []byte("warning"), nil

	case SeverityError:
		return []byte("error"), nil

	case SeverityFatal:
		return []byte("fatal"), nil

	default:
		return nil, fmt.Errorf("unknown severity %d", s)
	}
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (s *Severity) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "ok", "none":
		*s = SeverityOK

	case "info":
		*s = SeverityInfo

	case "", "warning", "warn":
		*s = SeverityWarning

	case "error":
		*s = SeverityError

	case "fatal":
		*s = SeverityFatal

	default:
		return fmt.Errorf("unknown severity %q", string(text))
	}

	return nil
}

// String returns the textual representation.
func (s Severity) String() string {
	b, err := s.MarshalText()
	if err != nil {
		return fmt.Sprintf("Severity(%d)", s)
	}

	return string(b)
}

// Code is the short code used in diagnostics.
func (s Severity) Code() string {
	switch s {
	case SeverityOK:
		return "ok"

	case SeverityInfo:
		return "inf"

	case SeverityWarning:
		return "wrn"

	case SeverityError:
		return "err"

	default:
		return "ftl"
	}
}

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

package level

import (
	"fmt"
	"strings"
)

// Overrides specifies which method declarations share a parameter when a nil
// value is passed to a method call.
type Overrides uint8

const (
	// OverridesImplements joins the called method with the methods of every type
	// implementing the same interface method, and the interface methods it implements.
	OverridesImplements Overrides = iota

	// OverridesExact only considers the called declaration.
	OverridesExact

	// OverridesSignature joins all methods in the search scope with the same name
	// and an identical signature, regardless of the types involved.
	OverridesSignature
)

// MarshalText implements [encoding.TextMarshaler].
func (o Overrides) MarshalText() ([]byte, error) {
	switch o {
	case OverridesImplements:
		return []byte("implements"), nil

	case OverridesExact:
		return []byte("exact"), nil

	case OverridesSignature:
		return []byte("signature"), nil

	default:
		return nil, fmt.Errorf("unknown overrides level %d", o)
	}
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (o *Overrides) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "", "implements", "default":
		*o = OverridesImplements

	case "exact", "off":
		*o = OverridesExact

	case "signature", "all":
		*o = OverridesSignature

	default:
		return fmt.Errorf("unknown overrides level %q", string(text))
	}

	return nil
}

// String returns the textual representation.
func (o Overrides) String() string {
	b, err := o.MarshalText()
	if err != nil {
		return fmt.Sprintf("Overrides(%d)", o)
	}

	return string(b)
}

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

// Package analyzer implements the nilopt static analysis pass.
//
// # Overview
//
// nilopt finds the declarations a nil value can reach: struct fields, variables,
// parameters and function results connected by assignments, calls and returns.
// Each connected set is a group of declarations that has to change its type
// together when nil is replaced by an optional type.
//
// # Example
//
//	func find(name string) *Item {
//	    if name == "" {
//	        return nil  // nil flows into the result of find
//	    }
//	    return &Item{Name: name}
//	}
//
//	func lookup(name string) {
//	    item := find(name)  // and from there into item
//	    use(item)           // and into the parameter of use
//	}
//
// The result of find, the variable item and the parameter of use form one group.
//
// # Findings
//
// Declarations reached through a conversion like (*T)(nil), a function literal or a
// function used as a value can't be tracked. They and everything discovered through
// them are excluded from all groups and reported with their reason.
//
// # Suppression
//
// A //nolint:nilopt comment on the line of a declaration suppresses its diagnostics.
// The comment in front of the package clause excludes a whole file.
package analyzer

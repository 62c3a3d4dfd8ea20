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

// Package facade provides type-checked syntax and whole-program occurrence search.
//
// A [Program] is built either from a single [analysis.Pass] or from packages loaded
// with [packages.Load]. On construction it indexes every identifier, return statement
// and doc link by the element it refers to, so [Program.Search] is a map lookup.
//
// [analysis.Pass]: https://pkg.go.dev/golang.org/x/tools/go/analysis#Pass
// [packages.Load]: https://pkg.go.dev/golang.org/x/tools/go/packages#Load
package facade

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
	"context"
	"log/slog"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"

	"fillmore-labs.com/nilopt/internal/run"
)

const (
	name = "nilopt"
	doc  = `find declarations sharing nil values

nilopt follows every nil literal of a package through assignments, returns,
call arguments and struct fields. Declarations the same nil value reaches form
a group; each group can become an optional type together.`
	url = "https://pkg.go.dev/fillmore-labs.com/nilopt/analyzer"
)

// New creates a new instance of the nilopt analyzer.
//
// Options apply in order, so later options override earlier ones. The flags
// registered on the returned analyzer start from the resulting configuration.
// For command-line use, the pre-configured [Analyzer] is typically sufficient.
func New(opts ...Option) *analysis.Analyzer {
	r := run.DefaultOptions()

	o := Options(opts)
	o.apply(r)

	if r.Logger != nil {
		r.Logger.LogAttrs(context.Background(), slog.LevelDebug, "Created analyzer", o.LogAttr())
	}

	a := &analysis.Analyzer{
		Name:     name,
		Doc:      doc,
		URL:      url,
		Run:      r.Run,
		Requires: []*analysis.Analyzer{inspect.Analyzer},
	}

	registerFlags(&a.Flags, r)

	return a
}

// Analyzer is the nilopt analyzer with default settings.
var Analyzer = New()

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

// Package report renders harvest results as analysis diagnostics, text, JSON and SARIF.
package report

import (
	"context"
	"fmt"
	"go/token"
	"runtime/trace"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/nilopt/analyzer/level"
	"fillmore-labs.com/nilopt/internal/astutil"
	"fillmore-labs.com/nilopt/internal/entities"
	"fillmore-labs.com/nilopt/internal/facade"
	"fillmore-labs.com/nilopt/internal/failure"
	"fillmore-labs.com/nilopt/internal/harvest"
	"fillmore-labs.com/nilopt/internal/status"
)

// GroupCode is the diagnostic code of a convertible group.
const GroupCode = "grp"

// Diagnostics emits the result of a harvest run as diagnostics of an analysis pass.
//
// Every group without findings is reported at the declaration of its first element,
// with the remaining elements as related information. Status entries of at least the
// given severity are reported at their position. Fatal model inconsistencies are
// reported as internal errors.
func Diagnostics(ctx context.Context, p *analysis.Pass, program *facade.Program, result *harvest.Result, threshold level.Severity) {
	defer trace.StartRegion(ctx, "Report").End()

	for _, g := range result.Groups {
		if !g.Status.OK() {
			continue
		}

		reportGroup(p, program, g)
	}

	for _, e := range result.Status.Entries() {
		switch {
		case e.Kind == failure.MissingBinding, e.Kind == failure.ModelError:
			if pos := entryPos(e); pos.IsValid() {
				astutil.InternalError(p, posRange{pos, e.End}, e.Kind.String(), "%s", e.Message)
			}

		case e.Severity >= threshold:
			reportEntry(p, program, e)
		}
	}
}

func reportGroup(p *analysis.Pass, program *facade.Program, g entities.Group) {
	first := g.Elements[0].Var
	if noLint(program, first.Pos()) {
		return
	}

	var (
		names   = make([]string, 0, len(g.Elements))
		related = make([]analysis.RelatedInformation, 0, len(g.Elements)-1)
	)

	for i, e := range g.Elements {
		desc := Describe(program, e.Var)
		names = append(names, desc)

		if i > 0 {
			related = append(related, analysis.RelatedInformation{Pos: e.Var.Pos(), Message: "Shares nil values with " + desc})
		}
	}

	format := "%s may be nil and can become optional (no:%s)"
	if len(names) > 1 {
		format = "%s share nil values and can become optional together (no:%s)"
	}

	p.Report(analysis.Diagnostic{
		Pos:      first.Pos(),
		End:      first.Pos() + token.Pos(len(first.Name())),
		Category: "group",
		Message:  fmt.Sprintf(format, concatNames(names), GroupCode),
		Related:  related,
	})
}

func reportEntry(p *analysis.Pass, program *facade.Program, e status.Entry) {
	pos := entryPos(e)
	if !pos.IsValid() || noLint(program, pos) {
		return
	}

	end := e.End
	if end < pos {
		end = pos
	}

	p.Report(analysis.Diagnostic{
		Pos:      pos,
		End:      end,
		Category: e.Severity.String(),
		Message:  fmt.Sprintf("%s (no:%s)", e.Message, e.Kind),
	})
}

// entryPos returns the position of an entry, falling back to the declaration of its element.
func entryPos(e status.Entry) token.Pos {
	if e.Pos.IsValid() {
		return e.Pos
	}

	if e.Var != nil {
		return e.Var.Pos()
	}

	return token.NoPos
}

// noLint reports whether pos is outside the program or on a line with a nolint comment.
func noLint(program *facade.Program, pos token.Pos) bool {
	_, current, ok := program.File(pos)

	return !ok || current.NoLintComment(pos)
}

// posRange is an [analysis.Range] spanning a source range.
type posRange struct{ pos, end token.Pos }

func (r posRange) Pos() token.Pos { return r.pos }

func (r posRange) End() token.Pos {
	if r.end < r.pos {
		return r.pos
	}

	return r.end
}

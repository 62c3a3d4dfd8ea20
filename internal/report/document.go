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

package report

import (
	"go/token"
	"go/types"
	"path/filepath"
	"slices"

	"fillmore-labs.com/nilopt/analyzer/level"
	"fillmore-labs.com/nilopt/internal/config"
	"fillmore-labs.com/nilopt/internal/element"
	"fillmore-labs.com/nilopt/internal/facade"
	"fillmore-labs.com/nilopt/internal/harvest"
	"fillmore-labs.com/nilopt/internal/status"
)

// Document is the serializable form of a harvest result.
type Document struct {
	Complete        bool      `json:"complete"`
	Severity        string    `json:"severity"`
	Groups          []Group   `json:"groups"`
	NotRefactorable []Element `json:"notRefactorable,omitempty"`
	Status          []Entry   `json:"status,omitempty"`
}

// Group is a serialized [entities.Group].
type Group struct {
	ID          string     `json:"id"`
	Severity    string     `json:"severity"`
	Elements    []Element  `json:"elements"`
	Occurrences []Position `json:"occurrences,omitempty"`
	Status      []Entry    `json:"status,omitempty"`
}

// Element is a serialized element.
type Element struct {
	Name        string   `json:"name,omitempty"`
	Kind        string   `json:"kind"`
	Package     string   `json:"package,omitempty"`
	Description string   `json:"description"`
	Implicit    bool     `json:"implicit,omitempty"`
	Position    Position `json:"position"`
}

// Entry is a serialized [status.Entry].
type Entry struct {
	Severity string    `json:"severity"`
	Code     string    `json:"code"`
	Kind     string    `json:"kind"`
	Message  string    `json:"message"`
	Position *Position `json:"position,omitempty"`
}

// Position is a source position.
type Position struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// NewDocument converts a harvest result. File names are made relative to base when possible.
func NewDocument(program *facade.Program, result *harvest.Result, base string) Document {
	b := builder{program: program, base: base}

	doc := Document{
		Complete: result.Complete,
		Severity: result.Status.Severity().String(),
		Groups:   make([]Group, 0, len(result.Groups)),
		Status:   b.entries(result.Status),
	}

	for _, g := range result.Groups {
		group := Group{
			ID:       g.ID.String(),
			Severity: g.Status.Severity().String(),
			Elements: make([]Element, 0, len(g.Elements)),
			Status:   b.entries(g.Status),
		}

		for _, e := range g.Elements {
			group.Elements = append(group.Elements, b.element(e.Var, e.Implicit))
		}

		for _, o := range g.Occurrences {
			group.Occurrences = append(group.Occurrences, b.position(o.Pos))
		}

		doc.Groups = append(doc.Groups, group)
	}

	for _, v := range result.NotRefactorable {
		doc.NotRefactorable = append(doc.NotRefactorable, b.element(v, false))
	}

	return doc
}

// Above returns a copy of the document without top-level status entries below threshold.
func (d Document) Above(threshold level.Severity) Document {
	d.Status = slices.DeleteFunc(slices.Clone(d.Status), func(e Entry) bool {
		var severity level.Severity
		if err := severity.UnmarshalText([]byte(e.Severity)); err != nil {
			return false
		}

		return severity < threshold
	})

	return d
}

type builder struct {
	program *facade.Program
	base    string
}

func (b builder) element(v *types.Var, implicit bool) Element {
	e := Element{
		Name:        v.Name(),
		Kind:        element.KindOf(v).String(),
		Description: Describe(b.program, v),
		Implicit:    implicit,
		Position:    b.position(v.Pos()),
	}

	if pkg := v.Pkg(); pkg != nil {
		e.Package = pkg.Path()
	}

	return e
}

func (b builder) entries(s status.Status) []Entry {
	if s.Len() == 0 {
		return nil
	}

	entries := make([]Entry, 0, s.Len())

	for _, e := range s.Entries() {
		entry := Entry{
			Severity: e.Severity.String(),
			Code:     e.Kind.String(),
			Kind:     config.KindName(e.Kind),
			Message:  e.Message,
		}

		if pos := entryPos(e); pos.IsValid() {
			p := b.position(pos)
			entry.Position = &p
		}

		entries = append(entries, entry)
	}

	return entries
}

func (b builder) position(pos token.Pos) Position {
	if !pos.IsValid() {
		return Position{}
	}

	p := b.program.Fset().Position(pos)

	file := p.Filename
	if b.base != "" {
		if rel, err := filepath.Rel(b.base, file); err == nil {
			file = rel
		}
	}

	return Position{File: filepath.ToSlash(file), Line: p.Line, Column: p.Column}
}

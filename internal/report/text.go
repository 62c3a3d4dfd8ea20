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
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Colorize reports whether output to f should be styled.
func Colorize(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}

	fd := f.Fd()

	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

type styles struct {
	heading, element, location, faint lipgloss.Style
	severity                          map[string]lipgloss.Style
}

func newStyles(w io.Writer, color bool) styles {
	r := lipgloss.NewRenderer(w)

	s := styles{
		heading:  r.NewStyle(),
		element:  r.NewStyle(),
		location: r.NewStyle(),
		faint:    r.NewStyle(),
		severity: make(map[string]lipgloss.Style),
	}

	if !color {
		return s
	}

	s.heading = s.heading.Bold(true)
	s.location = s.location.Foreground(lipgloss.Color("6"))
	s.faint = s.faint.Faint(true)

	for sev, c := range map[string]string{"ok": "2", "info": "4", "warning": "3", "error": "1", "fatal": "5"} {
		s.severity[sev] = r.NewStyle().Bold(true).Foreground(lipgloss.Color(c))
	}

	return s
}

func (s styles) sev(severity string) string {
	if st, ok := s.severity[severity]; ok {
		return st.Render(severity)
	}

	return severity
}

// WriteText writes a human-readable report.
func WriteText(w io.Writer, doc Document, color bool) error {
	s := newStyles(w, color)
	tw := textWriter{w: w}

	for i, g := range doc.Groups {
		tw.printf("%s %s %s\n", s.heading.Render(fmt.Sprintf("Group %d", i+1)), s.sev(g.Severity), s.faint.Render(g.ID))

		for _, e := range g.Elements {
			tw.element(s, e)
		}

		for _, e := range g.Status {
			tw.entry(s, e)
		}
	}

	if len(doc.NotRefactorable) > 0 {
		tw.printf("%s\n", s.heading.Render("Not refactorable"))

		for _, e := range doc.NotRefactorable {
			tw.element(s, e)
		}
	}

	if len(doc.Status) > 0 || !doc.Complete {
		tw.printf("%s %s\n", s.heading.Render("Status"), s.sev(doc.Severity))

		for _, e := range doc.Status {
			tw.entry(s, e)
		}
	}

	if !doc.Complete {
		tw.printf("%s\n", s.sev("fatal")+" harvest incomplete")
	}

	return tw.err
}

// textWriter remembers the first write error.
type textWriter struct {
	w   io.Writer
	err error
}

func (t *textWriter) printf(format string, args ...any) {
	if t.err != nil {
		return
	}

	_, t.err = fmt.Fprintf(t.w, format, args...)
}

func (t *textWriter) element(s styles, e Element) {
	implicit := ""
	if e.Implicit {
		implicit = s.faint.Render(" (implicit)")
	}

	t.printf("  %s%s  %s\n", s.element.Render(e.Description), implicit, s.location.Render(e.Position.String()))
}

func (t *textWriter) entry(s styles, e Entry) {
	location := ""
	if e.Position != nil {
		location = "  " + s.location.Render(e.Position.String())
	}

	t.printf("  %s %s (%s)%s\n", s.sev(e.Severity), e.Message, e.Code, location)
}

// String formats the position as file:line:column.
func (p Position) String() string {
	if p.File == "" {
		return "-"
	}

	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

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

package report_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fillmore-labs.com/nilopt/analyzer/level"
	"fillmore-labs.com/nilopt/internal/config"
	"fillmore-labs.com/nilopt/internal/facade"
	"fillmore-labs.com/nilopt/internal/harvest"
	. "fillmore-labs.com/nilopt/internal/report"
	"fillmore-labs.com/nilopt/internal/testsource"
)

const src = `type T struct{}

func get() *T { return nil }

func f(p *T) {
	q := get()
	p = q
	x := (*T)(nil)
	_, _ = p, x
}
`

func document(t *testing.T) (*facade.Program, Document) {
	t.Helper()

	p := testsource.Load(t, src)

	result, err := harvest.New(p, config.Default()).Harvest(t.Context(), p.Root())
	require.NoError(t, err)

	return p, NewDocument(p, result, "")
}

func TestDocument(t *testing.T) {
	t.Parallel()

	_, doc := document(t)

	assert.True(t, doc.Complete)
	assert.Equal(t, "warning", doc.Severity)

	require.Len(t, doc.Groups, 1)
	g := doc.Groups[0]

	descriptions := make([]string, 0, len(g.Elements))
	for _, e := range g.Elements {
		descriptions = append(descriptions, e.Description)
	}

	assert.Equal(t, []string{"result 0 of get", "parameter 'p' of f", "variable 'q'"}, descriptions)
	assert.Equal(t, "ok", g.Severity)
	assert.Len(t, g.ID, 36)
	assert.NotEmpty(t, g.Occurrences)

	require.Len(t, doc.NotRefactorable, 1)
	assert.Equal(t, "x", doc.NotRefactorable[0].Name)

	require.Len(t, doc.Status, 1)
	assert.Equal(t, "cnv", doc.Status[0].Code)
	assert.Equal(t, "disallowed", doc.Status[0].Kind)
	require.NotNil(t, doc.Status[0].Position)
	assert.Equal(t, "file0.go", doc.Status[0].Position.File)
}

func TestAbove(t *testing.T) {
	t.Parallel()

	_, doc := document(t)

	assert.Len(t, doc.Above(level.SeverityWarning).Status, 1)
	assert.Empty(t, doc.Above(level.SeverityError).Status)
	assert.Len(t, doc.Status, 1, "original document changed")
}

func TestWriteText(t *testing.T) {
	t.Parallel()

	_, doc := document(t)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, doc, false))

	out := buf.String()
	assert.Contains(t, out, "Group 1 ok")
	assert.Contains(t, out, "parameter 'p' of f  file0.go:7:8")
	assert.Contains(t, out, "Not refactorable")
	assert.Contains(t, out, "warning nil value is converted")
	assert.NotContains(t, out, "incomplete")
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	_, doc := document(t)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, doc))

	var got Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, doc, got)
}

func TestWriteSARIF(t *testing.T) {
	t.Parallel()

	_, doc := document(t)

	var buf bytes.Buffer
	require.NoError(t, WriteSARIF(&buf, doc))

	var log struct {
		Version string `json:"version"`
		Runs    []struct {
			Tool struct {
				Driver struct {
					Name  string `json:"name"`
					Rules []struct {
						ID string `json:"id"`
					} `json:"rules"`
				} `json:"driver"`
			} `json:"tool"`
			Results []struct {
				RuleID string `json:"ruleId"`
				Level  string `json:"level"`
			} `json:"results"`
		} `json:"runs"`
	}

	require.NoError(t, json.Unmarshal(buf.Bytes(), &log))
	assert.Equal(t, "2.1.0", log.Version)
	require.Len(t, log.Runs, 1)

	run := log.Runs[0]
	assert.Equal(t, "nilopt", run.Tool.Driver.Name)
	require.Len(t, run.Results, 2)
	assert.Equal(t, GroupCode, run.Results[0].RuleID)
	assert.Equal(t, "cnv", run.Results[1].RuleID)
	assert.Equal(t, "warning", run.Results[1].Level)
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	p := testsource.Load(t, `type S struct{ next *S }

func (s *S) Set(p *S) (r *S) { return nil }

func g() *S { return nil }

var v *S
`)

	tests := []struct {
		elem string
		want string
	}{
		{"next", "field 'next'"},
		{"s", "receiver 's' of S.Set"},
		{"p", "parameter 'p' of S.Set"},
		{"r", "result 'r' of S.Set"},
		{"g:0", "result 0 of g"},
		{"v", "variable 'v'"},
	}

	for _, tt := range tests {
		t.Run(tt.elem, func(t *testing.T) {
			t.Parallel()

			got := Describe(p, testsource.Var(t, p, tt.elem))
			assert.Equal(t, tt.want, got)
		})
	}
}

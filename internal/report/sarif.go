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

	"github.com/owenrumney/go-sarif/v2/sarif"
)

const (
	toolName = "nilopt"
	toolURI  = "https://pkg.go.dev/fillmore-labs.com/nilopt"
)

// WriteSARIF writes the document as a SARIF 2.1.0 log.
//
// Every group becomes a result of the group rule located at its elements;
// every status entry becomes a result of the rule named after its failure kind.
func WriteSARIF(w io.Writer, doc Document) error {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return fmt.Errorf("nilopt: creating SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI(toolName, toolURI)

	groupRule := run.AddRule(GroupCode).
		WithDescription("Elements sharing nil values that can be converted to an optional type together").
		WithDefaultConfiguration(&sarif.ReportingConfiguration{Level: "note"})

	for _, g := range doc.Groups {
		if len(g.Status) > 0 {
			continue
		}

		locations := make([]*sarif.Location, 0, len(g.Elements))
		for _, e := range g.Elements {
			locations = append(locations, location(e.Position))
		}

		result := sarif.NewRuleResult(groupRule.ID).
			WithMessage(sarif.NewTextMessage(groupMessage(g))).
			WithLevel("note").
			WithLocations(locations)

		result.PropertyBag = *sarif.NewPropertyBag()
		result.Add("group", g.ID)
		run.AddResult(result)
	}

	// run-level entries include the group findings
	for _, e := range doc.Status {
		rule := run.AddRule(e.Code).
			WithDescription(e.Kind).
			WithDefaultConfiguration(&sarif.ReportingConfiguration{Level: sarifLevel(e.Severity)})

		result := sarif.NewRuleResult(rule.ID).
			WithMessage(sarif.NewTextMessage(e.Message)).
			WithLevel(sarifLevel(e.Severity))

		if e.Position != nil {
			result.WithLocations([]*sarif.Location{location(*e.Position)})
		}

		run.AddResult(result)
	}

	report.AddRun(run)

	if err := report.PrettyWrite(w); err != nil {
		return fmt.Errorf("nilopt: writing SARIF report: %w", err)
	}

	return nil
}

func groupMessage(g Group) string {
	names := make([]string, len(g.Elements))
	for i, e := range g.Elements {
		names[i] = e.Description
	}

	return concatNames(names) + " can become optional"
}

func location(p Position) *sarif.Location {
	region := sarif.NewRegion().WithStartLine(p.Line).WithStartColumn(p.Column)

	return sarif.NewLocation().WithPhysicalLocation(
		sarif.NewPhysicalLocation().
			WithArtifactLocation(sarif.NewArtifactLocation().WithUri(p.File)).
			WithRegion(region),
	)
}

func sarifLevel(severity string) string {
	switch severity {
	case "fatal", "error":
		return "error"

	case "warning":
		return "warning"

	case "info":
		return "note"

	default:
		return "none"
	}
}

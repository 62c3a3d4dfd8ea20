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

package facade

import (
	"context"
	"go/build"
	"go/token"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/packages"
)

// FromPass creates a single-package [Program] for an analysis pass.
func FromPass(ctx context.Context, p *analysis.Pass, in *inspector.Inspector, opts ...Option) (*Program, error) {
	pkg := NewPackage(p.Pkg, p.TypesInfo, p.Files, in)

	return New(ctx, p.Fset, []*Package{pkg}, opts...)
}

// LoadMode is the [packages.LoadMode] required by [FromPackages].
const LoadMode = packages.NeedName | packages.NeedFiles | packages.NeedSyntax |
	packages.NeedTypes | packages.NeedTypesInfo | packages.NeedImports | packages.NeedModule

// FromPackages creates a [Program] from loaded packages. All packages must share one file set,
// which is the case for a single [packages.Load] call.
// Packages outside the main module are marked read-only.
func FromPackages(ctx context.Context, pkgs []*packages.Package, opts ...Option) (*Program, error) {
	var (
		scope []*Package
		fset  = packagesFset(pkgs)
	)

	for _, lp := range pkgs {
		if lp.Types == nil || lp.TypesInfo == nil || len(lp.Syntax) == 0 {
			continue
		}

		pkg := NewPackage(lp.Types, lp.TypesInfo, lp.Syntax, nil)
		pkg.ReadOnly = readOnly(lp)

		scope = append(scope, pkg)
	}

	if fset == nil {
		return nil, ErrNoPackages
	}

	return New(ctx, fset, scope, opts...)
}

func packagesFset(pkgs []*packages.Package) *token.FileSet {
	for _, lp := range pkgs {
		if lp.Fset != nil {
			return lp.Fset
		}
	}

	return nil
}

// readOnly reports whether a loaded package lives outside the main module.
func readOnly(lp *packages.Package) bool {
	if lp.Module != nil {
		return !lp.Module.Main
	}

	goroot := build.Default.GOROOT
	if goroot == "" || len(lp.GoFiles) == 0 {
		return false
	}

	rel, err := filepath.Rel(goroot, lp.GoFiles[0])

	return err == nil && !strings.HasPrefix(rel, "..")
}

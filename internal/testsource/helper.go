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

// Package testsource provides utilities for parsing and analyzing Go source code in tests.
//
// It type-checks small source fragments as package "test" and wraps them into a
// [facade.Program], so tests can run searches and classifications without
// loading packages from disk.
package testsource

import (
	"context"
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"slices"
	"strconv"
	"strings"
	"testing"

	"fillmore-labs.com/nilopt/internal/facade"
)

const testpkg = "test"

// Source prefixes a fragment with the package clause.
func Source(src string) string {
	return "package " + testpkg + "\n\n" + src
}

// Load type-checks the fragments as one package and creates a program from it.
// Each fragment becomes its own file and is prefixed with the package clause.
func Load(tb testing.TB, srcs ...string) *facade.Program {
	tb.Helper()

	files := make(map[string]string, len(srcs))
	for i, src := range srcs {
		files[fmt.Sprintf("file%d.go", i)] = Source(src)
	}

	return LoadFiles(tb, files)
}

// LoadFiles type-checks complete source files, keyed by file name, as one package
// and creates a program from it. Files are parsed in name order.
func LoadFiles(tb testing.TB, files map[string]string, opts ...facade.Option) *facade.Program {
	tb.Helper()

	fset := token.NewFileSet()

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}

	slices.Sort(names)

	syntax := make([]*ast.File, 0, len(names))

	for _, name := range names {
		f, err := parser.ParseFile(fset, name, files[name], parser.ParseComments|parser.SkipObjectResolution)
		if err != nil {
			tb.Fatalf("Failed to parse source %q: %v", name, err)
		}

		syntax = append(syntax, f)
	}

	pkg, info := Check(tb, fset, syntax...)

	p, err := facade.New(context.Background(), fset, []*facade.Package{facade.NewPackage(pkg, info, syntax, nil)}, opts...)
	if err != nil {
		tb.Fatalf("Failed to create program: %v", err)
	}

	return p
}

// Check performs type checking on the provided AST files.
// It creates and returns a fully type-checked *types.Package and *types.Info.
func Check(tb testing.TB, fset *token.FileSet, files ...*ast.File) (*types.Package, *types.Info) {
	tb.Helper()

	info := &types.Info{
		Types:      make(map[ast.Expr]types.TypeAndValue),
		Instances:  make(map[*ast.Ident]types.Instance),
		Defs:       make(map[*ast.Ident]types.Object),
		Uses:       make(map[*ast.Ident]types.Object),
		Implicits:  make(map[ast.Node]types.Object),
		Selections: make(map[*ast.SelectorExpr]*types.Selection),
		Scopes:     make(map[ast.Node]*types.Scope),
	}

	conf := types.Config{Importer: importer.Default()}

	pkg, err := conf.Check(testpkg, fset, files, info)
	if err != nil {
		tb.Fatalf("failed to type Check source: %v", err)
	}

	return pkg, info
}

// Var finds a declared variable.
//
// The name is either a plain variable, field, or parameter name, "Decl.name" for a
// name declared inside the function, method or type Decl, or "Func:N" for result
// slot N of a function or method. Ambiguous or missing names fail the test.
func Var(tb testing.TB, p *facade.Program, name string) *types.Var {
	tb.Helper()

	if fn, slot, ok := strings.Cut(name, ":"); ok {
		return result(tb, p, fn, slot)
	}

	decl, name, qualified := strings.Cut(name, ".")
	if !qualified {
		decl, name = "", decl
	}

	var found []*types.Var

	for _, pkg := range p.Packages() {
		for _, f := range pkg.Files {
			for _, d := range f.Decls {
				if decl != "" && declName(d) != decl {
					continue
				}

				for id, obj := range pkg.Info.Defs {
					v, ok := obj.(*types.Var)
					if !ok || id.Name != name || id.Pos() < d.Pos() || id.End() > d.End() {
						continue
					}

					if !slices.Contains(found, v) {
						found = append(found, v)
					}
				}
			}
		}
	}

	if len(found) != 1 {
		tb.Fatalf("Found %d variables named %q, want 1", len(found), name)
	}

	return found[0]
}

func result(tb testing.TB, p *facade.Program, fn, slot string) *types.Var {
	tb.Helper()

	i, err := strconv.Atoi(slot)
	if err != nil {
		tb.Fatalf("Invalid result slot %q: %v", slot, err)
	}

	for _, pkg := range p.Packages() {
		for _, f := range pkg.Files {
			for _, d := range f.Decls {
				fd, ok := d.(*ast.FuncDecl)
				if !ok || declName(d) != fn {
					continue
				}

				obj, ok := pkg.Info.Defs[fd.Name].(*types.Func)
				if !ok || i >= obj.Signature().Results().Len() {
					tb.Fatalf("Function %s has no result %d", fn, i)
				}

				return obj.Signature().Results().At(i)
			}
		}
	}

	tb.Fatalf("Function %s not found", fn)

	return nil
}

// declName returns the name of a function, method or single type declaration.
// Methods are named by their plain name.
func declName(d ast.Decl) string {
	switch d := d.(type) {
	case *ast.FuncDecl:
		return d.Name.Name

	case *ast.GenDecl:
		if len(d.Specs) == 1 {
			if ts, ok := d.Specs[0].(*ast.TypeSpec); ok {
				return ts.Name.Name
			}
		}
	}

	return ""
}

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
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/ast/inspector"
)

// RootNode is a syntax subtree to seed from.
type RootNode struct {
	Package *Package
	Cursor  inspector.Cursor
}

// Root is the seeding scope of a harvest run.
type Root struct {
	Nodes []RootNode
}

// Packages returns the distinct packages of the root.
func (r Root) Packages() []*types.Package {
	var pkgs []*types.Package

	seen := make(map[*types.Package]struct{})
	for _, n := range r.Nodes {
		if _, ok := seen[n.Package.Types]; ok {
			continue
		}

		seen[n.Package.Types] = struct{}{}
		pkgs = append(pkgs, n.Package.Types)
	}

	return pkgs
}

// Root returns all seedable files of the given packages, or of the whole program when none are given.
// Generated files are skipped unless they are writable, as are files excluded by a nolint directive.
func (p *Program) Root(pkgs ...*Package) Root {
	if len(pkgs) == 0 {
		pkgs = p.packages
	}

	var root Root

	for _, pkg := range pkgs {
		for c := range pkg.Inspector().Root().Children() {
			file, ok := c.Node().(*ast.File)
			if !ok {
				continue
			}

			fi, ok := p.files[p.fset.File(file.FileStart)]
			if !ok {
				continue
			}

			if (fi.current.Generated() && !p.generated) || fi.current.NoLint() {
				continue
			}

			root.Nodes = append(root.Nodes, RootNode{Package: pkg, Cursor: c})
		}
	}

	return root
}

// DeclRoot returns the root of the declaration of obj: a function, type, or package-level variable.
func (p *Program) DeclRoot(obj types.Object) (Root, bool) {
	pkg, ok := p.byTypes[obj.Pkg()]
	if !ok {
		return Root{}, false
	}

	nodes := []ast.Node{
		(*ast.FuncDecl)(nil),
		(*ast.TypeSpec)(nil),
		(*ast.ValueSpec)(nil),
	}

	for c := range pkg.Inspector().Root().Preorder(nodes...) {
		var names []*ast.Ident

		switch n := c.Node().(type) {
		case *ast.FuncDecl:
			names = []*ast.Ident{n.Name}

		case *ast.TypeSpec:
			names = []*ast.Ident{n.Name}

		case *ast.ValueSpec:
			names = n.Names
		}

		for _, id := range names {
			if pkg.Info.Defs[id] == obj {
				return Root{Nodes: []RootNode{{Package: pkg, Cursor: c}}}, true
			}
		}
	}

	return Root{}, false
}

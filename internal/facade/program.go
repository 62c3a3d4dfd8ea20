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
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"runtime"
	"runtime/trace"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/nilopt/internal/astutil"
)

// ErrNoPackages is returned when a [Program] would be empty.
var ErrNoPackages = errors.New("no packages")

// Package is a type-checked package with syntax.
type Package struct {
	// Types is the type-checked package.
	Types *types.Package

	// Info holds the type information for Files.
	Info *types.Info

	// Files are the syntax trees.
	Files []*ast.File

	// ReadOnly marks packages that must not be rewritten, like module dependencies.
	ReadOnly bool

	inspector *inspector.Inspector
}

// NewPackage creates a [Package]. A nil inspector is created on demand.
func NewPackage(pkg *types.Package, info *types.Info, files []*ast.File, in *inspector.Inspector) *Package {
	return &Package{Types: pkg, Info: info, Files: files, inspector: in}
}

// Inspector returns the inspector over the package's files.
func (p *Package) Inspector() *inspector.Inspector {
	if p.inspector == nil {
		p.inspector = inspector.New(p.Files)
	}

	return p.inspector
}

// Program is the search scope: a set of packages sharing one [token.FileSet].
type Program struct {
	fset      *token.FileSet
	packages  []*Package
	byTypes   map[*types.Package]*Package
	files     map[*token.File]fileInfo
	generated bool
	index     index
}

type fileInfo struct {
	pkg     *Package
	current astutil.CurrentFile
}

// Option configures a [Program].
type Option func(p *Program)

// WithGenerated treats generated files as writable.
func WithGenerated(generated bool) Option {
	return func(p *Program) { p.generated = generated }
}

// New creates a [Program] and builds its occurrence index.
func New(ctx context.Context, fset *token.FileSet, pkgs []*Package, opts ...Option) (*Program, error) {
	if len(pkgs) == 0 {
		return nil, ErrNoPackages
	}

	p := &Program{
		fset:     fset,
		packages: pkgs,
		byTypes:  make(map[*types.Package]*Package, len(pkgs)),
		files:    make(map[*token.File]fileInfo),
	}

	for _, opt := range opts {
		opt(p)
	}

	for _, pkg := range pkgs {
		if pkg.Types == nil || pkg.Info == nil {
			return nil, fmt.Errorf("nilopt: package without type information: %w", ErrNoPackages)
		}

		p.byTypes[pkg.Types] = pkg

		for _, f := range pkg.Files {
			current := astutil.NewCurrentFile(fset, f)
			if !current.Valid() {
				continue
			}

			p.files[fset.File(f.FileStart)] = fileInfo{pkg: pkg, current: current}
		}
	}

	if err := p.buildIndex(ctx); err != nil {
		return nil, err
	}

	return p, nil
}

// buildIndex indexes all packages concurrently and merges the results in package order.
func (p *Program) buildIndex(ctx context.Context) error {
	defer trace.StartRegion(ctx, "Index").End()

	partial := make([]index, len(p.packages))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, pkg := range p.packages {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			partial[i] = indexPackage(pkg)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("nilopt: indexing: %w", err)
	}

	p.index = mergeIndex(partial)

	return nil
}

// Fset returns the file set of all packages.
func (p *Program) Fset() *token.FileSet {
	return p.fset
}

// Packages returns the packages in scope.
func (p *Program) Packages() []*Package {
	return p.packages
}

// Package returns the [Package] of a type-checked package, if it is in scope.
func (p *Program) Package(pkg *types.Package) (*Package, bool) {
	pp, ok := p.byTypes[pkg]

	return pp, ok
}

// File returns the package and file containing pos.
func (p *Program) File(pos token.Pos) (*Package, astutil.CurrentFile, bool) {
	if !pos.IsValid() {
		return nil, astutil.CurrentFile{}, false
	}

	fi, ok := p.files[p.fset.File(pos)]
	if !ok {
		return nil, astutil.CurrentFile{}, false
	}

	return fi.pkg, fi.current, true
}

// IncludeGenerated reports whether generated files are writable.
func (p *Program) IncludeGenerated() bool {
	return p.generated
}

// Owner returns the declared function or method a parameter or result belongs to.
func (p *Program) Owner(v *types.Var) (*types.Func, int, bool) {
	o, ok := p.index.owners[v]

	return o.fn, o.index, ok
}

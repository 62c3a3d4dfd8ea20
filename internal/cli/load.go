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

package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/tools/go/packages"

	"fillmore-labs.com/nilopt/internal/facade"
)

var (
	// ErrLoad is returned when packages have errors.
	ErrLoad = errors.New("package load failed")

	// ErrUnknownRoot is returned when a root names no loaded package or declaration.
	ErrUnknownRoot = errors.New("unknown root")
)

// load loads and type checks the packages matching patterns in dir.
func load(ctx context.Context, logger *slog.Logger, dir string, tests bool, patterns ...string) ([]*packages.Package, error) {
	cfg := &packages.Config{
		Mode:    facade.LoadMode,
		Context: ctx,
		Dir:     dir,
		Tests:   tests,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	var count int

	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, e := range pkg.Errors {
			logger.LogAttrs(ctx, slog.LevelError, "Package error",
				slog.String("package", pkg.PkgPath), slog.String("error", e.Error()))

			count++
		}
	})

	if count > 0 {
		return nil, fmt.Errorf("%w: %d errors", ErrLoad, count)
	}

	logger.LogAttrs(ctx, slog.LevelDebug, "Loaded packages", slog.Int("count", len(pkgs)))

	return pkgs, nil
}

// selectRoot returns the seeding root of a program: the named packages, the named declaration, or everything.
func selectRoot(program *facade.Program, paths []string, decl string) (facade.Root, error) {
	if decl != "" {
		return declRoot(program, decl)
	}

	if len(paths) == 0 {
		return program.Root(), nil
	}

	var pkgs []*facade.Package

	for _, path := range paths {
		i := slices.IndexFunc(program.Packages(), func(p *facade.Package) bool { return p.Types.Path() == path })
		if i < 0 {
			return facade.Root{}, fmt.Errorf("%w: package %q", ErrUnknownRoot, path)
		}

		pkgs = append(pkgs, program.Packages()[i])
	}

	return program.Root(pkgs...), nil
}

// declRoot returns the root of a package-level declaration named "path.Name".
func declRoot(program *facade.Program, decl string) (facade.Root, error) {
	i := strings.LastIndexByte(decl, '.')
	if i <= 0 {
		return facade.Root{}, fmt.Errorf("%w: declaration %q, want package.Name", ErrUnknownRoot, decl)
	}

	path, name := decl[:i], decl[i+1:]

	for _, pkg := range program.Packages() {
		if pkg.Types.Path() != path {
			continue
		}

		obj := pkg.Types.Scope().Lookup(name)
		if obj == nil {
			break
		}

		if root, ok := program.DeclRoot(obj); ok {
			return root, nil
		}
	}

	return facade.Root{}, fmt.Errorf("%w: declaration %q", ErrUnknownRoot, decl)
}

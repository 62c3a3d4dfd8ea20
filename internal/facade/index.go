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
	"go/token"
	"go/types"
	"regexp"

	"golang.org/x/tools/go/ast/edge"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/nilopt/internal/astutil"
	"fillmore-labs.com/nilopt/internal/element"
)

// MatchKind classifies a [Match].
type MatchKind uint8

//go:generate go tool stringer -type MatchKind -linecomment
const (
	// MatchDef is the declaring identifier of an element.
	MatchDef MatchKind = iota // def

	// MatchUse is an identifier referring to an element.
	MatchUse // use

	// MatchReturn is an expression returned into a result slot.
	MatchReturn // return

	// MatchCall is the function identifier of a call producing a result slot.
	MatchCall // call

	// MatchFuncValue is a function owning a parameter or result slot used as a value.
	MatchFuncValue // funcvalue

	// MatchArgument is a call argument passed to a parameter.
	MatchArgument // argument

	// MatchDocLink is a doc link in a doc comment.
	MatchDocLink // doclink
)

// Accuracy grades the confidence of a [Match].
type Accuracy uint8

const (
	// Exact matches are resolved through type information.
	Exact Accuracy = iota

	// Inexact matches are textual.
	Inexact
)

// Match is one occurrence of an element.
type Match struct {
	// Var is the matched element.
	Var *types.Var

	// Kind classifies the occurrence.
	Kind MatchKind

	// Package contains the match.
	Package *Package

	// Node is the matched identifier or expression, invalid for doc links.
	Node astutil.NodeIndex

	// Slot is the result index for [MatchReturn], [MatchCall] and [MatchFuncValue],
	// and the tuple index of a single tuple-valued argument for [MatchArgument].
	Slot int

	// Pos and End delimit the match.
	Pos, End token.Pos

	// Accuracy of the match.
	Accuracy Accuracy

	// InDocComment is true for matches inside doc comments.
	InDocComment bool
}

// Cursor returns the cursor of the matched node, or false for matches without syntax.
func (m Match) Cursor() (inspector.Cursor, bool) {
	return m.Node.Cursor(m.Package.Inspector())
}

type owner struct {
	fn    *types.Func
	index int
}

// index maps elements to their matches.
type index struct {
	matches map[*types.Var][]Match
	owners  map[*types.Var]owner

	// methods are concrete and interface methods declared in scope, by name.
	methods map[string][]*types.Func
}

func mergeIndex(partial []index) index {
	merged := index{
		matches: make(map[*types.Var][]Match),
		owners:  make(map[*types.Var]owner),
		methods: make(map[string][]*types.Func),
	}

	for _, ix := range partial {
		for v, ms := range ix.matches {
			merged.matches[v] = append(merged.matches[v], ms...)
		}

		for v, o := range ix.owners {
			merged.owners[v] = o
		}

		for name, fns := range ix.methods {
			merged.methods[name] = append(merged.methods[name], fns...)
		}
	}

	return merged
}

// indexPackage collects all matches of a single package.
func indexPackage(pkg *Package) index {
	ix := index{
		matches: make(map[*types.Var][]Match),
		owners:  make(map[*types.Var]owner),
		methods: make(map[string][]*types.Func),
	}

	in := pkg.Inspector()

	nodes := []ast.Node{
		// keep-sorted start
		(*ast.CommentGroup)(nil),
		(*ast.Ident)(nil),
		(*ast.ReturnStmt)(nil),
		// keep-sorted end
	}

	for c := range in.Root().Preorder(nodes...) {
		switch n := c.Node().(type) {
		case *ast.Ident:
			ix.ident(pkg, c, n)

		case *ast.ReturnStmt:
			ix.returnStmt(pkg, c, n)

		case *ast.CommentGroup:
			ix.docLinks(pkg, c, n)
		}
	}

	return ix
}

func (ix *index) add(pkg *Package, v *types.Var, m Match) {
	v = element.Normalize(v)
	m.Var, m.Package = v, pkg
	ix.matches[v] = append(ix.matches[v], m)
}

func (ix *index) ident(pkg *Package, c inspector.Cursor, id *ast.Ident) {
	kind := MatchDef

	obj := pkg.Info.Defs[id]
	if obj == nil {
		kind = MatchUse
		obj = pkg.Info.Uses[id]
	}

	switch obj := obj.(type) {
	case *types.Var:
		ix.add(pkg, obj, Match{Kind: kind, Node: astutil.NodeIndexOf(c), Slot: -1, Pos: id.Pos(), End: id.End()})

	case *types.Func:
		if kind == MatchDef {
			ix.declareFunc(obj)

			return
		}

		ix.funcUse(pkg, c, id, obj)
	}
}

// declareFunc records the owner of parameters and results and the method set in scope.
func (ix *index) declareFunc(fn *types.Func) {
	sig := fn.Signature()

	if recv := sig.Recv(); recv != nil {
		ix.owners[element.Normalize(recv)] = owner{fn: fn, index: -1}
		ix.methods[fn.Name()] = append(ix.methods[fn.Name()], fn)
	}

	for i := range sig.Params().Len() {
		ix.owners[element.Normalize(sig.Params().At(i))] = owner{fn: fn, index: i}
	}

	for i := range sig.Results().Len() {
		ix.owners[element.Normalize(sig.Results().At(i))] = owner{fn: fn, index: i}
	}
}

// funcUse records calls of a function as matches of its result slots and parameters.
func (ix *index) funcUse(pkg *Package, c inspector.Cursor, id *ast.Ident, fn *types.Func) {
	sig := fn.Origin().Signature()
	call, called := callOf(c)

	kind := MatchFuncValue
	if called {
		kind = MatchCall
	}

	results := sig.Results()
	for i := range results.Len() {
		ix.add(pkg, results.At(i), Match{Kind: kind, Node: astutil.NodeIndexOf(c), Slot: i, Pos: id.Pos(), End: id.End()})
	}

	if called {
		ix.arguments(pkg, call, sig)

		return
	}

	// parameters of a function value receive arguments from unknown call sites
	params := sig.Params()
	for i := range params.Len() {
		ix.add(pkg, params.At(i), Match{Kind: MatchFuncValue, Node: astutil.NodeIndexOf(c), Slot: -1, Pos: id.Pos(), End: id.End()})
	}
}

// callOf returns the call expression whose callee is the function identifier at c.
func callOf(c inspector.Cursor) (inspector.Cursor, bool) {
	for {
		switch k, _ := c.ParentEdge(); k {
		case edge.SelectorExpr_Sel, edge.IndexExpr_X, edge.IndexListExpr_X, edge.ParenExpr_X:
			c = c.Parent()

		case edge.CallExpr_Fun:
			return c.Parent(), true

		default:
			return c, false
		}
	}
}

// arguments records the arguments of a call as matches of the parameters receiving them.
func (ix *index) arguments(pkg *Package, c inspector.Cursor, sig *types.Signature) {
	call := c.Node().(*ast.CallExpr)

	shift := 0
	if isMethodExpr(pkg.Info, call) {
		shift = 1 // the receiver is the first argument
	}

	if len(call.Args) == 1 {
		if tuple, ok := pkg.Info.TypeOf(call.Args[0]).(*types.Tuple); ok {
			arg, ac := call.Args[0], c.ChildAt(edge.CallExpr_Args, 0)
			for j := range tuple.Len() {
				if p := paramAt(sig, j-shift); p != nil {
					ix.add(pkg, p, Match{Kind: MatchArgument, Node: astutil.NodeIndexOf(ac), Slot: j, Pos: arg.Pos(), End: arg.End()})
				}
			}

			return
		}
	}

	for i, arg := range call.Args {
		p := paramAt(sig, i-shift)
		if p == nil {
			continue
		}

		ac := c.ChildAt(edge.CallExpr_Args, i)
		ix.add(pkg, p, Match{Kind: MatchArgument, Node: astutil.NodeIndexOf(ac), Slot: -1, Pos: arg.Pos(), End: arg.End()})
	}
}

// paramAt returns the parameter receiving argument j, where -1 is the receiver.
func paramAt(sig *types.Signature, j int) *types.Var {
	params := sig.Params()

	switch n := params.Len(); {
	case j < 0:
		return sig.Recv()

	case sig.Variadic() && j >= n-1:
		return params.At(n - 1)

	case j < n:
		return params.At(j)

	default:
		return nil
	}
}

func isMethodExpr(info *types.Info, call *ast.CallExpr) bool {
	sel, ok := astutil.Unparen(call.Fun).(*ast.SelectorExpr)
	if !ok {
		return false
	}

	s, ok := info.Selections[sel]

	return ok && s.Kind() == types.MethodExpr
}

// returnStmt records returned expressions as matches of the enclosing function's result slots.
func (ix *index) returnStmt(pkg *Package, c inspector.Cursor, ret *ast.ReturnStmt) {
	sig := enclosingSignature(pkg.Info, c)
	if sig == nil {
		return
	}

	results := sig.Results()

	switch n := len(ret.Results); {
	case n == 0:
		// bare return, named results are matched by their identifiers

	case n == results.Len():
		for i, res := range ret.Results {
			rc := c.ChildAt(edge.ReturnStmt_Results, i)
			ix.add(pkg, results.At(i), Match{Kind: MatchReturn, Node: astutil.NodeIndexOf(rc), Slot: i, Pos: res.Pos(), End: res.End()})
		}

	case n == 1:
		// return f() with a tuple result
		res, rc := ret.Results[0], c.ChildAt(edge.ReturnStmt_Results, 0)
		for i := range results.Len() {
			ix.add(pkg, results.At(i), Match{Kind: MatchReturn, Node: astutil.NodeIndexOf(rc), Slot: i, Pos: res.Pos(), End: res.End()})
		}
	}
}

// enclosingSignature returns the signature of the function declaration or literal enclosing c.
func enclosingSignature(info *types.Info, c inspector.Cursor) *types.Signature {
	for fc := range c.Enclosing((*ast.FuncDecl)(nil), (*ast.FuncLit)(nil)) {
		switch fn := fc.Node().(type) {
		case *ast.FuncDecl:
			if f, ok := info.Defs[fn.Name].(*types.Func); ok {
				return f.Signature()
			}

		case *ast.FuncLit:
			if sig, ok := info.TypeOf(fn).(*types.Signature); ok {
				return sig
			}
		}

		return nil
	}

	return nil
}

var docLinkPattern = regexp.MustCompile(`\[(\*?)([\pL_][\pL\pN_]*)(?:\.([\pL_][\pL\pN_]*))?\]`)

// docLinks records doc links to package-level variables and fields.
func (ix *index) docLinks(pkg *Package, c inspector.Cursor, cg *ast.CommentGroup) {
	if k, _ := c.ParentEdge(); k == edge.File_Doc || k == edge.Invalid {
		return // package comments and free-floating comments are not doc comments of declarations
	}

	scope := pkg.Types.Scope()

	for _, comment := range cg.List {
		for _, loc := range docLinkPattern.FindAllStringSubmatchIndex(comment.Text, -1) {
			name := comment.Text[loc[4]:loc[5]]

			var v *types.Var

			switch obj := scope.Lookup(name).(type) {
			case *types.Var:
				v = obj

			case *types.TypeName:
				if loc[6] < 0 {
					continue
				}

				field := comment.Text[loc[6]:loc[7]]
				if f, _, _ := types.LookupFieldOrMethod(obj.Type(), true, pkg.Types, field); f != nil {
					v, _ = f.(*types.Var)
				}
			}

			if v == nil {
				continue
			}

			pos := comment.Pos() + token.Pos(loc[0])
			end := comment.Pos() + token.Pos(loc[1])
			ix.add(pkg, v, Match{Kind: MatchDocLink, Node: astutil.InvalidNode, Slot: -1, Pos: pos, End: end, InDocComment: true})
		}
	}
}

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

package flow

import (
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/types/typeutil"

	"fillmore-labs.com/nilopt/internal/astutil"
	"fillmore-labs.com/nilopt/internal/config"
	"fillmore-labs.com/nilopt/internal/element"
	"fillmore-labs.com/nilopt/internal/facade"
	"fillmore-labs.com/nilopt/internal/failure"
)

// classifier implements the context dispatch shared by seeding and propagation.
type classifier struct {
	program  *facade.Program
	settings config.Settings
	info     *types.Info
}

// dependents collects the elements that must share the type of the nil-dependent expression at c.
// The slot selects a result of a tuple-valued call and is -1 otherwise.
func (k *classifier) dependents(f *Flow, c inspector.Cursor, slot int) *failure.Failure {
	expr, ok := c.Node().(ast.Expr)
	if !ok {
		return failure.New(failure.ModelError, c.Node(), nil, "%T is not an expression", c.Node())
	}

	src := k.valueType(expr, slot)
	ctx, i := contextOf(k.info, c)
	parent := c.Parent().Node()

	switch ctx {
	case AssignValue:
		stmt := parent.(*ast.AssignStmt)

		j, ok := spread(i, slot, len(stmt.Lhs), len(stmt.Rhs))
		if !ok {
			return failure.New(failure.ModelError, stmt, nil, "assignment arity")
		}

		return k.target(f, ctx, stmt.Lhs[j], src, nil)

	case AssignTarget:
		stmt := parent.(*ast.AssignStmt)
		dst := k.info.TypeOf(expr)

		switch {
		case len(stmt.Lhs) == len(stmt.Rhs):
			return k.source(f, ctx, stmt.Rhs[i], -1, dst)

		case len(stmt.Rhs) == 1:
			return k.source(f, ctx, stmt.Rhs[0], i, dst)

		default:
			return failure.New(failure.ModelError, stmt, nil, "assignment arity")
		}

	case SpecValue:
		return k.specValue(f, parent.(*ast.ValueSpec), i, slot, src)

	case SpecName:
		return k.specName(f, parent.(*ast.ValueSpec), i, k.info.TypeOf(expr))

	case FieldName:
		field := parent.(*ast.Field)
		k.add(f, ctx, field, nil, nil, false, k.defined(field.Names, i)...)

		return nil

	case Return:
		return k.returned(f, c, parent.(*ast.ReturnStmt), i, slot, src)

	case Argument:
		return k.argument(f, c, i, slot, src)

	case Conversion:
		conv := parent.(*ast.CallExpr)
		if t := k.info.TypeOf(conv); t != nil && types.IsInterface(t) && !isNil(k.info, expr) {
			return nil // boxed
		}

		return failure.New(failure.Disallowed, conv, nil, "conversion to %s", types.ExprString(conv.Fun))

	case Transparent, Container:
		if _, ok := parent.(*ast.ParenExpr); ok {
			return k.dependents(f, c.Parent(), slot)
		}

		return k.dependents(f, c.Parent(), -1)

	case Element:
		lit := parent.(*ast.CompositeLit)

		st, ok := literalType(k.info, lit).(*types.Struct)
		if !ok {
			return k.dependents(f, c.Parent(), -1)
		}

		if i >= st.NumFields() {
			return failure.New(failure.ModelError, lit, nil, "struct literal arity")
		}

		field := st.Field(i)
		k.add(f, ctx, expr, src, field.Type(), false, field)

		return nil

	case KeyedValue:
		kv := parent.(*ast.KeyValueExpr)
		lc := c.Parent().Parent()

		if !isStructLit(k.info, lc) {
			return k.dependents(f, lc, -1)
		}

		field, fail := k.resolve(kv.Key)
		if fail != nil || field == nil {
			return fail
		}

		k.add(f, ctx, kv, src, field.Type(), false, field)

		return nil

	case FieldKey:
		kv := parent.(*ast.KeyValueExpr)

		return k.source(f, ctx, kv.Value, -1, k.info.TypeOf(expr))

	case SendValue:
		stmt := parent.(*ast.SendStmt)

		var dst types.Type
		if ch, ok := typeUnder(k.info.TypeOf(stmt.Chan)).(*types.Chan); ok {
			dst = ch.Elem()
		}

		return k.target(f, ctx, stmt.Chan, src, dst)

	case SendChan:
		stmt := parent.(*ast.SendStmt)

		return k.source(f, ctx, stmt.Value, -1, nil)

	case RangeVar:
		stmt := parent.(*ast.RangeStmt)
		if !isContainer(k.info.TypeOf(stmt.X)) {
			return nil
		}

		return k.source(f, ctx, stmt.X, -1, nil)

	case RangeOver:
		stmt := parent.(*ast.RangeStmt)
		if !isContainer(k.info.TypeOf(stmt.X)) {
			return nil
		}

		for _, e := range [...]ast.Expr{stmt.Key, stmt.Value} {
			if e == nil {
				continue
			}

			if fail := k.target(f, ctx, e, nil, nil); fail != nil {
				return fail
			}
		}

		return nil

	case Comparison, Use, Declaration:
		return nil

	default:
		kind, _ := c.ParentEdge()

		return failure.New(failure.Unclassifiable, expr, nil, "%v", kind)
	}
}

// spread maps the position of a value to the receiving position, taking
// tuple-valued calls and comma-ok expressions into account.
func spread(i, slot, receivers, values int) (int, bool) {
	switch {
	case receivers == values:
		return i, true

	case values == 1 && slot < 0:
		return 0, true // comma-ok

	case values == 1 && slot < receivers:
		return slot, true

	default:
		return 0, false
	}
}

func (k *classifier) specValue(f *Flow, spec *ast.ValueSpec, i, slot int, src types.Type) *failure.Failure {
	if spec.Type != nil {
		vars := k.defined(spec.Names, -1)
		if len(vars) > 0 {
			k.add(f, SpecValue, spec, src, vars[0].Type(), false, vars...)
		}

		return nil
	}

	j, ok := spread(i, slot, len(spec.Names), len(spec.Values))
	if !ok {
		return failure.New(failure.ModelError, spec, nil, "declaration arity")
	}

	return k.target(f, SpecValue, spec.Names[j], src, nil)
}

func (k *classifier) specName(f *Flow, spec *ast.ValueSpec, i int, dst types.Type) *failure.Failure {
	if spec.Type != nil {
		k.add(f, SpecName, spec, nil, nil, false, k.defined(spec.Names, i)...)
	}

	switch {
	case len(spec.Values) == len(spec.Names):
		return k.source(f, SpecName, spec.Values[i], -1, dst)

	case len(spec.Values) == 1:
		return k.source(f, SpecName, spec.Values[0], i, dst)

	default:
		return nil
	}
}

// defined returns the variables declared by names, excluding the name at position skip.
func (k *classifier) defined(names []*ast.Ident, skip int) []*types.Var {
	var vars []*types.Var

	for j, id := range astutil.Names(names) {
		if j == skip {
			continue
		}

		if v, ok := k.info.Defs[id].(*types.Var); ok {
			vars = append(vars, v)
		}
	}

	return vars
}

func (k *classifier) returned(f *Flow, c inspector.Cursor, ret *ast.ReturnStmt, i, slot int, src types.Type) *failure.Failure {
	sig, lit := k.enclosing(c)

	switch {
	case lit:
		return failure.New(failure.Unclassifiable, ret, nil, "returned from a function literal")

	case sig == nil:
		return failure.New(failure.ModelError, ret, nil, "no enclosing function")
	}

	results := sig.Results()

	j, ok := spread(i, slot, results.Len(), len(ret.Results))
	if !ok || j >= results.Len() {
		return failure.New(failure.ModelError, ret, nil, "return arity")
	}

	res := results.At(j)
	k.add(f, Return, ret.Results[i], src, res.Type(), false, res)

	return nil
}

// enclosing returns the signature of the function declaration enclosing c,
// or reports that c is inside a function literal.
func (k *classifier) enclosing(c inspector.Cursor) (*types.Signature, bool) {
	for fc := range c.Enclosing((*ast.FuncDecl)(nil), (*ast.FuncLit)(nil)) {
		switch fn := fc.Node().(type) {
		case *ast.FuncDecl:
			if obj, ok := k.info.Defs[fn.Name].(*types.Func); ok {
				return obj.Signature(), false
			}

			return nil, false

		case *ast.FuncLit:
			return nil, true
		}
	}

	return nil, false
}

func (k *classifier) argument(f *Flow, c inspector.Cursor, i, slot int, src types.Type) *failure.Failure {
	call := c.Parent().Node().(*ast.CallExpr)
	arg := call.Args[i]

	switch fn := typeutil.Callee(k.info, call).(type) {
	case *types.Builtin:
		if fn.Name() == "append" {
			return k.dependents(f, c.Parent(), -1)
		}

		return nil

	case *types.Func:
		j := i
		if len(call.Args) == 1 && slot >= 0 {
			j = slot // f(g()) with a tuple result
		}

		if k.isMethodExpr(call) {
			j-- // the receiver is the first argument
		}

		ellipsis := call.Ellipsis.IsValid()

		_, dst, ok := parameter(fn.Origin().Signature(), j, ellipsis)
		if !ok {
			return failure.New(failure.ModelError, call, nil, "argument arity")
		}

		if boxes(src, dst) || !k.accepts(dst) {
			return nil
		}

		var params []*types.Var

		for _, decl := range k.program.Declarations(fn, k.settings.Overrides) {
			p, _, ok := parameter(decl.Signature(), j, ellipsis)
			if !ok {
				return failure.New(failure.ModelError, call, nil, "argument arity of %s", decl.Name())
			}

			if fail := k.program.CheckDeclaration(p); fail != nil {
				fail.Pos, fail.End = arg.Pos(), arg.End()

				return fail
			}

			params = append(params, p)
		}

		k.add(f, Argument, arg, nil, nil, true, params...)

		return nil

	default:
		return failure.New(failure.Unclassifiable, call, nil, "call of a function value")
	}
}

func (k *classifier) isMethodExpr(call *ast.CallExpr) bool {
	sel, ok := astutil.Unparen(call.Fun).(*ast.SelectorExpr)
	if !ok {
		return false
	}

	s, ok := k.info.Selections[sel]

	return ok && s.Kind() == types.MethodExpr
}

// parameter returns the parameter receiving argument j and the type a single argument is assigned to.
// Index -1 is the receiver.
func parameter(sig *types.Signature, j int, ellipsis bool) (*types.Var, types.Type, bool) {
	if j < 0 {
		recv := sig.Recv()
		if recv == nil {
			return nil, nil, false
		}

		return recv, recv.Type(), true
	}

	params := sig.Params()
	n := params.Len()

	if sig.Variadic() && j >= n-1 {
		p := params.At(n - 1)
		if ellipsis {
			return p, p.Type(), true
		}

		s, ok := p.Type().Underlying().(*types.Slice)
		if !ok {
			return nil, nil, false
		}

		return p, s.Elem(), true
	}

	if j >= n {
		return nil, nil, false
	}

	p := params.At(j)

	return p, p.Type(), true
}

// target collects the element an assignable expression stores into.
// A nil dst defaults to the type of lhs.
func (k *classifier) target(f *Flow, ctx Context, lhs ast.Expr, src, dst types.Type) *failure.Failure {
	v, fail := k.resolve(lhs)
	if fail != nil || v == nil {
		return fail
	}

	if dst == nil {
		dst = k.info.TypeOf(lhs)
	}

	k.add(f, ctx, lhs, src, dst, false, v)

	return nil
}

// resolve returns the element an assignable expression stores into, or nil for the blank identifier.
func (k *classifier) resolve(e ast.Expr) (*types.Var, *failure.Failure) {
	switch e := e.(type) {
	case *ast.Ident:
		if e.Name == "_" {
			return nil, nil
		}

		obj := k.info.ObjectOf(e)
		if obj == nil {
			return nil, failure.New(failure.MissingBinding, e, nil, "%s", e.Name)
		}

		v, ok := obj.(*types.Var)
		if !ok {
			return nil, failure.New(failure.Unclassifiable, e, nil, "%s is not a variable", e.Name)
		}

		return element.Normalize(v), nil

	case *ast.SelectorExpr:
		if sel, ok := k.info.Selections[e]; ok {
			v, ok := sel.Obj().(*types.Var)
			if !ok || sel.Kind() != types.FieldVal {
				return nil, failure.New(failure.Unclassifiable, e, nil, "%s is not a field", e.Sel.Name)
			}

			return element.Normalize(v), nil
		}

		if !k.qualified(e) {
			return nil, failure.New(failure.ModelError, e, nil, "missing selection %s", e.Sel.Name)
		}

		return k.resolve(e.Sel)

	case *ast.IndexExpr:
		return k.resolve(e.X)

	case *ast.StarExpr:
		return k.resolve(e.X)

	case *ast.ParenExpr:
		return k.resolve(e.X)

	default:
		return nil, failure.New(failure.Unclassifiable, e, nil, "assignment to %T", e)
	}
}

// qualified reports whether e is a qualified identifier.
func (k *classifier) qualified(e *ast.SelectorExpr) bool {
	id, ok := e.X.(*ast.Ident)
	if !ok {
		return false
	}

	_, ok = k.info.Uses[id].(*types.PkgName)

	return ok
}

// source collects the element producing the value of e, which is stored into a declaration of type dst.
func (k *classifier) source(f *Flow, ctx Context, e ast.Expr, slot int, dst types.Type) *failure.Failure {
	if boxes(k.valueType(e, slot), dst) {
		return nil
	}

	v, fail := k.producer(e, slot)
	if fail != nil || v == nil {
		return fail
	}

	k.add(f, ctx, e, nil, nil, false, v)

	return nil
}

// producer returns the element holding the value of e, or nil when the value is not held by an element.
func (k *classifier) producer(e ast.Expr, slot int) (*types.Var, *failure.Failure) {
	switch e := e.(type) {
	case *ast.ParenExpr:
		return k.producer(e.X, slot)

	case *ast.Ident:
		switch obj := k.info.ObjectOf(e).(type) {
		case nil:
			return nil, failure.New(failure.MissingBinding, e, nil, "%s", e.Name)

		case *types.Var:
			return element.Normalize(obj), nil

		default:
			return nil, nil
		}

	case *ast.SelectorExpr:
		if sel, ok := k.info.Selections[e]; ok {
			if v, ok := sel.Obj().(*types.Var); ok && sel.Kind() == types.FieldVal {
				return element.Normalize(v), nil
			}

			return nil, nil // method value
		}

		return k.producer(e.Sel, slot)

	case *ast.CallExpr:
		return k.callProducer(e, slot)

	case *ast.IndexExpr:
		if !isContainer(k.info.TypeOf(e.X)) {
			return nil, nil // instantiation
		}

		return k.producer(e.X, -1)

	case *ast.SliceExpr:
		return k.producer(e.X, -1)

	case *ast.StarExpr:
		return k.producer(e.X, -1)

	case *ast.UnaryExpr:
		if e.Op != token.ARROW {
			return nil, nil
		}

		return k.producer(e.X, -1)

	default:
		return nil, nil
	}
}

func (k *classifier) callProducer(call *ast.CallExpr, slot int) (*types.Var, *failure.Failure) {
	if tv, ok := k.info.Types[call.Fun]; ok && tv.IsType() {
		if types.IsInterface(tv.Type) {
			return nil, nil
		}

		return nil, failure.New(failure.Disallowed, call, nil, "conversion to %s", types.ExprString(call.Fun))
	}

	switch fn := typeutil.Callee(k.info, call).(type) {
	case *types.Builtin:
		if fn.Name() == "append" && len(call.Args) > 0 {
			return k.producer(call.Args[0], -1)
		}

		return nil, nil

	case *types.Func:
		results := fn.Origin().Signature().Results()

		j := max(slot, 0)
		if j >= results.Len() {
			return nil, failure.New(failure.ModelError, call, nil, "result arity of %s", fn.Name())
		}

		return element.Normalize(results.At(j)), nil

	default:
		return nil, failure.New(failure.Unclassifiable, call, nil, "call of a function value")
	}
}

// add records the elements as one discovery, unless the value is boxed into an interface.
func (k *classifier) add(f *Flow, ctx Context, n ast.Node, src, dst types.Type, joint bool, vars ...*types.Var) {
	if boxes(src, dst) {
		return
	}

	var d element.Discovery

	for _, v := range vars {
		v = element.Normalize(v)
		if v == nil || !k.accepts(v.Type()) {
			continue
		}

		d.Candidates = append(d.Candidates, element.Candidate{Var: v})
	}

	if len(d.Candidates) == 0 {
		return
	}

	d.Joint = joint && len(d.Candidates) > 1

	f.discover(d, ctx, n)
}

// accepts reports whether elements of type t are considered.
func (k *classifier) accepts(t types.Type) bool {
	if t == nil || !element.Nilable(t) {
		return false
	}

	return k.settings.Behavior.Enabled(config.ErrorValues) || !element.IsError(t)
}

// valueType returns the type of the value of e, selecting slot of a tuple.
func (k *classifier) valueType(e ast.Expr, slot int) types.Type {
	if isNil(k.info, e) {
		return types.Typ[types.UntypedNil]
	}

	t := k.info.TypeOf(e)

	if tuple, ok := t.(*types.Tuple); ok {
		j := max(slot, 0)
		if j >= tuple.Len() {
			return nil
		}

		return tuple.At(j).Type()
	}

	return t
}

// boxes reports whether storing a value of type src into dst wraps it into an interface.
func boxes(src, dst types.Type) bool {
	if src == nil || dst == nil || !types.IsInterface(dst) {
		return false
	}

	if b, ok := src.(*types.Basic); ok && b.Kind() == types.UntypedNil {
		return false
	}

	return !types.IsInterface(src)
}

// isNil reports whether e is the predeclared nil.
func isNil(info *types.Info, e ast.Expr) bool {
	id, ok := astutil.Unparen(e).(*ast.Ident)
	if !ok {
		return false
	}

	_, ok = info.Uses[id].(*types.Nil)

	return ok
}

func typeUnder(t types.Type) types.Type {
	if t == nil {
		return nil
	}

	return t.Underlying()
}

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

	"golang.org/x/tools/go/ast/edge"
	"golang.org/x/tools/go/ast/inspector"
)

// Context is the syntactic context of a nil-dependent expression.
type Context uint8

//go:generate go tool stringer -type Context -linecomment
const (
	// Unknown is a context the dispatch does not recognize.
	Unknown Context = iota // unk

	// AssignValue is the right-hand side of an assignment.
	AssignValue // asv

	// AssignTarget is the left-hand side of an assignment.
	AssignTarget // ast

	// SpecValue is the initializer of a var declaration.
	SpecValue // spv

	// SpecName is a name of a var declaration.
	SpecName // spn

	// FieldName is a name of a struct field declaration.
	FieldName // fld

	// Return is a returned expression.
	Return // ret

	// Argument is a call argument.
	Argument // arg

	// Call is the callee of a call producing a result slot.
	Call // cal

	// Conversion is the operand of a type conversion.
	Conversion // cnv

	// Transparent is an expression passing its operand's value on: parentheses, slicing, address-of and receive.
	Transparent // par

	// Container is the operand of an index or dereference expression.
	Container // idx

	// Element is an unkeyed composite literal element.
	Element // elt

	// KeyedValue is the value of a keyed composite literal element.
	KeyedValue // kvv

	// FieldKey is the field name of a keyed struct literal element.
	FieldKey // key

	// SendValue is the value of a send statement.
	SendValue // snd

	// SendChan is the channel of a send statement.
	SendChan // sch

	// RangeVar is the key or value variable of a range statement.
	RangeVar // rvr

	// RangeOver is the ranged-over expression of a range statement.
	RangeOver // rng

	// Comparison is an operand of a comparison or a switch case.
	Comparison // cmp

	// Use is a read that does not pass the value on.
	Use // use

	// Declaration is a declaring identifier of a parameter, result or function.
	Declaration // dcl
)

// contextOf classifies the parent edge of the expression at c.
// The returned index is the position of c in a list-valued parent field.
func contextOf(info *types.Info, c inspector.Cursor) (Context, int) {
	k, i := c.ParentEdge()
	parent := c.Parent().Node()

	switch k {
	// keep-sorted start
	case edge.AssignStmt_Lhs:
		if !plainAssign(parent.(*ast.AssignStmt)) {
			return Use, i
		}

		return AssignTarget, i

	case edge.AssignStmt_Rhs:
		if !plainAssign(parent.(*ast.AssignStmt)) {
			return Use, i
		}

		return AssignValue, i

	case edge.BinaryExpr_X, edge.BinaryExpr_Y:
		switch parent.(*ast.BinaryExpr).Op {
		case token.EQL, token.NEQ:
			return Comparison, i

		default:
			return Use, i
		}

	case edge.CallExpr_Args:
		if tv, ok := info.Types[parent.(*ast.CallExpr).Fun]; ok && tv.IsType() {
			return Conversion, i
		}

		return Argument, i

	case edge.CaseClause_List, edge.SwitchStmt_Tag:
		return Comparison, i

	case edge.CompositeLit_Elts:
		return Element, i

	case edge.Field_Names:
		if isStructField(c) {
			return FieldName, i
		}

		return Declaration, i

	case edge.FuncDecl_Name, edge.FuncDecl_Recv, edge.FuncType_Params, edge.FuncType_Results:
		return Declaration, i

	case edge.IndexExpr_X, edge.StarExpr_X:
		if isContainer(info.TypeOf(c.Node().(ast.Expr))) {
			return Container, i
		}

		return Use, i

	case edge.KeyValueExpr_Key:
		if isStructLit(info, c.Parent().Parent()) {
			return FieldKey, i
		}

		return Use, i

	case edge.KeyValueExpr_Value:
		return KeyedValue, i

	case edge.ParenExpr_X, edge.SliceExpr_X:
		return Transparent, i

	case edge.RangeStmt_Key, edge.RangeStmt_Value:
		return RangeVar, i

	case edge.RangeStmt_X:
		return RangeOver, i

	case edge.ReturnStmt_Results:
		return Return, i

	case edge.SendStmt_Chan:
		return SendChan, i

	case edge.SendStmt_Value:
		return SendValue, i

	case edge.UnaryExpr_X:
		switch parent.(*ast.UnaryExpr).Op {
		case token.AND, token.ARROW:
			return Transparent, i

		default:
			return Use, i
		}

	case edge.ValueSpec_Names:
		return SpecName, i

	case edge.ValueSpec_Values:
		return SpecValue, i
	// keep-sorted end

	case edge.CallExpr_Fun,
		edge.DeferStmt_Call,
		edge.ExprStmt_X,
		edge.ForStmt_Cond,
		edge.GoStmt_Call,
		edge.IfStmt_Cond,
		edge.IncDecStmt_X,
		edge.IndexExpr_Index,
		edge.IndexListExpr_X,
		edge.IndexListExpr_Indices,
		edge.SelectorExpr_X,
		edge.SliceExpr_Low,
		edge.SliceExpr_High,
		edge.SliceExpr_Max,
		edge.TypeAssertExpr_X:
		return Use, i

	default:
		return Unknown, i
	}
}

// plainAssign reports whether stmt is a plain assignment or short variable declaration.
func plainAssign(stmt *ast.AssignStmt) bool {
	return stmt.Tok == token.ASSIGN || stmt.Tok == token.DEFINE
}

// isStructField reports whether the field name at c belongs to a struct type.
func isStructField(c inspector.Cursor) bool {
	list := c.Parent().Parent() // Field → FieldList

	k, _ := list.ParentEdge()

	return k == edge.StructType_Fields
}

// isStructLit reports whether c is a composite literal of struct type.
func isStructLit(info *types.Info, c inspector.Cursor) bool {
	lit, ok := c.Node().(*ast.CompositeLit)
	if !ok {
		return false
	}

	_, ok = literalType(info, lit).(*types.Struct)

	return ok
}

// literalType returns the underlying type of a composite literal, dereferencing elided pointers.
func literalType(info *types.Info, lit *ast.CompositeLit) types.Type {
	t := info.TypeOf(lit)
	if t == nil {
		return nil
	}

	if ptr, ok := t.Underlying().(*types.Pointer); ok {
		t = ptr.Elem()
	}

	return t.Underlying()
}

// isContainer reports whether an index or dereference of t yields an element stored in t.
func isContainer(t types.Type) bool {
	if t == nil {
		return false
	}

	switch t.Underlying().(type) {
	case *types.Slice, *types.Array, *types.Map, *types.Chan, *types.Pointer:
		return true

	default:
		return false
	}
}

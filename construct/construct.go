// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package construct

import (
	"github.com/airen3339/codon/ast"
	"github.com/airen3339/codon/types"
)

// Expressions

// Identifier: `x`
func Id(name string) *ast.IdExpr { return &ast.IdExpr{Value: name} }

// Identifier denoting a type: `int`
func TypeId(name string) *ast.IdExpr {
	e := &ast.IdExpr{Value: name}
	e.SetAttr(ast.AttrType)
	return e
}

func None() *ast.NoneExpr { return &ast.NoneExpr{} }

func Bool(v bool) *ast.BoolExpr { return &ast.BoolExpr{Value: v} }

func Int(v int64) *ast.IntExpr { return &ast.IntExpr{Value: v} }

func Float(v float64) *ast.FloatExpr { return &ast.FloatExpr{Value: v} }

func Str(s string) *ast.StringExpr { return &ast.StringExpr{Value: s} }

// Tuple literal: `(a, b)`
func Tuple(items ...ast.Expr) *ast.TupleExpr { return &ast.TupleExpr{Items: items} }

// List pattern: `[a, b]`
func List(items ...ast.Expr) *ast.ListExpr { return &ast.ListExpr{Items: items} }

// Member access: `e.member`
func Dot(e ast.Expr, member string) *ast.DotExpr { return &ast.DotExpr{Expr: e, Member: member} }

// Positional call: `f(args...)`
func Call(fn ast.Expr, args ...ast.Expr) *ast.CallExpr {
	c := &ast.CallExpr{Expr: fn, Args: make([]ast.CallArg, len(args))}
	for i, arg := range args {
		c.Args[i] = ast.CallArg{Value: arg}
	}
	return c
}

// Call with (possibly named) arguments: `f(a, b=c)`
func CallArgs(fn ast.Expr, args ...ast.CallArg) *ast.CallExpr {
	return &ast.CallExpr{Expr: fn, Args: args}
}

// Named argument: `name=value`
func Arg(name string, value ast.Expr) ast.CallArg { return ast.CallArg{Name: name, Value: value} }

// Method call: `e.method(args...)`
func Method(e ast.Expr, method string, args ...ast.Expr) *ast.CallExpr {
	return Call(Dot(e, method), args...)
}

// Missing argument of a partial call: `...`
func Ellipsis() *ast.EllipsisExpr { return &ast.EllipsisExpr{Mode: ast.EllipsisPartial} }

func Star(e ast.Expr) *ast.StarExpr { return &ast.StarExpr{Expr: e} }

func KwStar(e ast.Expr) *ast.KeywordStarExpr { return &ast.KeywordStarExpr{Expr: e} }

func Unary(op string, e ast.Expr) *ast.UnaryExpr { return &ast.UnaryExpr{Op: op, Expr: e} }

func Binary(l ast.Expr, op string, r ast.Expr) *ast.BinaryExpr {
	return &ast.BinaryExpr{Op: op, Left: l, Right: r}
}

// In-place binary operation: `l op= r`
func InPlace(l ast.Expr, op string, r ast.Expr) *ast.BinaryExpr {
	return &ast.BinaryExpr{Op: op, Left: l, Right: r, InPlace: true}
}

// Conditional expression: `then if cond else els`
func IfExpr(cond, then, els ast.Expr) *ast.IfExpr {
	return &ast.IfExpr{Cond: cond, Then: then, Else: els}
}

func Index(e, index ast.Expr) *ast.IndexExpr { return &ast.IndexExpr{Expr: e, Index: index} }

func Slice(start, stop, step ast.Expr) *ast.SliceExpr {
	return &ast.SliceExpr{Start: start, Stop: stop, Step: step}
}

// Explicit instantiation: `T[params...]`
func Instantiate(t ast.Expr, params ...ast.Expr) *ast.InstantiateExpr {
	return &ast.InstantiateExpr{Expr: t, Params: params}
}

// Binding pattern or assignment expression: `(name := e)`
func AssignExpr(name string, e ast.Expr) *ast.AssignExpr { return &ast.AssignExpr{Var: name, Expr: e} }

// Range pattern: `start ... stop`
func Range(start, stop ast.Expr) *ast.RangeExpr { return &ast.RangeExpr{Start: start, Stop: stop} }

func StmtExpr(e ast.Expr, stmts ...ast.Stmt) *ast.StmtExpr { return &ast.StmtExpr{Stmts: stmts, Expr: e} }

// Statements

func Suite(stmts ...ast.Stmt) *ast.SuiteStmt { return &ast.SuiteStmt{Stmts: stmts} }

func ExprStmt(e ast.Expr) *ast.ExprStmt { return &ast.ExprStmt{Expr: e} }

// Assignment: `name = rhs`
func Assign(name string, rhs ast.Expr) *ast.AssignStmt {
	return &ast.AssignStmt{Lhs: Id(name), Rhs: rhs}
}

// Annotated assignment: `name: typ = rhs`
func AssignTyped(name string, typ, rhs ast.Expr) *ast.AssignStmt {
	return &ast.AssignStmt{Lhs: Id(name), Rhs: rhs, Type: typ}
}

func AssignMember(lhs ast.Expr, member string, rhs ast.Expr) *ast.AssignMemberStmt {
	return &ast.AssignMemberStmt{Lhs: lhs, Member: member, Rhs: rhs}
}

func Return(e ast.Expr) *ast.ReturnStmt { return &ast.ReturnStmt{Expr: e} }

func Pass() *ast.PassStmt { return &ast.PassStmt{} }

func Break() *ast.BreakStmt { return &ast.BreakStmt{} }

func Continue() *ast.ContinueStmt { return &ast.ContinueStmt{} }

// `if cond: then else: els`; els may be nil.
func If(cond ast.Expr, then, els *ast.SuiteStmt) *ast.IfStmt {
	return &ast.IfStmt{Cond: cond, If: then, Else: els}
}

func While(cond ast.Expr, suite *ast.SuiteStmt) *ast.WhileStmt {
	return &ast.WhileStmt{Cond: cond, Suite: suite}
}

func For(v string, iter ast.Expr, suite *ast.SuiteStmt) *ast.ForStmt {
	return &ast.ForStmt{Var: v, Iter: iter, Suite: suite}
}

func Match(what ast.Expr, cases ...ast.MatchCase) *ast.MatchStmt {
	return &ast.MatchStmt{What: what, Cases: cases}
}

func Case(pattern, guard ast.Expr, suite *ast.SuiteStmt) ast.MatchCase {
	return ast.MatchCase{Pattern: pattern, Guard: guard, Suite: suite}
}

// Declarations

// Parameter: `name: typ`; typ may be nil.
func Param(name string, typ ast.Expr) ast.Param { return ast.Param{Name: name, Type: typ} }

// Parameter with a default value: `name: typ = def`
func ParamDefault(name string, typ, def ast.Expr) ast.Param {
	return ast.Param{Name: name, Type: typ, Default: def}
}

// Type parameter: `name: typ`; typ is nil or a static annotation.
func Generic(name string, typ ast.Expr) ast.Param {
	return ast.Param{Name: name, Type: typ, Status: ast.GenericParam}
}

// `*name`
func StarParam(name string) ast.Param { return ast.Param{Name: name, Star: 1} }

// `**name`
func KwStarParam(name string) ast.Param { return ast.Param{Name: name, Star: 2} }

// Function declaration: `def name(params) -> ret: suite`
func Func(name string, params []ast.Param, ret ast.Expr, suite ...ast.Stmt) *ast.FunctionStmt {
	return &ast.FunctionStmt{Name: name, NiceName: niceName(name), Params: params, Ret: ret, Suite: Suite(suite...)}
}

// Function implemented by the compiler.
func InternalFunc(name string, params []ast.Param, ret ast.Expr) *ast.FunctionStmt {
	return &ast.FunctionStmt{Name: name, NiceName: niceName(name), Params: params, Ret: ret, Attrs: ast.FuncInternal}
}

// Class declaration: `class name[generics]: fields`
func Class(name string, generics []ast.Param, fields []ast.Param, methods ...*ast.FunctionStmt) *ast.ClassStmt {
	return &ast.ClassStmt{Name: name, NiceName: niceName(name), Generics: generics, Fields: fields, Methods: methods}
}

// Record (tuple) class declaration: `@tuple class name[generics]: fields`
func Record(name string, generics []ast.Param, fields []ast.Param, methods ...*ast.FunctionStmt) *ast.ClassStmt {
	c := Class(name, generics, fields, methods...)
	c.Record = true
	return c
}

// Static type annotation: `Static[int]`
func StaticType(kind types.StaticKind) *ast.IndexExpr {
	return Index(TypeId("Static"), TypeId(kind.String()))
}

func niceName(name string) string {
	end := len(name)
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == ':' {
			end = i
			break
		}
	}
	for i := end - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[i+1 : end]
		}
	}
	return name[:end]
}

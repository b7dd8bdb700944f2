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

package codon

import (
	"github.com/pkg/errors"

	"github.com/airen3339/codon/ast"
	cs "github.com/airen3339/codon/construct"
	"github.com/airen3339/codon/types"
)

var magicNames = map[string]string{
	"+":  "add",
	"-":  "sub",
	"*":  "mul",
	"/":  "truediv",
	"//": "floordiv",
	"%":  "mod",
	"**": "pow",
	"@":  "matmul",
	"<":  "lt",
	"<=": "le",
	">":  "gt",
	">=": "ge",
	"==": "eq",
	"!=": "ne",
	"&":  "and",
	"|":  "or",
	"^":  "xor",
	"<<": "lshift",
	">>": "rshift",
}

var unaryMagicNames = map[string]string{
	"-": "__neg__",
	"+": "__pos__",
	"~": "__invert__",
}

func (tc *Typechecker) visitBinary(e *ast.BinaryExpr) (ExprRewrite, error) {
	var err error
	if e.Left, err = tc.transform(e.Left); err != nil {
		return unchanged(), err
	}
	if e.Op == "&&" || e.Op == "||" {
		return tc.visitLogical(e)
	}
	if e.Right, err = tc.transform(e.Right); err != nil {
		return unchanged(), err
	}

	lb, rb := e.Left.Base(), e.Right.Base()
	if lb.IsStatic() && rb.IsStatic() {
		if !lb.Static.Evaluated || !rb.Static.Evaluated {
			return deferred(), nil
		}
		lv, rv := lb.Static, rb.Static
		if lv.Kind == rv.Kind && types.HasStaticOp(types.StaticBinaryOps, lv.Kind, e.Op) {
			v, err := types.FoldBinary(e.Op, lv, rv)
			if errors.Is(err, types.ErrStaticDivZero) {
				return unchanged(), newError(ErrStaticDivZero, e.Src)
			}
			if err == nil {
				return replaced(literal(v, types.IsBoolOp(e.Op))), nil
			}
		}
	}

	lt, rt := e.Left.Type(), e.Right.Type()
	if lt == nil || rt == nil || types.UnboundOf(lt) != nil || types.UnboundOf(rt) != nil {
		return deferred(), nil
	}
	switch e.Op {
	case "is", "is not":
		var r ast.Expr
		if _, isNone := e.Right.(*ast.NoneExpr); isNone && !types.Is(lt, "Optional") {
			r = cs.Bool(false)
		} else {
			r = cs.Method(e.Left, "__is__", e.Right)
		}
		if e.Op == "is not" {
			r = cs.Unary("!", r)
		}
		return replaced(r), nil
	case "in", "not in":
		var r ast.Expr = cs.Method(e.Right, "__contains__", e.Left)
		if e.Op == "not in" {
			r = cs.Unary("!", r)
		}
		return replaced(r), nil
	}

	name, ok := magicNames[e.Op]
	if !ok {
		return unchanged(), newError(ErrCustom, e.Src, "unsupported operator '"+e.Op+"'")
	}
	lr := []ast.CallArg{{Value: e.Left}, {Value: e.Right}}
	if e.InPlace {
		if m := "__i" + name + "__"; tc.hasMethod(lt, m, lr) {
			return replaced(cs.Method(e.Left, m, e.Right)), nil
		}
	}
	if m := "__" + name + "__"; tc.hasMethod(lt, m, lr) {
		return replaced(cs.Method(e.Left, m, e.Right)), nil
	}
	if m := "__r" + name + "__"; tc.hasMethod(rt, m, []ast.CallArg{{Value: e.Right}, {Value: e.Left}}) {
		return replaced(cs.Method(e.Right, m, e.Left)), nil
	}
	return unchanged(), newError(ErrNoMethod, e.Src, types.TypeString(lt), "__"+name+"__", argString(lr))
}

// `a && b` and `a || b` short-circuit. A static left operand selects the result directly.
func (tc *Typechecker) visitLogical(e *ast.BinaryExpr) (ExprRewrite, error) {
	lb := e.Left.Base()
	if lb.IsStatic() {
		if !lb.Static.Evaluated {
			return deferred(), nil
		}
		truth := lb.Static.Truthy()
		if (e.Op == "&&" && !truth) || (e.Op == "||" && truth) {
			return replaced(cs.Bool(truth)), nil
		}
		var err error
		if e.Right, err = tc.transform(e.Right); err != nil {
			return unchanged(), err
		}
		if rb := e.Right.Base(); rb.IsStatic() {
			if !rb.Static.Evaluated {
				return deferred(), nil
			}
			return replaced(cs.Bool(rb.Static.Truthy())), nil
		}
		return replaced(cs.Method(e.Right, "__bool__")), nil
	}
	if e.Op == "&&" {
		return replaced(cs.IfExpr(e.Left, cs.Method(e.Right, "__bool__"), cs.Bool(false))), nil
	}
	return replaced(cs.IfExpr(e.Left, cs.Bool(true), cs.Method(e.Right, "__bool__"))), nil
}

// hasMethod reports whether the class of t has an overload of member matching args.
func (tc *Typechecker) hasMethod(t types.Type, member string, args []ast.CallArg) bool {
	c := types.ClassOf(t)
	if c == nil {
		return false
	}
	cls := tc.cache.Classes[c.Name]
	if cls == nil {
		return false
	}
	root, ok := cls.Methods[member]
	if !ok {
		return false
	}
	return tc.bestOverload(tc.cache.Overloads[root], args) != ""
}

func (tc *Typechecker) visitUnary(e *ast.UnaryExpr) (ExprRewrite, error) {
	var err error
	if e.Expr, err = tc.transform(e.Expr); err != nil {
		return unchanged(), err
	}
	b := e.Expr.Base()
	if b.IsStatic() {
		if !b.Static.Evaluated {
			return deferred(), nil
		}
		if types.HasStaticOp(types.StaticUnaryOps, b.Static.Kind, e.Op) {
			v, err := types.FoldUnary(e.Op, b.Static)
			if err == nil {
				return replaced(literal(v, e.Op == "!")), nil
			}
		}
	}
	t := e.Expr.Type()
	if t == nil || types.UnboundOf(t) != nil {
		return deferred(), nil
	}
	if e.Op == "!" {
		if types.Is(t, "bool") {
			return replaced(cs.Method(e.Expr, "__invert__")), nil
		}
		return replaced(cs.Method(cs.Method(e.Expr, "__bool__"), "__invert__")), nil
	}
	m, ok := unaryMagicNames[e.Op]
	if !ok {
		return unchanged(), newError(ErrCustom, e.Src, "unsupported operator '"+e.Op+"'")
	}
	return replaced(cs.Method(e.Expr, m)), nil
}

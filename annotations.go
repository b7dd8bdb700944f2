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
	"fortio.org/safecast"

	"github.com/airen3339/codon/ast"
	cs "github.com/airen3339/codon/construct"
	"github.com/airen3339/codon/types"
)

// staticAnnotation returns the kind of a `Static[int]` or `Static[str]` annotation.
func staticAnnotation(e ast.Expr) types.StaticKind {
	var target, param ast.Expr
	switch e := e.(type) {
	case *ast.IndexExpr:
		target, param = e.Expr, e.Index
	case *ast.InstantiateExpr:
		if len(e.Params) != 1 {
			return types.NotStatic
		}
		target, param = e.Expr, e.Params[0]
	default:
		return types.NotStatic
	}
	id, ok := target.(*ast.IdExpr)
	if !ok || id.Value != "Static" {
		return types.NotStatic
	}
	if p, ok := param.(*ast.IdExpr); ok {
		switch p.Value {
		case "int":
			return types.StaticInt
		case "str":
			return types.StaticStr
		}
	}
	return types.NotStatic
}

// transformType evaluates a type annotation of a declaration. The declaration is left
// unchanged; a static annotation yields an unbound static type-variable.
func (tc *Typechecker) transformType(e ast.Expr) (types.Type, error) {
	if kind := staticAnnotation(e); kind != types.NotStatic {
		return tc.ctx.newStaticUnbound(kind), nil
	}
	if _, ok := e.(*ast.NoneExpr); ok {
		return tc.ctx.builtin(types.NoneName), nil
	}
	e = ast.CloneExpr(e, true)
	return tc.typeOrStatic(&e)
}

// typeOrStatic transforms a type expression (or a static value in a generic position) and
// returns the type it denotes.
func (tc *Typechecker) typeOrStatic(slot *ast.Expr) (types.Type, error) {
	if _, ok := (*slot).(*ast.NoneExpr); ok {
		return tc.ctx.builtin(types.NoneName), nil
	}
	e, err := tc.transform(*slot)
	if err != nil {
		return nil, err
	}
	*slot = e
	if e.Base().HasAttr(ast.AttrType) {
		return e.Type(), nil
	}
	st := e.Base().Static
	switch {
	case st.Evaluated && st.Kind == types.StaticInt:
		return types.NewStaticInt(st.Int), nil
	case st.Evaluated && st.Kind == types.StaticStr:
		return types.NewStaticStr(st.Str), nil
	case st.Kind != types.NotStatic:
		return tc.staticTerm(e, st.Kind)
	}
	return nil, newError(ErrExpectedType, e.Base().Src, ast.ExprString(e))
}

// staticTerm builds an unevaluated static over the static generics an expression refers to.
func (tc *Typechecker) staticTerm(e ast.Expr, kind types.StaticKind) (types.Type, error) {
	var generics []types.Generic
	var build func(ast.Expr) (types.StaticTerm, error)
	build = func(e ast.Expr) (types.StaticTerm, error) {
		if v, ok := staticValue(e); ok {
			return types.TermLit{Value: v}, nil
		}
		switch e := e.(type) {
		case *ast.IdExpr:
			if l := types.UnboundOf(e.Type()); l != nil && l.Static != types.NotStatic {
				generics = append(generics, types.Generic{Name: e.Value, ID: l.ID(), Type: l})
				return types.TermRef{Name: e.Value}, nil
			}
		case *ast.UnaryExpr:
			x, err := build(e.Expr)
			if err != nil {
				return nil, err
			}
			return types.TermUnary{Op: e.Op, X: x}, nil
		case *ast.BinaryExpr:
			x, err := build(e.Left)
			if err != nil {
				return nil, err
			}
			y, err := build(e.Right)
			if err != nil {
				return nil, err
			}
			return types.TermBinary{Op: e.Op, X: x, Y: y}, nil
		case *ast.IfExpr:
			c, err := build(e.Cond)
			if err != nil {
				return nil, err
			}
			x, err := build(e.Then)
			if err != nil {
				return nil, err
			}
			y, err := build(e.Else)
			if err != nil {
				return nil, err
			}
			return types.TermCond{Cond: c, Then: x, Else: y}, nil
		}
		return nil, newError(ErrBadStatic, e.Base().Src)
	}
	term, err := build(e)
	if err != nil {
		return nil, err
	}
	if ref, ok := term.(types.TermRef); ok && len(generics) == 1 && ref.Name == generics[0].Name {
		return generics[0].Type, nil
	}
	return types.NewStaticExpr(kind, term, generics), nil
}

// `T[params...]`
func (tc *Typechecker) visitInstantiate(e *ast.InstantiateExpr) (ExprRewrite, error) {
	if id, ok := e.Expr.(*ast.IdExpr); ok {
		switch id.Value {
		case "Static":
			return unchanged(), newError(ErrUnexpectedType, e.Src, ast.ExprString(e))
		case "Union":
			return tc.visitUnionType(e)
		case "Callable":
			return tc.visitCallableType(e)
		case types.TupleName:
			name, err := tc.tupleClass(len(e.Params))
			if err != nil {
				return unchanged(), err
			}
			id.Value = name
		}
	}
	var err error
	if e.Expr, err = tc.transform(e.Expr); err != nil {
		return unchanged(), err
	}
	if !e.Expr.Base().HasAttr(ast.AttrType) {
		return unchanged(), newError(ErrExpectedType, e.Src, ast.ExprString(e.Expr))
	}
	t := e.Expr.Type()
	c := types.ClassOf(t)
	if c == nil {
		return deferred(), nil
	}
	if e.Type() == nil {
		if len(c.Generics) != len(e.Params) {
			return unchanged(), newError(ErrClassGenericMismatch, e.Src, c.NiceName, len(c.Generics), len(e.Params))
		}
		for i := range e.Params {
			pt, err := tc.typeOrStatic(&e.Params[i])
			if err != nil {
				return unchanged(), err
			}
			if err := tc.unify(c.Generics[i].Type, pt, e.Params[i].Base().Src); err != nil {
				return unchanged(), err
			}
		}
		e.SetType(t)
		e.SetAttr(ast.AttrType)
	}
	if done, err := tc.transformAll(e.Params); err != nil || !done {
		return unchanged(), err
	}
	return tc.finish(e)
}

// `Union[A, B]`
func (tc *Typechecker) visitUnionType(e *ast.InstantiateExpr) (ExprRewrite, error) {
	if e.Type() == nil {
		u := &types.Union{Sealed: true}
		for i := range e.Params {
			pt, err := tc.typeOrStatic(&e.Params[i])
			if err != nil {
				return unchanged(), err
			}
			u.Types = append(u.Types, pt)
		}
		e.SetType(u)
		e.SetAttr(ast.AttrType)
	}
	if done, err := tc.transformAll(e.Params); err != nil || !done {
		return unchanged(), err
	}
	return tc.finish(e)
}

// `Callable[[A, B], R]`
func (tc *Typechecker) visitCallableType(e *ast.InstantiateExpr) (ExprRewrite, error) {
	if e.Type() == nil {
		if len(e.Params) != 2 {
			return unchanged(), newError(ErrClassGenericMismatch, e.Src, "Callable", 2, len(e.Params))
		}
		args, ok := e.Params[0].(*ast.ListExpr)
		if !ok {
			return unchanged(), newError(ErrExpectedType, e.Src, ast.ExprString(e.Params[0]))
		}
		trait := &types.CallableTrait{}
		for i := range args.Items {
			at, err := tc.typeOrStatic(&args.Items[i])
			if err != nil {
				return unchanged(), err
			}
			trait.Args = append(trait.Args, at)
		}
		ret, err := tc.typeOrStatic(&e.Params[1])
		if err != nil {
			return unchanged(), err
		}
		trait.Ret = ret
		l := tc.ctx.newUnbound()
		l.Trait = trait
		e.SetType(l)
		e.SetAttr(ast.AttrType)
		e.Base().SetDone()
	}
	return unchanged(), nil
}

// `a[i]`
func (tc *Typechecker) visitIndex(e *ast.IndexExpr) (ExprRewrite, error) {
	var err error
	if e.Expr, err = tc.transform(e.Expr); err != nil {
		return unchanged(), err
	}
	if e.Expr.Base().HasAttr(ast.AttrType) {
		if tup, ok := e.Index.(*ast.TupleExpr); ok {
			return replaced(cs.Instantiate(e.Expr, tup.Items...)), nil
		}
		return replaced(cs.Instantiate(e.Expr, e.Index)), nil
	}
	t := e.Expr.Type()
	if t == nil || types.UnboundOf(t) != nil {
		return deferred(), nil
	}
	if rec := types.RecordOf(t); rec != nil && types.IsTuple(t) {
		if sl, ok := e.Index.(*ast.SliceExpr); ok {
			return tc.sliceRecord(e, sl, rec)
		}
		if e.Index, err = tc.transform(e.Index); err != nil {
			return unchanged(), err
		}
		if v, ok := staticValue(e.Index); ok && v.Kind == types.StaticInt {
			n := len(rec.Args)
			i, err := safecast.Conv[int](v.Int)
			if err != nil {
				return unchanged(), newError(ErrTupleRange, e.Src, v.Int, n)
			}
			if i < 0 {
				i += n
			}
			if i < 0 || i >= n {
				return unchanged(), newError(ErrTupleRange, e.Src, v.Int, n)
			}
			return replaced(cs.Dot(e.Expr, tc.fieldName(rec, i))), nil
		}
		if e.Index.Base().IsStatic() && !e.Index.Base().Static.Evaluated {
			return deferred(), nil
		}
	}
	return replaced(cs.Method(e.Expr, "__getitem__", e.Index)), nil
}

// fieldName returns the name of the i-th field of a record.
func (tc *Typechecker) fieldName(rec *types.Record, i int) string {
	if cls, ok := tc.cache.Classes[rec.Name]; ok && i < len(cls.Fields) {
		return cls.Fields[i].Name
	}
	return tupleField(i)
}

// `t[start:stop:step]` with static bounds
func (tc *Typechecker) sliceRecord(e *ast.IndexExpr, sl *ast.SliceExpr, rec *types.Record) (ExprRewrite, error) {
	n := len(rec.Args)
	bounds := [3]*int{}
	for i, slot := range []*ast.Expr{&sl.Start, &sl.Stop, &sl.Step} {
		if *slot == nil {
			continue
		}
		var err error
		if *slot, err = tc.transform(*slot); err != nil {
			return unchanged(), err
		}
		v, ok := staticValue(*slot)
		if !ok || v.Kind != types.StaticInt {
			if (*slot).Base().IsStatic() {
				return deferred(), nil
			}
			return unchanged(), newError(ErrExpectedStatic, (*slot).Base().Src)
		}
		b, err := safecast.Conv[int](v.Int)
		if err != nil {
			return unchanged(), newError(ErrTupleRange, e.Src, v.Int, n)
		}
		bounds[i] = &b
	}
	start, stop, step := sliceIndices(n, bounds[0], bounds[1], bounds[2])
	if step == 0 {
		return unchanged(), newError(ErrStaticDivZero, e.Src)
	}
	var items []ast.Expr
	for i := start; (step > 0 && i < stop) || (step < 0 && i > stop); i += step {
		items = append(items, cs.Dot(ast.CloneExpr(e.Expr, false), tc.fieldName(rec, i)))
	}
	return replaced(cs.Tuple(items...)), nil
}

// sliceIndices clamps slice bounds against a sequence of length n, as Python does.
func sliceIndices(n int, start, stop, step *int) (int, int, int) {
	st := 1
	if step != nil {
		st = *step
	}
	if st == 0 {
		return 0, 0, 0
	}
	clamp := func(p *int, def int) int {
		if p == nil {
			return def
		}
		i := *p
		if i < 0 {
			i += n
		}
		lo, hi := 0, n
		if st < 0 {
			lo, hi = -1, n-1
		}
		if i < lo {
			i = lo
		}
		if i > hi {
			i = hi
		}
		return i
	}
	if st > 0 {
		return clamp(start, 0), clamp(stop, n), st
	}
	return clamp(start, n-1), clamp(stop, -1), st
}

func (tc *Typechecker) visitSlice(e *ast.SliceExpr) (ExprRewrite, error) {
	return unchanged(), newError(ErrUnexpectedType, e.Src, ast.ExprString(e))
}

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
	"strings"

	"github.com/airen3339/codon/ast"
	cs "github.com/airen3339/codon/construct"
	"github.com/airen3339/codon/types"
)

func (tc *Typechecker) visitNone(e *ast.NoneExpr) (ExprRewrite, error) {
	if e.Type() == nil {
		t := tc.ctx.builtin("Optional")
		if l := types.UnboundOf(types.ClassOf(t).Generics[0].Type); l != nil {
			l.Default = tc.ctx.builtin(types.NoneName)
		}
		e.SetType(t)
	}
	return tc.finish(e)
}

func (tc *Typechecker) visitLiteral(e ast.Expr, v types.StaticValue, class string) (ExprRewrite, error) {
	if e.Type() == nil {
		e.SetType(tc.ctx.builtin(class))
	}
	if v.IsStatic() {
		e.Base().Static = v
	}
	return tc.finish(e)
}

// literal returns the node of an evaluated static value.
func literal(v types.StaticValue, asBool bool) ast.Expr {
	var e ast.Expr
	switch {
	case v.Kind == types.StaticStr:
		e = cs.Str(v.Str)
	case asBool:
		e = cs.Bool(v.Int != 0)
	default:
		e = cs.Int(v.Int)
	}
	return e
}

// staticValue returns the evaluated static value of a transformed expression.
func staticValue(e ast.Expr) (types.StaticValue, bool) {
	if e == nil {
		return types.StaticValue{}, false
	}
	v := e.Base().Static
	return v, v.Evaluated
}

func (tc *Typechecker) visitId(e *ast.IdExpr) (ExprRewrite, error) {
	ctx := tc.ctx
	if e.Type() == nil {
		item := ctx.Find(e.Value)
		if item == nil {
			ok, err := tc.generateStub(e.Value)
			if err != nil {
				return unchanged(), err
			}
			if ok {
				item = ctx.Find(e.Value)
			}
		}
		if item == nil {
			return unchanged(), newError(ErrIDNotFound, e.Src, tc.cache.Rev(e.Value))
		}
		switch item.Kind {
		case TypeItem:
			e.SetAttr(ast.AttrType)
			e.SetType(ctx.instantiate(item.Type))
		case GenericItem:
			if types.StaticKindOf(item.Type) == types.NotStatic {
				e.SetAttr(ast.AttrType)
			}
			e.SetType(item.Type)
		case FuncItem:
			fn := item.Type
			if names := tc.cache.Overloads[e.Value]; len(names) > 1 {
				name, err := tc.dispatchFunction(e.Value)
				if err != nil {
					return unchanged(), err
				}
				fn = tc.cache.Functions[name].Type
			}
			e.Value = fn.(*types.Func).Name
			e.SetType(ctx.instantiate(fn))
		default:
			e.SetType(item.Type)
		}
	}

	t := e.Type()
	if kind := types.StaticKindOf(t); kind != types.NotStatic {
		if st, ok := t.(*types.Static); ok {
			if v, ok := st.Evaluate(); ok {
				return replaced(literal(v, false)), nil
			}
		}
		e.Static = types.StaticValue{Kind: kind}
		return deferred(), nil
	}
	return tc.finish(e)
}

// overloadRef refers to a chosen member of an overload set. The reference is typed, so
// it is not redirected to the dispatch wrapper.
func (tc *Typechecker) overloadRef(name string) *ast.IdExpr {
	id := cs.Id(name)
	id.SetType(tc.ctx.instantiate(tc.cache.Functions[name].Type))
	return id
}

// dispatchFunction returns the canonical name of the wrapper which forwards to the best
// overload of root at each call.
func (tc *Typechecker) dispatchFunction(root string) (string, error) {
	name := root + ":dispatch"
	if _, ok := tc.cache.Functions[name]; ok {
		return name, nil
	}
	fn := cs.Func(name, []ast.Param{cs.StarParam("args"), cs.KwStarParam("kwargs")}, nil,
		cs.Return(cs.CallArgs(cs.Id(root), cs.Arg("", cs.Star(cs.Id("args"))), cs.Arg("", cs.KwStar(cs.Id("kwargs"))))))
	fn.Attrs |= ast.FuncAutoGenerated
	fn.NiceName = tc.cache.Rev(root)
	if _, err := tc.registerFunction(fn, nil); err != nil {
		return "", err
	}
	return name, nil
}

func (tc *Typechecker) visitEllipsis(e *ast.EllipsisExpr) (ExprRewrite, error) {
	if e.Type() == nil {
		e.SetType(tc.ctx.builtin("ellipsis"))
	}
	return tc.finish(e)
}

func (tc *Typechecker) visitStmtExpr(e *ast.StmtExpr) (ExprRewrite, error) {
	done := true
	for i := range e.Stmts {
		var err error
		if e.Stmts[i], err = tc.transformStmt(e.Stmts[i]); err != nil {
			return unchanged(), err
		}
		done = done && e.Stmts[i].Base().Done()
	}
	var err error
	if e.Expr, err = tc.transform(e.Expr); err != nil {
		return unchanged(), err
	}
	if e.Expr.Type() == nil {
		return deferred(), nil
	}
	if err := tc.assign(e, e.Expr.Type()); err != nil {
		return unchanged(), err
	}
	if !done || !e.Expr.Base().Done() {
		return unchanged(), nil
	}
	if v, ok := staticValue(e.Expr); ok && tempBindings(e.Stmts) {
		return replaced(literal(v, types.Is(e.Expr.Type(), "bool"))), nil
	}
	return tc.finish(e)
}

// tempBindings reports whether stmts only bind generated temporaries.
func tempBindings(stmts []ast.Stmt) bool {
	for _, s := range stmts {
		a, ok := s.(*ast.AssignStmt)
		if !ok {
			return false
		}
		id, ok := a.Lhs.(*ast.IdExpr)
		if !ok || !strings.HasPrefix(id.Value, "%_") {
			return false
		}
	}
	return true
}

// `(x := expr)`
func (tc *Typechecker) visitAssignExpr(e *ast.AssignExpr) (ExprRewrite, error) {
	var err error
	if e.Expr, err = tc.transform(e.Expr); err != nil {
		return unchanged(), err
	}
	if e.Expr.Type() == nil {
		return deferred(), nil
	}
	if err := tc.bindVar(e.Var, e.Expr.Type(), e.Src); err != nil {
		return unchanged(), err
	}
	if err := tc.assign(e, e.Expr.Type()); err != nil {
		return unchanged(), err
	}
	if !e.Expr.Base().Done() {
		return unchanged(), nil
	}
	return tc.finish(e)
}

// bindVar adds a variable binding, or unifies the type of a binding of the same
// realization.
func (tc *Typechecker) bindVar(name string, t types.Type, src types.SrcInfo) error {
	if v, ok := tc.ctx.scope.Get(name); ok {
		if item := v.(*Item); item.Kind == VarItem && item.depth == len(tc.ctx.bases) {
			return tc.unify(item.Type, t, src)
		}
	}
	tc.ctx.Add(VarItem, name, t)
	return nil
}

func (tc *Typechecker) visitDot(e *ast.DotExpr) (ExprRewrite, error) {
	var err error
	if e.Expr, err = tc.transform(e.Expr); err != nil {
		return unchanged(), err
	}
	if e.Expr.Base().HasAttr(ast.AttrType) {
		return tc.visitTypeMember(e)
	}
	t := e.Expr.Type()
	if t == nil || types.UnboundOf(t) != nil {
		return deferred(), nil
	}
	if fn, ok := t.(*types.Func); ok {
		if e.Member == "__name__" {
			return replaced(cs.Str(fn.NiceName)), nil
		}
		return unchanged(), newError(ErrDotNoAttr, e.Src, types.TypeString(t), e.Member)
	}
	c := types.ClassOf(t)
	if c == nil {
		return unchanged(), newError(ErrDotNoAttr, e.Src, types.TypeString(t), e.Member)
	}
	cls := tc.cache.Classes[c.Name]
	if cls == nil {
		return deferred(), nil
	}

	if e.Member == "__class__" {
		return replaced(cs.Call(cs.Id("type"), e.Expr)), nil
	}
	if f, _, ok := cls.Field(e.Member); ok {
		if e.Type() == nil {
			e.SetType(tc.ctx.instantiateMember(f.Type, t))
		}
		if !e.Expr.Base().Done() {
			return unchanged(), nil
		}
		return tc.finish(e)
	}
	for _, g := range c.Generics {
		if g.Name == e.Member || g.NiceName == e.Member {
			return replaced(genericRef(g)), nil
		}
	}
	if root, ok := cls.Methods[e.Member]; ok {
		names := tc.cache.Overloads[root]
		if len(names) == 1 {
			if fn := tc.cache.Functions[names[0]]; fn.Ast.HasAttr(ast.FuncProperty) {
				return replaced(cs.Call(cs.Id(names[0]), e.Expr)), nil
			}
			return replaced(cs.Call(cs.Id(names[0]), e.Expr, cs.Ellipsis())), nil
		}
		return replaced(cs.Call(cs.Id(root), e.Expr, cs.Ellipsis())), nil
	}
	switch c.Name {
	case "Optional":
		return replaced(cs.Dot(cs.Call(cs.Id("unwrap"), e.Expr), e.Member)), nil
	case "pyobj":
		return replaced(cs.Method(e.Expr, "_getattr", cs.Str(e.Member))), nil
	}
	return unchanged(), newError(ErrDotNoAttr, e.Src, types.TypeString(t), e.Member)
}

// genericRef returns a node denoting the bound type (or static value) of a generic.
func genericRef(g types.Generic) ast.Expr {
	id := cs.Id(g.Name)
	id.SetType(g.Type)
	if types.StaticKindOf(g.Type) == types.NotStatic {
		id.SetAttr(ast.AttrType)
	}
	return id
}

// `Class.member`
func (tc *Typechecker) visitTypeMember(e *ast.DotExpr) (ExprRewrite, error) {
	t := e.Expr.Type()
	c := types.ClassOf(t)
	if c == nil {
		return deferred(), nil
	}
	if e.Member == "__name__" {
		if !types.CanRealize(t) {
			return deferred(), nil
		}
		return replaced(cs.Str(types.TypeString(t))), nil
	}
	cls := tc.cache.Classes[c.Name]
	if cls != nil {
		if root, ok := cls.Methods[e.Member]; ok {
			names := tc.cache.Overloads[root]
			if len(names) == 1 {
				return replaced(cs.Id(names[0])), nil
			}
			return replaced(cs.Id(root)), nil
		}
	}
	for _, g := range c.Generics {
		if g.Name == e.Member || g.NiceName == e.Member {
			return replaced(genericRef(g)), nil
		}
	}
	return unchanged(), newError(ErrDotNoAttr, e.Src, types.TypeString(t), e.Member)
}

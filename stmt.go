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
	"github.com/airen3339/codon/ast"
	cs "github.com/airen3339/codon/construct"
	"github.com/airen3339/codon/types"
)

func (tc *Typechecker) visitSuite(s *ast.SuiteStmt) (StmtRewrite, error) {
	done := true
	for i := range s.Stmts {
		var err error
		if s.Stmts[i], err = tc.transformStmt(s.Stmts[i]); err != nil {
			return stmtUnchanged(), err
		}
		done = done && s.Stmts[i].Base().Done()
	}
	if done {
		s.SetDone()
	}
	return stmtUnchanged(), nil
}

func (tc *Typechecker) visitExprStmt(s *ast.ExprStmt) (StmtRewrite, error) {
	var err error
	if s.Expr, err = tc.transform(s.Expr); err != nil {
		return stmtUnchanged(), err
	}
	if ast.IsDone(s.Expr) {
		s.SetDone()
	}
	return stmtUnchanged(), nil
}

// `x: T = rhs`, `a[i] = rhs` and `a.b = rhs`
func (tc *Typechecker) visitAssign(s *ast.AssignStmt) (StmtRewrite, error) {
	switch lhs := s.Lhs.(type) {
	case *ast.IndexExpr:
		return stmtReplaced(cs.ExprStmt(cs.Method(lhs.Expr, "__setitem__", lhs.Index, s.Rhs))), nil
	case *ast.DotExpr:
		return stmtReplaced(cs.AssignMember(lhs.Expr, lhs.Member, s.Rhs)), nil
	case *ast.IdExpr:
		if s.Type != nil {
			if kind := staticAnnotation(s.Type); kind != types.NotStatic {
				return tc.assignStatic(s, lhs, kind)
			}
		}
		return tc.assignVar(s, lhs)
	}
	return stmtUnchanged(), newError(ErrUnexpectedType, s.Src, ast.ExprString(s.Lhs))
}

func (tc *Typechecker) assignVar(s *ast.AssignStmt, lhs *ast.IdExpr) (StmtRewrite, error) {
	if s.Type != nil && lhs.Type() == nil {
		t, err := tc.transformType(s.Type)
		if err != nil {
			return stmtUnchanged(), err
		}
		lhs.SetType(t)
		if err := tc.bindVar(lhs.Value, t, s.Src); err != nil {
			return stmtUnchanged(), err
		}
	}
	var err error
	if s.Rhs, err = tc.transform(s.Rhs); err != nil {
		return stmtUnchanged(), err
	}
	if lhs.Type() != nil {
		if s.Rhs, err = tc.wrapExpr(s.Rhs, lhs.Type()); err != nil {
			return stmtUnchanged(), err
		}
	}
	rt := s.Rhs.Type()
	if rt == nil {
		return stmtDeferred(), nil
	}
	if lhs.Type() == nil {
		lhs.SetType(rt)
		if err := tc.bindVar(lhs.Value, rt, s.Src); err != nil {
			return stmtUnchanged(), err
		}
	} else if err := tc.unify(lhs.Type(), rt, s.Src); err != nil {
		return stmtUnchanged(), err
	}
	if !lhs.Done() {
		if _, err := tc.finish(lhs); err != nil {
			return stmtUnchanged(), err
		}
	}
	if lhs.Done() && ast.IsDone(s.Rhs) {
		s.SetDone()
	}
	return stmtUnchanged(), nil
}

// `N: Static[int] = 3` binds N to a static value.
func (tc *Typechecker) assignStatic(s *ast.AssignStmt, lhs *ast.IdExpr, kind types.StaticKind) (StmtRewrite, error) {
	var err error
	if s.Rhs, err = tc.transform(s.Rhs); err != nil {
		return stmtUnchanged(), err
	}
	b := s.Rhs.Base()
	if !b.IsStatic() || b.Static.Kind != kind {
		return stmtUnchanged(), newError(ErrExpectedStatic, b.Src)
	}
	if !b.Static.Evaluated {
		return stmtDeferred(), nil
	}
	var st types.Type
	if kind == types.StaticInt {
		st = types.NewStaticInt(b.Static.Int)
	} else {
		st = types.NewStaticStr(b.Static.Str)
	}
	tc.ctx.Add(VarItem, lhs.Value, st)
	lhs.SetType(st)
	lhs.Static = b.Static
	lhs.SetDone()
	s.SetDone()
	return stmtUnchanged(), nil
}

// `obj.member = rhs` for a field of obj.
func (tc *Typechecker) visitAssignMember(s *ast.AssignMemberStmt) (StmtRewrite, error) {
	var err error
	if s.Lhs, err = tc.transform(s.Lhs); err != nil {
		return stmtUnchanged(), err
	}
	t := s.Lhs.Type()
	if t == nil || types.UnboundOf(t) != nil {
		return stmtDeferred(), nil
	}
	c := types.ClassOf(t)
	var cls *Class
	if c != nil {
		cls = tc.cache.Classes[c.Name]
	}
	if cls == nil {
		return stmtUnchanged(), newError(ErrDotNoAttr, s.Src, types.TypeString(t), s.Member)
	}
	f, _, ok := cls.Field(s.Member)
	if !ok {
		if c.Name == "Optional" {
			s.Lhs = cs.Call(cs.Id("unwrap"), s.Lhs)
			return stmtUnchanged(), nil
		}
		return stmtUnchanged(), newError(ErrDotNoAttr, s.Src, types.TypeString(t), s.Member)
	}
	ft := tc.ctx.instantiateMember(f.Type, t)
	if s.Rhs, err = tc.transform(s.Rhs); err != nil {
		return stmtUnchanged(), err
	}
	if s.Rhs, err = tc.wrapExpr(s.Rhs, ft); err != nil {
		return stmtUnchanged(), err
	}
	if rt := s.Rhs.Type(); rt != nil {
		if err := tc.unify(ft, rt, s.Src); err != nil {
			return stmtUnchanged(), err
		}
	}
	if ast.IsDone(s.Lhs) && ast.IsDone(s.Rhs) {
		s.SetDone()
	}
	return stmtUnchanged(), nil
}

// `return expr` unifies with the return type of the enclosing function.
func (tc *Typechecker) visitReturn(s *ast.ReturnStmt) (StmtRewrite, error) {
	ret := tc.ctx.base().Ret
	if _, ok := s.Expr.(*ast.NoneExpr); ok && ret != nil && !types.Is(ret, "Optional") {
		s.Expr = nil
	}
	if s.Expr == nil {
		if ret != nil {
			if err := tc.unify(ret, tc.ctx.builtin(types.NoneName), s.Src); err != nil {
				return stmtUnchanged(), err
			}
		}
		s.SetDone()
		return stmtUnchanged(), nil
	}
	var err error
	if s.Expr, err = tc.transform(s.Expr); err != nil {
		return stmtUnchanged(), err
	}
	if ret != nil {
		if s.Expr, err = tc.wrapExpr(s.Expr, ret); err != nil {
			return stmtUnchanged(), err
		}
		if t := s.Expr.Type(); t != nil {
			if err := tc.unify(ret, t, s.Src); err != nil {
				return stmtUnchanged(), err
			}
		}
	}
	if ast.IsDone(s.Expr) {
		s.SetDone()
	}
	return stmtUnchanged(), nil
}

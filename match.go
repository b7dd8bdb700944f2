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
)

// visitMatch lowers a match statement into a chain of conditionals in a loop which runs
// once; each case ends with a break.
//
//	match what:               v = what
//	  case 1: a        =>     while True:
//	  case (x, _): b            if isinstance(v, int) && v == 1: a; break
//	                            if isinstance(v, Tuple) && staticlen(v) == 2: x = v[0]; b; break
//	                            break
func (tc *Typechecker) visitMatch(s *ast.MatchStmt) (StmtRewrite, error) {
	v := tc.cache.GetTemporaryVar("match")
	var body []ast.Stmt
	for _, c := range s.Cases {
		for i, alt := range alternatives(c.Pattern) {
			suite, guard := c.Suite, c.Guard
			if i > 0 {
				suite, guard = ast.CloneSuite(suite, true), ast.CloneExpr(guard, true)
			}
			cond, binds, err := tc.pattern(v, alt)
			if err != nil {
				return stmtUnchanged(), err
			}
			stmts := append([]ast.Stmt{}, suite.Stmts...)
			stmts = append(stmts, cs.Break())
			if guard != nil {
				stmts = []ast.Stmt{cs.If(guard, cs.Suite(stmts...), nil)}
			}
			stmts = append(binds, stmts...)
			if cond == nil {
				body = append(body, stmts...)
			} else {
				body = append(body, cs.If(cond, cs.Suite(stmts...), nil))
			}
		}
	}
	body = append(body, cs.Break())
	return stmtReplaced(cs.Suite(
		cs.Assign(v, s.What),
		cs.While(cs.Bool(true), cs.Suite(body...)),
	)), nil
}

// alternatives splits an or-pattern `a | b`.
func alternatives(p ast.Expr) []ast.Expr {
	if b, ok := p.(*ast.BinaryExpr); ok && b.Op == "|" {
		return append(alternatives(b.Left), alternatives(b.Right)...)
	}
	return []ast.Expr{p}
}

func and(conds ...ast.Expr) ast.Expr {
	var r ast.Expr
	for _, c := range conds {
		switch {
		case c == nil:
		case r == nil:
			r = c
		default:
			r = cs.Binary(r, "&&", c)
		}
	}
	return r
}

func isWildcard(p ast.Expr) bool {
	id, ok := p.(*ast.IdExpr)
	return ok && id.Value == "_"
}

// pattern returns the test of the variable v against a pattern, or nil if the pattern
// always matches, and the assignments of its bindings.
func (tc *Typechecker) pattern(v string, p ast.Expr) (ast.Expr, []ast.Stmt, error) {
	typed := func(class string, value ast.Expr) ast.Expr {
		return and(cs.Call(cs.Id("isinstance"), cs.Id(v), cs.TypeId(class)), cs.Binary(cs.Id(v), "==", value))
	}
	switch p := p.(type) {
	case *ast.IdExpr:
		if p.Value == "_" {
			return nil, nil, nil
		}
	case *ast.BoolExpr:
		return typed("bool", p), nil, nil
	case *ast.IntExpr:
		return typed("int", p), nil, nil
	case *ast.StringExpr:
		return typed("str", p), nil, nil
	case *ast.RangeExpr:
		return and(
			cs.Call(cs.Id("isinstance"), cs.Id(v), cs.TypeId("int")),
			cs.Binary(cs.Id(v), ">=", p.Start),
			cs.Binary(cs.Id(v), "<=", p.Stop),
		), nil, nil
	case *ast.AssignExpr:
		cond, binds, err := tc.pattern(v, p.Expr)
		if err != nil {
			return nil, nil, err
		}
		return cond, append([]ast.Stmt{cs.Assign(p.Var, cs.Id(v))}, binds...), nil
	case *ast.TupleExpr:
		return tc.sequencePattern(v, p.Items, p.Src, false)
	case *ast.ListExpr:
		return tc.sequencePattern(v, p.Items, p.Src, true)
	}
	return cs.IfExpr(
		cs.Call(cs.Id("hasattr"), cs.Id(v), cs.Str("__match__")),
		cs.Method(cs.Id(v), "__match__", p),
		cs.Binary(cs.Id(v), "==", p),
	), nil, nil
}

// sequencePattern tests the length of a tuple or list and each of its items. At most one
// ellipsis matches any number of items.
func (tc *Typechecker) sequencePattern(v string, items []ast.Expr, src ast.SrcInfo, list bool) (ast.Expr, []ast.Stmt, error) {
	ellipsis := -1
	for i, item := range items {
		if _, ok := item.(*ast.EllipsisExpr); ok {
			if ellipsis >= 0 {
				return nil, nil, newError(ErrMatchMultiEllipsis, src)
			}
			ellipsis = i
		}
	}
	n := int64(len(items))
	var length ast.Expr
	var conds []ast.Expr
	if list {
		conds = append(conds, cs.Call(cs.Id("isinstance"), cs.Id(v), cs.TypeId("List")))
		length = cs.Call(cs.Id("len"), cs.Id(v))
	} else {
		conds = append(conds, cs.Call(cs.Id("isinstance"), cs.Id(v), cs.TypeId("Tuple")))
		length = cs.Call(cs.Id("staticlen"), cs.Id(v))
	}
	if ellipsis >= 0 {
		conds = append(conds, cs.Binary(length, ">=", cs.Int(n-1)))
	} else {
		conds = append(conds, cs.Binary(length, "==", cs.Int(n)))
	}

	var binds []ast.Stmt
	for i, item := range items {
		if i == ellipsis || isWildcard(item) {
			continue
		}
		idx := int64(i)
		if ellipsis >= 0 && i > ellipsis {
			idx = int64(i) - n
		}
		elem := tc.cache.GetTemporaryVar("elem")
		cond, itemBinds, err := tc.pattern(elem, item)
		if err != nil {
			return nil, nil, err
		}
		get := cs.Index(cs.Id(v), cs.Int(idx))
		if cond != nil {
			conds = append(conds, cs.StmtExpr(cond, cs.Assign(elem, get)))
		}
		if len(itemBinds) > 0 {
			binds = append(binds, cs.Assign(elem, ast.CloneExpr(get, true)))
			binds = append(binds, itemBinds...)
		}
	}
	return and(conds...), binds, nil
}

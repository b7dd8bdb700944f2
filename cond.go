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

// condition transforms a condition and wraps a non-bool condition in `__bool__`. It
// reports false while the condition cannot be checked yet.
func (tc *Typechecker) condition(slot *ast.Expr) (bool, error) {
	var err error
	if *slot, err = tc.transform(*slot); err != nil {
		return false, err
	}
	b := (*slot).Base()
	if b.IsStatic() {
		return b.Static.Evaluated, nil
	}
	t := (*slot).Type()
	if t == nil || types.UnboundOf(t) != nil {
		return false, nil
	}
	if !types.Is(t, "bool") {
		wrapped := cs.Method(*slot, "__bool__")
		wrapped.Src = b.Src
		if *slot, err = tc.transform(wrapped); err != nil {
			return false, err
		}
	}
	return true, nil
}

// `a if cond else b`; a static condition selects a branch.
func (tc *Typechecker) visitIfExpr(e *ast.IfExpr) (ExprRewrite, error) {
	ok, err := tc.condition(&e.Cond)
	if err != nil {
		return unchanged(), err
	}
	if b := e.Cond.Base(); b.IsStatic() {
		if !b.Static.Evaluated {
			return deferred(), nil
		}
		if b.Static.Truthy() {
			return replaced(e.Then), nil
		}
		return replaced(e.Else), nil
	}
	if e.Then, err = tc.transform(e.Then); err != nil {
		return unchanged(), err
	}
	if e.Else, err = tc.transform(e.Else); err != nil {
		return unchanged(), err
	}
	for _, branch := range []ast.Expr{e.Then, e.Else} {
		if t := branch.Type(); t != nil {
			if err := tc.assign(e, t); err != nil {
				return unchanged(), err
			}
		}
	}
	if !ok || !ast.IsDone(e.Cond) || !ast.IsDone(e.Then) || !ast.IsDone(e.Else) {
		return unchanged(), nil
	}
	return tc.finish(e)
}

// `if cond: ... else: ...`; a static condition keeps only the taken branch.
func (tc *Typechecker) visitIf(s *ast.IfStmt) (StmtRewrite, error) {
	ok, err := tc.condition(&s.Cond)
	if err != nil {
		return stmtUnchanged(), err
	}
	if b := s.Cond.Base(); b.IsStatic() {
		if !b.Static.Evaluated {
			return stmtDeferred(), nil
		}
		switch {
		case b.Static.Truthy():
			return stmtReplaced(s.If), nil
		case s.Else != nil:
			return stmtReplaced(s.Else), nil
		}
		return stmtReplaced(cs.Pass()), nil
	}
	if err := tc.transformSuite(s.If); err != nil {
		return stmtUnchanged(), err
	}
	if err := tc.transformSuite(s.Else); err != nil {
		return stmtUnchanged(), err
	}
	if ok && ast.IsDone(s.Cond) && s.If.Done() && (s.Else == nil || s.Else.Done()) {
		s.SetDone()
	}
	return stmtUnchanged(), nil
}

func (tc *Typechecker) visitWhile(s *ast.WhileStmt) (StmtRewrite, error) {
	ok, err := tc.condition(&s.Cond)
	if err != nil {
		return stmtUnchanged(), err
	}
	if err := tc.transformSuite(s.Suite); err != nil {
		return stmtUnchanged(), err
	}
	if ok && ast.IsDone(s.Cond) && s.Suite.Done() {
		s.SetDone()
	}
	return stmtUnchanged(), nil
}

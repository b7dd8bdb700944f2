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

// `for x in iter: ...` iterates over `iter.__iter__()`. Tuples are unrolled:
//
//	t = iter
//	for i in range(N):
//	  if i == 0: x0 = t.item1; body[x/x0]
//	  elif ...
func (tc *Typechecker) visitFor(s *ast.ForStmt) (StmtRewrite, error) {
	var err error
	if s.Iter, err = tc.transform(s.Iter); err != nil {
		return stmtUnchanged(), err
	}
	t := s.Iter.Type()
	if t == nil || types.UnboundOf(t) != nil {
		return stmtDeferred(), nil
	}
	if types.IsTuple(t) {
		return tc.unrollTuple(s, len(types.RecordOf(t).Args))
	}
	if !types.Is(t, "Generator") {
		var cls *Class
		if c := types.ClassOf(t); c != nil {
			cls = tc.cache.Classes[c.Name]
		}
		if cls == nil || cls.Methods["__iter__"] == "" {
			return stmtUnchanged(), newError(ErrExpectedGenerator, s.Iter.Base().Src, types.TypeString(t))
		}
		iter := cs.Method(s.Iter, "__iter__")
		iter.Src = s.Iter.Base().Src
		if s.Iter, err = tc.transform(iter); err != nil {
			return stmtUnchanged(), err
		}
		if t = s.Iter.Type(); t == nil || !types.Is(t, "Generator") {
			return stmtDeferred(), nil
		}
	}
	elem := types.ClassOf(t).Generics[0].Type
	if err := tc.bindVar(s.Var, elem, s.Src); err != nil {
		return stmtUnchanged(), err
	}
	if err := tc.transformSuite(s.Suite); err != nil {
		return stmtUnchanged(), err
	}
	if ast.IsDone(s.Iter) && s.Suite.Done() {
		s.SetDone()
	}
	return stmtUnchanged(), nil
}

func (tc *Typechecker) unrollTuple(s *ast.ForStmt, n int) (StmtRewrite, error) {
	tuple := tc.cache.GetTemporaryVar("tuple")
	idx := tc.cache.GetTemporaryVar("idx")
	var chain *ast.SuiteStmt
	for i := n - 1; i >= 0; i-- {
		v := tc.cache.GetTemporaryVar(s.Var)
		body := renameVar(ast.CloneSuite(s.Suite, true), s.Var, v)
		body.Stmts = append([]ast.Stmt{cs.Assign(v, cs.Dot(cs.Id(tuple), tupleField(i)))}, body.Stmts...)
		branch := cs.If(cs.Binary(cs.Id(idx), "==", cs.Int(int64(i))), body, chain)
		chain = cs.Suite(branch)
	}
	if chain == nil {
		chain = cs.Suite(cs.Pass())
	}
	return stmtReplaced(cs.Suite(
		cs.Assign(tuple, s.Iter),
		cs.For(idx, cs.Call(cs.TypeId("range"), cs.Int(int64(n))), chain),
	)), nil
}

// renameVar replaces the bindings and uses of a variable within a suite.
func renameVar(s *ast.SuiteStmt, from, to string) *ast.SuiteStmt {
	ast.WalkStmt(s, ast.Visitor{
		Expr: func(e ast.Expr) bool {
			switch e := e.(type) {
			case *ast.IdExpr:
				if e.Value == from {
					e.Value = to
				}
			case *ast.AssignExpr:
				if e.Var == from {
					e.Var = to
				}
			}
			return true
		},
		Stmt: func(st ast.Stmt) bool {
			switch st := st.(type) {
			case *ast.ForStmt:
				if st.Var == from {
					st.Var = to
				}
			case *ast.FunctionStmt, *ast.ClassStmt:
				return false
			}
			return true
		},
	})
	return s
}

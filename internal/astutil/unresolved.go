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

package astutil

import (
	"github.com/airen3339/codon/ast"
)

// Unresolved holds the nodes of a block which are not yet done, in source order.
type Unresolved struct {
	Stmts []ast.Stmt
	Exprs []ast.Expr
}

func (u *Unresolved) Empty() bool { return len(u.Stmts) == 0 && len(u.Exprs) == 0 }

// CollectUnresolved walks s, skipping done subtrees and nested declarations.
func CollectUnresolved(s ast.Stmt) *Unresolved {
	u := &Unresolved{}
	ast.WalkStmt(s, ast.Visitor{
		Stmt: func(s ast.Stmt) bool {
			if s.Base().Done() {
				return false
			}
			switch s.(type) {
			case *ast.FunctionStmt, *ast.ClassStmt:
				return false
			case *ast.SuiteStmt:
			default:
				u.Stmts = append(u.Stmts, s)
			}
			return true
		},
		Expr: func(e ast.Expr) bool {
			if e.Base().Done() {
				return false
			}
			u.Exprs = append(u.Exprs, e)
			return true
		},
	})
	return u
}

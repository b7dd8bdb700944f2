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

package ast

// Visitor callbacks for WalkExpr and WalkStmt. Children of a node are skipped when its
// callback returns false. Either callback may be nil.
type Visitor struct {
	Expr func(Expr) bool
	Stmt func(Stmt) bool
}

// WalkExpr visits e and its sub-expressions (and nested statements) in pre-order.
func WalkExpr(e Expr, v Visitor) {
	if e == nil {
		return
	}
	if v.Expr != nil && !v.Expr(e) {
		return
	}
	switch e := e.(type) {
	case *NoneExpr, *BoolExpr, *IntExpr, *FloatExpr, *StringExpr, *IdExpr, *EllipsisExpr:

	case *StarExpr:
		WalkExpr(e.Expr, v)
	case *KeywordStarExpr:
		WalkExpr(e.Expr, v)
	case *TupleExpr:
		walkExprs(e.Items, v)
	case *ListExpr:
		walkExprs(e.Items, v)
	case *IfExpr:
		WalkExpr(e.Cond, v)
		WalkExpr(e.Then, v)
		WalkExpr(e.Else, v)
	case *UnaryExpr:
		WalkExpr(e.Expr, v)
	case *BinaryExpr:
		WalkExpr(e.Left, v)
		WalkExpr(e.Right, v)
	case *IndexExpr:
		WalkExpr(e.Expr, v)
		WalkExpr(e.Index, v)
	case *SliceExpr:
		WalkExpr(e.Start, v)
		WalkExpr(e.Stop, v)
		WalkExpr(e.Step, v)
	case *CallExpr:
		WalkExpr(e.Expr, v)
		for _, arg := range e.Args {
			WalkExpr(arg.Value, v)
		}
	case *DotExpr:
		WalkExpr(e.Expr, v)
	case *AssignExpr:
		WalkExpr(e.Expr, v)
	case *RangeExpr:
		WalkExpr(e.Start, v)
		WalkExpr(e.Stop, v)
	case *StmtExpr:
		for _, s := range e.Stmts {
			WalkStmt(s, v)
		}
		WalkExpr(e.Expr, v)
	case *InstantiateExpr:
		WalkExpr(e.Expr, v)
		walkExprs(e.Params, v)
	default:
		panic("unknown expression type: " + e.ExprName())
	}
}

func walkExprs(es []Expr, v Visitor) {
	for _, e := range es {
		WalkExpr(e, v)
	}
}

// WalkStmt visits s, its nested statements and their expressions in pre-order.
func WalkStmt(s Stmt, v Visitor) {
	if s == nil {
		return
	}
	if v.Stmt != nil && !v.Stmt(s) {
		return
	}
	switch s := s.(type) {
	case *SuiteStmt:
		for _, st := range s.Stmts {
			WalkStmt(st, v)
		}
	case *ExprStmt:
		WalkExpr(s.Expr, v)
	case *AssignStmt:
		WalkExpr(s.Lhs, v)
		WalkExpr(s.Rhs, v)
		WalkExpr(s.Type, v)
	case *AssignMemberStmt:
		WalkExpr(s.Lhs, v)
		WalkExpr(s.Rhs, v)
	case *ReturnStmt:
		WalkExpr(s.Expr, v)
	case *PassStmt, *BreakStmt, *ContinueStmt:
	case *IfStmt:
		WalkExpr(s.Cond, v)
		walkSuite(s.If, v)
		walkSuite(s.Else, v)
	case *WhileStmt:
		WalkExpr(s.Cond, v)
		walkSuite(s.Suite, v)
	case *ForStmt:
		WalkExpr(s.Iter, v)
		walkSuite(s.Suite, v)
	case *MatchStmt:
		WalkExpr(s.What, v)
		for _, c := range s.Cases {
			WalkExpr(c.Pattern, v)
			WalkExpr(c.Guard, v)
			walkSuite(c.Suite, v)
		}
	case *FunctionStmt:
		for _, p := range s.Params {
			WalkExpr(p.Type, v)
			WalkExpr(p.Default, v)
		}
		WalkExpr(s.Ret, v)
		walkSuite(s.Suite, v)
	case *ClassStmt:
		for _, p := range s.Generics {
			WalkExpr(p.Type, v)
		}
		for _, p := range s.Fields {
			WalkExpr(p.Type, v)
		}
		for _, m := range s.Methods {
			WalkStmt(m, v)
		}
	default:
		panic("unknown statement type: " + s.StmtName())
	}
}

func walkSuite(s *SuiteStmt, v Visitor) {
	if s != nil {
		WalkStmt(s, v)
	}
}

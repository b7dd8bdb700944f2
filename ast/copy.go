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

// CloneExpr returns a deep copy of e. With clean set, inferred types and done flags are
// cleared from the copy.
func CloneExpr(e Expr, clean bool) Expr {
	if e == nil {
		return nil
	}
	var c Expr
	switch e := e.(type) {
	case *NoneExpr:
		n := *e
		c = &n
	case *BoolExpr:
		n := *e
		c = &n
	case *IntExpr:
		n := *e
		c = &n
	case *FloatExpr:
		n := *e
		c = &n
	case *StringExpr:
		n := *e
		c = &n
	case *IdExpr:
		n := *e
		c = &n
	case *StarExpr:
		n := *e
		n.Expr = CloneExpr(e.Expr, clean)
		c = &n
	case *KeywordStarExpr:
		n := *e
		n.Expr = CloneExpr(e.Expr, clean)
		c = &n
	case *TupleExpr:
		n := *e
		n.Items = cloneExprs(e.Items, clean)
		c = &n
	case *ListExpr:
		n := *e
		n.Items = cloneExprs(e.Items, clean)
		c = &n
	case *IfExpr:
		n := *e
		n.Cond, n.Then, n.Else = CloneExpr(e.Cond, clean), CloneExpr(e.Then, clean), CloneExpr(e.Else, clean)
		c = &n
	case *UnaryExpr:
		n := *e
		n.Expr = CloneExpr(e.Expr, clean)
		c = &n
	case *BinaryExpr:
		n := *e
		n.Left, n.Right = CloneExpr(e.Left, clean), CloneExpr(e.Right, clean)
		c = &n
	case *IndexExpr:
		n := *e
		n.Expr, n.Index = CloneExpr(e.Expr, clean), CloneExpr(e.Index, clean)
		c = &n
	case *SliceExpr:
		n := *e
		n.Start, n.Stop, n.Step = CloneExpr(e.Start, clean), CloneExpr(e.Stop, clean), CloneExpr(e.Step, clean)
		c = &n
	case *CallExpr:
		n := *e
		n.Expr = CloneExpr(e.Expr, clean)
		n.Args = make([]CallArg, len(e.Args))
		for i, arg := range e.Args {
			n.Args[i] = CallArg{arg.Name, CloneExpr(arg.Value, clean)}
		}
		c = &n
	case *DotExpr:
		n := *e
		n.Expr = CloneExpr(e.Expr, clean)
		c = &n
	case *EllipsisExpr:
		n := *e
		c = &n
	case *AssignExpr:
		n := *e
		n.Expr = CloneExpr(e.Expr, clean)
		c = &n
	case *RangeExpr:
		n := *e
		n.Start, n.Stop = CloneExpr(e.Start, clean), CloneExpr(e.Stop, clean)
		c = &n
	case *StmtExpr:
		n := *e
		n.Stmts = cloneStmts(e.Stmts, clean)
		n.Expr = CloneExpr(e.Expr, clean)
		c = &n
	case *InstantiateExpr:
		n := *e
		n.Expr = CloneExpr(e.Expr, clean)
		n.Params = cloneExprs(e.Params, clean)
		c = &n
	default:
		panic("unknown expression type: " + e.ExprName())
	}
	if clean {
		c.Base().reset()
	}
	return c
}

func cloneExprs(es []Expr, clean bool) []Expr {
	if es == nil {
		return nil
	}
	out := make([]Expr, len(es))
	for i, e := range es {
		out[i] = CloneExpr(e, clean)
	}
	return out
}

func cloneStmts(ss []Stmt, clean bool) []Stmt {
	if ss == nil {
		return nil
	}
	out := make([]Stmt, len(ss))
	for i, s := range ss {
		out[i] = CloneStmt(s, clean)
	}
	return out
}

// CloneSuite returns a deep copy of a block of statements.
func CloneSuite(s *SuiteStmt, clean bool) *SuiteStmt {
	if s == nil {
		return nil
	}
	return CloneStmt(s, clean).(*SuiteStmt)
}

// CloneStmt returns a deep copy of s. With clean set, inferred types and done flags are
// cleared from the copy.
func CloneStmt(s Stmt, clean bool) Stmt {
	if s == nil {
		return nil
	}
	var c Stmt
	switch s := s.(type) {
	case *SuiteStmt:
		n := *s
		n.Stmts = cloneStmts(s.Stmts, clean)
		c = &n
	case *ExprStmt:
		n := *s
		n.Expr = CloneExpr(s.Expr, clean)
		c = &n
	case *AssignStmt:
		n := *s
		n.Lhs, n.Rhs, n.Type = CloneExpr(s.Lhs, clean), CloneExpr(s.Rhs, clean), CloneExpr(s.Type, clean)
		c = &n
	case *AssignMemberStmt:
		n := *s
		n.Lhs, n.Rhs = CloneExpr(s.Lhs, clean), CloneExpr(s.Rhs, clean)
		c = &n
	case *ReturnStmt:
		n := *s
		n.Expr = CloneExpr(s.Expr, clean)
		c = &n
	case *PassStmt:
		n := *s
		c = &n
	case *BreakStmt:
		n := *s
		c = &n
	case *ContinueStmt:
		n := *s
		c = &n
	case *IfStmt:
		n := *s
		n.Cond, n.If, n.Else = CloneExpr(s.Cond, clean), CloneSuite(s.If, clean), CloneSuite(s.Else, clean)
		c = &n
	case *WhileStmt:
		n := *s
		n.Cond, n.Suite = CloneExpr(s.Cond, clean), CloneSuite(s.Suite, clean)
		c = &n
	case *ForStmt:
		n := *s
		n.Iter, n.Suite = CloneExpr(s.Iter, clean), CloneSuite(s.Suite, clean)
		c = &n
	case *MatchStmt:
		n := *s
		n.What = CloneExpr(s.What, clean)
		n.Cases = make([]MatchCase, len(s.Cases))
		for i, mc := range s.Cases {
			n.Cases[i] = MatchCase{CloneExpr(mc.Pattern, clean), CloneExpr(mc.Guard, clean), CloneSuite(mc.Suite, clean)}
		}
		c = &n
	case *FunctionStmt:
		n := *s
		n.Params = cloneParams(s.Params, clean)
		n.Ret, n.Suite = CloneExpr(s.Ret, clean), CloneSuite(s.Suite, clean)
		c = &n
	case *ClassStmt:
		n := *s
		n.Generics, n.Fields = cloneParams(s.Generics, clean), cloneParams(s.Fields, clean)
		n.Methods = make([]*FunctionStmt, len(s.Methods))
		for i, m := range s.Methods {
			n.Methods[i] = CloneStmt(m, clean).(*FunctionStmt)
		}
		c = &n
	default:
		panic("unknown statement type: " + s.StmtName())
	}
	if clean {
		c.Base().done = false
	}
	return c
}

func cloneParams(ps []Param, clean bool) []Param {
	if ps == nil {
		return nil
	}
	out := make([]Param, len(ps))
	for i, p := range ps {
		out[i] = p
		out[i].Type, out[i].Default = CloneExpr(p.Type, clean), CloneExpr(p.Default, clean)
	}
	return out
}

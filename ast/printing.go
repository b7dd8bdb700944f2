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

import (
	"strconv"
	"strings"
)

// ExprString returns a string representation of an expression.
func ExprString(e Expr) string {
	var sb strings.Builder
	exprString(&sb, e)
	return sb.String()
}

// StmtString returns an indented, multi-line representation of a statement.
func StmtString(s Stmt) string {
	var sb strings.Builder
	stmtString(&sb, s, 0)
	return strings.TrimRight(sb.String(), "\n")
}

func exprList(sb *strings.Builder, es []Expr) {
	for i, e := range es {
		if i > 0 {
			sb.WriteString(", ")
		}
		exprString(sb, e)
	}
}

func exprString(sb *strings.Builder, e Expr) {
	switch e := e.(type) {
	case nil:
		sb.WriteString("<nil>")
	case *NoneExpr:
		sb.WriteString("None")
	case *BoolExpr:
		if e.Value {
			sb.WriteString("True")
		} else {
			sb.WriteString("False")
		}
	case *IntExpr:
		sb.WriteString(strconv.FormatInt(e.Value, 10))
	case *FloatExpr:
		sb.WriteString(strconv.FormatFloat(e.Value, 'g', -1, 64))
	case *StringExpr:
		sb.WriteString(strconv.Quote(e.Value))
	case *IdExpr:
		sb.WriteString(e.Value)
	case *StarExpr:
		sb.WriteByte('*')
		exprString(sb, e.Expr)
	case *KeywordStarExpr:
		sb.WriteString("**")
		exprString(sb, e.Expr)
	case *TupleExpr:
		sb.WriteByte('(')
		exprList(sb, e.Items)
		if len(e.Items) == 1 {
			sb.WriteByte(',')
		}
		sb.WriteByte(')')
	case *ListExpr:
		sb.WriteByte('[')
		exprList(sb, e.Items)
		sb.WriteByte(']')
	case *IfExpr:
		sb.WriteByte('(')
		exprString(sb, e.Then)
		sb.WriteString(" if ")
		exprString(sb, e.Cond)
		sb.WriteString(" else ")
		exprString(sb, e.Else)
		sb.WriteByte(')')
	case *UnaryExpr:
		sb.WriteByte('(')
		sb.WriteString(e.Op)
		exprString(sb, e.Expr)
		sb.WriteByte(')')
	case *BinaryExpr:
		sb.WriteByte('(')
		exprString(sb, e.Left)
		sb.WriteByte(' ')
		sb.WriteString(e.Op)
		if e.InPlace {
			sb.WriteByte('=')
		}
		sb.WriteByte(' ')
		exprString(sb, e.Right)
		sb.WriteByte(')')
	case *IndexExpr:
		exprString(sb, e.Expr)
		sb.WriteByte('[')
		exprString(sb, e.Index)
		sb.WriteByte(']')
	case *SliceExpr:
		if e.Start != nil {
			exprString(sb, e.Start)
		}
		sb.WriteByte(':')
		if e.Stop != nil {
			exprString(sb, e.Stop)
		}
		if e.Step != nil {
			sb.WriteByte(':')
			exprString(sb, e.Step)
		}
	case *CallExpr:
		exprString(sb, e.Expr)
		sb.WriteByte('(')
		for i, arg := range e.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			if arg.Name != "" {
				sb.WriteString(arg.Name)
				sb.WriteByte('=')
			}
			exprString(sb, arg.Value)
		}
		sb.WriteByte(')')
	case *DotExpr:
		exprString(sb, e.Expr)
		sb.WriteByte('.')
		sb.WriteString(e.Member)
	case *EllipsisExpr:
		sb.WriteString("...")
	case *AssignExpr:
		sb.WriteByte('(')
		sb.WriteString(e.Var)
		sb.WriteString(" := ")
		exprString(sb, e.Expr)
		sb.WriteByte(')')
	case *RangeExpr:
		exprString(sb, e.Start)
		sb.WriteString(" ... ")
		exprString(sb, e.Stop)
	case *StmtExpr:
		sb.WriteByte('(')
		for _, s := range e.Stmts {
			sb.WriteString(strings.ReplaceAll(StmtString(s), "\n", "; "))
			sb.WriteString("; ")
		}
		exprString(sb, e.Expr)
		sb.WriteByte(')')
	case *InstantiateExpr:
		exprString(sb, e.Expr)
		sb.WriteByte('[')
		exprList(sb, e.Params)
		sb.WriteByte(']')
	default:
		sb.WriteString(e.ExprName())
	}
}

func indent(sb *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		sb.WriteString("  ")
	}
}

func suiteString(sb *strings.Builder, s *SuiteStmt, depth int) {
	if s == nil || len(s.Stmts) == 0 {
		indent(sb, depth)
		sb.WriteString("pass\n")
		return
	}
	stmtString(sb, s, depth)
}

func paramList(sb *strings.Builder, ps []Param) {
	for i, p := range ps {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strings.Repeat("*", p.Star))
		sb.WriteString(p.Name)
		if p.Type != nil {
			sb.WriteString(": ")
			exprString(sb, p.Type)
		}
		if p.Default != nil {
			sb.WriteString(" = ")
			exprString(sb, p.Default)
		}
	}
}

func stmtString(sb *strings.Builder, s Stmt, depth int) {
	if suite, ok := s.(*SuiteStmt); ok {
		for _, st := range suite.Stmts {
			stmtString(sb, st, depth)
		}
		return
	}
	indent(sb, depth)
	switch s := s.(type) {
	case *ExprStmt:
		exprString(sb, s.Expr)
	case *AssignStmt:
		exprString(sb, s.Lhs)
		if s.Type != nil {
			sb.WriteString(": ")
			exprString(sb, s.Type)
		}
		if s.Rhs != nil {
			sb.WriteString(" = ")
			exprString(sb, s.Rhs)
		}
	case *AssignMemberStmt:
		exprString(sb, s.Lhs)
		sb.WriteString("." + s.Member + " = ")
		exprString(sb, s.Rhs)
	case *ReturnStmt:
		sb.WriteString("return")
		if s.Expr != nil {
			sb.WriteByte(' ')
			exprString(sb, s.Expr)
		}
	case *PassStmt:
		sb.WriteString("pass")
	case *BreakStmt:
		sb.WriteString("break")
	case *ContinueStmt:
		sb.WriteString("continue")
	case *IfStmt:
		sb.WriteString("if ")
		exprString(sb, s.Cond)
		sb.WriteString(":\n")
		suiteString(sb, s.If, depth+1)
		if s.Else != nil {
			indent(sb, depth)
			sb.WriteString("else:\n")
			suiteString(sb, s.Else, depth+1)
		}
		return
	case *WhileStmt:
		sb.WriteString("while ")
		exprString(sb, s.Cond)
		sb.WriteString(":\n")
		suiteString(sb, s.Suite, depth+1)
		return
	case *ForStmt:
		sb.WriteString("for " + s.Var + " in ")
		exprString(sb, s.Iter)
		sb.WriteString(":\n")
		suiteString(sb, s.Suite, depth+1)
		return
	case *MatchStmt:
		sb.WriteString("match ")
		exprString(sb, s.What)
		sb.WriteString(":\n")
		for _, c := range s.Cases {
			indent(sb, depth+1)
			sb.WriteString("case ")
			exprString(sb, c.Pattern)
			if c.Guard != nil {
				sb.WriteString(" if ")
				exprString(sb, c.Guard)
			}
			sb.WriteString(":\n")
			suiteString(sb, c.Suite, depth+2)
		}
		return
	case *FunctionStmt:
		sb.WriteString("def " + s.Name + "(")
		paramList(sb, s.Params)
		sb.WriteByte(')')
		if s.Ret != nil {
			sb.WriteString(" -> ")
			exprString(sb, s.Ret)
		}
		sb.WriteString(":\n")
		suiteString(sb, s.Suite, depth+1)
		return
	case *ClassStmt:
		sb.WriteString("class " + s.Name)
		if len(s.Generics) > 0 {
			sb.WriteByte('[')
			paramList(sb, s.Generics)
			sb.WriteByte(']')
		}
		sb.WriteString(":\n")
		for _, f := range s.Fields {
			indent(sb, depth+1)
			paramList(sb, []Param{f})
			sb.WriteByte('\n')
		}
		for _, m := range s.Methods {
			stmtString(sb, m, depth+1)
		}
		if len(s.Fields) == 0 && len(s.Methods) == 0 {
			indent(sb, depth+1)
			sb.WriteString("pass\n")
		}
		return
	default:
		sb.WriteString(s.StmtName())
	}
	sb.WriteByte('\n')
}

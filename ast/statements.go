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

import "strings"

// Stmt is the base for all statements.
type Stmt interface {
	// Name of the syntax-type of the statement.
	StmtName() string
	Base() *StmtBase
}

var (
	_ Stmt = (*SuiteStmt)(nil)
	_ Stmt = (*ExprStmt)(nil)
	_ Stmt = (*AssignStmt)(nil)
	_ Stmt = (*AssignMemberStmt)(nil)
	_ Stmt = (*ReturnStmt)(nil)
	_ Stmt = (*PassStmt)(nil)
	_ Stmt = (*BreakStmt)(nil)
	_ Stmt = (*ContinueStmt)(nil)
	_ Stmt = (*IfStmt)(nil)
	_ Stmt = (*WhileStmt)(nil)
	_ Stmt = (*ForStmt)(nil)
	_ Stmt = (*MatchStmt)(nil)
	_ Stmt = (*FunctionStmt)(nil)
	_ Stmt = (*ClassStmt)(nil)
)

// StmtBase holds the state shared by all statements.
type StmtBase struct {
	done bool
	Src  SrcInfo
}

func (b *StmtBase) Base() *StmtBase { return b }
func (b *StmtBase) Done() bool      { return b.done }
func (b *StmtBase) SetDone()        { b.done = true }

// A block of statements.
type SuiteStmt struct {
	StmtBase
	Stmts []Stmt
}

// "Suite"
func (s *SuiteStmt) StmtName() string { return "Suite" }

// Expression evaluated for its effects.
type ExprStmt struct {
	StmtBase
	Expr Expr
}

// "Expr"
func (s *ExprStmt) StmtName() string { return "Expr" }

// `x: T = rhs`; Lhs is an identifier or an index expression.
type AssignStmt struct {
	StmtBase
	Lhs, Rhs Expr
	// Optional annotation
	Type Expr
}

// "Assign"
func (s *AssignStmt) StmtName() string { return "Assign" }

// `obj.member = rhs`
type AssignMemberStmt struct {
	StmtBase
	Lhs    Expr
	Member string
	Rhs    Expr
}

// "AssignMember"
func (s *AssignMemberStmt) StmtName() string { return "AssignMember" }

// `return expr`
type ReturnStmt struct {
	StmtBase
	Expr Expr
}

// "Return"
func (s *ReturnStmt) StmtName() string { return "Return" }

type PassStmt struct{ StmtBase }

// "Pass"
func (s *PassStmt) StmtName() string { return "Pass" }

type BreakStmt struct{ StmtBase }

// "Break"
func (s *BreakStmt) StmtName() string { return "Break" }

type ContinueStmt struct{ StmtBase }

// "Continue"
func (s *ContinueStmt) StmtName() string { return "Continue" }

// `if cond: ... else: ...`; Else may be nil.
type IfStmt struct {
	StmtBase
	Cond Expr
	If   *SuiteStmt
	Else *SuiteStmt
}

// "If"
func (s *IfStmt) StmtName() string { return "If" }

// `while cond: ...`
type WhileStmt struct {
	StmtBase
	Cond  Expr
	Suite *SuiteStmt
}

// "While"
func (s *WhileStmt) StmtName() string { return "While" }

// `for var in iter: ...`
type ForStmt struct {
	StmtBase
	Var   string
	Iter  Expr
	Suite *SuiteStmt
}

// "For"
func (s *ForStmt) StmtName() string { return "For" }

// Single case of a match statement: `case pattern if guard: ...`
type MatchCase struct {
	Pattern Expr
	Guard   Expr
	Suite   *SuiteStmt
}

// `match what: ...`
type MatchStmt struct {
	StmtBase
	What  Expr
	Cases []MatchCase
}

// "Match"
func (s *MatchStmt) StmtName() string { return "Match" }

// ParamStatus distinguishes ordinary parameters from type parameters.
type ParamStatus int

const (
	NormalParam ParamStatus = iota
	GenericParam
)

// Function parameter, class field or generic. Star is 1 for `*args` and 2 for `**kwargs`.
type Param struct {
	Name    string
	Type    Expr
	Default Expr
	Status  ParamStatus
	Star    int
}

// FuncAttr is a bitmask of function attributes.
type FuncAttr uint32

const (
	// Compiler-provided implementation
	FuncInternal FuncAttr = 1 << iota
	// Body is an LLVM IR string
	FuncLLVM
	// External C function
	FuncC
	FuncProperty
	FuncAutoGenerated
	FuncMethod
	FuncRealizeWithoutSelf
)

// `def name[generics](params) -> ret: ...`
type FunctionStmt struct {
	StmtBase
	// Canonical name; overloads are distinguished by a ":N" suffix.
	Name     string
	NiceName string
	Params   []Param
	Ret      Expr
	Suite    *SuiteStmt
	Attrs    FuncAttr
	// Canonical name of the enclosing class of a method.
	ParentClass string
}

// "Function"
func (s *FunctionStmt) StmtName() string { return "Function" }

func (s *FunctionStmt) HasAttr(a FuncAttr) bool { return s.Attrs&a != 0 }

// DeclName returns the canonical name of the function.
func (s *FunctionStmt) DeclName() string { return s.Name }

func (s *FunctionStmt) RealizeWithoutSelf() bool { return s.HasAttr(FuncRealizeWithoutSelf) }

// RootName returns the canonical name without its overload suffix.
func (s *FunctionStmt) RootName() string {
	if i := strings.LastIndexByte(s.Name, ':'); i > 0 {
		return s.Name[:i]
	}
	return s.Name
}

// `class Name[generics]: fields; methods`
type ClassStmt struct {
	StmtBase
	Name     string
	NiceName string
	Generics []Param
	Fields   []Param
	Methods  []*FunctionStmt
	// Record classes are passed by value and unify structurally.
	Record  bool
	Parents []string
}

// "Class"
func (s *ClassStmt) StmtName() string { return "Class" }

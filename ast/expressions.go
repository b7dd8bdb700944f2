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
	"github.com/airen3339/codon/types"
)

type SrcInfo = types.SrcInfo

// Attr is a bitmask of syntactic markers attached to expressions by earlier passes.
type Attr uint32

const (
	AttrSequenceItem Attr = 1 << iota
	AttrStarSequenceItem
	AttrStarArgument
	AttrKwStarArgument
	AttrOrderedCall
	// Result of a partial call
	AttrPartial
	// Expression denotes a type
	AttrType
)

// Expr is the base for all expressions.
type Expr interface {
	// Name of the syntax-type of the expression.
	ExprName() string
	// Type returns the inferred type of an expression. Expression types are only available after type-inference.
	Type() types.Type
	SetType(t types.Type)
	Base() *ExprBase
}

var (
	_ Expr = (*NoneExpr)(nil)
	_ Expr = (*BoolExpr)(nil)
	_ Expr = (*IntExpr)(nil)
	_ Expr = (*FloatExpr)(nil)
	_ Expr = (*StringExpr)(nil)
	_ Expr = (*IdExpr)(nil)
	_ Expr = (*StarExpr)(nil)
	_ Expr = (*KeywordStarExpr)(nil)
	_ Expr = (*TupleExpr)(nil)
	_ Expr = (*ListExpr)(nil)
	_ Expr = (*IfExpr)(nil)
	_ Expr = (*UnaryExpr)(nil)
	_ Expr = (*BinaryExpr)(nil)
	_ Expr = (*IndexExpr)(nil)
	_ Expr = (*SliceExpr)(nil)
	_ Expr = (*CallExpr)(nil)
	_ Expr = (*DotExpr)(nil)
	_ Expr = (*EllipsisExpr)(nil)
	_ Expr = (*AssignExpr)(nil)
	_ Expr = (*RangeExpr)(nil)
	_ Expr = (*StmtExpr)(nil)
	_ Expr = (*InstantiateExpr)(nil)
)

// ExprBase holds the state shared by all expressions.
type ExprBase struct {
	inferred types.Type
	done     bool
	Attrs    Attr
	Src      SrcInfo
	// Static is set for expressions with a compile-time value.
	Static types.StaticValue
}

func (b *ExprBase) Base() *ExprBase { return b }

// Get the inferred (or assigned) type.
func (b *ExprBase) Type() types.Type { return types.Follow(b.inferred) }

// Assign a type. Type assignments should occur indirectly, during inference.
func (b *ExprBase) SetType(t types.Type) { b.inferred = t }

// Done reports whether the expression and all of its sub-expressions are fully typed.
func (b *ExprBase) Done() bool { return b.done }
func (b *ExprBase) SetDone()   { b.done = true }

func (b *ExprBase) HasAttr(a Attr) bool { return b.Attrs&a != 0 }
func (b *ExprBase) SetAttr(a Attr)      { b.Attrs |= a }

func (b *ExprBase) IsStatic() bool { return b.Static.Kind != types.NotStatic }

func (b *ExprBase) reset() {
	b.inferred, b.done = nil, false
	if b.Static.Kind != types.NotStatic && !b.Static.Evaluated {
		b.Static = types.StaticValue{Kind: b.Static.Kind}
	}
}

// `None`
type NoneExpr struct{ ExprBase }

// "None"
func (e *NoneExpr) ExprName() string { return "None" }

// `True`
type BoolExpr struct {
	ExprBase
	Value bool
}

// "Bool"
func (e *BoolExpr) ExprName() string { return "Bool" }

// `42`
type IntExpr struct {
	ExprBase
	Value int64
}

// "Int"
func (e *IntExpr) ExprName() string { return "Int" }

// `4.2`
type FloatExpr struct {
	ExprBase
	Value float64
}

// "Float"
func (e *FloatExpr) ExprName() string { return "Float" }

// `"str"`
type StringExpr struct {
	ExprBase
	Value string
}

// "String"
func (e *StringExpr) ExprName() string { return "String" }

// Canonical identifier: `foo.x`
type IdExpr struct {
	ExprBase
	Value string
}

// "Id"
func (e *IdExpr) ExprName() string { return "Id" }

// `*args`
type StarExpr struct {
	ExprBase
	Expr Expr
}

// "Star"
func (e *StarExpr) ExprName() string { return "Star" }

// `**kwargs`
type KeywordStarExpr struct {
	ExprBase
	Expr Expr
}

// "KeywordStar"
func (e *KeywordStarExpr) ExprName() string { return "KeywordStar" }

// `(a, b)`
type TupleExpr struct {
	ExprBase
	Items []Expr
}

// "Tuple"
func (e *TupleExpr) ExprName() string { return "Tuple" }

// `[a, b]` (only within patterns)
type ListExpr struct {
	ExprBase
	Items []Expr
}

// "List"
func (e *ListExpr) ExprName() string { return "List" }

// `a if cond else b`
type IfExpr struct {
	ExprBase
	Cond, Then, Else Expr
}

// "If"
func (e *IfExpr) ExprName() string { return "If" }

// `-a`, `!a`, `~a`, `+a`
type UnaryExpr struct {
	ExprBase
	Op   string
	Expr Expr
}

// "Unary"
func (e *UnaryExpr) ExprName() string { return "Unary" }

// `a + b`; in-place operators set InPlace: `a += b`
type BinaryExpr struct {
	ExprBase
	Op          string
	Left, Right Expr
	InPlace     bool
}

// "Binary"
func (e *BinaryExpr) ExprName() string { return "Binary" }

// `a[i]`
type IndexExpr struct {
	ExprBase
	Expr, Index Expr
}

// "Index"
func (e *IndexExpr) ExprName() string { return "Index" }

// `a:b:c` (within an index)
type SliceExpr struct {
	ExprBase
	Start, Stop, Step Expr
}

// "Slice"
func (e *SliceExpr) ExprName() string { return "Slice" }

// Call argument; Name is empty for positional arguments.
type CallArg struct {
	Name  string
	Value Expr
}

// `f(a, b=c)`
type CallExpr struct {
	ExprBase
	Expr Expr
	Args []CallArg
	// Ordered is set once arguments are reordered against the callee's signature.
	Ordered bool
}

// "Call"
func (e *CallExpr) ExprName() string { return "Call" }

// `a.member`
type DotExpr struct {
	ExprBase
	Expr   Expr
	Member string
}

// "Dot"
func (e *DotExpr) ExprName() string { return "Dot" }

type EllipsisMode int

const (
	EllipsisStandalone EllipsisMode = iota
	// Placeholder for a missing argument of a partial call
	EllipsisPartial
)

// `...`
type EllipsisExpr struct {
	ExprBase
	Mode EllipsisMode
}

// "Ellipsis"
func (e *EllipsisExpr) ExprName() string { return "Ellipsis" }

// `(x := expr)`; within patterns, binds the matched value.
type AssignExpr struct {
	ExprBase
	Var  string
	Expr Expr
}

// "Assign"
func (e *AssignExpr) ExprName() string { return "Assign" }

// `1 ... 5` (within patterns)
type RangeExpr struct {
	ExprBase
	Start, Stop Expr
}

// "Range"
func (e *RangeExpr) ExprName() string { return "Range" }

// A sequence of statements followed by an expression.
type StmtExpr struct {
	ExprBase
	Stmts []Stmt
	Expr  Expr
}

// "StmtExpr"
func (e *StmtExpr) ExprName() string { return "StmtExpr" }

// Explicit type instantiation: `List[int]`
type InstantiateExpr struct {
	ExprBase
	Expr   Expr
	Params []Expr
}

// "Instantiate"
func (e *InstantiateExpr) ExprName() string { return "Instantiate" }

// IsDone reports whether e is nil or done.
func IsDone(e Expr) bool { return e == nil || e.Base().Done() }

// UnwrapStmtExpr returns the innermost expression of nested statement-expressions.
func UnwrapStmtExpr(e Expr) Expr {
	for {
		se, ok := e.(*StmtExpr)
		if !ok {
			return e
		}
		e = se.Expr
	}
}

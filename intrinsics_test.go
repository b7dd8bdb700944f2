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
	"strings"
	"testing"

	"github.com/airen3339/codon/ast"
	cs "github.com/airen3339/codon/construct"
)

func point() *ast.ClassStmt {
	return cs.Class("Point", nil, []ast.Param{cs.Param("x", cs.TypeId("int")), cs.Param("y", cs.TypeId("int"))})
}

func rhs(tb testing.TB, s *ast.SuiteStmt, i int) ast.Expr {
	tb.Helper()
	a, ok := s.Stmts[i].(*ast.AssignStmt)
	if !ok {
		tb.Fatalf("stmt %d: %s", i, ast.StmtString(s.Stmts[i]))
	}
	return a.Rhs
}

func TestIsInstance(t *testing.T) {
	c, s := check(t,
		cs.Assign("a", cs.Call(cs.Id("isinstance"), cs.Int(1), cs.TypeId("int"))),
		cs.Assign("b", cs.Call(cs.Id("isinstance"), cs.Str("s"), cs.TypeId("int"))),
	)
	if e, ok := rhs(t, s, 0).(*ast.BoolExpr); !ok || !e.Value {
		t.Fatalf("rhs: %s", ast.ExprString(rhs(t, s, 0)))
	}
	if e, ok := rhs(t, s, 1).(*ast.BoolExpr); !ok || e.Value {
		t.Fatalf("rhs: %s", ast.ExprString(rhs(t, s, 1)))
	}
	if ty := typeOf(t, c, "a"); ty != "bool" {
		t.Fatalf("type: %s", ty)
	}
}

func TestStaticLen(t *testing.T) {
	_, s := check(t,
		cs.Assign("n", cs.Call(cs.Id("staticlen"), cs.Tuple(cs.Int(1), cs.Str("a")))),
		cs.Assign("m", cs.Call(cs.Id("staticlen"), cs.Str("abc"))),
	)
	if e, ok := rhs(t, s, 0).(*ast.IntExpr); !ok || e.Value != 2 {
		t.Fatalf("rhs: %s", ast.ExprString(rhs(t, s, 0)))
	}
	if e, ok := rhs(t, s, 1).(*ast.IntExpr); !ok || e.Value != 3 {
		t.Fatalf("rhs: %s", ast.ExprString(rhs(t, s, 1)))
	}
}

func TestHasAttr(t *testing.T) {
	_, s := check(t,
		cs.Assign("a", cs.Call(cs.Id("hasattr"), cs.Int(1), cs.Str("__add__"))),
		cs.Assign("b", cs.Call(cs.Id("hasattr"), cs.Int(1), cs.Str("missing"))),
	)
	if e, ok := rhs(t, s, 0).(*ast.BoolExpr); !ok || !e.Value {
		t.Fatalf("rhs: %s", ast.ExprString(rhs(t, s, 0)))
	}
	if e, ok := rhs(t, s, 1).(*ast.BoolExpr); !ok || e.Value {
		t.Fatalf("rhs: %s", ast.ExprString(rhs(t, s, 1)))
	}
}

func TestGetSetAttr(t *testing.T) {
	c, _ := check(t,
		point(),
		cs.Assign("p", cs.Call(cs.Id("Point"), cs.Int(1), cs.Int(2))),
		cs.ExprStmt(cs.Call(cs.Id("setattr"), cs.Id("p"), cs.Str("x"), cs.Int(3))),
		cs.Assign("a", cs.Call(cs.Id("getattr"), cs.Id("p"), cs.Str("y"))),
	)
	if ty := typeOf(t, c, "a"); ty != "int" {
		t.Fatalf("type: %s", ty)
	}
}

func TestCompileError(t *testing.T) {
	ce := checkError(t, DefaultConfig(), cs.ExprStmt(cs.Call(cs.Id("compile_error"), cs.Str("boom"))))
	if ce.Kind != ErrCustom || ce.Message() != "boom" {
		t.Fatalf("error: %v", ce)
	}
}

func TestTypeOf(t *testing.T) {
	c, _ := check(t,
		cs.Assign("a", cs.Call(cs.Call(cs.Id("type"), cs.Int(1)), cs.Float(2.5))),
		cs.Assign("b", cs.Call(cs.Dot(cs.Str("s"), "__class__"), cs.Str("t"))),
	)
	if ty := typeOf(t, c, "a"); ty != "int" {
		t.Fatalf("type: %s", ty)
	}
	if ty := typeOf(t, c, "b"); ty != "str" {
		t.Fatalf("type: %s", ty)
	}
}

func TestSuperOutsideMethod(t *testing.T) {
	ce := checkError(t, DefaultConfig(), cs.ExprStmt(cs.Call(cs.Id("super"))))
	if ce.Kind != ErrNoSuper {
		t.Fatalf("error: %v", ce)
	}
}

func TestPointerIntrinsic(t *testing.T) {
	c, _ := check(t,
		cs.Assign("a", cs.Int(1)),
		cs.Assign("p", cs.Call(cs.Id("__ptr__"), cs.Id("a"))),
	)
	if ty := typeOf(t, c, "p"); ty != "Ptr[int]" {
		t.Fatalf("type: %s", ty)
	}
	ce := checkError(t, DefaultConfig(), cs.Assign("p", cs.Call(cs.Id("__ptr__"), cs.Int(1))))
	if ce.Kind != ErrPtrRequiresVar {
		t.Fatalf("error: %v", ce)
	}
}

func TestPartialIntrinsic(t *testing.T) {
	c, _ := check(t,
		cs.Func("add", []ast.Param{cs.Param("a", nil), cs.Param("b", nil)}, nil,
			cs.Return(cs.Binary(cs.Id("a"), "+", cs.Id("b")))),
		cs.Assign("p", cs.Call(cs.Id("partial"), cs.Id("add"), cs.Int(1))),
		cs.Assign("x", cs.Call(cs.Id("p"), cs.Float(2.5))),
	)
	if ty := typeOf(t, c, "x"); ty != "float" {
		t.Fatalf("type: %s", ty)
	}
}

func TestNameMember(t *testing.T) {
	_, s := check(t,
		identity("f"),
		cs.Assign("a", cs.Dot(cs.TypeId("int"), "__name__")),
		cs.Assign("b", cs.Dot(cs.Id("f"), "__name__")),
	)
	if e, ok := rhs(t, s, 1).(*ast.StringExpr); !ok || e.Value != "int" {
		t.Fatalf("rhs: %s", ast.ExprString(rhs(t, s, 1)))
	}
	if e, ok := rhs(t, s, 2).(*ast.StringExpr); !ok || e.Value != "f" {
		t.Fatalf("rhs: %s", ast.ExprString(rhs(t, s, 2)))
	}
}

func TestGenericMember(t *testing.T) {
	c, _ := check(t,
		cs.Class("Box", []ast.Param{cs.Generic("T", nil)}, []ast.Param{cs.Param("v", cs.Id("T"))}),
		cs.Assign("b", cs.Call(cs.Id("Box"), cs.Int(1))),
		cs.Assign("a", cs.Call(cs.Dot(cs.Id("b"), "T"), cs.Float(2.5))),
	)
	if ty := typeOf(t, c, "b"); ty != "Box[int]" {
		t.Fatalf("type: %s", ty)
	}
	if ty := typeOf(t, c, "a"); ty != "int" {
		t.Fatalf("type: %s", ty)
	}
}

func TestOptionalMemberUnwrap(t *testing.T) {
	c, _ := check(t,
		point(),
		cs.AssignTyped("o", cs.Instantiate(cs.Id("Optional"), cs.TypeId("Point")),
			cs.Call(cs.Id("Point"), cs.Int(1), cs.Int(2))),
		cs.Assign("a", cs.Dot(cs.Id("o"), "x")),
	)
	if ty := typeOf(t, c, "a"); ty != "int" {
		t.Fatalf("type: %s", ty)
	}
}

func TestPyObjMember(t *testing.T) {
	c, _ := check(t,
		cs.Assign("p", cs.Call(cs.Id("pyobj"))),
		cs.Assign("a", cs.Dot(cs.Id("p"), "anything")),
	)
	if ty := typeOf(t, c, "a"); ty != "pyobj" {
		t.Fatalf("type: %s", ty)
	}
}

func TestMatchEliminatesStaticMismatch(t *testing.T) {
	_, s := check(t,
		cs.Assign("x", cs.Tuple(cs.Int(1), cs.Str("a"))),
		cs.Match(cs.Id("x"),
			cs.Case(cs.Tuple(cs.Str("b"), cs.Id("_")), nil, cs.Suite(cs.Assign("y", cs.Int(2)))),
			cs.Case(cs.Id("_"), nil, cs.Suite(cs.Assign("y", cs.Int(1)))),
		),
	)
	lowered := s.Stmts[1].(*ast.SuiteStmt)
	loop := lowered.Stmts[1].(*ast.WhileStmt)
	for _, st := range loop.Suite.Stmts {
		if _, ok := st.(*ast.IfStmt); ok {
			t.Fatalf("unreachable case kept: %s", ast.StmtString(st))
		}
	}
}

func TestMaxIterations(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxIterations = 1
	ce := checkError(t, cfg, cs.Assign("x", cs.None()))
	if ce.Kind != ErrFixpoint || !strings.Contains(ce.Message(), "maximum number of iterations") {
		t.Fatalf("error: %v", ce)
	}
}

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
	"github.com/airen3339/codon/types"
)

func newCache(tb testing.TB, cfg Config) *Cache {
	tb.Helper()
	c, err := NewCache(cfg)
	if err != nil {
		tb.Fatal(err)
	}
	return c
}

func check(tb testing.TB, stmts ...ast.Stmt) (*Cache, *ast.SuiteStmt) {
	tb.Helper()
	c := newCache(tb, DefaultConfig())
	s, err := c.Typecheck(cs.Suite(stmts...))
	if err != nil {
		tb.Fatal(err)
	}
	if !s.Done() {
		tb.Fatalf("module not done: %s", ast.StmtString(s))
	}
	return c, s
}

func checkError(tb testing.TB, cfg Config, stmts ...ast.Stmt) *CompileError {
	tb.Helper()
	c := newCache(tb, cfg)
	_, err := c.Typecheck(cs.Suite(stmts...))
	if err == nil {
		tb.Fatalf("expected an error")
	}
	ce, ok := AsCompileError(err)
	if !ok {
		tb.Fatalf("unexpected error: %v", err)
	}
	return ce
}

func typeOf(tb testing.TB, c *Cache, name string) string {
	tb.Helper()
	item := c.Context().Find(name)
	if item == nil {
		tb.Fatalf("%s is not bound", name)
	}
	return types.TypeString(item.Type)
}

func TestStaticFold(t *testing.T) {
	c, s := check(t, cs.Assign("x", cs.Binary(cs.Int(3), "+", cs.Int(4))))
	rhs, ok := s.Stmts[0].(*ast.AssignStmt).Rhs.(*ast.IntExpr)
	if !ok || rhs.Value != 7 || !rhs.Done() {
		t.Fatalf("rhs: %s", ast.StmtString(s.Stmts[0]))
	}
	if ty := typeOf(t, c, "x"); ty != "int" {
		t.Fatalf("type: %s", ty)
	}
}

func TestStaticDivisionByZero(t *testing.T) {
	ce := checkError(t, DefaultConfig(), cs.Assign("x", cs.Binary(cs.Int(1), "//", cs.Int(0))))
	if ce.Kind != ErrStaticDivZero {
		t.Fatalf("error: %v", ce)
	}
}

func TestMagicMethodOverload(t *testing.T) {
	c, s := check(t,
		cs.Assign("a", cs.Int(1)),
		cs.Assign("x", cs.Binary(cs.Id("a"), "+", cs.Float(2.5))),
		cs.Assign("y", cs.Binary(cs.Id("a"), "*", cs.Id("a"))),
	)
	if ty := typeOf(t, c, "x"); ty != "float" {
		t.Fatalf("type: %s", ty)
	}
	if ty := typeOf(t, c, "y"); ty != "int" {
		t.Fatalf("type: %s", ty)
	}
	call, ok := s.Stmts[1].(*ast.AssignStmt).Rhs.(*ast.CallExpr)
	if !ok {
		t.Fatalf("rhs: %s", ast.StmtString(s.Stmts[1]))
	}
	if id, ok := call.Expr.(*ast.IdExpr); !ok || !strings.HasPrefix(id.Value, "int.__add__") {
		t.Fatalf("callee: %s", ast.ExprString(call.Expr))
	}
}

func TestStaticIf(t *testing.T) {
	c, _ := check(t,
		cs.AssignTyped("N", cs.StaticType(types.StaticInt), cs.Int(3)),
		cs.If(cs.Binary(cs.Id("N"), ">", cs.Int(2)),
			cs.Suite(cs.Assign("x", cs.Int(1))),
			cs.Suite(cs.Assign("x", cs.Str("s")))),
	)
	if ty := typeOf(t, c, "x"); ty != "int" {
		t.Fatalf("type: %s", ty)
	}
}

func TestTupleConstruction(t *testing.T) {
	c, s := check(t,
		cs.Assign("t", cs.Tuple(cs.Int(1), cs.Str("x"))),
		cs.Assign("a", cs.Index(cs.Id("t"), cs.Int(1))),
		cs.Assign("b", cs.Index(cs.Id("t"), cs.Unary("-", cs.Int(2)))),
	)
	if ty := typeOf(t, c, "t"); ty != "Tuple[int,str]" {
		t.Fatalf("type: %s", ty)
	}
	if ty := typeOf(t, c, "a"); ty != "str" {
		t.Fatalf("type: %s", ty)
	}
	if ty := typeOf(t, c, "b"); ty != "int" {
		t.Fatalf("type: %s", ty)
	}
	if c.RealizedType("Tuple.N2[int,str]") == nil {
		t.Fatalf("expected a tuple realization")
	}
	if _, ok := s.Stmts[0].(*ast.AssignStmt).Rhs.(*ast.CallExpr); !ok {
		t.Fatalf("rhs: %s", ast.StmtString(s.Stmts[0]))
	}
}

func TestTupleIndexOutOfRange(t *testing.T) {
	ce := checkError(t, DefaultConfig(),
		cs.Assign("t", cs.Tuple(cs.Int(1))),
		cs.Assign("a", cs.Index(cs.Id("t"), cs.Int(3))),
	)
	if ce.Kind != ErrTupleRange {
		t.Fatalf("error: %v", ce)
	}
}

func TestNameNotFound(t *testing.T) {
	ce := checkError(t, DefaultConfig(), cs.Assign("x", cs.Id("y")))
	if ce.Kind != ErrIDNotFound || ce.Message() != "name 'y' is not defined" {
		t.Fatalf("error: %v", ce)
	}
	if ce.Kind.Category() != CategoryResolution {
		t.Fatalf("category: %s", ce.Kind.Category())
	}
}

func TestNoneDefault(t *testing.T) {
	c, _ := check(t, cs.Assign("x", cs.None()))
	if ty := typeOf(t, c, "x"); ty != "Optional[NoneType]" {
		t.Fatalf("type: %s", ty)
	}
}

func TestOptionalWrap(t *testing.T) {
	c, _ := check(t,
		cs.AssignTyped("x", cs.Instantiate(cs.Id("Optional"), cs.Id("int")), cs.Int(1)),
	)
	if ty := typeOf(t, c, "x"); ty != "Optional[int]" {
		t.Fatalf("type: %s", ty)
	}
}

func TestMatchLowering(t *testing.T) {
	c, s := check(t,
		cs.Assign("x", cs.Int(3)),
		cs.Match(cs.Id("x"),
			cs.Case(cs.Int(1), nil, cs.Suite(cs.Assign("y", cs.Int(10)))),
			cs.Case(cs.Id("_"), nil, cs.Suite(cs.Assign("y", cs.Int(20)))),
		),
	)
	lowered, ok := s.Stmts[1].(*ast.SuiteStmt)
	if !ok || len(lowered.Stmts) != 2 {
		t.Fatalf("match: %s", ast.StmtString(s.Stmts[1]))
	}
	if _, ok := lowered.Stmts[1].(*ast.WhileStmt); !ok {
		t.Fatalf("match: %s", ast.StmtString(lowered))
	}
	if ty := typeOf(t, c, "y"); ty != "int" {
		t.Fatalf("type: %s", ty)
	}
}

func TestMatchMultipleEllipses(t *testing.T) {
	ce := checkError(t, DefaultConfig(),
		cs.Assign("x", cs.Tuple(cs.Int(1), cs.Int(2))),
		cs.Match(cs.Id("x"),
			cs.Case(cs.Tuple(cs.Ellipsis(), cs.Int(1), cs.Ellipsis()), nil, cs.Suite(cs.Pass())),
		),
	)
	if ce.Kind != ErrMatchMultiEllipsis {
		t.Fatalf("error: %v", ce)
	}
}

func TestTupleUnroll(t *testing.T) {
	c, s := check(t,
		cs.Assign("t", cs.Tuple(cs.Int(1), cs.Str("a"))),
		cs.For("x", cs.Id("t"), cs.Suite(cs.ExprStmt(cs.Id("x")))),
	)
	unrolled, ok := s.Stmts[1].(*ast.SuiteStmt)
	if !ok || len(unrolled.Stmts) != 2 {
		t.Fatalf("for: %s", ast.StmtString(s.Stmts[1]))
	}
	loop, ok := unrolled.Stmts[1].(*ast.ForStmt)
	if !ok {
		t.Fatalf("for: %s", ast.StmtString(unrolled))
	}
	if ty := typeOf(t, c, loop.Var); ty != "int" {
		t.Fatalf("type: %s", ty)
	}
}

func TestForRange(t *testing.T) {
	c, _ := check(t,
		cs.Assign("n", cs.Int(0)),
		cs.For("i", cs.Call(cs.Id("range"), cs.Int(3)), cs.Suite(
			cs.Assign("n", cs.Binary(cs.Id("n"), "+", cs.Id("i"))),
		)),
	)
	if ty := typeOf(t, c, "i"); ty != "int" {
		t.Fatalf("type: %s", ty)
	}
}

func TestForNotIterable(t *testing.T) {
	ce := checkError(t, DefaultConfig(),
		cs.For("i", cs.Int(3), cs.Suite(cs.Pass())),
	)
	if ce.Kind != ErrExpectedGenerator {
		t.Fatalf("error: %v", ce)
	}
}

func TestFixpointFailure(t *testing.T) {
	ce := checkError(t, DefaultConfig(),
		cs.Func("f", []ast.Param{cs.Param("a", nil)}, nil, cs.Return(cs.Id("a"))),
		cs.Assign("x", cs.Id("f")),
	)
	if ce.Kind != ErrFixpoint || ce.Kind.Category() != CategoryFixpoint {
		t.Fatalf("error: %v", ce)
	}
}

func TestFixpointDump(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DumpOnFailure = true
	ce := checkError(t, cfg,
		cs.Func("f", []ast.Param{cs.Param("a", nil)}, nil, cs.Return(cs.Id("a"))),
		cs.Assign("x", cs.Id("f")),
	)
	if len(ce.Frames) != 2 || !strings.Contains(ce.Frames[1].Message, "unresolved statements") {
		t.Fatalf("error: %v", ce)
	}
}

func TestDefaultCycle(t *testing.T) {
	c := newCache(t, DefaultConfig())
	a, b := c.Vars.New(1), c.Vars.New(1)
	a.Default, b.Default = b, a
	x, y := cs.Id("x"), cs.Id("y")
	x.SetType(a)
	y.SetType(b)
	s := cs.Suite(cs.ExprStmt(x), cs.ExprStmt(y))
	_, err := c.tc.applyDefaults(s)
	ce, ok := AsCompileError(err)
	if !ok || ce.Kind != ErrDefaultCycle {
		t.Fatalf("error: %v", err)
	}
}

func TestDefaultOrder(t *testing.T) {
	c := newCache(t, DefaultConfig())
	intT := c.ctx.builtin("int")
	a, b := c.Vars.New(1), c.Vars.New(1)
	a.Default, b.Default = b, intT
	x := cs.Id("x")
	x.SetType(&types.Class{Name: "List", NiceName: "List", Generics: []types.Generic{{Name: "T", Type: a}, {Name: "U", Type: b}}})
	applied, err := c.tc.applyDefaults(cs.Suite(cs.ExprStmt(x)))
	if err != nil || !applied {
		t.Fatalf("applied: %v, %v", applied, err)
	}
	if ty := types.TypeString(a); ty != "int" {
		t.Fatalf("type: %s", ty)
	}
}

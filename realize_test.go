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

func identity(name string) *ast.FunctionStmt {
	return cs.Func(name, []ast.Param{cs.Param("a", nil)}, nil, cs.Return(cs.Id("a")))
}

func TestRealizationCache(t *testing.T) {
	c, _ := check(t,
		identity("f"),
		cs.Assign("x", cs.Call(cs.Id("f"), cs.Int(1))),
		cs.Assign("y", cs.Call(cs.Id("f"), cs.Int(2))),
		cs.Assign("z", cs.Call(cs.Id("f"), cs.Str("s"))),
	)
	if n := len(c.Functions["f"].Realizations); n != 2 {
		t.Fatalf("realizations: %d", n)
	}
	if ty := typeOf(t, c, "z"); ty != "str" {
		t.Fatalf("type: %s", ty)
	}
	for name, r := range c.Functions["f"].Realizations {
		if r.RealizedName != name || c.RealizedFunction(name) != r {
			t.Fatalf("realization: %s", name)
		}
		if r.Category != IRBodied || r.Ast == nil || !r.Ast.Suite.Done() {
			t.Fatalf("realization: %s", name)
		}
	}
}

func TestOverloads(t *testing.T) {
	c, _ := check(t,
		cs.Func("h", []ast.Param{cs.Param("a", cs.TypeId("int"))}, cs.TypeId("int"), cs.Return(cs.Id("a"))),
		cs.Func("h", []ast.Param{cs.Param("a", cs.TypeId("str"))}, cs.TypeId("str"), cs.Return(cs.Id("a"))),
		cs.Assign("x", cs.Call(cs.Id("h"), cs.Int(1))),
		cs.Assign("y", cs.Call(cs.Id("h"), cs.Str("s"))),
	)
	if ty := typeOf(t, c, "x"); ty != "int" {
		t.Fatalf("type: %s", ty)
	}
	if ty := typeOf(t, c, "y"); ty != "str" {
		t.Fatalf("type: %s", ty)
	}
	if names := c.Overloads["h"]; len(names) != 2 || names[1] != "h:1" {
		t.Fatalf("overloads: %v", names)
	}
	if c.Rev("h:1") != "h" {
		t.Fatalf("rev: %s", c.Rev("h:1"))
	}
}

func TestPartialCall(t *testing.T) {
	c, _ := check(t,
		cs.Func("add", []ast.Param{cs.Param("a", nil), cs.Param("b", nil)}, nil,
			cs.Return(cs.Binary(cs.Id("a"), "+", cs.Id("b")))),
		cs.Assign("p", cs.Call(cs.Id("add"), cs.Int(1), cs.Ellipsis())),
		cs.Assign("x", cs.Call(cs.Id("p"), cs.Int(2))),
		cs.Assign("y", cs.Call(cs.Id("add"), cs.Int(1), cs.Int(2))),
	)
	if ty := typeOf(t, c, "x"); ty != "int" {
		t.Fatalf("type: %s", ty)
	}
	if n := len(c.Functions["add"].Realizations); n != 1 {
		t.Fatalf("realizations: %d", n)
	}
	if c.RealizedFunction("add[int,int]") == nil {
		t.Fatalf("expected add[int,int]")
	}
}

func TestStarArgs(t *testing.T) {
	c, _ := check(t,
		cs.Func("s", []ast.Param{cs.StarParam("args")}, nil, cs.Return(cs.Id("args"))),
		cs.Assign("x", cs.Call(cs.Id("s"), cs.Int(1), cs.Str("a"))),
	)
	if ty := typeOf(t, c, "x"); ty != "Tuple[int,str]" {
		t.Fatalf("type: %s", ty)
	}
}

func TestKeywordStarArgs(t *testing.T) {
	c, _ := check(t,
		cs.Func("k", []ast.Param{cs.KwStarParam("kw")}, nil, cs.Return(cs.Id("kw"))),
		cs.Assign("x", cs.CallArgs(cs.Id("k"), cs.Arg("a", cs.Int(1)))),
	)
	cls := types.ClassOf(c.Context().Find("x").Type)
	if cls == nil || !strings.HasPrefix(cls.Name, types.KwTupleName+".N") {
		t.Fatalf("type: %s", typeOf(t, c, "x"))
	}
}

func TestClassConstruction(t *testing.T) {
	c, _ := check(t,
		cs.Class("Point", nil, []ast.Param{cs.Param("x", cs.TypeId("int")), cs.Param("y", cs.TypeId("int"))}),
		cs.Assign("p", cs.Call(cs.Id("Point"), cs.Int(1), cs.Int(2))),
		cs.Assign("a", cs.Dot(cs.Id("p"), "x")),
	)
	if ty := typeOf(t, c, "a"); ty != "int" {
		t.Fatalf("type: %s", ty)
	}
	r := c.RealizedType("Point")
	if r == nil || len(r.Fields) != 2 || r.Fields[1].Name != "y" {
		t.Fatalf("realization: %v", r)
	}
}

func TestRealizationFrames(t *testing.T) {
	ce := checkError(t, DefaultConfig(),
		cs.Func("g", []ast.Param{cs.Param("a", nil)}, nil,
			cs.Return(cs.Binary(cs.Id("a"), "+", cs.Str("s")))),
		cs.Assign("x", cs.Call(cs.Id("g"), cs.Int(1))),
	)
	if ce.Kind != ErrNoMethod || len(ce.Frames) < 2 {
		t.Fatalf("error: %v", ce)
	}
	if !strings.HasPrefix(ce.Frames[1].Message, "while realizing g") {
		t.Fatalf("frame: %s", ce.Frames[1].Message)
	}
}

func TestRealizationFailureIsNotCached(t *testing.T) {
	c := newCache(t, DefaultConfig())
	_, err := c.Typecheck(cs.Suite(
		cs.Func("g", []ast.Param{cs.Param("a", nil)}, nil,
			cs.Return(cs.Binary(cs.Id("a"), "+", cs.Str("s")))),
		cs.Assign("x", cs.Call(cs.Id("g"), cs.Int(1))),
	))
	if err == nil {
		t.Fatalf("expected an error")
	}
	if n := len(c.Functions["g"].Realizations); n != 0 {
		t.Fatalf("realizations: %d", n)
	}
}

func TestMaxRealizationDepth(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxRealizationDepth = 1
	ce := checkError(t, cfg,
		identity("g"),
		cs.Func("f", []ast.Param{cs.Param("a", nil)}, nil, cs.Return(cs.Call(cs.Id("g"), cs.Id("a")))),
		cs.Assign("x", cs.Call(cs.Id("f"), cs.Int(1))),
	)
	if ce.Kind != ErrMaxRealization || ce.Kind.Category() != CategoryRealization {
		t.Fatalf("error: %v", ce)
	}
}

func TestRealizeBuiltinWithoutBody(t *testing.T) {
	ce := checkError(t, DefaultConfig(),
		&ast.FunctionStmt{Name: "b", NiceName: "b", Params: []ast.Param{cs.Param("a", nil)}},
		cs.Assign("x", cs.Call(cs.Id("b"), cs.Int(1))),
	)
	if ce.Kind != ErrFnRealizeBuiltin {
		t.Fatalf("error: %v", ce)
	}
}

func TestCacheRealizeFunction(t *testing.T) {
	c := newCache(t, DefaultConfig())
	str := c.FindClass("str")
	r, err := c.RealizeFunction(c.FindFunction("len"), []types.Type{str}, nil, nil)
	if err != nil || r == nil {
		t.Fatalf("realize: %v", err)
	}
	if r.Category != IRBodied {
		t.Fatalf("category: %s", r.Category)
	}
	if ty := types.TypeString(r.Type.Ret); ty != "int" {
		t.Fatalf("type: %s", ty)
	}
	again, err := c.RealizeFunction(c.FindFunction("len"), []types.Type{&types.Class{Name: "str", NiceName: "str"}}, nil, nil)
	if err != nil || again != r {
		t.Fatalf("expected a cached realization")
	}
}

func TestCacheRealizeInternal(t *testing.T) {
	c := newCache(t, DefaultConfig())
	opt, err := c.RealizeType(c.FindClass("Optional"), []types.Type{c.FindClass("int")})
	if err != nil || opt == nil {
		t.Fatalf("realize: %v", err)
	}
	if opt.RealizedName != "Optional[int]" {
		t.Fatalf("name: %s", opt.RealizedName)
	}
	r, err := c.RealizeFunction(c.FindFunction("unwrap"), []types.Type{opt.Type}, nil, nil)
	if err != nil || r == nil {
		t.Fatalf("realize: %v", err)
	}
	if r.Category != IRInternal || r.Ast != c.Functions[r.Type.Name].Ast {
		t.Fatalf("category: %s", r.Category)
	}
	if ty := types.TypeString(r.Type.Ret); ty != "int" {
		t.Fatalf("type: %s", ty)
	}
}

func TestCacheFindMethod(t *testing.T) {
	c := newCache(t, DefaultConfig())
	i := c.FindClass("int")
	fn := c.FindMethod(i, "__add__", []types.Type{c.FindClass("float")})
	if fn == nil {
		t.Fatalf("no method")
	}
	if ty := types.TypeString(fn.Ret); ty != "float" {
		t.Fatalf("type: %s", ty)
	}
	if c.FindMethod(i, "__missing__", nil) != nil {
		t.Fatalf("unexpected method")
	}
	if c.FindClass("nothing") != nil || c.FindFunction("nothing") != nil {
		t.Fatalf("unexpected declaration")
	}
}

func TestCacheRealizedListing(t *testing.T) {
	c, _ := check(t,
		identity("f"),
		cs.Assign("x", cs.Call(cs.Id("f"), cs.Str("s"))),
		cs.Assign("y", cs.Call(cs.Id("f"), cs.Int(1))),
	)
	fs := c.RealizedFunctions()
	for i := 1; i < len(fs); i++ {
		if fs[i-1].RealizedName >= fs[i].RealizedName {
			t.Fatalf("order: %s, %s", fs[i-1].RealizedName, fs[i].RealizedName)
		}
	}
	if c.PendingRealizations.Size() < 2 {
		t.Fatalf("pending: %d", c.PendingRealizations.Size())
	}
}

func TestTemporaryVars(t *testing.T) {
	c := newCache(t, DefaultConfig())
	a, b := c.GetTemporaryVar("v"), c.GetTemporaryVar("v")
	if a == b || !strings.HasPrefix(a, "%_v") {
		t.Fatalf("vars: %s, %s", a, b)
	}
	if s1, s2 := c.GenerateSrcInfo(), c.GenerateSrcInfo(); s1 == s2 {
		t.Fatalf("src: %v", s1)
	}
}

// ~1.2 ms/op
func BenchmarkTypecheck(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		c := newCache(b, DefaultConfig())
		_, err := c.Typecheck(cs.Suite(
			identity("f"),
			cs.Assign("x", cs.Call(cs.Id("f"), cs.Int(1))),
			cs.Assign("y", cs.Binary(cs.Id("x"), "+", cs.Float(2.5))),
			cs.Assign("t", cs.Tuple(cs.Id("x"), cs.Str("s"))),
		))
		if err != nil {
			b.Fatal(err)
		}
	}
}

func TestTypedPartialCall(t *testing.T) {
	c, _ := check(t,
		cs.Func("f", []ast.Param{cs.Param("a", cs.TypeId("int")), cs.Param("b", cs.TypeId("str"))},
			cs.TypeId("bool"), cs.Return(cs.Bool(true))),
		cs.Assign("p", cs.Call(cs.Id("f"), cs.Int(1), cs.Ellipsis())),
		cs.Assign("x", cs.Call(cs.Id("p"), cs.Str("x"))),
		cs.Assign("y", cs.Call(cs.Id("f"), cs.Int(1), cs.Str("x"))),
	)
	if ty := typeOf(t, c, "x"); ty != "bool" {
		t.Fatalf("type: %s", ty)
	}
	if n := len(c.Functions["f"].Realizations); n != 1 {
		t.Fatalf("realizations: %d", n)
	}
}

func TestSelfReferentialClass(t *testing.T) {
	c, _ := check(t,
		cs.Class("Node", nil, []ast.Param{
			cs.Param("v", cs.TypeId("int")),
			cs.Param("next", cs.Instantiate(cs.Id("Optional"), cs.Id("Node"))),
		}),
		cs.Assign("n", cs.Call(cs.Id("Node"), cs.Int(1), cs.None())),
	)
	r := c.RealizedType("Node")
	if r == nil {
		t.Fatalf("expected Node")
	}
	if len(r.Fields) != 2 || types.TypeString(r.Fields[1].Type) != "Optional[Node]" {
		t.Fatalf("fields: %v", r.Fields)
	}
}

func TestUnboundedTypeRealization(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxRealizationDepth = 50
	ce := checkError(t, cfg,
		cs.Class("A", []ast.Param{cs.Generic("T", nil)}, []ast.Param{
			cs.Param("v", cs.Id("T")),
			cs.Param("n", cs.Instantiate(cs.Id("Optional"),
				cs.Instantiate(cs.Id("A"), cs.Instantiate(cs.Id("Tuple"), cs.Id("T"))))),
		}),
		cs.Assign("a", cs.Call(cs.Id("A"), cs.Int(1), cs.None())),
	)
	if ce.Kind != ErrMaxRealization {
		t.Fatalf("error: %v", ce)
	}
}

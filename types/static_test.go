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

package types

import "testing"

func TestFoldBinary(t *testing.T) {
	cases := []struct {
		op   string
		x, y StaticValue
		want StaticValue
	}{
		{"+", IntValue(3), IntValue(4), IntValue(7)},
		{"//", IntValue(-7), IntValue(2), IntValue(-3)},
		{"%", IntValue(-7), IntValue(2), IntValue(-1)},
		{"<", IntValue(1), IntValue(2), BoolValue(true)},
		{"&&", IntValue(1), IntValue(0), BoolValue(false)},
		{"+", StrValue("a"), StrValue("b"), StrValue("ab")},
		{"==", StrValue("a"), StrValue("a"), BoolValue(true)},
	}
	for _, c := range cases {
		v, err := FoldBinary(c.op, c.x, c.y)
		if err != nil {
			t.Fatalf("%s %s %s: %v", c.x, c.op, c.y, err)
		}
		if !v.Equal(c.want) {
			t.Fatalf("%s %s %s: %s", c.x, c.op, c.y, v)
		}
	}
	if _, err := FoldBinary("//", IntValue(1), IntValue(0)); err != ErrStaticDivZero {
		t.Fatalf("error: %v", err)
	}
	if _, err := FoldBinary("+", IntValue(1), StrValue("a")); err == nil {
		t.Fatalf("expected an error")
	}
}

func TestStaticEvaluate(t *testing.T) {
	n := NewUnbound(1, 1)
	n.Static = StaticInt
	s := NewStaticExpr(StaticInt, TermBinary{Op: "+", X: TermRef{"N"}, Y: TermLit{IntValue(1)}}, []Generic{{Name: "N", Type: n}})
	if _, ok := s.Evaluate(); ok {
		t.Fatalf("evaluated before N is bound")
	}
	n.Bind(NewStaticInt(2))
	v, ok := s.Evaluate()
	if !ok || v.Int != 3 {
		t.Fatalf("value: %s", v)
	}
	if name := RealizedName(s); name != "3" {
		t.Fatalf("name: %s", name)
	}
}

func TestRealizedName(t *testing.T) {
	intT := &Class{Name: "int", NiceName: "int"}
	strT := &Class{Name: "str", NiceName: "str"}
	tuple := &Record{
		Class: Class{Name: TupleName + ".N2", NiceName: TupleName, Generics: []Generic{{Name: "T1", Type: intT}, {Name: "T2", Type: strT}}},
		Args:  []Type{intT, strT},
	}
	if name := RealizedName(tuple); name != "Tuple.N2[int,str]" {
		t.Fatalf("name: %s", name)
	}
	if s := TypeString(tuple); s != "Tuple[int,str]" {
		t.Fatalf("type: %s", s)
	}
	if !IsTuple(tuple) || IsTuple(intT) {
		t.Fatalf("IsTuple")
	}
	l := NewUnbound(300, 1)
	if TypeString(l) != "?" || CanRealize(l) {
		t.Fatalf("unbound: %s", TypeString(l))
	}
	l.Bind(intT)
	if RealizedName(l) != "int" || !CanRealize(l) {
		t.Fatalf("linked: %s", RealizedName(l))
	}
}

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

package typeutil

import (
	"testing"

	"github.com/airen3339/codon/types"
)

func scalar(name string) *types.Record { return types.NewRecord(name, name, nil, nil) }

func list(t types.Type) *types.Class {
	return &types.Class{Name: "List", NiceName: "List", Generics: []types.Generic{{Name: "T", NiceName: "T", Type: t}}}
}

func tuple(ts ...types.Type) *types.Record {
	gs := make([]types.Generic, len(ts))
	for i, t := range ts {
		gs[i] = types.Generic{Name: "T", NiceName: "T", Type: t}
	}
	return types.NewRecord("Tuple.N"+string(rune('0'+len(ts))), "Tuple", gs, ts)
}

func TestUnifyLinksLowerId(t *testing.T) {
	var vars VarTracker
	a, b := vars.New(0), vars.New(0)
	u := NewUndo(nil)
	if s := Unify(a, b, u); s != 0 {
		t.Fatalf("score: %d", s)
	}
	if !b.IsLinked() || a.IsLinked() {
		t.Fatalf("expected the higher id to be linked")
	}
	if s := Unify(a, b, u); s != 1 {
		t.Fatalf("score: %d", s)
	}
	u.Undo()
	if a.IsLinked() || b.IsLinked() {
		t.Fatalf("links remain after undo")
	}
}

func TestUnifySymmetricFailure(t *testing.T) {
	var vars VarTracker
	intT, strT := scalar("int"), scalar("str")
	pairs := [][2]types.Type{
		{intT, strT},
		{list(intT), list(strT)},
		{tuple(intT, strT), tuple(strT, intT)},
		{tuple(intT), tuple(intT, intT)},
		{list(intT), intT},
		{types.NewStaticInt(1), types.NewStaticInt(2)},
		{types.NewStaticInt(1), types.NewStaticStr("1")},
		{types.NewStaticInt(1), intT},
		{vars.NewStatic(0, types.StaticInt), intT},
		{types.NewGeneric(1, "T"), intT},
		{&types.Union{Types: []types.Type{intT}, Sealed: true}, strT},
	}
	for i, p := range pairs {
		u1, u2 := NewUndo(nil), NewUndo(nil)
		s1 := Unify(p[0], p[1], u1)
		u1.Undo()
		s2 := Unify(p[1], p[0], u2)
		u2.Undo()
		if s1 != -1 || s2 != -1 {
			t.Fatalf("pair %d (%s, %s): %d, %d", i, types.TypeString(p[0]), types.TypeString(p[1]), s1, s2)
		}
	}
}

func TestUndoRestoresLinks(t *testing.T) {
	var vars VarTracker
	intT := scalar("int")
	x, y := vars.New(1), vars.New(2)
	a, b := tuple(x, list(y)), tuple(intT, list(x))

	u := NewUndo(nil)
	s := Unify(a, b, u)
	if s < 0 {
		t.Fatalf("unify failed")
	}
	if types.TypeString(a) != "Tuple[int,List[int]]" {
		t.Fatalf("type: %s", types.TypeString(a))
	}
	if u.Linked() != 2 {
		t.Fatalf("linked: %d", u.Linked())
	}
	u.Undo()
	if !x.IsUnbound() || !y.IsUnbound() || x.Level() != 1 || y.Level() != 2 {
		t.Fatalf("variables not restored: %s %s", types.DebugString(x, types.PrintDebug), types.DebugString(y, types.PrintDebug))
	}

	u2 := NewUndo(nil)
	if s2 := Unify(a, b, u2); s2 != s {
		t.Fatalf("retry score: %d, expected %d", s2, s)
	}
}

func TestOccursCheck(t *testing.T) {
	var vars VarTracker
	x := vars.New(0)
	containers := []types.Type{
		list(x),
		tuple(scalar("int"), x),
		list(tuple(list(x))),
		&types.Func{Name: "f", Args: []types.Type{x}, Ret: scalar("int")},
	}
	for _, c := range containers {
		u := NewUndo(nil)
		if s := Unify(x, c, u); s != -1 {
			t.Fatalf("unified %s with %s", types.DebugString(x, types.PrintDebug), types.TypeString(c))
		}
		u.Undo()
		if !x.IsUnbound() {
			t.Fatalf("variable was linked")
		}
	}
}

func TestOccursAdjustsLevels(t *testing.T) {
	var vars VarTracker
	outer, inner := vars.New(1), vars.New(3)
	u := NewUndo(nil)
	if Unify(outer, list(inner), u) < 0 {
		t.Fatalf("unify failed")
	}
	if inner.Level() != 1 || u.Leveled() != 1 {
		t.Fatalf("level: %d, leveled: %d", inner.Level(), u.Leveled())
	}
	u.Undo()
	if inner.Level() != 3 {
		t.Fatalf("level after undo: %d", inner.Level())
	}
}

func genericFunc() *types.Func {
	T := types.NewGeneric(10, "T")
	return &types.Func{Name: "foo", NiceName: "foo", Args: []types.Type{T, T}, Ret: T,
		FuncGenerics: []types.Generic{{Name: "T", NiceName: "T", ID: 10, Type: T}}}
}

func TestInstantiateSharingAndFreshness(t *testing.T) {
	vars := VarTracker{NextId: 256}
	f := genericFunc()
	f1 := Instantiate(f, 1, &vars, nil).(*types.Func)
	f2 := Instantiate(f, 1, &vars, nil).(*types.Func)
	if f1.Args[0] != f1.Args[1] || f1.Args[0] != f1.Ret {
		t.Fatalf("occurrences of the same generic were not shared")
	}
	if s := Unify(f1.Args[0], f1.Args[1], NewUndo(nil)); s != 1 {
		t.Fatalf("score: %d", s)
	}
	if f1.Args[0] == f2.Args[0] {
		t.Fatalf("independent instantiations share variables")
	}
	a, b := types.UnboundOf(f1.Args[0]), types.UnboundOf(f2.Args[0])
	if a == nil || b == nil || a.ID() == b.ID() || a.ID() < 256 {
		t.Fatalf("ids: %s %s", types.DebugString(f1, types.PrintDebug), types.DebugString(f2, types.PrintDebug))
	}
	if !types.IsInstantiated(f1) || types.IsInstantiated(f) {
		t.Fatalf("instantiation state")
	}
}

func TestGeneralizeRoundTrip(t *testing.T) {
	var vars VarTracker
	outer := vars.New(0)
	x, y := vars.New(1), vars.New(2)
	f := &types.Func{Name: "bar", Args: []types.Type{x, list(y), outer}, Ret: x}

	g := Generalize(f, 1).(*types.Func)
	if len(types.Unbounds(g)) != 1 || types.Unbounds(g)[0] != outer {
		t.Fatalf("type: %s", types.DebugString(g, types.PrintDebug))
	}
	inst := Instantiate(g, 1, &vars, nil).(*types.Func)
	if len(types.Unbounds(inst)) != 3 {
		t.Fatalf("type: %s", types.DebugString(inst, types.PrintDebug))
	}
	if inst.Args[0] != inst.Ret || inst.Args[2] != outer {
		t.Fatalf("type: %s", types.DebugString(inst, types.PrintDebug))
	}
	if types.DebugString(inst, types.PrintNice) != "bar(?,List[?],?) -> ?" {
		t.Fatalf("type: %s", types.TypeString(inst))
	}
}

func TestUnifySizedInt(t *testing.T) {
	var vars VarTracker
	N := vars.NewStatic(0, types.StaticInt)
	sized := types.NewRecord("Int", "Int", []types.Generic{{Name: "N", NiceName: "N", Type: N}}, nil)
	if Unify(scalar("int"), sized, nil) < 0 {
		t.Fatalf("unify failed")
	}
	if types.RealizedName(sized) != "Int[64]" {
		t.Fatalf("type: %s", types.RealizedName(sized))
	}
}

func TestUnifyStatics(t *testing.T) {
	var vars VarTracker
	N := vars.NewStatic(0, types.StaticInt)
	ref := types.NewStaticExpr(types.StaticInt, types.TermRef{Name: "N"}, []types.Generic{{Name: "N", Type: N}})
	if s := Unify(ref, types.NewStaticInt(4), NewUndo(nil)); s < 0 {
		t.Fatalf("unify failed")
	}
	sum := types.NewStaticExpr(types.StaticInt, types.TermBinary{Op: "+", X: types.TermRef{Name: "N"}, Y: types.TermLit{Value: types.IntValue(3)}},
		[]types.Generic{{Name: "N", Type: N}})
	if v, ok := sum.Evaluate(); !ok || v.Int != 7 {
		t.Fatalf("value: %v", v)
	}
	if s := Unify(sum, types.NewStaticInt(7), nil); s != 2 {
		t.Fatalf("score: %d", s)
	}
	if !CanUnify(vars.NewStatic(0, types.StaticStr), types.NewStaticStr("x"), nil) {
		t.Fatalf("unify failed")
	}
}

func TestOpenUnionAbsorbs(t *testing.T) {
	intT, strT := scalar("int"), scalar("str")
	u := &types.Union{}
	undo := NewUndo(nil)
	if Unify(u, intT, undo) != 1 || Unify(u, strT, undo) != 1 {
		t.Fatalf("type: %s", types.TypeString(u))
	}
	if s := Unify(u, scalar("int"), undo); s < 0 || len(u.Types) != 2 {
		t.Fatalf("type: %s", types.TypeString(u))
	}
	u.Seal()
	if types.RealizedName(u) != "Union[int,str]" {
		t.Fatalf("type: %s", types.RealizedName(u))
	}
	other := &types.Union{Types: []types.Type{strT, intT, strT}, Sealed: true}
	if s := Unify(u, other, undo); s < 0 {
		t.Fatalf("sealed unions did not unify")
	}
	undo.Undo()
	if len(u.Types) != 0 {
		t.Fatalf("union alternatives remain after undo")
	}
}

func TestCallableTrait(t *testing.T) {
	var vars VarTracker
	intT, strT := scalar("int"), scalar("str")
	f := &types.Func{Name: "f", Args: []types.Type{intT, strT}, Ret: scalar("bool")}
	x := vars.New(0)
	u := NewUndo(nil)
	if Unify(x, &types.CallableTrait{Args: []types.Type{intT, vars.New(0)}}, u) != 0 {
		t.Fatalf("trait not attached")
	}
	if x.Trait == nil {
		t.Fatalf("trait missing")
	}
	if Unify(x, &types.Func{Name: "g", Args: []types.Type{strT}}, u) != -1 {
		t.Fatalf("bad arity accepted")
	}
	if Unify(x, f, u) < 0 {
		t.Fatalf("unify failed")
	}
	if !x.IsLinked() {
		t.Fatalf("variable not linked")
	}
}

// ~400 ns/op
func BenchmarkUnifyTuple(b *testing.B) {
	var vars VarTracker
	intT, strT := scalar("int"), scalar("str")
	for i := 0; i < b.N; i++ {
		x, y := vars.New(1), vars.New(1)
		u := NewUndo(nil)
		Unify(tuple(x, list(y)), tuple(intT, list(strT)), u)
		u.Undo()
	}
}

func TestTryUnifyRollsBackFailure(t *testing.T) {
	var vars VarTracker
	intT, strT := scalar("int"), scalar("str")
	x, y := vars.New(0), vars.New(0)
	u := NewUndo(nil)
	if s := TryUnify(x, intT, u); s < 0 {
		t.Fatalf("unify failed")
	}
	mark := u.Len()
	if s := TryUnify(tuple(y, intT), tuple(strT, strT), u); s != -1 {
		t.Fatalf("score: %d", s)
	}
	if !y.IsUnbound() || u.Len() != mark {
		t.Fatalf("failed unification not rolled back: %s", types.DebugString(y, types.PrintDebug))
	}
	if types.TypeString(x) != "int" {
		t.Fatalf("type: %s", types.TypeString(x))
	}
}

func TestFlattenLinks(t *testing.T) {
	var vars VarTracker
	intT := scalar("int")
	a, b := vars.New(0), vars.New(0)
	b.Bind(intT)
	a.Bind(b)
	vars.FlattenLinks()
	if a.Target() != types.Type(intT) {
		t.Fatalf("target: %s", types.DebugString(a.Target(), types.PrintDebug))
	}
}

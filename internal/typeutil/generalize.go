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
	"github.com/airen3339/codon/types"
)

// Generalize returns a copy of t where every unbound type-variable at or above level is
// replaced by a generic type-variable with the same id. Type-variables from enclosing
// levels are shared.
func Generalize(t types.Type, level int) types.Type {
	if t == nil {
		return nil
	}
	switch t := t.(type) {
	case *types.Link:
		switch {
		case t.IsLinked():
			return Generalize(t.Target(), level)
		case t.IsGeneric() || t.Level() < level:
			return t
		}
		g := types.NewGeneric(t.ID(), t.GenericName)
		g.Src, g.Static = t.Src, t.Static
		if t.Trait != nil {
			g.Trait = Generalize(t.Trait, level)
		}
		if d := t.Default; d != nil {
			// Cleared while visiting, for defaults which refer back to t.
			t.Default = nil
			g.Default = Generalize(d, level)
			t.Default = d
		}
		return g

	case *types.Class:
		c := *t
		c.Generics, c.HiddenGenerics = generalizeGenerics(t.Generics, level), generalizeGenerics(t.HiddenGenerics, level)
		return &c

	case *types.Record:
		return generalizeRecord(t, level)

	case *types.Partial:
		p := *t
		p.Record = *generalizeRecord(&t.Record, level)
		p.Known = append([]bool(nil), t.Known...)
		return &p

	case *types.Func:
		f := *t
		f.Args = generalizeList(t.Args, level)
		f.Ret = Generalize(t.Ret, level)
		f.FuncGenerics = generalizeGenerics(t.FuncGenerics, level)
		f.Parent = Generalize(t.Parent, level)
		return &f

	case *types.Static:
		s := *t
		s.Generics = generalizeGenerics(t.Generics, level)
		return &s

	case *types.Union:
		return &types.Union{Base: t.Base, Types: generalizeList(t.Types, level), Sealed: t.Sealed}

	case *types.CallableTrait:
		return &types.CallableTrait{Base: t.Base, Args: generalizeList(t.Args, level), Ret: Generalize(t.Ret, level)}

	case *types.TypeTrait:
		return &types.TypeTrait{Base: t.Base, Type: Generalize(t.Type, level)}
	}
	return t
}

func generalizeRecord(t *types.Record, level int) *types.Record {
	r := *t
	r.Generics, r.HiddenGenerics = generalizeGenerics(t.Generics, level), generalizeGenerics(t.HiddenGenerics, level)
	r.Args = generalizeList(t.Args, level)
	return &r
}

func generalizeList(ts []types.Type, level int) []types.Type {
	if ts == nil {
		return nil
	}
	out := make([]types.Type, len(ts))
	for i, t := range ts {
		out[i] = Generalize(t, level)
	}
	return out
}

func generalizeGenerics(gs []types.Generic, level int) []types.Generic {
	if gs == nil {
		return nil
	}
	out := make([]types.Generic, len(gs))
	for i, g := range gs {
		out[i] = g
		out[i].Type = Generalize(g.Type, level)
	}
	return out
}

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

// Instantiate returns a copy of t where every generic type-variable is replaced by a new
// unbound type-variable at the given level. Occurrences of the same generic share one
// new variable through lookup, which may be passed in to correlate several instantiations
// or to bind generics (by id) to known types.
func Instantiate(t types.Type, level int, vars *VarTracker, lookup map[int]types.Type) types.Type {
	// Non-generic types can be shared:
	if t == nil || types.IsInstantiated(t) {
		return t
	}
	if lookup == nil {
		lookup = make(map[int]types.Type, 8)
	}
	inst := instantiator{level: level, vars: vars, lookup: lookup}
	return inst.visit(t)
}

type instantiator struct {
	level  int
	vars   *VarTracker
	lookup map[int]types.Type
}

func (inst *instantiator) visit(t types.Type) types.Type {
	if t == nil {
		return nil
	}
	switch t := t.(type) {
	case *types.Link:
		switch {
		case t.IsLinked():
			return inst.visit(t.Target())
		case t.IsUnbound():
			return t
		}
		if next, ok := inst.lookup[t.ID()]; ok {
			return next
		}
		next := inst.vars.New(inst.level)
		next.Src, next.Static, next.GenericName = t.Src, t.Static, t.GenericName
		inst.lookup[t.ID()] = next
		if t.Trait != nil {
			next.Trait = inst.visit(t.Trait)
		}
		if t.Default != nil {
			next.Default = inst.visit(t.Default)
		}
		return next

	case *types.Class:
		c := *t
		c.Generics, c.HiddenGenerics = inst.generics(t.Generics), inst.generics(t.HiddenGenerics)
		return &c

	case *types.Record:
		return inst.record(t)

	case *types.Partial:
		p := *t
		p.Record = *inst.record(&t.Record)
		p.Known = append([]bool(nil), t.Known...)
		return &p

	case *types.Func:
		f := *t
		f.FuncGenerics = inst.generics(t.FuncGenerics)
		f.Parent = inst.visit(t.Parent)
		f.Args = inst.list(t.Args)
		f.Ret = inst.visit(t.Ret)
		return &f

	case *types.Static:
		s := *t
		s.Generics = inst.generics(t.Generics)
		return &s

	case *types.Union:
		return &types.Union{Base: t.Base, Types: inst.list(t.Types), Sealed: t.Sealed}

	case *types.CallableTrait:
		return &types.CallableTrait{Base: t.Base, Args: inst.list(t.Args), Ret: inst.visit(t.Ret)}

	case *types.TypeTrait:
		return &types.TypeTrait{Base: t.Base, Type: inst.visit(t.Type)}
	}
	panic("unexpected generic type " + t.Kind().String())
}

func (inst *instantiator) record(t *types.Record) *types.Record {
	r := *t
	r.Generics, r.HiddenGenerics = inst.generics(t.Generics), inst.generics(t.HiddenGenerics)
	r.Args = inst.list(t.Args)
	return &r
}

func (inst *instantiator) list(ts []types.Type) []types.Type {
	if ts == nil {
		return nil
	}
	out := make([]types.Type, len(ts))
	for i, t := range ts {
		out[i] = inst.visit(t)
	}
	return out
}

func (inst *instantiator) generics(gs []types.Generic) []types.Generic {
	if gs == nil {
		return nil
	}
	out := make([]types.Generic, len(gs))
	for i, g := range gs {
		out[i] = g
		out[i].Type = inst.visit(g.Type)
		if g.Default != nil {
			out[i].Default = inst.visit(g.Default)
		}
	}
	return out
}

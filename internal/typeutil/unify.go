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

// Unify attempts to make a and b equal by linking their unbound type-variables. It returns
// a non-negative score on success (higher scores indicate closer matches) or -1 on failure.
//
// Updates are recorded in u when u is non-nil; with a nil u, the updates are permanent.
// Failed unification may leave partial updates behind, which the caller is expected to roll back.
func Unify(a, b types.Type, u *Undo) int {
	if a == nil || b == nil {
		return -1
	}
	if l, ok := a.(*types.Link); ok {
		return unifyLink(l, b, u)
	}
	if l, ok := b.(*types.Link); ok {
		return unifyLink(l, a, u)
	}
	// Traits and open unions are always checked from their own side:
	if isTrait(b) && !isTrait(a) {
		a, b = b, a
	}
	if _, ok := b.(*types.Union); ok {
		if _, ok := a.(*types.Union); !ok && !isTrait(a) {
			a, b = b, a
		}
	}

	switch a := a.(type) {
	case *types.Class:
		bc, ok := b.(*types.Class)
		if !ok {
			return -1
		}
		return unifyClass(a, bc, u)
	case *types.Record:
		br, ok := b.(*types.Record)
		if !ok {
			return -1
		}
		return unifyRecord(a, br, u)
	case *types.Partial:
		bp, ok := b.(*types.Partial)
		if !ok || a.Func.Name != bp.Func.Name {
			return -1
		}
		return unifyRecord(&a.Record, &bp.Record, u)
	case *types.Func:
		bf, ok := b.(*types.Func)
		if !ok {
			return -1
		}
		return unifyFunc(a, bf, u)
	case *types.Static:
		bs, ok := b.(*types.Static)
		if !ok {
			return -1
		}
		return unifyStatic(a, bs, u)
	case *types.Union:
		return unifyUnion(a, b, u)
	case *types.CallableTrait:
		return unifyCallable(a, b, u)
	case *types.TypeTrait:
		if bt, ok := b.(*types.TypeTrait); ok {
			return Unify(a.Type, bt.Type, u)
		}
		return Unify(a.Type, b, u)
	}
	return -1
}

func isTrait(t types.Type) bool {
	switch t.(type) {
	case *types.CallableTrait, *types.TypeTrait:
		return true
	}
	return false
}

func unifyLink(l *types.Link, b types.Type, u *Undo) int {
	switch l.State() {
	case types.LinkedState:
		return Unify(l.Target(), b, u)
	case types.GenericState:
		// Generics are placeholders of templates. They only unify with themselves.
		if bl, ok := b.(*types.Link); ok {
			if bl.IsLinked() {
				return Unify(bl.Target(), l, u)
			}
			if bl.IsGeneric() && bl.ID() == l.ID() {
				return 1
			}
		}
		return -1
	}

	if bl, ok := b.(*types.Link); ok {
		switch bl.State() {
		case types.LinkedState:
			return Unify(bl.Target(), l, u)
		case types.GenericState:
			return -1
		}
		if l.Static != bl.Static {
			return -1
		}
		if l.ID() == bl.ID() {
			return 1
		}
		// Always link the newer (higher-id) variable into the older one:
		if l.ID() < bl.ID() {
			return unifyLink(bl, l, u)
		}
		if occursAdjustLevels(l, bl, u) {
			return -1
		}
		if l.Trait != nil {
			if bl.Trait == nil {
				u.stashLink(stashTrait, bl)
				bl.Trait = l.Trait
			} else if Unify(l.Trait, bl.Trait, u) < 0 {
				return -1
			}
		}
		if l.Default != nil && bl.Default == nil {
			u.stashLink(stashTrait, bl)
			bl.Default = l.Default
		}
		u.stashLink(stashLinked, l)
		l.Bind(bl)
		return 0
	}

	if s, ok := b.(*types.Static); ok && s.IsRef() && s.Generics[0].Type != nil {
		return Unify(l, s.Generics[0].Type, u)
	}
	if isTrait(b) {
		if l.Trait == nil {
			u.stashLink(stashTrait, l)
			l.Trait = b
			return 0
		}
		return Unify(l.Trait, b, u)
	}
	if l.Static != types.StaticKindOf(b) {
		return -1
	}
	if occursAdjustLevels(l, b, u) {
		return -1
	}
	if l.Trait != nil && Unify(l.Trait, b, u) < 0 {
		return -1
	}
	u.stashLink(stashLinked, l)
	l.Bind(types.Follow(b))
	return 0
}

// See "Efficient Generalization with Levels" (Oleg Kiselyov)
// http://okmij.org/ftp/ML/generalization.html#levels
//
// occursAdjustLevels reports whether l occurs within t. Unbound variables within t are
// lowered to the level of l.
func occursAdjustLevels(l *types.Link, t types.Type, u *Undo) bool {
	switch t := t.(type) {
	case *types.Link:
		switch t.State() {
		case types.LinkedState:
			return occursAdjustLevels(l, t.Target(), u)
		case types.GenericState:
			return false
		}
		if t.ID() == l.ID() {
			return true
		}
		if t.Trait != nil && occursAdjustLevels(l, t.Trait, u) {
			return true
		}
		if t.Level() > l.Level() {
			u.stashLink(stashLeveled, t)
			t.SetLevel(l.Level())
		}
		return false
	case *types.Class:
		return occursInGenerics(l, t.Generics, u) || occursInGenerics(l, t.HiddenGenerics, u)
	case *types.Record:
		return occursInGenerics(l, t.Generics, u) || occursInGenerics(l, t.HiddenGenerics, u) ||
			occursInList(l, t.Args, u)
	case *types.Partial:
		return occursAdjustLevels(l, &t.Record, u)
	case *types.Func:
		if occursInList(l, t.Args, u) || occursInGenerics(l, t.FuncGenerics, u) {
			return true
		}
		if t.Ret != nil && occursAdjustLevels(l, t.Ret, u) {
			return true
		}
		return t.Parent != nil && occursAdjustLevels(l, t.Parent, u)
	case *types.Static:
		return occursInGenerics(l, t.Generics, u)
	case *types.Union:
		return occursInList(l, t.Types, u)
	case *types.CallableTrait:
		return occursInList(l, t.Args, u) || (t.Ret != nil && occursAdjustLevels(l, t.Ret, u))
	case *types.TypeTrait:
		return occursAdjustLevels(l, t.Type, u)
	}
	return false
}

func occursInList(l *types.Link, ts []types.Type, u *Undo) bool {
	for _, t := range ts {
		if t != nil && occursAdjustLevels(l, t, u) {
			return true
		}
	}
	return false
}

func occursInGenerics(l *types.Link, gs []types.Generic, u *Undo) bool {
	for i := range gs {
		if gs[i].Type != nil && occursAdjustLevels(l, gs[i].Type, u) {
			return true
		}
	}
	return false
}

func unifyGenerics(a, b []types.Generic, u *Undo) int {
	if len(a) != len(b) {
		return -1
	}
	s := 0
	for i := range a {
		if a[i].Type == nil || b[i].Type == nil {
			if a[i].Type != b[i].Type {
				return -1
			}
			continue
		}
		s1 := Unify(a[i].Type, b[i].Type, u)
		if s1 < 0 {
			return -1
		}
		s += s1
	}
	return s
}

func unifyList(a, b []types.Type, u *Undo) int {
	if len(a) != len(b) {
		return -1
	}
	s := 0
	for i := range a {
		s1 := Unify(a[i], b[i], u)
		if s1 < 0 {
			return -1
		}
		s += s1
	}
	return s
}

func unifyClass(a, b *types.Class, u *Undo) int {
	if a.Name != b.Name {
		return -1
	}
	s := unifyGenerics(a.Generics, b.Generics, u)
	if s < 0 {
		return -1
	}
	s1 := unifyGenerics(a.HiddenGenerics, b.HiddenGenerics, u)
	if s1 < 0 {
		return -1
	}
	return 3 + s + s1
}

func unifyRecord(a, b *types.Record, u *Undo) int {
	// int and Int[64] are interchangeable:
	if a.Name == types.IntName && b.Name == types.SizedIntName {
		return unifyRecord(b, a, u)
	}
	if a.Name == types.SizedIntName && b.Name == types.IntName {
		if len(a.Generics) != 1 || a.Generics[0].Type == nil {
			return -1
		}
		return Unify(a.Generics[0].Type, types.NewStaticInt(64), u)
	}
	s := unifyList(a.Args, b.Args, u)
	if s < 0 {
		return -1
	}
	s += 2
	// Tuples unify structurally:
	if types.IsTuple(a) || types.IsTuple(b) {
		if a.Name == b.Name {
			s++
		}
		return s
	}
	s1 := unifyClass(&a.Class, &b.Class, u)
	if s1 < 0 {
		return -1
	}
	return s + s1
}

func unifyFunc(a, b *types.Func, u *Undo) int {
	if a.Name != b.Name || (a.Parent == nil) != (b.Parent == nil) {
		return -1
	}
	s := 2
	if a.Parent != nil {
		s1 := Unify(a.Parent, b.Parent, u)
		if s1 < 0 {
			return -1
		}
		s += s1
	}
	s1 := unifyGenerics(a.FuncGenerics, b.FuncGenerics, u)
	if s1 < 0 {
		return -1
	}
	s += s1
	if s1 = unifyList(a.Args, b.Args, u); s1 < 0 {
		return -1
	}
	s += s1
	if a.Ret != nil && b.Ret != nil {
		if s1 = Unify(a.Ret, b.Ret, u); s1 < 0 {
			return -1
		}
		s += s1
	}
	return s
}

func unifyStatic(a, b *types.Static, u *Undo) int {
	if a.Value.Kind != b.Value.Kind {
		return -1
	}
	av, aok := a.Evaluate()
	bv, bok := b.Evaluate()
	switch {
	case aok && bok:
		if av.Equal(bv) {
			return 2
		}
		return -1
	case aok:
		return unifyStatic(b, a, u)
	case a.IsRef() && (bok || b.IsRef()):
		other := types.Type(b)
		if !bok {
			other = b.Generics[0].Type
		}
		return Unify(a.Generics[0].Type, other, u)
	}
	if len(a.Generics) != len(b.Generics) || a.Expr == nil || b.Expr == nil || a.Expr.String() != b.Expr.String() {
		return -1
	}
	s := unifyGenerics(a.Generics, b.Generics, u)
	if s < 0 {
		return -1
	}
	return 2 + s
}

func unifyUnion(a *types.Union, b types.Type, u *Undo) int {
	bu, ok := b.(*types.Union)
	if !ok {
		if a.Sealed {
			return -1
		}
		return addAlternative(a, b, u)
	}
	switch {
	case a.Sealed && bu.Sealed:
		if !types.CanRealize(a) || !types.CanRealize(bu) {
			return 0
		}
		ta, tb := dedupAlternatives(a, u), dedupAlternatives(bu, u)
		if len(ta) != len(tb) {
			return -1
		}
		s := unifyList(ta, tb, u)
		if s < 0 {
			return -1
		}
		return 2 + s
	case !a.Sealed:
		s := 0
		for _, t := range bu.Types {
			s1 := addAlternative(a, t, u)
			if s1 < 0 {
				return -1
			}
			s += s1
		}
		return s
	}
	return unifyUnion(bu, a, u)
}

// Alternatives with the same realized name are unified with each other.
func dedupAlternatives(t *types.Union, u *Undo) []types.Type {
	for i := range t.Types {
		for j := i + 1; j < len(t.Types); j++ {
			if types.RealizedName(t.Types[i]) == types.RealizedName(t.Types[j]) {
				Unify(t.Types[i], t.Types[j], u)
			}
		}
	}
	return t.RealizationTypes()
}

func addAlternative(a *types.Union, t types.Type, u *Undo) int {
	if types.UnboundOf(t) == nil {
		for i := len(a.Types) - 1; i >= 0; i-- {
			if types.UnboundOf(a.Types[i]) != nil {
				continue
			}
			if CanUnify(a.Types[i], t, u.env()) {
				return Unify(a.Types[i], t, u)
			}
		}
	}
	u.stashUnion(a)
	a.Types = append(a.Types, t)
	return 1
}

func unifyCallable(a *types.CallableTrait, b types.Type, u *Undo) int {
	anyCallable := len(a.Args) == 0 && a.Ret == nil
	switch b := b.(type) {
	case *types.Record:
		if b.Name == types.NoneName {
			return 1
		}
		if b.Name != types.FunctionName || len(b.Generics) != 2 {
			return -1
		}
		if anyCallable {
			return 1
		}
		args := types.RecordOf(b.Generics[0].Type)
		if args == nil || unifyList(a.Args, args.Args, u) < 0 {
			return -1
		}
		if a.Ret != nil && Unify(a.Ret, b.Generics[1].Type, u) < 0 {
			return -1
		}
		return 1
	case *types.Func:
		if anyCallable {
			return 1
		}
		if unifyList(a.Args, b.Args, u) < 0 {
			return -1
		}
		if a.Ret != nil && b.Ret != nil && Unify(a.Ret, b.Ret, u) < 0 {
			return -1
		}
		return 1
	case *types.Partial:
		if anyCallable {
			return 1
		}
		unknown := 0
		for _, known := range b.Known {
			if !known {
				unknown++
			}
		}
		if unknown != len(a.Args) {
			return -1
		}
		env := u.env()
		if env == nil {
			return 1
		}
		fn, ok := env.Instantiate(b.Func).(*types.Func)
		if !ok || len(fn.Args) != len(b.Known) {
			return -1
		}
		k, j := 0, 0
		for i, known := range b.Known {
			if known {
				if k < len(b.Args) && Unify(fn.Args[i], b.Args[k], u) < 0 {
					return -1
				}
				k++
				continue
			}
			if Unify(fn.Args[i], a.Args[j], u) < 0 {
				return -1
			}
			j++
		}
		if a.Ret != nil {
			ret := fn.Ret
			if types.CanRealize(fn) {
				if r, ok := env.Realize(fn).(*types.Func); ok {
					ret = r.Ret
				}
			}
			if ret != nil && Unify(a.Ret, ret, u) < 0 {
				return -1
			}
		}
		return 1
	case *types.CallableTrait:
		if len(a.Args) != len(b.Args) && !anyCallable && !(len(b.Args) == 0 && b.Ret == nil) {
			return -1
		}
		if len(a.Args) == len(b.Args) && unifyList(a.Args, b.Args, u) < 0 {
			return -1
		}
		if a.Ret != nil && b.Ret != nil && Unify(a.Ret, b.Ret, u) < 0 {
			return -1
		}
		return 1
	}
	return -1
}

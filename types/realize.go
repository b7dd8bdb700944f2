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

import (
	"sort"
	"strings"

	set "github.com/hashicorp/go-set/v3"
)

// StaticKindOf returns the kind of static value a type binds, or NotStatic.
func StaticKindOf(t Type) StaticKind {
	switch t := Follow(t).(type) {
	case *Link:
		return t.Static
	case *Static:
		return t.Value.Kind
	}
	return NotStatic
}

// CanRealize reports whether a type is concrete enough to be monomorphized.
func CanRealize(t Type) bool {
	switch t := t.(type) {
	case *Link:
		return t.IsLinked() && CanRealize(t.target)
	case *Class:
		return genericsRealizable(t.Generics) && genericsRealizable(t.HiddenGenerics)
	case *Record:
		return CanRealize(&t.Class) && allRealizable(t.Args)
	case *Partial:
		return CanRealize(&t.Record)
	case *Func:
		for _, arg := range t.RealizationArgs() {
			if _, isFunc := Follow(arg).(*Func); !isFunc && !CanRealize(arg) {
				return false
			}
		}
		if !genericsRealizable(t.FuncGenerics) {
			return false
		}
		return t.Parent == nil || CanRealize(t.Parent)
	case *Static:
		_, ok := t.Evaluate()
		return ok
	case *Union:
		return t.Sealed && len(t.Types) > 0 && allRealizable(t.Types)
	}
	return false
}

func allRealizable(ts []Type) bool {
	for _, t := range ts {
		if !CanRealize(t) {
			return false
		}
	}
	return true
}

func genericsRealizable(gs []Generic) bool {
	for i := range gs {
		if gs[i].Type != nil && !CanRealize(gs[i].Type) {
			return false
		}
	}
	return true
}

// RealizedName returns the canonical name of a realized type, used as a cache key.
// Unrealized portions are printed as "?".
func RealizedName(t Type) string {
	switch t := t.(type) {
	case *Link:
		if t.IsLinked() {
			return RealizedName(t.target)
		}
		return "?"
	case *Class:
		return t.Name + bracketed(genericNames(t.Generics))
	case *Record:
		return t.Name + bracketed(genericNames(t.Generics))
	case *Partial:
		names := make([]string, len(t.Args))
		for i, arg := range t.Args {
			names[i] = RealizedName(arg)
		}
		return t.Name + bracketed(names)
	case *Func:
		var names []string
		for _, arg := range t.RealizationArgs() {
			names = append(names, RealizedName(arg))
		}
		names = append(names, genericNames(t.FuncGenerics)...)
		s := t.Name + bracketed(names)
		if t.Parent != nil {
			s = RealizedName(t.Parent) + ":" + s
		}
		return s
	case *Static:
		if v, ok := t.Evaluate(); ok {
			return v.String()
		}
		return "?"
	case *Union:
		var names []string
		for _, m := range t.RealizationTypes() {
			names = append(names, RealizedName(m))
		}
		return "Union" + bracketed(names)
	case *CallableTrait:
		return "Callable"
	case *TypeTrait:
		return "TypeTrait"
	}
	return "?"
}

func genericNames(gs []Generic) []string {
	var names []string
	for i := range gs {
		if gs[i].Name == "" || gs[i].Type == nil {
			continue
		}
		names = append(names, RealizedName(gs[i].Type))
	}
	return names
}

func bracketed(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return "[" + strings.Join(names, ",") + "]"
}

// RealizationTypes returns the distinct alternatives of a union, sorted by realized name.
func (u *Union) RealizationTypes() []Type {
	seen := set.New[string](len(u.Types))
	var ts []Type
	for _, t := range u.Types {
		if seen.Insert(RealizedName(t)) {
			ts = append(ts, t)
		}
	}
	sort.SliceStable(ts, func(i, j int) bool { return RealizedName(ts[i]) < RealizedName(ts[j]) })
	return ts
}

// Seal closes the set of alternatives of an open union.
func (u *Union) Seal() { u.Sealed = true }

// IsInstantiated reports whether a type contains no generic type-variables.
func IsInstantiated(t Type) bool {
	instantiated := true
	walk(t, set.New[Type](0), func(l *Link) {
		if l.IsGeneric() {
			instantiated = false
		}
	})
	return instantiated
}

// Unbounds returns the distinct unbound type-variables reachable from t, in order of discovery.
func Unbounds(t Type) []*Link {
	var links []*Link
	seen := set.New[int](0)
	walk(t, set.New[Type](0), func(l *Link) {
		if l.IsUnbound() && seen.Insert(l.id) {
			links = append(links, l)
		}
	})
	return links
}

func walkGenerics(gs []Generic, visited *set.Set[Type], fn func(*Link)) {
	for i := range gs {
		if gs[i].Type != nil {
			walk(gs[i].Type, visited, fn)
		}
	}
}

// walk visits every non-linked type-variable reachable from t.
func walk(t Type, visited *set.Set[Type], fn func(*Link)) {
	if t == nil || !visited.Insert(t) {
		return
	}
	switch t := t.(type) {
	case *Link:
		if t.IsLinked() {
			walk(t.target, visited, fn)
			return
		}
		fn(t)
		if t.Trait != nil {
			walk(t.Trait, visited, fn)
		}
	case *Class:
		walkGenerics(t.Generics, visited, fn)
		walkGenerics(t.HiddenGenerics, visited, fn)
	case *Record:
		walkGenerics(t.Generics, visited, fn)
		walkGenerics(t.HiddenGenerics, visited, fn)
		for _, arg := range t.Args {
			walk(arg, visited, fn)
		}
	case *Partial:
		walk(&t.Record, visited, fn)
	case *Func:
		for _, arg := range t.Args {
			walk(arg, visited, fn)
		}
		if t.Ret != nil {
			walk(t.Ret, visited, fn)
		}
		walkGenerics(t.FuncGenerics, visited, fn)
		if t.Parent != nil {
			walk(t.Parent, visited, fn)
		}
	case *Static:
		walkGenerics(t.Generics, visited, fn)
	case *Union:
		for _, m := range t.Types {
			walk(m, visited, fn)
		}
	case *CallableTrait:
		for _, arg := range t.Args {
			walk(arg, visited, fn)
		}
		if t.Ret != nil {
			walk(t.Ret, visited, fn)
		}
	case *TypeTrait:
		walk(t.Type, visited, fn)
	}
}

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
	"strconv"
	"strings"
	"sync"
)

// Print modes for DebugString:
const (
	// Display names, unbound variables as "?"
	PrintNice = iota
	// Canonical names
	PrintCanonical
	// Canonical names with type-variable ids and traits
	PrintDebug
)

var printerPool = sync.Pool{
	New: func() interface{} { return &typePrinter{} },
}

type typePrinter struct {
	mode int
	sb   strings.Builder
}

func newTypePrinter(mode int) *typePrinter {
	p := printerPool.Get().(*typePrinter)
	p.mode = mode
	return p
}

func (p *typePrinter) Release() {
	p.sb.Reset()
	printerPool.Put(p)
}

// TypeString returns the display string of a type.
func TypeString(t Type) string { return DebugString(t, PrintNice) }

// DebugString returns a string representation of a type in the given print mode.
func DebugString(t Type, mode int) string {
	if t == nil {
		return "-"
	}
	p := newTypePrinter(mode)
	p.print(t)
	s := p.sb.String()
	p.Release()
	return s
}

func (p *typePrinter) print(t Type) {
	switch t := t.(type) {
	case *Link:
		switch {
		case t.IsLinked():
			p.print(t.target)
		case t.IsGeneric():
			if p.mode == PrintDebug || t.GenericName == "" {
				p.sb.WriteByte('#')
				if p.mode == PrintDebug {
					p.sb.WriteString(t.GenericName)
				}
				p.sb.WriteString(strconv.Itoa(t.id))
			} else {
				p.sb.WriteString(t.GenericName)
			}
		default:
			p.sb.WriteByte('?')
			if p.mode == PrintDebug {
				p.sb.WriteString(strconv.Itoa(t.id))
				if t.Static != NotStatic {
					p.sb.WriteString("@static")
				}
				if t.Trait != nil {
					p.sb.WriteByte(':')
					p.print(t.Trait)
				}
			}
		}

	case *Class:
		p.printClass(t)

	case *Record:
		p.printClass(&t.Class)

	case *Partial:
		p.sb.WriteString(p.funcName(t.Func))
		p.sb.WriteByte('(')
		k := 0
		for i, known := range t.Known {
			if i > 0 {
				p.sb.WriteByte(',')
			}
			if known && k < len(t.Args) {
				p.print(t.Args[k])
				k++
			} else {
				p.sb.WriteString("...")
			}
		}
		p.sb.WriteByte(')')

	case *Func:
		p.sb.WriteString(p.funcName(t))
		if len(t.FuncGenerics) > 0 {
			p.printGenerics(t.FuncGenerics)
		}
		p.sb.WriteByte('(')
		for i, arg := range t.Args {
			if i > 0 {
				p.sb.WriteByte(',')
			}
			p.print(arg)
		}
		p.sb.WriteString(") -> ")
		if t.Ret == nil {
			p.sb.WriteByte('?')
		} else {
			p.print(t.Ret)
		}

	case *Static:
		if v, ok := t.Evaluate(); ok {
			p.sb.WriteString(v.String())
		} else if t.Expr != nil {
			p.sb.WriteString(quoteTerm(t.Expr.String()))
		} else {
			p.sb.WriteString("Static[" + t.Value.Kind.String() + "]")
		}

	case *Union:
		p.sb.WriteString("Union[")
		ts := t.Types
		if t.Sealed && CanRealize(t) {
			ts = t.RealizationTypes()
		}
		for i, m := range ts {
			if i > 0 {
				p.sb.WriteString(" | ")
			}
			p.print(m)
		}
		p.sb.WriteByte(']')

	case *CallableTrait:
		p.sb.WriteString("Callable[[")
		for i, arg := range t.Args {
			if i > 0 {
				p.sb.WriteByte(',')
			}
			p.print(arg)
		}
		p.sb.WriteString("],")
		if t.Ret == nil {
			p.sb.WriteByte('?')
		} else {
			p.print(t.Ret)
		}
		p.sb.WriteByte(']')

	case *TypeTrait:
		p.sb.WriteString("TypeTrait[")
		p.print(t.Type)
		p.sb.WriteByte(']')

	default:
		p.sb.WriteByte('?')
	}
}

func (p *typePrinter) funcName(t *Func) string {
	if p.mode == PrintNice && t.NiceName != "" {
		return t.NiceName
	}
	return t.Name
}

func (p *typePrinter) printClass(t *Class) {
	name := t.Name
	if p.mode == PrintNice {
		if strings.HasPrefix(t.Name, TupleName+".N") {
			name = TupleName
		} else if t.NiceName != "" {
			name = t.NiceName
		}
	}
	p.sb.WriteString(name)
	gs := t.Generics
	if p.mode == PrintDebug && len(t.HiddenGenerics) > 0 {
		gs = append(append([]Generic(nil), gs...), t.HiddenGenerics...)
	}
	if len(gs) > 0 {
		p.printGenerics(gs)
	}
}

func (p *typePrinter) printGenerics(gs []Generic) {
	p.sb.WriteByte('[')
	for i := range gs {
		if i > 0 {
			p.sb.WriteByte(',')
		}
		if gs[i].Type == nil {
			p.sb.WriteString(gs[i].NiceName)
			continue
		}
		p.print(gs[i].Type)
	}
	p.sb.WriteByte(']')
}

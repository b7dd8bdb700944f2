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

import "strings"

// Kind tags each node of the type graph. The set is closed.
type Kind int

const (
	LinkKind Kind = iota
	ClassKind
	RecordKind
	FuncKind
	PartialKind
	StaticTypeKind
	UnionKind
	CallableTraitKind
	TypeTraitKind
)

var kindNames = [...]string{"Link", "Class", "Record", "Func", "Partial", "Static", "Union", "CallableTrait", "TypeTrait"}

func (k Kind) String() string { return kindNames[k] }

// Type is the base interface for all type nodes. Implementations are limited to the
// node types declared in this package.
type Type interface {
	Kind() Kind
	Source() SrcInfo
	isType()
}

var (
	_ Type = (*Link)(nil)
	_ Type = (*Class)(nil)
	_ Type = (*Record)(nil)
	_ Type = (*Func)(nil)
	_ Type = (*Partial)(nil)
	_ Type = (*Static)(nil)
	_ Type = (*Union)(nil)
	_ Type = (*CallableTrait)(nil)
	_ Type = (*TypeTrait)(nil)
)

// SrcInfo is a source position used for diagnostics.
type SrcInfo struct {
	File string
	Line int
	Col  int
	Len  int
}

// Base holds the fields shared by every type node.
type Base struct {
	Src SrcInfo
}

func (b *Base) Source() SrcInfo { return b.Src }
func (b *Base) isType()         {}

func (t *Link) Kind() Kind          { return LinkKind }
func (t *Class) Kind() Kind         { return ClassKind }
func (t *Record) Kind() Kind        { return RecordKind }
func (t *Func) Kind() Kind          { return FuncKind }
func (t *Partial) Kind() Kind       { return PartialKind }
func (t *Static) Kind() Kind        { return StaticTypeKind }
func (t *Union) Kind() Kind         { return UnionKind }
func (t *CallableTrait) Kind() Kind { return CallableTraitKind }
func (t *TypeTrait) Kind() Kind     { return TypeTraitKind }

// Generic is a named type parameter of a class or function.
type Generic struct {
	Name     string
	NiceName string
	ID       int
	Type     Type
	// Default is used when no progress can be made otherwise.
	Default Type
}

// Nominal type: `Foo[int]`
type Class struct {
	Base
	Name           string
	NiceName       string
	Generics       []Generic
	HiddenGenerics []Generic
}

// Structural (tuple-like) type: `Tuple[int,str]`
type Record struct {
	Class
	Args []Type
}

// FuncDecl is the function declaration a function type was created from.
type FuncDecl interface {
	DeclName() string
	// RealizeWithoutSelf reports whether the first argument is ignored for realization.
	RealizeWithoutSelf() bool
}

// Function type: `foo(int,str) -> bool`
type Func struct {
	Base
	// Canonical name of the declaration.
	Name         string
	NiceName     string
	Args         []Type
	Ret          Type
	FuncGenerics []Generic
	// Enclosing class or function, or nil.
	Parent Type
	Decl   FuncDecl
}

// Partially-applied call: `foo(1, ...)`
type Partial struct {
	Record
	// Func is the (generic) function being applied.
	Func *Func
	// Known marks the parameters of Func which are bound by the record's arguments.
	Known []bool
}

// Discriminated union. An open union absorbs each new distinct alternative; a sealed
// union has a closed set of alternatives.
type Union struct {
	Base
	Types  []Type
	Sealed bool
}

// CallableTrait requires the bound type to be callable with Args and to return Ret.
// A trait without arguments and return type accepts any function or partial.
type CallableTrait struct {
	Base
	Args []Type
	Ret  Type
}

// TypeTrait requires the bound type to unify with Type.
type TypeTrait struct {
	Base
	Type Type
}

// Follow returns the type at the end of a chain of linked type-variables.
func Follow(t Type) Type {
	for {
		l, ok := t.(*Link)
		if !ok || !l.IsLinked() {
			return t
		}
		t = l.target
	}
}

// ClassOf returns the nominal portion of a class, record, partial or function-pointer type.
func ClassOf(t Type) *Class {
	switch t := Follow(t).(type) {
	case *Class:
		return t
	case *Record:
		return &t.Class
	case *Partial:
		return &t.Record.Class
	}
	return nil
}

// RecordOf returns the record portion of a record or partial type.
func RecordOf(t Type) *Record {
	switch t := Follow(t).(type) {
	case *Record:
		return t
	case *Partial:
		return &t.Record
	}
	return nil
}

// UnboundOf returns the unbound type-variable at the end of a link chain, or nil.
func UnboundOf(t Type) *Link {
	if l, ok := Follow(t).(*Link); ok && l.IsUnbound() {
		return l
	}
	return nil
}

// Is reports whether t is a class, record or partial named name.
func Is(t Type, name string) bool {
	c := ClassOf(t)
	return c != nil && c.Name == name
}

// NewRecord creates a record with the given name, generics and field types.
func NewRecord(name, niceName string, generics []Generic, args []Type) *Record {
	return &Record{Class: Class{Name: name, NiceName: niceName, Generics: generics}, Args: args}
}

// GenericTypes returns the bound types of each generic, in declared order.
func GenericTypes(gs []Generic) []Type {
	ts := make([]Type, len(gs))
	for i := range gs {
		ts[i] = gs[i].Type
	}
	return ts
}

// Unwraps the function parameters which are considered for realization.
func (t *Func) RealizationArgs() []Type {
	if t.Decl != nil && t.Decl.RealizeWithoutSelf() && len(t.Args) > 0 {
		return t.Args[1:]
	}
	return t.Args
}

// Well-known class names:
const (
	TupleName    = "Tuple"
	KwTupleName  = "KwTuple"
	PartialName  = "Partial"
	FunctionName = "Function"
	NoneName     = "NoneType"
	IntName      = "int"
	SizedIntName = "Int"
)

// IsTuple reports whether t is a generated tuple record.
func IsTuple(t Type) bool {
	c := ClassOf(t)
	return c != nil && strings.HasPrefix(c.Name, TupleName+".N")
}

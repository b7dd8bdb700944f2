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

// Special binding-levels (used as flags):
const (
	GenericLevel = 1<<31 - 1
	LinkedLevel  = -1 << 31
)

// Type-variable. A type-variable is unbound, generic, or linked to another type.
type Link struct {
	Base
	target Type
	id     int
	level  int
	// Trait constrains the type an unbound variable may be linked to.
	Trait Type
	// Default is applied when inference cannot otherwise make progress.
	Default     Type
	GenericName string
	// Static is non-zero for variables which only bind static values.
	Static StaticKind
}

// State of a type-variable
type LinkState int

const (
	// Unbound type-variable
	UnboundState LinkState = iota
	// Linked type-variable
	LinkedState
	// Generic type-variable
	GenericState
)

// Create a new unbound type-variable with the given id and binding-level.
func NewUnbound(id, level int) *Link {
	return &Link{id: id, level: level}
}

// Create a new generic type-variable.
func NewGeneric(id int, name string) *Link {
	return &Link{id: id, level: GenericLevel, GenericName: name}
}

// State indicates whether the type-variable is linked, unbound, or generic.
func (l *Link) State() LinkState {
	switch l.level {
	case LinkedLevel:
		return LinkedState
	case GenericLevel:
		return GenericState
	default:
		return UnboundState
	}
}

// ID returns the unique identifier of the type-variable.
func (l *Link) ID() int { return l.id }

// Level returns the binding-level of an unbound type-variable.
func (l *Link) Level() int { return l.level }

// Target returns the type which the type-variable is linked to, if the type-variable is linked.
func (l *Link) Target() Type { return l.target }

func (l *Link) IsUnbound() bool { return l.level != LinkedLevel && l.level != GenericLevel }
func (l *Link) IsLinked() bool  { return l.level == LinkedLevel }
func (l *Link) IsGeneric() bool { return l.level == GenericLevel }

// Set the unique identifier of the type-variable.
func (l *Link) SetID(id int) { l.id = id }

// Set the binding-level of an unbound type-variable.
func (l *Link) SetLevel(level int) { l.level = level }

// Link the type-variable to t.
func (l *Link) Bind(t Type) { l.target, l.level = t, LinkedLevel }

// Mark the type-variable as generic.
func (l *Link) SetGeneric() { l.target, l.level = nil, GenericLevel }

// Set the type-variable to the unbound state at the given level.
func (l *Link) Unbind(level int) { l.target, l.level = nil, level }

// Flatten a chain of linked type-variables.
func (l *Link) Flatten() {
	if l.IsLinked() {
		l.target = Follow(l.target)
	}
}

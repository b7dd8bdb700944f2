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
	"errors"
	"strconv"
	"strings"
)

// StaticKind is the kind of value carried by a static type.
type StaticKind int

const (
	NotStatic StaticKind = iota
	StaticInt
	StaticStr
)

func (k StaticKind) String() string {
	switch k {
	case StaticInt:
		return "int"
	case StaticStr:
		return "str"
	}
	return "-"
}

var ErrStaticDivZero = errors.New("static division by zero")

// StaticValue is a compile-time value. Kind is set even when the value is not yet evaluated.
type StaticValue struct {
	Kind      StaticKind
	Evaluated bool
	Int       int64
	Str       string
}

func IntValue(v int64) StaticValue  { return StaticValue{Kind: StaticInt, Evaluated: true, Int: v} }
func StrValue(s string) StaticValue { return StaticValue{Kind: StaticStr, Evaluated: true, Str: s} }

func BoolValue(b bool) StaticValue {
	if b {
		return IntValue(1)
	}
	return IntValue(0)
}

func (v StaticValue) IsStatic() bool { return v.Kind != NotStatic }

// Truthy returns the boolean interpretation of an evaluated value.
func (v StaticValue) Truthy() bool {
	if v.Kind == StaticStr {
		return v.Str != ""
	}
	return v.Int != 0
}

func (v StaticValue) Equal(o StaticValue) bool {
	return v.Kind == o.Kind && v.Evaluated == o.Evaluated && v.Int == o.Int && v.Str == o.Str
}

func (v StaticValue) String() string {
	if !v.Evaluated {
		return ""
	}
	if v.Kind == StaticStr {
		return "'" + v.Str + "'"
	}
	return strconv.FormatInt(v.Int, 10)
}

// StaticTerm is an unevaluated static expression. The set of terms is closed.
type StaticTerm interface {
	String() string
	isTerm()
}

// Literal static value
type TermLit struct{ Value StaticValue }

// Reference to a static generic by name
type TermRef struct{ Name string }

// Unary operation: `-N`, `!N`
type TermUnary struct {
	Op string
	X  StaticTerm
}

// Binary operation: `N + 1`
type TermBinary struct {
	Op   string
	X, Y StaticTerm
}

// Conditional: `A if C else B`
type TermCond struct {
	Cond, Then, Else StaticTerm
}

func (TermLit) isTerm()    {}
func (TermRef) isTerm()    {}
func (TermUnary) isTerm()  {}
func (TermBinary) isTerm() {}
func (TermCond) isTerm()   {}

func (t TermLit) String() string   { return t.Value.String() }
func (t TermRef) String() string   { return t.Name }
func (t TermUnary) String() string { return "(" + t.Op + t.X.String() + ")" }
func (t TermBinary) String() string {
	return "(" + t.X.String() + " " + t.Op + " " + t.Y.String() + ")"
}
func (t TermCond) String() string {
	return "(" + t.Then.String() + " if " + t.Cond.String() + " else " + t.Else.String() + ")"
}

// Static (value-level) type: `Static[int]`, `3`, `N + 1`
type Static struct {
	Base
	Value    StaticValue
	Expr     StaticTerm
	Generics []Generic
}

// Create an evaluated static int.
func NewStaticInt(v int64) *Static { return &Static{Value: IntValue(v), Expr: TermLit{IntValue(v)}} }

// Create an evaluated static str.
func NewStaticStr(s string) *Static { return &Static{Value: StrValue(s), Expr: TermLit{StrValue(s)}} }

// Create an unevaluated static of the given kind over the generics it depends on.
func NewStaticExpr(kind StaticKind, expr StaticTerm, generics []Generic) *Static {
	if lit, ok := expr.(TermLit); ok {
		return &Static{Value: lit.Value, Expr: expr}
	}
	return &Static{Value: StaticValue{Kind: kind}, Expr: expr, Generics: generics}
}

// IsRef reports whether the static is a plain reference to a single generic.
func (s *Static) IsRef() bool {
	_, ok := s.Expr.(TermRef)
	return ok && len(s.Generics) == 1
}

// Evaluate returns the value of the static, if all of its dependencies are evaluated.
func (s *Static) Evaluate() (StaticValue, bool) {
	if s.Value.Evaluated {
		return s.Value, true
	}
	v, err := evalTerm(s.Expr, func(name string) (StaticValue, bool) {
		for _, g := range s.Generics {
			if g.Name != name && g.NiceName != name {
				continue
			}
			if dep, ok := Follow(g.Type).(*Static); ok {
				return dep.Evaluate()
			}
			return StaticValue{}, false
		}
		return StaticValue{}, false
	})
	if err != nil {
		return StaticValue{}, false
	}
	return v, true
}

var errUnresolved = errors.New("unresolved static")

func evalTerm(t StaticTerm, lookup func(string) (StaticValue, bool)) (StaticValue, error) {
	switch t := t.(type) {
	case TermLit:
		return t.Value, nil
	case TermRef:
		if v, ok := lookup(t.Name); ok {
			return v, nil
		}
		return StaticValue{}, errUnresolved
	case TermUnary:
		x, err := evalTerm(t.X, lookup)
		if err != nil {
			return x, err
		}
		return FoldUnary(t.Op, x)
	case TermBinary:
		x, err := evalTerm(t.X, lookup)
		if err != nil {
			return x, err
		}
		y, err := evalTerm(t.Y, lookup)
		if err != nil {
			return y, err
		}
		return FoldBinary(t.Op, x, y)
	case TermCond:
		c, err := evalTerm(t.Cond, lookup)
		if err != nil {
			return c, err
		}
		if c.Truthy() {
			return evalTerm(t.Then, lookup)
		}
		return evalTerm(t.Else, lookup)
	}
	return StaticValue{}, errUnresolved
}

// StaticUnaryOps and StaticBinaryOps list the operators which fold over static values.
var (
	StaticUnaryOps = map[StaticKind][]string{
		StaticInt: {"-", "+", "!"},
		StaticStr: {"!"},
	}
	StaticBinaryOps = map[StaticKind][]string{
		StaticInt: {"<", "<=", ">", ">=", "==", "!=", "&&", "||", "+", "-", "*", "//", "%"},
		StaticStr: {"==", "!=", "+"},
	}
)

// HasStaticOp reports whether op folds over values of the given kind.
func HasStaticOp(ops map[StaticKind][]string, kind StaticKind, op string) bool {
	for _, o := range ops[kind] {
		if o == op {
			return true
		}
	}
	return false
}

// IsBoolOp reports whether the result of a folded binary operator is a boolean.
func IsBoolOp(op string) bool {
	switch op {
	case "<", "<=", ">", ">=", "==", "!=", "&&", "||":
		return true
	}
	return false
}

// FoldUnary evaluates a unary operator over a static value.
func FoldUnary(op string, x StaticValue) (StaticValue, error) {
	if !x.Evaluated {
		return StaticValue{}, errUnresolved
	}
	if x.Kind == StaticStr {
		if op == "!" {
			return BoolValue(x.Str == ""), nil
		}
		return StaticValue{}, errors.New("invalid static operator " + op)
	}
	switch op {
	case "-":
		return IntValue(-x.Int), nil
	case "+":
		return x, nil
	case "!":
		return BoolValue(x.Int == 0), nil
	}
	return StaticValue{}, errors.New("invalid static operator " + op)
}

// FoldBinary evaluates a binary operator over two static values of the same kind.
// Integer division and remainder truncate toward zero.
func FoldBinary(op string, x, y StaticValue) (StaticValue, error) {
	if !x.Evaluated || !y.Evaluated {
		return StaticValue{}, errUnresolved
	}
	if x.Kind != y.Kind {
		return StaticValue{}, errors.New("mismatched static operands")
	}
	if x.Kind == StaticStr {
		switch op {
		case "+":
			return StrValue(x.Str + y.Str), nil
		case "==":
			return BoolValue(x.Str == y.Str), nil
		case "!=":
			return BoolValue(x.Str != y.Str), nil
		}
		return StaticValue{}, errors.New("invalid static operator " + op)
	}
	l, r := x.Int, y.Int
	switch op {
	case "<":
		return BoolValue(l < r), nil
	case "<=":
		return BoolValue(l <= r), nil
	case ">":
		return BoolValue(l > r), nil
	case ">=":
		return BoolValue(l >= r), nil
	case "==":
		return BoolValue(l == r), nil
	case "!=":
		return BoolValue(l != r), nil
	case "&&":
		return BoolValue(l != 0 && r != 0), nil
	case "||":
		return BoolValue(l != 0 || r != 0), nil
	case "+":
		return IntValue(l + r), nil
	case "-":
		return IntValue(l - r), nil
	case "*":
		return IntValue(l * r), nil
	case "//":
		if r == 0 {
			return StaticValue{}, ErrStaticDivZero
		}
		return IntValue(l / r), nil
	case "%":
		if r == 0 {
			return StaticValue{}, ErrStaticDivZero
		}
		return IntValue(l % r), nil
	}
	return StaticValue{}, errors.New("invalid static operator " + op)
}

// Refs returns the names of the generics referenced by a static term, in order of appearance.
func Refs(t StaticTerm) []string {
	var names []string
	var visit func(StaticTerm)
	visit = func(t StaticTerm) {
		switch t := t.(type) {
		case TermRef:
			for _, n := range names {
				if n == t.Name {
					return
				}
			}
			names = append(names, t.Name)
		case TermUnary:
			visit(t.X)
		case TermBinary:
			visit(t.X)
			visit(t.Y)
		case TermCond:
			visit(t.Cond)
			visit(t.Then)
			visit(t.Else)
		}
	}
	visit(t)
	return names
}

func quoteTerm(s string) string { return strings.TrimSuffix(strings.TrimPrefix(s, "("), ")") }

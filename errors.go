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

package codon

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/airen3339/codon/types"
)

// ErrorKind enumerates the user-visible compilation errors.
type ErrorKind int

const (
	ErrCustom ErrorKind = iota
	ErrIDNotFound
	ErrCallNameOrder
	ErrCallRepeatedName
	ErrCallArgsMissing
	ErrCallArgsMany
	ErrCallArgsUnknown
	ErrCallBadUnpack
	ErrCallBadKwUnpack
	ErrCallNoCallable
	ErrClassGenericMismatch
	ErrMatchMultiEllipsis
	ErrBadStatic
	ErrExpectedType
	ErrUnexpectedType
	ErrExpectedStatic
	ErrDotNoAttr
	ErrNoMethod
	ErrUnify
	ErrTupleRange
	ErrStaticDivZero
	ErrExpectedGenerator
	ErrPtrRequiresVar
	ErrNoSuper
	ErrMaxRealization
	ErrRealizeField
	ErrFnRealizeBuiltin
	ErrFixpoint
	ErrDefaultCycle
)

// ErrorCategory groups error kinds by the phase of checking which detects them.
type ErrorCategory int

const (
	CategoryStructural ErrorCategory = iota
	CategoryResolution
	CategoryUnification
	CategoryRealization
	CategoryFixpoint
)

func (c ErrorCategory) String() string {
	switch c {
	case CategoryStructural:
		return "structural"
	case CategoryResolution:
		return "resolution"
	case CategoryUnification:
		return "unification"
	case CategoryRealization:
		return "realization"
	case CategoryFixpoint:
		return "fixpoint"
	}
	return "unknown"
}

type errorInfo struct {
	format   string
	category ErrorCategory
}

var errorTable = [...]errorInfo{
	ErrCustom:               {"%s", CategoryStructural},
	ErrIDNotFound:           {"name '%s' is not defined", CategoryResolution},
	ErrCallNameOrder:        {"positional argument follows keyword argument", CategoryStructural},
	ErrCallRepeatedName:     {"keyword argument repeated: %s", CategoryStructural},
	ErrCallArgsMissing:      {"%s() missing argument '%s'", CategoryStructural},
	ErrCallArgsMany:         {"%s() takes %d arguments (%d given)", CategoryStructural},
	ErrCallArgsUnknown:      {"%s() got an unexpected keyword argument '%s'", CategoryStructural},
	ErrCallBadUnpack:        {"argument after * must be a tuple, not '%s'", CategoryStructural},
	ErrCallBadKwUnpack:      {"argument after ** must be a named tuple, not '%s'", CategoryStructural},
	ErrCallNoCallable:       {"'%s' object is not callable", CategoryResolution},
	ErrClassGenericMismatch: {"%s expected %d generics (%d given)", CategoryStructural},
	ErrMatchMultiEllipsis:   {"multiple ellipses in a pattern", CategoryStructural},
	ErrBadStatic:            {"invalid static expression", CategoryStructural},
	ErrExpectedType:         {"expected a type, got '%s'", CategoryStructural},
	ErrUnexpectedType:       {"unexpected type expression '%s'", CategoryStructural},
	ErrExpectedStatic:       {"expected a static value", CategoryStructural},
	ErrDotNoAttr:            {"'%s' object has no attribute '%s'", CategoryResolution},
	ErrNoMethod:             {"'%s' has no method '%s' matching (%s)", CategoryResolution},
	ErrUnify:                {"cannot unify %s and %s", CategoryUnification},
	ErrTupleRange:           {"tuple index %d out of range (length %d)", CategoryUnification},
	ErrStaticDivZero:        {"static division by zero", CategoryUnification},
	ErrExpectedGenerator:    {"'%s' object is not iterable", CategoryUnification},
	ErrPtrRequiresVar:       {"__ptr__ requires a variable", CategoryStructural},
	ErrNoSuper:              {"no super() method found", CategoryResolution},
	ErrMaxRealization:       {"maximum realization depth exceeded (%d)", CategoryRealization},
	ErrRealizeField:         {"cannot realize field '%s' of '%s'", CategoryRealization},
	ErrFnRealizeBuiltin:     {"cannot realize builtin function '%s' without a body", CategoryRealization},
	ErrFixpoint:             {"cannot typecheck the program: %s", CategoryFixpoint},
	ErrDefaultCycle:         {"cyclic default types: %s", CategoryFixpoint},
}

// Category returns the phase category of the error kind.
func (k ErrorKind) Category() ErrorCategory { return errorTable[k].category }

// Frame is a single message of a compilation error, with its source position.
type Frame struct {
	Message string
	Src     types.SrcInfo
}

func (f Frame) String() string {
	if f.Src.File == "" {
		return f.Message
	}
	return fmt.Sprintf("%s:%d:%d: %s", f.Src.File, f.Src.Line, f.Src.Col, f.Message)
}

// CompileError is a user-visible error. The first frame holds the primary message;
// later frames give the realization context, innermost first.
type CompileError struct {
	Kind   ErrorKind
	Frames []Frame
}

func newError(kind ErrorKind, src types.SrcInfo, args ...interface{}) *CompileError {
	return &CompileError{Kind: kind, Frames: []Frame{{Message: fmt.Sprintf(errorTable[kind].format, args...), Src: src}}}
}

func (e *CompileError) Error() string {
	if len(e.Frames) == 1 {
		return e.Frames[0].String()
	}
	var sb strings.Builder
	for i, f := range e.Frames {
		if i > 0 {
			sb.WriteString("\n  ")
		}
		sb.WriteString(f.String())
	}
	return sb.String()
}

// Message returns the primary message without position or context.
func (e *CompileError) Message() string { return e.Frames[0].Message }

// TrackRealize appends a "while realizing" context frame.
func (e *CompileError) TrackRealize(what string, src types.SrcInfo) {
	e.Frames = append(e.Frames, Frame{Message: "while realizing " + what, Src: src})
}

// trackRealize adds a context frame to err. Errors which are not compilation errors are
// wrapped instead.
func trackRealize(err error, what string, src types.SrcInfo) error {
	var ce *CompileError
	if errors.As(err, &ce) {
		ce.TrackRealize(what, src)
		return ce
	}
	return errors.Wrapf(err, "while realizing %s", what)
}

// AsCompileError extracts a compilation error from err.
func AsCompileError(err error) (*CompileError, bool) {
	var ce *CompileError
	ok := errors.As(err, &ce)
	return ce, ok
}

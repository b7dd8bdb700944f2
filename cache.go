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
	"log/slog"
	"strings"

	"github.com/benbjohnson/immutable"
	set "github.com/hashicorp/go-set/v3"

	"github.com/airen3339/codon/ast"
	"github.com/airen3339/codon/internal/logger"
	"github.com/airen3339/codon/internal/typeutil"
	"github.com/airen3339/codon/types"
)

// Unbound ids below this are reserved for the generics of generated stubs.
const firstUnboundID = 256

// IRCategory selects how a realized function is lowered.
type IRCategory int

const (
	IRBodied IRCategory = iota
	IRInternal
	IRLLVM
	IRExternal
)

func (c IRCategory) String() string {
	switch c {
	case IRInternal:
		return "internal"
	case IRLLVM:
		return "llvm"
	case IRExternal:
		return "external"
	}
	return "bodied"
}

// Field is a named member of a class, in declared order.
type Field struct {
	Name string
	Type types.Type
}

// ClassRealization is a monomorphized class.
type ClassRealization struct {
	RealizedName string
	Type         types.Type
	// Realized field types
	Fields []Field
}

// FuncRealization is a monomorphized function.
type FuncRealization struct {
	RealizedName string
	Type         *types.Func
	// Typed copy of the declaration
	Ast      *ast.FunctionStmt
	Category IRCategory
}

// Class is a declared (template) class.
type Class struct {
	Ast  *ast.ClassStmt
	Type types.Type
	// Template field types
	Fields []Field
	// Member name to overload-set name
	Methods      map[string]string
	Realizations map[string]*ClassRealization
	// Set once every field type is known
	complete bool
}

// Field returns the template field named name.
func (c *Class) Field(name string) (Field, int, bool) {
	for i, f := range c.Fields {
		if f.Name == name {
			return f, i, true
		}
	}
	return Field{}, -1, false
}

// Function is a declared (template) function.
type Function struct {
	Ast          *ast.FunctionStmt
	Type         *types.Func
	Realizations map[string]*FuncRealization
}

// PendingRealization is a realized function awaiting lowering.
type PendingRealization struct {
	Function     string
	RealizedName string
}

// Cache holds the declarations and realizations of a compilation session.
type Cache struct {
	cfg Config
	log *slog.Logger

	Classes   map[string]*Class
	Functions map[string]*Function
	// Overload-set name to the canonical names of its members, in declared order
	Overloads map[string][]string
	Vars      typeutil.VarTracker

	PendingRealizations *set.Set[PendingRealization]

	realizedTypes map[string]*ClassRealization
	realizedFuncs map[string]*FuncRealization
	reverse       map[string]string

	tempCount int
	srcCount  int

	ctx *Context
	tc  *Typechecker
}

// NewCache creates a session with the builtin prelude loaded.
func NewCache(cfg Config) (*Cache, error) {
	cfg = cfg.withDefaults()
	log, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, err
	}
	c := &Cache{
		cfg:                 cfg,
		log:                 log,
		Classes:             make(map[string]*Class, 64),
		Functions:           make(map[string]*Function, 256),
		Overloads:           make(map[string][]string, 256),
		PendingRealizations: set.New[PendingRealization](64),
		realizedTypes:       make(map[string]*ClassRealization, 64),
		realizedFuncs:       make(map[string]*FuncRealization, 64),
		reverse:             make(map[string]string, 256),
	}
	c.Vars.NextId = firstUnboundID
	c.ctx = newContext(c)
	c.tc = newTypechecker(c.ctx)
	if err := c.loadPrelude(); err != nil {
		return nil, err
	}
	return c, nil
}

// Context returns the typechecking context of the session.
func (c *Cache) Context() *Context { return c.ctx }

// Typecheck infers the types of a module, rewriting it in place. Every statement of the
// returned suite is done.
func (c *Cache) Typecheck(module *ast.SuiteStmt) (*ast.SuiteStmt, error) {
	if err := c.tc.inferTypes(module); err != nil {
		c.log.Error("typecheck failed", slog.String("error", err.Error()))
		return nil, err
	}
	c.Vars.FlattenLinks()
	return module, nil
}

// GetTemporaryVar returns a fresh variable name.
func (c *Cache) GetTemporaryVar(prefix string) string {
	c.tempCount++
	return fmt.Sprintf("%%_%s%d", prefix, c.tempCount)
}

// GenerateSrcInfo returns a unique position for generated nodes.
func (c *Cache) GenerateSrcInfo() types.SrcInfo {
	c.srcCount++
	return types.SrcInfo{File: "<generated>", Line: c.srcCount, Col: c.srcCount}
}

// Rev returns the user-facing name of a canonical name.
func (c *Cache) Rev(name string) string {
	if nice, ok := c.reverse[name]; ok {
		return nice
	}
	if i := strings.LastIndexByte(name, ':'); i >= 0 {
		name = name[:i]
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// FindClass returns the template type of a class, or nil.
func (c *Cache) FindClass(name string) types.Type {
	if cls, ok := c.Classes[name]; ok {
		return cls.Type
	}
	return nil
}

// FindFunction returns the template type of a function (or of the first member of an
// overload set), or nil.
func (c *Cache) FindFunction(name string) *types.Func {
	if fn, ok := c.Functions[name]; ok {
		return fn.Type
	}
	if names := c.Overloads[name]; len(names) > 0 {
		return c.Functions[names[0]].Type
	}
	return nil
}

// FindMethod returns the template type of the overload of a method which best matches
// the argument types, or nil.
func (c *Cache) FindMethod(typ types.Type, member string, args []types.Type) *types.Func {
	name := c.tc.bestMethod(typ, member, args)
	if name == "" {
		return nil
	}
	return c.Functions[name].Type
}

// RealizeType realizes a class with the given generic arguments.
func (c *Cache) RealizeType(classType types.Type, generics []types.Type) (*ClassRealization, error) {
	cls := types.ClassOf(classType)
	if cls == nil {
		return nil, nil
	}
	t := c.ctx.instantiateClass(cls.Name)
	if t == nil {
		return nil, nil
	}
	gs := types.ClassOf(t).Generics
	if len(gs) != len(generics) {
		return nil, newError(ErrClassGenericMismatch, cls.Src, cls.NiceName, len(gs), len(generics))
	}
	for i, g := range generics {
		if err := c.tc.unify(gs[i].Type, g, cls.Src); err != nil {
			return nil, err
		}
	}
	rt, err := c.tc.realizeType(t)
	if rt == nil || err != nil {
		return nil, err
	}
	return c.realizedTypes[types.RealizedName(rt)], nil
}

// RealizeFunction realizes a function with the given argument, generic and parent types.
// Nil generics or a nil parent are inferred.
func (c *Cache) RealizeFunction(fn *types.Func, args, generics []types.Type, parentClass types.Type) (*FuncRealization, error) {
	decl, ok := c.Functions[fn.Name]
	if !ok {
		return nil, nil
	}
	t := c.ctx.instantiate(decl.Type).(*types.Func)
	if len(args) != len(t.Args) {
		return nil, newError(ErrCallArgsMany, fn.Src, fn.NiceName, len(t.Args), len(args))
	}
	for i, arg := range args {
		if err := c.tc.unify(t.Args[i], arg, fn.Src); err != nil {
			return nil, err
		}
	}
	for i, g := range generics {
		if i < len(t.FuncGenerics) && g != nil {
			if err := c.tc.unify(t.FuncGenerics[i].Type, g, fn.Src); err != nil {
				return nil, err
			}
		}
	}
	if parentClass != nil && t.Parent != nil {
		if err := c.tc.unify(t.Parent, parentClass, fn.Src); err != nil {
			return nil, err
		}
	}
	rt, err := c.tc.realizeFunc(t)
	if rt == nil || err != nil {
		return nil, err
	}
	return c.realizedFuncs[types.RealizedName(rt)], nil
}

// RealizedFunctions lists the function realizations, sorted by realized name.
func (c *Cache) RealizedFunctions() []*FuncRealization {
	b := immutable.NewSortedMapBuilder(immutable.NewSortedMap(nil))
	for name, r := range c.realizedFuncs {
		b.Set(name, r)
	}
	var out []*FuncRealization
	for it := b.Map().Iterator(); !it.Done(); {
		_, v := it.Next()
		out = append(out, v.(*FuncRealization))
	}
	return out
}

// RealizedTypes lists the class realizations, sorted by realized name.
func (c *Cache) RealizedTypes() []*ClassRealization {
	b := immutable.NewSortedMapBuilder(immutable.NewSortedMap(nil))
	for name, r := range c.realizedTypes {
		b.Set(name, r)
	}
	var out []*ClassRealization
	for it := b.Map().Iterator(); !it.Done(); {
		_, v := it.Next()
		out = append(out, v.(*ClassRealization))
	}
	return out
}

// Realized function by realized name.
func (c *Cache) RealizedFunction(name string) *FuncRealization { return c.realizedFuncs[name] }

// Realized class by realized name.
func (c *Cache) RealizedType(name string) *ClassRealization { return c.realizedTypes[name] }

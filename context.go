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
	"github.com/benbjohnson/immutable"

	"github.com/airen3339/codon/internal/typeutil"
	"github.com/airen3339/codon/types"
)

// ItemKind classifies the bindings of a scope.
type ItemKind int

const (
	VarItem ItemKind = iota
	// Class declared in the cache
	TypeItem
	// Type parameter of the enclosing declaration; never instantiated at use
	GenericItem
	FuncItem
)

// Item is a single scope binding.
type Item struct {
	Kind ItemKind
	Name string
	Type types.Type

	// Number of realization bases when the binding was added
	depth int
}

// RealizationBase is the function whose body is being checked.
type RealizationBase struct {
	Name string
	Type *types.Func
	// Return type of the function (or nil at the top level)
	Ret types.Type
	// Canonical name of the enclosing class of a method
	Class string

	// Index of the caller's scope in the block stack
	block int
}

var emptyScope = immutable.NewSortedMap(nil)

// Context is the state of a typechecking session: lexical scopes, realization bases
// and fixpoint bookkeeping. Scopes are persistent maps; adding a block pushes a snapshot.
type Context struct {
	cache *Cache

	scope  *immutable.SortedMap
	blocks []*immutable.SortedMap
	bases  []*RealizationBase

	TypecheckLevel   int
	ChangedNodes     int
	realizationDepth int
}

func newContext(c *Cache) *Context {
	return &Context{cache: c, scope: emptyScope, bases: []*RealizationBase{{Name: ""}}}
}

// Push a new lexical block.
func (ctx *Context) addBlock() { ctx.blocks = append(ctx.blocks, ctx.scope) }

// Pop the innermost lexical block, discarding its bindings.
func (ctx *Context) popBlock() {
	n := len(ctx.blocks) - 1
	ctx.scope, ctx.blocks = ctx.blocks[n], ctx.blocks[:n]
}

// Add binds name in the innermost block, shadowing outer bindings.
func (ctx *Context) Add(kind ItemKind, name string, t types.Type) *Item {
	item := &Item{Kind: kind, Name: name, Type: t, depth: len(ctx.bases)}
	ctx.scope = ctx.scope.Set(name, item)
	return item
}

// Find looks in the lexical scopes first, then in the declarations of the cache.
func (ctx *Context) Find(name string) *Item {
	if v, ok := ctx.scope.Get(name); ok {
		return v.(*Item)
	}
	c := ctx.cache
	if cls, ok := c.Classes[name]; ok {
		return &Item{Kind: TypeItem, Name: name, Type: cls.Type}
	}
	if fn := c.FindFunction(name); fn != nil {
		return &Item{Kind: FuncItem, Name: fn.Name, Type: fn}
	}
	return nil
}

// globalScope returns the module-level bindings, which are all a realization sees of
// its callers.
func (ctx *Context) globalScope() *immutable.SortedMap {
	if len(ctx.bases) == 1 {
		return ctx.scope
	}
	return ctx.blocks[ctx.bases[1].block]
}

func (ctx *Context) base() *RealizationBase { return ctx.bases[len(ctx.bases)-1] }

func (ctx *Context) pushBase(b *RealizationBase) { ctx.bases = append(ctx.bases, b) }

func (ctx *Context) popBase() { ctx.bases = ctx.bases[:len(ctx.bases)-1] }

// Allocate an unbound type-variable at the current level.
func (ctx *Context) newUnbound() *types.Link { return ctx.cache.Vars.New(ctx.TypecheckLevel) }

func (ctx *Context) newStaticUnbound(kind types.StaticKind) *types.Link {
	return ctx.cache.Vars.NewStatic(ctx.TypecheckLevel, kind)
}

// Instantiate t at the current level.
func (ctx *Context) instantiate(t types.Type) types.Type {
	return typeutil.Instantiate(t, ctx.TypecheckLevel, &ctx.cache.Vars, nil)
}

// Instantiate the template type t of a member of the class instance parent, binding the
// class generics to those of parent.
func (ctx *Context) instantiateMember(t types.Type, parent types.Type) types.Type {
	lookup := ctx.classLookup(parent)
	return typeutil.Instantiate(t, ctx.TypecheckLevel, &ctx.cache.Vars, lookup)
}

func (ctx *Context) classLookup(parent types.Type) map[int]types.Type {
	c := types.ClassOf(parent)
	if c == nil {
		return nil
	}
	cls, ok := ctx.cache.Classes[c.Name]
	if !ok {
		return nil
	}
	tmpl := types.ClassOf(cls.Type)
	lookup := make(map[int]types.Type, len(tmpl.Generics))
	for i, g := range tmpl.Generics {
		if i >= len(c.Generics) {
			break
		}
		if l, ok := g.Type.(*types.Link); ok && l.IsGeneric() {
			lookup[l.ID()] = c.Generics[i].Type
		}
	}
	return lookup
}

// Type of a class instance, or nil if name is not a class.
func (ctx *Context) instantiateClass(name string) types.Type {
	cls, ok := ctx.cache.Classes[name]
	if !ok {
		return nil
	}
	return ctx.instantiate(cls.Type)
}

// Instance of a prelude class.
func (ctx *Context) builtin(name string) types.Type {
	t := ctx.instantiateClass(name)
	if t == nil {
		panic("missing builtin class " + name)
	}
	return t
}

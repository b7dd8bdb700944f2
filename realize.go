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
	"log/slog"

	"github.com/airen3339/codon/ast"
	cs "github.com/airen3339/codon/construct"
	"github.com/airen3339/codon/types"
)

// realize returns the realized form of t, or nil if t is not yet fully known.
func (tc *Typechecker) realize(t types.Type) (types.Type, error) {
	switch tt := types.Follow(t).(type) {
	case *types.Func:
		rt, err := tc.realizeFunc(tt)
		if rt == nil || err != nil {
			return nil, err
		}
		return rt, nil
	case *types.Class, *types.Record, *types.Partial:
		return tc.realizeType(tt)
	case *types.Static:
		if _, ok := tt.Evaluate(); ok {
			return tt, nil
		}
	case *types.Union:
		if types.CanRealize(tt) {
			return tt, nil
		}
	}
	return nil, nil
}

// realizeType records a monomorphized class together with its realized fields. Classes
// whose declaration is not complete yet are deferred.
func (tc *Typechecker) realizeType(t types.Type) (types.Type, error) {
	if !types.CanRealize(t) {
		return nil, nil
	}
	c, ctx := tc.cache, tc.ctx
	cls := types.ClassOf(t)
	decl := c.Classes[cls.Name]
	if decl != nil && !decl.complete {
		return nil, nil
	}
	name := types.RealizedName(t)
	if r, ok := c.realizedTypes[name]; ok {
		return r.Type, nil
	}
	if limit := c.cfg.MaxRealizationDepth; ctx.realizationDepth >= limit {
		return nil, newError(ErrMaxRealization, cls.Src, limit)
	}
	ctx.realizationDepth++
	defer func() { ctx.realizationDepth-- }()

	for _, g := range cls.Generics {
		rt, err := tc.realize(g.Type)
		if rt == nil || err != nil {
			return nil, err
		}
	}
	r := &ClassRealization{RealizedName: name, Type: t}
	c.realizedTypes[name] = r
	if decl != nil {
		decl.Realizations[name] = r
		for _, f := range decl.Fields {
			ft, err := tc.realize(ctx.instantiateMember(f.Type, t))
			if err == nil && ft == nil {
				err = newError(ErrRealizeField, cls.Src, f.Name, types.TypeString(t))
			}
			if err != nil {
				delete(c.realizedTypes, name)
				delete(decl.Realizations, name)
				return nil, trackRealize(err, types.TypeString(t), cls.Src)
			}
			r.Fields = append(r.Fields, Field{Name: f.Name, Type: ft})
		}
	}
	tc.log.Debug("realize type", slog.String("name", name), slog.Int("fields", len(r.Fields)))
	return t, nil
}

func category(decl *ast.FunctionStmt) IRCategory {
	switch {
	case decl.HasAttr(ast.FuncInternal):
		return IRInternal
	case decl.HasAttr(ast.FuncLLVM):
		return IRLLVM
	case decl.HasAttr(ast.FuncC):
		return IRExternal
	}
	return IRBodied
}

// realizeFunc typechecks a copy of the body of a function for the argument types of
// fn. Realizations are cached by realized name; a function which calls itself sees
// its own pending realization.
func (tc *Typechecker) realizeFunc(fn *types.Func) (*types.Func, error) {
	if fn == nil || !types.CanRealize(fn) {
		return nil, nil
	}
	c, ctx := tc.cache, tc.ctx
	tmpl, ok := c.Functions[fn.Name]
	if !ok {
		return nil, newError(ErrIDNotFound, fn.Src, fn.NiceName)
	}
	name := types.RealizedName(fn)
	if r, ok := tmpl.Realizations[name]; ok {
		return r.Type, nil
	}
	if limit := c.cfg.MaxRealizationDepth; ctx.realizationDepth >= limit {
		return nil, newError(ErrMaxRealization, fn.Src, limit)
	}

	decl := tmpl.Ast
	r := &FuncRealization{RealizedName: name, Type: fn, Category: category(decl)}
	pending := PendingRealization{Function: fn.Name, RealizedName: name}
	tmpl.Realizations[name] = r
	c.realizedFuncs[name] = r
	c.PendingRealizations.Insert(pending)
	tc.log.Debug("realize function",
		slog.String("name", name),
		slog.String("category", r.Category.String()),
		slog.Int("depth", ctx.realizationDepth))

	if decl.Suite == nil {
		if r.Category == IRBodied {
			delete(tmpl.Realizations, name)
			delete(c.realizedFuncs, name)
			c.PendingRealizations.Remove(pending)
			return nil, newError(ErrFnRealizeBuiltin, decl.Src, decl.NiceName)
		}
		r.Ast = decl
		return fn, nil
	}

	typed := ast.CloneStmt(decl, true).(*ast.FunctionStmt)
	r.Ast = typed
	if err := tc.typecheckBody(typed, fn); err != nil {
		delete(tmpl.Realizations, name)
		delete(c.realizedFuncs, name)
		c.PendingRealizations.Remove(pending)
		return nil, trackRealize(err, types.TypeString(fn), decl.Src)
	}
	return fn, nil
}

// typecheckBody infers the body of a realization in a new block which binds the
// parameters and type parameters of fn.
func (tc *Typechecker) typecheckBody(decl *ast.FunctionStmt, fn *types.Func) error {
	ctx := tc.ctx
	ctx.realizationDepth++
	globals := ctx.globalScope()
	ctx.addBlock()
	ctx.scope = globals
	ctx.TypecheckLevel++
	ctx.pushBase(&RealizationBase{Name: fn.Name, Type: fn, Ret: fn.Ret, Class: decl.ParentClass, block: len(ctx.blocks) - 1})
	changed := ctx.ChangedNodes
	defer func() {
		ctx.popBase()
		ctx.TypecheckLevel--
		ctx.popBlock()
		ctx.realizationDepth--
		ctx.ChangedNodes = changed + 1
	}()

	if fn.Parent != nil {
		for _, g := range types.ClassOf(fn.Parent).Generics {
			ctx.Add(GenericItem, g.Name, g.Type)
		}
	}
	for _, g := range fn.FuncGenerics {
		ctx.Add(GenericItem, g.Name, g.Type)
	}
	i := 0
	for _, p := range decl.Params {
		if p.Status != ast.NormalParam {
			continue
		}
		if i < len(fn.Args) {
			ctx.Add(VarItem, p.Name, fn.Args[i])
		}
		i++
	}

	if err := tc.inferTypes(decl.Suite); err != nil {
		return err
	}
	if decl.Ret == nil && types.UnboundOf(fn.Ret) != nil {
		return tc.unify(fn.Ret, ctx.builtin(types.NoneName), decl.Src)
	}
	return nil
}

// bestMethod returns the canonical name of the overload of a method which best matches
// the argument types, not counting the receiver, or "".
func (tc *Typechecker) bestMethod(typ types.Type, member string, argTypes []types.Type) string {
	cls := types.ClassOf(typ)
	if cls == nil {
		return ""
	}
	decl, ok := tc.cache.Classes[cls.Name]
	if !ok {
		return ""
	}
	root, ok := decl.Methods[member]
	if !ok {
		return ""
	}
	args := make([]ast.CallArg, 0, len(argTypes)+1)
	placeholder := func(t types.Type) ast.CallArg {
		id := cs.Id(tc.cache.GetTemporaryVar("arg"))
		id.SetType(t)
		return ast.CallArg{Value: id}
	}
	args = append(args, placeholder(typ))
	for _, t := range argTypes {
		args = append(args, placeholder(t))
	}
	return tc.bestOverload(tc.cache.Overloads[root], args)
}

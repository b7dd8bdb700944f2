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
	"strings"

	"golang.org/x/exp/slices"

	"github.com/airen3339/codon/ast"
	cs "github.com/airen3339/codon/construct"
	"github.com/airen3339/codon/internal/typeutil"
	"github.com/airen3339/codon/types"
)

func (tc *Typechecker) visitCall(e *ast.CallExpr) (ExprRewrite, error) {
	if id, ok := e.Expr.(*ast.IdExpr); ok && e.Expr.Type() == nil {
		if r, handled, err := tc.visitIntrinsic(e, id.Value); handled || err != nil {
			return r, err
		}
	}
	if r, ok, err := tc.transformCallArgs(e); !ok || err != nil {
		return r, err
	}
	if dot, ok := e.Expr.(*ast.DotExpr); ok && !dot.Done() {
		if r, handled, err := tc.methodCall(e, dot); handled || err != nil {
			return r, err
		}
	}
	if id, ok := e.Expr.(*ast.IdExpr); ok && e.Expr.Type() == nil {
		if names := tc.cache.Overloads[id.Value]; len(names) > 1 {
			if !argsTyped(e.Args) {
				return deferred(), nil
			}
			best := tc.bestOverload(names, e.Args)
			if best == "" {
				return unchanged(), newError(ErrNoMethod, e.Src, tc.cache.Rev(id.Value), "__call__", argString(e.Args))
			}
			id.Value = best
			id.SetType(tc.ctx.instantiate(tc.cache.Functions[best].Type))
		}
	}

	var err error
	if e.Expr, err = tc.transform(e.Expr); err != nil {
		return unchanged(), err
	}
	if e.Expr.Base().HasAttr(ast.AttrType) {
		return tc.constructorCall(e)
	}
	ct := e.Expr.Type()
	if ct == nil || types.UnboundOf(ct) != nil {
		return deferred(), nil
	}
	switch ct := ct.(type) {
	case *types.Func:
		return tc.typecheckCall(e, ct)
	case *types.Partial:
		if !e.Base().HasAttr(ast.AttrPartial) {
			return tc.completePartial(e, ct)
		}
	}
	if c := types.ClassOf(ct); c != nil {
		if cls := tc.cache.Classes[c.Name]; cls != nil {
			if _, ok := cls.Methods["__call__"]; ok {
				return replaced(cs.CallArgs(cs.Dot(e.Expr, "__call__"), e.Args...)), nil
			}
		}
	}
	return unchanged(), newError(ErrCallNoCallable, e.Src, types.TypeString(ct))
}

func argsTyped(args []ast.CallArg) bool {
	for _, a := range args {
		if _, ok := a.Value.(*ast.EllipsisExpr); ok {
			continue
		}
		if t := a.Value.Type(); t == nil || types.UnboundOf(t) != nil {
			return false
		}
	}
	return true
}

func argString(args []ast.CallArg) string {
	names := make([]string, len(args))
	for i, a := range args {
		if t := a.Value.Type(); t != nil {
			names[i] = types.TypeString(t)
		} else {
			names[i] = "?"
		}
		if a.Name != "" {
			names[i] = a.Name + "=" + names[i]
		}
	}
	return strings.Join(names, ", ")
}

// transformCallArgs checks the order of the arguments, expands `*args` and `**kwargs`
// and transforms each argument value.
func (tc *Typechecker) transformCallArgs(e *ast.CallExpr) (ExprRewrite, bool, error) {
	if !e.Ordered {
		named := false
		for i, a := range e.Args {
			if a.Name != "" {
				named = true
				for _, b := range e.Args[:i] {
					if b.Name == a.Name {
						return unchanged(), false, newError(ErrCallRepeatedName, a.Value.Base().Src, a.Name)
					}
				}
				continue
			}
			if _, star := a.Value.(*ast.KeywordStarExpr); named && !star {
				return unchanged(), false, newError(ErrCallNameOrder, a.Value.Base().Src)
			}
		}
	}
	for i := 0; i < len(e.Args); i++ {
		var err error
		switch v := e.Args[i].Value.(type) {
		case *ast.StarExpr:
			if v.Expr, err = tc.transform(v.Expr); err != nil {
				return unchanged(), false, err
			}
			if r, ok := tc.hoistUnpacked(e, &v.Expr); !ok {
				return r, false, nil
			}
			t := v.Expr.Type()
			if t == nil || types.UnboundOf(t) != nil {
				return deferred(), false, nil
			}
			rec := types.RecordOf(t)
			if rec == nil || !types.IsTuple(t) {
				return unchanged(), false, newError(ErrCallBadUnpack, v.Src, types.TypeString(t))
			}
			items := make([]ast.CallArg, len(rec.Args))
			for k := range rec.Args {
				items[k] = ast.CallArg{Value: cs.Dot(ast.CloneExpr(v.Expr, false), tc.fieldName(rec, k))}
			}
			e.Args = slices.Replace(e.Args, i, i+1, items...)
			i--
		case *ast.KeywordStarExpr:
			if v.Expr, err = tc.transform(v.Expr); err != nil {
				return unchanged(), false, err
			}
			if r, ok := tc.hoistUnpacked(e, &v.Expr); !ok {
				return r, false, nil
			}
			t := v.Expr.Type()
			if t == nil || types.UnboundOf(t) != nil {
				return deferred(), false, nil
			}
			rec := types.RecordOf(t)
			var cls *Class
			if rec != nil {
				cls = tc.cache.Classes[rec.Name]
			}
			if cls == nil || !strings.HasPrefix(rec.Name, types.KwTupleName+".N") {
				return unchanged(), false, newError(ErrCallBadKwUnpack, v.Src, types.TypeString(t))
			}
			items := make([]ast.CallArg, len(cls.Fields))
			for k, f := range cls.Fields {
				items[k] = ast.CallArg{Name: f.Name, Value: cs.Dot(ast.CloneExpr(v.Expr, false), f.Name)}
			}
			e.Args = slices.Replace(e.Args, i, i+1, items...)
			i--
		case *ast.EllipsisExpr:
		default:
			if e.Args[i].Value, err = tc.transform(v); err != nil {
				return unchanged(), false, err
			}
		}
	}
	return unchanged(), true, nil
}

// hoistUnpacked moves an unpacked expression with effects into a temporary, so that
// its fields can be read repeatedly.
func (tc *Typechecker) hoistUnpacked(e *ast.CallExpr, slot *ast.Expr) (ExprRewrite, bool) {
	if _, ok := (*slot).(*ast.IdExpr); ok {
		return unchanged(), true
	}
	if _, ok := (*slot).(*ast.DotExpr); ok {
		return unchanged(), true
	}
	tmp := tc.cache.GetTemporaryVar("star")
	value := *slot
	*slot = cs.Id(tmp)
	return replaced(cs.StmtExpr(e, cs.Assign(tmp, value))), false
}

// methodCall rewrites `obj.method(args)` into a direct call of the selected overload.
func (tc *Typechecker) methodCall(e *ast.CallExpr, dot *ast.DotExpr) (ExprRewrite, bool, error) {
	var err error
	if dot.Expr, err = tc.transform(dot.Expr); err != nil {
		return unchanged(), true, err
	}
	t := dot.Expr.Type()
	if t == nil || types.UnboundOf(t) != nil {
		return deferred(), true, nil
	}
	c := types.ClassOf(t)
	if c == nil {
		return unchanged(), false, nil
	}
	cls := tc.cache.Classes[c.Name]
	if cls == nil {
		return unchanged(), false, nil
	}
	root, ok := cls.Methods[dot.Member]
	if !ok {
		return unchanged(), false, nil
	}
	isType := dot.Expr.Base().HasAttr(ast.AttrType)
	args := e.Args
	if !isType {
		args = append([]ast.CallArg{{Value: dot.Expr}}, e.Args...)
	}
	names := tc.cache.Overloads[root]
	best := names[0]
	if len(names) > 1 {
		if !argsTyped(args) {
			return deferred(), true, nil
		}
		if best = tc.bestOverload(names, args); best == "" {
			return unchanged(), true, newError(ErrNoMethod, e.Src, types.TypeString(t), dot.Member, argString(args))
		}
	}
	if fn := tc.cache.Functions[best]; fn.Ast.HasAttr(ast.FuncProperty) && !isType {
		return replaced(cs.CallArgs(cs.Call(tc.overloadRef(best), dot.Expr), e.Args...)), true, nil
	}
	call := cs.CallArgs(tc.overloadRef(best), args...)
	call.Attrs = e.Attrs
	if t := e.Type(); t != nil {
		call.SetType(t)
	}
	return replaced(call), true, nil
}

// bestOverload returns the canonical name of the overload whose signature best matches
// the (typed) arguments, or "". Ties go to the overload declared first.
func (tc *Typechecker) bestOverload(names []string, args []ast.CallArg) string {
	best, bestScore := "", -1
	for _, name := range names {
		fn := tc.cache.Functions[name]
		if fn == nil || fn.Ast == nil {
			continue
		}
		inst := tc.ctx.instantiate(fn.Type).(*types.Func)
		if s := tc.callScore(inst, fn.Ast, args); s > bestScore {
			best, bestScore = name, s
		}
	}
	return best
}

// callScore returns the score of a call of fn with the given arguments, or -1 if the
// arguments do not match.
func (tc *Typechecker) callScore(fn *types.Func, decl *ast.FunctionStmt, args []ast.CallArg) int {
	slots, _, _, err := tc.matchArguments(decl, args, false)
	if err != nil {
		return -1
	}
	u := typeutil.NewUndo(tc)
	defer func() {
		u.Undo()
		tc.envErr = nil
	}()
	score := 0
	for i, slot := range slots {
		if slot.value == nil || slot.value.Type() == nil || i >= len(fn.Args) {
			continue
		}
		at := slot.value.Type()
		if st := types.StaticKindOf(fn.Args[i]); st != types.NotStatic {
			if v, ok := staticValue(slot.value); ok && v.Kind == st {
				score++
				continue
			}
			return -1
		}
		if s := typeutil.TryUnify(fn.Args[i], at, u); s >= 0 {
			score += s
			continue
		}
		if !tc.canWrap(at, fn.Args[i]) {
			return -1
		}
	}
	return score
}

// canWrap reports whether an argument of type t converts implicitly to expected.
func (tc *Typechecker) canWrap(t, expected types.Type) bool {
	ec, c := types.ClassOf(expected), types.ClassOf(t)
	if ec == nil || c == nil {
		_, isFunc := types.Follow(t).(*types.Func)
		l := types.UnboundOf(expected)
		return isFunc && l != nil && l.Trait != nil
	}
	switch {
	case ec.Name == "float" && c.Name == "int":
		return true
	case ec.Name == "Optional" && c.Name != "Optional":
		return true
	case ec.Name == "Generator" && c.Name != "Generator":
		cls := tc.cache.Classes[c.Name]
		_, ok := cls.Methods["__iter__"]
		return ok
	}
	return false
}

type argSlot struct {
	value ast.Expr
	// Unknown argument of a partial call
	missing bool
}

// matchArguments assigns the arguments of a call to the normal parameters of decl.
// Extra positional arguments are packed into a tuple for `*args`, extra named
// arguments into a keyword tuple for `**kwargs`. Named arguments of type parameters
// are returned separately. With build unset, no nodes are created for packed and
// default arguments.
func (tc *Typechecker) matchArguments(decl *ast.FunctionStmt, args []ast.CallArg, build bool) ([]argSlot, map[string]ast.Expr, bool, error) {
	var params []ast.Param
	for _, p := range decl.Params {
		if p.Status == ast.NormalParam {
			params = append(params, p)
		}
	}
	partialRest := false
	var positional []ast.Expr
	var named []ast.CallArg
	for _, a := range args {
		if a.Name != "" {
			named = append(named, a)
		} else {
			positional = append(positional, a.Value)
		}
	}
	if n := len(positional); n > 0 {
		if _, ok := positional[n-1].(*ast.EllipsisExpr); ok {
			positional, partialRest = positional[:n-1], true
		}
	}

	slots := make([]argSlot, len(params))
	filled := make([]bool, len(params))
	starIdx, kwIdx := -1, -1
	for i, p := range params {
		switch p.Star {
		case 1:
			starIdx = i
		case 2:
			kwIdx = i
		}
	}
	var starItems []ast.Expr
	pi := 0
	for _, a := range positional {
		if pi < len(params) && params[pi].Star == 0 && (starIdx < 0 || pi < starIdx) {
			slots[pi], filled[pi] = argSlot{value: a}, true
			pi++
			continue
		}
		if starIdx >= 0 {
			starItems = append(starItems, a)
			continue
		}
		return nil, nil, false, newError(ErrCallArgsMany, a.Base().Src, decl.NiceName, len(params), len(positional))
	}

	generics := map[string]ast.Expr{}
	var kwItems []ast.CallArg
	for _, a := range named {
		idx := slices.IndexFunc(params, func(p ast.Param) bool { return p.Name == a.Name && p.Star == 0 })
		if idx >= 0 {
			if filled[idx] {
				return nil, nil, false, newError(ErrCallRepeatedName, a.Value.Base().Src, a.Name)
			}
			slots[idx], filled[idx] = argSlot{value: a.Value}, true
			continue
		}
		if slices.ContainsFunc(decl.Params, func(p ast.Param) bool { return p.Name == a.Name && p.Status == ast.GenericParam }) {
			generics[a.Name] = a.Value
			continue
		}
		if kwIdx >= 0 {
			kwItems = append(kwItems, a)
			continue
		}
		return nil, nil, false, newError(ErrCallArgsUnknown, a.Value.Base().Src, decl.NiceName, a.Name)
	}

	partial := false
	for i, p := range params {
		switch {
		case i == starIdx:
			if build {
				tup := cs.Tuple(starItems...)
				tup.SetAttr(ast.AttrStarArgument)
				slots[i].value = tup
			}
			continue
		case i == kwIdx:
			if build {
				kw, err := tc.kwTuple(kwItems)
				if err != nil {
					return nil, nil, false, err
				}
				kw.Base().SetAttr(ast.AttrKwStarArgument)
				slots[i].value = kw
			}
			continue
		}
		if slots[i].value != nil {
			if _, ok := slots[i].value.(*ast.EllipsisExpr); ok {
				slots[i], partial = argSlot{value: slots[i].value, missing: true}, true
			}
			continue
		}
		switch {
		case p.Default != nil:
			if build {
				slots[i].value = ast.CloneExpr(p.Default, true)
			}
		case partialRest:
			slots[i], partial = argSlot{value: cs.Ellipsis(), missing: true}, true
		default:
			return nil, nil, false, newError(ErrCallArgsMissing, decl.Src, decl.NiceName, p.Name)
		}
	}
	return slots, generics, partial, nil
}

// kwTuple returns the construction of a keyword tuple holding named arguments.
func (tc *Typechecker) kwTuple(items []ast.CallArg) (ast.Expr, error) {
	names := make([]string, len(items))
	values := make([]ast.Expr, len(items))
	for i, a := range items {
		names[i], values[i] = a.Name, a.Value
	}
	name, err := tc.kwTupleClass(names)
	if err != nil {
		return nil, err
	}
	return cs.Call(cs.Dot(cs.TypeId(name), "__new__"), values...), nil
}

// typecheckCall reorders the arguments against the signature of fn, unifies them with the
// parameters and realizes fn once it is concrete.
func (tc *Typechecker) typecheckCall(e *ast.CallExpr, fn *types.Func) (ExprRewrite, error) {
	decl, _ := fn.Decl.(*ast.FunctionStmt)
	if decl == nil {
		return unchanged(), newError(ErrCallNoCallable, e.Src, types.TypeString(fn))
	}
	if !e.Ordered {
		slots, generics, partial, err := tc.matchArguments(decl, e.Args, true)
		if err != nil {
			return unchanged(), err
		}
		for name, value := range generics {
			idx := slices.IndexFunc(fn.FuncGenerics, func(g types.Generic) bool { return g.Name == name })
			if idx < 0 {
				return unchanged(), newError(ErrCallArgsUnknown, value.Base().Src, decl.NiceName, name)
			}
			gt, err := tc.typeOrStatic(&value)
			if err != nil {
				return unchanged(), err
			}
			if err := tc.unify(fn.FuncGenerics[idx].Type, gt, value.Base().Src); err != nil {
				return unchanged(), err
			}
		}
		e.Args = make([]ast.CallArg, len(slots))
		for i, s := range slots {
			e.Args[i] = ast.CallArg{Value: s.value}
		}
		e.Ordered = true
		e.SetAttr(ast.AttrOrderedCall)
		if partial {
			return tc.partialCall(e, fn, slots)
		}
	}
	if len(e.Args) != len(fn.Args) {
		return unchanged(), newError(ErrCallArgsMany, e.Src, decl.NiceName, len(fn.Args), len(e.Args))
	}

	done := true
	for i := range e.Args {
		arg := &e.Args[i]
		var err error
		if arg.Value, err = tc.transform(arg.Value); err != nil {
			return unchanged(), err
		}
		if arg.Value, err = tc.wrapExpr(arg.Value, fn.Args[i]); err != nil {
			return unchanged(), err
		}
		at, err := tc.argumentType(arg.Value, fn.Args[i])
		if err != nil {
			return unchanged(), err
		}
		if at != nil {
			if err := tc.unify(fn.Args[i], at, arg.Value.Base().Src); err != nil {
				return unchanged(), err
			}
		}
		done = done && arg.Value.Base().Done()
	}

	if p, ok := e.Type().(*types.Partial); ok && e.HasAttr(ast.AttrPartial) {
		if err := tc.unify(&p.Record, fn.Ret, e.Src); err != nil {
			return unchanged(), err
		}
	} else if err := tc.assign(e, fn.Ret); err != nil {
		return unchanged(), err
	}

	if types.CanRealize(fn) {
		rt, err := tc.realizeFunc(fn)
		if err != nil {
			return unchanged(), err
		}
		if rt != nil {
			if err := tc.unify(fn, rt, e.Src); err != nil {
				return unchanged(), err
			}
			e.Expr.Base().SetDone()
		}
	}
	if !done || !e.Expr.Base().Done() {
		return unchanged(), nil
	}
	return tc.finish(e)
}

// argumentType returns the type an argument contributes to its parameter: the static
// value for static parameters, otherwise the type of the argument.
func (tc *Typechecker) argumentType(arg ast.Expr, param types.Type) (types.Type, error) {
	kind := types.StaticKindOf(param)
	if kind == types.NotStatic {
		return arg.Type(), nil
	}
	v, ok := staticValue(arg)
	switch {
	case ok && v.Kind == kind && kind == types.StaticInt:
		return types.NewStaticInt(v.Int), nil
	case ok && v.Kind == kind:
		return types.NewStaticStr(v.Str), nil
	case arg.Base().IsStatic() && !ok:
		return nil, nil
	}
	return nil, newError(ErrExpectedStatic, arg.Base().Src)
}

// wrapExpr applies the implicit conversion of an argument to the expected type.
func (tc *Typechecker) wrapExpr(e ast.Expr, expected types.Type) (ast.Expr, error) {
	t := e.Type()
	if t == nil || types.UnboundOf(t) != nil || expected == nil {
		return e, nil
	}
	var wrapped ast.Expr
	ec, c := types.ClassOf(expected), types.ClassOf(t)
	switch {
	case ec == nil || c == nil:
		if _, isFunc := t.(*types.Func); isFunc {
			if l := types.UnboundOf(expected); l != nil && l.Trait != nil {
				wrapped = cs.Call(e, cs.Ellipsis())
			}
		}
	case ec.Name == "float" && c.Name == "int":
		wrapped = cs.Call(cs.TypeId("float"), e)
	case ec.Name == "Optional" && c.Name != "Optional":
		wrapped = cs.Call(cs.TypeId("Optional"), e)
	case ec.Name == "Generator" && c.Name != "Generator" && tc.canWrap(t, expected):
		wrapped = cs.Method(e, "__iter__")
	}
	if wrapped == nil {
		return e, nil
	}
	wrapped.Base().Src = e.Base().Src
	return tc.transform(wrapped)
}

// partialCall rewrites a call with missing arguments into the construction of a partial
// object which holds the known arguments.
func (tc *Typechecker) partialCall(e *ast.CallExpr, fn *types.Func, slots []argSlot) (ExprRewrite, error) {
	known := make([]bool, len(slots))
	var values []ast.Expr
	for i, s := range slots {
		if !s.missing {
			known[i] = true
			values = append(values, s.value)
		}
	}
	name, err := tc.partialClass(fn, known)
	if err != nil {
		return unchanged(), err
	}
	rec := types.RecordOf(tc.ctx.instantiateClass(name))
	p := &types.Partial{Record: *rec, Func: tc.cache.Functions[fn.Name].Type, Known: known}
	ctor := cs.Call(cs.Dot(cs.TypeId(name), "__new__"), values...)
	ctor.SetAttr(ast.AttrPartial)
	ctor.SetType(p)
	return replaced(ctor), nil
}

// completePartial rewrites the call of a partial object into a call of the underlying
// function, passing the stored arguments first.
func (tc *Typechecker) completePartial(e *ast.CallExpr, p *types.Partial) (ExprRewrite, error) {
	decl := tc.cache.Functions[p.Func.Name].Ast
	cls := tc.cache.Classes[p.Name]
	tmp := tc.cache.GetTemporaryVar("partial")

	var positional []ast.Expr
	named := map[string]ast.Expr{}
	var namedOrder []string
	for _, a := range e.Args {
		if a.Name == "" {
			positional = append(positional, a.Value)
		} else {
			named[a.Name] = a.Value
			namedOrder = append(namedOrder, a.Name)
		}
	}
	ellipsis := false
	if n := len(positional); n > 0 {
		if _, ok := positional[n-1].(*ast.EllipsisExpr); ok {
			positional, ellipsis = positional[:n-1], true
		}
	}

	var args []ast.CallArg
	afterStar := false
	add := func(name string, v ast.Expr) {
		if afterStar {
			args = append(args, ast.CallArg{Name: name, Value: v})
		} else {
			args = append(args, ast.CallArg{Value: v})
		}
	}
	field := 0
	i := 0
	for _, param := range decl.Params {
		if param.Status != ast.NormalParam {
			continue
		}
		isKnown := i < len(p.Known) && p.Known[i]
		i++
		var stored ast.Expr
		if isKnown {
			stored = cs.Dot(cs.Id(tmp), cls.Fields[field].Name)
			field++
		}
		switch param.Star {
		case 1:
			if isKnown {
				args = append(args, ast.CallArg{Value: cs.Star(stored)})
			} else {
				for _, v := range positional {
					args = append(args, ast.CallArg{Value: v})
				}
				positional = nil
			}
			afterStar = true
			continue
		case 2:
			if isKnown {
				args = append(args, ast.CallArg{Value: cs.KwStar(stored)})
			}
			continue
		}
		switch {
		case isKnown:
			add(param.Name, stored)
		case named[param.Name] != nil:
			add(param.Name, named[param.Name])
			delete(named, param.Name)
		case len(positional) > 0 && !afterStar:
			add(param.Name, positional[0])
			positional = positional[1:]
		case ellipsis:
			add(param.Name, cs.Ellipsis())
		default:
			return unchanged(), newError(ErrCallArgsMissing, e.Src, decl.NiceName, param.Name)
		}
	}
	for _, v := range positional {
		args = append(args, ast.CallArg{Value: v})
	}
	for _, name := range namedOrder {
		if v, ok := named[name]; ok {
			args = append(args, ast.CallArg{Name: name, Value: v})
		}
	}
	call := cs.CallArgs(cs.Id(p.Func.Name), args...)
	return replaced(cs.StmtExpr(call, cs.Assign(tmp, e.Expr))), nil
}

// constructorCall rewrites `T(args)`: records are built by `T.__new__(args)`, reference
// classes by `T.__new__()` followed by `__init__(args)`.
func (tc *Typechecker) constructorCall(e *ast.CallExpr) (ExprRewrite, error) {
	t := e.Expr.Type()
	c := types.ClassOf(t)
	if c == nil {
		return deferred(), nil
	}
	cls := tc.cache.Classes[c.Name]
	if cls == nil {
		return unchanged(), newError(ErrCallNoCallable, e.Src, types.TypeString(t))
	}
	if cls.Ast.Record {
		return replaced(cs.CallArgs(cs.Dot(e.Expr, "__new__"), e.Args...)), nil
	}
	tmp := tc.cache.GetTemporaryVar("ctr")
	return replaced(cs.StmtExpr(cs.Id(tmp),
		cs.Assign(tmp, cs.Call(cs.Dot(e.Expr, "__new__"))),
		cs.ExprStmt(cs.CallArgs(cs.Dot(cs.Id(tmp), "__init__"), e.Args...)),
	)), nil
}

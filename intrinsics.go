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
	"github.com/airen3339/codon/ast"
	cs "github.com/airen3339/codon/construct"
	"github.com/airen3339/codon/internal/typeutil"
	"github.com/airen3339/codon/types"
)

// visitIntrinsic rewrites calls of compiler intrinsics. Local bindings shadow them.
func (tc *Typechecker) visitIntrinsic(e *ast.CallExpr, name string) (ExprRewrite, bool, error) {
	if _, ok := tc.ctx.scope.Get(name); ok {
		return unchanged(), false, nil
	}
	var r ExprRewrite
	var err error
	switch name {
	case "isinstance":
		r, err = tc.isinstance(e)
	case "staticlen":
		r, err = tc.staticlen(e)
	case "hasattr":
		r, err = tc.hasattr(e)
	case "getattr":
		if err = checkArity(e, name, 2); err == nil {
			var member string
			if member, err = stringArg(e.Args[1].Value); err == nil {
				r = replaced(cs.Dot(e.Args[0].Value, member))
			}
		}
	case "setattr":
		if err = checkArity(e, name, 3); err == nil {
			var member string
			if member, err = stringArg(e.Args[1].Value); err == nil {
				r = replaced(cs.StmtExpr(cs.None(), cs.AssignMember(e.Args[0].Value, member, e.Args[2].Value)))
			}
		}
	case "compile_error":
		if err = checkArity(e, name, 1); err == nil {
			var msg string
			if msg, err = stringArg(e.Args[0].Value); err == nil {
				err = newError(ErrCustom, e.Src, msg)
			}
		}
	case "type":
		r, err = tc.typeOf(e)
	case "super":
		r, err = tc.super(e)
	case "__ptr__":
		if len(e.Args) == 1 {
			if id, ok := e.Args[0].Value.(*ast.IdExpr); ok {
				if item := tc.ctx.Find(id.Value); item != nil && item.Kind == VarItem {
					return unchanged(), false, nil
				}
			}
		}
		err = newError(ErrPtrRequiresVar, e.Src)
	case "partial":
		if len(e.Args) == 0 {
			err = newError(ErrCallArgsMissing, e.Src, name, "func")
			break
		}
		var pos, named []ast.CallArg
		for _, a := range e.Args[1:] {
			if a.Name == "" {
				pos = append(pos, a)
			} else {
				named = append(named, a)
			}
		}
		args := append(append(pos, cs.Arg("", cs.Ellipsis())), named...)
		r = replaced(cs.CallArgs(e.Args[0].Value, args...))
	default:
		return unchanged(), false, nil
	}
	return r, true, err
}

func checkArity(e *ast.CallExpr, name string, n int) error {
	if len(e.Args) != n {
		return newError(ErrCallArgsMany, e.Src, name, n, len(e.Args))
	}
	return nil
}

func stringArg(e ast.Expr) (string, error) {
	if s, ok := e.(*ast.StringExpr); ok {
		return s.Value, nil
	}
	return "", newError(ErrExpectedStatic, e.Base().Src)
}

// `isinstance(x, T)` folds to a bool once the type of x is known. A bare class name
// matches every instance of the class.
func (tc *Typechecker) isinstance(e *ast.CallExpr) (ExprRewrite, error) {
	if err := checkArity(e, "isinstance", 2); err != nil {
		return unchanged(), err
	}
	var err error
	if e.Args[0].Value, err = tc.transform(e.Args[0].Value); err != nil {
		return unchanged(), err
	}
	t := e.Args[0].Value.Type()
	if t == nil || types.UnboundOf(t) != nil {
		return deferred(), nil
	}
	target := e.Args[1].Value
	if id, ok := target.(*ast.IdExpr); ok && id.Value == types.TupleName && id.Type() == nil {
		return replaced(cs.Bool(types.IsTuple(t))), nil
	}
	_, bare := target.(*ast.IdExpr)
	tt, err := tc.typeOrStatic(&e.Args[1].Value)
	if err != nil {
		return unchanged(), err
	}
	if types.UnboundOf(tt) != nil {
		return deferred(), nil
	}
	c, tc2 := types.ClassOf(t), types.ClassOf(tt)
	if bare {
		return replaced(cs.Bool(c != nil && tc2 != nil && c.Name == tc2.Name)), nil
	}
	if !types.CanRealize(t) || !types.CanRealize(tt) {
		return deferred(), nil
	}
	return replaced(cs.Bool(types.RealizedName(t) == types.RealizedName(tt) && typeutil.CanUnify(t, tt, tc))), nil
}

// `staticlen(x)` is the number of fields of a record, or the length of a static string.
func (tc *Typechecker) staticlen(e *ast.CallExpr) (ExprRewrite, error) {
	if err := checkArity(e, "staticlen", 1); err != nil {
		return unchanged(), err
	}
	var err error
	if e.Args[0].Value, err = tc.transform(e.Args[0].Value); err != nil {
		return unchanged(), err
	}
	arg := e.Args[0].Value
	if v, ok := staticValue(arg); ok && v.Kind == types.StaticStr {
		return replaced(cs.Int(int64(len(v.Str)))), nil
	}
	t := arg.Type()
	if t == nil || types.UnboundOf(t) != nil || (arg.Base().IsStatic() && !arg.Base().Static.Evaluated) {
		return deferred(), nil
	}
	rec := types.RecordOf(t)
	if rec == nil {
		return unchanged(), newError(ErrExpectedStatic, e.Src)
	}
	return replaced(cs.Int(int64(len(rec.Args)))), nil
}

// `hasattr(x, "name")` folds to a bool once the type of x is known.
func (tc *Typechecker) hasattr(e *ast.CallExpr) (ExprRewrite, error) {
	if err := checkArity(e, "hasattr", 2); err != nil {
		return unchanged(), err
	}
	member, err := stringArg(e.Args[1].Value)
	if err != nil {
		return unchanged(), err
	}
	if e.Args[0].Value, err = tc.transform(e.Args[0].Value); err != nil {
		return unchanged(), err
	}
	t := e.Args[0].Value.Type()
	if t == nil || types.UnboundOf(t) != nil {
		return deferred(), nil
	}
	found := false
	if c := types.ClassOf(t); c != nil {
		if cls := tc.cache.Classes[c.Name]; cls != nil {
			_, _, isField := cls.Field(member)
			_, isMethod := cls.Methods[member]
			found = isField || isMethod
		}
		for _, g := range c.Generics {
			found = found || g.Name == member || g.NiceName == member
		}
	}
	return replaced(cs.Bool(found)), nil
}

// `type(x)` denotes the type of x.
func (tc *Typechecker) typeOf(e *ast.CallExpr) (ExprRewrite, error) {
	if err := checkArity(e, "type", 1); err != nil {
		return unchanged(), err
	}
	var err error
	if e.Args[0].Value, err = tc.transform(e.Args[0].Value); err != nil {
		return unchanged(), err
	}
	t := e.Args[0].Value.Type()
	if t == nil || types.UnboundOf(t) != nil {
		return deferred(), nil
	}
	id := cs.Id("type")
	if c := types.ClassOf(t); c != nil {
		id.Value = c.Name
	}
	id.SetType(t)
	id.SetAttr(ast.AttrType)
	return replaced(id), nil
}

// `super()` within a method becomes `class_super(self, T=Parent)`.
func (tc *Typechecker) super(e *ast.CallExpr) (ExprRewrite, error) {
	base := tc.ctx.base()
	if base.Class == "" || base.Type == nil {
		return unchanged(), newError(ErrNoSuper, e.Src)
	}
	cls := tc.cache.Classes[base.Class]
	decl, _ := base.Type.Decl.(*ast.FunctionStmt)
	if cls == nil || len(cls.Ast.Parents) == 0 || decl == nil || len(decl.Params) == 0 {
		return unchanged(), newError(ErrNoSuper, e.Src)
	}
	return replaced(cs.CallArgs(cs.Id("class_super"),
		cs.Arg("", cs.Id(decl.Params[0].Name)),
		cs.Arg("T", cs.TypeId(cls.Ast.Parents[0])),
	)), nil
}

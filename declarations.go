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

	"github.com/airen3339/codon/ast"
	cs "github.com/airen3339/codon/construct"
	"github.com/airen3339/codon/internal/typeutil"
	"github.com/airen3339/codon/types"
)

func sameDecl(a, b ast.Stmt) bool {
	return a == b || (a.Base().Src != (types.SrcInfo{}) && a.Base().Src == b.Base().Src)
}

// declareGeneric binds a type parameter in the current block.
func (tc *Typechecker) declareGeneric(p ast.Param) (types.Generic, error) {
	kind := types.NotStatic
	if p.Type != nil {
		kind = staticAnnotation(p.Type)
	}
	l := tc.ctx.newStaticUnbound(kind)
	l.GenericName = p.Name
	if p.Default != nil {
		var dt types.Type
		var err error
		if kind != types.NotStatic {
			def := ast.CloneExpr(p.Default, true)
			dt, err = tc.typeOrStatic(&def)
		} else {
			dt, err = tc.transformType(p.Default)
		}
		if err != nil {
			return types.Generic{}, err
		}
		l.Default = dt
	}
	tc.ctx.Add(GenericItem, p.Name, l)
	return types.Generic{Name: p.Name, NiceName: tc.cache.Rev(p.Name), ID: l.ID(), Type: l, Default: l.Default}, nil
}

// registerFunction creates the generic type of a function declaration and adds it to
// its overload set. Methods are typed against a fresh instance of their class.
func (tc *Typechecker) registerFunction(s *ast.FunctionStmt, parent *Class) (*Function, error) {
	c, ctx := tc.cache, tc.ctx
	if fn, ok := c.Functions[s.Name]; ok {
		if sameDecl(fn.Ast, s) {
			return fn, nil
		}
		s.Name = fmt.Sprintf("%s:%d", s.RootName(), len(c.Overloads[s.RootName()]))
	}

	ctx.addBlock()
	ctx.TypecheckLevel++
	defer func() {
		ctx.TypecheckLevel--
		ctx.popBlock()
	}()

	fn := &types.Func{Name: s.Name, NiceName: s.NiceName, Decl: s}
	fn.Src = s.Src
	if parent != nil {
		inst := ctx.instantiate(parent.Type)
		for _, g := range types.ClassOf(inst).Generics {
			ctx.Add(GenericItem, g.Name, g.Type)
		}
		fn.Parent = inst
	}
	for _, p := range s.Params {
		if p.Status != ast.GenericParam {
			continue
		}
		g, err := tc.declareGeneric(p)
		if err != nil {
			return nil, err
		}
		fn.FuncGenerics = append(fn.FuncGenerics, g)
	}
	for _, p := range s.Params {
		if p.Status != ast.NormalParam {
			continue
		}
		var t types.Type
		var err error
		_, noneDefault := p.Default.(*ast.NoneExpr)
		switch {
		case p.Type != nil:
			t, err = tc.transformType(p.Type)
		case parent != nil && len(fn.Args) == 0 && p.Name == "self":
			t = fn.Parent
		case noneDefault:
			t = ctx.builtin("Optional")
		default:
			t = ctx.newUnbound()
		}
		if err != nil {
			return nil, err
		}
		fn.Args = append(fn.Args, t)
	}
	var err error
	switch {
	case s.Ret != nil:
		fn.Ret, err = tc.transformType(s.Ret)
	case s.Suite == nil:
		fn.Ret = ctx.builtin(types.NoneName)
	default:
		fn.Ret = ctx.newUnbound()
	}
	if err != nil {
		return nil, err
	}

	f := &Function{
		Ast:          s,
		Type:         typeutil.Generalize(fn, ctx.TypecheckLevel).(*types.Func),
		Realizations: make(map[string]*FuncRealization),
	}
	c.Functions[s.Name] = f
	c.reverse[s.Name] = s.NiceName
	if !strings.HasSuffix(s.Name, ":dispatch") {
		root := s.RootName()
		c.Overloads[root] = append(c.Overloads[root], s.Name)
	}
	tc.log.Debug("registered function", slog.String("name", s.Name), slog.String("type", types.TypeString(f.Type)))
	return f, nil
}

// registerClass creates the generic type of a class declaration and registers its
// fields and methods. Reference classes are visible to their own field annotations.
func (tc *Typechecker) registerClass(s *ast.ClassStmt) (*Class, error) {
	c := tc.cache
	if cls, ok := c.Classes[s.Name]; ok {
		if sameDecl(cls.Ast, s) {
			return cls, nil
		}
		return nil, newError(ErrCustom, s.Src, fmt.Sprintf("class '%s' is already defined", s.NiceName))
	}
	cls := &Class{Ast: s, Methods: make(map[string]string), Realizations: make(map[string]*ClassRealization)}
	if err := tc.declareFields(s, cls); err != nil {
		delete(c.Classes, s.Name)
		return nil, err
	}

	tc.addDefaultMembers(s)
	if err := tc.registerMethods(cls, s.Methods); err != nil {
		return nil, err
	}
	tc.log.Debug("registered class", slog.String("name", s.Name), slog.String("type", types.TypeString(cls.Type)))
	return cls, nil
}

func (tc *Typechecker) registerMethods(cls *Class, methods []*ast.FunctionStmt) error {
	s := cls.Ast
	for _, m := range methods {
		if !strings.HasPrefix(m.Name, s.Name+".") {
			m.Name = s.Name + "." + m.Name
		}
		m.ParentClass = s.Name
		m.Attrs |= ast.FuncMethod
		if _, err := tc.registerFunction(m, cls); err != nil {
			return err
		}
		cls.Methods[m.NiceName] = m.RootName()
	}
	return nil
}

func (tc *Typechecker) declareFields(s *ast.ClassStmt, cls *Class) error {
	c, ctx := tc.cache, tc.ctx
	ctx.addBlock()
	ctx.TypecheckLevel++
	defer func() {
		ctx.TypecheckLevel--
		ctx.popBlock()
	}()
	level := ctx.TypecheckLevel

	var generics []types.Generic
	for _, p := range s.Generics {
		g, err := tc.declareGeneric(p)
		if err != nil {
			return err
		}
		generics = append(generics, g)
	}
	base := types.Class{Name: s.Name, NiceName: s.NiceName, Generics: generics}
	base.Src = s.Src
	var t types.Type
	var rec *types.Record
	if s.Record {
		rec = &types.Record{Class: base}
		t = rec
	} else {
		t = &base
	}
	c.Classes[s.Name] = cls
	c.reverse[s.Name] = s.NiceName
	if !s.Record {
		cls.Type = typeutil.Generalize(t, level)
	}

	for _, f := range s.Fields {
		if f.Type == nil {
			return newError(ErrExpectedType, s.Src, f.Name)
		}
		ft, err := tc.transformType(f.Type)
		if err != nil {
			return err
		}
		cls.Fields = append(cls.Fields, Field{Name: f.Name, Type: ft})
		if rec != nil {
			rec.Args = append(rec.Args, ft)
		}
	}
	cls.Type = typeutil.Generalize(t, level)
	for i := range cls.Fields {
		cls.Fields[i].Type = typeutil.Generalize(cls.Fields[i].Type, level)
	}
	cls.complete = true
	return nil
}

// selfType returns the annotation of the class instance type.
func selfType(s *ast.ClassStmt) ast.Expr {
	if len(s.Generics) == 0 {
		return cs.TypeId(s.Name)
	}
	params := make([]ast.Expr, len(s.Generics))
	for i, g := range s.Generics {
		params[i] = cs.Id(g.Name)
	}
	return cs.Instantiate(cs.TypeId(s.Name), params...)
}

// addDefaultMembers adds the constructors a class does not declare: `__new__` for all
// classes and a field-wise `__init__` for reference classes.
func (tc *Typechecker) addDefaultMembers(s *ast.ClassStmt) {
	has := func(member string) bool {
		for _, m := range s.Methods {
			if m.NiceName == member {
				return true
			}
		}
		return false
	}
	if !has("__new__") {
		var params []ast.Param
		if s.Record {
			for _, f := range s.Fields {
				params = append(params, cs.Param(f.Name, ast.CloneExpr(f.Type, true)))
			}
		}
		m := cs.InternalFunc(s.Name+".__new__", params, selfType(s))
		m.Attrs |= ast.FuncAutoGenerated
		m.Src = s.Src
		s.Methods = append(s.Methods, m)
	}
	if !s.Record && !has("__init__") {
		params := []ast.Param{cs.Param("self", nil)}
		var body []ast.Stmt
		for _, f := range s.Fields {
			params = append(params, cs.Param(f.Name, ast.CloneExpr(f.Type, true)))
			body = append(body, cs.AssignMember(cs.Id("self"), f.Name, cs.Id(f.Name)))
		}
		if len(body) == 0 {
			body = append(body, cs.Pass())
		}
		m := cs.Func(s.Name+".__init__", params, cs.TypeId(types.NoneName), body...)
		m.Attrs |= ast.FuncAutoGenerated
		m.Src = s.Src
		s.Methods = append(s.Methods, m)
	}
}

func (tc *Typechecker) visitFunction(s *ast.FunctionStmt) (StmtRewrite, error) {
	_, known := tc.cache.Functions[s.Name]
	if s.ParentClass == "" && !(known && tc.ctx.base().Name != "") {
		if _, err := tc.registerFunction(s, nil); err != nil {
			return stmtUnchanged(), err
		}
	}
	s.SetDone()
	return stmtUnchanged(), nil
}

func (tc *Typechecker) visitClass(s *ast.ClassStmt) (StmtRewrite, error) {
	if _, err := tc.registerClass(s); err != nil {
		return stmtUnchanged(), err
	}
	s.SetDone()
	return stmtUnchanged(), nil
}

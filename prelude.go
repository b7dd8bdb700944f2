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
	"github.com/airen3339/codon/types"
)

func self() ast.Param { return cs.Param("self", nil) }

func method(name string, ret ast.Expr, params ...ast.Param) *ast.FunctionStmt {
	return cs.InternalFunc(name, append([]ast.Param{self()}, params...), ret)
}

func ctor(name string, ret ast.Expr, params ...ast.Param) *ast.FunctionStmt {
	return cs.InternalFunc(name, params, ret)
}

func generic(class string, params ...string) ast.Expr {
	ps := make([]ast.Expr, len(params))
	for i, p := range params {
		ps[i] = cs.Id(p)
	}
	return cs.Instantiate(cs.TypeId(class), ps...)
}

// binaryMethods declares `__op__(self, other: arg) -> ret` for each op.
func binaryMethods(arg, ret string, ops ...string) []*ast.FunctionStmt {
	ms := make([]*ast.FunctionStmt, len(ops))
	for i, op := range ops {
		ms[i] = method("__"+op+"__", cs.TypeId(ret), cs.Param("other", cs.TypeId(arg)))
	}
	return ms
}

func unaryMethods(ret string, ops ...string) []*ast.FunctionStmt {
	ms := make([]*ast.FunctionStmt, len(ops))
	for i, op := range ops {
		ms[i] = method("__"+op+"__", cs.TypeId(ret))
	}
	return ms
}

var (
	arithmetic  = []string{"add", "sub", "mul", "truediv", "pow"}
	integral    = []string{"floordiv", "mod", "and", "or", "xor", "lshift", "rshift"}
	comparisons = []string{"eq", "ne", "lt", "le", "gt", "ge"}
)

// loadPrelude declares the builtin classes and functions of a session.
func (c *Cache) loadPrelude() error {
	tc := c.tc
	scalars := []string{types.NoneName, "bool", "byte", "int", "float", "str", "ellipsis", "type"}
	for _, name := range scalars {
		if _, err := tc.registerClass(cs.Record(name, nil, nil)); err != nil {
			return err
		}
	}

	decls := []*ast.ClassStmt{
		cs.Record("Int",
			[]ast.Param{cs.Generic("N", cs.StaticType(types.StaticInt))}, nil,
			method("__add__", generic("Int", "N"), cs.Param("other", generic("Int", "N"))),
			method("__eq__", cs.TypeId("bool"), cs.Param("other", generic("Int", "N"))),
		),
		cs.Record("Ptr", []ast.Param{cs.Generic("T", nil)}, nil,
			method("__getitem__", cs.Id("T"), cs.Param("index", cs.TypeId("int"))),
		),
		cs.Record("Generator", []ast.Param{cs.Generic("T", nil)}, nil,
			method("__iter__", generic("Generator", "T")),
			method("__next__", cs.Id("T")),
			method("done", cs.TypeId("bool")),
		),
		cs.Record("Optional", []ast.Param{cs.Generic("T", nil)}, nil,
			ctor("__new__", generic("Optional", "T")),
			ctor("__new__", generic("Optional", "T"), cs.Param("what", cs.Id("T"))),
			method("__is__", cs.TypeId("bool"), cs.Param("other", generic("Optional", "T"))),
			method("__bool__", cs.TypeId("bool")),
		),
		cs.Class("List", []ast.Param{cs.Generic("T", nil)},
			[]ast.Param{cs.Param("len", cs.TypeId("int"))},
			method("__init__", cs.TypeId(types.NoneName)),
			method("__len__", cs.TypeId("int")),
			method("__getitem__", cs.Id("T"), cs.Param("index", cs.TypeId("int"))),
			method("__setitem__", cs.TypeId(types.NoneName), cs.Param("index", cs.TypeId("int")), cs.Param("item", cs.Id("T"))),
			method("__contains__", cs.TypeId("bool"), cs.Param("item", cs.Id("T"))),
			method("__iter__", generic("Generator", "T")),
			method("append", cs.TypeId(types.NoneName), cs.Param("item", cs.Id("T"))),
		),
		cs.Record("range", nil,
			[]ast.Param{
				cs.Param("start", cs.TypeId("int")),
				cs.Param("stop", cs.TypeId("int")),
				cs.Param("step", cs.TypeId("int")),
			},
			ctor("__new__", cs.TypeId("range"), cs.Param("stop", cs.TypeId("int"))),
			ctor("__new__", cs.TypeId("range"), cs.Param("start", cs.TypeId("int")), cs.Param("stop", cs.TypeId("int"))),
			ctor("__new__", cs.TypeId("range"),
				cs.Param("start", cs.TypeId("int")),
				cs.Param("stop", cs.TypeId("int")),
				cs.Param("step", cs.TypeId("int"))),
			method("__iter__", generic("Generator", "int")),
			method("__len__", cs.TypeId("int")),
		),
		cs.Class("pyobj", nil, nil,
			method("_getattr", cs.TypeId("pyobj"), cs.Param("name", cs.TypeId("str"))),
		),
	}
	for _, s := range decls {
		if _, err := tc.registerClass(s); err != nil {
			return err
		}
	}

	var ints, floats, strs, bools []*ast.FunctionStmt
	ints = append(ints, binaryMethods("int", "int", append(arithmetic[:3:3], integral...)...)...)
	ints = append(ints, binaryMethods("int", "float", "truediv")...)
	ints = append(ints, binaryMethods("int", "int", "pow")...)
	ints = append(ints, binaryMethods("float", "float", arithmetic...)...)
	ints = append(ints, binaryMethods("int", "bool", comparisons...)...)
	ints = append(ints, binaryMethods("float", "bool", comparisons...)...)
	ints = append(ints, unaryMethods("int", "neg", "pos", "invert")...)
	ints = append(ints, unaryMethods("bool", "bool")...)
	ints = append(ints, ctor("__new__", cs.TypeId("int"), cs.Param("what", cs.TypeId("float"))))

	floats = append(floats, binaryMethods("float", "float", arithmetic...)...)
	floats = append(floats, binaryMethods("int", "float", arithmetic...)...)
	floats = append(floats, binaryMethods("float", "bool", comparisons...)...)
	floats = append(floats, binaryMethods("int", "bool", comparisons...)...)
	floats = append(floats, unaryMethods("float", "neg", "pos")...)
	floats = append(floats, unaryMethods("bool", "bool")...)
	floats = append(floats, ctor("__new__", cs.TypeId("float"), cs.Param("what", cs.TypeId("int"))))

	strs = append(strs, binaryMethods("str", "str", "add")...)
	strs = append(strs, binaryMethods("int", "str", "mul")...)
	strs = append(strs, binaryMethods("str", "bool", comparisons...)...)
	strs = append(strs, binaryMethods("str", "bool", "contains")...)
	strs = append(strs, binaryMethods("int", "str", "getitem")...)
	strs = append(strs, unaryMethods("int", "len")...)
	strs = append(strs, unaryMethods("bool", "bool")...)

	bools = append(bools, binaryMethods("bool", "bool", "eq", "ne", "and", "or", "xor")...)
	bools = append(bools, unaryMethods("bool", "invert", "bool")...)
	bools = append(bools, ctor("__new__", cs.TypeId("bool"), cs.Param("what", nil)))

	for _, ext := range []struct {
		class   string
		methods []*ast.FunctionStmt
	}{{"int", ints}, {"float", floats}, {"str", strs}, {"bool", bools}} {
		if err := tc.extendClass(ext.class, ext.methods); err != nil {
			return err
		}
	}

	fns := []*ast.FunctionStmt{
		cs.Func("len", []ast.Param{cs.Param("x", nil)}, cs.TypeId("int"),
			cs.Return(cs.Method(cs.Id("x"), "__len__"))),
		cs.InternalFunc("unwrap",
			[]ast.Param{cs.Generic("T", nil), cs.Param("x", generic("Optional", "T"))}, cs.Id("T")),
		cs.InternalFunc("class_super",
			[]ast.Param{cs.Generic("T", nil), cs.Param("obj", nil)}, cs.Id("T")),
		cs.InternalFunc("__ptr__",
			[]ast.Param{cs.Generic("T", nil), cs.Param("x", cs.Id("T"))}, generic("Ptr", "T")),
	}
	for _, fn := range fns {
		if _, err := tc.registerFunction(fn, nil); err != nil {
			return err
		}
	}
	return nil
}

// extendClass adds methods to a registered class.
func (tc *Typechecker) extendClass(name string, methods []*ast.FunctionStmt) error {
	cls := tc.cache.Classes[name]
	cls.Ast.Methods = append(cls.Ast.Methods, methods...)
	return tc.registerMethods(cls, methods)
}

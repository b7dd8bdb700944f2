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
	"strconv"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/airen3339/codon/ast"
	cs "github.com/airen3339/codon/construct"
	"github.com/airen3339/codon/types"
)

// Stub classes are records generated on demand: tuples of each arity, keyword tuples
// for each set of names and the argument stores of partial calls.

func tupleField(i int) string { return "item" + strconv.Itoa(i+1) }

func tupleName(n int) string { return fmt.Sprintf("%s.N%d", types.TupleName, n) }

// generateStub registers the stub class name, if it names one.
func (tc *Typechecker) generateStub(name string) (bool, error) {
	prefix := types.TupleName + ".N"
	if !strings.HasPrefix(name, prefix) {
		return false, nil
	}
	n, err := strconv.Atoi(name[len(prefix):])
	if err != nil || n < 0 {
		return false, nil
	}
	_, err = tc.tupleClass(n)
	return err == nil, err
}

// stubRecord registers a record class with one generic per field.
func (tc *Typechecker) stubRecord(name, niceName string, fields []string) error {
	if _, ok := tc.cache.Classes[name]; ok {
		return nil
	}
	generics := make([]ast.Param, len(fields))
	params := make([]ast.Param, len(fields))
	for i, f := range fields {
		g := "T" + strconv.Itoa(i+1)
		generics[i] = cs.Generic(g, nil)
		params[i] = cs.Param(f, cs.Id(g))
	}
	s := cs.Record(name, generics, params)
	s.NiceName = niceName
	_, err := tc.registerClass(s)
	return err
}

// tupleClass returns the name of the tuple record with n items.
func (tc *Typechecker) tupleClass(n int) (string, error) {
	name := tupleName(n)
	fields := make([]string, n)
	for i := range fields {
		fields[i] = tupleField(i)
	}
	return name, tc.stubRecord(name, types.TupleName, fields)
}

// kwTupleClass returns the name of the keyword tuple record with the given field names.
func (tc *Typechecker) kwTupleClass(names []string) (string, error) {
	key := strings.Join(names, ",")
	if name, ok := tc.kwTuples[key]; ok {
		return name, nil
	}
	name := fmt.Sprintf("%s.N%d", types.KwTupleName, len(tc.kwTuples))
	if err := tc.stubRecord(name, types.KwTupleName, names); err != nil {
		return "", err
	}
	tc.kwTuples[key] = name
	return name, nil
}

// partialClass returns the name of the record which stores the known arguments of a
// partial call of fn.
func (tc *Typechecker) partialClass(fn *types.Func, known []bool) (string, error) {
	decl := tc.cache.Functions[fn.Name].Ast
	var mask strings.Builder
	var fields []string
	i := 0
	for _, p := range decl.Params {
		if p.Status != ast.NormalParam {
			continue
		}
		if i < len(known) && known[i] {
			mask.WriteByte('1')
			fields = append(fields, p.Name)
		} else {
			mask.WriteByte('0')
		}
		i++
	}
	name := fmt.Sprintf("%s.N%s.%s", types.PartialName, mask.String(), fn.Name)
	return name, tc.stubRecord(name, types.PartialName, fields)
}

// `(a, *b)` becomes `Tuple.N<k>.__new__(a, b.item1, ...)`
func (tc *Typechecker) visitTuple(e *ast.TupleExpr) (ExprRewrite, error) {
	for i := 0; i < len(e.Items); i++ {
		st, ok := e.Items[i].(*ast.StarExpr)
		if !ok {
			continue
		}
		var err error
		if st.Expr, err = tc.transform(st.Expr); err != nil {
			return unchanged(), err
		}
		t := st.Expr.Type()
		if t == nil || types.UnboundOf(t) != nil {
			return deferred(), nil
		}
		rec := types.RecordOf(t)
		if rec == nil || !types.IsTuple(t) {
			return unchanged(), newError(ErrCallBadUnpack, st.Src, types.TypeString(t))
		}
		items := make([]ast.Expr, len(rec.Args))
		for k := range rec.Args {
			items[k] = cs.Dot(ast.CloneExpr(st.Expr, false), tupleField(k))
			items[k].Base().SetAttr(ast.AttrStarSequenceItem)
		}
		e.Items = slices.Replace(e.Items, i, i+1, items...)
		i += len(items) - 1
	}
	name, err := tc.tupleClass(len(e.Items))
	if err != nil {
		return unchanged(), err
	}
	call := cs.Call(cs.Dot(cs.TypeId(name), "__new__"), e.Items...)
	call.Attrs = e.Attrs
	return replaced(call), nil
}

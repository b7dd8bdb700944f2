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

package astutil

import (
	"testing"

	"github.com/airen3339/codon/ast"
	cs "github.com/airen3339/codon/construct"
)

func TestCollectUnresolved(t *testing.T) {
	done := cs.Int(1)
	done.SetDone()
	pending := cs.Id("x")
	fn := cs.Func("f", nil, nil, cs.Return(cs.Id("y")))
	s := cs.Suite(
		cs.Assign("a", done),
		cs.ExprStmt(cs.Binary(pending, "+", cs.Int(2))),
		fn,
	)
	s.Stmts[0].Base().SetDone()

	u := CollectUnresolved(s)
	if len(u.Stmts) != 1 {
		t.Fatalf("stmts: %d", len(u.Stmts))
	}
	if _, ok := u.Stmts[0].(*ast.ExprStmt); !ok {
		t.Fatalf("stmt: %s", ast.StmtString(u.Stmts[0]))
	}
	if len(u.Exprs) != 3 || u.Exprs[1] != pending {
		t.Fatalf("exprs: %d", len(u.Exprs))
	}
}

func TestCollectUnresolvedDone(t *testing.T) {
	s := cs.Suite(cs.Pass())
	s.SetDone()
	if u := CollectUnresolved(s); !u.Empty() {
		t.Fatalf("expected nothing unresolved")
	}
}

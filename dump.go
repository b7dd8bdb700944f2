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

	"github.com/davecgh/go-spew/spew"

	"github.com/airen3339/codon/ast"
	"github.com/airen3339/codon/internal/astutil"
	"github.com/airen3339/codon/types"
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	MaxDepth:                4,
}

// dumpUnresolved renders the pending statements and the inferred types of the pending
// expressions of a block.
func dumpUnresolved(u *astutil.Unresolved) string {
	var sb strings.Builder
	sb.WriteString("unresolved statements:\n")
	for _, s := range u.Stmts {
		sb.WriteString(ast.StmtString(s))
		sb.WriteByte('\n')
	}
	sb.WriteString("unresolved expressions:\n")
	for _, e := range u.Exprs {
		sb.WriteString(ast.ExprString(e))
		sb.WriteString(" : ")
		if t := e.Type(); t != nil {
			sb.WriteString(types.DebugString(t, types.PrintDebug))
		} else {
			sb.WriteString("<nil>")
		}
		sb.WriteByte('\n')
		if e.Base().Attrs != 0 || e.Base().IsStatic() {
			sb.WriteString(dumpConfig.Sdump(e.Base().Attrs, e.Base().Static))
		}
	}
	return sb.String()
}

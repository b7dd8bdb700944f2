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
	"strconv"
	"strings"

	set "github.com/hashicorp/go-set/v3"
	"golang.org/x/exp/slices"

	"github.com/airen3339/codon/ast"
	"github.com/airen3339/codon/internal/astutil"
	"github.com/airen3339/codon/internal/util"
	"github.com/airen3339/codon/types"
)

// inferTypes transforms s until it is done. When an iteration makes no progress the
// defaults of the pending type variables are applied; if there are none, inference
// has failed.
func (tc *Typechecker) inferTypes(s *ast.SuiteStmt) error {
	ctx := tc.ctx
	limit := tc.cache.cfg.MaxIterations
	for iter := 0; !s.Done(); iter++ {
		if iter >= limit {
			return tc.fixpointError(s, "exceeded the maximum number of iterations")
		}
		ctx.ChangedNodes = 0
		ctx.TypecheckLevel++
		err := tc.transformSuite(s)
		ctx.TypecheckLevel--
		if err != nil {
			return err
		}
		tc.log.Debug("fixpoint iteration",
			slog.String("base", ctx.base().Name),
			slog.Int("iteration", iter),
			slog.Int("changed", ctx.ChangedNodes))
		if s.Done() || ctx.ChangedNodes > 0 {
			continue
		}
		applied, err := tc.applyDefaults(s)
		if err != nil {
			return err
		}
		if !applied {
			return tc.fixpointError(s, "cannot infer the types of some expressions")
		}
	}
	return nil
}

func (tc *Typechecker) fixpointError(s *ast.SuiteStmt, reason string) error {
	u := astutil.CollectUnresolved(s)
	src := s.Src
	if len(u.Stmts) > 0 {
		src = u.Stmts[0].Base().Src
		reason += ": " + strings.TrimSpace(ast.StmtString(u.Stmts[0]))
	}
	err := newError(ErrFixpoint, src, reason)
	if tc.cache.cfg.DumpOnFailure {
		err.Frames = append(err.Frames, Frame{Message: dumpUnresolved(u)})
	}
	return err
}

// applyDefaults links the pending type variables of s to their defaults, dependencies
// first. It reports whether any default was applied.
func (tc *Typechecker) applyDefaults(s *ast.SuiteStmt) (bool, error) {
	u := astutil.CollectUnresolved(s)
	seen := set.New[int](16)
	var pending []*types.Link
	for _, e := range u.Exprs {
		for _, l := range types.Unbounds(e.Type()) {
			if l.Default != nil && seen.Insert(l.ID()) {
				pending = append(pending, l)
			}
		}
	}
	if len(pending) == 0 {
		return false, nil
	}
	slices.SortFunc(pending, func(a, b *types.Link) int { return a.ID() - b.ID() })

	byID := make(map[int]*types.Link, len(pending))
	g := util.NewDigraph[int]()
	for _, l := range pending {
		byID[l.ID()] = l
		g.AddNode(l.ID())
	}
	for _, l := range pending {
		for _, dep := range types.Unbounds(l.Default) {
			if _, ok := byID[dep.ID()]; ok {
				g.AddEdge(l.ID(), dep.ID())
			}
		}
	}
	if cycle := g.Cycle(); cycle != nil {
		names := make([]string, len(cycle))
		for i, id := range cycle {
			names[i] = linkName(byID[id])
		}
		return false, newError(ErrDefaultCycle, byID[cycle[0]].Src, strings.Join(names, " -> "))
	}
	order, _ := g.TopoSort()

	applied := false
	for _, id := range order {
		l := byID[id]
		if !l.IsUnbound() {
			continue
		}
		d := tc.ctx.instantiate(l.Default)
		if err := tc.unify(l, d, l.Src); err != nil {
			return false, err
		}
		tc.log.Debug("applied default", slog.String("var", linkName(l)), slog.String("type", types.TypeString(d)))
		applied = true
	}
	if applied {
		tc.ctx.ChangedNodes++
	}
	return applied, nil
}

func linkName(l *types.Link) string {
	if l.GenericName != "" {
		return l.GenericName
	}
	return "?" + strconv.Itoa(l.ID())
}

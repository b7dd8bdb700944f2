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
	"github.com/airen3339/codon/internal/logger"
	"github.com/airen3339/codon/internal/typeutil"
	"github.com/airen3339/codon/types"
)

// RewriteOutcome is the result of a single visit of a node.
type RewriteOutcome int

const (
	// The node was refined in place (and possibly marked done).
	Unchanged RewriteOutcome = iota
	// The node was replaced by a lowered equivalent, which is visited next.
	Replaced
	// The node cannot make progress until more types are known.
	Deferred
)

// Rewrite is the outcome of a visit together with the replacement node.
type Rewrite[T any] struct {
	Outcome RewriteOutcome
	Node    T
}

type (
	ExprRewrite = Rewrite[ast.Expr]
	StmtRewrite = Rewrite[ast.Stmt]
)

func unchanged() ExprRewrite          { return ExprRewrite{} }
func deferred() ExprRewrite           { return ExprRewrite{Outcome: Deferred} }
func replaced(e ast.Expr) ExprRewrite { return ExprRewrite{Outcome: Replaced, Node: e} }

func stmtUnchanged() StmtRewrite          { return StmtRewrite{} }
func stmtDeferred() StmtRewrite           { return StmtRewrite{Outcome: Deferred} }
func stmtReplaced(s ast.Stmt) StmtRewrite { return StmtRewrite{Outcome: Replaced, Node: s} }

// Typechecker performs type-directed rewriting of the AST, one step per visit.
type Typechecker struct {
	ctx   *Context
	cache *Cache
	log   *slog.Logger

	// First error raised during unification callbacks
	envErr error

	// Joined field names to keyword tuple class
	kwTuples map[string]string
}

var _ typeutil.Env = (*Typechecker)(nil)

func newTypechecker(ctx *Context) *Typechecker {
	return &Typechecker{
		ctx:      ctx,
		cache:    ctx.cache,
		log:      logger.WithPhase(ctx.cache.log, "typecheck"),
		kwTuples: make(map[string]string),
	}
}

// Instantiate implements typeutil.Env.
func (tc *Typechecker) Instantiate(t types.Type) types.Type { return tc.ctx.instantiate(t) }

// Realize implements typeutil.Env.
func (tc *Typechecker) Realize(t types.Type) types.Type {
	r, err := tc.realize(t)
	if err != nil {
		if tc.envErr == nil {
			tc.envErr = err
		}
		return nil
	}
	return r
}

func (tc *Typechecker) takeEnvErr() error {
	err := tc.envErr
	tc.envErr = nil
	return err
}

// unify permanently unifies a and b.
func (tc *Typechecker) unify(a, b types.Type, src types.SrcInfo) error {
	u := typeutil.NewUndo(tc)
	if typeutil.Unify(a, b, u) < 0 {
		u.Undo()
		tc.log.Debug("unification failed",
			slog.String("a", types.DebugString(a, types.PrintDebug)),
			slog.String("b", types.DebugString(b, types.PrintDebug)))
		return newError(ErrUnify, src, types.TypeString(a), types.TypeString(b))
	}
	if u.Linked() > 0 {
		tc.ctx.ChangedNodes++
	}
	return tc.takeEnvErr()
}

// score returns the unification score of a and b, leaving both unchanged.
func (tc *Typechecker) score(a, b types.Type) int {
	u := typeutil.NewUndo(tc)
	s := typeutil.Unify(a, b, u)
	u.Undo()
	tc.envErr = nil
	return s
}

// assign sets the type of e, or unifies it with the type e already has.
func (tc *Typechecker) assign(e ast.Expr, t types.Type) error {
	if e.Type() == nil {
		e.SetType(t)
		return nil
	}
	return tc.unify(e.Type(), t, e.Base().Src)
}

// finish marks e done if its type is realizable.
func (tc *Typechecker) finish(e ast.Expr) (ExprRewrite, error) {
	t, err := tc.realize(e.Type())
	if err != nil {
		return unchanged(), err
	}
	if t != nil {
		e.Base().SetDone()
	}
	return unchanged(), nil
}

// transform visits e until it can make no further progress and returns the node which
// replaces it.
func (tc *Typechecker) transform(e ast.Expr) (ast.Expr, error) {
	if e == nil || e.Base().Done() {
		return e, nil
	}
	orig := e.Type()
	for {
		r, err := tc.visitExpr(e)
		if err == nil {
			err = tc.takeEnvErr()
		}
		if err != nil {
			return e, err
		}
		if r.Outcome != Replaced {
			break
		}
		tc.ctx.ChangedNodes++
		if r.Node.Base().Src == (types.SrcInfo{}) {
			r.Node.Base().Src = e.Base().Src
		}
		e = r.Node
		if e.Base().Done() {
			break
		}
	}
	if orig != nil && e.Type() != nil && orig != e.Type() {
		if err := tc.unify(e.Type(), orig, e.Base().Src); err != nil {
			return e, err
		}
	}
	if e.Base().Done() {
		tc.ctx.ChangedNodes++
	}
	return e, nil
}

// transformAll transforms each expression in place and reports whether all are done.
func (tc *Typechecker) transformAll(es []ast.Expr) (bool, error) {
	done := true
	for i := range es {
		var err error
		if es[i], err = tc.transform(es[i]); err != nil {
			return false, err
		}
		done = done && ast.IsDone(es[i])
	}
	return done, nil
}

// transformStmt visits s until it can make no further progress and returns the node
// which replaces it.
func (tc *Typechecker) transformStmt(s ast.Stmt) (ast.Stmt, error) {
	if s == nil || s.Base().Done() {
		return s, nil
	}
	for {
		r, err := tc.visitStmt(s)
		if err == nil {
			err = tc.takeEnvErr()
		}
		if err != nil {
			return s, err
		}
		if r.Outcome != Replaced {
			break
		}
		tc.ctx.ChangedNodes++
		if r.Node.Base().Src == (types.SrcInfo{}) {
			r.Node.Base().Src = s.Base().Src
		}
		s = r.Node
		if s.Base().Done() {
			break
		}
	}
	if s.Base().Done() {
		tc.ctx.ChangedNodes++
	}
	return s, nil
}

func (tc *Typechecker) transformSuite(s *ast.SuiteStmt) error {
	if s == nil || s.Done() {
		return nil
	}
	_, err := tc.transformStmt(s)
	return err
}

func (tc *Typechecker) visitExpr(e ast.Expr) (ExprRewrite, error) {
	switch e := e.(type) {
	case *ast.NoneExpr:
		return tc.visitNone(e)
	case *ast.BoolExpr:
		return tc.visitLiteral(e, types.BoolValue(e.Value), "bool")
	case *ast.IntExpr:
		return tc.visitLiteral(e, types.IntValue(e.Value), "int")
	case *ast.FloatExpr:
		return tc.visitLiteral(e, types.StaticValue{}, "float")
	case *ast.StringExpr:
		return tc.visitLiteral(e, types.StrValue(e.Value), "str")
	case *ast.IdExpr:
		return tc.visitId(e)
	case *ast.StarExpr, *ast.KeywordStarExpr:
		return unchanged(), newError(ErrUnexpectedType, e.Base().Src, ast.ExprString(e))
	case *ast.EllipsisExpr:
		return tc.visitEllipsis(e)
	case *ast.TupleExpr:
		return tc.visitTuple(e)
	case *ast.ListExpr:
		return unchanged(), newError(ErrUnexpectedType, e.Base().Src, ast.ExprString(e))
	case *ast.IfExpr:
		return tc.visitIfExpr(e)
	case *ast.UnaryExpr:
		return tc.visitUnary(e)
	case *ast.BinaryExpr:
		return tc.visitBinary(e)
	case *ast.IndexExpr:
		return tc.visitIndex(e)
	case *ast.InstantiateExpr:
		return tc.visitInstantiate(e)
	case *ast.SliceExpr:
		return tc.visitSlice(e)
	case *ast.CallExpr:
		return tc.visitCall(e)
	case *ast.DotExpr:
		return tc.visitDot(e)
	case *ast.AssignExpr:
		return tc.visitAssignExpr(e)
	case *ast.RangeExpr:
		return unchanged(), newError(ErrUnexpectedType, e.Base().Src, ast.ExprString(e))
	case *ast.StmtExpr:
		return tc.visitStmtExpr(e)
	}
	return unchanged(), newError(ErrUnexpectedType, e.Base().Src, ast.ExprString(e))
}

func (tc *Typechecker) visitStmt(s ast.Stmt) (StmtRewrite, error) {
	switch s := s.(type) {
	case *ast.SuiteStmt:
		return tc.visitSuite(s)
	case *ast.ExprStmt:
		return tc.visitExprStmt(s)
	case *ast.AssignStmt:
		return tc.visitAssign(s)
	case *ast.AssignMemberStmt:
		return tc.visitAssignMember(s)
	case *ast.ReturnStmt:
		return tc.visitReturn(s)
	case *ast.PassStmt, *ast.BreakStmt, *ast.ContinueStmt:
		s.Base().SetDone()
		return stmtUnchanged(), nil
	case *ast.IfStmt:
		return tc.visitIf(s)
	case *ast.WhileStmt:
		return tc.visitWhile(s)
	case *ast.ForStmt:
		return tc.visitFor(s)
	case *ast.MatchStmt:
		return tc.visitMatch(s)
	case *ast.FunctionStmt:
		return tc.visitFunction(s)
	case *ast.ClassStmt:
		return tc.visitClass(s)
	}
	return stmtUnchanged(), newError(ErrUnexpectedType, s.Base().Src, ast.StmtString(s))
}

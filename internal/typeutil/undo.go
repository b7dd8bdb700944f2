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

package typeutil

import (
	"github.com/airen3339/codon/types"
)

type stashKind uint8

const (
	stashLinked stashKind = iota
	stashLeveled
	stashTrait
	stashUnion
)

// StashedLink is a snapshot of a type-variable (or the length of a union's alternatives)
// taken before a destructive update.
type StashedLink struct {
	kind stashKind
	v    *types.Link
	prev types.Link
	u    *types.Union
	n    int
}

func (l *StashedLink) Restore() {
	if l.kind == stashUnion {
		l.u.Types = l.u.Types[:l.n]
		return
	}
	*l.v = l.prev
}

// Env supplies instantiation and realization to the unification of callable traits with
// partial calls.
type Env interface {
	Instantiate(t types.Type) types.Type
	// Realize returns nil if t cannot be realized.
	Realize(t types.Type) types.Type
}

// Undo records the destructive updates of unification, so that a failed speculative
// unification can be rolled back.
type Undo struct {
	Env   Env
	stash []StashedLink

	linked, leveled, traits int

	// initial space:
	_stash [16]StashedLink
}

func NewUndo(env Env) *Undo {
	u := &Undo{Env: env}
	u.stash = u._stash[:0]
	return u
}

// Linked returns the number of unbound type-variables which were linked.
func (u *Undo) Linked() int { return u.linked }

// Leveled returns the number of type-variables whose level was lowered.
func (u *Undo) Leveled() int { return u.leveled }

// Traits returns the number of traits which were attached.
func (u *Undo) Traits() int { return u.traits }

// Len returns the number of recorded updates.
func (u *Undo) Len() int { return len(u.stash) }

// Undo restores every recorded update, most recent first, and clears the log.
func (u *Undo) Undo() { u.RollbackTo(0) }

// RollbackTo restores the updates recorded after mark (a previous result of Len).
func (u *Undo) RollbackTo(mark int) {
	for i := len(u.stash) - 1; i >= mark; i-- {
		st := &u.stash[i]
		switch st.kind {
		case stashLinked:
			u.linked--
		case stashLeveled:
			u.leveled--
		case stashTrait:
			u.traits--
		}
		st.Restore()
		u.stash[i] = StashedLink{}
	}
	u.stash = u.stash[:mark]
}

func (u *Undo) stashLink(kind stashKind, v *types.Link) {
	if u == nil {
		return
	}
	u.stash = append(u.stash, StashedLink{kind: kind, v: v, prev: *v})
	switch kind {
	case stashLinked:
		u.linked++
	case stashLeveled:
		u.leveled++
	case stashTrait:
		u.traits++
	}
}

func (u *Undo) stashUnion(t *types.Union) {
	if u == nil {
		return
	}
	u.stash = append(u.stash, StashedLink{kind: stashUnion, u: t, n: len(t.Types)})
}

func (u *Undo) env() Env {
	if u == nil {
		return nil
	}
	return u.Env
}

// CanUnify reports whether a and b unify, without modifying either.
func CanUnify(a, b types.Type, env Env) bool {
	u := NewUndo(env)
	ok := Unify(a, b, u) >= 0
	u.Undo()
	return ok
}

// TryUnify unifies a and b, recording updates in u. On failure, the updates made by this
// call are rolled back.
func TryUnify(a, b types.Type, u *Undo) int {
	mark := u.Len()
	s := Unify(a, b, u)
	if s < 0 {
		u.RollbackTo(mark)
	}
	return s
}

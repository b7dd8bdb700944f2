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

package util

import set "github.com/hashicorp/go-set/v3"

// Digraph is a directed graph over comparable keys. Nodes are visited in insertion order.
type Digraph[K comparable] struct {
	nodes []K
	succ  map[K][]K
	edges map[K]*set.Set[K]
}

func NewDigraph[K comparable]() *Digraph[K] {
	return &Digraph[K]{succ: make(map[K][]K), edges: make(map[K]*set.Set[K])}
}

// AddNode adds k if it is not already a node.
func (g *Digraph[K]) AddNode(k K) {
	if _, ok := g.edges[k]; !ok {
		g.nodes = append(g.nodes, k)
		g.edges[k] = set.New[K](0)
	}
}

// AddEdge adds both endpoints and an edge between them.
func (g *Digraph[K]) AddEdge(from, to K) {
	g.AddNode(from)
	g.AddNode(to)
	if g.edges[from].Insert(to) {
		g.succ[from] = append(g.succ[from], to)
	}
}

func (g *Digraph[K]) HasEdge(from, to K) bool {
	s, ok := g.edges[from]
	return ok && s.Contains(to)
}

func (g *Digraph[K]) Nodes() []K { return g.nodes }

func (g *Digraph[K]) Len() int { return len(g.nodes) }

const (
	white = iota
	grey
	black
)

// Cycle returns the nodes of a cycle, starting from the node first reached by the
// search, or nil if the graph is acyclic.
func (g *Digraph[K]) Cycle() []K {
	color := make(map[K]int, len(g.nodes))
	var path []K
	var visit func(k K) []K
	visit = func(k K) []K {
		color[k] = grey
		path = append(path, k)
		for _, next := range g.succ[k] {
			switch color[next] {
			case grey:
				for i, p := range path {
					if p == next {
						return append([]K(nil), path[i:]...)
					}
				}
			case white:
				if c := visit(next); c != nil {
					return c
				}
			}
		}
		path = path[:len(path)-1]
		color[k] = black
		return nil
	}
	for _, k := range g.nodes {
		if color[k] == white {
			if c := visit(k); c != nil {
				return c
			}
		}
	}
	return nil
}

// TopoSort orders the nodes so that every edge points from a later node to an earlier
// one (dependencies first). It returns false if the graph has a cycle.
func (g *Digraph[K]) TopoSort() ([]K, bool) {
	if g.Cycle() != nil {
		return nil, false
	}
	done := set.New[K](len(g.nodes))
	order := make([]K, 0, len(g.nodes))
	var visit func(k K)
	visit = func(k K) {
		if !done.Insert(k) {
			return
		}
		for _, next := range g.succ[k] {
			visit(next)
		}
		order = append(order, k)
	}
	for _, k := range g.nodes {
		visit(k)
	}
	return order, true
}

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

import "testing"

func TestDigraphCycle(t *testing.T) {
	g := NewDigraph[int]()
	g.AddEdge(1, 2)
	g.AddEdge(2, 3)
	g.AddEdge(3, 4)
	if c := g.Cycle(); c != nil {
		t.Fatalf("cycle: %v", c)
	}
	g.AddEdge(4, 2)
	c := g.Cycle()
	if len(c) != 3 || c[0] != 2 || c[1] != 3 || c[2] != 4 {
		t.Fatalf("cycle: %v", c)
	}
}

func TestDigraphSelfLoop(t *testing.T) {
	g := NewDigraph[string]()
	g.AddEdge("a", "a")
	if c := g.Cycle(); len(c) != 1 || c[0] != "a" {
		t.Fatalf("cycle: %v", c)
	}
	if _, ok := g.TopoSort(); ok {
		t.Fatalf("expected no order")
	}
}

func TestDigraphTopoSort(t *testing.T) {
	g := NewDigraph[string]()
	g.AddEdge("a", "b")
	g.AddEdge("a", "c")
	g.AddEdge("b", "c")
	g.AddEdge("b", "c")
	g.AddNode("d")
	if g.Len() != 4 || !g.HasEdge("a", "b") || g.HasEdge("c", "a") {
		t.Fatalf("graph: %v", g.Nodes())
	}
	order, ok := g.TopoSort()
	if !ok {
		t.Fatalf("expected an order")
	}
	pos := make(map[string]int)
	for i, k := range order {
		pos[k] = i
	}
	if len(order) != 4 || pos["c"] > pos["b"] || pos["b"] > pos["a"] {
		t.Fatalf("order: %v", order)
	}
}

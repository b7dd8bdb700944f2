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

// codon provides type inference and realization for a statically-typed Python-like language.
//
// Checking is a fixpoint over a name-resolved AST: each pass rewrites the nodes it can make
// progress on (operators into magic-method calls, tuples into generated record classes, static
// conditions into the branch taken) and infers as much as the types known so far allow. When a
// pass changes nothing, the defaults of the pending type-variables are applied.
//
// Polymorphic functions and classes are monomorphized on demand: every call with fully-known
// argument types realizes a typed copy of the callee, cached by realized name.
//
// Supported Features:
//
//   - Levels-based generalization with generic, unbound and linked type-variables
//   - Overloads ranked by unification score, with implicit conversions
//   - Static integer and string generics with compile-time folding
//   - Partial application, `*args`/`**kwargs` packing and keyword tuples
//   - Pattern matching lowered to conditional chains
//   - Unrolled iteration over heterogeneous tuples
//
// Links:
//
// Codon (the language this engine checks): https://github.com/exaloop/codon
//
// Efficient Generalization with Levels (Oleg Kiselyov): http://okmij.org/ftp/ML/generalization.html#levels
//
// Hindley-Milner type system: https://en.wikipedia.org/wiki/Hindley–Milner_type_system
package codon

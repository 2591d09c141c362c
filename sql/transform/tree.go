// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package transform provides the tree-rewrite combinators the rule
// executor and every rule build on. Every rewrite function reports whether it
// actually changed anything via TreeIdentity instead of recomputing
// structural equality after the fact — the same signal the batch executor
// uses to detect a fixed point.
package transform

import "github.com/quilldb/quill/sql"

// TreeIdentity reports whether a rewrite produced a new tree or returned
// the input unchanged. Comparing TreeIdentity up the call chain is cheaper
// and exact where recomputing equality would be approximate.
type TreeIdentity bool

const (
	SameTree TreeIdentity = false
	NewTree  TreeIdentity = true
)

// And combines two TreeIdentity results from sibling rewrites: the
// combination changed if either side did.
func (t TreeIdentity) And(o TreeIdentity) TreeIdentity {
	return t || o
}

// NodeFunc rewrites a single node, reporting whether it changed it.
type NodeFunc func(n sql.Node) (sql.Node, TreeIdentity, error)

// ExprFunc rewrites a single expression, reporting whether it changed it.
type ExprFunc func(e sql.Expression) (sql.Expression, TreeIdentity, error)

// Node applies f to every node in the tree rooted at n, bottom-up
// (post-order): children are rewritten first, then f is applied to the
// (possibly rebuilt) node itself. Children are only rebuilt when at least
// one of them actually changed, preserving structural sharing for the rest
// of the tree.
func Node(n sql.Node, f NodeFunc) (sql.Node, TreeIdentity, error) {
	children := n.Children()
	if len(children) > 0 {
		newChildren := make([]sql.Node, len(children))
		same := SameTree
		for i, c := range children {
			nc, cSame, err := Node(c, f)
			if err != nil {
				return nil, SameTree, err
			}
			newChildren[i] = nc
			same = same.And(cSame)
		}
		if same == NewTree {
			var err error
			n, err = n.WithChildren(newChildren...)
			if err != nil {
				return nil, SameTree, err
			}
		}
	}
	return f(n)
}

// NodeDown applies f to every node in the tree rooted at n, top-down
// (pre-order): f runs on the node first, then recurses into the
// (possibly new) node's children.
func NodeDown(n sql.Node, f NodeFunc) (sql.Node, TreeIdentity, error) {
	n, same, err := f(n)
	if err != nil {
		return nil, SameTree, err
	}
	children := n.Children()
	if len(children) == 0 {
		return n, same, nil
	}
	newChildren := make([]sql.Node, len(children))
	childSame := SameTree
	for i, c := range children {
		nc, cSame, err := NodeDown(c, f)
		if err != nil {
			return nil, SameTree, err
		}
		newChildren[i] = nc
		childSame = childSame.And(cSame)
	}
	if childSame == NewTree {
		n, err = n.WithChildren(newChildren...)
		if err != nil {
			return nil, SameTree, err
		}
		same = NewTree
	}
	return n, same, nil
}

// NodeExprs applies f to every expression owned by nodes in the tree
// rooted at n (nodes implementing sql.Expressioner), without otherwise
// visiting node structure. Each node's own expressions are rewritten
// bottom-up via Expr.
func NodeExprs(n sql.Node, f ExprFunc) (sql.Node, TreeIdentity, error) {
	return Node(n, func(n sql.Node) (sql.Node, TreeIdentity, error) {
		en, ok := n.(sql.Expressioner)
		if !ok {
			return n, SameTree, nil
		}
		exprs := en.Expressions()
		if len(exprs) == 0 {
			return n, SameTree, nil
		}
		newExprs := make([]sql.Expression, len(exprs))
		same := SameTree
		for i, e := range exprs {
			ne, eSame, err := Expr(e, f)
			if err != nil {
				return nil, SameTree, err
			}
			newExprs[i] = ne
			same = same.And(eSame)
		}
		if same == SameTree {
			return n, SameTree, nil
		}
		newN, err := en.WithExpressions(newExprs...)
		if err != nil {
			return nil, SameTree, err
		}
		return newN, NewTree, nil
	})
}

// Expr applies f to every sub-expression of e, bottom-up.
func Expr(e sql.Expression, f ExprFunc) (sql.Expression, TreeIdentity, error) {
	children := e.Children()
	if len(children) > 0 {
		newChildren := make([]sql.Expression, len(children))
		same := SameTree
		for i, c := range children {
			nc, cSame, err := Expr(c, f)
			if err != nil {
				return nil, SameTree, err
			}
			newChildren[i] = nc
			same = same.And(cSame)
		}
		if same == NewTree {
			var err error
			e, err = e.WithChildren(newChildren...)
			if err != nil {
				return nil, SameTree, err
			}
		}
	}
	return f(e)
}

// Inspect walks n and its descendant nodes, top-down, calling visit on
// each node; expressions are not visited (InspectExpressions does that),
// and a false return stops the descent below that node. Used by
// read-only checks (validation,
// cacheability analysis) that don't need to rebuild anything.
func Inspect(n sql.Node, visit func(sql.Node) bool) {
	if !visit(n) {
		return
	}
	for _, c := range n.Children() {
		Inspect(c, visit)
	}
}

// InspectExpressions walks every expression owned by n or any of its
// descendants, calling visit on each sub-expression.
func InspectExpressions(n sql.Node, visit func(sql.Expression) bool) {
	Inspect(n, func(n sql.Node) bool {
		if en, ok := n.(sql.Expressioner); ok {
			for _, e := range en.Expressions() {
				InspectExpr(e, visit)
			}
		}
		return true
	})
}

func InspectExpr(e sql.Expression, visit func(sql.Expression) bool) {
	if !visit(e) {
		return
	}
	for _, c := range e.Children() {
		InspectExpr(c, visit)
	}
}

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

package analyzer

import (
	"github.com/quilldb/quill/sql"
	"github.com/quilldb/quill/sql/expression"
	"github.com/quilldb/quill/sql/plan"
	"github.com/quilldb/quill/sql/transform"
)

// resolveSubqueries drives correlated-subquery resolution: for
// every node carrying a ScalarSubquery/Exists/InSubquery expression, it
// pushes a Scope frame for that node and recursively analyzes the
// subquery's body against it, so the body's own resolveColumns can fall
// back to the outer node's output via Scope.Lookup. Once the body
// resolves, OuterScopeAttrs records which outer attributes it actually
// referenced, the correlation set a later physical planner needs.
func resolveSubqueries(ctx *sql.Context, a *Analyzer, n sql.Node, scope *plan.Scope, sel RuleSelector) (sql.Node, transform.TreeIdentity, error) {
	return transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		exprNode, ok := node.(sql.Expressioner)
		if !ok {
			return node, transform.SameTree, nil
		}
		inner := scope.Push(node)

		exprs := exprNode.Expressions()
		newExprs := make([]sql.Expression, len(exprs))
		changed := false
		for i, e := range exprs {
			rewritten, exprChanged, err := transform.Expr(e, func(sub sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
				return resolveOneSubquery(ctx, a, sub, inner)
			})
			if err != nil {
				return nil, transform.SameTree, err
			}
			newExprs[i] = rewritten
			if exprChanged == transform.NewTree {
				changed = true
			}
		}
		if !changed {
			return node, transform.SameTree, nil
		}
		rebuilt, err := exprNode.WithExpressions(newExprs...)
		if err != nil {
			return nil, transform.SameTree, err
		}
		return rebuilt, transform.NewTree, nil
	})
}

func resolveOneSubquery(ctx *sql.Context, a *Analyzer, e sql.Expression, scope *plan.Scope) (sql.Expression, transform.TreeIdentity, error) {
	switch sub := e.(type) {
	case *expression.ScalarSubquery:
		body, changed, err := resolveSubqueryBody(ctx, a, sub.Subquery, scope)
		if err != nil || !changed {
			return e, transform.SameTree, err
		}
		return &expression.ScalarSubquery{Subquery: body}, transform.NewTree, nil

	case *expression.Exists:
		body, changed, err := resolveSubqueryBody(ctx, a, sub.Subquery, scope)
		if err != nil || !changed {
			return e, transform.SameTree, err
		}
		return &expression.Exists{Subquery: body}, transform.NewTree, nil

	case *expression.InSubquery:
		body, changed, err := resolveSubqueryBody(ctx, a, sub.Subquery, scope)
		if err != nil || !changed {
			return e, transform.SameTree, err
		}
		return &expression.InSubquery{Value: sub.Value, Subquery: body}, transform.NewTree, nil

	default:
		return e, transform.SameTree, nil
	}
}

func resolveSubqueryBody(ctx *sql.Context, a *Analyzer, s *expression.Subquery, scope *plan.Scope) (*expression.Subquery, bool, error) {
	if s.Query.Resolved() {
		return s, false, nil
	}
	resolved, err := a.Analyze(ctx, s.Query, scope)
	if err != nil {
		// Swallowed per the propagation policy: CheckAnalysis reports the
		// final failure once the batches converge.
		return s, false, nil
	}
	if !resolved.Resolved() {
		return s.WithQuery(resolved), true, nil
	}
	outer := correlatedAttributes(resolved, scope.Attributes())
	return &expression.Subquery{Query: resolved, OuterScopeAttrs: outer}, true, nil
}

// correlatedAttributes returns the subset of outerAttrs referenced
// anywhere inside body, the body's actual correlation set.
func correlatedAttributes(body sql.Node, outerAttrs sql.AttributeSet) sql.AttributeSet {
	referenced := sql.AttributeSet{}
	transform.InspectExpressions(body, func(e sql.Expression) bool {
		referenced = referenced.Union(e.References())
		return true
	})
	return referenced.Intersect(outerAttrs)
}

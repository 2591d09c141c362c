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

// inlineCTEs substitutes every UnresolvedRelation naming a With node's
// CTE with SubqueryAlias(name, cte.Query) and removes the With node.
// A name shadows any CTE defined further out, so inlining
// proceeds inside-out: the innermost With is rewritten first.
func inlineCTEs(ctx *sql.Context, a *Analyzer, n sql.Node, scope *plan.Scope, sel RuleSelector) (sql.Node, transform.TreeIdentity, error) {
	return transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		with, ok := node.(*plan.With)
		if !ok {
			return node, transform.SameTree, nil
		}

		byName := make(map[string]sql.Node, len(with.CTEs))
		for _, c := range with.CTEs {
			byName[c.Name] = c.Query
		}

		rewritten, _, err := transform.NodeDown(with.Child, func(inner sql.Node) (sql.Node, transform.TreeIdentity, error) {
			rel, ok := inner.(*plan.UnresolvedRelation)
			if !ok || rel.Database != "" {
				return inner, transform.SameTree, nil
			}
			query, ok := byName[rel.Name]
			if !ok {
				return inner, transform.SameTree, nil
			}
			return plan.NewSubqueryAlias(rel.Name, query), transform.NewTree, nil
		})
		if err != nil {
			return nil, transform.SameTree, err
		}
		return rewritten, transform.NewTree, nil
	})
}

// inlineWindowDefinitions substitutes every UnresolvedWindowExpression's
// named reference with the matching WithWindowDefinition spec pieces.
// An undefined name raises ErrUndefinedWindowSpec. A call with a
// parsed OVER(name) clause doesn't become an UnresolvedWindowExpression
// node in the tree until resolveFunctions binds its function in the
// default fixed-point batch, so this rule runs there too (not just once
// up front) and only drops the WithWindowDefinition wrapper once nothing
// underneath it still names one of its windows — there's no other signal
// that every OVER(name) call below it has had its turn.
func inlineWindowDefinitions(ctx *sql.Context, a *Analyzer, n sql.Node, scope *plan.Scope, sel RuleSelector) (sql.Node, transform.TreeIdentity, error) {
	return transform.NodeDown(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		def, ok := node.(*plan.WithWindowDefinition)
		if !ok {
			return node, transform.SameTree, nil
		}

		rewritten, identity, err := transform.NodeExprs(def.Child, func(e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
			return inlineOneWindowRef(e, def.WindowDefs)
		})
		if err != nil {
			return nil, transform.SameTree, err
		}

		if pendingWindowRef(rewritten, def.WindowDefs) {
			if identity == transform.SameTree {
				return node, transform.SameTree, nil
			}
			return plan.NewWithWindowDefinition(def.WindowDefs, rewritten), transform.NewTree, nil
		}
		return rewritten, transform.NewTree, nil
	})
}

// pendingWindowRef reports whether n still contains a call naming one of
// defs' windows: either a parsed OVER(name) clause not yet turned into an
// UnresolvedWindowExpression (resolveFunctions hasn't bound that function
// yet) or an UnresolvedWindowExpression this pass hasn't matched to a def
// (can't happen once matched, but defensive against a future def miss).
func pendingWindowRef(n sql.Node, defs map[string]*plan.WindowSpecRef) bool {
	found := false
	transform.InspectExpressions(n, func(e sql.Expression) bool {
		switch u := e.(type) {
		case *expression.UnresolvedWindowExpression:
			if _, ok := defs[u.WindowDefName]; ok {
				found = true
				return false
			}
		case *expression.UnresolvedFunction:
			if u.Window != nil {
				if _, ok := defs[u.Window.WindowDefName]; ok {
					found = true
					return false
				}
			}
		}
		return true
	})
	return found
}

func inlineOneWindowRef(e sql.Expression, defs map[string]*plan.WindowSpecRef) (sql.Expression, transform.TreeIdentity, error) {
	uw, ok := e.(*expression.UnresolvedWindowExpression)
	if !ok {
		return e, transform.SameTree, nil
	}
	ref, ok := defs[uw.WindowDefName]
	if !ok {
		return nil, transform.SameTree, sql.ErrUndefinedWindowSpec.New(uw.WindowDefName)
	}
	spec := &expression.WindowSpec{PartitionSpec: ref.PartitionSpec, OrderSpec: ref.OrderSpec}
	return expression.NewWindowExpression(uw.Child.String(), uw.Child, spec), transform.NewTree, nil
}

// eliminateTrivialUnions drops a Union/UnionAll one of whose branches is
// provably empty (a LocalRelation with zero projected literals) down to
// its other branch alone, checking the right branch first; it runs once,
// in the substitution batch before the default batch.
func eliminateTrivialUnions(ctx *sql.Context, a *Analyzer, n sql.Node, scope *plan.Scope, sel RuleSelector) (sql.Node, transform.TreeIdentity, error) {
	return transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		u, ok := node.(*plan.Union)
		if !ok {
			return node, transform.SameTree, nil
		}
		if isEmptyRelation(u.Right) {
			return u.Left, transform.NewTree, nil
		}
		if isEmptyRelation(u.Left) {
			return u.Right, transform.NewTree, nil
		}
		return node, transform.SameTree, nil
	})
}

func isEmptyRelation(n sql.Node) bool {
	local, ok := n.(*plan.LocalRelation)
	return ok && len(local.Output()) == 0
}

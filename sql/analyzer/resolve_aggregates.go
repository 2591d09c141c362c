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

// globalAggregates promotes a bare Project containing an aggregate call
// (e.g. `SELECT COUNT(*) FROM t`, with no explicit GROUP BY) into an
// Aggregate with an empty grouping list, the one-group-total reading.
func globalAggregates(ctx *sql.Context, a *Analyzer, n sql.Node, scope *plan.Scope, sel RuleSelector) (sql.Node, transform.TreeIdentity, error) {
	return transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		proj, ok := node.(*plan.Project)
		if !ok {
			return node, transform.SameTree, nil
		}
		if !anyContainsAggregate(proj.Projections) {
			return node, transform.SameTree, nil
		}
		return plan.NewAggregate(nil, proj.Projections, proj.Child), transform.NewTree, nil
	})
}

// resolveAggregateReferences handles `... GROUP BY a HAVING SUM(b) > 10` /
// `... ORDER BY COUNT(*)`: an aggregate call in the Filter/Sort above an
// Aggregate that isn't already one of its AggregateExpressions. It's lifted
// into the Aggregate and the original, narrower output is restored by an
// outer Project, mirroring resolveMissingReferences but keyed on aggregate
// calls rather than bare column references.
func resolveAggregateReferences(ctx *sql.Context, a *Analyzer, n sql.Node, scope *plan.Scope, sel RuleSelector) (sql.Node, transform.TreeIdentity, error) {
	return transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		switch node := node.(type) {
		case *plan.Filter:
			extended, changed := liftAggregateReferences(node.Child, []sql.Expression{node.Condition})
			if !changed {
				return node, transform.SameTree, nil
			}
			original := node.Child.Output()
			inner := plan.NewFilter(node.Condition, extended)
			return plan.NewProject(attrsToExprs(original), inner), transform.NewTree, nil

		case *plan.Sort:
			exprs := make([]sql.Expression, len(node.SortFields))
			for i, f := range node.SortFields {
				exprs[i] = f.Child
			}
			extended, changed := liftAggregateReferences(node.Child, exprs)
			if !changed {
				return node, transform.SameTree, nil
			}
			original := node.Child.Output()
			inner := plan.NewSort(node.SortFields, extended)
			return plan.NewProject(attrsToExprs(original), inner), transform.NewTree, nil

		default:
			return node, transform.SameTree, nil
		}
	})
}

func liftAggregateReferences(child sql.Node, exprs []sql.Expression) (sql.Node, bool) {
	agg, ok := child.(*plan.Aggregate)
	if !ok {
		return nil, false
	}

	present := sql.NewAttributeSet()
	for _, e := range agg.AggregateExpressions {
		if named, ok := e.(sql.NamedExpression); ok {
			present = present.Add(named.ID())
		}
	}

	var extra []sql.Expression
	for _, e := range exprs {
		transform.InspectExpr(e, func(inner sql.Expression) bool {
			ae, ok := inner.(*expression.AggregateExpression)
			if !ok {
				return true
			}
			if present.Contains(ae.ID()) {
				return false
			}
			extra = append(extra, ae)
			present = present.Add(ae.ID())
			return false
		})
	}
	if len(extra) == 0 {
		return nil, false
	}

	aggregates := make([]sql.Expression, 0, len(agg.AggregateExpressions)+len(extra))
	aggregates = append(aggregates, agg.AggregateExpressions...)
	aggregates = append(aggregates, extra...)
	return plan.NewAggregate(agg.GroupingExpressions, aggregates, agg.Child), true
}

func anyContainsAggregate(exprs []sql.Expression) bool {
	for _, e := range exprs {
		if containsAggregateCall(e) {
			return true
		}
	}
	return false
}

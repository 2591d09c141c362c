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
	"fmt"

	"github.com/quilldb/quill/sql"
	"github.com/quilldb/quill/sql/expression"
	"github.com/quilldb/quill/sql/plan"
	"github.com/quilldb/quill/sql/transform"
)

// resolvePivot rewrites PIVOT into a plain Aggregate: the implicit GROUP BY
// is every child column not referenced by the pivot column or the
// aggregates, and each (pivot value x aggregate) pair becomes one output
// column computed as the aggregate over an IF-guarded copy of its own
// argument, guarded by `pivotColumn = value`.
func resolvePivot(ctx *sql.Context, a *Analyzer, n sql.Node, scope *plan.Scope, sel RuleSelector) (sql.Node, transform.TreeIdentity, error) {
	return transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		p, ok := node.(*plan.Pivot)
		if !ok {
			return node, transform.SameTree, nil
		}
		if !p.Child.Resolved() || !p.PivotColumn.Resolved() ||
			!sql.ExpressionsResolved(p.PivotValues...) || !sql.ExpressionsResolved(p.Aggregates...) {
			return node, transform.SameTree, nil
		}

		excluded := p.PivotColumn.References()
		for _, agg := range p.Aggregates {
			excluded = excluded.Union(agg.References())
		}

		var grouping []sql.Expression
		for _, attr := range p.Child.Output() {
			if !excluded.Contains(attr.ID()) {
				grouping = append(grouping, attr)
			}
		}

		aggregateExprs := append([]sql.Expression{}, grouping...)
		for _, value := range p.PivotValues {
			for _, agg := range p.Aggregates {
				ae, ok := agg.(*expression.AggregateExpression)
				if !ok {
					// Not yet bound to a concrete aggregate (e.g. still an
					// UnresolvedFunction) — leave Pivot in place for the
					// next fixed-point pass, once resolveFunctions has run.
					return node, transform.SameTree, nil
				}
				cond := expression.NewUnresolvedFunction("=", false, nil, p.PivotColumn, value)
				guarded := expression.NewUnresolvedFunction("if", false, nil, cond, ae.Child, expression.NewLiteral(nil, ae.Type()))
				rewritten, err := ae.WithChildren(guarded)
				if err != nil {
					return nil, transform.SameTree, err
				}
				aggregateExprs = append(aggregateExprs, expression.NewGeneratedAlias(pivotColumnName(value, ae, len(p.Aggregates)), rewritten))
			}
		}

		return plan.NewAggregate(grouping, aggregateExprs, p.Child), transform.NewTree, nil
	})
}

func pivotColumnName(value sql.Expression, agg *expression.AggregateExpression, numAggregates int) string {
	if numAggregates == 1 {
		return value.String()
	}
	return fmt.Sprintf("%s_%s", value.String(), agg.Name())
}

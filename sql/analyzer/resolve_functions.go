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

// resolveFunctions binds every UnresolvedFunction against the catalog once
// its arguments are resolved. A plain scalar function is returned
// bare; one implementing AggregateFunction is wrapped in an
// AggregateExpression (unless it's also an AggregateWindowFunction, which
// resolves bare since it's only ever meaningful inside a Window's
// WindowExpression); a call carrying a parsed OVER clause is wrapped in an
// UnresolvedWindowExpression so inlineWindowDefinitions/ExtractWindow-
// Expressions can finish binding it to a concrete window spec. Table-valued
// calls (UnresolvedGenerator) are left untouched for resolveGenerators.
func resolveFunctions(ctx *sql.Context, a *Analyzer, n sql.Node, scope *plan.Scope, sel RuleSelector) (sql.Node, transform.TreeIdentity, error) {
	return transform.NodeExprs(n, func(e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		if _, isGenerator := e.(*expression.UnresolvedGenerator); isGenerator {
			return e, transform.SameTree, nil
		}
		uf, ok := e.(*expression.UnresolvedFunction)
		if !ok {
			return e, transform.SameTree, nil
		}
		if !sql.ExpressionsResolved(uf.Args...) {
			return e, transform.SameTree, nil
		}

		resolved, err := a.Catalog.LookupFunction(uf.FuncName, uf.Args)
		if err != nil {
			return e, transform.SameTree, nil
		}

		if _, isPureWindow := resolved.(sql.WindowFunction); isPureWindow {
			if _, alsoAggregate := resolved.(sql.AggregateFunction); !alsoAggregate && uf.Window == nil {
				return nil, transform.SameTree, sql.ErrWindowSpecRequired.New(uf.FuncName)
			}
		}

		bound := bindAggregate(uf.FuncName, resolved, uf.Distinct)
		if uf.Window != nil {
			return expression.NewUnresolvedWindowExpression(bound, uf.Window.WindowDefName), transform.NewTree, nil
		}
		return bound, transform.NewTree, nil
	})
}

// bindAggregate wraps fn in an AggregateExpression when it implements
// AggregateFunction, unless it's also a WindowFunction (those stay bare so
// a Window operator's WindowExpression is the only wrapper they carry).
func bindAggregate(name string, fn sql.Expression, distinct bool) sql.Expression {
	agg, ok := fn.(sql.AggregateFunction)
	if !ok {
		return fn
	}
	if _, isWindowAgg := fn.(sql.AggregateWindowFunction); isWindowAgg {
		return fn
	}
	if mm, ok := agg.(sql.MaxOrMin); ok && distinct {
		// MAX(DISTINCT x) / MIN(DISTINCT x) are equivalent to the
		// non-distinct form: DISTINCT is dropped rather than carried
		// through to a Distinct this analyzer would never consult.
		_ = mm
		distinct = false
	}
	return expression.NewAggregateExpression(name, fn, distinct)
}

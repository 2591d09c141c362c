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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quilldb/quill/sql"
	"github.com/quilldb/quill/sql/expression"
	"github.com/quilldb/quill/sql/plan"
	"github.com/quilldb/quill/sql/transform"
)

func TestResolvePivotRewritesToAggregate(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	table := plan.NewResolvedTable("db", "sales", sql.Schema{
		{Name: "region", Type: sql.Text},
		{Name: "quarter", Type: sql.Text},
		{Name: "amount", Type: sql.Int32},
	})
	region := table.Output()[0]
	quarter := table.Output()[1]
	amount := table.Output()[2]

	sum := expression.NewAggregateExpression("sum", aggStub{arg: amount}, false)
	pivot := plan.NewPivot(
		quarter,
		[]sql.Expression{expression.NewLiteral("Q1", sql.Text), expression.NewLiteral("Q2", sql.Text)},
		[]sql.Expression{sum},
		table,
	)

	out, identity, err := resolvePivot(ctx, a, pivot, nil, AllRules)
	require.NoError(t, err)
	require.Equal(t, transform.NewTree, identity)

	agg := out.(*plan.Aggregate)
	require.Len(t, agg.GroupingExpressions, 1, "region is the only non-pivot, non-aggregate column")
	require.Same(t, region, agg.GroupingExpressions[0])
	require.Len(t, agg.AggregateExpressions, 3, "region plus one output column per pivot value")

	q1Col, ok := agg.AggregateExpressions[1].(*expression.Alias)
	require.True(t, ok)
	require.Equal(t, `"Q1"`, q1Col.Name())
	guardedAgg, ok := q1Col.Child.(*expression.AggregateExpression)
	require.True(t, ok)
	_, ok = guardedAgg.Child.(*expression.UnresolvedFunction)
	require.True(t, ok, "aggregate argument is rewritten into an if-guarded call")
}

func TestResolvePivotWaitsForUnboundAggregate(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	table := plan.NewResolvedTable("db", "sales", sql.Schema{
		{Name: "quarter", Type: sql.Text},
		{Name: "amount", Type: sql.Int32},
	})
	quarter := table.Output()[0]
	amount := table.Output()[1]

	unbound := expression.NewUnresolvedFunction("sum", false, nil, amount)
	pivot := plan.NewPivot(quarter, []sql.Expression{expression.NewLiteral("Q1", sql.Text)}, []sql.Expression{unbound}, table)

	out, identity, err := resolvePivot(ctx, a, pivot, nil, AllRules)
	require.NoError(t, err)
	require.Equal(t, transform.SameTree, identity)
	require.Same(t, sql.Node(pivot), out)
}

func TestResolvePivotWaitsForUnresolvedChild(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	pivot := plan.NewPivot(
		expression.NewUnresolvedColumn("quarter"),
		[]sql.Expression{expression.NewLiteral("Q1", sql.Text)},
		nil,
		plan.NewUnresolvedRelation("sales"),
	)

	out, identity, err := resolvePivot(ctx, a, pivot, nil, AllRules)
	require.NoError(t, err)
	require.Equal(t, transform.SameTree, identity)
	require.Same(t, sql.Node(pivot), out)
}

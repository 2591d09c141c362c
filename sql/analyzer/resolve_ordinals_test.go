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

	"github.com/quilldb/quill/config"
	"github.com/quilldb/quill/sql"
	"github.com/quilldb/quill/sql/expression"
	"github.com/quilldb/quill/sql/plan"
	"github.com/quilldb/quill/sql/transform"
)

func TestResolveSortOrdinalsSubstitutesSelectListExpr(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	table := plan.NewResolvedTable("db", "t", sql.Schema{{Name: "i", Type: sql.Int32}, {Name: "j", Type: sql.Int32}})
	proj := plan.NewProject([]sql.Expression{attr("i", "t"), attr("j", "t")}, table)
	sort := plan.NewSort([]expression.SortOrder{
		expression.NewSortOrder(expression.NewLiteral(2, sql.Int32), expression.Ascending, false),
	}, proj)

	out, identity, err := resolveOrdinals(ctx, a, sort, nil, AllRules)
	require.NoError(t, err)
	require.Equal(t, transform.NewTree, identity)

	s := out.(*plan.Sort)
	ref, ok := s.SortFields[0].Child.(*expression.AttributeReference)
	require.True(t, ok)
	require.Equal(t, "j", ref.Name())
}

func TestResolveSortOrdinalsOutOfRangeErrors(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	table := plan.NewResolvedTable("db", "t", sql.Schema{{Name: "i", Type: sql.Int32}})
	proj := plan.NewProject([]sql.Expression{attr("i", "t")}, table)
	sort := plan.NewSort([]expression.SortOrder{
		expression.NewSortOrder(expression.NewLiteral(5, sql.Int32), expression.Ascending, false),
	}, proj)

	_, _, err := resolveOrdinals(ctx, a, sort, nil, AllRules)
	require.Error(t, err)
	require.True(t, sql.ErrInvalidOrdinal.Is(err))
}

func TestResolveSortOrdinalsDisabledIsNoop(t *testing.T) {
	ctx := sql.NewEmptyContext()
	cfg := config.Default()
	cfg.OrderByOrdinal = false
	a := NewWithConfig(sql.NewCatalog(stubCatalog{}), cfg)

	table := plan.NewResolvedTable("db", "t", sql.Schema{{Name: "i", Type: sql.Int32}})
	proj := plan.NewProject([]sql.Expression{attr("i", "t")}, table)
	sort := plan.NewSort([]expression.SortOrder{
		expression.NewSortOrder(expression.NewLiteral(1, sql.Int32), expression.Ascending, false),
	}, proj)

	out, identity, err := resolveOrdinals(ctx, a, sort, nil, AllRules)
	require.NoError(t, err)
	require.Equal(t, transform.SameTree, identity)
	require.Same(t, sql.Node(sort), out)
}

func TestResolveGroupOrdinalsSubstitutesAggregateExpr(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	table := plan.NewResolvedTable("db", "t", sql.Schema{{Name: "g", Type: sql.Int32}})
	g := attr("g", "t")
	agg := plan.NewAggregate(
		[]sql.Expression{expression.NewLiteral(1, sql.Int32)},
		[]sql.Expression{g},
		table,
	)

	out, identity, err := resolveOrdinals(ctx, a, agg, nil, AllRules)
	require.NoError(t, err)
	require.Equal(t, transform.NewTree, identity)

	newAgg := out.(*plan.Aggregate)
	require.Same(t, g, newAgg.GroupingExpressions[0])
}

func TestResolveGroupOrdinalsOnAggregateExprErrors(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	table := plan.NewResolvedTable("db", "t", sql.Schema{{Name: "x", Type: sql.Int32}})
	count := expression.NewAggregateExpression("count", aggStub{arg: attr("x", "t")}, false)
	agg := plan.NewAggregate(
		[]sql.Expression{expression.NewLiteral(1, sql.Int32)},
		[]sql.Expression{count},
		table,
	)

	_, _, err := resolveOrdinals(ctx, a, agg, nil, AllRules)
	require.Error(t, err)
	require.True(t, sql.ErrOrdinalOnAggregate.Is(err))
}

func TestResolveOrdinalsIgnoresNonOrdinalNode(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	table := plan.NewResolvedTable("db", "t", sql.Schema{{Name: "i", Type: sql.Int32}})

	out, identity, err := resolveOrdinals(ctx, a, table, nil, AllRules)
	require.NoError(t, err)
	require.Equal(t, transform.SameTree, identity)
	require.Same(t, sql.Node(table), out)
}

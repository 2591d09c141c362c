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
)

func TestCheckAnalysisPassesResolvedPlan(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	tree := plan.NewProject(
		[]sql.Expression{expression.NewAttributeReference("i", sql.Int32, false, sql.NewColumnID(), "t")},
		plan.NewResolvedTable("db", "t", sql.Schema{{Name: "i", Type: sql.Int32}}),
	)

	out, _, err := checkAnalysis(ctx, a, tree, nil, AllRules)
	require.NoError(t, err)
	require.Same(t, tree, out)
}

func TestCheckAnalysisReportsUnresolvedRelation(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	tree := plan.NewProject(
		[]sql.Expression{expression.NewUnresolvedColumn("i")},
		plan.NewUnresolvedRelation("missing"),
	)

	_, _, err := checkAnalysis(ctx, a, tree, nil, AllRules)
	require.Error(t, err)
	require.True(t, sql.ErrNoSuchTable.Is(err))
}

func TestCheckAnalysisReportsUnresolvedColumnOverRelation(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	tree := plan.NewProject(
		[]sql.Expression{expression.NewUnresolvedColumn("missing_col")},
		plan.NewResolvedTable("db", "t", sql.Schema{{Name: "i", Type: sql.Int32}}),
	)

	_, _, err := checkAnalysis(ctx, a, tree, nil, AllRules)
	require.Error(t, err)
	require.True(t, sql.ErrUnknownColumn.Is(err))
}

func TestCheckAnalysisReportsUnknownFunction(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	tree := plan.NewProject(
		[]sql.Expression{expression.NewUnresolvedFunction("not_a_real_fn", false, nil,
			expression.NewAttributeReference("i", sql.Int32, false, sql.NewColumnID(), "t"))},
		plan.NewResolvedTable("db", "t", sql.Schema{{Name: "i", Type: sql.Int32}}),
	)

	_, _, err := checkAnalysis(ctx, a, tree, nil, AllRules)
	require.Error(t, err)
	require.True(t, sql.ErrUnknownFunction.Is(err))
}

func TestCheckAnalysisReportsUpCastTruncation(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	tree := plan.NewProject(
		[]sql.Expression{expression.NewUpCast(expression.NewLiteral("x", sql.Text), sql.Int32)},
		plan.NewResolvedTable("db", "t", sql.Schema{{Name: "i", Type: sql.Int32}}),
	)

	_, _, err := checkAnalysis(ctx, a, tree, nil, AllRules)
	require.Error(t, err)
	require.True(t, sql.ErrUpCastTruncation.Is(err))
}

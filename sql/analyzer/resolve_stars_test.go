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

func TestResolveStarsExpandsBareStar(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	table := plan.NewResolvedTable("db", "t", sql.Schema{{Name: "i", Type: sql.Int32}, {Name: "j", Type: sql.Int32}})
	tree := plan.NewProject([]sql.Expression{expression.NewStar()}, table)

	out, identity, err := resolveStars(ctx, a, tree, nil, AllRules)
	require.NoError(t, err)
	require.Equal(t, transform.NewTree, identity)

	p := out.(*plan.Project)
	require.Len(t, p.Projections, 2)
	ref0 := p.Projections[0].(*expression.AttributeReference)
	require.Equal(t, "i", ref0.Name())
	ref1 := p.Projections[1].(*expression.AttributeReference)
	require.Equal(t, "j", ref1.Name())
}

func TestResolveStarsExpandsQualifiedStarAgainstMatchingTableOnly(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	left := plan.NewResolvedTable("db", "l", sql.Schema{{Name: "i", Type: sql.Int32}})
	right := plan.NewResolvedTable("db", "r", sql.Schema{{Name: "j", Type: sql.Int32}})
	join := plan.NewCrossJoin(left, right)
	tree := plan.NewProject([]sql.Expression{expression.NewQualifiedStar("r")}, join)

	out, identity, err := resolveStars(ctx, a, tree, nil, AllRules)
	require.NoError(t, err)
	require.Equal(t, transform.NewTree, identity)

	p := out.(*plan.Project)
	require.Len(t, p.Projections, 1)
	ref := p.Projections[0].(*expression.AttributeReference)
	require.Equal(t, "j", ref.Name())
}

func TestResolveStarsQualifiedStarNoMatchErrors(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	table := plan.NewResolvedTable("db", "t", sql.Schema{{Name: "i", Type: sql.Int32}})
	tree := plan.NewProject([]sql.Expression{expression.NewQualifiedStar("nope")}, table)

	_, _, err := resolveStars(ctx, a, tree, nil, AllRules)
	require.Error(t, err)
	require.True(t, sql.ErrStarMisuse.Is(err))
}

func TestResolveStarsLeavesProjectWithoutStarAlone(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	table := plan.NewResolvedTable("db", "t", sql.Schema{{Name: "i", Type: sql.Int32}})
	tree := plan.NewProject([]sql.Expression{attr("i", "t")}, table)

	out, identity, err := resolveStars(ctx, a, tree, nil, AllRules)
	require.NoError(t, err)
	require.Equal(t, transform.SameTree, identity)
	require.Same(t, tree, out)
}

func TestResolveStarsMixedStarAndColumn(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	table := plan.NewResolvedTable("db", "t", sql.Schema{{Name: "i", Type: sql.Int32}, {Name: "j", Type: sql.Int32}})
	extra := expression.NewAlias("k", expression.NewLiteral(1, sql.Int32))
	tree := plan.NewProject([]sql.Expression{expression.NewStar(), extra}, table)

	out, identity, err := resolveStars(ctx, a, tree, nil, AllRules)
	require.NoError(t, err)
	require.Equal(t, transform.NewTree, identity)

	p := out.(*plan.Project)
	require.Len(t, p.Projections, 3, "two expanded columns plus the trailing alias")
	_, ok := p.Projections[2].(*expression.Alias)
	require.True(t, ok)
}

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

func TestResolveDeserializerBindsOrdinalsToChildOutput(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	table := plan.NewResolvedTable("db", "t", sql.Schema{{Name: "i", Type: sql.Int32}, {Name: "s", Type: sql.Text}})
	program := expression.NewBoundReference(1, sql.Text)
	ud := expression.NewUnresolvedDeserializer(program)
	tree := plan.NewProject([]sql.Expression{ud}, table)

	out, identity, err := resolveDeserializer(ctx, a, tree, nil, AllRules)
	require.NoError(t, err)
	require.Equal(t, transform.NewTree, identity)

	p := out.(*plan.Project)
	ref, ok := p.Projections[0].(*expression.AttributeReference)
	require.True(t, ok)
	require.Equal(t, "s", ref.Name())
}

func TestResolveDeserializerWaitsForUnresolvedChild(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	program := expression.NewBoundReference(0, sql.Int32)
	ud := expression.NewUnresolvedDeserializer(program)
	tree := plan.NewProject([]sql.Expression{ud}, plan.NewUnresolvedRelation("t"))

	out, identity, err := resolveDeserializer(ctx, a, tree, nil, AllRules)
	require.NoError(t, err)
	require.Equal(t, transform.SameTree, identity)
	require.Same(t, tree, out)
}

func TestResolveDeserializerOutOfRangeOrdinalLeftUnbound(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	table := plan.NewResolvedTable("db", "t", sql.Schema{{Name: "i", Type: sql.Int32}})
	program := expression.NewBoundReference(5, sql.Int32)
	ud := expression.NewUnresolvedDeserializer(program)
	tree := plan.NewProject([]sql.Expression{ud}, table)

	out, identity, err := resolveDeserializer(ctx, a, tree, nil, AllRules)
	require.NoError(t, err)
	require.Equal(t, transform.NewTree, identity, "the deserializer wrapper is still dropped even though the inner reference stayed unbound")
	p := out.(*plan.Project)
	_, stillBound := p.Projections[0].(*expression.BoundReference)
	require.True(t, stillBound)
}

func TestResolveUpCastRewritesSameTypeToCast(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	table := plan.NewResolvedTable("db", "t", sql.Schema{{Name: "i", Type: sql.Int32}})
	uc := expression.NewUpCast(attr("i", "t"), sql.Int32)
	tree := plan.NewProject([]sql.Expression{uc}, table)

	out, identity, err := resolveUpCast(ctx, a, tree, nil, AllRules)
	require.NoError(t, err)
	require.Equal(t, transform.NewTree, identity)
	p := out.(*plan.Project)
	_, ok := p.Projections[0].(*expression.Cast)
	require.True(t, ok)
}

func TestResolveUpCastAllowsNumericWidening(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	table := plan.NewResolvedTable("db", "t", sql.Schema{{Name: "i", Type: sql.Int32}})
	uc := expression.NewUpCast(attr("i", "t"), sql.Int64)
	tree := plan.NewProject([]sql.Expression{uc}, table)

	out, identity, err := resolveUpCast(ctx, a, tree, nil, AllRules)
	require.NoError(t, err)
	require.Equal(t, transform.NewTree, identity)
	p := out.(*plan.Project)
	cast, ok := p.Projections[0].(*expression.Cast)
	require.True(t, ok)
	require.Equal(t, sql.Int64, cast.Type())
}

func TestResolveUpCastRejectsUnsafeNarrowing(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	table := plan.NewResolvedTable("db", "t", sql.Schema{{Name: "s", Type: sql.Text}})
	uc := expression.NewUpCast(attr("s", "t"), sql.Int32)
	tree := plan.NewProject([]sql.Expression{uc}, table)

	_, _, err := resolveUpCast(ctx, a, tree, nil, AllRules)
	require.Error(t, err)
	require.True(t, sql.ErrUpCastTruncation.Is(err))
}

func TestResolveUpCastWaitsForUnresolvedChild(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	uc := expression.NewUpCast(expression.NewUnresolvedColumn("i"), sql.Int32)
	tree := plan.NewProject([]sql.Expression{uc}, plan.NewUnresolvedRelation("t"))

	out, identity, err := resolveUpCast(ctx, a, tree, nil, AllRules)
	require.NoError(t, err)
	require.Equal(t, transform.SameTree, identity)
	require.Same(t, tree, out)
}

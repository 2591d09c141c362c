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

func TestResolveExtractValueStructField(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	structType := sql.StructType{Fields: []sql.StructField{{Name: "a", Type: sql.Int32}, {Name: "b", Type: sql.Text}}}
	table := plan.NewResolvedTable("db", "t", sql.Schema{{Name: "s", Type: structType}})
	uev := expression.NewUnresolvedExtractValue(attr("s", "t"), "b")
	tree := plan.NewProject([]sql.Expression{uev}, table)

	out, identity, err := resolveExtractValue(ctx, a, tree, nil, AllRules)
	require.NoError(t, err)
	require.Equal(t, transform.NewTree, identity)

	p := out.(*plan.Project)
	gsf, ok := p.Projections[0].(*expression.GetStructField)
	require.True(t, ok)
	require.Equal(t, "b", gsf.FieldName)
	require.Equal(t, 1, gsf.FieldIdx)
	require.Equal(t, sql.Text, gsf.FieldType)
}

func TestResolveExtractValueMap(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	mapType := sql.MapType{Key: sql.Text, Value: sql.Int32}
	table := plan.NewResolvedTable("db", "t", sql.Schema{{Name: "m", Type: mapType}})
	uev := expression.NewUnresolvedExtractValue(attr("m", "t"), "k")
	tree := plan.NewProject([]sql.Expression{uev}, table)

	out, identity, err := resolveExtractValue(ctx, a, tree, nil, AllRules)
	require.NoError(t, err)
	require.Equal(t, transform.NewTree, identity)

	p := out.(*plan.Project)
	gmv, ok := p.Projections[0].(*expression.GetMapValue)
	require.True(t, ok)
	require.Equal(t, sql.Int32, gmv.Type())
}

func TestResolveExtractValueArray(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	arrType := sql.ArrayType{Element: sql.Int32}
	table := plan.NewResolvedTable("db", "t", sql.Schema{{Name: "arr", Type: arrType}})
	uev := expression.NewUnresolvedExtractValue(attr("arr", "t"), "0")
	tree := plan.NewProject([]sql.Expression{uev}, table)

	out, identity, err := resolveExtractValue(ctx, a, tree, nil, AllRules)
	require.NoError(t, err)
	require.Equal(t, transform.NewTree, identity)

	p := out.(*plan.Project)
	gai, ok := p.Projections[0].(*expression.GetArrayItem)
	require.True(t, ok)
	require.Equal(t, sql.Int32, gai.Type())
}

func TestResolveExtractValueUnsupportedTypeLeftUnresolved(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	table := plan.NewResolvedTable("db", "t", sql.Schema{{Name: "i", Type: sql.Int32}})
	uev := expression.NewUnresolvedExtractValue(attr("i", "t"), "x")
	tree := plan.NewProject([]sql.Expression{uev}, table)

	out, identity, err := resolveExtractValue(ctx, a, tree, nil, AllRules)
	require.NoError(t, err)
	require.Equal(t, transform.SameTree, identity)
	require.Same(t, tree, out)
}

func TestResolveExtractValueWaitsForUnresolvedChild(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	uev := expression.NewUnresolvedExtractValue(expression.NewUnresolvedColumn("s"), "a")
	tree := plan.NewProject([]sql.Expression{uev}, plan.NewUnresolvedRelation("t"))

	out, identity, err := resolveExtractValue(ctx, a, tree, nil, AllRules)
	require.NoError(t, err)
	require.Equal(t, transform.SameTree, identity)
	require.Same(t, tree, out)
}

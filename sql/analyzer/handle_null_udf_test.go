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
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quilldb/quill/sql"
	"github.com/quilldb/quill/sql/expression"
	"github.com/quilldb/quill/sql/plan"
	"github.com/quilldb/quill/sql/transform"
)

func dummyUDFFn(i int32) int32 { return i }

func TestHandleNullUDFWrapsNullOnNullFunc(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	table := plan.NewResolvedTable("db", "t", sql.Schema{{Name: "i", Type: sql.Int32}})
	uf := expression.NewUserFunc("double", reflect.ValueOf(dummyUDFFn), []sql.Type{sql.Int32}, sql.Int32, true, attr("i", "t"))
	tree := plan.NewProject([]sql.Expression{uf}, table)

	out, identity, err := handleNullUDF(ctx, a, tree, nil, AllRules)
	require.NoError(t, err)
	require.Equal(t, transform.NewTree, identity)

	p := out.(*plan.Project)
	iff, ok := p.Projections[0].(*expression.If)
	require.True(t, ok)
	_, ok = iff.Cond.(*expression.IsNull)
	require.True(t, ok)
}

func TestHandleNullUDFSkipsWhenNullOnNullFalse(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	table := plan.NewResolvedTable("db", "t", sql.Schema{{Name: "i", Type: sql.Int32}})
	uf := expression.NewUserFunc("double", reflect.ValueOf(dummyUDFFn), []sql.Type{sql.Int32}, sql.Int32, false, attr("i", "t"))
	tree := plan.NewProject([]sql.Expression{uf}, table)

	out, identity, err := handleNullUDF(ctx, a, tree, nil, AllRules)
	require.NoError(t, err)
	require.Equal(t, transform.SameTree, identity)
	require.Same(t, tree, out)
}

func TestHandleNullUDFSkipsUnresolvedArgs(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	uf := expression.NewUserFunc("double", reflect.ValueOf(dummyUDFFn), []sql.Type{sql.Int32}, sql.Int32, true, expression.NewUnresolvedColumn("i"))
	tree := plan.NewProject([]sql.Expression{uf}, plan.NewUnresolvedRelation("t"))

	out, identity, err := handleNullUDF(ctx, a, tree, nil, AllRules)
	require.NoError(t, err)
	require.Equal(t, transform.SameTree, identity)
	require.Same(t, tree, out)
}

func TestHandleNullUDFSkipsStructTypedArg(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	structCol := expression.NewAttribute("s", sql.StructType{Fields: []sql.StructField{{Name: "k", Type: sql.Int32}}}, true, "t")
	table := plan.NewResolvedTable("db", "t", sql.Schema{{Name: "i", Type: sql.Int32}, {Name: "s", Type: structCol.Type()}})
	uf := expression.NewUserFunc("f", reflect.ValueOf(dummyUDFFn), []sql.Type{sql.Int32, structCol.Type()}, sql.Int32, true, attr("i", "t"), structCol)
	tree := plan.NewProject([]sql.Expression{uf}, table)

	out, identity, err := handleNullUDF(ctx, a, tree, nil, AllRules)
	require.NoError(t, err)
	require.Equal(t, transform.NewTree, identity)

	p := out.(*plan.Project)
	iff := p.Projections[0].(*expression.If)
	isNull, ok := iff.Cond.(*expression.IsNull)
	require.True(t, ok, "only the primitive arg is guarded, so there's no Or chain")
	require.Equal(t, "i", isNull.Child.(sql.NamedExpression).Name())
}

func TestHandleNullUDFChainsMultipleArgsWithOr(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	table := plan.NewResolvedTable("db", "t", sql.Schema{{Name: "i", Type: sql.Int32}, {Name: "j", Type: sql.Int32}})
	uf := expression.NewUserFunc("add", reflect.ValueOf(dummyUDFFn), []sql.Type{sql.Int32, sql.Int32}, sql.Int32, true, attr("i", "t"), attr("j", "t"))
	tree := plan.NewProject([]sql.Expression{uf}, table)

	out, identity, err := handleNullUDF(ctx, a, tree, nil, AllRules)
	require.NoError(t, err)
	require.Equal(t, transform.NewTree, identity)

	p := out.(*plan.Project)
	iff := p.Projections[0].(*expression.If)
	_, ok := iff.Cond.(*expression.Or)
	require.True(t, ok, "a guard per arg is chained together with Or")
}

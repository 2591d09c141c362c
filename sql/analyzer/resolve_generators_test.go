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

	"github.com/quilldb/quill/catalog"
	"github.com/quilldb/quill/sql"
	"github.com/quilldb/quill/sql/expression"
	"github.com/quilldb/quill/sql/plan"
	"github.com/quilldb/quill/sql/transform"
)

// explodeStub is a resolved sql.Generator standing in for EXPLODE(arr),
// producing one (value) column per call.
type explodeStub struct{ arg sql.Expression }

func (explodeStub) Resolved() bool                 { return true }
func (explodeStub) Type() sql.Type                 { return sql.Unknown }
func (explodeStub) Nullable() bool                 { return true }
func (e explodeStub) Children() []sql.Expression   { return []sql.Expression{e.arg} }
func (e explodeStub) WithChildren(c ...sql.Expression) (sql.Expression, error) {
	e.arg = c[0]
	return e, nil
}
func (explodeStub) References() sql.AttributeSet { return sql.AttributeSet{} }
func (explodeStub) Foldable() bool                { return false }
func (explodeStub) Deterministic() bool           { return true }
func (explodeStub) String() string                { return "explode()" }
func (explodeStub) ElementSchema() sql.Schema {
	return sql.Schema{{Name: "col", Type: sql.Int32}}
}

func TestResolveGeneratorsBindsUnresolvedGeneratorAndMintsOutput(t *testing.T) {
	ctx := sql.NewEmptyContext()
	c := catalog.NewCatalog()
	c.RegisterGenerator("explode", func(args ...sql.Expression) (sql.Expression, error) {
		return explodeStub{arg: args[0]}, nil
	})
	a := New(sql.NewCatalog(c))

	call := expression.NewUnresolvedGenerator("explode", attr("arr", "t"))
	table := plan.NewResolvedTable("db", "t", sql.Schema{{Name: "arr", Type: sql.Int32}})
	gen := plan.NewGenerate(call, nil, true, false, table)

	out, identity, err := resolveGenerators(ctx, a, gen, nil, AllRules)
	require.NoError(t, err)
	require.Equal(t, transform.NewTree, identity)

	g := out.(*plan.Generate)
	require.Len(t, g.GeneratorOutput, 1)
	require.Equal(t, "col", g.GeneratorOutput[0].Name())
	_, stillUnresolved := g.Generator.(*expression.UnresolvedGenerator)
	require.False(t, stillUnresolved)
}

func TestResolveGeneratorsAliasArityMismatchErrors(t *testing.T) {
	ctx := sql.NewEmptyContext()
	c := catalog.NewCatalog()
	c.RegisterGenerator("explode", func(args ...sql.Expression) (sql.Expression, error) {
		return explodeStub{arg: args[0]}, nil
	})
	a := New(sql.NewCatalog(c))

	call := expression.NewUnresolvedGenerator("explode", attr("arr", "t"))
	table := plan.NewResolvedTable("db", "t", sql.Schema{{Name: "arr", Type: sql.Int32}})
	gen := plan.NewGenerate(call, []string{"k", "v"}, true, false, table)

	_, _, err := resolveGenerators(ctx, a, gen, nil, AllRules)
	require.Error(t, err)
	require.True(t, sql.ErrGeneratorAliasArity.Is(err))
}

func TestResolveGeneratorsAlreadyBoundIsNoop(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	table := plan.NewResolvedTable("db", "t", sql.Schema{{Name: "arr", Type: sql.Int32}})
	gen := plan.NewGenerate(explodeStub{arg: attr("arr", "t")}, nil, true, false, table)
	bound := gen.WithOutput([]sql.Attribute{expression.NewAttribute("col", sql.Int32, true, "")})

	out, identity, err := resolveGenerators(ctx, a, bound, nil, AllRules)
	require.NoError(t, err)
	require.Equal(t, transform.SameTree, identity)
	require.Same(t, sql.Node(bound), out)
}

func TestExtractGeneratorsRewritesSingleGeneratorInProjectList(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	table := plan.NewResolvedTable("db", "t", sql.Schema{{Name: "i", Type: sql.Int32}, {Name: "arr", Type: sql.Int32}})
	call := expression.NewUnresolvedGenerator("explode", attr("arr", "t"))
	aliased := expression.NewAlias("v", call)
	tree := plan.NewProject([]sql.Expression{attr("i", "t"), aliased}, table)

	out, identity, err := extractGenerators(ctx, a, tree, nil, AllRules)
	require.NoError(t, err)
	require.Equal(t, transform.NewTree, identity)

	outer := out.(*plan.Project)
	require.Len(t, outer.Projections, 1, "generator call is pulled out of the select list")

	gen, ok := outer.Child.(*plan.Generate)
	require.True(t, ok)
	require.Equal(t, []string{"v"}, gen.OutputNames)
	require.True(t, gen.Join)
}

func TestExtractGeneratorsMultipleGeneratorsErrors(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	table := plan.NewResolvedTable("db", "t", sql.Schema{{Name: "arr", Type: sql.Int32}})
	call1 := expression.NewUnresolvedGenerator("explode", attr("arr", "t"))
	call2 := expression.NewUnresolvedGenerator("explode", attr("arr", "t"))
	tree := plan.NewProject([]sql.Expression{call1, call2}, table)

	_, _, err := extractGenerators(ctx, a, tree, nil, AllRules)
	require.Error(t, err)
	require.True(t, sql.ErrMultipleGenerators.Is(err))
}

func TestExtractGeneratorsSkipsPlainProject(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	table := plan.NewResolvedTable("db", "t", sql.Schema{{Name: "i", Type: sql.Int32}})
	tree := plan.NewProject([]sql.Expression{attr("i", "t")}, table)

	out, identity, err := extractGenerators(ctx, a, tree, nil, AllRules)
	require.NoError(t, err)
	require.Equal(t, transform.SameTree, identity)
	require.Same(t, tree, out)
}

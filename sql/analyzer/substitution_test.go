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

// TestInlineWindowDefinitionsSurvivesUntilFunctionBinding is a regression
// test: a WithWindowDefinition must not strip itself before the OVER(name)
// clause underneath it has been turned into an UnresolvedWindowExpression
// by resolve_functions, since that's the only node shape this rule knows
// how to rewrite.
func TestInlineWindowDefinitionsSurvivesUntilFunctionBinding(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	defs := map[string]*plan.WindowSpecRef{
		"w": {OrderSpec: []expression.SortOrder{{Child: expression.NewAttributeReference("i", sql.Int32, false, sql.NewColumnID(), "")}}},
	}

	// Before resolve_functions has run, the OVER(w) clause is still an
	// UnresolvedFunction with a pending Window stub, not yet an
	// UnresolvedWindowExpression node the rule can see.
	pendingCall := expression.NewUnresolvedFunction("row_number", false,
		expression.NewUnresolvedWindowExpression(expression.NewUnresolvedColumn("x"), "w"))
	tree := plan.NewWithWindowDefinition(defs, plan.NewProject(
		[]sql.Expression{pendingCall},
		plan.NewLocalRelation("t", nil),
	))

	out, identity, err := inlineWindowDefinitions(ctx, a, tree, nil, AllRules)
	require.NoError(t, err)
	require.Equal(t, transform.SameTree, identity)
	_, stillWrapped := out.(*plan.WithWindowDefinition)
	require.True(t, stillWrapped, "wrapper must survive until the named window is actually referenced as an UnresolvedWindowExpression")

	// Once resolve_functions has bound the call, the tree carries a real
	// UnresolvedWindowExpression naming "w" — now the rule must inline it
	// and drop the wrapper.
	boundCall := expression.NewUnresolvedWindowExpression(
		expression.NewAttributeReference("x", sql.Int32, false, sql.NewColumnID(), ""),
		"w",
	)
	tree2 := plan.NewWithWindowDefinition(defs, plan.NewProject(
		[]sql.Expression{boundCall},
		plan.NewLocalRelation("t", nil),
	))

	out2, identity2, err := inlineWindowDefinitions(ctx, a, tree2, nil, AllRules)
	require.NoError(t, err)
	require.Equal(t, transform.NewTree, identity2)
	_, stillWrapped2 := out2.(*plan.WithWindowDefinition)
	require.False(t, stillWrapped2, "wrapper must be stripped once nothing below it still names a pending window")

	proj, ok := out2.(*plan.Project)
	require.True(t, ok)
	we, ok := proj.Projections[0].(*expression.WindowExpression)
	require.True(t, ok)
	require.NotNil(t, we.Spec)
	require.Len(t, we.Spec.OrderSpec, 1)
}

func TestInlineWindowDefinitionsUndefinedNameErrors(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	defs := map[string]*plan.WindowSpecRef{}
	boundCall := expression.NewUnresolvedWindowExpression(
		expression.NewAttributeReference("x", sql.Int32, false, sql.NewColumnID(), ""),
		"missing",
	)
	tree := plan.NewWithWindowDefinition(defs, plan.NewProject(
		[]sql.Expression{boundCall},
		plan.NewLocalRelation("t", nil),
	))

	_, _, err := inlineWindowDefinitions(ctx, a, tree, nil, AllRules)
	require.Error(t, err)
	require.True(t, sql.ErrUndefinedWindowSpec.Is(err))
}

func TestInlineCTEsSubstitutesRelationAndDropsWith(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	cte := plan.NewLocalRelation("base", sql.Schema{{Name: "i", Type: sql.Int32}})
	tree := plan.NewWith(
		[]plan.CTE{{Name: "cte1", Query: cte}},
		plan.NewProject([]sql.Expression{expression.NewUnresolvedColumn("i")}, plan.NewUnresolvedRelation("cte1")),
	)

	out, identity, err := inlineCTEs(ctx, a, tree, nil, AllRules)
	require.NoError(t, err)
	require.Equal(t, transform.NewTree, identity)
	_, stillWith := out.(*plan.With)
	require.False(t, stillWith)

	proj := out.(*plan.Project)
	alias, ok := proj.Child.(*plan.SubqueryAlias)
	require.True(t, ok)
	require.Equal(t, "cte1", alias.Name)
}

func TestEliminateTrivialUnionsDropsEmptySide(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	left := plan.NewLocalRelation("l", sql.Schema{{Name: "i", Type: sql.Int32}})
	empty := plan.NewLocalRelation("empty", nil)
	tree := plan.NewUnion(left, empty, true)

	out, identity, err := eliminateTrivialUnions(ctx, a, tree, nil, AllRules)
	require.NoError(t, err)
	require.Equal(t, transform.NewTree, identity)
	require.Same(t, left, out)
}

type stubCatalog struct{}

func (stubCatalog) LookupRelation(database, table string) (sql.Node, error) {
	return nil, sql.ErrNoSuchTable.New(table)
}
func (stubCatalog) LookupFunction(name string, args []sql.Expression) (sql.Expression, error) {
	return nil, sql.ErrUnknownFunction.New(name)
}
func (stubCatalog) LookupGenerator(name string, args []sql.Expression) (sql.Expression, error) {
	return nil, sql.ErrUnknownFunction.New(name)
}
func (stubCatalog) DatabaseExists(name string) bool         { return false }
func (stubCatalog) TableExists(database, table string) bool { return false }

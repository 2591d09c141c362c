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

package expression

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quilldb/quill/sql"
)

func TestLiteralIsAlwaysResolvedAndFoldable(t *testing.T) {
	l := NewLiteral(int32(3), sql.Int32)
	require.True(t, l.Resolved())
	require.True(t, l.Foldable())
	require.True(t, l.Deterministic())
	require.False(t, l.Nullable())
	require.Equal(t, sql.Int32, l.Type())
	require.Empty(t, l.Children())

	null := NewLiteral(nil, sql.Int32)
	require.True(t, null.Nullable())
}

func TestLiteralWithChildrenRejectsAny(t *testing.T) {
	l := NewLiteral(1, sql.Int32)
	_, err := l.WithChildren(NewLiteral(2, sql.Int32))
	require.Error(t, err)

	same, err := l.WithChildren()
	require.NoError(t, err)
	require.Same(t, sql.Expression(l), same)
}

func TestAttributeReferenceIdentityByID(t *testing.T) {
	id := sql.NewColumnID()
	a := NewAttributeReference("x", sql.Int32, true, id, "t")
	require.True(t, a.Resolved())
	require.False(t, a.Foldable())
	require.Equal(t, id, a.ID())
	require.Equal(t, "t", a.Qualifier())
	require.True(t, a.References().Contains(a.ID()))

	reQualified := a.WithQualifier("u").(*AttributeReference)
	require.Equal(t, "u", reQualified.Qualifier())
	require.Equal(t, id, reQualified.ID(), "re-qualifying keeps the same column identity")

	reIDed := a.WithID(sql.NewColumnID())
	require.NotEqual(t, id, reIDed.ID())
}

func TestUnaryBooleanBoilerplateDelegatesToChild(t *testing.T) {
	child := NewLiteral(nil, sql.Int32)
	n := NewNot(child)
	require.True(t, n.Resolved())
	require.True(t, n.Foldable())
	require.Equal(t, sql.Boolean, n.Type())
	require.Len(t, n.Children(), 1)
}

func TestBinaryComparisonBoilerplateUnionsReferences(t *testing.T) {
	left := NewAttributeReference("a", sql.Int32, false, sql.NewColumnID(), "t")
	right := NewAttributeReference("b", sql.Int32, false, sql.NewColumnID(), "t")
	eq := NewEquals(left, right)

	require.True(t, eq.Resolved())
	require.Equal(t, sql.Boolean, eq.Type())
	refs := eq.References()
	require.True(t, refs.Contains(left.ID()))
	require.True(t, refs.Contains(right.ID()))
}

func TestNaryBoilerplateAggregatesChildren(t *testing.T) {
	a := NewLiteral(1, sql.Int32)
	b := NewLiteral(2, sql.Int32)
	g := NewGroupingID(a, b)

	require.True(t, g.Resolved())
	require.True(t, g.Foldable())
	require.Len(t, g.Children(), 2)
}

func TestJoinAndAndSplitConjunctionAreInverses(t *testing.T) {
	a := NewLiteral(true, sql.Boolean)
	b := NewLiteral(false, sql.Boolean)
	c := NewLiteral(true, sql.Boolean)

	joined := JoinAnd(a, b, c)
	split := SplitConjunction(joined)
	require.Len(t, split, 3)
	require.Same(t, sql.Expression(a), split[0])
	require.Same(t, sql.Expression(b), split[1])
	require.Same(t, sql.Expression(c), split[2])
}

func TestJoinAndSingleExprUnchanged(t *testing.T) {
	a := NewLiteral(true, sql.Boolean)
	require.Same(t, sql.Expression(a), JoinAnd(a))
}

func TestSplitConjunctionNonAndIsSingleton(t *testing.T) {
	a := NewEquals(NewLiteral(1, sql.Int32), NewLiteral(1, sql.Int32))
	split := SplitConjunction(a)
	require.Len(t, split, 1)
	require.Same(t, sql.Expression(a), split[0])
}

func TestIfResolvedRequiresAllThreeBranches(t *testing.T) {
	cond := NewEquals(NewLiteral(1, sql.Int32), NewLiteral(1, sql.Int32))
	iff := NewIf(cond, NewLiteral("yes", sql.Text), NewLiteral("no", sql.Text))
	require.True(t, iff.Resolved())
	require.Equal(t, sql.Text, iff.Type())
	require.Len(t, iff.Children(), 3)

	unresolved := NewIf(cond, NewUnresolvedColumn("x"), NewLiteral("no", sql.Text))
	require.False(t, unresolved.Resolved())
}

func TestIfReferencesUnionsAllBranches(t *testing.T) {
	condAttr := NewAttributeReference("c", sql.Boolean, false, sql.NewColumnID(), "t")
	trueAttr := NewAttributeReference("a", sql.Int32, false, sql.NewColumnID(), "t")
	falseAttr := NewAttributeReference("b", sql.Int32, false, sql.NewColumnID(), "t")
	iff := NewIf(condAttr, trueAttr, falseAttr)

	refs := iff.References()
	require.True(t, refs.Contains(condAttr.ID()))
	require.True(t, refs.Contains(trueAttr.ID()))
	require.True(t, refs.Contains(falseAttr.ID()))
}

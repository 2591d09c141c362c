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

func TestAggregateExpressionDelegatesTypeToFunc(t *testing.T) {
	col := NewAttributeReference("i", sql.Int32, false, sql.NewColumnID(), "t")
	agg := NewAggregateExpression("count", col, false)
	require.True(t, agg.Resolved())
	require.Equal(t, sql.Int32, agg.Type())
	require.True(t, agg.Nullable())
	require.False(t, agg.Distinct)

	distinct := NewAggregateExpression("count", col, true)
	require.True(t, distinct.Distinct)
}

func TestAggregateExpressionToAttributeCarriesName(t *testing.T) {
	col := NewAttributeReference("i", sql.Int32, false, sql.NewColumnID(), "t")
	agg := NewAggregateExpression("sum", col, false)
	attr := agg.ToAttribute()
	require.Equal(t, "sum", attr.Name())
	require.Equal(t, agg.ID(), attr.ID())
	require.Equal(t, "", attr.Qualifier())
}

func TestAggregateExpressionWithChildrenPreservesIdentity(t *testing.T) {
	col := NewAttributeReference("i", sql.Int32, false, sql.NewColumnID(), "t")
	agg := NewAggregateExpression("sum", col, true)
	newCol := NewAttributeReference("j", sql.Int32, false, sql.NewColumnID(), "t")
	replaced, err := agg.WithChildren(newCol)
	require.NoError(t, err)
	r := replaced.(*AggregateExpression)
	require.Equal(t, agg.ID(), r.ID(), "replacing the child keeps the same aggregate ID")
	require.Same(t, sql.Expression(newCol), r.Child)
	require.True(t, r.Distinct)
}

func TestAggregateExpressionWithChildrenRejectsWrongArity(t *testing.T) {
	col := NewAttributeReference("i", sql.Int32, false, sql.NewColumnID(), "t")
	agg := NewAggregateExpression("sum", col, false)
	_, err := agg.WithChildren()
	require.Error(t, err)
}

func TestGroupingIsAnAggregateMarkerOverInt32(t *testing.T) {
	col := NewAttributeReference("i", sql.Int32, false, sql.NewColumnID(), "t")
	g := NewGrouping(col)
	require.Equal(t, sql.Int32, g.Type())
	require.False(t, g.Nullable())
}

func TestGroupingIDCoversAllArgs(t *testing.T) {
	a := NewAttributeReference("a", sql.Int32, false, sql.NewColumnID(), "t")
	b := NewAttributeReference("b", sql.Int32, false, sql.NewColumnID(), "t")
	g := NewGroupingID(a, b)
	require.Equal(t, sql.Int64, g.Type())
	require.Len(t, g.Children(), 2)

	c := NewAttributeReference("c", sql.Int32, false, sql.NewColumnID(), "t")
	replaced, err := g.WithChildren(a, b, c)
	require.NoError(t, err)
	require.Len(t, replaced.(*GroupingID).Args, 3)
}

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
	"time"

	"github.com/stretchr/testify/require"

	"github.com/quilldb/quill/sql"
	"github.com/quilldb/quill/sql/expression"
	"github.com/quilldb/quill/sql/plan"
	"github.com/quilldb/quill/sql/transform"
)

func TestResolveTimeWindowsBuildsExpandAndFilter(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	timeCol := attr("ts", "events")
	tw := expression.NewTimeWindow(timeCol, "10 minutes", "5 minutes", "")
	table := plan.NewResolvedTable("db", "events", sql.Schema{{Name: "ts", Type: sql.Timestamp}})
	tree := plan.NewProject([]sql.Expression{tw}, table)

	out, identity, err := resolveTimeWindows(ctx, a, tree, nil, AllRules)
	require.NoError(t, err)
	require.Equal(t, transform.NewTree, identity)

	proj := out.(*plan.Project)
	windowAttr, ok := proj.Projections[0].(sql.Attribute)
	require.True(t, ok, "the TimeWindow call is substituted by the generated window attribute")

	filter, ok := proj.Child.(*plan.Filter)
	require.True(t, ok)
	and, ok := filter.Condition.(*expression.And)
	require.True(t, ok)
	ge, ok := and.Left.(*expression.GreaterThanOrEqual)
	require.True(t, ok)
	require.Same(t, sql.Expression(timeCol), ge.Left)
	lt, ok := and.Right.(*expression.LessThan)
	require.True(t, ok)
	require.Same(t, sql.Expression(timeCol), lt.Left)

	expand, ok := filter.Child.(*plan.Expand)
	require.True(t, ok)
	// windowDuration/slideDuration = 10m/5m => 2 overlapping buckets => 3 projections (i in [0,2]).
	require.Len(t, expand.Projections, 3)
	for _, row := range expand.Projections {
		require.Len(t, row, 2, "window struct column plus the original ts column")
		_, ok := row[0].(*expression.CreateStruct)
		require.True(t, ok)
	}
	require.Len(t, expand.Output(), 2)
	require.Equal(t, windowAttr.ID(), expand.Output()[0].ID())
}

func TestResolveTimeWindowsTumblingDefaultsSlideToWindowDuration(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	timeCol := attr("ts", "events")
	tw := expression.NewTimeWindow(timeCol, "10 minutes", "", "")
	table := plan.NewResolvedTable("db", "events", sql.Schema{{Name: "ts", Type: sql.Timestamp}})
	tree := plan.NewFilter(tw, table)

	out, identity, err := resolveTimeWindows(ctx, a, tree, nil, AllRules)
	require.NoError(t, err)
	require.Equal(t, transform.NewTree, identity)

	f := out.(*plan.Filter)
	expand := f.Child.(*plan.Expand)
	// maxNumOverlapping = ceil(10m/10m) = 1, i ranges over [0, 1] inclusive.
	require.Len(t, expand.Projections, 2)
}

func TestResolveTimeWindowsRejectsMismatchedParams(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	timeCol := attr("ts", "events")
	tw1 := expression.NewTimeWindow(timeCol, "10 minutes", "", "")
	tw2 := expression.NewTimeWindow(timeCol, "5 minutes", "", "")
	table := plan.NewResolvedTable("db", "events", sql.Schema{{Name: "ts", Type: sql.Timestamp}})
	tree := plan.NewProject([]sql.Expression{tw1, tw2}, table)

	_, _, err := resolveTimeWindows(ctx, a, tree, nil, AllRules)
	require.Error(t, err)
	require.True(t, sql.ErrMultipleTimeWindows.Is(err))
}

func TestResolveTimeWindowsWaitsForUnresolvedChild(t *testing.T) {
	ctx := sql.NewEmptyContext()
	a := New(sql.NewCatalog(stubCatalog{}))

	tw := expression.NewTimeWindow(expression.NewUnresolvedColumn("ts"), "10 minutes", "", "")
	table := plan.NewResolvedTable("db", "events", sql.Schema{{Name: "ts", Type: sql.Timestamp}})
	tree := plan.NewFilter(tw, table)

	out, identity, err := resolveTimeWindows(ctx, a, tree, nil, AllRules)
	require.NoError(t, err)
	require.Equal(t, transform.SameTree, identity)
	require.Same(t, tree, out)
}

func TestParseWindowDurationSupportsWordyAndGoSyntax(t *testing.T) {
	d, err := parseWindowDuration("10 minutes")
	require.NoError(t, err)
	require.Equal(t, 10*time.Minute, d)

	d, err = parseWindowDuration("1 hour")
	require.NoError(t, err)
	require.Equal(t, time.Hour, d)

	d, err = parseWindowDuration("90s")
	require.NoError(t, err)
	require.Equal(t, 90*time.Second, d)

	d, err = parseWindowDuration("")
	require.NoError(t, err)
	require.Equal(t, time.Duration(0), d)

	_, err = parseWindowDuration("garbage")
	require.Error(t, err)
}

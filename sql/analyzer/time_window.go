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
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/quilldb/quill/sql"
	"github.com/quilldb/quill/sql/expression"
	"github.com/quilldb/quill/sql/plan"
	"github.com/quilldb/quill/sql/transform"
)

// windowStructType is the (window_start, window_end) struct every
// TimeWindow call collapses to.
var windowStructType = sql.StructType{Fields: []sql.StructField{
	{Name: expression.WindowStartField, Type: sql.Timestamp},
	{Name: expression.WindowEndField, Type: sql.Timestamp},
}}

// resolveTimeWindows desugars `window(timeCol, windowDuration, ...)` calls
// into Filter(timeCol >= window.start AND timeCol < window.end, Expand(...)):
// for a sliding window, a single input row can belong to more than one
// bucket, so Expand replicates the row once per overlapping bucket
// (maxNumOverlapping = ceil(windowDuration / slideDuration)) and the Filter
// keeps only the replicas whose bucket the row's time column actually
// falls in. Every occurrence of the TimeWindow call in the parent node is
// substituted by the generated window struct column. Two occurrences with
// differing parameters in the same node's expressions is
// ErrMultipleTimeWindows -- a single operator can only bucket by one time
// window.
func resolveTimeWindows(ctx *sql.Context, a *Analyzer, n sql.Node, scope *plan.Scope, sel RuleSelector) (sql.Node, transform.TreeIdentity, error) {
	return transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		exprNode, ok := node.(sql.Expressioner)
		if !ok {
			return node, transform.SameTree, nil
		}

		var calls []*expression.TimeWindow
		for _, e := range exprNode.Expressions() {
			transform.InspectExpr(e, func(inner sql.Expression) bool {
				if tw, ok := inner.(*expression.TimeWindow); ok {
					calls = append(calls, tw)
				}
				return true
			})
		}
		if len(calls) == 0 {
			return node, transform.SameTree, nil
		}
		for _, tw := range calls {
			if !tw.Child.Resolved() {
				return node, transform.SameTree, nil
			}
		}
		for _, tw := range calls[1:] {
			if !tw.SameParams(calls[0]) {
				return nil, transform.SameTree, sql.ErrMultipleTimeWindows.New(len(calls))
			}
		}

		children := node.Children()
		if len(children) != 1 {
			return node, transform.SameTree, nil
		}
		child := children[0]

		tw := calls[0]
		windowDuration, err := parseWindowDuration(tw.WindowDuration)
		if err != nil {
			return nil, transform.SameTree, err
		}
		slideDuration := windowDuration
		if tw.SlideDuration != "" {
			if slideDuration, err = parseWindowDuration(tw.SlideDuration); err != nil {
				return nil, transform.SameTree, err
			}
		}
		var startTime time.Duration
		if tw.StartTime != "" {
			if startTime, err = parseWindowDuration(tw.StartTime); err != nil {
				return nil, transform.SameTree, err
			}
		}

		maxNumOverlapping := int(math.Ceil(float64(windowDuration) / float64(slideDuration)))

		windowAttr := expression.NewAttribute("__time_window", windowStructType, false, "")
		childOutput := child.Output()

		projections := make([][]sql.Expression, maxNumOverlapping+1)
		for i := 0; i <= maxNumOverlapping; i++ {
			start, end := windowBoundsExpr(tw.Child, windowDuration, slideDuration, startTime, i, maxNumOverlapping)
			winStruct := expression.NewCreateStruct(
				[]string{expression.WindowStartField, expression.WindowEndField},
				[]sql.Expression{start, end},
			)
			row := make([]sql.Expression, 0, len(childOutput)+1)
			row = append(row, winStruct)
			row = append(row, attrsToExprs(childOutput)...)
			projections[i] = row
		}

		expandOutput := make([]sql.Attribute, 0, len(childOutput)+1)
		expandOutput = append(expandOutput, windowAttr)
		expandOutput = append(expandOutput, childOutput...)
		expand := plan.NewExpand(projections, expandOutput, child)

		windowStartRef := expression.NewGetStructField(windowAttr, expression.WindowStartField, 0, sql.Timestamp)
		windowEndRef := expression.NewGetStructField(windowAttr, expression.WindowEndField, 1, sql.Timestamp)
		cond := expression.NewAnd(
			expression.NewGreaterThanOrEqual(tw.Child, windowStartRef),
			expression.NewLessThan(tw.Child, windowEndRef),
		)
		filtered := plan.NewFilter(cond, expand)

		newExprs := make([]sql.Expression, len(exprNode.Expressions()))
		for i, e := range exprNode.Expressions() {
			rewritten, _, err := transform.Expr(e, func(inner sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
				if _, ok := inner.(*expression.TimeWindow); ok {
					return windowAttr, transform.NewTree, nil
				}
				return inner, transform.SameTree, nil
			})
			if err != nil {
				return nil, transform.SameTree, err
			}
			newExprs[i] = rewritten
		}

		rebuilt, err := exprNode.WithExpressions(newExprs...)
		if err != nil {
			return nil, transform.SameTree, err
		}
		withChild, err := rebuilt.WithChildren(filtered)
		if err != nil {
			return nil, transform.SameTree, err
		}
		return withChild, transform.NewTree, nil
	})
}

// windowBoundsExpr builds the i-th overlapping bucket's (start, end) as
// plain function calls over millisecond-epoch arithmetic, matching this
// analyzer's policy of expressing arithmetic as ordinary function calls
// rather than inventing dedicated expression node types:
//
//	windowStart = (ceil((ts - startTime) / slideDuration) + i - maxNumOverlapping) * slideDuration + startTime
//	windowEnd   = windowStart + windowDuration
func windowBoundsExpr(ts sql.Expression, windowDuration, slideDuration, startTime time.Duration, i, maxNumOverlapping int) (start, end sql.Expression) {
	millis := func(d time.Duration) sql.Expression { return expression.NewLiteral(int64(d/time.Millisecond), sql.Int64) }
	fn := func(name string, args ...sql.Expression) sql.Expression {
		return expression.NewUnresolvedFunction(name, false, nil, args...)
	}

	tsMillis := fn("unix_millis", ts)
	sinceStart := fn("-", tsMillis, millis(startTime))
	numSlides := fn("ceil", fn("/", sinceStart, millis(slideDuration)))
	bucketOffset := fn("+", fn("-", numSlides, expression.NewLiteral(int64(maxNumOverlapping), sql.Int64)), expression.NewLiteral(int64(i), sql.Int64))
	startMillis := fn("+", fn("*", bucketOffset, millis(slideDuration)), millis(startTime))
	endMillis := fn("+", startMillis, millis(windowDuration))

	return fn("from_unix_millis", startMillis), fn("from_unix_millis", endMillis)
}

// parseWindowDuration parses a duration string of the form "<n> <unit>"
// (unit one of millisecond(s)/second(s)/minute(s)/hour(s)/day(s)/week(s)),
// falling back to Go's own duration syntax ("10m", "1h30m") for a bare
// single-token value.
func parseWindowDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	fields := strings.Fields(s)
	if len(fields) == 1 {
		d, err := time.ParseDuration(fields[0])
		if err != nil {
			return 0, sql.ErrInvalidWindowDuration.New(s)
		}
		return d, nil
	}
	if len(fields) != 2 {
		return 0, sql.ErrInvalidWindowDuration.New(s)
	}

	n, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, sql.ErrInvalidWindowDuration.New(s)
	}

	var unit time.Duration
	switch strings.ToLower(strings.TrimSuffix(fields[1], "s")) {
	case "millisecond":
		unit = time.Millisecond
	case "second":
		unit = time.Second
	case "minute":
		unit = time.Minute
	case "hour":
		unit = time.Hour
	case "day":
		unit = 24 * time.Hour
	case "week":
		unit = 7 * 24 * time.Hour
	default:
		return 0, sql.ErrInvalidWindowDuration.New(s)
	}

	return time.Duration(n * float64(unit)), nil
}

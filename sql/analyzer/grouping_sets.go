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
	"github.com/quilldb/quill/sql"
	"github.com/quilldb/quill/sql/expression"
	"github.com/quilldb/quill/sql/plan"
	"github.com/quilldb/quill/sql/transform"
)

// resolveGroupingAnalytics desugars `GROUP BY GROUPING SETS(...)/CUBE(...)/
// ROLLUP(...)` into an Expand beneath a plain Aggregate. Expand
// replicates the child once per grouping set, nulling out the columns that
// set excludes and filling a synthetic "__grouping_id" bitmap column (bit i
// set means base grouping column i was excluded, i.e. aggregated over).
// Grouping(col)/GroupingID(...) calls in the select list are rewritten
// against that synthetic column.
func resolveGroupingAnalytics(ctx *sql.Context, a *Analyzer, n sql.Node, scope *plan.Scope, sel RuleSelector) (sql.Node, transform.TreeIdentity, error) {
	return transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		agg, ok := node.(*plan.Aggregate)
		if !ok {
			return node, transform.SameTree, nil
		}
		gs, ok := agg.Child.(*plan.GroupingSets)
		if !ok {
			return node, transform.SameTree, nil
		}
		if !gs.Child.Resolved() {
			return node, transform.SameTree, nil
		}
		for _, set := range gs.Sets {
			if !sql.ExpressionsResolved(set...) {
				return node, transform.SameTree, nil
			}
		}

		base := uniqueGroupColumns(gs.Sets)
		sets := materializeSets(gs.Kind, base, gs.Sets)

		childOutput := gs.Child.Output()
		groupingIDAttr := expression.NewAttribute("__grouping_id", sql.Int64, false, "")

		projections := make([][]sql.Expression, len(sets))
		for si, set := range sets {
			memberOf := sql.AttributeSet{}
			for _, e := range set {
				memberOf = memberOf.Union(e.References())
			}
			row := make([]sql.Expression, 0, len(childOutput)+1)
			var bitmask int64
			for bi, battr := range base {
				attrID := attrIDOf(battr)
				if memberOf.Contains(attrID) {
					row = append(row, battr)
				} else {
					row = append(row, expression.NewLiteral(nil, battr.Type()))
					bitmask |= 1 << uint(bi)
				}
			}
			for _, attr := range childOutput {
				if isAmong(base, attr) {
					continue
				}
				row = append(row, attr)
			}
			row = append(row, expression.NewLiteral(bitmask, sql.Int64))
			projections[si] = row
		}

		expandOutput := make([]sql.Attribute, 0, len(base)+len(childOutput)+1)
		expandOutput = append(expandOutput, base...)
		for _, attr := range childOutput {
			if !isAmong(base, attr) {
				expandOutput = append(expandOutput, attr)
			}
		}
		expandOutput = append(expandOutput, groupingIDAttr)
		expand := plan.NewExpand(projections, expandOutput, gs.Child)

		newGrouping := make([]sql.Expression, 0, len(base)+1)
		for _, b := range base {
			newGrouping = append(newGrouping, b)
		}
		newGrouping = append(newGrouping, groupingIDAttr)

		newAggExprs, err := bindGroupingMarkers(agg.AggregateExpressions, base, groupingIDAttr)
		if err != nil {
			return nil, transform.SameTree, err
		}

		return plan.NewAggregate(newGrouping, newAggExprs, expand), transform.NewTree, nil
	})
}

// uniqueGroupColumns flattens every set's columns into one de-duplicated,
// first-seen-order base grouping column list.
func uniqueGroupColumns(sets [][]sql.Expression) []sql.Attribute {
	seen := sql.AttributeSet{}
	var out []sql.Attribute
	for _, set := range sets {
		for _, e := range set {
			attr, ok := e.(sql.Attribute)
			if !ok {
				continue
			}
			if seen.Contains(attr.ID()) {
				continue
			}
			seen = seen.Add(attr.ID())
			out = append(out, attr)
		}
	}
	return out
}

// materializeSets expands Kind/Sets into the concrete list of grouping
// sets Expand must build one replica per: the explicit list for
// GroupingSetsKind, every subset of base for CubeKind, and every prefix of
// base (including empty) for RollupKind.
func materializeSets(kind plan.GroupingSetKind, base []sql.Attribute, explicit [][]sql.Expression) [][]sql.Expression {
	switch kind {
	case plan.CubeKind:
		n := len(base)
		out := make([][]sql.Expression, 0, 1<<uint(n))
		for mask := 0; mask < (1 << uint(n)); mask++ {
			var set []sql.Expression
			for i, b := range base {
				if mask&(1<<uint(i)) != 0 {
					set = append(set, b)
				}
			}
			out = append(out, set)
		}
		return out
	case plan.RollupKind:
		out := make([][]sql.Expression, 0, len(base)+1)
		for i := 0; i <= len(base); i++ {
			var set []sql.Expression
			for _, b := range base[:i] {
				set = append(set, b)
			}
			out = append(out, set)
		}
		return out
	default: // GroupingSetsKind
		return explicit
	}
}

func isAmong(attrs []sql.Attribute, attr sql.Attribute) bool {
	for _, a := range attrs {
		if a.ID() == attr.ID() {
			return true
		}
	}
	return false
}

func attrIDOf(a sql.Attribute) sql.ColumnID { return a.ID() }

// bindGroupingMarkers rewrites every Grouping(col)/GroupingID(...) call in
// exprs into a bit-test/whole-bitmap reference against groupingIDAttr.
// Grouping(col) asks "was col aggregated over in this replica", i.e. bit
// (index of col in base) of the bitmap; GroupingID(args...) is the whole
// bitmap, args order must match base's (Spark requires this; we don't
// re-validate the order here).
func bindGroupingMarkers(exprs []sql.Expression, base []sql.Attribute, groupingIDAttr sql.Attribute) ([]sql.Expression, error) {
	out := make([]sql.Expression, len(exprs))
	for i, e := range exprs {
		rewritten, _, err := transform.Expr(e, func(inner sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
			switch g := inner.(type) {
			case *expression.Grouping:
				attr, ok := g.Child.(sql.Attribute)
				if !ok {
					return inner, transform.SameTree, nil
				}
				idx := indexOfAttrID(base, attr.ID())
				if idx < 0 {
					return nil, transform.SameTree, sql.ErrGroupingWithoutGrouping.New()
				}
				return bitTest(groupingIDAttr, idx), transform.NewTree, nil
			case *expression.GroupingID:
				return groupingIDAttr, transform.NewTree, nil
			default:
				return inner, transform.SameTree, nil
			}
		})
		if err != nil {
			return nil, err
		}
		out[i] = rewritten
	}
	return out, nil
}

func indexOfAttrID(base []sql.Attribute, id sql.ColumnID) int {
	for i, b := range base {
		if b.ID() == id {
			return i
		}
	}
	return -1
}

// bitTest builds (groupingIDAttr >> idx) & 1 as a plain UnresolvedFunction
// call against the catalog's bit-shift/bit-and functions, matching this
// analyzer's policy of expressing everything as ordinary function calls
// rather than inventing dedicated expression node types.
func bitTest(groupingIDAttr sql.Attribute, idx int) sql.Expression {
	shifted := expression.NewUnresolvedFunction("shiftright", false, nil, groupingIDAttr, expression.NewLiteral(int64(idx), sql.Int64))
	return expression.NewUnresolvedFunction("bitand", false, nil, shifted, expression.NewLiteral(int64(1), sql.Int64))
}

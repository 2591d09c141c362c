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

// resolveOrdinals substitutes a bare positional integer literal in ORDER BY
// or GROUP BY for the corresponding select-list expression, gated by
// config.OrderByOrdinal/GroupByOrdinal. A position outside the
// select list raises ErrInvalidOrdinal; a GROUP BY position naming an
// expression that itself contains an aggregate call raises
// ErrOrdinalOnAggregate, since grouping by a computed aggregate is
// nonsensical.
func resolveOrdinals(ctx *sql.Context, a *Analyzer, n sql.Node, scope *plan.Scope, sel RuleSelector) (sql.Node, transform.TreeIdentity, error) {
	return transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		switch node := node.(type) {
		case *plan.Sort:
			return resolveSortOrdinals(a, node)
		case *plan.Aggregate:
			return resolveGroupOrdinals(a, node)
		default:
			return node, transform.SameTree, nil
		}
	})
}

func resolveSortOrdinals(a *Analyzer, node *plan.Sort) (sql.Node, transform.TreeIdentity, error) {
	if !a.Config.OrderByOrdinal {
		return node, transform.SameTree, nil
	}
	selectList, ok := selectListOf(node.Child)
	if !ok {
		return node, transform.SameTree, nil
	}

	changed := false
	fields := make([]expression.SortOrder, len(node.SortFields))
	for i, f := range node.SortFields {
		ord, isOrdinal := ordinalOf(f.Child)
		if !isOrdinal {
			fields[i] = f
			continue
		}
		if ord < 1 || ord > len(selectList) {
			return nil, transform.SameTree, sql.ErrInvalidOrdinal.New(ord, len(selectList))
		}
		changed = true
		fields[i] = expression.NewSortOrder(selectList[ord-1], f.Direction, f.NullsFirst)
	}
	if !changed {
		return node, transform.SameTree, nil
	}
	return plan.NewSort(fields, node.Child), transform.NewTree, nil
}

func resolveGroupOrdinals(a *Analyzer, node *plan.Aggregate) (sql.Node, transform.TreeIdentity, error) {
	if !a.Config.GroupByOrdinal {
		return node, transform.SameTree, nil
	}

	changed := false
	grouping := make([]sql.Expression, len(node.GroupingExpressions))
	for i, g := range node.GroupingExpressions {
		ord, isOrdinal := ordinalOf(g)
		if !isOrdinal {
			grouping[i] = g
			continue
		}
		if ord < 1 || ord > len(node.AggregateExpressions) {
			return nil, transform.SameTree, sql.ErrInvalidOrdinal.New(ord, len(node.AggregateExpressions))
		}
		target := node.AggregateExpressions[ord-1]
		if containsAggregateCall(target) {
			return nil, transform.SameTree, sql.ErrOrdinalOnAggregate.New(ord)
		}
		changed = true
		grouping[i] = target
	}
	if !changed {
		return node, transform.SameTree, nil
	}
	return plan.NewAggregate(grouping, node.AggregateExpressions, node.Child), transform.NewTree, nil
}

// selectListOf returns the select-list expressions an ordinal reference
// against child resolves against: a Project's projections, or an
// Aggregate's output expressions.
func selectListOf(child sql.Node) ([]sql.Expression, bool) {
	switch c := child.(type) {
	case *plan.Project:
		return c.Projections, true
	case *plan.Aggregate:
		return c.AggregateExpressions, true
	default:
		return nil, false
	}
}

// ordinalOf reports whether e is a bare positive integer literal naming a
// 1-based select-list position.
func ordinalOf(e sql.Expression) (int, bool) {
	lit, ok := e.(*expression.Literal)
	if !ok {
		return 0, false
	}
	switch v := lit.Value.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	default:
		return 0, false
	}
}

func containsAggregateCall(e sql.Expression) bool {
	found := false
	transform.InspectExpr(e, func(e sql.Expression) bool {
		if _, ok := e.(sql.AggregateFunction); ok {
			found = true
			return false
		}
		return true
	})
	return found
}

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
	"fmt"

	"github.com/quilldb/quill/sql"
)

// AggregateExpression wraps a bound aggregate function (COUNT, SUM, ...)
// with the bookkeeping ResolveAggregateFunctions needs: whether
// DISTINCT applies and its mode, always Complete for this analyzer since
// partial/merge aggregation is a physical-execution concern.
type AggregateExpression struct {
	unary
	name     string
	id       sql.ColumnID
	Distinct bool
}

func NewAggregateExpression(name string, fn sql.Expression, distinct bool) *AggregateExpression {
	return &AggregateExpression{unary: unary{Child: fn}, name: name, id: sql.NewColumnID(), Distinct: distinct}
}

func (a *AggregateExpression) AggregateFunction() {}

func (a *AggregateExpression) Type() sql.Type   { return a.Child.Type() }
func (a *AggregateExpression) Nullable() bool   { return true }
func (a *AggregateExpression) Name() string     { return a.name }
func (a *AggregateExpression) ID() sql.ColumnID { return a.id }
func (a *AggregateExpression) Qualifier() string { return "" }

func (a *AggregateExpression) ToAttribute() sql.Attribute {
	return NewAttributeReference(a.name, a.Type(), true, a.id, "")
}

func (a *AggregateExpression) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, ErrInvalidChildCount.New("AggregateExpression", 1, len(children))
	}
	cp := *a
	cp.Child = children[0]
	return &cp, nil
}

func (a *AggregateExpression) String() string {
	if a.Distinct {
		return fmt.Sprintf("%s(DISTINCT %s)", a.name, a.Child)
	}
	return fmt.Sprintf("%s(%s)", a.name, a.Child)
}

// Grouping is the GROUPING(expr) marker function, resolved by
// ResolveGroupingAnalytics against the synthetic grouping-ID
// attribute a Cube/Rollup/GroupingSets desugar introduces.
type Grouping struct {
	unary
}

func NewGrouping(child sql.Expression) *Grouping { return &Grouping{unary{Child: child}} }

func (g *Grouping) AggregateFunction() {}
func (g *Grouping) Type() sql.Type     { return sql.Int32 }
func (g *Grouping) Nullable() bool     { return false }
func (g *Grouping) String() string     { return fmt.Sprintf("grouping(%s)", g.Child) }
func (g *Grouping) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, ErrInvalidChildCount.New("Grouping", 1, len(children))
	}
	return NewGrouping(children[0]), nil
}

// GroupingID is the GROUPING_ID(expr...) marker function, same desugar
// target as Grouping but over the whole grouping-set bitmap at once.
type GroupingID struct {
	nary
}

func NewGroupingID(args ...sql.Expression) *GroupingID { return &GroupingID{nary{Args: args}} }

func (g *GroupingID) AggregateFunction() {}
func (g *GroupingID) Type() sql.Type     { return sql.Int64 }
func (g *GroupingID) Nullable() bool     { return false }
func (g *GroupingID) String() string {
	return fmt.Sprintf("grouping_id(%s)", exprList(g.Args))
}
func (g *GroupingID) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	return NewGroupingID(children...), nil
}

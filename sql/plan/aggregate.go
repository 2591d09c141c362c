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

package plan

import (
	"fmt"
	"strings"

	"github.com/quilldb/quill/sql"
)

// Aggregate is GROUP BY's operator: GroupingExpressions partition rows,
// AggregateExpressions (a superset of GroupingExpressions plus any
// AggregateFunction calls) compute the output columns.
type Aggregate struct {
	UnaryNode
	GroupingExpressions  []sql.Expression
	AggregateExpressions []sql.Expression
}

func NewAggregate(grouping, aggregates []sql.Expression, child sql.Node) *Aggregate {
	return &Aggregate{UnaryNode: UnaryNode{Child: child}, GroupingExpressions: grouping, AggregateExpressions: aggregates}
}

func (a *Aggregate) Output() []sql.Attribute { return schemaFromNamed(a.AggregateExpressions) }

func (a *Aggregate) Resolved() bool {
	return a.Child.Resolved() &&
		expressionsResolved(a.GroupingExpressions) &&
		expressionsResolved(a.AggregateExpressions)
}

// Expressions returns the grouping expressions followed by the aggregate
// expressions; WithExpressions splits them back on the same boundary.
func (a *Aggregate) Expressions() []sql.Expression {
	out := make([]sql.Expression, 0, len(a.GroupingExpressions)+len(a.AggregateExpressions))
	out = append(out, a.GroupingExpressions...)
	out = append(out, a.AggregateExpressions...)
	return out
}

func (a *Aggregate) WithExpressions(e ...sql.Expression) (sql.Node, error) {
	want := len(a.GroupingExpressions) + len(a.AggregateExpressions)
	if len(e) != want {
		return nil, ErrInvalidChildCount.New("Aggregate.expressions", want, len(e))
	}
	n := len(a.GroupingExpressions)
	return NewAggregate(e[:n], e[n:], a.Child), nil
}

func (a *Aggregate) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, ErrInvalidChildCount.New("Aggregate", 1, len(children))
	}
	return NewAggregate(a.GroupingExpressions, a.AggregateExpressions, children[0]), nil
}

func (a *Aggregate) String() string {
	g := make([]string, len(a.GroupingExpressions))
	for i, e := range a.GroupingExpressions {
		g[i] = e.String()
	}
	agg := make([]string, len(a.AggregateExpressions))
	for i, e := range a.AggregateExpressions {
		agg[i] = e.String()
	}
	return fmt.Sprintf("Aggregate(group=[%s], select=[%s])\n  %s",
		strings.Join(g, ", "), strings.Join(agg, ", "), a.Child)
}

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

	"github.com/quilldb/quill/sql"
)

// Pivot is the unresolved surface form of PIVOT: group by everything
// except PivotColumn and Aggregates, turn each PivotValues entry into
// its own output column computed with an If-guarded aggregate. ResolvePivot rewrites this into a plain Aggregate.
type Pivot struct {
	UnaryNode
	PivotColumn sql.Expression
	PivotValues []sql.Expression
	Aggregates  []sql.Expression
}

func NewPivot(pivotColumn sql.Expression, pivotValues, aggregates []sql.Expression, child sql.Node) *Pivot {
	return &Pivot{UnaryNode: UnaryNode{Child: child}, PivotColumn: pivotColumn, PivotValues: pivotValues, Aggregates: aggregates}
}

func (p *Pivot) Output() []sql.Attribute { return p.Child.Output() }

// Resolved is always false: ResolvePivot must replace this node with an
// Aggregate.
func (p *Pivot) Resolved() bool { return false }

func (p *Pivot) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, ErrInvalidChildCount.New("Pivot", 1, len(children))
	}
	return NewPivot(p.PivotColumn, p.PivotValues, p.Aggregates, children[0]), nil
}

func (p *Pivot) String() string {
	return fmt.Sprintf("Pivot(%s, %d values)\n  %s", p.PivotColumn, len(p.PivotValues), p.Child)
}

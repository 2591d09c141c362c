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

// Expand replicates its child's rows once per projection list in
// Projections, nulling out the grouping columns a given replica doesn't
// belong to and filling the synthetic grouping-ID column: the
// resolved form every GroupingSets/Cube/Rollup desugars to.
type Expand struct {
	UnaryNode
	Projections [][]sql.Expression
	output      []sql.Attribute
}

func NewExpand(projections [][]sql.Expression, output []sql.Attribute, child sql.Node) *Expand {
	return &Expand{UnaryNode: UnaryNode{Child: child}, Projections: projections, output: output}
}

func (e *Expand) Output() []sql.Attribute { return e.output }

func (e *Expand) Resolved() bool {
	if !e.Child.Resolved() {
		return false
	}
	for _, p := range e.Projections {
		if !expressionsResolved(p) {
			return false
		}
	}
	return true
}

func (e *Expand) Expressions() []sql.Expression {
	var out []sql.Expression
	for _, p := range e.Projections {
		out = append(out, p...)
	}
	return out
}

func (e *Expand) WithExpressions(flat ...sql.Expression) (sql.Node, error) {
	want := len(e.Expressions())
	if len(flat) != want {
		return nil, ErrInvalidChildCount.New("Expand.expressions", want, len(flat))
	}
	projections := make([][]sql.Expression, len(e.Projections))
	i := 0
	for pi, p := range e.Projections {
		projections[pi] = flat[i : i+len(p)]
		i += len(p)
	}
	return NewExpand(projections, e.output, e.Child), nil
}

func (e *Expand) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, ErrInvalidChildCount.New("Expand", 1, len(children))
	}
	return NewExpand(e.Projections, e.output, children[0]), nil
}

func (e *Expand) String() string {
	return fmt.Sprintf("Expand(%d projections)\n  %s", len(e.Projections), e.Child)
}

// GroupingSetKind distinguishes the three grouping-analytics surface
// forms ResolveGroupingAnalytics desugars to Expand.
type GroupingSetKind int

const (
	GroupingSetsKind GroupingSetKind = iota
	CubeKind
	RollupKind
)

// GroupingSets is the unresolved surface form of GROUP BY GROUPING
// SETS / CUBE / ROLLUP, carried as a child of Aggregate until
// ResolveGroupingAnalytics rewrites it into an Expand beneath a plain
// Aggregate.
type GroupingSets struct {
	UnaryNode
	Kind     GroupingSetKind
	Sets     [][]sql.Expression // explicit sets for GroupingSetsKind; base grouping columns for Cube/Rollup
}

func NewGroupingSets(kind GroupingSetKind, sets [][]sql.Expression, child sql.Node) *GroupingSets {
	return &GroupingSets{UnaryNode: UnaryNode{Child: child}, Kind: kind, Sets: sets}
}

func (g *GroupingSets) Output() []sql.Attribute { return g.Child.Output() }

// Resolved is always false: ResolveGroupingAnalytics must replace this
// node with an Aggregate over an Expand before the plan is resolved.
func (g *GroupingSets) Resolved() bool { return false }

func (g *GroupingSets) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, ErrInvalidChildCount.New("GroupingSets", 1, len(children))
	}
	return NewGroupingSets(g.Kind, g.Sets, children[0]), nil
}

func (g *GroupingSets) String() string {
	names := []string{"GROUPING SETS", "CUBE", "ROLLUP"}
	return fmt.Sprintf("%s(%d sets)\n  %s", names[g.Kind], len(g.Sets), g.Child)
}

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
	"github.com/quilldb/quill/sql/expression"
)

// Window computes one or more WindowExpressions sharing a
// (partitionSpec, orderSpec) key, appending them to the child's output.
// ExtractWindowExpressions groups window calls found anywhere in a query
// into one Window node per distinct key, stacked bottom-up under the
// original projection.
type Window struct {
	UnaryNode
	WindowExpressions []sql.Expression
}

func NewWindow(windowExprs []sql.Expression, child sql.Node) *Window {
	return &Window{UnaryNode: UnaryNode{Child: child}, WindowExpressions: windowExprs}
}

func (w *Window) Output() []sql.Attribute {
	return append(append([]sql.Attribute{}, w.Child.Output()...), schemaFromNamed(w.WindowExpressions)...)
}

func (w *Window) Resolved() bool {
	return w.Child.Resolved() && expressionsResolved(w.WindowExpressions)
}

func (w *Window) Expressions() []sql.Expression { return w.WindowExpressions }

func (w *Window) WithExpressions(e ...sql.Expression) (sql.Node, error) {
	if len(e) != len(w.WindowExpressions) {
		return nil, ErrInvalidChildCount.New("Window.expressions", len(w.WindowExpressions), len(e))
	}
	return NewWindow(e, w.Child), nil
}

func (w *Window) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, ErrInvalidChildCount.New("Window", 1, len(children))
	}
	return NewWindow(w.WindowExpressions, children[0]), nil
}

func (w *Window) String() string {
	parts := make([]string, len(w.WindowExpressions))
	for i, e := range w.WindowExpressions {
		parts[i] = e.String()
	}
	return fmt.Sprintf("Window(%s)\n  %s", strings.Join(parts, ", "), w.Child)
}

// WithWindowDefinition carries the WITH WINDOW named-window-spec clause
// down to InlineWindowDefinitions, which substitutes each
// UnresolvedWindowExpression's WindowDefName and strips this node.
type WithWindowDefinition struct {
	UnaryNode
	WindowDefs map[string]*WindowSpecRef
}

// WindowSpecRef is a named window definition's raw spec pieces, kept
// separate from expression.WindowSpec since it must survive
// resolve_columns over its pieces before being attached to any
// WindowExpression.
type WindowSpecRef struct {
	PartitionSpec []sql.Expression
	OrderSpec     []expression.SortOrder
}

func NewWithWindowDefinition(defs map[string]*WindowSpecRef, child sql.Node) *WithWindowDefinition {
	return &WithWindowDefinition{UnaryNode: UnaryNode{Child: child}, WindowDefs: defs}
}

func (w *WithWindowDefinition) Output() []sql.Attribute { return w.Child.Output() }

// Resolved is always false for an un-substituted WithWindowDefinition:
// InlineWindowDefinitions must remove this node before the plan can be
// considered resolved.
func (w *WithWindowDefinition) Resolved() bool { return false }

func (w *WithWindowDefinition) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, ErrInvalidChildCount.New("WithWindowDefinition", 1, len(children))
	}
	return NewWithWindowDefinition(w.WindowDefs, children[0]), nil
}

func (w *WithWindowDefinition) String() string {
	return fmt.Sprintf("WithWindowDefinition(%d defs)\n  %s", len(w.WindowDefs), w.Child)
}

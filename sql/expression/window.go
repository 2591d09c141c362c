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
	"strings"

	"github.com/quilldb/quill/sql"
)

// WindowSpec is (partitionSpec, orderSpec, frame). It is
// attached to a WindowExpression once named-window inlining and
// frame/order resolution complete. The frame itself is
// sql.WindowFrame since FrameRequirement (sql/markers.go) needs to name
// that type without importing this package.
type WindowSpec struct {
	PartitionSpec []sql.Expression
	OrderSpec     []SortOrder
	Frame         *sql.WindowFrame
}

func (w *WindowSpec) String() string {
	var parts []string
	if len(w.PartitionSpec) > 0 {
		ps := make([]string, len(w.PartitionSpec))
		for i, e := range w.PartitionSpec {
			ps[i] = e.String()
		}
		parts = append(parts, "PARTITION BY "+strings.Join(ps, ", "))
	}
	if len(w.OrderSpec) > 0 {
		os := make([]string, len(w.OrderSpec))
		for i, o := range w.OrderSpec {
			os[i] = o.String()
		}
		parts = append(parts, "ORDER BY "+strings.Join(os, ", "))
	}
	if w.Frame != nil {
		parts = append(parts, w.Frame.String())
	}
	return strings.Join(parts, " ")
}

// SameKey reports whether two specs share the (partitionSpec, orderSpec)
// key ExtractWindowExpressions groups window expressions by; the
// frame is deliberately excluded since ExtractWindowExpressions groups before frame
// resolution assigns one.
func (w *WindowSpec) SameKey(o *WindowSpec) bool {
	if len(w.PartitionSpec) != len(o.PartitionSpec) || len(w.OrderSpec) != len(o.OrderSpec) {
		return false
	}
	for i, e := range w.PartitionSpec {
		if !sql.SemanticEquals(e, o.PartitionSpec[i]) {
			return false
		}
	}
	for i, s := range w.OrderSpec {
		if !sql.SemanticEquals(s.Child, o.OrderSpec[i].Child) || s.Direction != o.OrderSpec[i].Direction {
			return false
		}
	}
	return true
}

// WindowExpression wraps a window function (or windowed aggregate) with
// its resolved spec. Invariant 6: only ever appears inside a
// Window operator.
type WindowExpression struct {
	unary
	name string
	id   sql.ColumnID
	Spec *WindowSpec
}

func NewWindowExpression(name string, child sql.Expression, spec *WindowSpec) *WindowExpression {
	return &WindowExpression{unary: unary{Child: child}, name: name, id: sql.NewColumnID(), Spec: spec}
}

func (w *WindowExpression) Resolved() bool {
	if !w.Child.Resolved() || w.Spec == nil {
		return false
	}
	for _, e := range w.Spec.PartitionSpec {
		if !e.Resolved() {
			return false
		}
	}
	return SortOrdersResolved(w.Spec.OrderSpec)
}

func (w *WindowExpression) Type() sql.Type     { return w.Child.Type() }
func (w *WindowExpression) Nullable() bool     { return true }
func (w *WindowExpression) Name() string       { return w.name }
func (w *WindowExpression) ID() sql.ColumnID   { return w.id }
func (w *WindowExpression) Qualifier() string  { return "" }

func (w *WindowExpression) ToAttribute() sql.Attribute {
	return NewAttributeReference(w.name, w.Type(), true, w.id, "")
}

func (w *WindowExpression) References() sql.AttributeSet {
	out := w.Child.References()
	if w.Spec != nil {
		for _, e := range w.Spec.PartitionSpec {
			out = out.Union(e.References())
		}
		out = out.Union(SortOrdersReferences(w.Spec.OrderSpec))
	}
	return out
}

func (w *WindowExpression) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, ErrInvalidChildCount.New("WindowExpression", 1, len(children))
	}
	cp := *w
	cp.Child = children[0]
	return &cp, nil
}

func (w *WindowExpression) WithSpec(spec *WindowSpec) *WindowExpression {
	cp := *w
	cp.Spec = spec
	return &cp
}

func (w *WindowExpression) String() string {
	if w.Spec == nil {
		return fmt.Sprintf("%s OVER ()", w.Child)
	}
	return fmt.Sprintf("%s OVER (%s)", w.Child, w.Spec)
}

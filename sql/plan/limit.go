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

// Limit caps the number of output rows.
type Limit struct {
	UnaryNode
	Count sql.Expression
}

func NewLimit(count sql.Expression, child sql.Node) *Limit {
	return &Limit{UnaryNode: UnaryNode{Child: child}, Count: count}
}

func (l *Limit) Output() []sql.Attribute { return l.Child.Output() }

func (l *Limit) Resolved() bool { return l.Child.Resolved() && l.Count.Resolved() }

func (l *Limit) Expressions() []sql.Expression { return []sql.Expression{l.Count} }

func (l *Limit) WithExpressions(e ...sql.Expression) (sql.Node, error) {
	if len(e) != 1 {
		return nil, ErrInvalidChildCount.New("Limit.expressions", 1, len(e))
	}
	return NewLimit(e[0], l.Child), nil
}

func (l *Limit) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, ErrInvalidChildCount.New("Limit", 1, len(children))
	}
	return NewLimit(l.Count, children[0]), nil
}

func (l *Limit) String() string { return fmt.Sprintf("Limit(%s)\n  %s", l.Count, l.Child) }

// Offset skips a fixed number of rows before Limit/output, used for
// OFFSET and keyset-style pagination.
type Offset struct {
	UnaryNode
	Count sql.Expression
}

func NewOffset(count sql.Expression, child sql.Node) *Offset {
	return &Offset{UnaryNode: UnaryNode{Child: child}, Count: count}
}

func (o *Offset) Output() []sql.Attribute { return o.Child.Output() }

func (o *Offset) Resolved() bool { return o.Child.Resolved() && o.Count.Resolved() }

func (o *Offset) Expressions() []sql.Expression { return []sql.Expression{o.Count} }

func (o *Offset) WithExpressions(e ...sql.Expression) (sql.Node, error) {
	if len(e) != 1 {
		return nil, ErrInvalidChildCount.New("Offset.expressions", 1, len(e))
	}
	return NewOffset(e[0], o.Child), nil
}

func (o *Offset) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, ErrInvalidChildCount.New("Offset", 1, len(children))
	}
	return NewOffset(o.Count, children[0]), nil
}

func (o *Offset) String() string { return fmt.Sprintf("Offset(%s)\n  %s", o.Count, o.Child) }

// Distinct deduplicates its child's output rows.
type Distinct struct {
	UnaryNode
}

func NewDistinct(child sql.Node) *Distinct { return &Distinct{UnaryNode{Child: child}} }

func (d *Distinct) Output() []sql.Attribute { return d.Child.Output() }

func (d *Distinct) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, ErrInvalidChildCount.New("Distinct", 1, len(children))
	}
	return NewDistinct(children[0]), nil
}

func (d *Distinct) String() string { return fmt.Sprintf("Distinct\n  %s", d.Child) }

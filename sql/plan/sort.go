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

// Sort is ORDER BY's operator, holding one or more SortOrder keys.
type Sort struct {
	UnaryNode
	SortFields []expression.SortOrder
}

func NewSort(fields []expression.SortOrder, child sql.Node) *Sort {
	return &Sort{UnaryNode: UnaryNode{Child: child}, SortFields: fields}
}

func (s *Sort) Output() []sql.Attribute { return s.Child.Output() }

func (s *Sort) Resolved() bool {
	return s.Child.Resolved() && expression.SortOrdersResolved(s.SortFields)
}

func (s *Sort) Expressions() []sql.Expression {
	out := make([]sql.Expression, len(s.SortFields))
	for i, f := range s.SortFields {
		out[i] = f.Child
	}
	return out
}

func (s *Sort) WithExpressions(e ...sql.Expression) (sql.Node, error) {
	if len(e) != len(s.SortFields) {
		return nil, ErrInvalidChildCount.New("Sort.expressions", len(s.SortFields), len(e))
	}
	fields := make([]expression.SortOrder, len(e))
	for i, expr := range e {
		fields[i] = expression.NewSortOrder(expr, s.SortFields[i].Direction, s.SortFields[i].NullsFirst)
	}
	return NewSort(fields, s.Child), nil
}

func (s *Sort) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, ErrInvalidChildCount.New("Sort", 1, len(children))
	}
	return NewSort(s.SortFields, children[0]), nil
}

func (s *Sort) String() string {
	parts := make([]string, len(s.SortFields))
	for i, f := range s.SortFields {
		parts[i] = f.String()
	}
	return fmt.Sprintf("Sort(%s)\n  %s", strings.Join(parts, ", "), s.Child)
}

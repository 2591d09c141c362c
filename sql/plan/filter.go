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

// Filter is WHERE/HAVING's selection operator.
type Filter struct {
	UnaryNode
	Condition sql.Expression
}

func NewFilter(condition sql.Expression, child sql.Node) *Filter {
	return &Filter{UnaryNode: UnaryNode{Child: child}, Condition: condition}
}

func (f *Filter) Output() []sql.Attribute { return f.Child.Output() }

func (f *Filter) Resolved() bool { return f.Child.Resolved() && f.Condition.Resolved() }

func (f *Filter) Expressions() []sql.Expression { return []sql.Expression{f.Condition} }

func (f *Filter) WithExpressions(e ...sql.Expression) (sql.Node, error) {
	if len(e) != 1 {
		return nil, ErrInvalidChildCount.New("Filter.expressions", 1, len(e))
	}
	return NewFilter(e[0], f.Child), nil
}

func (f *Filter) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, ErrInvalidChildCount.New("Filter", 1, len(children))
	}
	return NewFilter(f.Condition, children[0]), nil
}

func (f *Filter) String() string { return fmt.Sprintf("Filter(%s)\n  %s", f.Condition, f.Child) }

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

import "fmt"

import "github.com/quilldb/quill/sql"

// Literal is a constant value with a known type. Always resolved, always
// foldable, always deterministic.
type Literal struct {
	leaf
	Value interface{}
	Typ   sql.Type
}

func NewLiteral(value interface{}, typ sql.Type) *Literal {
	return &Literal{Value: value, Typ: typ}
}

func (l *Literal) Resolved() bool { return true }
func (l *Literal) Type() sql.Type { return l.Typ }
func (l *Literal) Nullable() bool { return l.Value == nil }

func (l *Literal) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, ErrInvalidChildCount.New("Literal", 0, len(children))
	}
	return l, nil
}

func (l *Literal) String() string {
	if s, ok := l.Value.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", l.Value)
}

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

// Subquery wraps a nested plan that must be resolved in the outer
// query's scope. OuterScopeAttrs records the outer attributes the
// subquery body correlates against, filled in once resolve_subqueries
// ascends the scope chain; it is nil until then.
type Subquery struct {
	Query           sql.Node
	OuterScopeAttrs sql.AttributeSet
}

func NewSubquery(query sql.Node) *Subquery {
	return &Subquery{Query: query}
}

func (s *Subquery) Resolved() bool              { return s.Query.Resolved() }
func (s *Subquery) Children() []sql.Expression  { return nil }
func (s *Subquery) Foldable() bool              { return false }
func (s *Subquery) Deterministic() bool         { return true }

func (s *Subquery) References() sql.AttributeSet {
	return s.OuterScopeAttrs
}

func (s *Subquery) WithQuery(q sql.Node) *Subquery {
	cp := *s
	cp.Query = q
	return &cp
}

func (s *Subquery) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, ErrInvalidChildCount.New("Subquery", 0, len(children))
	}
	return s, nil
}

func (s *Subquery) String() string { return fmt.Sprintf("subquery(%s)", s.Query) }

// ScalarSubquery is a Subquery used in scalar expression position: its
// plan must produce exactly one row of exactly one column.
type ScalarSubquery struct {
	*Subquery
	typ sql.Type
}

func NewScalarSubquery(query sql.Node) *ScalarSubquery {
	return &ScalarSubquery{Subquery: NewSubquery(query), typ: sql.Unknown}
}

func (s *ScalarSubquery) Type() sql.Type {
	if !s.Query.Resolved() || len(s.Query.Output()) != 1 {
		return sql.Unknown
	}
	return s.Query.Output()[0].Type()
}

func (s *ScalarSubquery) Nullable() bool { return true }

func (s *ScalarSubquery) WithQuery(q sql.Node) *ScalarSubquery {
	return NewScalarSubquery(q)
}

func (s *ScalarSubquery) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, ErrInvalidChildCount.New("ScalarSubquery", 0, len(children))
	}
	return s, nil
}

func (s *ScalarSubquery) String() string { return fmt.Sprintf("scalar-subquery(%s)", s.Query) }

// Exists tests whether a subquery plan produces any rows at all.
type Exists struct {
	*Subquery
}

func NewExists(query sql.Node) *Exists { return &Exists{NewSubquery(query)} }

func (e *Exists) Type() sql.Type { return sql.Boolean }
func (e *Exists) Nullable() bool { return false }

func (e *Exists) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, ErrInvalidChildCount.New("Exists", 0, len(children))
	}
	return e, nil
}

func (e *Exists) String() string { return fmt.Sprintf("exists(%s)", e.Query) }

// InSubquery tests membership of Value in a subquery's single output
// column.
type InSubquery struct {
	Value sql.Expression
	*Subquery
}

func NewInSubquery(value sql.Expression, query sql.Node) *InSubquery {
	return &InSubquery{Value: value, Subquery: NewSubquery(query)}
}

func (i *InSubquery) Resolved() bool {
	return i.Value.Resolved() && i.Query.Resolved()
}
func (i *InSubquery) Type() sql.Type    { return sql.Boolean }
func (i *InSubquery) Nullable() bool    { return true }
func (i *InSubquery) Foldable() bool    { return false }
func (i *InSubquery) Deterministic() bool { return true }

func (i *InSubquery) Children() []sql.Expression { return []sql.Expression{i.Value} }

func (i *InSubquery) References() sql.AttributeSet {
	return i.Value.References().Union(i.OuterScopeAttrs)
}

func (i *InSubquery) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, ErrInvalidChildCount.New("InSubquery", 1, len(children))
	}
	cp := *i
	cp.Value = children[0]
	return &cp, nil
}

func (i *InSubquery) String() string { return fmt.Sprintf("%s IN (%s)", i.Value, i.Query) }

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

// UnresolvedColumn is the UnresolvedAttribute sum-type tag: a column
// reference by dotted name parts, not yet bound to a producing node.
type UnresolvedColumn struct {
	leaf
	nameParts []string
}

// NewUnresolvedColumn builds an unqualified column reference.
func NewUnresolvedColumn(name string) *UnresolvedColumn {
	return &UnresolvedColumn{nameParts: []string{name}}
}

// NewUnresolvedQualifiedColumn builds a table.column reference.
func NewUnresolvedQualifiedColumn(table, name string) *UnresolvedColumn {
	return &UnresolvedColumn{nameParts: []string{table, name}}
}

func (u *UnresolvedColumn) NameParts() []string { return u.nameParts }

func (u *UnresolvedColumn) Name() string { return u.nameParts[len(u.nameParts)-1] }

func (u *UnresolvedColumn) Qualifier() string {
	if len(u.nameParts) > 1 {
		return strings.Join(u.nameParts[:len(u.nameParts)-1], ".")
	}
	return ""
}

func (u *UnresolvedColumn) Resolved() bool { return false }
func (u *UnresolvedColumn) Type() sql.Type { return sql.Unknown }
func (u *UnresolvedColumn) Nullable() bool { return true }

func (u *UnresolvedColumn) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, ErrInvalidChildCount.New("UnresolvedColumn", 0, len(children))
	}
	return u, nil
}

func (u *UnresolvedColumn) String() string {
	return "!" + strings.Join(u.nameParts, ".")
}

// UnresolvedFunction is the UnresolvedFunction sum-type tag.
type UnresolvedFunction struct {
	nary
	FuncName string
	Distinct bool
	// Window carries a parsed OVER clause, if any, so that function
	// binding can decide whether the resolved function should be
	// wrapped as an AggregateExpression or returned bare because it's a
	// window function.
	Window *UnresolvedWindowExpression
}

func NewUnresolvedFunction(name string, distinct bool, window *UnresolvedWindowExpression, args ...sql.Expression) *UnresolvedFunction {
	return &UnresolvedFunction{nary: nary{Args: args}, FuncName: name, Distinct: distinct, Window: window}
}

func (u *UnresolvedFunction) Resolved() bool { return false }
func (u *UnresolvedFunction) Type() sql.Type { return sql.Unknown }
func (u *UnresolvedFunction) Nullable() bool { return true }

func (u *UnresolvedFunction) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	cp := *u
	cp.Args = children
	return &cp, nil
}

func (u *UnresolvedFunction) String() string {
	d := ""
	if u.Distinct {
		d = "DISTINCT "
	}
	parts := make([]string, len(u.Args))
	for i, a := range u.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s%s)", u.FuncName, d, strings.Join(parts, ", "))
}

// UnresolvedGenerator tags an UnresolvedFunction as appearing in
// table-generating-function position (SELECT EXPLODE(x) ...), so resolution
// knows to look it up in the generator namespace rather than the scalar/
// aggregate one.
type UnresolvedGenerator struct {
	*UnresolvedFunction
}

func NewUnresolvedGenerator(name string, args ...sql.Expression) *UnresolvedGenerator {
	return &UnresolvedGenerator{UnresolvedFunction: NewUnresolvedFunction(name, false, nil, args...)}
}

// Star is the '*' wildcard, optionally qualified ('t.*'). Only legal in
// the contexts enumerated by ResolveStar.
type Star struct {
	leaf
	Qualifier string
}

func NewStar() *Star                  { return &Star{} }
func NewQualifiedStar(q string) *Star { return &Star{Qualifier: q} }

func (s *Star) Resolved() bool { return false }
func (s *Star) Type() sql.Type { return sql.Unknown }
func (s *Star) Nullable() bool { return true }

func (s *Star) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, ErrInvalidChildCount.New("Star", 0, len(children))
	}
	return s, nil
}

func (s *Star) String() string {
	if s.Qualifier != "" {
		return s.Qualifier + ".*"
	}
	return "*"
}

// UnresolvedAlias wraps an expression the parser couldn't yet give a
// canonical display name (it depends on the ultimately-resolved child's
// String()). Resolution collapses it into a real Alias or, if the child
// is already a NamedExpression, into that expression directly.
type UnresolvedAlias struct {
	unary
}

func NewUnresolvedAlias(child sql.Expression) *UnresolvedAlias {
	return &UnresolvedAlias{unary{Child: child}}
}

func (u *UnresolvedAlias) Resolved() bool { return false }
func (u *UnresolvedAlias) Type() sql.Type { return sql.Unknown }
func (u *UnresolvedAlias) Nullable() bool { return true }

func (u *UnresolvedAlias) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, ErrInvalidChildCount.New("UnresolvedAlias", 1, len(children))
	}
	return &UnresolvedAlias{unary{Child: children[0]}}, nil
}

func (u *UnresolvedAlias) String() string { return u.Child.String() }

// UnresolvedExtractValue is `child.field`, `child[field]` or `child[idx]`
// before the child's type is known enough to pick struct-field /
// map-lookup / array-index semantics.
type UnresolvedExtractValue struct {
	unary
	Field string
}

func NewUnresolvedExtractValue(child sql.Expression, field string) *UnresolvedExtractValue {
	return &UnresolvedExtractValue{unary: unary{Child: child}, Field: field}
}

func (u *UnresolvedExtractValue) Resolved() bool { return false }
func (u *UnresolvedExtractValue) Type() sql.Type { return sql.Unknown }
func (u *UnresolvedExtractValue) Nullable() bool { return true }

func (u *UnresolvedExtractValue) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, ErrInvalidChildCount.New("UnresolvedExtractValue", 1, len(children))
	}
	return &UnresolvedExtractValue{unary: unary{Child: children[0]}, Field: u.Field}, nil
}

func (u *UnresolvedExtractValue) String() string {
	return fmt.Sprintf("%s.%s", u.Child, u.Field)
}

// UnresolvedWindowExpression is `child OVER w` where `w` is a named window
// reference that must be looked up in the enclosing WITH WINDOW clause.
// Once inlined it becomes a WindowExpression with a concrete spec.
type UnresolvedWindowExpression struct {
	unary
	WindowDefName string
}

func NewUnresolvedWindowExpression(child sql.Expression, windowDefName string) *UnresolvedWindowExpression {
	return &UnresolvedWindowExpression{unary: unary{Child: child}, WindowDefName: windowDefName}
}

func (u *UnresolvedWindowExpression) Resolved() bool { return false }
func (u *UnresolvedWindowExpression) Type() sql.Type { return sql.Unknown }
func (u *UnresolvedWindowExpression) Nullable() bool { return true }

func (u *UnresolvedWindowExpression) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, ErrInvalidChildCount.New("UnresolvedWindowExpression", 1, len(children))
	}
	cp := *u
	cp.Child = children[0]
	return &cp, nil
}

func (u *UnresolvedWindowExpression) String() string {
	return fmt.Sprintf("%s OVER %s", u.Child, u.WindowDefName)
}

// UnresolvedDeserializer wraps a deserialization program for an object
// encoder whose BoundReference ordinals haven't yet been bound to concrete
// input attributes.
type UnresolvedDeserializer struct {
	unary
}

func NewUnresolvedDeserializer(child sql.Expression) *UnresolvedDeserializer {
	return &UnresolvedDeserializer{unary{Child: child}}
}

func (u *UnresolvedDeserializer) Resolved() bool { return false }
func (u *UnresolvedDeserializer) Type() sql.Type { return sql.Unknown }
func (u *UnresolvedDeserializer) Nullable() bool { return true }

func (u *UnresolvedDeserializer) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, ErrInvalidChildCount.New("UnresolvedDeserializer", 1, len(children))
	}
	return &UnresolvedDeserializer{unary{Child: children[0]}}, nil
}

func (u *UnresolvedDeserializer) String() string { return fmt.Sprintf("unresolveddeserializer(%s)", u.Child) }

// BoundReference is a placeholder inside a deserializer program, pointing
// at input-attribute position Ordinal by index rather than by name.
type BoundReference struct {
	leaf
	Ordinal int
	Typ     sql.Type
}

func NewBoundReference(ordinal int, typ sql.Type) *BoundReference {
	return &BoundReference{Ordinal: ordinal, Typ: typ}
}

func (b *BoundReference) Resolved() bool { return false }
func (b *BoundReference) Type() sql.Type { return b.Typ }
func (b *BoundReference) Nullable() bool { return true }

func (b *BoundReference) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, ErrInvalidChildCount.New("BoundReference", 0, len(children))
	}
	return b, nil
}

func (b *BoundReference) String() string { return fmt.Sprintf("input[%d]", b.Ordinal) }

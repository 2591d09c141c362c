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

package sql

import "fmt"

// Expression is a node in the scalar-expression algebra.
// Implementations live in sql/expression; this package only fixes the
// contract the analyzer rewrites against.
type Expression interface {
	fmt.Stringer

	// Resolved reports whether every sub-node of this expression carries a
	// concrete binding and type.
	Resolved() bool
	// Type is the expression's concrete data type. Undefined (returns
	// Unknown) until Resolved.
	Type() Type
	// Nullable reports whether the expression may evaluate to NULL.
	Nullable() bool
	// Children returns the expression's direct sub-expressions, in
	// evaluation order.
	Children() []Expression
	// WithChildren returns a copy of this expression with its children
	// replaced. len(children) must equal len(e.Children()).
	WithChildren(children ...Expression) (Expression, error)

	// References returns the set of attributes this expression depends on
	// (its own References union each child's).
	References() AttributeSet
	// Foldable reports whether the expression can be evaluated without a
	// row of input (e.g. a literal, or an expression over only literals).
	Foldable() bool
	// Deterministic reports whether repeated evaluation with the same
	// input row yields the same result.
	Deterministic() bool
}

// NamedExpression is an Expression that additionally carries a name and a
// unique ColumnID identifying the column it produces. Alias and
// AttributeReference are the two essential variants.
type NamedExpression interface {
	Expression
	Name() string
	ID() ColumnID
	// Qualifier is the table/subquery alias this name was written under,
	// if any ("" if unqualified).
	Qualifier() string
	ToAttribute() Attribute
}

// SemanticEquals reports semantic equality: structural equality
// up to attribute-ID renaming and other non-observable differences such as
// alias IDs. Two expressions are semantically equal when they have the
// same shape and, for any pair of corresponding AttributeReferences, either
// the IDs match or both sides reference the position consistently within
// the comparison (by name+qualifier, since a true renaming map isn't
// available without additional context).
func SemanticEquals(a, b Expression) bool {
	if a == nil || b == nil {
		return a == b
	}
	ar, aok := a.(Attribute)
	br, bok := b.(Attribute)
	if aok && bok {
		return ar.ID() == br.ID() || (ar.Name() == br.Name() && ar.Qualifier() == br.Qualifier())
	}
	aCh, bCh := a.Children(), b.Children()
	if fmt.Sprintf("%T", a) != fmt.Sprintf("%T", b) || len(aCh) != len(bCh) {
		return false
	}
	if !sameShape(a, b) {
		return false
	}
	for i := range aCh {
		if !SemanticEquals(aCh[i], bCh[i]) {
			return false
		}
	}
	return true
}

// sameShape compares the non-child, non-ID fields of two expressions of
// the same dynamic type via their String() form with attribute IDs masked
// out. This is intentionally coarse: it is only relied on as the second
// half of SemanticEquals, after the type and arity already matched.
func sameShape(a, b Expression) bool {
	return stripIDs(a.String()) == stripIDs(b.String())
}

func stripIDs(s string) string {
	out := make([]byte, 0, len(s))
	skip := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '#' {
			skip = true
			continue
		}
		if skip {
			if c >= '0' && c <= '9' {
				continue
			}
			skip = false
		}
		out = append(out, c)
	}
	return string(out)
}

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

type boolBinary struct {
	binary
	op string
}

func (b *boolBinary) Type() sql.Type { return sql.Boolean }
func (b *boolBinary) Nullable() bool { return b.Left.Nullable() || b.Right.Nullable() }
func (b *boolBinary) String() string { return fmt.Sprintf("(%s %s %s)", b.Left, b.op, b.Right) }

// And is logical conjunction.
type And struct{ boolBinary }

func NewAnd(left, right sql.Expression) *And {
	return &And{boolBinary{binary: binary{Left: left, Right: right}, op: "AND"}}
}

func (a *And) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, ErrInvalidChildCount.New("And", 2, len(children))
	}
	return NewAnd(children[0], children[1]), nil
}

// Or is logical disjunction.
type Or struct{ boolBinary }

func NewOr(left, right sql.Expression) *Or {
	return &Or{boolBinary{binary: binary{Left: left, Right: right}, op: "OR"}}
}

func (o *Or) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, ErrInvalidChildCount.New("Or", 2, len(children))
	}
	return NewOr(children[0], children[1]), nil
}

// JoinAnd conjoins a non-empty list of conditions; a single condition is
// returned unchanged.
func JoinAnd(exprs ...sql.Expression) sql.Expression {
	if len(exprs) == 0 {
		return nil
	}
	out := exprs[0]
	for _, e := range exprs[1:] {
		out = NewAnd(out, e)
	}
	return out
}

// SplitConjunction decomposes an AND-tree back into its conjuncts, the
// inverse of JoinAnd. Used by pushdown-adjacent and HAVING-lifting rules.
func SplitConjunction(e sql.Expression) []sql.Expression {
	and, ok := e.(*And)
	if !ok {
		return []sql.Expression{e}
	}
	return append(SplitConjunction(and.Left), SplitConjunction(and.Right)...)
}

// Not is logical negation.
type Not struct{ unary }

func NewNot(child sql.Expression) *Not { return &Not{unary{Child: child}} }

func (n *Not) Type() sql.Type { return sql.Boolean }
func (n *Not) Nullable() bool { return n.Child.Nullable() }
func (n *Not) String() string { return fmt.Sprintf("NOT(%s)", n.Child) }

func (n *Not) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, ErrInvalidChildCount.New("Not", 1, len(children))
	}
	return NewNot(children[0]), nil
}

// IsNull tests for NULL.
type IsNull struct{ unary }

func NewIsNull(child sql.Expression) *IsNull { return &IsNull{unary{Child: child}} }

func (n *IsNull) Type() sql.Type { return sql.Boolean }
func (n *IsNull) Nullable() bool { return false }
func (n *IsNull) String() string { return fmt.Sprintf("%s IS NULL", n.Child) }

func (n *IsNull) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, ErrInvalidChildCount.New("IsNull", 1, len(children))
	}
	return NewIsNull(children[0]), nil
}

type comparison struct {
	binary
	op string
}

func (c *comparison) Type() sql.Type { return sql.Boolean }
func (c *comparison) Nullable() bool { return c.Left.Nullable() || c.Right.Nullable() }
func (c *comparison) String() string { return fmt.Sprintf("(%s %s %s)", c.Left, c.op, c.Right) }

func newComparison(op string, left, right sql.Expression) *comparison {
	return &comparison{binary: binary{Left: left, Right: right}, op: op}
}

type Equals struct{ comparison }

func NewEquals(left, right sql.Expression) *Equals { return &Equals{*newComparison("=", left, right)} }
func (e *Equals) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, ErrInvalidChildCount.New("Equals", 2, len(children))
	}
	return NewEquals(children[0], children[1]), nil
}

type GreaterThan struct{ comparison }

func NewGreaterThan(left, right sql.Expression) *GreaterThan {
	return &GreaterThan{*newComparison(">", left, right)}
}
func (e *GreaterThan) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, ErrInvalidChildCount.New("GreaterThan", 2, len(children))
	}
	return NewGreaterThan(children[0], children[1]), nil
}

type LessThan struct{ comparison }

func NewLessThan(left, right sql.Expression) *LessThan {
	return &LessThan{*newComparison("<", left, right)}
}
func (e *LessThan) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, ErrInvalidChildCount.New("LessThan", 2, len(children))
	}
	return NewLessThan(children[0], children[1]), nil
}

type GreaterThanOrEqual struct{ comparison }

func NewGreaterThanOrEqual(left, right sql.Expression) *GreaterThanOrEqual {
	return &GreaterThanOrEqual{*newComparison(">=", left, right)}
}
func (e *GreaterThanOrEqual) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, ErrInvalidChildCount.New("GreaterThanOrEqual", 2, len(children))
	}
	return NewGreaterThanOrEqual(children[0], children[1]), nil
}

type LessThanOrEqual struct{ comparison }

func NewLessThanOrEqual(left, right sql.Expression) *LessThanOrEqual {
	return &LessThanOrEqual{*newComparison("<=", left, right)}
}
func (e *LessThanOrEqual) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, ErrInvalidChildCount.New("LessThanOrEqual", 2, len(children))
	}
	return NewLessThanOrEqual(children[0], children[1]), nil
}

// If is a three-way conditional, used to desugar Pivot's per-value
// rewrite and the UDF null guard.
type If struct {
	Cond, IfTrue, IfFalse sql.Expression
}

func NewIf(cond, ifTrue, ifFalse sql.Expression) *If {
	return &If{Cond: cond, IfTrue: ifTrue, IfFalse: ifFalse}
}

func (i *If) Resolved() bool {
	return i.Cond.Resolved() && i.IfTrue.Resolved() && i.IfFalse.Resolved()
}
func (i *If) Type() sql.Type { return i.IfTrue.Type() }
func (i *If) Nullable() bool { return true }
func (i *If) Children() []sql.Expression {
	return []sql.Expression{i.Cond, i.IfTrue, i.IfFalse}
}
func (i *If) References() sql.AttributeSet {
	return i.Cond.References().Union(i.IfTrue.References()).Union(i.IfFalse.References())
}
func (i *If) Foldable() bool {
	return i.Cond.Foldable() && i.IfTrue.Foldable() && i.IfFalse.Foldable()
}
func (i *If) Deterministic() bool {
	return i.Cond.Deterministic() && i.IfTrue.Deterministic() && i.IfFalse.Deterministic()
}
func (i *If) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 3 {
		return nil, ErrInvalidChildCount.New("If", 3, len(children))
	}
	return NewIf(children[0], children[1], children[2]), nil
}
func (i *If) String() string {
	return fmt.Sprintf("if(%s, %s, %s)", i.Cond, i.IfTrue, i.IfFalse)
}

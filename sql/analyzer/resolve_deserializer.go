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

package analyzer

import (
	"github.com/quilldb/quill/sql"
	"github.com/quilldb/quill/sql/expression"
	"github.com/quilldb/quill/sql/plan"
	"github.com/quilldb/quill/sql/transform"
)

// resolveDeserializer binds every UnresolvedDeserializer's BoundReference
// placeholders against its owning node's single child's concrete output
// columns by ordinal, then drops the Unresolved wrapper: the deserializer
// program itself is an ordinary (now fully resolved) expression tree once
// its BoundReferences point at real attributes.
func resolveDeserializer(ctx *sql.Context, a *Analyzer, n sql.Node, scope *plan.Scope, sel RuleSelector) (sql.Node, transform.TreeIdentity, error) {
	return transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		exprNode, ok := node.(sql.Expressioner)
		if !ok {
			return node, transform.SameTree, nil
		}
		children := node.Children()
		if len(children) != 1 || !children[0].Resolved() {
			return node, transform.SameTree, nil
		}
		output := children[0].Output()

		changed := false
		exprs := exprNode.Expressions()
		newExprs := make([]sql.Expression, len(exprs))
		for i, e := range exprs {
			rewritten, exprChanged, err := transform.Expr(e, func(inner sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
				ud, ok := inner.(*expression.UnresolvedDeserializer)
				if !ok {
					return inner, transform.SameTree, nil
				}
				bound, err := bindDeserializerRefs(ud.Child, output)
				if err != nil {
					return nil, transform.SameTree, err
				}
				return bound, transform.NewTree, nil
			})
			if err != nil {
				return nil, transform.SameTree, err
			}
			newExprs[i] = rewritten
			if exprChanged == transform.NewTree {
				changed = true
			}
		}
		if !changed {
			return node, transform.SameTree, nil
		}
		rebuilt, err := exprNode.WithExpressions(newExprs...)
		if err != nil {
			return nil, transform.SameTree, err
		}
		return rebuilt, transform.NewTree, nil
	})
}

func bindDeserializerRefs(program sql.Expression, output []sql.Attribute) (sql.Expression, error) {
	bound, _, err := transform.Expr(program, func(e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		br, ok := e.(*expression.BoundReference)
		if !ok {
			return e, transform.SameTree, nil
		}
		if br.Ordinal < 0 || br.Ordinal >= len(output) {
			return e, transform.SameTree, nil
		}
		return output[br.Ordinal], transform.NewTree, nil
	})
	return bound, err
}

// resolveUpCast rewrites a resolved UpCast into a plain Cast when the
// source type is already the target or the conversion is a safe numeric
// widening (INT < BIGINT < DECIMAL < DOUBLE), else raises
// ErrUpCastTruncation: UpCast is the encoder framework's implicit
// conversion and must never silently lose precision the way an explicit
// CAST is allowed to.
func resolveUpCast(ctx *sql.Context, a *Analyzer, n sql.Node, scope *plan.Scope, sel RuleSelector) (sql.Node, transform.TreeIdentity, error) {
	// numericRank orders the numeric types narrowest first; 0 means not numeric.
	numericRank := func(t sql.Type) int {
		for i, nt := range []sql.Type{sql.Int32, sql.Int64, sql.Decimal, sql.Float64} {
			if t.Equals(nt) {
				return i + 1
			}
		}
		return 0
	}
	return transform.NodeExprs(n, func(e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		uc, ok := e.(*expression.UpCast)
		if !ok || !uc.Child.Resolved() {
			return e, transform.SameTree, nil
		}
		from := uc.Child.Type()
		if from.Equals(uc.To) || (numericRank(from) > 0 && numericRank(from) <= numericRank(uc.To)) {
			return expression.NewCast(uc.Child, uc.To), transform.NewTree, nil
		}
		return nil, transform.SameTree, sql.ErrUpCastTruncation.New(uc.Child.String(), from, uc.To)
	})
}

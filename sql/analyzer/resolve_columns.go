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

// resolveColumns binds every UnresolvedColumn against its enclosing
// node's children's combined output, falling back to the correlated
// Scope chain for a reference no child provides. Missing references are
// left unresolved, for CheckAnalysis to report as ErrUnknownColumn once
// the batches converge; an ambiguous reference raises ErrAmbiguousColumn
// at once.
func resolveColumns(ctx *sql.Context, a *Analyzer, n sql.Node, scope *plan.Scope, sel RuleSelector) (sql.Node, transform.TreeIdentity, error) {
	resolve := sql.NewResolver(a.Config.CaseSensitiveAnalysis)
	return transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		exprNode, ok := node.(sql.Expressioner)
		if !ok {
			return node, transform.SameTree, nil
		}

		attrs := childAttributes(node)
		same := transform.SameTree
		exprs := exprNode.Expressions()
		newExprs := make([]sql.Expression, len(exprs))
		for i, e := range exprs {
			rewritten, exprIdentity, err := transform.Expr(e, func(inner sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
				return resolveOneColumn(inner, attrs, scope, resolve)
			})
			if err != nil {
				return nil, transform.SameTree, err
			}
			if exprIdentity == transform.NewTree {
				same = transform.NewTree
			}
			newExprs[i] = rewritten
		}
		if same == transform.SameTree {
			return node, transform.SameTree, nil
		}
		rebuilt, err := exprNode.WithExpressions(newExprs...)
		if err != nil {
			return nil, transform.SameTree, err
		}
		return rebuilt, transform.NewTree, nil
	})
}

// childAttributes flattens every direct child's Output() into one slice,
// in order.
func childAttributes(n sql.Node) []sql.Attribute {
	var out []sql.Attribute
	for _, c := range n.Children() {
		out = append(out, c.Output()...)
	}
	return out
}

func resolveOneColumn(e sql.Expression, attrs []sql.Attribute, scope *plan.Scope, resolve sql.Resolver) (sql.Expression, transform.TreeIdentity, error) {
	uc, ok := e.(*expression.UnresolvedColumn)
	if !ok {
		return e, transform.SameTree, nil
	}

	name, qualifier := uc.Name(), uc.Qualifier()
	var matches []sql.Attribute
	for _, a := range attrs {
		if !resolve(a.Name(), name) {
			continue
		}
		if qualifier != "" && !resolve(a.Qualifier(), qualifier) {
			continue
		}
		matches = append(matches, a)
	}

	switch len(matches) {
	case 1:
		return matches[0], transform.NewTree, nil
	case 0:
		if outer, ok := scope.Lookup(resolve, name, qualifier); ok {
			return outer, transform.NewTree, nil
		}
		return e, transform.SameTree, nil
	default:
		return nil, transform.SameTree, sql.ErrAmbiguousColumn.New(uc.String(), describeMatches(matches))
	}
}

func describeMatches(attrs []sql.Attribute) string {
	s := ""
	for i, a := range attrs {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s
}

// dedupRight assigns fresh ColumnIDs to every attribute the right branch
// of a self-join produces that collides by ID with one on the left, so
// later Join conditions can disambiguate positionally.
func dedupRight(ctx *sql.Context, a *Analyzer, n sql.Node, scope *plan.Scope, sel RuleSelector) (sql.Node, transform.TreeIdentity, error) {
	return transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		j, ok := node.(*plan.Join)
		if !ok {
			return node, transform.SameTree, nil
		}

		left := sql.OutputIDs(j.Left)
		rewrite := sql.NewAttributeMap[sql.ColumnID]()
		collide := false
		for _, attr := range j.Right.Output() {
			if left.Contains(attr.ID()) {
				rewrite[attr.ID()] = sql.NewColumnID()
				collide = true
			}
		}
		if !collide {
			return node, transform.SameTree, nil
		}

		right, _, err := transform.NodeExprs(j.Right, func(e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
			attr, ok := e.(sql.Attribute)
			if !ok {
				return e, transform.SameTree, nil
			}
			newID, ok := rewrite[attr.ID()]
			if !ok {
				return e, transform.SameTree, nil
			}
			return attr.WithID(newID), transform.NewTree, nil
		})
		if err != nil {
			return nil, transform.SameTree, err
		}

		rewritten, err := j.WithChildren(j.Left, right)
		if err != nil {
			return nil, transform.SameTree, err
		}
		return rewritten, transform.NewTree, nil
	})
}

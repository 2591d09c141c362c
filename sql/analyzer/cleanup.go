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

// cleanupAliases strips Alias wrappers that no longer serve a naming
// purpose: a Filter/Sort/Join's expressions never define an output
// column, so any Alias there — however it got there — is pure noise once
// resolution is done. A Project/Aggregate/Generate's own named list keeps
// its top-level Alias (that's where the output name comes from) but any
// Alias nested underneath one of those list entries is stripped the same
// way, since only the outermost name is ever visible to the schema.
func cleanupAliases(ctx *sql.Context, a *Analyzer, n sql.Node, scope *plan.Scope, sel RuleSelector) (sql.Node, transform.TreeIdentity, error) {
	return transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		exprNode, ok := node.(sql.Expressioner)
		if !ok {
			return node, transform.SameTree, nil
		}

		keepTopAlias := isNamingNode(node)
		exprs := exprNode.Expressions()
		newExprs := make([]sql.Expression, len(exprs))
		changed := false
		for i, e := range exprs {
			var stripped sql.Expression
			var err error
			if keepTopAlias {
				stripped, err = stripNestedAliases(e)
			} else {
				stripped, err = stripAllAliases(e)
			}
			if err != nil {
				return nil, transform.SameTree, err
			}
			newExprs[i] = stripped
			if stripped != e {
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

func isNamingNode(n sql.Node) bool {
	switch n.(type) {
	case *plan.Project, *plan.Aggregate, *plan.Generate:
		return true
	default:
		return false
	}
}

// stripAllAliases removes every Alias in e's tree, including e itself.
func stripAllAliases(e sql.Expression) (sql.Expression, error) {
	rewritten, _, err := transform.Expr(e, func(inner sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		if al, ok := inner.(*expression.Alias); ok {
			return al.Child, transform.NewTree, nil
		}
		return inner, transform.SameTree, nil
	})
	return rewritten, err
}

// stripNestedAliases keeps e's own top-level Alias wrapper (if any) but
// removes any Alias found strictly beneath it.
func stripNestedAliases(e sql.Expression) (sql.Expression, error) {
	top, ok := e.(*expression.Alias)
	if !ok {
		return stripAllAliases(e)
	}
	child, err := stripAllAliases(top.Child)
	if err != nil {
		return nil, err
	}
	if child == top.Child {
		return e, nil
	}
	rebuilt, err := top.WithChildren(child)
	if err != nil {
		return nil, err
	}
	return rebuilt, nil
}

// eliminateSubqueryAliases collapses a SubqueryAlias directly wrapping
// another SubqueryAlias (`(SELECT * FROM (t) AS inner) AS outer` parses to
// nested aliasing with no intermediate projection) down to the outer
// name, since the inner one contributes nothing once its qualifier has
// been overwritten anyway.
func eliminateSubqueryAliases(ctx *sql.Context, a *Analyzer, n sql.Node, scope *plan.Scope, sel RuleSelector) (sql.Node, transform.TreeIdentity, error) {
	return transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		outer, ok := node.(*plan.SubqueryAlias)
		if !ok {
			return node, transform.SameTree, nil
		}
		inner, ok := outer.Child.(*plan.SubqueryAlias)
		if !ok {
			return node, transform.SameTree, nil
		}
		return plan.NewSubqueryAlias(outer.Name, inner.Child), transform.NewTree, nil
	})
}

// pullOutNondeterministic lifts a non-deterministic expression call
// (RAND(), UUID(), ...) out of a non-projecting single-child operator
// (Filter, Sort, ...) into a Project inserted beneath it; operators with
// more than one child, such as Join, are left as they are. Every row's
// evaluation is thus
// pinned to a single computed value instead of being re-evaluated whenever
// the surrounding operator happens to reference it more than once.
func pullOutNondeterministic(ctx *sql.Context, a *Analyzer, n sql.Node, scope *plan.Scope, sel RuleSelector) (sql.Node, transform.TreeIdentity, error) {
	return transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		if isNamingNode(node) {
			return node, transform.SameTree, nil
		}
		exprNode, ok := node.(sql.Expressioner)
		if !ok {
			return node, transform.SameTree, nil
		}
		children := node.Children()
		if len(children) != 1 || !children[0].Resolved() {
			return node, transform.SameTree, nil
		}
		child := children[0]

		var lifted []sql.Expression
		exprs := exprNode.Expressions()
		newExprs := make([]sql.Expression, len(exprs))
		changed := false
		for i, e := range exprs {
			rewritten, _, err := transform.Expr(e, func(inner sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
				nd, ok := inner.(sql.NonDeterministicExpression)
				if !ok || !nd.IsNonDeterministic() {
					return inner, transform.SameTree, nil
				}
				alias := expression.NewGeneratedAlias("_nondeterministic", inner)
				lifted = append(lifted, alias)
				return alias.ToAttribute(), transform.NewTree, nil
			})
			if err != nil {
				return nil, transform.SameTree, err
			}
			newExprs[i] = rewritten
			if rewritten != e {
				changed = true
			}
		}
		if !changed {
			return node, transform.SameTree, nil
		}

		projections := append(append([]sql.Expression{}, attrsToExprs(child.Output())...), lifted...)
		injected := plan.NewProject(projections, child)
		rebuilt, err := exprNode.WithExpressions(newExprs...)
		if err != nil {
			return nil, transform.SameTree, err
		}
		withChild, err := rebuilt.WithChildren(injected)
		if err != nil {
			return nil, transform.SameTree, err
		}
		return withChild, transform.NewTree, nil
	})
}

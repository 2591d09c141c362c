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

// resolveMissingReferences handles `SELECT a FROM t ORDER BY b` / `...
// HAVING b`: b isn't in the select list so resolveColumns left it
// unresolved. This rule adds the missing attribute to the Project beneath
// a Sort/Filter (pulling it from the Project's own child) and wraps the
// pair back in an outer Project restoring the original, narrower output,
// so the extra column never escapes past the Sort/Filter that needed it.
func resolveMissingReferences(ctx *sql.Context, a *Analyzer, n sql.Node, scope *plan.Scope, sel RuleSelector) (sql.Node, transform.TreeIdentity, error) {
	resolve := sql.NewResolver(a.Config.CaseSensitiveAnalysis)
	return transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		switch node := node.(type) {
		case *plan.Sort:
			exprs := make([]sql.Expression, len(node.SortFields))
			for i, f := range node.SortFields {
				exprs[i] = f.Child
			}
			extended, changed := liftMissingReferences(node.Child, exprs, resolve)
			if !changed {
				return node, transform.SameTree, nil
			}
			original := node.Child.Output()
			inner := plan.NewSort(node.SortFields, extended)
			return plan.NewProject(attrsToExprs(original), inner), transform.NewTree, nil

		case *plan.Filter:
			extended, changed := liftMissingReferences(node.Child, []sql.Expression{node.Condition}, resolve)
			if !changed {
				return node, transform.SameTree, nil
			}
			original := node.Child.Output()
			inner := plan.NewFilter(node.Condition, extended)
			return plan.NewProject(attrsToExprs(original), inner), transform.NewTree, nil

		default:
			return node, transform.SameTree, nil
		}
	})
}

// liftMissingReferences extends child (if it's a Project) with any
// attribute exprs references that child's own projections don't already
// provide but child's child does. Returns (nil, false) when child isn't a
// Project or nothing is missing.
func liftMissingReferences(child sql.Node, exprs []sql.Expression, resolve sql.Resolver) (sql.Node, bool) {
	proj, ok := child.(*plan.Project)
	if !ok {
		return nil, false
	}

	projOutput := proj.Output()
	grandOutput := proj.Child.Output()
	seen := sql.NewAttributeSet(projOutput...)

	var extra []sql.Attribute
	for _, e := range exprs {
		transform.InspectExpr(e, func(inner sql.Expression) bool {
			uc, ok := inner.(*expression.UnresolvedColumn)
			if !ok {
				return true
			}
			if matchesAny(projOutput, uc, resolve) {
				return true
			}
			var match sql.Attribute
			count := 0
			for _, attr := range grandOutput {
				if !resolve(attr.Name(), uc.Name()) {
					continue
				}
				if uc.Qualifier() != "" && !resolve(attr.Qualifier(), uc.Qualifier()) {
					continue
				}
				match = attr
				count++
			}
			if count == 1 && !seen.Contains(match.ID()) {
				extra = append(extra, match)
				seen = seen.Add(match.ID())
			}
			return true
		})
	}
	if len(extra) == 0 {
		return nil, false
	}

	projections := make([]sql.Expression, 0, len(proj.Projections)+len(extra))
	projections = append(projections, proj.Projections...)
	for _, attr := range extra {
		projections = append(projections, attr)
	}
	return plan.NewProject(projections, proj.Child), true
}

func matchesAny(attrs []sql.Attribute, uc *expression.UnresolvedColumn, resolve sql.Resolver) bool {
	for _, a := range attrs {
		if !resolve(a.Name(), uc.Name()) {
			continue
		}
		if uc.Qualifier() != "" && !resolve(a.Qualifier(), uc.Qualifier()) {
			continue
		}
		return true
	}
	return false
}

func attrsToExprs(attrs []sql.Attribute) []sql.Expression {
	out := make([]sql.Expression, len(attrs))
	for i, a := range attrs {
		out[i] = a
	}
	return out
}

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

// resolveStars expands every Star in a Project's projection list into one
// AttributeReference per matching child column, in child output order.
// A Star outside Project's projection list is left in place, and
// CheckAnalysis reports it as ErrStarMisuse; an explicit qualifier with
// no matching child raises ErrStarMisuse here at once, since nothing
// else in the schema could have produced the reference.
func resolveStars(ctx *sql.Context, a *Analyzer, n sql.Node, scope *plan.Scope, sel RuleSelector) (sql.Node, transform.TreeIdentity, error) {
	return transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		proj, ok := node.(*plan.Project)
		if !ok {
			return node, transform.SameTree, nil
		}
		if !containsStar(proj.Projections) {
			return node, transform.SameTree, nil
		}

		attrs := childAttributes(proj)
		var out []sql.Expression
		changed := false
		for _, e := range proj.Projections {
			star, ok := e.(*expression.Star)
			if !ok {
				out = append(out, e)
				continue
			}
			changed = true
			matched := false
			for _, a := range attrs {
				if star.Qualifier != "" && a.Qualifier() != star.Qualifier {
					continue
				}
				matched = true
				out = append(out, expression.NewAttributeReference(a.Name(), a.Type(), a.Nullable(), a.ID(), a.Qualifier()))
			}
			if star.Qualifier != "" && !matched {
				return nil, transform.SameTree, sql.ErrStarMisuse.New(star.String())
			}
		}
		if !changed {
			return node, transform.SameTree, nil
		}
		rebuilt, err := proj.WithExpressions(out...)
		if err != nil {
			return nil, transform.SameTree, err
		}
		return rebuilt, transform.NewTree, nil
	})
}

func containsStar(exprs []sql.Expression) bool {
	for _, e := range exprs {
		if _, ok := e.(*expression.Star); ok {
			return true
		}
	}
	return false
}

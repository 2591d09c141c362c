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

// checkAnalysis is the final validation pass: once every rewrite
// batch has converged, anything still unresolved is a user-facing
// failure rather than a signal to keep iterating. A missing relation
// anywhere in the tree is reported first; otherwise the first unresolved
// expression encountered (outermost, then left-to-right) is the one
// surfaced.
func checkAnalysis(ctx *sql.Context, a *Analyzer, n sql.Node, scope *plan.Scope, sel RuleSelector) (sql.Node, transform.TreeIdentity, error) {
	var rerr error
	transform.Inspect(n, func(node sql.Node) bool {
		if rerr != nil {
			return false
		}
		if rel, ok := node.(*plan.UnresolvedRelation); ok {
			rerr = sql.ErrNoSuchTable.New(rel.Name)
			return false
		}
		return true
	})
	if rerr != nil {
		return nil, transform.SameTree, rerr
	}
	transform.Inspect(n, func(node sql.Node) bool {
		if rerr != nil {
			return false
		}
		exprNode, ok := node.(sql.Expressioner)
		if !ok {
			return true
		}
		for _, e := range exprNode.Expressions() {
			transform.InspectExpr(e, func(inner sql.Expression) bool {
				if rerr != nil {
					return false
				}
				switch u := inner.(type) {
				case *expression.UnresolvedColumn:
					rerr = sql.ErrUnknownColumn.New(u.String())
					return false
				case *expression.UnresolvedGenerator:
					rerr = sql.ErrUnknownFunction.New(u.FuncName)
					return false
				case *expression.UnresolvedFunction:
					rerr = sql.ErrUnknownFunction.New(u.FuncName)
					return false
				case *expression.Star:
					rerr = sql.ErrStarMisuse.New(node.String())
					return false
				case *expression.UnresolvedAlias:
					rerr = sql.ErrUnresolvedPlan.New(node.String())
					return false
				case *expression.UnresolvedExtractValue:
					rerr = sql.ErrUnresolvedPlan.New(node.String())
					return false
				case *expression.UnresolvedDeserializer:
					rerr = sql.ErrUnresolvedPlan.New(node.String())
					return false
				case *expression.UpCast:
					rerr = sql.ErrUpCastTruncation.New(u.Child.String(), u.Child.Type(), u.To)
					return false
				}
				return true
			})
			if rerr != nil {
				return false
			}
		}
		return true
	})
	if rerr != nil {
		return nil, transform.SameTree, rerr
	}
	if !n.Resolved() {
		return nil, transform.SameTree, sql.ErrUnresolvedPlan.New(n.String())
	}
	return n, transform.SameTree, nil
}

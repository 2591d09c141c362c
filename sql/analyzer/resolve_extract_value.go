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

// resolveExtractValue picks the concrete getter (struct field, map
// lookup, array index) for each UnresolvedExtractValue once its child
// expression is resolved. Left unresolved, silently, if the
// child's type supports none of the three.
func resolveExtractValue(ctx *sql.Context, a *Analyzer, n sql.Node, scope *plan.Scope, sel RuleSelector) (sql.Node, transform.TreeIdentity, error) {
	return transform.NodeExprs(n, func(e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		uev, ok := e.(*expression.UnresolvedExtractValue)
		if !ok || !uev.Child.Resolved() {
			return e, transform.SameTree, nil
		}
		resolved, ok := expression.ResolveExtractValue(uev.Child, uev.Field)
		if !ok {
			return e, transform.SameTree, nil
		}
		return resolved, transform.NewTree, nil
	})
}

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

// handleNullUDF wraps every resolved UserFunc carrying NullOnNull in its
// IsNull-guarded form, once per call so a later pass doesn't
// re-wrap an already-guarded UserFunc.
func handleNullUDF(ctx *sql.Context, a *Analyzer, n sql.Node, scope *plan.Scope, sel RuleSelector) (sql.Node, transform.TreeIdentity, error) {
	return transform.NodeExprs(n, func(e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		uf, ok := e.(*expression.UserFunc)
		if !ok || !uf.NullOnNull || !sql.ExpressionsResolved(uf.Args...) {
			return e, transform.SameTree, nil
		}
		guarded := uf.WrapNullGuard()
		if guarded == sql.Expression(uf) {
			return e, transform.SameTree, nil
		}
		return guarded, transform.NewTree, nil
	})
}

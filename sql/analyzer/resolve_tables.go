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
	"github.com/quilldb/quill/sql/plan"
	"github.com/quilldb/quill/sql/transform"
)

// resolveTables looks up every UnresolvedRelation in the catalog,
// defaulting an unqualified reference's database to a.CurrentDatabase.
// A lookup failure is swallowed here per the propagation policy: the node
// is left unresolved so CheckAnalysis can report ErrNoSuchTable with full
// context once the batches converge.
func resolveTables(ctx *sql.Context, a *Analyzer, n sql.Node, scope *plan.Scope, sel RuleSelector) (sql.Node, transform.TreeIdentity, error) {
	return transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		rel, ok := node.(*plan.UnresolvedRelation)
		if !ok {
			return node, transform.SameTree, nil
		}

		database := rel.Database
		if database == "" {
			database = a.CurrentDatabase
		}

		resolved, err := a.Catalog.LookupRelation(database, rel.Name)
		if err != nil {
			return node, transform.SameTree, nil
		}

		if rel.Alias != "" {
			resolved = plan.NewSubqueryAlias(rel.Alias, resolved)
		}
		return resolved, transform.NewTree, nil
	})
}

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

package plan

import (
	"fmt"

	"github.com/quilldb/quill/sql"
)

// CTE is one WITH clause binding: a name and its defining subquery.
type CTE struct {
	Name  string
	Query sql.Node
}

// With carries one or more CTEs down to InlineCTEs, which
// substitutes each UnresolvedRelation reference to Name with a
// SubqueryAlias(Name, Query) and strips this node.
type With struct {
	UnaryNode
	CTEs []CTE
}

func NewWith(ctes []CTE, child sql.Node) *With {
	return &With{UnaryNode: UnaryNode{Child: child}, CTEs: ctes}
}

func (w *With) Output() []sql.Attribute { return w.Child.Output() }

// Resolved is always false: InlineCTEs must remove this node.
func (w *With) Resolved() bool { return false }

func (w *With) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, ErrInvalidChildCount.New("With", 1, len(children))
	}
	return NewWith(w.CTEs, children[0]), nil
}

func (w *With) String() string {
	return fmt.Sprintf("With(%d ctes)\n  %s", len(w.CTEs), w.Child)
}

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

// InsertIntoTable binds INSERT INTO target (Table) / source (Child)
// column-count and positional type compatibility; actual
// row writing is execution's concern, out of scope here.
type InsertIntoTable struct {
	UnaryNode
	Table   sql.Node
	Columns []string
}

func NewInsertIntoTable(table sql.Node, columns []string, source sql.Node) *InsertIntoTable {
	return &InsertIntoTable{UnaryNode: UnaryNode{Child: source}, Table: table, Columns: columns}
}

func (i *InsertIntoTable) Output() []sql.Attribute { return nil }

func (i *InsertIntoTable) Resolved() bool {
	return i.Child.Resolved() && i.Table.Resolved()
}

func (i *InsertIntoTable) Children() []sql.Node { return []sql.Node{i.Table, i.Child} }

func (i *InsertIntoTable) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 2 {
		return nil, ErrInvalidChildCount.New("InsertIntoTable", 2, len(children))
	}
	return NewInsertIntoTable(children[0], i.Columns, children[1]), nil
}

func (i *InsertIntoTable) String() string {
	return fmt.Sprintf("InsertIntoTable(%s)\n  %s", i.Table, i.Child)
}

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

package expression

import (
	"fmt"

	"github.com/quilldb/quill/sql"
)

type SortDirection bool

const (
	Ascending  SortDirection = true
	Descending SortDirection = false
)

// SortOrder is one ORDER BY / window-order key: an expression plus a
// direction and NULL placement.
type SortOrder struct {
	Child      sql.Expression
	Direction  SortDirection
	NullsFirst bool
}

func NewSortOrder(child sql.Expression, dir SortDirection, nullsFirst bool) SortOrder {
	return SortOrder{Child: child, Direction: dir, NullsFirst: nullsFirst}
}

func (s SortOrder) String() string {
	dir := "ASC"
	if s.Direction == Descending {
		dir = "DESC"
	}
	return fmt.Sprintf("%s %s", s.Child, dir)
}

func SortOrdersResolved(orders []SortOrder) bool {
	for _, o := range orders {
		if !o.Child.Resolved() {
			return false
		}
	}
	return true
}

func SortOrdersReferences(orders []SortOrder) sql.AttributeSet {
	out := sql.AttributeSet{}
	for _, o := range orders {
		out = out.Union(o.Child.References())
	}
	return out
}

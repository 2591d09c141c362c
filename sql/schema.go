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

package sql

// Column describes one column produced by a base relation in the catalog.
// It is distinct from an Attribute: a Column is the catalog's static
// description of a table; an Attribute (AttributeReference) is a plan-time
// binding of a concrete occurrence of that column, carrying its own
// ColumnID.
type Column struct {
	Name     string
	Source   string
	Type     Type
	Nullable bool
}

// Schema is the ordered list of columns a base relation produces.
type Schema []*Column

func (s Schema) IndexOf(name, source string, caseSensitive bool) int {
	eq := func(a, b string) bool {
		if caseSensitive {
			return a == b
		}
		return equalFold(a, b)
	}
	for i, c := range s {
		if eq(c.Name, name) && (source == "" || eq(c.Source, source)) {
			return i
		}
	}
	return -1
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

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

// UnresolvedRelation is the UnresolvedRelation sum-type tag: a FROM
// clause table reference by name, not yet looked up in the catalog.
type UnresolvedRelation struct {
	Database string
	Name     string
	Alias    string
}

func NewUnresolvedRelation(name string) *UnresolvedRelation {
	return &UnresolvedRelation{Name: name}
}

func NewUnresolvedQualifiedRelation(database, name string) *UnresolvedRelation {
	return &UnresolvedRelation{Database: database, Name: name}
}

func (r *UnresolvedRelation) WithAlias(alias string) *UnresolvedRelation {
	cp := *r
	cp.Alias = alias
	return &cp
}

func (r *UnresolvedRelation) Output() []sql.Attribute { return nil }
func (r *UnresolvedRelation) Children() []sql.Node    { return nil }
func (r *UnresolvedRelation) Resolved() bool          { return false }

func (r *UnresolvedRelation) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 0 {
		return nil, ErrInvalidChildCount.New("UnresolvedRelation", 0, len(children))
	}
	return r, nil
}

func (r *UnresolvedRelation) String() string {
	if r.Database != "" {
		return fmt.Sprintf("UnresolvedRelation(%s.%s)", r.Database, r.Name)
	}
	return fmt.Sprintf("UnresolvedRelation(%s)", r.Name)
}

// ResolvedTable is the resolved form of UnresolvedRelation: a catalog-backed base relation. The analyzer never
// reads or writes actual rows; a ResolvedTable carries only the table's
// name, database and schema, and no handle to the catalog's table object.
type ResolvedTable struct {
	Name     string
	Database string
	Schema   sql.Schema
	attrs    []sql.Attribute
}

func NewResolvedTable(database, name string, schema sql.Schema) *ResolvedTable {
	attrs := make([]sql.Attribute, len(schema))
	for i, c := range schema {
		qualifier := name
		attrs[i] = newTableAttr(c.Name, c.Type, c.Nullable, qualifier)
	}
	return &ResolvedTable{Name: name, Database: database, Schema: schema, attrs: attrs}
}

func (t *ResolvedTable) Output() []sql.Attribute { return t.attrs }
func (t *ResolvedTable) Children() []sql.Node    { return nil }
func (t *ResolvedTable) Resolved() bool          { return true }

func (t *ResolvedTable) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 0 {
		return nil, ErrInvalidChildCount.New("ResolvedTable", 0, len(children))
	}
	return t, nil
}

func (t *ResolvedTable) String() string { return fmt.Sprintf("Table(%s)", t.Name) }

// LocalRelation is an inline row source with a fixed, already-resolved
// schema (used for VALUES clauses and catalog-free analyzer tests).
type LocalRelation struct {
	Nm    string
	attrs []sql.Attribute
}

func NewLocalRelation(name string, schema sql.Schema) *LocalRelation {
	attrs := make([]sql.Attribute, len(schema))
	for i, c := range schema {
		attrs[i] = newTableAttr(c.Name, c.Type, c.Nullable, name)
	}
	return &LocalRelation{Nm: name, attrs: attrs}
}

func (l *LocalRelation) Output() []sql.Attribute { return l.attrs }
func (l *LocalRelation) Children() []sql.Node    { return nil }
func (l *LocalRelation) Resolved() bool          { return true }

func (l *LocalRelation) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 0 {
		return nil, ErrInvalidChildCount.New("LocalRelation", 0, len(children))
	}
	return l, nil
}

func (l *LocalRelation) String() string { return fmt.Sprintf("LocalRelation(%s)", l.Nm) }

// SubqueryAlias is a derived-table FROM-clause entry: `(subquery) AS
// alias`. ResolveRelations requalifies the child's output
// attributes under Name.
type SubqueryAlias struct {
	UnaryNode
	Name string
}

func NewSubqueryAlias(name string, child sql.Node) *SubqueryAlias {
	return &SubqueryAlias{UnaryNode: UnaryNode{Child: child}, Name: name}
}

func (s *SubqueryAlias) Output() []sql.Attribute {
	out := make([]sql.Attribute, len(s.Child.Output()))
	for i, a := range s.Child.Output() {
		out[i] = a.WithQualifier(s.Name)
	}
	return out
}

func (s *SubqueryAlias) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, ErrInvalidChildCount.New("SubqueryAlias", 1, len(children))
	}
	return NewSubqueryAlias(s.Name, children[0]), nil
}

func (s *SubqueryAlias) String() string { return fmt.Sprintf("SubqueryAlias(%s)\n  %s", s.Name, s.Child) }

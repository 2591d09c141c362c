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

// Package catalog is a minimal in-memory CatalogProvider (sql.Catalog's
// backing store): database/table/function/generator registries, grounded
// in the teacher's memory package (memory.NewDatabase / memory.NewTable /
// db.AddTable) but holding schema only — row storage and execution are
// out of this analyzer's scope.
package catalog

import (
	"strings"

	"github.com/quilldb/quill/sql"
	"github.com/quilldb/quill/sql/plan"
)

// Table is a base relation's static description.
type Table struct {
	Name   string
	Schema sql.Schema
}

// Database is a named collection of tables, mirroring memory.Database.
type Database struct {
	Name   string
	tables map[string]*Table
}

func NewDatabase(name string) *Database {
	return &Database{Name: name, tables: make(map[string]*Table)}
}

// AddTable registers a table by name, mirroring memory.Database.AddTable.
func (d *Database) AddTable(name string, schema sql.Schema) *Table {
	t := &Table{Name: name, Schema: schema}
	d.tables[strings.ToLower(name)] = t
	return t
}

func (d *Database) Table(name string) (*Table, bool) {
	t, ok := d.tables[strings.ToLower(name)]
	return t, ok
}

// FunctionFactory builds a bound scalar/aggregate/window function
// expression from its resolved argument expressions, the shape
// LookupFunction in resolve_functions expects from the catalog.
type FunctionFactory func(args ...sql.Expression) (sql.Expression, error)

// GeneratorFactory is FunctionFactory's analogue for table-generating
// functions (EXPLODE, ...), resolved by resolve_generators.
type GeneratorFactory func(args ...sql.Expression) (sql.Expression, error)

// Catalog is the in-memory sql.CatalogProvider implementation: a
// database registry plus a scalar/aggregate and generator function
// registry, mirroring sql.Catalog{Databases: ...} from the teacher.
type Catalog struct {
	Databases map[string]*Database
	Functions map[string]FunctionFactory
	Generators map[string]GeneratorFactory
}

func NewCatalog() *Catalog {
	return &Catalog{
		Databases:  make(map[string]*Database),
		Functions:  make(map[string]FunctionFactory),
		Generators: make(map[string]GeneratorFactory),
	}
}

func (c *Catalog) AddDatabase(name string) *Database {
	db := NewDatabase(name)
	c.Databases[strings.ToLower(name)] = db
	return db
}

func (c *Catalog) RegisterFunction(name string, f FunctionFactory) {
	c.Functions[strings.ToLower(name)] = f
}

func (c *Catalog) RegisterGenerator(name string, f GeneratorFactory) {
	c.Generators[strings.ToLower(name)] = f
}

func (c *Catalog) database(name string) (*Database, bool) {
	db, ok := c.Databases[strings.ToLower(name)]
	return db, ok
}

// LookupRelation implements sql.CatalogProvider: resolve_tables
// calls this once per UnresolvedRelation.
func (c *Catalog) LookupRelation(database, table string) (sql.Node, error) {
	db, ok := c.database(database)
	if !ok {
		return nil, sql.ErrNoSuchTable.New(database + "." + table)
	}
	t, ok := db.Table(table)
	if !ok {
		return nil, sql.ErrNoSuchTable.New(table)
	}
	return plan.NewResolvedTable(db.Name, t.Name, t.Schema), nil
}

// LookupFunction implements sql.CatalogProvider for resolve_functions:
// scalar and aggregate functions share one namespace.
func (c *Catalog) LookupFunction(name string, args []sql.Expression) (sql.Expression, error) {
	f, ok := c.Functions[strings.ToLower(name)]
	if !ok {
		return nil, sql.ErrUnknownFunction.New(name)
	}
	return f(args...)
}

// LookupGenerator implements sql.CatalogProvider for resolve_generators.
func (c *Catalog) LookupGenerator(name string, args []sql.Expression) (sql.Expression, error) {
	f, ok := c.Generators[strings.ToLower(name)]
	if !ok {
		return nil, sql.ErrUnknownFunction.New(name)
	}
	return f(args...)
}

func (c *Catalog) DatabaseExists(name string) bool {
	_, ok := c.database(name)
	return ok
}

func (c *Catalog) TableExists(database, table string) bool {
	db, ok := c.database(database)
	if !ok {
		return false
	}
	_, ok = db.Table(table)
	return ok
}

var _ sql.CatalogProvider = (*Catalog)(nil)

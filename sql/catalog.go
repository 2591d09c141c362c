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

// Catalog is the external collaborator that resolves table and function
// identifiers. The analyzer only ever calls through this interface;
// it never inspects how tables or functions are stored.
type Catalog struct {
	impl CatalogProvider
}

func NewCatalog(impl CatalogProvider) *Catalog {
	return &Catalog{impl: impl}
}

// CatalogProvider is implemented by whatever backs table/function/database
// lookups. The in-memory reference implementation lives in package
// catalog; production engines plug in their own.
type CatalogProvider interface {
	// LookupRelation resolves a table identifier (optionally qualified by
	// database) to a base-relation plan. Returns ErrNoSuchTable when
	// absent.
	LookupRelation(database, table string) (Node, error)
	// LookupFunction resolves a (possibly qualified) function name given
	// already-resolved argument expressions to a concrete Expression.
	LookupFunction(name string, args []Expression) (Expression, error)
	// LookupGenerator resolves a function name to a table-generating
	// function, distinct from LookupFunction because the two namespaces
	// may overlap without colliding (e.g. a scalar and table-valued EXPLODE
	// aren't expected to, but the catalog decides).
	LookupGenerator(name string, args []Expression) (Expression, error)
	DatabaseExists(name string) bool
	TableExists(database, table string) bool
}

func (c *Catalog) LookupRelation(database, table string) (Node, error) {
	return c.impl.LookupRelation(database, table)
}

func (c *Catalog) LookupFunction(name string, args []Expression) (Expression, error) {
	return c.impl.LookupFunction(name, args)
}

func (c *Catalog) LookupGenerator(name string, args []Expression) (Expression, error) {
	return c.impl.LookupGenerator(name, args)
}

func (c *Catalog) DatabaseExists(name string) bool { return c.impl.DatabaseExists(name) }

func (c *Catalog) TableExists(database, table string) bool {
	return c.impl.TableExists(database, table)
}

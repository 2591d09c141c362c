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

package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quilldb/quill/sql"
	"github.com/quilldb/quill/sql/expression"
	"github.com/quilldb/quill/sql/plan"
)

func TestLookupRelationResolvesTable(t *testing.T) {
	c := NewCatalog()
	db := c.AddDatabase("mydb")
	schema := sql.Schema{{Name: "i", Type: sql.Int32}}
	db.AddTable("mytable", schema)

	n, err := c.LookupRelation("mydb", "mytable")
	require.NoError(t, err)
	resolved, ok := n.(*plan.ResolvedTable)
	require.True(t, ok)
	require.Equal(t, "mytable", resolved.Name)
	require.Equal(t, "mydb", resolved.Database)
}

func TestLookupRelationIsCaseInsensitive(t *testing.T) {
	c := NewCatalog()
	db := c.AddDatabase("MyDB")
	db.AddTable("MyTable", sql.Schema{{Name: "i", Type: sql.Int32}})

	n, err := c.LookupRelation("mydb", "mytable")
	require.NoError(t, err)
	require.NotNil(t, n)
}

func TestLookupRelationUnknownDatabaseOrTable(t *testing.T) {
	c := NewCatalog()
	c.AddDatabase("mydb")

	_, err := c.LookupRelation("missing", "t")
	require.Error(t, err)
	require.True(t, sql.ErrNoSuchTable.Is(err))

	_, err = c.LookupRelation("mydb", "missing")
	require.Error(t, err)
	require.True(t, sql.ErrNoSuchTable.Is(err))
}

func TestLookupFunctionResolvesRegisteredFactory(t *testing.T) {
	c := NewCatalog()
	c.RegisterFunction("abs", func(args ...sql.Expression) (sql.Expression, error) {
		return expression.NewUnresolvedFunction("abs_resolved", false, nil, args...), nil
	})

	arg := expression.NewLiteral(-1, sql.Int32)
	resolved, err := c.LookupFunction("ABS", []sql.Expression{arg})
	require.NoError(t, err)
	fn, ok := resolved.(*expression.UnresolvedFunction)
	require.True(t, ok)
	require.Equal(t, "abs_resolved", fn.FuncName)
}

func TestLookupFunctionUnknownErrors(t *testing.T) {
	c := NewCatalog()
	_, err := c.LookupFunction("nope", nil)
	require.Error(t, err)
	require.True(t, sql.ErrUnknownFunction.Is(err))
}

func TestLookupGeneratorUnknownErrors(t *testing.T) {
	c := NewCatalog()
	_, err := c.LookupGenerator("nope", nil)
	require.Error(t, err)
	require.True(t, sql.ErrUnknownFunction.Is(err))
}

func TestDatabaseAndTableExists(t *testing.T) {
	c := NewCatalog()
	db := c.AddDatabase("mydb")
	db.AddTable("t", sql.Schema{{Name: "i", Type: sql.Int32}})

	require.True(t, c.DatabaseExists("mydb"))
	require.False(t, c.DatabaseExists("other"))
	require.True(t, c.TableExists("mydb", "t"))
	require.False(t, c.TableExists("mydb", "missing"))
	require.False(t, c.TableExists("other", "t"))
}

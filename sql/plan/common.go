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

// Package plan holds the logical plan operators the analyzer resolves
// and rewrites. Every type implements sql.Node; most also
// implement sql.Expressioner so transform.NodeExprs can reach their
// expression lists uniformly.
package plan

import (
	"github.com/quilldb/quill/sql"
	"github.com/quilldb/quill/sql/expression"
)

// UnaryNode embeds the boilerplate shared by every single-child operator.
type UnaryNode struct {
	Child sql.Node
}

func (n UnaryNode) Children() []sql.Node { return []sql.Node{n.Child} }

func (n UnaryNode) Resolved() bool { return n.Child.Resolved() }

// BinaryNode embeds the boilerplate shared by every two-child operator.
type BinaryNode struct {
	Left, Right sql.Node
}

func (n BinaryNode) Children() []sql.Node { return []sql.Node{n.Left, n.Right} }

func (n BinaryNode) Resolved() bool { return n.Left.Resolved() && n.Right.Resolved() }

// schemaFromNamed builds the Output() attribute list a projecting
// operator exposes from its NamedExpression list, minting attributes for
// unnamed expressions is never valid here since every projected
// expression must be a NamedExpression by the time this is called.
func schemaFromNamed(exprs []sql.Expression) []sql.Attribute {
	out := make([]sql.Attribute, len(exprs))
	for i, e := range exprs {
		if named, ok := e.(sql.NamedExpression); ok {
			out[i] = named.ToAttribute()
			continue
		}
		out[i] = expression.NewAttribute(e.String(), e.Type(), e.Nullable(), "")
	}
	return out
}

// newTableAttr mints a fresh attribute for a base-relation column,
// qualified by the relation's name, used by ResolvedTable/LocalRelation.
func newTableAttr(name string, typ sql.Type, nullable bool, qualifier string) sql.Attribute {
	return expression.NewAttribute(name, typ, nullable, qualifier)
}

func expressionsResolved(exprs []sql.Expression) bool {
	for _, e := range exprs {
		if !e.Resolved() {
			return false
		}
	}
	return true
}

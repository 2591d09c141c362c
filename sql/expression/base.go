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

// Package expression holds the concrete Expression node types the
// analyzer rewrites: the Unresolved* sum-type tags and their resolved
// counterparts.
package expression

import (
	"strings"

	"github.com/quilldb/quill/sql"
)

// exprList renders a comma-joined argument list, shared by every
// variadic expression's String().
func exprList(args []sql.Expression) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return strings.Join(parts, ", ")
}

// unary embeds the boilerplate shared by every single-child expression:
// Children/References/Foldable/Deterministic in terms of the one child.
type unary struct {
	Child sql.Expression
}

func (u unary) Children() []sql.Expression { return []sql.Expression{u.Child} }

func (u unary) References() sql.AttributeSet {
	if u.Child == nil {
		return sql.AttributeSet{}
	}
	return u.Child.References()
}

func (u unary) Foldable() bool {
	return u.Child == nil || u.Child.Foldable()
}

func (u unary) Deterministic() bool {
	return u.Child == nil || u.Child.Deterministic()
}

func (u unary) Resolved() bool {
	return u.Child != nil && u.Child.Resolved()
}

// binary embeds the boilerplate shared by every two-child expression.
type binary struct {
	Left, Right sql.Expression
}

func (b binary) Children() []sql.Expression { return []sql.Expression{b.Left, b.Right} }

func (b binary) References() sql.AttributeSet {
	return b.Left.References().Union(b.Right.References())
}

func (b binary) Foldable() bool { return b.Left.Foldable() && b.Right.Foldable() }

func (b binary) Deterministic() bool { return b.Left.Deterministic() && b.Right.Deterministic() }

func (b binary) Resolved() bool { return b.Left.Resolved() && b.Right.Resolved() }

// nary embeds the boilerplate shared by variadic expressions (tuples,
// function calls, CreateStruct/CreateArray, ...).
type nary struct {
	Args []sql.Expression
}

func (n nary) Children() []sql.Expression { return n.Args }

func (n nary) References() sql.AttributeSet {
	return sql.ExpressionsReferences(n.Args)
}

func (n nary) Foldable() bool {
	for _, a := range n.Args {
		if !a.Foldable() {
			return false
		}
	}
	return true
}

func (n nary) Deterministic() bool {
	for _, a := range n.Args {
		if !a.Deterministic() {
			return false
		}
	}
	return true
}

func (n nary) Resolved() bool {
	return sql.ExpressionsResolved(n.Args...)
}

// leaf embeds the boilerplate shared by childless expressions (Literal,
// Star, AttributeReference, ...).
type leaf struct{}

func (leaf) Children() []sql.Expression    { return nil }
func (leaf) References() sql.AttributeSet  { return sql.AttributeSet{} }
func (leaf) Foldable() bool                { return true }
func (leaf) Deterministic() bool           { return true }

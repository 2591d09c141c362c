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
	"strings"

	"github.com/quilldb/quill/sql"
)

// Alias names a child expression and mints a fresh ColumnID for it.
// Explicit aliases (`x AS y`) and rule-generated aliases (a lifted HAVING
// condition, a window sub-expression, ...) are the same type; Explicit
// only affects whether CleanupAliases is willing to remove it.
type Alias struct {
	unary
	name     string
	id       sql.ColumnID
	qualifier string
	Explicit bool
}

func NewAlias(name string, child sql.Expression) *Alias {
	return &Alias{unary: unary{Child: child}, name: name, id: sql.NewColumnID(), Explicit: true}
}

// NewGeneratedAlias builds an alias the analyzer itself introduces (not
// written by the user), such as the "_w0" sub-expression lifts in window
// extraction or the "havingCondition" alias in HAVING lifting.
func NewGeneratedAlias(name string, child sql.Expression) *Alias {
	return &Alias{unary: unary{Child: child}, name: name, id: sql.NewColumnID(), Explicit: false}
}

func (a *Alias) Type() sql.Type { return a.Child.Type() }
func (a *Alias) Nullable() bool { return a.Child.Nullable() }
func (a *Alias) Name() string   { return a.name }
func (a *Alias) ID() sql.ColumnID { return a.id }
func (a *Alias) Qualifier() string { return a.qualifier }

func (a *Alias) ToAttribute() sql.Attribute {
	var typ sql.Type = sql.Unknown
	nullable := true
	if a.Child != nil && a.Child.Resolved() {
		typ = a.Child.Type()
		nullable = a.Child.Nullable()
	}
	return NewAttributeReference(a.name, typ, nullable, a.id, a.qualifier)
}

func (a *Alias) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, ErrInvalidChildCount.New("Alias", 1, len(children))
	}
	cp := *a
	cp.Child = children[0]
	return &cp, nil
}

// WithID returns a copy of this alias carrying id as its ColumnID.
func (a *Alias) WithID(id sql.ColumnID) *Alias {
	cp := *a
	cp.id = id
	return &cp
}

func (a *Alias) String() string {
	return fmt.Sprintf("%s AS %s#%d", a.Child, a.name, a.id)
}

// MultiAlias names a single child expression with more than one output
// column (`LATERAL VIEW EXPLODE(m) t AS k, v`): the generator's own
// ElementSchema supplies the types, this just supplies the names.
// extractGenerators is the only consumer; it is never itself a
// NamedExpression since it has no single name to report.
type MultiAlias struct {
	unary
	Names []string
}

func NewMultiAlias(names []string, child sql.Expression) *MultiAlias {
	return &MultiAlias{unary: unary{Child: child}, Names: names}
}

func (m *MultiAlias) Type() sql.Type { return m.Child.Type() }
func (m *MultiAlias) Nullable() bool { return m.Child.Nullable() }

func (m *MultiAlias) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, ErrInvalidChildCount.New("MultiAlias", 1, len(children))
	}
	cp := *m
	cp.Child = children[0]
	return &cp, nil
}

func (m *MultiAlias) String() string {
	return fmt.Sprintf("%s AS (%s)", m.Child, strings.Join(m.Names, ", "))
}

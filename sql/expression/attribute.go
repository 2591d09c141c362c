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

// AttributeReference is the resolved form of a column reference: it
// carries the ColumnID that uniquely identifies the column position it
// binds to. Two AttributeReferences with the same ID denote the same
// logical column, regardless of name/qualifier cosmetics.
type AttributeReference struct {
	leaf
	name      string
	typ       sql.Type
	nullable  bool
	id        sql.ColumnID
	qualifier string
}

func NewAttributeReference(name string, typ sql.Type, nullable bool, id sql.ColumnID, qualifier string) *AttributeReference {
	return &AttributeReference{name: name, typ: typ, nullable: nullable, id: id, qualifier: qualifier}
}

// NewAttribute mints a fresh AttributeReference with a brand-new ColumnID,
// used whenever a rule introduces a new named column (aliasing, generator
// output, de-duplication).
func NewAttribute(name string, typ sql.Type, nullable bool, qualifier string) *AttributeReference {
	return NewAttributeReference(name, typ, nullable, sql.NewColumnID(), qualifier)
}

func (a *AttributeReference) Resolved() bool    { return true }
func (a *AttributeReference) Type() sql.Type    { return a.typ }
func (a *AttributeReference) Nullable() bool    { return a.nullable }
func (a *AttributeReference) Foldable() bool    { return false }
func (a *AttributeReference) Name() string      { return a.name }
func (a *AttributeReference) ID() sql.ColumnID  { return a.id }
func (a *AttributeReference) Qualifier() string { return a.qualifier }

func (a *AttributeReference) References() sql.AttributeSet {
	return sql.NewAttributeSet(a)
}

func (a *AttributeReference) ToAttribute() sql.Attribute { return a }

func (a *AttributeReference) WithID(id sql.ColumnID) sql.Attribute {
	cp := *a
	cp.id = id
	return &cp
}

func (a *AttributeReference) WithQualifier(q string) sql.Attribute {
	cp := *a
	cp.qualifier = q
	return &cp
}

func (a *AttributeReference) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, ErrInvalidChildCount.New("AttributeReference", 0, len(children))
	}
	return a, nil
}

func (a *AttributeReference) String() string {
	if a.qualifier != "" {
		return fmt.Sprintf("%s.%s#%d", a.qualifier, a.name, a.id)
	}
	return fmt.Sprintf("%s#%d", a.name, a.id)
}

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

// GetStructField is the resolved form of UnresolvedExtractValue when the
// child's type is a struct.
type GetStructField struct {
	unary
	FieldName string
	FieldIdx  int
	FieldType sql.Type
}

func NewGetStructField(child sql.Expression, fieldName string, idx int, typ sql.Type) *GetStructField {
	return &GetStructField{unary: unary{Child: child}, FieldName: fieldName, FieldIdx: idx, FieldType: typ}
}

func (g *GetStructField) Type() sql.Type { return g.FieldType }
func (g *GetStructField) Nullable() bool { return true }
func (g *GetStructField) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, ErrInvalidChildCount.New("GetStructField", 1, len(children))
	}
	return NewGetStructField(children[0], g.FieldName, g.FieldIdx, g.FieldType), nil
}
func (g *GetStructField) String() string { return fmt.Sprintf("%s.%s", g.Child, g.FieldName) }

// GetMapValue is the resolved form of UnresolvedExtractValue when the
// child's type is a map.
type GetMapValue struct {
	binary
	ValueType sql.Type
}

func NewGetMapValue(m, key sql.Expression, valueType sql.Type) *GetMapValue {
	return &GetMapValue{binary: binary{Left: m, Right: key}, ValueType: valueType}
}

func (g *GetMapValue) Type() sql.Type { return g.ValueType }
func (g *GetMapValue) Nullable() bool { return true }
func (g *GetMapValue) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, ErrInvalidChildCount.New("GetMapValue", 2, len(children))
	}
	return NewGetMapValue(children[0], children[1], g.ValueType), nil
}
func (g *GetMapValue) String() string { return fmt.Sprintf("%s[%s]", g.Left, g.Right) }

// GetArrayItem is the resolved form of UnresolvedExtractValue when the
// child's type is an array.
type GetArrayItem struct {
	binary
	ElementType sql.Type
}

func NewGetArrayItem(arr, idx sql.Expression, elemType sql.Type) *GetArrayItem {
	return &GetArrayItem{binary: binary{Left: arr, Right: idx}, ElementType: elemType}
}

func (g *GetArrayItem) Type() sql.Type { return g.ElementType }
func (g *GetArrayItem) Nullable() bool { return true }
func (g *GetArrayItem) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, ErrInvalidChildCount.New("GetArrayItem", 2, len(children))
	}
	return NewGetArrayItem(children[0], children[1], g.ElementType), nil
}
func (g *GetArrayItem) String() string { return fmt.Sprintf("%s[%s]", g.Left, g.Right) }

// ResolveExtractValue chooses the concrete getter for an
// UnresolvedExtractValue once its child is resolved, per the child's
// DataType. Returns nil, false if the child's type supports none of
// struct/map/array extraction.
func ResolveExtractValue(child sql.Expression, field string) (sql.Expression, bool) {
	switch t := child.Type().(type) {
	case sql.StructType:
		idx := t.FieldIndex(field)
		if idx < 0 {
			return nil, false
		}
		return NewGetStructField(child, field, idx, t.Fields[idx].Type), true
	case sql.MapType:
		return NewGetMapValue(child, NewLiteral(field, sql.Text), t.Value), true
	case sql.ArrayType:
		return NewGetArrayItem(child, NewLiteral(field, sql.Int64), t.Element), true
	}
	return nil, false
}

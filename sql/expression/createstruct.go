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

// CreateStruct builds a StructType value from alternating name/value
// pairs already split into parallel slices. ResolveTimeWindows uses it to
// build the (window_start, window_end) struct column.
type CreateStruct struct {
	nary
	Names []string
}

func NewCreateStruct(names []string, values []sql.Expression) *CreateStruct {
	return &CreateStruct{nary: nary{Args: values}, Names: names}
}

func (c *CreateStruct) Type() sql.Type {
	fields := make([]sql.StructField, len(c.Args))
	for i, a := range c.Args {
		fields[i] = sql.StructField{Name: c.Names[i], Type: a.Type()}
	}
	return sql.StructType{Fields: fields}
}

func (c *CreateStruct) Nullable() bool { return false }

func (c *CreateStruct) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != len(c.Names) {
		return nil, ErrInvalidChildCount.New("CreateStruct", len(c.Names), len(children))
	}
	return NewCreateStruct(c.Names, children), nil
}

func (c *CreateStruct) String() string {
	return fmt.Sprintf("struct(%s)", exprList(c.Args))
}

// CreateArray builds an ArrayType value from a homogeneous element list.
type CreateArray struct {
	nary
}

func NewCreateArray(elems ...sql.Expression) *CreateArray { return &CreateArray{nary{Args: elems}} }

func (c *CreateArray) Type() sql.Type {
	if len(c.Args) == 0 {
		return sql.ArrayType{Element: sql.Unknown}
	}
	return sql.ArrayType{Element: c.Args[0].Type()}
}

func (c *CreateArray) Nullable() bool { return false }

func (c *CreateArray) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	return NewCreateArray(children...), nil
}

func (c *CreateArray) String() string { return fmt.Sprintf("array(%s)", exprList(c.Args)) }

// CreateMap builds a MapType value from alternating key, value, key,
// value, ... arguments.
type CreateMap struct {
	nary
}

func NewCreateMap(kv ...sql.Expression) *CreateMap { return &CreateMap{nary{Args: kv}} }

func (c *CreateMap) Type() sql.Type {
	if len(c.Args) < 2 {
		return sql.MapType{Key: sql.Unknown, Value: sql.Unknown}
	}
	return sql.MapType{Key: c.Args[0].Type(), Value: c.Args[1].Type()}
}

func (c *CreateMap) Nullable() bool { return false }

func (c *CreateMap) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children)%2 != 0 {
		return nil, ErrInvalidChildCount.New("CreateMap", len(children)+1, len(children))
	}
	return NewCreateMap(children...), nil
}

func (c *CreateMap) String() string { return fmt.Sprintf("map(%s)", exprList(c.Args)) }

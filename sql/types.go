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

import "fmt"

// Type is the minimal surface the analyzer needs from the (consumed,
// externally defined) type system: enough to print diagnostics and to let
// rules that are type-sensitive (UpCast legality, UDF null guards) make a
// decision, without reimplementing MySQL/SQL type semantics. A real engine
// plugs in its own richer Type; the analyzer never does more than compare
// and print these.
type Type interface {
	fmt.Stringer
	// Equals reports whether two types are the same for resolution
	// purposes (not necessarily bit-identical storage representations).
	Equals(Type) bool
	// Numeric reports whether values of this type participate in numeric
	// promotion.
	Numeric() bool
}

type baseType struct {
	name    string
	numeric bool
}

func (t baseType) String() string        { return t.name }
func (t baseType) Equals(o Type) bool    { ot, ok := o.(baseType); return ok && ot.name == t.name }
func (t baseType) Numeric() bool         { return t.numeric }

var (
	Boolean   Type = baseType{name: "BOOLEAN"}
	Int32     Type = baseType{name: "INT", numeric: true}
	Int64     Type = baseType{name: "BIGINT", numeric: true}
	Float64   Type = baseType{name: "DOUBLE", numeric: true}
	Decimal   Type = baseType{name: "DECIMAL", numeric: true}
	Text      Type = baseType{name: "TEXT"}
	Date      Type = baseType{name: "DATE"}
	Timestamp Type = baseType{name: "TIMESTAMP"}
	Null      Type = baseType{name: "NULL"}
	Unknown   Type = baseType{name: "UNKNOWN"}
)

// IsPrimitive reports whether t is a scalar base type (BOOLEAN, INT,
// TEXT, ...) as opposed to a composite STRUCT/MAP/ARRAY type. UDF null
// guarding only wraps primitive-typed parameters: a struct/map/array
// argument's own fields carry their own nullability, so IsNull on the
// whole composite isn't what "this parameter is null" means for it.
func IsPrimitive(t Type) bool {
	_, ok := t.(baseType)
	return ok
}

// StructType models a struct-valued column, used by extract-value binding
// to pick the struct-field getter.
type StructType struct {
	Fields []StructField
}

type StructField struct {
	Name string
	Type Type
}

func (t StructType) String() string {
	return "STRUCT"
}

func (t StructType) Equals(o Type) bool {
	ot, ok := o.(StructType)
	if !ok || len(ot.Fields) != len(t.Fields) {
		return false
	}
	for i, f := range t.Fields {
		if f.Name != ot.Fields[i].Name || !f.Type.Equals(ot.Fields[i].Type) {
			return false
		}
	}
	return true
}

func (t StructType) Numeric() bool { return false }

func (t StructType) FieldIndex(name string) int {
	for i, f := range t.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// MapType models a map-valued column, used by extract-value binding.
type MapType struct {
	Key   Type
	Value Type
}

func (t MapType) String() string     { return fmt.Sprintf("MAP<%s,%s>", t.Key, t.Value) }
func (t MapType) Equals(o Type) bool { ot, ok := o.(MapType); return ok && t.Key.Equals(ot.Key) && t.Value.Equals(ot.Value) }
func (t MapType) Numeric() bool      { return false }

// ArrayType models an array-valued column, used by extract-value binding.
type ArrayType struct {
	Element Type
}

func (t ArrayType) String() string     { return fmt.Sprintf("ARRAY<%s>", t.Element) }
func (t ArrayType) Equals(o Type) bool { ot, ok := o.(ArrayType); return ok && t.Element.Equals(ot.Element) }
func (t ArrayType) Numeric() bool      { return false }

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
	"reflect"

	"github.com/quilldb/quill/sql"
)

// UserFunc wraps a registered user-defined function. Unlike a JVM-hosted
// analyzer, Go has no runtime reflection over an unevaluated method's
// parameter types until the function value itself is in hand, so the
// catalog captures ArgTypes/ReturnType via reflect.TypeOf at registration
// time and hands them to the analyzer alongside the callable.
type UserFunc struct {
	nary
	Name         string
	Fn           reflect.Value
	ArgTypes     []sql.Type
	ReturnType   sql.Type
	NullOnNull   bool // HandleNullInputsForUDF: short-circuit to NULL if any arg is NULL
}

func NewUserFunc(name string, fn reflect.Value, argTypes []sql.Type, returnType sql.Type, nullOnNull bool, args ...sql.Expression) *UserFunc {
	return &UserFunc{
		nary:       nary{Args: args},
		Name:       name,
		Fn:         fn,
		ArgTypes:   argTypes,
		ReturnType: returnType,
		NullOnNull: nullOnNull,
	}
}

func (u *UserFunc) Type() sql.Type { return u.ReturnType }
func (u *UserFunc) Nullable() bool { return true }

func (u *UserFunc) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != len(u.ArgTypes) {
		return nil, ErrInvalidChildCount.New(u.Name, len(u.ArgTypes), len(children))
	}
	cp := *u
	cp.Args = children
	return &cp, nil
}

func (u *UserFunc) String() string { return fmt.Sprintf("%s(%s)", u.Name, exprList(u.Args)) }

// WrapNullGuard wraps a resolved UserFunc body in an IsNull check over its
// primitive-typed parameters when NullOnNull is set, so the evaluator
// never has to invoke Fn with a NULL scalar argument. A struct/map/array
// parameter is left unguarded here: NULL-ness for a composite value isn't
// "the whole argument is NULL", so handle_null_udf doesn't fold it into
// the OR.
func (u *UserFunc) WrapNullGuard() sql.Expression {
	if !u.NullOnNull {
		return u
	}
	var cond sql.Expression
	for i, a := range u.Args {
		if i >= len(u.ArgTypes) || !sql.IsPrimitive(u.ArgTypes[i]) {
			continue
		}
		if cond == nil {
			cond = NewIsNull(a)
		} else {
			cond = NewOr(cond, NewIsNull(a))
		}
	}
	if cond == nil {
		return u
	}
	return NewIf(cond, NewLiteral(nil, u.ReturnType), u)
}

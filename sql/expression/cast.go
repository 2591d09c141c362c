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

// Cast is an explicit, always-legal type conversion.
type Cast struct {
	unary
	To sql.Type
}

func NewCast(child sql.Expression, to sql.Type) *Cast {
	return &Cast{unary: unary{Child: child}, To: to}
}

func (c *Cast) Type() sql.Type { return c.To }
func (c *Cast) Nullable() bool { return c.Child.Nullable() }

func (c *Cast) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, ErrInvalidChildCount.New("Cast", 1, len(children))
	}
	return NewCast(children[0], c.To), nil
}

func (c *Cast) String() string { return fmt.Sprintf("CAST(%s AS %s)", c.Child, c.To) }

// UpCast is an implicit widening conversion inserted by the analyzer or
// the encoder framework. Unlike Cast it is only legal when the source and
// destination types form a known-safe widening; ResolveUpCast
// either rewrites it to a Cast or raises ErrUpCastTruncation.
type UpCast struct {
	unary
	To sql.Type
}

func NewUpCast(child sql.Expression, to sql.Type) *UpCast {
	return &UpCast{unary: unary{Child: child}, To: to}
}

func (c *UpCast) Resolved() bool { return false }
func (c *UpCast) Type() sql.Type { return sql.Unknown }
func (c *UpCast) Nullable() bool { return true }

func (c *UpCast) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, ErrInvalidChildCount.New("UpCast", 1, len(children))
	}
	return NewUpCast(children[0], c.To), nil
}

func (c *UpCast) String() string { return fmt.Sprintf("UPCAST(%s AS %s)", c.Child, c.To) }

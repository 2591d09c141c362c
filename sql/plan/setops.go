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

package plan

import (
	"fmt"

	"github.com/quilldb/quill/sql"
)

// setOp embeds the schema/resolution logic shared by Union/Intersect/
// Except: column-count and (loosely) type compatibility across branches
//, output attributes taken from the left branch.
type setOp struct {
	BinaryNode
	All bool
}

func (s *setOp) Output() []sql.Attribute { return s.Left.Output() }

func (s *setOp) Resolved() bool {
	if !s.BinaryNode.Resolved() {
		return false
	}
	return len(s.Left.Output()) == len(s.Right.Output())
}

// Union is UNION [ALL]: row-wise concatenation of two same-arity
// relations.
type Union struct{ setOp }

func NewUnion(left, right sql.Node, all bool) *Union {
	return &Union{setOp{BinaryNode: BinaryNode{Left: left, Right: right}, All: all}}
}

func (u *Union) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 2 {
		return nil, ErrInvalidChildCount.New("Union", 2, len(children))
	}
	return NewUnion(children[0], children[1], u.All), nil
}

func (u *Union) String() string {
	kw := "Union"
	if u.All {
		kw = "UnionAll"
	}
	return fmt.Sprintf("%s\n  %s\n  %s", kw, u.Left, u.Right)
}

// Intersect is INTERSECT [ALL].
type Intersect struct{ setOp }

func NewIntersect(left, right sql.Node, all bool) *Intersect {
	return &Intersect{setOp{BinaryNode: BinaryNode{Left: left, Right: right}, All: all}}
}

func (i *Intersect) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 2 {
		return nil, ErrInvalidChildCount.New("Intersect", 2, len(children))
	}
	return NewIntersect(children[0], children[1], i.All), nil
}

func (i *Intersect) String() string {
	return fmt.Sprintf("Intersect\n  %s\n  %s", i.Left, i.Right)
}

// Except is EXCEPT [ALL].
type Except struct{ setOp }

func NewExcept(left, right sql.Node, all bool) *Except {
	return &Except{setOp{BinaryNode: BinaryNode{Left: left, Right: right}, All: all}}
}

func (e *Except) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 2 {
		return nil, ErrInvalidChildCount.New("Except", 2, len(children))
	}
	return NewExcept(children[0], children[1], e.All), nil
}

func (e *Except) String() string {
	return fmt.Sprintf("Except\n  %s\n  %s", e.Left, e.Right)
}

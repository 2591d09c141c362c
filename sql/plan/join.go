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

// JoinType enumerates the join kinds the analyzer must resolve
// conditions and output schemas for.
type JoinType int

const (
	InnerJoin JoinType = iota
	LeftOuterJoin
	RightOuterJoin
	FullOuterJoin
	CrossJoin
	LeftSemiJoin
	LeftAntiJoin
)

func (t JoinType) String() string {
	switch t {
	case LeftOuterJoin:
		return "LeftOuterJoin"
	case RightOuterJoin:
		return "RightOuterJoin"
	case FullOuterJoin:
		return "FullOuterJoin"
	case CrossJoin:
		return "CrossJoin"
	case LeftSemiJoin:
		return "LeftSemiJoin"
	case LeftAntiJoin:
		return "LeftAntiJoin"
	default:
		return "InnerJoin"
	}
}

// Join combines two relations under an optional condition. Condition is
// nil for CrossJoin and for a not-yet-specified NATURAL/USING join before
// resolve_natural_join expands it.
type Join struct {
	BinaryNode
	Kind      JoinType
	Condition sql.Expression
}

func NewJoin(kind JoinType, condition sql.Expression, left, right sql.Node) *Join {
	return &Join{BinaryNode: BinaryNode{Left: left, Right: right}, Kind: kind, Condition: condition}
}

func NewCrossJoin(left, right sql.Node) *Join {
	return &Join{BinaryNode: BinaryNode{Left: left, Right: right}, Kind: CrossJoin}
}

func (j *Join) Output() []sql.Attribute {
	switch j.Kind {
	case LeftSemiJoin, LeftAntiJoin:
		return j.Left.Output()
	default:
		return append(append([]sql.Attribute{}, j.Left.Output()...), j.Right.Output()...)
	}
}

func (j *Join) Resolved() bool {
	if !j.BinaryNode.Resolved() {
		return false
	}
	return j.Condition == nil || j.Condition.Resolved()
}

func (j *Join) Expressions() []sql.Expression {
	if j.Condition == nil {
		return nil
	}
	return []sql.Expression{j.Condition}
}

func (j *Join) WithExpressions(e ...sql.Expression) (sql.Node, error) {
	if len(e) == 0 {
		return NewJoin(j.Kind, nil, j.Left, j.Right), nil
	}
	if len(e) != 1 {
		return nil, ErrInvalidChildCount.New("Join.expressions", 1, len(e))
	}
	return NewJoin(j.Kind, e[0], j.Left, j.Right), nil
}

func (j *Join) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 2 {
		return nil, ErrInvalidChildCount.New("Join", 2, len(children))
	}
	return NewJoin(j.Kind, j.Condition, children[0], children[1]), nil
}

func (j *Join) String() string {
	return fmt.Sprintf("%s(%s)\n  %s\n  %s", j.Kind, j.Condition, j.Left, j.Right)
}

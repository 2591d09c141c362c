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

// AggregateFunction marks an Expression as an aggregate (SUM, COUNT, ...).
// Invariant 4: these may only appear inside an Aggregate operator or
// wrapped in a WindowExpression inside a Window operator.
type AggregateFunction interface {
	Expression
	AggregateFunction()
}

// WindowFunction marks an Expression as meaningful only inside a Window
// operator's WindowExpression wrapper (RANK, ROW_NUMBER, LAG, ...).
type WindowFunction interface {
	Expression
	WindowFunction()
}

// RankLike marks the subset of WindowFunctions that require an ORDER BY in
// their window spec.
type RankLike interface {
	WindowFunction
	RankLike()
}

// FrameRequirement lets a window function state an opinion about its
// frame, consulted by ResolveWindowFrame.
type FrameRequirement interface {
	WindowFunction
	// RequiredFrame returns the mandatory frame for this function, or nil
	// if it has none.
	RequiredFrame() *WindowFrame
}

// Generator marks an Expression as a table-generating function (EXPLODE,
// ...): zero or more output rows per input row. Invariant 5:
// generators may only appear inside a Generate operator.
type Generator interface {
	Expression
	// ElementSchema describes the columns a single application of this
	// generator produces, used when no explicit aliases are supplied.
	ElementSchema() Schema
}

// NonDeterministicExpression is implemented by expressions whose result
// varies across evaluations with the same input (RAND(), UUID(), ...).
// PullOutNondeterministic extracts these from non-projection
// operators.
type NonDeterministicExpression interface {
	Expression
	IsNonDeterministic() bool
}

// MaxOrMin is implemented by the Max/Min aggregate so function binding can
// special-case dropping a redundant DISTINCT.
type MaxOrMin interface {
	AggregateFunction
	MaxOrMin()
}

// AggregateWindowFunction marks the subset of aggregate functions that are
// themselves window functions (e.g. SUM used as a window aggregate): these
// resolve bare rather than being wrapped in AggregateExpression.
type AggregateWindowFunction interface {
	AggregateFunction
	WindowFunction
}

// IgnoreNullsAggregate is implemented by FIRST/LAST so Pivot's rewrite can
// special-case their ignoreNulls flag.
type IgnoreNullsAggregate interface {
	AggregateFunction
	WithIgnoreNulls(bool) Expression
}

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

// Node is a LogicalPlan tree node. Concrete operators live
// in sql/plan.
type Node interface {
	// Output is the ordered sequence of attributes this node produces.
	// Empty until the node and its children are resolved.
	Output() []Attribute
	// Children returns this node's child plans, in order.
	Children() []Node
	// WithChildren returns a copy of this node with its children replaced.
	// len(children) must equal len(n.Children()), or an arity error.
	WithChildren(children ...Node) (Node, error)
	// Resolved reports whether this node and all its children are fully
	// resolved: every expression typed, no Unresolved* reachable.
	Resolved() bool
	String() string
}

// Expressioner is implemented by nodes that carry expressions directly
// (Project's list, Filter's condition, Aggregate's grouping+aggregate
// expressions, Sort's order, ...). The rule executor's
// TransformExpressions* combinators only descend into nodes implementing
// this interface.
type Expressioner interface {
	Node
	Expressions() []Expression
	WithExpressions(e ...Expression) (Node, error)
}

// ChildrenResolved reports whether every child of n is resolved, without
// inspecting n's own expressions. Most rules gate on this before attempting
// to bind n's own expressions bottom-up.
func ChildrenResolved(n Node) bool {
	for _, c := range n.Children() {
		if !c.Resolved() {
			return false
		}
	}
	return true
}

// ExpressionsResolved reports whether every expression in the slice is
// resolved.
func ExpressionsResolved(exprs ...Expression) bool {
	for _, e := range exprs {
		if !e.Resolved() {
			return false
		}
	}
	return true
}

// InputSet returns the union of the attribute sets produced by n's
// children: the attributes available for n's own expressions to reference.
func InputSet(n Node) AttributeSet {
	out := AttributeSet{}
	for _, c := range n.Children() {
		for _, a := range c.Output() {
			out = out.Add(a.ID())
		}
	}
	return out
}

// OutputIDs collects the ColumnIDs of a node's Output attributes. Used by
// validation.
func OutputIDs(n Node) AttributeSet {
	out := AttributeSet{}
	for _, a := range n.Output() {
		out = out.Add(a.ID())
	}
	return out
}

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

import "github.com/quilldb/quill/sql"

// Scope threads the chain of enclosing plan nodes down into a subquery
// so resolve_subqueries can resolve a correlated reference that
// isn't bound by the subquery's own child: at each level Node is the
// plan node whose Output() was in scope when the subquery literal was
// encountered, and Outer is the next scope up.
type Scope struct {
	Node  sql.Node
	Outer *Scope
}

// Push returns a new Scope with Node in front of the current chain,
// called on the way down into a child as resolve_subqueries recurses.
func (s *Scope) Push(node sql.Node) *Scope {
	return &Scope{Node: node, Outer: s}
}

// Attributes returns every attribute visible to a subquery at this
// scope: the immediately enclosing node's output, plus everything
// visible further out.
func (s *Scope) Attributes() sql.AttributeSet {
	if s == nil {
		return sql.AttributeSet{}
	}
	out := sql.AttributeSet{}
	for _, a := range s.Node.Output() {
		out = out.Add(a.ID())
	}
	return out.Union(s.Outer.Attributes())
}

// Lookup finds the attribute matching name/qualifier in this scope or
// any enclosing one, outward order (nearest enclosing scope wins ties,
// matching lexical shadowing).
func (s *Scope) Lookup(resolve sql.Resolver, name, qualifier string) (sql.Attribute, bool) {
	if s == nil {
		return nil, false
	}
	for _, a := range s.Node.Output() {
		if !resolve(a.Name(), name) {
			continue
		}
		if qualifier != "" && !resolve(a.Qualifier(), qualifier) {
			continue
		}
		return a, true
	}
	return s.Outer.Lookup(resolve, name, qualifier)
}

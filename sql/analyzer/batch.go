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

package analyzer

import (
	"github.com/quilldb/quill/sql"
	"github.com/quilldb/quill/sql/plan"
	"github.com/quilldb/quill/sql/transform"
)

// Strategy picks how many times a Batch's rules run per Analyze call.
type Strategy interface {
	run(batch *Batch, ctx *sql.Context, a *Analyzer, n sql.Node, scope *plan.Scope, sel RuleSelector) (sql.Node, transform.TreeIdentity, error)
}

// Once runs every rule in the batch exactly one time, in order.
type Once struct{}

func (Once) run(b *Batch, ctx *sql.Context, a *Analyzer, n sql.Node, scope *plan.Scope, sel RuleSelector) (sql.Node, transform.TreeIdentity, error) {
	cur := n
	same := transform.SameTree
	for _, rule := range b.Rules {
		if !sel(rule.ID) {
			continue
		}
		next, treeIdentity, err := rule.Apply(ctx, a, cur, scope, sel)
		if err != nil {
			return nil, transform.SameTree, err
		}
		if treeIdentity == transform.NewTree {
			same = transform.NewTree
		}
		cur = next
	}
	return cur, same, nil
}

// FixedPoint runs the batch's rules repeatedly, in order, until a full
// pass leaves the tree unchanged or MaxIterations passes have run,
// whichever comes first. MaxIterations <= 0 falls back to the
// Analyzer's own MaxIterations.
type FixedPoint struct {
	MaxIterations int
}

func (f FixedPoint) run(b *Batch, ctx *sql.Context, a *Analyzer, n sql.Node, scope *plan.Scope, sel RuleSelector) (sql.Node, transform.TreeIdentity, error) {
	cur := n
	overall := transform.SameTree
	max := f.MaxIterations
	if max <= 0 {
		max = a.MaxIterations
	}
	for i := 0; i < max; i++ {
		next, treeIdentity, err := (Once{}).run(b, ctx, a, cur, scope, sel)
		if err != nil {
			return nil, transform.SameTree, err
		}
		cur = next
		if treeIdentity == transform.SameTree {
			return cur, overall, nil
		}
		overall = transform.NewTree
	}
	return nil, transform.SameTree, sql.ErrConvergenceFailure.New(b.Name, max)
}

// Batch groups a named set of rules under a Strategy.
type Batch struct {
	Name     string
	Strategy Strategy
	Rules    []Rule
}

func (b *Batch) Eval(ctx *sql.Context, a *Analyzer, n sql.Node, scope *plan.Scope, sel RuleSelector) (sql.Node, transform.TreeIdentity, error) {
	return b.Strategy.run(b, ctx, a, n, scope, sel)
}

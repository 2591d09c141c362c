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
	"fmt"

	"github.com/quilldb/quill/sql"
	"github.com/quilldb/quill/sql/expression"
	"github.com/quilldb/quill/sql/plan"
	"github.com/quilldb/quill/sql/transform"
)

// extractWindowExpressions pulls every resolved WindowExpression out of a
// Project's or Aggregate's expression list and stacks one plan.Window per
// distinct (partitionSpec, orderSpec) key beneath it. A window function's
// partition/order keys and the arguments it's applied to have to be
// computed by the node underneath the Window, so any non-foldable,
// non-named sub-expression feeding a window call (and any aggregate
// argument of a windowed aggregate) is lifted into that underlying node's
// expression list first, aliased "_w<i>" if it isn't already named. The
// original expression list is preserved one level up by a Project that
// references the lifted/window-produced attributes instead of recomputing
// anything.
//
// Filter(cond, Aggregate(...)) where the aggregate still carries window
// expressions is handled the same way, except the Filter (the HAVING
// clause) has to run against the aggregate's own output before the window
// functions see it, so it's reinserted directly under the Window stack:
// Aggregate -> Filter -> Window -> Project.
func extractWindowExpressions(ctx *sql.Context, a *Analyzer, n sql.Node, scope *plan.Scope, sel RuleSelector) (sql.Node, transform.TreeIdentity, error) {
	return transform.NodeDown(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		var rebuilt sql.Node
		var identity transform.TreeIdentity
		var err error
		switch t := node.(type) {
		case *plan.Project:
			rebuilt, identity, err = extractWindowsFrom(t.Projections, t.Child, nil, func(exprs []sql.Expression, child sql.Node) sql.Node {
				return plan.NewProject(exprs, child)
			})
		case *plan.Aggregate:
			rebuilt, identity, err = extractWindowsFrom(t.AggregateExpressions, t.Child, nil, func(exprs []sql.Expression, child sql.Node) sql.Node {
				return plan.NewAggregate(t.GroupingExpressions, exprs, child)
			})
		case *plan.Filter:
			agg, ok := t.Child.(*plan.Aggregate)
			if !ok {
				return node, transform.SameTree, nil
			}
			wrap := func(base sql.Node) sql.Node { return plan.NewFilter(t.Condition, base) }
			rebuilt, identity, err = extractWindowsFrom(agg.AggregateExpressions, agg.Child, wrap, func(exprs []sql.Expression, child sql.Node) sql.Node {
				return plan.NewAggregate(agg.GroupingExpressions, exprs, child)
			})
		default:
			return node, transform.SameTree, nil
		}
		if err != nil || identity == transform.SameTree {
			return node, transform.SameTree, err
		}
		return rebuilt, identity, nil
	})
}

// extractWindowsFrom implements the body of extractWindowExpressions for
// one expression list. buildChild rebuilds the node that used to own exprs
// (Project or Aggregate) with the lifted expression list; wrapBeforeWindow,
// when non-nil, is spliced in between that rebuilt node and the Window
// stack (used for the Filter/HAVING case).
func extractWindowsFrom(exprs []sql.Expression, child sql.Node, wrapBeforeWindow func(sql.Node) sql.Node, buildChild func([]sql.Expression, sql.Node) sql.Node) (sql.Node, transform.TreeIdentity, error) {
	if !anyContainsWindowExpr(exprs) {
		return nil, transform.SameTree, nil
	}
	resolved := true
	for _, e := range exprs {
		transform.InspectExpr(e, func(inner sql.Expression) bool {
			if we, ok := inner.(*expression.WindowExpression); ok && !we.Resolved() {
				resolved = false
				return false
			}
			return true
		})
	}
	if !resolved {
		return nil, transform.SameTree, nil
	}

	var regular []sql.Expression
	var windowBearingIdx []int
	for i, e := range exprs {
		if containsWindowExpr(e) {
			windowBearingIdx = append(windowBearingIdx, i)
		} else {
			regular = append(regular, e)
		}
	}

	seen := sql.NewAttributeSet()
	for _, e := range regular {
		if named, ok := e.(sql.NamedExpression); ok {
			seen = seen.Add(named.ID())
		}
	}

	var lifted []sql.Expression
	liftCounter := 0
	lift := func(e sql.Expression) sql.Expression {
		if named, ok := e.(sql.NamedExpression); ok {
			if !seen.Contains(named.ID()) {
				seen = seen.Add(named.ID())
				lifted = append(lifted, e)
			}
			return named.ToAttribute()
		}
		if e.Foldable() {
			return e
		}
		alias := expression.NewGeneratedAlias(fmt.Sprintf("_w%d", liftCounter), e)
		liftCounter++
		lifted = append(lifted, alias)
		return alias.ToAttribute()
	}

	rewritten := make([]sql.Expression, len(exprs))
	copy(rewritten, exprs)
	var err error
	for _, i := range windowBearingIdx {
		rewritten[i], _, err = transform.Expr(exprs[i], func(inner sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
			we, ok := inner.(*expression.WindowExpression)
			if !ok {
				return inner, transform.SameTree, nil
			}
			liftedWe, liftErr := liftWindowCall(we, lift)
			if liftErr != nil {
				return nil, transform.SameTree, liftErr
			}
			return liftedWe, transform.NewTree, nil
		})
		if err != nil {
			return nil, transform.SameTree, err
		}
	}

	var groups [][]*expression.WindowExpression
	for _, i := range windowBearingIdx {
		transform.InspectExpr(rewritten[i], func(inner sql.Expression) bool {
			we, ok := inner.(*expression.WindowExpression)
			if !ok {
				return true
			}
			placed := false
			for gi, g := range groups {
				if g[0].Spec.SameKey(we.Spec) {
					groups[gi] = append(g, we)
					placed = true
					break
				}
			}
			if !placed {
				groups = append(groups, []*expression.WindowExpression{we})
			}
			return true
		})
	}

	base := buildChild(append(append([]sql.Expression{}, regular...), lifted...), child)
	if wrapBeforeWindow != nil {
		base = wrapBeforeWindow(base)
	}
	stacked := base
	for _, g := range groups {
		windowExprs := make([]sql.Expression, len(g))
		for i, we := range g {
			windowExprs[i] = we
		}
		stacked = plan.NewWindow(windowExprs, stacked)
	}

	outer := make([]sql.Expression, len(exprs))
	for i, e := range rewritten {
		final, _, ferr := transform.Expr(e, func(inner sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
			if we, ok := inner.(*expression.WindowExpression); ok {
				return we.ToAttribute(), transform.NewTree, nil
			}
			return inner, transform.SameTree, nil
		})
		if ferr != nil {
			return nil, transform.SameTree, ferr
		}
		if named, ok := final.(sql.NamedExpression); ok && !containsWindowExpr(e) {
			final = named.ToAttribute()
		}
		outer[i] = final
	}

	return plan.NewProject(outer, stacked), transform.NewTree, nil
}

// liftWindowCall rewrites a WindowExpression's partition spec, order spec,
// and the arguments of its wrapped function/aggregate by running each
// through lift, which either passes a named reference through unchanged
// (recording it for the child's expression list if not already present) or
// replaces a computed sub-expression with a freshly lifted alias.
func liftWindowCall(we *expression.WindowExpression, lift func(sql.Expression) sql.Expression) (*expression.WindowExpression, error) {
	spec := we.Spec
	newPartition := make([]sql.Expression, len(spec.PartitionSpec))
	for i, e := range spec.PartitionSpec {
		newPartition[i] = lift(e)
	}
	newOrder := make([]expression.SortOrder, len(spec.OrderSpec))
	for i, o := range spec.OrderSpec {
		newOrder[i] = expression.NewSortOrder(lift(o.Child), o.Direction, o.NullsFirst)
	}

	newFn := we.Child
	if args := we.Child.Children(); len(args) > 0 {
		liftedArgs := make([]sql.Expression, len(args))
		for i, c := range args {
			liftedArgs[i] = lift(c)
		}
		rebuilt, err := we.Child.WithChildren(liftedArgs...)
		if err != nil {
			return nil, err
		}
		newFn = rebuilt
	}

	withFn, err := we.WithChildren(newFn)
	if err != nil {
		return nil, err
	}
	return withFn.(*expression.WindowExpression).WithSpec(&expression.WindowSpec{
		PartitionSpec: newPartition,
		OrderSpec:     newOrder,
		Frame:         spec.Frame,
	}), nil
}

func containsWindowExpr(e sql.Expression) bool {
	found := false
	transform.InspectExpr(e, func(inner sql.Expression) bool {
		if _, ok := inner.(*expression.WindowExpression); ok {
			found = true
			return false
		}
		return true
	})
	return found
}

func anyContainsWindowExpr(exprs []sql.Expression) bool {
	for _, e := range exprs {
		if containsWindowExpr(e) {
			return true
		}
	}
	return false
}

// resolveWindowFrame fills in a WindowExpression's frame once its
// function is resolved: the function's own FrameRequirement if it
// has one, else DefaultFrame. If the spec already carries an explicit
// frame that conflicts with a FrameRequirement, that's ErrWindowFrameMismatch.
func resolveWindowFrame(ctx *sql.Context, a *Analyzer, n sql.Node, scope *plan.Scope, sel RuleSelector) (sql.Node, transform.TreeIdentity, error) {
	return transform.NodeExprs(n, func(e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		we, ok := e.(*expression.WindowExpression)
		if !ok || we.Spec == nil || !we.Child.Resolved() {
			return e, transform.SameTree, nil
		}

		required, hasRequirement := windowRequiredFrame(we.Child)
		if we.Spec.Frame != nil {
			if hasRequirement && required != nil && !required.Equals(we.Spec.Frame) {
				return nil, transform.SameTree, sql.ErrWindowFrameMismatch.New(we.Child.String(), required, we.Spec.Frame)
			}
			return e, transform.SameTree, nil
		}

		frame := required
		if frame == nil {
			frame = sql.DefaultFrame(len(we.Spec.OrderSpec) > 0)
		}
		spec := &expression.WindowSpec{PartitionSpec: we.Spec.PartitionSpec, OrderSpec: we.Spec.OrderSpec, Frame: frame}
		return we.WithSpec(spec), transform.NewTree, nil
	})
}

func windowRequiredFrame(fn sql.Expression) (*sql.WindowFrame, bool) {
	fr, ok := fn.(sql.FrameRequirement)
	if !ok {
		return nil, false
	}
	return fr.RequiredFrame(), true
}

// resolveWindowOrder validates that every RankLike window function's spec
// carries an ORDER BY: RANK/ROW_NUMBER/LAG without one has no
// defined row ordering to rank or offset against.
func resolveWindowOrder(ctx *sql.Context, a *Analyzer, n sql.Node, scope *plan.Scope, sel RuleSelector) (sql.Node, transform.TreeIdentity, error) {
	var rerr error
	transform.InspectExpressions(n, func(e sql.Expression) bool {
		we, ok := e.(*expression.WindowExpression)
		if !ok || we.Spec == nil {
			return true
		}
		if _, rankLike := we.Child.(sql.RankLike); rankLike && len(we.Spec.OrderSpec) == 0 {
			rerr = sql.ErrWindowOrderMissing.New(we.Child.String())
			return false
		}
		return true
	})
	if rerr != nil {
		return nil, transform.SameTree, rerr
	}
	return n, transform.SameTree, nil
}

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
	"github.com/quilldb/quill/sql/expression"
	"github.com/quilldb/quill/sql/plan"
	"github.com/quilldb/quill/sql/transform"
)

// resolveGenerators handles the two places a table-generating function
// shows up: already placed in an explicit Generate
// node (LATERAL VIEW) whose Generator is still unresolved, or written
// inline in a SELECT list's Project, which extractGenerators below turns
// into the Generate form before this rule can bind it. Binding mints
// GeneratorOutput from the generator's ElementSchema, checked against any
// explicit alias list for arity.
func resolveGenerators(ctx *sql.Context, a *Analyzer, n sql.Node, scope *plan.Scope, sel RuleSelector) (sql.Node, transform.TreeIdentity, error) {
	return transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		gen, ok := node.(*plan.Generate)
		if !ok || gen.GeneratorOutput != nil {
			return node, transform.SameTree, nil
		}

		bound := gen.Generator
		if uf, ok := bound.(*expression.UnresolvedGenerator); ok {
			if !sql.ExpressionsResolved(uf.Args...) {
				return node, transform.SameTree, nil
			}
			resolved, err := a.Catalog.LookupGenerator(uf.FuncName, uf.Args)
			if err != nil {
				return node, transform.SameTree, nil
			}
			bound = resolved
		}
		if !bound.Resolved() {
			return node, transform.SameTree, nil
		}
		g, ok := bound.(sql.Generator)
		if !ok {
			return node, transform.SameTree, nil
		}

		schema := g.ElementSchema()
		if len(gen.OutputNames) > 0 && len(gen.OutputNames) != len(schema) {
			return nil, transform.SameTree, sql.ErrGeneratorAliasArity.New(bound.String(), len(schema), len(gen.OutputNames))
		}

		output := make([]sql.Attribute, len(schema))
		for i, col := range schema {
			name := col.Name
			if len(gen.OutputNames) > 0 {
				name = gen.OutputNames[i]
			}
			output[i] = expression.NewAttribute(name, col.Type, col.Nullable, "")
		}

		rebuilt := gen.WithOutput(output)
		rebuilt.Generator = bound
		return rebuilt, transform.NewTree, nil
	})
}

// extractGenerators rewrites a Project whose select list contains exactly
// one generator call into a Generate beneath a Project over its output,
// preserving the position of the surrounding non-generator expressions.
// More than one generator call in the same select list raises
// ErrMultipleGenerators since row multiplication from two independent
// generators in one clause has no defined semantics here.
func extractGenerators(ctx *sql.Context, a *Analyzer, n sql.Node, scope *plan.Scope, sel RuleSelector) (sql.Node, transform.TreeIdentity, error) {
	return transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		proj, ok := node.(*plan.Project)
		if !ok {
			return node, transform.SameTree, nil
		}

		var found []string
		var genExpr sql.Expression
		var genIdx int
		var names []string
		for i, e := range proj.Projections {
			call, aliasNames, ok := asGeneratorCall(e)
			if !ok {
				continue
			}
			found = append(found, call.String())
			genExpr = call
			genIdx = i
			names = aliasNames
		}
		if len(found) == 0 {
			return node, transform.SameTree, nil
		}
		if len(found) > 1 {
			return nil, transform.SameTree, sql.ErrMultipleGenerators.New(len(found), found)
		}

		generate := plan.NewGenerate(genExpr, names, true, false, proj.Child)

		projections := make([]sql.Expression, 0, len(proj.Projections)-1)
		for i, e := range proj.Projections {
			if i == genIdx {
				continue
			}
			projections = append(projections, e)
		}
		return plan.NewProject(projections, generate), transform.NewTree, nil
	})
}

// asGeneratorCall reports whether e names a generator call, optionally
// wrapped in a single Alias (one output name) or MultiAlias (several), and
// returns the bare call plus any explicit alias names.
func asGeneratorCall(e sql.Expression) (sql.Expression, []string, bool) {
	switch v := e.(type) {
	case *expression.MultiAlias:
		if isGeneratorExpr(v.Child) {
			return v.Child, v.Names, true
		}
	case *expression.Alias:
		if isGeneratorExpr(v.Child) {
			return v.Child, []string{v.Name()}, true
		}
	case *expression.UnresolvedAlias:
		if isGeneratorExpr(v.Child) {
			return v.Child, nil, true
		}
	default:
		if isGeneratorExpr(v) {
			return v, nil, true
		}
	}
	return nil, nil, false
}

func isGeneratorExpr(e sql.Expression) bool {
	if _, ok := e.(*expression.UnresolvedGenerator); ok {
		return true
	}
	_, ok := e.(sql.Generator)
	return ok
}

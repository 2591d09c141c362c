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

// Generate lays out a Generator's per-input-row output rows alongside
// (or replacing) the input row: the only legal position for a Generator
// expression, as ResolveGenerate expects.
type Generate struct {
	UnaryNode
	Generator       sql.Expression // implements sql.Generator
	GeneratorOutput []sql.Attribute
	// OutputNames carries the user-written alias list (`LATERAL VIEW
	// EXPLODE(x) t AS a, b`), consulted by resolveGenerators when it mints
	// GeneratorOutput: len(OutputNames) must equal len(Generator.(sql.
	// Generator).ElementSchema()) or ErrGeneratorAliasArity applies. Empty
	// means "use the generator's own column names."
	OutputNames []string
	Join        bool // LATERAL VIEW-style join against the input row, vs bare table function
	Outer       bool // OUTER: emit a null-padded row when the generator produces zero rows
}

func NewGenerate(generator sql.Expression, names []string, join, outer bool, child sql.Node) *Generate {
	return &Generate{
		UnaryNode:   UnaryNode{Child: child},
		Generator:   generator,
		OutputNames: names,
		Join:        join,
		Outer:       outer,
	}
}

func (g *Generate) Output() []sql.Attribute {
	if !g.Join {
		return g.GeneratorOutput
	}
	return append(append([]sql.Attribute{}, g.Child.Output()...), g.GeneratorOutput...)
}

func (g *Generate) Resolved() bool {
	return g.Child.Resolved() && g.Generator.Resolved() && g.GeneratorOutput != nil
}

func (g *Generate) Expressions() []sql.Expression { return []sql.Expression{g.Generator} }

func (g *Generate) WithExpressions(e ...sql.Expression) (sql.Node, error) {
	if len(e) != 1 {
		return nil, ErrInvalidChildCount.New("Generate.expressions", 1, len(e))
	}
	cp := *g
	cp.Generator = e[0]
	return &cp, nil
}

func (g *Generate) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, ErrInvalidChildCount.New("Generate", 1, len(children))
	}
	cp := *g
	cp.Child = children[0]
	return &cp, nil
}

// WithOutput returns a copy with GeneratorOutput set, used by
// resolveGenerators once it has minted the output attributes.
func (g *Generate) WithOutput(output []sql.Attribute) *Generate {
	cp := *g
	cp.GeneratorOutput = output
	return &cp
}

func (g *Generate) String() string {
	return fmt.Sprintf("Generate(%s, outer=%v)\n  %s", g.Generator, g.Outer, g.Child)
}

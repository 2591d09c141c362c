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
	"strings"

	"github.com/quilldb/quill/sql"
)

// Project is SELECT's projection operator: a list of expressions
// evaluated against the child's rows.
type Project struct {
	UnaryNode
	Projections []sql.Expression
}

func NewProject(projections []sql.Expression, child sql.Node) *Project {
	return &Project{UnaryNode: UnaryNode{Child: child}, Projections: projections}
}

func (p *Project) Output() []sql.Attribute { return schemaFromNamed(p.Projections) }

func (p *Project) Resolved() bool {
	return p.Child.Resolved() && expressionsResolved(p.Projections) && sql.ExpressionsResolved(p.Projections...)
}

func (p *Project) Expressions() []sql.Expression { return p.Projections }

func (p *Project) WithExpressions(e ...sql.Expression) (sql.Node, error) {
	if len(e) != len(p.Projections) {
		return nil, fmt.Errorf("plan.Project: expected %d expressions, got %d", len(p.Projections), len(e))
	}
	return NewProject(e, p.Child), nil
}

func (p *Project) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, ErrInvalidChildCount.New("Project", 1, len(children))
	}
	return NewProject(p.Projections, children[0]), nil
}

func (p *Project) String() string {
	parts := make([]string, len(p.Projections))
	for i, e := range p.Projections {
		parts[i] = e.String()
	}
	return fmt.Sprintf("Project(%s)\n  %s", strings.Join(parts, ", "), p.Child)
}

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
	"github.com/sirupsen/logrus"

	"github.com/quilldb/quill/config"
	"github.com/quilldb/quill/sql"
	"github.com/quilldb/quill/sql/plan"
)

const defaultMaxIterations = 100

// Analyzer drives the whole pipeline: it owns the catalog, the
// ordered Batches, and the per-run tunables (max fixed-point iterations,
// current database for unqualified relation lookup).
type Analyzer struct {
	Catalog         *sql.Catalog
	Batches         []*Batch
	CurrentDatabase string
	MaxIterations   int
	Debug           bool
	Log             *logrus.Entry
	Config          config.Config
}

// New builds an Analyzer with the defaultBatches pipeline under
// the default Config.
func New(cat *sql.Catalog) *Analyzer {
	return NewBuilder(cat).Build()
}

// NewWithConfig builds an Analyzer whose ordinal-resolution and
// case-sensitivity rules honor cfg instead of config.Default().
func NewWithConfig(cat *sql.Catalog, cfg config.Config) *Analyzer {
	a := NewBuilder(cat).Build()
	a.Config = cfg
	a.MaxIterations = cfg.OptimizerMaxIterations
	return a
}

// Analyze runs every batch in order against n, returning the fully
// resolved plan or the first unrecoverable AnalysisException.
func (a *Analyzer) Analyze(ctx *sql.Context, n sql.Node, scope *plan.Scope) (sql.Node, error) {
	span, ctx := ctx.Span("analyze")
	defer span.Finish()

	cur := n
	for _, batch := range a.Batches {
		next, _, err := batch.Eval(ctx, a, cur, scope, AllRules)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

func (a *Analyzer) log() *logrus.Entry {
	if a.Log != nil {
		return a.Log
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

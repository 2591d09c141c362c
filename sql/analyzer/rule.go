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

// RuleID identifies a rule to a RuleSelector and in diagnostics, distinct
// from its human-readable Name (Builder's Remove*Rule methods match by
// Name).
type RuleID int

// RuleFunc is one rewrite step: given the current tree and the
// correlated-subquery Scope it sits in, return a (possibly) rewritten
// tree and whether anything actually changed.
type RuleFunc func(ctx *sql.Context, a *Analyzer, n sql.Node, scope *plan.Scope, sel RuleSelector) (sql.Node, transform.TreeIdentity, error)

// RuleSelector lets a Batch run a subset of its rules on a given pass,
// e.g. skipping validation rules until the tree is fully resolved.
type RuleSelector func(id RuleID) bool

// AllRules is the default RuleSelector: run everything.
func AllRules(RuleID) bool { return true }

// Rule is a single named, identified rewrite step.
type Rule struct {
	ID    RuleID
	Name  string
	Apply RuleFunc
}

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
	"github.com/quilldb/quill/config"
	"github.com/quilldb/quill/sql"
)

// Builder assembles an Analyzer's Batches, letting callers layer
// additional rules onto (or remove rules from) the defaultBatches pipeline
// without hand-assembling every batch.
type Builder struct {
	catalog *sql.Catalog
	batches []*Batch
}

func NewBuilder(cat *sql.Catalog) *Builder {
	return &Builder{catalog: cat, batches: defaultBatches()}
}

func (b *Builder) Build() *Analyzer {
	return &Analyzer{
		Catalog:       b.catalog,
		Batches:       b.batches,
		MaxIterations: defaultMaxIterations,
		Config:        config.Default(),
	}
}

func (b *Builder) batchNamed(name string) *Batch {
	for _, batch := range b.batches {
		if batch.Name == name {
			return batch
		}
	}
	return nil
}

// AddPostAnalyzeRule appends a rule to the once-after-default batch, the
// hook point for rules that run after every default rule has converged.
func (b *Builder) AddPostAnalyzeRule(name string, fn RuleFunc) *Builder {
	batch := b.batchNamed(batchOnceAfterDefault)
	batch.Rules = append(batch.Rules, Rule{ID: nextRuleID(), Name: name, Apply: fn})
	return b
}

// AddPreValidationRule inserts a rule at the front of the validation
// batch, ahead of its existing rules.
func (b *Builder) AddPreValidationRule(name string, fn RuleFunc) *Builder {
	batch := b.batchNamed(batchValidation)
	batch.Rules = append([]Rule{{ID: nextRuleID(), Name: name, Apply: fn}}, batch.Rules...)
	return b
}

// AddPostValidationRule appends a rule to the validation batch.
func (b *Builder) AddPostValidationRule(name string, fn RuleFunc) *Builder {
	batch := b.batchNamed(batchValidation)
	batch.Rules = append(batch.Rules, Rule{ID: nextRuleID(), Name: name, Apply: fn})
	return b
}

func (b *Builder) removeFrom(batchName, ruleName string) *Builder {
	batch := b.batchNamed(batchName)
	if batch == nil {
		return b
	}
	out := batch.Rules[:0]
	for _, r := range batch.Rules {
		if r.Name != ruleName {
			out = append(out, r)
		}
	}
	batch.Rules = out
	return b
}

func (b *Builder) RemoveOnceBeforeRule(name string) *Builder {
	return b.removeFrom(batchOnceBeforeDefault, name)
}

func (b *Builder) RemoveDefaultRule(name string) *Builder {
	return b.removeFrom(batchDefault, name)
}

func (b *Builder) RemoveOnceAfterRule(name string) *Builder {
	return b.removeFrom(batchOnceAfterDefault, name)
}

func (b *Builder) RemoveValidationRule(name string) *Builder {
	return b.removeFrom(batchValidation, name)
}

var ruleIDCounter int

func nextRuleID() RuleID {
	ruleIDCounter++
	return RuleID(ruleIDCounter)
}

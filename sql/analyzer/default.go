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

// Batch names, the hook points Builder's AddPostAnalyzeRule/
// AddPreValidationRule/AddPostValidationRule and RemoveXRule family
// attach to and remove from.
const (
	batchOnceBeforeDefault = "once-before-default"
	batchDefault           = "default"
	batchOnceAfterDefault  = "once-after-default"
	batchValidation        = "validation"
)

func rule(name string, fn RuleFunc) Rule {
	return Rule{ID: nextRuleID(), Name: name, Apply: fn}
}

// defaultBatches assembles the four-batch pipeline every Analyzer runs:
// a one-shot substitution pass that inlines CTEs and simplifies trivial
// unions before anything else sees them, a fixed-point batch where the
// bulk of name/reference/function resolution (window definition
// inlining included) happens and feeds back into itself until the tree stops
// changing, a one-shot cleanup pass for rewrites that must run exactly
// once after the tree is fully resolved, and a final read-only
// validation batch.
func defaultBatches() []*Batch {
	return []*Batch{
		{
			Name:     batchOnceBeforeDefault,
			Strategy: Once{},
			Rules: []Rule{
				rule("inline_ctes", inlineCTEs),
				rule("eliminate_trivial_unions", eliminateTrivialUnions),
			},
		},
		{
			Name:     batchDefault,
			Strategy: FixedPoint{},
			Rules: []Rule{
				rule("resolve_tables", resolveTables),
				rule("resolve_columns", resolveColumns),
				rule("dedup_right", dedupRight),
				rule("resolve_stars", resolveStars),
				rule("resolve_extract_value", resolveExtractValue),
				rule("resolve_ordinals", resolveOrdinals),
				rule("resolve_missing_references", resolveMissingReferences),
				rule("resolve_functions", resolveFunctions),
				rule("inline_window_definitions", inlineWindowDefinitions),
				rule("global_aggregates", globalAggregates),
				rule("resolve_aggregate_references", resolveAggregateReferences),
				rule("resolve_generators", resolveGenerators),
				rule("extract_generators", extractGenerators),
				rule("resolve_grouping_analytics", resolveGroupingAnalytics),
				rule("resolve_pivot", resolvePivot),
				rule("resolve_time_windows", resolveTimeWindows),
				rule("resolve_subqueries", resolveSubqueries),
				rule("extract_window_expressions", extractWindowExpressions),
				rule("resolve_window_frame", resolveWindowFrame),
				rule("resolve_deserializer", resolveDeserializer),
				rule("resolve_upcast", resolveUpCast),
				rule("handle_null_udf", handleNullUDF),
			},
		},
		{
			Name:     batchOnceAfterDefault,
			Strategy: Once{},
			Rules: []Rule{
				rule("pull_out_nondeterministic", pullOutNondeterministic),
				rule("cleanup_aliases", cleanupAliases),
				rule("eliminate_subquery_aliases", eliminateSubqueryAliases),
			},
		},
		{
			Name:     batchValidation,
			Strategy: Once{},
			Rules: []Rule{
				rule("resolve_window_order", resolveWindowOrder),
				rule("check_analysis", checkAnalysis),
			},
		},
	}
}

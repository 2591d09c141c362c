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

package sql

import errors "gopkg.in/src-d/go-errors.v1"

// Every user-facing failure the analyzer can produce is an
// AnalysisException: one of these Kinds, raised with .New(args...).
// Propagation policy: rules that may later resolve an expression
// (ResolveReferences, ResolveMissingReferences, ResolveSubquery) swallow
// these errors from their own speculative attempts and leave the node
// unresolved; CheckAnalysis raises the first one that still applies once
// the batches have converged. An ambiguous column reference is the
// exception: resolveColumns raises ErrAmbiguousColumn as soon as it
// meets one.
var (
	ErrNoSuchTable = errors.NewKind("Table or view not found: %s")

	ErrUnknownColumn = errors.NewKind("cannot resolve column %q")

	ErrAmbiguousColumn = errors.NewKind("reference %q is ambiguous, could be: %s")

	ErrStarMisuse = errors.NewKind("invalid usage of '*' in %s")

	ErrMultipleGenerators = errors.NewKind("only one generator is allowed per SELECT clause, found %d: %s")

	ErrGeneratorAliasArity = errors.NewKind("generator %s requires %d aliases but %d were given")

	ErrInvalidOrdinal = errors.NewKind("ORDER BY / GROUP BY position %d is not in select list (valid range 1..%d)")

	ErrOrdinalOnAggregate = errors.NewKind("GROUP BY position %d refers to an expression containing an aggregate function")

	ErrGroupingWithoutGrouping = errors.NewKind("grouping()/grouping_id() can only be used with GROUP BY GROUPING SETS/CUBE/ROLLUP")

	ErrWindowFrameMismatch = errors.NewKind("window function %s requires a frame of %s but %s was specified")

	ErrWindowOrderMissing = errors.NewKind("window function %s requires an ORDER BY clause in its window specification")

	ErrUpCastTruncation = errors.NewKind("cannot up-cast %s from %s to %s as it may truncate")

	ErrMultipleTimeWindows = errors.NewKind("only one time window is allowed per operator, found %d")

	ErrInvalidWindowDuration = errors.NewKind("invalid time window duration %q")

	ErrUndefinedWindowSpec = errors.NewKind("window specification %q is not defined")

	ErrOuterScopeMissing = errors.NewKind("object of inner class %s requires an outer-scope capture; consider moving the class to a top-level declaration")

	ErrConvergenceFailure = errors.NewKind("batch %q did not reach a fixed point after %d iterations")

	ErrColumnCountMismatch = errors.NewKind("column count mismatch: %d columns specified but query produces %d")

	ErrWindowSpecRequired = errors.NewKind("OVER clause for %s must reference a single (partitionSpec, orderSpec)")

	ErrUnknownFunction = errors.NewKind("unknown function %q")

	ErrUnresolvedPlan = errors.NewKind("unresolved operator %s")
)

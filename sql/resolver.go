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

// Resolver is the case-sensitive/insensitive identifier matching primitive.
// It is a two-argument predicate constructed from the
// caseSensitiveAnalysis config flag and used by every name-binding rule so
// that case-folding behavior lives in exactly one place.
type Resolver func(candidateName, queryName string) bool

// NewResolver builds a Resolver honoring the given case-sensitivity flag.
func NewResolver(caseSensitive bool) Resolver {
	if caseSensitive {
		return func(candidate, query string) bool { return candidate == query }
	}
	return func(candidate, query string) bool { return equalFold(candidate, query) }
}

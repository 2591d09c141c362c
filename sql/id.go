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

import "sync/atomic"

// ColumnID uniquely identifies one logical column position in a plan graph.
// Two AttributeReferences sharing a ColumnID denote the same produced
// column, regardless of how many times the underlying plan is copied or
// rewritten.
type ColumnID uint64

var idCounter uint64

// NewColumnID mints a fresh, process-wide unique column ID. The counter is
// safe under concurrent use (multiple analyzer invocations may share it);
// only uniqueness is guaranteed, not strict ordering against wall time.
func NewColumnID() ColumnID {
	return ColumnID(atomic.AddUint64(&idCounter, 1))
}

// ResetColumnIDsForTest rewinds the counter. Tests that need ID-stable
// output call this before building a plan so expected and actual trees mint
// identical IDs; it must never be called from production code paths.
func ResetColumnIDsForTest() {
	atomic.StoreUint64(&idCounter, 0)
}

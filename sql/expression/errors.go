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

package expression

import errors "gopkg.in/src-d/go-errors.v1"

// ErrInvalidChildCount is an internal consistency error: WithChildren was
// called with the wrong arity. It should never surface to a user — it
// signals a bug in a rewrite rule, not a malformed query — so it is kept
// separate from the AnalysisException table.
var ErrInvalidChildCount = errors.NewKind("%s: expected %d children, got %d")

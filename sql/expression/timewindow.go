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

import (
	"fmt"

	"github.com/quilldb/quill/sql"
)

// TimeWindow is the unresolved `window(timeColumn, windowDuration[,
// slideDuration[, startTime]])` call. ResolveTimeWindows rewrites
// every occurrence sharing identical parameters into a reference to one
// generated (window_start, window_end) struct column computed by an
// injected Expand (one row per overlapping window) beneath a Filter that
// keeps the windows containing the time column; two occurrences with differing
// parameters in the same query raise ErrMultipleTimeWindows.
type TimeWindow struct {
	unary // TimeColumn
	WindowDuration  string
	SlideDuration   string
	StartTime       string
}

func NewTimeWindow(timeColumn sql.Expression, windowDuration, slideDuration, startTime string) *TimeWindow {
	return &TimeWindow{unary: unary{Child: timeColumn}, WindowDuration: windowDuration, SlideDuration: slideDuration, StartTime: startTime}
}

func (t *TimeWindow) Resolved() bool { return false }
func (t *TimeWindow) Type() sql.Type { return sql.Unknown }
func (t *TimeWindow) Nullable() bool { return false }

func (t *TimeWindow) SameParams(o *TimeWindow) bool {
	return t.WindowDuration == o.WindowDuration && t.SlideDuration == o.SlideDuration && t.StartTime == o.StartTime &&
		sql.SemanticEquals(t.Child, o.Child)
}

func (t *TimeWindow) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, ErrInvalidChildCount.New("TimeWindow", 1, len(children))
	}
	return NewTimeWindow(children[0], t.WindowDuration, t.SlideDuration, t.StartTime), nil
}

func (t *TimeWindow) String() string {
	return fmt.Sprintf("window(%s, %s, %s)", t.Child, t.WindowDuration, t.SlideDuration)
}

// WindowStart and WindowEnd are the two fields of the struct column
// ResolveTimeWindows generates, extracted via GetStructField once the
// TimeWindow call is rewritten.
const (
	WindowStartField = "window_start"
	WindowEndField   = "window_end"
)

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

import "fmt"

// FrameType distinguishes RANGE- from ROW-based window frames.
type FrameType int

const (
	RowFrame FrameType = iota
	RangeFrame
)

// FrameBoundary is one edge of a window frame: unbounded, the current row,
// or an offset (N PRECEDING / N FOLLOWING). Offset is typed Expression
// rather than a concrete expression package type so this lives in sql
// without importing sql/expression.
type FrameBoundary struct {
	Unbounded bool
	Current   bool
	Offset    Expression // nil when Unbounded or Current
	Preceding bool       // only meaningful when Offset != nil
}

func UnboundedPreceding() FrameBoundary { return FrameBoundary{Unbounded: true, Preceding: true} }
func UnboundedFollowing() FrameBoundary { return FrameBoundary{Unbounded: true} }
func CurrentRow() FrameBoundary         { return FrameBoundary{Current: true} }
func Preceding(n Expression) FrameBoundary {
	return FrameBoundary{Offset: n, Preceding: true}
}
func Following(n Expression) FrameBoundary { return FrameBoundary{Offset: n} }

func (b FrameBoundary) String() string {
	switch {
	case b.Unbounded && b.Preceding:
		return "UNBOUNDED PRECEDING"
	case b.Unbounded:
		return "UNBOUNDED FOLLOWING"
	case b.Current:
		return "CURRENT ROW"
	case b.Preceding:
		return fmt.Sprintf("%s PRECEDING", b.Offset)
	default:
		return fmt.Sprintf("%s FOLLOWING", b.Offset)
	}
}

// WindowFrame is the third leg of a window spec: the
// neighborhood of the current row a window function aggregates over.
// Lives in the sql package (not sql/expression) so FrameRequirement can
// reference it without an import cycle.
type WindowFrame struct {
	Type  FrameType
	Lower FrameBoundary
	Upper FrameBoundary
}

// DefaultFrame is filled in by ResolveWindowFrame when a window has no
// explicit frame: RANGE UNBOUNDED PRECEDING..CURRENT ROW when an
// order spec exists, otherwise ROW UNBOUNDED PRECEDING..UNBOUNDED
// FOLLOWING.
func DefaultFrame(hasOrder bool) *WindowFrame {
	if hasOrder {
		return &WindowFrame{Type: RangeFrame, Lower: UnboundedPreceding(), Upper: CurrentRow()}
	}
	return &WindowFrame{Type: RowFrame, Lower: UnboundedPreceding(), Upper: UnboundedFollowing()}
}

func (f *WindowFrame) Equals(o *WindowFrame) bool {
	if f == nil || o == nil {
		return f == o
	}
	return f.Type == o.Type && f.Lower == o.Lower && f.Upper == o.Upper
}

func (f *WindowFrame) String() string {
	kind := "ROWS"
	if f.Type == RangeFrame {
		kind = "RANGE"
	}
	return fmt.Sprintf("%s BETWEEN %s AND %s", kind, f.Lower, f.Upper)
}

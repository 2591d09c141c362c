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

import "context"

// Context carries the per-invocation state the analyzer threads through
// every rule call: the Go context for cancellation plumbing, the resolved
// current database, and a tracing span factory. One Context belongs to
// exactly one analyzer invocation.
type Context struct {
	context.Context
	currentDatabase string
}

func NewContext(ctx context.Context) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Context{Context: ctx}
}

func NewEmptyContext() *Context {
	return NewContext(context.Background())
}

func (c *Context) CurrentDatabase() string { return c.currentDatabase }

func (c *Context) SetCurrentDatabase(db string) { c.currentDatabase = db }

// Span starts a no-op tracing span. The call shape mirrors the
// ctx.Span("resolve_subqueries") / span.Finish() pattern the analyzer's
// rules use throughout, so a real OpenTracing/OpenTelemetry backend can be
// substituted later without touching any rule; this module only needs the
// bookkeeping to avoid a nil panic at each rule's entry.
func (c *Context) Span(name string) (*Span, *Context) {
	return &Span{name: name}, c
}

// Span is a handle returned by Context.Span. Finish is a no-op here but
// gives every rule a real defer-able call site.
type Span struct {
	name string
}

func (s *Span) Finish() {}

// Copyright (c) 2026 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package observability records every endpoint invocation: one log entry,
// a set of counters on the invocation's edge and a tracing span.
//
// Invocations that suspend are ended from whichever goroutine resumes them,
// so everything here is safe for concurrent use.
package observability

import (
	"context"
	"sync"

	"github.com/opentracing/opentracing-go"
	"go.uber.org/net/metrics"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// A ContextExtractor pulls any relevant request-scoped data (e.g., tracing
// spans) from the request's Context.
type ContextExtractor func(context.Context) zapcore.Field

// NewNopContextExtractor returns a no-op ContextExtractor.
func NewNopContextExtractor() ContextExtractor {
	return ContextExtractor(func(_ context.Context) zapcore.Field { return zap.Skip() })
}

// LevelsConfig overrides the log level used for each outcome. Nil fields
// keep the default.
type LevelsConfig struct {
	// Level at which successful invocations are logged. Defaults to
	// DebugLevel.
	Success *zapcore.Level
	// Level at which application errors are logged. Defaults to WarnLevel.
	ApplicationError *zapcore.Level
	// Level at which unexpected errors, including panics, are logged.
	// Defaults to ErrorLevel.
	UnexpectedError *zapcore.Level
}

type levels struct {
	success, applicationError, unexpectedError zapcore.Level
}

func (c LevelsConfig) levels() levels {
	l := levels{
		success:          zapcore.DebugLevel,
		applicationError: zapcore.WarnLevel,
		unexpectedError:  zapcore.ErrorLevel,
	}
	if c.Success != nil {
		l.success = *c.Success
	}
	if c.ApplicationError != nil {
		l.applicationError = *c.ApplicationError
	}
	if c.UnexpectedError != nil {
		l.unexpectedError = *c.UnexpectedError
	}
	return l
}

// Config configures a Recorder.
type Config struct {
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
	// Scope receives all counters. Defaults to a scope nothing reads.
	Scope *metrics.Scope
	// Tracer defaults to the global tracer.
	Tracer           opentracing.Tracer
	ContextExtractor ContextExtractor
	Levels           LevelsConfig
}

// Recorder records endpoint invocations.
type Recorder struct {
	logger  *zap.Logger
	meter   *metrics.Scope
	tracer  opentracing.Tracer
	extract ContextExtractor
	levels  levels

	edgesMu sync.RWMutex
	edges   map[edgeKey]*edge
}

// NewRecorder builds a Recorder.
func NewRecorder(cfg Config) *Recorder {
	r := &Recorder{
		logger:  cfg.Logger,
		meter:   cfg.Scope,
		tracer:  cfg.Tracer,
		extract: cfg.ContextExtractor,
		levels:  cfg.Levels.levels(),
		edges:   make(map[edgeKey]*edge, _defaultGraphSize),
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	if r.meter == nil {
		r.meter = metrics.New().Scope()
	}
	if r.tracer == nil {
		r.tracer = opentracing.GlobalTracer()
	}
	if r.extract == nil {
		r.extract = NewNopContextExtractor()
	}
	return r
}

// NewNopRecorder builds a Recorder that logs nothing and whose metrics are
// never read.
func NewNopRecorder() *Recorder {
	return NewRecorder(Config{Tracer: opentracing.NoopTracer{}})
}

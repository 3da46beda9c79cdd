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

package observability

import (
	"context"
	"fmt"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	otlog "github.com/opentracing/opentracing-go/log"
	"go.uber.org/atomic"
	"go.uber.org/provider/api/pipeline"
	"go.uber.org/provider/api/transport"
	"go.uber.org/provider/dispatch"
	"go.uber.org/provider/providererrors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	_successfulInvocation = "Handled endpoint request."
	_errorInvocation      = "Error handling endpoint request."
	_suspendedInvocation  = "Suspended endpoint request."
	_panickedInvocation   = "Endpoint panicked."
	_backChannelClosed    = "Closed back-channel of one-way request."
	_backChannelError     = "Failed to close back-channel of one-way request."
)

// A Call represents a single invocation along an edge.
type Call struct {
	edge    *edge
	levels  *levels
	extract ContextExtractor

	ctx     context.Context
	req     *transport.Request
	started time.Time
	span    opentracing.Span

	ended atomic.Bool
}

// Begin starts recording an invocation. The returned context carries the
// invocation's span and must be handed to the endpoint.
func (r *Recorder) Begin(ctx context.Context, req *transport.Request, ep Endpoint) (context.Context, *Call) {
	now := _timeNow()

	opts := []opentracing.StartSpanOption{
		opentracing.StartTime(now),
		opentracing.Tags{
			"rpc.caller":            req.Caller,
			"rpc.service":           req.Service,
			"rpc.encoding":          string(req.Encoding),
			"provider.invoker":      ep.Invoker,
			"provider.payload_kind": ep.Kind.String(),
		},
	}
	if parent := opentracing.SpanFromContext(ctx); parent != nil {
		opts = append(opts, opentracing.ChildOf(parent.Context()))
	}
	span := r.tracer.StartSpan(req.Procedure, opts...)
	ext.PeerService.Set(span, req.Caller)
	ext.SpanKindRPCServer.Set(span)
	ctx = opentracing.ContextWithSpan(ctx, span)

	e := r.getOrCreateEdge(req, ep)
	e.calls.Inc()

	return ctx, &Call{
		edge:    e,
		levels:  &r.levels,
		extract: r.extract,
		ctx:     ctx,
		req:     req,
		started: now,
		span:    span,
	}
}

// Suspended records that the invocation parked its request on c.
func (c *Call) Suspended(cont pipeline.Continuation) {
	c.edge.suspended.Inc()
	if ce := c.edge.logger.Check(zapcore.DebugLevel, _suspendedInvocation); ce != nil {
		ce.Write(zap.Stringer("continuation", cont), zap.String("caller", c.req.Caller))
	}
}

// Resumed records that a suspended invocation is being resumed.
func (c *Call) Resumed() {
	c.edge.resumed.Inc()
}

// ClosedBackChannel records that the request's back-channel was closed
// because the exchange turned out to be one-way.
func (c *Call) ClosedBackChannel(err error) {
	if err != nil {
		c.edge.logger.Warn(_backChannelError, zap.String("caller", c.req.Caller), zap.Error(err))
		return
	}
	if ce := c.edge.logger.Check(zapcore.DebugLevel, _backChannelClosed); ce != nil {
		ce.Write(zap.String("caller", c.req.Caller))
	}
}

// Panicked records a panic recovered from the endpoint and returns the
// error it should be reported as.
func (c *Call) Panicked(recovered interface{}) error {
	err := fmt.Errorf("panic: %v", recovered)
	c.edge.panics.Inc()
	c.edge.logger.Error(_panickedInvocation,
		zap.String("caller", c.req.Caller),
		zap.String("encoding", string(c.req.Encoding)),
		zap.Error(err),
		zap.Stack("stack"),
	)
	return err
}

// End finishes the invocation. err is what the endpoint failed with, if
// anything, and res is the response that was built. Only the first call has
// any effect.
func (c *Call) End(err error, res *transport.Response) {
	if !c.ended.CAS(false, true) {
		return
	}
	elapsed := _timeNow().Sub(c.started)
	kind := dispatch.Classify(err)
	pattern := dispatch.PatternOf(res)

	c.endStats(elapsed, err, kind, pattern)
	c.endLogs(elapsed, err, kind, pattern)
	c.endSpan(err, kind)
}

func (c *Call) endStats(elapsed time.Duration, err error, kind dispatch.ErrorKind, pattern dispatch.Pattern) {
	c.edge.latencies.Observe(elapsed)
	if pattern == dispatch.OneWay {
		c.edge.oneway.Inc()
	}

	switch kind {
	case dispatch.None:
		c.edge.successes.Inc()
	case dispatch.Application:
		code := providererrors.FromError(err).Code()
		if counter, err := c.edge.applicationErrors.Get(_errorCode, code.String()); err == nil {
			counter.Inc()
		}
	default:
		c.edge.unexpectedErrors.Inc()
	}
}

func (c *Call) endLogs(elapsed time.Duration, err error, kind dispatch.ErrorKind, pattern dispatch.Pattern) {
	var ce *zapcore.CheckedEntry
	switch kind {
	case dispatch.None:
		ce = c.edge.logger.Check(c.levels.success, _successfulInvocation)
	case dispatch.Application:
		ce = c.edge.logger.Check(c.levels.applicationError, _errorInvocation)
	default:
		ce = c.edge.logger.Check(c.levels.unexpectedError, _errorInvocation)
	}
	if ce == nil {
		return
	}

	fields := []zapcore.Field{
		zap.String("caller", c.req.Caller),
		zap.Duration("latency", elapsed),
		zap.Bool("successful", err == nil),
		zap.Stringer("pattern", pattern),
		c.extract(c.ctx),
	}
	if err != nil {
		fields = append(fields, zap.Error(err), zap.Stringer("errorKind", kind))
	}
	if kind == dispatch.Application {
		fields = append(fields, zap.Stringer("errorCode", providererrors.FromError(err).Code()))
	}
	ce.Write(fields...)
}

func (c *Call) endSpan(err error, kind dispatch.ErrorKind) {
	if err != nil {
		ext.Error.Set(c.span, true)
		c.span.SetTag("provider.error_kind", kind.String())
		c.span.LogFields(otlog.Error(err))
	}
	c.span.Finish()
}

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

// Package engine is a minimal request pipeline: a chain of stages run on
// the caller's goroutine, and the table of requests suspended mid-chain.
//
// The engine owns no goroutines. A suspended request holds no goroutine
// either; it is an entry in the engine's table, addressed by its
// Continuation, and resumes on whichever goroutine calls Resume.
//
// Requests that are never resumed stay suspended forever. Timeouts are the
// business of whoever owns the transport.
package engine

import (
	"context"
	"sync"

	"go.uber.org/atomic"
	"go.uber.org/provider/api/pipeline"
	"go.uber.org/provider/api/transport"
	"go.uber.org/provider/providererrors"
	"go.uber.org/zap"
)

var _ pipeline.Scheduler = (*Engine)(nil)

// Option customizes an Engine.
type Option interface {
	apply(*Engine)
}

type optionFunc func(*Engine)

func (f optionFunc) apply(e *Engine) { f(e) }

// Logger sets the logger used for request lifecycle events. Defaults to a
// no-op logger.
func Logger(l *zap.Logger) Option {
	return optionFunc(func(e *Engine) {
		e.logger = l
	})
}

// Engine runs requests through a chain of stages.
type Engine struct {
	logger *zap.Logger
	stages []pipeline.Stage

	mu     sync.Mutex
	lastID uint64
	table  map[uint64]*fiber
}

// New builds an Engine. Stages are given in request order; the last stage
// is expected to be terminal.
func New(stages []pipeline.Stage, opts ...Option) *Engine {
	e := &Engine{
		logger: zap.NewNop(),
		stages: stages,
		table:  make(map[uint64]*fiber),
	}
	for _, opt := range opts {
		opt.apply(e)
	}
	return e
}

type fiberKey struct{}

// fiber is one request's trip through the engine.
type fiber struct {
	ctx  context.Context
	req  *transport.Request
	done func(*transport.Response)

	// Guarded by the engine's lock.
	id       uint64
	state    pipeline.State
	parked   bool
	depth    int
	response *transport.Response

	completed atomic.Bool
}

// Dispatch runs a request through the stages. done receives the response
// exactly once: before Dispatch returns if no stage suspends, otherwise on
// the goroutine that resumes the request.
//
// An error is returned, and done is never called, if no stage produced a
// response.
func (e *Engine) Dispatch(ctx context.Context, req *transport.Request, done func(*transport.Response)) error {
	f := &fiber{req: req, done: done}
	f.ctx = context.WithValue(ctx, fiberKey{}, f)
	return e.run(f)
}

func (e *Engine) run(f *fiber) error {
	req := f.req
	for i, stage := range e.stages {
		d := stage.ProcessRequest(f.ctx, req)
		switch d.Action() {
		case pipeline.Continue:
			if next := d.Request(); next != nil {
				req = next
			}
		case pipeline.Return:
			e.forget(f)
			e.respond(f, i-1, d.Response())
			return nil
		case pipeline.Suspend:
			e.park(f, i)
			return nil
		default:
			pipeline.Violatef("stage %d returned an empty disposition", i)
		}
	}
	return e.fail(f, req)
}

// fail asks the stages, last to first, to turn a request nobody answered
// into a response.
func (e *Engine) fail(f *fiber, req *transport.Request) error {
	e.forget(f)
	err := providererrors.UnimplementedErrorf(
		"no stage produced a response for procedure %q of service %q", req.Procedure, req.Service)
	for i := len(e.stages) - 1; i >= 0; i-- {
		d := e.stages[i].ProcessError(f.ctx, err)
		if d.Action() == pipeline.Return && d.Response() != nil {
			e.respond(f, i-1, d.Response())
			return nil
		}
	}
	return err
}

// respond runs a response back out through the stages before depth and
// hands it to the request's done function.
func (e *Engine) respond(f *fiber, depth int, res *transport.Response) {
	for i := depth; i >= 0; i-- {
		d := e.stages[i].ProcessResponse(f.ctx, res)
		switch d.Action() {
		case pipeline.Return:
			if d.Response() != nil {
				res = d.Response()
			}
		case pipeline.Continue:
		default:
			pipeline.Violatef("stage %d cannot %v while processing a response", i, d.Action())
		}
	}

	if !f.completed.CAS(false, true) {
		pipeline.Violatef("request for procedure %q completed twice", f.req.Procedure)
	}
	if ce := e.logger.Check(zap.DebugLevel, "Completed request."); ce != nil {
		ce.Write(
			zap.String("procedure", f.req.Procedure),
			zap.Object("disposition", pipeline.ReturnWith(res)),
		)
	}
	f.done(res)
}

func fiberFrom(ctx context.Context) *fiber {
	f, _ := ctx.Value(fiberKey{}).(*fiber)
	return f
}

// Capture registers the request running on ctx in the table and returns its
// continuation.
func (e *Engine) Capture(ctx context.Context) pipeline.Continuation {
	f := fiberFrom(ctx)
	if f == nil {
		pipeline.Violatef("no request is running on this context")
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if f.id != 0 {
		pipeline.Violatef("continuation#%d captured twice", f.id)
	}
	e.lastID++
	f.id = e.lastID
	f.state = pipeline.StateRunning
	e.table[f.id] = f
	return pipeline.NewContinuation(f.id)
}

func unknown(c pipeline.Continuation) {
	pipeline.Violatef("%v is unknown or already completed", c)
}

// Suspend marks a captured continuation as suspended. If the continuation
// was already resumed, it stays resumed.
func (e *Engine) Suspend(c pipeline.Continuation) {
	e.mu.Lock()
	defer e.mu.Unlock()

	f, ok := e.table[c.ID()]
	if !ok {
		unknown(c)
	}
	switch f.state {
	case pipeline.StateRunning:
		f.state = pipeline.StateSuspended
	case pipeline.StateResumed:
	default:
		pipeline.Violatef("%v suspended twice", c)
	}
}

// Resume completes a suspended request with the given response. The
// response runs back out through the stages on the calling goroutine. A
// request that was resumed before its stage yielded completes as soon as the
// stage yields.
func (e *Engine) Resume(c pipeline.Continuation, res *transport.Response) {
	e.mu.Lock()
	f, ok := e.table[c.ID()]
	if !ok {
		e.mu.Unlock()
		unknown(c)
	}
	if f.state == pipeline.StateResumed {
		e.mu.Unlock()
		pipeline.Violatef("%v resumed twice", c)
	}
	f.state = pipeline.StateResumed
	f.response = res
	parked := f.parked
	if parked {
		delete(e.table, f.id)
	}
	e.mu.Unlock()

	if ce := e.logger.Check(zap.DebugLevel, "Resumed request."); ce != nil {
		ce.Write(zap.String("procedure", f.req.Procedure), zap.Stringer("continuation", c))
	}
	if parked {
		e.respond(f, f.depth-1, res)
	}
}

// park records that the stage at depth yielded. If the request was resumed
// in the meantime, it completes right away.
func (e *Engine) park(f *fiber, depth int) {
	e.mu.Lock()
	if f.id == 0 {
		e.mu.Unlock()
		pipeline.Violatef("stage %d suspended without capturing a continuation", depth)
	}
	if f.state == pipeline.StateRunning {
		e.mu.Unlock()
		pipeline.Violatef("stage %d yielded without suspending continuation#%d", depth, f.id)
	}
	f.parked = true
	f.depth = depth
	resumed := f.state == pipeline.StateResumed
	if resumed {
		delete(e.table, f.id)
	}
	res := f.response
	e.mu.Unlock()

	if resumed {
		e.respond(f, depth-1, res)
		return
	}
	if ce := e.logger.Check(zap.DebugLevel, "Suspended request."); ce != nil {
		ce.Write(zap.String("procedure", f.req.Procedure), zap.Int("stage", depth), zap.Uint64("continuation", f.id))
	}
}

// forget drops a request that completed without suspending from the table.
func (e *Engine) forget(f *fiber) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if f.id != 0 {
		delete(e.table, f.id)
	}
}

// State returns the state of a continuation. ok is false once the request
// it belongs to has completed.
func (e *Engine) State(c pipeline.Continuation) (state pipeline.State, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	f, ok := e.table[c.ID()]
	if !ok {
		return 0, false
	}
	return f.state, true
}

// Pending returns the number of suspended requests waiting to be resumed.
func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	var n int
	for _, f := range e.table {
		if f.state == pipeline.StateSuspended {
			n++
		}
	}
	return n
}

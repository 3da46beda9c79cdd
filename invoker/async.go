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

package invoker

import (
	"context"
	"errors"

	"go.uber.org/atomic"
	"go.uber.org/provider/api/endpoint"
	"go.uber.org/provider/api/pipeline"
	"go.uber.org/provider/api/transport"
	"go.uber.org/provider/argument"
	"go.uber.org/provider/dispatch"
	"go.uber.org/provider/internal/observability"
)

var (
	_ pipeline.Stage = (*AsyncInvoker)(nil)

	errNilDelivered = errors.New("endpoint delivered a nil error")
)

// AsyncInvoker calls an endpoint.Async with a Callback bound to the
// request's continuation, then suspends the request. The callback resumes
// it, from whichever goroutine the endpoint completes on.
type AsyncInvoker struct {
	endpoint  endpoint.Async
	strategy  argument.Strategy
	scheduler pipeline.Scheduler
	recorder  *observability.Recorder
}

// ProcessRequest invokes the endpoint and suspends. If the endpoint fails
// before returning, the fault is returned immediately instead.
func (i *AsyncInvoker) ProcessRequest(ctx context.Context, req *transport.Request) pipeline.Disposition {
	ctx, call := i.recorder.Begin(ctx, req, edge(Async, i.strategy))

	param, err := extract(i.strategy, req)
	if err != nil {
		return fail(i.strategy, call, req, err)
	}

	cont := i.scheduler.Capture(ctx)
	cb := &callback{
		req:       req,
		cont:      cont,
		strategy:  i.strategy,
		scheduler: i.scheduler,
		call:      call,
	}

	if err := i.invoke(endpoint.WithCall(ctx, req), call, param, cb); err != nil {
		// The callback is dead from here on.
		if !cb.fired.CAS(false, true) {
			pipeline.Violatef("endpoint for %v failed after delivering a result: %v", cont, err)
		}
		return fail(i.strategy, call, req, err)
	}

	call.Suspended(cont)
	i.scheduler.Suspend(cont)
	return pipeline.Suspended()
}

func (i *AsyncInvoker) invoke(ctx context.Context, call *observability.Call, param interface{}, cb *callback) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recovered(call, r)
		}
	}()
	return i.endpoint.InvokeAsync(ctx, param, cb)
}

// ProcessResponse panics: AsyncInvoker is terminal. Resumed requests go
// straight to the stages before it.
func (i *AsyncInvoker) ProcessResponse(context.Context, *transport.Response) pipeline.Disposition {
	terminal(Async, "responses")
	return pipeline.Disposition{}
}

// ProcessError panics: AsyncInvoker is terminal.
func (i *AsyncInvoker) ProcessError(context.Context, error) pipeline.Disposition {
	terminal(Async, "errors")
	return pipeline.Disposition{}
}

// callback is the one-shot endpoint.Callback of a single asynchronous
// invocation.
type callback struct {
	req       *transport.Request
	cont      pipeline.Continuation
	strategy  argument.Strategy
	scheduler pipeline.Scheduler
	call      *observability.Call

	fired atomic.Bool
}

var _ endpoint.Callback = (*callback)(nil)

func (cb *callback) fire(method string) {
	if !cb.fired.CAS(false, true) {
		pipeline.Violatef("%s called on the callback of %v after it was already used", method, cb.cont)
	}
}

func (cb *callback) Deliver(result interface{}) {
	cb.fire("Deliver")
	res, err := respond(cb.strategy, cb.call, cb.req, result)
	cb.resume(err, res)
}

func (cb *callback) DeliverError(err error) {
	cb.fire("DeliverError")
	if err == nil {
		err = errNilDelivered
	}
	cb.resume(err, cb.strategy.Fault(cb.req, err))
}

func (cb *callback) resume(err error, res *transport.Response) {
	res = dispatch.Return(res).Response()
	cb.call.Resumed()
	cb.call.End(err, res)
	cb.scheduler.Resume(cb.cont, res)
}

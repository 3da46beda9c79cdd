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

	"go.uber.org/provider/api/endpoint"
	"go.uber.org/provider/api/pipeline"
	"go.uber.org/provider/api/transport"
	"go.uber.org/provider/argument"
	"go.uber.org/provider/dispatch"
	"go.uber.org/provider/internal/observability"
)

var _ pipeline.Stage = (*SyncInvoker)(nil)

// SyncInvoker calls an endpoint.Sync and returns its response right away.
// It never suspends.
type SyncInvoker struct {
	endpoint endpoint.Sync
	strategy argument.Strategy
	recorder *observability.Recorder
}

// ProcessRequest invokes the endpoint. Every failure, including a panic in
// the endpoint, becomes a fault response.
func (i *SyncInvoker) ProcessRequest(ctx context.Context, req *transport.Request) pipeline.Disposition {
	ctx, call := i.recorder.Begin(ctx, req, edge(Sync, i.strategy))

	param, err := extract(i.strategy, req)
	if err != nil {
		return fail(i.strategy, call, req, err)
	}

	result, err := i.invoke(endpoint.WithCall(ctx, req), call, param)
	if err != nil {
		return fail(i.strategy, call, req, err)
	}

	res, err := respond(i.strategy, call, req, result)
	call.End(err, res)
	return dispatch.Return(res)
}

func (i *SyncInvoker) invoke(ctx context.Context, call *observability.Call, param interface{}) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, recovered(call, r)
		}
	}()
	return i.endpoint.Invoke(ctx, param)
}

// ProcessResponse panics: SyncInvoker is terminal.
func (i *SyncInvoker) ProcessResponse(context.Context, *transport.Response) pipeline.Disposition {
	terminal(Sync, "responses")
	return pipeline.Disposition{}
}

// ProcessError panics: SyncInvoker is terminal.
func (i *SyncInvoker) ProcessError(context.Context, error) pipeline.Disposition {
	terminal(Sync, "errors")
	return pipeline.Disposition{}
}

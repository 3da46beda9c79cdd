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

// Package invoker holds the terminal pipeline stages that call endpoints.
//
// Which stage serves an endpoint is decided once, when it is registered: an
// endpoint.Sync is served by a SyncInvoker and an endpoint.Async by an
// AsyncInvoker. Invoker is the two-case sum of them.
package invoker

import (
	"fmt"
	"reflect"

	"go.uber.org/provider/api/endpoint"
	"go.uber.org/provider/api/pipeline"
	"go.uber.org/provider/api/transport"
	"go.uber.org/provider/argument"
	"go.uber.org/provider/dispatch"
	"go.uber.org/provider/internal/observability"
	"go.uber.org/provider/model"
	"go.uber.org/provider/providererrors"
)

// Type is the kind of invoker serving an endpoint.
type Type int

const (
	// Sync invokers produce the response before the stage returns.
	Sync Type = iota + 1
	// Async invokers suspend the request until the endpoint calls back.
	Async
)

func (t Type) String() string {
	switch t {
	case Sync:
		return "sync"
	case Async:
		return "async"
	default:
		return fmt.Sprintf("Type(%v)", int(t))
	}
}

// Config holds what invokers need besides the endpoint and its strategy.
type Config struct {
	// Scheduler suspends and resumes requests. Required for asynchronous
	// endpoints.
	Scheduler pipeline.Scheduler

	// Recorder defaults to one that records nothing.
	Recorder *observability.Recorder
}

// Invoker is either a SyncInvoker or an AsyncInvoker.
type Invoker struct {
	t Type

	sync  *SyncInvoker
	async *AsyncInvoker
}

// New selects and builds the invoker for an endpoint. The endpoint must
// implement exactly one of endpoint.Sync and endpoint.Async.
func New(ep interface{}, s argument.Strategy, cfg Config) (Invoker, error) {
	if cfg.Recorder == nil {
		cfg.Recorder = observability.NewNopRecorder()
	}

	syncEp, isSync := ep.(endpoint.Sync)
	asyncEp, isAsync := ep.(endpoint.Async)
	switch {
	case isSync && isAsync:
		return Invoker{}, model.NewConfigurationError(reflect.TypeOf(ep), nil,
			"endpoint implements both endpoint.Sync and endpoint.Async")
	case isSync:
		return Invoker{t: Sync, sync: &SyncInvoker{
			endpoint: syncEp,
			strategy: s,
			recorder: cfg.Recorder,
		}}, nil
	case isAsync:
		if cfg.Scheduler == nil {
			return Invoker{}, model.NewConfigurationError(reflect.TypeOf(ep), nil,
				"asynchronous endpoints require a pipeline that can suspend requests")
		}
		return Invoker{t: Async, async: &AsyncInvoker{
			endpoint:  asyncEp,
			strategy:  s,
			scheduler: cfg.Scheduler,
			recorder:  cfg.Recorder,
		}}, nil
	default:
		return Invoker{}, model.NewConfigurationError(reflect.TypeOf(ep), nil,
			"endpoint implements neither endpoint.Sync nor endpoint.Async")
	}
}

// Type returns the kind of invoker.
func (i Invoker) Type() Type { return i.t }

// Sync returns the SyncInvoker, or nil.
func (i Invoker) Sync() *SyncInvoker { return i.sync }

// Async returns the AsyncInvoker, or nil.
func (i Invoker) Async() *AsyncInvoker { return i.async }

// Stage returns the invoker as a pipeline stage.
func (i Invoker) Stage() pipeline.Stage {
	switch i.t {
	case Sync:
		return i.sync
	case Async:
		return i.async
	default:
		return nil
	}
}

// extract reads the endpoint's parameter. A request that cannot be read is
// the caller's fault.
func extract(s argument.Strategy, req *transport.Request) (interface{}, error) {
	param, err := s.Extract(req)
	if err != nil {
		return nil, providererrors.Wrap(providererrors.CodeInvalidArgument, err)
	}
	return param, nil
}

// respond builds the response for an endpoint result. One-way results close
// the back-channel before anything else can fail.
func respond(s argument.Strategy, call *observability.Call, req *transport.Request, result interface{}) (*transport.Response, error) {
	if argument.IsOneWay(result) && req.BackChannel != nil {
		call.ClosedBackChannel(req.CloseBackChannel())
	}
	res, err := s.Response(req, result)
	if err != nil {
		return s.Fault(req, err), err
	}
	return res, nil
}

// fail builds the response for a request whose endpoint failed and records
// the end of the invocation.
func fail(s argument.Strategy, call *observability.Call, req *transport.Request, err error) pipeline.Disposition {
	res := s.Fault(req, err)
	call.End(err, res)
	return dispatch.Return(res)
}

// recovered turns a panic from an endpoint into an unexpected error.
// Violations are not the endpoint's fault and keep unwinding.
func recovered(call *observability.Call, r interface{}) error {
	if pipeline.IsViolation(r) {
		panic(r)
	}
	return call.Panicked(r)
}

func terminal(t Type, what string) {
	pipeline.Violatef("%v invoker is a terminal stage and cannot process %s", t, what)
}

func edge(t Type, s argument.Strategy) observability.Endpoint {
	return observability.Endpoint{Invoker: t.String(), Kind: s.Kind()}
}

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

// Package endpoint defines the two shapes a user-supplied service object may
// take, and what it can see of the request it is serving.
//
// An endpoint implements exactly one of Sync or Async. The parameter it
// receives, and the result it must return, depend on the payload kind it was
// registered for:
//
//	RawPayload, FullEnvelopeAsRaw   message.Source
//	FullEnvelopeStructured          *message.Message
//	FullEnvelopeOpaqueMessage       *message.Opaque
//	DataSource                      message.DataSource
//
// A nil result means the exchange is one-way: the caller only gets an
// acknowledgement.
//
// Endpoints are shared by all requests and may be invoked concurrently.
package endpoint

import "context"

// Sync is an endpoint that produces its result before returning.
type Sync interface {
	// Invoke serves a single request. Errors that are, or wrap, a
	// *providererrors.Status are application errors; any other error is
	// unexpected. Both reach the caller as faults.
	Invoke(ctx context.Context, param interface{}) (result interface{}, err error)
}

// SyncFunc adapts a function into a Sync endpoint.
type SyncFunc func(context.Context, interface{}) (interface{}, error)

// Invoke calls f.
func (f SyncFunc) Invoke(ctx context.Context, param interface{}) (interface{}, error) {
	return f(ctx, param)
}

// Async is an endpoint that produces its result later, through a Callback.
type Async interface {
	// InvokeAsync starts serving a request. The endpoint must eventually call
	// exactly one of cb.Deliver or cb.DeliverError, exactly once, from any
	// goroutine. If InvokeAsync returns an error, the callback must not be
	// used: the error is turned into a fault right away.
	//
	// ctx is only valid for the duration of InvokeAsync, but the Call
	// obtained from it stays valid until the callback fires.
	InvokeAsync(ctx context.Context, param interface{}, cb Callback) error
}

// AsyncFunc adapts a function into an Async endpoint.
type AsyncFunc func(context.Context, interface{}, Callback) error

// InvokeAsync calls f.
func (f AsyncFunc) InvokeAsync(ctx context.Context, param interface{}, cb Callback) error {
	return f(ctx, param, cb)
}

// Callback is the one-shot handle an Async endpoint completes its request
// with. Calling either method a second time panics: a duplicate delivery is a
// bug in the endpoint.
type Callback interface {
	// Deliver completes the request with the given result. A nil result
	// completes a one-way exchange.
	Deliver(result interface{})

	// DeliverError completes the request with a fault built from err.
	DeliverError(err error)
}

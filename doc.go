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

// Package provider dispatches requests to user endpoints.
//
// An endpoint is registered under a procedure together with a Descriptor
// that says what it wants to see of each request: the payload or the whole
// envelope, raw, structured or as the binding's opaque message. Everything
// that can be decided about an endpoint is decided once, at registration:
// the marshaling strategy for its parameter and whether it is invoked
// synchronously or asynchronously. Invalid declarations fail registration
// and are never discovered per request.
//
// Synchronous endpoints produce their response before Dispatch returns.
// Asynchronous endpoints are handed a Callback and the request is suspended
// until the endpoint calls it, from any goroutine. No goroutine waits for a
// suspended request.
//
//   d, err := provider.NewDispatcher(provider.Config{
//     Name:    "keyvalue",
//     Binding: binding.SOAP11,
//   })
//   ...
//   err = d.Register(provider.Registration{
//     Procedure:  "get",
//     Endpoint:   endpoint.SyncFunc(get),
//     Descriptor: model.Descriptor{Param: model.ParamType(model.RawPayload)},
//   })
package provider

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

package endpoint

import (
	"context"
	"sort"

	"go.uber.org/provider/api/transport"
)

type callKey struct{}

// Call provides read-only information about the current request inside
// endpoints. Obtain it with CallFromContext.
//
//	func (e *echo) Invoke(ctx context.Context, param interface{}) (interface{}, error) {
//		call := endpoint.CallFromContext(ctx)
//		fmt.Println("Received request from", call.Caller())
//		return param, nil
//	}
type Call struct {
	req *transport.Request
}

// WithCall returns a context carrying a Call for req. Invokers call this
// before handing the context to an endpoint.
func WithCall(ctx context.Context, req *transport.Request) context.Context {
	return context.WithValue(ctx, callKey{}, &Call{req: req})
}

// CallFromContext retrieves information about the current incoming request
// from the given context. Returns nil if the context is not a valid request
// context.
func CallFromContext(ctx context.Context) *Call {
	call, _ := ctx.Value(callKey{}).(*Call)
	return call
}

// Caller returns the name of the service making this request.
func (c *Call) Caller() string {
	if c == nil {
		return ""
	}
	return c.req.Caller
}

// Service returns the name of the service being called.
func (c *Call) Service() string {
	if c == nil {
		return ""
	}
	return c.req.Service
}

// Procedure returns the name of the procedure being called.
func (c *Call) Procedure() string {
	if c == nil {
		return ""
	}
	return c.req.Procedure
}

// Encoding returns the encoding for this request.
func (c *Call) Encoding() transport.Encoding {
	if c == nil {
		return ""
	}
	return c.req.Encoding
}

// Header returns the value of the given request header provided with the
// request.
func (c *Call) Header(k string) string {
	if c == nil {
		return ""
	}
	v, _ := c.req.Headers.Get(k)
	return v
}

// HeaderNames returns a sorted list of the names of headers provided with
// this request.
func (c *Call) HeaderNames() []string {
	if c == nil {
		return nil
	}
	var names []string
	for k := range c.req.Headers.Items() {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

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

package transport

import "go.uber.org/provider/api/message"

// Response is the outbound message produced for a Request.
//
// Responses are only ever built by argument strategies so that
// binding-specific shaping stays in one place.
type Response struct {
	// Message is the response body. A nil Message acknowledges the request
	// without a body.
	Message *message.Message

	// Headers are transport headers to write with the response.
	Headers Headers

	// ApplicationError is set when Message carries a fault.
	ApplicationError bool

	// OneWay is set when the exchange has no meaningful response.
	OneWay bool
}

// IsAcknowledgement reports whether the response has no body.
func (r *Response) IsAcknowledgement() bool {
	return r.Message == nil
}

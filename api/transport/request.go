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

import (
	"io"
	"strings"

	"go.uber.org/atomic"
	"go.uber.org/provider/api/message"
	"go.uber.org/provider/providererrors"
)

//go:generate mockgen -destination=transporttest/backchannel.go -package=transporttest go.uber.org/provider/api/transport BackChannel

// BackChannel is the write side of a half-duplex transport. Closing it tells
// the transport that no further bytes will be written for this exchange.
type BackChannel interface {
	io.Closer
}

// Request is the inbound unit of work handed to an endpoint invoker.
//
// Requests may be touched from a goroutine other than the one that received
// them once an asynchronous invocation resumes; nothing here is tied to the
// receiving goroutine.
type Request struct {
	// Name of the service making the request.
	Caller string

	// Name of the service to which the request is being made.
	Service string

	// Name of the encoding used for the request body.
	Encoding Encoding

	// Name of the procedure being called.
	Procedure string

	// Transport headers the request arrived with.
	Headers Headers

	// Message body. Exactly one view of it is read per request.
	Message *message.Message

	// BackChannel is set only by half-duplex transports.
	BackChannel BackChannel

	backChannelClosed atomic.Bool
}

// Encoding represents an encoding format for requests.
type Encoding string

// XML is the encoding of envelope and plain XML messages.
const XML Encoding = "xml"

// CloseBackChannel closes the request's back-channel if it has one. The
// transport sees at most one Close per request; later calls return nil.
func (r *Request) CloseBackChannel() error {
	if r.BackChannel == nil {
		return nil
	}
	if !r.backChannelClosed.CAS(false, true) {
		return nil
	}
	return r.BackChannel.Close()
}

// ValidateRequest validates the given request. An error is returned if the
// request is invalid.
func ValidateRequest(req *Request) error {
	var missingParams []string
	if req.Service == "" {
		missingParams = append(missingParams, "service name")
	}
	if req.Procedure == "" {
		missingParams = append(missingParams, "procedure")
	}
	if req.Caller == "" {
		missingParams = append(missingParams, "caller name")
	}
	if req.Message == nil {
		missingParams = append(missingParams, "message")
	}
	if len(missingParams) > 0 {
		return providererrors.Newf(providererrors.CodeInvalidArgument,
			"missing %s", strings.Join(missingParams, ", "))
	}
	return nil
}

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

// Package dispatch adapts invocation outcomes to what the surrounding
// pipeline expects: which exchange pattern a response implies, and which
// kind of failure an endpoint raised.
package dispatch

import (
	"fmt"

	"go.uber.org/provider/api/pipeline"
	"go.uber.org/provider/api/transport"
	"go.uber.org/provider/providererrors"
)

// Pattern is a message exchange pattern.
type Pattern int

const (
	// RequestResponse exchanges carry a response body.
	RequestResponse Pattern = iota + 1
	// OneWay exchanges are acknowledged without a body.
	OneWay
)

func (p Pattern) String() string {
	switch p {
	case RequestResponse:
		return "request-response"
	case OneWay:
		return "oneway"
	default:
		return fmt.Sprintf("Pattern(%d)", int(p))
	}
}

// PatternOf returns the exchange pattern implied by a response.
func PatternOf(res *transport.Response) Pattern {
	if res == nil || res.IsAcknowledgement() {
		return OneWay
	}
	return RequestResponse
}

// ErrorKind distinguishes how an endpoint failed.
type ErrorKind int

const (
	// None means the endpoint did not fail.
	None ErrorKind = iota
	// Application errors were raised on purpose by the endpoint.
	Application
	// Unexpected errors are everything else, including panics.
	Unexpected
)

func (k ErrorKind) String() string {
	switch k {
	case None:
		return "none"
	case Application:
		return "application"
	case Unexpected:
		return "unexpected"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Classify returns the kind of an error raised by an endpoint.
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return None
	case providererrors.IsStatus(err):
		return Application
	default:
		return Unexpected
	}
}

// Return shapes a response built by an argument strategy into the
// disposition a terminal stage hands back to the pipeline. The response's
// OneWay flag is set from its exchange pattern.
func Return(res *transport.Response) pipeline.Disposition {
	if res == nil {
		res = &transport.Response{}
	}
	res.OneWay = PatternOf(res) == OneWay
	return pipeline.ReturnWith(res)
}

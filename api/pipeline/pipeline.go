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

// Package pipeline defines the contract between a request pipeline and the
// stages it runs.
//
// A stage receives a request and answers with a Disposition: continue to the
// next stage, return with a response, or suspend. A stage that suspends must
// have captured a Continuation from the pipeline's Scheduler; whoever holds
// the Continuation later resumes it with the response, from any goroutine.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/provider/api/transport"
	"go.uber.org/zap/zapcore"
)

//go:generate mockgen -destination=pipelinetest/pipeline.go -package=pipelinetest go.uber.org/provider/api/pipeline Scheduler,Stage

// Action is what a stage asks the pipeline to do next.
type Action int

const (
	// Continue passes the request to the next stage.
	Continue Action = iota + 1
	// Return ends request processing with a response.
	Return
	// Suspend parks the request until its continuation is resumed.
	Suspend
)

var _actionNames = map[Action]string{
	Continue: "continue",
	Return:   "return",
	Suspend:  "suspend",
}

func (a Action) String() string {
	if s, ok := _actionNames[a]; ok {
		return s
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Disposition is the outcome of a stage processing a request or response.
type Disposition struct {
	action   Action
	request  *transport.Request
	response *transport.Response
}

// ContinueWith passes the given request on to the next stage.
func ContinueWith(req *transport.Request) Disposition {
	return Disposition{action: Continue, request: req}
}

// ReturnWith ends processing with the given response.
func ReturnWith(res *transport.Response) Disposition {
	return Disposition{action: Return, response: res}
}

// Suspended ends the stage's processing without a response. The stage must
// have suspended a captured Continuation before returning this.
func Suspended() Disposition {
	return Disposition{action: Suspend}
}

// Action returns what the pipeline should do next.
func (d Disposition) Action() Action { return d.action }

// Request returns the request to continue with, if any.
func (d Disposition) Request() *transport.Request { return d.request }

// Response returns the response to return with, if any.
func (d Disposition) Response() *transport.Response { return d.response }

// MarshalLogObject implements zap.ObjectMarshaler.
func (d Disposition) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("action", d.action.String())
	if d.response != nil {
		enc.AddBool("applicationError", d.response.ApplicationError)
		enc.AddBool("oneway", d.response.OneWay)
	}
	return nil
}

// Stage is a single step of request processing.
type Stage interface {
	// ProcessRequest handles an inbound request.
	ProcessRequest(ctx context.Context, req *transport.Request) Disposition

	// ProcessResponse handles a response on its way back out. Terminal stages
	// that produce responses are never asked to process them and panic with
	// a Violation if they are.
	ProcessResponse(ctx context.Context, res *transport.Response) Disposition

	// ProcessError handles a failure raised by a later stage. Terminal stages
	// panic with a Violation.
	ProcessError(ctx context.Context, err error) Disposition
}

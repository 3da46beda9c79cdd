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

package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/provider/api/transport"
)

// Continuation is an opaque handle to a unit of pipeline execution that may
// be suspended and later resumed exactly once.
//
// The handle is a plain value; it does not pin any goroutine-local state, so
// it may be resumed from any goroutine.
type Continuation struct {
	id uint64
}

// NewContinuation builds a handle. Only Scheduler implementations should
// call this.
func NewContinuation(id uint64) Continuation {
	return Continuation{id: id}
}

// ID returns the handle's identifier within its Scheduler.
func (c Continuation) ID() uint64 { return c.id }

// IsZero reports whether this is the zero handle, which refers to nothing.
func (c Continuation) IsZero() bool { return c.id == 0 }

func (c Continuation) String() string { return fmt.Sprintf("continuation#%d", c.id) }

// State is the lifecycle of a Continuation.
type State int

const (
	// StateRunning is the state of a captured continuation whose stage has
	// not yielded yet.
	StateRunning State = iota + 1
	// StateSuspended continuations wait for Resume.
	StateSuspended
	// StateResumed is terminal.
	StateResumed
)

var _stateNames = map[State]string{
	StateRunning:   "running",
	StateSuspended: "suspended",
	StateResumed:   "resumed",
}

func (s State) String() string {
	if name, ok := _stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Scheduler is implemented by pipelines that support suspending a request
// mid-stage.
type Scheduler interface {
	// Capture returns the continuation for the request being processed on
	// ctx. It panics with a Violation if ctx carries none.
	Capture(ctx context.Context) Continuation

	// Suspend moves a captured continuation to StateSuspended. The stage must
	// return Suspended() right after.
	Suspend(c Continuation)

	// Resume hands the response to a continuation and re-enters response
	// processing on the calling goroutine. Resuming a continuation twice
	// panics with a Violation.
	Resume(c Continuation, res *transport.Response)
}

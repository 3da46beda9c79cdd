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

package provider

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/provider/api/pipeline"
	"go.uber.org/provider/api/transport"
	"go.uber.org/provider/invoker"
)

var _ pipeline.Stage = (*router)(nil)

// router is the last stage of a dispatcher's engine. It hands each request
// to the invoker registered for its procedure.
type router struct {
	mu       sync.RWMutex
	invokers map[string]invoker.Invoker
}

func newRouter() *router {
	return &router{invokers: make(map[string]invoker.Invoker)}
}

// add registers invokers by procedure. Nothing is added if any procedure is
// already taken.
func (r *router) add(invokers map[string]invoker.Invoker) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var taken []string
	for procedure := range invokers {
		if _, ok := r.invokers[procedure]; ok {
			taken = append(taken, procedure)
		}
	}
	if len(taken) > 0 {
		sort.Strings(taken)
		return taken
	}
	for procedure, i := range invokers {
		r.invokers[procedure] = i
	}
	return nil
}

func (r *router) lookup(procedure string) (invoker.Invoker, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.invokers[procedure]
	return i, ok
}

func (r *router) procedures() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	procedures := make([]string, 0, len(r.invokers))
	for procedure := range r.invokers {
		procedures = append(procedures, procedure)
	}
	sort.Strings(procedures)
	return procedures
}

// ProcessRequest continues requests for unknown procedures so that the
// engine reports them as unanswered.
func (r *router) ProcessRequest(ctx context.Context, req *transport.Request) pipeline.Disposition {
	i, ok := r.lookup(req.Procedure)
	if !ok {
		return pipeline.ContinueWith(nil)
	}
	return i.Stage().ProcessRequest(ctx, req)
}

func (r *router) ProcessResponse(context.Context, *transport.Response) pipeline.Disposition {
	return pipeline.ContinueWith(nil)
}

func (r *router) ProcessError(context.Context, error) pipeline.Disposition {
	return pipeline.ContinueWith(nil)
}

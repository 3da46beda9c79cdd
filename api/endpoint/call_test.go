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
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/provider/api/transport"
)

func TestCallFromContext(t *testing.T) {
	req := &transport.Request{
		Caller:    "caller",
		Service:   "service",
		Procedure: "echo",
		Encoding:  transport.XML,
		Headers:   transport.NewHeaders().With("X-Token", "10").With("accept", "text/xml"),
	}
	call := CallFromContext(WithCall(context.Background(), req))

	assert.Equal(t, "caller", call.Caller())
	assert.Equal(t, "service", call.Service())
	assert.Equal(t, "echo", call.Procedure())
	assert.Equal(t, transport.XML, call.Encoding())
	assert.Equal(t, "10", call.Header("x-token"))
	assert.Equal(t, "", call.Header("missing"))
	assert.Equal(t, []string{"accept", "x-token"}, call.HeaderNames())
}

func TestNilCall(t *testing.T) {
	call := CallFromContext(context.Background())
	assert.Nil(t, call)

	assert.Equal(t, "", call.Caller())
	assert.Equal(t, "", call.Service())
	assert.Equal(t, "", call.Procedure())
	assert.Equal(t, transport.Encoding(""), call.Encoding())
	assert.Equal(t, "", call.Header("foo"))
	assert.Nil(t, call.HeaderNames())
}

func TestFuncAdapters(t *testing.T) {
	var sync Sync = SyncFunc(func(_ context.Context, p interface{}) (interface{}, error) {
		return p, nil
	})
	got, err := sync.Invoke(context.Background(), "x")
	assert.NoError(t, err)
	assert.Equal(t, "x", got)

	var called bool
	var async Async = AsyncFunc(func(context.Context, interface{}, Callback) error {
		called = true
		return nil
	})
	assert.NoError(t, async.InvokeAsync(context.Background(), nil, nil))
	assert.True(t, called)
}

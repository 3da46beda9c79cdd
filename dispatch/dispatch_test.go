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

package dispatch

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/provider/api/binding"
	"go.uber.org/provider/api/message"
	"go.uber.org/provider/api/pipeline"
	"go.uber.org/provider/api/transport"
	"go.uber.org/provider/providererrors"
)

func TestPatternOf(t *testing.T) {
	assert.Equal(t, OneWay, PatternOf(nil))
	assert.Equal(t, OneWay, PatternOf(&transport.Response{}))
	assert.Equal(t, RequestResponse, PatternOf(&transport.Response{
		Message: message.New(binding.SOAP11, message.Source{}),
	}))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		give error
		want ErrorKind
	}{
		{give: nil, want: None},
		{give: providererrors.Newf(providererrors.CodeNotFound, "no such order"), want: Application},
		{give: fmt.Errorf("lookup: %w", providererrors.InvalidArgumentErrorf("bad id")), want: Application},
		{give: errors.New("great sadness"), want: Unexpected},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.give))
		})
	}
}

func TestReturn(t *testing.T) {
	t.Run("acknowledgement", func(t *testing.T) {
		d := Return(&transport.Response{})
		assert.Equal(t, pipeline.Return, d.Action())
		assert.True(t, d.Response().OneWay)
	})

	t.Run("nil response", func(t *testing.T) {
		d := Return(nil)
		assert.True(t, d.Response().IsAcknowledgement())
		assert.True(t, d.Response().OneWay)
	})

	t.Run("with body", func(t *testing.T) {
		res := &transport.Response{
			Message: message.New(binding.SOAP12, message.SourceFromString("<ok/>")),
			OneWay:  true,
		}
		d := Return(res)
		assert.True(t, res == d.Response(), "response must be returned as is")
		assert.False(t, res.OneWay)
	})
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "oneway", OneWay.String())
	assert.Equal(t, "Pattern(9)", Pattern(9).String())
	assert.Equal(t, "ErrorKind(9)", ErrorKind(9).String())
}

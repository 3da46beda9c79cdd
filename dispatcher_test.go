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

package provider_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally"
	"go.uber.org/multierr"
	. "go.uber.org/provider"
	"go.uber.org/provider/api/binding"
	"go.uber.org/provider/api/endpoint"
	"go.uber.org/provider/api/message"
	"go.uber.org/provider/api/pipeline"
	"go.uber.org/provider/api/transport"
	"go.uber.org/provider/model"
	"go.uber.org/provider/providererrors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const _envelope = `<Envelope xmlns="http://schemas.xmlsoap.org/soap/envelope/"><Body><get><key>foo</key></get></Body></Envelope>`

var _raw = model.Descriptor{Param: model.ParamType(model.RawPayload)}

func basicDispatcher(t testing.TB, opts ...func(*Config)) *Dispatcher {
	cfg := Config{Name: "keyvalue", Binding: binding.SOAP11}
	for _, opt := range opts {
		opt(&cfg)
	}
	d, err := NewDispatcher(cfg)
	require.NoError(t, err)
	return d
}

func newRequest(procedure string) *transport.Request {
	return &transport.Request{
		Caller:    "client",
		Service:   "keyvalue",
		Procedure: procedure,
		Encoding:  transport.XML,
		Message:   message.FromReader(binding.SOAP11, strings.NewReader(_envelope)),
	}
}

// echo returns the payload it was given.
var echo = endpoint.SyncFunc(func(_ context.Context, param interface{}) (interface{}, error) {
	return param, nil
})

func dispatch(t *testing.T, d *Dispatcher, req *transport.Request) *transport.Response {
	var res *transport.Response
	require.NoError(t, d.Dispatch(context.Background(), req, func(r *transport.Response) {
		require.Nil(t, res, "response delivered twice")
		res = r
	}))
	require.NotNil(t, res, "expected a response before Dispatch returned")
	return res
}

func TestNewDispatcher(t *testing.T) {
	_, err := NewDispatcher(Config{Binding: binding.SOAP11})
	assert.EqualError(t, err, "a service name is required")

	_, err = NewDispatcher(Config{Name: "keyvalue"})
	assert.EqualError(t, err, `unknown binding Binding(0) for dispatcher "keyvalue"`)

	d := basicDispatcher(t)
	assert.Equal(t, "keyvalue", d.Name())
	assert.Equal(t, binding.SOAP11, d.Binding())
	assert.Empty(t, d.Procedures())
}

func TestRegister(t *testing.T) {
	d := basicDispatcher(t)
	require.NoError(t, d.Register(
		Registration{Procedure: "set", Endpoint: echo, Descriptor: _raw},
		Registration{Procedure: "get", Endpoint: echo, Descriptor: _raw},
	))
	assert.Equal(t, []string{"get", "set"}, d.Procedures())

	err := d.Register(
		Registration{Procedure: "get", Endpoint: echo, Descriptor: _raw},
		Registration{Procedure: "delete", Endpoint: echo, Descriptor: _raw},
	)
	assert.EqualError(t, err, `procedures already registered with dispatcher "keyvalue": get`)
	assert.Equal(t, []string{"get", "set"}, d.Procedures(), "failed registrations add nothing")
}

func TestRegisterErrors(t *testing.T) {
	d := basicDispatcher(t)
	err := d.Register(
		Registration{Procedure: "valid", Endpoint: echo, Descriptor: _raw},
		Registration{Procedure: "valid", Endpoint: echo, Descriptor: _raw},
		Registration{Endpoint: echo, Descriptor: _raw},
		Registration{
			Procedure:  "illegal",
			Endpoint:   echo,
			Descriptor: model.Descriptor{Param: model.ParamType(model.FullEnvelopeStructured)},
		},
		Registration{Procedure: "neither", Endpoint: struct{}{}, Descriptor: _raw},
	)
	require.Error(t, err)
	errs := multierr.Errors(err)
	require.Len(t, errs, 4)
	assert.Contains(t, errs[0].Error(), `procedure "valid" is registered more than once`)
	assert.Contains(t, errs[1].Error(), "has no procedure")
	assert.Contains(t, errs[2].Error(), "illegal combination")
	assert.Contains(t, errs[3].Error(), "implements neither")

	var cerr *model.ConfigurationError
	require.True(t, errors.As(errs[2], &cerr))
	assert.Contains(t, cerr.Impl.String(), "SyncFunc", "configuration errors name the implementation")

	assert.Empty(t, d.Procedures(), "nothing is registered if anything is invalid")
}

func TestDispatchErrors(t *testing.T) {
	d := basicDispatcher(t)
	require.NoError(t, d.Register(Registration{Procedure: "get", Endpoint: echo, Descriptor: _raw}))

	done := func(*transport.Response) { t.Fatal("unexpected response") }

	req := newRequest("get")
	req.Caller = ""
	err := d.Dispatch(context.Background(), req, done)
	assert.Equal(t, providererrors.CodeInvalidArgument, providererrors.FromError(err).Code())

	err = d.Dispatch(context.Background(), newRequest("put"), done)
	assert.Equal(t, providererrors.CodeUnimplemented, providererrors.FromError(err).Code())
	assert.Contains(t, err.Error(), `unrecognized procedure "put" for service "keyvalue"`)
}

func TestDispatchSync(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	d := basicDispatcher(t, func(cfg *Config) {
		cfg.Logging.Zap = zap.New(core)
	})
	require.NoError(t, d.Register(Registration{Procedure: "get", Endpoint: echo, Descriptor: _raw}))

	res := dispatch(t, d, newRequest("get"))
	assert.False(t, res.ApplicationError)
	assert.False(t, res.OneWay)
	payload, err := res.Message.Payload()
	require.NoError(t, err)
	assert.Equal(t, "<get><key>foo</key></get>", payload.String())

	assert.Equal(t, 1, logs.FilterMessage("Registered endpoint.").Len())
	assert.Equal(t, 1, logs.FilterMessage("Handled endpoint request.").Len())
	for _, entry := range logs.All() {
		assert.Equal(t, "provider", entry.LoggerName)
	}
}

func TestDispatchFault(t *testing.T) {
	d := basicDispatcher(t)
	require.NoError(t, d.Register(Registration{
		Procedure: "get",
		Endpoint: endpoint.SyncFunc(func(context.Context, interface{}) (interface{}, error) {
			return nil, providererrors.NotFoundErrorf("no such key")
		}),
		Descriptor: _raw,
	}))

	res := dispatch(t, d, newRequest("get"))
	assert.True(t, res.ApplicationError)
	fault, err := res.Message.Fault()
	require.NoError(t, err)
	require.NotNil(t, fault)
	assert.Equal(t, "Client", fault.Code)
	assert.Equal(t, "no such key", fault.Reason)
}

func TestDispatchAsync(t *testing.T) {
	callbacks := make(chan endpoint.Callback, 1)
	d := basicDispatcher(t, func(cfg *Config) {
		cfg.Stages = []pipeline.Stage{headerStage{"X-Dispatcher", "keyvalue"}}
	})
	require.NoError(t, d.Register(Registration{
		Procedure: "get",
		Endpoint: endpoint.AsyncFunc(func(_ context.Context, _ interface{}, cb endpoint.Callback) error {
			callbacks <- cb
			return nil
		}),
		Descriptor: model.Descriptor{Mode: model.Message, Param: model.ParamType(model.FullEnvelopeStructured)},
	}))

	responses := make(chan *transport.Response, 1)
	require.NoError(t, d.Dispatch(context.Background(), newRequest("get"), func(res *transport.Response) {
		responses <- res
	}))
	assert.Equal(t, 1, d.Pending())

	cb := <-callbacks
	go cb.Deliver(message.New(binding.SOAP11, message.SourceFromString("<value>bar</value>")))

	res := <-responses
	payload, err := res.Message.Payload()
	require.NoError(t, err)
	assert.Equal(t, "<value>bar</value>", payload.String())
	v, ok := res.Headers.Get("x-dispatcher")
	assert.True(t, ok)
	assert.Equal(t, "keyvalue", v)
	assert.Equal(t, 0, d.Pending())
}

func TestAutomaticHeaders(t *testing.T) {
	d := basicDispatcher(t, func(cfg *Config) {
		cfg.AutomaticHeaders = []string{"X-Internal"}
	})
	require.NoError(t, d.Register(Registration{
		Procedure: "get",
		Endpoint: endpoint.SyncFunc(func(_ context.Context, param interface{}) (interface{}, error) {
			o := param.(*message.Opaque)
			o.SetMIMEHeader("X-Internal", "1")
			o.SetMIMEHeader("Content-Type", "text/xml")
			return o, nil
		}),
		Descriptor: model.Descriptor{Mode: model.Message, Param: model.ParamType(model.FullEnvelopeOpaqueMessage)},
	}))

	res := dispatch(t, d, newRequest("get"))
	assert.Equal(t, map[string]string{"Content-Type": "text/xml"}, res.Headers.OriginalItems())
}

func TestStartStop(t *testing.T) {
	scope := tally.NewTestScope("", nil)
	d := basicDispatcher(t, func(cfg *Config) {
		cfg.Metrics.Tally = scope
	})
	require.NoError(t, d.Start())
	require.NoError(t, d.Start(), "starting twice is a no-op")
	require.NoError(t, d.Stop())
	require.NoError(t, d.Stop(), "stopping twice is a no-op")

	// Without Tally there is nothing to push.
	d = basicDispatcher(t)
	require.NoError(t, d.Start())
	require.NoError(t, d.Stop())
}

type headerStage struct{ k, v string }

func (s headerStage) ProcessRequest(_ context.Context, req *transport.Request) pipeline.Disposition {
	return pipeline.ContinueWith(req)
}

func (s headerStage) ProcessResponse(_ context.Context, res *transport.Response) pipeline.Disposition {
	res.Headers = res.Headers.With(s.k, s.v)
	return pipeline.ReturnWith(res)
}

func (s headerStage) ProcessError(context.Context, error) pipeline.Disposition {
	return pipeline.ContinueWith(nil)
}

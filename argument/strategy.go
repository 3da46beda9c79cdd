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

// Package argument holds the strategies that read an endpoint's parameter
// off an inbound message and write its result, or its failure, back out.
//
// A strategy is chosen once per endpoint, from its payload kind, by New.
// Strategies are stateless and shared by all requests to the endpoint.
package argument

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"go.uber.org/provider/api/binding"
	"go.uber.org/provider/api/message"
	"go.uber.org/provider/api/transport"
	"go.uber.org/provider/model"
	"go.uber.org/provider/providererrors"
)

//go:generate mockgen -destination=argumenttest/strategy.go -package=argumenttest go.uber.org/provider/argument Strategy

// Strategy reads and writes one payload kind.
type Strategy interface {
	// Kind is the payload kind this strategy handles.
	Kind() model.PayloadKind

	// Extract reads the view of the request's message implied by Kind. It
	// reads nothing else.
	Extract(req *transport.Request) (interface{}, error)

	// Response builds the response for a result returned by the endpoint.
	// A nil result acknowledges the request without a body.
	Response(req *transport.Request, result interface{}) (*transport.Response, error)

	// Fault builds a fault response for an error raised by the endpoint.
	// It never fails.
	Fault(req *transport.Request, err error) *transport.Response
}

// Option customizes a Strategy.
type Option interface {
	apply(*options)
}

type optionFunc func(*options)

func (f optionFunc) apply(o *options) { f(o) }

type options struct {
	automaticHeaders []string
}

// WithAutomaticHeaders replaces the names of the transport headers the
// protocol stack sets on its own. Endpoint-supplied headers with these
// names, compared case-insensitively, are never copied onto a response.
//
// Defaults to the binding's automatic headers.
func WithAutomaticHeaders(names ...string) Option {
	return optionFunc(func(o *options) {
		o.automaticHeaders = names
	})
}

// New returns the strategy for an endpoint of the given model. impl is the
// endpoint and param its declared parameter type; both are only used to
// name the endpoint in configuration errors.
func New(m model.Model, b binding.Binding, impl interface{}, param reflect.Type, opts ...Option) (Strategy, error) {
	o := options{automaticHeaders: b.AutomaticHeaders()}
	for _, opt := range opts {
		opt.apply(&o)
	}

	implType := reflect.TypeOf(impl)
	if want := model.ParamType(m.Kind); want == nil || want != param {
		return nil, model.NewConfigurationError(implType, param,
			"parameter type does not match payload kind %v", m.Kind)
	}

	base := strategy{binding: b}
	switch m.Kind {
	case model.RawPayload:
		return rawPayload{base}, nil
	case model.FullEnvelopeAsRaw:
		if b.IsEnvelope() {
			return rawEnvelope{base}, nil
		}
	case model.FullEnvelopeStructured:
		if b.IsEnvelope() {
			return structured{base}, nil
		}
	case model.FullEnvelopeOpaqueMessage:
		if b.IsEnvelope() {
			return newOpaque(base, o.automaticHeaders), nil
		}
	case model.DataSource:
		if !b.IsEnvelope() {
			return dataSource{base}, nil
		}
	}
	return nil, model.NewConfigurationError(implType, param,
		"no strategy for %v payloads under the %v binding", m.Kind, b)
}

var _errUnknown = errors.New("unknown error")

// strategy holds what all variants share.
type strategy struct {
	binding binding.Binding
}

func (s strategy) Fault(_ *transport.Request, err error) *transport.Response {
	if err == nil {
		err = _errUnknown
	}
	st := providererrors.FromError(err)
	f := message.Fault{
		Code:   s.binding.ReceiverFaultCode(),
		Reason: st.Message(),
		Detail: st.Detail(),
	}
	if st.Code().IsCallerFault() {
		f.Code = s.binding.SenderFaultCode()
	}
	if f.Reason == "" {
		f.Reason = st.Code().String()
	}
	return &transport.Response{
		Message:          message.NewFault(s.binding, f),
		ApplicationError: true,
	}
}

func (s strategy) message(payload message.Source) *transport.Response {
	return &transport.Response{Message: message.New(s.binding, payload)}
}

func acknowledge() *transport.Response {
	return &transport.Response{OneWay: true}
}

// IsOneWay reports whether an endpoint result means the exchange is one-way:
// the endpoint returned nothing, or a nil pointer.
func IsOneWay(result interface{}) bool {
	return isNil(result)
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}

func unexpectedResult(k model.PayloadKind, result interface{}) error {
	return fmt.Errorf("endpoint returned %T for a %v payload, expected %v", result, k, model.ParamType(k))
}

func isAutomatic(automatic []string, name string) bool {
	for _, a := range automatic {
		if strings.EqualFold(a, name) {
			return true
		}
	}
	return false
}

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

package argument

import (
	"encoding/xml"
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/provider/api/binding"
	"go.uber.org/provider/api/message"
	"go.uber.org/provider/api/transport"
	"go.uber.org/provider/model"
	"go.uber.org/provider/providererrors"
)

const _order = `<order xmlns="urn:shop"><id>42</id></order>`

var _audit = message.HeaderBlock{
	Name:    xml.Name{Space: "urn:audit", Local: "who"},
	Content: "alice",
}

type orderService struct{}

func newStrategy(t *testing.T, mode model.Mode, param reflect.Type, b binding.Binding, opts ...Option) Strategy {
	m, err := model.Classify(model.Descriptor{Mode: mode, Param: param}, b)
	require.NoError(t, err)
	s, err := New(m, b, orderService{}, param, opts...)
	require.NoError(t, err)
	require.Equal(t, m.Kind, s.Kind())
	return s
}

func newRequest(m *message.Message, headers transport.Headers) *transport.Request {
	return &transport.Request{
		Caller:    "caller",
		Service:   "shop",
		Procedure: "placeOrder",
		Encoding:  transport.XML,
		Headers:   headers,
		Message:   m,
	}
}

// request builds the request a transport would hand over for the given
// response.
func requestFor(t *testing.T, res *transport.Response) *transport.Request {
	require.NotNil(t, res.Message, "response has no message")
	src, err := res.Message.Envelope()
	require.NoError(t, err)
	return newRequest(message.FromReader(res.Message.Binding(), src.Reader()), res.Headers)
}

var (
	_sourceType     = reflect.TypeOf(message.Source{})
	_messageType    = reflect.TypeOf((*message.Message)(nil))
	_opaqueType     = reflect.TypeOf((*message.Opaque)(nil))
	_dataSourceType = reflect.TypeOf(message.DataSource{})
)

func TestRawPayloadRoundTrip(t *testing.T) {
	for _, b := range []binding.Binding{binding.SOAP11, binding.SOAP12, binding.HTTP} {
		for _, v := range []message.Source{{}, message.SourceFromString(_order)} {
			t.Run(b.String()+"/"+v.String(), func(t *testing.T) {
				s := newStrategy(t, model.Payload, _sourceType, b)

				req := newRequest(message.New(b, v, _audit), transport.Headers{})
				got, err := s.Extract(req)
				require.NoError(t, err)
				assert.True(t, v.Equal(got.(message.Source)))

				res, err := s.Response(req, v)
				require.NoError(t, err)
				got, err = s.Extract(requestFor(t, res))
				require.NoError(t, err)
				assert.True(t, v.Equal(got.(message.Source)))
			})
		}
	}
}

func TestRawEnvelopeRoundTrip(t *testing.T) {
	b := binding.SOAP11
	s := newStrategy(t, model.Message, _sourceType, b)
	require.Equal(t, model.FullEnvelopeAsRaw, s.Kind())

	tests := []struct {
		desc    string
		payload message.Source
		headers []message.HeaderBlock
	}{
		{desc: "empty tree"},
		{desc: "non-empty tree", payload: message.SourceFromString(_order)},
		{desc: "envelope with headers", payload: message.SourceFromString(_order), headers: []message.HeaderBlock{_audit}},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			want, err := message.New(b, tt.payload, tt.headers...).Envelope()
			require.NoError(t, err)

			got, err := s.Extract(newRequest(message.New(b, tt.payload, tt.headers...), transport.Headers{}))
			require.NoError(t, err)
			assert.Equal(t, want.String(), got.(message.Source).String())

			res, err := s.Response(nil, got)
			require.NoError(t, err)
			assert.False(t, res.ApplicationError)
			headers, err := res.Message.Headers()
			require.NoError(t, err)
			assert.Equal(t, tt.headers, headers)
		})
	}

	t.Run("malformed result", func(t *testing.T) {
		_, err := s.Response(nil, message.SourceFromString("<nope/>"))
		assert.Error(t, err)
	})
}

func TestStructuredRoundTrip(t *testing.T) {
	b := binding.SOAP12
	s := newStrategy(t, model.Message, _messageType, b)

	req := newRequest(message.New(b, message.SourceFromString(_order), _audit), transport.Headers{})
	got, err := s.Extract(req)
	require.NoError(t, err)
	assert.True(t, req.Message.Consumed(), "extract must consume the inbound message")

	m := got.(*message.Message)
	headers, err := m.Headers()
	require.NoError(t, err)
	assert.Equal(t, []message.HeaderBlock{_audit}, headers)

	res, err := s.Response(req, m)
	require.NoError(t, err)
	assert.True(t, res.Message == m)

	again, err := s.Extract(requestFor(t, res))
	require.NoError(t, err)
	payload, err := again.(*message.Message).Payload()
	require.NoError(t, err)
	assert.Equal(t, _order, payload.String())
}

func TestOpaqueRoundTrip(t *testing.T) {
	b := binding.SOAP11
	s := newStrategy(t, model.Message, _opaqueType, b)

	headers := transport.NewHeaders().With("SOAPAction", "placeOrder").With("X-Trace", "abc")
	req := newRequest(message.New(b, message.SourceFromString(_order)), headers)
	got, err := s.Extract(req)
	require.NoError(t, err)

	o := got.(*message.Opaque)
	assert.Equal(t, map[string]string{"SOAPAction": "placeOrder", "X-Trace": "abc"}, o.MIMEHeaders)
	payload, err := o.Message.Payload()
	require.NoError(t, err)
	assert.Equal(t, _order, payload.String())
}

func TestOpaqueHeaderExclusion(t *testing.T) {
	b := binding.SOAP11
	result := message.NewOpaque(message.New(b, message.SourceFromString(_order)), map[string]string{
		"content-TYPE": "text/plain",
		"X-Custom":     "1",
		"X-Other":      "2",
	})

	t.Run("binding defaults", func(t *testing.T) {
		s := newStrategy(t, model.Message, _opaqueType, b)
		res, err := s.Response(nil, result)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"X-Custom": "1", "X-Other": "2"}, res.Headers.OriginalItems())
	})

	t.Run("injected list", func(t *testing.T) {
		s := newStrategy(t, model.Message, _opaqueType, b, WithAutomaticHeaders("x-custom"))
		res, err := s.Response(nil, result)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"content-TYPE": "text/plain", "X-Other": "2"}, res.Headers.OriginalItems())
	})

	t.Run("without message", func(t *testing.T) {
		s := newStrategy(t, model.Message, _opaqueType, b)
		res, err := s.Response(nil, message.NewOpaque(nil, map[string]string{"X-Custom": "1"}))
		require.NoError(t, err)
		assert.True(t, res.IsAcknowledgement())
		assert.True(t, res.OneWay)
		assert.Equal(t, 1, res.Headers.Len())
	})
}

func TestDataSourceRoundTrip(t *testing.T) {
	b := binding.HTTP
	s := newStrategy(t, model.Message, _dataSourceType, b)

	req := newRequest(
		message.FromReader(b, message.SourceFromString(_order).Reader()),
		transport.NewHeaders().With("Content-Type", "application/xml"),
	)
	got, err := s.Extract(req)
	require.NoError(t, err)
	ds := got.(message.DataSource)
	assert.Equal(t, message.DataSource{ContentType: "application/xml", Data: []byte(_order)}, ds)

	res, err := s.Response(req, ds)
	require.NoError(t, err)
	ct, ok := res.Headers.Get("content-type")
	assert.True(t, ok)
	assert.Equal(t, "application/xml", ct)

	again, err := s.Extract(requestFor(t, res))
	require.NoError(t, err)
	assert.Equal(t, ds, again)
}

func TestNilResultAcknowledges(t *testing.T) {
	tests := []struct {
		mode    model.Mode
		param   reflect.Type
		binding binding.Binding
		nilv    interface{}
	}{
		{model.Payload, _sourceType, binding.SOAP11, nil},
		{model.Message, _sourceType, binding.SOAP11, nil},
		{model.Message, _messageType, binding.SOAP12, (*message.Message)(nil)},
		{model.Message, _opaqueType, binding.SOAP12, (*message.Opaque)(nil)},
		{model.Message, _dataSourceType, binding.HTTP, nil},
	}

	for _, tt := range tests {
		s := newStrategy(t, tt.mode, tt.param, tt.binding)
		t.Run(s.Kind().String(), func(t *testing.T) {
			res, err := s.Response(nil, tt.nilv)
			require.NoError(t, err)
			assert.True(t, res.IsAcknowledgement())
			assert.True(t, res.OneWay)
			assert.False(t, res.ApplicationError)
		})
	}
}

func TestUnexpectedResultType(t *testing.T) {
	tests := []struct {
		mode    model.Mode
		param   reflect.Type
		binding binding.Binding
	}{
		{model.Payload, _sourceType, binding.SOAP11},
		{model.Message, _sourceType, binding.SOAP11},
		{model.Message, _messageType, binding.SOAP12},
		{model.Message, _opaqueType, binding.SOAP12},
		{model.Message, _dataSourceType, binding.HTTP},
	}

	for _, tt := range tests {
		s := newStrategy(t, tt.mode, tt.param, tt.binding)
		t.Run(s.Kind().String(), func(t *testing.T) {
			_, err := s.Response(nil, 42)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "endpoint returned int")
		})
	}
}

func TestFault(t *testing.T) {
	tests := []struct {
		desc       string
		binding    binding.Binding
		err        error
		wantCode   string
		wantReason string
		wantDetail string
	}{
		{
			desc:       "caller fault",
			binding:    binding.SOAP11,
			err:        providererrors.InvalidArgumentErrorf("bad order id %d", 42),
			wantCode:   "Client",
			wantReason: "bad order id 42",
		},
		{
			desc:       "caller fault soap12",
			binding:    binding.SOAP12,
			err:        providererrors.NotFoundErrorf("no such order"),
			wantCode:   "Sender",
			wantReason: "no such order",
		},
		{
			desc:       "server fault with detail",
			binding:    binding.SOAP12,
			err:        providererrors.Newf(providererrors.CodeUnavailable, "warehouse down").WithDetail("<retry>5</retry>"),
			wantCode:   "Receiver",
			wantReason: "warehouse down",
			wantDetail: "<retry>5</retry>",
		},
		{
			desc:       "unexpected",
			binding:    binding.SOAP11,
			err:        errors.New("great sadness"),
			wantCode:   "Server",
			wantReason: "great sadness",
		},
		{
			desc:       "no error",
			binding:    binding.HTTP,
			wantCode:   "Server",
			wantReason: "unknown error",
		},
		{
			desc:       "empty message",
			binding:    binding.SOAP11,
			err:        errors.New(""),
			wantCode:   "Server",
			wantReason: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			s := newStrategy(t, model.Payload, _sourceType, tt.binding)
			res := s.Fault(nil, tt.err)
			require.NotNil(t, res)
			require.NotNil(t, res.Message)
			assert.True(t, res.ApplicationError)
			assert.False(t, res.OneWay)

			// The fault survives the wire.
			m := requestFor(t, res).Message
			f, err := m.Fault()
			require.NoError(t, err)
			require.NotNil(t, f)
			assert.Equal(t, message.Fault{Code: tt.wantCode, Reason: tt.wantReason, Detail: tt.wantDetail}, *f)
		})
	}
}

func TestNewConfigurationErrors(t *testing.T) {
	tests := []struct {
		desc    string
		model   model.Model
		binding binding.Binding
		param   reflect.Type
		wantErr string
	}{
		{
			desc:    "param mismatch",
			model:   model.Model{Mode: model.Message, Kind: model.FullEnvelopeStructured},
			binding: binding.SOAP11,
			param:   _sourceType,
			wantErr: "for argument.orderService with parameter message.Source: parameter type does not match",
		},
		{
			desc:    "structured without envelope",
			model:   model.Model{Mode: model.Message, Kind: model.FullEnvelopeStructured},
			binding: binding.HTTP,
			param:   _messageType,
			wantErr: "no strategy for full-envelope-structured payloads under the http binding",
		},
		{
			desc:    "data source with envelope",
			model:   model.Model{Mode: model.Message, Kind: model.DataSource},
			binding: binding.SOAP12,
			param:   _dataSourceType,
			wantErr: "no strategy for data-source payloads",
		},
		{
			desc:    "unknown kind",
			model:   model.Model{Mode: model.Message, Kind: model.PayloadKind(99)},
			binding: binding.SOAP12,
			param:   _sourceType,
			wantErr: "parameter type does not match payload kind PayloadKind(99)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			_, err := New(tt.model, tt.binding, orderService{}, tt.param)
			require.Error(t, err)
			assert.IsType(t, &model.ConfigurationError{}, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExtractReadsOnce(t *testing.T) {
	s := newStrategy(t, model.Payload, _sourceType, binding.SOAP11)
	req := newRequest(message.New(binding.SOAP11, message.SourceFromString(_order)), transport.Headers{})
	_, err := s.Extract(req)
	require.NoError(t, err)
	_, err = s.Extract(req)
	assert.Equal(t, message.ErrConsumed, err)
}

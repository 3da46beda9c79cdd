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
	"go.uber.org/provider/api/message"
	"go.uber.org/provider/api/transport"
	"go.uber.org/provider/model"
)

const _contentType = "Content-Type"

// rawPayload hands the endpoint the body of the message.
type rawPayload struct{ strategy }

func (rawPayload) Kind() model.PayloadKind { return model.RawPayload }

func (rawPayload) Extract(req *transport.Request) (interface{}, error) {
	return req.Message.Payload()
}

func (s rawPayload) Response(_ *transport.Request, result interface{}) (*transport.Response, error) {
	if isNil(result) {
		return acknowledge(), nil
	}
	src, ok := result.(message.Source)
	if !ok {
		return nil, unexpectedResult(s.Kind(), result)
	}
	return s.message(src), nil
}

// rawEnvelope hands the endpoint the whole envelope as a raw tree, and
// expects a whole envelope back.
type rawEnvelope struct{ strategy }

func (rawEnvelope) Kind() model.PayloadKind { return model.FullEnvelopeAsRaw }

func (rawEnvelope) Extract(req *transport.Request) (interface{}, error) {
	return req.Message.Envelope()
}

func (s rawEnvelope) Response(_ *transport.Request, result interface{}) (*transport.Response, error) {
	if isNil(result) {
		return acknowledge(), nil
	}
	src, ok := result.(message.Source)
	if !ok {
		return nil, unexpectedResult(s.Kind(), result)
	}
	m, err := message.FromSource(s.binding, src)
	if err != nil {
		return nil, err
	}
	return &transport.Response{Message: m, ApplicationError: m.IsFault()}, nil
}

// structured hands the endpoint the decoded envelope.
type structured struct{ strategy }

func (structured) Kind() model.PayloadKind { return model.FullEnvelopeStructured }

// Extract detaches the message so that the endpoint owns a copy that no
// longer refers to the transport's body.
func (structured) Extract(req *transport.Request) (interface{}, error) {
	return req.Message.Detach()
}

func (s structured) Response(_ *transport.Request, result interface{}) (*transport.Response, error) {
	if isNil(result) {
		return acknowledge(), nil
	}
	m, ok := result.(*message.Message)
	if !ok {
		return nil, unexpectedResult(s.Kind(), result)
	}
	return &transport.Response{Message: m, ApplicationError: m.IsFault()}, nil
}

// opaque hands the endpoint the envelope together with the request's MIME
// headers. Headers set on the result are copied onto the response, except
// for the automatic ones.
type opaque struct {
	strategy

	automatic []string
}

func newOpaque(base strategy, automatic []string) opaque {
	return opaque{strategy: base, automatic: automatic}
}

func (opaque) Kind() model.PayloadKind { return model.FullEnvelopeOpaqueMessage }

func (opaque) Extract(req *transport.Request) (interface{}, error) {
	m, err := req.Message.Detach()
	if err != nil {
		return nil, err
	}
	return message.NewOpaque(m, req.Headers.OriginalItems()), nil
}

func (s opaque) Response(_ *transport.Request, result interface{}) (*transport.Response, error) {
	if isNil(result) {
		return acknowledge(), nil
	}
	o, ok := result.(*message.Opaque)
	if !ok {
		return nil, unexpectedResult(s.Kind(), result)
	}

	res := &transport.Response{Message: o.Message}
	if o.Message == nil {
		res.OneWay = true
	} else {
		res.ApplicationError = o.Message.IsFault()
	}
	for k, v := range o.MIMEHeaders {
		if isAutomatic(s.automatic, k) {
			continue
		}
		res.Headers = res.Headers.With(k, v)
	}
	return res, nil
}

// dataSource hands the endpoint the body and content type of a message
// under a binding without an envelope.
type dataSource struct{ strategy }

func (dataSource) Kind() model.PayloadKind { return model.DataSource }

func (dataSource) Extract(req *transport.Request) (interface{}, error) {
	payload, err := req.Message.Payload()
	if err != nil {
		return nil, err
	}
	ct, _ := req.Headers.Get(_contentType)
	return message.DataSource{ContentType: ct, Data: payload.Bytes()}, nil
}

func (s dataSource) Response(_ *transport.Request, result interface{}) (*transport.Response, error) {
	if isNil(result) {
		return acknowledge(), nil
	}
	ds, ok := result.(message.DataSource)
	if !ok {
		return nil, unexpectedResult(s.Kind(), result)
	}
	res := s.message(message.NewSource(ds.Data))
	if ds.ContentType != "" {
		res.Headers = res.Headers.With(_contentType, ds.ContentType)
	}
	return res, nil
}

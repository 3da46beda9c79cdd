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

// Package model classifies endpoints once, at registration time, into the
// processing mode and payload kind that decide how their requests are read.
//
// Classification is declarative: registration code provides a Descriptor
// naming the endpoint's mode and parameter type, and Classify either accepts
// the combination or rejects it with a ConfigurationError. Nothing here runs
// per request.
package model

import (
	"fmt"
	"reflect"

	"go.uber.org/provider/api/binding"
	"go.uber.org/provider/api/message"
	"go.uber.org/zap/zapcore"
)

// Mode is whether an endpoint sees the full protocol envelope or only the
// payload extracted from it.
type Mode int

const (
	// Payload endpoints see only the body of the message. This is the
	// default.
	Payload Mode = iota
	// Message endpoints see the whole envelope.
	Message
)

var _modeNames = map[Mode]string{
	Payload: "payload",
	Message: "message",
}

func (m Mode) String() string {
	if s, ok := _modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// UnmarshalText decodes a mode from its configuration name.
func (m *Mode) UnmarshalText(text []byte) error {
	for k, name := range _modeNames {
		if name == string(text) {
			*m = k
			return nil
		}
	}
	return fmt.Errorf("unknown mode %q: expected payload or message", string(text))
}

// PayloadKind is the concrete shape the endpoint's parameter takes.
type PayloadKind int

const (
	// RawPayload is the body of the message as a message.Source.
	RawPayload PayloadKind = iota + 1
	// FullEnvelopeAsRaw is the whole envelope serialized as a
	// message.Source.
	FullEnvelopeAsRaw
	// FullEnvelopeStructured is the envelope as a *message.Message.
	FullEnvelopeStructured
	// FullEnvelopeOpaqueMessage is the envelope together with its MIME
	// headers, as a *message.Opaque.
	FullEnvelopeOpaqueMessage
	// DataSource is attachment-like content under a binding without an
	// envelope, as a message.DataSource.
	DataSource
)

var _kindNames = map[PayloadKind]string{
	RawPayload:                "raw-payload",
	FullEnvelopeAsRaw:         "full-envelope-raw",
	FullEnvelopeStructured:    "full-envelope-structured",
	FullEnvelopeOpaqueMessage: "full-envelope-opaque",
	DataSource:                "data-source",
}

func (k PayloadKind) String() string {
	if s, ok := _kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("PayloadKind(%d)", int(k))
}

// IsRaw reports whether the kind is a raw tree, the only shape a Payload
// mode endpoint may take.
func (k PayloadKind) IsRaw() bool {
	return k == RawPayload
}

// Descriptor is what registration code declares about an endpoint.
type Descriptor struct {
	// Mode defaults to Payload.
	Mode Mode

	// Param is the Go type of the endpoint's parameter, e.g.
	// reflect.TypeOf(message.Source{}).
	Param reflect.Type
}

// Model is the immutable outcome of classifying an endpoint.
type Model struct {
	Mode Mode
	Kind PayloadKind
}

// MarshalLogObject implements zap.ObjectMarshaler.
func (m Model) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("mode", m.Mode.String())
	enc.AddString("payloadKind", m.Kind.String())
	return nil
}

var (
	_sourceType     = reflect.TypeOf(message.Source{})
	_messageType    = reflect.TypeOf((*message.Message)(nil))
	_opaqueType     = reflect.TypeOf((*message.Opaque)(nil))
	_dataSourceType = reflect.TypeOf(message.DataSource{})
)

// ParamType returns the Go type an endpoint of the given kind receives and
// returns.
func ParamType(k PayloadKind) reflect.Type {
	switch k {
	case RawPayload, FullEnvelopeAsRaw:
		return _sourceType
	case FullEnvelopeStructured:
		return _messageType
	case FullEnvelopeOpaqueMessage:
		return _opaqueType
	case DataSource:
		return _dataSourceType
	default:
		return nil
	}
}

// Classify validates a descriptor under the given binding and returns its
// model. All failures are *ConfigurationError.
func Classify(desc Descriptor, b binding.Binding) (Model, error) {
	if !b.Valid() {
		return Model{}, configErrorf(desc.Param, "unknown binding %v", b)
	}
	if _, ok := _modeNames[desc.Mode]; !ok {
		return Model{}, configErrorf(desc.Param, "unknown mode %v", desc.Mode)
	}

	kind, err := classifyParam(desc, b)
	if err != nil {
		return Model{}, err
	}
	if desc.Mode == Payload && !kind.IsRaw() {
		return Model{}, configErrorf(desc.Param,
			"illegal combination: %v mode requires a raw payload, not %v", desc.Mode, kind)
	}
	return Model{Mode: desc.Mode, Kind: kind}, nil
}

func classifyParam(desc Descriptor, b binding.Binding) (PayloadKind, error) {
	switch desc.Param {
	case nil:
		return 0, configErrorf(nil, "endpoint parameter type is missing")
	case _sourceType:
		if desc.Mode == Message && b.IsEnvelope() {
			return FullEnvelopeAsRaw, nil
		}
		return RawPayload, nil
	case _messageType:
		if !b.IsEnvelope() {
			return 0, configErrorf(desc.Param, "%v binding has no envelope", b)
		}
		return FullEnvelopeStructured, nil
	case _opaqueType:
		if !b.IsEnvelope() {
			return 0, configErrorf(desc.Param, "%v binding has no envelope", b)
		}
		return FullEnvelopeOpaqueMessage, nil
	case _dataSourceType:
		if b.IsEnvelope() {
			return 0, configErrorf(desc.Param, "data sources are only supported by the http binding, not %v", b)
		}
		return DataSource, nil
	default:
		return 0, configErrorf(desc.Param, "unsupported parameter type")
	}
}

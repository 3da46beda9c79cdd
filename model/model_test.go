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

package model

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/provider/api/binding"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		desc    string
		mode    Mode
		param   reflect.Type
		binding binding.Binding
		want    PayloadKind
		wantErr string
	}{
		{
			desc:    "payload source",
			param:   _sourceType,
			binding: binding.SOAP11,
			want:    RawPayload,
		},
		{
			desc:    "message source",
			mode:    Message,
			param:   _sourceType,
			binding: binding.SOAP12,
			want:    FullEnvelopeAsRaw,
		},
		{
			desc:    "message source without envelope",
			mode:    Message,
			param:   _sourceType,
			binding: binding.HTTP,
			want:    RawPayload,
		},
		{
			desc:    "structured",
			mode:    Message,
			param:   _messageType,
			binding: binding.SOAP11,
			want:    FullEnvelopeStructured,
		},
		{
			desc:    "opaque",
			mode:    Message,
			param:   _opaqueType,
			binding: binding.SOAP12,
			want:    FullEnvelopeOpaqueMessage,
		},
		{
			desc:    "data source",
			mode:    Message,
			param:   _dataSourceType,
			binding: binding.HTTP,
			want:    DataSource,
		},
		{
			desc:    "payload structured",
			param:   _messageType,
			binding: binding.SOAP11,
			wantErr: "illegal combination",
		},
		{
			desc:    "payload opaque",
			param:   _opaqueType,
			binding: binding.SOAP11,
			wantErr: "illegal combination",
		},
		{
			desc:    "payload data source",
			param:   _dataSourceType,
			binding: binding.HTTP,
			wantErr: "illegal combination",
		},
		{
			desc:    "structured without envelope",
			mode:    Message,
			param:   _messageType,
			binding: binding.HTTP,
			wantErr: "http binding has no envelope",
		},
		{
			desc:    "data source with envelope",
			mode:    Message,
			param:   _dataSourceType,
			binding: binding.SOAP11,
			wantErr: "only supported by the http binding",
		},
		{
			desc:    "unsupported",
			param:   reflect.TypeOf(""),
			binding: binding.SOAP11,
			wantErr: "with parameter string: unsupported parameter type",
		},
		{
			desc:    "missing",
			binding: binding.SOAP11,
			wantErr: "parameter type is missing",
		},
		{
			desc:    "unknown mode",
			mode:    Mode(42),
			param:   _sourceType,
			binding: binding.SOAP11,
			wantErr: "unknown mode Mode(42)",
		},
		{
			desc:    "unknown binding",
			param:   _sourceType,
			wantErr: "unknown binding",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			m, err := Classify(Descriptor{Mode: tt.mode, Param: tt.param}, tt.binding)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.IsType(t, &ConfigurationError{}, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.mode, m.Mode)
			assert.Equal(t, tt.want, m.Kind)
			assert.Equal(t, tt.param, ParamType(m.Kind))
		})
	}
}

// Every accepted classification is either a raw payload or a message mode
// endpoint.
func TestClassifyAcceptsOnlyLegalPairs(t *testing.T) {
	params := []reflect.Type{_sourceType, _messageType, _opaqueType, _dataSourceType}
	bindings := []binding.Binding{binding.SOAP11, binding.SOAP12, binding.HTTP}

	for _, mode := range []Mode{Payload, Message} {
		for _, param := range params {
			for _, b := range bindings {
				m, err := Classify(Descriptor{Mode: mode, Param: param}, b)
				if err != nil {
					continue
				}
				assert.False(t, m.Mode == Payload && !m.Kind.IsRaw(),
					"%v accepted with %v under %v", m.Kind, mode, b)
			}
		}
	}
}

func TestModeUnmarshalText(t *testing.T) {
	var m Mode
	require.NoError(t, m.UnmarshalText([]byte("message")))
	assert.Equal(t, Message, m)
	assert.Error(t, m.UnmarshalText([]byte("tube")))
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "payload", Payload.String())
	assert.Equal(t, "full-envelope-opaque", FullEnvelopeOpaqueMessage.String())
	assert.Equal(t, "PayloadKind(0)", PayloadKind(0).String())
	assert.Nil(t, ParamType(PayloadKind(0)))
}

func TestConfigurationError(t *testing.T) {
	err := NewConfigurationError(reflect.TypeOf(0), _sourceType, "no %v", "luck")
	assert.Equal(t, "invalid endpoint configuration for int with parameter message.Source: no luck", err.Error())
}

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

// Package binding describes the wire bindings an endpoint may be deployed
// under.
//
// A binding decides whether requests carry a protocol envelope at all, which
// envelope namespace is used, and which transport headers the protocol stack
// sets on its own.
package binding

import (
	"fmt"
	"strings"
)

// Binding identifies a wire binding.
type Binding int

const (
	// SOAP11 is the SOAP 1.1 envelope binding over HTTP.
	SOAP11 Binding = iota + 1
	// SOAP12 is the SOAP 1.2 envelope binding over HTTP.
	SOAP12
	// HTTP is the plain XML over HTTP binding. Messages carry no envelope.
	HTTP
)

const (
	_soap11Namespace = "http://schemas.xmlsoap.org/soap/envelope/"
	_soap12Namespace = "http://www.w3.org/2003/05/soap-envelope"
)

var _bindingNames = map[Binding]string{
	SOAP11: "soap11",
	SOAP12: "soap12",
	HTTP:   "http",
}

// String returns the configuration name of the binding.
func (b Binding) String() string {
	if name, ok := _bindingNames[b]; ok {
		return name
	}
	return fmt.Sprintf("Binding(%d)", int(b))
}

// Valid reports whether b is a known binding.
func (b Binding) Valid() bool {
	_, ok := _bindingNames[b]
	return ok
}

// IsEnvelope reports whether messages under this binding are wrapped in a
// protocol envelope. Structured and opaque envelope payload kinds only exist
// for envelope bindings.
func (b Binding) IsEnvelope() bool {
	return b == SOAP11 || b == SOAP12
}

// Namespace returns the envelope namespace, or an empty string for bindings
// without an envelope.
func (b Binding) Namespace() string {
	switch b {
	case SOAP11:
		return _soap11Namespace
	case SOAP12:
		return _soap12Namespace
	default:
		return ""
	}
}

// SenderFaultCode is the fault code used when the caller is at fault.
func (b Binding) SenderFaultCode() string {
	if b == SOAP12 {
		return "Sender"
	}
	return "Client"
}

// ReceiverFaultCode is the fault code used when the service is at fault.
func (b Binding) ReceiverFaultCode() string {
	if b == SOAP12 {
		return "Receiver"
	}
	return "Server"
}

// AutomaticHeaders returns the transport headers the protocol stack writes
// itself for responses under this binding. Endpoints must not override them.
func (b Binding) AutomaticHeaders() []string {
	return []string{"Content-Type", "Content-Length"}
}

// UnmarshalText parses a binding from its configuration name. Matching is
// case-insensitive.
func (b *Binding) UnmarshalText(text []byte) error {
	s := strings.ToLower(string(text))
	for k, name := range _bindingNames {
		if name == s {
			*b = k
			return nil
		}
	}
	return fmt.Errorf("unknown binding %q: expected one of soap11, soap12 or http", string(text))
}

// MarshalText returns the configuration name of the binding.
func (b Binding) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("unknown binding %d", int(b))
	}
	return []byte(b.String()), nil
}

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

// Package message holds the views an endpoint may take of an inbound
// message and the values it returns for outbound ones.
//
// A *Message is the structured envelope. Its body is decoded lazily and may
// be read exactly once, through one of Payload, Envelope or Detach. Header
// blocks may be inspected at any time without consuming the message.
package message

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/atomic"
	"go.uber.org/provider/api/binding"
	"go.uber.org/provider/internal/bufferpool"
)

// ErrConsumed is returned when the body of a message is read more than once.
var ErrConsumed = errors.New("message body has already been consumed")

// HeaderBlock is a single envelope header entry.
type HeaderBlock struct {
	// Qualified name of the header element.
	Name xml.Name

	// Inner XML of the header element.
	Content string
}

// Fault is a protocol-level error carried in a message body.
type Fault struct {
	// Code is the binding-specific fault code, e.g. "Client" or "Receiver".
	Code   string
	Reason string
	// Detail is inner XML describing the failure further. Optional.
	Detail string
}

// Message is a structured protocol message.
type Message struct {
	binding binding.Binding

	mu      sync.Mutex
	body    io.Reader // nil once decoded
	decoded parts
	err     error

	consumed atomic.Bool
}

// New builds a message with the given payload and envelope header blocks.
func New(b binding.Binding, payload Source, headers ...HeaderBlock) *Message {
	return &Message{
		binding: b,
		decoded: parts{headers: headers, payload: payload},
	}
}

// NewFault builds a message whose body is the given fault.
func NewFault(b binding.Binding, f Fault) *Message {
	return &Message{
		binding: b,
		decoded: parts{payload: encodeFault(b, f), fault: &f},
	}
}

// FromReader builds a message whose body will be decoded from r on first
// access.
func FromReader(b binding.Binding, r io.Reader) *Message {
	return &Message{binding: b, body: r}
}

// FromSource builds a message from a raw tree. For envelope bindings the tree
// must be a complete envelope; otherwise it is taken as the payload.
func FromSource(b binding.Binding, src Source) (*Message, error) {
	p, err := decodeEnvelope(b, src.Bytes())
	if err != nil {
		return nil, err
	}
	return &Message{binding: b, decoded: p}, nil
}

// Binding returns the binding this message was built for.
func (m *Message) Binding() binding.Binding { return m.binding }

func (m *Message) load() (parts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.body != nil {
		data, err := bufferpool.ReadAll(m.body)
		m.body = nil
		if err != nil {
			m.err = fmt.Errorf("failed to read message body: %v", err)
		} else {
			m.decoded, m.err = decodeEnvelope(m.binding, data)
		}
	}
	return m.decoded, m.err
}

func (m *Message) consume() error {
	if !m.consumed.CAS(false, true) {
		return ErrConsumed
	}
	return nil
}

// Consumed reports whether the body of this message has been read.
func (m *Message) Consumed() bool { return m.consumed.Load() }

// Headers returns the envelope header blocks. This does not consume the
// message.
func (m *Message) Headers() ([]HeaderBlock, error) {
	p, err := m.load()
	return p.headers, err
}

// Fault returns the fault carried by this message, or nil if the message is
// not a fault. This does not consume the message.
func (m *Message) Fault() (*Fault, error) {
	p, err := m.load()
	return p.fault, err
}

// IsFault reports whether the message carries a fault.
func (m *Message) IsFault() bool {
	f, err := m.Fault()
	return err == nil && f != nil
}

// Payload consumes the message and returns the contents of its body.
func (m *Message) Payload() (Source, error) {
	p, err := m.load()
	if err != nil {
		return Source{}, err
	}
	if err := m.consume(); err != nil {
		return Source{}, err
	}
	return p.payload, nil
}

// Envelope consumes the message and returns it serialized as a raw tree. For
// bindings without an envelope this is the same as the payload.
func (m *Message) Envelope() (Source, error) {
	p, err := m.load()
	if err != nil {
		return Source{}, err
	}
	if err := m.consume(); err != nil {
		return Source{}, err
	}
	if !m.binding.IsEnvelope() {
		return p.payload, nil
	}
	return encodeEnvelope(m.binding, p)
}

// Detach consumes the message and returns an unconsumed copy that is fully
// decoded and independent of the original body reader.
func (m *Message) Detach() (*Message, error) {
	p, err := m.load()
	if err != nil {
		return nil, err
	}
	if err := m.consume(); err != nil {
		return nil, err
	}
	return &Message{binding: m.binding, decoded: p}, nil
}

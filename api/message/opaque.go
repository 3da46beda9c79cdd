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

package message

import (
	"bytes"
	"io"
)

// Opaque is the binding's own message type: the complete envelope together
// with the MIME headers it was transported with.
//
// Endpoints returning an Opaque may add MIME headers; those are propagated to
// the transport, except for the ones the protocol stack sets itself.
type Opaque struct {
	// MIMEHeaders holds transport headers with their original casing.
	MIMEHeaders map[string]string

	Message *Message
}

// NewOpaque builds an Opaque message. A nil header map is allowed.
func NewOpaque(m *Message, mimeHeaders map[string]string) *Opaque {
	if mimeHeaders == nil {
		mimeHeaders = make(map[string]string)
	}
	return &Opaque{MIMEHeaders: mimeHeaders, Message: m}
}

// SetMIMEHeader sets a MIME header, replacing any previous value.
func (o *Opaque) SetMIMEHeader(k, v string) {
	if o.MIMEHeaders == nil {
		o.MIMEHeaders = make(map[string]string)
	}
	o.MIMEHeaders[k] = v
}

// DataSource is attachment-like content for bindings without an envelope: a
// content type and the bytes that go with it.
type DataSource struct {
	ContentType string
	Data        []byte
}

// Reader returns a reader over the data.
func (d DataSource) Reader() io.Reader { return bytes.NewReader(d.Data) }

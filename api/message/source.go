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

// Source is a raw XML tree. It is the view an endpoint gets when it asks for
// the payload, or the whole envelope, without any structure applied.
//
// The zero value is an empty tree.
type Source struct {
	data []byte
}

// NewSource builds a Source over the given bytes. The Source takes ownership
// of the slice.
func NewSource(b []byte) Source {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return Source{}
	}
	return Source{data: b}
}

// SourceFromString builds a Source from an XML string.
func SourceFromString(s string) Source {
	return NewSource([]byte(s))
}

// Bytes returns the serialized tree. The returned slice MUST NOT be
// modified.
func (s Source) Bytes() []byte { return s.data }

// Reader returns a reader over the serialized tree.
func (s Source) Reader() io.Reader { return bytes.NewReader(s.data) }

// IsEmpty reports whether the tree has no content.
func (s Source) IsEmpty() bool { return len(s.data) == 0 }

// String returns the serialized tree.
func (s Source) String() string { return string(s.data) }

// Equal reports whether both trees hold the same serialized content.
func (s Source) Equal(o Source) bool { return bytes.Equal(s.data, o.data) }

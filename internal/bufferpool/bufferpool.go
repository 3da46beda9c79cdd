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

// Package bufferpool maintains a pool of bytes.Buffers used to drain message
// bodies off the wire.
package bufferpool

import (
	"bytes"
	"io"
	"sync"
)

var _pool = NewPool()

// Pool is a pool of reusable buffers.
type Pool struct {
	pool sync.Pool
}

// NewPool returns a pool that we can allocate buffers from.
func NewPool() *Pool {
	return &Pool{
		pool: sync.Pool{New: func() interface{} { return &bytes.Buffer{} }},
	}
}

// Get returns an empty buffer from the pool.
func (p *Pool) Get() *bytes.Buffer {
	buf := p.pool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// Put returns a buffer to the pool. The buffer MUST NOT be used afterwards.
func (p *Pool) Put(buf *bytes.Buffer) {
	p.pool.Put(buf)
}

// ReadAll drains r through a pooled buffer and returns a copy of the bytes
// read. The pooled buffer never escapes.
func (p *Pool) ReadAll(r io.Reader) ([]byte, error) {
	buf := p.Get()
	defer p.Put(buf)

	if _, err := buf.ReadFrom(r); err != nil {
		return nil, err
	}
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

// Get returns an empty buffer from the default pool.
func Get() *bytes.Buffer {
	return _pool.Get()
}

// Put returns a buffer to the default pool.
func Put(buf *bytes.Buffer) {
	_pool.Put(buf)
}

// ReadAll drains r using the default pool.
func ReadAll(r io.Reader) ([]byte, error) {
	return _pool.ReadAll(r)
}

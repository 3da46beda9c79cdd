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

package pipeline

import "fmt"

// Violation is the panic value used when an internal consistency invariant
// is broken: a continuation resumed twice, a callback delivered twice, or a
// terminal stage asked to process a response.
//
// Violations are never converted into faults. Code that recovers panics from
// user code must re-panic with any Violation it sees.
type Violation struct {
	msg string
}

func (v *Violation) Error() string { return "internal consistency violation: " + v.msg }

// Violatef panics with a Violation built from the given format.
func Violatef(format string, args ...interface{}) {
	panic(&Violation{msg: fmt.Sprintf(format, args...)})
}

// IsViolation reports whether a recovered panic value is a Violation.
func IsViolation(r interface{}) bool {
	_, ok := r.(*Violation)
	return ok
}

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

package providererrors

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// CodeOK means no error; returned on success
	CodeOK Code = 0

	// CodeCancelled means the operation was cancelled, typically by the caller.
	CodeCancelled Code = 1

	// CodeUnknown means an unknown error. Errors raised by endpoints that do
	// not carry enough error information are converted to this code.
	CodeUnknown Code = 2

	// CodeInvalidArgument means the caller sent a request the endpoint could
	// not accept, regardless of the state of the system.
	CodeInvalidArgument Code = 3

	// CodeNotFound means some requested entity was not found.
	CodeNotFound Code = 5

	// CodePermissionDenied means the caller does not have permission to
	// execute the specified operation.
	CodePermissionDenied Code = 7

	// CodeFailedPrecondition means the operation was rejected because the
	// system is not in a state required for the operation's execution.
	CodeFailedPrecondition Code = 9

	// CodeUnimplemented means the operation is not implemented or is not
	// supported/enabled in this service.
	CodeUnimplemented Code = 12

	// CodeInternal means some invariants expected by the underlying system
	// have been broken.
	CodeInternal Code = 13

	// CodeUnavailable means the service is currently unavailable.
	CodeUnavailable Code = 14

	// CodeUnauthenticated means the request does not have valid
	// authentication credentials for the operation.
	CodeUnauthenticated Code = 16
)

var (
	_codeToString = map[Code]string{
		CodeOK:                 "ok",
		CodeCancelled:          "cancelled",
		CodeUnknown:            "unknown",
		CodeInvalidArgument:    "invalid-argument",
		CodeNotFound:           "not-found",
		CodePermissionDenied:   "permission-denied",
		CodeFailedPrecondition: "failed-precondition",
		CodeUnimplemented:      "unimplemented",
		CodeInternal:           "internal",
		CodeUnavailable:        "unavailable",
		CodeUnauthenticated:    "unauthenticated",
	}
	_stringToCode = make(map[string]Code, len(_codeToString))
)

func init() {
	for c, s := range _codeToString {
		_stringToCode[s] = c
	}
}

// Code represents the type of error raised by an endpoint.
//
// These codes are a subset of the gRPC status codes and keep their numeric
// values.
type Code int

// String returns the the string representation of the Code.
func (c Code) String() string {
	s, ok := _codeToString[c]
	if ok {
		return s
	}
	return strconv.Itoa(int(c))
}

// IsCallerFault reports whether errors with this code are the caller's
// fault. Faults built from such errors use the binding's sender fault code.
func (c Code) IsCallerFault() bool {
	switch c {
	case CodeInvalidArgument, CodeNotFound, CodePermissionDenied,
		CodeFailedPrecondition, CodeUnauthenticated, CodeUnimplemented:
		return true
	default:
		return false
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Code) MarshalText() ([]byte, error) {
	s, ok := _codeToString[c]
	if ok {
		return []byte(s), nil
	}
	return nil, fmt.Errorf("unknown code: %d", int(c))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Code) UnmarshalText(text []byte) error {
	i, ok := _stringToCode[strings.ToLower(string(text))]
	if !ok {
		return fmt.Errorf("unknown code string: %s", string(text))
	}
	*c = i
	return nil
}

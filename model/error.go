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
	"fmt"
	"reflect"
)

// ConfigurationError is returned when an endpoint cannot be deployed as
// declared. It is only ever raised at registration time.
type ConfigurationError struct {
	// Param is the offending parameter type, if known.
	Param reflect.Type

	// Impl is the endpoint implementation type, if known.
	Impl reflect.Type

	Reason string
}

func configErrorf(param reflect.Type, format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Param: param, Reason: fmt.Sprintf(format, args...)}
}

// NewConfigurationError builds a ConfigurationError naming both the endpoint
// implementation and its declared parameter type.
func NewConfigurationError(impl, param reflect.Type, format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Impl: impl, Param: param, Reason: fmt.Sprintf(format, args...)}
}

func (e *ConfigurationError) Error() string {
	msg := "invalid endpoint configuration"
	if e.Impl != nil {
		msg += fmt.Sprintf(" for %v", e.Impl)
	}
	if e.Param != nil {
		msg += fmt.Sprintf(" with parameter %v", e.Param)
	}
	return msg + ": " + e.Reason
}

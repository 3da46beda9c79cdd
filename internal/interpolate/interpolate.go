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

// Package interpolate renders strings that reference variables, such as
// "${SERVICE_NAME:keyvalue}".
//
// A variable is written ${NAME} or ${NAME:default}. Names are made of
// letters, digits and underscores, optionally joined by single hyphens, and
// may not start with a digit. A backslash before a dollar sign escapes it.
package interpolate

import (
	"fmt"
	"strings"
)

// VariableResolver resolves the value of a variable named in a string. ok
// is false if the variable has no value.
type VariableResolver func(name string) (value string, ok bool)

type segment struct {
	literal string

	// Set for variables only.
	name       string
	fallback   string
	hasDefault bool
}

// String is a parsed string ready to be rendered.
type String struct {
	segments []segment
}

// Variables returns the names of the variables the string references, in
// order of appearance.
func (s String) Variables() []string {
	var names []string
	for _, seg := range s.segments {
		if seg.name != "" {
			names = append(names, seg.name)
		}
	}
	return names
}

// Render resolves every variable and returns the resulting string. It fails
// if a variable has neither a value nor a default.
func (s String) Render(resolve VariableResolver) (string, error) {
	var sb strings.Builder
	for _, seg := range s.segments {
		if seg.name == "" {
			sb.WriteString(seg.literal)
			continue
		}
		if v, ok := resolve(seg.name); ok {
			sb.WriteString(v)
		} else if seg.hasDefault {
			sb.WriteString(seg.fallback)
		} else {
			return "", fmt.Errorf("variable %q does not have a value or a default", seg.name)
		}
	}
	return sb.String(), nil
}

// Parse parses a string for rendering.
func Parse(s string) (String, error) {
	var (
		out String
		lit strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			out.segments = append(out.segments, segment{literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\\' && i+1 < len(s) && s[i+1] == '$':
			lit.WriteByte('$')
			i++
		case s[i] == '$' && i+1 < len(s) && s[i+1] == '{':
			end := strings.IndexByte(s[i:], '}')
			if end < 0 {
				return String{}, fmt.Errorf("unterminated variable at offset %d in %q", i, s)
			}
			seg, err := parseVariable(s[i+2 : i+end])
			if err != nil {
				return String{}, fmt.Errorf("invalid variable at offset %d in %q: %v", i, s, err)
			}
			flush()
			out.segments = append(out.segments, seg)
			i += end
		default:
			lit.WriteByte(s[i])
		}
	}
	flush()
	return out, nil
}

// parseVariable parses the inside of ${...}.
func parseVariable(s string) (segment, error) {
	seg := segment{name: s}
	if idx := strings.IndexByte(s, ':'); idx >= 0 {
		seg = segment{name: s[:idx], fallback: s[idx+1:], hasDefault: true}
	}
	if err := validateName(seg.name); err != nil {
		return segment{}, err
	}
	return seg, nil
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("variable name is empty")
	}
	if isDigit(name[0]) {
		return fmt.Errorf("variable name %q starts with a digit", name)
	}
	for _, part := range strings.Split(name, "-") {
		if part == "" {
			return fmt.Errorf("variable name %q has a misplaced hyphen", name)
		}
		for i := 0; i < len(part); i++ {
			if c := part[i]; !isDigit(c) && !isLetter(c) && c != '_' {
				return fmt.Errorf("variable name %q contains %q", name, c)
			}
		}
	}
	return nil
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

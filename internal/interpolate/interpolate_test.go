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

package interpolate

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapResolver(m map[string]string) VariableResolver {
	return func(name string) (string, bool) {
		v, ok := m[name]
		return v, ok
	}
}

func TestRender(t *testing.T) {
	vars := mapResolver(map[string]string{"name": "keyvalue", "b-a-r": "hyphen", "EMPTY": ""})

	tests := []struct {
		give      string
		want      string
		variables []string
	}{
		{give: "foo", want: "foo"},
		{give: "", want: ""},
		{give: "service ${name}", want: "service keyvalue", variables: []string{"name"}},
		{give: "${missing:fallback}", want: "fallback", variables: []string{"missing"}},
		{give: "${missing:}", want: ""},
		{give: "${EMPTY:unused}", want: ""},
		{give: "${name::x}", want: "keyvalue"},
		{give: "${missing::x}", want: ":x"},
		{give: "${missing:hello world}!", want: "hello world!"},
		{give: "${b-a-r}", want: "hyphen"},
		{give: `\${name}`, want: "${name}"},
		{give: "$ {name}", want: "$ {name}"},
		{give: "$name${name}", want: "$namekeyvalue"},
		{give: `a\b`, want: `a\b`},
		{give: "trailing $", want: "trailing $"},
	}

	for _, tt := range tests {
		t.Run(tt.give, func(t *testing.T) {
			s, err := Parse(tt.give)
			require.NoError(t, err)
			got, err := s.Render(vars)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			if tt.variables != nil {
				assert.Equal(t, tt.variables, s.Variables())
			}
		})
	}
}

func TestParseFailures(t *testing.T) {
	for _, give := range []string{
		"${foo",
		"${}",
		"${:default}",
		"${foo.}",
		"${foo-}",
		"${-foo}",
		"${foo--bar}",
		"${1foo}",
	} {
		t.Run(give, func(t *testing.T) {
			_, err := Parse(give)
			assert.Error(t, err)
		})
	}
}

func TestRenderUnknownVariable(t *testing.T) {
	s, err := Parse("hello ${name}")
	require.NoError(t, err)
	_, err = s.Render(mapResolver(nil))
	assert.EqualError(t, err, `variable "name" does not have a value or a default`)
}

func Example() {
	s, err := Parse("Serving ${SERVICE:keyvalue} over ${BINDING:soap11}")
	if err != nil {
		panic(err)
	}

	out, err := s.Render(mapResolver(map[string]string{"BINDING": "soap12"}))
	if err != nil {
		panic(err)
	}

	fmt.Println(out)
	// Output: Serving keyvalue over soap12
}

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

package providerconfig

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/uber-go/mapdecode"
	"go.uber.org/provider"
	"go.uber.org/provider/api/binding"
	"go.uber.org/provider/internal/interpolate"
	"go.uber.org/zap/zapcore"
)

const (
	_tagName           = "config"
	_interpolateOption = "interpolate"
)

type providerConfig struct {
	Name             string      `config:"name,interpolate"`
	Binding          bindingName `config:"binding,interpolate"`
	AutomaticHeaders []string    `config:"automaticHeaders"`
	Logging          logging     `config:"logging"`
}

// logging allows configuring the log levels from YAML.
type logging struct {
	Levels struct {
		Success          *zapLevel `config:"success"`
		ApplicationError *zapLevel `config:"applicationError"`
		UnexpectedError  *zapLevel `config:"unexpectedError"`
	} `config:"levels"`
}

func (l *logging) fill(cfg *provider.Config) {
	cfg.Logging.Levels.Success = (*zapcore.Level)(l.Levels.Success)
	cfg.Logging.Levels.ApplicationError = (*zapcore.Level)(l.Levels.ApplicationError)
	cfg.Logging.Levels.UnexpectedError = (*zapcore.Level)(l.Levels.UnexpectedError)
}

type zapLevel zapcore.Level

// mapdecode doesn't support encoding.TextUnmarshaler by default so we have
// to do this manually.
func (l *zapLevel) Decode(into mapdecode.Into) error {
	var s string
	if err := into(&s); err != nil {
		return fmt.Errorf("could not decode Zap log level: %v", err)
	}
	if err := (*zapcore.Level)(l).UnmarshalText([]byte(s)); err != nil {
		return fmt.Errorf("could not decode Zap log level: %v", err)
	}
	return nil
}

type bindingName binding.Binding

func (b *bindingName) Decode(into mapdecode.Into) error {
	var s string
	if err := into(&s); err != nil {
		return fmt.Errorf("could not decode binding: %v", err)
	}
	return (*binding.Binding)(b).UnmarshalText([]byte(s))
}

func decodeInto(dst, src interface{}, resolve interpolate.VariableResolver) error {
	return mapdecode.Decode(dst, src,
		mapdecode.TagName(_tagName),
		interpolateWith(resolve),
	)
}

// interpolateWith renders string values of fields tagged with the
// interpolate option before they are decoded.
func interpolateWith(resolve interpolate.VariableResolver) mapdecode.Option {
	return mapdecode.FieldHook(func(dest reflect.StructField, srcData reflect.Value) (reflect.Value, error) {
		if !hasOption(dest.Tag.Get(_tagName), _interpolateOption) {
			return srcData, nil
		}

		// Use Interface().(string) so that we handle the case where data is an
		// interface{} holding a string.
		v, ok := srcData.Interface().(string)
		if !ok {
			return srcData, nil
		}

		s, err := interpolate.Parse(v)
		if err != nil {
			return srcData, fmt.Errorf("failed to parse %q for interpolation: %v", v, err)
		}
		rendered, err := s.Render(resolve)
		if err != nil {
			return srcData, fmt.Errorf("failed to render %q with environment variables: %v", v, err)
		}
		return reflect.ValueOf(rendered), nil
	})
}

func hasOption(tag, option string) bool {
	for _, o := range strings.Split(tag, ",")[1:] {
		if o == option {
			return true
		}
	}
	return false
}

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
	"errors"
	"io"
	"io/ioutil"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/provider"
	"go.uber.org/provider/api/binding"
	"go.uber.org/provider/internal/interpolate"
	"gopkg.in/yaml.v2"
)

// Option customizes how configuration is loaded.
type Option interface {
	apply(*loader)
}

type optionFunc func(*loader)

func (f optionFunc) apply(l *loader) { f(l) }

// InterpolationResolver sets the source of values for variables referenced
// by the configuration. Defaults to the environment.
func InterpolationResolver(resolve func(name string) (value string, ok bool)) Option {
	return optionFunc(func(l *loader) {
		l.resolve = resolve
	})
}

type loader struct {
	resolve interpolate.VariableResolver
}

func newLoader(opts []Option) loader {
	l := loader{resolve: os.LookupEnv}
	for _, opt := range opts {
		opt.apply(&l)
	}
	return l
}

// LoadConfigFromYAML loads a provider.Config from YAML data. Use LoadConfig
// if you have already parsed a map[string]interface{} or
// map[interface{}]interface{}.
func LoadConfigFromYAML(r io.Reader, opts ...Option) (provider.Config, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return provider.Config{}, err
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(b, &data); err != nil {
		return provider.Config{}, err
	}
	return LoadConfig(data, opts...)
}

// LoadConfig loads a provider.Config from a map[string]interface{} or
// map[interface{}]interface{}.
func LoadConfig(data interface{}, opts ...Option) (provider.Config, error) {
	l := newLoader(opts)

	var cfg providerConfig
	if err := decodeInto(&cfg, data, l.resolve); err != nil {
		return provider.Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return provider.Config{}, err
	}

	out := provider.Config{
		Name:             cfg.Name,
		Binding:          binding.Binding(cfg.Binding),
		AutomaticHeaders: cfg.AutomaticHeaders,
	}
	cfg.Logging.fill(&out)
	return out, nil
}

func (c *providerConfig) validate() (err error) {
	if c.Name == "" {
		err = multierr.Append(err, errors.New("field name is required"))
	}
	if c.Binding == 0 {
		err = multierr.Append(err, errors.New("field binding is required"))
	}
	return err
}

// NewDispatcherFromYAML builds a Dispatcher from the given YAML
// configuration.
func NewDispatcherFromYAML(r io.Reader, opts ...Option) (*provider.Dispatcher, error) {
	cfg, err := LoadConfigFromYAML(r, opts...)
	if err != nil {
		return nil, err
	}
	return provider.NewDispatcher(cfg)
}

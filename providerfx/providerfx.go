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

// Package providerfx provides a provider.Dispatcher to fx applications.
//
// The application supplies a provider.Config, either directly or with
// YAML, and any number of provider.Registration values in the "provider"
// value group. The Dispatcher pushes metrics for as long as the application
// runs.
package providerfx

import (
	"context"
	"io"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/uber-go/tally"
	"go.uber.org/fx"
	"go.uber.org/provider"
	"go.uber.org/provider/providerconfig"
	"go.uber.org/zap"
)

// Module provides a *provider.Dispatcher with every registration in the
// "provider" group deployed.
var Module = fx.Provide(New)

// YAML provides the provider.Config read from r.
func YAML(r io.Reader, opts ...providerconfig.Option) fx.Option {
	return fx.Provide(func() (provider.Config, error) {
		return providerconfig.LoadConfigFromYAML(r, opts...)
	})
}

// Params defines the dependencies of this module.
type Params struct {
	fx.In

	Lifecycle     fx.Lifecycle
	Config        provider.Config
	Registrations []provider.Registration `group:"provider"`

	// Used when the Config does not set its own.
	Logger *zap.Logger        `optional:"true"`
	Tally  tally.Scope        `optional:"true"`
	Tracer opentracing.Tracer `optional:"true"`
}

// Result defines the values produced by this module.
type Result struct {
	fx.Out

	Dispatcher *provider.Dispatcher
}

// RegistrationResult adds a registration to the "provider" group.
type RegistrationResult struct {
	fx.Out

	Registration provider.Registration `group:"provider"`
}

// New builds the Dispatcher, registers every endpoint and ties metrics
// pushing to the application lifecycle.
func New(p Params) (Result, error) {
	cfg := p.Config
	if cfg.Logging.Zap == nil {
		cfg.Logging.Zap = p.Logger
	}
	if cfg.Metrics.Tally == nil {
		cfg.Metrics.Tally = p.Tally
	}
	if cfg.Tracer == nil {
		cfg.Tracer = p.Tracer
	}

	d, err := provider.NewDispatcher(cfg)
	if err != nil {
		return Result{}, err
	}
	if err := d.Register(p.Registrations...); err != nil {
		return Result{}, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return d.Start()
		},
		OnStop: func(context.Context) error {
			return d.Stop()
		},
	})
	return Result{Dispatcher: d}, nil
}

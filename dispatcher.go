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

package provider

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/provider/api/binding"
	"go.uber.org/provider/api/pipeline"
	"go.uber.org/provider/api/transport"
	"go.uber.org/provider/argument"
	"go.uber.org/provider/engine"
	"go.uber.org/provider/internal/observability"
	"go.uber.org/provider/invoker"
	"go.uber.org/provider/model"
	"go.uber.org/provider/providererrors"
	"go.uber.org/zap"
)

// Registration declares an endpoint to serve under a procedure.
type Registration struct {
	// Procedure the endpoint answers.
	Procedure string

	// Endpoint implements exactly one of endpoint.Sync and endpoint.Async.
	Endpoint interface{}

	// Descriptor declares the endpoint's mode and parameter type.
	Descriptor model.Descriptor
}

// Dispatcher routes requests to the endpoints registered with it.
type Dispatcher struct {
	name     string
	binding  binding.Binding
	strategy []argument.Option

	logger   *zap.Logger
	recorder *observability.Recorder
	router   *router
	engine   *engine.Engine
	push     pusher

	mu       sync.Mutex
	stopPush context.CancelFunc
}

// NewDispatcher builds a new Dispatcher using the specified Config. No
// endpoints are registered.
func NewDispatcher(cfg Config) (*Dispatcher, error) {
	if cfg.Name == "" {
		return nil, errors.New("a service name is required")
	}
	if !cfg.Binding.Valid() {
		return nil, fmt.Errorf("unknown binding %v for dispatcher %q", cfg.Binding, cfg.Name)
	}

	logger := cfg.Logging.logger(cfg.Name)
	scope, push := cfg.Metrics.scope(cfg.Name, logger)

	d := &Dispatcher{
		name:    cfg.Name,
		binding: cfg.Binding,
		logger:  logger,
		recorder: observability.NewRecorder(observability.Config{
			Logger:           logger,
			Scope:            scope,
			Tracer:           cfg.Tracer,
			ContextExtractor: cfg.Logging.extractor(),
			Levels:           cfg.Logging.levels(),
		}),
		router: newRouter(),
		push:   push,
	}
	if cfg.AutomaticHeaders != nil {
		d.strategy = append(d.strategy, argument.WithAutomaticHeaders(cfg.AutomaticHeaders...))
	}

	stages := make([]pipeline.Stage, 0, len(cfg.Stages)+1)
	stages = append(stages, cfg.Stages...)
	stages = append(stages, d.router)
	d.engine = engine.New(stages, engine.Logger(logger))
	return d, nil
}

// Name returns the name of the dispatcher.
func (d *Dispatcher) Name() string { return d.name }

// Binding returns the binding endpoints are served under.
func (d *Dispatcher) Binding() binding.Binding { return d.binding }

// Procedures returns the registered procedures, sorted.
func (d *Dispatcher) Procedures() []string { return d.router.procedures() }

// Pending returns the number of requests waiting for an asynchronous
// endpoint to call back.
func (d *Dispatcher) Pending() int { return d.engine.Pending() }

// Register deploys endpoints. Either all of them are registered or, if any
// of them is invalid, none is and the returned error lists every problem.
func (d *Dispatcher) Register(regs ...Registration) error {
	var (
		err      error
		invokers = make(map[string]invoker.Invoker, len(regs))
	)
	for _, reg := range regs {
		if _, ok := invokers[reg.Procedure]; ok {
			err = multierr.Append(err, fmt.Errorf("procedure %q is registered more than once", reg.Procedure))
			continue
		}
		i, e := d.deploy(reg)
		if e != nil {
			err = multierr.Append(err, e)
			continue
		}
		invokers[reg.Procedure] = i
	}
	if err != nil {
		return err
	}

	if taken := d.router.add(invokers); len(taken) > 0 {
		return fmt.Errorf("procedures already registered with dispatcher %q: %v",
			d.name, strings.Join(taken, ", "))
	}
	for _, procedure := range sortedKeys(invokers) {
		d.logger.Info("Registered endpoint.",
			zap.String("procedure", procedure),
			zap.Stringer("invoker", invokers[procedure].Type()),
		)
	}
	return nil
}

// deploy classifies an endpoint and builds its strategy and invoker.
func (d *Dispatcher) deploy(reg Registration) (invoker.Invoker, error) {
	if reg.Procedure == "" {
		return invoker.Invoker{}, fmt.Errorf("endpoint %T has no procedure", reg.Endpoint)
	}

	m, err := model.Classify(reg.Descriptor, d.binding)
	if err != nil {
		return invoker.Invoker{}, registrationError(reg, err)
	}
	s, err := argument.New(m, d.binding, reg.Endpoint, reg.Descriptor.Param, d.strategy...)
	if err != nil {
		return invoker.Invoker{}, registrationError(reg, err)
	}
	i, err := invoker.New(reg.Endpoint, s, invoker.Config{
		Scheduler: d.engine,
		Recorder:  d.recorder,
	})
	if err != nil {
		return invoker.Invoker{}, registrationError(reg, err)
	}
	return i, nil
}

// registrationError names the endpoint and procedure on registration
// failures. Configuration errors stay retrievable with errors.As.
func registrationError(reg Registration, err error) error {
	var cerr *model.ConfigurationError
	if errors.As(err, &cerr) && cerr.Impl == nil {
		cerr.Impl = reflect.TypeOf(reg.Endpoint)
	}
	return fmt.Errorf("cannot register procedure %q: %w", reg.Procedure, err)
}

// Dispatch runs a request through the dispatcher's stages to the endpoint
// registered for its procedure. done receives the response exactly once,
// possibly on another goroutine after Dispatch has returned.
//
// An error is returned, and done is never called, if the request is
// invalid or no endpoint is registered for its procedure.
func (d *Dispatcher) Dispatch(ctx context.Context, req *transport.Request, done func(*transport.Response)) error {
	if err := transport.ValidateRequest(req); err != nil {
		return err
	}
	if _, ok := d.router.lookup(req.Procedure); !ok {
		return providererrors.UnimplementedErrorf(
			"unrecognized procedure %q for service %q", req.Procedure, req.Service)
	}
	return d.engine.Dispatch(ctx, req, done)
}

// Start starts pushing metrics, if configured to.
func (d *Dispatcher) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopPush == nil {
		d.stopPush = d.push.start()
	}
	return nil
}

// Stop stops pushing metrics. Suspended requests are not affected; they
// complete whenever their endpoints call back.
func (d *Dispatcher) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopPush != nil {
		d.stopPush()
		d.stopPush = nil
	}
	return nil
}

func sortedKeys(invokers map[string]invoker.Invoker) []string {
	keys := make([]string, 0, len(invokers))
	for k := range invokers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

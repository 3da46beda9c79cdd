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
	"time"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/uber-go/tally"
	"go.uber.org/net/metrics"
	"go.uber.org/net/metrics/tallypush"
	"go.uber.org/provider/api/binding"
	"go.uber.org/provider/api/pipeline"
	"go.uber.org/provider/internal/observability"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// Sleep between pushes to Tally metrics. At some point, we may want this
	// to be configurable.
	_tallyPushInterval = 500 * time.Millisecond
	_packageName       = "provider"
)

// LoggingConfig describes how logging should be configured.
type LoggingConfig struct {
	// Supplies a logger for the dispatcher. By default, no logs are
	// emitted.
	Zap *zap.Logger
	// If supplied, ExtractContext is used to log request-scoped
	// information carried on the context (e.g., trace and span IDs).
	ContextExtractor func(context.Context) zapcore.Field
	// Levels overrides the level each invocation outcome is logged at.
	Levels LogLevelConfig
}

// LogLevelConfig configures the levels at which invocations are logged.
// Nil levels keep their defaults.
type LogLevelConfig struct {
	// Successful invocations. Defaults to DebugLevel.
	Success *zapcore.Level
	// Invocations that failed with an application error, i.e. a
	// providererrors status. Defaults to WarnLevel.
	ApplicationError *zapcore.Level
	// Invocations that failed with any other error or panicked. Defaults
	// to ErrorLevel.
	UnexpectedError *zapcore.Level
}

func (c LoggingConfig) logger(name string) *zap.Logger {
	if c.Zap == nil {
		return zap.NewNop()
	}
	return c.Zap.Named(_packageName).With(
		// Use a namespace to prevent key collisions with other libraries.
		zap.Namespace(_packageName),
		zap.String("dispatcher", name),
	)
}

func (c LoggingConfig) extractor() observability.ContextExtractor {
	if c.ContextExtractor == nil {
		return observability.NewNopContextExtractor()
	}
	return observability.ContextExtractor(c.ContextExtractor)
}

func (c LoggingConfig) levels() observability.LevelsConfig {
	return observability.LevelsConfig{
		Success:          c.Levels.Success,
		ApplicationError: c.Levels.ApplicationError,
		UnexpectedError:  c.Levels.UnexpectedError,
	}
}

// MetricsConfig describes how telemetry should be configured.
type MetricsConfig struct {
	// Tally scope used for pushing to M3 or StatsD-based systems. By
	// default, metrics are collected in memory but not pushed.
	Tally tally.Scope
}

// pusher starts pushing a metrics root to Tally.
type pusher struct {
	root   *metrics.Root
	tally  tally.Scope
	logger *zap.Logger
}

func (c MetricsConfig) scope(name string, logger *zap.Logger) (*metrics.Scope, pusher) {
	root := metrics.New()
	scope := root.Scope().Tagged(metrics.Tags{
		"component":  _packageName,
		"dispatcher": name,
	})
	return scope, pusher{root: root, tally: c.Tally, logger: logger}
}

// start pushes until the returned function is called. Failures to start are
// logged.
func (p pusher) start() context.CancelFunc {
	if p.tally == nil {
		return func() {}
	}
	stop, err := p.root.Push(tallypush.New(p.tally), _tallyPushInterval)
	if err != nil {
		p.logger.Error("Failed to start pushing metrics to Tally.", zap.Error(err))
		return func() {}
	}
	return stop
}

// Config specifies the parameters of a new Dispatcher constructed via
// NewDispatcher.
type Config struct {
	// Name of the service. This is the name used by other services when
	// making requests to this service.
	Name string

	// Binding all endpoints of this dispatcher are served under.
	Binding binding.Binding

	// AutomaticHeaders are the transport headers the protocol stack sets
	// itself. Headers with these names returned by endpoints are dropped.
	// Defaults to the binding's automatic headers.
	AutomaticHeaders []string

	// Stages run, in order, before a request reaches its endpoint and, in
	// reverse order, on the response of every request, including those that
	// resume asynchronously.
	//
	// This may be nil if there are no stages to apply.
	Stages []pipeline.Stage

	// Tracer records a span for every invocation. Defaults to the global
	// tracer.
	Tracer opentracing.Tracer

	// Configures logging.
	Logging LoggingConfig

	// Configures telemetry.
	Metrics MetricsConfig
}

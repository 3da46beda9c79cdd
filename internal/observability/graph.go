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

package observability

import (
	"time"

	"go.uber.org/net/metrics"
	"go.uber.org/net/metrics/bucket"
	"go.uber.org/provider/api/transport"
	"go.uber.org/provider/model"
	"go.uber.org/zap"
)

var (
	_timeNow          = time.Now // for tests
	_defaultGraphSize = 32
	_bucketsMs        = bucket.NewRPCLatency()
)

const (
	_service     = "service"
	_procedure   = "procedure"
	_invoker     = "invoker"
	_payloadKind = "payload_kind"
	_errorCode   = "error_code"
)

// Endpoint identifies the endpoint an invocation is recorded against.
type Endpoint struct {
	// Invoker is "sync" or "async".
	Invoker string
	Kind    model.PayloadKind
}

type edgeKey struct {
	service, procedure, invoker string
	kind                        model.PayloadKind
}

// An edge is a collection of stats for a particular
// service-procedure-invoker-kind combination.
type edge struct {
	logger *zap.Logger

	calls             *metrics.Counter
	successes         *metrics.Counter
	applicationErrors *metrics.CounterVector
	unexpectedErrors  *metrics.Counter
	panics            *metrics.Counter
	oneway            *metrics.Counter
	suspended         *metrics.Counter
	resumed           *metrics.Counter
	latencies         *metrics.Histogram
}

func (r *Recorder) getOrCreateEdge(req *transport.Request, ep Endpoint) *edge {
	key := edgeKey{
		service:   req.Service,
		procedure: req.Procedure,
		invoker:   ep.Invoker,
		kind:      ep.Kind,
	}

	r.edgesMu.RLock()
	e := r.edges[key]
	r.edgesMu.RUnlock()
	if e != nil {
		return e
	}

	r.edgesMu.Lock()
	defer r.edgesMu.Unlock()
	if e, ok := r.edges[key]; ok {
		// Someone beat us to the punch.
		return e
	}
	e = newEdge(r.logger, r.meter, key)
	r.edges[key] = e
	return e
}

// newEdge constructs a new edge. Since Registries enforce metric uniqueness,
// edges should be cached and re-used for each invocation.
func newEdge(logger *zap.Logger, meter *metrics.Scope, key edgeKey) *edge {
	tags := metrics.Tags{
		_service:     key.service,
		_procedure:   key.procedure,
		_invoker:     key.invoker,
		_payloadKind: key.kind.String(),
	}
	logger = logger.With(
		zap.String(_service, key.service),
		zap.String(_procedure, key.procedure),
		zap.String(_invoker, key.invoker),
		zap.Stringer("payloadKind", key.kind),
	)

	counter := func(name, help string) *metrics.Counter {
		c, err := meter.Counter(metrics.Spec{
			Name:      name,
			Help:      help,
			ConstTags: tags,
		})
		if err != nil {
			logger.Error("Failed to create counter.", zap.String("name", name), zap.Error(err))
		}
		return c
	}

	applicationErrors, err := meter.CounterVector(metrics.Spec{
		Name:      "application_errors",
		Help:      "Number of invocations that ended with an application error.",
		ConstTags: tags,
		VarTags:   []string{_errorCode},
	})
	if err != nil {
		logger.Error("Failed to create application errors vector.", zap.Error(err))
	}
	latencies, err := meter.Histogram(metrics.HistogramSpec{
		Spec: metrics.Spec{
			Name:      "latency_ms",
			Help:      "Latency distribution of invocations, including time spent suspended.",
			ConstTags: tags,
		},
		Unit:    time.Millisecond,
		Buckets: _bucketsMs,
	})
	if err != nil {
		logger.Error("Failed to create latency distribution.", zap.Error(err))
	}

	return &edge{
		logger:            logger,
		calls:             counter("calls", "Total number of invocations."),
		successes:         counter("successes", "Number of successful invocations."),
		applicationErrors: applicationErrors,
		unexpectedErrors:  counter("unexpected_errors", "Number of invocations that ended with an unexpected error."),
		panics:            counter("panics", "Number of invocations failed because of panic."),
		oneway:            counter("oneway", "Number of invocations acknowledged without a response body."),
		suspended:         counter("suspended", "Number of invocations that suspended their request."),
		resumed:           counter("resumed", "Number of suspended invocations that were resumed."),
		latencies:         latencies,
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/ballot-ledger/ballot"
)

// CodeOK labels operations that succeeded.
const CodeOK = "OK"

// Recorder counts ledger operations. A nil *Recorder records nothing.
type Recorder struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	created    prometheus.Counter
}

func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ballot",
			Name:      "operations_total",
			Help:      "Ledger operations by name and outcome code.",
		}, []string{"operation", "code"}),
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ballot",
			Name:      "ballots_created_total",
			Help:      "Ballots created since start.",
		}),
	}
	reg.MustRegister(
		r.operations,
		r.created,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Observe counts one call of op. Errors without a ledger code are labelled
// INTERNAL.
func (r *Recorder) Observe(op string, err error) {
	if r == nil {
		return
	}
	code := CodeOK
	if err != nil {
		code = string(ballot.CodeOf(err))
		if code == "" {
			code = "INTERNAL"
		}
	}
	r.operations.WithLabelValues(op, code).Inc()
}

func (r *Recorder) BallotCreated() {
	if r == nil {
		return
	}
	r.created.Inc()
}

// Handler serves the recorder's metrics in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests and extra collectors.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

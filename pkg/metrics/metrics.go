// Package metrics provides a Prometheus-backed api.Observer.
//
// Attach it to a bot (usually combined with other observers via
// api.NewCompositeObserver) and expose the registry with promhttp in the
// embedding application.
package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/netr/mimicr/pkg/api"
)

// Observer exports a counter of step executions by outcome and a histogram
// of exchange durations.
type Observer struct {
	api.NoopObserver

	executions *prometheus.CounterVec
	elapsed    *prometheus.HistogramVec
}

// Ensure Observer implements api.Observer.
var _ api.Observer = (*Observer)(nil)

// NewObserver creates an Observer and registers its collectors with reg.
// Pass nil to skip registration (the caller registers the collectors
// itself via Collectors).
func NewObserver(reg prometheus.Registerer) (*Observer, error) {
	o := &Observer{
		executions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mimicr_step_executions_total",
				Help: "Step executions by step name and outcome.",
			},
			[]string{"step", "outcome"},
		),
		elapsed: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mimicr_step_elapsed_seconds",
				Help:    "Duration of step HTTP exchanges.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"step"},
		),
	}

	if reg != nil {
		for _, c := range o.Collectors() {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return o, nil
}

// Collectors returns the observer's Prometheus collectors.
func (o *Observer) Collectors() []prometheus.Collector {
	return []prometheus.Collector{o.executions, o.elapsed}
}

func (o *Observer) OnStepSuccess(ctx context.Context, sc *api.StepContext) {
	o.observe(sc, "success")
}

func (o *Observer) OnStepError(ctx context.Context, sc *api.StepContext, err error) {
	o.observe(sc, "error")
}

func (o *Observer) OnStepTimeout(ctx context.Context, sc *api.StepContext) {
	o.observe(sc, "timeout")
}

func (o *Observer) observe(sc *api.StepContext, outcome string) {
	o.executions.WithLabelValues(sc.CurrentStep, outcome).Inc()
	o.elapsed.WithLabelValues(sc.CurrentStep).Observe(sc.Elapsed().Seconds())
}

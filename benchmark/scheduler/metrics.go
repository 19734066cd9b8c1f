/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package scheduler

import (
	"chainguard.dev/noveltybench/benchmark/catalog"
	"chainguard.dev/noveltybench/benchmark/processor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Global metrics with consistent dimensions
	itemsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "noveltybench_items_total",
			Help: "Total number of benchmark items processed, by stop reason",
		},
		[]string{"kind", "reason"},
	)

	acceptedCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "noveltybench_accepted_answers_total",
			Help: "Total number of answers that passed the quality and novelty gates",
		},
		[]string{"kind"},
	)

	rejectedCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "noveltybench_rejected_answers_total",
			Help: "Total number of answers discarded by a gate",
		},
		[]string{"kind", "reason"},
	)

	itemNoveltyGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "noveltybench_item_novelty",
			Help: "Novelty total of the most recent run of each item",
		},
		[]string{"item", "kind"},
	)

	itemDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "noveltybench_item_duration_seconds",
			Help:    "Wall time spent on each item",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
		[]string{"kind"},
	)

	itemsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "noveltybench_items_in_flight",
			Help: "Number of items currently being processed",
		},
	)

	runTotalGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "noveltybench_run_novelty",
			Help: "Novelty total of the most recent run",
		},
		[]string{"mode"},
	)
)

func recordRun(mode string, s Summary) {
	runTotalGauge.WithLabelValues(mode).Set(s.Total)
}

// MetricsObserver implements processor.Observer with Prometheus metrics
type MetricsObserver struct{}

var _ processor.Observer = MetricsObserver{}

// NewMetricsObserver creates a metrics observer
func NewMetricsObserver() MetricsObserver {
	return MetricsObserver{}
}

// Started implements processor.Observer (no-op: in-flight items are tracked by the scheduler)
func (MetricsObserver) Started(catalog.Item) {}

// Accepted implements processor.Observer
func (MetricsObserver) Accepted(item catalog.Item, _ string, _ int, _ float64) {
	acceptedCounter.WithLabelValues(string(item.Kind)).Inc()
}

// Rejected implements processor.Observer
func (MetricsObserver) Rejected(item catalog.Item, _ string, reason processor.StopReason) {
	rejectedCounter.WithLabelValues(string(item.Kind), string(reason)).Inc()
}

// Failed implements processor.Observer (no-op: failures are counted when the item finishes)
func (MetricsObserver) Failed(catalog.Item, processor.StopReason, error) {}

// Finished implements processor.Observer
func (MetricsObserver) Finished(r processor.Result) {
	kind := string(r.Item.Kind)
	itemsCounter.WithLabelValues(kind, string(r.Reason)).Inc()
	itemNoveltyGauge.WithLabelValues(r.Item.ID, kind).Set(r.Total)
	itemDuration.WithLabelValues(kind).Observe(r.Duration.Seconds())
}

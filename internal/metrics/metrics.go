// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AcquisitionsTotal counts Acquire calls by outcome ("ok", "no_fix", "checksum", ...).
	AcquisitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gps_acquisitions_total",
			Help: "Total number of fix acquisitions by result",
		},
		[]string{"result"},
	)

	AcquisitionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gps_acquisition_duration_seconds",
			Help:    "Time from opening the receiver to a fused fix or error",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
	)

	LastFixTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gps_last_fix_timestamp_seconds",
			Help: "Unix time carried by the most recent published fix",
		},
	)

	PublishErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gps_publish_errors_total",
			Help: "Total number of failed MQTT publishes",
		},
	)
)

// RecordAcquisition records the outcome and latency of one acquisition.
func RecordAcquisition(result string, elapsed time.Duration) {
	AcquisitionsTotal.WithLabelValues(result).Inc()
	AcquisitionDuration.Observe(elapsed.Seconds())
}

// RecordFix updates the last-fix gauge.
func RecordFix(t time.Time) {
	LastFixTimestamp.Set(float64(t.UnixNano()) / 1e9)
}

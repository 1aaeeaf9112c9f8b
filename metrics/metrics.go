// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics exposes matcher activity as Prometheus counters.
package metrics

import (
	"io"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/someonegg/stbmatch"
)

const namespace = "stbmatch"

const (
	ModeSingle = "single"
	ModeMulti  = "multi"
)

var (
	runCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Count of matcher runs by mode.",
		},
		[]string{"mode"},
	)
	passCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "passes_total",
			Help:      "Count of deferred acceptance passes.",
		},
	)
	evictionCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evictions_total",
			Help:      "Count of applicants evicted from an overfull slot.",
		},
	)
	residualCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "residual_placements_total",
			Help:      "Count of applicants placed by the residual random assignment.",
		},
	)
	notPlacableCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "not_placable_total",
			Help:      "Count of applicants left without a slot after the residual random assignment.",
		},
	)
	roundCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_total",
			Help:      "Count of multi category rounds.",
		},
	)
	roundPlacementCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "round_placements_total",
			Help:      "Count of placements committed by multi category rounds.",
		},
	)
)

// Registry holds the matcher metrics.
var Registry = prometheus.NewRegistry()

var registerMetrics sync.Once

// Register all metrics.
func Register() {
	registerMetrics.Do(func() {
		Registry.MustRegister(runCounter)
		Registry.MustRegister(passCounter)
		Registry.MustRegister(evictionCounter)
		Registry.MustRegister(residualCounter)
		Registry.MustRegister(notPlacableCounter)
		Registry.MustRegister(roundCounter)
		Registry.MustRegister(roundPlacementCounter)
	})
}

// RecordRun records one matcher run in the given mode.
func RecordRun(mode string) {
	runCounter.WithLabelValues(mode).Inc()
}

type recorder struct{}

var _ stbmatch.Recorder = recorder{}

// Recorder returns a stbmatch.Recorder feeding the counters.
func Recorder() stbmatch.Recorder {
	return recorder{}
}

func (recorder) RecordPass(unplaced, evicted int) {
	passCounter.Inc()
	evictionCounter.Add(float64(evicted))
}

func (recorder) RecordResidual(placed, unplaced int) {
	residualCounter.Add(float64(placed))
	notPlacableCounter.Add(float64(unplaced))
}

func (recorder) RecordRound(round, placed int) {
	roundCounter.Inc()
	roundPlacementCounter.Add(float64(placed))
}

// WriteText writes the registry in the Prometheus text exposition format.
func WriteText(w io.Writer) error {
	mfs, err := Registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

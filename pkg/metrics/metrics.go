// Copyright 2024 The Godel Rescheduler Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"sync"
	"time"

	"k8s.io/component-base/metrics"
	"k8s.io/component-base/metrics/legacyregistry"
)

const (
	// PipelineSubsystem - subsystem name used by the pos builder
	PipelineSubsystem = "pos_builder"

	// SuccessResult - result label value
	SuccessResult = "success"
	// FailureResult - result label value
	FailureResult = "failure"
	// CachedResult - result label value for outputs read back from disk
	CachedResult = "cached"

	SolveStage = "solve"
	ChainStage = "chain"
)

// All the histogram based metrics have 1ms as size for the smallest bucket.
var (
	PipelineStageDuration = metrics.NewHistogramVec(
		&metrics.HistogramOpts{
			Subsystem:      PipelineSubsystem,
			Name:           "stage_duration_seconds",
			Help:           "Latency of each pipeline stage per scheme or strategy.",
			Buckets:        metrics.ExponentialBuckets(0.001, 2, 20),
			StabilityLevel: metrics.ALPHA,
		},
		[]string{"stage", "method"},
	)

	ChainFilterDuration = metrics.NewHistogramVec(
		&metrics.HistogramOpts{
			Subsystem:      PipelineSubsystem,
			Name:           "chain_filter_duration_seconds",
			Help:           "Latency of every base chain filter call.",
			Buckets:        metrics.ExponentialBuckets(0.00001, 2, 20),
			StabilityLevel: metrics.ALPHA,
		},
		[]string{"filter"},
	)

	AddedEdges = metrics.NewCounterVec(
		&metrics.CounterOpts{
			Subsystem:      PipelineSubsystem,
			Name:           "added_edges_total",
			Help:           "Number of precedence constraints added by the chain engine.",
			StabilityLevel: metrics.ALPHA,
		}, []string{"strategy"})

	PipelineResults = metrics.NewCounterVec(
		&metrics.CounterOpts{
			Subsystem:      PipelineSubsystem,
			Name:           "results_total",
			Help:           "Number of pipeline stage outcomes by result.",
			StabilityLevel: metrics.ALPHA,
		}, []string{"stage", "result"})

	metricsList = []metrics.Registerable{
		PipelineStageDuration,
		ChainFilterDuration,
		AddedEdges,
		PipelineResults,
	}
)

var registerMetrics sync.Once

// Register all metrics.
func Register() {
	registerMetrics.Do(func() {
		RegisterMetrics(metricsList...)
	})
}

// RegisterMetrics registers a list of metrics.
func RegisterMetrics(extraMetrics ...metrics.Registerable) {
	for _, metric := range extraMetrics {
		legacyregistry.MustRegister(metric)
	}
}

// GetGather returns the gatherer. It used by test case outside current package.
func GetGather() metrics.Gatherer {
	return legacyregistry.DefaultGatherer
}

// SinceInSeconds gets the time since the specified start in seconds.
func SinceInSeconds(start time.Time) float64 {
	return time.Since(start).Seconds()
}

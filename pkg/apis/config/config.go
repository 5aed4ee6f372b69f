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

package config

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const (
	// GroupName is the api group of the pos builder configuration.
	GroupName = "posbuilder.config"
	// APIVersion is the only supported version of PipelineConfiguration.
	APIVersion = GroupName + "/v1alpha1"
	// Kind is the kind of PipelineConfiguration.
	Kind = "PipelineConfiguration"
)

// PipelineConfiguration configures solving and chaining of instances.
type PipelineConfiguration struct {
	metav1.TypeMeta `json:",inline"`

	// Solver configures the schedule generation.
	Solver *SolverConfiguration `json:"solver,omitempty"`

	// Chainer configures the construction of the partial order schedule.
	Chainer *ChainerConfiguration `json:"chainer,omitempty"`

	// Output is the directory solutions and partial order schedules are
	// written to.
	Output *string `json:"output,omitempty"`

	// Parallelism bounds the number of instances processed concurrently.
	Parallelism *int `json:"parallelism,omitempty"`

	// Force recomputes outputs that already exist.
	Force *bool `json:"force,omitempty"`

	// Native reads instances in the native format instead of PSPLIB.
	Native *bool `json:"native,omitempty"`

	// Tracer defines to enable tracing or not
	Tracer *string `json:"tracer,omitempty"`
}

type SolverConfiguration struct {
	// Scheme is one of serial, parallel, serialFBI, parallelFBI, shortest
	// and noResources.
	Scheme *string `json:"scheme,omitempty"`

	// CheckResources disables the capacity check of the schedule generation
	// when false.
	CheckResources *bool `json:"checkResources,omitempty"`
}

type ChainerConfiguration struct {
	// Strategy is the strategy tag, a concatenation of strategy names.
	Strategy *string `json:"strategy,omitempty"`

	// TieBreak is random or lowest.
	TieBreak *string `json:"tieBreak,omitempty"`

	// Seed seeds the random tie break. Zero seeds from the clock.
	Seed *int64 `json:"seed,omitempty"`

	// Strategies adds named strategies. They are matched before the
	// in-tree strategies.
	// +optional
	Strategies []StrategyConfiguration `json:"strategies,omitempty"`
}

type StrategyConfiguration struct {
	// name the strategy is referred to by in strategy tags
	Name string `json:"name"`
	// filter tree of the strategy
	Filter FilterSpec `json:"filter"`
}

// FilterSpec is a filter tree node. Exactly one field is set.
type FilterSpec struct {
	// +optional
	Base string `json:"base,omitempty"`
	// +optional
	Sequence []FilterSpec `json:"sequence,omitempty"`
	// +optional
	Fallback []FilterSpec `json:"fallback,omitempty"`
	// +optional
	IfThenElse *IfThenElseSpec `json:"ifThenElse,omitempty"`
}

type IfThenElseSpec struct {
	Test FilterSpec `json:"test"`
	// +optional
	Then *FilterSpec `json:"then,omitempty"`
	// +optional
	Else *FilterSpec `json:"else,omitempty"`
}

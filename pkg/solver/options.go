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

package solver

import (
	"fmt"
)

// Scheme names a schedule generation strategy.
type Scheme string

const (
	SchemeSerial      Scheme = "serial"
	SchemeParallel    Scheme = "parallel"
	SchemeSerialFBI   Scheme = "serialFBI"
	SchemeParallelFBI Scheme = "parallelFBI"
	// SchemeShortest runs all four schemes above and keeps the lowest makespan.
	SchemeShortest Scheme = "shortest"
	// SchemeNoResources runs the serial scheme with resource checking disabled.
	SchemeNoResources Scheme = "noResources"
)

var knownSchemes = []Scheme{SchemeSerial, SchemeParallel, SchemeSerialFBI, SchemeParallelFBI, SchemeShortest, SchemeNoResources}

// ParseScheme returns the scheme with the given name.
func ParseScheme(name string) (Scheme, error) {
	for _, s := range knownSchemes {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown solver scheme %q, expected one of %v", name, knownSchemes)
}

type solverOptions struct {
	scheme         Scheme
	checkResources bool
	selector       Selector
}

// Option configures a solver run.
type Option func(*solverOptions)

var defaultSolverOptions = solverOptions{
	scheme:         SchemeSerial,
	checkResources: true,
	selector:       FirstAvailable,
}

func renderOptions(opts ...Option) solverOptions {
	options := defaultSolverOptions
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

// WithScheme sets the scheme used by Solve.
func WithScheme(scheme Scheme) Option {
	return func(o *solverOptions) {
		o.scheme = scheme
	}
}

// WithResourceCheck toggles the resource feasibility test.
func WithResourceCheck(check bool) Option {
	return func(o *solverOptions) {
		o.checkResources = check
	}
}

// WithSelector sets the selector used to pick the next ready activity.
func WithSelector(selector Selector) Option {
	return func(o *solverOptions) {
		if selector != nil {
			o.selector = selector
		}
	}
}

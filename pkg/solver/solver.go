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

	"k8s.io/klog/v2"

	"github.com/dwilmer/rcpsp-testing-framework/pkg/instance"
)

// Solve computes a schedule for in with the configured scheme.
func Solve(in *instance.Instance, opts ...Option) (*instance.Solution, error) {
	o := renderOptions(opts...)
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var (
		sol *instance.Solution
		err error
	)
	switch o.scheme {
	case SchemeSerial, SchemeParallel, SchemeSerialFBI, SchemeParallelFBI:
		sol, err = solveWith(in, o, o.scheme)
	case SchemeNoResources:
		o.checkResources = false
		sol, err = solveWith(in, o, SchemeSerial)
	case SchemeShortest:
		sol, err = solveShortest(in, o)
	default:
		return nil, fmt.Errorf("unknown solver scheme %q", o.scheme)
	}
	if err != nil {
		return nil, err
	}
	klog.V(4).InfoS("Solved instance", "instance", in.Name, "scheme", o.scheme, "makespan", sol.Makespan())
	return sol, nil
}

func solveWith(in *instance.Instance, o solverOptions, scheme Scheme) (*instance.Solution, error) {
	opts := []Option{WithResourceCheck(o.checkResources), WithSelector(o.selector)}
	sol := instance.NewSolution(in)
	switch scheme {
	case SchemeSerial, SchemeSerialFBI:
		if err := Serial(sol, opts...); err != nil {
			return nil, err
		}
	case SchemeParallel, SchemeParallelFBI:
		if err := Parallel(sol, opts...); err != nil {
			return nil, err
		}
	}
	if scheme == SchemeSerialFBI || scheme == SchemeParallelFBI {
		if err := ForwardBackward(sol, opts...); err != nil {
			return nil, err
		}
	}
	return sol, nil
}

// solveShortest keeps the first schedule with the lowest makespan among the
// serial, serial+FBI, parallel and parallel+FBI schemes.
func solveShortest(in *instance.Instance, o solverOptions) (*instance.Solution, error) {
	var best *instance.Solution
	for _, scheme := range []Scheme{SchemeSerial, SchemeSerialFBI, SchemeParallel, SchemeParallelFBI} {
		sol, err := solveWith(in, o, scheme)
		if err != nil {
			return nil, err
		}
		klog.V(5).InfoS("Candidate schedule", "instance", in.Name, "scheme", scheme, "makespan", sol.Makespan())
		if best == nil || sol.Makespan() < best.Makespan() {
			best = sol
		}
	}
	return best, nil
}

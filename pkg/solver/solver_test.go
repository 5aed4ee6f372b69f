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
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dwilmer/rcpsp-testing-framework/pkg/instance"
)

func randomInstance(r *rand.Rand, n int) *instance.Instance {
	w := instance.MakeInstance().Name("random").Capacities(4, 3)
	for i := 0; i < n; i++ {
		w.Activity(r.Intn(6), r.Intn(5), r.Intn(4))
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if r.Float64() < 0.2 {
				w.Edges(i, j)
			}
		}
	}
	return w.Obj()
}

func TestSchemesProduceValidSchedules(t *testing.T) {
	schemes := []Scheme{SchemeSerial, SchemeParallel, SchemeSerialFBI, SchemeParallelFBI, SchemeShortest}
	r := rand.New(rand.NewSource(42))
	for round := 0; round < 25; round++ {
		in := randomInstance(r, 15)
		for _, scheme := range schemes {
			sol, err := Solve(in, WithScheme(scheme))
			if err != nil {
				t.Fatalf("round %d, %s: unexpected error: %v", round, scheme, err)
			}
			if err := sol.Validate(); err != nil {
				t.Errorf("round %d, %s: invalid schedule %v: %v", round, scheme, sol.StartTimes, err)
			}
		}
	}
}

func TestSerial(t *testing.T) {
	tests := []struct {
		name     string
		in       *instance.Instance
		opts     []Option
		expected []int
	}{
		{
			name:     "single unit resource serialises everything",
			in:       instance.MakeInstance().Capacities(1).Activity(2, 1).Activity(1, 1).Activity(1, 1).Obj(),
			expected: []int{0, 2, 3},
		},
		{
			name:     "precedence",
			in:       instance.MakeInstance().Capacities(2).Activity(2, 1).Activity(3, 1).Activity(1, 1).Edges(0, 2, 1, 2).Obj(),
			expected: []int{0, 0, 3},
		},
		{
			name:     "no resource check",
			in:       instance.MakeInstance().Capacities(1).Activity(2, 1).Activity(1, 1).Activity(1, 1).Obj(),
			opts:     []Option{WithResourceCheck(false)},
			expected: []int{0, 0, 0},
		},
		{
			name:     "zero duration ignores capacity",
			in:       instance.MakeInstance().Capacities(1).Activity(2, 1).Activity(0, 1).Activity(1, 1).Chain(1, 2).Obj(),
			expected: []int{0, 0, 2},
		},
		{
			name:     "gap filled later",
			in:       instance.MakeInstance().Capacities(2).Activity(1, 2).Activity(3, 1).Activity(1, 1).Edges(0, 1).Obj(),
			expected: []int{0, 1, 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sol := instance.NewSolution(tt.in)
			if err := Serial(sol, tt.opts...); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.expected, sol.StartTimes); diff != "" {
				t.Errorf("unexpected start times (-want,+got):\n%s", diff)
			}
		})
	}
}

func TestParallel(t *testing.T) {
	// 0 and 1 are eligible at 0 but only one fits; 2 waits for 0.
	in := instance.MakeInstance().Capacities(2).Activity(2, 2).Activity(1, 1).Activity(1, 1).Edges(0, 2).Obj()
	sol := instance.NewSolution(in)
	if err := Parallel(sol); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]int{0, 2, 2}, sol.StartTimes); diff != "" {
		t.Errorf("unexpected start times (-want,+got):\n%s", diff)
	}
}

func TestResourceCapacityExceeded(t *testing.T) {
	in := instance.MakeInstance().Capacities(2).Activity(1, 1).Activity(1, 3).Obj()
	for name, run := range map[string]func(*instance.Solution, ...Option) error{
		"serial":   Serial,
		"parallel": Parallel,
	} {
		t.Run(name, func(t *testing.T) {
			err := run(instance.NewSolution(in))
			if !errors.Is(err, instance.ErrResourceCapacityExceeded) {
				t.Errorf("expected ErrResourceCapacityExceeded but got %v", err)
			}
		})
	}
	if _, err := Solve(in, WithScheme(SchemeShortest)); !errors.Is(err, instance.ErrResourceCapacityExceeded) {
		t.Errorf("expected ErrResourceCapacityExceeded but got %v", err)
	}
	if _, err := Solve(in, WithScheme(SchemeNoResources)); err != nil {
		t.Errorf("unexpected error without resource check: %v", err)
	}
}

func TestCyclicGraph(t *testing.T) {
	in := instance.MakeInstance().Capacities(1).Activity(1, 1).Activity(1, 1).Chain(0, 1, 0).Obj()
	if err := Serial(instance.NewSolution(in)); !errors.Is(err, instance.ErrCyclicGraph) {
		t.Errorf("expected ErrCyclicGraph from serial but got %v", err)
	}
	if err := Parallel(instance.NewSolution(in)); !errors.Is(err, instance.ErrCyclicGraph) {
		t.Errorf("expected ErrCyclicGraph from parallel but got %v", err)
	}
	if _, err := Solve(in); !errors.Is(err, instance.ErrCyclicGraph) {
		t.Errorf("expected ErrCyclicGraph from solve but got %v", err)
	}
}

func TestForwardBackward(t *testing.T) {
	r := rand.New(rand.NewSource(9))
	for round := 0; round < 20; round++ {
		in := randomInstance(r, 12)
		edges := in.EdgeList()
		sol := instance.NewSolution(in)
		if err := Serial(sol); err != nil {
			t.Fatal(err)
		}
		if err := ForwardBackward(sol); err != nil {
			t.Fatalf("round %d: unexpected error: %v", round, err)
		}
		if err := sol.Validate(); err != nil {
			t.Errorf("round %d: invalid schedule: %v", round, err)
		}
		if diff := cmp.Diff(edges, in.EdgeList()); diff != "" {
			t.Errorf("round %d: graph not restored (-want,+got):\n%s", round, diff)
		}
	}
}

func TestForwardBackwardRestoresGraphOnError(t *testing.T) {
	in := instance.MakeInstance().Capacities(1).Activity(1, 1).Activity(1, 1).Chain(0, 1).Obj()
	sol := instance.NewSolution(in)
	if err := Serial(sol); err != nil {
		t.Fatal(err)
	}
	in.Activity(1).Demand[0] = 2
	if err := ForwardBackward(sol); !errors.Is(err, instance.ErrResourceCapacityExceeded) {
		t.Fatalf("expected ErrResourceCapacityExceeded but got %v", err)
	}
	if diff := cmp.Diff([][2]int{{0, 1}}, in.EdgeList()); diff != "" {
		t.Errorf("graph not restored (-want,+got):\n%s", diff)
	}
}

func TestForwardBackwardNeedsBaseline(t *testing.T) {
	in := instance.MakeInstance().Capacities(1).Activity(1, 1).Obj()
	if err := ForwardBackward(instance.NewSolution(in)); !errors.Is(err, instance.ErrIncompleteSolution) {
		t.Errorf("expected ErrIncompleteSolution but got %v", err)
	}
}

func TestShortestIsNotWorse(t *testing.T) {
	r := rand.New(rand.NewSource(17))
	for round := 0; round < 15; round++ {
		in := randomInstance(r, 12)
		best, err := Solve(in, WithScheme(SchemeShortest))
		if err != nil {
			t.Fatal(err)
		}
		for _, scheme := range []Scheme{SchemeSerial, SchemeSerialFBI, SchemeParallel, SchemeParallelFBI} {
			sol, err := Solve(in, WithScheme(scheme))
			if err != nil {
				t.Fatal(err)
			}
			if sol.Makespan() < best.Makespan() {
				t.Errorf("round %d: %s makespan %d beats shortest %d", round, scheme, sol.Makespan(), best.Makespan())
			}
		}
	}
}

func TestSelectors(t *testing.T) {
	times := []int{4, 2, 4, 0}
	durations := []int{1, 4, 1, 2}
	tests := []struct {
		name     string
		selector Selector
		ready    []int
		expected int
	}{
		{name: "latest finish", selector: LatestFinishIn(times, durations), ready: []int{0, 1, 3}, expected: 1},
		{name: "latest finish tie goes to lowest id", selector: LatestFinishIn(times, durations), ready: []int{2, 3, 0}, expected: 2},
		{name: "earliest start", selector: EarliestStartIn(times), ready: []int{0, 1, 3}, expected: 2},
		{name: "earliest start tie goes to lowest id", selector: EarliestStartIn(times), ready: []int{2, 0}, expected: 1},
		{name: "first available", selector: FirstAvailable, ready: []int{3, 1}, expected: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.selector(nil, tt.ready); got != tt.expected {
				t.Errorf("expected index %v but got %v", tt.expected, got)
			}
		})
	}
}

func TestParseScheme(t *testing.T) {
	for _, name := range []string{"serial", "parallel", "serialFBI", "parallelFBI", "shortest", "noResources"} {
		if s, err := ParseScheme(name); err != nil || string(s) != name {
			t.Errorf("expected %q to parse but got %v, %v", name, s, err)
		}
	}
	if _, err := ParseScheme("random"); err == nil {
		t.Errorf("expected error for unknown scheme")
	}
}

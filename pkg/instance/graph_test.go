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

package instance

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"k8s.io/apimachinery/pkg/util/sets"
)

// randomDAG only adds edges from lower to higher ids, so the result is acyclic.
func randomDAG(r *rand.Rand, n int, density float64) *Instance {
	w := MakeInstance().Name("random").Capacities(2)
	for i := 0; i < n; i++ {
		w.Activity(r.Intn(5), r.Intn(3))
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if r.Float64() < density {
				w.Edges(i, j)
			}
		}
	}
	return w.Obj()
}

func TestAddRemovePrecedenceConstraint(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for round := 0; round < 20; round++ {
		in := randomDAG(r, 8, 0.3)
		before := in.EdgeList()
		u, v := r.Intn(8), r.Intn(8)
		if in.HasPrecedenceConstraint(u, v) {
			continue
		}
		in.AddPrecedenceConstraint(u, v)
		if !in.Activity(u).HasSuccessor(v) || !in.Activity(v).HasPredecessor(u) {
			t.Fatalf("edge %d->%d not mirrored", u, v)
		}
		in.RemovePrecedenceConstraint(u, v)
		if diff := cmp.Diff(before, in.EdgeList()); diff != "" {
			t.Errorf("round %d: unexpected edges (-want,+got):\n%s", round, diff)
		}
		// Removing an absent edge is a no-op.
		in.RemovePrecedenceConstraint(u, v)
		if diff := cmp.Diff(before, in.EdgeList()); diff != "" {
			t.Errorf("round %d: second removal changed edges (-want,+got):\n%s", round, diff)
		}
	}
}

func TestTopologicalOrdering(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for round := 0; round < 30; round++ {
		in := randomDAG(r, 12, 0.25)
		order, err := in.TopologicalOrdering()
		if err != nil {
			t.Fatalf("round %d: unexpected error: %v", round, err)
		}
		if len(order) != in.NumActivities() {
			t.Fatalf("round %d: expected %d activities but got %d", round, in.NumActivities(), len(order))
		}
		pos := make([]int, len(order))
		for i, id := range order {
			pos[id] = i
		}
		for _, e := range in.EdgeList() {
			if pos[e[0]] >= pos[e[1]] {
				t.Errorf("round %d: edge %v violated by order %v", round, e, order)
			}
		}
	}
}

func TestTopologicalOrderingDeterministic(t *testing.T) {
	in := MakeInstance().Capacities(1).
		Activity(1, 0).Activity(1, 0).Activity(1, 0).Activity(1, 0).
		Edges(0, 2, 0, 3, 1, 3).Obj()
	order, err := in.TopologicalOrdering()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{0, 2, 1, 3}, order); diff != "" {
		t.Errorf("unexpected order (-want,+got):\n%s", diff)
	}
}

func TestTopologicalOrderingCycle(t *testing.T) {
	in := MakeInstance().Capacities(1).Activity(1, 0).Activity(1, 0).Activity(1, 0).Chain(0, 1, 2, 0).Obj()
	if _, err := in.TopologicalOrdering(); !errors.Is(err, ErrCyclicGraph) {
		t.Errorf("expected ErrCyclicGraph but got %v", err)
	}
}

func TestTransitiveConstraintsRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   *Instance
	}{
		{
			name: "chain",
			in:   MakeInstance().Capacities(1).Activity(1, 0).Activity(1, 0).Activity(1, 0).Activity(1, 0).Chain(0, 1, 2, 3).Obj(),
		},
		{
			name: "redundant edge kept",
			in:   MakeInstance().Capacities(1).Activity(1, 0).Activity(1, 0).Activity(1, 0).Chain(0, 1, 2).Edges(0, 2).Obj(),
		},
		{
			name: "no edges",
			in:   MakeInstance().Capacities(1).Activity(1, 0).Activity(1, 0).Obj(),
		},
	}
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 10; i++ {
		tests = append(tests, struct {
			name string
			in   *Instance
		}{name: "random", in: randomDAG(r, 10, 0.3)})
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.in.EdgeList()
			if err := tt.in.AddTransitiveConstraints(); err != nil {
				t.Fatal(err)
			}
			if err := tt.in.RemoveTransitiveConstraints(); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(before, tt.in.EdgeList()); diff != "" {
				t.Errorf("unexpected edges (-want,+got):\n%s", diff)
			}
		})
	}
}

func TestAddTransitiveConstraintsClosure(t *testing.T) {
	in := MakeInstance().Capacities(1).Activity(1, 0).Activity(1, 0).Activity(1, 0).Activity(1, 0).Chain(0, 1, 2, 3).Obj()
	if err := in.AddTransitiveConstraints(); err != nil {
		t.Fatal(err)
	}
	want := [][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}
	if diff := cmp.Diff(want, in.EdgeList()); diff != "" {
		t.Errorf("unexpected closure (-want,+got):\n%s", diff)
	}
}

func TestRemoveTransitiveConstraintsReduction(t *testing.T) {
	tests := []struct {
		name string
		in   *Instance
		want [][2]int
	}{
		{
			name: "closed",
			in: MakeInstance().Capacities(1).Activity(1, 0).Activity(1, 0).Activity(1, 0).Activity(1, 0).
				Chain(0, 1, 2, 3).Edges(0, 2, 1, 3, 0, 3).Obj(),
			want: [][2]int{{0, 1}, {1, 2}, {2, 3}},
		},
		{
			name: "long shortcut",
			in: MakeInstance().Capacities(1).Activity(1, 0).Activity(1, 0).Activity(1, 0).Activity(1, 0).
				Chain(0, 1, 2, 3).Edges(0, 3).Obj(),
			want: [][2]int{{0, 1}, {1, 2}, {2, 3}},
		},
		{
			name: "shortcut across branches",
			in: MakeInstance().Capacities(1).Activity(1, 0).Activity(1, 0).Activity(1, 0).Activity(1, 0).Activity(1, 0).
				Edges(0, 1, 1, 2, 0, 3, 3, 4, 0, 4, 2, 4).Obj(),
			want: [][2]int{{0, 1}, {0, 3}, {1, 2}, {2, 4}, {3, 4}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.in.RemoveTransitiveConstraints(); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, tt.in.EdgeList()); diff != "" {
				t.Errorf("unexpected reduction (-want,+got):\n%s", diff)
			}
		})
	}
}

func TestCalculateFlexKeepsPendingClosure(t *testing.T) {
	in := MakeInstance().Capacities(1).Activity(1, 0).Activity(1, 0).Activity(1, 0).Chain(0, 1, 2).Obj()
	before := in.EdgeList()
	if err := in.AddTransitiveConstraints(); err != nil {
		t.Fatal(err)
	}
	if _, err := in.CalculateFlex(); err != nil {
		t.Fatal(err)
	}
	if !in.HasPrecedenceConstraint(0, 2) {
		t.Fatalf("closure edge 0->2 lost by CalculateFlex")
	}
	if err := in.RemoveTransitiveConstraints(); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(before, in.EdgeList()); diff != "" {
		t.Errorf("unexpected edges after undo (-want,+got):\n%s", diff)
	}
}

func TestCalculateFlex(t *testing.T) {
	tests := []struct {
		name string
		in   *Instance
		want float64
	}{
		{
			name: "no edges",
			in:   MakeInstance().Capacities(1).Activity(1, 0).Activity(1, 0).Activity(1, 0).Obj(),
			want: 1,
		},
		{
			name: "chain",
			in:   MakeInstance().Capacities(1).Activity(1, 0).Activity(1, 0).Activity(1, 0).Activity(1, 0).Chain(0, 1, 2, 3).Obj(),
			want: 0,
		},
		{
			name: "fork",
			in:   MakeInstance().Capacities(1).Activity(1, 0).Activity(1, 0).Activity(1, 0).Edges(0, 1, 0, 2).Obj(),
			want: 1.0 / 3,
		},
		{
			name: "single activity",
			in:   MakeInstance().Capacities(1).Activity(1, 0).Obj(),
			want: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.in.EdgeList()
			got, err := tt.in.CalculateFlex()
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("expected %v but got %v", tt.want, got)
			}
			if diff := cmp.Diff(before, tt.in.EdgeList()); diff != "" {
				t.Errorf("flex changed edges (-want,+got):\n%s", diff)
			}
		})
	}

	r := rand.New(rand.NewSource(5))
	for i := 0; i < 20; i++ {
		got, err := randomDAG(r, 9, 0.4).CalculateFlex()
		if err != nil {
			t.Fatal(err)
		}
		if got < 0 || got > 1 {
			t.Errorf("flex %v out of range", got)
		}
	}
}

func TestAllSuccessorsAndPredecessors(t *testing.T) {
	in := MakeInstance().Capacities(1).
		Activity(1, 0).Activity(1, 0).Activity(1, 0).Activity(1, 0).Activity(1, 0).
		Edges(0, 1, 0, 2, 1, 3, 2, 3).Obj()

	succ, err := in.AllSuccessors(0)
	if err != nil {
		t.Fatal(err)
	}
	if !succ.Equal(sets.New(1, 2, 3)) {
		t.Errorf("expected successors [1 2 3] but got %v", sets.List(succ))
	}
	pred, err := in.AllPredecessors(3)
	if err != nil {
		t.Fatal(err)
	}
	if !pred.Equal(sets.New(0, 1, 2)) {
		t.Errorf("expected predecessors [0 1 2] but got %v", sets.List(pred))
	}
	if ok, _ := in.ContainsPath(0, 3); !ok {
		t.Errorf("expected path 0->3")
	}
	if ok, _ := in.ContainsPath(3, 0); ok {
		t.Errorf("unexpected path 3->0")
	}
	if ok, _ := in.ContainsPath(4, 3); ok {
		t.Errorf("unexpected path 4->3")
	}
}

func TestClosureDetectsCycle(t *testing.T) {
	in := MakeInstance().Capacities(1).Activity(1, 0).Activity(1, 0).Activity(1, 0).Chain(0, 1, 2, 1).Obj()
	if _, err := in.AllSuccessors(0); !errors.Is(err, ErrCyclicGraph) {
		t.Errorf("expected ErrCyclicGraph but got %v", err)
	}
	if _, err := in.AllPredecessors(2); !errors.Is(err, ErrCyclicGraph) {
		t.Errorf("expected ErrCyclicGraph but got %v", err)
	}
}

func TestCalculateShortestDistances(t *testing.T) {
	//  0 -> 1 -> 3
	//  2 -> 3
	//  4 (isolated)
	in := MakeInstance().Capacities(1).
		Activity(2, 0).Activity(3, 0).Activity(5, 0).Activity(1, 0).Activity(1, 0).
		Edges(0, 1, 1, 3, 2, 3).Obj()
	tests := []struct {
		name     string
		target   int
		weighted bool
		want     []int
	}{
		{name: "hops", target: 0, want: []int{0, 1, 3, 2, -1}},
		{name: "weighted", target: 0, weighted: true, want: []int{0, 2, 10, 5, -1}},
		{name: "backwards", target: 3, want: []int{2, 1, 1, 0, -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := in.CalculateShortestDistances(tt.target, tt.weighted)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("unexpected distances (-want,+got):\n%s", diff)
			}
		})
	}
}

func TestReverse(t *testing.T) {
	in := MakeInstance().Capacities(1).Activity(1, 0).Activity(1, 0).Activity(1, 0).Chain(0, 1, 2).Obj()
	in.Reverse()
	if diff := cmp.Diff([][2]int{{1, 0}, {2, 1}}, in.EdgeList()); diff != "" {
		t.Errorf("unexpected edges (-want,+got):\n%s", diff)
	}
	in.Reverse()
	if diff := cmp.Diff([][2]int{{0, 1}, {1, 2}}, in.EdgeList()); diff != "" {
		t.Errorf("unexpected edges (-want,+got):\n%s", diff)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	in := MakeInstance().Name("orig").Capacities(3).Activity(1, 2).Activity(1, 1).Obj()
	c := in.Clone()
	c.AddPrecedenceConstraint(0, 1)
	c.Activity(0).Demand[0] = 3
	c.Capacities[0] = 9
	if in.NumEdges() != 0 {
		t.Errorf("clone edge leaked into original")
	}
	if in.Activity(0).Demand[0] != 2 || in.Capacities[0] != 3 {
		t.Errorf("clone mutation leaked into original: %v", in)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		in        *Instance
		wantErr   bool
		wantCycle bool
	}{
		{
			name: "valid",
			in:   MakeInstance().Capacities(2).Activity(1, 1).Activity(2, 2).Chain(0, 1).Obj(),
		},
		{
			name:      "cycle",
			in:        MakeInstance().Capacities(2).Activity(1, 1).Activity(2, 2).Chain(0, 1, 0).Obj(),
			wantErr:   true,
			wantCycle: true,
		},
		{
			name:      "self loop",
			in:        MakeInstance().Capacities(2).Activity(1, 1).Edges(0, 0).Obj(),
			wantErr:   true,
			wantCycle: true,
		},
		{
			name:    "demand size mismatch",
			in:      MakeInstance().Capacities(2, 1).Activity(1, 1).Obj(),
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error %v but got %v", tt.wantErr, err)
			}
			if errors.Is(err, ErrCyclicGraph) != tt.wantCycle {
				t.Errorf("expected cycle %v but got %v", tt.wantCycle, err)
			}
		})
	}
}

func TestFindCycle(t *testing.T) {
	in := MakeInstance().Capacities(1).Activity(1, 0).Activity(1, 0).Activity(1, 0).Activity(1, 0).
		Chain(0, 1, 2, 3, 1).Obj()
	if diff := cmp.Diff([]int{1, 2, 3}, in.FindCycle()); diff != "" {
		t.Errorf("unexpected cycle (-want,+got):\n%s", diff)
	}
	in.RemovePrecedenceConstraint(3, 1)
	if got := in.FindCycle(); got != nil {
		t.Errorf("expected no cycle but got %v", got)
	}
}

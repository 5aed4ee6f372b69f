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
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// AddPrecedenceConstraint adds the edge u->v. The caller keeps the graph acyclic.
func (in *Instance) AddPrecedenceConstraint(u, v int) {
	in.activities[u].successors.Insert(v)
	in.activities[v].predecessors.Insert(u)
}

// RemovePrecedenceConstraint removes the edge u->v if it exists.
func (in *Instance) RemovePrecedenceConstraint(u, v int) {
	in.activities[u].successors.Delete(v)
	in.activities[v].predecessors.Delete(u)
}

// HasPrecedenceConstraint reports whether the edge u->v exists.
func (in *Instance) HasPrecedenceConstraint(u, v int) bool {
	return in.activities[u].successors.Has(v)
}

// Reverse swaps the predecessor and successor sets of every activity.
func (in *Instance) Reverse() {
	for _, a := range in.activities {
		a.predecessors, a.successors = a.successors, a.predecessors
	}
}

// TopologicalOrdering runs Kahn's algorithm with a LIFO frontier seeded by all
// activities without predecessors.
func (in *Instance) TopologicalOrdering() ([]int, error) {
	n := len(in.activities)
	din := make([]int, n)
	stk := make([]int, 0, n)
	// Push in descending id order so the lowest id is popped first.
	for i := n - 1; i >= 0; i-- {
		din[i] = in.activities[i].predecessors.Len()
		if din[i] == 0 {
			stk = append(stk, i)
		}
	}

	order := make([]int, 0, n)
	for len(stk) > 0 {
		u := stk[len(stk)-1]
		stk = stk[:len(stk)-1]
		order = append(order, u)

		succ := in.activities[u].Successors()
		for i := len(succ) - 1; i >= 0; i-- {
			v := succ[i]
			din[v]--
			if din[v] == 0 {
				stk = append(stk, v)
			}
		}
	}
	if len(order) != n {
		return nil, errors.Wrapf(ErrCyclicGraph, "%d of %d activities ordered", len(order), n)
	}
	return order, nil
}

// AddTransitiveConstraints adds i->k for every i->j->k in topological order,
// which yields the transitive closure. The added edges are remembered until
// the next RemoveTransitiveConstraints.
func (in *Instance) AddTransitiveConstraints() error {
	order, err := in.TopologicalOrdering()
	if err != nil {
		return err
	}
	added := make([][2]int, 0)
	for x, i := range order {
		for y := x + 1; y < len(order); y++ {
			j := order[y]
			if !in.HasPrecedenceConstraint(i, j) {
				continue
			}
			for z := y + 1; z < len(order); z++ {
				k := order[z]
				if in.HasPrecedenceConstraint(j, k) && !in.HasPrecedenceConstraint(i, k) {
					in.AddPrecedenceConstraint(i, k)
					added = append(added, [2]int{i, k})
				}
			}
		}
	}
	in.inferred = added
	klog.V(5).InfoS("Added transitive constraints", "instance", in.Name, "edges", len(added))
	return nil
}

// RemoveTransitiveConstraints undoes the preceding AddTransitiveConstraints.
// Without a preceding call it closes the graph and then removes i->k for every
// i->j->k in topological order, which yields the transitive reduction.
func (in *Instance) RemoveTransitiveConstraints() error {
	if in.inferred != nil {
		for _, e := range in.inferred {
			in.RemovePrecedenceConstraint(e[0], e[1])
		}
		in.inferred = nil
		return nil
	}

	// The triple rule only reduces a closed graph.
	if err := in.AddTransitiveConstraints(); err != nil {
		return err
	}
	in.inferred = nil
	order, err := in.TopologicalOrdering()
	if err != nil {
		return err
	}
	removed := 0
	for x, i := range order {
		for y := x + 1; y < len(order); y++ {
			j := order[y]
			if !in.HasPrecedenceConstraint(i, j) {
				continue
			}
			for z := y + 1; z < len(order); z++ {
				k := order[z]
				if in.HasPrecedenceConstraint(j, k) && in.HasPrecedenceConstraint(i, k) {
					in.RemovePrecedenceConstraint(i, k)
					removed++
				}
			}
		}
	}
	klog.V(5).InfoS("Removed transitive constraints", "instance", in.Name, "edges", removed)
	return nil
}

// CalculateFlex returns the share of activity pairs that remain unordered
// after transitive closure. A pending AddTransitiveConstraints record is kept.
func (in *Instance) CalculateFlex() (float64, error) {
	n := len(in.activities)
	if n < 2 {
		return 1, nil
	}
	pending := in.inferred
	defer func() { in.inferred = pending }()
	in.inferred = nil
	if err := in.AddTransitiveConstraints(); err != nil {
		return 0, err
	}
	maxPairs := float64(n*(n-1)) / 2
	flex := (maxPairs - float64(in.NumEdges())) / maxPairs
	if err := in.RemoveTransitiveConstraints(); err != nil {
		return 0, err
	}
	return flex, nil
}

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
	"k8s.io/apimachinery/pkg/util/sets"
)

type slotState uint8

const (
	unvisited slotState = iota
	inProgress
	done
)

// closureFrame is one pending node of the explicit depth-first walk.
type closureFrame struct {
	id       int
	children []int
	next     int
}

// closure returns every activity reachable from root through neighbors. Results
// of visited nodes are kept in slots indexed by activity id, so every node is
// expanded once per call.
func (in *Instance) closure(root int, neighbors func(*Activity) sets.Set[int]) (sets.Set[int], error) {
	if root < 0 || root >= len(in.activities) {
		return nil, errors.Wrapf(ErrUnknownActivity, "activity %d", root)
	}
	slots := make([]sets.Set[int], len(in.activities))
	state := make([]slotState, len(in.activities))

	state[root] = inProgress
	stk := []closureFrame{{id: root, children: sets.List(neighbors(in.activities[root]))}}
	for len(stk) > 0 {
		top := len(stk) - 1
		if stk[top].next < len(stk[top].children) {
			c := stk[top].children[stk[top].next]
			stk[top].next++
			switch state[c] {
			case inProgress:
				return nil, errors.Wrapf(ErrCyclicGraph, "activity %d reaches itself", c)
			case done:
				continue
			}
			state[c] = inProgress
			stk = append(stk, closureFrame{id: c, children: sets.List(neighbors(in.activities[c]))})
			continue
		}

		f := stk[top]
		acc := sets.New[int](f.children...)
		for _, c := range f.children {
			acc.Insert(slots[c].UnsortedList()...)
		}
		slots[f.id] = acc
		state[f.id] = done
		stk = stk[:top]
	}
	return slots[root], nil
}

// AllSuccessors returns the transitive successors of id.
func (in *Instance) AllSuccessors(id int) (sets.Set[int], error) {
	return in.closure(id, func(a *Activity) sets.Set[int] { return a.successors })
}

// AllPredecessors returns the transitive predecessors of id.
func (in *Instance) AllPredecessors(id int) (sets.Set[int], error) {
	return in.closure(id, func(a *Activity) sets.Set[int] { return a.predecessors })
}

// ContainsPath reports whether b is reachable from a.
func (in *Instance) ContainsPath(a, b int) (bool, error) {
	succ, err := in.AllSuccessors(a)
	if err != nil {
		return false, err
	}
	return succ.Has(b), nil
}

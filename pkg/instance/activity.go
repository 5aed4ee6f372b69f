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
	"fmt"

	"k8s.io/apimachinery/pkg/util/sets"
)

// Activity is a node of the precedence graph. Its edge sets are owned by the
// Instance and only change through AddPrecedenceConstraint and
// RemovePrecedenceConstraint.
type Activity struct {
	Duration int
	Demand   []int

	predecessors sets.Set[int]
	successors   sets.Set[int]
}

func newActivity(duration int, demand []int) *Activity {
	d := make([]int, len(demand))
	copy(d, demand)
	return &Activity{
		Duration:     duration,
		Demand:       d,
		predecessors: sets.New[int](),
		successors:   sets.New[int](),
	}
}

// Predecessors returns the direct predecessors in ascending order.
func (a *Activity) Predecessors() []int {
	return sets.List(a.predecessors)
}

// Successors returns the direct successors in ascending order.
func (a *Activity) Successors() []int {
	return sets.List(a.successors)
}

func (a *Activity) HasPredecessor(id int) bool {
	return a.predecessors.Has(id)
}

func (a *Activity) HasSuccessor(id int) bool {
	return a.successors.Has(id)
}

func (a *Activity) NumPredecessors() int {
	return a.predecessors.Len()
}

func (a *Activity) NumSuccessors() int {
	return a.successors.Len()
}

func (a *Activity) clone() *Activity {
	c := newActivity(a.Duration, a.Demand)
	c.predecessors = a.predecessors.Clone()
	c.successors = a.successors.Clone()
	return c
}

func (a *Activity) String() string {
	return fmt.Sprintf("{duration:%v,demand:%v,pred:%v,succ:%v}", a.Duration, a.Demand, a.Predecessors(), a.Successors())
}

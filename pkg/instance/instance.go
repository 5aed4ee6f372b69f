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

	"github.com/pkg/errors"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
)

// Instance is a resource-constrained project: activities indexed by id, the
// capacity of every renewable resource and a display name.
type Instance struct {
	Name       string
	Capacities []int

	activities []*Activity
	// inferred holds the edges added by the last AddTransitiveConstraints call
	// until the matching RemoveTransitiveConstraints.
	inferred [][2]int
}

// New creates an instance without activities.
func New(name string, capacities []int) *Instance {
	c := make([]int, len(capacities))
	copy(c, capacities)
	return &Instance{
		Name:       name,
		Capacities: c,
	}
}

// AddActivity appends an activity and returns its id.
func (in *Instance) AddActivity(duration int, demand []int) int {
	in.activities = append(in.activities, newActivity(duration, demand))
	return len(in.activities) - 1
}

// Activity returns the activity with the given id, or nil if it does not exist.
func (in *Instance) Activity(id int) *Activity {
	if id < 0 || id >= len(in.activities) {
		return nil
	}
	return in.activities[id]
}

func (in *Instance) NumActivities() int {
	return len(in.activities)
}

func (in *Instance) NumResources() int {
	return len(in.Capacities)
}

// NumEdges returns the number of precedence constraints.
func (in *Instance) NumEdges() int {
	edges := 0
	for _, a := range in.activities {
		edges += a.successors.Len()
	}
	return edges
}

// Durations returns the duration of every activity indexed by id.
func (in *Instance) Durations() []int {
	ret := make([]int, len(in.activities))
	for i, a := range in.activities {
		ret[i] = a.Duration
	}
	return ret
}

// Clone returns a deep copy sharing no state with the receiver.
func (in *Instance) Clone() *Instance {
	c := New(in.Name, in.Capacities)
	c.activities = make([]*Activity, len(in.activities))
	for i, a := range in.activities {
		c.activities[i] = a.clone()
	}
	return c
}

// Validate checks the shape of every activity and that the precedence graph is acyclic.
func (in *Instance) Validate() error {
	var errs []error
	for i, c := range in.Capacities {
		if c < 0 {
			errs = append(errs, fmt.Errorf("resource %d has negative capacity %d", i, c))
		}
	}
	for id, a := range in.activities {
		if a.Duration < 0 {
			errs = append(errs, fmt.Errorf("activity %d has negative duration %d", id, a.Duration))
		}
		if len(a.Demand) != len(in.Capacities) {
			errs = append(errs, fmt.Errorf("activity %d demands %d resources, instance has %d", id, len(a.Demand), len(in.Capacities)))
			continue
		}
		for r, d := range a.Demand {
			if d < 0 {
				errs = append(errs, fmt.Errorf("activity %d has negative demand %d for resource %d", id, d, r))
			}
		}
	}
	if cycle := in.FindCycle(); len(cycle) > 0 {
		errs = append(errs, errors.Wrapf(ErrCyclicGraph, "activities %v", cycle))
	}
	return utilerrors.NewAggregate(errs)
}

func (in *Instance) String() string {
	return fmt.Sprintf("%s{capacities:%v,activities:%d,edges:%d}", in.Name, in.Capacities, len(in.activities), in.NumEdges())
}

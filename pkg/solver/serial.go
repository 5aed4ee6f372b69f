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
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/dwilmer/rcpsp-testing-framework/pkg/instance"
)

// Serial runs the serial schedule generation scheme. sol is reset first.
// Activities are committed one at a time, each at the earliest time after its
// predecessors finish at which its demand fits.
func Serial(sol *instance.Solution, opts ...Option) error {
	o := renderOptions(opts...)
	in := sol.Instance
	n := in.NumActivities()
	sol.Reset()

	profile := newResourceProfile(in.Capacities)
	// pending counts the unscheduled predecessors of every activity.
	pending := make([]int, n)
	ready := make([]int, 0, n)
	for id := 0; id < n; id++ {
		pending[id] = in.Activity(id).NumPredecessors()
		if pending[id] == 0 {
			ready = append(ready, id)
		}
	}

	scheduled := 0
	for len(ready) > 0 {
		idx := o.selector(sol, ready)
		id := ready[idx]
		ready = append(ready[:idx], ready[idx+1:]...)

		a := in.Activity(id)
		start := 0
		for _, p := range a.Predecessors() {
			if f := sol.FinishTime(p); f > start {
				start = f
			}
		}
		if o.checkResources {
			for {
				ok, r := profile.fits(a.Demand, start, a.Duration)
				if ok {
					break
				}
				// Nothing is active from latestFinish on, so a later start cannot help.
				if start >= profile.latestFinish {
					return errors.Wrapf(instance.ErrResourceCapacityExceeded,
						"activity %d demands %d of resource %d with capacity %d", id, a.Demand[r], r, in.Capacities[r])
				}
				start++
			}
		}
		profile.reserve(a.Demand, start, a.Duration)
		sol.StartTimes[id] = start
		scheduled++

		for _, s := range a.Successors() {
			pending[s]--
			if pending[s] == 0 {
				ready = append(ready, s)
			}
		}
	}

	if scheduled != n {
		return errors.Wrapf(instance.ErrCyclicGraph, "serial scheme scheduled %d of %d activities", scheduled, n)
	}
	klog.V(5).InfoS("Serial schedule generated", "instance", in.Name, "makespan", sol.Makespan())
	return nil
}

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

// Parallel runs the parallel schedule generation scheme. sol is reset first.
// Time advances one unit at a time; at every unit each eligible activity is
// tried at that unit only and stays eligible if it does not fit.
func Parallel(sol *instance.Solution, opts ...Option) error {
	o := renderOptions(opts...)
	in := sol.Instance
	n := in.NumActivities()
	sol.Reset()

	profile := newResourceProfile(in.Capacities)
	scheduled := 0
	for t := 0; scheduled < n; t++ {
		eligible := eligibleAt(sol, t)
		attempted := len(eligible) > 0
		progress := false
		for len(eligible) > 0 {
			idx := o.selector(sol, eligible)
			id := eligible[idx]
			eligible = append(eligible[:idx], eligible[idx+1:]...)

			a := in.Activity(id)
			if o.checkResources {
				if ok, _ := profile.fits(a.Demand, t, a.Duration); !ok {
					continue
				}
			}
			profile.reserve(a.Demand, t, a.Duration)
			sol.StartTimes[id] = t
			scheduled++
			progress = true
		}

		if progress || t < profile.latestFinish {
			continue
		}
		// Nothing runs from t on and nothing could start at t.
		if attempted {
			return errors.Wrapf(instance.ErrResourceCapacityExceeded, "parallel scheme stalled at time %d with %d of %d activities scheduled", t, scheduled, n)
		}
		if scheduled < n {
			return errors.Wrapf(instance.ErrCyclicGraph, "parallel scheme scheduled %d of %d activities", scheduled, n)
		}
	}

	klog.V(5).InfoS("Parallel schedule generated", "instance", in.Name, "makespan", sol.Makespan())
	return nil
}

// eligibleAt returns, in id order, the unscheduled activities whose
// predecessors have all finished by t.
func eligibleAt(sol *instance.Solution, t int) []int {
	var eligible []int
	for id := range sol.StartTimes {
		if sol.IsScheduled(id) {
			continue
		}
		ok := true
		for _, p := range sol.Instance.Activity(id).Predecessors() {
			if !sol.IsScheduled(p) || sol.FinishTime(p) > t {
				ok = false
				break
			}
		}
		if ok {
			eligible = append(eligible, id)
		}
	}
	return eligible
}

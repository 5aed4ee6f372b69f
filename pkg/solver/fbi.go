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

// ForwardBackward improves a complete schedule with a double pass. The
// backward pass schedules the reversed graph preferring activities that
// finished latest in sol; the forward pass then prefers activities that
// started earliest in the backward schedule. sol holds the forward result.
// The graph is restored even if a pass fails.
func ForwardBackward(sol *instance.Solution, opts ...Option) error {
	o := renderOptions(opts...)
	in := sol.Instance
	for id := range sol.StartTimes {
		if !sol.IsScheduled(id) {
			return errors.Wrapf(instance.ErrIncompleteSolution, "forward-backward improvement needs a baseline, activity %d is unscheduled", id)
		}
	}
	before := sol.Makespan()
	baseline := append([]int(nil), sol.StartTimes...)

	in.Reverse()
	reversed := true
	defer func() {
		if reversed {
			in.Reverse()
		}
	}()
	if err := Serial(sol, WithResourceCheck(o.checkResources), WithSelector(LatestFinishIn(baseline, in.Durations()))); err != nil {
		return errors.Wrap(err, "backward pass")
	}
	backward := append([]int(nil), sol.StartTimes...)

	in.Reverse()
	reversed = false
	if err := Serial(sol, WithResourceCheck(o.checkResources), WithSelector(EarliestStartIn(backward))); err != nil {
		return errors.Wrap(err, "forward pass")
	}
	klog.V(4).InfoS("Forward-backward improvement finished", "instance", in.Name, "before", before, "after", sol.Makespan())
	return nil
}

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
)

// Unscheduled is the start time of an activity that has not been scheduled.
const Unscheduled = -1

// Solution assigns a start time to every activity of one Instance.
type Solution struct {
	Instance   *Instance
	StartTimes []int
}

// NewSolution returns a solution with every activity unscheduled.
func NewSolution(in *Instance) *Solution {
	sol := &Solution{
		Instance:   in,
		StartTimes: make([]int, in.NumActivities()),
	}
	sol.Reset()
	return sol
}

// Reset marks every activity unscheduled. The instance reference is kept.
func (s *Solution) Reset() {
	if len(s.StartTimes) != s.Instance.NumActivities() {
		s.StartTimes = make([]int, s.Instance.NumActivities())
	}
	for i := range s.StartTimes {
		s.StartTimes[i] = Unscheduled
	}
}

func (s *Solution) IsScheduled(id int) bool {
	return s.StartTimes[id] != Unscheduled
}

// FinishTime returns start plus duration of a scheduled activity.
func (s *Solution) FinishTime(id int) int {
	return s.StartTimes[id] + s.Instance.activities[id].Duration
}

// Makespan is the latest finish time over all scheduled activities.
func (s *Solution) Makespan() int {
	makespan := 0
	for id := range s.StartTimes {
		if !s.IsScheduled(id) {
			continue
		}
		if f := s.FinishTime(id); f > makespan {
			makespan = f
		}
	}
	return makespan
}

// ResourceUsage sums the demand of all activities active at t.
func (s *Solution) ResourceUsage(t int) []int {
	usage := make([]int, s.Instance.NumResources())
	for id, a := range s.Instance.activities {
		if !s.IsScheduled(id) || t < s.StartTimes[id] || t >= s.FinishTime(id) {
			continue
		}
		for r, d := range a.Demand {
			usage[r] += d
		}
	}
	return usage
}

// Clone copies the start times; the instance is shared.
func (s *Solution) Clone() *Solution {
	times := make([]int, len(s.StartTimes))
	copy(times, s.StartTimes)
	return &Solution{Instance: s.Instance, StartTimes: times}
}

// Validate checks completeness, precedence and resource capacities.
func (s *Solution) Validate() error {
	in := s.Instance
	if len(s.StartTimes) != in.NumActivities() {
		return errors.Wrapf(ErrIncompleteSolution, "%d start times for %d activities", len(s.StartTimes), in.NumActivities())
	}
	for id, a := range in.activities {
		if !s.IsScheduled(id) {
			return errors.Wrapf(ErrIncompleteSolution, "activity %d", id)
		}
		for p := range a.predecessors {
			if s.IsScheduled(p) && s.StartTimes[id] < s.FinishTime(p) {
				return errors.Wrapf(ErrPrecedenceViolated, "activity %d starts at %d before predecessor %d finishes at %d",
					id, s.StartTimes[id], p, s.FinishTime(p))
			}
		}
	}
	// Usage only changes when an activity starts.
	for id := range in.activities {
		t := s.StartTimes[id]
		for r, u := range s.ResourceUsage(t) {
			if u > in.Capacities[r] {
				return errors.Wrapf(ErrResourceCapacityExceeded, "resource %d uses %d of %d at time %d", r, u, in.Capacities[r], t)
			}
		}
	}
	return nil
}

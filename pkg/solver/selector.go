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
	"github.com/dwilmer/rcpsp-testing-framework/pkg/instance"
)

// Selector returns the index in ready of the activity to schedule next.
// ready is never empty.
type Selector func(sol *instance.Solution, ready []int) int

// FirstAvailable picks the activity that became ready first.
func FirstAvailable(_ *instance.Solution, _ []int) int {
	return 0
}

// LatestFinishIn prefers the activity with the latest finish time in times.
// Ties go to the lowest activity id.
func LatestFinishIn(times, durations []int) Selector {
	return func(_ *instance.Solution, ready []int) int {
		best := 0
		for i := 1; i < len(ready); i++ {
			a, b := ready[i], ready[best]
			fa, fb := times[a]+durations[a], times[b]+durations[b]
			if fa > fb || (fa == fb && a < b) {
				best = i
			}
		}
		return best
	}
}

// EarliestStartIn prefers the activity with the earliest start time in times.
// Ties go to the lowest activity id.
func EarliestStartIn(times []int) Selector {
	return func(_ *instance.Solution, ready []int) int {
		best := 0
		for i := 1; i < len(ready); i++ {
			a, b := ready[i], ready[best]
			if times[a] < times[b] || (times[a] == times[b] && a < b) {
				best = i
			}
		}
		return best
	}
}

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

// resourceProfile tracks the summed demand of committed activities per time unit.
type resourceProfile struct {
	capacities []int
	usage      [][]int
	// latestFinish is the time after which no committed activity is active.
	latestFinish int
}

func newResourceProfile(capacities []int) *resourceProfile {
	return &resourceProfile{capacities: capacities}
}

func (p *resourceProfile) at(t int) []int {
	if t < len(p.usage) {
		return p.usage[t]
	}
	return nil
}

// fits reports whether demand can be added over [start, start+duration). If
// not, it also returns the first resource that overflows.
func (p *resourceProfile) fits(demand []int, start, duration int) (bool, int) {
	for t := start; t < start+duration; t++ {
		usage := p.at(t)
		for r, d := range demand {
			used := 0
			if usage != nil {
				used = usage[r]
			}
			if used+d > p.capacities[r] {
				return false, r
			}
		}
	}
	return true, -1
}

func (p *resourceProfile) reserve(demand []int, start, duration int) {
	end := start + duration
	for len(p.usage) < end {
		p.usage = append(p.usage, make([]int, len(p.capacities)))
	}
	for t := start; t < end; t++ {
		for r, d := range demand {
			p.usage[t][r] += d
		}
	}
	if end > p.latestFinish {
		p.latestFinish = end
	}
}

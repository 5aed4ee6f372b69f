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

// Unreached marks activities that a distance search did not reach.
const Unreached = -1

// CalculateShortestDistances returns the distance of every activity to target,
// following edges in both directions. Unweighted searches count hops. Weighted
// searches add the duration of the activity a step leaves from when moving to
// a successor and the duration of the predecessor when moving backwards.
func (in *Instance) CalculateShortestDistances(target int, weighted bool) []int {
	dist := make([]int, len(in.activities))
	for i := range dist {
		dist[i] = Unreached
	}
	if target < 0 || target >= len(in.activities) {
		return dist
	}

	dist[target] = 0
	queued := make([]bool, len(in.activities))
	queue := []int{target}
	queued[target] = true
	relax := func(v, d int) {
		if dist[v] != Unreached && dist[v] <= d {
			return
		}
		dist[v] = d
		if !queued[v] {
			queued[v] = true
			queue = append(queue, v)
		}
	}

	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		queued[u] = false

		a := in.activities[u]
		for _, s := range a.Successors() {
			step := 1
			if weighted {
				step = a.Duration
			}
			relax(s, dist[u]+step)
		}
		for _, p := range a.Predecessors() {
			step := 1
			if weighted {
				step = in.activities[p].Duration
			}
			relax(p, dist[u]+step)
		}
	}
	return dist
}

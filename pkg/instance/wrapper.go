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

type InstanceWrapper struct{ obj *Instance }

func MakeInstance() *InstanceWrapper {
	return &InstanceWrapper{New("", nil)}
}

func (w *InstanceWrapper) Obj() *Instance {
	return w.obj
}

func (w *InstanceWrapper) Name(name string) *InstanceWrapper {
	w.obj.Name = name
	return w
}

func (w *InstanceWrapper) Capacities(capacities ...int) *InstanceWrapper {
	w.obj.Capacities = append([]int(nil), capacities...)
	return w
}

// Activity appends an activity with the given duration and demand.
func (w *InstanceWrapper) Activity(duration int, demand ...int) *InstanceWrapper {
	w.obj.AddActivity(duration, demand)
	return w
}

// Edges adds u->v for every consecutive pair of ids.
func (w *InstanceWrapper) Edges(pairs ...int) *InstanceWrapper {
	for i := 0; i+1 < len(pairs); i += 2 {
		w.obj.AddPrecedenceConstraint(pairs[i], pairs[i+1])
	}
	return w
}

// Chain adds edges along the given path.
func (w *InstanceWrapper) Chain(ids ...int) *InstanceWrapper {
	for i := 0; i+1 < len(ids); i++ {
		w.obj.AddPrecedenceConstraint(ids[i], ids[i+1])
	}
	return w
}

// EdgeList returns every edge as a (from, to) pair ordered by from then to.
func (in *Instance) EdgeList() [][2]int {
	var ret [][2]int
	for u, a := range in.activities {
		for _, v := range a.Successors() {
			ret = append(ret, [2]int{u, v})
		}
	}
	return ret
}

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
	"sort"
)

type sccImpl struct {
	dfn, low           []int
	id, size           []int
	timestamp, scc_cnt int
}

func newSCC(n int) *sccImpl {
	return &sccImpl{
		dfn:  make([]int, n),
		low:  make([]int, n),
		id:   make([]int, n),
		size: make([]int, n),
	}
}

func (scc *sccImpl) String() string {
	var nodes string
	for i := 0; i < len(scc.dfn); i++ {
		nodes += fmt.Sprintf("{idx:%v,id:%v},", i, scc.id[i])
	}
	return fmt.Sprintf("[%v,count:%v]", nodes, scc.scc_cnt)
}

type tarjanFrame struct {
	u    int
	succ []int
	next int
}

// sccTarjan labels the strongly connected components of the precedence graph.
// The walk keeps its own stack of frames instead of recursing.
func sccTarjan(in *Instance) *sccImpl {
	n := len(in.activities)
	scc := newSCC(n)

	stk := make([]int, 0, n)
	in_stk := make([]bool, n)

	for root := 0; root < n; root++ {
		if scc.dfn[root] != 0 {
			continue
		}
		scc.timestamp++
		scc.dfn[root], scc.low[root] = scc.timestamp, scc.timestamp
		stk, in_stk[root] = append(stk, root), true
		frames := []tarjanFrame{{u: root, succ: in.activities[root].Successors()}}

		for len(frames) > 0 {
			f := &frames[len(frames)-1]
			u := f.u
			if f.next < len(f.succ) {
				j := f.succ[f.next]
				f.next++
				if scc.dfn[j] == 0 {
					scc.timestamp++
					scc.dfn[j], scc.low[j] = scc.timestamp, scc.timestamp
					stk, in_stk[j] = append(stk, j), true
					frames = append(frames, tarjanFrame{u: j, succ: in.activities[j].Successors()})
				} else if in_stk[j] && scc.dfn[j] < scc.low[u] {
					scc.low[u] = scc.dfn[j]
				}
				continue
			}

			if scc.dfn[u] == scc.low[u] {
				for {
					y := stk[len(stk)-1]
					stk = stk[:len(stk)-1]
					in_stk[y] = false
					scc.id[y] = scc.scc_cnt
					scc.size[scc.scc_cnt]++
					if y == u {
						break
					}
				}
				scc.scc_cnt++
			}
			frames = frames[:len(frames)-1]
			if len(frames) > 0 {
				parent := frames[len(frames)-1].u
				if scc.low[u] < scc.low[parent] {
					scc.low[parent] = scc.low[u]
				}
			}
		}
	}
	return scc
}

// FindCycle returns the activities of one cycle component in ascending order,
// or nil if the precedence graph is acyclic.
func (in *Instance) FindCycle() []int {
	scc := sccTarjan(in)
	for c := 0; c < scc.scc_cnt; c++ {
		var members []int
		for v := range in.activities {
			if scc.id[v] == c {
				members = append(members, v)
			}
		}
		if len(members) > 1 || in.activities[members[0]].successors.Has(members[0]) {
			sort.Ints(members)
			return members
		}
	}
	return nil
}

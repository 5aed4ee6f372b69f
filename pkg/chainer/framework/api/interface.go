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

package api

import (
	"cmp"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/dwilmer/rcpsp-testing-framework/pkg/instance"
)

// NoActivity marks an empty chain or an unset predecessor.
const NoActivity = -1

// ChainSet is a set of chain indexes of one resource.
type ChainSet = sets.Set[int]

// ChainContext is the state a filter sees while one unit of the current
// activity's demand is being assigned to a chain.
type ChainContext struct {
	// Activity is the activity being assigned.
	Activity int
	// Time is the start time of Activity in Solution.
	Time int
	// Resource is the resource whose chains are considered.
	Resource int
	// Required is the demand of Activity for Resource.
	Required int
	// Assigned counts the units of Required already assigned.
	Assigned int
	// LastPredecessor is the last activity of the chain chosen for the previous
	// unit of Activity, or NoActivity.
	LastPredecessor int

	// LastActs and LastTimes are indexed by chain.
	LastActs  []int
	LastTimes []int

	// POS is the partial order schedule being built.
	POS      *instance.Instance
	Solution *instance.Solution
}

// Remaining returns the number of units still to be assigned, including the current one.
func (c *ChainContext) Remaining() int {
	return c.Required - c.Assigned
}

// ChainFilterPlugin narrows a set of candidate chains.
type ChainFilterPlugin interface {
	// return name of filter plugin
	Name() string
	// return the chains from chains that pass the filter
	Filter(ctx *ChainContext, chains ChainSet) (ChainSet, error)
}

// KeepMin returns the members of chains with the lowest score.
func KeepMin[S cmp.Ordered](chains ChainSet, score func(chain int) S) ChainSet {
	return keepBest(chains, score, func(a, b S) bool { return a < b })
}

// KeepMax returns the members of chains with the highest score.
func KeepMax[S cmp.Ordered](chains ChainSet, score func(chain int) S) ChainSet {
	return keepBest(chains, score, func(a, b S) bool { return a > b })
}

func keepBest[S cmp.Ordered](chains ChainSet, score func(int) S, better func(a, b S) bool) ChainSet {
	ret := sets.New[int]()
	var best S
	for c := range chains {
		s := score(c)
		switch {
		case ret.Len() == 0 || better(s, best):
			ret = sets.New(c)
			best = s
		case s == best:
			ret.Insert(c)
		}
	}
	return ret
}

// KeepIf returns the members of chains for which keep holds.
func KeepIf(chains ChainSet, keep func(chain int) bool) ChainSet {
	ret := sets.New[int]()
	for c := range chains {
		if keep(c) {
			ret.Insert(c)
		}
	}
	return ret
}

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

package transitive

import (
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/dwilmer/rcpsp-testing-framework/pkg/chainer/framework/api"
)

const (
	MinAddedSuccessorsName           = "MinAddedSuccessors"
	MinAddedPredecessorsName         = "MinAddedPredecessors"
	MinAddedPredecessorsPairwiseName = "MinAddedPredecessorsPairwise"
)

// MinAddedSuccessors keeps the chains whose last activity gains the fewest
// new transitive successors from the edge to the current activity.
type MinAddedSuccessors struct{}

// MinAddedPredecessors keeps the chains whose last activity and its
// transitive predecessors add the fewest new predecessors to the current
// activity.
type MinAddedPredecessors struct{}

// MinAddedPredecessorsPairwise scores every chain with the number of new
// predecessor/successor pairs the edge creates, divided by the number of
// candidate chains ending in the same activity, and keeps the lowest.
type MinAddedPredecessorsPairwise struct{}

var (
	_ api.ChainFilterPlugin = &MinAddedSuccessors{}
	_ api.ChainFilterPlugin = &MinAddedPredecessors{}
	_ api.ChainFilterPlugin = &MinAddedPredecessorsPairwise{}
)

func NewMinAddedSuccessors() (api.ChainFilterPlugin, error) {
	return &MinAddedSuccessors{}, nil
}

func NewMinAddedPredecessors() (api.ChainFilterPlugin, error) {
	return &MinAddedPredecessors{}, nil
}

func NewMinAddedPredecessorsPairwise() (api.ChainFilterPlugin, error) {
	return &MinAddedPredecessorsPairwise{}, nil
}

func (pl *MinAddedSuccessors) Name() string {
	return MinAddedSuccessorsName
}

func (pl *MinAddedSuccessors) Filter(ctx *api.ChainContext, chains api.ChainSet) (api.ChainSet, error) {
	added, err := addedSuccessors(ctx, chains)
	if err != nil {
		return nil, err
	}
	return api.KeepMin(chains, func(c int) int { return added[ctx.LastActs[c]] }), nil
}

func (pl *MinAddedPredecessors) Name() string {
	return MinAddedPredecessorsName
}

func (pl *MinAddedPredecessors) Filter(ctx *api.ChainContext, chains api.ChainSet) (api.ChainSet, error) {
	added, err := addedPredecessors(ctx, chains)
	if err != nil {
		return nil, err
	}
	return api.KeepMin(chains, func(c int) int { return added[ctx.LastActs[c]] }), nil
}

func (pl *MinAddedPredecessorsPairwise) Name() string {
	return MinAddedPredecessorsPairwiseName
}

func (pl *MinAddedPredecessorsPairwise) Filter(ctx *api.ChainContext, chains api.ChainSet) (api.ChainSet, error) {
	preds, err := addedPredecessors(ctx, chains)
	if err != nil {
		return nil, err
	}
	succs, err := addedSuccessors(ctx, chains)
	if err != nil {
		return nil, err
	}
	multiplicity := map[int]int{}
	for c := range chains {
		multiplicity[ctx.LastActs[c]]++
	}
	return api.KeepMin(chains, func(c int) float64 {
		last := ctx.LastActs[c]
		// The edge also makes the current activity a new successor of every new predecessor.
		pairs := preds[last] * (succs[last] + 1)
		if last == api.NoActivity {
			pairs = 0
		}
		return float64(pairs) / float64(multiplicity[last])
	}), nil
}

// addedSuccessors maps every last activity of chains to the number of
// transitive successors of the current activity it does not have yet.
func addedSuccessors(ctx *api.ChainContext, chains api.ChainSet) (map[int]int, error) {
	succ, err := ctx.POS.AllSuccessors(ctx.Activity)
	if err != nil {
		return nil, err
	}
	added := map[int]int{api.NoActivity: 0}
	for c := range chains {
		last := ctx.LastActs[c]
		if _, ok := added[last]; ok {
			continue
		}
		lastSucc, err := ctx.POS.AllSuccessors(last)
		if err != nil {
			return nil, err
		}
		added[last] = succ.Difference(lastSucc).Len()
	}
	return added, nil
}

// addedPredecessors maps every last activity of chains to the number of
// activities in it and its transitive predecessors that do not precede the
// current activity yet.
func addedPredecessors(ctx *api.ChainContext, chains api.ChainSet) (map[int]int, error) {
	pred, err := ctx.POS.AllPredecessors(ctx.Activity)
	if err != nil {
		return nil, err
	}
	added := map[int]int{api.NoActivity: 0}
	for c := range chains {
		last := ctx.LastActs[c]
		if _, ok := added[last]; ok {
			continue
		}
		lastPred, err := ctx.POS.AllPredecessors(last)
		if err != nil {
			return nil, err
		}
		candidates := sets.New(last).Union(lastPred)
		added[last] = candidates.Difference(pred).Len()
	}
	return added, nil
}

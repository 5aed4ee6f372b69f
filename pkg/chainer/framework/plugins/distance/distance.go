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

package distance

import (
	"math"

	"github.com/dwilmer/rcpsp-testing-framework/pkg/chainer/framework/api"
	"github.com/dwilmer/rcpsp-testing-framework/pkg/instance"
)

const (
	Name         = "MinDistance"
	WeightedName = "MinWeightedDistance"
)

// MinDistance keeps the chains whose last activity is closest to the current
// activity in the POS, ignoring edge direction. Empty chains and unreachable
// activities rank last.
type MinDistance struct {
	weighted bool
}

var _ api.ChainFilterPlugin = &MinDistance{}

func New() (api.ChainFilterPlugin, error) {
	return &MinDistance{}, nil
}

// NewWeighted measures distance in summed durations instead of hops.
func NewWeighted() (api.ChainFilterPlugin, error) {
	return &MinDistance{weighted: true}, nil
}

func (pl *MinDistance) Name() string {
	if pl.weighted {
		return WeightedName
	}
	return Name
}

func (pl *MinDistance) Filter(ctx *api.ChainContext, chains api.ChainSet) (api.ChainSet, error) {
	dist := ctx.POS.CalculateShortestDistances(ctx.Activity, pl.weighted)
	return api.KeepMin(chains, func(c int) int {
		last := ctx.LastActs[c]
		if last == api.NoActivity || dist[last] == instance.Unreached {
			return math.MaxInt
		}
		return dist[last]
	}), nil
}

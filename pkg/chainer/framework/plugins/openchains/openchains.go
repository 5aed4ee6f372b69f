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

package openchains

import (
	"github.com/dwilmer/rcpsp-testing-framework/pkg/chainer/framework/api"
)

const (
	MinChainsName        = "MinChains"
	MaxChainsName        = "MaxChains"
	SufficientChainsName = "SufficientChains"
)

// The open chains of an activity are the candidate chains it is the last
// activity of. Empty chains count as open chains of NoActivity.

// MinChains keeps the chains whose last activity has the fewest open chains.
type MinChains struct{}

// MaxChains keeps the chains whose last activity has the most open chains.
type MaxChains struct{}

// SufficientChains keeps the chains whose last activity has enough open
// chains to serve the remaining demand of the current activity.
type SufficientChains struct{}

var (
	_ api.ChainFilterPlugin = &MinChains{}
	_ api.ChainFilterPlugin = &MaxChains{}
	_ api.ChainFilterPlugin = &SufficientChains{}
)

func NewMinChains() (api.ChainFilterPlugin, error) {
	return &MinChains{}, nil
}

func NewMaxChains() (api.ChainFilterPlugin, error) {
	return &MaxChains{}, nil
}

func NewSufficientChains() (api.ChainFilterPlugin, error) {
	return &SufficientChains{}, nil
}

func (pl *MinChains) Name() string {
	return MinChainsName
}

func (pl *MinChains) Filter(ctx *api.ChainContext, chains api.ChainSet) (api.ChainSet, error) {
	open := countOpenChains(ctx, chains)
	return api.KeepMin(chains, func(c int) int { return open[ctx.LastActs[c]] }), nil
}

func (pl *MaxChains) Name() string {
	return MaxChainsName
}

func (pl *MaxChains) Filter(ctx *api.ChainContext, chains api.ChainSet) (api.ChainSet, error) {
	open := countOpenChains(ctx, chains)
	return api.KeepMax(chains, func(c int) int { return open[ctx.LastActs[c]] }), nil
}

func (pl *SufficientChains) Name() string {
	return SufficientChainsName
}

func (pl *SufficientChains) Filter(ctx *api.ChainContext, chains api.ChainSet) (api.ChainSet, error) {
	open := countOpenChains(ctx, chains)
	return api.KeepIf(chains, func(c int) bool { return open[ctx.LastActs[c]] >= ctx.Remaining() }), nil
}

func countOpenChains(ctx *api.ChainContext, chains api.ChainSet) map[int]int {
	open := map[int]int{}
	for c := range chains {
		open[ctx.LastActs[c]]++
	}
	return open
}

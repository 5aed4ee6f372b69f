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

package precedence

import (
	"github.com/dwilmer/rcpsp-testing-framework/pkg/chainer/framework/api"
)

const (
	NonDecreasedSlackName = "NonDecreasedSlack"
)

// NonDecreasedSlack keeps the chains whose last activity already has a
// successor starting no later than the current time. Adding the current
// activity as a successor then leaves the slack of that activity unchanged.
type NonDecreasedSlack struct{}

var _ api.ChainFilterPlugin = &NonDecreasedSlack{}

func NewNonDecreasedSlack() (api.ChainFilterPlugin, error) {
	return &NonDecreasedSlack{}, nil
}

func (pl *NonDecreasedSlack) Name() string {
	return NonDecreasedSlackName
}

func (pl *NonDecreasedSlack) Filter(ctx *api.ChainContext, chains api.ChainSet) (api.ChainSet, error) {
	// Chains sharing a last activity share the answer.
	earliest := map[int]int{}
	for c := range chains {
		last := ctx.LastActs[c]
		if last == api.NoActivity {
			continue
		}
		if _, ok := earliest[last]; ok {
			continue
		}
		succ := ctx.POS.Activity(last).Successors()
		if len(succ) == 0 {
			continue
		}
		first := ctx.Solution.StartTimes[succ[0]]
		for _, s := range succ[1:] {
			if st := ctx.Solution.StartTimes[s]; st < first {
				first = st
			}
		}
		earliest[last] = first
	}

	return api.KeepIf(chains, func(c int) bool {
		start, ok := earliest[ctx.LastActs[c]]
		return ok && start <= ctx.Time
	}), nil
}

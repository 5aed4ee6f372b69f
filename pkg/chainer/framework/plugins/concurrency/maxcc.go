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

package concurrency

import (
	"github.com/dwilmer/rcpsp-testing-framework/pkg/chainer/framework/api"
)

const (
	Name = "MaxConcurrency"
)

// MaxConcurrency keeps the chains ending in the same activity as the chain
// picked for the previous unit, so all units of an activity share one
// predecessor where possible. For the first unit it prefers empty chains.
type MaxConcurrency struct{}

var _ api.ChainFilterPlugin = &MaxConcurrency{}

func New() (api.ChainFilterPlugin, error) {
	return &MaxConcurrency{}, nil
}

func (pl *MaxConcurrency) Name() string {
	return Name
}

func (pl *MaxConcurrency) Filter(ctx *api.ChainContext, chains api.ChainSet) (api.ChainSet, error) {
	return api.KeepIf(chains, func(c int) bool {
		return ctx.LastActs[c] == ctx.LastPredecessor
	}), nil
}

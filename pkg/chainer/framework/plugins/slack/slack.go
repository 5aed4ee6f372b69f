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

package slack

import (
	"github.com/dwilmer/rcpsp-testing-framework/pkg/chainer/framework/api"
)

const (
	MaxSlackName = "MaxSlack"
	MinSlackName = "MinSlack"
)

// MaxSlack keeps the chains that became free earliest.
type MaxSlack struct{}

// MinSlack keeps the chains that became free latest.
type MinSlack struct{}

var (
	_ api.ChainFilterPlugin = &MaxSlack{}
	_ api.ChainFilterPlugin = &MinSlack{}
)

func NewMaxSlack() (api.ChainFilterPlugin, error) {
	return &MaxSlack{}, nil
}

func NewMinSlack() (api.ChainFilterPlugin, error) {
	return &MinSlack{}, nil
}

func (pl *MaxSlack) Name() string {
	return MaxSlackName
}

func (pl *MaxSlack) Filter(ctx *api.ChainContext, chains api.ChainSet) (api.ChainSet, error) {
	return api.KeepMin(chains, func(c int) int { return ctx.LastTimes[c] }), nil
}

func (pl *MinSlack) Name() string {
	return MinSlackName
}

func (pl *MinSlack) Filter(ctx *api.ChainContext, chains api.ChainSet) (api.ChainSet, error) {
	return api.KeepMax(chains, func(c int) int { return ctx.LastTimes[c] }), nil
}

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

package availability

import (
	"github.com/dwilmer/rcpsp-testing-framework/pkg/chainer/framework/api"
)

const (
	Name = "ByAvailability"
)

// ByAvailability keeps the chains that are free at the current time and do
// not already hold a unit of the current activity.
type ByAvailability struct{}

var _ api.ChainFilterPlugin = &ByAvailability{}

func New() (api.ChainFilterPlugin, error) {
	return &ByAvailability{}, nil
}

func (pl *ByAvailability) Name() string {
	return Name
}

func (pl *ByAvailability) Filter(ctx *api.ChainContext, chains api.ChainSet) (api.ChainSet, error) {
	return api.KeepIf(chains, func(c int) bool {
		return ctx.LastTimes[c] <= ctx.Time && ctx.LastActs[c] != ctx.Activity
	}), nil
}

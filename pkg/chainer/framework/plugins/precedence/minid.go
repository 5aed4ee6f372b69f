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
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/dwilmer/rcpsp-testing-framework/pkg/chainer/framework/api"
)

const (
	MinIDName = "MinID"
)

// MinID keeps the chains whose last activity already precedes the current
// activity in the POS, so taking them adds no new ordering.
type MinID struct{}

var _ api.ChainFilterPlugin = &MinID{}

func NewMinID() (api.ChainFilterPlugin, error) {
	return &MinID{}, nil
}

func (pl *MinID) Name() string {
	return MinIDName
}

func (pl *MinID) Filter(ctx *api.ChainContext, chains api.ChainSet) (api.ChainSet, error) {
	preds, err := ctx.POS.AllPredecessors(ctx.Activity)
	if err != nil {
		return nil, err
	}
	ret := sets.New[int]()
	for c := range chains {
		if last := ctx.LastActs[c]; last != api.NoActivity && preds.Has(last) {
			ret.Insert(c)
		}
	}
	return ret, nil
}

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

package registry

import (
	"fmt"

	"github.com/dwilmer/rcpsp-testing-framework/pkg/chainer/framework/api"
	"github.com/dwilmer/rcpsp-testing-framework/pkg/chainer/framework/plugins/availability"
	"github.com/dwilmer/rcpsp-testing-framework/pkg/chainer/framework/plugins/concurrency"
	"github.com/dwilmer/rcpsp-testing-framework/pkg/chainer/framework/plugins/distance"
	"github.com/dwilmer/rcpsp-testing-framework/pkg/chainer/framework/plugins/openchains"
	"github.com/dwilmer/rcpsp-testing-framework/pkg/chainer/framework/plugins/precedence"
	"github.com/dwilmer/rcpsp-testing-framework/pkg/chainer/framework/plugins/slack"
	"github.com/dwilmer/rcpsp-testing-framework/pkg/chainer/framework/plugins/transitive"
)

// PluginFactory is a function that builds a filter plugin.
type PluginFactory = func() (api.ChainFilterPlugin, error)

// Registry is a collection of all available filter plugins. Filter trees
// refer to base filters by their registry name.
type Registry map[string]PluginFactory

// NewInTreeRegistry builds the registry with all the in-tree filters.
func NewInTreeRegistry() Registry {
	return Registry{
		availability.Name:                           availability.New,
		concurrency.Name:                            concurrency.New,
		precedence.MinIDName:                        precedence.NewMinID,
		precedence.NonDecreasedSlackName:            precedence.NewNonDecreasedSlack,
		slack.MaxSlackName:                          slack.NewMaxSlack,
		slack.MinSlackName:                          slack.NewMinSlack,
		distance.Name:                               distance.New,
		distance.WeightedName:                       distance.NewWeighted,
		transitive.MinAddedSuccessorsName:           transitive.NewMinAddedSuccessors,
		transitive.MinAddedPredecessorsName:         transitive.NewMinAddedPredecessors,
		transitive.MinAddedPredecessorsPairwiseName: transitive.NewMinAddedPredecessorsPairwise,
		openchains.MinChainsName:                    openchains.NewMinChains,
		openchains.MaxChainsName:                    openchains.NewMaxChains,
		openchains.SufficientChainsName:             openchains.NewSufficientChains,
	}
}

// Merge adds the plugins of the given registry. Duplicate names are rejected.
func (r Registry) Merge(in Registry) error {
	for name, factory := range in {
		if _, ok := r[name]; ok {
			return fmt.Errorf("a filter plugin named %v already exists", name)
		}
		r[name] = factory
	}
	return nil
}

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

package strategy

import (
	"strings"

	"k8s.io/klog/v2"

	"github.com/dwilmer/rcpsp-testing-framework/pkg/chainer/framework/plugins/availability"
	"github.com/dwilmer/rcpsp-testing-framework/pkg/chainer/framework/plugins/concurrency"
	"github.com/dwilmer/rcpsp-testing-framework/pkg/chainer/framework/plugins/openchains"
	"github.com/dwilmer/rcpsp-testing-framework/pkg/chainer/framework/plugins/precedence"
	"github.com/dwilmer/rcpsp-testing-framework/pkg/chainer/framework/plugins/slack"
	"github.com/dwilmer/rcpsp-testing-framework/pkg/chainer/framework/plugins/transitive"
	"github.com/dwilmer/rcpsp-testing-framework/pkg/chainer/framework/runtime"
)

// Named binds a strategy name to its filter tree.
type Named struct {
	Name   string
	Filter runtime.Filter
}

var (
	maxCC                = runtime.Base{Name: concurrency.Name}
	minID                = runtime.Base{Name: precedence.MinIDName}
	nonDecreasedSlack    = runtime.Base{Name: precedence.NonDecreasedSlackName}
	minSlack             = runtime.Base{Name: slack.MinSlackName}
	maxSlack             = runtime.Base{Name: slack.MaxSlackName}
	minChains            = runtime.Base{Name: openchains.MinChainsName}
	maxChains            = runtime.Base{Name: openchains.MaxChainsName}
	sufficientChains     = runtime.Base{Name: openchains.SufficientChainsName}
	minAddedSuccessors   = runtime.Base{Name: transitive.MinAddedSuccessorsName}
	minAddedPredecessors = runtime.Base{Name: transitive.MinAddedPredecessorsName}
	minAddedPairwise     = runtime.Base{Name: transitive.MinAddedPredecessorsPairwiseName}
)

// Tags are matched against the table in order, so a name that is a prefix
// of another one has to come after it.
var table = []Named{
	{"special", runtime.First(maxCC, runtime.Seq(minID, minSlack), runtime.Seq(nonDecreasedSlack, minSlack), maxSlack)},
	{"maxCC", maxCC},
	{"minIDminSlack", runtime.Seq(minID, minSlack)},
	{"minIDminChains", runtime.Seq(minID, minChains)},
	{"maxChains", maxChains},
	{"minID", minID},
	{"maxSlack", maxSlack},
	{"minAddedPredecessors2", minAddedPairwise},
	{"minAddedPredecessors", minAddedPredecessors},
	{"flexopt_heuristic", runtime.First(maxCC, runtime.Seq(minID, minAddedSuccessors), runtime.Seq(sufficientChains, minChains, minAddedSuccessors), runtime.Seq(maxChains, minAddedSuccessors))},
	{"flexopt_transitive2", runtime.First(maxCC, runtime.Seq(minID, minAddedSuccessors), runtime.Seq(minAddedPairwise, minAddedSuccessors))},
	{"flexopt_transitive", runtime.First(maxCC, runtime.Seq(minID, minAddedSuccessors), runtime.Seq(minAddedPredecessors, minAddedSuccessors))},
}

// Table returns the in-tree strategies in matching order.
func Table() []Named {
	ret := make([]Named, len(table))
	copy(ret, table)
	return ret
}

// Names returns the names of the in-tree strategies.
func Names() []string {
	names := make([]string, 0, len(table))
	for _, n := range table {
		names = append(names, n.Name)
	}
	return names
}

// Resolve turns a strategy tag into the full chain filter. The tag is
// consumed by repeatedly taking the first strategy whose name prefixes the
// rest of it, extra strategies first. The matches are tried in a fallback
// after ByAvailability. Parsing stops at the first remainder no strategy
// prefixes; the remainder is logged and ignored. A tag without any match
// selects among all available chains.
func Resolve(tag string, extra ...Named) runtime.Filter {
	candidates := append(append([]Named{}, extra...), table...)
	var matches []runtime.Filter
	rest := tag
	for len(rest) > 0 {
		found := false
		for _, n := range candidates {
			if n.Name != "" && strings.HasPrefix(rest, n.Name) {
				matches = append(matches, n.Filter)
				rest = rest[len(n.Name):]
				found = true
				break
			}
		}
		if !found {
			break
		}
	}
	if len(matches) > 0 && len(rest) > 0 {
		klog.Warningf("strategy %q: ignoring unmatched suffix %q", tag, rest)
	}
	return runtime.Seq(runtime.Base{Name: availability.Name}, runtime.First(matches...))
}

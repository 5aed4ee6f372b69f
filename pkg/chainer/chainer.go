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

package chainer

import (
	"context"
	"sort"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/klog/v2"

	"github.com/dwilmer/rcpsp-testing-framework/pkg/chainer/framework/api"
	"github.com/dwilmer/rcpsp-testing-framework/pkg/chainer/framework/runtime"
	"github.com/dwilmer/rcpsp-testing-framework/pkg/chainer/framework/runtime/registry"
	"github.com/dwilmer/rcpsp-testing-framework/pkg/chainer/strategy"
	"github.com/dwilmer/rcpsp-testing-framework/pkg/instance"
	"github.com/dwilmer/rcpsp-testing-framework/pkg/metrics"
)

// Builder turns a schedule into a partial order schedule.
type Builder interface {
	Build(ctx context.Context, in *instance.Instance, sol *instance.Solution) (*instance.Instance, error)
}

// Engine builds a POS by assigning every unit of every activity's demand to
// a chain of its resource and ordering each activity after the previous
// activity of its chains.
type Engine struct {
	name       string
	evaluator  *runtime.Evaluator
	tieBreaker TieBreaker
}

var _ Builder = &Engine{}

type engineOptions struct {
	name       string
	filter     runtime.Filter
	tieBreaker TieBreaker
	registry   registry.Registry
}

// Option configures an Engine.
type Option func(*engineOptions)

// WithStrategy sets the chain filter. name labels the engine in logs and metrics.
func WithStrategy(name string, filter runtime.Filter) Option {
	return func(o *engineOptions) {
		o.name = name
		o.filter = filter
	}
}

// WithTieBreaker sets the policy choosing among the chains left by the filter.
func WithTieBreaker(tb TieBreaker) Option {
	return func(o *engineOptions) {
		o.tieBreaker = tb
	}
}

// WithRegistry sets the registry the filter's base filters are looked up in.
func WithRegistry(reg registry.Registry) Option {
	return func(o *engineOptions) {
		o.registry = reg
	}
}

func defaultEngineOptions() engineOptions {
	filter := strategy.Resolve("")
	return engineOptions{
		name:       "random",
		filter:     filter,
		tieBreaker: NewRandomTieBreaker(0),
		registry:   registry.NewInTreeRegistry(),
	}
}

func renderOptions(opts ...Option) engineOptions {
	o := defaultEngineOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New returns an engine for the configured strategy.
func New(opts ...Option) (*Engine, error) {
	o := renderOptions(opts...)
	evaluator, err := runtime.NewEvaluator(o.registry, o.filter)
	if err != nil {
		return nil, errors.Wrapf(err, "strategy %s", o.name)
	}
	return &Engine{
		name:       o.name,
		evaluator:  evaluator,
		tieBreaker: o.tieBreaker,
	}, nil
}

// Build returns a clone of in extended with the chaining constraints derived
// from sol. sol must be a complete and feasible schedule of in.
func (e *Engine) Build(ctx context.Context, in *instance.Instance, sol *instance.Solution) (*instance.Instance, error) {
	schedule := &instance.Solution{Instance: in, StartTimes: sol.StartTimes}
	if err := schedule.Validate(); err != nil {
		return nil, errors.Wrapf(err, "chaining %s", in.Name)
	}

	pos := in.Clone()
	order, err := startOrder(schedule)
	if err != nil {
		return nil, err
	}
	for r, capacity := range in.Capacities {
		if err := e.chainResource(ctx, r, capacity, order, pos, schedule); err != nil {
			return nil, err
		}
	}

	added := pos.NumEdges() - in.NumEdges()
	metrics.AddedEdges.WithLabelValues(e.name).Add(float64(added))
	klog.V(3).InfoS("Built partial order schedule", "instance", in.Name, "strategy", e.name, "addedEdges", added)
	return pos, nil
}

func (e *Engine) chainResource(ctx context.Context, r, capacity int, order []int, pos *instance.Instance, sol *instance.Solution) error {
	chains := sets.New[int]()
	lastActs := make([]int, capacity)
	lastTimes := make([]int, capacity)
	for c := 0; c < capacity; c++ {
		chains.Insert(c)
		lastActs[c] = api.NoActivity
	}

	for _, id := range order {
		if err := ctx.Err(); err != nil {
			return err
		}
		act := pos.Activity(id)
		cc := &api.ChainContext{
			Activity:        id,
			Time:            sol.StartTimes[id],
			Resource:        r,
			Required:        act.Demand[r],
			LastPredecessor: api.NoActivity,
			LastActs:        lastActs,
			LastTimes:       lastTimes,
			POS:             pos,
			Solution:        sol,
		}
		for unit := 0; unit < cc.Required; unit++ {
			cc.Assigned = unit
			candidates, err := e.evaluator.Evaluate(cc, chains)
			if err != nil {
				return errors.Wrapf(err, "activity %d resource %d", id, r)
			}
			if candidates.Len() == 0 {
				klog.V(4).InfoS("No chain left for activity", "activity", id, "resource", r, "unit", unit, "context", spew.Sdump(lastActs, lastTimes))
				return errors.Wrapf(ErrNoFeasibleChain, "activity %d at time %d, unit %d of %d for resource %d",
					id, cc.Time, unit+1, cc.Required, r)
			}
			chain := e.tieBreaker.Pick(sets.List(candidates))
			last := lastActs[chain]
			if last != api.NoActivity {
				pos.AddPrecedenceConstraint(last, id)
			}
			cc.LastPredecessor = last
			lastActs[chain] = id
			lastTimes[chain] = cc.Time + act.Duration
		}
	}
	return nil
}

// startOrder sorts the activities by start time, then activity id. At equal
// start times zero duration activities come first, in topological order among
// themselves, so they can take a chain released at that instant and every
// chaining edge points forward.
func startOrder(sol *instance.Solution) ([]int, error) {
	topo, err := sol.Instance.TopologicalOrdering()
	if err != nil {
		return nil, err
	}
	rank := make([]int, len(topo))
	for i, id := range topo {
		rank[id] = i
	}
	order := make([]int, len(topo))
	for id := range order {
		order[id] = id
	}
	durations := sol.Instance.Durations()
	sort.Slice(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if sa, sb := sol.StartTimes[a], sol.StartTimes[b]; sa != sb {
			return sa < sb
		}
		if za, zb := durations[a] == 0, durations[b] == 0; za != zb {
			return za
		}
		if durations[a] == 0 && rank[a] != rank[b] {
			return rank[a] < rank[b]
		}
		return a < b
	})
	return order, nil
}

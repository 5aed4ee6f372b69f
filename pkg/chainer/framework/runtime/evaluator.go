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

package runtime

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/dwilmer/rcpsp-testing-framework/pkg/chainer/framework/api"
	"github.com/dwilmer/rcpsp-testing-framework/pkg/chainer/framework/runtime/registry"
	"github.com/dwilmer/rcpsp-testing-framework/pkg/metrics"
)

// Evaluator interprets one filter tree against candidate chains.
type Evaluator struct {
	root    Filter
	plugins map[string]api.ChainFilterPlugin
}

// NewEvaluator instantiates every plugin the tree refers to.
func NewEvaluator(reg registry.Registry, root Filter) (*Evaluator, error) {
	if root == nil {
		return nil, fmt.Errorf("filter tree is nil")
	}
	e := &Evaluator{
		root:    root,
		plugins: map[string]api.ChainFilterPlugin{},
	}
	for _, name := range BaseNames(root) {
		if _, ok := e.plugins[name]; ok {
			continue
		}
		factory, ok := reg[name]
		if !ok {
			return nil, fmt.Errorf("filter plugin %q is not registered", name)
		}
		pl, err := factory()
		if err != nil {
			return nil, errors.Wrapf(err, "initializing filter plugin %q", name)
		}
		e.plugins[name] = pl
	}
	return e, nil
}

// Root returns the filter tree.
func (e *Evaluator) Root() Filter {
	return e.root
}

// Evaluate applies the filter tree to chains. chains is not modified.
func (e *Evaluator) Evaluate(ctx *api.ChainContext, chains api.ChainSet) (api.ChainSet, error) {
	return e.eval(e.root, ctx, chains)
}

func (e *Evaluator) eval(f Filter, ctx *api.ChainContext, chains api.ChainSet) (api.ChainSet, error) {
	switch t := f.(type) {
	case nil:
		return chains, nil
	case Base:
		pl := e.plugins[t.Name]
		start := time.Now()
		ret, err := pl.Filter(ctx, chains)
		metrics.ChainFilterDuration.WithLabelValues(t.Name).Observe(metrics.SinceInSeconds(start))
		if err != nil {
			return nil, errors.Wrapf(err, "filter %s", t.Name)
		}
		return ret, nil
	case Sequence:
		cur := chains
		for _, c := range t.Children {
			next, err := e.eval(c, ctx, cur)
			if err != nil {
				return nil, err
			}
			if next.Len() == 0 {
				return sets.New[int](), nil
			}
			cur = next
		}
		return cur, nil
	case Fallback:
		for _, c := range t.Children {
			ret, err := e.eval(c, ctx, chains)
			if err != nil {
				return nil, err
			}
			if ret.Len() > 0 {
				return ret, nil
			}
		}
		return chains, nil
	case IfThenElse:
		ret, err := e.eval(t.Test, ctx, chains)
		if err != nil {
			return nil, err
		}
		if ret.Len() > 0 {
			return e.eval(t.Then, ctx, ret)
		}
		return e.eval(t.Else, ctx, chains)
	default:
		return nil, fmt.Errorf("unknown filter node %T", f)
	}
}

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

package config

import (
	"fmt"

	"github.com/dwilmer/rcpsp-testing-framework/pkg/chainer/framework/runtime"
	"github.com/dwilmer/rcpsp-testing-framework/pkg/chainer/strategy"
)

// ToFilter converts s into a filter tree.
func (s *FilterSpec) ToFilter() (runtime.Filter, error) {
	switch {
	case s.Base != "":
		return runtime.Base{Name: s.Base}, nil
	case s.Sequence != nil:
		children, err := toFilters(s.Sequence)
		if err != nil {
			return nil, err
		}
		return runtime.Sequence{Children: children}, nil
	case s.Fallback != nil:
		children, err := toFilters(s.Fallback)
		if err != nil {
			return nil, err
		}
		return runtime.Fallback{Children: children}, nil
	case s.IfThenElse != nil:
		ite := runtime.IfThenElse{}
		var err error
		if ite.Test, err = s.IfThenElse.Test.ToFilter(); err != nil {
			return nil, err
		}
		if s.IfThenElse.Then != nil {
			if ite.Then, err = s.IfThenElse.Then.ToFilter(); err != nil {
				return nil, err
			}
		}
		if s.IfThenElse.Else != nil {
			if ite.Else, err = s.IfThenElse.Else.ToFilter(); err != nil {
				return nil, err
			}
		}
		return ite, nil
	default:
		return nil, fmt.Errorf("empty filter")
	}
}

func toFilters(specs []FilterSpec) ([]runtime.Filter, error) {
	ret := make([]runtime.Filter, 0, len(specs))
	for i := range specs {
		f, err := specs[i].ToFilter()
		if err != nil {
			return nil, err
		}
		ret = append(ret, f)
	}
	return ret, nil
}

// CustomStrategies converts the configured strategies.
func (c *ChainerConfiguration) CustomStrategies() ([]strategy.Named, error) {
	ret := make([]strategy.Named, 0, len(c.Strategies))
	for _, s := range c.Strategies {
		f, err := s.Filter.ToFilter()
		if err != nil {
			return nil, fmt.Errorf("strategy %q: %w", s.Name, err)
		}
		ret = append(ret, strategy.Named{Name: s.Name, Filter: f})
	}
	return ret, nil
}

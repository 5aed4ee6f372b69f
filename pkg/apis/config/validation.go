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
	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/apimachinery/pkg/util/validation/field"

	"github.com/dwilmer/rcpsp-testing-framework/pkg/chainer/framework/runtime/registry"
	"github.com/dwilmer/rcpsp-testing-framework/pkg/solver"
	"github.com/dwilmer/rcpsp-testing-framework/pkg/util/tracing"
)

// ValidatePipelineConfiguration checks a defaulted configuration.
func ValidatePipelineConfiguration(cfg *PipelineConfiguration) field.ErrorList {
	var errs field.ErrorList
	if cfg.APIVersion != APIVersion {
		errs = append(errs, field.NotSupported(field.NewPath("apiVersion"), cfg.APIVersion, []string{APIVersion}))
	}
	if cfg.Kind != Kind {
		errs = append(errs, field.NotSupported(field.NewPath("kind"), cfg.Kind, []string{Kind}))
	}

	if cfg.Solver == nil {
		errs = append(errs, field.Required(field.NewPath("solver"), ""))
	} else if cfg.Solver.Scheme != nil {
		if _, err := solver.ParseScheme(*cfg.Solver.Scheme); err != nil {
			errs = append(errs, field.Invalid(field.NewPath("solver", "scheme"), *cfg.Solver.Scheme, err.Error()))
		}
	}

	if cfg.Chainer == nil {
		errs = append(errs, field.Required(field.NewPath("chainer"), ""))
	} else {
		errs = append(errs, validateChainer(cfg.Chainer, field.NewPath("chainer"))...)
	}

	if cfg.Output != nil && len(*cfg.Output) == 0 {
		errs = append(errs, field.Required(field.NewPath("output"), "output directory must not be empty"))
	}
	if cfg.Parallelism != nil && *cfg.Parallelism < 1 {
		errs = append(errs, field.Invalid(field.NewPath("parallelism"), *cfg.Parallelism, "must be at least 1"))
	}
	if cfg.Tracer != nil {
		if _, err := tracing.ValidateTracerConfig(tracing.TracerConfig(*cfg.Tracer)); err != nil {
			errs = append(errs, field.NotSupported(field.NewPath("tracer"), *cfg.Tracer, []string{string(tracing.NoopConfig)}))
		}
	}
	return errs
}

func validateChainer(c *ChainerConfiguration, path *field.Path) field.ErrorList {
	var errs field.ErrorList
	if c.TieBreak != nil && *c.TieBreak != TieBreakRandom && *c.TieBreak != TieBreakLowest {
		errs = append(errs, field.NotSupported(path.Child("tieBreak"), *c.TieBreak, []string{TieBreakRandom, TieBreakLowest}))
	}

	reg := registry.NewInTreeRegistry()
	names := sets.New[string]()
	for i := range c.Strategies {
		s := &c.Strategies[i]
		p := path.Child("strategies").Index(i)
		if len(s.Name) == 0 {
			errs = append(errs, field.Required(p.Child("name"), ""))
		} else if names.Has(s.Name) {
			errs = append(errs, field.Duplicate(p.Child("name"), s.Name))
		}
		names.Insert(s.Name)
		errs = append(errs, validateFilterSpec(&s.Filter, p.Child("filter"), reg)...)
	}

	if len(errs) == 0 {
		if _, err := c.CustomStrategies(); err != nil {
			errs = append(errs, field.Invalid(path.Child("strategies"), len(c.Strategies), err.Error()))
		}
	}
	return errs
}

func validateFilterSpec(s *FilterSpec, path *field.Path, reg registry.Registry) field.ErrorList {
	var errs field.ErrorList
	set := 0
	if s.Base != "" {
		set++
		if _, ok := reg[s.Base]; !ok {
			errs = append(errs, field.NotSupported(path.Child("base"), s.Base, sets.List(sets.KeySet(reg))))
		}
	}
	if s.Sequence != nil {
		set++
		for i := range s.Sequence {
			errs = append(errs, validateFilterSpec(&s.Sequence[i], path.Child("sequence").Index(i), reg)...)
		}
	}
	if s.Fallback != nil {
		set++
		for i := range s.Fallback {
			errs = append(errs, validateFilterSpec(&s.Fallback[i], path.Child("fallback").Index(i), reg)...)
		}
	}
	if s.IfThenElse != nil {
		set++
		p := path.Child("ifThenElse")
		errs = append(errs, validateFilterSpec(&s.IfThenElse.Test, p.Child("test"), reg)...)
		if s.IfThenElse.Then != nil {
			errs = append(errs, validateFilterSpec(s.IfThenElse.Then, p.Child("then"), reg)...)
		}
		if s.IfThenElse.Else != nil {
			errs = append(errs, validateFilterSpec(s.IfThenElse.Else, p.Child("else"), reg)...)
		}
	}
	if set != 1 {
		errs = append(errs, field.Invalid(path, set, "exactly one of base, sequence, fallback and ifThenElse must be set"))
	}
	return errs
}

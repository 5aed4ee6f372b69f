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
	goruntime "runtime"

	"k8s.io/utils/ptr"

	"github.com/dwilmer/rcpsp-testing-framework/pkg/util/tracing"
)

const (
	DefaultScheme   = "serial"
	DefaultStrategy = "random"
	DefaultOutput   = "out"

	TieBreakRandom = "random"
	TieBreakLowest = "lowest"
)

// SetDefaults_PipelineConfiguration sets additional defaults
func SetDefaults_PipelineConfiguration(obj *PipelineConfiguration) {
	if len(obj.APIVersion) == 0 {
		obj.APIVersion = APIVersion
	}
	if len(obj.Kind) == 0 {
		obj.Kind = Kind
	}

	if obj.Solver == nil {
		obj.Solver = &SolverConfiguration{}
	}
	if obj.Solver.Scheme == nil {
		obj.Solver.Scheme = ptr.To(DefaultScheme)
	}
	if obj.Solver.CheckResources == nil {
		obj.Solver.CheckResources = ptr.To(true)
	}

	if obj.Chainer == nil {
		obj.Chainer = &ChainerConfiguration{}
	}
	if obj.Chainer.Strategy == nil {
		obj.Chainer.Strategy = ptr.To(DefaultStrategy)
	}
	if obj.Chainer.TieBreak == nil {
		obj.Chainer.TieBreak = ptr.To(TieBreakRandom)
	}
	if obj.Chainer.Seed == nil {
		obj.Chainer.Seed = ptr.To[int64](0)
	}

	if obj.Output == nil {
		obj.Output = ptr.To(DefaultOutput)
	}
	if obj.Parallelism == nil {
		obj.Parallelism = ptr.To(goruntime.NumCPU())
	}
	if obj.Force == nil {
		obj.Force = ptr.To(false)
	}
	if obj.Native == nil {
		obj.Native = ptr.To(false)
	}
	if obj.Tracer == nil {
		obj.Tracer = ptr.To(string(tracing.NoopConfig))
	}
}

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

package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/dwilmer/rcpsp-testing-framework/pkg/apis/config"
	"github.com/dwilmer/rcpsp-testing-framework/pkg/chainer"
	"github.com/dwilmer/rcpsp-testing-framework/pkg/chainer/strategy"
	"github.com/dwilmer/rcpsp-testing-framework/pkg/format"
	"github.com/dwilmer/rcpsp-testing-framework/pkg/instance"
	"github.com/dwilmer/rcpsp-testing-framework/pkg/metrics"
	"github.com/dwilmer/rcpsp-testing-framework/pkg/solver"
	"github.com/dwilmer/rcpsp-testing-framework/pkg/util/tracing"
)

const (
	solutionDir = "solution"
	posDir      = "pos"
)

// Summary describes the outcome of one instance.
type Summary struct {
	Instance   string
	Scheme     solver.Scheme
	Strategy   string
	Activities int
	Makespan   int
	// Flex of the instance and of the POS built for it.
	InstanceFlex float64
	POSFlex      float64
	AddedEdges   int
	// The stages read back from disk instead of computed.
	SolutionCached bool
	POSCached      bool
}

// Pipeline solves instances and builds a POS for each of them, storing both
// under an output directory.
type Pipeline struct {
	scheme      solver.Scheme
	solverOpts  []solver.Option
	strategyTag string
	builder     chainer.Builder
	output      string
	force       bool
	native      bool
}

// New builds a pipeline from a defaulted and validated configuration.
func New(cfg *config.PipelineConfiguration) (*Pipeline, error) {
	scheme, err := solver.ParseScheme(*cfg.Solver.Scheme)
	if err != nil {
		return nil, err
	}
	extra, err := cfg.Chainer.CustomStrategies()
	if err != nil {
		return nil, err
	}
	filter := strategy.Resolve(*cfg.Chainer.Strategy, extra...)
	var tb chainer.TieBreaker = chainer.LowestID{}
	if *cfg.Chainer.TieBreak == config.TieBreakRandom {
		tb = chainer.NewRandomTieBreaker(*cfg.Chainer.Seed)
	}
	engine, err := chainer.New(
		chainer.WithStrategy(*cfg.Chainer.Strategy, filter),
		chainer.WithTieBreaker(tb),
	)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		scheme:      scheme,
		solverOpts:  []solver.Option{solver.WithScheme(scheme), solver.WithResourceCheck(*cfg.Solver.CheckResources)},
		strategyTag: *cfg.Chainer.Strategy,
		builder:     engine,
		output:      *cfg.Output,
		force:       *cfg.Force,
		native:      *cfg.Native,
	}, nil
}

// SolutionPath is where the schedule of the instance stored in file goes.
func (p *Pipeline) SolutionPath(file string) string {
	return filepath.Join(p.output, solutionDir, baseName(file)+".sol_"+string(p.scheme))
}

// POSPath is where the POS of the instance stored in file goes.
func (p *Pipeline) POSPath(file string) string {
	return filepath.Join(p.output, posDir, baseName(file)+".sol_"+string(p.scheme)+".chain_"+p.strategyTag)
}

func baseName(file string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Run processes the instance stored in file.
func (p *Pipeline) Run(ctx context.Context, file string) (*Summary, error) {
	in, err := p.readInstance(file)
	if err != nil {
		return nil, err
	}
	summary := &Summary{
		Instance:   in.Name,
		Scheme:     p.scheme,
		Strategy:   p.strategyTag,
		Activities: in.NumActivities(),
	}

	span, spanCtx, rootCtx := tracing.StartSpanForInstance(ctx, in.Name, "solve", "")
	span.SetTag(tracing.MethodTag, string(p.scheme))
	sol, cached, err := p.solve(in, p.SolutionPath(file))
	finishStage(span, metrics.SolveStage, cached, err)
	if err != nil {
		return nil, errors.Wrapf(err, "solving %s", file)
	}
	summary.Makespan = sol.Makespan()
	summary.SolutionCached = cached

	span, spanCtx, _ = tracing.StartSpanForInstance(spanCtx, in.Name, "chain", rootCtx)
	span.SetTag(tracing.MethodTag, p.strategyTag)
	pos, cached, err := p.chain(spanCtx, in, sol, p.POSPath(file))
	finishStage(span, metrics.ChainStage, cached, err)
	if err != nil {
		return nil, errors.Wrapf(err, "chaining %s", file)
	}
	summary.POSCached = cached
	summary.AddedEdges = pos.NumEdges() - in.NumEdges()

	if summary.InstanceFlex, err = in.CalculateFlex(); err != nil {
		return nil, err
	}
	if summary.POSFlex, err = pos.CalculateFlex(); err != nil {
		return nil, err
	}
	klog.InfoS("Processed instance", "instance", in.Name, "makespan", summary.Makespan,
		"addedEdges", summary.AddedEdges, "flex", summary.POSFlex)
	return summary, nil
}

func finishStage(span opentracing.Span, stage string, cached bool, err error) {
	result := metrics.SuccessResult
	switch {
	case err != nil:
		result = metrics.FailureResult
	case cached:
		result = metrics.CachedResult
	}
	metrics.PipelineResults.WithLabelValues(stage, result).Inc()
	span.Finish()
}

func (p *Pipeline) readInstance(file string) (*instance.Instance, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if p.native {
		return format.ReadInstance(f, baseName(file))
	}
	return format.ReadPSPLIB(f, baseName(file))
}

func (p *Pipeline) solve(in *instance.Instance, path string) (*instance.Solution, bool, error) {
	if !p.force {
		sol, err := readFile(path, func(r io.Reader) (*instance.Solution, error) { return format.ReadSolution(r, in) })
		if err == nil {
			klog.V(4).InfoS("Using stored solution", "instance", in.Name, "path", path)
			return sol, true, nil
		}
		if !os.IsNotExist(errors.Cause(err)) {
			return nil, false, err
		}
	}

	start := time.Now()
	sol, err := solver.Solve(in, p.solverOpts...)
	metrics.PipelineStageDuration.WithLabelValues(metrics.SolveStage, string(p.scheme)).Observe(metrics.SinceInSeconds(start))
	if err != nil {
		return nil, false, err
	}
	if err := writeFile(path, func(w io.Writer) error { return format.WriteSolution(w, sol) }); err != nil {
		return nil, false, err
	}
	return sol, false, nil
}

func (p *Pipeline) chain(ctx context.Context, in *instance.Instance, sol *instance.Solution, path string) (*instance.Instance, bool, error) {
	if !p.force {
		pos, err := readFile(path, func(r io.Reader) (*instance.Instance, error) { return format.ReadInstance(r, in.Name) })
		if err == nil {
			klog.V(4).InfoS("Using stored POS", "instance", in.Name, "path", path)
			return pos, true, nil
		}
		if !os.IsNotExist(errors.Cause(err)) {
			return nil, false, err
		}
	}

	start := time.Now()
	pos, err := p.builder.Build(ctx, in, sol)
	metrics.PipelineStageDuration.WithLabelValues(metrics.ChainStage, p.strategyTag).Observe(metrics.SinceInSeconds(start))
	if err != nil {
		return nil, false, err
	}
	if err := writeFile(path, func(w io.Writer) error { return format.WriteInstance(w, pos) }); err != nil {
		return nil, false, err
	}
	return pos, false, nil
}

func readFile[T any](path string, read func(io.Reader) (T, error)) (T, error) {
	f, err := os.Open(path)
	if err != nil {
		var zero T
		return zero, err
	}
	defer f.Close()
	return read(f)
}

func writeFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing %s", path)
	}
	return f.Close()
}

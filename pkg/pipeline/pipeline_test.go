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
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"k8s.io/utils/ptr"

	"github.com/dwilmer/rcpsp-testing-framework/pkg/apis/config"
	"github.com/dwilmer/rcpsp-testing-framework/pkg/format"
	"github.com/dwilmer/rcpsp-testing-framework/pkg/instance"
)

func writeInstance(t *testing.T, dir, name string, in *instance.Instance) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := format.WriteInstance(f, in); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestPipeline(t *testing.T, output string, modify func(*config.PipelineConfiguration)) *Pipeline {
	t.Helper()
	cfg := &config.PipelineConfiguration{
		Output: ptr.To(output),
		Native: ptr.To(true),
		Chainer: &config.ChainerConfiguration{
			Strategy: ptr.To("maxCC"),
			TieBreak: ptr.To(config.TieBreakLowest),
		},
	}
	config.SetDefaults_PipelineConfiguration(cfg)
	if modify != nil {
		modify(cfg)
	}
	if errs := config.ValidatePipelineConfiguration(cfg); len(errs) > 0 {
		t.Fatal(errs.ToAggregate())
	}
	p, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func sampleInstance() *instance.Instance {
	return instance.MakeInstance().Capacities(1).
		Activity(2, 1).Activity(1, 1).Activity(1, 1).Activity(3, 0).
		Edges(0, 3).Obj()
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	file := writeInstance(t, dir, "sample.rcp", sampleInstance())
	out := filepath.Join(dir, "out")
	p := newTestPipeline(t, out, nil)

	if got, want := p.SolutionPath(file), filepath.Join(out, "solution", "sample.sol_serial"); got != want {
		t.Errorf("SolutionPath = %s, want %s", got, want)
	}
	if got, want := p.POSPath(file), filepath.Join(out, "pos", "sample.sol_serial.chain_maxCC"); got != want {
		t.Errorf("POSPath = %s, want %s", got, want)
	}

	summary, err := p.Run(context.Background(), file)
	if err != nil {
		t.Fatal(err)
	}
	want := &Summary{
		Instance:     "sample",
		Scheme:       "serial",
		Strategy:     "maxCC",
		Activities:   4,
		Makespan:     5,
		InstanceFlex: 5.0 / 6,
		POSFlex:      2.0 / 6,
		AddedEdges:   2,
	}
	if diff := cmp.Diff(want, summary); diff != "" {
		t.Errorf("unexpected summary (-want,+got):\n%s", diff)
	}
	for _, path := range []string{p.SolutionPath(file), p.POSPath(file)} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing output: %v", err)
		}
	}

	// The second run reads both stages back.
	cached, err := p.Run(context.Background(), file)
	if err != nil {
		t.Fatal(err)
	}
	want.SolutionCached, want.POSCached = true, true
	if diff := cmp.Diff(want, cached); diff != "" {
		t.Errorf("unexpected cached summary (-want,+got):\n%s", diff)
	}

	forced := newTestPipeline(t, out, func(c *config.PipelineConfiguration) { c.Force = ptr.To(true) })
	recomputed, err := forced.Run(context.Background(), file)
	if err != nil {
		t.Fatal(err)
	}
	if recomputed.SolutionCached || recomputed.POSCached {
		t.Errorf("forced run used stored outputs: %+v", recomputed)
	}
}

func TestRunAll(t *testing.T) {
	dir := t.TempDir()
	good := writeInstance(t, dir, "good.rcp", sampleInstance())
	bad := filepath.Join(dir, "bad.rcp")
	if err := os.WriteFile(bad, []byte("1,x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(dir, "missing.rcp")

	p := newTestPipeline(t, filepath.Join(dir, "out"), nil)
	summaries, err := p.RunAll(context.Background(), []string{good, bad, missing}, 2)
	if err == nil {
		t.Fatal("expected an aggregated error")
	}
	if len(summaries) != 3 || summaries[0] == nil || summaries[1] != nil || summaries[2] != nil {
		t.Fatalf("unexpected summaries %v", summaries)
	}
	if summaries[0].Makespan != 5 {
		t.Errorf("makespan = %d", summaries[0].Makespan)
	}

	summaries, err = p.RunAll(context.Background(), []string{good}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !summaries[0].SolutionCached {
		t.Error("expected the stored solution to be used")
	}
}

func TestRunInfeasibleInstance(t *testing.T) {
	dir := t.TempDir()
	in := instance.MakeInstance().Capacities(1).Activity(1, 2).Obj()
	file := writeInstance(t, dir, "infeasible.rcp", in)
	p := newTestPipeline(t, filepath.Join(dir, "out"), nil)
	if _, err := p.Run(context.Background(), file); err == nil {
		t.Error("expected an error for an activity exceeding the capacity")
	}
}

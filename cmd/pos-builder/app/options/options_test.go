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

package options

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	utilpointer "k8s.io/utils/ptr"

	posbuilderappconfig "github.com/dwilmer/rcpsp-testing-framework/cmd/pos-builder/app/config"
	"github.com/dwilmer/rcpsp-testing-framework/pkg/apis/config"
)

const pipelineConfigYAML = `apiVersion: posbuilder.config/v1alpha1
kind: PipelineConfiguration
solver:
  scheme: parallel
chainer:
  strategy: minID
  seed: 7
  strategies:
  - name: mine
    filter:
      sequence:
      - base: MaxConcurrency
      - base: MinSlack
parallelism: 2
`

func parseFlags(t *testing.T, o *Options, args ...string) {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	for _, f := range o.Flags().FlagSets {
		fs.AddFlagSet(f)
	}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("fail to parse flags: %v", err)
	}
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	fileName := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(fileName, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return fileName
}

func fileConfig() config.PipelineConfiguration {
	cfg := config.PipelineConfiguration{
		TypeMeta: metav1.TypeMeta{APIVersion: config.APIVersion, Kind: config.Kind},
		Solver:   &config.SolverConfiguration{Scheme: utilpointer.To("parallel")},
		Chainer: &config.ChainerConfiguration{
			Strategy: utilpointer.To("minID"),
			Seed:     utilpointer.To[int64](7),
			Strategies: []config.StrategyConfiguration{
				{
					Name: "mine",
					Filter: config.FilterSpec{
						Sequence: []config.FilterSpec{
							{Base: "MaxConcurrency"},
							{Base: "MinSlack"},
						},
					},
				},
			},
		},
		Parallelism: utilpointer.To(2),
	}
	config.SetDefaults_PipelineConfiguration(&cfg)
	return cfg
}

func TestLoadConfigFile(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		expect func() config.PipelineConfiguration
	}{
		{
			name:   "file only",
			expect: fileConfig,
		},
		{
			name: "explicit flags override the file",
			args: []string{"--chainer=mine", "-o", "results", "--force"},
			expect: func() config.PipelineConfiguration {
				cfg := fileConfig()
				cfg.Chainer.Strategy = utilpointer.To("mine")
				cfg.Output = utilpointer.To("results")
				cfg.Force = utilpointer.To(true)
				return cfg
			},
		},
		{
			name: "single thread and resource check",
			args: []string{"--single-thread", "--no-resource-check"},
			expect: func() config.PipelineConfiguration {
				cfg := fileConfig()
				cfg.Parallelism = utilpointer.To(1)
				cfg.Solver.CheckResources = utilpointer.To(false)
				return cfg
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops, err := NewOptions()
			if err != nil {
				t.Fatal(err)
			}
			parseFlags(t, ops, tt.args...)
			ops.ConfigFile = writeTempFile(t, pipelineConfigYAML)

			if errs := ops.Validate(); len(errs) > 0 {
				t.Fatalf("unexpected validation errors: %v", errs)
			}
			c, err := ops.Config([]string{"a.sm"})
			if err != nil {
				t.Fatalf("fail to build config: %v", err)
			}
			if diff := cmp.Diff(tt.expect(), c.PipelineConfig); len(diff) > 0 {
				t.Errorf("pipeline config got diff: %s", diff)
			}
			if diff := cmp.Diff([]string{"a.sm"}, c.Files); len(diff) > 0 {
				t.Errorf("files got diff: %s", diff)
			}
		})
	}
}

func TestApplyFlagsWithoutFile(t *testing.T) {
	ops, err := NewOptions()
	if err != nil {
		t.Fatal(err)
	}
	parseFlags(t, ops, "-s", "shortest", "--tie-break=lowest", "--native", "--metrics-file=m.txt")

	if errs := ops.Validate(); len(errs) > 0 {
		t.Fatalf("unexpected validation errors: %v", errs)
	}
	c := &posbuilderappconfig.Config{}
	if err := ops.ApplyTo(c); err != nil {
		t.Fatal(err)
	}
	if got := *c.PipelineConfig.Solver.Scheme; got != "shortest" {
		t.Errorf("expected scheme shortest, got %s", got)
	}
	if got := *c.PipelineConfig.Chainer.TieBreak; got != config.TieBreakLowest {
		t.Errorf("expected tie break lowest, got %s", got)
	}
	if !*c.PipelineConfig.Native {
		t.Errorf("expected native input")
	}
	if c.MetricsFile != "m.txt" {
		t.Errorf("expected metrics file m.txt, got %q", c.MetricsFile)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{
			name: "defaults",
		},
		{
			name:    "unknown scheme",
			args:    []string{"--solver=fastest"},
			wantErr: true,
		},
		{
			name: "unmatched strategy suffix",
			args: []string{"--chainer=maxCCnope"},
		},
		{
			name:    "unknown tie break",
			args:    []string{"--tie-break=highest"},
			wantErr: true,
		},
		{
			name:    "single thread conflicts with parallelism",
			args:    []string{"--single-thread", "--parallelism=4"},
			wantErr: true,
		},
		{
			name: "single thread with parallelism 1",
			args: []string{"--single-thread", "--parallelism=1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops, err := NewOptions()
			if err != nil {
				t.Fatal(err)
			}
			parseFlags(t, ops, tt.args...)
			errs := ops.Validate()
			if tt.wantErr != (len(errs) > 0) {
				t.Errorf("expected error: %v, got %v", tt.wantErr, errs)
			}
		})
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "unknown field",
			content: "kind: PipelineConfiguration\nsolvr:\n  scheme: serial\n",
		},
		{
			name:    "wrong kind",
			content: "kind: SchedulerConfiguration\n",
		},
		{
			name:    "invalid custom strategy",
			content: "chainer:\n  strategies:\n  - name: near\n    filter:\n      base: Nearest\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops, err := NewOptions()
			if err != nil {
				t.Fatal(err)
			}
			ops.ConfigFile = writeTempFile(t, tt.content)
			if _, err := ops.Config(nil); err == nil {
				t.Errorf("expected an error")
			}
		})
	}
}

func TestWriteConfigFile(t *testing.T) {
	cfg := fileConfig()
	fileName := filepath.Join(t.TempDir(), "written.yaml")
	if err := WriteConfigFile(fileName, &cfg); err != nil {
		t.Fatal(err)
	}
	got, err := loadConfigFromFile(fileName)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(&cfg, got); len(diff) > 0 {
		t.Errorf("config got diff: %s", diff)
	}
}

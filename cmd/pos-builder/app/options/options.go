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
	"fmt"

	cliflag "k8s.io/component-base/cli/flag"
	"k8s.io/utils/ptr"

	posbuilderappconfig "github.com/dwilmer/rcpsp-testing-framework/cmd/pos-builder/app/config"
	"github.com/dwilmer/rcpsp-testing-framework/pkg/apis/config"
	cmdutil "github.com/dwilmer/rcpsp-testing-framework/pkg/util/cmd"
)

// Options has all the params needed to run the pos builder.
type Options struct {
	// The default values. These are overridden if a config file is specified
	// and the flag is not set explicitly.
	PipelineConfig config.PipelineConfiguration

	ConfigFile    string
	WriteConfigTo string
	MetricsFile   string

	SingleThread    bool
	NoResourceCheck bool

	flags *cliflag.NamedFlagSets
}

// NewOptions returns default pos builder options.
func NewOptions() (*Options, error) {
	cfg := config.PipelineConfiguration{}
	config.SetDefaults_PipelineConfiguration(&cfg)
	return &Options{PipelineConfig: cfg}, nil
}

// Flags returns flags for the pos builder by section name.
func (o *Options) Flags() (nfs cliflag.NamedFlagSets) {
	fs := nfs.FlagSet("solver")
	fs.StringVarP(o.PipelineConfig.Solver.Scheme, "solver", "s", *o.PipelineConfig.Solver.Scheme, "The scheduling scheme. Options are serial, parallel, serialFBI, parallelFBI, shortest and noResources.")
	fs.BoolVar(&o.NoResourceCheck, "no-resource-check", o.NoResourceCheck, "If set, the schedule generation ignores resource capacities.")

	fs = nfs.FlagSet("chainer")
	fs.StringVarP(o.PipelineConfig.Chainer.Strategy, "chainer", "c", *o.PipelineConfig.Chainer.Strategy, "The chaining strategy tag, e.g. maxCCminIDmaxSlack.")
	fs.StringVar(o.PipelineConfig.Chainer.TieBreak, "tie-break", *o.PipelineConfig.Chainer.TieBreak, "How to pick among equally good chains. Options are random and lowest.")
	fs.Int64Var(o.PipelineConfig.Chainer.Seed, "seed", *o.PipelineConfig.Chainer.Seed, "Seed of the random tie breaker. 0 seeds from the clock.")

	fs = nfs.FlagSet("pipeline")
	fs.StringVarP(o.PipelineConfig.Output, "output", "o", *o.PipelineConfig.Output, "The directory the solutions and partial order schedules are stored in.")
	fs.IntVar(o.PipelineConfig.Parallelism, "parallelism", *o.PipelineConfig.Parallelism, "The number of instances processed concurrently.")
	fs.BoolVar(&o.SingleThread, "single-thread", o.SingleThread, "Process the instances one at a time. Same as --parallelism=1.")
	fs.BoolVar(o.PipelineConfig.Force, "force", *o.PipelineConfig.Force, "Recompute results that are already stored in the output directory.")
	fs.BoolVar(o.PipelineConfig.Native, "native", *o.PipelineConfig.Native, "Read instances in the native format instead of PSPLIB.")

	fs = nfs.FlagSet("misc")
	fs.StringVar(&o.ConfigFile, "config", o.ConfigFile, "The path to the configuration file. Flags set explicitly override values in this file.")
	fs.StringVar(&o.WriteConfigTo, "write-config-to", o.WriteConfigTo, "If set, write the configuration values to this file and exit.")
	fs.StringVar(&o.MetricsFile, "metrics-file", o.MetricsFile, "If set, write the collected metrics to this file in the Prometheus text format.")
	fs.StringVar(o.PipelineConfig.Tracer, "tracer", *o.PipelineConfig.Tracer, "Tracer to use. Only noop is supported.")

	cmdutil.AddKlogFlags(nfs.FlagSet("logging"))

	o.flags = &nfs
	return nfs
}

func (o *Options) changed(name string) bool {
	if o.flags == nil {
		return false
	}
	for _, fs := range o.flags.FlagSets {
		if f := fs.Lookup(name); f != nil {
			return f.Changed
		}
	}
	return false
}

// ApplyTo applies the options to the given pos builder app configuration.
func (o *Options) ApplyTo(c *posbuilderappconfig.Config) error {
	if len(o.ConfigFile) == 0 {
		c.PipelineConfig = o.PipelineConfig
	} else {
		cfg, err := loadConfigFromFile(o.ConfigFile)
		if err != nil {
			return err
		}
		c.PipelineConfig = *cfg

		// explicitly set flags win over the file
		overrides := map[string]func(){
			"solver":      func() { c.PipelineConfig.Solver.Scheme = o.PipelineConfig.Solver.Scheme },
			"chainer":     func() { c.PipelineConfig.Chainer.Strategy = o.PipelineConfig.Chainer.Strategy },
			"tie-break":   func() { c.PipelineConfig.Chainer.TieBreak = o.PipelineConfig.Chainer.TieBreak },
			"seed":        func() { c.PipelineConfig.Chainer.Seed = o.PipelineConfig.Chainer.Seed },
			"output":      func() { c.PipelineConfig.Output = o.PipelineConfig.Output },
			"parallelism": func() { c.PipelineConfig.Parallelism = o.PipelineConfig.Parallelism },
			"force":       func() { c.PipelineConfig.Force = o.PipelineConfig.Force },
			"native":      func() { c.PipelineConfig.Native = o.PipelineConfig.Native },
			"tracer":      func() { c.PipelineConfig.Tracer = o.PipelineConfig.Tracer },
		}
		for name, apply := range overrides {
			if o.changed(name) {
				apply()
			}
		}
	}

	if o.SingleThread {
		c.PipelineConfig.Parallelism = ptr.To(1)
	}
	if o.NoResourceCheck {
		c.PipelineConfig.Solver.CheckResources = ptr.To(false)
	}
	c.MetricsFile = o.MetricsFile
	return nil
}

// Validate validates all the required options.
func (o *Options) Validate() []error {
	var errs []error
	if o.SingleThread && o.changed("parallelism") && *o.PipelineConfig.Parallelism != 1 {
		errs = append(errs, fmt.Errorf("--single-thread conflicts with --parallelism=%d", *o.PipelineConfig.Parallelism))
	}
	if len(o.ConfigFile) == 0 {
		for _, err := range config.ValidatePipelineConfiguration(&o.PipelineConfig) {
			errs = append(errs, err)
		}
	}
	return errs
}

// Config returns a pos builder config object for the given instance files.
func (o *Options) Config(files []string) (*posbuilderappconfig.Config, error) {
	c := &posbuilderappconfig.Config{}
	if err := o.ApplyTo(c); err != nil {
		return nil, err
	}
	if errs := config.ValidatePipelineConfiguration(&c.PipelineConfig); len(errs) > 0 {
		return nil, errs.ToAggregate()
	}
	c.Files = files
	return c, nil
}

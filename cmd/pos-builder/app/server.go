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

package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	cliflag "k8s.io/component-base/cli/flag"
	"k8s.io/component-base/term"
	"k8s.io/klog/v2"

	posbuilderappconfig "github.com/dwilmer/rcpsp-testing-framework/cmd/pos-builder/app/config"
	"github.com/dwilmer/rcpsp-testing-framework/cmd/pos-builder/app/options"
	"github.com/dwilmer/rcpsp-testing-framework/pkg/metrics"
	"github.com/dwilmer/rcpsp-testing-framework/pkg/pipeline"
	"github.com/dwilmer/rcpsp-testing-framework/pkg/util/tracing"
)

const ComponentName = "pos-builder"

// NewPosBuilderCmd creates the pos builder command with default options.
func NewPosBuilderCmd() *cobra.Command {
	opts, err := options.NewOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to initialize command options: %v\n", err)
		os.Exit(1)
	}

	posBuilderCmd := &cobra.Command{
		Use: ComponentName + " [flags] INSTANCE...",
		Long: `The pos builder computes a resource feasible schedule for every project
scheduling instance and turns it into a partial order schedule by chaining
the activities on every resource unit.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runCommand(cmd, opts, args); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", err)
				return err
			}
			return nil
		},
	}

	fs := posBuilderCmd.Flags()
	namedFlagSets := opts.Flags()
	for _, f := range namedFlagSets.FlagSets {
		fs.AddFlagSet(f)
	}

	usageFmt := "Usage:\n  %s\n"
	cols, _, _ := term.TerminalSize(posBuilderCmd.OutOrStdout())
	posBuilderCmd.SetUsageFunc(func(cmd *cobra.Command) error {
		fmt.Fprintf(cmd.OutOrStderr(), usageFmt, cmd.UseLine())
		cliflag.PrintSections(cmd.OutOrStderr(), namedFlagSets, cols)
		return nil
	})
	posBuilderCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n"+usageFmt, cmd.Long, cmd.UseLine())
		cliflag.PrintSections(cmd.OutOrStdout(), namedFlagSets, cols)
	})
	posBuilderCmd.MarkFlagFilename("config", "yaml", "yml", "json")

	posBuilderCmd.AddCommand(newDotCmd())

	return posBuilderCmd
}

func runCommand(cmd *cobra.Command, opts *options.Options, args []string) error {
	if errs := opts.Validate(); len(errs) > 0 {
		return utilerrors.NewAggregate(errs)
	}

	c, err := opts.Config(args)
	if err != nil {
		return err
	}

	if len(opts.WriteConfigTo) > 0 {
		if err := options.WriteConfigFile(opts.WriteConfigTo, &c.PipelineConfig); err != nil {
			return err
		}
		klog.InfoS("Wrote configuration", "path", opts.WriteConfigTo)
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("no instance files given")
	}

	// Get the completed config
	cc := c.Complete()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	return Run(ctx, cc, cmd.OutOrStdout())
}

// Run processes all instance files of cc and prints a summary to out.
func Run(ctx context.Context, cc posbuilderappconfig.CompletedConfig, out io.Writer) error {
	tracer, err := tracing.ValidateTracerConfig(tracing.TracerConfig(*cc.PipelineConfig.Tracer))
	if err != nil {
		return err
	}
	closer := tracing.NewTracer(tracer, ComponentName)
	defer closer.Close()

	p, err := pipeline.New(&cc.PipelineConfig)
	if err != nil {
		return err
	}

	summaries, runErr := p.RunAll(ctx, cc.Files, *cc.PipelineConfig.Parallelism)
	if err := printSummaries(out, cc.Files, summaries); err != nil {
		return err
	}

	if len(cc.MetricsFile) > 0 {
		if err := writeMetrics(cc.MetricsFile); err != nil {
			return err
		}
	}
	return runErr
}

func writeMetrics(path string) error {
	families, err := metrics.GetGather().Gather()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(f, mf); err != nil {
			return err
		}
	}
	return nil
}

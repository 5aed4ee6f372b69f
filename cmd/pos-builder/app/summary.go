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
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/dwilmer/rcpsp-testing-framework/pkg/pipeline"
)

var (
	bold  = color.New(color.Bold).SprintFunc()
	dim   = color.New(color.Faint).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
)

// printSummaries writes one row per file. summaries[i] is nil if files[i]
// failed.
func printSummaries(out io.Writer, files []string, summaries []*pipeline.Summary) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "INSTANCE\tSCHEME\tSTRATEGY\tACTIVITIES\tMAKESPAN\tFLEX\tPOS FLEX\tADDED EDGES\tSTATUS")
	failed := 0
	for i, s := range summaries {
		if s == nil {
			failed++
			fmt.Fprintf(w, "%s\t-\t-\t-\t-\t-\t-\t-\t%s\n", files[i], red("failed"))
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.4f\t%.4f\t%d\t%s\n",
			s.Instance, s.Scheme, s.Strategy, s.Activities, s.Makespan,
			s.InstanceFlex, s.POSFlex, s.AddedEdges, status(s))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "%s %d processed, %d failed\n", bold("Done:"), len(summaries)-failed, failed)
	return err
}

func status(s *pipeline.Summary) string {
	switch {
	case s.SolutionCached && s.POSCached:
		return dim("cached")
	case s.SolutionCached:
		return green("chained")
	default:
		return green("ok")
	}
}

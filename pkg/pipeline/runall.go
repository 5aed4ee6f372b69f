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

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"k8s.io/client-go/util/workqueue"
	"k8s.io/klog/v2"
)

// RunAll runs the pipeline for every file with at most parallelism files in
// flight. Failing files do not stop the others. The summaries are returned
// in the order of files, with nil for the files that failed.
func (p *Pipeline) RunAll(ctx context.Context, files []string, parallelism int) ([]*Summary, error) {
	if parallelism < 1 {
		parallelism = 1
	}
	summaries := make([]*Summary, len(files))
	errs := make([]error, len(files))
	run := func(i int) {
		summary, err := p.Run(ctx, files[i])
		if err != nil {
			klog.ErrorS(err, "Failed to process instance", "file", files[i])
			errs[i] = err
			return
		}
		summaries[i] = summary
	}
	workqueue.ParallelizeUntil(ctx, parallelism, len(files), run)

	if err := ctx.Err(); err != nil {
		return summaries, err
	}
	return summaries, utilerrors.NewAggregate(errs)
}

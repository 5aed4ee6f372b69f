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

package format

import (
	"io"

	"github.com/dwilmer/rcpsp-testing-framework/pkg/instance"
)

// WriteSolution writes the start times on one line.
func WriteSolution(w io.Writer, sol *instance.Solution) error {
	_, err := io.WriteString(w, joinInts(sol.StartTimes, " ")+"\n")
	return err
}

// ReadSolution reads the start times of a schedule of in.
func ReadSolution(r io.Reader, in *instance.Instance) (*instance.Solution, error) {
	lr, err := newLineReader(r, in.Name)
	if err != nil {
		return nil, err
	}
	line, _ := lr.read()
	times, err := lr.ints(line)
	if err != nil {
		return nil, err
	}
	if len(times) != in.NumActivities() {
		return nil, lr.errorf("%d start times for %d activities", len(times), in.NumActivities())
	}
	return &instance.Solution{Instance: in, StartTimes: times}, nil
}

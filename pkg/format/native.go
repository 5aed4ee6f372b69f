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
	"fmt"
	"io"
	"strings"

	"github.com/dwilmer/rcpsp-testing-framework/pkg/instance"
)

// WriteInstance writes in in the native format: the resource count and
// capacities on the first line, then one line per activity with its
// duration, predecessors and demands.
func WriteInstance(w io.Writer, in *instance.Instance) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%d,%s\n", in.NumResources(), joinInts(in.Capacities, ","))
	for id := 0; id < in.NumActivities(); id++ {
		a := in.Activity(id)
		fmt.Fprintf(&b, "%d,%s,%s\n", a.Duration, joinInts(a.Predecessors(), " "), joinInts(a.Demand, " "))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// ReadInstance reads an instance written by WriteInstance. Reading stops at
// the first empty line.
func ReadInstance(r io.Reader, name string) (*instance.Instance, error) {
	lr, err := newLineReader(r, name)
	if err != nil {
		return nil, err
	}
	header, ok := lr.read()
	if !ok {
		return nil, lr.errorf("empty input")
	}
	parts := strings.Split(header, ",")
	numResources, err := parseInt(strings.TrimSpace(parts[0]))
	if err != nil || numResources < 0 {
		return nil, lr.errorf("invalid resource count %q", parts[0])
	}
	var capacities []int
	if numResources > 0 {
		if capacities, err = lr.ints(strings.Join(parts[1:], " ")); err != nil {
			return nil, err
		}
		if len(capacities) != numResources {
			return nil, lr.errorf("%d capacities for %d resources", len(capacities), numResources)
		}
	}

	in := instance.New(name, capacities)
	var predecessors [][]int
	for {
		line, ok := lr.read()
		if !ok || strings.TrimSpace(line) == "" {
			break
		}
		fields := strings.Split(line, ",")
		if len(fields) != 3 {
			return nil, lr.errorf("expected duration, predecessors and demands in %q", line)
		}
		duration, err := parseInt(strings.TrimSpace(fields[0]))
		if err != nil {
			return nil, lr.errorf("invalid duration %q", fields[0])
		}
		preds, err := lr.ints(fields[1])
		if err != nil {
			return nil, err
		}
		demand, err := lr.ints(fields[2])
		if err != nil {
			return nil, err
		}
		if len(demand) == 0 {
			demand = make([]int, numResources)
		}
		if len(demand) != numResources {
			return nil, lr.errorf("%d demands for %d resources", len(demand), numResources)
		}
		in.AddActivity(duration, demand)
		predecessors = append(predecessors, preds)
	}
	for id, preds := range predecessors {
		for _, p := range preds {
			if p < 0 || p >= in.NumActivities() {
				return nil, lr.errorf("activity %d has unknown predecessor %d", id, p)
			}
			in.AddPrecedenceConstraint(p, id)
		}
	}
	return in, nil
}

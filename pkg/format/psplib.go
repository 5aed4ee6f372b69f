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
	"strings"

	"github.com/dwilmer/rcpsp-testing-framework/pkg/instance"
)

const (
	precedenceHeader   = "PRECEDENCE RELATIONS"
	requestsHeader     = "REQUESTS/DURATIONS"
	availabilityHeader = "RESOURCEAVAILABILITIES"
)

type psplibJob struct {
	duration   int
	demand     []int
	successors []int
}

// ReadPSPLIB reads a single mode instance in the PSPLIB format. Jobs are
// numbered from zero in the returned instance.
func ReadPSPLIB(r io.Reader, name string) (*instance.Instance, error) {
	lr, err := newLineReader(r, name)
	if err != nil {
		return nil, err
	}

	numJobs, numResources := -1, -1
	var (
		jobs       []psplibJob
		capacities []int
	)
	for {
		line, ok := lr.read()
		if !ok {
			break
		}
		switch {
		case strings.HasPrefix(line, "jobs"):
			if numJobs, err = headerValue(lr, line); err != nil {
				return nil, err
			}
		case strings.HasPrefix(strings.TrimSpace(line), "- renewable"):
			if numResources, err = headerValue(lr, line); err != nil {
				return nil, err
			}
		case strings.HasPrefix(line, precedenceHeader):
			if numJobs < 0 || numResources < 0 {
				return nil, lr.errorf("%s before the job and resource counts", precedenceHeader)
			}
			jobs = make([]psplibJob, numJobs)
			if err := readPrecedences(lr, jobs); err != nil {
				return nil, err
			}
		case strings.HasPrefix(line, requestsHeader):
			if jobs == nil {
				return nil, lr.errorf("%s before %s", requestsHeader, precedenceHeader)
			}
			if err := readRequests(lr, jobs, numResources); err != nil {
				return nil, err
			}
		case strings.HasPrefix(line, availabilityHeader):
			if capacities, err = readAvailabilities(lr, numResources); err != nil {
				return nil, err
			}
		}
	}
	if jobs == nil || capacities == nil {
		return nil, lr.errorf("missing %s or %s section", precedenceHeader, availabilityHeader)
	}

	in := instance.New(name, capacities)
	for _, job := range jobs {
		demand := job.demand
		if demand == nil {
			demand = make([]int, numResources)
		}
		in.AddActivity(job.duration, demand)
	}
	for id, job := range jobs {
		for _, s := range job.successors {
			in.AddPrecedenceConstraint(id, s)
		}
	}
	return in, nil
}

// headerValue parses the first number after the colon of a header line.
func headerValue(lr *lineReader, line string) (int, error) {
	_, value, found := strings.Cut(line, ":")
	fields := strings.Fields(value)
	if !found || len(fields) == 0 {
		return 0, lr.errorf("no value in %q", line)
	}
	v, err := parseInt(fields[0])
	if err != nil || v < 0 {
		return 0, lr.errorf("invalid count %q", fields[0])
	}
	return v, nil
}

// sectionRows returns the rows of a section after skipping its column
// headers, up to the next separator line.
func sectionRows(lr *lineReader, skip int) []string {
	var rows []string
	for {
		line, ok := lr.read()
		if !ok {
			return rows
		}
		trimmed := strings.TrimSpace(line)
		if skip > 0 {
			skip--
			continue
		}
		if strings.HasPrefix(trimmed, "*") {
			return rows
		}
		if trimmed != "" {
			rows = append(rows, trimmed)
		}
	}
}

func jobIndex(lr *lineReader, jobs []psplibJob, nr int) (int, error) {
	if nr < 1 || nr > len(jobs) {
		return 0, lr.errorf("job %d out of range 1..%d", nr, len(jobs))
	}
	return nr - 1, nil
}

func readPrecedences(lr *lineReader, jobs []psplibJob) error {
	for _, row := range sectionRows(lr, 1) {
		v, err := lr.ints(row)
		if err != nil {
			return err
		}
		if len(v) < 3 || len(v) != 3+v[2] {
			return lr.errorf("precedence row %q does not list its %d successors", row, safeIndex(v, 2))
		}
		id, err := jobIndex(lr, jobs, v[0])
		if err != nil {
			return err
		}
		for _, s := range v[3:] {
			succ, err := jobIndex(lr, jobs, s)
			if err != nil {
				return err
			}
			jobs[id].successors = append(jobs[id].successors, succ)
		}
	}
	return nil
}

func readRequests(lr *lineReader, jobs []psplibJob, numResources int) error {
	for _, row := range sectionRows(lr, 2) {
		v, err := lr.ints(row)
		if err != nil {
			return err
		}
		if len(v) < 3+numResources {
			return lr.errorf("request row %q has fewer than %d resources", row, numResources)
		}
		id, err := jobIndex(lr, jobs, v[0])
		if err != nil {
			return err
		}
		jobs[id].duration = v[2]
		jobs[id].demand = append([]int(nil), v[3:3+numResources]...)
	}
	return nil
}

func readAvailabilities(lr *lineReader, numResources int) ([]int, error) {
	if _, ok := lr.read(); !ok {
		return nil, lr.errorf("missing resource header")
	}
	line, ok := lr.read()
	if !ok {
		return nil, lr.errorf("missing resource availabilities")
	}
	v, err := lr.ints(line)
	if err != nil {
		return nil, err
	}
	if len(v) < numResources {
		return nil, lr.errorf("%d availabilities for %d resources", len(v), numResources)
	}
	return v[:numResources], nil
}

func safeIndex(v []int, i int) int {
	if i < len(v) {
		return v[i]
	}
	return 0
}

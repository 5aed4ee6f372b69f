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

// Package format reads and writes instances, schedules and partial order
// schedules as text.
package format

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrMalformedInput is wrapped by every parse error.
var ErrMalformedInput = errors.New("malformed input")

// lineReader hands out the lines of an input together with their position.
type lineReader struct {
	name  string
	lines []string
	next  int
}

func newLineReader(r io.Reader, name string) (*lineReader, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading %s", name)
	}
	return &lineReader{name: name, lines: lines}, nil
}

// read returns the next line, or false at the end of the input.
func (lr *lineReader) read() (string, bool) {
	if lr.next >= len(lr.lines) {
		return "", false
	}
	lr.next++
	return lr.lines[lr.next-1], true
}

// errorf reports a problem on the line returned last.
func (lr *lineReader) errorf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrMalformedInput, "%s:%d: %s", lr.name, lr.next, fmt.Sprintf(format, args...))
}

// ints parses whitespace separated integers.
func (lr *lineReader) ints(s string) ([]int, error) {
	fields := strings.Fields(s)
	ret := make([]int, len(fields))
	for i, f := range fields {
		v, err := parseInt(f)
		if err != nil {
			return nil, lr.errorf("%q is not an integer", f)
		}
		ret[i] = v
	}
	return ret, nil
}

// parseInt also accepts integral decimals such as "3.0".
func parseInt(s string) (int, error) {
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("invalid integer %q", s)
	}
	return int(f), nil
}

func joinInts(values []int, sep string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, sep)
}

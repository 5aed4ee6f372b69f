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

package instance

import "github.com/pkg/errors"

var (
	// ErrCyclicGraph is returned when the precedence graph contains a cycle.
	ErrCyclicGraph = errors.New("precedence graph contains a cycle")
	// ErrResourceCapacityExceeded is returned when the demand of activities active
	// at some instant exceeds the capacity of a resource.
	ErrResourceCapacityExceeded = errors.New("resource capacity exceeded")
	// ErrPrecedenceViolated is returned when an activity starts before one of its
	// predecessors has finished.
	ErrPrecedenceViolated = errors.New("precedence constraint violated")
	// ErrIncompleteSolution is returned when a solution leaves activities unscheduled.
	ErrIncompleteSolution = errors.New("solution is incomplete")
	// ErrUnknownActivity is returned for activity ids outside the instance.
	ErrUnknownActivity = errors.New("unknown activity")
)

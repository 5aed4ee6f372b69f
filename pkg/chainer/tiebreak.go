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

package chainer

import (
	"math/rand"
	"sync"
	"time"
)

// TieBreaker picks one of several equally ranked chains.
type TieBreaker interface {
	// Pick returns one element of candidates, which is sorted and non-empty.
	Pick(candidates []int) int
}

// LowestID always picks the lowest chain index.
type LowestID struct{}

func (LowestID) Pick(candidates []int) int {
	return candidates[0]
}

type randomTieBreaker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomTieBreaker picks uniformly at random. A zero seed is replaced by
// the current time.
func NewRandomTieBreaker(seed int64) TieBreaker {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &randomTieBreaker{rng: rand.New(rand.NewSource(seed))}
}

func (r *randomTieBreaker) Pick(candidates []int) int {
	if len(candidates) == 1 {
		return candidates[0]
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return candidates[r.rng.Intn(len(candidates))]
}

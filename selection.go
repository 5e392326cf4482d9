/*
Copyright 2025 Leadpool Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package leadpool

import (
	"math/rand"
	"sync"
	"time"
)

// SelectionStrategy picks up to k leads from the eligible set during a
// distribution run. Selection is random, not FIFO, so different subscribers
// receive de-correlated subsets of the shared pool.
type SelectionStrategy interface {
	Pick(eligible []string, k int) []string
}

// RandomSelection is the default strategy: an unbiased Fisher-Yates draw.
type RandomSelection struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomSelection() *RandomSelection {
	return &RandomSelection{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeededSelection returns a deterministic strategy for tests.
func NewSeededSelection(seed int64) *RandomSelection {
	return &RandomSelection{rng: rand.New(rand.NewSource(seed))}
}

func (r *RandomSelection) Pick(eligible []string, k int) []string {
	if k <= 0 || len(eligible) == 0 {
		return nil
	}
	if k > len(eligible) {
		k = len(eligible)
	}

	shuffled := make([]string, len(eligible))
	copy(shuffled, eligible)

	r.mu.Lock()
	r.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	r.mu.Unlock()

	return shuffled[:k]
}

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
	"github.com/leadpool/leadpool/config"
	"github.com/leadpool/leadpool/database"
)

// Leadpool represents the main struct for the lead queue and monthly pool
// distribution engine. It owns no clock and no scheduler: every operation
// takes an explicit period key and is safe to re-run, so external triggers
// (cron, operator actions) can fire at-least-once without coordination.
type Leadpool struct {
	datasource database.IDataSource
	queue      *Queue
	selector   SelectionStrategy
}

// NewLeadpool initializes a new instance of Leadpool with the provided
// database datasource. It fetches the configuration and initializes the
// delivery-event queue and the default random selection strategy.
func NewLeadpool(db database.IDataSource) (*Leadpool, error) {
	configuration, err := config.Fetch()
	if err != nil {
		return nil, err
	}
	newQueue := NewQueue(configuration)
	return &Leadpool{
		datasource: db,
		queue:      newQueue,
		selector:   NewRandomSelection(),
	}, nil
}

// WithSelectionStrategy swaps the lead selection strategy. Tests use this to
// install a seeded strategy; production code keeps the default random draw.
func (l *Leadpool) WithSelectionStrategy(s SelectionStrategy) *Leadpool {
	l.selector = s
	return l
}

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
	"context"

	"github.com/leadpool/leadpool/config"
	"github.com/leadpool/leadpool/model"
)

// Runway thresholds in periods.
const (
	runwayHealthyThreshold = 3
	runwayWarningThreshold = 1
)

// ComputeRunway classifies the queue backlog as a number of future full
// pools. Pure computation over current counts.
func ComputeRunway(unassignedCount int64, poolSize int) model.RunwayReport {
	report := model.RunwayReport{
		UnassignedCount: unassignedCount,
		PoolSize:        poolSize,
	}
	if poolSize > 0 {
		report.RunwayPeriods = unassignedCount / int64(poolSize)
	}

	switch {
	case report.RunwayPeriods >= runwayHealthyThreshold:
		report.Status = model.RunwayHealthy
	case report.RunwayPeriods >= runwayWarningThreshold:
		report.Status = model.RunwayWarning
	default:
		report.Status = model.RunwayCritical
	}
	return report
}

// QueueRunway reports how many future periods the current queue backlog can
// still supply full pools for. Read-only.
func (l *Leadpool) QueueRunway(ctx context.Context) (*model.RunwayReport, error) {
	cfg, err := config.Fetch()
	if err != nil {
		return nil, err
	}

	count, err := l.datasource.CountUnassignedQueueEntries(ctx)
	if err != nil {
		return nil, err
	}

	report := ComputeRunway(count, cfg.Pool.Size)
	return &report, nil
}

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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeRunway(t *testing.T) {
	tests := []struct {
		name       string
		unassigned int64
		poolSize   int
		periods    int64
		status     string
	}{
		{"warning at two periods", 1450, 600, 2, "warning"},
		{"healthy at three periods", 1800, 600, 3, "healthy"},
		{"healthy well above threshold", 10000, 600, 16, "healthy"},
		{"warning at exactly one period", 600, 600, 1, "warning"},
		{"critical below one period", 599, 600, 0, "critical"},
		{"critical when empty", 0, 600, 0, "critical"},
		{"zero pool size is critical", 1200, 0, 0, "critical"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := ComputeRunway(tt.unassigned, tt.poolSize)
			assert.Equal(t, tt.periods, report.RunwayPeriods)
			assert.Equal(t, tt.status, report.Status)
			assert.Equal(t, tt.unassigned, report.UnassignedCount)
			assert.Equal(t, tt.poolSize, report.PoolSize)
		})
	}
}

func TestQueueRunway(t *testing.T) {
	ds := NewMockDataSource()
	lp := newTestLeadpool(ds)

	seedQueue(t, ds, 1450)

	report, err := lp.QueueRunway(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), report.RunwayPeriods)
	assert.Equal(t, "warning", report.Status)
	assert.Equal(t, int64(1450), report.UnassignedCount)
}

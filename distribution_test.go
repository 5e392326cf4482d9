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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadpool/leadpool/internal/apierror"
	"github.com/leadpool/leadpool/model"
)

func seedSubscriber(t *testing.T, ds *MockDataSource, id, tier string) {
	t.Helper()
	_, err := ds.CreateSubscriber(context.Background(), model.Subscriber{
		SubscriberID: id,
		PlanTier:     tier,
		Status:       model.StatusActive,
	})
	require.NoError(t, err)
}

func findSubscriberResult(t *testing.T, result *model.DistributionResult, id string) model.SubscriberDistribution {
	t.Helper()
	for _, per := range result.PerSubscriber {
		if per.SubscriberID == id {
			return per
		}
	}
	t.Fatalf("subscriber %s missing from result", id)
	return model.SubscriberDistribution{}
}

func TestDistributeForPeriod_NoPool(t *testing.T) {
	ds := NewMockDataSource()
	lp := newTestLeadpool(ds)

	_, err := lp.DistributeForPeriod(context.Background(), "2025-06")
	require.Error(t, err)
	apiErr, ok := err.(apierror.APIError)
	require.True(t, ok)
	assert.Equal(t, apierror.ErrPreconditionFailed, apiErr.Code)
}

func TestDistributeForPeriod_RespectsQuota(t *testing.T) {
	ds := NewMockDataSource()
	lp := newTestLeadpool(ds)
	ctx := context.Background()

	seedQueue(t, ds, 100)
	_, err := lp.GeneratePool(ctx, "2025-06")
	require.NoError(t, err)

	seedSubscriber(t, ds, "sub_starter", model.TierStarter)
	seedSubscriber(t, ds, "sub_pro", model.TierProfessional)

	result, err := lp.DistributeForPeriod(ctx, "2025-06")
	require.NoError(t, err)
	assert.Equal(t, 12, result.TotalDistributed)

	starter := findSubscriberResult(t, result, "sub_starter")
	assert.Equal(t, 2, starter.Distributed)
	assert.Equal(t, model.DistributionDelivered, starter.Reason)

	pro := findSubscriberResult(t, result, "sub_pro")
	assert.Equal(t, 10, pro.Distributed)

	// Both the ledger and the assignment store carry one row per delivery.
	count, err := ds.CountDistributions(ctx, "sub_pro", "2025-06")
	require.NoError(t, err)
	assert.Equal(t, int64(10), count)

	assigned, err := ds.GetAssignedLeadIDs(ctx, "sub_pro")
	require.NoError(t, err)
	assert.Len(t, assigned, 10)
}

func TestDistributeForPeriod_RerunAddsNothing(t *testing.T) {
	ds := NewMockDataSource()
	lp := newTestLeadpool(ds)
	ctx := context.Background()

	seedQueue(t, ds, 100)
	_, err := lp.GeneratePool(ctx, "2025-06")
	require.NoError(t, err)

	seedSubscriber(t, ds, "sub_1", model.TierStandard)

	first, err := lp.DistributeForPeriod(ctx, "2025-06")
	require.NoError(t, err)
	assert.Equal(t, 5, first.TotalDistributed)

	for i := 0; i < 3; i++ {
		rerun, err := lp.DistributeForPeriod(ctx, "2025-06")
		require.NoError(t, err)
		assert.Zero(t, rerun.TotalDistributed)

		per := findSubscriberResult(t, rerun, "sub_1")
		assert.Equal(t, model.DistributionExhausted, per.Reason)
	}

	// Quota monotonicity: the ledger never exceeds the plan quota.
	count, err := ds.CountDistributions(ctx, "sub_1", "2025-06")
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
}

func TestDistributeForPeriod_NoDuplicateDelivery(t *testing.T) {
	ds := NewMockDataSource()
	lp := newTestLeadpool(ds)
	ctx := context.Background()

	seedQueue(t, ds, 30)
	_, err := lp.GeneratePool(ctx, "2025-06")
	require.NoError(t, err)

	seedSubscriber(t, ds, "sub_1", model.TierEnterprise)

	// Drain the pool over several runs; 30 leads at quota 20 means the
	// second run tops out at the remaining 10.
	for i := 0; i < 4; i++ {
		_, err := lp.DistributeForPeriod(ctx, "2025-06")
		require.NoError(t, err)
	}

	delivered, err := ds.GetDistributedLeadIDs(ctx, "sub_1", "2025-06")
	require.NoError(t, err)

	seen := map[string]struct{}{}
	for _, id := range delivered {
		_, dup := seen[id]
		assert.False(t, dup, "lead %s delivered twice", id)
		seen[id] = struct{}{}
	}
	// Quota 20 per run caps the period at 20 even though 30 are pooled.
	assert.Len(t, delivered, 20)
}

func TestDistributeForPeriod_ExhaustedPool(t *testing.T) {
	ds := NewMockDataSource()
	lp := newTestLeadpool(ds)
	ctx := context.Background()

	seedQueue(t, ds, 3)
	_, err := lp.GeneratePool(ctx, "2025-06")
	require.NoError(t, err)

	seedSubscriber(t, ds, "sub_1", model.TierEnterprise)

	first, err := lp.DistributeForPeriod(ctx, "2025-06")
	require.NoError(t, err)
	assert.Equal(t, 3, first.TotalDistributed)

	second, err := lp.DistributeForPeriod(ctx, "2025-06")
	require.NoError(t, err)
	per := findSubscriberResult(t, second, "sub_1")
	assert.Zero(t, per.Distributed)
	assert.Equal(t, model.DistributionExhausted, per.Reason)
}

func TestDistributeForPeriod_FailureIsolation(t *testing.T) {
	ds := NewMockDataSource()
	lp := newTestLeadpool(ds)
	ctx := context.Background()

	seedQueue(t, ds, 50)
	_, err := lp.GeneratePool(ctx, "2025-06")
	require.NoError(t, err)

	seedSubscriber(t, ds, "sub_ok", model.TierStandard)
	seedSubscriber(t, ds, "sub_broken", model.TierStandard)

	ds.GetDistributedLeadIDsErr = map[string]error{
		"sub_broken": errors.New("connection reset"),
	}

	result, err := lp.DistributeForPeriod(ctx, "2025-06")
	require.NoError(t, err)

	ok := findSubscriberResult(t, result, "sub_ok")
	assert.Equal(t, 5, ok.Distributed)
	assert.Equal(t, model.DistributionDelivered, ok.Reason)

	broken := findSubscriberResult(t, result, "sub_broken")
	assert.Zero(t, broken.Distributed)
	assert.Equal(t, model.DistributionFailed, broken.Reason)
	assert.Contains(t, broken.Error, "connection reset")
}

func TestDistributeForPeriod_InactiveSubscribersSkipped(t *testing.T) {
	ds := NewMockDataSource()
	lp := newTestLeadpool(ds)
	ctx := context.Background()

	seedQueue(t, ds, 20)
	_, err := lp.GeneratePool(ctx, "2025-06")
	require.NoError(t, err)

	seedSubscriber(t, ds, "sub_active", model.TierStarter)
	_, err = ds.CreateSubscriber(ctx, model.Subscriber{
		SubscriberID: "sub_lapsed",
		PlanTier:     model.TierEnterprise,
		Status:       model.StatusCancelled,
	})
	require.NoError(t, err)

	result, err := lp.DistributeForPeriod(ctx, "2025-06")
	require.NoError(t, err)
	assert.Len(t, result.PerSubscriber, 1)
	assert.Equal(t, "sub_active", result.PerSubscriber[0].SubscriberID)
}

func TestRandomSelection_Pick(t *testing.T) {
	s := NewSeededSelection(7)

	eligible := []string{"a", "b", "c", "d", "e"}
	picked := s.Pick(eligible, 3)
	assert.Len(t, picked, 3)

	// Picks are drawn from the eligible set without duplicates.
	seen := map[string]struct{}{}
	for _, id := range picked {
		assert.Contains(t, eligible, id)
		_, dup := seen[id]
		assert.False(t, dup)
		seen[id] = struct{}{}
	}

	assert.Len(t, s.Pick(eligible, 10), 5)
	assert.Nil(t, s.Pick(eligible, 0))
	assert.Nil(t, s.Pick(nil, 3))
}

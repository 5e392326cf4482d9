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
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/leadpool/leadpool/internal/apierror"
	"github.com/leadpool/leadpool/internal/notification"
	"github.com/leadpool/leadpool/model"
)

// Subscribers are independent units of work; workers contend only on the
// ledger's insert-uniqueness, never on shared counters.
const distributionWorkers = 4

func (l *Leadpool) postDistributionActions(_ context.Context, result *model.DistributionResult) {
	go func() {
		err := l.SendWebhook(NewWebhook{
			Event:   "distribution.completed",
			Payload: result,
		})
		if err != nil {
			notification.NotifyError(err)
		}
	}()
}

// DistributeForPeriod delivers leads from the period's pool to every active
// subscriber, up to each plan's daily quota. Eligibility is always recomputed
// from the distribution ledger, so repeated invocations converge instead of
// over-delivering. One subscriber's failure is recorded in the aggregate
// result and never blocks the rest of the run.
func (l *Leadpool) DistributeForPeriod(ctx context.Context, period string) (*model.DistributionResult, error) {
	if err := model.ValidatePeriod(period); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, "Invalid period key", err)
	}

	poolLeadIDs, err := l.datasource.GetPoolLeadIDs(ctx, period)
	if err != nil {
		return nil, err
	}
	if len(poolLeadIDs) == 0 {
		return nil, apierror.NewAPIError(apierror.ErrPreconditionFailed, "No pool exists for period "+period, nil)
	}

	subscribers, err := l.datasource.GetActiveSubscribers(ctx)
	if err != nil {
		return nil, err
	}

	result := &model.DistributionResult{
		Period:        period,
		PerSubscriber: make([]model.SubscriberDistribution, len(subscribers)),
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, distributionWorkers)

	for i, sub := range subscribers {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, sub model.Subscriber) {
			defer wg.Done()
			defer func() { <-sem }()
			result.PerSubscriber[i] = l.distributeToSubscriber(ctx, period, sub, poolLeadIDs)
		}(i, sub)
	}
	wg.Wait()

	for _, per := range result.PerSubscriber {
		result.TotalDistributed += per.Distributed
	}

	logrus.Infof("distribution run for period %s delivered %d leads across %d subscribers",
		period, result.TotalDistributed, len(subscribers))

	l.postDistributionActions(ctx, result)
	return result, nil
}

func (l *Leadpool) distributeToSubscriber(ctx context.Context, period string, sub model.Subscriber, poolLeadIDs []string) model.SubscriberDistribution {
	per := model.SubscriberDistribution{
		SubscriberID: sub.SubscriberID,
		PlanTier:     sub.PlanTier,
		Quota:        QuotaForTier(sub.PlanTier),
	}

	received, err := l.datasource.GetDistributedLeadIDs(ctx, sub.SubscriberID, period)
	if err != nil {
		notification.NotifyError(err)
		per.Reason = model.DistributionFailed
		per.Error = err.Error()
		return per
	}

	receivedSet := make(map[string]struct{}, len(received))
	for _, id := range received {
		receivedSet[id] = struct{}{}
	}

	eligible := make([]string, 0, len(poolLeadIDs))
	for _, id := range poolLeadIDs {
		if _, ok := receivedSet[id]; !ok {
			eligible = append(eligible, id)
		}
	}

	// Remaining headroom under quota: the ledger count is recomputed every
	// run, which is what keeps re-invocation from over-delivering.
	remaining := per.Quota - len(received)
	if len(eligible) == 0 || remaining <= 0 {
		per.Reason = model.DistributionExhausted
		return per
	}

	picked := l.selector.Pick(eligible, remaining)

	for _, leadID := range picked {
		entry := &model.DistributionEntry{
			SubscriberID: sub.SubscriberID,
			LeadID:       leadID,
			Period:       period,
		}
		inserted, err := l.datasource.RecordDistribution(ctx, entry)
		if err != nil {
			notification.NotifyError(err)
			per.Reason = model.DistributionFailed
			per.Error = err.Error()
			return per
		}
		if !inserted {
			// Lost the insert race to a concurrent run; the lead was
			// delivered either way, just not by us.
			continue
		}

		assignment := &model.Assignment{
			SubscriberID: sub.SubscriberID,
			LeadID:       leadID,
			Source:       model.SourcePool,
			Period:       &entry.Period,
		}
		if _, err := l.datasource.CreateAssignment(ctx, assignment); err != nil {
			notification.NotifyError(err)
			per.Reason = model.DistributionFailed
			per.Error = err.Error()
			return per
		}

		per.Distributed++
	}

	per.Reason = model.DistributionDelivered
	return per
}

// GetDistributionsForPeriod exposes the ledger for audit and operational
// visibility.
func (l *Leadpool) GetDistributionsForPeriod(ctx context.Context, period string, limit, offset int) ([]model.DistributionEntry, error) {
	if err := model.ValidatePeriod(period); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, "Invalid period key", err)
	}
	return l.datasource.GetDistributionsForPeriod(ctx, period, limit, offset)
}

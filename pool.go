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

	"github.com/sirupsen/logrus"

	"github.com/leadpool/leadpool/config"
	"github.com/leadpool/leadpool/internal/apierror"
	"github.com/leadpool/leadpool/internal/notification"
	"github.com/leadpool/leadpool/model"
)

func (l *Leadpool) postPoolActions(_ context.Context, result *model.PoolResult) {
	go func() {
		err := l.SendWebhook(NewWebhook{
			Event:   "pool.generated",
			Payload: result,
		})
		if err != nil {
			notification.NotifyError(err)
		}
	}()
}

// GeneratePool draws up to the configured pool size from the ingest queue
// into the period's pool, oldest entries first. The operation is idempotent:
// if a pool already exists for the period it reports the existing membership
// and touches nothing new, so at-least-once cron triggers and manual retries
// are safe.
func (l *Leadpool) GeneratePool(ctx context.Context, period string) (*model.PoolResult, error) {
	if err := model.ValidatePeriod(period); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, "Invalid period key", err)
	}

	cfg, err := config.Fetch()
	if err != nil {
		return nil, err
	}

	existing, err := l.datasource.CountPoolMembers(ctx, period)
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		// A previous run may have crashed between inserting membership and
		// stamping the queue. Re-stamping is idempotent, so repair here
		// rather than leaving entries consumable by a future period.
		memberIDs, err := l.datasource.GetPoolLeadIDs(ctx, period)
		if err != nil {
			return nil, err
		}
		if err := l.datasource.MarkQueueEntriesAssigned(ctx, period, memberIDs); err != nil {
			return nil, err
		}
		return &model.PoolResult{
			Period:  period,
			Created: false,
			Count:   int(existing),
			Reason:  model.PoolExists,
		}, nil
	}

	entries, err := l.datasource.GetAvailableQueueEntries(ctx, cfg.Pool.Size)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return &model.PoolResult{
			Period:  period,
			Created: false,
			Count:   0,
			Reason:  model.PoolQueueEmpty,
		}, nil
	}

	leadIDs := make([]string, 0, len(entries))
	for _, entry := range entries {
		leadIDs = append(leadIDs, entry.LeadID)
	}

	inserted, err := l.datasource.CreatePoolMembers(ctx, period, leadIDs)
	if err != nil {
		return nil, err
	}
	if err := l.datasource.MarkQueueEntriesAssigned(ctx, period, leadIDs); err != nil {
		return nil, err
	}

	logrus.Infof("generated pool for period %s with %d leads", period, inserted)

	result := &model.PoolResult{
		Period:  period,
		Created: true,
		Count:   inserted,
		Reason:  model.PoolCreated,
	}
	l.postPoolActions(ctx, result)
	return result, nil
}

// GetPoolSummary reports a period's pool occupancy without mutating anything.
func (l *Leadpool) GetPoolSummary(ctx context.Context, period string) (*model.PoolResult, error) {
	if err := model.ValidatePeriod(period); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, "Invalid period key", err)
	}

	count, err := l.datasource.CountPoolMembers(ctx, period)
	if err != nil {
		return nil, err
	}

	reason := model.PoolExists
	if count == 0 {
		reason = model.PoolMissing
	}
	return &model.PoolResult{
		Period:  period,
		Created: false,
		Count:   int(count),
		Reason:  reason,
	}, nil
}

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

	"github.com/leadpool/leadpool/internal/apierror"
	"github.com/leadpool/leadpool/internal/notification"
	"github.com/leadpool/leadpool/model"
)

// Catalog pages read per iteration of the sequential walk. Bounds memory
// regardless of catalog size.
const sequentialPageSize = 500

// AssignSequential is the cursor-based top-up path. It walks the full lead
// catalog in sequence order starting at the subscriber's cursor, skipping
// leads the subscriber has ever held, wrapping at the catalog's end, and
// stops after at most one full revolution. Eligibility here is global
// ("ever assigned"), unlike the pool path's period-scoped ledger; the two
// policies share the assignment store but not their bookkeeping.
//
// A count of 0 requests the subscriber's plan quota.
func (l *Leadpool) AssignSequential(ctx context.Context, subscriberID string, count int) (*model.SequentialResult, error) {
	if count < 0 {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, "Count cannot be negative", nil)
	}

	sub, err := l.datasource.GetSubscriberByID(ctx, subscriberID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		count = QuotaForTier(sub.PlanTier)
	}

	catalogSize, err := l.datasource.CountLeads(ctx)
	if err != nil {
		return nil, err
	}
	if catalogSize == 0 {
		return &model.SequentialResult{
			SubscriberID: subscriberID,
			Assigned:     0,
			Cursor:       sub.CursorPosition,
		}, nil
	}

	held, err := l.datasource.GetAssignedLeadIDs(ctx, subscriberID)
	if err != nil {
		return nil, err
	}
	heldSet := make(map[string]struct{}, len(held))
	for _, id := range held {
		heldSet[id] = struct{}{}
	}

	cursor := sub.CursorPosition % catalogSize

	// Walk at most one full revolution of the catalog, collecting leads the
	// subscriber does not already hold.
	collected := []model.Lead{}
	var scanned int64
	position := cursor
	for scanned < catalogSize && len(collected) < count {
		pageSize := sequentialPageSize
		if remaining := catalogSize - scanned; remaining < int64(pageSize) {
			pageSize = int(remaining)
		}
		if tail := catalogSize - position; tail < int64(pageSize) {
			pageSize = int(tail)
		}

		page, err := l.datasource.GetLeadsBySequence(ctx, position, pageSize)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}

		for _, lead := range page {
			if len(collected) == count {
				break
			}
			if _, ok := heldSet[lead.LeadID]; ok {
				continue
			}
			collected = append(collected, lead)
		}

		scanned += int64(len(page))
		position = (position + int64(len(page))) % catalogSize
	}

	assigned := 0
	for _, lead := range collected {
		assignment := &model.Assignment{
			SubscriberID: subscriberID,
			LeadID:       lead.LeadID,
			Source:       model.SourceSequential,
		}
		inserted, err := l.datasource.CreateAssignment(ctx, assignment)
		if err != nil {
			notification.NotifyError(err)
			return nil, err
		}
		if inserted {
			assigned++
		}
	}

	newCursor := sub.CursorPosition
	if assigned > 0 {
		newCursor = (cursor + int64(assigned)) % catalogSize
		if err := l.datasource.UpdateSubscriberCursor(ctx, subscriberID, newCursor); err != nil {
			return nil, err
		}
	}

	logrus.Infof("sequential assignment for %s delivered %d leads, cursor %d -> %d",
		subscriberID, assigned, cursor, newCursor)

	result := &model.SequentialResult{
		SubscriberID: subscriberID,
		Assigned:     assigned,
		Cursor:       newCursor,
	}
	if assigned > 0 {
		go func() {
			if err := l.SendWebhook(NewWebhook{Event: "assignment.sequential", Payload: result}); err != nil {
				notification.NotifyError(err)
			}
		}()
	}
	return result, nil
}

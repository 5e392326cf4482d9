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

package database

import (
	"context"
	"time"

	"github.com/leadpool/leadpool/internal/apierror"
	"github.com/leadpool/leadpool/model"
)

// RecordDistribution appends one ledger row with insert-or-skip semantics.
// A conflict on (subscriber_id, lead_id, period) means the subscriber already
// received the lead this period; the call reports false without error, which
// is what makes concurrent and retried runs converge.
func (d Datasource) RecordDistribution(ctx context.Context, entry *model.DistributionEntry) (bool, error) {
	if entry.EntryID == "" {
		entry.EntryID = model.GenerateUUIDWithSuffix("dst")
	}
	entry.CreatedAt = time.Now()

	result, err := d.Conn.ExecContext(ctx, `
		INSERT INTO distribution_log (entry_id, subscriber_id, lead_id, period)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (subscriber_id, lead_id, period) DO NOTHING
	`, entry.EntryID, entry.SubscriberID, entry.LeadID, entry.Period)
	if err != nil {
		return false, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to record distribution", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return false, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to read distribution insert count", err)
	}
	return inserted == 1, nil
}

func (d Datasource) GetDistributedLeadIDs(ctx context.Context, subscriberID, period string) ([]string, error) {
	rows, err := d.Conn.QueryContext(ctx, `
		SELECT lead_id FROM distribution_log
		WHERE subscriber_id = $1 AND period = $2
	`, subscriberID, period)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve distributed leads", err)
	}
	defer rows.Close()

	leadIDs := []string{}
	for rows.Next() {
		var leadID string
		if err = rows.Scan(&leadID); err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan distributed lead", err)
		}
		leadIDs = append(leadIDs, leadID)
	}

	if err = rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error occurred while iterating over distributed leads", err)
	}

	return leadIDs, nil
}

func (d Datasource) CountDistributions(ctx context.Context, subscriberID, period string) (int64, error) {
	var count int64
	err := d.Conn.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM distribution_log
		WHERE subscriber_id = $1 AND period = $2
	`, subscriberID, period).Scan(&count)
	if err != nil {
		return 0, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to count distributions", err)
	}
	return count, nil
}

func (d Datasource) GetDistributionsForPeriod(ctx context.Context, period string, limit, offset int) ([]model.DistributionEntry, error) {
	rows, err := d.Conn.QueryContext(ctx, `
		SELECT entry_id, subscriber_id, lead_id, period, created_at
		FROM distribution_log
		WHERE period = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, period, limit, offset)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve distributions", err)
	}
	defer rows.Close()

	entries := []model.DistributionEntry{}
	for rows.Next() {
		entry := model.DistributionEntry{}
		err = rows.Scan(&entry.EntryID, &entry.SubscriberID, &entry.LeadID, &entry.Period, &entry.CreatedAt)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan distribution entry", err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error occurred while iterating over distributions", err)
	}

	return entries, nil
}

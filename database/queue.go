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

	"github.com/lib/pq"

	"github.com/leadpool/leadpool/internal/apierror"
	"github.com/leadpool/leadpool/model"
)

func (d Datasource) CreateQueueEntry(ctx context.Context, leadID, uploadBatch string) (model.QueueEntry, error) {
	entry := model.QueueEntry{
		LeadID:      leadID,
		UploadBatch: uploadBatch,
		UploadedAt:  time.Now(),
	}

	err := d.Conn.QueryRowContext(ctx, `
		INSERT INTO queue_entries (lead_id, upload_batch)
		VALUES ($1, $2)
		RETURNING queue_position
	`, leadID, uploadBatch).Scan(&entry.QueuePosition)

	if err != nil {
		pqErr, ok := err.(*pq.Error)
		if ok {
			switch pqErr.Code.Name() {
			case "unique_violation":
				return model.QueueEntry{}, apierror.NewAPIError(apierror.ErrConflict, "Lead is already queued", err)
			case "foreign_key_violation":
				return model.QueueEntry{}, apierror.NewAPIError(apierror.ErrNotFound, "Lead does not exist", err)
			default:
				return model.QueueEntry{}, apierror.NewAPIError(apierror.ErrInternalServer, "Database error occurred", err)
			}
		}
		return model.QueueEntry{}, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to create queue entry", err)
	}

	return entry, nil
}

// GetAvailableQueueEntries returns the oldest unconsumed entries in strict
// queue_position order. Pool generation reads its candidates through this.
func (d Datasource) GetAvailableQueueEntries(ctx context.Context, limit int) ([]model.QueueEntry, error) {
	rows, err := d.Conn.QueryContext(ctx, `
		SELECT queue_position, lead_id, upload_batch, uploaded_at, assigned_to_pool
		FROM queue_entries
		WHERE assigned_to_pool IS NULL
		ORDER BY queue_position ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve queue entries", err)
	}
	defer rows.Close()

	entries := []model.QueueEntry{}

	for rows.Next() {
		entry := model.QueueEntry{}
		err = rows.Scan(&entry.QueuePosition, &entry.LeadID, &entry.UploadBatch, &entry.UploadedAt, &entry.AssignedToPool)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan queue entry", err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error occurred while iterating over queue entries", err)
	}

	return entries, nil
}

// MarkQueueEntriesAssigned stamps the consumed entries with the period key.
// The IS NULL guard keeps the write idempotent: entries already consumed by
// an earlier attempt are left untouched.
func (d Datasource) MarkQueueEntriesAssigned(ctx context.Context, period string, leadIDs []string) error {
	if len(leadIDs) == 0 {
		return nil
	}

	_, err := d.Conn.ExecContext(ctx, `
		UPDATE queue_entries
		SET assigned_to_pool = $1
		WHERE lead_id = ANY($2) AND assigned_to_pool IS NULL
	`, period, pq.Array(leadIDs))
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to mark queue entries assigned", err)
	}
	return nil
}

func (d Datasource) CountUnassignedQueueEntries(ctx context.Context) (int64, error) {
	var count int64
	err := d.Conn.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM queue_entries WHERE assigned_to_pool IS NULL
	`).Scan(&count)
	if err != nil {
		return 0, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to count unassigned queue entries", err)
	}
	return count, nil
}

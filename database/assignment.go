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

// CreateAssignment materializes one "my leads" row with insert-or-skip
// semantics. A subscriber's assignment list holds each lead at most once no
// matter which allocation policy delivered it.
func (d Datasource) CreateAssignment(ctx context.Context, a *model.Assignment) (bool, error) {
	if a.AssignmentID == "" {
		a.AssignmentID = model.GenerateUUIDWithSuffix("asn")
	}
	a.AssignedAt = time.Now()

	result, err := d.Conn.ExecContext(ctx, `
		INSERT INTO assignments (assignment_id, subscriber_id, lead_id, source, period)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (subscriber_id, lead_id) DO NOTHING
	`, a.AssignmentID, a.SubscriberID, a.LeadID, a.Source, a.Period)
	if err != nil {
		return false, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to create assignment", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return false, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to read assignment insert count", err)
	}
	return inserted == 1, nil
}

func (d Datasource) GetAssignedLeadIDs(ctx context.Context, subscriberID string) ([]string, error) {
	rows, err := d.Conn.QueryContext(ctx, `
		SELECT lead_id FROM assignments WHERE subscriber_id = $1
	`, subscriberID)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve assigned leads", err)
	}
	defer rows.Close()

	leadIDs := []string{}
	for rows.Next() {
		var leadID string
		if err = rows.Scan(&leadID); err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan assigned lead", err)
		}
		leadIDs = append(leadIDs, leadID)
	}

	if err = rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error occurred while iterating over assigned leads", err)
	}

	return leadIDs, nil
}

func (d Datasource) GetAssignments(ctx context.Context, subscriberID string, limit, offset int) ([]model.Assignment, error) {
	rows, err := d.Conn.QueryContext(ctx, `
		SELECT assignment_id, subscriber_id, lead_id, source, period, assigned_at
		FROM assignments
		WHERE subscriber_id = $1
		ORDER BY assigned_at DESC
		LIMIT $2 OFFSET $3
	`, subscriberID, limit, offset)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve assignments", err)
	}
	defer rows.Close()

	assignments := []model.Assignment{}
	for rows.Next() {
		a := model.Assignment{}
		err = rows.Scan(&a.AssignmentID, &a.SubscriberID, &a.LeadID, &a.Source, &a.Period, &a.AssignedAt)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan assignment", err)
		}
		assignments = append(assignments, a)
	}

	if err = rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error occurred while iterating over assignments", err)
	}

	return assignments, nil
}

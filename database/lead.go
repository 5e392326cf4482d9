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
	"database/sql"
	"encoding/json"
	"time"

	"github.com/lib/pq"

	"github.com/leadpool/leadpool/internal/apierror"
	"github.com/leadpool/leadpool/model"
)

func (d Datasource) CreateLead(ctx context.Context, lead model.Lead) (model.Lead, error) {
	contactJSON, err := json.Marshal(lead.Contact)
	if err != nil {
		return model.Lead{}, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to marshal contact payload", err)
	}

	if lead.LeadID == "" {
		lead.LeadID = model.GenerateUUIDWithSuffix("lea")
	}
	lead.CreatedAt = time.Now()

	err = d.Conn.QueryRowContext(ctx, `
		INSERT INTO leads (lead_id, contact)
		VALUES ($1, $2)
		RETURNING sequence_number
	`, lead.LeadID, contactJSON).Scan(&lead.SequenceNumber)

	if err != nil {
		pqErr, ok := err.(*pq.Error)
		if ok {
			switch pqErr.Code.Name() {
			case "unique_violation":
				return model.Lead{}, apierror.NewAPIError(apierror.ErrConflict, "Lead with this ID already exists", err)
			default:
				return model.Lead{}, apierror.NewAPIError(apierror.ErrInternalServer, "Database error occurred", err)
			}
		}
		return model.Lead{}, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to create lead", err)
	}

	return lead, nil
}

func (d Datasource) GetLeadByID(ctx context.Context, id string) (*model.Lead, error) {
	lead := model.Lead{}

	row := d.Conn.QueryRowContext(ctx, `
		SELECT sequence_number, lead_id, contact, created_at
		FROM leads
		WHERE lead_id = $1
	`, id)

	var contactJSON []byte
	err := row.Scan(&lead.SequenceNumber, &lead.LeadID, &contactJSON, &lead.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apierror.NewAPIError(apierror.ErrNotFound, "Lead not found", err)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve lead", err)
	}

	err = json.Unmarshal(contactJSON, &lead.Contact)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to unmarshal contact payload", err)
	}

	return &lead, nil
}

func (d Datasource) CountLeads(ctx context.Context) (int64, error) {
	var count int64
	err := d.Conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM leads`).Scan(&count)
	if err != nil {
		return 0, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to count leads", err)
	}
	return count, nil
}

// GetLeadsBySequence pages the catalog in global FIFO order. Sequential
// assignment walks the catalog through this method so scans stay bounded.
func (d Datasource) GetLeadsBySequence(ctx context.Context, offset int64, limit int) ([]model.Lead, error) {
	rows, err := d.Conn.QueryContext(ctx, `
		SELECT sequence_number, lead_id, contact, created_at
		FROM leads
		ORDER BY sequence_number ASC
		OFFSET $1 LIMIT $2
	`, offset, limit)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve leads", err)
	}
	defer rows.Close()

	leads := []model.Lead{}

	for rows.Next() {
		lead := model.Lead{}
		var contactJSON []byte
		err = rows.Scan(&lead.SequenceNumber, &lead.LeadID, &contactJSON, &lead.CreatedAt)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan lead data", err)
		}

		err = json.Unmarshal(contactJSON, &lead.Contact)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to unmarshal contact payload", err)
		}

		leads = append(leads, lead)
	}

	if err = rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error occurred while iterating over leads", err)
	}

	return leads, nil
}

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

	"github.com/leadpool/leadpool/internal/apierror"
	"github.com/leadpool/leadpool/model"
)

// IngestLead creates a catalog record and appends it to the ingest queue in
// one call. This is the narrow write surface the external upload pipeline
// uses; the engine itself only ever reads the catalog.
func (l *Leadpool) IngestLead(ctx context.Context, contact map[string]interface{}, uploadBatch string) (*model.Lead, error) {
	lead, err := l.datasource.CreateLead(ctx, model.Lead{Contact: contact})
	if err != nil {
		return nil, err
	}

	_, err = l.datasource.CreateQueueEntry(ctx, lead.LeadID, uploadBatch)
	if err != nil {
		return nil, err
	}

	return &lead, nil
}

// IngestLeads bulk-ingests a batch of contact payloads under one upload
// batch tag. Entries land in the queue in slice order, preserving the
// upload's arrival order.
func (l *Leadpool) IngestLeads(ctx context.Context, contacts []map[string]interface{}, uploadBatch string) ([]model.Lead, error) {
	if len(contacts) == 0 {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, "No leads supplied", nil)
	}

	leads := make([]model.Lead, 0, len(contacts))
	for _, contact := range contacts {
		lead, err := l.IngestLead(ctx, contact, uploadBatch)
		if err != nil {
			return leads, err
		}
		leads = append(leads, *lead)
	}
	return leads, nil
}

func (l *Leadpool) GetLeadByID(ctx context.Context, id string) (*model.Lead, error) {
	return l.datasource.GetLeadByID(ctx, id)
}

// GetAssignments lists a subscriber's "my leads" rows, newest first.
func (l *Leadpool) GetAssignments(ctx context.Context, subscriberID string, limit, offset int) ([]model.Assignment, error) {
	return l.datasource.GetAssignments(ctx, subscriberID, limit, offset)
}

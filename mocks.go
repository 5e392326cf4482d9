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
	"fmt"
	"sync"
	"time"

	"github.com/leadpool/leadpool/internal/apierror"
	"github.com/leadpool/leadpool/model"
)

// MockDataSource is an in-memory database.IDataSource used by the engine
// tests. It mirrors the storage layer's duplicate-safe semantics (unique
// constraints become insert-or-skip) so idempotence properties can be
// exercised without a database. Error hooks let individual tests inject
// per-subscriber failures.
type MockDataSource struct {
	mu sync.Mutex

	leads       []model.Lead
	queue       []model.QueueEntry
	poolPeriods map[string][]string
	poolSets    map[string]map[string]struct{}
	ledger      map[string][]model.DistributionEntry // key: subscriber|period
	ledgerSet   map[string]struct{}                  // key: subscriber|lead|period
	assignments map[string][]model.Assignment        // key: subscriber
	assignSet   map[string]struct{}                  // key: subscriber|lead
	subscribers map[string]*model.Subscriber

	nextSequence int64
	nextPosition int64

	// GetDistributedLeadIDsErr, when set, fails ledger reads for the given
	// subscriber. Used to test per-subscriber failure isolation.
	GetDistributedLeadIDsErr map[string]error
}

func NewMockDataSource() *MockDataSource {
	return &MockDataSource{
		poolPeriods: map[string][]string{},
		poolSets:    map[string]map[string]struct{}{},
		ledger:      map[string][]model.DistributionEntry{},
		ledgerSet:   map[string]struct{}{},
		assignments: map[string][]model.Assignment{},
		assignSet:   map[string]struct{}{},
		subscribers: map[string]*model.Subscriber{},
	}
}

func (m *MockDataSource) CreateLead(_ context.Context, lead model.Lead) (model.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if lead.LeadID == "" {
		lead.LeadID = model.GenerateUUIDWithSuffix("lea")
	}
	m.nextSequence++
	lead.SequenceNumber = m.nextSequence
	lead.CreatedAt = time.Now()
	m.leads = append(m.leads, lead)
	return lead, nil
}

func (m *MockDataSource) GetLeadByID(_ context.Context, id string) (*model.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.leads {
		if m.leads[i].LeadID == id {
			lead := m.leads[i]
			return &lead, nil
		}
	}
	return nil, apierror.NewAPIError(apierror.ErrNotFound, "Lead not found", nil)
}

func (m *MockDataSource) CountLeads(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.leads)), nil
}

func (m *MockDataSource) GetLeadsBySequence(_ context.Context, offset int64, limit int) ([]model.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if offset >= int64(len(m.leads)) {
		return []model.Lead{}, nil
	}
	end := offset + int64(limit)
	if end > int64(len(m.leads)) {
		end = int64(len(m.leads))
	}
	page := make([]model.Lead, end-offset)
	copy(page, m.leads[offset:end])
	return page, nil
}

func (m *MockDataSource) CreateQueueEntry(_ context.Context, leadID, uploadBatch string) (model.QueueEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, entry := range m.queue {
		if entry.LeadID == leadID {
			return model.QueueEntry{}, apierror.NewAPIError(apierror.ErrConflict, "Lead is already queued", nil)
		}
	}

	m.nextPosition++
	entry := model.QueueEntry{
		QueuePosition: m.nextPosition,
		LeadID:        leadID,
		UploadBatch:   uploadBatch,
		UploadedAt:    time.Now(),
	}
	m.queue = append(m.queue, entry)
	return entry, nil
}

func (m *MockDataSource) GetAvailableQueueEntries(_ context.Context, limit int) ([]model.QueueEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	available := []model.QueueEntry{}
	for _, entry := range m.queue {
		if entry.AssignedToPool == nil {
			available = append(available, entry)
			if len(available) == limit {
				break
			}
		}
	}
	return available, nil
}

func (m *MockDataSource) MarkQueueEntriesAssigned(_ context.Context, period string, leadIDs []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make(map[string]struct{}, len(leadIDs))
	for _, id := range leadIDs {
		ids[id] = struct{}{}
	}
	for i := range m.queue {
		if _, ok := ids[m.queue[i].LeadID]; ok && m.queue[i].AssignedToPool == nil {
			p := period
			m.queue[i].AssignedToPool = &p
		}
	}
	return nil
}

func (m *MockDataSource) CountUnassignedQueueEntries(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var count int64
	for _, entry := range m.queue {
		if entry.AssignedToPool == nil {
			count++
		}
	}
	return count, nil
}

func (m *MockDataSource) CreatePoolMembers(_ context.Context, period string, leadIDs []string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.poolSets[period] == nil {
		m.poolSets[period] = map[string]struct{}{}
	}
	inserted := 0
	for _, id := range leadIDs {
		if _, ok := m.poolSets[period][id]; ok {
			continue
		}
		m.poolSets[period][id] = struct{}{}
		m.poolPeriods[period] = append(m.poolPeriods[period], id)
		inserted++
	}
	return inserted, nil
}

func (m *MockDataSource) GetPoolLeadIDs(_ context.Context, period string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, len(m.poolPeriods[period]))
	copy(ids, m.poolPeriods[period])
	return ids, nil
}

func (m *MockDataSource) CountPoolMembers(_ context.Context, period string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.poolPeriods[period])), nil
}

func ledgerKey(subscriberID, period string) string {
	return subscriberID + "|" + period
}

func (m *MockDataSource) RecordDistribution(_ context.Context, entry *model.DistributionEntry) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := fmt.Sprintf("%s|%s|%s", entry.SubscriberID, entry.LeadID, entry.Period)
	if _, ok := m.ledgerSet[key]; ok {
		return false, nil
	}

	if entry.EntryID == "" {
		entry.EntryID = model.GenerateUUIDWithSuffix("dst")
	}
	entry.CreatedAt = time.Now()
	m.ledgerSet[key] = struct{}{}
	lk := ledgerKey(entry.SubscriberID, entry.Period)
	m.ledger[lk] = append(m.ledger[lk], *entry)
	return true, nil
}

func (m *MockDataSource) GetDistributedLeadIDs(_ context.Context, subscriberID, period string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.GetDistributedLeadIDsErr[subscriberID]; ok {
		return nil, err
	}

	entries := m.ledger[ledgerKey(subscriberID, period)]
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.LeadID)
	}
	return ids, nil
}

func (m *MockDataSource) CountDistributions(_ context.Context, subscriberID, period string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.ledger[ledgerKey(subscriberID, period)])), nil
}

func (m *MockDataSource) GetDistributionsForPeriod(_ context.Context, period string, limit, offset int) ([]model.DistributionEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := []model.DistributionEntry{}
	for key, entries := range m.ledger {
		_ = key
		for _, entry := range entries {
			if entry.Period == period {
				all = append(all, entry)
			}
		}
	}
	if offset >= len(all) {
		return []model.DistributionEntry{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (m *MockDataSource) CreateAssignment(_ context.Context, a *model.Assignment) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := a.SubscriberID + "|" + a.LeadID
	if _, ok := m.assignSet[key]; ok {
		return false, nil
	}

	if a.AssignmentID == "" {
		a.AssignmentID = model.GenerateUUIDWithSuffix("asn")
	}
	a.AssignedAt = time.Now()
	m.assignSet[key] = struct{}{}
	m.assignments[a.SubscriberID] = append(m.assignments[a.SubscriberID], *a)
	return true, nil
}

func (m *MockDataSource) GetAssignedLeadIDs(_ context.Context, subscriberID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.assignments[subscriberID]))
	for _, a := range m.assignments[subscriberID] {
		ids = append(ids, a.LeadID)
	}
	return ids, nil
}

func (m *MockDataSource) GetAssignments(_ context.Context, subscriberID string, limit, offset int) ([]model.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := m.assignments[subscriberID]
	if offset >= len(all) {
		return []model.Assignment{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	page := make([]model.Assignment, end-offset)
	copy(page, all[offset:end])
	return page, nil
}

func (m *MockDataSource) CreateSubscriber(_ context.Context, s model.Subscriber) (model.Subscriber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s.SubscriberID == "" {
		s.SubscriberID = model.GenerateUUIDWithSuffix("sub")
	}
	if existing, ok := m.subscribers[s.SubscriberID]; ok {
		existing.PlanTier = s.PlanTier
		existing.Status = s.Status
		s.CursorPosition = existing.CursorPosition
		return s, nil
	}

	s.CreatedAt = time.Now()
	clone := s
	m.subscribers[s.SubscriberID] = &clone
	return s, nil
}

func (m *MockDataSource) GetSubscriberByID(_ context.Context, id string) (*model.Subscriber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.subscribers[id]
	if !ok {
		return nil, apierror.NewAPIError(apierror.ErrNotFound, "Subscriber not found", nil)
	}
	clone := *s
	return &clone, nil
}

func (m *MockDataSource) GetActiveSubscribers(_ context.Context) ([]model.Subscriber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	active := []model.Subscriber{}
	for _, s := range m.subscribers {
		if s.Status == model.StatusActive {
			active = append(active, *s)
		}
	}
	return active, nil
}

func (m *MockDataSource) UpdateSubscriberCursor(_ context.Context, id string, cursor int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.subscribers[id]
	if !ok {
		return apierror.NewAPIError(apierror.ErrNotFound, "Subscriber not found", nil)
	}
	s.CursorPosition = cursor
	return nil
}

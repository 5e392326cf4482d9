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

	"github.com/leadpool/leadpool/model"
)

// IDataSource defines the interface for data source operations, grouping related functionalities.
type IDataSource interface {
	lead         // Interface for lead catalog operations
	queue        // Interface for ingest queue operations
	pool         // Interface for monthly pool operations
	distribution // Interface for distribution ledger operations
	assignment   // Interface for assignment store operations
	subscriber   // Interface for subscriber roster operations
}

// lead defines methods for the lead catalog. The engine reads the catalog;
// only the ingest surface writes it.
type lead interface {
	CreateLead(ctx context.Context, lead model.Lead) (model.Lead, error)                // Creates a catalog record
	GetLeadByID(ctx context.Context, id string) (*model.Lead, error)                    // Retrieves a lead by ID
	CountLeads(ctx context.Context) (int64, error)                                      // Total catalog size
	GetLeadsBySequence(ctx context.Context, offset int64, limit int) ([]model.Lead, error) // Pages the catalog in sequence order
}

// queue defines methods for the append-only ingest queue.
type queue interface {
	CreateQueueEntry(ctx context.Context, leadID, uploadBatch string) (model.QueueEntry, error) // Appends a lead to the queue
	GetAvailableQueueEntries(ctx context.Context, limit int) ([]model.QueueEntry, error)        // Oldest unconsumed entries, FIFO
	MarkQueueEntriesAssigned(ctx context.Context, period string, leadIDs []string) error        // Consumes entries into a period's pool
	CountUnassignedQueueEntries(ctx context.Context) (int64, error)                             // Queue backlog for runway reporting
}

// pool defines methods for period-scoped pool membership.
type pool interface {
	CreatePoolMembers(ctx context.Context, period string, leadIDs []string) (int, error) // Duplicate-safe membership insert
	GetPoolLeadIDs(ctx context.Context, period string) ([]string, error)                 // Membership for a period
	CountPoolMembers(ctx context.Context, period string) (int64, error)                  // Pool size for a period
}

// distribution defines methods for the append-only distribution ledger.
type distribution interface {
	RecordDistribution(ctx context.Context, entry *model.DistributionEntry) (bool, error)                                // Insert-or-skip; reports whether a row landed
	GetDistributedLeadIDs(ctx context.Context, subscriberID, period string) ([]string, error)                            // Leads already delivered this period
	CountDistributions(ctx context.Context, subscriberID, period string) (int64, error)                                  // Delivered count for quota audits
	GetDistributionsForPeriod(ctx context.Context, period string, limit, offset int) ([]model.DistributionEntry, error)  // Audit listing
}

// assignment defines methods for the shared "my leads" store.
type assignment interface {
	CreateAssignment(ctx context.Context, a *model.Assignment) (bool, error)                                   // Insert-or-skip; reports whether a row landed
	GetAssignedLeadIDs(ctx context.Context, subscriberID string) ([]string, error)                             // Every lead ever assigned to the subscriber
	GetAssignments(ctx context.Context, subscriberID string, limit, offset int) ([]model.Assignment, error)    // Subscriber's assignment listing
}

// subscriber defines methods for the subscriber roster. Roster rows are
// synced from the external billing system; the engine owns cursor_position.
type subscriber interface {
	CreateSubscriber(ctx context.Context, s model.Subscriber) (model.Subscriber, error) // Upserts a roster row
	GetSubscriberByID(ctx context.Context, id string) (*model.Subscriber, error)        // Retrieves a subscriber by ID
	GetActiveSubscribers(ctx context.Context) ([]model.Subscriber, error)               // Active roster snapshot
	UpdateSubscriberCursor(ctx context.Context, id string, cursor int64) error          // Advances the sequential-mode cursor
}

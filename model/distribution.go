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

package model

import "time"

// Assignment sources.
const (
	SourcePool       = "pool"
	SourceSequential = "sequential"
)

// Per-subscriber reason codes for a distribution run.
const (
	DistributionDelivered = "delivered"
	DistributionExhausted = "exhausted"
	DistributionFailed    = "failed"
)

// DistributionEntry is one row of the distribution ledger: subscriber X
// received lead Y in period P. Entries are append-only and unique on
// (subscriber, lead, period); that uniqueness is the no-duplicate guarantee.
type DistributionEntry struct {
	EntryID      string    `json:"entry_id"`
	SubscriberID string    `json:"subscriber_id"`
	LeadID       string    `json:"lead_id"`
	Period       string    `json:"period"`
	CreatedAt    time.Time `json:"created_at"`
}

// Assignment is a subscriber-facing "my leads" row, materialized once per
// delivery regardless of which allocation policy produced it.
type Assignment struct {
	AssignmentID string    `json:"assignment_id"`
	SubscriberID string    `json:"subscriber_id"`
	LeadID       string    `json:"lead_id"`
	Source       string    `json:"source"`
	Period       *string   `json:"period,omitempty"`
	AssignedAt   time.Time `json:"assigned_at"`
}

// SubscriberDistribution is the per-subscriber breakdown of one run.
type SubscriberDistribution struct {
	SubscriberID string `json:"subscriber_id"`
	PlanTier     string `json:"plan_tier"`
	Quota        int    `json:"quota"`
	Distributed  int    `json:"distributed"`
	Reason       string `json:"reason"`
	Error        string `json:"error,omitempty"`
}

// DistributionResult aggregates a full run of the distribution engine for a
// period. Subscribers skipped for exhaustion and subscribers that failed are
// both recorded; a per-subscriber failure never aborts the run.
type DistributionResult struct {
	Period           string                   `json:"period"`
	TotalDistributed int                      `json:"total_distributed"`
	PerSubscriber    []SubscriberDistribution `json:"per_subscriber"`
}

// SequentialResult is the outcome of a sequential (cursor-based) top-up.
type SequentialResult struct {
	SubscriberID string `json:"subscriber_id"`
	Assigned     int    `json:"assigned"`
	Cursor       int64  `json:"cursor"`
}

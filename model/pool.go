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

// Reason codes for PoolResult.
const (
	PoolCreated    = "created"
	PoolExists     = "exists"
	PoolQueueEmpty = "queue_empty"
	PoolMissing    = "no_pool"
)

// PoolMember is one (period, lead) membership row. Membership is write-once:
// a pool never receives top-ups after creation.
type PoolMember struct {
	Period    string    `json:"period"`
	LeadID    string    `json:"lead_id"`
	CreatedAt time.Time `json:"created_at"`
}

// PoolResult is the outcome of a pool generation call. Created is false both
// when the pool already existed and when the queue had nothing to offer; the
// Reason code distinguishes the two.
type PoolResult struct {
	Period  string `json:"period"`
	Created bool   `json:"created"`
	Count   int    `json:"count"`
	Reason  string `json:"reason"`
}

// Runway status classifications.
const (
	RunwayHealthy  = "healthy"
	RunwayWarning  = "warning"
	RunwayCritical = "critical"
)

// RunwayReport estimates how many future periods the queue backlog can still
// supply full pools for.
type RunwayReport struct {
	UnassignedCount int64  `json:"unassigned_count"`
	PoolSize        int    `json:"pool_size"`
	RunwayPeriods   int64  `json:"runway_periods"`
	Status          string `json:"status"`
}

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

const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusCancelled = "cancelled"
)

const (
	TierStarter      = "starter"
	TierStandard     = "standard"
	TierProfessional = "professional"
	TierEnterprise   = "enterprise"
)

// Subscriber is the engine's view of a paying customer. The roster itself is
// owned by the external billing system; the engine owns only CursorPosition,
// the sequential-mode pointer into the lead catalog.
type Subscriber struct {
	ID             int64     `json:"-"`
	SubscriberID   string    `json:"subscriber_id"`
	PlanTier       string    `json:"plan_tier"`
	Status         string    `json:"status"`
	CursorPosition int64     `json:"cursor_position"`
	CreatedAt      time.Time `json:"created_at"`
}

// IsActive reports whether the subscriber is eligible to receive leads.
func (s *Subscriber) IsActive() bool {
	return s.Status == StatusActive
}

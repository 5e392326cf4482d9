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

// Lead is a catalog record. The engine treats the contact payload as opaque;
// leads are immutable once created and are never deleted by the engine.
type Lead struct {
	LeadID         string                 `json:"lead_id"`
	SequenceNumber int64                  `json:"sequence_number"`
	Contact        map[string]interface{} `json:"contact"`
	CreatedAt      time.Time              `json:"created_at"`
}

// QueueEntry is one lead awaiting (or having received) pool assignment.
// AssignedToPool is write-once: nil means available, a period key means the
// entry has been permanently consumed by that period's pool.
type QueueEntry struct {
	QueuePosition  int64     `json:"queue_position"`
	LeadID         string    `json:"lead_id"`
	UploadBatch    string    `json:"upload_batch"`
	UploadedAt     time.Time `json:"uploaded_at"`
	AssignedToPool *string   `json:"assigned_to_pool"`
}

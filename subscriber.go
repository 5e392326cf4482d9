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

	"github.com/leadpool/leadpool/model"
)

// SyncSubscriber upserts a roster row from the external billing system.
// Plan tier and status follow the billing system; the sequential-mode cursor
// stays untouched across re-syncs.
func (l *Leadpool) SyncSubscriber(ctx context.Context, sub model.Subscriber) (model.Subscriber, error) {
	if sub.Status == "" {
		sub.Status = model.StatusActive
	}
	if sub.PlanTier == "" {
		sub.PlanTier = model.TierStarter
	}
	return l.datasource.CreateSubscriber(ctx, sub)
}

func (l *Leadpool) GetSubscriberByID(ctx context.Context, id string) (*model.Subscriber, error) {
	return l.datasource.GetSubscriberByID(ctx, id)
}

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
	"time"

	"github.com/leadpool/leadpool/internal/apierror"
	"github.com/leadpool/leadpool/model"
)

// CreateSubscriber upserts a roster row. The billing system is the source of
// truth for plan tier and status, so a re-sync updates those in place while
// cursor_position, which this engine owns, is left alone.
func (d Datasource) CreateSubscriber(ctx context.Context, s model.Subscriber) (model.Subscriber, error) {
	if s.SubscriberID == "" {
		s.SubscriberID = model.GenerateUUIDWithSuffix("sub")
	}
	s.CreatedAt = time.Now()

	err := d.Conn.QueryRowContext(ctx, `
		INSERT INTO subscribers (subscriber_id, plan_tier, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (subscriber_id) DO UPDATE SET
			plan_tier = EXCLUDED.plan_tier,
			status = EXCLUDED.status
		RETURNING cursor_position
	`, s.SubscriberID, s.PlanTier, s.Status).Scan(&s.CursorPosition)

	if err != nil {
		return model.Subscriber{}, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to upsert subscriber", err)
	}

	return s, nil
}

func (d Datasource) GetSubscriberByID(ctx context.Context, id string) (*model.Subscriber, error) {
	s := model.Subscriber{}

	row := d.Conn.QueryRowContext(ctx, `
		SELECT subscriber_id, plan_tier, status, cursor_position, created_at
		FROM subscribers
		WHERE subscriber_id = $1
	`, id)

	err := row.Scan(&s.SubscriberID, &s.PlanTier, &s.Status, &s.CursorPosition, &s.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apierror.NewAPIError(apierror.ErrNotFound, "Subscriber not found", err)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve subscriber", err)
	}

	return &s, nil
}

func (d Datasource) GetActiveSubscribers(ctx context.Context) ([]model.Subscriber, error) {
	rows, err := d.Conn.QueryContext(ctx, `
		SELECT subscriber_id, plan_tier, status, cursor_position, created_at
		FROM subscribers
		WHERE status = $1
		ORDER BY created_at ASC
	`, model.StatusActive)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve active subscribers", err)
	}
	defer rows.Close()

	subscribers := []model.Subscriber{}
	for rows.Next() {
		s := model.Subscriber{}
		err = rows.Scan(&s.SubscriberID, &s.PlanTier, &s.Status, &s.CursorPosition, &s.CreatedAt)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan subscriber", err)
		}
		subscribers = append(subscribers, s)
	}

	if err = rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error occurred while iterating over subscribers", err)
	}

	return subscribers, nil
}

func (d Datasource) UpdateSubscriberCursor(ctx context.Context, id string, cursor int64) error {
	result, err := d.Conn.ExecContext(ctx, `
		UPDATE subscribers SET cursor_position = $1 WHERE subscriber_id = $2
	`, cursor, id)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to update subscriber cursor", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to read cursor update count", err)
	}
	if affected == 0 {
		return apierror.NewAPIError(apierror.ErrNotFound, "Subscriber not found", nil)
	}
	return nil
}

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
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/leadpool/leadpool/internal/apierror"
	"github.com/leadpool/leadpool/model"
)

func TestCreateSubscriber_Upsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ds := Datasource{Conn: db}

	mock.ExpectQuery("INSERT INTO subscribers").
		WithArgs("sub_1", model.TierStandard, model.StatusActive).
		WillReturnRows(sqlmock.NewRows([]string{"cursor_position"}).AddRow(int64(12)))

	s, err := ds.CreateSubscriber(context.Background(), model.Subscriber{
		SubscriberID: "sub_1",
		PlanTier:     model.TierStandard,
		Status:       model.StatusActive,
	})
	assert.NoError(t, err)
	// An upsert re-sync must not reset the engine-owned cursor.
	assert.Equal(t, int64(12), s.CursorPosition)
}

func TestGetActiveSubscribers(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ds := Datasource{Conn: db}

	rows := sqlmock.NewRows([]string{"subscriber_id", "plan_tier", "status", "cursor_position", "created_at"}).
		AddRow("sub_1", model.TierStarter, model.StatusActive, int64(0), time.Now()).
		AddRow("sub_2", model.TierEnterprise, model.StatusActive, int64(40), time.Now())

	mock.ExpectQuery("SELECT subscriber_id, plan_tier, status, cursor_position, created_at FROM subscribers WHERE status").
		WithArgs(model.StatusActive).
		WillReturnRows(rows)

	subs, err := ds.GetActiveSubscribers(context.Background())
	assert.NoError(t, err)
	assert.Len(t, subs, 2)
	assert.Equal(t, "sub_2", subs[1].SubscriberID)
	assert.Equal(t, int64(40), subs[1].CursorPosition)
}

func TestUpdateSubscriberCursor_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ds := Datasource{Conn: db}

	mock.ExpectExec("UPDATE subscribers SET cursor_position").
		WithArgs(int64(3), "sub_missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = ds.UpdateSubscriberCursor(context.Background(), "sub_missing", 3)
	assert.Error(t, err)
	apiErr, ok := err.(apierror.APIError)
	assert.True(t, ok)
	assert.Equal(t, apierror.ErrNotFound, apiErr.Code)
}

func TestUpdateSubscriberCursor_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ds := Datasource{Conn: db}

	mock.ExpectExec("UPDATE subscribers SET cursor_position").
		WithArgs(int64(3), "sub_1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, ds.UpdateSubscriberCursor(context.Background(), "sub_1", 3))
}

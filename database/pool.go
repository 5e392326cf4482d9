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

	"github.com/lib/pq"

	"github.com/leadpool/leadpool/internal/apierror"
)

// CreatePoolMembers inserts membership rows for the period in one statement.
// ON CONFLICT DO NOTHING makes the insert duplicate-safe, so a retried or
// concurrent generation run converges on the same membership instead of
// erroring. Returns the number of rows actually inserted.
func (d Datasource) CreatePoolMembers(ctx context.Context, period string, leadIDs []string) (int, error) {
	if len(leadIDs) == 0 {
		return 0, nil
	}

	result, err := d.Conn.ExecContext(ctx, `
		INSERT INTO pool_members (period, lead_id)
		SELECT $1, unnest($2::text[])
		ON CONFLICT (period, lead_id) DO NOTHING
	`, period, pq.Array(leadIDs))
	if err != nil {
		return 0, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to create pool members", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return 0, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to read pool insert count", err)
	}
	return int(inserted), nil
}

func (d Datasource) GetPoolLeadIDs(ctx context.Context, period string) ([]string, error) {
	rows, err := d.Conn.QueryContext(ctx, `
		SELECT lead_id FROM pool_members WHERE period = $1 ORDER BY id ASC
	`, period)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve pool members", err)
	}
	defer rows.Close()

	leadIDs := []string{}
	for rows.Next() {
		var leadID string
		if err = rows.Scan(&leadID); err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan pool member", err)
		}
		leadIDs = append(leadIDs, leadID)
	}

	if err = rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error occurred while iterating over pool members", err)
	}

	return leadIDs, nil
}

func (d Datasource) CountPoolMembers(ctx context.Context, period string) (int64, error) {
	var count int64
	err := d.Conn.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM pool_members WHERE period = $1
	`, period).Scan(&count)
	if err != nil {
		return 0, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to count pool members", err)
	}
	return count, nil
}

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
	"database/sql"
	"log"
	"sync"

	_ "github.com/lib/pq"

	"github.com/leadpool/leadpool/config"
)

// Declare a package-level variable to hold the singleton instance.
// Ensure the instance is not accessible outside the package.
var instance *Datasource
var once sync.Once

type Datasource struct {
	Conn *sql.DB
}

func NewDataSource(configuration *config.Configuration) (IDataSource, error) {
	con, err := GetDBConnection(configuration)
	if err != nil {
		return nil, err
	}
	return con, nil
}

// GetDBConnection provides a global access point to the instance and initializes it if it's not already.
func GetDBConnection(configuration *config.Configuration) (*Datasource, error) {
	var err error
	once.Do(func() {
		con, errConn := ConnectDB(configuration.DataSource.Dns)
		if errConn != nil {
			err = errConn
			return
		}
		instance = &Datasource{Conn: con}
	})
	if err != nil {
		return nil, err
	}
	return instance, nil
}

func ConnectDB(dns string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dns)
	if err != nil {
		return nil, err
	}
	err = db.Ping()
	if err != nil {
		log.Printf("database Connection error ❌: %v", err)
		return nil, err
	}
	err = createLeadTable(db)
	if err != nil {
		return nil, err
	}
	err = createSubscriberTable(db)
	if err != nil {
		return nil, err
	}
	err = createQueueEntryTable(db)
	if err != nil {
		return nil, err
	}
	err = createPoolMemberTable(db)
	if err != nil {
		return nil, err
	}
	err = createDistributionLogTable(db)
	if err != nil {
		return nil, err
	}
	err = createAssignmentTable(db)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// createLeadTable creates a PostgreSQL table for the Lead struct. The
// BIGSERIAL sequence_number defines the catalog's global FIFO order.
func createLeadTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS leads (
			sequence_number BIGSERIAL PRIMARY KEY,
			lead_id TEXT NOT NULL UNIQUE,
			contact JSONB,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		log.Printf("Error creating leads table: %v", err)
	}
	return err
}

// createQueueEntryTable creates a PostgreSQL table for the QueueEntry struct.
// assigned_to_pool is write-once: NULL means available, a period key means
// the entry was consumed by that period's pool.
func createQueueEntryTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS queue_entries (
			queue_position BIGSERIAL PRIMARY KEY,
			lead_id TEXT NOT NULL UNIQUE REFERENCES leads(lead_id),
			upload_batch TEXT,
			uploaded_at TIMESTAMP NOT NULL DEFAULT NOW(),
			assigned_to_pool TEXT
		)
	`)
	if err != nil {
		log.Printf("Error creating queue_entries table: %v", err)
	}
	return err
}

// createPoolMemberTable creates a PostgreSQL table for pool membership rows.
// The (period, lead_id) unique constraint makes membership inserts
// duplicate-safe under concurrent generation runs.
func createPoolMemberTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS pool_members (
			id BIGSERIAL PRIMARY KEY,
			period TEXT NOT NULL,
			lead_id TEXT NOT NULL REFERENCES leads(lead_id),
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			UNIQUE (period, lead_id)
		)
	`)
	if err != nil {
		log.Printf("Error creating pool_members table: %v", err)
	}
	return err
}

// createDistributionLogTable creates a PostgreSQL table for the distribution
// ledger. The (subscriber_id, lead_id, period) unique constraint is the
// no-duplicate-delivery guarantee.
func createDistributionLogTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS distribution_log (
			id BIGSERIAL PRIMARY KEY,
			entry_id TEXT NOT NULL UNIQUE,
			subscriber_id TEXT NOT NULL REFERENCES subscribers(subscriber_id),
			lead_id TEXT NOT NULL REFERENCES leads(lead_id),
			period TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			UNIQUE (subscriber_id, lead_id, period)
		)
	`)
	if err != nil {
		log.Printf("Error creating distribution_log table: %v", err)
	}
	return err
}

// createAssignmentTable creates a PostgreSQL table for subscriber-facing
// assignment rows shared by both allocation policies.
func createAssignmentTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS assignments (
			id BIGSERIAL PRIMARY KEY,
			assignment_id TEXT NOT NULL UNIQUE,
			subscriber_id TEXT NOT NULL REFERENCES subscribers(subscriber_id),
			lead_id TEXT NOT NULL REFERENCES leads(lead_id),
			source TEXT NOT NULL CHECK (source IN ('pool', 'sequential')),
			period TEXT,
			assigned_at TIMESTAMP NOT NULL DEFAULT NOW(),
			UNIQUE (subscriber_id, lead_id)
		)
	`)
	if err != nil {
		log.Printf("Error creating assignments table: %v", err)
	}
	return err
}

// createSubscriberTable creates a PostgreSQL table for the Subscriber struct.
func createSubscriberTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS subscribers (
			id BIGSERIAL PRIMARY KEY,
			subscriber_id TEXT NOT NULL UNIQUE,
			plan_tier TEXT NOT NULL,
			status TEXT NOT NULL,
			cursor_position BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		log.Printf("Error creating subscribers table: %v", err)
	}
	return err
}

// Package storage owns the PostgreSQL schema shared by the store
// implementations.
package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema is the DDL for all persisted entities. Statements are idempotent so
// startup can apply them unconditionally.
const Schema = `
CREATE TABLE IF NOT EXISTS admins (
	id            UUID PRIMARY KEY,
	name          TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS robots (
	id          UUID PRIMARY KEY,
	mac_address TEXT NOT NULL,
	active      BOOLEAN NOT NULL DEFAULT FALSE,
	region      TEXT NOT NULL,
	address     TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	model       TEXT NOT NULL DEFAULT '',
	admin_id    TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS robots_admin_id_idx ON robots (admin_id);

CREATE TABLE IF NOT EXISTS wastes (
	id          UUID PRIMARY KEY,
	category    TEXT NOT NULL,
	status      TEXT NOT NULL DEFAULT 'detected',
	detected_at TIMESTAMPTZ NOT NULL,
	region      TEXT NOT NULL DEFAULT '',
	latitude    DOUBLE PRECISION,
	longitude   DOUBLE PRECISION,
	confidence  DOUBLE PRECISION,
	robot_id    TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS wastes_robot_id_idx ON wastes (robot_id);
CREATE INDEX IF NOT EXISTS wastes_status_idx ON wastes (status);
`

// Apply creates the schema if it does not exist yet.
func Apply(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

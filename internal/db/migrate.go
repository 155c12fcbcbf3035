package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent so the set
// can re-run on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date   TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS phases (
		id           TEXT PRIMARY KEY,
		project_id   TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name         TEXT NOT NULL,
		start_date   TEXT NOT NULL,
		end_date     TEXT NOT NULL,
		color        TEXT NOT NULL DEFAULT '',
		is_milestone INTEGER NOT NULL DEFAULT 0,
		completion   REAL,
		order_index  INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_phases_project ON phases(project_id)`,

	`CREATE TABLE IF NOT EXISTS subphases (
		id                 TEXT PRIMARY KEY,
		phase_id           TEXT NOT NULL REFERENCES phases(id) ON DELETE CASCADE,
		parent_subphase_id TEXT REFERENCES subphases(id) ON DELETE CASCADE,
		name               TEXT NOT NULL,
		start_date         TEXT NOT NULL,
		end_date           TEXT NOT NULL,
		color              TEXT NOT NULL DEFAULT '',
		is_milestone       INTEGER NOT NULL DEFAULT 0,
		completion         REAL,
		order_index        INTEGER NOT NULL DEFAULT 0,
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_subphases_phase ON subphases(phase_id)`,
	`CREATE INDEX IF NOT EXISTS idx_subphases_parent ON subphases(parent_subphase_id)`,

	// Typed edges live on the successor; the predecessor may be a phase or
	// a subphase, so the reference is enforced in code, not by the schema.
	`CREATE TABLE IF NOT EXISTS dependencies (
		successor_id   TEXT NOT NULL,
		predecessor_id TEXT NOT NULL,
		dep_type       TEXT NOT NULL CHECK(dep_type IN ('FS','SS','FF','SF')),
		lag_days       INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (successor_id, predecessor_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_dependencies_predecessor ON dependencies(predecessor_id)`,

	`CREATE TABLE IF NOT EXISTS staff_assignments (
		id          TEXT PRIMARY KEY,
		project_id  TEXT REFERENCES projects(id) ON DELETE CASCADE,
		phase_id    TEXT REFERENCES phases(id) ON DELETE CASCADE,
		subphase_id TEXT REFERENCES subphases(id) ON DELETE CASCADE,
		person_name TEXT NOT NULL,
		role        TEXT NOT NULL DEFAULT '',
		start_date  TEXT NOT NULL,
		end_date    TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_staff_phase ON staff_assignments(phase_id)`,
	`CREATE INDEX IF NOT EXISTS idx_staff_subphase ON staff_assignments(subphase_id)`,

	`CREATE TABLE IF NOT EXISTS equipment_assignments (
		id             TEXT PRIMARY KEY,
		project_id     TEXT REFERENCES projects(id) ON DELETE CASCADE,
		phase_id       TEXT REFERENCES phases(id) ON DELETE CASCADE,
		subphase_id    TEXT REFERENCES subphases(id) ON DELETE CASCADE,
		equipment_name TEXT NOT NULL,
		start_date     TEXT NOT NULL,
		end_date       TEXT NOT NULL,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_equipment_phase ON equipment_assignments(phase_id)`,
	`CREATE INDEX IF NOT EXISTS idx_equipment_subphase ON equipment_assignments(subphase_id)`,
}

package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Migration represents one schema migration, embedded in the binary so
// the service needs no deploy-time migrations directory.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_seed_landmarks",
		SQL: `
			CREATE TABLE IF NOT EXISTS seed_landmarks (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				image_id TEXT NOT NULL DEFAULT '',
				landmark TEXT NOT NULL,
				x REAL NOT NULL,
				y REAL NOT NULL,
				confidence REAL
			);
			CREATE INDEX IF NOT EXISTS idx_seed_landmarks_image ON seed_landmarks(image_id);

			CREATE TABLE IF NOT EXISTS seed_boxes (
				image_id TEXT PRIMARY KEY,
				box_left REAL NOT NULL,
				box_right REAL NOT NULL,
				box_top REAL NOT NULL,
				box_bottom REAL NOT NULL
			);
		`,
	},
	{
		Version: 2,
		Name:    "create_analyses",
		SQL: `
			CREATE TABLE IF NOT EXISTS analyses (
				id TEXT PRIMARY KEY,
				patient_id TEXT NOT NULL,
				image_id TEXT NOT NULL,
				template_id TEXT NOT NULL,
				landmarks TEXT NOT NULL,
				results TEXT NOT NULL,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_analyses_patient ON analyses(patient_id);
			CREATE INDEX IF NOT EXISTS idx_analyses_image ON analyses(image_id);
		`,
	},
}

// Migrate applies all pending migrations in version order
func Migrate(db *sql.DB) error {
	if err := initMigrationsTable(db); err != nil {
		return err
	}

	applied, err := appliedMigrations(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}

		if err := applyMigration(db, m); err != nil {
			return err
		}

		log.Printf("Applied migration %d: %s", m.Version, m.Name)
	}

	return nil
}

// applyMigration runs one migration and records it, atomically
func applyMigration(db *sql.DB, m Migration) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin migration transaction: %w", err)
	}

	if _, err := tx.Exec(m.SQL); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Name, err)
	}
	if _, err := tx.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", m.Version, m.Name); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
	}
	return nil
}

// initMigrationsTable creates the migrations tracking table
func initMigrationsTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

// appliedMigrations returns the set of applied migration versions
func appliedMigrations(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}

	return applied, nil
}

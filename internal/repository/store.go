package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver - no CGO required
)

// Store is the primary entity store backed by SQLite. A single writer
// connection with WAL mode keeps concurrent reads cheap while the uniqueness
// and foreign key constraints resolve write races.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at path and applies the schema.
// Use ":memory:" for an ephemeral database.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}

	// SQLite only supports 1 writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Printf("[Store] Initialized with database: %s", path)
	return &Store{db: db}, nil
}

func createTables(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS production_items (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		image_urls  TEXT NOT NULL DEFAULT '[]',
		created_at  DATETIME NOT NULL,
		updated_at  DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sample_items (
		id                 TEXT PRIMARY KEY,
		production_item_id TEXT NOT NULL REFERENCES production_items(id) ON DELETE CASCADE,
		stage              TEXT NOT NULL,
		color              TEXT NOT NULL DEFAULT '',
		size               TEXT NOT NULL DEFAULT '',
		revision           TEXT NOT NULL,
		notes              TEXT NOT NULL DEFAULT '',
		image_urls         TEXT NOT NULL DEFAULT '[]',
		created_at         DATETIME NOT NULL,
		updated_at         DATETIME NOT NULL,
		UNIQUE (production_item_id, stage, color, size, revision)
	);
	CREATE INDEX IF NOT EXISTS idx_sample_items_production ON sample_items(production_item_id);

	CREATE TABLE IF NOT EXISTS inventory_units (
		id             TEXT PRIMARY KEY,
		sample_item_id TEXT NOT NULL REFERENCES sample_items(id) ON DELETE CASCADE,
		location       TEXT NOT NULL DEFAULT '',
		status         TEXT NOT NULL DEFAULT 'AVAILABLE'
			CHECK (status IN ('AVAILABLE', 'IN_USE', 'RESERVED', 'DAMAGED', 'ARCHIVED')),
		notes          TEXT NOT NULL DEFAULT '',
		created_at     DATETIME NOT NULL,
		updated_at     DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_inventory_units_sample ON inventory_units(sample_item_id);

	CREATE TABLE IF NOT EXISTS teams (
		id               TEXT PRIMARY KEY,
		name             TEXT NOT NULL,
		shipping_address TEXT NOT NULL DEFAULT '',
		contact_email    TEXT NOT NULL DEFAULT '',
		contact_phone    TEXT NOT NULL DEFAULT '',
		is_internal      INTEGER NOT NULL DEFAULT 0,
		created_at       DATETIME NOT NULL,
		updated_at       DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sample_requests (
		id               TEXT PRIMARY KEY,
		sample_item_id   TEXT NOT NULL REFERENCES sample_items(id) ON DELETE CASCADE,
		team_id          TEXT NOT NULL REFERENCES teams(id),
		quantity         INTEGER NOT NULL CHECK (quantity >= 1),
		status           TEXT NOT NULL
			CHECK (status IN ('REQUESTED', 'APPROVED', 'SHIPPED', 'HANDED_OFF', 'IN_USE', 'RETURNED', 'CLOSED')),
		shipping_method  TEXT NOT NULL DEFAULT '',
		shipping_address TEXT NOT NULL DEFAULT '',
		notes            TEXT NOT NULL DEFAULT '',
		requested_at     DATETIME NOT NULL,
		approved_at      DATETIME,
		shipped_at       DATETIME,
		handed_off_at    DATETIME,
		returned_at      DATETIME,
		closed_at        DATETIME,
		created_at       DATETIME NOT NULL,
		updated_at       DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_sample_requests_team ON sample_requests(team_id);
	CREATE INDEX IF NOT EXISTS idx_sample_requests_status ON sample_requests(status);

	CREATE TABLE IF NOT EXISTS comments (
		id                TEXT PRIMARY KEY,
		content           TEXT NOT NULL,
		author_id         TEXT NOT NULL,
		entity_type       TEXT NOT NULL,
		entity_id         TEXT NOT NULL,
		parent_comment_id TEXT REFERENCES comments(id) ON DELETE CASCADE,
		created_at        DATETIME NOT NULL,
		updated_at        DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_comments_entity ON comments(entity_type, entity_id);
	CREATE INDEX IF NOT EXISTS idx_comments_parent ON comments(parent_comment_id);
	`
	_, err := db.Exec(query)
	return err
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// IsUniqueViolation reports whether err is a uniqueness constraint failure.
func IsUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// IsForeignKeyViolation reports whether err is a foreign key constraint failure.
func IsForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// marshalStrings encodes a string slice as a JSON text column value.
func marshalStrings(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	data, _ := json.Marshal(values)
	return string(data)
}

// unmarshalStrings decodes a JSON text column value into a string slice.
func unmarshalStrings(raw string) []string {
	if raw == "" || raw == "[]" {
		return nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil
	}
	return values
}

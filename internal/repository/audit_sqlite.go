package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"sampleroom-api/internal/model"

	_ "modernc.org/sqlite" // Pure Go SQLite driver - no CGO required
)

// SQLiteAuditRepository implements AuditRepository using SQLite. This is the
// default backend; it may share the primary store's database file.
type SQLiteAuditRepository struct {
	db *sql.DB
}

// NewSQLiteAuditRepository opens (or creates) the audit database at path.
func NewSQLiteAuditRepository(path string) (*SQLiteAuditRepository, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := createAuditTable(db); err != nil {
		return nil, fmt.Errorf("failed to create audit table: %w", err)
	}

	log.Printf("[SQLiteAuditRepository] Initialized with database: %s", path)
	return &SQLiteAuditRepository{db: db}, nil
}

func createAuditTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS audit_events (
		id          TEXT PRIMARY KEY,
		entity_type TEXT NOT NULL,
		entity_id   TEXT NOT NULL,
		action      TEXT NOT NULL,
		user_id     TEXT NOT NULL,
		metadata    TEXT NOT NULL DEFAULT '{}',
		created_at  DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_audit_entity ON audit_events(entity_type, entity_id, created_at);
	`
	_, err := db.Exec(query)
	return err
}

// Append persists one audit event. Events are immutable once written.
func (r *SQLiteAuditRepository) Append(ctx context.Context, event *model.AuditEvent) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_events (id, entity_type, entity_id, action, user_id, metadata, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		event.ID, event.EntityType, event.EntityID, event.Action, event.UserID,
		marshalMetadata(event.Metadata), event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append audit event: %w", err)
	}
	return nil
}

// ListByEntity returns all events for one entity, newest first.
func (r *SQLiteAuditRepository) ListByEntity(ctx context.Context, entityType, entityID string) ([]model.AuditEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, entity_type, entity_id, action, user_id, metadata, created_at
		 FROM audit_events
		 WHERE entity_type = ? AND entity_id = ?
		 ORDER BY created_at DESC, id DESC`,
		entityType, entityID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit events: %w", err)
	}
	defer rows.Close()
	return collectAuditEvents(rows)
}

// Ping checks the database connection.
func (r *SQLiteAuditRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close closes the database connection.
func (r *SQLiteAuditRepository) Close() error {
	return r.db.Close()
}

func marshalMetadata(metadata map[string]interface{}) string {
	if len(metadata) == 0 {
		return "{}"
	}
	data, _ := json.Marshal(metadata)
	return string(data)
}

func collectAuditEvents(rows *sql.Rows) ([]model.AuditEvent, error) {
	var events []model.AuditEvent
	for rows.Next() {
		var event model.AuditEvent
		var metadata string
		if err := rows.Scan(&event.ID, &event.EntityType, &event.EntityID, &event.Action,
			&event.UserID, &metadata, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit event: %w", err)
		}
		if metadata != "" && metadata != "{}" {
			_ = json.Unmarshal([]byte(metadata), &event.Metadata)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// Ensure SQLiteAuditRepository implements AuditRepository
var _ AuditRepository = (*SQLiteAuditRepository)(nil)

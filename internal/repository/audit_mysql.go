package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"sampleroom-api/internal/model"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
)

// MySQLAuditRepository implements AuditRepository using MySQL, for teams whose
// central audit database runs on MySQL.
type MySQLAuditRepository struct {
	db *sql.DB
}

// NewMySQLAuditRepository connects to MySQL and ensures the audit table.
// dsn format: "user:password@tcp(host:port)/dbname?parseTime=true"
func NewMySQLAuditRepository(dsn string) (*MySQLAuditRepository, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	query := `
	CREATE TABLE IF NOT EXISTS audit_events (
		id          VARCHAR(36) PRIMARY KEY,
		entity_type VARCHAR(64) NOT NULL,
		entity_id   VARCHAR(36) NOT NULL,
		action      VARCHAR(32) NOT NULL,
		user_id     VARCHAR(64) NOT NULL,
		metadata    JSON NOT NULL,
		created_at  DATETIME(6) NOT NULL,
		INDEX idx_audit_entity (entity_type, entity_id, created_at)
	)`
	if _, err := db.Exec(query); err != nil {
		return nil, fmt.Errorf("failed to create audit table: %w", err)
	}

	log.Printf("[MySQLAuditRepository] Initialized")
	return &MySQLAuditRepository{db: db}, nil
}

// Append persists one audit event.
func (r *MySQLAuditRepository) Append(ctx context.Context, event *model.AuditEvent) error {
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
func (r *MySQLAuditRepository) ListByEntity(ctx context.Context, entityType, entityID string) ([]model.AuditEvent, error) {
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
func (r *MySQLAuditRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close closes the database connection.
func (r *MySQLAuditRepository) Close() error {
	return r.db.Close()
}

// Ensure MySQLAuditRepository implements AuditRepository
var _ AuditRepository = (*MySQLAuditRepository)(nil)

package model

import "time"

// Audit actions.
const (
	ActionCreated       = "CREATED"
	ActionUpdated       = "UPDATED"
	ActionDeleted       = "DELETED"
	ActionStatusChanged = "STATUS_CHANGED"
)

// Auditable entity type tags.
const (
	EntityProductionItem = "production_item"
	EntitySampleItem     = "sample_item"
	EntityInventoryUnit  = "inventory_unit"
	EntityTeam           = "team"
	EntityRequest        = "request"
	EntityComment        = "comment"
)

// AuditEvent is one immutable record of a state-changing operation. Events are
// never updated or deleted.
type AuditEvent struct {
	ID         string                 `json:"id"`
	EntityType string                 `json:"entity_type"`
	EntityID   string                 `json:"entity_id"`
	Action     string                 `json:"action"`
	UserID     string                 `json:"user_id"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

package repository

import (
	"context"

	"sampleroom-api/internal/model"
)

// ProductionItemRepository defines production item data access methods.
type ProductionItemRepository interface {
	CreateProductionItem(ctx context.Context, item *model.ProductionItem) error
	GetProductionItem(ctx context.Context, id string) (*model.ProductionItem, error)
	ListProductionItems(ctx context.Context) ([]model.ProductionItem, error)
	UpdateProductionItem(ctx context.Context, item *model.ProductionItem) (bool, error)
	DeleteProductionItem(ctx context.Context, id string) (bool, error)
}

// SampleItemRepository defines sample item data access methods.
type SampleItemRepository interface {
	CreateSampleItem(ctx context.Context, item *model.SampleItem) error
	GetSampleItem(ctx context.Context, id string) (*model.SampleItem, error)
	ListSampleItems(ctx context.Context, productionItemID string) ([]model.SampleItem, error)
	// FindSampleItemByVariant looks up the row holding the given variation
	// tuple. Used for the follow-up read after a uniqueness violation.
	FindSampleItemByVariant(ctx context.Context, productionItemID, stage, color, size, revision string) (*model.SampleItem, error)
	UpdateSampleItem(ctx context.Context, item *model.SampleItem) (bool, error)
	DeleteSampleItem(ctx context.Context, id string) (bool, error)
}

// InventoryRepository defines inventory unit data access methods.
type InventoryRepository interface {
	CreateInventoryUnit(ctx context.Context, unit *model.InventoryUnit) error
	GetInventoryUnit(ctx context.Context, id string) (*model.InventoryUnit, error)
	UpdateInventoryUnit(ctx context.Context, unit *model.InventoryUnit) (bool, error)
	ListUnitsBySampleItem(ctx context.Context, sampleItemID string) ([]model.InventoryUnit, error)
	ListUnitsByProductionItem(ctx context.Context, productionItemID string) ([]model.InventoryUnit, error)
}

// TeamRepository defines team data access methods.
type TeamRepository interface {
	CreateTeam(ctx context.Context, team *model.Team) error
	GetTeam(ctx context.Context, id string) (*model.Team, error)
	ListTeams(ctx context.Context) ([]model.Team, error)
	DeleteTeam(ctx context.Context, id string) (bool, error)
	CountRequestsByTeam(ctx context.Context, teamID string) (int, error)
}

// RequestRepository defines sample request data access methods.
type RequestRepository interface {
	CreateRequest(ctx context.Context, req *model.SampleRequest) error
	GetRequest(ctx context.Context, id string) (*model.SampleRequest, error)
	ListRequests(ctx context.Context) ([]model.SampleRequest, error)
	// UpdateRequest persists the request's mutable fields and lifecycle
	// timestamps, but only if the stored status still equals expectedStatus
	// (optimistic compare-and-set). Returns false when the row is missing or
	// the status moved underneath the caller.
	UpdateRequest(ctx context.Context, req *model.SampleRequest, expectedStatus string) (bool, error)
	GetRequestStats(ctx context.Context) (*model.RequestStats, error)
}

// CommentRepository defines comment data access methods.
type CommentRepository interface {
	CreateComment(ctx context.Context, c *model.Comment) error
	GetComment(ctx context.Context, id string) (*model.Comment, error)
	UpdateCommentContent(ctx context.Context, id, content string) (bool, error)
	// DeleteComment removes the comment and its entire reply subtree.
	DeleteComment(ctx context.Context, id string) (bool, error)
	DeleteCommentsForEntity(ctx context.Context, entityType, entityID string) error
	ListTopLevelComments(ctx context.Context, entityType, entityID string) ([]model.Comment, error)
	ListReplies(ctx context.Context, parentCommentID string) ([]model.Comment, error)
}

// AuditRepository defines the append-only audit trail. Implementations exist
// for SQLite (default, same file as the entity store), PostgreSQL and MySQL
// (shared central audit databases).
type AuditRepository interface {
	Append(ctx context.Context, event *model.AuditEvent) error
	ListByEntity(ctx context.Context, entityType, entityID string) ([]model.AuditEvent, error)
	Ping(ctx context.Context) error
	Close() error
}

package service

import (
	"context"
	"log"
	"time"

	"sampleroom-api/internal/model"
	"sampleroom-api/internal/repository"
	"sampleroom-api/pkg/apierror"
	"sampleroom-api/pkg/uid"
)

// AuditService appends one immutable event per state-changing operation and
// serves the audit trail reads.
//
// Audit writes are best-effort sequential, not transactional with the primary
// mutation: the audit backend is pluggable and may be a different database
// entirely, so the write cannot share the mutation's transaction. A failed
// audit write is logged with the entity reference and never fails or rolls
// back the mutation that triggered it.
type AuditService struct {
	repo repository.AuditRepository
}

// NewAuditService creates a new audit service.
func NewAuditService(repo repository.AuditRepository) *AuditService {
	if repo == nil {
		return nil
	}
	return &AuditService{repo: repo}
}

// Record appends one audit event after a successful mutation. Safe to call
// on a nil service (auditing disabled).
func (s *AuditService) Record(ctx context.Context, actor model.ActorContext, entityType, entityID, action string, metadata map[string]interface{}) {
	if s == nil {
		return
	}
	event := &model.AuditEvent{
		ID:         uid.New(),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		UserID:     actor.UserID,
		Metadata:   metadata,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.Append(ctx, event); err != nil {
		log.Printf("[AuditService] Failed to record %s on %s/%s: %v", action, entityType, entityID, err)
	}
}

// GetTrail returns all audit events for one entity, newest first.
func (s *AuditService) GetTrail(ctx context.Context, entityType, entityID string) ([]model.AuditEvent, error) {
	if entityType == "" || entityID == "" {
		return nil, apierror.ValidationError("entity type and entity id are required")
	}

	events, err := s.repo.ListByEntity(ctx, entityType, entityID)
	if err != nil {
		log.Printf("[AuditService] Failed to list events for %s/%s: %v", entityType, entityID, err)
		return nil, apierror.InternalError("")
	}
	return events, nil
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"sampleroom-api/internal/cache"
	"sampleroom-api/internal/model"
	"sampleroom-api/internal/repository"
	"sampleroom-api/pkg/apierror"
	"sampleroom-api/pkg/uid"
)

const statsCacheKey = "request_stats"

// RequestService handles the sample request lifecycle. The transition table in
// the model package is authoritative: a status change is applied only when the
// table permits it, and each lifecycle timestamp is set exactly once, at the
// first entry into its status.
type RequestService struct {
	requests repository.RequestRepository
	samples  repository.SampleItemRepository
	teams    repository.TeamRepository
	audit    *AuditService
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewRequestService creates a new request service.
func NewRequestService(
	requests repository.RequestRepository,
	samples repository.SampleItemRepository,
	teams repository.TeamRepository,
	audit *AuditService,
	c cache.Cache,
	cacheTTL time.Duration,
) *RequestService {
	return &RequestService{
		requests: requests,
		samples:  samples,
		teams:    teams,
		audit:    audit,
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

// CreateRequestInput carries the fields for a new sample request.
type CreateRequestInput struct {
	SampleItemID    string `json:"sample_item_id"`
	TeamID          string `json:"team_id"`
	Quantity        int    `json:"quantity"`
	ShippingMethod  string `json:"shipping_method"`
	ShippingAddress string `json:"shipping_address"`
	Notes           string `json:"notes"`
}

// Create opens a new request in status REQUESTED with requestedAt = now.
func (s *RequestService) Create(ctx context.Context, actor model.ActorContext, input CreateRequestInput) (*model.SampleRequest, error) {
	if input.Quantity < 1 {
		return nil, apierror.ValidationError("quantity must be at least 1",
			apierror.FieldError{Field: "quantity", Message: "must be >= 1"})
	}

	item, err := s.samples.GetSampleItem(ctx, input.SampleItemID)
	if err != nil {
		return nil, apierror.InternalError("")
	}
	if item == nil {
		return nil, apierror.ReferentialIntegrity(fmt.Sprintf("sample item %s does not exist", input.SampleItemID))
	}

	team, err := s.teams.GetTeam(ctx, input.TeamID)
	if err != nil {
		return nil, apierror.InternalError("")
	}
	if team == nil {
		return nil, apierror.ReferentialIntegrity(fmt.Sprintf("team %s does not exist", input.TeamID))
	}

	now := time.Now().UTC()
	req := &model.SampleRequest{
		ID:              uid.New(),
		SampleItemID:    input.SampleItemID,
		TeamID:          input.TeamID,
		Quantity:        input.Quantity,
		Status:          model.RequestRequested,
		ShippingMethod:  input.ShippingMethod,
		ShippingAddress: input.ShippingAddress,
		Notes:           input.Notes,
		RequestedAt:     now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.requests.CreateRequest(ctx, req); err != nil {
		log.Printf("[RequestService] Failed to create request: %v", err)
		return nil, apierror.InternalError("")
	}

	s.audit.Record(ctx, actor, model.EntityRequest, req.ID, model.ActionCreated, map[string]interface{}{
		"sample_item_id": req.SampleItemID,
		"team_id":        req.TeamID,
		"quantity":       req.Quantity,
	})
	s.invalidateStats(ctx)

	return req, nil
}

// Get returns one request by id.
func (s *RequestService) Get(ctx context.Context, id string) (*model.SampleRequest, error) {
	req, err := s.requests.GetRequest(ctx, id)
	if err != nil {
		return nil, apierror.InternalError("")
	}
	if req == nil {
		return nil, apierror.NotFound(fmt.Sprintf("request %s not found", id))
	}
	return req, nil
}

// List returns all requests, newest first.
func (s *RequestService) List(ctx context.Context) ([]model.SampleRequest, error) {
	requests, err := s.requests.ListRequests(ctx)
	if err != nil {
		return nil, apierror.InternalError("")
	}
	return requests, nil
}

// UpdateStatus applies one lifecycle transition.
func (s *RequestService) UpdateStatus(ctx context.Context, actor model.ActorContext, id, newStatus string) (*model.SampleRequest, error) {
	return s.Update(ctx, actor, id, UpdateRequestInput{Status: &newStatus})
}

// UpdateRequestInput carries a partial update; nil fields are left untouched.
type UpdateRequestInput struct {
	Status          *string `json:"status"`
	Quantity        *int    `json:"quantity"`
	ShippingMethod  *string `json:"shipping_method"`
	ShippingAddress *string `json:"shipping_address"`
	Notes           *string `json:"notes"`
}

// Update edits a request's fields and, when a status is supplied, applies the
// lifecycle transition. The write is an optimistic compare-and-set keyed on
// the status read here; a concurrent transition surfaces as a conflict rather
// than silently clobbering it.
func (s *RequestService) Update(ctx context.Context, actor model.ActorContext, id string, input UpdateRequestInput) (*model.SampleRequest, error) {
	req, err := s.requests.GetRequest(ctx, id)
	if err != nil {
		return nil, apierror.InternalError("")
	}
	if req == nil {
		return nil, apierror.NotFound(fmt.Sprintf("request %s not found", id))
	}

	priorStatus := req.Status
	var changed []string

	if input.Quantity != nil {
		if *input.Quantity < 1 {
			return nil, apierror.ValidationError("quantity must be at least 1",
				apierror.FieldError{Field: "quantity", Message: "must be >= 1"})
		}
		if *input.Quantity != req.Quantity {
			req.Quantity = *input.Quantity
			changed = append(changed, "quantity")
		}
	}
	if input.ShippingMethod != nil && *input.ShippingMethod != req.ShippingMethod {
		req.ShippingMethod = *input.ShippingMethod
		changed = append(changed, "shipping_method")
	}
	if input.ShippingAddress != nil && *input.ShippingAddress != req.ShippingAddress {
		req.ShippingAddress = *input.ShippingAddress
		changed = append(changed, "shipping_address")
	}
	if input.Notes != nil && *input.Notes != req.Notes {
		req.Notes = *input.Notes
		changed = append(changed, "notes")
	}

	statusChanged := false
	if input.Status != nil && *input.Status != priorStatus {
		newStatus := *input.Status
		if !model.ValidRequestStatus(newStatus) {
			return nil, apierror.ValidationError(fmt.Sprintf("unknown status %q", newStatus))
		}
		if !model.CanTransition(priorStatus, newStatus) {
			return nil, apierror.Conflict(fmt.Sprintf(
				"cannot transition request from %s to %s (allowed: %s)",
				priorStatus, newStatus, strings.Join(model.AllowedTransitions[priorStatus], ", ")))
		}

		req.Status = newStatus
		statusChanged = true

		// First entry into a status stamps it; re-entry via a later
		// correction never overwrites the original time.
		if stamp := req.StageTimestamp(newStatus); stamp != nil && *stamp == nil {
			now := time.Now().UTC()
			*stamp = &now
		}
	}

	if !statusChanged && len(changed) == 0 {
		return req, nil
	}

	req.UpdatedAt = time.Now().UTC()

	ok, err := s.requests.UpdateRequest(ctx, req, priorStatus)
	if err != nil {
		log.Printf("[RequestService] Failed to update request %s: %v", id, err)
		return nil, apierror.InternalError("")
	}
	if !ok {
		return nil, apierror.Conflict("request was modified concurrently, retry with fresh state")
	}

	if statusChanged {
		s.audit.Record(ctx, actor, model.EntityRequest, req.ID, model.ActionStatusChanged, map[string]interface{}{
			"from": priorStatus,
			"to":   req.Status,
		})
	} else {
		s.audit.Record(ctx, actor, model.EntityRequest, req.ID, model.ActionUpdated, map[string]interface{}{
			"fields": changed,
		})
	}
	s.invalidateStats(ctx)

	return req, nil
}

// Stats returns the total request count and per-status breakdown. The result
// is cached briefly and invalidated on every request mutation.
func (s *RequestService) Stats(ctx context.Context) (*model.RequestStats, error) {
	compute := func() ([]byte, error) {
		stats, err := s.requests.GetRequestStats(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(stats)
	}

	var data []byte
	var err error
	if s.cache != nil {
		data, err = s.cache.GetOrSet(ctx, statsCacheKey, s.cacheTTL, compute)
	} else {
		data, err = compute()
	}
	if err != nil {
		log.Printf("[RequestService] Failed to compute request stats: %v", err)
		return nil, apierror.InternalError("")
	}

	stats := &model.RequestStats{}
	if err := json.Unmarshal(data, stats); err != nil {
		return nil, apierror.InternalError("")
	}
	if stats.ByStatus == nil {
		stats.ByStatus = make(map[string]int)
	}
	return stats, nil
}

func (s *RequestService) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, statsCacheKey); err != nil {
		log.Printf("[RequestService] Failed to invalidate stats cache: %v", err)
	}
}

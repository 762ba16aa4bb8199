package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"sampleroom-api/internal/model"
	"sampleroom-api/internal/repository"
	"sampleroom-api/pkg/apierror"
	"sampleroom-api/pkg/uid"
)

// ProductionService handles production item business logic.
type ProductionService struct {
	production repository.ProductionItemRepository
	audit      *AuditService
}

// NewProductionService creates a new production item service.
func NewProductionService(production repository.ProductionItemRepository, audit *AuditService) *ProductionService {
	return &ProductionService{production: production, audit: audit}
}

// CreateProductionItemInput carries the fields for a new production item.
type CreateProductionItemInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	ImageURLs   []string `json:"image_urls"`
}

// Create registers a new production item.
func (s *ProductionService) Create(ctx context.Context, actor model.ActorContext, input CreateProductionItemInput) (*model.ProductionItem, error) {
	if input.Name == "" {
		return nil, apierror.ValidationError("production item name is required",
			apierror.FieldError{Field: "name", Message: "is required"})
	}

	now := time.Now().UTC()
	item := &model.ProductionItem{
		ID:          uid.New(),
		Name:        input.Name,
		Description: input.Description,
		ImageURLs:   input.ImageURLs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.production.CreateProductionItem(ctx, item); err != nil {
		log.Printf("[ProductionService] Failed to create production item: %v", err)
		return nil, apierror.InternalError("")
	}

	s.audit.Record(ctx, actor, model.EntityProductionItem, item.ID, model.ActionCreated, map[string]interface{}{
		"name": item.Name,
	})
	return item, nil
}

// Get returns one production item by id.
func (s *ProductionService) Get(ctx context.Context, id string) (*model.ProductionItem, error) {
	item, err := s.production.GetProductionItem(ctx, id)
	if err != nil {
		return nil, apierror.InternalError("")
	}
	if item == nil {
		return nil, apierror.NotFound(fmt.Sprintf("production item %s not found", id))
	}
	return item, nil
}

// List returns all production items, newest first.
func (s *ProductionService) List(ctx context.Context) ([]model.ProductionItem, error) {
	items, err := s.production.ListProductionItems(ctx)
	if err != nil {
		return nil, apierror.InternalError("")
	}
	return items, nil
}

// UpdateProductionItemInput carries a partial update; nil fields are untouched.
type UpdateProductionItemInput struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	ImageURLs   *[]string `json:"image_urls"`
}

// Update edits a production item.
func (s *ProductionService) Update(ctx context.Context, actor model.ActorContext, id string, input UpdateProductionItemInput) (*model.ProductionItem, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var changed []string
	if input.Name != nil && *input.Name != item.Name {
		if *input.Name == "" {
			return nil, apierror.ValidationError("production item name cannot be empty")
		}
		item.Name = *input.Name
		changed = append(changed, "name")
	}
	if input.Description != nil && *input.Description != item.Description {
		item.Description = *input.Description
		changed = append(changed, "description")
	}
	if input.ImageURLs != nil {
		item.ImageURLs = *input.ImageURLs
		changed = append(changed, "image_urls")
	}
	if len(changed) == 0 {
		return item, nil
	}

	item.UpdatedAt = time.Now().UTC()
	ok, err := s.production.UpdateProductionItem(ctx, item)
	if err != nil {
		log.Printf("[ProductionService] Failed to update production item %s: %v", id, err)
		return nil, apierror.InternalError("")
	}
	if !ok {
		return nil, apierror.NotFound(fmt.Sprintf("production item %s not found", id))
	}

	s.audit.Record(ctx, actor, model.EntityProductionItem, id, model.ActionUpdated, map[string]interface{}{
		"fields": changed,
	})
	return item, nil
}

// Delete removes a production item, cascading to its sample items and
// transitively to their inventory units, requests and comments.
func (s *ProductionService) Delete(ctx context.Context, actor model.ActorContext, id string) error {
	ok, err := s.production.DeleteProductionItem(ctx, id)
	if err != nil {
		log.Printf("[ProductionService] Failed to delete production item %s: %v", id, err)
		return apierror.InternalError("")
	}
	if !ok {
		return apierror.NotFound(fmt.Sprintf("production item %s not found", id))
	}

	s.audit.Record(ctx, actor, model.EntityProductionItem, id, model.ActionDeleted, nil)
	return nil
}

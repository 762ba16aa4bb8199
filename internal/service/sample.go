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

// SampleService handles sample item business logic, in particular the
// variation uniqueness constraint: no two sample items of one production item
// may share (stage, color, size, revision). The storage layer's unique index
// resolves concurrent creation races; this service translates the violation
// into a conflict error naming the pre-existing record's values.
type SampleService struct {
	samples    repository.SampleItemRepository
	production repository.ProductionItemRepository
	inventory  repository.InventoryRepository
	audit      *AuditService
}

// NewSampleService creates a new sample service.
func NewSampleService(
	samples repository.SampleItemRepository,
	production repository.ProductionItemRepository,
	inventory repository.InventoryRepository,
	audit *AuditService,
) *SampleService {
	return &SampleService{
		samples:    samples,
		production: production,
		inventory:  inventory,
		audit:      audit,
	}
}

// CreateSampleItemInput carries the fields for a new sample item.
type CreateSampleItemInput struct {
	ProductionItemID string   `json:"production_item_id"`
	Stage            string   `json:"stage"`
	Color            string   `json:"color"`
	Size             string   `json:"size"`
	Revision         string   `json:"revision"`
	Notes            string   `json:"notes"`
	ImageURLs        []string `json:"image_urls"`
}

func (in *CreateSampleItemInput) validate() *apierror.Error {
	var details []apierror.FieldError
	if in.ProductionItemID == "" {
		details = append(details, apierror.FieldError{Field: "production_item_id", Message: "is required"})
	}
	if !model.ValidStage(in.Stage) {
		details = append(details, apierror.FieldError{Field: "stage", Message: "unknown stage"})
	}
	if !model.ValidColor(in.Color) {
		details = append(details, apierror.FieldError{Field: "color", Message: "unknown color"})
	}
	if !model.ValidSize(in.Size) {
		details = append(details, apierror.FieldError{Field: "size", Message: "unknown size"})
	}
	if in.Revision == "" {
		details = append(details, apierror.FieldError{Field: "revision", Message: "is required"})
	}
	if len(details) > 0 {
		return apierror.ValidationError("invalid sample item", details...)
	}
	return nil
}

// Create creates one sample item.
func (s *SampleService) Create(ctx context.Context, actor model.ActorContext, input CreateSampleItemInput) (*model.SampleItem, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	parent, err := s.production.GetProductionItem(ctx, input.ProductionItemID)
	if err != nil {
		return nil, apierror.InternalError("")
	}
	if parent == nil {
		return nil, apierror.ReferentialIntegrity(fmt.Sprintf("production item %s does not exist", input.ProductionItemID))
	}

	now := time.Now().UTC()
	item := &model.SampleItem{
		ID:               uid.New(),
		ProductionItemID: input.ProductionItemID,
		Stage:            input.Stage,
		Color:            input.Color,
		Size:             input.Size,
		Revision:         input.Revision,
		Notes:            input.Notes,
		ImageURLs:        input.ImageURLs,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.samples.CreateSampleItem(ctx, item); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, s.describeConflict(ctx, parent.Name, item)
		}
		log.Printf("[SampleService] Failed to create sample item: %v", err)
		return nil, apierror.InternalError("")
	}

	s.audit.Record(ctx, actor, model.EntitySampleItem, item.ID, model.ActionCreated, map[string]interface{}{
		"production_item_id": item.ProductionItemID,
		"variant":            item.VariantLabel(),
	})

	return item, nil
}

// describeConflict looks up the pre-existing record that owns the variation
// tuple and names its values, since the constraint violation alone does not
// hand them back.
func (s *SampleService) describeConflict(ctx context.Context, productName string, item *model.SampleItem) error {
	existing, err := s.samples.FindSampleItemByVariant(ctx,
		item.ProductionItemID, item.Stage, item.Color, item.Size, item.Revision)
	if err != nil || existing == nil {
		return apierror.Conflict(fmt.Sprintf(
			"a sample item for %q with variation %s already exists", productName, item.VariantLabel()))
	}
	return apierror.Conflict(fmt.Sprintf(
		"sample item %s for %q already exists with variation %s",
		existing.ID, productName, existing.VariantLabel()))
}

// CreateBatch creates several variations of one production item in sequence,
// each with optional initial inventory units (AVAILABLE at the given
// location). Processing is fail-fast: a conflict on one variation aborts the
// batch with an error identifying it, leaving earlier variations committed
// and later ones never attempted.
func (s *SampleService) CreateBatch(ctx context.Context, actor model.ActorContext, productionItemID string, variations []model.VariationSpec) ([]model.SampleItem, error) {
	if len(variations) == 0 {
		return nil, apierror.ValidationError("at least one variation is required")
	}

	var created []model.SampleItem
	for i, spec := range variations {
		if spec.InitialQuantity < 0 {
			return created, apierror.ValidationError(fmt.Sprintf("variation %d: initial quantity cannot be negative", i+1))
		}
		if !model.ValidLocation(spec.Location) {
			return created, apierror.ValidationError(fmt.Sprintf("variation %d: unknown location %q", i+1, spec.Location))
		}

		item, err := s.Create(ctx, actor, CreateSampleItemInput{
			ProductionItemID: productionItemID,
			Stage:            spec.Stage,
			Color:            spec.Color,
			Size:             spec.Size,
			Revision:         spec.Revision,
			Notes:            spec.Notes,
		})
		if err != nil {
			if apiErr, ok := err.(*apierror.Error); ok && apiErr.Code == "CONFLICT" {
				return created, apierror.Conflict(fmt.Sprintf("variation %d: %s", i+1, apiErr.Message))
			}
			return created, err
		}

		for j := 0; j < spec.InitialQuantity; j++ {
			now := time.Now().UTC()
			unit := &model.InventoryUnit{
				ID:           uid.New(),
				SampleItemID: item.ID,
				Location:     spec.Location,
				Status:       model.UnitAvailable,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := s.inventory.CreateInventoryUnit(ctx, unit); err != nil {
				log.Printf("[SampleService] Failed to create initial inventory unit: %v", err)
				return created, apierror.InternalError("")
			}
			s.audit.Record(ctx, actor, model.EntityInventoryUnit, unit.ID, model.ActionCreated, map[string]interface{}{
				"sample_item_id": item.ID,
				"location":       unit.Location,
			})
		}

		created = append(created, *item)
	}

	return created, nil
}

// Get returns one sample item by id.
func (s *SampleService) Get(ctx context.Context, id string) (*model.SampleItem, error) {
	item, err := s.samples.GetSampleItem(ctx, id)
	if err != nil {
		return nil, apierror.InternalError("")
	}
	if item == nil {
		return nil, apierror.NotFound(fmt.Sprintf("sample item %s not found", id))
	}
	return item, nil
}

// List returns all sample items of a production item.
func (s *SampleService) List(ctx context.Context, productionItemID string) ([]model.SampleItem, error) {
	items, err := s.samples.ListSampleItems(ctx, productionItemID)
	if err != nil {
		return nil, apierror.InternalError("")
	}
	return items, nil
}

// UpdateSampleItemInput carries a partial update; nil fields are untouched.
// The variation tuple itself is immutable.
type UpdateSampleItemInput struct {
	Notes     *string   `json:"notes"`
	ImageURLs *[]string `json:"image_urls"`
}

// Update edits a sample item's notes and images.
func (s *SampleService) Update(ctx context.Context, actor model.ActorContext, id string, input UpdateSampleItemInput) (*model.SampleItem, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var changed []string
	if input.Notes != nil && *input.Notes != item.Notes {
		item.Notes = *input.Notes
		changed = append(changed, "notes")
	}
	if input.ImageURLs != nil {
		item.ImageURLs = *input.ImageURLs
		changed = append(changed, "image_urls")
	}
	if len(changed) == 0 {
		return item, nil
	}

	item.UpdatedAt = time.Now().UTC()
	ok, err := s.samples.UpdateSampleItem(ctx, item)
	if err != nil {
		log.Printf("[SampleService] Failed to update sample item %s: %v", id, err)
		return nil, apierror.InternalError("")
	}
	if !ok {
		return nil, apierror.NotFound(fmt.Sprintf("sample item %s not found", id))
	}

	s.audit.Record(ctx, actor, model.EntitySampleItem, id, model.ActionUpdated, map[string]interface{}{
		"fields": changed,
	})
	return item, nil
}

// Delete removes a sample item, cascading to its inventory units, requests
// and comments.
func (s *SampleService) Delete(ctx context.Context, actor model.ActorContext, id string) error {
	ok, err := s.samples.DeleteSampleItem(ctx, id)
	if err != nil {
		log.Printf("[SampleService] Failed to delete sample item %s: %v", id, err)
		return apierror.InternalError("")
	}
	if !ok {
		return apierror.NotFound(fmt.Sprintf("sample item %s not found", id))
	}

	s.audit.Record(ctx, actor, model.EntitySampleItem, id, model.ActionDeleted, nil)
	return nil
}

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

// InventoryService tracks physical sample units and derives availability.
// There is no stored counter anywhere: every availability figure is computed
// from the unit rows at read time, so it can never drift from the true unit
// states.
type InventoryService struct {
	inventory repository.InventoryRepository
	samples   repository.SampleItemRepository
	audit     *AuditService
}

// NewInventoryService creates a new inventory service.
func NewInventoryService(
	inventory repository.InventoryRepository,
	samples repository.SampleItemRepository,
	audit *AuditService,
) *InventoryService {
	return &InventoryService{
		inventory: inventory,
		samples:   samples,
		audit:     audit,
	}
}

// CreateUnitInput carries the fields for a new inventory unit.
type CreateUnitInput struct {
	SampleItemID string `json:"sample_item_id"`
	Location     string `json:"location"`
	Status       string `json:"status"`
	Notes        string `json:"notes"`
}

// CreateUnit registers one physical sample unit. Status defaults to AVAILABLE.
func (s *InventoryService) CreateUnit(ctx context.Context, actor model.ActorContext, input CreateUnitInput) (*model.InventoryUnit, error) {
	if input.Status == "" {
		input.Status = model.UnitAvailable
	}
	if !model.ValidUnitStatus(input.Status) {
		return nil, apierror.ValidationError(fmt.Sprintf("unknown status %q", input.Status))
	}
	if !model.ValidLocation(input.Location) {
		return nil, apierror.ValidationError(fmt.Sprintf("unknown location %q", input.Location))
	}

	item, err := s.samples.GetSampleItem(ctx, input.SampleItemID)
	if err != nil {
		return nil, apierror.InternalError("")
	}
	if item == nil {
		return nil, apierror.ReferentialIntegrity(fmt.Sprintf("sample item %s does not exist", input.SampleItemID))
	}

	now := time.Now().UTC()
	unit := &model.InventoryUnit{
		ID:           uid.New(),
		SampleItemID: input.SampleItemID,
		Location:     input.Location,
		Status:       input.Status,
		Notes:        input.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.inventory.CreateInventoryUnit(ctx, unit); err != nil {
		log.Printf("[InventoryService] Failed to create inventory unit: %v", err)
		return nil, apierror.InternalError("")
	}

	s.audit.Record(ctx, actor, model.EntityInventoryUnit, unit.ID, model.ActionCreated, map[string]interface{}{
		"sample_item_id": unit.SampleItemID,
		"location":       unit.Location,
		"status":         unit.Status,
	})
	return unit, nil
}

// UpdateUnitInput carries a partial update; nil fields are untouched.
type UpdateUnitInput struct {
	Status   *string `json:"status"`
	Location *string `json:"location"`
	Notes    *string `json:"notes"`
}

// UpdateUnit edits one unit's status, location or notes.
func (s *InventoryService) UpdateUnit(ctx context.Context, actor model.ActorContext, id string, input UpdateUnitInput) (*model.InventoryUnit, error) {
	unit, err := s.inventory.GetInventoryUnit(ctx, id)
	if err != nil {
		return nil, apierror.InternalError("")
	}
	if unit == nil {
		return nil, apierror.NotFound(fmt.Sprintf("inventory unit %s not found", id))
	}

	priorStatus := unit.Status
	var changed []string

	if input.Status != nil && *input.Status != unit.Status {
		if !model.ValidUnitStatus(*input.Status) {
			return nil, apierror.ValidationError(fmt.Sprintf("unknown status %q", *input.Status))
		}
		unit.Status = *input.Status
		changed = append(changed, "status")
	}
	if input.Location != nil && *input.Location != unit.Location {
		if !model.ValidLocation(*input.Location) {
			return nil, apierror.ValidationError(fmt.Sprintf("unknown location %q", *input.Location))
		}
		unit.Location = *input.Location
		changed = append(changed, "location")
	}
	if input.Notes != nil && *input.Notes != unit.Notes {
		unit.Notes = *input.Notes
		changed = append(changed, "notes")
	}
	if len(changed) == 0 {
		return unit, nil
	}

	unit.UpdatedAt = time.Now().UTC()
	ok, err := s.inventory.UpdateInventoryUnit(ctx, unit)
	if err != nil {
		log.Printf("[InventoryService] Failed to update inventory unit %s: %v", id, err)
		return nil, apierror.InternalError("")
	}
	if !ok {
		return nil, apierror.NotFound(fmt.Sprintf("inventory unit %s not found", id))
	}

	if unit.Status != priorStatus {
		s.audit.Record(ctx, actor, model.EntityInventoryUnit, id, model.ActionStatusChanged, map[string]interface{}{
			"from": priorStatus,
			"to":   unit.Status,
		})
	} else {
		s.audit.Record(ctx, actor, model.EntityInventoryUnit, id, model.ActionUpdated, map[string]interface{}{
			"fields": changed,
		})
	}
	return unit, nil
}

// SampleItemAvailability aggregates over all units of one sample item.
func (s *InventoryService) SampleItemAvailability(ctx context.Context, sampleItemID string) (*model.Availability, error) {
	item, err := s.samples.GetSampleItem(ctx, sampleItemID)
	if err != nil {
		return nil, apierror.InternalError("")
	}
	if item == nil {
		return nil, apierror.NotFound(fmt.Sprintf("sample item %s not found", sampleItemID))
	}

	units, err := s.inventory.ListUnitsBySampleItem(ctx, sampleItemID)
	if err != nil {
		return nil, apierror.InternalError("")
	}
	return Aggregate(units, map[string]model.SampleItem{item.ID: *item}), nil
}

// ProductionItemAvailability aggregates over all units across every sample
// item of one production item.
func (s *InventoryService) ProductionItemAvailability(ctx context.Context, productionItemID string) (*model.Availability, error) {
	items, err := s.samples.ListSampleItems(ctx, productionItemID)
	if err != nil {
		return nil, apierror.InternalError("")
	}
	variants := make(map[string]model.SampleItem, len(items))
	for _, item := range items {
		variants[item.ID] = item
	}

	units, err := s.inventory.ListUnitsByProductionItem(ctx, productionItemID)
	if err != nil {
		return nil, apierror.InternalError("")
	}
	return Aggregate(units, variants), nil
}

// AvailableCount counts units with status AVAILABLE.
func AvailableCount(units []model.InventoryUnit) int {
	count := 0
	for _, unit := range units {
		if unit.Status == model.UnitAvailable {
			count++
		}
	}
	return count
}

// Aggregate derives the availability view for a set of units. variants maps
// sample item ids to their rows so grouping can use the variant's size and
// color; the unit's own location is used for the outermost level. Units with
// no location, and variants with no size or color, land in the distinguished
// NONE group.
func Aggregate(units []model.InventoryUnit, variants map[string]model.SampleItem) *model.Availability {
	availability := &model.Availability{
		TotalCount:     len(units),
		AvailableCount: AvailableCount(units),
		ByStatus:       make(map[string]int),
		Groups:         make(model.LocationGroups),
	}

	for _, unit := range units {
		availability.ByStatus[unit.Status]++

		locKey := groupKey(unit.Location)
		sizeKey, colorKey := model.GroupNone, model.GroupNone
		if variant, ok := variants[unit.SampleItemID]; ok {
			sizeKey = groupKey(variant.Size)
			colorKey = groupKey(variant.Color)
		}

		sizes, ok := availability.Groups[locKey]
		if !ok {
			sizes = make(model.SizeGroups)
			availability.Groups[locKey] = sizes
		}
		colors, ok := sizes[sizeKey]
		if !ok {
			colors = make(model.ColorGroups)
			sizes[sizeKey] = colors
		}
		samples, ok := colors[colorKey]
		if !ok {
			samples = make(model.SampleGroups)
			colors[colorKey] = samples
		}
		samples[unit.SampleItemID] = append(samples[unit.SampleItemID], unit)
	}

	return availability
}

func groupKey(value string) string {
	if value == "" {
		return model.GroupNone
	}
	return value
}

package handler

import (
	"encoding/json"
	"net/http"

	"sampleroom-api/internal/middleware"
	"sampleroom-api/internal/model"
	"sampleroom-api/internal/service"
	"sampleroom-api/pkg/apierror"
	"sampleroom-api/pkg/response"

	"github.com/go-chi/chi/v5"
)

// SampleHandler handles sample item HTTP requests.
type SampleHandler struct {
	samples   *service.SampleService
	inventory *service.InventoryService
}

// NewSampleHandler creates a new sample item handler.
func NewSampleHandler(samples *service.SampleService, inventory *service.InventoryService) *SampleHandler {
	return &SampleHandler{samples: samples, inventory: inventory}
}

// Create handles POST /api/v1/sample-items
func (h *SampleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateSampleItemInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	item, err := h.samples.Create(r.Context(), middleware.GetActor(r.Context()), input)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Created(w, item)
}

// CreateBatch handles POST /api/v1/production-items/{id}/sample-items:batch
func (h *SampleHandler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Variations []model.VariationSpec `json:"variations"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	items, err := h.samples.CreateBatch(r.Context(), middleware.GetActor(r.Context()),
		chi.URLParam(r, "id"), body.Variations)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Created(w, items)
}

// Get handles GET /api/v1/sample-items/{id}
func (h *SampleHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.samples.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, item)
}

// ListByProduction handles GET /api/v1/production-items/{id}/sample-items
func (h *SampleHandler) ListByProduction(w http.ResponseWriter, r *http.Request) {
	items, err := h.samples.List(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, items)
}

// Update handles PATCH /api/v1/sample-items/{id}
func (h *SampleHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input service.UpdateSampleItemInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	item, err := h.samples.Update(r.Context(), middleware.GetActor(r.Context()), chi.URLParam(r, "id"), input)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, item)
}

// Delete handles DELETE /api/v1/sample-items/{id}
func (h *SampleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.samples.Delete(r.Context(), middleware.GetActor(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.Error(w, err)
		return
	}
	response.NoContent(w)
}

// Availability handles GET /api/v1/sample-items/{id}/availability
func (h *SampleHandler) Availability(w http.ResponseWriter, r *http.Request) {
	availability, err := h.inventory.SampleItemAvailability(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, availability)
}

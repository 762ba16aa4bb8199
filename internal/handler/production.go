package handler

import (
	"encoding/json"
	"net/http"

	"sampleroom-api/internal/middleware"
	"sampleroom-api/internal/service"
	"sampleroom-api/pkg/apierror"
	"sampleroom-api/pkg/response"

	"github.com/go-chi/chi/v5"
)

// ProductionHandler handles production item HTTP requests.
type ProductionHandler struct {
	production *service.ProductionService
	inventory  *service.InventoryService
}

// NewProductionHandler creates a new production item handler.
func NewProductionHandler(production *service.ProductionService, inventory *service.InventoryService) *ProductionHandler {
	return &ProductionHandler{production: production, inventory: inventory}
}

// Create handles POST /api/v1/production-items
func (h *ProductionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateProductionItemInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	item, err := h.production.Create(r.Context(), middleware.GetActor(r.Context()), input)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Created(w, item)
}

// Get handles GET /api/v1/production-items/{id}
func (h *ProductionHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.production.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, item)
}

// List handles GET /api/v1/production-items
func (h *ProductionHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.production.List(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, items)
}

// Update handles PATCH /api/v1/production-items/{id}
func (h *ProductionHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input service.UpdateProductionItemInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	item, err := h.production.Update(r.Context(), middleware.GetActor(r.Context()), chi.URLParam(r, "id"), input)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, item)
}

// Delete handles DELETE /api/v1/production-items/{id}
func (h *ProductionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.production.Delete(r.Context(), middleware.GetActor(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.Error(w, err)
		return
	}
	response.NoContent(w)
}

// Availability handles GET /api/v1/production-items/{id}/availability
func (h *ProductionHandler) Availability(w http.ResponseWriter, r *http.Request) {
	availability, err := h.inventory.ProductionItemAvailability(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, availability)
}

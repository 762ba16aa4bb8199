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

// InventoryHandler handles inventory unit HTTP requests.
type InventoryHandler struct {
	inventory *service.InventoryService
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(inventory *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

// Create handles POST /api/v1/inventory
func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateUnitInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	unit, err := h.inventory.CreateUnit(r.Context(), middleware.GetActor(r.Context()), input)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Created(w, unit)
}

// Update handles PATCH /api/v1/inventory/{id}
func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input service.UpdateUnitInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	unit, err := h.inventory.UpdateUnit(r.Context(), middleware.GetActor(r.Context()), chi.URLParam(r, "id"), input)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, unit)
}

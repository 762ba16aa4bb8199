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

// RequestHandler handles sample request HTTP requests.
type RequestHandler struct {
	requests *service.RequestService
}

// NewRequestHandler creates a new request handler.
func NewRequestHandler(requests *service.RequestService) *RequestHandler {
	return &RequestHandler{requests: requests}
}

// Create handles POST /api/v1/requests
func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateRequestInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	req, err := h.requests.Create(r.Context(), middleware.GetActor(r.Context()), input)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Created(w, req)
}

// Get handles GET /api/v1/requests/{id}
func (h *RequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	req, err := h.requests.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, req)
}

// List handles GET /api/v1/requests
func (h *RequestHandler) List(w http.ResponseWriter, r *http.Request) {
	requests, err := h.requests.List(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, requests)
}

// Update handles PATCH /api/v1/requests/{id}
func (h *RequestHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input service.UpdateRequestInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	req, err := h.requests.Update(r.Context(), middleware.GetActor(r.Context()), chi.URLParam(r, "id"), input)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, req)
}

// UpdateStatus handles POST /api/v1/requests/{id}/status
func (h *RequestHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON body"))
		return
	}
	if body.Status == "" {
		response.Error(w, apierror.ValidationError("status is required",
			apierror.FieldError{Field: "status", Message: "is required"}))
		return
	}

	req, err := h.requests.UpdateStatus(r.Context(), middleware.GetActor(r.Context()), chi.URLParam(r, "id"), body.Status)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, req)
}

// Stats handles GET /api/v1/requests/stats
func (h *RequestHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.requests.Stats(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, stats)
}

package handler

import (
	"net/http"

	"sampleroom-api/internal/service"
	"sampleroom-api/pkg/response"

	"github.com/go-chi/chi/v5"
)

// AuditHandler serves the audit trail.
type AuditHandler struct {
	audit *service.AuditService
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(audit *service.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// Trail handles GET /api/v1/audit/{entityType}/{entityId}
func (h *AuditHandler) Trail(w http.ResponseWriter, r *http.Request) {
	events, err := h.audit.GetTrail(r.Context(), chi.URLParam(r, "entityType"), chi.URLParam(r, "entityId"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, events)
}

package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"sampleroom-api/internal/middleware"
	"sampleroom-api/internal/service"
	"sampleroom-api/pkg/apierror"
	"sampleroom-api/pkg/response"

	"github.com/go-chi/chi/v5"
)

// CommentHandler handles comment HTTP requests.
type CommentHandler struct {
	comments *service.CommentService
}

// NewCommentHandler creates a new comment handler.
func NewCommentHandler(comments *service.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// Create handles POST /api/v1/comments
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateCommentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	comment, err := h.comments.Create(r.Context(), middleware.GetActor(r.Context()), input)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Created(w, comment)
}

// Thread handles GET /api/v1/comments?entityType=&entityId=&depth=
func (h *CommentHandler) Thread(w http.ResponseWriter, r *http.Request) {
	entityType := r.URL.Query().Get("entityType")
	entityID := r.URL.Query().Get("entityId")

	depth := 0
	if raw := r.URL.Query().Get("depth"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(w, apierror.BadRequest("depth must be an integer"))
			return
		}
		depth = parsed
	}

	nodes, err := h.comments.Thread(r.Context(), entityType, entityID, depth)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, nodes)
}

// Update handles PATCH /api/v1/comments/{id}
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	comment, err := h.comments.Update(r.Context(), middleware.GetActor(r.Context()), chi.URLParam(r, "id"), body.Content)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, comment)
}

// Delete handles DELETE /api/v1/comments/{id}
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.comments.Delete(r.Context(), middleware.GetActor(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.Error(w, err)
		return
	}
	response.NoContent(w)
}

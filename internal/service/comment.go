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

// CommentService handles discussion threads. A comment attaches to exactly
// one of {production item, sample item, request}; a reply inherits its
// parent's attachment, so the caller of a deep reply never needs to know
// which entity the thread ultimately belongs to.
type CommentService struct {
	comments   repository.CommentRepository
	production repository.ProductionItemRepository
	samples    repository.SampleItemRepository
	requests   repository.RequestRepository
	audit      *AuditService
	replyDepth int
}

// NewCommentService creates a new comment service. replyDepth is how many
// reply levels Thread loads eagerly.
func NewCommentService(
	comments repository.CommentRepository,
	production repository.ProductionItemRepository,
	samples repository.SampleItemRepository,
	requests repository.RequestRepository,
	audit *AuditService,
	replyDepth int,
) *CommentService {
	if replyDepth < 1 {
		replyDepth = 3
	}
	return &CommentService{
		comments:   comments,
		production: production,
		samples:    samples,
		requests:   requests,
		audit:      audit,
		replyDepth: replyDepth,
	}
}

// CreateCommentInput carries the fields for a new comment. The embedded
// target fields arrive flat in the JSON body.
type CreateCommentInput struct {
	Content  string `json:"content"`
	AuthorID string `json:"author_id"`
	model.CommentTarget
}

// Create posts a comment or reply.
func (s *CommentService) Create(ctx context.Context, actor model.ActorContext, input CreateCommentInput) (*model.Comment, error) {
	if input.Content == "" {
		return nil, apierror.ValidationError("comment content is required",
			apierror.FieldError{Field: "content", Message: "is required"})
	}
	if len(input.Content) > model.MaxCommentLength {
		return nil, apierror.ValidationError("comment content is too long",
			apierror.FieldError{Field: "content", Message: fmt.Sprintf("must be at most %d characters", model.MaxCommentLength)})
	}

	authorID := input.AuthorID
	if authorID == "" {
		authorID = actor.UserID
	}

	entityType, entityID, isReply, ok := input.CommentTarget.Resolve()
	if !ok {
		return nil, apierror.ValidationError(
			"exactly one of production_item_id, sample_item_id, request_id or parent_comment_id must be set")
	}

	var parentID string
	if isReply {
		parent, err := s.comments.GetComment(ctx, input.ParentCommentID)
		if err != nil {
			return nil, apierror.InternalError("")
		}
		if parent == nil {
			return nil, apierror.NotFound(fmt.Sprintf("parent comment %s not found", input.ParentCommentID))
		}
		// The attachment is copied from the parent, never supplied by the caller.
		entityType, entityID = parent.EntityType, parent.EntityID
		parentID = parent.ID
	} else if err := s.entityExists(ctx, entityType, entityID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	comment := &model.Comment{
		ID:              uid.New(),
		Content:         input.Content,
		AuthorID:        authorID,
		EntityType:      entityType,
		EntityID:        entityID,
		ParentCommentID: parentID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.comments.CreateComment(ctx, comment); err != nil {
		log.Printf("[CommentService] Failed to create comment: %v", err)
		return nil, apierror.InternalError("")
	}

	s.audit.Record(ctx, actor, model.EntityComment, comment.ID, model.ActionCreated, map[string]interface{}{
		"entity_type": entityType,
		"entity_id":   entityID,
	})
	return comment, nil
}

func (s *CommentService) entityExists(ctx context.Context, entityType, entityID string) error {
	var exists bool
	switch entityType {
	case model.TargetProductionItem:
		item, err := s.production.GetProductionItem(ctx, entityID)
		if err != nil {
			return apierror.InternalError("")
		}
		exists = item != nil
	case model.TargetSampleItem:
		item, err := s.samples.GetSampleItem(ctx, entityID)
		if err != nil {
			return apierror.InternalError("")
		}
		exists = item != nil
	case model.TargetRequest:
		req, err := s.requests.GetRequest(ctx, entityID)
		if err != nil {
			return apierror.InternalError("")
		}
		exists = req != nil
	default:
		return apierror.ValidationError(fmt.Sprintf("unknown entity type %q", entityType))
	}
	if !exists {
		return apierror.ReferentialIntegrity(fmt.Sprintf("%s %s does not exist", entityType, entityID))
	}
	return nil
}

// Thread returns an entity's top-level comments with replies nested to depth
// levels. depth <= 0 uses the configured default.
func (s *CommentService) Thread(ctx context.Context, entityType, entityID string, depth int) ([]model.CommentNode, error) {
	if entityType == "" || entityID == "" {
		return nil, apierror.ValidationError("entity type and entity id are required")
	}
	if depth <= 0 {
		depth = s.replyDepth
	}

	topLevel, err := s.comments.ListTopLevelComments(ctx, entityType, entityID)
	if err != nil {
		return nil, apierror.InternalError("")
	}
	return s.buildNodes(ctx, topLevel, depth)
}

func (s *CommentService) buildNodes(ctx context.Context, comments []model.Comment, depth int) ([]model.CommentNode, error) {
	nodes := make([]model.CommentNode, 0, len(comments))
	for _, c := range comments {
		node := model.CommentNode{Comment: c}
		if depth > 0 {
			replies, err := s.comments.ListReplies(ctx, c.ID)
			if err != nil {
				return nil, apierror.InternalError("")
			}
			node.Replies, err = s.buildNodes(ctx, replies, depth-1)
			if err != nil {
				return nil, err
			}
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// Update replaces a comment's content in place. No edit history is kept.
func (s *CommentService) Update(ctx context.Context, actor model.ActorContext, id, content string) (*model.Comment, error) {
	if content == "" {
		return nil, apierror.ValidationError("comment content is required")
	}
	if len(content) > model.MaxCommentLength {
		return nil, apierror.ValidationError("comment content is too long")
	}

	ok, err := s.comments.UpdateCommentContent(ctx, id, content)
	if err != nil {
		log.Printf("[CommentService] Failed to update comment %s: %v", id, err)
		return nil, apierror.InternalError("")
	}
	if !ok {
		return nil, apierror.NotFound(fmt.Sprintf("comment %s not found", id))
	}

	s.audit.Record(ctx, actor, model.EntityComment, id, model.ActionUpdated, map[string]interface{}{
		"fields": []string{"content"},
	})

	comment, err := s.comments.GetComment(ctx, id)
	if err != nil {
		return nil, apierror.InternalError("")
	}
	return comment, nil
}

// Delete hard-deletes a comment and its entire reply subtree.
func (s *CommentService) Delete(ctx context.Context, actor model.ActorContext, id string) error {
	ok, err := s.comments.DeleteComment(ctx, id)
	if err != nil {
		log.Printf("[CommentService] Failed to delete comment %s: %v", id, err)
		return apierror.InternalError("")
	}
	if !ok {
		return apierror.NotFound(fmt.Sprintf("comment %s not found", id))
	}

	s.audit.Record(ctx, actor, model.EntityComment, id, model.ActionDeleted, nil)
	return nil
}

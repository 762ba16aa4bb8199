package model

import "time"

// Comment target entity types. A comment attaches to exactly one entity;
// replies inherit their parent's attachment.
const (
	TargetProductionItem = "production_item"
	TargetSampleItem     = "sample_item"
	TargetRequest        = "request"
)

// CommentTarget is a tagged union naming what a new comment attaches to:
// one entity, or a parent comment (making it a reply). Exactly one field may
// be set.
type CommentTarget struct {
	ProductionItemID string `json:"production_item_id,omitempty"`
	SampleItemID     string `json:"sample_item_id,omitempty"`
	RequestID        string `json:"request_id,omitempty"`
	ParentCommentID  string `json:"parent_comment_id,omitempty"`
}

// Resolve returns the entity type and id the target names directly, or
// ("", "") with isReply=true when the target is a parent comment. ok is false
// unless exactly one field is set.
func (t CommentTarget) Resolve() (entityType, entityID string, isReply bool, ok bool) {
	set := 0
	if t.ProductionItemID != "" {
		set++
		entityType, entityID = TargetProductionItem, t.ProductionItemID
	}
	if t.SampleItemID != "" {
		set++
		entityType, entityID = TargetSampleItem, t.SampleItemID
	}
	if t.RequestID != "" {
		set++
		entityType, entityID = TargetRequest, t.RequestID
	}
	if t.ParentCommentID != "" {
		set++
		entityType, entityID, isReply = "", "", true
	}
	if set != 1 {
		return "", "", false, false
	}
	return entityType, entityID, isReply, true
}

// MaxCommentLength caps comment content size.
const MaxCommentLength = 5000

// Comment is a free-text note attached to a production item, sample item or
// request. The resolved attachment is stored on every row, including replies,
// so a deep reply knows which entity it ultimately belongs to.
type Comment struct {
	ID              string    `json:"id"`
	Content         string    `json:"content"`
	AuthorID        string    `json:"author_id"`
	EntityType      string    `json:"entity_type"`
	EntityID        string    `json:"entity_id"`
	ParentCommentID string    `json:"parent_comment_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CommentNode is a comment with its replies nested up to the fetch depth.
type CommentNode struct {
	Comment
	Replies []CommentNode `json:"replies,omitempty"`
}

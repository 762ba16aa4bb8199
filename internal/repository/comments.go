package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"sampleroom-api/internal/model"
)

const commentColumns = `id, content, author_id, entity_type, entity_id, parent_comment_id, created_at, updated_at`

func scanComment(row interface{ Scan(...interface{}) error }) (*model.Comment, error) {
	c := &model.Comment{}
	var parentID sql.NullString
	err := row.Scan(&c.ID, &c.Content, &c.AuthorID, &c.EntityType, &c.EntityID,
		&parentID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.ParentCommentID = parentID.String
	return c, nil
}

// CreateComment inserts a new comment or reply.
func (s *Store) CreateComment(ctx context.Context, c *model.Comment) error {
	var parentID interface{}
	if c.ParentCommentID != "" {
		parentID = c.ParentCommentID
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO comments (id, content, author_id, entity_type, entity_id, parent_comment_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Content, c.AuthorID, c.EntityType, c.EntityID, parentID, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// GetComment returns a comment by id, or nil if missing.
func (s *Store) GetComment(ctx context.Context, id string) (*model.Comment, error) {
	c, err := scanComment(s.db.QueryRowContext(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return c, nil
}

// UpdateCommentContent replaces a comment's content in place. No edit history
// is kept.
func (s *Store) UpdateCommentContent(ctx context.Context, id, content string) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE comments SET content = ?, updated_at = ? WHERE id = ?`,
		content, time.Now().UTC(), id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update comment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// DeleteComment hard-deletes a comment. The reply subtree goes with it through
// the parent_comment_id cascade, so no replies are orphaned.
func (s *Store) DeleteComment(ctx context.Context, id string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete comment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// DeleteCommentsForEntity removes every comment attached to an entity. Used
// when the entity itself is deleted.
func (s *Store) DeleteCommentsForEntity(ctx context.Context, entityType, entityID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM comments WHERE entity_type = ? AND entity_id = ? AND parent_comment_id IS NULL`,
		entityType, entityID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete entity comments: %w", err)
	}
	return nil
}

// ListTopLevelComments returns an entity's comments with no parent, oldest
// first.
func (s *Store) ListTopLevelComments(ctx context.Context, entityType, entityID string) ([]model.Comment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+commentColumns+` FROM comments
		 WHERE entity_type = ? AND entity_id = ? AND parent_comment_id IS NULL
		 ORDER BY created_at, id`,
		entityType, entityID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()
	return collectComments(rows)
}

// ListReplies returns the direct replies of a comment, oldest first.
func (s *Store) ListReplies(ctx context.Context, parentCommentID string) ([]model.Comment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+commentColumns+` FROM comments
		 WHERE parent_comment_id = ? ORDER BY created_at, id`,
		parentCommentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list replies: %w", err)
	}
	defer rows.Close()
	return collectComments(rows)
}

func collectComments(rows *sql.Rows) ([]model.Comment, error) {
	var comments []model.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, *c)
	}
	return comments, rows.Err()
}

// Ensure Store implements CommentRepository
var _ CommentRepository = (*Store)(nil)

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"sampleroom-api/internal/model"
)

const sampleItemColumns = `id, production_item_id, stage, color, size, revision, notes, image_urls, created_at, updated_at`

func scanSampleItem(row interface{ Scan(...interface{}) error }) (*model.SampleItem, error) {
	item := &model.SampleItem{}
	var imageURLs string
	err := row.Scan(&item.ID, &item.ProductionItemID, &item.Stage, &item.Color, &item.Size,
		&item.Revision, &item.Notes, &imageURLs, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	item.ImageURLs = unmarshalStrings(imageURLs)
	return item, nil
}

// CreateSampleItem inserts a new sample item. A duplicate variation tuple
// surfaces as a uniqueness violation; callers translate it with a follow-up
// FindSampleItemByVariant read.
func (s *Store) CreateSampleItem(ctx context.Context, item *model.SampleItem) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sample_items (id, production_item_id, stage, color, size, revision, notes, image_urls, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.ProductionItemID, item.Stage, item.Color, item.Size,
		item.Revision, item.Notes, marshalStrings(item.ImageURLs), item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) || IsForeignKeyViolation(err) {
			return err
		}
		return fmt.Errorf("failed to create sample item: %w", err)
	}
	return nil
}

// GetSampleItem returns a sample item by id, or nil if missing.
func (s *Store) GetSampleItem(ctx context.Context, id string) (*model.SampleItem, error) {
	item, err := scanSampleItem(s.db.QueryRowContext(ctx,
		`SELECT `+sampleItemColumns+` FROM sample_items WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sample item: %w", err)
	}
	return item, nil
}

// FindSampleItemByVariant returns the sample item holding the given variation
// tuple, or nil if none exists.
func (s *Store) FindSampleItemByVariant(ctx context.Context, productionItemID, stage, color, size, revision string) (*model.SampleItem, error) {
	item, err := scanSampleItem(s.db.QueryRowContext(ctx,
		`SELECT `+sampleItemColumns+` FROM sample_items
		 WHERE production_item_id = ? AND stage = ? AND color = ? AND size = ? AND revision = ?`,
		productionItemID, stage, color, size, revision))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find sample item variant: %w", err)
	}
	return item, nil
}

// ListSampleItems returns all sample items of a production item.
func (s *Store) ListSampleItems(ctx context.Context, productionItemID string) ([]model.SampleItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+sampleItemColumns+` FROM sample_items
		 WHERE production_item_id = ? ORDER BY stage, color, size, revision`,
		productionItemID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list sample items: %w", err)
	}
	defer rows.Close()

	var items []model.SampleItem
	for rows.Next() {
		item, err := scanSampleItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sample item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// UpdateSampleItem persists notes and image URLs. The variation tuple itself
// is immutable after creation.
func (s *Store) UpdateSampleItem(ctx context.Context, item *model.SampleItem) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE sample_items SET notes = ?, image_urls = ?, updated_at = ? WHERE id = ?`,
		item.Notes, marshalStrings(item.ImageURLs), item.UpdatedAt, item.ID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update sample item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// DeleteSampleItem removes a sample item and, through cascades, its inventory
// units and requests. Comments attached to the item or its requests are
// removed explicitly in the same transaction.
func (s *Store) DeleteSampleItem(ctx context.Context, id string) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	cleanups := []string{
		`DELETE FROM comments WHERE entity_type = 'request' AND entity_id IN (
			SELECT id FROM sample_requests WHERE sample_item_id = ?)`,
		`DELETE FROM comments WHERE entity_type = 'sample_item' AND entity_id = ?`,
	}
	for _, query := range cleanups {
		if _, err := tx.ExecContext(ctx, query, id); err != nil {
			return false, fmt.Errorf("failed to delete sample item comments: %w", err)
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM sample_items WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete sample item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return affected > 0, nil
}

// Ensure Store implements SampleItemRepository
var _ SampleItemRepository = (*Store)(nil)

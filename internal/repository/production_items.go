package repository

import (
	"context"
	"database/sql"
	"fmt"

	"sampleroom-api/internal/model"
)

// CreateProductionItem inserts a new production item.
func (s *Store) CreateProductionItem(ctx context.Context, item *model.ProductionItem) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO production_items (id, name, description, image_urls, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		item.ID, item.Name, item.Description, marshalStrings(item.ImageURLs), item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create production item: %w", err)
	}
	return nil
}

// GetProductionItem returns a production item by id, or nil if missing.
func (s *Store) GetProductionItem(ctx context.Context, id string) (*model.ProductionItem, error) {
	item := &model.ProductionItem{}
	var imageURLs string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, description, image_urls, created_at, updated_at
		 FROM production_items WHERE id = ?`, id,
	).Scan(&item.ID, &item.Name, &item.Description, &imageURLs, &item.CreatedAt, &item.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get production item: %w", err)
	}
	item.ImageURLs = unmarshalStrings(imageURLs)
	return item, nil
}

// ListProductionItems returns all production items, newest first.
func (s *Store) ListProductionItems(ctx context.Context) ([]model.ProductionItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, image_urls, created_at, updated_at
		 FROM production_items ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list production items: %w", err)
	}
	defer rows.Close()

	var items []model.ProductionItem
	for rows.Next() {
		var item model.ProductionItem
		var imageURLs string
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &imageURLs, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan production item: %w", err)
		}
		item.ImageURLs = unmarshalStrings(imageURLs)
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateProductionItem persists name, description and image URLs.
func (s *Store) UpdateProductionItem(ctx context.Context, item *model.ProductionItem) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE production_items SET name = ?, description = ?, image_urls = ?, updated_at = ?
		 WHERE id = ?`,
		item.Name, item.Description, marshalStrings(item.ImageURLs), item.UpdatedAt, item.ID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update production item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// DeleteProductionItem removes a production item. Sample items, their
// inventory units and their requests go with it through foreign key cascades;
// comments attached to the item, its sample items or their requests are not
// foreign-keyed and are removed explicitly in the same transaction.
func (s *Store) DeleteProductionItem(ctx context.Context, id string) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	cleanups := []string{
		`DELETE FROM comments WHERE entity_type = 'request' AND entity_id IN (
			SELECT r.id FROM sample_requests r
			JOIN sample_items si ON si.id = r.sample_item_id
			WHERE si.production_item_id = ?)`,
		`DELETE FROM comments WHERE entity_type = 'sample_item' AND entity_id IN (
			SELECT id FROM sample_items WHERE production_item_id = ?)`,
		`DELETE FROM comments WHERE entity_type = 'production_item' AND entity_id = ?`,
	}
	for _, query := range cleanups {
		if _, err := tx.ExecContext(ctx, query, id); err != nil {
			return false, fmt.Errorf("failed to delete production item comments: %w", err)
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM production_items WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete production item: %w", err)
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

// Ensure Store implements ProductionItemRepository
var _ ProductionItemRepository = (*Store)(nil)

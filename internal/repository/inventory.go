package repository

import (
	"context"
	"database/sql"
	"fmt"

	"sampleroom-api/internal/model"
)

const inventoryColumns = `id, sample_item_id, location, status, notes, created_at, updated_at`

func scanInventoryUnit(row interface{ Scan(...interface{}) error }) (*model.InventoryUnit, error) {
	unit := &model.InventoryUnit{}
	err := row.Scan(&unit.ID, &unit.SampleItemID, &unit.Location, &unit.Status,
		&unit.Notes, &unit.CreatedAt, &unit.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return unit, nil
}

// CreateInventoryUnit inserts a new inventory unit.
func (s *Store) CreateInventoryUnit(ctx context.Context, unit *model.InventoryUnit) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO inventory_units (id, sample_item_id, location, status, notes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		unit.ID, unit.SampleItemID, unit.Location, unit.Status, unit.Notes, unit.CreatedAt, unit.UpdatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return err
		}
		return fmt.Errorf("failed to create inventory unit: %w", err)
	}
	return nil
}

// GetInventoryUnit returns an inventory unit by id, or nil if missing.
func (s *Store) GetInventoryUnit(ctx context.Context, id string) (*model.InventoryUnit, error) {
	unit, err := scanInventoryUnit(s.db.QueryRowContext(ctx,
		`SELECT `+inventoryColumns+` FROM inventory_units WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory unit: %w", err)
	}
	return unit, nil
}

// UpdateInventoryUnit persists location, status and notes.
func (s *Store) UpdateInventoryUnit(ctx context.Context, unit *model.InventoryUnit) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE inventory_units SET location = ?, status = ?, notes = ?, updated_at = ? WHERE id = ?`,
		unit.Location, unit.Status, unit.Notes, unit.UpdatedAt, unit.ID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update inventory unit: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// ListUnitsBySampleItem returns all units of one sample item, oldest first so
// grouped output keeps a stable order.
func (s *Store) ListUnitsBySampleItem(ctx context.Context, sampleItemID string) ([]model.InventoryUnit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+inventoryColumns+` FROM inventory_units
		 WHERE sample_item_id = ? ORDER BY created_at, id`,
		sampleItemID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory units: %w", err)
	}
	defer rows.Close()
	return collectUnits(rows)
}

// ListUnitsByProductionItem returns all units across every sample item of a
// production item.
func (s *Store) ListUnitsByProductionItem(ctx context.Context, productionItemID string) ([]model.InventoryUnit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT u.id, u.sample_item_id, u.location, u.status, u.notes, u.created_at, u.updated_at
		 FROM inventory_units u
		 JOIN sample_items si ON si.id = u.sample_item_id
		 WHERE si.production_item_id = ?
		 ORDER BY u.created_at, u.id`,
		productionItemID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory units for production item: %w", err)
	}
	defer rows.Close()
	return collectUnits(rows)
}

func collectUnits(rows *sql.Rows) ([]model.InventoryUnit, error) {
	var units []model.InventoryUnit
	for rows.Next() {
		unit, err := scanInventoryUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory unit: %w", err)
		}
		units = append(units, *unit)
	}
	return units, rows.Err()
}

// Ensure Store implements InventoryRepository
var _ InventoryRepository = (*Store)(nil)

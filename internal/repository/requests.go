package repository

import (
	"context"
	"database/sql"
	"fmt"

	"sampleroom-api/internal/model"
)

const requestColumns = `id, sample_item_id, team_id, quantity, status, shipping_method, shipping_address, notes,
	requested_at, approved_at, shipped_at, handed_off_at, returned_at, closed_at, created_at, updated_at`

func scanRequest(row interface{ Scan(...interface{}) error }) (*model.SampleRequest, error) {
	req := &model.SampleRequest{}
	err := row.Scan(&req.ID, &req.SampleItemID, &req.TeamID, &req.Quantity, &req.Status,
		&req.ShippingMethod, &req.ShippingAddress, &req.Notes,
		&req.RequestedAt, &req.ApprovedAt, &req.ShippedAt, &req.HandedOffAt,
		&req.ReturnedAt, &req.ClosedAt, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return req, nil
}

// CreateRequest inserts a new sample request.
func (s *Store) CreateRequest(ctx context.Context, req *model.SampleRequest) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sample_requests (id, sample_item_id, team_id, quantity, status,
			shipping_method, shipping_address, notes, requested_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		req.ID, req.SampleItemID, req.TeamID, req.Quantity, req.Status,
		req.ShippingMethod, req.ShippingAddress, req.Notes, req.RequestedAt, req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return err
		}
		return fmt.Errorf("failed to create request: %w", err)
	}
	return nil
}

// GetRequest returns a sample request by id, or nil if missing.
func (s *Store) GetRequest(ctx context.Context, id string) (*model.SampleRequest, error) {
	req, err := scanRequest(s.db.QueryRowContext(ctx,
		`SELECT `+requestColumns+` FROM sample_requests WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get request: %w", err)
	}
	return req, nil
}

// ListRequests returns all sample requests, newest first.
func (s *Store) ListRequests(ctx context.Context) ([]model.SampleRequest, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+requestColumns+` FROM sample_requests ORDER BY requested_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	defer rows.Close()

	var requests []model.SampleRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}

// UpdateRequest writes the request's mutable fields and lifecycle timestamps,
// guarded by an optimistic compare-and-set on the previously read status. A
// concurrent transition makes the WHERE clause miss and returns false.
func (s *Store) UpdateRequest(ctx context.Context, req *model.SampleRequest, expectedStatus string) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE sample_requests SET
			quantity = ?, status = ?, shipping_method = ?, shipping_address = ?, notes = ?,
			approved_at = ?, shipped_at = ?, handed_off_at = ?, returned_at = ?, closed_at = ?,
			updated_at = ?
		 WHERE id = ? AND status = ?`,
		req.Quantity, req.Status, req.ShippingMethod, req.ShippingAddress, req.Notes,
		req.ApprovedAt, req.ShippedAt, req.HandedOffAt, req.ReturnedAt, req.ClosedAt,
		req.UpdatedAt, req.ID, expectedStatus,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update request: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// GetRequestStats returns the total request count and a per-status breakdown,
// computed live with GROUP BY.
func (s *Store) GetRequestStats(ctx context.Context) (*model.RequestStats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM sample_requests GROUP BY status`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get request stats: %w", err)
	}
	defer rows.Close()

	stats := &model.RequestStats{ByStatus: make(map[string]int)}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan request stats: %w", err)
		}
		stats.ByStatus[status] = count
		stats.Total += count
	}
	return stats, rows.Err()
}

// Ensure Store implements RequestRepository
var _ RequestRepository = (*Store)(nil)

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"sampleroom-api/internal/model"
)

// CreateTeam inserts a new team.
func (s *Store) CreateTeam(ctx context.Context, team *model.Team) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO teams (id, name, shipping_address, contact_email, contact_phone, is_internal, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		team.ID, team.Name, team.ShippingAddress, team.ContactEmail, team.ContactPhone,
		team.IsInternal, team.CreatedAt, team.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

// GetTeam returns a team by id, or nil if missing.
func (s *Store) GetTeam(ctx context.Context, id string) (*model.Team, error) {
	team := &model.Team{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, shipping_address, contact_email, contact_phone, is_internal, created_at, updated_at
		 FROM teams WHERE id = ?`, id,
	).Scan(&team.ID, &team.Name, &team.ShippingAddress, &team.ContactEmail,
		&team.ContactPhone, &team.IsInternal, &team.CreatedAt, &team.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return team, nil
}

// ListTeams returns all teams ordered by name.
func (s *Store) ListTeams(ctx context.Context) ([]model.Team, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, shipping_address, contact_email, contact_phone, is_internal, created_at, updated_at
		 FROM teams ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var teams []model.Team
	for rows.Next() {
		var team model.Team
		if err := rows.Scan(&team.ID, &team.Name, &team.ShippingAddress, &team.ContactEmail,
			&team.ContactPhone, &team.IsInternal, &team.CreatedAt, &team.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

// CountRequestsByTeam returns how many sample requests reference the team.
func (s *Store) CountRequestsByTeam(ctx context.Context, teamID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sample_requests WHERE team_id = ?`, teamID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count team requests: %w", err)
	}
	return count, nil
}

// DeleteTeam removes a team. The service layer guards against deleting a team
// with existing requests; the foreign key backs that up at the storage level.
func (s *Store) DeleteTeam(ctx context.Context, id string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM teams WHERE id = ?`, id)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return false, err
		}
		return false, fmt.Errorf("failed to delete team: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Ensure Store implements TeamRepository
var _ TeamRepository = (*Store)(nil)

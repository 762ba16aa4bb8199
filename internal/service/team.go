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

// TeamService handles team business logic. Team names are intentionally not
// unique; the one rule that matters is the delete guard: a team with existing
// sample requests cannot be removed.
type TeamService struct {
	teams repository.TeamRepository
	audit *AuditService
}

// NewTeamService creates a new team service.
func NewTeamService(teams repository.TeamRepository, audit *AuditService) *TeamService {
	return &TeamService{teams: teams, audit: audit}
}

// CreateTeamInput carries the fields for a new team.
type CreateTeamInput struct {
	Name            string `json:"name"`
	ShippingAddress string `json:"shipping_address"`
	ContactEmail    string `json:"contact_email"`
	ContactPhone    string `json:"contact_phone"`
	IsInternal      bool   `json:"is_internal"`
}

// Create registers a new team.
func (s *TeamService) Create(ctx context.Context, actor model.ActorContext, input CreateTeamInput) (*model.Team, error) {
	if input.Name == "" {
		return nil, apierror.ValidationError("team name is required",
			apierror.FieldError{Field: "name", Message: "is required"})
	}

	now := time.Now().UTC()
	team := &model.Team{
		ID:              uid.New(),
		Name:            input.Name,
		ShippingAddress: input.ShippingAddress,
		ContactEmail:    input.ContactEmail,
		ContactPhone:    input.ContactPhone,
		IsInternal:      input.IsInternal,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.teams.CreateTeam(ctx, team); err != nil {
		log.Printf("[TeamService] Failed to create team: %v", err)
		return nil, apierror.InternalError("")
	}

	s.audit.Record(ctx, actor, model.EntityTeam, team.ID, model.ActionCreated, map[string]interface{}{
		"name": team.Name,
	})
	return team, nil
}

// Get returns one team by id.
func (s *TeamService) Get(ctx context.Context, id string) (*model.Team, error) {
	team, err := s.teams.GetTeam(ctx, id)
	if err != nil {
		return nil, apierror.InternalError("")
	}
	if team == nil {
		return nil, apierror.NotFound(fmt.Sprintf("team %s not found", id))
	}
	return team, nil
}

// List returns all teams.
func (s *TeamService) List(ctx context.Context) ([]model.Team, error) {
	teams, err := s.teams.ListTeams(ctx)
	if err != nil {
		return nil, apierror.InternalError("")
	}
	return teams, nil
}

// Delete removes a team. A team with one or more sample requests cannot be
// deleted; the team row is left unchanged.
func (s *TeamService) Delete(ctx context.Context, actor model.ActorContext, id string) error {
	team, err := s.teams.GetTeam(ctx, id)
	if err != nil {
		return apierror.InternalError("")
	}
	if team == nil {
		return apierror.NotFound(fmt.Sprintf("team %s not found", id))
	}

	count, err := s.teams.CountRequestsByTeam(ctx, id)
	if err != nil {
		return apierror.InternalError("")
	}
	if count > 0 {
		return apierror.ReferentialIntegrity(fmt.Sprintf(
			"team %q has %d sample request(s) and cannot be deleted", team.Name, count))
	}

	ok, err := s.teams.DeleteTeam(ctx, id)
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			// A request slipped in between the count and the delete.
			return apierror.ReferentialIntegrity(fmt.Sprintf(
				"team %q has sample requests and cannot be deleted", team.Name))
		}
		log.Printf("[TeamService] Failed to delete team %s: %v", id, err)
		return apierror.InternalError("")
	}
	if !ok {
		return apierror.NotFound(fmt.Sprintf("team %s not found", id))
	}

	s.audit.Record(ctx, actor, model.EntityTeam, id, model.ActionDeleted, map[string]interface{}{
		"name": team.Name,
	})
	return nil
}

package service

import (
	"context"
	"strings"
	"testing"

	"sampleroom-api/internal/model"
	"sampleroom-api/pkg/apierror"
)

func TestCreateTeamRequiresName(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.teams.Create(context.Background(), testActor, CreateTeamInput{})
	if apiErr, ok := err.(*apierror.Error); !ok || apiErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected validation error, got: %v", err)
	}
}

func TestTeamNamesAreNotUnique(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first := env.createTeam(t, "Design")
	second, err := env.teams.Create(ctx, testActor, CreateTeamInput{Name: "Design"})
	if err != nil {
		t.Fatalf("creating second team with same name: %v", err)
	}
	if first.ID == second.ID {
		t.Fatal("teams share an id")
	}
}

func TestDeleteTeamWithRequestsIsBlocked(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	prod := env.createProductionItem(t)
	item := env.createSampleItem(t, prod.ID, model.StagePrototype, "BLACK", "M", "v1")
	team := env.createTeam(t, "Showroom Crew")
	env.createRequest(t, item.ID, team.ID)

	err := env.teams.Delete(ctx, testActor, team.ID)
	apiErr, ok := err.(*apierror.Error)
	if !ok || apiErr.Code != "REFERENTIAL_INTEGRITY" {
		t.Fatalf("expected referential integrity error, got: %v", err)
	}
	if !strings.Contains(apiErr.Message, "Showroom Crew") {
		t.Errorf("error %q does not name the team", apiErr.Message)
	}

	// The team row must be untouched.
	if _, err := env.teams.Get(ctx, team.ID); err != nil {
		t.Fatalf("team disappeared after blocked delete: %v", err)
	}
}

func TestDeleteTeamWithoutRequests(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	team := env.createTeam(t, "Ephemeral")

	if err := env.teams.Delete(ctx, testActor, team.ID); err != nil {
		t.Fatalf("deleting team: %v", err)
	}

	_, err := env.teams.Get(ctx, team.ID)
	if apiErr, ok := err.(*apierror.Error); !ok || apiErr.Code != "NOT_FOUND" {
		t.Fatalf("expected not found after delete, got: %v", err)
	}
}

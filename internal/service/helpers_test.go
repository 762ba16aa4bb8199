package service

import (
	"context"
	"testing"
	"time"

	"sampleroom-api/internal/cache"
	"sampleroom-api/internal/model"
	"sampleroom-api/internal/repository"
)

// testEnv wires every service against one in-memory store and a real SQLite
// audit backend, the way main does it.
type testEnv struct {
	store      *repository.Store
	audit      *AuditService
	auditRepo  repository.AuditRepository
	cache      *cache.MemoryCache
	production *ProductionService
	samples    *SampleService
	inventory  *InventoryService
	teams      *TeamService
	requests   *RequestService
	comments   *CommentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := repository.NewTestStore(t)
	auditRepo := repository.NewTestAudit(t)
	auditService := NewAuditService(auditRepo)

	memCache := cache.NewMemoryCache()
	t.Cleanup(memCache.Stop)

	return &testEnv{
		store:      store,
		audit:      auditService,
		auditRepo:  auditRepo,
		cache:      memCache,
		production: NewProductionService(store, auditService),
		samples:    NewSampleService(store, store, store, auditService),
		inventory:  NewInventoryService(store, store, auditService),
		teams:      NewTeamService(store, auditService),
		requests:   NewRequestService(store, store, store, auditService, memCache, time.Minute),
		comments:   NewCommentService(store, store, store, store, auditService, 3),
	}
}

var testActor = model.ActorContext{UserID: "tester"}

func (e *testEnv) createProductionItem(t *testing.T) *model.ProductionItem {
	t.Helper()
	item, err := e.production.Create(context.Background(), testActor, CreateProductionItemInput{
		Name: "Linen Trousers",
	})
	if err != nil {
		t.Fatalf("creating production item: %v", err)
	}
	return item
}

func (e *testEnv) createSampleItem(t *testing.T, productionItemID, stage, color, size, revision string) *model.SampleItem {
	t.Helper()
	item, err := e.samples.Create(context.Background(), testActor, CreateSampleItemInput{
		ProductionItemID: productionItemID,
		Stage:            stage,
		Color:            color,
		Size:             size,
		Revision:         revision,
	})
	if err != nil {
		t.Fatalf("creating sample item: %v", err)
	}
	return item
}

func (e *testEnv) createTeam(t *testing.T, name string) *model.Team {
	t.Helper()
	team, err := e.teams.Create(context.Background(), testActor, CreateTeamInput{Name: name})
	if err != nil {
		t.Fatalf("creating team: %v", err)
	}
	return team
}

func (e *testEnv) createRequest(t *testing.T, sampleItemID, teamID string) *model.SampleRequest {
	t.Helper()
	req, err := e.requests.Create(context.Background(), testActor, CreateRequestInput{
		SampleItemID: sampleItemID,
		TeamID:       teamID,
		Quantity:     1,
	})
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}
	return req
}

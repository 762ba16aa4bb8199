package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sampleroom-api/internal/cache"
	"sampleroom-api/internal/handler"
	"sampleroom-api/internal/middleware"
	"sampleroom-api/internal/model"
	"sampleroom-api/internal/repository"
	"sampleroom-api/internal/router"
	"sampleroom-api/internal/service"
)

// newTestServer wires the full stack against an in-memory store, matching how
// main assembles it.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := repository.NewTestStore(t)
	auditRepo := repository.NewTestAudit(t)
	auditService := service.NewAuditService(auditRepo)

	memCache := cache.NewMemoryCache()
	t.Cleanup(memCache.Stop)

	productionService := service.NewProductionService(store, auditService)
	sampleService := service.NewSampleService(store, store, store, auditService)
	inventoryService := service.NewInventoryService(store, store, auditService)
	teamService := service.NewTeamService(store, auditService)
	requestService := service.NewRequestService(store, store, store, auditService, memCache, time.Minute)
	commentService := service.NewCommentService(store, store, store, store, auditService, 3)

	r := router.New(router.Config{
		Handler:           handler.New("test", store, auditRepo),
		ProductionHandler: handler.NewProductionHandler(productionService, inventoryService),
		SampleHandler:     handler.NewSampleHandler(sampleService, inventoryService),
		InventoryHandler:  handler.NewInventoryHandler(inventoryService),
		TeamHandler:       handler.NewTeamHandler(teamService),
		RequestHandler:    handler.NewRequestHandler(requestService),
		CommentHandler:    handler.NewCommentHandler(commentService),
		AuditHandler:      handler.NewAuditHandler(auditService),
		ActorMiddleware:   middleware.Actor("system"),
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func doJSON(t *testing.T, srv *httptest.Server, method, path string, body interface{}, wantStatus int) envelope {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding body: %v", err)
		}
	}

	req, err := http.NewRequest(method, srv.URL+path, &buf)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Actor-ID", "tester")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		t.Fatalf("%s %s status = %d, want %d", method, path, resp.StatusCode, wantStatus)
	}
	if wantStatus == http.StatusNoContent {
		return envelope{}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return env
}

func TestHealthAndReady(t *testing.T) {
	srv := newTestServer(t)

	env := doJSON(t, srv, http.MethodGet, "/api/v1/health", nil, http.StatusOK)
	if !env.Success {
		t.Fatal("health response not successful")
	}

	env = doJSON(t, srv, http.MethodGet, "/api/v1/ready", nil, http.StatusOK)
	if !env.Success {
		t.Fatal("ready response not successful")
	}
}

func TestRequestLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	env := doJSON(t, srv, http.MethodPost, "/api/v1/production-items",
		map[string]interface{}{"name": "Denim Jacket"}, http.StatusCreated)
	var prod model.ProductionItem
	if err := json.Unmarshal(env.Data, &prod); err != nil {
		t.Fatalf("decoding production item: %v", err)
	}

	env = doJSON(t, srv, http.MethodPost, "/api/v1/sample-items", map[string]interface{}{
		"production_item_id": prod.ID,
		"stage":              model.StagePrototype,
		"color":              "NAVY",
		"size":               "M",
		"revision":           "v1",
	}, http.StatusCreated)
	var item model.SampleItem
	if err := json.Unmarshal(env.Data, &item); err != nil {
		t.Fatalf("decoding sample item: %v", err)
	}

	env = doJSON(t, srv, http.MethodPost, "/api/v1/teams",
		map[string]interface{}{"name": "Fit Team"}, http.StatusCreated)
	var team model.Team
	if err := json.Unmarshal(env.Data, &team); err != nil {
		t.Fatalf("decoding team: %v", err)
	}

	env = doJSON(t, srv, http.MethodPost, "/api/v1/requests", map[string]interface{}{
		"sample_item_id": item.ID,
		"team_id":        team.ID,
		"quantity":       2,
	}, http.StatusCreated)
	var req model.SampleRequest
	if err := json.Unmarshal(env.Data, &req); err != nil {
		t.Fatalf("decoding request: %v", err)
	}
	if req.Status != model.RequestRequested {
		t.Fatalf("status = %s, want REQUESTED", req.Status)
	}

	env = doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/v1/requests/%s/status", req.ID),
		map[string]string{"status": model.RequestApproved}, http.StatusOK)
	if err := json.Unmarshal(env.Data, &req); err != nil {
		t.Fatalf("decoding request: %v", err)
	}
	if req.Status != model.RequestApproved || req.ApprovedAt == nil {
		t.Fatalf("approval not applied: %+v", req)
	}

	// Skipping straight to RETURNED is rejected.
	env = doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/v1/requests/%s/status", req.ID),
		map[string]string{"status": model.RequestReturned}, http.StatusConflict)
	if env.Error == nil || env.Error.Code != "CONFLICT" {
		t.Fatalf("expected CONFLICT error, got: %+v", env.Error)
	}

	env = doJSON(t, srv, http.MethodGet, "/api/v1/requests/stats", nil, http.StatusOK)
	var stats model.RequestStats
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		t.Fatalf("decoding stats: %v", err)
	}
	if stats.Total != 1 || stats.ByStatus[model.RequestApproved] != 1 {
		t.Fatalf("stats = %+v, want one APPROVED request", stats)
	}

	// The status change shows up in the audit trail, attributed to the header.
	env = doJSON(t, srv, http.MethodGet,
		fmt.Sprintf("/api/v1/audit/%s/%s", model.EntityRequest, req.ID), nil, http.StatusOK)
	var events []model.AuditEvent
	if err := json.Unmarshal(env.Data, &events); err != nil {
		t.Fatalf("decoding audit trail: %v", err)
	}
	if len(events) == 0 || events[0].UserID != "tester" {
		t.Fatalf("audit trail = %+v, want newest event by tester", events)
	}
}

func TestSampleItemConflictOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	env := doJSON(t, srv, http.MethodPost, "/api/v1/production-items",
		map[string]interface{}{"name": "Cargo Pants"}, http.StatusCreated)
	var prod model.ProductionItem
	if err := json.Unmarshal(env.Data, &prod); err != nil {
		t.Fatalf("decoding production item: %v", err)
	}

	body := map[string]interface{}{
		"production_item_id": prod.ID,
		"stage":              model.StagePrototype,
		"color":              "OLIVE",
		"size":               "W32",
		"revision":           "v1",
	}
	doJSON(t, srv, http.MethodPost, "/api/v1/sample-items", body, http.StatusCreated)

	env = doJSON(t, srv, http.MethodPost, "/api/v1/sample-items", body, http.StatusConflict)
	if env.Error == nil || env.Error.Code != "CONFLICT" {
		t.Fatalf("expected CONFLICT, got: %+v", env.Error)
	}
}

func TestBadJSONBody(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/v1/teams", "application/json",
		bytes.NewBufferString("{not json"))
	if err != nil {
		t.Fatalf("posting: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestCommentThreadOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	env := doJSON(t, srv, http.MethodPost, "/api/v1/production-items",
		map[string]interface{}{"name": "Silk Blouse"}, http.StatusCreated)
	var prod model.ProductionItem
	if err := json.Unmarshal(env.Data, &prod); err != nil {
		t.Fatalf("decoding production item: %v", err)
	}

	env = doJSON(t, srv, http.MethodPost, "/api/v1/comments", map[string]interface{}{
		"content":            "drape looks wrong",
		"production_item_id": prod.ID,
	}, http.StatusCreated)
	var root model.Comment
	if err := json.Unmarshal(env.Data, &root); err != nil {
		t.Fatalf("decoding comment: %v", err)
	}

	doJSON(t, srv, http.MethodPost, "/api/v1/comments", map[string]interface{}{
		"content":           "cutting a new panel",
		"parent_comment_id": root.ID,
	}, http.StatusCreated)

	path := fmt.Sprintf("/api/v1/comments?entityType=%s&entityId=%s", model.TargetProductionItem, prod.ID)
	env = doJSON(t, srv, http.MethodGet, path, nil, http.StatusOK)
	var nodes []model.CommentNode
	if err := json.Unmarshal(env.Data, &nodes); err != nil {
		t.Fatalf("decoding thread: %v", err)
	}
	if len(nodes) != 1 || len(nodes[0].Replies) != 1 {
		t.Fatalf("thread = %+v, want one root with one reply", nodes)
	}
	if nodes[0].Replies[0].EntityID != prod.ID {
		t.Fatal("reply did not inherit the production item attachment")
	}

	doJSON(t, srv, http.MethodDelete, "/api/v1/comments/"+root.ID, nil, http.StatusNoContent)

	env = doJSON(t, srv, http.MethodGet, path, nil, http.StatusOK)
	nodes = nil
	if err := json.Unmarshal(env.Data, &nodes); err != nil && len(env.Data) > 0 {
		t.Fatalf("decoding thread: %v", err)
	}
	if len(nodes) != 0 {
		t.Fatalf("thread still holds %d comments after delete", len(nodes))
	}
}

package repository

import (
	"context"
	"testing"
	"time"

	"sampleroom-api/internal/model"
	"sampleroom-api/pkg/uid"
)

func seedProductionItem(t *testing.T, store *Store) *model.ProductionItem {
	t.Helper()
	now := time.Now().UTC()
	item := &model.ProductionItem{
		ID:        uid.New(),
		Name:      "Wool Overshirt",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := store.CreateProductionItem(context.Background(), item); err != nil {
		t.Fatalf("seeding production item: %v", err)
	}
	return item
}

func seedSampleItem(t *testing.T, store *Store, productionItemID, stage, color, size, revision string) *model.SampleItem {
	t.Helper()
	now := time.Now().UTC()
	item := &model.SampleItem{
		ID:               uid.New(),
		ProductionItemID: productionItemID,
		Stage:            stage,
		Color:            color,
		Size:             size,
		Revision:         revision,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := store.CreateSampleItem(context.Background(), item); err != nil {
		t.Fatalf("seeding sample item: %v", err)
	}
	return item
}

func seedTeam(t *testing.T, store *Store) *model.Team {
	t.Helper()
	now := time.Now().UTC()
	team := &model.Team{
		ID:        uid.New(),
		Name:      "Womenswear Design",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := store.CreateTeam(context.Background(), team); err != nil {
		t.Fatalf("seeding team: %v", err)
	}
	return team
}

func seedRequest(t *testing.T, store *Store, sampleItemID, teamID string) *model.SampleRequest {
	t.Helper()
	now := time.Now().UTC()
	req := &model.SampleRequest{
		ID:           uid.New(),
		SampleItemID: sampleItemID,
		TeamID:       teamID,
		Quantity:     1,
		Status:       model.RequestRequested,
		RequestedAt:  now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := store.CreateRequest(context.Background(), req); err != nil {
		t.Fatalf("seeding request: %v", err)
	}
	return req
}

func seedUnit(t *testing.T, store *Store, sampleItemID, location, status string) *model.InventoryUnit {
	t.Helper()
	now := time.Now().UTC()
	unit := &model.InventoryUnit{
		ID:           uid.New(),
		SampleItemID: sampleItemID,
		Location:     location,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := store.CreateInventoryUnit(context.Background(), unit); err != nil {
		t.Fatalf("seeding inventory unit: %v", err)
	}
	return unit
}

func seedComment(t *testing.T, store *Store, entityType, entityID, parentID string) *model.Comment {
	t.Helper()
	now := time.Now().UTC()
	c := &model.Comment{
		ID:              uid.New(),
		Content:         "looks good",
		AuthorID:        "tester",
		EntityType:      entityType,
		EntityID:        entityID,
		ParentCommentID: parentID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := store.CreateComment(context.Background(), c); err != nil {
		t.Fatalf("seeding comment: %v", err)
	}
	return c
}

func TestVariantUniqueness(t *testing.T) {
	store := NewTestStore(t)
	ctx := context.Background()
	prod := seedProductionItem(t, store)

	seedSampleItem(t, store, prod.ID, model.StagePrototype, "BLACK", "M", "v1")

	now := time.Now().UTC()
	dup := &model.SampleItem{
		ID:               uid.New(),
		ProductionItemID: prod.ID,
		Stage:            model.StagePrototype,
		Color:            "BLACK",
		Size:             "M",
		Revision:         "v1",
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	err := store.CreateSampleItem(ctx, dup)
	if err == nil {
		t.Fatal("expected uniqueness violation for duplicate variation tuple")
	}
	if !IsUniqueViolation(err) {
		t.Fatalf("expected unique violation, got: %v", err)
	}

	// Different revision is a different variant.
	seedSampleItem(t, store, prod.ID, model.StagePrototype, "BLACK", "M", "v2")
}

func TestVariantUniquenessWithEmptyColorAndSize(t *testing.T) {
	store := NewTestStore(t)
	ctx := context.Background()
	prod := seedProductionItem(t, store)

	// "no color, no size" is a concrete variant value, so a second item with
	// the same empty fields must collide rather than slip past the index.
	seedSampleItem(t, store, prod.ID, model.StagePrototype, "", "", "v1")

	now := time.Now().UTC()
	dup := &model.SampleItem{
		ID:               uid.New(),
		ProductionItemID: prod.ID,
		Stage:            model.StagePrototype,
		Revision:         "v1",
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	err := store.CreateSampleItem(ctx, dup)
	if err == nil || !IsUniqueViolation(err) {
		t.Fatalf("expected unique violation for empty color/size duplicate, got: %v", err)
	}
}

func TestFindSampleItemByVariant(t *testing.T) {
	store := NewTestStore(t)
	ctx := context.Background()
	prod := seedProductionItem(t, store)
	item := seedSampleItem(t, store, prod.ID, model.StageDevelopment, "NAVY", "L", "v3")

	found, err := store.FindSampleItemByVariant(ctx, prod.ID, model.StageDevelopment, "NAVY", "L", "v3")
	if err != nil {
		t.Fatalf("finding variant: %v", err)
	}
	if found == nil || found.ID != item.ID {
		t.Fatalf("expected to find item %s, got %+v", item.ID, found)
	}

	missing, err := store.FindSampleItemByVariant(ctx, prod.ID, model.StageDevelopment, "NAVY", "L", "v99")
	if err != nil {
		t.Fatalf("finding missing variant: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing variant, got %+v", missing)
	}
}

func TestUpdateRequestCompareAndSet(t *testing.T) {
	store := NewTestStore(t)
	ctx := context.Background()
	prod := seedProductionItem(t, store)
	item := seedSampleItem(t, store, prod.ID, model.StagePrototype, "BLACK", "M", "v1")
	team := seedTeam(t, store)
	req := seedRequest(t, store, item.ID, team.ID)

	req.Status = model.RequestApproved
	now := time.Now().UTC()
	req.ApprovedAt = &now
	req.UpdatedAt = now

	ok, err := store.UpdateRequest(ctx, req, model.RequestRequested)
	if err != nil {
		t.Fatalf("updating request: %v", err)
	}
	if !ok {
		t.Fatal("expected CAS update to succeed")
	}

	// Second writer still holds the stale REQUESTED status; its write must miss.
	stale := *req
	stale.Status = model.RequestClosed
	ok, err = store.UpdateRequest(ctx, &stale, model.RequestRequested)
	if err != nil {
		t.Fatalf("stale update: %v", err)
	}
	if ok {
		t.Fatal("expected stale CAS update to miss")
	}

	got, err := store.GetRequest(ctx, req.ID)
	if err != nil {
		t.Fatalf("getting request: %v", err)
	}
	if got.Status != model.RequestApproved {
		t.Fatalf("status = %s, want APPROVED", got.Status)
	}
	if got.ApprovedAt == nil {
		t.Fatal("approved_at not persisted")
	}
}

func TestDeleteSampleItemCascades(t *testing.T) {
	store := NewTestStore(t)
	ctx := context.Background()
	prod := seedProductionItem(t, store)
	item := seedSampleItem(t, store, prod.ID, model.StagePrototype, "BLACK", "M", "v1")
	team := seedTeam(t, store)
	req := seedRequest(t, store, item.ID, team.ID)
	unit := seedUnit(t, store, item.ID, "SHOWROOM", model.UnitAvailable)
	itemComment := seedComment(t, store, model.TargetSampleItem, item.ID, "")
	reqComment := seedComment(t, store, model.TargetRequest, req.ID, "")

	ok, err := store.DeleteSampleItem(ctx, item.ID)
	if err != nil {
		t.Fatalf("deleting sample item: %v", err)
	}
	if !ok {
		t.Fatal("expected delete to report a removed row")
	}

	if got, _ := store.GetRequest(ctx, req.ID); got != nil {
		t.Error("request survived sample item delete")
	}
	if got, _ := store.GetInventoryUnit(ctx, unit.ID); got != nil {
		t.Error("inventory unit survived sample item delete")
	}
	if got, _ := store.GetComment(ctx, itemComment.ID); got != nil {
		t.Error("sample item comment survived delete")
	}
	if got, _ := store.GetComment(ctx, reqComment.ID); got != nil {
		t.Error("request comment survived sample item delete")
	}
	// The team is a requester, not a dependent; it stays.
	if got, _ := store.GetTeam(ctx, team.ID); got == nil {
		t.Error("team was removed by sample item delete")
	}
}

func TestDeleteProductionItemCascades(t *testing.T) {
	store := NewTestStore(t)
	ctx := context.Background()
	prod := seedProductionItem(t, store)
	item := seedSampleItem(t, store, prod.ID, model.StagePrototype, "BLACK", "M", "v1")
	team := seedTeam(t, store)
	req := seedRequest(t, store, item.ID, team.ID)
	unit := seedUnit(t, store, item.ID, "SHOWROOM", model.UnitAvailable)

	ok, err := store.DeleteProductionItem(ctx, prod.ID)
	if err != nil {
		t.Fatalf("deleting production item: %v", err)
	}
	if !ok {
		t.Fatal("expected delete to report a removed row")
	}

	if got, _ := store.GetSampleItem(ctx, item.ID); got != nil {
		t.Error("sample item survived production item delete")
	}
	if got, _ := store.GetRequest(ctx, req.ID); got != nil {
		t.Error("request survived production item delete")
	}
	if got, _ := store.GetInventoryUnit(ctx, unit.ID); got != nil {
		t.Error("inventory unit survived production item delete")
	}
}

func TestDeleteCommentSubtree(t *testing.T) {
	store := NewTestStore(t)
	ctx := context.Background()
	prod := seedProductionItem(t, store)

	root := seedComment(t, store, model.TargetProductionItem, prod.ID, "")
	reply := seedComment(t, store, model.TargetProductionItem, prod.ID, root.ID)
	deepReply := seedComment(t, store, model.TargetProductionItem, prod.ID, reply.ID)
	sibling := seedComment(t, store, model.TargetProductionItem, prod.ID, "")

	ok, err := store.DeleteComment(ctx, root.ID)
	if err != nil {
		t.Fatalf("deleting comment: %v", err)
	}
	if !ok {
		t.Fatal("expected delete to report a removed row")
	}

	for _, id := range []string{root.ID, reply.ID, deepReply.ID} {
		if got, _ := store.GetComment(ctx, id); got != nil {
			t.Errorf("comment %s survived subtree delete", id)
		}
	}
	if got, _ := store.GetComment(ctx, sibling.ID); got == nil {
		t.Error("sibling comment was removed by unrelated subtree delete")
	}
}

func TestCountRequestsByTeam(t *testing.T) {
	store := NewTestStore(t)
	ctx := context.Background()
	prod := seedProductionItem(t, store)
	item := seedSampleItem(t, store, prod.ID, model.StagePrototype, "BLACK", "M", "v1")
	team := seedTeam(t, store)
	other := seedTeam(t, store)

	seedRequest(t, store, item.ID, team.ID)
	seedRequest(t, store, item.ID, team.ID)

	count, err := store.CountRequestsByTeam(ctx, team.ID)
	if err != nil {
		t.Fatalf("counting requests: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}

	count, err = store.CountRequestsByTeam(ctx, other.ID)
	if err != nil {
		t.Fatalf("counting requests: %v", err)
	}
	if count != 0 {
		t.Fatalf("count = %d, want 0", count)
	}
}

func TestGetRequestStats(t *testing.T) {
	store := NewTestStore(t)
	ctx := context.Background()
	prod := seedProductionItem(t, store)
	item := seedSampleItem(t, store, prod.ID, model.StagePrototype, "BLACK", "M", "v1")
	team := seedTeam(t, store)

	seedRequest(t, store, item.ID, team.ID)
	second := seedRequest(t, store, item.ID, team.ID)

	second.Status = model.RequestApproved
	now := time.Now().UTC()
	second.ApprovedAt = &now
	if ok, err := store.UpdateRequest(ctx, second, model.RequestRequested); err != nil || !ok {
		t.Fatalf("approving request: ok=%v err=%v", ok, err)
	}

	stats, err := store.GetRequestStats(ctx)
	if err != nil {
		t.Fatalf("getting stats: %v", err)
	}
	if stats.Total != 2 {
		t.Errorf("total = %d, want 2", stats.Total)
	}
	if stats.ByStatus[model.RequestRequested] != 1 || stats.ByStatus[model.RequestApproved] != 1 {
		t.Errorf("by_status = %v, want one REQUESTED and one APPROVED", stats.ByStatus)
	}
}

func TestCreateRequestForeignKeys(t *testing.T) {
	store := NewTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	req := &model.SampleRequest{
		ID:           uid.New(),
		SampleItemID: "missing-sample",
		TeamID:       "missing-team",
		Quantity:     1,
		Status:       model.RequestRequested,
		RequestedAt:  now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err := store.CreateRequest(ctx, req)
	if err == nil || !IsForeignKeyViolation(err) {
		t.Fatalf("expected foreign key violation, got: %v", err)
	}
}

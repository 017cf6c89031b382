package inventory

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"printstock/internal/core/id"
	"printstock/internal/domain/catalogs/artprint"
	"printstock/internal/domain/catalogs/distributor"
	"printstock/internal/domain/edition"
)

// fakeRemote is an in-memory Remote with switchable failures.
type fakeRemote struct {
	editions     []edition.Edition
	prints       []artprint.Print
	distributors []distributor.Distributor

	listErr     error
	writeErr    error
	editionCall int
	batchCall   int
	distCall    int
	lastBatch   []id.ID
}

func (f *fakeRemote) ListEditions(ctx context.Context) ([]edition.Edition, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.editions, nil
}

func (f *fakeRemote) ListPrints(ctx context.Context) ([]artprint.Print, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.prints, nil
}

func (f *fakeRemote) ListDistributors(ctx context.Context) ([]distributor.Distributor, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.distributors, nil
}

func (f *fakeRemote) UpdateEdition(ctx context.Context, editionID id.ID, patch edition.Patch) error {
	f.editionCall++
	return f.writeErr
}

func (f *fakeRemote) UpdateEditions(ctx context.Context, editionIDs []id.ID, patch edition.Patch) error {
	f.batchCall++
	f.lastBatch = editionIDs
	return f.writeErr
}

func (f *fakeRemote) UpdateDistributor(ctx context.Context, distributorID id.ID, fields map[string]any) error {
	f.distCall++
	return f.writeErr
}

func newFixture(t *testing.T) (*Store, *fakeRemote, *artprint.Print, *distributor.Distributor, *edition.Edition) {
	t.Helper()

	p := artprint.NewPrint("Seaview Two", 50)
	d := distributor.NewDistributor("Quay Gallery")
	pct := decimal.NewFromInt(40)
	d.CommissionPercentage = &pct

	e := edition.NewEdition(p.ID, 14, "Seaview Two - 14", edition.SizeLarge)
	e.DistributorID = &d.ID

	remote := &fakeRemote{
		editions:     []edition.Edition{*e},
		prints:       []artprint.Print{*p},
		distributors: []distributor.Distributor{*d},
	}

	store := NewStore(remote)
	if err := store.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return store, remote, p, d, e
}

func TestInitialize_BuildsProjection(t *testing.T) {
	store, _, p, d, e := newFixture(t)

	if store.Status() != StatusReady {
		t.Fatalf("expected ready, got %s", store.Status())
	}

	got, ok := store.Edition(e.ID)
	if !ok {
		t.Fatal("edition not found")
	}
	if got.Print.Name != p.Name {
		t.Errorf("expected joined print %q, got %q", p.Name, got.Print.Name)
	}
	if got.Distributor == nil || got.Distributor.Name != d.Name {
		t.Errorf("expected joined distributor %q", d.Name)
	}
}

func TestInitialize_FailureIsRetryable(t *testing.T) {
	remote := &fakeRemote{listErr: errors.New("connection refused")}
	store := NewStore(remote)

	if err := store.Initialize(context.Background()); err == nil {
		t.Fatal("expected load error")
	}
	if store.Status() != StatusError {
		t.Fatalf("expected error status, got %s", store.Status())
	}
	if store.Err() == "" {
		t.Fatal("expected recorded error message")
	}

	remote.listErr = nil
	if err := store.Initialize(context.Background()); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if store.Status() != StatusReady {
		t.Fatalf("expected ready after retry, got %s", store.Status())
	}
	if store.Err() != "" {
		t.Errorf("expected error cleared, got %q", store.Err())
	}
}

func TestUpdateEdition_AppliesLastMerge(t *testing.T) {
	store, _, _, _, e := newFixture(t)
	ctx := context.Background()

	sold := true
	price := decimal.NewFromInt(1000)
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	if !store.UpdateEdition(ctx, e.ID, edition.Patch{IsPrinted: &sold}) {
		t.Fatal("first update failed")
	}
	if !store.UpdateEdition(ctx, e.ID, edition.Patch{
		IsSold:      &sold,
		RetailPrice: &decimal.NullDecimal{Decimal: price, Valid: true},
		DateSold:    &sql.NullTime{Time: date, Valid: true},
	}) {
		t.Fatal("second update failed")
	}

	got, _ := store.Edition(e.ID)
	if !got.IsPrinted || !got.IsSold {
		t.Error("expected both flags applied")
	}
	if got.RetailPrice == nil || !got.RetailPrice.Equal(price) {
		t.Error("expected price applied")
	}
}

func TestUpdateEdition_ReresolvesRelations(t *testing.T) {
	store, remote, _, _, e := newFixture(t)
	ctx := context.Background()

	other := distributor.NewDistributor("Harbour Gallery")
	remote.distributors = append(remote.distributors, *other)
	if err := store.Initialize(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}

	patch := edition.Patch{
		DistributorID: &uuid.NullUUID{UUID: other.ID, Valid: true},
	}
	if !store.UpdateEdition(ctx, e.ID, patch) {
		t.Fatal("update failed")
	}

	got, _ := store.Edition(e.ID)
	if got.Distributor == nil || got.Distributor.ID != other.ID {
		t.Fatal("expected projection to follow the new foreign key")
	}

	// Clearing the FK drops the joined record.
	if !store.UpdateEdition(ctx, e.ID, edition.Patch{DistributorID: &uuid.NullUUID{Valid: false}}) {
		t.Fatal("clear failed")
	}
	got, _ = store.Edition(e.ID)
	if got.Distributor != nil {
		t.Fatal("expected no joined distributor after clearing the foreign key")
	}
}

func TestUpdateEdition_RollbackOnRemoteFailure(t *testing.T) {
	store, remote, _, _, e := newFixture(t)
	ctx := context.Background()

	before, _ := store.Edition(e.ID)

	remote.writeErr = errors.New("write rejected")
	sold := true
	date := sql.NullTime{Time: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), Valid: true}
	notes := sql.NullString{String: "changed", Valid: true}
	if store.UpdateEdition(ctx, e.ID, edition.Patch{IsSold: &sold, DateSold: &date, Notes: &notes}) {
		t.Fatal("expected failure")
	}

	after, _ := store.Edition(e.ID)
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("expected full rollback\nbefore: %+v\nafter:  %+v", before, after)
	}
}

func TestUpdateEdition_UnknownIDIsNoop(t *testing.T) {
	store, remote, _, _, _ := newFixture(t)

	sold := true
	if store.UpdateEdition(context.Background(), id.New(), edition.Patch{IsSold: &sold}) {
		t.Fatal("expected false for unknown id")
	}
	if remote.editionCall != 0 {
		t.Fatal("expected no remote call for unknown id")
	}
}

func TestUpdateEdition_RejectsInvalidLifecycle(t *testing.T) {
	store, remote, _, _, e := newFixture(t)
	ctx := context.Background()

	before, _ := store.Edition(e.ID)
	rev := store.Revision()

	// Settling an unsold edition must never reach the remote.
	settled := true
	if store.UpdateEdition(ctx, e.ID, edition.Patch{IsSettled: &settled}) {
		t.Fatal("expected rejection for settled-before-sold")
	}
	if remote.editionCall != 0 {
		t.Fatalf("expected no remote write, got %d", remote.editionCall)
	}

	// Marking sold without a sale date is equally invalid.
	sold := true
	if store.UpdateEdition(ctx, e.ID, edition.Patch{IsSold: &sold}) {
		t.Fatal("expected rejection for sold without date")
	}

	after, _ := store.Edition(e.ID)
	if !reflect.DeepEqual(before, after) {
		t.Fatal("expected record untouched after rejected updates")
	}
	if store.Revision() != rev {
		t.Fatal("expected revision unchanged after rejected updates")
	}

	// Completing the lifecycle in order succeeds.
	date := sql.NullTime{Time: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), Valid: true}
	if !store.UpdateEdition(ctx, e.ID, edition.Patch{IsSold: &sold, DateSold: &date}) {
		t.Fatal("expected sale with date to apply")
	}
	if !store.UpdateEdition(ctx, e.ID, edition.Patch{IsSettled: &settled}) {
		t.Fatal("expected settlement after sale to apply")
	}
}

func TestUpdateEditions_BatchRollback(t *testing.T) {
	p := artprint.NewPrint("Puffin", 20)
	e1 := edition.NewEdition(p.ID, 1, "Puffin - 1", edition.SizeSmall)
	e2 := edition.NewEdition(p.ID, 2, "Puffin - 2", edition.SizeSmall)
	e3 := edition.NewEdition(p.ID, 3, "Puffin - 3", edition.SizeSmall)

	remote := &fakeRemote{
		editions: []edition.Edition{*e1, *e2, *e3},
		prints:   []artprint.Print{*p},
	}
	store := NewStore(remote)
	ctx := context.Background()
	if err := store.Initialize(ctx); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	before := store.Editions()

	remote.writeErr = errors.New("write rejected")
	printed := true
	ids := []id.ID{e1.ID, e2.ID, e3.ID}
	if store.UpdateEditions(ctx, ids, edition.Patch{IsPrinted: &printed}) {
		t.Fatal("expected batch failure")
	}

	after := store.Editions()
	if !reflect.DeepEqual(before, after) {
		t.Fatal("expected every record restored after batch rollback")
	}

	// Success path applies to all targets with a single remote call.
	remote.writeErr = nil
	if !store.UpdateEditions(ctx, ids, edition.Patch{IsPrinted: &printed}) {
		t.Fatal("expected batch success")
	}
	if remote.batchCall != 2 {
		t.Fatalf("expected 2 batch calls, got %d", remote.batchCall)
	}
	if len(remote.lastBatch) != 3 {
		t.Fatalf("expected 3 targets in remote call, got %d", len(remote.lastBatch))
	}
	for _, ewr := range store.Editions() {
		if !ewr.IsPrinted {
			t.Fatal("expected flag applied to every target")
		}
	}
}

func TestUpdateEditions_RejectsInvalidLifecycle(t *testing.T) {
	p := artprint.NewPrint("Puffin", 20)
	e1 := edition.NewEdition(p.ID, 1, "Puffin - 1", edition.SizeSmall)
	e2 := edition.NewEdition(p.ID, 2, "Puffin - 2", edition.SizeSmall)

	remote := &fakeRemote{
		editions: []edition.Edition{*e1, *e2},
		prints:   []artprint.Print{*p},
	}
	store := NewStore(remote)
	ctx := context.Background()
	if err := store.Initialize(ctx); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	before := store.Editions()

	settled := true
	if store.UpdateEditions(ctx, []id.ID{e1.ID, e2.ID}, edition.Patch{IsSettled: &settled}) {
		t.Fatal("expected rejection for settled-before-sold")
	}
	if remote.batchCall != 0 {
		t.Fatalf("expected no remote write, got %d", remote.batchCall)
	}
	if !reflect.DeepEqual(before, store.Editions()) {
		t.Fatal("expected no record applied from rejected batch")
	}
}

func TestUpdateEditions_SkipsUnknownIDs(t *testing.T) {
	store, remote, _, _, e := newFixture(t)

	printed := true
	ok := store.UpdateEditions(context.Background(), []id.ID{e.ID, id.New()}, edition.Patch{IsPrinted: &printed})
	if !ok {
		t.Fatal("expected success for partially-known batch")
	}
	if len(remote.lastBatch) != 1 {
		t.Fatalf("expected only known id sent to remote, got %d", len(remote.lastBatch))
	}

	if store.UpdateEditions(context.Background(), []id.ID{id.New()}, edition.Patch{IsPrinted: &printed}) {
		t.Fatal("expected false when no ids resolve")
	}
	if remote.batchCall != 1 {
		t.Fatal("expected no remote call when no ids resolve")
	}
}

func TestToggleDistributorFavorite_DoubleFailureIsIdempotent(t *testing.T) {
	store, remote, _, d, _ := newFixture(t)
	ctx := context.Background()

	original := store.Distributors()[0].IsFavorite

	remote.writeErr = errors.New("write rejected")
	if store.ToggleDistributorFavorite(ctx, d.ID) {
		t.Fatal("expected first toggle to fail")
	}
	if store.ToggleDistributorFavorite(ctx, d.ID) {
		t.Fatal("expected second toggle to fail")
	}

	if got := store.Distributors()[0].IsFavorite; got != original {
		t.Fatalf("expected favorite unchanged (%v), got %v", original, got)
	}

	remote.writeErr = nil
	if !store.ToggleDistributorFavorite(ctx, d.ID) {
		t.Fatal("expected toggle to succeed")
	}
	if got := store.Distributors()[0].IsFavorite; got == original {
		t.Fatal("expected favorite flipped")
	}
}

func TestSearchEditions_IndexFollowsMutation(t *testing.T) {
	store, _, _, _, e := newFixture(t)
	ctx := context.Background()

	if got := store.SearchEditions("seaview"); len(got) != 1 {
		t.Fatalf("expected 1 match by print name, got %d", len(got))
	}

	renamed := "Quay Rocks - 14"
	if !store.UpdateEdition(ctx, e.ID, edition.Patch{DisplayName: &renamed}) {
		t.Fatal("rename failed")
	}

	if got := store.SearchEditions("quay rocks"); len(got) != 1 {
		t.Fatalf("expected renamed edition to be searchable, got %d matches", len(got))
	}
	// Print name still matches: the key includes the joined artwork name.
	if got := store.SearchEditions("seaview"); len(got) != 1 {
		t.Fatalf("expected print-name match to survive rename, got %d", len(got))
	}
}

func TestRevision_BumpsOnMutation(t *testing.T) {
	store, _, _, _, e := newFixture(t)

	r1 := store.Revision()
	printed := true
	store.UpdateEdition(context.Background(), e.ID, edition.Patch{IsPrinted: &printed})
	if store.Revision() == r1 {
		t.Fatal("expected revision bump after mutation")
	}
}

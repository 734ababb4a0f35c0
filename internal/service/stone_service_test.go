package service

import (
	"context"
	"errors"
	"testing"

	"github.com/gemledger/internal/constants"
	"github.com/gemledger/internal/repository"
	"github.com/gemledger/internal/storage"

	"github.com/shopspring/decimal"
)

type fakePresigner struct {
	sku string
	err error
}

func (f *fakePresigner) PresignPhoto(_ context.Context, sku, contentType string) (*storage.PresignedUpload, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sku = sku
	return &storage.PresignedUpload{Method: "PUT", ContentType: contentType, PublicURL: "https://cdn.example.com/" + sku}, nil
}

func TestNormalizeStoneInputDefaults(t *testing.T) {
	stone, err := normalizeStoneInput(StoneInput{SKU: " lgd-9 ", TotalAmount: decimal.RequireFromString("10.456")})
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if stone.SKU != "LGD-9" || stone.Lab != "GLI" || stone.Shape != "ROUND" || stone.Color != "F" ||
		stone.Clarity != "VS2" || stone.Cut != "EX" || stone.Status != constants.StoneStatusInStock {
		t.Fatalf("form defaults not applied: %+v", stone)
	}
	if stone.TotalAmount.String() != "10.46" {
		t.Fatalf("amount should round to cents: %s", stone.TotalAmount.String())
	}

	cases := []struct {
		input StoneInput
		want  error
	}{
		{StoneInput{}, ErrStoneSKURequired},
		{StoneInput{SKU: "A", Shape: "triangle"}, ErrStoneFieldInvalid},
		{StoneInput{SKU: "A", Color: "Z"}, ErrStoneFieldInvalid},
		{StoneInput{SKU: "A", Carat: -1}, ErrStoneFieldInvalid},
		{StoneInput{SKU: "A", Status: "archived"}, ErrStoneStatusInvalid},
	}
	for _, tc := range cases {
		if _, err := normalizeStoneInput(tc.input); !errors.Is(err, tc.want) {
			t.Fatalf("input %+v: want %v got %v", tc.input, tc.want, err)
		}
	}
	if stone, err := normalizeStoneInput(StoneInput{SKU: "A", Status: "sold", Shape: "oval"}); err != nil || stone.Status != constants.StoneStatusSold || stone.Shape != "OVAL" {
		t.Fatalf("case-insensitive enums should normalize: %+v %v", stone, err)
	}
}

func TestStoneServiceLifecycle(t *testing.T) {
	db := setupServiceTestDB(t)
	repo := repository.NewStoneRepository(db)
	presigner := &fakePresigner{}
	svc := NewStoneService(repo, presigner)
	ctx := context.Background()

	created, err := svc.Upsert(ctx, StoneInput{SKU: "m1", Carat: 1.1})
	if err != nil || created.ID == 0 {
		t.Fatalf("upsert failed: %+v %v", created, err)
	}
	again, err := svc.Upsert(ctx, StoneInput{SKU: "M1", Carat: 2.2})
	if err != nil || again.ID != created.ID || again.Carat != 2.2 {
		t.Fatalf("upsert by sku should overwrite: %+v %v", again, err)
	}

	other, _ := svc.Upsert(ctx, StoneInput{SKU: "M2"})
	if _, err := svc.Update(ctx, other.ID, StoneInput{SKU: "M1"}); !errors.Is(err, ErrStoneFieldInvalid) {
		t.Fatalf("renaming onto an existing sku should fail, got %v", err)
	}
	edited, err := svc.Update(ctx, other.ID, StoneInput{SKU: "M3", Shape: "HEART"})
	if err != nil || edited.SKU != "M3" || edited.Shape != "HEART" {
		t.Fatalf("edit failed: %+v %v", edited, err)
	}

	if err := svc.UpdateStatus(ctx, created.ID, "hidden"); err != nil {
		t.Fatalf("status failed: %v", err)
	}
	list, total, err := svc.List(ctx, StoneAdminFilter{Status: "Hidden"})
	if err != nil || total != 1 || list[0].SKU != "M1" {
		t.Fatalf("status filter failed: %v %v", total, err)
	}
	if err := svc.UpdatePriority(ctx, created.ID, 5); err != nil {
		t.Fatalf("priority failed: %v", err)
	}

	upload, err := svc.PresignPhoto(ctx, created.ID, "image/png")
	if err != nil || presigner.sku != "M1" || upload.Method != "PUT" {
		t.Fatalf("presign failed: %+v %v", upload, err)
	}
	presigner.err = storage.ErrContentType
	if _, err := svc.PresignPhoto(ctx, created.ID, "text/plain"); !errors.Is(err, ErrStoneFieldInvalid) {
		t.Fatalf("bad content type should be a field error, got %v", err)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); !errors.Is(err, ErrStoneNotFound) {
		t.Fatalf("deleted stone should be not found, got %v", err)
	}
	if err := svc.UpdateStatus(ctx, created.ID, "Sold"); !errors.Is(err, ErrStoneNotFound) {
		t.Fatalf("missing stone status should be not found, got %v", err)
	}
}

func TestStonePresignWithoutStorage(t *testing.T) {
	svc := NewStoneService(repository.NewStoneRepository(setupServiceTestDB(t)), nil)
	if _, err := svc.PresignPhoto(context.Background(), 1, "image/png"); !errors.Is(err, ErrStorageDisabled) {
		t.Fatalf("expected storage disabled, got %v", err)
	}
}

func TestCatalogHidesHiddenStones(t *testing.T) {
	db := setupServiceTestDB(t)
	repo := repository.NewStoneRepository(db)
	stones := NewStoneService(repo, nil)
	ctx := context.Background()
	for _, in := range []StoneInput{
		{SKU: "C1", Shape: "ROUND", TotalAmount: decimal.NewFromInt(300), Carat: 1},
		{SKU: "C2", Shape: "OVAL", TotalAmount: decimal.NewFromInt(100), Carat: 2, Status: "Sold"},
		{SKU: "C3", Shape: "ROUND", TotalAmount: decimal.NewFromInt(200), Carat: 3, Status: "Hidden"},
	} {
		if _, err := stones.Upsert(ctx, in); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	catalog := NewCatalogService(repo)
	list, total, err := catalog.List(ctx, CatalogQuery{Page: 1, PageSize: 20})
	if err != nil || total != 2 {
		t.Fatalf("hidden stones must not be listed: %d %v", total, err)
	}
	if list[0].SKU != "C2" {
		t.Fatalf("default sort should be price-low, got %s first", list[0].SKU)
	}
	list, _, _ = catalog.List(ctx, CatalogQuery{Shape: "round, oval", Sort: "carat-high"})
	if len(list) != 2 || list[0].SKU != "C2" {
		t.Fatalf("multi-value filter with carat sort failed: %+v", list)
	}

	if _, err := catalog.Detail(ctx, "c3"); !errors.Is(err, ErrStoneNotFound) {
		t.Fatalf("hidden detail should be not found, got %v", err)
	}
	if st, err := catalog.Detail(ctx, "c2"); err != nil || st.SKU != "C2" {
		t.Fatalf("sold stone should be visible: %v", err)
	}

	summary, err := catalog.ShapeSummary(ctx)
	if err != nil || len(summary) != 1 || summary[0].Shape != "ROUND" || summary[0].Count != 1 {
		t.Fatalf("summary counts in-stock only: %+v %v", summary, err)
	}
	if filters := catalog.Filters(); len(filters.Shapes) != 10 || len(filters.Sorts) != 5 {
		t.Fatalf("unexpected filters: %+v", filters)
	}
}

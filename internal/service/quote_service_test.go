package service

import (
	"context"
	"errors"
	"testing"

	"github.com/gemledger/internal/config"
	"github.com/gemledger/internal/constants"
	"github.com/gemledger/internal/models"
	"github.com/gemledger/internal/queue"
	"github.com/gemledger/internal/repository"
)

func newQuoteFixture(t *testing.T) (*QuoteService, *repository.GormStoneRepository, *repository.GormQuoteRequestRepository) {
	t.Helper()
	db := setupServiceTestDB(t)
	stones := repository.NewStoneRepository(db)
	quotes := repository.NewQuoteRequestRepository(db)
	if err := stones.InsertBatch([]models.Stone{
		{SKU: "Q1", Shape: "ROUND", Carat: 1, TotalAmount: models.NewMoneyFromFloat(1000.5), Status: constants.StoneStatusInStock},
		{SKU: "Q2", Shape: "OVAL", Carat: 2, TotalAmount: models.NewMoneyFromFloat(2500), Status: constants.StoneStatusSold},
		{SKU: "QH", Shape: "PEAR", Carat: 3, TotalAmount: models.NewMoneyFromFloat(9000), Status: constants.StoneStatusHidden},
	}); err != nil {
		t.Fatalf("seed stones failed: %v", err)
	}
	svc := NewQuoteService(config.QuoteConfig{MaxItems: 3}, quotes, stones, nil, NewEmailService(&config.EmailConfig{}))
	return svc, stones, quotes
}

func TestQuoteSubmitSnapshotsStones(t *testing.T) {
	svc, _, quotes := newQuoteFixture(t)
	req, err := svc.Submit(context.Background(), QuoteSubmitInput{
		Name:  " Lin ",
		Email: "Lin@Example.com",
		SKUs:  []string{"q1", " Q2", "q1"},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if req.Email != "lin@example.com" || len(req.Items) != 2 {
		t.Fatalf("unexpected request: %+v", req)
	}
	if req.TotalAmount.String() != "3500.50" {
		t.Fatalf("unexpected total: %s", req.TotalAmount.String())
	}
	saved, err := quotes.GetByID(req.ID)
	if err != nil || saved == nil || len(saved.Items) != 2 || saved.Status != constants.QuoteStatusNew {
		t.Fatalf("request should be saved with items: %+v %v", saved, err)
	}
}

func TestQuoteSubmitValidation(t *testing.T) {
	svc, _, _ := newQuoteFixture(t)
	ctx := context.Background()
	cases := []struct {
		name  string
		input QuoteSubmitInput
		want  error
	}{
		{"missing_name", QuoteSubmitInput{Email: "a@b.com", SKUs: []string{"Q1"}}, ErrQuoteInvalid},
		{"bad_email", QuoteSubmitInput{Name: "a", Email: "nope", SKUs: []string{"Q1"}}, ErrInvalidEmail},
		{"no_items", QuoteSubmitInput{Name: "a", Email: "a@b.com", SKUs: []string{" "}}, ErrQuoteItemsEmpty},
		{"too_many", QuoteSubmitInput{Name: "a", Email: "a@b.com", SKUs: []string{"A", "B", "C", "D"}}, ErrQuoteItemsTooMany},
		{"hidden_stone", QuoteSubmitInput{Name: "a", Email: "a@b.com", SKUs: []string{"Q1", "QH", "ZZ"}}, ErrQuoteStoneUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Submit(ctx, tc.input)
			if !errors.Is(err, tc.want) {
				t.Fatalf("want %v got %v", tc.want, err)
			}
		})
	}

	_, err := svc.Submit(ctx, QuoteSubmitInput{Name: "a", Email: "a@b.com", SKUs: []string{"Q1", "QH", "ZZ"}})
	var localized LocalizedError
	if !errors.As(err, &localized) || localized.Args()[0] != "QH, ZZ" {
		t.Fatalf("unavailable error should list skus: %v", err)
	}
}

func TestQuoteStatusOnlyMovesForward(t *testing.T) {
	svc, _, _ := newQuoteFixture(t)
	req, err := svc.Submit(context.Background(), QuoteSubmitInput{Name: "a", Email: "a@b.com", SKUs: []string{"Q1"}})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := svc.UpdateStatus(req.ID, "Contacted"); err != nil {
		t.Fatalf("new -> contacted failed: %v", err)
	}
	if _, err := svc.UpdateStatus(req.ID, constants.QuoteStatusNew); !errors.Is(err, ErrQuoteStatusInvalid) {
		t.Fatalf("moving back should fail, got %v", err)
	}
	if _, err := svc.UpdateStatus(req.ID, "archived"); !errors.Is(err, ErrQuoteStatusInvalid) {
		t.Fatalf("unknown status should fail, got %v", err)
	}
	updated, err := svc.UpdateStatus(req.ID, constants.QuoteStatusClosed)
	if err != nil || updated.Status != constants.QuoteStatusClosed {
		t.Fatalf("contacted -> closed failed: %+v %v", updated, err)
	}
	if _, err := svc.UpdateStatus(9999, constants.QuoteStatusClosed); !errors.Is(err, ErrQuoteNotFound) {
		t.Fatalf("missing request should be not found, got %v", err)
	}
}

func TestQuoteHandleNotifySkipsWhenEmailDisabled(t *testing.T) {
	svc, _, quotes := newQuoteFixture(t)
	req, err := svc.Submit(context.Background(), QuoteSubmitInput{Name: "a", Email: "a@b.com", SKUs: []string{"Q1"}})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if err := svc.HandleNotify(context.Background(), queue.QuoteRequestNotifyPayload{QuoteRequestID: req.ID}); err != nil {
		t.Fatalf("disabled email should not fail the task: %v", err)
	}
	saved, _ := quotes.GetByID(req.ID)
	if saved.NotifiedAt != nil {
		t.Fatalf("request should not be marked notified without sending")
	}
	if err := svc.HandleNotify(context.Background(), queue.QuoteRequestNotifyPayload{QuoteRequestID: 9999}); err != nil {
		t.Fatalf("missing request should be ignored: %v", err)
	}
}

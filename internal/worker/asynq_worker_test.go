package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/gemledger/internal/config"
	"github.com/gemledger/internal/models"
	"github.com/gemledger/internal/provider"
	"github.com/gemledger/internal/queue"
	"github.com/gemledger/internal/repository"
	"github.com/gemledger/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

func newTestConsumer(t *testing.T) (*Consumer, *repository.GormQuoteRequestRepository) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	quotes := repository.NewQuoteRequestRepository(db)
	stones := repository.NewStoneRepository(db)
	batches := repository.NewImportBatchRepository(db)
	c := &provider.Container{
		QuoteService:  service.NewQuoteService(config.QuoteConfig{}, quotes, stones, nil, service.NewEmailService(&config.EmailConfig{})),
		ImportService: service.NewImportService(config.ImportConfig{}, stones, batches, nil),
	}
	return NewConsumer(c), quotes
}

func TestHandleQuoteRequestNotifyIgnoresBadPayloads(t *testing.T) {
	consumer, _ := newTestConsumer(t)
	ctx := context.Background()

	if err := consumer.handleQuoteRequestNotify(ctx, asynq.NewTask(queue.TaskQuoteRequestNotify, []byte("{"))); err == nil {
		t.Fatalf("malformed payload should fail")
	}
	body, _ := json.Marshal(queue.QuoteRequestNotifyPayload{})
	if err := consumer.handleQuoteRequestNotify(ctx, asynq.NewTask(queue.TaskQuoteRequestNotify, body)); err != nil {
		t.Fatalf("zero id should be skipped: %v", err)
	}
	body, _ = json.Marshal(queue.QuoteRequestNotifyPayload{QuoteRequestID: 404})
	if err := consumer.handleQuoteRequestNotify(ctx, asynq.NewTask(queue.TaskQuoteRequestNotify, body)); err != nil {
		t.Fatalf("missing request should be skipped: %v", err)
	}
}

func TestHandleQuoteRequestNotifySkipsWhenEmailDisabled(t *testing.T) {
	consumer, quotes := newTestConsumer(t)
	req := &models.QuoteRequest{RequestNo: "Q1", Name: "a", Email: "a@b.com", Status: "new"}
	if err := quotes.Create(req); err != nil {
		t.Fatalf("create quote failed: %v", err)
	}
	body, _ := json.Marshal(queue.QuoteRequestNotifyPayload{QuoteRequestID: req.ID})
	if err := consumer.handleQuoteRequestNotify(context.Background(), asynq.NewTask(queue.TaskQuoteRequestNotify, body)); err != nil {
		t.Fatalf("disabled email should not fail: %v", err)
	}
	saved, _ := quotes.GetByID(req.ID)
	if saved.NotifiedAt != nil {
		t.Fatalf("request should stay unnotified")
	}
}

func TestHandleImportProposalExpireUnknownProposal(t *testing.T) {
	consumer, _ := newTestConsumer(t)
	body, _ := json.Marshal(queue.ImportProposalExpirePayload{ProposalID: "missing", AdminID: 1})
	if err := consumer.handleImportProposalExpire(context.Background(), asynq.NewTask(queue.TaskImportProposalExpire, body)); err != nil {
		t.Fatalf("unknown proposal should be ignored: %v", err)
	}
	body, _ = json.Marshal(queue.ImportProposalExpirePayload{})
	if err := consumer.handleImportProposalExpire(context.Background(), asynq.NewTask(queue.TaskImportProposalExpire, body)); err != nil {
		t.Fatalf("empty id should be skipped: %v", err)
	}
}

func TestObservedPassesThroughError(t *testing.T) {
	boom := errors.New("boom")
	handler := observed("test:task", func(context.Context, *asynq.Task) error { return boom })
	if err := handler(context.Background(), asynq.NewTask("test:task", nil)); !errors.Is(err, boom) {
		t.Fatalf("want boom got %v", err)
	}
}

func TestDashboardWarmerStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	w := &dashboardWarmer{
		interval: time.Hour,
		refresh: func(context.Context) error {
			calls++
			cancel()
			return errors.New("db down")
		},
	}
	done := make(chan struct{})
	go func() {
		w.run(ctx)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("warmer should exit after cancel")
	}
	if calls != 1 {
		t.Fatalf("warmer should refresh once on start, got %d", calls)
	}
}

func TestNewServiceRequiresQueue(t *testing.T) {
	if _, err := NewService(&config.QueueConfig{}, &Consumer{}); err == nil {
		t.Fatalf("disabled queue should fail")
	}
	if _, err := NewService(&config.QueueConfig{Enabled: true}, nil); err == nil {
		t.Fatalf("nil consumer should fail")
	}
}

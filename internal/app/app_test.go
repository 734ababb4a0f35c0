package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gemledger/internal/config"
)

type stubService struct {
	name     string
	startErr error
	block    bool
	stopped  atomic.Bool
}

func (s *stubService) Name() string { return s.name }

func (s *stubService) Start(ctx context.Context) error {
	if s.block {
		<-ctx.Done()
		return nil
	}
	return s.startErr
}

func (s *stubService) Stop(context.Context) error {
	s.stopped.Store(true)
	return nil
}

func TestRunnerStopsAllServicesOnFailure(t *testing.T) {
	boom := errors.New("boom")
	failing := &stubService{name: "failing", startErr: boom}
	waiting := &stubService{name: "waiting", block: true}

	err := NewRunner(failing, waiting).Run(context.Background(), time.Second, nil)
	if !errors.Is(err, boom) {
		t.Fatalf("want boom got %v", err)
	}
	if !failing.stopped.Load() || !waiting.stopped.Load() {
		t.Fatalf("every service should be stopped")
	}
}

func TestRunnerCancelledContextIsClean(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc := &stubService{name: "waiting", block: true}
	if err := NewRunner(svc).Run(ctx, time.Second, nil); err != nil {
		t.Fatalf("cancelled run should return nil, got %v", err)
	}
}

func TestBuildRunnerRejectsUnknownMode(t *testing.T) {
	if _, err := BuildRunner(&config.Config{}, "batch"); err == nil {
		t.Fatalf("unknown mode should fail")
	}
	if _, err := BuildRunner(nil, ModeAll); err == nil {
		t.Fatalf("nil config should fail")
	}
}

func TestNormalizeOptionsDefaults(t *testing.T) {
	opts := normalizeOptions(Options{})
	if opts.Mode != ModeAll || opts.ShutdownTimeout != 10*time.Second || opts.Logger == nil {
		t.Fatalf("unexpected defaults: %+v", opts)
	}
}

func TestParseMode(t *testing.T) {
	cases := map[string]string{"": ModeAll, " API ": ModeAPI, "worker": ModeWorker}
	for raw, want := range cases {
		got, err := ParseMode(raw)
		if err != nil || got != want {
			t.Fatalf("ParseMode(%q) = %q, %v", raw, got, err)
		}
	}
	if _, err := ParseMode("cron"); err == nil {
		t.Fatalf("unknown mode should fail")
	}
}

func TestRunnerStopsInReverseOrder(t *testing.T) {
	var order []string
	var mu sync.Mutex
	record := func(name string) func() {
		return func() {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
		}
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	runner := NewRunner(
		&orderedService{name: "http", onStop: record("http")},
		nil,
		&orderedService{name: "worker", onStop: record("worker")},
	)
	if names := runner.Names(); len(names) != 2 {
		t.Fatalf("nil services should be dropped: %v", names)
	}
	if err := runner.Run(ctx, time.Second, nil); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(order) != 2 || order[0] != "worker" || order[1] != "http" {
		t.Fatalf("unexpected stop order: %v", order)
	}
}

type orderedService struct {
	name   string
	onStop func()
}

func (s *orderedService) Name() string { return s.name }

func (s *orderedService) Start(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func (s *orderedService) Stop(context.Context) error {
	s.onStop()
	return nil
}

package worker

import (
	"context"
	"errors"
	"time"

	"github.com/gemledger/internal/config"
	"github.com/gemledger/internal/logger"
	"github.com/gemledger/internal/queue"

	"github.com/hibiken/asynq"
)

const (
	serviceName           = "worker"
	dashboardWarmInterval = time.Minute
)

// Service asynq 消费服务，附带后台概览缓存预热
type Service struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
	warmer   *dashboardWarmer
}

// NewService 队列未启用时返回错误
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)

	svc := &Service{
		server:   asynq.NewServer(opt, serverCfg),
		mux:      mux,
		consumer: consumer,
	}
	if consumer.DashboardService != nil {
		svc.warmer = &dashboardWarmer{
			interval: dashboardWarmInterval,
			refresh: func(ctx context.Context) error {
				_, err := consumer.DashboardService.Overview(ctx, true)
				return err
			},
		}
	}
	return svc, nil
}

func (s *Service) Name() string { return serviceName }

// Start 阻塞直到 asynq 服务退出
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil {
		return errors.New("worker not initialized")
	}
	if s.warmer != nil {
		go s.warmer.run(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop 等待进行中的任务结束，ctx 到期后直接返回
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	done := make(chan struct{})
	go func() {
		s.server.Shutdown()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// dashboardWarmer 定时刷新后台概览缓存
type dashboardWarmer struct {
	interval time.Duration
	refresh  func(ctx context.Context) error
}

func (w *dashboardWarmer) run(ctx context.Context) {
	w.tick(ctx)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *dashboardWarmer) tick(ctx context.Context) {
	if err := w.refresh(ctx); err != nil && ctx.Err() == nil {
		logger.Warnw("worker_dashboard_warm_failed", "error", err)
	}
}

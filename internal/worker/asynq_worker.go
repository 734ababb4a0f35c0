package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/gemledger/internal/logger"
	"github.com/gemledger/internal/metrics"
	"github.com/gemledger/internal/provider"
	"github.com/gemledger/internal/queue"
	"github.com/gemledger/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskQuoteRequestNotify, observed(queue.TaskQuoteRequestNotify, c.handleQuoteRequestNotify))
	mux.HandleFunc(queue.TaskImportProposalExpire, observed(queue.TaskImportProposalExpire, c.handleImportProposalExpire))
}

// observed 统计任务处理结果
func observed(taskType string, fn func(context.Context, *asynq.Task) error) func(context.Context, *asynq.Task) error {
	return func(ctx context.Context, task *asynq.Task) error {
		err := fn(ctx, task)
		status := "ok"
		if err != nil {
			status = "error"
		}
		metrics.QueueJobsProcessed.WithLabelValues(taskType, status).Inc()
		return err
	}
}

func (c *Consumer) handleQuoteRequestNotify(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_quote_notify_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.QuoteRequestNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_quote_notify_unmarshal_failed", "error", err)
		return err
	}
	if payload.QuoteRequestID == 0 {
		logger.Debugw("worker_quote_notify_skip_invalid_payload", "quote_request_id", payload.QuoteRequestID)
		return nil
	}
	if c.QuoteService == nil {
		logger.Warnw("worker_quote_notify_skip_service_nil", "quote_request_id", payload.QuoteRequestID)
		return nil
	}
	if err := c.QuoteService.HandleNotify(ctx, payload); err != nil {
		if errors.Is(err, service.ErrEmailServiceNotConfigured) {
			logger.Warnw("worker_quote_notify_skip_email_not_configured", "quote_request_id", payload.QuoteRequestID)
			return nil
		}
		logger.Warnw("worker_quote_notify_failed", "quote_request_id", payload.QuoteRequestID, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleImportProposalExpire(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_import_expire_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.ImportProposalExpirePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_import_expire_unmarshal_failed", "error", err)
		return err
	}
	if payload.ProposalID == "" {
		logger.Debugw("worker_import_expire_skip_invalid_payload", "admin_id", payload.AdminID)
		return nil
	}
	if c.ImportService == nil {
		logger.Warnw("worker_import_expire_skip_service_nil", "proposal_id", payload.ProposalID)
		return nil
	}
	if err := c.ImportService.Expire(ctx, payload.ProposalID); err != nil {
		logger.Warnw("worker_import_expire_failed", "proposal_id", payload.ProposalID, "admin_id", payload.AdminID, "error", err)
		return err
	}
	return nil
}

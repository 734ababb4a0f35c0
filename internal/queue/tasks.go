package queue

import (
	"encoding/json"

	"github.com/gemledger/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskQuoteRequestNotify 询价单邮件通知
	TaskQuoteRequestNotify = constants.TaskQuoteRequestNotify
	// TaskImportProposalExpire 待决导入过期
	TaskImportProposalExpire = constants.TaskImportProposalExpire
)

// QuoteRequestNotifyPayload 询价通知载荷
type QuoteRequestNotifyPayload struct {
	QuoteRequestID uint   `json:"quote_request_id"`
	Locale         string `json:"locale"`
}

// ImportProposalExpirePayload 待决导入过期载荷
type ImportProposalExpirePayload struct {
	ProposalID string `json:"proposal_id"`
	AdminID    uint   `json:"admin_id"`
}

// NewQuoteRequestNotifyTask 创建询价通知任务
func NewQuoteRequestNotifyTask(payload QuoteRequestNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskQuoteRequestNotify, body), nil
}

// NewImportProposalExpireTask 创建待决导入过期任务
func NewImportProposalExpireTask(payload ImportProposalExpirePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskImportProposalExpire, body), nil
}

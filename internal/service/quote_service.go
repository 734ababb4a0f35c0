package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/gemledger/internal/config"
	"github.com/gemledger/internal/constants"
	"github.com/gemledger/internal/ingest"
	"github.com/gemledger/internal/logger"
	"github.com/gemledger/internal/metrics"
	"github.com/gemledger/internal/models"
	"github.com/gemledger/internal/queue"
	"github.com/gemledger/internal/repository"
)

const defaultQuoteMaxItems = 50

// QuoteService 询价单服务
type QuoteService struct {
	cfg       config.QuoteConfig
	repo      repository.QuoteRequestRepository
	stoneRepo repository.StoneRepository
	queue     *queue.Client
	email     *EmailService
}

// NewQuoteService 创建询价服务
func NewQuoteService(cfg config.QuoteConfig, repo repository.QuoteRequestRepository, stoneRepo repository.StoneRepository, queueClient *queue.Client, email *EmailService) *QuoteService {
	return &QuoteService{
		cfg:       cfg,
		repo:      repo,
		stoneRepo: stoneRepo,
		queue:     queueClient,
		email:     email,
	}
}

// QuoteSubmitInput 访客提交的询价
type QuoteSubmitInput struct {
	Name     string
	Email    string
	Phone    string
	Message  string
	SKUs     []string
	ClientIP string
	Locale   string
}

func (s *QuoteService) maxItems() int {
	if s.cfg.MaxItems > 0 {
		return s.cfg.MaxItems
	}
	return defaultQuoteMaxItems
}

// Submit 校验并保存询价单，随后投递通知任务
func (s *QuoteService) Submit(ctx context.Context, input QuoteSubmitInput) (*models.QuoteRequest, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" {
		return nil, ErrQuoteInvalid
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, ErrInvalidEmail
	}

	skus := uniqueSKUs(input.SKUs)
	if len(skus) == 0 {
		return nil, ErrQuoteItemsEmpty
	}
	if len(skus) > s.maxItems() {
		return nil, quoteTooManyError(s.maxItems())
	}

	stones, err := s.stoneRepo.WithContext(ctx).ListBySKUs(skus, catalogVisibleStatuses)
	if err != nil {
		return nil, err
	}
	bySKU := make(map[string]models.Stone, len(stones))
	for _, st := range stones {
		bySKU[st.SKU] = st
	}
	missing := make([]string, 0)
	for _, sku := range skus {
		if _, ok := bySKU[sku]; !ok {
			missing = append(missing, sku)
		}
	}
	if len(missing) > 0 {
		return nil, quoteUnavailableError(missing)
	}

	req := &models.QuoteRequest{
		RequestNo: generateQuoteNo(time.Now()),
		Name:      name,
		Email:     email,
		Phone:     strings.TrimSpace(input.Phone),
		Message:   strings.TrimSpace(input.Message),
		Status:    constants.QuoteStatusNew,
		ClientIP:  strings.TrimSpace(input.ClientIP),
		Items:     make([]models.QuoteRequestItem, 0, len(skus)),
	}
	total := models.NewMoneyFromFloat(0)
	for _, sku := range skus {
		st := bySKU[sku]
		req.Items = append(req.Items, models.QuoteRequestItem{
			SKU:         st.SKU,
			Shape:       st.Shape,
			Carat:       st.Carat,
			Color:       st.Color,
			Clarity:     st.Clarity,
			Lab:         st.Lab,
			TotalAmount: st.TotalAmount,
		})
		total = total.Add(st.TotalAmount)
	}
	req.TotalAmount = total

	if err := s.repo.Create(req); err != nil {
		return nil, err
	}
	metrics.QuoteRequests.Inc()
	if err := s.queue.EnqueueQuoteRequestNotify(queue.QuoteRequestNotifyPayload{
		QuoteRequestID: req.ID,
		Locale:         input.Locale,
	}); err != nil {
		logger.Warnw("quote_notify_enqueue_failed", "quote_request_id", req.ID, "error", err)
	}
	logger.Infow("quote_request_created",
		"quote_request_id", req.ID,
		"request_no", req.RequestNo,
		"items", len(req.Items),
		"total", req.TotalAmount.String(),
	)
	return req, nil
}

// uniqueSKUs 去空白、转大写并保持首次出现的顺序
func uniqueSKUs(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		sku := ingest.NormalizeSKU(r)
		if sku == "" {
			continue
		}
		if _, ok := seen[sku]; ok {
			continue
		}
		seen[sku] = struct{}{}
		out = append(out, sku)
	}
	return out
}

// List 后台询价单列表
func (s *QuoteService) List(filter repository.QuoteRequestListFilter) ([]models.QuoteRequest, int64, error) {
	if filter.Status != "" && !validQuoteStatus(filter.Status) {
		return nil, 0, ErrQuoteStatusInvalid
	}
	return s.repo.List(filter)
}

// Get 询价单详情
func (s *QuoteService) Get(id uint) (*models.QuoteRequest, error) {
	req, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrQuoteNotFound
	}
	return req, nil
}

var quoteStatusRank = map[string]int{
	constants.QuoteStatusNew:       0,
	constants.QuoteStatusContacted: 1,
	constants.QuoteStatusClosed:    2,
}

func validQuoteStatus(status string) bool {
	_, ok := quoteStatusRank[status]
	return ok
}

// UpdateStatus 跟进状态只能前进：new → contacted → closed
func (s *QuoteService) UpdateStatus(id uint, status string) (*models.QuoteRequest, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !validQuoteStatus(status) {
		return nil, ErrQuoteStatusInvalid
	}
	req, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if quoteStatusRank[status] < quoteStatusRank[req.Status] {
		return nil, ErrQuoteStatusInvalid
	}
	if status == req.Status {
		return req, nil
	}
	if _, err := s.repo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	req.Status = status
	return req, nil
}

// HandleNotify 队列任务：通知销售并回执访客，已通知的跳过
func (s *QuoteService) HandleNotify(ctx context.Context, payload queue.QuoteRequestNotifyPayload) error {
	req, err := s.repo.GetByID(payload.QuoteRequestID)
	if err != nil {
		return err
	}
	if req == nil || req.NotifiedAt != nil {
		return nil
	}
	if !s.email.Enabled() {
		logger.Debugw("quote_notify_skipped_email_disabled", "quote_request_id", req.ID)
		return nil
	}

	if to := strings.TrimSpace(s.cfg.NotifyEmail); to != "" {
		if err := s.email.SendQuoteNotification(to, req, payload.Locale); err != nil {
			return err
		}
	}
	if err := s.email.SendQuoteAcknowledgement(req, payload.Locale); err != nil {
		// 访客邮箱被拒不重试
		if !errors.Is(err, ErrEmailRecipientRejected) && !errors.Is(err, ErrInvalidEmail) {
			return err
		}
		logger.Warnw("quote_ack_rejected", "quote_request_id", req.ID, "error", err)
	}
	return s.repo.MarkNotified(req.ID, time.Now())
}

package service

import (
	"context"
	"errors"
	"io"
	"path/filepath"
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

	"github.com/google/uuid"
)

// 导入结果状态
const (
	ImportStatusCompleted = "completed"
	ImportStatusPending   = "pending"
	ImportStatusCancelled = "cancelled"
)

const proposalExpiredMessage = "proposal expired before a decision was made"

// ImportRequest 导入发起方信息
type ImportRequest struct {
	AdminID  uint
	Source   string
	Filename string
}

// ImportResult 导入接口返回
type ImportResult struct {
	Status   string         `json:"status"`
	BatchNo  string         `json:"batch_no,omitempty"`
	Report   *ingest.Report `json:"report,omitempty"`
	Proposal *ProposalView  `json:"proposal,omitempty"`
}

// ProposalView 待决导入摘要，不含完整记录
type ProposalView struct {
	ID                 string            `json:"id"`
	Source             string            `json:"source"`
	Filename           string            `json:"filename"`
	CreatedAt          time.Time         `json:"created_at"`
	ExpiresAt          *time.Time        `json:"expires_at,omitempty"`
	Headers            []string          `json:"headers"`
	TotalRows          int               `json:"total_rows"`
	RejectedMissingSKU int               `json:"rejected_missing_sku"`
	Duplicates         int               `json:"duplicates"`
	DuplicateSKUs      []string          `json:"duplicate_skus"`
	ConflictingSKUs    []string          `json:"conflicting_skus"`
	NewCount           int               `json:"new_count"`
	Options            []ingest.Decision `json:"options"`
}

// DecideFunc 命令行交互时询问操作员
type DecideFunc func(view *ProposalView) (ingest.Decision, error)

// ImportService 表格导入：两阶段冲突处理、忙碌标记与批次审计
type ImportService struct {
	cfg        config.ImportConfig
	reconciler *ingest.Reconciler
	batchRepo  repository.ImportBatchRepository
	proposals  ProposalStore
	lock       importLock
	queue      *queue.Client
}

// NewImportService 创建导入服务
func NewImportService(cfg config.ImportConfig, stoneRepo repository.StoneRepository, batchRepo repository.ImportBatchRepository, queueClient *queue.Client) *ImportService {
	return &ImportService{
		cfg:        cfg,
		reconciler: ingest.NewReconciler(stoneStore{repo: stoneRepo}, ingest.DefaultNormalizer()),
		batchRepo:  batchRepo,
		proposals:  NewProposalStore(),
		lock:       newImportLock(),
		queue:      queueClient,
	}
}

// ValidateUpload 检查扩展名与大小
func (s *ImportService) ValidateUpload(filename string, size int64) error {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(filename)))
	allowed := s.cfg.AllowedExtensions
	if len(allowed) == 0 {
		allowed = []string{".xlsx", ".xlsm", ".csv"}
	}
	if ext == "" || !constants.ContainsFold(allowed, ext) {
		return ErrImportExtension
	}
	if limit := s.cfg.MaxUploadBytes(); size > limit {
		return fileTooLargeError(limit >> 20)
	}
	return nil
}

// ImportFile 解析上传文件并进入第一阶段
func (s *ImportService) ImportFile(ctx context.Context, req ImportRequest, r io.Reader, size int64) (*ImportResult, error) {
	if err := s.ValidateUpload(req.Filename, size); err != nil {
		return nil, err
	}
	return s.withLock(ctx, req.AdminID, func() (*ImportResult, error) {
		start := time.Now()
		batch, err := ingest.ReadSheet(io.LimitReader(r, s.cfg.MaxUploadBytes()+1), req.Filename)
		metrics.ObserveStage("parse", start)
		if err != nil {
			s.observeRejected(req, err)
			return nil, err
		}
		return s.propose(ctx, req, *batch)
	})
}

// ImportRows 客户端预解析的表格，走同一流程
func (s *ImportService) ImportRows(ctx context.Context, req ImportRequest, headers []string, rows [][]ingest.Cell) (*ImportResult, error) {
	return s.withLock(ctx, req.AdminID, func() (*ImportResult, error) {
		batch, err := ingest.NewBatch(headers, rows)
		if err != nil {
			s.observeRejected(req, err)
			return nil, err
		}
		return s.propose(ctx, req, *batch)
	})
}

// acquire 获取管理员的忙碌标记，已被占用时返回 ErrImportBusy
func (s *ImportService) acquire(ctx context.Context, adminID uint) (func(), error) {
	ok, err := s.lock.Acquire(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrImportBusy
	}
	return func() { s.lock.Release(ctx, adminID) }, nil
}

// withLock 持有忙碌标记执行，已有待决导入时同样视为忙碌
func (s *ImportService) withLock(ctx context.Context, adminID uint, fn func() (*ImportResult, error)) (*ImportResult, error) {
	release, err := s.acquire(ctx, adminID)
	if err != nil {
		return nil, err
	}
	defer release()

	open, err := s.openProposal(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, ErrImportBusy
	}
	return fn()
}

func (s *ImportService) propose(ctx context.Context, req ImportRequest, batch ingest.Batch) (*ImportResult, error) {
	start := time.Now()
	outcome, err := s.reconciler.Propose(ctx, batch)
	metrics.ObserveStage("propose", start)
	if err != nil {
		if errors.Is(err, ingest.ErrStorage) {
			s.recordFailure(ctx, req, nil, "", err)
			return nil, err
		}
		s.observeRejected(req, err)
		return nil, err
	}

	if outcome.Completed() {
		batchNo := s.recordBatch(req, outcome.Report, constants.ImportOutcomeCompleted, "")
		logger.Infow("import_completed",
			"admin_id", req.AdminID,
			"source", req.Source,
			"filename", req.Filename,
			"batch_no", batchNo,
			"inserted", outcome.Report.Inserted,
			"duplicates", outcome.Report.Duplicates,
		)
		return &ImportResult{Status: ImportStatusCompleted, BatchNo: batchNo, Report: outcome.Report}, nil
	}

	now := time.Now()
	stored := &StoredProposal{
		ID:        uuid.NewString(),
		AdminID:   req.AdminID,
		Source:    req.Source,
		Filename:  req.Filename,
		CreatedAt: now,
		Pending:   *outcome.Pending,
	}
	ttl := s.cfg.ProposalTTL()
	if ttl > 0 {
		expiresAt := now.Add(ttl)
		stored.ExpiresAt = &expiresAt
	}
	if err := s.proposals.Save(ctx, stored, ttl); err != nil {
		return nil, err
	}
	if err := s.queue.EnqueueImportProposalExpire(queue.ImportProposalExpirePayload{
		ProposalID: stored.ID,
		AdminID:    stored.AdminID,
	}, ttl); err != nil {
		logger.Warnw("import_expire_enqueue_failed", "proposal_id", stored.ID, "error", err)
	}
	logger.Infow("import_proposed",
		"admin_id", req.AdminID,
		"source", req.Source,
		"filename", req.Filename,
		"proposal_id", stored.ID,
		"records", len(stored.Pending.Records),
		"conflicts", len(stored.Pending.ConflictingSKUs),
	)
	return &ImportResult{Status: ImportStatusPending, Proposal: buildProposalView(stored)}, nil
}

// Pending 当前管理员的待决导入，只读；过期的留给持锁操作或超时任务放弃
func (s *ImportService) Pending(ctx context.Context, adminID uint) (*ProposalView, error) {
	p, err := s.proposals.GetByOwner(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.Expired(time.Now()) {
		return nil, ErrImportProposalNotFound
	}
	return buildProposalView(p), nil
}

// Resolve 第二阶段：按决定写入。取消时返回 ingest.ErrConflictUnresolved
func (s *ImportService) Resolve(ctx context.Context, adminID uint, id, rawDecision string) (*ImportResult, error) {
	decision, err := ingest.ParseDecision(rawDecision)
	if err != nil {
		return nil, err
	}
	release, err := s.acquire(ctx, adminID)
	if err != nil {
		return nil, err
	}
	defer release()

	p, err := s.ownedProposal(ctx, adminID, id)
	if err != nil {
		return nil, err
	}
	if decision == ingest.DecisionCancel {
		if _, err := s.abandon(ctx, p, string(ingest.DecisionCancel), ""); err != nil {
			return nil, err
		}
		return nil, ingest.ErrConflictUnresolved
	}
	return s.resolve(ctx, p, decision)
}

func (s *ImportService) resolve(ctx context.Context, p *StoredProposal, decision ingest.Decision) (*ImportResult, error) {
	req := ImportRequest{AdminID: p.AdminID, Source: p.Source, Filename: p.Filename}
	start := time.Now()
	report, err := s.reconciler.Resolve(ctx, &p.Pending, decision)
	metrics.ObserveStage("resolve", start)
	if err != nil {
		if errors.Is(err, ingest.ErrStorage) {
			// 保留待决导入，操作员可重试
			s.recordFailure(ctx, req, &p.Pending, string(decision), err)
		}
		return nil, err
	}
	if err := s.proposals.Delete(ctx, p); err != nil {
		logger.Warnw("import_proposal_delete_failed", "proposal_id", p.ID, "error", err)
	}
	batchNo := s.recordBatch(req, report, constants.ImportOutcomeCompleted, "")
	logger.Infow("import_resolved",
		"admin_id", p.AdminID,
		"proposal_id", p.ID,
		"batch_no", batchNo,
		"decision", decision,
		"inserted", report.Inserted,
		"updated", report.Updated,
		"skipped", report.Skipped,
	)
	return &ImportResult{Status: ImportStatusCompleted, BatchNo: batchNo, Report: report}, nil
}

// Cancel 放弃待决导入，不做任何写入；写入进行中时返回 ErrImportBusy
func (s *ImportService) Cancel(ctx context.Context, adminID uint, id string) (*ImportResult, error) {
	release, err := s.acquire(ctx, adminID)
	if err != nil {
		return nil, err
	}
	defer release()

	p, err := s.ownedProposal(ctx, adminID, id)
	if err != nil {
		return nil, err
	}
	batchNo, err := s.abandon(ctx, p, string(ingest.DecisionCancel), "")
	if err != nil {
		return nil, err
	}
	return &ImportResult{Status: ImportStatusCancelled, BatchNo: batchNo}, nil
}

// Expire 超时的待决导入按放弃处理，已处理的忽略。
// 管理员正在写入时返回 ErrImportBusy，由队列重试
func (s *ImportService) Expire(ctx context.Context, id string) error {
	p, err := s.proposals.Get(ctx, id)
	if err != nil {
		return err
	}
	if p == nil || !p.Expired(time.Now()) {
		return nil
	}
	release, err := s.acquire(ctx, p.AdminID)
	if err != nil {
		return err
	}
	defer release()

	// 等锁期间可能已被决定或取消
	p, err = s.proposals.Get(ctx, id)
	if err != nil || p == nil {
		return err
	}
	_, err = s.abandon(ctx, p, "", proposalExpiredMessage)
	return err
}

// ImportDirect 命令行导入：冲突时同步询问，不保存待决导入。
// 与 HTTP 导入共用忙碌标记，启用 Redis 时跨进程生效
func (s *ImportService) ImportDirect(ctx context.Context, req ImportRequest, r io.Reader, decide DecideFunc) (*ImportResult, error) {
	return s.withLock(ctx, req.AdminID, func() (*ImportResult, error) {
		return s.importDirect(ctx, req, r, decide)
	})
}

func (s *ImportService) importDirect(ctx context.Context, req ImportRequest, r io.Reader, decide DecideFunc) (*ImportResult, error) {
	batch, err := ingest.ReadSheet(r, req.Filename)
	if err != nil {
		s.observeRejected(req, err)
		return nil, err
	}
	outcome, err := s.reconciler.Propose(ctx, *batch)
	if err != nil {
		if errors.Is(err, ingest.ErrStorage) {
			s.recordFailure(ctx, req, nil, "", err)
		} else {
			s.observeRejected(req, err)
		}
		return nil, err
	}
	if outcome.Completed() {
		batchNo := s.recordBatch(req, outcome.Report, constants.ImportOutcomeCompleted, "")
		return &ImportResult{Status: ImportStatusCompleted, BatchNo: batchNo, Report: outcome.Report}, nil
	}

	stored := &StoredProposal{
		ID:        uuid.NewString(),
		AdminID:   req.AdminID,
		Source:    req.Source,
		Filename:  req.Filename,
		CreatedAt: time.Now(),
		Pending:   *outcome.Pending,
	}
	decision, err := decide(buildProposalView(stored))
	if err != nil {
		return nil, err
	}
	if decision == ingest.DecisionCancel {
		s.recordAbandoned(ctx, stored, string(decision), "")
		return nil, ingest.ErrConflictUnresolved
	}
	report, err := s.reconciler.Resolve(ctx, &stored.Pending, decision)
	if err != nil {
		if errors.Is(err, ingest.ErrStorage) {
			s.recordFailure(ctx, req, &stored.Pending, string(decision), err)
		}
		return nil, err
	}
	batchNo := s.recordBatch(req, report, constants.ImportOutcomeCompleted, "")
	return &ImportResult{Status: ImportStatusCompleted, BatchNo: batchNo, Report: report}, nil
}

// ListBatches 导入审计记录
func (s *ImportService) ListBatches(filter repository.ImportBatchListFilter) ([]models.ImportBatch, int64, error) {
	return s.batchRepo.List(filter)
}

// openProposal 读取管理员的待决导入，已过期的顺带放弃
func (s *ImportService) openProposal(ctx context.Context, adminID uint) (*StoredProposal, error) {
	p, err := s.proposals.GetByOwner(ctx, adminID)
	if err != nil || p == nil {
		return nil, err
	}
	if p.Expired(time.Now()) {
		if _, err := s.abandon(ctx, p, "", proposalExpiredMessage); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return p, nil
}

func (s *ImportService) ownedProposal(ctx context.Context, adminID uint, id string) (*StoredProposal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrImportProposalNotFound
	}
	p, err := s.proposals.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || p.AdminID != adminID {
		return nil, ErrImportProposalNotFound
	}
	if p.Expired(time.Now()) {
		if _, err := s.abandon(ctx, p, "", proposalExpiredMessage); err != nil {
			return nil, err
		}
		return nil, ErrImportProposalNotFound
	}
	return p, nil
}

func (s *ImportService) abandon(ctx context.Context, p *StoredProposal, decision, message string) (string, error) {
	if err := s.proposals.Delete(ctx, p); err != nil {
		return "", err
	}
	batchNo := s.recordAbandoned(ctx, p, decision, message)
	logger.Infow("import_abandoned",
		"admin_id", p.AdminID,
		"proposal_id", p.ID,
		"batch_no", batchNo,
		"reason", firstNonEmpty(message, decision),
	)
	return batchNo, nil
}

func (s *ImportService) recordAbandoned(ctx context.Context, p *StoredProposal, decision, message string) string {
	report := pendingReport(&p.Pending)
	report.Decision = ingest.Decision(decision)
	req := ImportRequest{AdminID: p.AdminID, Source: p.Source, Filename: p.Filename}
	return s.recordBatch(req, report, constants.ImportOutcomeAbandoned, message)
}

func (s *ImportService) recordFailure(ctx context.Context, req ImportRequest, pending *ingest.Pending, decision string, cause error) {
	report := &ingest.Report{}
	if pending != nil {
		report = pendingReport(pending)
	}
	report.Decision = ingest.Decision(decision)
	batchNo := s.recordBatch(req, report, constants.ImportOutcomeFailed, cause.Error())
	logger.Errorw("import_storage_failed",
		"admin_id", req.AdminID,
		"source", req.Source,
		"filename", req.Filename,
		"batch_no", batchNo,
		"nothing_written", ingest.NothingWritten(cause),
		"error", cause,
	)
}

// recordBatch 写入审计批次并上报指标，审计失败只记录日志
func (s *ImportService) recordBatch(req ImportRequest, report *ingest.Report, outcome, message string) string {
	metrics.ObserveImport(outcome, string(report.Decision),
		report.Inserted, report.Updated, report.Skipped, report.Duplicates, report.RejectedMissingSKU)

	batch := &models.ImportBatch{
		BatchNo:            generateBatchNo(time.Now()),
		AdminID:            req.AdminID,
		Source:             req.Source,
		Filename:           req.Filename,
		TotalRows:          report.TotalRows,
		RejectedMissingSKU: report.RejectedMissingSKU,
		Duplicates:         report.Duplicates,
		Inserted:           report.Inserted,
		Updated:            report.Updated,
		Skipped:            report.Skipped,
		Decision:           string(report.Decision),
		Outcome:            outcome,
		ConflictSKUs:       models.StringArray(report.ConflictingSKUs),
		DuplicateSKUs:      models.StringArray(report.DuplicateSKUs),
		ErrorMessage:       message,
	}
	if err := s.batchRepo.Create(batch); err != nil {
		logger.Errorw("import_batch_record_failed",
			"admin_id", req.AdminID,
			"outcome", outcome,
			"error", err,
		)
		return ""
	}
	return batch.BatchNo
}

func (s *ImportService) observeRejected(req ImportRequest, err error) {
	metrics.ObserveImport("rejected", "", 0, 0, 0, 0, 0)
	logger.Warnw("import_rejected",
		"admin_id", req.AdminID,
		"source", req.Source,
		"filename", req.Filename,
		"error", err,
	)
}

func pendingReport(p *ingest.Pending) *ingest.Report {
	return &ingest.Report{
		TotalRows:          p.TotalRows,
		RejectedMissingSKU: p.RejectedMissingSKU,
		Duplicates:         p.Dedup.Removed,
		DuplicateSKUs:      p.Dedup.SKUs,
		ConflictingSKUs:    p.ConflictingSKUs,
	}
}

func buildProposalView(p *StoredProposal) *ProposalView {
	return &ProposalView{
		ID:                 p.ID,
		Source:             p.Source,
		Filename:           p.Filename,
		CreatedAt:          p.CreatedAt,
		ExpiresAt:          p.ExpiresAt,
		Headers:            p.Pending.Headers,
		TotalRows:          p.Pending.TotalRows,
		RejectedMissingSKU: p.Pending.RejectedMissingSKU,
		Duplicates:         p.Pending.Dedup.Removed,
		DuplicateSKUs:      p.Pending.Dedup.SKUs,
		ConflictingSKUs:    p.Pending.ConflictingSKUs,
		NewCount:           len(p.Pending.Records) - len(p.Pending.ConflictingSKUs),
		Options:            p.Pending.Options,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

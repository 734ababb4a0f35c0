package ingest

import (
	"context"
	"fmt"
	"strings"
)

// Store 存储协作方，每次调用自身原子，调用之间不保证事务
type Store interface {
	// ExistingSKUs 只查询给定 sku 集合中已存在的部分
	ExistingSKUs(ctx context.Context, skus []string) ([]string, error)
	// Insert 新增记录，任一 sku 已存在则整体失败
	Insert(ctx context.Context, records []Record) error
	// Upsert 以 sku 为键插入或覆盖
	Upsert(ctx context.Context, records []Record) error
}

// Decision 冲突处理方式
type Decision string

const (
	DecisionOverwrite  Decision = "overwrite"
	DecisionAddNewOnly Decision = "add_new_only"
	DecisionCancel     Decision = "cancel"
)

// ParseDecision 解析操作员选择，兼容常见写法
func ParseDecision(raw string) (Decision, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "overwrite", "replace", "upsert":
		return DecisionOverwrite, nil
	case "add_new_only", "add-new-only", "add_new", "add-new", "skip", "skip_existing":
		return DecisionAddNewOnly, nil
	case "cancel", "decline", "abort":
		return DecisionCancel, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDecision, raw)
	}
}

// Batch 一次上传解析出的原始数据
type Batch struct {
	Sheet   string   `json:"sheet,omitempty"`
	Headers []string `json:"headers"`
	Rows    []RawRow `json:"rows"`
}

// Prepared 规范化并去重后的批次
type Prepared struct {
	Headers            []string    `json:"headers"`
	TotalRows          int         `json:"total_rows"`
	RejectedMissingSKU int         `json:"rejected_missing_sku"`
	Dedup              DedupReport `json:"dedup"`
	Records            []Record    `json:"records"`
}

// Pending 等待操作员决定的导入，序列化后可跨请求保存
type Pending struct {
	Prepared
	ConflictingSKUs []string   `json:"conflicting_skus"`
	Options         []Decision `json:"options"`
}

// Report 导入结果统计
type Report struct {
	TotalRows          int      `json:"total_rows"`
	RejectedMissingSKU int      `json:"rejected_missing_sku"`
	Duplicates         int      `json:"duplicates"`
	DuplicateSKUs      []string `json:"duplicate_skus"`
	ConflictingSKUs    []string `json:"conflicting_skus"`
	Inserted           int      `json:"inserted"`
	Updated            int      `json:"updated"`
	Skipped            int      `json:"skipped"`
	Decision           Decision `json:"decision,omitempty"`
	Message            string   `json:"message"`
}

// Outcome Propose 的结果：要么已完成，要么等待决定
type Outcome struct {
	Report  *Report  `json:"report,omitempty"`
	Pending *Pending `json:"pending,omitempty"`
}

// Completed 是否已直接写入完成
func (o *Outcome) Completed() bool {
	return o != nil && o.Report != nil
}

// Reconciler 负责冲突检测与两阶段（propose → resolve）写入
type Reconciler struct {
	store      Store
	normalizer *Normalizer
}

// NewReconciler 创建协调器，normalizer 为空时使用默认规则
func NewReconciler(store Store, normalizer *Normalizer) *Reconciler {
	if normalizer == nil {
		normalizer = DefaultNormalizer()
	}
	return &Reconciler{store: store, normalizer: normalizer}
}

// Prepare 规范化并去重，不访问存储
func (r *Reconciler) Prepare(batch Batch) (*Prepared, error) {
	if len(batch.Rows) == 0 {
		return nil, &ParseError{Reason: "no data rows"}
	}
	p := &Prepared{
		Headers:   batch.Headers,
		TotalRows: len(batch.Rows),
	}
	candidates := make([]Record, 0, len(batch.Rows))
	for _, row := range batch.Rows {
		rec, ok := r.normalizer.Normalize(row)
		if !ok {
			p.RejectedMissingSKU++
			continue
		}
		candidates = append(candidates, rec)
	}
	if len(candidates) == 0 {
		return nil, &MappingError{Headers: batch.Headers}
	}
	p.Records, p.Dedup = Dedup(candidates)
	return p, nil
}

// Propose 第一阶段：查询冲突。无冲突时直接插入；有冲突时返回 Pending 且不做任何写入
func (r *Reconciler) Propose(ctx context.Context, batch Batch) (*Outcome, error) {
	p, err := r.Prepare(batch)
	if err != nil {
		return nil, err
	}
	existing, err := r.existing(ctx, p.Records)
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		if err := r.store.Insert(ctx, p.Records); err != nil {
			return nil, &StorageError{Op: OpInsert, Err: err}
		}
		report := newReport(p, nil, "")
		report.Inserted = len(p.Records)
		report.Message = report.Summary()
		return &Outcome{Report: report}, nil
	}
	return &Outcome{Pending: &Pending{
		Prepared:        *p,
		ConflictingSKUs: orderedSubset(p.Records, existing),
		Options:         []Decision{DecisionOverwrite, DecisionAddNewOnly},
	}}, nil
}

// Resolve 第二阶段：按操作员的决定写入。取消时不写入并返回 ErrConflictUnresolved
func (r *Reconciler) Resolve(ctx context.Context, pending *Pending, decision Decision) (*Report, error) {
	if pending == nil {
		return nil, fmt.Errorf("%w: nothing pending", ErrInvalidDecision)
	}
	switch decision {
	case DecisionCancel:
		return nil, ErrConflictUnresolved
	case DecisionOverwrite, DecisionAddNewOnly:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidDecision, decision)
	}

	// 决定可能在很久之后才到达，重新查询以反映写入前的真实状态
	existing, err := r.existing(ctx, pending.Records)
	if err != nil {
		return nil, err
	}
	report := newReport(&pending.Prepared, orderedSubset(pending.Records, existing), decision)

	if decision == DecisionOverwrite {
		if err := r.store.Upsert(ctx, pending.Records); err != nil {
			return nil, &StorageError{Op: OpUpsert, Err: err}
		}
		report.Updated = len(existing)
		report.Inserted = len(pending.Records) - len(existing)
		report.Message = report.Summary()
		return report, nil
	}

	fresh := make([]Record, 0, len(pending.Records))
	for _, rec := range pending.Records {
		if _, ok := existing[rec.SKU]; !ok {
			fresh = append(fresh, rec)
		}
	}
	if len(fresh) > 0 {
		if err := r.store.Insert(ctx, fresh); err != nil {
			return nil, &StorageError{Op: OpInsert, Err: err}
		}
	}
	report.Inserted = len(fresh)
	report.Skipped = len(pending.Records) - len(fresh)
	report.Message = report.Summary()
	return report, nil
}

func (r *Reconciler) existing(ctx context.Context, records []Record) (map[string]struct{}, error) {
	found, err := r.store.ExistingSKUs(ctx, SKUs(records))
	if err != nil {
		return nil, &StorageError{Op: OpQuery, Err: err}
	}
	set := make(map[string]struct{}, len(found))
	for _, sku := range found {
		set[NormalizeSKU(sku)] = struct{}{}
	}
	return set, nil
}

func newReport(p *Prepared, conflicts []string, decision Decision) *Report {
	return &Report{
		TotalRows:          p.TotalRows,
		RejectedMissingSKU: p.RejectedMissingSKU,
		Duplicates:         p.Dedup.Removed,
		DuplicateSKUs:      p.Dedup.SKUs,
		ConflictingSKUs:    conflicts,
		Decision:           decision,
	}
}

// Summary 生成给操作员看的简短结果，如 "0 new, 1 skipped"
func (r *Report) Summary() string {
	parts := []string{fmt.Sprintf("%d new", r.Inserted)}
	if r.Decision == DecisionOverwrite || r.Updated > 0 {
		parts = append(parts, fmt.Sprintf("%d updated", r.Updated))
	}
	if r.Decision == DecisionAddNewOnly || r.Skipped > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", r.Skipped))
	}
	return strings.Join(parts, ", ")
}

// orderedSubset 按批次顺序列出命中集合的 sku
func orderedSubset(records []Record, set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for _, rec := range records {
		if _, ok := set[rec.SKU]; ok {
			out = append(out, rec.SKU)
		}
	}
	return out
}

package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/gemledger/internal/cache"
	"github.com/gemledger/internal/ingest"
	"github.com/gemledger/internal/models"
	"github.com/gemledger/internal/repository"
)

const (
	importBusyTTL = 10 * time.Minute
	// 过期任务运行前保留数据，用于写入放弃记录
	proposalExpireGrace = 10 * time.Minute
)

// stoneStore 把石头仓库适配为导入协调器的存储协作方
type stoneStore struct {
	repo repository.StoneRepository
}

func (s stoneStore) ExistingSKUs(ctx context.Context, skus []string) ([]string, error) {
	return s.repo.WithContext(ctx).ExistingSKUs(skus)
}

func (s stoneStore) Insert(ctx context.Context, records []ingest.Record) error {
	return s.repo.WithContext(ctx).InsertBatch(recordsToStones(records))
}

func (s stoneStore) Upsert(ctx context.Context, records []ingest.Record) error {
	return s.repo.WithContext(ctx).UpsertBatch(recordsToStones(records))
}

func recordsToStones(records []ingest.Record) []models.Stone {
	stones := make([]models.Stone, len(records))
	for i, rec := range records {
		stones[i] = models.Stone{
			SKU:         rec.SKU,
			Lab:         rec.Lab,
			Shape:       rec.Shape,
			Color:       rec.Color,
			Clarity:     rec.Clarity,
			Cut:         rec.Cut,
			Carat:       rec.Carat,
			Length:      rec.Length,
			Width:       rec.Width,
			Height:      rec.Height,
			TotalAmount: models.NewMoney(rec.TotalAmount),
			ImageURL:    rec.ImageURL,
			Status:      rec.Status,
			Priority:    rec.Priority,
		}
	}
	return stones
}

// StoredProposal 保存中的待决导入
type StoredProposal struct {
	ID        string         `json:"id"`
	AdminID   uint           `json:"admin_id"`
	Source    string         `json:"source"`
	Filename  string         `json:"filename"`
	CreatedAt time.Time      `json:"created_at"`
	ExpiresAt *time.Time     `json:"expires_at,omitempty"`
	Pending   ingest.Pending `json:"pending"`
}

// Expired 是否已超过保留时间
func (p *StoredProposal) Expired(now time.Time) bool {
	return p != nil && p.ExpiresAt != nil && !now.Before(*p.ExpiresAt)
}

// ProposalStore 待决导入存储，Get 在不存在时返回 nil, nil
type ProposalStore interface {
	Save(ctx context.Context, p *StoredProposal, ttl time.Duration) error
	Get(ctx context.Context, id string) (*StoredProposal, error)
	GetByOwner(ctx context.Context, adminID uint) (*StoredProposal, error)
	Delete(ctx context.Context, p *StoredProposal) error
}

// NewProposalStore Redis 可用时跨实例共享，否则保存在进程内
func NewProposalStore() ProposalStore {
	if cache.Enabled() {
		return redisProposalStore{}
	}
	return newMemoryProposalStore()
}

type redisProposalStore struct{}

func (redisProposalStore) Save(ctx context.Context, p *StoredProposal, ttl time.Duration) error {
	if ttl > 0 {
		ttl += proposalExpireGrace
	}
	if err := cache.SetJSON(ctx, cache.ImportProposalKey(p.ID), p, ttl); err != nil {
		return err
	}
	return cache.SetString(ctx, cache.ImportOwnerKey(p.AdminID), p.ID, ttl)
}

func (redisProposalStore) Get(ctx context.Context, id string) (*StoredProposal, error) {
	var p StoredProposal
	hit, err := cache.GetJSON(ctx, cache.ImportProposalKey(id), &p)
	if err != nil || !hit {
		return nil, err
	}
	return &p, nil
}

func (s redisProposalStore) GetByOwner(ctx context.Context, adminID uint) (*StoredProposal, error) {
	id, ok, err := cache.GetString(ctx, cache.ImportOwnerKey(adminID))
	if err != nil || !ok || id == "" {
		return nil, err
	}
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		_ = cache.Del(ctx, cache.ImportOwnerKey(adminID))
	}
	return p, nil
}

func (redisProposalStore) Delete(ctx context.Context, p *StoredProposal) error {
	if p == nil {
		return nil
	}
	return cache.Del(ctx, cache.ImportProposalKey(p.ID), cache.ImportOwnerKey(p.AdminID))
}

type memoryProposal struct {
	proposal *StoredProposal
	purgeAt  time.Time
}

type memoryProposalStore struct {
	mu      sync.Mutex
	byID    map[string]memoryProposal
	byOwner map[uint]string
}

func newMemoryProposalStore() *memoryProposalStore {
	return &memoryProposalStore{
		byID:    make(map[string]memoryProposal),
		byOwner: make(map[uint]string),
	}
}

func (s *memoryProposalStore) Save(_ context.Context, p *StoredProposal, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, entry := range s.byID {
		if !entry.purgeAt.IsZero() && now.After(entry.purgeAt) {
			s.remove(id, entry.proposal.AdminID)
		}
	}
	entry := memoryProposal{proposal: p}
	if ttl > 0 {
		entry.purgeAt = now.Add(ttl + proposalExpireGrace)
	}
	s.byID[p.ID] = entry
	s.byOwner[p.AdminID] = p.ID
	return nil
}

func (s *memoryProposalStore) Get(_ context.Context, id string) (*StoredProposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *entry.proposal
	return &cp, nil
}

func (s *memoryProposalStore) GetByOwner(ctx context.Context, adminID uint) (*StoredProposal, error) {
	s.mu.Lock()
	id, ok := s.byOwner[adminID]
	s.mu.Unlock()
	if !ok {
		return nil, nil
	}
	return s.Get(ctx, id)
}

func (s *memoryProposalStore) Delete(_ context.Context, p *StoredProposal) error {
	if p == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(p.ID, p.AdminID)
	return nil
}

// remove 调用方需持有锁
func (s *memoryProposalStore) remove(id string, adminID uint) {
	delete(s.byID, id)
	if s.byOwner[adminID] == id {
		delete(s.byOwner, adminID)
	}
}

// importLock 每个管理员同一时刻只允许一个导入在执行
type importLock interface {
	Acquire(ctx context.Context, adminID uint) (bool, error)
	Release(ctx context.Context, adminID uint)
}

func newImportLock() importLock {
	if cache.Enabled() {
		return redisImportLock{}
	}
	return &memoryImportLock{held: make(map[uint]struct{})}
}

type redisImportLock struct{}

func (redisImportLock) Acquire(ctx context.Context, adminID uint) (bool, error) {
	return cache.SetNX(ctx, cache.ImportBusyKey(adminID), strconv.FormatInt(time.Now().Unix(), 10), importBusyTTL)
}

func (redisImportLock) Release(ctx context.Context, adminID uint) {
	_ = cache.Del(context.WithoutCancel(ctx), cache.ImportBusyKey(adminID))
}

type memoryImportLock struct {
	mu   sync.Mutex
	held map[uint]struct{}
}

func (l *memoryImportLock) Acquire(_ context.Context, adminID uint) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, busy := l.held[adminID]; busy {
		return false, nil
	}
	l.held[adminID] = struct{}{}
	return true, nil
}

func (l *memoryImportLock) Release(_ context.Context, adminID uint) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, adminID)
}

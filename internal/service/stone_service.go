package service

import (
	"context"
	"errors"
	"strings"

	"github.com/gemledger/internal/constants"
	"github.com/gemledger/internal/ingest"
	"github.com/gemledger/internal/models"
	"github.com/gemledger/internal/repository"
	"github.com/gemledger/internal/storage"

	"github.com/shopspring/decimal"
)

// StoneService 后台石头管理
type StoneService struct {
	repo      repository.StoneRepository
	presigner storage.PhotoPresigner
}

// NewStoneService 创建石头服务，presigner 为空时图片直传不可用
func NewStoneService(repo repository.StoneRepository, presigner storage.PhotoPresigner) *StoneService {
	return &StoneService{repo: repo, presigner: presigner}
}

// StoneInput 后台表单提交的石头数据
type StoneInput struct {
	SKU         string          `json:"sku"`
	Lab         string          `json:"lab"`
	Shape       string          `json:"shape"`
	Color       string          `json:"color"`
	Clarity     string          `json:"clarity"`
	Cut         string          `json:"cut"`
	Carat       float64         `json:"carat"`
	Length      float64         `json:"length"`
	Width       float64         `json:"width"`
	Height      float64         `json:"height"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ImageURL    string          `json:"image_url"`
	Status      string          `json:"status"`
	Priority    int             `json:"priority"`
}

// StoneAdminFilter 后台列表条件
type StoneAdminFilter struct {
	Page     int
	PageSize int
	Keyword  string
	Status   string
	Shape    string
	Lab      string
}

// normalizeStoneInput 填充表单缺省值并校验枚举
func normalizeStoneInput(input StoneInput) (models.Stone, error) {
	sku := ingest.NormalizeSKU(input.SKU)
	if sku == "" {
		return models.Stone{}, ErrStoneSKURequired
	}
	stone := models.Stone{
		SKU:         sku,
		Lab:         enumOrDefault(input.Lab, constants.DefaultStoneLab),
		Shape:       enumOrDefault(input.Shape, constants.DefaultStoneShape),
		Color:       enumOrDefault(input.Color, constants.DefaultStoneColor),
		Clarity:     enumOrDefault(input.Clarity, constants.DefaultStoneClarity),
		Cut:         enumOrDefault(input.Cut, constants.DefaultStoneCut),
		Carat:       input.Carat,
		Length:      input.Length,
		Width:       input.Width,
		Height:      input.Height,
		TotalAmount: models.NewMoney(input.TotalAmount),
		ImageURL:    strings.TrimSpace(input.ImageURL),
		Priority:    input.Priority,
	}

	checks := []struct {
		field   string
		value   string
		allowed []string
	}{
		{"lab", stone.Lab, constants.StoneLabs},
		{"shape", stone.Shape, constants.StoneShapes},
		{"color", stone.Color, constants.StoneColors},
		{"clarity", stone.Clarity, constants.StoneClarities},
		{"cut", stone.Cut, constants.StoneCuts},
	}
	for _, c := range checks {
		if !constants.ContainsFold(c.allowed, c.value) {
			return models.Stone{}, stoneFieldError(c.field)
		}
	}
	if stone.Carat < 0 || stone.Length < 0 || stone.Width < 0 || stone.Height < 0 {
		return models.Stone{}, stoneFieldError("size")
	}
	if stone.TotalAmount.IsNegative() {
		return models.Stone{}, stoneFieldError("total_amount")
	}

	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = constants.StoneStatusInStock
	}
	normalized, ok := normalizeStoneStatus(status)
	if !ok {
		return models.Stone{}, ErrStoneStatusInvalid
	}
	stone.Status = normalized
	return stone, nil
}

func enumOrDefault(value, fallback string) string {
	value = strings.ToUpper(strings.TrimSpace(value))
	if value == "" {
		return fallback
	}
	return value
}

// normalizeStoneStatus 状态不区分大小写，输出规范写法
func normalizeStoneStatus(status string) (string, bool) {
	for _, s := range []string{constants.StoneStatusInStock, constants.StoneStatusHidden, constants.StoneStatusSold} {
		if strings.EqualFold(strings.TrimSpace(status), s) {
			return s, true
		}
	}
	return "", false
}

// Upsert 手工录入，sku 已存在时覆盖
func (s *StoneService) Upsert(ctx context.Context, input StoneInput) (*models.Stone, error) {
	stone, err := normalizeStoneInput(input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.WithContext(ctx).UpsertOne(&stone); err != nil {
		return nil, err
	}
	return &stone, nil
}

// Get 获取单颗石头
func (s *StoneService) Get(ctx context.Context, id uint) (*models.Stone, error) {
	stone, err := s.repo.WithContext(ctx).GetByID(id)
	if err != nil {
		return nil, err
	}
	if stone == nil {
		return nil, ErrStoneNotFound
	}
	return stone, nil
}

// Update 编辑石头，sku 变更时不得与其他记录重复
func (s *StoneService) Update(ctx context.Context, id uint, input StoneInput) (*models.Stone, error) {
	repo := s.repo.WithContext(ctx)
	current, err := repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrStoneNotFound
	}
	stone, err := normalizeStoneInput(input)
	if err != nil {
		return nil, err
	}
	if stone.SKU != current.SKU {
		other, err := repo.GetBySKU(stone.SKU)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, stoneFieldError("sku")
		}
	}
	stone.ID = current.ID
	stone.CreatedAt = current.CreatedAt
	if err := repo.Update(&stone); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, stoneFieldError("sku")
		}
		return nil, err
	}
	return &stone, nil
}

// List 后台分页列表
func (s *StoneService) List(ctx context.Context, filter StoneAdminFilter) ([]models.Stone, int64, error) {
	query := repository.StoneListFilter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Keyword:  filter.Keyword,
		Shapes:   splitUpper(filter.Shape),
		Labs:     splitUpper(filter.Lab),
		Sort:     constants.CatalogSortPriority,
	}
	if strings.TrimSpace(filter.Status) != "" {
		status, ok := normalizeStoneStatus(filter.Status)
		if !ok {
			return nil, 0, ErrStoneStatusInvalid
		}
		query.Statuses = []string{status}
	}
	return s.repo.WithContext(ctx).List(query)
}

// UpdateStatus 切换上架状态
func (s *StoneService) UpdateStatus(ctx context.Context, id uint, status string) error {
	normalized, ok := normalizeStoneStatus(status)
	if !ok {
		return ErrStoneStatusInvalid
	}
	affected, err := s.repo.WithContext(ctx).UpdateStatus(id, normalized)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrStoneNotFound
	}
	return nil
}

// UpdatePriority 调整目录排序
func (s *StoneService) UpdatePriority(ctx context.Context, id uint, priority int) error {
	affected, err := s.repo.WithContext(ctx).UpdatePriority(id, priority)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrStoneNotFound
	}
	return nil
}

// Delete 物理删除
func (s *StoneService) Delete(ctx context.Context, id uint) error {
	affected, err := s.repo.WithContext(ctx).Delete(id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrStoneNotFound
	}
	return nil
}

// PresignPhoto 为石头照片生成直传地址
func (s *StoneService) PresignPhoto(ctx context.Context, id uint, contentType string) (*storage.PresignedUpload, error) {
	if s.presigner == nil {
		return nil, ErrStorageDisabled
	}
	stone, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	upload, err := s.presigner.PresignPhoto(ctx, stone.SKU, contentType)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrDisabled):
			return nil, ErrStorageDisabled
		case errors.Is(err, storage.ErrContentType):
			return nil, stoneFieldError("content_type")
		}
		return nil, err
	}
	return upload, nil
}

// splitUpper 拆分逗号分隔的多选参数
func splitUpper(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.ToUpper(strings.TrimSpace(p)); v != "" {
			out = append(out, v)
		}
	}
	return out
}

package service

import (
	"context"
	"strings"

	"github.com/gemledger/internal/constants"
	"github.com/gemledger/internal/ingest"
	"github.com/gemledger/internal/models"
	"github.com/gemledger/internal/repository"
)

// 前台可见状态，Hidden 永不出现
var catalogVisibleStatuses = []string{constants.StoneStatusInStock, constants.StoneStatusSold}

// CatalogService 前台目录查询
type CatalogService struct {
	repo repository.StoneRepository
}

// NewCatalogService 创建目录服务
func NewCatalogService(repo repository.StoneRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// CatalogQuery 目录筛选条件，多选值以逗号分隔
type CatalogQuery struct {
	Page     int
	PageSize int
	Shape    string
	Lab      string
	Color    string
	Clarity  string
	Cut      string
	MinCarat *float64
	MaxCarat *float64
	MinPrice *float64
	MaxPrice *float64
	Sort     string
}

// CatalogFilters 筛选项枚举
type CatalogFilters struct {
	Shapes    []string `json:"shapes"`
	Colors    []string `json:"colors"`
	Clarities []string `json:"clarities"`
	Labs      []string `json:"labs"`
	Cuts      []string `json:"cuts"`
	Sorts     []string `json:"sorts"`
}

var catalogSorts = []string{
	constants.CatalogSortPriceLow,
	constants.CatalogSortPriceHigh,
	constants.CatalogSortCaratLow,
	constants.CatalogSortCaratHigh,
	constants.CatalogSortPriority,
}

// List 目录列表
func (s *CatalogService) List(ctx context.Context, q CatalogQuery) ([]models.Stone, int64, error) {
	sort := strings.ToLower(strings.TrimSpace(q.Sort))
	if !constants.ContainsFold(catalogSorts, sort) {
		sort = constants.CatalogSortPriceLow
	}
	return s.repo.WithContext(ctx).List(repository.StoneListFilter{
		Page:      q.Page,
		PageSize:  q.PageSize,
		Statuses:  catalogVisibleStatuses,
		Shapes:    splitUpper(q.Shape),
		Labs:      splitUpper(q.Lab),
		Colors:    splitUpper(q.Color),
		Clarities: splitUpper(q.Clarity),
		Cuts:      splitUpper(q.Cut),
		MinCarat:  q.MinCarat,
		MaxCarat:  q.MaxCarat,
		MinPrice:  q.MinPrice,
		MaxPrice:  q.MaxPrice,
		Sort:      sort,
	})
}

// Detail 石头详情，隐藏的石头按不存在处理
func (s *CatalogService) Detail(ctx context.Context, sku string) (*models.Stone, error) {
	sku = ingest.NormalizeSKU(sku)
	if sku == "" {
		return nil, ErrStoneNotFound
	}
	stone, err := s.repo.WithContext(ctx).GetBySKU(sku)
	if err != nil {
		return nil, err
	}
	if stone == nil || !constants.ContainsFold(catalogVisibleStatuses, stone.Status) {
		return nil, ErrStoneNotFound
	}
	return stone, nil
}

// ShapeSummary 在售石头按形状计数
func (s *CatalogService) ShapeSummary(ctx context.Context) ([]repository.ShapeCountRow, error) {
	return s.repo.WithContext(ctx).ShapeSummary([]string{constants.StoneStatusInStock})
}

// Filters 筛选项
func (s *CatalogService) Filters() CatalogFilters {
	return CatalogFilters{
		Shapes:    constants.StoneShapes,
		Colors:    constants.StoneColors,
		Clarities: constants.StoneClarities,
		Labs:      constants.StoneLabs,
		Cuts:      constants.StoneCuts,
		Sorts:     catalogSorts,
	}
}

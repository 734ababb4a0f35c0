package service

import (
	"context"
	"time"

	"github.com/gemledger/internal/cache"
	"github.com/gemledger/internal/constants"
	"github.com/gemledger/internal/models"
	"github.com/gemledger/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	dashboardCacheTTL      = 45 * time.Second
	dashboardCacheKey      = "dashboard:overview"
	dashboardRecentImports = 5
)

// DashboardService 仪表盘服务
// 说明：聚合后台首页库存与询价数据。
type DashboardService struct {
	stoneRepo repository.StoneRepository
	batchRepo repository.ImportBatchRepository
	quoteRepo repository.QuoteRequestRepository
}

// NewDashboardService 创建仪表盘服务
func NewDashboardService(stoneRepo repository.StoneRepository, batchRepo repository.ImportBatchRepository, quoteRepo repository.QuoteRequestRepository) *DashboardService {
	return &DashboardService{stoneRepo: stoneRepo, batchRepo: batchRepo, quoteRepo: quoteRepo}
}

// DashboardOverview 仪表盘总览
type DashboardOverview struct {
	Stock         DashboardStock       `json:"stock"`
	NewQuotes     int64                `json:"new_quotes"`
	RecentImports []models.ImportBatch `json:"recent_imports"`
	GeneratedAt   time.Time            `json:"generated_at"`
}

// DashboardStock 库存概览
type DashboardStock struct {
	InStock      int64  `json:"in_stock"`
	Hidden       int64  `json:"hidden"`
	Sold         int64  `json:"sold"`
	Total        int64  `json:"total"`
	InStockValue string `json:"in_stock_value"`
	InStockCarat string `json:"in_stock_carat"`
}

// Overview 获取总览，forceRefresh 时跳过缓存
func (s *DashboardService) Overview(ctx context.Context, forceRefresh bool) (*DashboardOverview, error) {
	if !forceRefresh {
		var cached DashboardOverview
		hit, cacheErr := cache.GetJSON(ctx, dashboardCacheKey, &cached)
		if cacheErr == nil && hit {
			return &cached, nil
		}
	}

	stats, err := s.stoneRepo.WithContext(ctx).StockStats()
	if err != nil {
		return nil, err
	}
	_, newQuotes, err := s.quoteRepo.List(repository.QuoteRequestListFilter{
		Page:     1,
		PageSize: 1,
		Status:   constants.QuoteStatusNew,
	})
	if err != nil {
		return nil, err
	}
	batches, _, err := s.batchRepo.List(repository.ImportBatchListFilter{Page: 1, PageSize: dashboardRecentImports})
	if err != nil {
		return nil, err
	}

	overview := &DashboardOverview{
		Stock: DashboardStock{
			InStock:      stats.InStock,
			Hidden:       stats.Hidden,
			Sold:         stats.Sold,
			Total:        stats.InStock + stats.Hidden + stats.Sold,
			InStockValue: decimal.NewFromFloat(stats.InStockValue).StringFixed(2),
			InStockCarat: decimal.NewFromFloat(stats.InStockCarat).StringFixed(2),
		},
		NewQuotes:     newQuotes,
		RecentImports: batches,
		GeneratedAt:   time.Now(),
	}
	_ = cache.SetJSON(ctx, dashboardCacheKey, overview, dashboardCacheTTL)
	return overview, nil
}

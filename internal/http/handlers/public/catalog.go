package public

import (
	"time"

	"github.com/gemledger/internal/cache"
	handlershared "github.com/gemledger/internal/http/handlers/shared"
	"github.com/gemledger/internal/http/response"
	"github.com/gemledger/internal/models"
	"github.com/gemledger/internal/repository"
	"github.com/gemledger/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	shapeSummaryCacheKey = "public:stones:summary"
	shapeSummaryCacheTTL = 60 * time.Second
)

// PublicStoneView 前台石头响应结构，不暴露排序权重
type PublicStoneView struct {
	SKU         string       `json:"sku"`
	Lab         string       `json:"lab"`
	Shape       string       `json:"shape"`
	Color       string       `json:"color"`
	Clarity     string       `json:"clarity"`
	Cut         string       `json:"cut"`
	Carat       float64      `json:"carat"`
	Length      float64      `json:"length"`
	Width       float64      `json:"width"`
	Height      float64      `json:"height"`
	TotalAmount models.Money `json:"total_amount"`
	ImageURL    string       `json:"image_url"`
	Status      string       `json:"status"`
}

func toPublicStone(st models.Stone) PublicStoneView {
	return PublicStoneView{
		SKU:         st.SKU,
		Lab:         st.Lab,
		Shape:       st.Shape,
		Color:       st.Color,
		Clarity:     st.Clarity,
		Cut:         st.Cut,
		Carat:       st.Carat,
		Length:      st.Length,
		Width:       st.Width,
		Height:      st.Height,
		TotalAmount: st.TotalAmount,
		ImageURL:    st.ImageURL,
		Status:      st.Status,
	}
}

// GetStones 目录列表
func (h *Handler) GetStones(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	stones, total, err := h.CatalogService.List(c.Request.Context(), service.CatalogQuery{
		Page:     page,
		PageSize: pageSize,
		Shape:    c.Query("shape"),
		Lab:      c.Query("lab"),
		Color:    c.Query("color"),
		Clarity:  c.Query("clarity"),
		Cut:      c.Query("cut"),
		MinCarat: handlershared.ParseFloatQuery(c, "min_carat"),
		MaxCarat: handlershared.ParseFloatQuery(c, "max_carat"),
		MinPrice: handlershared.ParseFloatQuery(c, "min_price"),
		MaxPrice: handlershared.ParseFloatQuery(c, "max_price"),
		Sort:     c.Query("sort"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.stone_fetch_failed", err)
		return
	}
	items := make([]PublicStoneView, 0, len(stones))
	for _, st := range stones {
		items = append(items, toPublicStone(st))
	}
	response.SuccessWithPage(c, items, response.NewPagination(page, pageSize, total))
}

// GetStoneBySKU 石头详情
func (h *Handler) GetStoneBySKU(c *gin.Context) {
	stone, err := h.CatalogService.Detail(c.Request.Context(), c.Param("sku"))
	if err != nil {
		respondWithMappedError(c, err, []handlershared.MappedError{
			{Target: service.ErrStoneNotFound, Code: response.CodeNotFound, Key: "error.stone_not_found"},
		}, response.CodeInternal, "error.stone_fetch_failed")
		return
	}
	response.Success(c, toPublicStone(*stone))
}

// GetStoneSummary 各形状在售数量，首页入口使用
func (h *Handler) GetStoneSummary(c *gin.Context) {
	var cached []repository.ShapeCountRow
	if hit, err := cache.GetJSON(c.Request.Context(), shapeSummaryCacheKey, &cached); err == nil && hit {
		response.Success(c, cached)
		return
	}
	rows, err := h.CatalogService.ShapeSummary(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.stone_fetch_failed", err)
		return
	}
	_ = cache.SetJSON(c.Request.Context(), shapeSummaryCacheKey, rows, shapeSummaryCacheTTL)
	response.Success(c, rows)
}

// GetFilters 筛选项
func (h *Handler) GetFilters(c *gin.Context) {
	response.Success(c, h.CatalogService.Filters())
}

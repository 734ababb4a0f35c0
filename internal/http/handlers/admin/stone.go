package admin

import (
	handlershared "github.com/gemledger/internal/http/handlers/shared"
	"github.com/gemledger/internal/http/response"
	"github.com/gemledger/internal/service"

	"github.com/gin-gonic/gin"
)

// ListStones 后台石头列表
func (h *Handler) ListStones(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	stones, total, err := h.StoneService.List(c.Request.Context(), service.StoneAdminFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  c.Query("keyword"),
		Status:   c.Query("status"),
		Shape:    c.Query("shape"),
		Lab:      c.Query("lab"),
	})
	if err != nil {
		respondWithMappedError(c, err, stoneErrorRules, response.CodeInternal, "error.stone_fetch_failed")
		return
	}
	response.SuccessWithPage(c, stones, response.NewPagination(page, pageSize, total))
}

// GetStone 石头详情
func (h *Handler) GetStone(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	stone, err := h.StoneService.Get(c.Request.Context(), id)
	if err != nil {
		respondWithMappedError(c, err, stoneErrorRules, response.CodeInternal, "error.stone_fetch_failed")
		return
	}
	response.Success(c, stone)
}

// UpsertStone 手工录入，sku 已存在时覆盖
func (h *Handler) UpsertStone(c *gin.Context) {
	var req service.StoneInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	stone, err := h.StoneService.Upsert(c.Request.Context(), req)
	if err != nil {
		respondWithMappedError(c, err, stoneErrorRules, response.CodeInternal, "error.stone_save_failed")
		return
	}
	requestLog(c).Infow("admin_stone_saved", "stone_id", stone.ID, "sku", stone.SKU)
	response.Success(c, stone)
}

// UpdateStone 编辑石头
func (h *Handler) UpdateStone(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req service.StoneInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	stone, err := h.StoneService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondWithMappedError(c, err, stoneErrorRules, response.CodeInternal, "error.stone_save_failed")
		return
	}
	response.Success(c, stone)
}

// DeleteStone 删除石头
func (h *Handler) DeleteStone(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if err := h.StoneService.Delete(c.Request.Context(), id); err != nil {
		respondWithMappedError(c, err, stoneErrorRules, response.CodeInternal, "error.stone_delete_failed")
		return
	}
	requestLog(c).Infow("admin_stone_deleted", "stone_id", id)
	response.Success(c, nil)
}

type stoneStatusPayload struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStoneStatus 切换上架状态
func (h *Handler) UpdateStoneStatus(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req stoneStatusPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.StoneService.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		respondWithMappedError(c, err, stoneErrorRules, response.CodeInternal, "error.stone_save_failed")
		return
	}
	response.Success(c, nil)
}

type stonePriorityPayload struct {
	Priority *int `json:"priority" binding:"required"`
}

// UpdateStonePriority 调整排序
func (h *Handler) UpdateStonePriority(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req stonePriorityPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.StoneService.UpdatePriority(c.Request.Context(), id, *req.Priority); err != nil {
		respondWithMappedError(c, err, stoneErrorRules, response.CodeInternal, "error.stone_save_failed")
		return
	}
	response.Success(c, nil)
}

type photoPresignPayload struct {
	ContentType string `json:"content_type" binding:"required"`
}

// PresignStonePhoto 生成照片直传地址
func (h *Handler) PresignStonePhoto(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req photoPresignPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	upload, err := h.StoneService.PresignPhoto(c.Request.Context(), id, req.ContentType)
	if err != nil {
		respondWithMappedError(c, err, stoneErrorRules, response.CodeInternal, "error.presign_failed")
		return
	}
	response.Success(c, upload)
}

// GetDashboard 后台首页概览
func (h *Handler) GetDashboard(c *gin.Context) {
	overview, err := h.DashboardService.Overview(c.Request.Context(), c.Query("refresh") == "1")
	if err != nil {
		respondError(c, response.CodeInternal, "error.stone_fetch_failed", err)
		return
	}
	response.Success(c, overview)
}

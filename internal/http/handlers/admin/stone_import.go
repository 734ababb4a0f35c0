package admin

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/gemledger/internal/constants"
	handlershared "github.com/gemledger/internal/http/handlers/shared"
	"github.com/gemledger/internal/http/response"
	"github.com/gemledger/internal/i18n"
	"github.com/gemledger/internal/ingest"
	"github.com/gemledger/internal/repository"
	"github.com/gemledger/internal/service"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var importErrorRules = []handlershared.MappedError{
	{Target: service.ErrImportBusy, Code: response.CodeConflict, Key: "error.import_busy"},
	{Target: service.ErrImportProposalNotFound, Code: response.CodeNotFound, Key: "error.import_proposal_not_found"},
	{Target: service.ErrImportFileTooLarge, Code: response.CodeBadRequest, Key: "error.import_file_too_large"},
	{Target: service.ErrImportExtension, Code: response.CodeBadRequest, Key: "error.import_extension_invalid"},
	{Target: ingest.ErrInvalidDecision, Code: response.CodeBadRequest, Key: "error.import_decision_invalid"},
	{Target: ingest.ErrConflictUnresolved, Code: response.CodeConflict, Key: "error.import_cancelled"},
}

// respondImportError 映射导入错误；解析失败、缺少 sku 列与存储失败需要带上明细，
// 查询阶段失败时提示未写入
func respondImportError(c *gin.Context, err error) {
	locale := i18n.ResolveLocale(c)
	var mapping *ingest.MappingError
	if errors.As(err, &mapping) {
		detected := strings.Join(mapping.Headers, ", ")
		if detected == "" {
			detected = "-"
		}
		response.Error(c, response.CodeUnprocessable, i18n.Sprintf(locale, "error.import_mapping_missing", detected))
		return
	}
	var parse *ingest.ParseError
	if errors.As(err, &parse) {
		detail := parse.Reason
		if parse.Err != nil {
			detail += ": " + parse.Err.Error()
		}
		requestLog(c).Warnw("admin_import_parse_failed", "reason", parse.Reason, "error", err)
		response.Error(c, response.CodeBadRequest, i18n.Sprintf(locale, "error.import_parse_detail", detail))
		return
	}
	var storage *ingest.StorageError
	if errors.As(err, &storage) {
		key := "error.import_storage_failed"
		if ingest.NothingWritten(err) {
			key = "error.import_lookup_failed"
		}
		requestLog(c).Errorw("admin_import_storage_failed", "op", storage.Op, "nothing_written", ingest.NothingWritten(err), "error", err)
		response.Error(c, response.CodeInternal, i18n.Sprintf(locale, key, storage.Error()))
		return
	}
	respondWithMappedError(c, err, importErrorRules, response.CodeInternal, "error.internal")
}

// respondImportResult 待决时以 409 返回冲突摘要，前端据此弹出选择
func respondImportResult(c *gin.Context, result *service.ImportResult) {
	if result.Status == service.ImportStatusPending && result.Proposal != nil {
		msg := i18n.Sprintf(i18n.ResolveLocale(c), "error.import_conflict", len(result.Proposal.ConflictingSKUs))
		response.Conflict(c, msg, result)
		return
	}
	if result.Report != nil {
		requestLog(c).Infow("admin_import_finished",
			"status", result.Status,
			"batch_no", result.BatchNo,
			"summary", result.Report.Message,
		)
	}
	if result.Status == service.ImportStatusCompleted && result.Report != nil {
		response.SuccessWithMsg(c, i18n.Sprintf(i18n.ResolveLocale(c), "import.completed", result.Report.Message), result)
		return
	}
	response.Success(c, result)
}

// ImportStones 上传表格导入
func (h *Handler) ImportStones(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.import_file_required", nil)
		return
	}
	if err := h.ImportService.ValidateUpload(fileHeader.Filename, fileHeader.Size); err != nil {
		respondImportError(c, err)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.import_parse_failed", err)
		return
	}
	defer file.Close()

	result, err := h.ImportService.ImportFile(c.Request.Context(), service.ImportRequest{
		AdminID:  adminID,
		Source:   constants.ImportSourceUpload,
		Filename: fileHeader.Filename,
	}, file, fileHeader.Size)
	if err != nil {
		respondImportError(c, err)
		return
	}
	respondImportResult(c, result)
}

// ImportRowsRequest 前端已解析的表格
type ImportRowsRequest struct {
	Filename string          `json:"filename"`
	Headers  []string        `json:"headers" binding:"required"`
	Rows     [][]ingest.Cell `json:"rows"`
}

// ImportStoneRows 导入前端预解析的行
func (h *Handler) ImportStoneRows(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	var req ImportRowsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	result, err := h.ImportService.ImportRows(c.Request.Context(), service.ImportRequest{
		AdminID:  adminID,
		Source:   constants.ImportSourceRows,
		Filename: strings.TrimSpace(req.Filename),
	}, req.Headers, req.Rows)
	if err != nil {
		respondImportError(c, err)
		return
	}
	respondImportResult(c, result)
}

// GetPendingImport 当前管理员的待决导入
func (h *Handler) GetPendingImport(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	view, err := h.ImportService.Pending(c.Request.Context(), adminID)
	if err != nil {
		respondImportError(c, err)
		return
	}
	response.Success(c, view)
}

type resolveImportPayload struct {
	Decision string `json:"decision" binding:"required"`
}

// ResolveImport 提交冲突决定
func (h *Handler) ResolveImport(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	var req resolveImportPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.import_decision_invalid", err)
		return
	}
	result, err := h.ImportService.Resolve(c.Request.Context(), adminID, c.Param("id"), req.Decision)
	if err != nil {
		respondImportError(c, err)
		return
	}
	respondImportResult(c, result)
}

// CancelImport 放弃待决导入，不写入任何数据
func (h *Handler) CancelImport(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	result, err := h.ImportService.Cancel(c.Request.Context(), adminID, c.Param("id"))
	if err != nil {
		respondImportError(c, err)
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "error.import_cancelled"), result)
}

// DownloadImportTemplate 下载导入模板
func (h *Handler) DownloadImportTemplate(c *gin.Context) {
	var buf bytes.Buffer
	if err := ingest.WriteTemplate(&buf); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="stone-import-template.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ListImportBatches 导入历史
func (h *Handler) ListImportBatches(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	filter := repository.ImportBatchListFilter{
		Page:     page,
		PageSize: pageSize,
		Outcome:  strings.TrimSpace(c.Query("outcome")),
	}
	if id, ok := handlershared.ParseUintQuery(c, "admin_id"); ok {
		filter.AdminID = id
	}
	batches, total, err := h.ImportService.ListBatches(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.import_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, batches, response.NewPagination(page, pageSize, total))
}

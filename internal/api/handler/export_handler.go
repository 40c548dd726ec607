package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/RoySegal1/Calander-V1/internal/dto"
	"github.com/RoySegal1/Calander-V1/internal/service"
	"github.com/RoySegal1/Calander-V1/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportXLSX 导出 Excel 周课表
// POST /api/v1/export/xlsx
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	var req dto.ExportRequest
	if !bindJSON(c, &req, 24001) {
		return
	}

	buf, filename, err := h.exportSvc.ExportXLSX(c.Request.Context(), &req)
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	response.Attachment(c, filename, contentTypeXLSX, buf.Bytes())
}

// ExportICS 导出 iCalendar
// POST /api/v1/export/ics
func (h *ExportHandler) ExportICS(c *gin.Context) {
	var req dto.ExportRequest
	if !bindJSON(c, &req, 24001) {
		return
	}

	body, filename, err := h.exportSvc.ExportICS(c.Request.Context(), &req)
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	response.Attachment(c, filename, contentTypeICS, body)
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportEmptySelection):
		response.BadRequest(c, 24101, "没有可导出的课组")
	case errors.Is(err, service.ErrExportInvalidDate):
		response.BadRequest(c, 24102, "开始日期格式无效")
	case errors.Is(err, service.ErrCatalogDepartmentNotFound):
		response.NotFound(c, 21101, "院系不存在")
	case errors.Is(err, service.ErrCatalogDepartmentInvalid):
		response.BadRequest(c, 21102, "院系名称无效")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}

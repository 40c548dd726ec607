package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RoySegal1/Calander-V1/internal/dto"
	"github.com/RoySegal1/Calander-V1/internal/service"
	"github.com/RoySegal1/Calander-V1/pkg/response"
)

// PlannerHandler 排课 HTTP 处理器
type PlannerHandler struct {
	plannerSvc service.PlannerService
}

// NewPlannerHandler 创建 PlannerHandler
func NewPlannerHandler(plannerSvc service.PlannerService) *PlannerHandler {
	return &PlannerHandler{plannerSvc: plannerSvc}
}

// Compose 恢复客户端状态、执行一个操作并返回新状态与布局。
// 时间冲突不视为失败：返回 200，conflict 字段说明被拒绝的原因。
// POST /api/v1/planner/compose
func (h *PlannerHandler) Compose(c *gin.Context) {
	var req dto.ComposeRequest
	if !bindJSON(c, &req, 22001) {
		return
	}

	result, err := h.plannerSvc.Compose(c.Request.Context(), &req)
	if err != nil {
		h.handlePlannerError(c, err)
		return
	}
	response.OK(c, result)
}

// Import 按分享码导入课表
// POST /api/v1/planner/import/:code
func (h *PlannerHandler) Import(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		response.BadRequest(c, 22001, "分享码不能为空")
		return
	}

	var req dto.ImportScheduleRequest
	if !bindJSON(c, &req, 22001) {
		return
	}

	result, err := h.plannerSvc.Import(c.Request.Context(), code, &req)
	if err != nil {
		h.handlePlannerError(c, err)
		return
	}
	response.OK(c, result)
}

// handlePlannerError 排课模块错误映射
func (h *PlannerHandler) handlePlannerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPlannerInvalidMode):
		response.BadRequest(c, 22101, "选课模式无效")
	case errors.Is(err, service.ErrPlannerUnknownAction):
		response.BadRequest(c, 22102, "未知的排课操作")
	case errors.Is(err, service.ErrPlannerCourseNotFound):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, 22103, "课程不在当前目录中", err.Error())
	case errors.Is(err, service.ErrPlannerGroupNotFound):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, 22104, "课组不属于该课程", err.Error())
	case errors.Is(err, service.ErrCatalogDepartmentNotFound):
		response.NotFound(c, 21101, "院系不存在")
	case errors.Is(err, service.ErrCatalogDepartmentInvalid):
		response.BadRequest(c, 21102, "院系名称无效")
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 23101, "课表不存在")
	default:
		response.InternalError(c)
	}
}

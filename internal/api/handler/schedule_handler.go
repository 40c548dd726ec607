package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/RoySegal1/Calander-V1/internal/dto"
	"github.com/RoySegal1/Calander-V1/internal/service"
	"github.com/RoySegal1/Calander-V1/pkg/response"
)

// ScheduleHandler 已保存课表 HTTP 处理器
type ScheduleHandler struct {
	scheduleSvc service.SavedScheduleService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.SavedScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// Save 保存当前课表
// POST /api/v1/schedules
func (h *ScheduleHandler) Save(c *gin.Context) {
	var req dto.SaveScheduleRequest
	if !bindJSON(c, &req, 23001) {
		return
	}

	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	result, err := h.scheduleSvc.Save(c.Request.Context(), studentID, &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.Created(c, result)
}

// ListMine 我的课表
// GET /api/v1/schedules/me
func (h *ScheduleHandler) ListMine(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	list, err := h.scheduleSvc.List(c.Request.Context(), studentID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// GetByShareCode 按分享码读取
// GET /api/v1/schedules/:code
func (h *ScheduleHandler) GetByShareCode(c *gin.Context) {
	result, err := h.scheduleSvc.GetByShareCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, result)
}

// Delete 删除自己的课表
// DELETE /api/v1/schedules/:code
func (h *ScheduleHandler) Delete(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	if err := h.scheduleSvc.Delete(c.Request.Context(), c.Param("code"), studentID); err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, nil)
}

// handleScheduleError 已保存课表错误映射
func (h *ScheduleHandler) handleScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 23101, "课表不存在")
	case errors.Is(err, service.ErrScheduleLimitReached):
		response.BadRequest(c, 23102, "最多只能保存 5 个课表")
	case errors.Is(err, service.ErrScheduleNotOwner):
		response.Forbidden(c, 23103, "只能删除自己的课表")
	case errors.Is(err, service.ErrScheduleInvalidData):
		response.BadRequest(c, 23104, "课表数据无效")
	default:
		response.InternalError(c)
	}
}

package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/RoySegal1/Calander-V1/internal/dto"
	"github.com/RoySegal1/Calander-V1/internal/service"
	"github.com/RoySegal1/Calander-V1/pkg/response"
)

// CatalogHandler 课程目录 HTTP 处理器
type CatalogHandler struct {
	catalogSvc service.CatalogService
}

// NewCatalogHandler 创建 CatalogHandler
func NewCatalogHandler(catalogSvc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

// ListCourses 查询院系课程
// GET /api/v1/catalog/courses?department=xxx&generalcourses=true&type=&semester=
func (h *CatalogHandler) ListCourses(c *gin.Context) {
	var req dto.ListCoursesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 21001, "department 不能为空")
		return
	}

	courses, err := h.catalogSvc.ListCourses(c.Request.Context(), &req)
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}

	response.OK(c, gin.H{"list": courses, "total": len(courses)})
}

// ListDepartments 院系列表
// GET /api/v1/catalog/departments
func (h *CatalogHandler) ListDepartments(c *gin.Context) {
	depts, err := h.catalogSvc.ListDepartments(c.Request.Context())
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}
	response.OK(c, gin.H{"list": depts})
}

// ImportDepartment 导入院系课程目录（管理员）
// PUT /api/v1/catalog/departments
func (h *CatalogHandler) ImportDepartment(c *gin.Context) {
	var req dto.ImportDepartmentRequest
	if !bindJSON(c, &req, 21001) {
		return
	}

	result, err := h.catalogSvc.ImportDepartment(c.Request.Context(), &req)
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}
	response.OK(c, result)
}

// handleCatalogError 目录模块错误映射
func (h *CatalogHandler) handleCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCatalogDepartmentNotFound):
		response.NotFound(c, 21101, "院系不存在")
	case errors.Is(err, service.ErrCatalogDepartmentInvalid):
		response.BadRequest(c, 21102, "院系名称无效")
	case errors.Is(err, service.ErrCatalogEmpty):
		response.BadRequest(c, 21103, "课程列表不能为空")
	default:
		response.InternalError(c)
	}
}

package dto

import "github.com/RoySegal1/Calander-V1/internal/model"

// ── 课程目录模块 DTO ──

// ListCoursesRequest 课程列表查询参数
type ListCoursesRequest struct {
	Department     string `form:"department"     binding:"required,max=255"`
	GeneralCourses *bool  `form:"generalcourses"` // 默认 true：附带通识院系课程
	CourseType     string `form:"type"           binding:"omitempty,max=255"`
	Semester       string `form:"semester"       binding:"omitempty,max=64"`
}

// IncludeGeneral 是否附带通识院系
func (r *ListCoursesRequest) IncludeGeneral() bool {
	return r.GeneralCourses == nil || *r.GeneralCourses
}

// DepartmentResponse 院系摘要
type DepartmentResponse struct {
	Name      string `json:"name"`
	IsGeneral bool   `json:"is_general"`
	UpdatedAt string `json:"updated_at"`
}

// ImportDepartmentRequest 导入/覆盖院系课程目录（管理员）
type ImportDepartmentRequest struct {
	DepartmentName string                `json:"department_name" binding:"required,max=255"`
	IsGeneral      bool                  `json:"is_general"`
	Courses        []model.CatalogCourse `json:"courses"         binding:"required"`
}

// SkippedGroup 导入时因数据违约被跳过的课组
type SkippedGroup struct {
	CourseCode string `json:"course_code"`
	GroupCode  string `json:"group_code"`
	Reason     string `json:"reason"`
}

// ImportDepartmentResponse 导入结果
type ImportDepartmentResponse struct {
	DepartmentName string         `json:"department_name"`
	Courses        int            `json:"courses"`
	Groups         int            `json:"groups"`
	Skipped        []SkippedGroup `json:"skipped,omitempty"`
}

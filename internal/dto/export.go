package dto

import "github.com/RoySegal1/Calander-V1/internal/planner"

// ── 导出模块 DTO ──

// ExportRequest 导出当前选课
type ExportRequest struct {
	CatalogScope
	SelectedCourses []string                `json:"selected_courses"` // 决定配色顺序，可省略
	Selection       []planner.EncodedCourse `json:"selection"  binding:"required,min=1"`
	Title           string                  `json:"title"      binding:"omitempty,max=100"`
	StartDate       string                  `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	Weeks           int                     `json:"weeks"      binding:"omitempty,min=1,max=30"`
}

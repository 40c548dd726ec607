package dto

import "github.com/RoySegal1/Calander-V1/internal/planner"

// ── 已保存课表模块 DTO ──

// SaveScheduleRequest 保存课表请求
type SaveScheduleRequest struct {
	ScheduleName string                  `json:"schedule_name" binding:"omitempty,max=255"`
	ScheduleData []planner.EncodedCourse `json:"schedule_data" binding:"required,min=1"`
}

// SavedScheduleResponse 已保存课表
type SavedScheduleResponse struct {
	ID           uint                    `json:"id"`
	StudentID    string                  `json:"student_id"`
	ScheduleName string                  `json:"schedule_name"`
	ScheduleData []planner.EncodedCourse `json:"schedule_data"`
	ShareCode    string                  `json:"share_code"`
	CreatedAt    string                  `json:"created_at"`
}

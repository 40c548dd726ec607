package dto

import "github.com/RoySegal1/Calander-V1/internal/planner"

// ── 排课模块 DTO ──

// 排课动作
const (
	ActionSelectCourse  = "select_course"
	ActionToggleSession = "toggle_session"
	ActionClear         = "clear"
	ActionSetMode       = "set_mode"
)

// CatalogScope 排课所依据的目录范围
type CatalogScope struct {
	Department     string `json:"department"      binding:"required,max=255"`
	GeneralCourses *bool  `json:"general_courses"`
}

// IncludeGeneral 是否附带通识院系
func (s CatalogScope) IncludeGeneral() bool {
	return s.GeneralCourses == nil || *s.GeneralCourses
}

// ComposeAction 一次用户操作
type ComposeAction struct {
	Type       string `json:"type"        binding:"required,oneof=select_course toggle_session clear set_mode"`
	CourseCode string `json:"course_code"`
	GroupCode  string `json:"group_code"`
	Mode       string `json:"mode"`
}

// ComposeRequest 排课请求：客户端当前状态 + 可选动作
type ComposeRequest struct {
	CatalogScope
	Mode            string                  `json:"mode"             binding:"omitempty,oneof=bundled free_form"`
	SelectedCourses []string                `json:"selected_courses"`
	Selection       []planner.EncodedCourse `json:"selection"`
	Action          *ComposeAction          `json:"action"`
	SelectedOnly    bool                    `json:"selected_only"`
}

// ImportScheduleRequest 按分享码导入课表
type ImportScheduleRequest struct {
	CatalogScope
	Mode         string `json:"mode"          binding:"omitempty,oneof=bundled free_form"`
	SelectedOnly bool   `json:"selected_only"`
}

// ColorResponse 课程配色
type ColorResponse struct {
	Name    string `json:"name"`
	Bg      string `json:"bg"`
	BgLight string `json:"bg_light"`
	Text    string `json:"text"`
	Hex     string `json:"hex"`
}

// BlockResponse 日历上的一个课组块
type BlockResponse struct {
	CourseCode  string  `json:"course_code"`
	CourseName  string  `json:"course_name"`
	GroupCode   string  `json:"group_code"`
	LectureType int     `json:"lecture_type"`
	Room        string  `json:"room"`
	Lecturer    string  `json:"lecturer"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	Selected    bool    `json:"selected"`
	ColumnIndex int     `json:"column_index"`
	ColumnCount int     `json:"column_count"`
	Left        float64 `json:"left"`
	Width       float64 `json:"width"`
	Top         float64 `json:"top"`
	Height      float64 `json:"height"`
}

// DayResponse 一天的布局
type DayResponse struct {
	Day    int             `json:"day"`
	Blocks []BlockResponse `json:"blocks"`
}

// ConflictItem 冲突明细
type ConflictItem struct {
	GroupCode  string `json:"group_code"`
	WithCourse string `json:"with_course"`
	WithGroup  string `json:"with_group"`
	Day        int    `json:"day"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
}

// ConflictNotice 被拒绝的操作（状态未改变）
type ConflictNotice struct {
	Message   string         `json:"message"`
	Conflicts []ConflictItem `json:"conflicts"`
}

// ComposeResponse 排课结果
type ComposeResponse struct {
	Mode            string                   `json:"mode"`
	SelectedCourses []string                 `json:"selected_courses"`
	Selection       []planner.EncodedCourse  `json:"selection"`
	Colors          map[string]ColorResponse `json:"colors"`
	Days            []DayResponse            `json:"days"`
	Conflict        *ConflictNotice          `json:"conflict,omitempty"`
	Dropped         *planner.DecodeReport    `json:"dropped,omitempty"`
}

package model

import (
	"database/sql/driver"
	"time"
)

// ScheduleEntry 一门课程及其已选课组编号
type ScheduleEntry struct {
	CourseCode string   `json:"courseCode"`
	Groups     []string `json:"groups"`
}

// ScheduleData saved_schedules.schedule_data 列（JSONB）
type ScheduleData []ScheduleEntry

// Scan 实现 sql.Scanner
func (d *ScheduleData) Scan(src interface{}) error {
	*d = nil
	return scanJSON(src, d, "ScheduleData")
}

// Value 实现 driver.Valuer
func (d ScheduleData) Value() (driver.Value, error) {
	if d == nil {
		return "[]", nil
	}
	return jsonValue(d)
}

// SavedSchedule 已保存课表，对应 saved_schedules
type SavedSchedule struct {
	ID           uint         `gorm:"primaryKey"                                        json:"id"`
	StudentID    string       `gorm:"type:varchar(64);not null;index"                   json:"student_id"`
	ScheduleName string       `gorm:"type:varchar(255);not null;default:'Unnamed Schedule'" json:"schedule_name"`
	ScheduleData ScheduleData `gorm:"type:jsonb;not null"                               json:"schedule_data"`
	ShareCode    string       `gorm:"type:varchar(32);not null;uniqueIndex"             json:"share_code"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"                json:"created_at"`
}

// TableName 指定表名
func (SavedSchedule) TableName() string { return "saved_schedules" }

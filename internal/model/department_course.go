package model

import (
	"database/sql/driver"
	"time"
)

// CatalogGroup 课组的目录格式
type CatalogGroup struct {
	GroupCode   string `json:"groupCode"`
	LectureType int    `json:"lectureType"` // 0 讲座 / 1 练习
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Room        string `json:"room"`
	Lecturer    string `json:"lecturer"`
	DayOfWeek   int    `json:"dayOfWeek"` // 0 = 周日 … 5 = 周五
}

// CatalogCourse 课程的目录格式
type CatalogCourse struct {
	CourseCode     string         `json:"courseCode"`
	RealCourseCode string         `json:"realCourseCode,omitempty"`
	CourseName     string         `json:"courseName"`
	Semester       string         `json:"semester"`
	CourseType     string         `json:"courseType"`
	Department     string         `json:"department"`
	Prerequisites  []string       `json:"prerequisites"`
	Groups         []CatalogGroup `json:"groups"`
}

// CatalogData department_courses.data 列（JSONB）
type CatalogData []CatalogCourse

// Scan 实现 sql.Scanner
func (d *CatalogData) Scan(src interface{}) error {
	*d = nil
	return scanJSON(src, d, "CatalogData")
}

// Value 实现 driver.Valuer
func (d CatalogData) Value() (driver.Value, error) {
	if d == nil {
		return "[]", nil
	}
	return jsonValue(d)
}

// DepartmentCourses 院系课程目录表，对应 department_courses
type DepartmentCourses struct {
	ID             uint        `gorm:"primaryKey"                            json:"id"`
	DepartmentName string      `gorm:"type:varchar(255);not null;uniqueIndex" json:"department_name"`
	IsGeneral      bool        `gorm:"not null;default:false"                json:"is_general"`
	Data           CatalogData `gorm:"type:jsonb;not null"                   json:"data"`
	UpdatedAt      time.Time   `gorm:"not null;default:CURRENT_TIMESTAMP"    json:"updated_at"`
}

// TableName 指定表名
func (DepartmentCourses) TableName() string { return "department_courses" }

package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	DepartmentCourse DepartmentCourseRepository
	SavedSchedule    SavedScheduleRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		DepartmentCourse: NewDepartmentCourseRepo(db),
		SavedSchedule:    NewSavedScheduleRepo(db),
	}
}

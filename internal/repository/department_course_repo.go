package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/RoySegal1/Calander-V1/internal/model"
	pkgerrors "github.com/RoySegal1/Calander-V1/pkg/errors"
)

// DepartmentCourseRepository 院系课程目录数据访问接口
type DepartmentCourseRepository interface {
	GetByName(ctx context.Context, name string) (*model.DepartmentCourses, error)
	ListByNames(ctx context.Context, names []string) ([]model.DepartmentCourses, error)
	// ListSummaries 仅返回院系名称与标记，不加载课程数据
	ListSummaries(ctx context.Context) ([]model.DepartmentCourses, error)
	Upsert(ctx context.Context, dept *model.DepartmentCourses) error
}

type departmentCourseRepo struct {
	db *gorm.DB
}

// NewDepartmentCourseRepo 创建 DepartmentCourseRepository 实例
func NewDepartmentCourseRepo(db *gorm.DB) DepartmentCourseRepository {
	return &departmentCourseRepo{db: db}
}

func (r *departmentCourseRepo) GetByName(ctx context.Context, name string) (*model.DepartmentCourses, error) {
	var dept model.DepartmentCourses
	err := r.db.WithContext(ctx).
		Where("department_name = ?", name).
		First(&dept).Error
	if err != nil {
		return nil, pkgerrors.Translate(err)
	}
	return &dept, nil
}

func (r *departmentCourseRepo) ListByNames(ctx context.Context, names []string) ([]model.DepartmentCourses, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var depts []model.DepartmentCourses
	err := r.db.WithContext(ctx).
		Where("department_name IN ?", names).
		Find(&depts).Error
	return depts, err
}

func (r *departmentCourseRepo) ListSummaries(ctx context.Context) ([]model.DepartmentCourses, error) {
	var depts []model.DepartmentCourses
	err := r.db.WithContext(ctx).
		Select("id", "department_name", "is_general", "updated_at").
		Order("is_general ASC, department_name ASC").
		Find(&depts).Error
	return depts, err
}

func (r *departmentCourseRepo) Upsert(ctx context.Context, dept *model.DepartmentCourses) error {
	dept.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "department_name"}},
			DoUpdates: clause.AssignmentColumns([]string{"is_general", "data", "updated_at"}),
		}).
		Create(dept).Error
}

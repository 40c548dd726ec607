package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/RoySegal1/Calander-V1/internal/model"
	pkgerrors "github.com/RoySegal1/Calander-V1/pkg/errors"
)

// SavedScheduleRepository 已保存课表数据访问接口
type SavedScheduleRepository interface {
	// CreateIfUnderLimit 学生课表数未达上限时写入，返回是否写入
	CreateIfUnderLimit(ctx context.Context, schedule *model.SavedSchedule, limit int) (bool, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.SavedSchedule, error)
	GetByShareCode(ctx context.Context, code string) (*model.SavedSchedule, error)
	DeleteByShareCode(ctx context.Context, code string) error
}

type savedScheduleRepo struct {
	db *gorm.DB
}

// NewSavedScheduleRepo 创建 SavedScheduleRepository 实例
func NewSavedScheduleRepo(db *gorm.DB) SavedScheduleRepository {
	return &savedScheduleRepo{db: db}
}

func (r *savedScheduleRepo) CreateIfUnderLimit(ctx context.Context, schedule *model.SavedSchedule, limit int) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 同一学生的并发保存串行化，避免计数与写入之间的竞争
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", schedule.StudentID).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&model.SavedSchedule{}).
			Where("student_id = ?", schedule.StudentID).
			Count(&count).Error; err != nil {
			return err
		}
		if count >= int64(limit) {
			return nil
		}

		if err := tx.Create(schedule).Error; err != nil {
			return pkgerrors.Translate(err)
		}
		created = true
		return nil
	})
	return created, err
}

func (r *savedScheduleRepo) ListByStudent(ctx context.Context, studentID string) ([]model.SavedSchedule, error) {
	var schedules []model.SavedSchedule
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&schedules).Error
	return schedules, err
}

func (r *savedScheduleRepo) GetByShareCode(ctx context.Context, code string) (*model.SavedSchedule, error) {
	var schedule model.SavedSchedule
	err := r.db.WithContext(ctx).
		Where("share_code = ?", code).
		First(&schedule).Error
	if err != nil {
		return nil, pkgerrors.Translate(err)
	}
	return &schedule, nil
}

func (r *savedScheduleRepo) DeleteByShareCode(ctx context.Context, code string) error {
	result := r.db.WithContext(ctx).
		Where("share_code = ?", code).
		Delete(&model.SavedSchedule{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrNotFound
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/RoySegal1/Calander-V1/config"
	"github.com/RoySegal1/Calander-V1/internal/dto"
	"github.com/RoySegal1/Calander-V1/internal/model"
	"github.com/RoySegal1/Calander-V1/internal/planner"
	"github.com/RoySegal1/Calander-V1/internal/repository"
	pkgerrors "github.com/RoySegal1/Calander-V1/pkg/errors"
)

// ── 已保存课表模块业务错误 ──

var (
	ErrScheduleNotFound     = errors.New("课表不存在")
	ErrScheduleLimitReached = errors.New("已达到可保存课表数量上限")
	ErrScheduleNotOwner     = errors.New("只能删除自己的课表")
	ErrScheduleInvalidData  = errors.New("课表数据无效")
)

// DefaultScheduleName 未命名课表的默认名称
const DefaultScheduleName = "Unnamed Schedule"

const shareCodeAttempts = 3

// SavedScheduleService 已保存课表业务接口
type SavedScheduleService interface {
	Save(ctx context.Context, studentID string, req *dto.SaveScheduleRequest) (*dto.SavedScheduleResponse, error)
	List(ctx context.Context, studentID string) ([]dto.SavedScheduleResponse, error)
	// GetByShareCode 任何已登录用户都可按分享码读取
	GetByShareCode(ctx context.Context, code string) (*dto.SavedScheduleResponse, error)
	// Delete 仅课表所有者可删除
	Delete(ctx context.Context, code, studentID string) error
}

type savedScheduleService struct {
	cfg    *config.ScheduleConfig
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSavedScheduleService 创建 SavedScheduleService 实例
func NewSavedScheduleService(cfg *config.ScheduleConfig, repo *repository.Repository, logger *zap.Logger) SavedScheduleService {
	return &savedScheduleService{cfg: cfg, repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// Save
// ═══════════════════════════════════════════════════════════

func (s *savedScheduleService) Save(ctx context.Context, studentID string, req *dto.SaveScheduleRequest) (*dto.SavedScheduleResponse, error) {
	data, err := toScheduleData(req.ScheduleData)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.ScheduleName)
	if name == "" {
		name = DefaultScheduleName
	}

	schedule := &model.SavedSchedule{
		StudentID:    studentID,
		ScheduleName: name,
		ScheduleData: data,
	}

	// 分享码冲突时重新生成
	for attempt := 1; ; attempt++ {
		schedule.ShareCode = newShareCode(s.cfg.ShareCodeLength)
		created, err := s.repo.SavedSchedule.CreateIfUnderLimit(ctx, schedule, s.cfg.MaxPerStudent)
		if errors.Is(err, pkgerrors.ErrDuplicate) && attempt < shareCodeAttempts {
			s.logger.Warn("分享码冲突，重新生成", zap.String("share_code", schedule.ShareCode))
			continue
		}
		if err != nil {
			s.logger.Error("保存课表失败", zap.String("student_id", studentID), zap.Error(err))
			return nil, err
		}
		if !created {
			return nil, ErrScheduleLimitReached
		}
		break
	}

	s.logger.Info("课表已保存",
		zap.String("student_id", studentID),
		zap.String("share_code", schedule.ShareCode),
		zap.Int("courses", len(data)),
	)
	resp := toSavedScheduleResponse(schedule)
	return &resp, nil
}

// toScheduleData 校验并转换：至少一门课程，课程编号非空，每门至少一个课组
func toScheduleData(entries []planner.EncodedCourse) (model.ScheduleData, error) {
	if len(entries) == 0 {
		return nil, ErrScheduleInvalidData
	}
	data := make(model.ScheduleData, 0, len(entries))
	for _, e := range entries {
		code := strings.TrimSpace(e.CourseID)
		if code == "" || len(e.SessionIDs) == 0 {
			return nil, ErrScheduleInvalidData
		}
		groups := make([]string, 0, len(e.SessionIDs))
		for _, g := range e.SessionIDs {
			if g = strings.TrimSpace(g); g != "" {
				groups = append(groups, g)
			}
		}
		if len(groups) == 0 {
			return nil, ErrScheduleInvalidData
		}
		data = append(data, model.ScheduleEntry{CourseCode: code, Groups: groups})
	}
	return data, nil
}

// newShareCode uuid 的前 n 个十六进制字符
func newShareCode(n int) string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	if n <= 0 || n > len(hex) {
		n = 8
	}
	return hex[:n]
}

// ═══════════════════════════════════════════════════════════
// 查询 / 删除
// ═══════════════════════════════════════════════════════════

func (s *savedScheduleService) List(ctx context.Context, studentID string) ([]dto.SavedScheduleResponse, error) {
	schedules, err := s.repo.SavedSchedule.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("查询课表列表失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}
	out := make([]dto.SavedScheduleResponse, 0, len(schedules))
	for i := range schedules {
		out = append(out, toSavedScheduleResponse(&schedules[i]))
	}
	return out, nil
}

func (s *savedScheduleService) GetByShareCode(ctx context.Context, code string) (*dto.SavedScheduleResponse, error) {
	schedule, err := s.repo.SavedSchedule.GetByShareCode(ctx, strings.TrimSpace(code))
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("查询课表失败", zap.String("share_code", code), zap.Error(err))
		return nil, err
	}
	resp := toSavedScheduleResponse(schedule)
	return &resp, nil
}

func (s *savedScheduleService) Delete(ctx context.Context, code, studentID string) error {
	schedule, err := s.repo.SavedSchedule.GetByShareCode(ctx, strings.TrimSpace(code))
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return ErrScheduleNotFound
		}
		return err
	}
	if schedule.StudentID != studentID {
		return ErrScheduleNotOwner
	}

	if err := s.repo.SavedSchedule.DeleteByShareCode(ctx, schedule.ShareCode); err != nil {
		if pkgerrors.IsNotFound(err) {
			return ErrScheduleNotFound
		}
		s.logger.Error("删除课表失败", zap.String("share_code", code), zap.Error(err))
		return err
	}
	s.logger.Info("课表已删除", zap.String("share_code", code), zap.String("student_id", studentID))
	return nil
}

// ── 辅助函数 ──

func toSavedScheduleResponse(m *model.SavedSchedule) dto.SavedScheduleResponse {
	return dto.SavedScheduleResponse{
		ID:           m.ID,
		StudentID:    m.StudentID,
		ScheduleName: m.ScheduleName,
		ScheduleData: toEncoded(m.ScheduleData),
		ShareCode:    m.ShareCode,
		CreatedAt:    m.CreatedAt.Format(time.RFC3339),
	}
}

func toEncoded(data model.ScheduleData) []planner.EncodedCourse {
	out := make([]planner.EncodedCourse, 0, len(data))
	for _, e := range data {
		out = append(out, planner.EncodedCourse{
			CourseID:   e.CourseCode,
			SessionIDs: append([]string(nil), e.Groups...),
		})
	}
	return out
}

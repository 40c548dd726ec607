package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/RoySegal1/Calander-V1/config"
	"github.com/RoySegal1/Calander-V1/internal/dto"
	"github.com/RoySegal1/Calander-V1/internal/planner"
)

// ── 排课模块业务错误 ──

var (
	ErrPlannerInvalidMode    = errors.New("选课模式无效")
	ErrPlannerUnknownAction  = errors.New("未知的排课操作")
	ErrPlannerCourseNotFound = errors.New("课程不在当前目录中")
	ErrPlannerGroupNotFound  = errors.New("课组不属于该课程")
)

// PlannerService 排课业务接口
//
// 服务端不保存任何学生的排课状态：每个请求携带客户端当前状态，
// 在本次请求内恢复为 planner.State，执行一个操作后返回新状态与布局。
type PlannerService interface {
	// Compose 恢复状态并执行可选操作；冲突不是错误，通过 Conflict 字段返回
	Compose(ctx context.Context, req *dto.ComposeRequest) (*dto.ComposeResponse, error)
	// Import 按分享码读取已保存课表并在当前目录下解码
	Import(ctx context.Context, code string, req *dto.ImportScheduleRequest) (*dto.ComposeResponse, error)
}

type plannerService struct {
	cfg       *config.PlannerConfig
	catalog   CatalogService
	schedules SavedScheduleService
	logger    *zap.Logger
}

// NewPlannerService 创建 PlannerService 实例
func NewPlannerService(cfg *config.PlannerConfig, catalog CatalogService, schedules SavedScheduleService, logger *zap.Logger) PlannerService {
	return &plannerService{cfg: cfg, catalog: catalog, schedules: schedules, logger: logger}
}

// LayoutConfigFrom 由配置生成布局参数
func LayoutConfigFrom(cfg *config.PlannerConfig) planner.LayoutConfig {
	layout := planner.DefaultLayoutConfig()
	layout.DayStart = planner.Clock(cfg.DayStartHour * 60)
	if cfg.PixelsPerMinute > 0 {
		layout.PixelsPerMinute = cfg.PixelsPerMinute
	}
	if cfg.UsableWidthPercent > 0 {
		layout.UsableWidth = cfg.UsableWidthPercent
	}
	layout.Margin = cfg.MarginPercent
	return layout
}

func (s *plannerService) parseMode(raw string) (planner.Mode, error) {
	m, err := planner.ParseMode(raw, planner.Mode(s.cfg.DefaultMode))
	if err != nil {
		return "", ErrPlannerInvalidMode
	}
	if m == "" {
		m = planner.ModeBundled
	}
	return m, nil
}

// ═══════════════════════════════════════════════════════════
// Compose
// ═══════════════════════════════════════════════════════════

func (s *plannerService) Compose(ctx context.Context, req *dto.ComposeRequest) (*dto.ComposeResponse, error) {
	mode, err := s.parseMode(req.Mode)
	if err != nil {
		return nil, err
	}

	cat, err := s.catalog.LoadCatalog(ctx, req.Department, req.IncludeGeneral())
	if err != nil {
		return nil, err
	}

	st, report := planner.Restore(req.SelectedCourses, req.Selection, cat, mode)
	if !report.Empty() {
		s.logger.Info("恢复排课状态时丢弃了无效引用",
			zap.Strings("courses", report.DroppedCourses),
			zap.Int("groups", len(report.DroppedSessions)),
		)
	}

	var notice *dto.ConflictNotice
	if req.Action != nil {
		notice, err = s.apply(st, cat, req.Action)
		if err != nil {
			return nil, err
		}
	}

	resp := s.render(st, cat, req.SelectedOnly, report)
	resp.Conflict = notice
	return resp, nil
}

// apply 执行一次操作；冲突时状态不变并返回提示
func (s *plannerService) apply(st *planner.State, cat *planner.Catalog, action *dto.ComposeAction) (*dto.ConflictNotice, error) {
	switch action.Type {
	case dto.ActionClear:
		st.Clear()
		return nil, nil

	case dto.ActionSetMode:
		m, err := planner.ParseMode(action.Mode, "")
		if err != nil || m == "" {
			return nil, ErrPlannerInvalidMode
		}
		st.SetMode(m)
		return nil, nil

	case dto.ActionSelectCourse:
		if _, ok := cat.Course(action.CourseCode); !ok {
			return nil, ErrPlannerCourseNotFound
		}
		st.SelectCourse(action.CourseCode)
		return nil, nil

	case dto.ActionToggleSession:
		course, ok := cat.Course(action.CourseCode)
		if !ok {
			return nil, ErrPlannerCourseNotFound
		}
		session, ok := course.SessionByCode(action.GroupCode)
		if !ok {
			return nil, ErrPlannerGroupNotFound
		}
		_, err := st.ToggleSession(course, session)
		var conflict *planner.ConflictError
		if errors.As(err, &conflict) {
			return toConflictNotice(conflict), nil
		}
		return nil, err

	default:
		return nil, fmt.Errorf("%w: %s", ErrPlannerUnknownAction, action.Type)
	}
}

// ═══════════════════════════════════════════════════════════
// Import
// ═══════════════════════════════════════════════════════════

func (s *plannerService) Import(ctx context.Context, code string, req *dto.ImportScheduleRequest) (*dto.ComposeResponse, error) {
	mode, err := s.parseMode(req.Mode)
	if err != nil {
		return nil, err
	}

	saved, err := s.schedules.GetByShareCode(ctx, code)
	if err != nil {
		return nil, err
	}

	cat, err := s.catalog.LoadCatalog(ctx, req.Department, req.IncludeGeneral())
	if err != nil {
		return nil, err
	}

	// 解码不做冲突校验：已保存的课表按原样信任
	st, report := planner.Decode(saved.ScheduleData, cat, mode)
	if !report.Empty() {
		s.logger.Info("导入课表时丢弃了目录中不存在的引用",
			zap.String("share_code", code),
			zap.Strings("courses", report.DroppedCourses),
			zap.Int("groups", len(report.DroppedSessions)),
		)
	}
	return s.render(st, cat, req.SelectedOnly, report), nil
}

// ── 渲染 ──

func (s *plannerService) render(st *planner.State, cat *planner.Catalog, selectedOnly bool, report planner.DecodeReport) *dto.ComposeResponse {
	order := st.SelectedCourseIDs()
	colors := planner.AssignColors(order, planner.DefaultPalette)

	resp := &dto.ComposeResponse{
		Mode:            string(st.Mode()),
		SelectedCourses: order,
		Selection:       planner.Encode(st),
		Colors:          make(map[string]dto.ColorResponse, len(colors)),
	}
	for id, c := range colors {
		resp.Colors[id] = toColorResponse(c)
	}

	week := LayoutConfigFrom(s.cfg).LayoutWeek(planner.BuildBlocks(st, cat, selectedOnly))
	resp.Days = make([]dto.DayResponse, 0, len(week))
	for _, day := range week {
		blocks := make([]dto.BlockResponse, 0, len(day.Blocks))
		for _, pb := range day.Blocks {
			blocks = append(blocks, toBlockResponse(pb, cat))
		}
		resp.Days = append(resp.Days, dto.DayResponse{Day: day.Day, Blocks: blocks})
	}

	if !report.Empty() {
		resp.Dropped = &report
	}
	return resp
}

func toColorResponse(c planner.Color) dto.ColorResponse {
	return dto.ColorResponse{
		Name:    c.Name,
		Bg:      c.Background(),
		BgLight: c.BackgroundLight(),
		Text:    c.Text(),
		Hex:     c.Hex(),
	}
}

func toBlockResponse(pb planner.PositionedBlock, cat *planner.Catalog) dto.BlockResponse {
	name := pb.CourseID
	if c, ok := cat.Course(pb.CourseID); ok {
		name = c.Name
	}
	s := pb.Session
	return dto.BlockResponse{
		CourseCode:  pb.CourseID,
		CourseName:  name,
		GroupCode:   s.ID.String(),
		LectureType: int(s.Kind),
		Room:        s.Room,
		Lecturer:    s.Instructor,
		StartTime:   s.Slot.Start.String(),
		EndTime:     s.Slot.End.String(),
		Selected:    pb.Selected,
		ColumnIndex: pb.ColumnIndex,
		ColumnCount: pb.ColumnCount,
		Left:        pb.Left,
		Width:       pb.Width,
		Top:         pb.Top,
		Height:      pb.Height,
	}
}

func toConflictNotice(ce *planner.ConflictError) *dto.ConflictNotice {
	notice := &dto.ConflictNotice{
		Message:   planner.ErrTimeConflict.Error(),
		Conflicts: make([]dto.ConflictItem, 0, len(ce.Conflicts)),
	}
	for _, c := range ce.Conflicts {
		notice.Conflicts = append(notice.Conflicts, dto.ConflictItem{
			GroupCode:  c.Candidate.ID.String(),
			WithCourse: c.CourseID,
			WithGroup:  c.With.ID.String(),
			Day:        c.With.Slot.Day,
			StartTime:  c.With.Slot.Start.String(),
			EndTime:    c.With.Slot.End.String(),
		})
	}
	return notice
}

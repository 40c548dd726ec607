package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/RoySegal1/Calander-V1/config"
	"github.com/RoySegal1/Calander-V1/internal/dto"
	"github.com/RoySegal1/Calander-V1/internal/model"
	"github.com/RoySegal1/Calander-V1/internal/planner"
	"github.com/RoySegal1/Calander-V1/internal/repository"
	pkgerrors "github.com/RoySegal1/Calander-V1/pkg/errors"
)

// ── 课程目录模块业务错误 ──

var (
	ErrCatalogDepartmentNotFound = errors.New("院系不存在")
	ErrCatalogDepartmentInvalid  = errors.New("院系名称无效")
	ErrCatalogEmpty              = errors.New("导入的课程列表为空")
)

const catalogCachePrefix = "catalog:"

// CatalogCache 目录缓存（由 pkg/redis.Client 实现）
type CatalogCache interface {
	GetJSON(ctx context.Context, key string, dst interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// CatalogService 课程目录业务接口
type CatalogService interface {
	// ListCourses 返回院系课程（按目录原始格式），可附带通识院系并按类型/学期过滤
	ListCourses(ctx context.Context, req *dto.ListCoursesRequest) ([]model.CatalogCourse, error)
	// LoadCatalog 加载排课引擎使用的只读目录
	LoadCatalog(ctx context.Context, department string, includeGeneral bool) (*planner.Catalog, error)
	ListDepartments(ctx context.Context) ([]dto.DepartmentResponse, error)
	// ImportDepartment 覆盖院系课程数据并使缓存失效
	ImportDepartment(ctx context.Context, req *dto.ImportDepartmentRequest) (*dto.ImportDepartmentResponse, error)
}

type catalogService struct {
	cfg    *config.CatalogConfig
	repo   *repository.Repository
	cache  CatalogCache
	logger *zap.Logger
}

// NewCatalogService 创建 CatalogService 实例；cache 为 nil 时直接读库
func NewCatalogService(cfg *config.CatalogConfig, repo *repository.Repository, cache CatalogCache, logger *zap.Logger) CatalogService {
	return &catalogService{cfg: cfg, repo: repo, cache: cache, logger: logger}
}

// NormalizeDepartment 院系名称统一为 NFC 并去除首尾空白，用作缓存与数据库键
func NormalizeDepartment(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// ═══════════════════════════════════════════════════════════
// ListCourses
// ═══════════════════════════════════════════════════════════

func (s *catalogService) ListCourses(ctx context.Context, req *dto.ListCoursesRequest) ([]model.CatalogCourse, error) {
	courses, err := s.collect(ctx, req.Department, req.IncludeGeneral())
	if err != nil {
		return nil, err
	}
	if req.CourseType == "" && req.Semester == "" {
		return courses, nil
	}

	courseType := NormalizeDepartment(req.CourseType)
	semester := strings.TrimSpace(req.Semester)
	filtered := make([]model.CatalogCourse, 0, len(courses))
	for _, c := range courses {
		if courseType != "" && NormalizeDepartment(c.CourseType) != courseType {
			continue
		}
		if semester != "" && strings.TrimSpace(c.Semester) != semester {
			continue
		}
		filtered = append(filtered, c)
	}
	return filtered, nil
}

// ═══════════════════════════════════════════════════════════
// LoadCatalog
// ═══════════════════════════════════════════════════════════

func (s *catalogService) LoadCatalog(ctx context.Context, department string, includeGeneral bool) (*planner.Catalog, error) {
	raw, err := s.collect(ctx, department, includeGeneral)
	if err != nil {
		return nil, err
	}

	cat, skipped := CatalogFromCourses(raw)
	for _, sk := range skipped {
		s.logger.Warn("目录课组数据无效，已跳过",
			zap.String("course_code", sk.CourseCode),
			zap.String("group_code", sk.GroupCode),
			zap.String("reason", sk.Reason),
		)
	}
	s.logger.Debug("目录已加载",
		zap.String("department", NormalizeDepartment(department)),
		zap.Int("courses", cat.Len()),
		zap.Int("skipped", len(skipped)),
	)
	return cat, nil
}

// collect 读取院系课程，并按配置顺序追加通识院系课程（通识院系缺失时忽略）
func (s *catalogService) collect(ctx context.Context, department string, includeGeneral bool) ([]model.CatalogCourse, error) {
	name := NormalizeDepartment(department)
	if name == "" {
		return nil, ErrCatalogDepartmentInvalid
	}

	courses, err := s.departmentCourses(ctx, name)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, ErrCatalogDepartmentNotFound
		}
		return nil, err
	}
	combined := append([]model.CatalogCourse(nil), courses...)

	if !includeGeneral {
		return combined, nil
	}
	for _, general := range s.cfg.GeneralDepartments {
		g := NormalizeDepartment(general)
		if g == name {
			continue
		}
		extra, err := s.departmentCourses(ctx, g)
		if err != nil {
			if pkgerrors.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		combined = append(combined, extra...)
	}
	return combined, nil
}

// departmentCourses 先查缓存，未命中再查库并回填；缓存故障降级为直接读库
func (s *catalogService) departmentCourses(ctx context.Context, name string) ([]model.CatalogCourse, error) {
	key := catalogCachePrefix + name

	if s.cache != nil {
		var cached model.CatalogData
		hit, err := s.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			s.logger.Warn("读取目录缓存失败", zap.String("key", key), zap.Error(err))
		} else if hit {
			return cached, nil
		}
	}

	dept, err := s.repo.DepartmentCourse.GetByName(ctx, name)
	if err != nil {
		if !pkgerrors.IsNotFound(err) {
			s.logger.Error("查询院系课程失败", zap.String("department", name), zap.Error(err))
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, dept.Data, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("写入目录缓存失败", zap.String("key", key), zap.Error(err))
		}
	}
	return dept.Data, nil
}

// ═══════════════════════════════════════════════════════════
// ListDepartments
// ═══════════════════════════════════════════════════════════

func (s *catalogService) ListDepartments(ctx context.Context) ([]dto.DepartmentResponse, error) {
	depts, err := s.repo.DepartmentCourse.ListSummaries(ctx)
	if err != nil {
		s.logger.Error("查询院系列表失败", zap.Error(err))
		return nil, err
	}
	out := make([]dto.DepartmentResponse, 0, len(depts))
	for _, d := range depts {
		out = append(out, dto.DepartmentResponse{
			Name:      d.DepartmentName,
			IsGeneral: d.IsGeneral,
			UpdatedAt: d.UpdatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

// ═══════════════════════════════════════════════════════════
// ImportDepartment
// ═══════════════════════════════════════════════════════════

func (s *catalogService) ImportDepartment(ctx context.Context, req *dto.ImportDepartmentRequest) (*dto.ImportDepartmentResponse, error) {
	name := NormalizeDepartment(req.DepartmentName)
	if name == "" {
		return nil, ErrCatalogDepartmentInvalid
	}
	if len(req.Courses) == 0 {
		return nil, ErrCatalogEmpty
	}

	// 原样存储，违约课组只在报告中列出，加载时跳过
	_, skipped := toPlannerCourses(req.Courses)
	groups := 0
	for _, c := range req.Courses {
		groups += len(c.Groups)
	}

	dept := &model.DepartmentCourses{
		DepartmentName: name,
		IsGeneral:      req.IsGeneral,
		Data:           model.CatalogData(req.Courses),
	}
	if err := s.repo.DepartmentCourse.Upsert(ctx, dept); err != nil {
		s.logger.Error("写入院系课程失败", zap.String("department", name), zap.Error(err))
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Del(ctx, catalogCachePrefix+name); err != nil {
			s.logger.Warn("清除目录缓存失败", zap.String("department", name), zap.Error(err))
		}
	}

	s.logger.Info("院系课程已导入",
		zap.String("department", name),
		zap.Int("courses", len(req.Courses)),
		zap.Int("groups", groups),
		zap.Int("skipped", len(skipped)),
	)

	return &dto.ImportDepartmentResponse{
		DepartmentName: name,
		Courses:        len(req.Courses),
		Groups:         groups,
		Skipped:        skipped,
	}, nil
}

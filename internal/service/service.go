package service

import (
	"go.uber.org/zap"

	"github.com/RoySegal1/Calander-V1/config"
	"github.com/RoySegal1/Calander-V1/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Catalog       CatalogService
	SavedSchedule SavedScheduleService
	Planner       PlannerService
	Export        ExportService
}

// NewService 创建 Service 聚合；cache 可为 nil（无 Redis 时直接读库）
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	cache CatalogCache,
	logger *zap.Logger,
) *Service {
	catalog := NewCatalogService(&cfg.Catalog, repo, cache, logger)
	schedules := NewSavedScheduleService(&cfg.Schedule, repo, logger)
	return &Service{
		Catalog:       catalog,
		SavedSchedule: schedules,
		Planner:       NewPlannerService(&cfg.Planner, catalog, schedules, logger),
		Export:        NewExportService(&cfg.Planner, catalog, logger),
	}
}

package handler

import "github.com/RoySegal1/Calander-V1/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Catalog  *CatalogHandler
	Planner  *PlannerHandler
	Schedule *ScheduleHandler
	Export   *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Catalog:  NewCatalogHandler(svc.Catalog),
		Planner:  NewPlannerHandler(svc.Planner),
		Schedule: NewScheduleHandler(svc.SavedSchedule),
		Export:   NewExportHandler(svc.Export),
	}
}

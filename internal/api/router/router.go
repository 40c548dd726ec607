package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/RoySegal1/Calander-V1/config"
	"github.com/RoySegal1/Calander-V1/internal/api/handler"
	"github.com/RoySegal1/Calander-V1/internal/api/middleware"
	"github.com/RoySegal1/Calander-V1/pkg/jwt"
	"github.com/RoySegal1/Calander-V1/pkg/redis"
)

const maxBodyBytes = 2 << 20

// Setup 初始化并返回 Gin 路由引擎；rdb 为 nil 时限流退化为进程内令牌桶
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", health(rdb))

	var limiter middleware.RateChecker
	if rdb != nil {
		limiter = rdb
	}
	saveLimit := middleware.RateLimit(limiter, cfg.RateLimit.SavePerMinute, time.Minute)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", health(rdb))

		// 课程目录（无需认证）
		catalog := v1.Group("/catalog")
		{
			catalog.GET("/departments", h.Catalog.ListDepartments)
			catalog.GET("/courses", h.Catalog.ListCourses)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr))
		{
			authorized.PUT("/catalog/departments", middleware.RoleAuth(jwt.RoleAdmin), h.Catalog.ImportDepartment)

			// 排课
			planner := authorized.Group("/planner")
			{
				planner.POST("/compose", h.Planner.Compose)
				planner.POST("/import/:code", h.Planner.Import)
			}

			// 已保存课表
			schedules := authorized.Group("/schedules")
			{
				schedules.POST("", saveLimit, h.Schedule.Save)
				schedules.GET("/me", h.Schedule.ListMine)
				schedules.GET("/:code", h.Schedule.GetByShareCode)
				schedules.DELETE("/:code", h.Schedule.Delete)
			}

			// 导出
			export := authorized.Group("/export")
			{
				export.POST("/xlsx", h.Export.ExportXLSX)
				export.POST("/ics", h.Export.ExportICS)
			}
		}
	}

	return r
}

// health Redis 不可用不影响服务，只在响应中标注
func health(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := gin.H{"status": "ok", "redis": "disabled"}
		if rdb != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
			defer cancel()
			if err := rdb.Ping(ctx); err != nil {
				status["redis"] = "unavailable"
			} else {
				status["redis"] = "ok"
			}
		}
		c.JSON(http.StatusOK, status)
	}
}

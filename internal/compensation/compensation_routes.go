package compensation

import (
	"rahalatek/internal/middleware"
	"rahalatek/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	comp := r.Group("/compensation/:userId")
	comp.Use(middleware.AuthMiddleware())
	{
		comp.GET("/timeline",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, "compensation", "read"),
			handler.Timeline,
		)
		comp.GET("/months",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, "compensation", "read"),
			handler.MonthOptions,
		)
		comp.GET("/scheduled-change",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, "compensation", "read"),
			handler.DetectScheduledChange,
		)
		comp.PUT("/salary",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "compensation", "update"),
			middleware.Idempotency(rdb),
			handler.UpsertSalary,
		)
		comp.PUT("/bonus",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "compensation", "update"),
			middleware.Idempotency(rdb),
			handler.UpsertBonus,
		)
		comp.POST("/schedule",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "compensation", "update"),
			middleware.Idempotency(rdb),
			handler.ScheduleNextCycle,
		)
		comp.DELETE("/salary/:year/:month",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "compensation", "update"),
			handler.DeleteSalary,
		)
		comp.DELETE("/bonus/:year/:month",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "compensation", "update"),
			handler.DeleteBonus,
		)
	}
}

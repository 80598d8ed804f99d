package debt

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
	debts := r.Group("/debts")
	debts.Use(middleware.AuthMiddleware())
	{
		debts.GET("",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, "debt", "read"),
			handler.GetAll,
		)
		debts.GET("/:id",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, "debt", "read"),
			handler.GetById,
		)
		debts.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "debt", "update"),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		debts.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "debt", "update"),
			middleware.Idempotency(rdb),
			handler.Update,
		)
		debts.POST("/:id/close",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "debt", "update"),
			middleware.Idempotency(rdb),
			handler.Close,
		)
		debts.POST("/:id/reopen",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "debt", "update"),
			middleware.Idempotency(rdb),
			handler.Reopen,
		)
		debts.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "debt", "update"),
			handler.Delete,
		)
	}
}

package voucher

import (
	"rahalatek/internal/middleware"
	"rahalatek/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	vouchers := r.Group("/vouchers")
	vouchers.Use(middleware.AuthMiddleware())
	{
		vouchers.GET("",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, "voucher", "read"),
			handler.GetAll,
		)
		vouchers.GET("/:id",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, "voucher", "read"),
			handler.GetById,
		)
		vouchers.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "voucher", "update"),
			handler.Create,
		)
		vouchers.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "voucher", "update"),
			handler.Update,
		)
		vouchers.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "voucher", "update"),
			handler.Delete,
		)
	}
}

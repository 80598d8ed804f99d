package ledger

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
	reports := r.Group("/ledger")
	reports.Use(middleware.AuthMiddleware())
	{
		reports.GET("/suppliers",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "ledger", "read"),
			handler.SupplierLedger,
		)
		reports.GET("/clients",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "ledger", "read"),
			handler.ClientRevenue,
		)
	}
}

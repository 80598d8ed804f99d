package app

import (
	"database/sql"

	"rahalatek/internal/compensation"
	"rahalatek/internal/debt"
	"rahalatek/internal/ledger"
	"rahalatek/internal/messaging/kafka"
	"rahalatek/internal/middleware"
	"rahalatek/internal/payment"
	"rahalatek/internal/rbac"
	"rahalatek/internal/rbac/infra"
	"rahalatek/internal/shared/counter"
	"rahalatek/internal/staff"
	"rahalatek/internal/voucher"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	voucherRepo := voucher.NewRepository(gormDB)
	paymentRepo := payment.NewRepository(gormDB)
	debtRepo := debt.NewRepository(gormDB)
	compensationRepo := compensation.NewRepository(gormDB)
	staffRepo := staff.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	voucherService := voucher.NewServiceWithOutbox(db, voucherRepo, counterRepo, outboxRepo)
	paymentService := payment.NewService(db, paymentRepo)
	debtService := debt.NewServiceWithOutbox(db, debtRepo, outboxRepo)
	compensationService := compensation.NewServiceWithOutbox(db, compensationRepo, staffRepo, outboxRepo)
	ledgerService := ledger.NewService(voucherRepo, paymentRepo)

	// --- Handlers ---
	voucherHandler := voucher.NewHandler(voucherService)
	paymentHandler := payment.NewHandler(paymentService)
	debtHandler := debt.NewHandler(debtService)
	compensationHandler := compensation.NewHandler(compensationService)
	ledgerHandler := ledger.NewHandlerWithRedis(ledgerService, rdb)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes Registration ---
	router.Use(middleware.ContextLogger(zap.L()))

	api := router.Group("/api/v1")
	{
		voucher.RegisterRoutes(api, voucherHandler, rbacService)
		payment.RegisterRoutes(api, paymentHandler, rbacService)
		debt.RegisterRoutes(api, debtHandler, rbacService, rdb)
		compensation.RegisterRoutes(api, compensationHandler, rbacService, rdb)
		ledger.RegisterRoutes(api, ledgerHandler, rbacService)
		rbac.RegisterRoutes(api, rbacHandler, rbacService)
	}

	return nil
}

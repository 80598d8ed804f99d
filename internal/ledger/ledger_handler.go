package ledger

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"rahalatek/internal/shared/apperror"
	"rahalatek/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const reportCacheTTL = 5 * time.Minute

type Handler struct {
	service Service
	rdb     *redis.Client
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// NewHandlerWithRedis caches report responses; the voucher-changed consumer
// invalidates them.
func NewHandlerWithRedis(service Service, rdb *redis.Client) *Handler {
	return &Handler{service: service, rdb: rdb}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) SupplierLedger(c *gin.Context) {
	var req SupplierLedgerRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	cacheKey := reportCacheKey("supplier", req.Currency, req.Year, req.Month, req.Query)
	if h.tryCached(c, cacheKey) {
		return
	}

	resp, err := h.service.SupplierLedger(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	// Degraded reports (missing payment sources) are not worth caching.
	if len(resp.FailedSources) == 0 {
		h.storeCached(c, cacheKey, resp)
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ClientRevenue(c *gin.Context) {
	var req ClientRevenueRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	cacheKey := reportCacheKey("client", req.Currency, req.Year, req.Month, req.Query+":"+req.ClientType)
	if h.tryCached(c, cacheKey) {
		return
	}

	resp, err := h.service.ClientRevenue(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if len(resp.FailedSources) == 0 {
		h.storeCached(c, cacheKey, resp)
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func reportCacheKey(kind, currency string, year, month *int, extra string) string {
	y, m := -1, -1
	if year != nil {
		y = *year
	}
	if month != nil {
		m = *month
	}
	return fmt.Sprintf("ledger:%s:%s:%d:%d:%s", kind, currency, y, m, extra)
}

func (h *Handler) tryCached(c *gin.Context, key string) bool {
	if h.rdb == nil {
		return false
	}

	val, err := h.rdb.Get(c.Request.Context(), key).Result()
	if err != nil {
		return false
	}

	var cached json.RawMessage = []byte(val)
	response.Success(c, http.StatusOK, cached, nil)
	return true
}

func (h *Handler) storeCached(c *gin.Context, key string, payload any) {
	if h.rdb == nil {
		return
	}
	if data, err := json.Marshal(payload); err == nil {
		_ = h.rdb.Set(c.Request.Context(), key, data, reportCacheTTL).Err()
	}
}

package compensation

import (
	"net/http"
	"strconv"

	"rahalatek/internal/shared/apperror"
	"rahalatek/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) UpsertSalary(c *gin.Context) {
	var req UpsertSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.UpsertSalary(c.Request.Context(), c.Param("userId"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpsertBonus(c *gin.Context) {
	var req UpsertBonusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.UpsertBonus(c.Request.Context(), c.Param("userId"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ScheduleNextCycle(c *gin.Context) {
	var req ScheduleNextCycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.ScheduleNextCycle(c.Request.Context(), c.Param("userId"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) DetectScheduledChange(c *gin.Context) {
	resp, err := h.service.DetectScheduledChange(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	// resp is nil when no change is pending; the client treats null as
	// "nothing scheduled".
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DeleteSalary(c *gin.Context) {
	year, month, ok := h.bindMonthParams(c)
	if !ok {
		return
	}

	if err := h.service.DeleteSalary(c.Request.Context(), c.Param("userId"), year, month); err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) DeleteBonus(c *gin.Context) {
	year, month, ok := h.bindMonthParams(c)
	if !ok {
		return
	}

	if err := h.service.DeleteBonus(c.Request.Context(), c.Param("userId"), year, month); err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) Timeline(c *gin.Context) {
	resp, err := h.service.Timeline(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) MonthOptions(c *gin.Context) {
	resp, err := h.service.MonthOptions(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) bindMonthParams(c *gin.Context) (year, month int, ok bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		h.writeServiceError(c, apperror.InvalidField("year"))
		return 0, 0, false
	}
	month, err = strconv.Atoi(c.Param("month"))
	if err != nil {
		h.writeServiceError(c, apperror.InvalidField("month"))
		return 0, 0, false
	}
	return year, month, true
}

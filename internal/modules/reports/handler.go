package reports

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"gorent/internal/domain"
	"gorent/internal/middleware"
	"gorent/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	read := middleware.RequirePermission(domain.ActionReportsRead)
	rg.GET("/reports/revenue", read, h.Revenue)
	rg.GET("/reports/occupancy", read, h.Occupancy)
	rg.GET("/reports/roi", read, h.ROI)
	rg.GET("/reports/expenses", read, h.Expenses)
}

func (h *Handler) Revenue(c *gin.Context) {
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(time.Now().Year())))
	if err != nil || year < 2000 || year > 2100 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "year must be a valid calendar year")
		return
	}

	rows, err := h.service.MonthlyRevenue(c.Request.Context(), year)
	if err != nil {
		response.Internal(c, "Failed to build revenue report")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"year": year, "months": rows})
}

func (h *Handler) Occupancy(c *gin.Context) {
	from, to, ok := h.parsePeriod(c)
	if !ok {
		return
	}

	rows, err := h.service.Occupancy(c.Request.Context(), from, to)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"occupancy": rows})
}

func (h *Handler) ROI(c *gin.Context) {
	from, to, ok := h.parsePeriod(c)
	if !ok {
		return
	}

	rows, err := h.service.ROI(c.Request.Context(), from, to)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"roi": rows})
}

func (h *Handler) Expenses(c *gin.Context) {
	from, to, ok := h.parsePeriod(c)
	if !ok {
		return
	}

	rows, err := h.service.Expenses(c.Request.Context(), from, to)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"expenses": rows})
}

func (h *Handler) parsePeriod(c *gin.Context) (time.Time, time.Time, bool) {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "from must be RFC3339")
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "to must be RFC3339")
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch err {
	case ErrInvalidPeriod:
		response.Error(c, http.StatusBadRequest, "INVALID_RANGE", err.Error())
	default:
		response.Internal(c, "Report operation failed")
	}
}

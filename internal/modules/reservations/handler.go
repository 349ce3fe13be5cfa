package reservations

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
	rg.GET("/reservations", h.List)
	rg.GET("/reservations/:id", h.Get)
	rg.GET("/vehicles/:id/availability", h.CheckAvailability)

	write := middleware.RequirePermission(domain.ActionReservationsWrite)
	rg.POST("/reservations", write, h.Create)
	rg.PUT("/reservations/:id/status", write, h.UpdateStatus)
	rg.DELETE("/reservations/:id", write, h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Created(c, gin.H{"reservation": res})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid reservation ID")
		return
	}

	res, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": res})
}

func (h *Handler) List(c *gin.Context) {
	var filter domain.ReservationFilter

	if v := c.Query("vehicleId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid vehicleId filter")
			return
		}
		filter.VehicleID = &id
	}
	if v := c.Query("clientId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid clientId filter")
			return
		}
		filter.ClientID = &id
	}
	if v := c.Query("status"); v != "" {
		status := domain.ReservationStatus(v)
		filter.Status = &status
	}

	list, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Internal(c, "Failed to list reservations")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservations": list})
}

func (h *Handler) CheckAvailability(c *gin.Context) {
	vehicleID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid vehicle ID")
		return
	}

	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "start must be RFC3339")
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "end must be RFC3339")
		return
	}

	free, err := h.service.CheckAvailability(c.Request.Context(), vehicleID, start, end)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"available": free})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid reservation ID")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.UpdateStatus(c.Request.Context(), id, domain.ReservationStatus(req.Status))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": res})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid reservation ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch err {
	case ErrInvalidRange:
		response.Error(c, http.StatusBadRequest, "INVALID_RANGE", err.Error())
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case ErrUnavailable:
		response.Error(c, http.StatusConflict, "UNAVAILABLE", err.Error())
	case ErrConcurrencyConflict:
		response.Error(c, http.StatusConflict, "CONCURRENCY_CONFLICT", err.Error())
	case ErrInvalidTransition:
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", err.Error())
	case ErrClientIneligible:
		response.Error(c, http.StatusUnprocessableEntity, "CLIENT_INELIGIBLE", err.Error())
	case ErrNotDeletable:
		response.Error(c, http.StatusConflict, "NOT_DELETABLE", err.Error())
	default:
		response.Internal(c, "Reservation operation failed")
	}
}

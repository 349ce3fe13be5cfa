package fleet

import (
	"net/http"
	"strconv"

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
	rg.GET("/vehicles", h.List)
	rg.GET("/vehicles/:id", h.Get)

	write := middleware.RequirePermission(domain.ActionFleetWrite)
	rg.POST("/vehicles", write, h.Create)
	rg.PUT("/vehicles/:id", write, h.Update)
	rg.PUT("/vehicles/:id/status", write, h.UpdateStatus)
	rg.DELETE("/vehicles/:id", write, h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	var req VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	v, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Created(c, gin.H{"vehicle": v})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid vehicle ID")
		return
	}

	v, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"vehicle": v})
}

func (h *Handler) List(c *gin.Context) {
	var filter domain.VehicleFilter

	if v := c.Query("category"); v != "" {
		filter.Category = &v
	}
	if v := c.Query("transmission"); v != "" {
		t := domain.Transmission(v)
		filter.Transmission = &t
	}
	if v := c.Query("fuel"); v != "" {
		f := domain.FuelType(v)
		filter.Fuel = &f
	}
	if v := c.Query("status"); v != "" {
		s := domain.VehicleStatus(v)
		filter.Status = &s
	}

	list, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Internal(c, "Failed to list vehicles")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"vehicles": list})
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid vehicle ID")
		return
	}

	var req VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	v, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"vehicle": v})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid vehicle ID")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	v, err := h.service.UpdateStatus(c.Request.Context(), id, domain.VehicleStatus(req.Status), req.Mileage)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"vehicle": v})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid vehicle ID")
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
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case ErrInUse:
		response.Error(c, http.StatusConflict, "VEHICLE_IN_USE", err.Error())
	default:
		response.Internal(c, "Vehicle operation failed")
	}
}

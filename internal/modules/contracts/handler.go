package contracts

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
	rg.GET("/contracts", h.List)
	rg.GET("/contracts/:id", h.Get)

	write := middleware.RequirePermission(domain.ActionContractsWrite)
	rg.POST("/contracts", write, h.Create)
	rg.POST("/contracts/from-reservation", write, h.GenerateFromReservation)
	rg.PUT("/contracts/:id", write, h.Update)
	rg.PUT("/contracts/:id/status", write, h.UpdateStatus)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	contract, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Created(c, gin.H{"contract": contract})
}

func (h *Handler) GenerateFromReservation(c *gin.Context) {
	var req GenerateFromReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	contract, err := h.service.GenerateFromReservation(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Created(c, gin.H{"contract": contract})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid contract ID")
		return
	}

	contract, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"contract": contract})
}

func (h *Handler) List(c *gin.Context) {
	var filter domain.ContractFilter

	if v := c.Query("clientId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid clientId filter")
			return
		}
		filter.ClientID = &id
	}
	if v := c.Query("vehicleId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid vehicleId filter")
			return
		}
		filter.VehicleID = &id
	}
	if v := c.Query("status"); v != "" {
		status := domain.ContractStatus(v)
		filter.Status = &status
	}
	if v := c.Query("type"); v != "" {
		t := domain.ContractType(v)
		filter.Type = &t
	}

	list, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Internal(c, "Failed to list contracts")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"contracts": list})
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid contract ID")
		return
	}

	var req UpdateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	contract, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"contract": contract})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid contract ID")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	contract, err := h.service.UpdateStatus(c.Request.Context(), id, domain.ContractStatus(req.Status), req.Mileage)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"contract": contract})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch err {
	case ErrInvalidRange:
		response.Error(c, http.StatusBadRequest, "INVALID_RANGE", err.Error())
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case ErrMileageRequired:
		response.Error(c, http.StatusBadRequest, "MILEAGE_REQUIRED", err.Error())
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case ErrInvalidTransition:
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", err.Error())
	case ErrNotEditable:
		response.Error(c, http.StatusConflict, "NOT_EDITABLE", err.Error())
	case ErrClientIneligible:
		response.Error(c, http.StatusUnprocessableEntity, "CLIENT_INELIGIBLE", err.Error())
	default:
		response.Internal(c, "Contract operation failed")
	}
}

package invoices

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
	rg.GET("/invoices", h.List)
	rg.GET("/invoices/:id", h.Get)

	write := middleware.RequirePermission(domain.ActionInvoicesWrite)
	rg.POST("/invoices", write, h.Create)
	rg.POST("/invoices/:id/payments", write, h.RecordPayment)
	rg.POST("/invoices/:id/cancel", write, h.Cancel)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	inv, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Created(c, gin.H{"invoice": inv})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid invoice ID")
		return
	}

	inv, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"invoice": inv})
}

func (h *Handler) List(c *gin.Context) {
	var filter domain.InvoiceFilter

	if v := c.Query("clientId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid clientId filter")
			return
		}
		filter.ClientID = &id
	}
	if v := c.Query("contractId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid contractId filter")
			return
		}
		filter.ContractID = &id
	}
	if v := c.Query("status"); v != "" {
		status := domain.InvoiceStatus(v)
		filter.Status = &status
	}

	list, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Internal(c, "Failed to list invoices")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"invoices": list})
}

func (h *Handler) RecordPayment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid invoice ID")
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	inv, err := h.service.RecordPayment(c.Request.Context(), id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"invoice": inv})
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid invoice ID")
		return
	}

	inv, err := h.service.Cancel(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"invoice": inv})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch err {
	case ErrValidation, ErrNoItems, ErrInvalidPayment:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case ErrCancelled:
		response.Error(c, http.StatusConflict, "INVOICE_CANCELLED", err.Error())
	default:
		response.Internal(c, "Invoice operation failed")
	}
}

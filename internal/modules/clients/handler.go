package clients

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
	rg.GET("/clients", h.List)
	rg.GET("/clients/:id", h.Get)

	write := middleware.RequirePermission(domain.ActionClientsWrite)
	rg.POST("/clients", write, h.Create)
	rg.PUT("/clients/:id", write, h.Update)
	rg.DELETE("/clients/:id", write, h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	client, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Created(c, gin.H{"client": client})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid client ID")
		return
	}

	client, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"client": client})
}

func (h *Handler) List(c *gin.Context) {
	var status *domain.ClientStatus
	if v := c.Query("status"); v != "" {
		s := domain.ClientStatus(v)
		status = &s
	}

	list, err := h.service.List(c.Request.Context(), status)
	if err != nil {
		response.Internal(c, "Failed to list clients")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"clients": list})
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid client ID")
		return
	}

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	client, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"client": client})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid client ID")
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
	default:
		response.Internal(c, "Client operation failed")
	}
}

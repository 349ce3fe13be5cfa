package notifications

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"gorent/internal/pkg/response"

	jwtsvc "gorent/internal/pkg/jwt"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true }, // configure in prod
}

type Handler struct {
	service *Service
	jwt     *jwtsvc.Service
}

func NewHandler(service *Service, jwt *jwtsvc.Service) *Handler {
	return &Handler{service: service, jwt: jwt}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/notifications", h.List)
	rg.POST("/notifications/:id/read", h.MarkRead)
	rg.POST("/notifications/read-all", h.MarkAllRead)
}

// RegisterWS mounts the live feed outside the auth middleware; websocket
// clients cannot send headers, so the token travels as a query param.
func (h *Handler) RegisterWS(r *gin.Engine) {
	r.GET("/ws/notifications", h.HandleWebSocket)
}

func (h *Handler) List(c *gin.Context) {
	userID := c.GetInt64("user_id")

	unreadOnly := c.Query("unread") == "true"
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	list, err := h.service.ListForUser(c.Request.Context(), userID, unreadOnly, limit)
	if err != nil {
		response.Internal(c, "Failed to list notifications")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"notifications": list})
}

func (h *Handler) MarkRead(c *gin.Context) {
	userID := c.GetInt64("user_id")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid notification ID")
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), userID, id); err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Notification not found")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"read": true})
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	userID := c.GetInt64("user_id")

	if err := h.service.MarkAllRead(c.Request.Context(), userID); err != nil {
		response.Internal(c, "Failed to mark notifications read")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"read": true})
}

// HandleWebSocket upgrades the connection and parks it in the hub until
// the client goes away. Endpoint: GET /ws/notifications?token=JWT
func (h *Handler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is required. Use ?token=YOUR_JWT_TOKEN"})
		return
	}

	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}
	userID := claims.UserID

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("notifications: websocket upgrade failed: %v", err)
		return
	}

	h.service.hub.ServeWS(conn, userID)
}

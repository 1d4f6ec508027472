package session

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/solacehealth/solace/internal/auth"
)

// Handlers provides HTTP handlers for session lifecycle operations
type Handlers struct {
	service *Service
	logger  *zap.Logger
}

// NewHandlers creates new session handlers
func NewHandlers(service *Service, logger *zap.Logger) *Handlers {
	return &Handlers{
		service: service,
		logger:  logger,
	}
}

// Start handles POST /session/start
func (h *Handlers) Start(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	sessionID := h.service.Start(identity.UserID)

	c.JSON(http.StatusOK, gin.H{"sessionId": sessionID})
}

// End handles POST /session/end
func (h *Handlers) End(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req EndSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session ID is required"})
		return
	}

	if err := h.service.End(req.SessionID, identity.UserID); err != nil {
		switch {
		case IsNotFound(err):
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found or expired"})
		case IsForbidden(err):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		default:
			h.logger.Error("Session end error", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to end session"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session ended"})
}

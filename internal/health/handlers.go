package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/solacehealth/solace/internal/auth"
)

var validSources = map[string]bool{
	"watch":  true,
	"phone":  true,
	"manual": true,
}

// Handlers provides HTTP handlers for health ingestion
type Handlers struct {
	tracker *Tracker
	logger  *zap.Logger
}

// NewHandlers creates new health handlers
func NewHandlers(tracker *Tracker, logger *zap.Logger) *Handlers {
	return &Handlers{
		tracker: tracker,
		logger:  logger,
	}
}

// Ingest handles POST /health/ingest
func (h *Handlers) Ingest(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if !validSources[req.Source] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Source must be one of: watch, phone, manual"})
		return
	}

	signal := h.tracker.Ingest(identity.UserID, req.HeartRate)

	h.logger.Info("Health payload processed",
		zap.String("user_id", identity.UserID),
		zap.String("source", req.Source),
		zap.String("signal", string(signal)))

	c.JSON(http.StatusOK, gin.H{"signal": signal})
}

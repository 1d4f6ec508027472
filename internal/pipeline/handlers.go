package pipeline

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/solacehealth/solace/internal/auth"
	"github.com/solacehealth/solace/internal/session"
)

// RespondRequest is the body of a text submission
type RespondRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// Handlers provides HTTP handlers for pipeline submissions
type Handlers struct {
	orchestrator *Orchestrator
	maxAudioSize int64
	logger       *zap.Logger
}

// NewHandlers creates new pipeline handlers
func NewHandlers(orchestrator *Orchestrator, maxAudioSize int64, logger *zap.Logger) *Handlers {
	return &Handlers{
		orchestrator: orchestrator,
		maxAudioSize: maxAudioSize,
		logger:       logger,
	}
}

// Respond handles POST /ai/respond
func (h *Handlers) Respond(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}
	if req.SessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session ID is required"})
		return
	}

	result, err := h.orchestrator.ProcessText(c.Request.Context(), TextRequest{
		SessionID:    req.SessionID,
		CallerUserID: identity.UserID,
		Message:      req.Message,
	})
	if err != nil {
		h.writeError(c, err, "Failed to generate response")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"response":  result.Text,
		"risk_tier": result.Assessment.Tier,
	})
}

// Voice handles POST /voice/process
func (h *Handlers) Voice(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	sessionID := c.PostForm("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session ID is required"})
		return
	}

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Audio file is required"})
		return
	}
	if fileHeader.Size > h.maxAudioSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Audio file too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Audio file is required"})
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read audio file"})
		return
	}

	h.logger.Info("Voice processing started",
		zap.String("user_id", identity.UserID),
		zap.String("session_id", sessionID),
		zap.Int("file_size", len(audio)))

	result, err := h.orchestrator.ProcessVoice(c.Request.Context(), VoiceRequest{
		SessionID:    sessionID,
		CallerUserID: identity.UserID,
		Audio:        audio,
	})
	if err != nil {
		h.writeError(c, err, "Failed to process voice request")
		return
	}

	c.Data(http.StatusOK, "audio/wav", result.Audio)
}

// writeError maps pipeline failures to stable outward statuses: session
// resolution failures keep their not-found/forbidden distinction, stage
// failures carry the failing stage, and nothing leaks internal detail.
func (h *Handlers) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case session.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found or expired"})
	case session.IsForbidden(err):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	default:
		if stageErr, ok := AsStageError(err); ok {
			h.logger.Error("Pipeline stage failed",
				zap.String("stage", string(stageErr.Stage)),
				zap.Error(stageErr.Cause))
			c.JSON(http.StatusBadGateway, gin.H{
				"error": fallback,
				"stage": stageErr.Stage,
			})
			return
		}
		h.logger.Error("Pipeline error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

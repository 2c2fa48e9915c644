package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/shroudhq/shroud/internal/models"
	"github.com/shroudhq/shroud/internal/service"
)

type Handler struct {
	Orchestrator *service.Orchestrator
	Validator    *validator.Validate
	Logger       zerolog.Logger
	SilBase      string
}

// @Summary Health check
// @Produce json
// @Success 200 {object} map[string]any
// @Router /healthz [get]
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "silhouette": h.SilBase})
}

// @Summary Handle a webchat message
// @Description Classify the message and either call Silhouette or answer locally
// @Accept json
// @Produce json
// @Param message body models.ChatMessage true "chat message"
// @Success 200 {object} models.ChatReply
// @Failure 400 {object} map[string]any
// @Failure 502 {object} map[string]any
// @Router /integrations/webchat [post]
func (h *Handler) Webchat(c *gin.Context) {
	var msg models.ChatMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "malformed message body", err.Error())
		return
	}
	if err := h.Validator.Struct(msg); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "user_id and text are required", err.Error())
		return
	}

	reply, err := h.Orchestrator.Handle(c.Request.Context(), msg)
	if err != nil {
		h.Logger.Error().Err(err).
			Str("intent", string(reply.Intent.Intent)).
			Str("user_id", msg.UserID).
			Msg("silhouette call failed")
		writeError(c, http.StatusBadGateway, "UPSTREAM_ERROR", "Silhouette is unavailable right now", err.Error())
		return
	}

	c.JSON(http.StatusOK, reply)
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

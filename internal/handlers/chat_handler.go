package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/tadamikanko/route-chat-backend/internal/models"
	"github.com/tadamikanko/route-chat-backend/internal/services"
)

// ChatHandler handles HTTP requests for the travel chat pipeline
type ChatHandler struct {
	service *services.ChatService
	logger  *logrus.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(service *services.ChatService, logger *logrus.Logger) *ChatHandler {
	return &ChatHandler{
		service: service,
		logger:  logger,
	}
}

// Chat handles POST /api/v1/chat
// @Summary Answer a free-text travel question
// @Description Generates SQL for the question, runs it, and assembles a day-plan narrative
// @Tags Chat
// @Accept json
// @Produce json
// @Param chat body models.ChatRequest true "Travel question"
// @Success 200 {object} models.ChatResponse
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Router /api/v1/chat [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	var req models.ChatRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Warn("Invalid chat request - JSON parsing failed")
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request format",
			"error":   err.Error(),
		})
		return
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Question must not be empty",
		})
		return
	}

	response := h.service.Answer(c.Request.Context(), question)
	c.JSON(http.StatusOK, response)
}

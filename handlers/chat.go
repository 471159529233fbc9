package handlers

import (
	"net/http"

	"chatia/models"
	"chatia/services/chat"
	"chatia/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatHandler serves free-form conversation through the LLM.
type ChatHandler struct {
	Responder chat.Responder
}

func NewChatHandler(responder chat.Responder) *ChatHandler {
	return &ChatHandler{Responder: responder}
}

// Chat answers one message with the specialization prompt applied.
func (h *ChatHandler) Chat(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid chat request", err.Error())
		return
	}

	reply, err := h.Responder.Reply(c.Request.Context(), req.Message)
	if err != nil {
		logger.Error("chat completion failed", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Chat completion failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, models.ChatResponse{Reply: reply})
}

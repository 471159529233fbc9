package handlers

import (
	"net/http"

	"chatia/models"
	"chatia/services/assistant"
	"chatia/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AssistantHandler serves the slot-filling conversation endpoints.
type AssistantHandler struct {
	Svc assistant.Service
}

func NewAssistantHandler(svc assistant.Service) *AssistantHandler {
	return &AssistantHandler{Svc: svc}
}

// ChatIntent runs one stateless turn: the caller carries the conversation
// state and sends it back with every message.
func (h *AssistantHandler) ChatIntent(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.AssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid assistant request", err.Error())
		return
	}

	state := models.ConversationState{}
	if req.State != nil {
		state = *req.State
	}

	outcome, err := h.Svc.Turn(c.Request.Context(), req.Message, state)
	if err != nil {
		logger.Error("assistant turn failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Assistant turn failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, toAssistantResponse(outcome))
}

// Converse runs one turn against a server-held session, for clients that
// cannot carry state between requests.
func (h *AssistantHandler) Converse(c *gin.Context) {
	logger := utils.GetLogger()

	sessionID := c.Param("sessionID")
	if sessionID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing session ID", "")
		return
	}

	var req models.SessionTurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid assistant request", err.Error())
		return
	}

	outcome, err := h.Svc.SessionTurn(c.Request.Context(), sessionID, req.Message)
	if err != nil {
		logger.Error("session turn failed", zap.String("sessionID", sessionID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Assistant turn failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, toAssistantResponse(outcome))
}

func toAssistantResponse(outcome *assistant.TurnOutcome) models.AssistantResponse {
	return models.AssistantResponse{
		Intent:        outcome.Intent,
		Answer:        outcome.Answer,
		Reply:         outcome.Reply,
		MissingFields: outcome.MissingFields,
		Complete:      outcome.Complete,
		State:         outcome.State,
	}
}

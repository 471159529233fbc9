package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"chatia/models"
	"chatia/services/assistant"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAssistant struct {
	outcome *assistant.TurnOutcome
	err     error

	gotText      string
	gotState     models.ConversationState
	gotSessionID string
}

func (s *stubAssistant) Turn(ctx context.Context, userText string, state models.ConversationState) (*assistant.TurnOutcome, error) {
	s.gotText = userText
	s.gotState = state
	return s.outcome, s.err
}

func (s *stubAssistant) SessionTurn(ctx context.Context, sessionID, userText string) (*assistant.TurnOutcome, error) {
	s.gotSessionID = sessionID
	s.gotText = userText
	return s.outcome, s.err
}

func TestChatIntentReturnsTurnOutcome(t *testing.T) {
	gin.SetMode(gin.TestMode)
	stub := &stubAssistant{outcome: &assistant.TurnOutcome{
		Intent:        models.IntentReservation,
		Reply:         "Pour combien de personnes ?",
		MissingFields: []string{"party_size", "date", "time", "name", "contact"},
		State:         models.ConversationState{Intent: models.IntentReservation},
	}}
	h := NewAssistantHandler(stub)

	r := gin.New()
	r.POST("/chat-intent", h.ChatIntent)

	w := postJSON(t, r, "/chat-intent", models.AssistantRequest{Message: "Je veux réserver"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.AssistantResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.IntentReservation, resp.Intent)
	assert.Equal(t, "Pour combien de personnes ?", resp.Reply)
	assert.False(t, resp.Complete)
	assert.Equal(t, "party_size", resp.MissingFields[0])
	assert.Equal(t, "Je veux réserver", stub.gotText)
}

func TestChatIntentForwardsCallerState(t *testing.T) {
	gin.SetMode(gin.TestMode)
	stub := &stubAssistant{outcome: &assistant.TurnOutcome{Intent: models.IntentReservation, Reply: "ok"}}
	h := NewAssistantHandler(stub)

	r := gin.New()
	r.POST("/chat-intent", h.ChatIntent)

	state := models.ConversationState{
		Intent: models.IntentReservation,
		Slots:  models.Slots{PartySize: 4},
	}
	w := postJSON(t, r, "/chat-intent", models.AssistantRequest{Message: "le 14/09", State: &state})
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 4, stub.gotState.Slots.PartySize)
	assert.Equal(t, models.IntentReservation, stub.gotState.Intent)
}

func TestChatIntentRequiresMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewAssistantHandler(&stubAssistant{})

	r := gin.New()
	r.POST("/chat-intent", h.ChatIntent)

	w := postJSON(t, r, "/chat-intent", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConverseUsesSessionParam(t *testing.T) {
	gin.SetMode(gin.TestMode)
	stub := &stubAssistant{outcome: &assistant.TurnOutcome{Intent: models.IntentOrder, Reply: "Que souhaitez-vous commander ?"}}
	h := NewAssistantHandler(stub)

	r := gin.New()
	r.POST("/converse/:sessionID", h.Converse)

	w := postJSON(t, r, "/converse/call-42", models.SessionTurnRequest{Message: "je veux commander"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "call-42", stub.gotSessionID)
	assert.Equal(t, "je veux commander", stub.gotText)
}

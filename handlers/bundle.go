package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle aggregates all endpoint handlers for route registration.
type HandlerBundle struct {
	// Chat endpoints.
	ChatHandler       gin.HandlerFunc
	ChatIntentHandler gin.HandlerFunc
	ConverseHandler   gin.HandlerFunc

	// Structured notification endpoints.
	CreateOrderHandler       gin.HandlerFunc
	CreateReservationHandler gin.HandlerFunc

	// Voice endpoints.
	VoiceChatHandler gin.HandlerFunc
	SpeakHandler     gin.HandlerFunc

	// Twilio webhooks.
	TwilioVoiceHandler     gin.HandlerFunc
	TwilioRecordingHandler gin.HandlerFunc
}

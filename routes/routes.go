package routes

import (
	"net/http"
	"strings"
	"time"

	"chatia/config"
	"chatia/handlers"
	"chatia/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterChatRoutes registers the text assistant endpoints.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/chat", hb.ChatHandler)
	r.POST("/chat-intent", hb.ChatIntentHandler)
	r.POST("/converse/:sessionID", hb.ConverseHandler)
}

// RegisterNotifyRoutes registers the structured order and reservation endpoints.
func RegisterNotifyRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/order", hb.CreateOrderHandler)
	r.POST("/reservation", hb.CreateReservationHandler)
}

// RegisterVoiceRoutes registers the browser voice endpoints.
func RegisterVoiceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/voice-chat", hb.VoiceChatHandler)
	r.POST("/speak", hb.SpeakHandler)
}

// RegisterTwilioRoutes registers the phone-call webhooks.
func RegisterTwilioRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	twilioGroup := r.Group("/twilio")
	{
		twilioGroup.POST("/voice", hb.TwilioVoiceHandler)
		twilioGroup.POST("/handle-recording", hb.TwilioRecordingHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// allowedOrigins splits the comma-separated ALLOW_ORIGINS value.
func allowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(config.AppConfig.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return origins
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, publicDir string) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Static("/public", publicDir)

	RegisterChatRoutes(r, hb)
	RegisterNotifyRoutes(r, hb)
	RegisterVoiceRoutes(r, hb)
	RegisterTwilioRoutes(r, hb)
	RegisterHealthRoute(r)
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chatia/config"
	"chatia/handlers"
	"chatia/middleware"
	"chatia/routes"
	"chatia/services/assistant"
	"chatia/services/chat"
	"chatia/services/mailer"
	"chatia/services/nlu"
	"chatia/services/speech"
	"chatia/services/storage"
	"chatia/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitDialogCache()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// services.
	publicStore, err := storage.NewLocalPublicStore(config.AppConfig.PublicDir, config.AppConfig.PublicBaseURL)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize public store: %v", err)
	}

	smtpMailer := mailer.NewSMTPMailer(mailer.Config{
		Host:     config.AppConfig.SMTPHost,
		Port:     config.AppConfig.SMTPPort,
		Username: config.AppConfig.SMTPUser,
		Password: config.AppConfig.SMTPPass,
		StartTLS: config.AppConfig.SMTPStartTLS,
	}, logger)

	nluService := &nlu.DefaultService{
		InfoReply: config.AppConfig.InfoReply,
	}

	dialogTTL := time.Duration(config.AppConfig.DialogTTLMinutes) * time.Minute
	stateStore := assistant.NewRedisStateStore(utils.GetDialogCacheClient(), dialogTTL)

	assistantService := &assistant.DefaultAssistantService{
		NLU:         nluService,
		Store:       stateStore,
		Mailer:      smtpMailer,
		NotifyEmail: config.AppConfig.ClientNotificationEmail,
		Logger:      logger,
	}

	responder := chat.NewOpenAIClient(
		config.AppConfig.OpenAIAPIKey,
		config.AppConfig.OpenAIChatModel,
		config.AppConfig.SpecialPrompt,
	)

	transcriber := speech.NewWhisperTranscriber(config.AppConfig.OpenAIAPIKey)

	synthesizer, err := speech.NewSynthesizer(
		config.AppConfig.TTSProvider,
		config.AppConfig.AzureTTSKey,
		config.AppConfig.AzureTTSRegion,
		config.AppConfig.AzureTTSVoice,
		config.AppConfig.ElevenAPIKey,
		config.AppConfig.ElevenVoiceID,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize speech synthesis: %v", err)
	}

	// handlers.
	chatHandler := handlers.NewChatHandler(responder)
	assistantHandler := handlers.NewAssistantHandler(assistantService)
	notifyHandler := handlers.NewNotifyHandler(smtpMailer, config.AppConfig.ClientNotificationEmail)
	voiceHandler := handlers.NewVoiceHandler(transcriber, responder, synthesizer, publicStore)
	twilioHandler := handlers.NewTwilioHandler(transcriber, assistantService, synthesizer, publicStore)

	handlerBundle := &handlers.HandlerBundle{
		ChatHandler:       chatHandler.Chat,
		ChatIntentHandler: assistantHandler.ChatIntent,
		ConverseHandler:   assistantHandler.Converse,

		CreateOrderHandler:       notifyHandler.CreateOrder,
		CreateReservationHandler: notifyHandler.CreateReservation,

		VoiceChatHandler: voiceHandler.VoiceChat,
		SpeakHandler:     voiceHandler.Speak,

		TwilioVoiceHandler:     twilioHandler.Voice,
		TwilioRecordingHandler: twilioHandler.HandleRecording,
	}

	routes.RegisterRoutes(router, handlerBundle, publicStore.Dir())

	utils.StartHealthMonitor(utils.GetDialogCacheClient())

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

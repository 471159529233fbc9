package handlers

import (
	"io"
	"net/http"

	"chatia/models"
	"chatia/services/chat"
	"chatia/services/speech"
	"chatia/services/storage"
	"chatia/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxAudioUploadBytes caps voice uploads at 15 MB.
const maxAudioUploadBytes = 15 << 20

// VoiceHandler covers the browser voice round trip and direct text-to-speech.
type VoiceHandler struct {
	Transcriber speech.Transcriber
	Responder   chat.Responder
	Synthesizer speech.Synthesizer
	Store       storage.PublicStore
}

func NewVoiceHandler(tr speech.Transcriber, rsp chat.Responder, syn speech.Synthesizer, store storage.PublicStore) *VoiceHandler {
	return &VoiceHandler{Transcriber: tr, Responder: rsp, Synthesizer: syn, Store: store}
}

// VoiceChat transcribes an uploaded recording, answers it, and returns the
// reply both as text and as a fetchable MP3.
func (h *VoiceHandler) VoiceChat(c *gin.Context) {
	logger := utils.GetLogger()

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing audio upload", err.Error())
		return
	}
	if fileHeader.Size > maxAudioUploadBytes {
		utils.JSONError(c, http.StatusRequestEntityTooLarge, "Audio upload too large", "")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to read audio upload", err.Error())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to read audio upload", err.Error())
		return
	}

	ctx := c.Request.Context()

	userText, err := h.Transcriber.Transcribe(ctx, data, fileHeader.Filename)
	if err != nil {
		logger.Error("transcription failed", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Transcription failed", err.Error())
		return
	}

	botText, err := h.Responder.Reply(ctx, userText)
	if err != nil {
		logger.Error("chat reply failed", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Assistant reply failed", err.Error())
		return
	}

	audio, err := h.Synthesizer.Synthesize(ctx, botText)
	if err != nil {
		logger.Error("speech synthesis failed", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Speech synthesis failed", err.Error())
		return
	}

	audioURL, err := h.Store.Save(audio, ".mp3")
	if err != nil {
		logger.Error("failed to publish audio", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to store audio", err.Error())
		return
	}

	c.JSON(http.StatusOK, models.VoiceChatResponse{
		UserText: userText,
		BotText:  botText,
		AudioURL: audioURL,
	})
}

// Speak synthesizes arbitrary text and returns the MP3 URL.
func (h *VoiceHandler) Speak(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.SpeakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	audio, err := h.Synthesizer.Synthesize(c.Request.Context(), req.Text)
	if err != nil {
		logger.Error("speech synthesis failed", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Speech synthesis failed", err.Error())
		return
	}

	audioURL, err := h.Store.Save(audio, ".mp3")
	if err != nil {
		logger.Error("failed to publish audio", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to store audio", err.Error())
		return
	}

	c.JSON(http.StatusOK, models.SpeakResponse{AudioURL: audioURL})
}

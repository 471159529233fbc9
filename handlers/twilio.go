package handlers

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"

	"chatia/services/assistant"
	"chatia/services/speech"
	"chatia/services/storage"
	"chatia/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const twilioGreeting = "Bonjour, vous parlez avec l’assistant. Posez votre question après le bip, puis patientez."
const twilioFollowUp = "Vous pouvez poser une autre question après le bip, puis patienter."

// recordingClient fetches caller recordings from Twilio.
var recordingClient = &http.Client{Timeout: 180 * time.Second}

// twimlResponse is the subset of TwiML these webhooks emit.
type twimlResponse struct {
	XMLName xml.Name     `xml:"Response"`
	Play    string       `xml:"Play,omitempty"`
	Say     *twimlSay    `xml:"Say,omitempty"`
	Record  *twimlRecord `xml:"Record,omitempty"`
}

type twimlSay struct {
	Voice string `xml:"voice,attr"`
	Text  string `xml:",chardata"`
}

type twimlRecord struct {
	MaxLength int    `xml:"maxLength,attr"`
	PlayBeep  bool   `xml:"playBeep,attr"`
	Timeout   int    `xml:"timeout,attr"`
	Action    string `xml:"action,attr"`
}

// TwilioHandler bridges inbound phone calls to the assistant: each webhook
// turn plays a synthesized reply and records the caller's next utterance.
type TwilioHandler struct {
	Transcriber speech.Transcriber
	Assistant   assistant.Service
	Synthesizer speech.Synthesizer
	Store       storage.PublicStore
}

func NewTwilioHandler(tr speech.Transcriber, svc assistant.Service, syn speech.Synthesizer, store storage.PublicStore) *TwilioHandler {
	return &TwilioHandler{Transcriber: tr, Assistant: svc, Synthesizer: syn, Store: store}
}

// Voice answers a new call: greeting MP3 plus a record block for the first
// utterance.
func (h *TwilioHandler) Voice(c *gin.Context) {
	logger := utils.GetLogger()

	greetingURL, err := h.speakToURL(c.Request.Context(), twilioGreeting)
	if err != nil {
		logger.Error("failed to synthesize greeting", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Failed to synthesize greeting", err.Error())
		return
	}

	writeTwiML(c, twimlResponse{
		Play:   greetingURL,
		Record: defaultRecord(),
	})
}

// HandleRecording runs one call turn: fetch the recording, transcribe it, run
// a session turn keyed by the call SID, and speak the reply back.
func (h *TwilioHandler) HandleRecording(c *gin.Context) {
	logger := utils.GetLogger()

	recordingURL := c.PostForm("RecordingUrl")
	if recordingURL == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing RecordingUrl", "")
		return
	}
	callSid := c.PostForm("CallSid")
	if callSid == "" {
		callSid = uuid.New().String()
	}

	ctx := c.Request.Context()

	audio, err := fetchRecording(ctx, recordingURL)
	if err != nil {
		logger.Error("failed to fetch recording", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Failed to fetch recording", err.Error())
		return
	}

	userText, err := h.Transcriber.Transcribe(ctx, audio, "recording.mp3")
	if err != nil {
		logger.Error("transcription failed", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Transcription failed", err.Error())
		return
	}

	outcome, err := h.Assistant.SessionTurn(ctx, callSid, userText)
	if err != nil {
		logger.Error("assistant turn failed", zap.String("call_sid", callSid), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Assistant turn failed", err.Error())
		return
	}

	replyURL, err := h.speakToURL(ctx, outcome.Reply)
	if err != nil {
		logger.Error("failed to synthesize reply", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Failed to synthesize reply", err.Error())
		return
	}

	writeTwiML(c, twimlResponse{
		Play:   replyURL,
		Say:    &twimlSay{Voice: "alice", Text: twilioFollowUp},
		Record: defaultRecord(),
	})
}

// speakToURL synthesizes the text and publishes the MP3 where Twilio can
// fetch it.
func (h *TwilioHandler) speakToURL(ctx context.Context, text string) (string, error) {
	audio, err := h.Synthesizer.Synthesize(ctx, text)
	if err != nil {
		return "", err
	}
	return h.Store.Save(audio, ".mp3")
}

// fetchRecording downloads the caller audio as MP3.
func fetchRecording(ctx context.Context, recordingURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, recordingURL+".mp3", nil)
	if err != nil {
		return nil, fmt.Errorf("build recording request: %w", err)
	}
	resp, err := recordingClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch recording: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch recording: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func defaultRecord() *twimlRecord {
	return &twimlRecord{
		MaxLength: 30,
		PlayBeep:  true,
		Timeout:   3,
		Action:    "/twilio/handle-recording",
	}
}

func writeTwiML(c *gin.Context, resp twimlResponse) {
	body, err := xml.Marshal(resp)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to render TwiML", err.Error())
		return
	}
	c.Data(http.StatusOK, "text/xml; charset=utf-8", append([]byte(xml.Header), body...))
}

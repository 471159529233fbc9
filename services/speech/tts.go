package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Synthesizer renders text as MP3 audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Package-level HTTP client for speech provider calls.
var ttsHTTPClient = &http.Client{Timeout: 120 * time.Second}

const azureSSMLTemplate = `<speak version='1.0' xml:lang='fr-FR'>
  <voice name='%s'>%s</voice>
</speak>`

// AzureSynthesizer calls the Azure Cognitive Services TTS endpoint with an
// SSML payload.
type AzureSynthesizer struct {
	key    string
	region string
	voice  string
}

func NewAzureSynthesizer(key, region, voice string) *AzureSynthesizer {
	return &AzureSynthesizer{key: key, region: region, voice: voice}
}

func (a *AzureSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if a.key == "" {
		return nil, fmt.Errorf("azure tts key not configured")
	}

	url := fmt.Sprintf("https://%s.tts.speech.microsoft.com/cognitiveservices/v1", a.region)
	ssml := fmt.Sprintf(azureSSMLTemplate, a.voice, text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBufferString(ssml))
	if err != nil {
		return nil, fmt.Errorf("build azure tts request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", a.key)
	req.Header.Set("Content-Type", "application/ssml+xml")
	req.Header.Set("X-Microsoft-OutputFormat", "audio-24khz-48kbitrate-mono-mp3")
	req.Header.Set("User-Agent", "chatia")

	return doAudioRequest(req, "azure tts")
}

// ElevenLabsSynthesizer calls the ElevenLabs text-to-speech API.
type ElevenLabsSynthesizer struct {
	apiKey  string
	voiceID string
}

func NewElevenLabsSynthesizer(apiKey, voiceID string) *ElevenLabsSynthesizer {
	return &ElevenLabsSynthesizer{apiKey: apiKey, voiceID: voiceID}
}

func (e *ElevenLabsSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if e.apiKey == "" {
		return nil, fmt.Errorf("elevenlabs api key not configured")
	}

	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, fmt.Errorf("marshal elevenlabs payload: %w", err)
	}

	url := fmt.Sprintf("https://api.elevenlabs.io/v1/text-to-speech/%s", e.voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build elevenlabs request: %w", err)
	}
	req.Header.Set("xi-api-key", e.apiKey)
	req.Header.Set("accept", "audio/mpeg")
	req.Header.Set("Content-Type", "application/json")

	return doAudioRequest(req, "elevenlabs tts")
}

func doAudioRequest(req *http.Request, provider string) ([]byte, error) {
	resp, err := ttsHTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", provider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%s: status %d: %s", provider, resp.StatusCode, string(body))
	}
	return io.ReadAll(resp.Body)
}

// NewSynthesizer selects the provider by name ("azure" or "elevenlabs").
func NewSynthesizer(provider, azureKey, azureRegion, azureVoice, elevenKey, elevenVoiceID string) (Synthesizer, error) {
	switch provider {
	case "azure":
		return NewAzureSynthesizer(azureKey, azureRegion, azureVoice), nil
	case "elevenlabs":
		return NewElevenLabsSynthesizer(elevenKey, elevenVoiceID), nil
	default:
		return nil, fmt.Errorf("unknown TTS provider %q (expected azure or elevenlabs)", provider)
	}
}

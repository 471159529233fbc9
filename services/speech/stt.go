package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// ErrNoAPIKey is returned when transcription is requested without an OpenAI key.
var ErrNoAPIKey = errors.New("openai api key not configured for transcription")

// convertibleExtensions are the upload formats decoded to WAV before
// transcription. Anything else is assumed to already be WAV.
var convertibleExtensions = map[string]bool{
	".webm": true,
	".ogg":  true,
	".mp3":  true,
}

// Transcriber turns uploaded audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, data []byte, filename string) (string, error)
}

// WhisperTranscriber converts audio to mono 16 kHz WAV with ffmpeg and
// transcribes it with the OpenAI whisper-1 model.
type WhisperTranscriber struct {
	client openai.Client
	apiKey string
}

func NewWhisperTranscriber(apiKey string) *WhisperTranscriber {
	return &WhisperTranscriber{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		apiKey: apiKey,
	}
}

func (t *WhisperTranscriber) Transcribe(ctx context.Context, data []byte, filename string) (string, error) {
	if t.apiKey == "" {
		return "", ErrNoAPIKey
	}

	ext := strings.ToLower(filepath.Ext(filename))
	wav := data
	if convertibleExtensions[ext] {
		converted, err := convertToWav(data, ext)
		if err != nil {
			return "", err
		}
		wav = converted
	}

	resp, err := t.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		Model: openai.AudioModelWhisper1,
		File:  openai.File(bytes.NewReader(wav), "audio.wav", "audio/wav"),
	})
	if err != nil {
		return "", fmt.Errorf("whisper transcription: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}

// convertToWav shells out to ffmpeg to decode the input into mono 16 kHz
// 16-bit PCM WAV, the format whisper handles best.
func convertToWav(data []byte, ext string) ([]byte, error) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return nil, fmt.Errorf("ffmpeg not found in system PATH: %w", err)
	}

	inFile, err := os.CreateTemp("", "chatia-in-*"+ext)
	if err != nil {
		return nil, fmt.Errorf("create temp input: %w", err)
	}
	defer os.Remove(inFile.Name())
	if _, err := inFile.Write(data); err != nil {
		inFile.Close()
		return nil, fmt.Errorf("write temp input: %w", err)
	}
	inFile.Close()

	outPath := strings.TrimSuffix(inFile.Name(), ext) + ".wav"
	defer os.Remove(outPath)

	cmd := exec.Command("ffmpeg",
		"-y",
		"-i", inFile.Name(),
		"-acodec", "pcm_s16le",
		"-ac", "1",
		"-ar", "16000",
		outPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg conversion failed: %s", stderr.String())
	}

	return os.ReadFile(outPath)
}

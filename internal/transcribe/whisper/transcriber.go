package whisper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"kosh/internal/config"
	"kosh/internal/domain"
)

const apiURL = "https://api.openai.com/v1/audio/transcriptions"

// Transcriber implements port.Transcriber using the OpenAI audio
// transcription API. Language is fixed to English.
type Transcriber struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewTranscriber creates a Whisper-based transcriber from a provider config.
func NewTranscriber(cfg *config.AIProviderConfig) *Transcriber {
	return newTranscriber(cfg, apiURL)
}

// NewTranscriberWithEndpoint creates a transcriber pointing at a custom API endpoint (for testing).
func NewTranscriberWithEndpoint(cfg *config.AIProviderConfig, endpoint string) *Transcriber {
	return newTranscriber(cfg, endpoint)
}

func newTranscriber(cfg *config.AIProviderConfig, endpoint string) *Transcriber {
	model := cfg.Model
	if model == "" {
		model = "whisper-1"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Transcriber{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (t *Transcriber) Transcribe(ctx context.Context, audio []byte, contentType string) (string, error) {
	// Strip codec parameters, e.g. "audio/webm;codecs=opus".
	baseMime := strings.TrimSpace(strings.Split(contentType, ";")[0])
	ext, ok := domain.AllowedAudioTypes[baseMime]
	if !ok {
		ext = "webm"
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	filePart, err := mw.CreateFormFile("file", "voice."+ext)
	if err != nil {
		return "", fmt.Errorf("creating form file: %w", err)
	}
	if _, err := filePart.Write(audio); err != nil {
		return "", fmt.Errorf("writing audio bytes: %w", err)
	}
	if err := mw.WriteField("model", t.model); err != nil {
		return "", fmt.Errorf("writing model field: %w", err)
	}
	if err := mw.WriteField("language", "en"); err != nil {
		return "", fmt.Errorf("writing language field: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("closing multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, &buf)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+t.apiKey)

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling transcription API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transcription API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var parsed struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}

	return strings.TrimSpace(parsed.Text), nil
}

// Package transcribe wraps the external speech-recognition HTTP API used by
// the caption pipeline.
package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"scenecast/internal/ports"
)

const (
	defaultBaseURL     = "https://api.openai.com/v1"
	defaultModel       = "whisper-1"
	defaultHTTPTimeout = 2 * time.Minute
)

// Client calls the transcription API with word-level timestamp granularity.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// Option customizes the transcription client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default API base (useful for tests/mocks).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithModel overrides the default transcription model.
func WithModel(model string) Option {
	return func(c *Client) {
		model = strings.TrimSpace(model)
		if model != "" {
			c.model = model
		}
	}
}

// NewClient constructs a transcription API client.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    defaultBaseURL,
		model:      defaultModel,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// verboseResponse is the verbose_json payload returned by the API.
type verboseResponse struct {
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
	Words    []struct {
		Word       string  `json:"word"`
		Start      float64 `json:"start"`
		End        float64 `json:"end"`
		Confidence float64 `json:"confidence,omitempty"`
	} `json:"words"`
}

// Transcribe uploads the audio payload and requests a verbose transcription
// with word-level timestamps.
func (c *Client) Transcribe(ctx context.Context, audio []byte, fileName string) (ports.Transcript, error) {
	var empty ports.Transcript
	if len(audio) == 0 {
		return empty, errors.New("transcribe: audio payload required")
	}
	if c.apiKey == "" {
		return empty, errors.New("transcribe: api key required")
	}
	if fileName == "" {
		fileName = "audio.mp3"
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return empty, fmt.Errorf("transcribe: build form: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return empty, fmt.Errorf("transcribe: write audio: %w", err)
	}
	for field, value := range map[string]string{
		"model":                     c.model,
		"response_format":           "verbose_json",
		"timestamp_granularities[]": "word",
	} {
		if err := mw.WriteField(field, value); err != nil {
			return empty, fmt.Errorf("transcribe: write field %s: %w", field, err)
		}
	}
	if err := mw.Close(); err != nil {
		return empty, fmt.Errorf("transcribe: close form: %w", err)
	}

	endpoint := c.baseURL + "/audio/transcriptions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return empty, fmt.Errorf("transcribe: request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return empty, fmt.Errorf("transcribe: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return empty, fmt.Errorf("transcribe: read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return empty, fmt.Errorf("transcribe: http %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var decoded verboseResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return empty, fmt.Errorf("transcribe: decode response: %w", err)
	}

	out := ports.Transcript{
		Language: decoded.Language,
		Text:     decoded.Text,
		Words:    make([]ports.TranscriptWord, 0, len(decoded.Words)),
	}
	for _, w := range decoded.Words {
		out.Words = append(out.Words, ports.TranscriptWord{
			Word:       w.Word,
			Start:      w.Start,
			End:        w.End,
			Confidence: w.Confidence,
		})
	}
	return out, nil
}

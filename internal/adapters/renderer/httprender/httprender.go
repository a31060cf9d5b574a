// Package httprender dispatches render jobs to a self-hosted render farm
// over HTTP. Each backend function is addressed as a path segment under a
// base URL, so the deterministic function name keeps working without Lambda.
package httprender

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"scenecast/internal/ports"
)

const defaultHTTPTimeout = 10 * time.Minute

type Client struct {
	baseURL string
	client  *http.Client
}

// Option customizes the HTTP render client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.client = client
		}
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Backend() string { return "http" }

type startRequest struct {
	RenderID         string                     `json:"renderId"`
	Width            float64                    `json:"width"`
	Height           float64                    `json:"height"`
	Codec            string                     `json:"codec"`
	OutName          string                     `json:"outName"`
	DownloadBehavior ports.DownloadBehavior     `json:"downloadBehavior"`
	Tracks           []json.RawMessage          `json:"tracks"`
	Items            map[string]json.RawMessage `json:"items"`
	Assets           json.RawMessage            `json:"assets,omitempty"`
	FontInfos        []ports.FontRef            `json:"fontInfos"`
}

type startResponse struct {
	BucketName string `json:"bucketName"`
	RenderID   string `json:"renderId"`
}

type progressResponse struct {
	Done              bool                    `json:"done"`
	Fatal             bool                    `json:"fatal"`
	Errors            []ports.BackendError    `json:"errors"`
	OverallProgress   float64                 `json:"overallProgress"`
	OutputFile        string                  `json:"outputFile"`
	OutputSizeInBytes int64                   `json:"outputSizeInBytes"`
	OutKey            string                  `json:"outKey"`
	DownloadBehavior  *ports.DownloadBehavior `json:"downloadBehavior"`
}

func (c *Client) StartRender(ctx context.Context, in ports.StartRenderInput) (ports.StartRenderOutput, error) {
	// Self-hosted farms accept a client-minted render ID; the response may
	// still override it.
	req := startRequest{
		RenderID:         uuid.NewString(),
		Width:            in.Width,
		Height:           in.Height,
		Codec:            in.Codec,
		OutName:          in.OutName,
		DownloadBehavior: in.Download,
		Tracks:           in.Tracks,
		Items:            in.Items,
		Assets:           in.Assets,
		FontInfos:        in.Fonts,
	}

	var decoded startResponse
	if err := c.post(ctx, in.FunctionName+"/renders", req, &decoded); err != nil {
		return ports.StartRenderOutput{}, err
	}
	if decoded.RenderID == "" {
		decoded.RenderID = req.RenderID
	}
	if decoded.BucketName == "" {
		return ports.StartRenderOutput{}, fmt.Errorf("render backend returned no bucket name")
	}
	return ports.StartRenderOutput{BucketName: decoded.BucketName, RenderID: decoded.RenderID}, nil
}

func (c *Client) RenderProgress(ctx context.Context, in ports.ProgressInput) (ports.ProgressReport, error) {
	req := map[string]string{
		"bucketName": in.BucketName,
		"renderId":   in.RenderID,
	}

	var decoded progressResponse
	if err := c.post(ctx, in.FunctionName+"/progress", req, &decoded); err != nil {
		return ports.ProgressReport{}, err
	}

	return ports.ProgressReport{
		Done:              decoded.Done,
		FatalError:        decoded.Fatal,
		Errors:            decoded.Errors,
		OverallProgress:   decoded.OverallProgress,
		OutputFile:        decoded.OutputFile,
		OutputSizeInBytes: decoded.OutputSizeInBytes,
		OutKey:            decoded.OutKey,
		Download:          decoded.DownloadBehavior,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("render backend: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/"+path, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("render backend: request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("render backend: request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("render backend: http %d", res.StatusCode)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("render backend: decode response: %w", err)
	}
	return nil
}

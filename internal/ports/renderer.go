package ports

import (
	"context"
	"encoding/json"
)

// FontRef is a resolved font reference embedded in a render payload.
type FontRef struct {
	FontFamily     string `json:"fontFamily"`
	FontURL        string `json:"fontUrl"`
	PostScriptName string `json:"postScriptName,omitempty"`
}

// DownloadBehavior records the user-facing filename policy the backend should
// attach to the finished output.
type DownloadBehavior struct {
	Type     string `json:"type"`
	FileName string `json:"fileName,omitempty"`
}

// StartRenderInput is the payload dispatched to a render backend function.
// Tracks, Items and Assets are opaque to this service and passed through.
type StartRenderInput struct {
	FunctionName string
	Width        float64
	Height       float64
	Codec        string
	OutName      string
	Download     DownloadBehavior

	Tracks []json.RawMessage
	Items  map[string]json.RawMessage
	Assets json.RawMessage
	Fonts  []FontRef
}

// StartRenderOutput is the backend-issued job handle. It has no backing store
// in this service; callers round-trip it into RenderProgress.
type StartRenderOutput struct {
	BucketName string
	RenderID   string
}

type ProgressInput struct {
	FunctionName string
	BucketName   string
	RenderID     string
}

type BackendError struct {
	Message string `json:"message"`
	Fatal   bool   `json:"fatal,omitempty"`
}

// ProgressReport is the raw job status returned by a render backend, before
// it is collapsed into the tri-state progress contract.
type ProgressReport struct {
	Done              bool
	FatalError        bool
	Errors            []BackendError
	OverallProgress   float64
	OutputFile        string
	OutputSizeInBytes int64
	// OutKey is the backend's raw output object key.
	OutKey string
	// Download is the recorded download-behavior metadata, absent when the
	// backend did not populate it.
	Download *DownloadBehavior
}

// RenderBackend is the external, horizontally scaled rendering function.
// Implementations: lambda, httprender.
type RenderBackend interface {
	Backend() string

	StartRender(ctx context.Context, in StartRenderInput) (StartRenderOutput, error)
	RenderProgress(ctx context.Context, in ProgressInput) (ProgressReport, error)
}

package render

import (
	"context"

	"scenecast/internal/pkg/errors"
	"scenecast/internal/pkg/logger"
	"scenecast/internal/ports"
)

// StateType is the render job lifecycle state observed by one poll.
type StateType string

const (
	StateInProgress StateType = "in-progress"
	StateDone       StateType = "done"
	StateError      StateType = "error"
)

// Progress is the tri-state poll result. Exactly one variant is active;
// which one is indicated by Type.
type Progress struct {
	Type StateType `json:"type"`

	// In-progress. Pass-through from the backend, not clamped.
	OverallProgress float64 `json:"overallProgress,omitempty"`

	// Done.
	OutputFile        string `json:"outputFile,omitempty"`
	OutputSizeInBytes int64  `json:"outputSizeInBytes,omitempty"`
	OutputName        string `json:"outputName,omitempty"`

	// Error.
	Message string `json:"error,omitempty"`
}

// Poller queries the render backend for job progress. It is stateless per
// call: the backend is the single source of truth, so concurrent polls of the
// same handle are independent.
type Poller struct {
	backend ports.RenderBackend
	cache   ProgressCache
	log     *logger.Logger
}

// NewPoller creates a Poller. cache may be nil, which disables caching
// entirely (the default: always query fresh).
func NewPoller(backend ports.RenderBackend, cache ProgressCache, log *logger.Logger) *Poller {
	if log == nil {
		log = logger.NewDefault()
	}
	return &Poller{
		backend: backend,
		cache:   cache,
		log:     log.WithComponent("render.poller"),
	}
}

// Poll resolves the backend from the same fixed sizing constants as
// submission and returns the job's current lifecycle state. It never trusts a
// client-supplied backend identifier.
func (p *Poller) Poll(ctx context.Context, h Handle) (Progress, error) {
	if h.BucketName == "" {
		return Progress{}, errors.ValidationField("bucketName", "bucketName is required")
	}
	if h.RenderID == "" {
		return Progress{}, errors.ValidationField("renderId", "renderId is required")
	}

	if p.cache != nil {
		if st, ok := p.cache.Get(ctx, h); ok {
			return st, nil
		}
	}

	report, err := p.backend.RenderProgress(ctx, ports.ProgressInput{
		FunctionName: FunctionName(),
		BucketName:   h.BucketName,
		RenderID:     h.RenderID,
	})
	if err != nil {
		return Progress{}, errors.WrapWithCode(err, errors.CodeUpstream, "render.poll", "progress query failed")
	}

	st := collapse(report)

	if p.cache != nil {
		if st.Type == StateInProgress {
			p.cache.Set(ctx, h, st)
		} else {
			// Terminal observation invalidates any cached entry.
			p.cache.Drop(ctx, h)
		}
	}

	return st, nil
}

// collapse maps a raw backend report onto exactly one progress variant.
// Precedence: done, then fatal error, then in-progress.
func collapse(report ports.ProgressReport) Progress {
	if report.Done {
		return Progress{
			Type:              StateDone,
			OutputFile:        report.OutputFile,
			OutputSizeInBytes: report.OutputSizeInBytes,
			OutputName:        resolveOutputName(report),
		}
	}

	if report.FatalError {
		// Only the first reported error is surfaced; the contract is a
		// single message.
		msg := "render failed"
		if len(report.Errors) > 0 && report.Errors[0].Message != "" {
			msg = report.Errors[0].Message
		}
		return Progress{Type: StateError, Message: msg}
	}

	return Progress{Type: StateInProgress, OverallProgress: report.OverallProgress}
}

// resolveOutputName prefers the explicit user-facing filename recorded in the
// download-behavior metadata, falling back to the backend's raw output key.
// Not every backend response populates the metadata.
func resolveOutputName(report ports.ProgressReport) string {
	if report.Download != nil && report.Download.Type == "download" && report.Download.FileName != "" {
		return report.Download.FileName
	}
	return report.OutKey
}

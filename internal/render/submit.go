package render

import (
	"context"

	"scenecast/internal/pkg/errors"
	"scenecast/internal/pkg/logger"
	"scenecast/internal/ports"
)

// Handle identifies one render job on the backend. It is a capability token
// round-tripped by the caller; this service keeps no record of it.
type Handle struct {
	BucketName string `json:"bucketName"`
	RenderID   string `json:"renderId"`
}

// Submitter validates compositions and dispatches them to the render backend.
type Submitter struct {
	backend ports.RenderBackend
	log     *logger.Logger
}

func NewSubmitter(backend ports.RenderBackend, log *logger.Logger) *Submitter {
	if log == nil {
		log = logger.NewDefault()
	}
	return &Submitter{
		backend: backend,
		log:     log.WithComponent("render.submitter"),
	}
}

// Submit dispatches a composition and returns the backend-issued job handle.
// Scheduling remote compute has a real cost, so a failed dispatch is never
// retried here; retrying is the caller's decision.
func (s *Submitter) Submit(ctx context.Context, comp Composition) (Handle, error) {
	if err := comp.Validate(); err != nil {
		return Handle{}, err
	}

	log := s.log.FromContext(ctx)

	families := FontFamilies(comp.Items)
	fontRefs := ResolveFonts(families)
	if len(fontRefs) < len(families) {
		log.Debug("unresolved font families omitted",
			"referenced", len(families),
			"resolved", len(fontRefs),
		)
	}

	outName := comp.Codec.OutName()
	out, err := s.backend.StartRender(ctx, ports.StartRenderInput{
		FunctionName: FunctionName(),
		Width:        comp.Width,
		Height:       comp.Height,
		Codec:        string(comp.Codec),
		OutName:      outName,
		Download: ports.DownloadBehavior{
			Type:     "download",
			FileName: outName,
		},
		Tracks: comp.Tracks,
		Items:  comp.Items,
		Assets: comp.Assets,
		Fonts:  fontRefs,
	})
	if err != nil {
		return Handle{}, errors.WrapWithCode(err, errors.CodeUpstream, "render.submit", "render dispatch failed")
	}

	log.Info("render submitted",
		"bucket", out.BucketName,
		"render_id", out.RenderID,
		"codec", string(comp.Codec),
		"fonts", len(fontRefs),
	)

	return Handle{BucketName: out.BucketName, RenderID: out.RenderID}, nil
}

package captions

import (
	"context"
	"io"
	"path"

	"scenecast/internal/pkg/errors"
	"scenecast/internal/pkg/logger"
	"scenecast/internal/ports"
)

// Service runs the caption pipeline: fetch the audio artifact, transcribe it
// with word-level timestamps, convert, and delete the artifact only after the
// conversion succeeded. A failed job leaves the artifact in place so it can be
// retried or inspected; garbage collection of abandoned artifacts is a
// separate sweep, not this service's job.
type Service struct {
	store       ports.StorageProvider
	transcriber ports.Transcriber
	log         *logger.Logger
}

func NewService(store ports.StorageProvider, transcriber ports.Transcriber, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault()
	}
	return &Service{
		store:       store,
		transcriber: transcriber,
		log:         log.WithComponent("captions"),
	}
}

// Generate produces the caption sequence for the audio object at fileKey.
// One storage read, one transcription call, and conditionally one storage
// delete. No internal retries: transient failures surface immediately.
func (s *Service) Generate(ctx context.Context, fileKey string) ([]Caption, error) {
	if fileKey == "" {
		return nil, errors.ValidationField("fileKey", "fileKey is required")
	}

	log := s.log.FromContext(ctx)

	rc, _, _, err := s.store.GetObject(ctx, fileKey)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeArtifactMissing, "captions.fetch", "audio artifact not found")
	}
	audio, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeArtifactMissing, "captions.fetch", "audio artifact unreadable")
	}
	if len(audio) == 0 {
		return nil, errors.ArtifactMissing(fileKey)
	}

	transcript, err := s.transcriber.Transcribe(ctx, audio, path.Base(fileKey))
	if err != nil {
		// The artifact is deliberately left in place on failure.
		return nil, errors.WrapWithCode(err, errors.CodeUpstream, "captions.transcribe", "transcription failed")
	}

	entries := FromTranscript(transcript)

	// Delete only now that transcription and conversion both succeeded.
	if err := s.store.DeleteObject(ctx, fileKey); err != nil {
		// Captions were produced; an orphaned artifact is the lesser failure.
		log.WithError(err).Warn("failed to delete audio artifact", "file_key", fileKey)
	} else {
		log.Debug("audio artifact deleted", "file_key", fileKey)
	}

	log.Info("captions generated",
		"file_key", fileKey,
		"entries", len(entries),
		"language", transcript.Language,
	)
	return entries, nil
}

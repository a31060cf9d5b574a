package captions

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"

	"scenecast/internal/pkg/errors"
	"scenecast/internal/pkg/logger"
	"scenecast/internal/ports"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "text", Output: io.Discard})
}

// fakeStore is an in-memory StorageProvider.
type fakeStore struct {
	objects map[string][]byte
	deletes map[string]int
	getErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		objects: make(map[string][]byte),
		deletes: make(map[string]int),
	}
}

func (f *fakeStore) Provider() string { return "fake" }

func (f *fakeStore) PutObject(ctx context.Context, in ports.PutObjectInput) (ports.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Reader)
	if err != nil {
		return ports.PutObjectOutput{}, err
	}
	f.objects[in.ObjectKey] = data
	return ports.PutObjectOutput{ObjectKey: in.ObjectKey, Size: int64(len(data))}, nil
}

func (f *fakeStore) GetObject(ctx context.Context, objectKey string) (io.ReadCloser, string, int64, error) {
	if f.getErr != nil {
		return nil, "", 0, f.getErr
	}
	data, ok := f.objects[objectKey]
	if !ok {
		return nil, "", 0, fmt.Errorf("no such key: %s", objectKey)
	}
	return io.NopCloser(bytes.NewReader(data)), "audio/mpeg", int64(len(data)), nil
}

func (f *fakeStore) DeleteObject(ctx context.Context, objectKey string) error {
	f.deletes[objectKey]++
	delete(f.objects, objectKey)
	return nil
}

// fakeTranscriber returns a canned transcript or error.
type fakeTranscriber struct {
	transcript ports.Transcript
	err        error
	calls      int
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audio []byte, fileName string) (ports.Transcript, error) {
	f.calls++
	return f.transcript, f.err
}

func sampleTranscript() ports.Transcript {
	return ports.Transcript{
		Language: "en",
		Text:     "never gonna give you up",
		Words: []ports.TranscriptWord{
			{Word: "never", Start: 0.12, End: 0.48},
			{Word: "gonna", Start: 0.48, End: 0.81},
			{Word: "give", Start: 0.81, End: 1.02},
			{Word: "you", Start: 1.02, End: 1.2},
			{Word: "up", Start: 1.2, End: 1.55},
		},
	}
}

func TestGenerateSuccessDeletesArtifactOnce(t *testing.T) {
	store := newFakeStore()
	store.objects["audio/take.mp3"] = []byte("fake-mp3-bytes")
	tsc := &fakeTranscriber{transcript: sampleTranscript()}

	svc := NewService(store, tsc, testLogger())

	caps, err := svc.Generate(context.Background(), "audio/take.mp3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(caps) == 0 {
		t.Fatal("expected a non-empty caption sequence")
	}
	for i := 1; i < len(caps); i++ {
		if caps[i].StartMs < caps[i-1].StartMs {
			t.Errorf("captions out of order at %d: %d < %d", i, caps[i].StartMs, caps[i-1].StartMs)
		}
	}
	if caps[0].Text != "never" || caps[0].StartMs != 120 || caps[0].EndMs != 480 {
		t.Errorf("unexpected first caption: %+v", caps[0])
	}
	if store.deletes["audio/take.mp3"] != 1 {
		t.Errorf("expected exactly one delete, got %d", store.deletes["audio/take.mp3"])
	}
}

func TestGenerateTranscriptionFailureKeepsArtifact(t *testing.T) {
	store := newFakeStore()
	store.objects["audio/take.mp3"] = []byte("fake-mp3-bytes")
	tsc := &fakeTranscriber{err: fmt.Errorf("engine overloaded")}

	svc := NewService(store, tsc, testLogger())

	_, err := svc.Generate(context.Background(), "audio/take.mp3")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.IsCode(err, errors.CodeUpstream) {
		t.Errorf("expected UPSTREAM_ERROR, got %s", errors.GetCode(err))
	}
	if store.deletes["audio/take.mp3"] != 0 {
		t.Error("artifact must never be deleted when transcription fails")
	}
	if _, ok := store.objects["audio/take.mp3"]; !ok {
		t.Error("artifact must still exist after a failed transcription")
	}
}

func TestGenerateMissingArtifact(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*fakeStore)
	}{
		{
			name:  "object absent",
			setup: func(s *fakeStore) {},
		},
		{
			name: "retrieval error",
			setup: func(s *fakeStore) {
				s.getErr = fmt.Errorf("storage unreachable")
			},
		},
		{
			name: "empty body",
			setup: func(s *fakeStore) {
				s.objects["audio/take.mp3"] = []byte{}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			tt.setup(store)
			tsc := &fakeTranscriber{transcript: sampleTranscript()}

			svc := NewService(store, tsc, testLogger())

			_, err := svc.Generate(context.Background(), "audio/take.mp3")
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.IsArtifactMissing(err) {
				t.Errorf("expected ARTIFACT_MISSING, got %s", errors.GetCode(err))
			}
			if tsc.calls != 0 {
				t.Error("transcription must not be attempted without an artifact")
			}
			if len(store.deletes) != 0 {
				t.Error("nothing may be deleted on a failed fetch")
			}
		})
	}
}

func TestGenerateRejectsEmptyFileKey(t *testing.T) {
	svc := NewService(newFakeStore(), &fakeTranscriber{}, testLogger())

	_, err := svc.Generate(context.Background(), "")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.IsValidation(err) {
		t.Errorf("expected VALIDATION_ERROR, got %s", errors.GetCode(err))
	}
}

func TestFromTranscriptSkipsEmptyTokens(t *testing.T) {
	tr := ports.Transcript{
		Words: []ports.TranscriptWord{
			{Word: "  ", Start: 0, End: 0.1},
			{Word: "hello", Start: 0.1, End: 0.4, Confidence: 0.93},
			{Word: "", Start: 0.4, End: 0.5},
		},
	}

	caps := FromTranscript(tr)
	if len(caps) != 1 {
		t.Fatalf("expected 1 caption, got %d", len(caps))
	}
	if caps[0].Text != "hello" || caps[0].Confidence != 0.93 {
		t.Errorf("unexpected caption: %+v", caps[0])
	}
}

func TestFromTranscriptOrdersByStart(t *testing.T) {
	tr := ports.Transcript{
		Words: []ports.TranscriptWord{
			{Word: "world", Start: 0.6, End: 0.9},
			{Word: "hello", Start: 0.1, End: 0.5},
		},
	}

	caps := FromTranscript(tr)
	if caps[0].Text != "hello" || caps[1].Text != "world" {
		t.Errorf("expected time order, got %+v", caps)
	}
}

package localfs

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"

	"scenecast/internal/ports"
)

func TestPutGetDeleteRoundTrip(t *testing.T) {
	ctx := context.Background()
	fs := New(t.TempDir())

	payload := []byte("fake-mp3-bytes")
	put, err := fs.PutObject(ctx, ports.PutObjectInput{
		ObjectKey:   "audio/take.mp3",
		ContentType: "audio/mpeg",
		Reader:      bytes.NewReader(payload),
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if put.Size != int64(len(payload)) {
		t.Errorf("expected size %d, got %d", len(payload), put.Size)
	}

	rc, contentType, size, err := fs.GetObject(ctx, "audio/take.mp3")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(data, payload) {
		t.Error("round-tripped bytes differ")
	}
	if size != int64(len(payload)) {
		t.Errorf("expected size %d, got %d", len(payload), size)
	}
	if contentType == "" {
		t.Error("expected a detected content type")
	}

	if err := fs.DeleteObject(ctx, "audio/take.mp3"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, _, _, err := fs.GetObject(ctx, "audio/take.mp3"); !os.IsNotExist(err) {
		t.Errorf("expected not-exist after delete, got %v", err)
	}
}

func TestPutRequiresObjectKey(t *testing.T) {
	fs := New(t.TempDir())
	_, err := fs.PutObject(context.Background(), ports.PutObjectInput{Reader: bytes.NewReader(nil)})
	if err == nil {
		t.Error("expected an error for empty object key")
	}
}

func TestGetMissingObject(t *testing.T) {
	fs := New(t.TempDir())
	if _, _, _, err := fs.GetObject(context.Background(), "nope/missing.mp3"); err == nil {
		t.Error("expected an error for a missing object")
	}
}

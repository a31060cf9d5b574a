package httprender

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"scenecast/internal/ports"
)

func TestStartRender(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/fn-test/renders") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req startRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.RenderID == "" {
			t.Error("expected a client-minted render ID")
		}
		if req.Codec != "h264" {
			t.Errorf("expected codec passthrough, got %q", req.Codec)
		}

		_ = json.NewEncoder(w).Encode(startResponse{BucketName: "farm-bucket"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	out, err := c.StartRender(context.Background(), ports.StartRenderInput{
		FunctionName: "fn-test",
		Width:        1080,
		Height:       1920,
		Codec:        "h264",
		OutName:      "video.mp4",
		Tracks:       []json.RawMessage{},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.BucketName != "farm-bucket" {
		t.Errorf("expected farm-bucket, got %q", out.BucketName)
	}
	if out.RenderID == "" {
		t.Error("expected the minted render ID to be kept when the backend omits one")
	}
}

func TestRenderProgress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/fn-test/progress") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(progressResponse{
			Done:             true,
			OutKey:           "renders/abc.mp4",
			DownloadBehavior: &ports.DownloadBehavior{Type: "download", FileName: "ad.mp4"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	report, err := c.RenderProgress(context.Background(), ports.ProgressInput{
		FunctionName: "fn-test",
		BucketName:   "farm-bucket",
		RenderID:     "r-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.Done || report.OutKey != "renders/abc.mp4" {
		t.Errorf("unexpected report: %+v", report)
	}
	if report.Download == nil || report.Download.FileName != "ad.mp4" {
		t.Errorf("expected download metadata, got %+v", report.Download)
	}
}

func TestNon2xxIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	_, err := c.RenderProgress(context.Background(), ports.ProgressInput{
		FunctionName: "fn-test", BucketName: "b", RenderID: "r",
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "502") {
		t.Errorf("expected status in error, got %v", err)
	}
}

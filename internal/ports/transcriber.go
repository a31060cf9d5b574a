package ports

import "context"

// TranscriptWord is a single word-level timestamped token. Start/End are in
// seconds, as reported by the speech-recognition service.
type TranscriptWord struct {
	Word       string  `json:"word"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Confidence float64 `json:"confidence,omitempty"`
}

type Transcript struct {
	Language string
	Text     string
	Words    []TranscriptWord
}

// Transcriber produces a word-granularity transcript from raw audio bytes.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, fileName string) (Transcript, error)
}

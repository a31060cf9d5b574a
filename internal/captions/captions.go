// Package captions turns a transient audio artifact into timed caption
// entries via the external speech-recognition service.
package captions

import (
	"math"
	"sort"
	"strings"

	"scenecast/internal/ports"
)

// Caption is one timed caption entry.
type Caption struct {
	Text       string  `json:"text"`
	StartMs    int64   `json:"startMs"`
	EndMs      int64   `json:"endMs"`
	Confidence float64 `json:"confidence,omitempty"`
}

// FromTranscript converts a word-level transcript into the ordered caption
// sequence. Empty tokens are dropped; timestamps are converted from seconds
// to milliseconds.
func FromTranscript(tr ports.Transcript) []Caption {
	out := make([]Caption, 0, len(tr.Words))
	for _, w := range tr.Words {
		text := strings.TrimSpace(w.Word)
		if text == "" {
			continue
		}
		out = append(out, Caption{
			Text:       text,
			StartMs:    toMillis(w.Start),
			EndMs:      toMillis(w.End),
			Confidence: w.Confidence,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartMs < out[j].StartMs
	})
	return out
}

func toMillis(seconds float64) int64 {
	return int64(math.Round(seconds * 1000))
}

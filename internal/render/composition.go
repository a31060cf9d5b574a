// Package render implements the render job pipeline: composition validation,
// submission to the remote render backend, and tri-state progress polling.
package render

import (
	"encoding/json"
	"math"
	"sort"

	"scenecast/internal/fonts"
	"scenecast/internal/pkg/errors"
	"scenecast/internal/ports"
)

// Codec is the output encoding requested for a composition.
type Codec string

const (
	CodecH264 Codec = "h264"
	CodecVP8  Codec = "vp8"
)

// OutName computes the output filename for the codec. It is decided once at
// submission time so completion resolution stays consistent even when the
// backend's own metadata is absent.
func (c Codec) OutName() string {
	if c == CodecVP8 {
		return "video.webm"
	}
	return "video.mp4"
}

// Composition is the declarative description of a video submitted for
// rendering. Tracks, Items and Assets are opaque to this service; Items are
// inspected only to derive the fonts the backend must load.
type Composition struct {
	Width  float64
	Height float64
	Codec  Codec
	Tracks []json.RawMessage
	Items  map[string]json.RawMessage
	Assets json.RawMessage
}

// Validate rejects malformed compositions before any network dispatch.
func (c *Composition) Validate() error {
	if !isFiniteDimension(c.Width) {
		return errors.ValidationField("compositionWidth", "compositionWidth must be a finite positive number")
	}
	if !isFiniteDimension(c.Height) {
		return errors.ValidationField("compositionHeight", "compositionHeight must be a finite positive number")
	}
	if c.Tracks == nil {
		return errors.ValidationField("tracks", "tracks must be an array")
	}
	switch c.Codec {
	case CodecH264, CodecVP8:
	case "":
		return errors.ValidationField("codec", "codec is required")
	default:
		return errors.ValidationField("codec", "codec must be h264 or vp8")
	}
	return nil
}

func isFiniteDimension(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// FontFamilies collects every fontFamily value referenced transitively by the
// item descriptors, deduplicated and sorted for deterministic payloads.
func FontFamilies(items map[string]json.RawMessage) []string {
	seen := make(map[string]bool)
	for _, raw := range items {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			continue
		}
		collectFontFamilies(v, seen)
	}

	out := make([]string, 0, len(seen))
	for fam := range seen {
		out = append(out, fam)
	}
	sort.Strings(out)
	return out
}

func collectFontFamilies(v any, seen map[string]bool) {
	switch val := v.(type) {
	case map[string]any:
		if fam, ok := val["fontFamily"].(string); ok && fam != "" {
			seen[fam] = true
		}
		for _, child := range val {
			collectFontFamilies(child, seen)
		}
	case []any:
		for _, child := range val {
			collectFontFamilies(child, seen)
		}
	}
}

// ResolveFonts maps font families to catalog entries. Families with no
// catalog match are omitted; a miss never aborts the pipeline.
func ResolveFonts(families []string) []ports.FontRef {
	refs := make([]ports.FontRef, 0, len(families))
	for _, fam := range families {
		f, ok := fonts.Find(fam)
		if !ok {
			continue
		}
		refs = append(refs, ports.FontRef{
			FontFamily:     f.Family,
			FontURL:        f.URL,
			PostScriptName: f.PostScriptName,
		})
	}
	return refs
}

package handlers

import (
	"encoding/json"
	"net/http"

	"scenecast/internal/httpkit"
	"scenecast/internal/pkg/errors"
	"scenecast/internal/render"
)

type submitRenderRequest struct {
	CompositionWidth  float64                    `json:"compositionWidth"`
	CompositionHeight float64                    `json:"compositionHeight"`
	Assets            json.RawMessage            `json:"assets"`
	Items             map[string]json.RawMessage `json:"items"`
	Tracks            json.RawMessage            `json:"tracks"`
	Codec             string                     `json:"codec"`
}

// PostRender validates a composition and dispatches it to the render backend.
func (h *Handler) PostRender(w http.ResponseWriter, r *http.Request) {
	if !h.requireConfig(w, r, writeTypedError) {
		return
	}

	var req submitRenderRequest
	if err := httpkit.DecodeJSON(r, &req); err != nil {
		writeTypedError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	comp := render.Composition{
		Width:  req.CompositionWidth,
		Height: req.CompositionHeight,
		Codec:  render.Codec(req.Codec),
		Items:  req.Items,
		Assets: req.Assets,
	}
	// tracks must be a JSON array; anything else is rejected here so the
	// composition never reaches the backend malformed. A literal null
	// unmarshals into a nil slice, so comp.Tracks stays nil and Validate
	// rejects it along with a missing field.
	if len(req.Tracks) > 0 {
		var tracks []json.RawMessage
		if err := json.Unmarshal(req.Tracks, &tracks); err != nil {
			writeTypedError(w, http.StatusBadRequest, "tracks must be an array")
			return
		}
		comp.Tracks = tracks
	}

	handle, err := h.submitter.Submit(r.Context(), comp)
	if err != nil {
		h.logBoundaryError(r, err)
		writeTypedError(w, errors.GetHTTPStatus(err), err.Error())
		return
	}

	httpkit.WriteJSON(w, http.StatusOK, map[string]any{
		"type":       "success",
		"bucketName": handle.BucketName,
		"renderId":   handle.RenderID,
	})
}

type pollProgressRequest struct {
	BucketName string `json:"bucketName"`
	RenderID   string `json:"renderId"`
}

// PostProgress polls the render backend and answers with exactly one of the
// three lifecycle states.
func (h *Handler) PostProgress(w http.ResponseWriter, r *http.Request) {
	if !h.requireConfig(w, r, writeTypedError) {
		return
	}

	var req pollProgressRequest
	if err := httpkit.DecodeJSON(r, &req); err != nil {
		writeTypedError(w, http.StatusBadRequest, "bucketName and renderId must be strings")
		return
	}

	st, err := h.poller.Poll(r.Context(), render.Handle{
		BucketName: req.BucketName,
		RenderID:   req.RenderID,
	})
	if err != nil {
		h.logBoundaryError(r, err)
		writeTypedError(w, errors.GetHTTPStatus(err), err.Error())
		return
	}

	switch st.Type {
	case render.StateDone:
		httpkit.WriteJSON(w, http.StatusOK, map[string]any{
			"type":              "done",
			"outputFile":        st.OutputFile,
			"outputSizeInBytes": st.OutputSizeInBytes,
			"outputName":        st.OutputName,
		})
	case render.StateError:
		httpkit.WriteJSON(w, http.StatusOK, map[string]any{
			"type":  "error",
			"error": st.Message,
		})
	default:
		httpkit.WriteJSON(w, http.StatusOK, map[string]any{
			"type":            "in-progress",
			"overallProgress": st.OverallProgress,
		})
	}
}

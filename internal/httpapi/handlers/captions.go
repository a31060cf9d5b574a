package handlers

import (
	"net/http"

	"scenecast/internal/captions"
	"scenecast/internal/httpkit"
	"scenecast/internal/pkg/errors"
)

type generateCaptionsRequest struct {
	FileKey string `json:"fileKey"`
}

// PostCaptions runs the caption pipeline for the referenced audio artifact.
func (h *Handler) PostCaptions(w http.ResponseWriter, r *http.Request) {
	if !h.requireConfig(w, r, writePlainError) {
		return
	}

	var req generateCaptionsRequest
	if err := httpkit.DecodeJSON(r, &req); err != nil {
		writePlainError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if req.FileKey == "" {
		writePlainError(w, http.StatusBadRequest, "fileKey is required")
		return
	}

	entries, err := h.captions.Generate(r.Context(), req.FileKey)
	if err != nil {
		h.logBoundaryError(r, err)
		writePlainError(w, errors.GetHTTPStatus(err), err.Error())
		return
	}
	if entries == nil {
		entries = []captions.Caption{}
	}

	httpkit.WriteJSON(w, http.StatusOK, map[string]any{"captions": entries})
}

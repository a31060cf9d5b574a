package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"scenecast/internal/fonts"
	"scenecast/internal/httpkit"
)

// GetFont returns the catalog entry for an exact family-name match.
func (h *Handler) GetFont(w http.ResponseWriter, r *http.Request) {
	family := chi.URLParam(r, "family")

	f, ok := fonts.Find(family)
	if !ok {
		writePlainError(w, http.StatusNotFound, "font not found: "+family)
		return
	}

	httpkit.WriteJSON(w, http.StatusOK, f)
}

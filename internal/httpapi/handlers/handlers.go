package handlers

import (
	"net/http"

	"scenecast/internal/captions"
	"scenecast/internal/httpkit"
	"scenecast/internal/pkg/errors"
	"scenecast/internal/pkg/logger"
	"scenecast/internal/render"
)

type Deps struct {
	// CfgErr is the configuration load failure, if any. When set, every
	// dependent endpoint answers with a fixed 500 instead of a silent default.
	CfgErr error

	Submitter *render.Submitter
	Poller    *render.Poller
	Captions  *captions.Service
	Log       *logger.Logger
}

type Handler struct {
	cfgErr    error
	submitter *render.Submitter
	poller    *render.Poller
	captions  *captions.Service
	log       *logger.Logger
}

func New(d Deps) *Handler {
	log := d.Log
	if log == nil {
		log = logger.NewDefault()
	}
	return &Handler{
		cfgErr:    d.CfgErr,
		submitter: d.Submitter,
		poller:    d.Poller,
		captions:  d.Captions,
		log:       log.WithComponent("httpapi"),
	}
}

const configErrorMessage = "service configuration is missing or invalid"

// requireConfig gates an endpoint on valid runtime configuration. The body
// shape is endpoint-specific, so callers pass the writer function.
func (h *Handler) requireConfig(w http.ResponseWriter, r *http.Request, write func(http.ResponseWriter, int, string)) bool {
	if h.cfgErr == nil {
		return true
	}
	h.log.FromContext(r.Context()).WithError(h.cfgErr).Error("request rejected: configuration missing")
	write(w, http.StatusInternalServerError, configErrorMessage)
	return false
}

// logBoundaryError logs a service error at the endpoint boundary. The log is
// not part of the caller contract.
func (h *Handler) logBoundaryError(r *http.Request, err error) {
	log := h.log.FromContext(r.Context())
	fields := []any{
		"code", string(errors.GetCode(err)),
		"path", r.URL.Path,
	}
	if errors.GetHTTPStatus(err) >= 500 {
		log.WithError(err).Error("request failed", fields...)
	} else {
		log.WithError(err).Warn("request error", fields...)
	}
}

func writeTypedError(w http.ResponseWriter, status int, msg string) {
	httpkit.WriteJSON(w, status, map[string]any{"type": "error", "error": msg})
}

func writePlainError(w http.ResponseWriter, status int, msg string) {
	httpkit.WriteJSON(w, status, map[string]any{"error": msg})
}

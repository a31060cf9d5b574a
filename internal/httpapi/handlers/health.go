package handlers

import (
	"net/http"

	"scenecast/internal/httpkit"
)

// Health reports service liveness. With ?deep=true it also reports whether
// the runtime configuration loaded and the core services are wired.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	health := map[string]any{
		"status":  "ok",
		"service": "scenecast-api",
		"version": "0.1.0",
	}

	if r.URL.Query().Get("deep") == "true" {
		configCheck := map[string]any{"status": "ok"}
		if h.cfgErr != nil {
			configCheck["status"] = "error"
			configCheck["error"] = h.cfgErr.Error()
			health["status"] = "degraded"
		}

		checks := map[string]any{
			"config":   configCheck,
			"render":   wiringCheck(h.submitter != nil && h.poller != nil),
			"captions": wiringCheck(h.captions != nil),
		}
		if checks["render"].(map[string]any)["status"] != "ok" ||
			checks["captions"].(map[string]any)["status"] != "ok" {
			health["status"] = "degraded"
		}
		health["checks"] = checks
	}

	httpkit.WriteJSON(w, http.StatusOK, health)
}

func wiringCheck(ok bool) map[string]any {
	if ok {
		return map[string]any{"status": "ok"}
	}
	return map[string]any{"status": "error", "error": "not configured"}
}

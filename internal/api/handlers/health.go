package handlers

import (
	"encoding/json"
	"net/http"
)

// TranscoderChecker reports whether the external transcoding tool can run.
type TranscoderChecker interface {
	Available() bool
}

type HealthHandler struct {
	providerName string
	transcoder   TranscoderChecker
}

func NewHealthHandler(providerName string, transcoder TranscoderChecker) *HealthHandler {
	return &HealthHandler{providerName: providerName, transcoder: transcoder}
}

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{
		"provider": h.providerName,
	}

	status := http.StatusOK
	if h.transcoder != nil {
		if h.transcoder.Available() {
			checks["ffmpeg"] = "ok"
		} else {
			// The converter is a no-op for ogg/opus providers, so a missing
			// ffmpeg degrades rather than fails readiness.
			checks["ffmpeg"] = "unavailable"
		}
	}

	writeJSON(w, status, map[string]interface{}{"status": statusStr(status), "checks": checks})
}

func statusStr(code int) string {
	if code == http.StatusOK {
		return "ok"
	}
	return "unhealthy"
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

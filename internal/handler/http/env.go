package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/world-server/internal/logger"
)

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}

// getEnv returns the public environment as a JSON object.
func (h *Handler) getEnv(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.cfg.Public().Env()); err != nil {
		log.Err(err).Msg("error encoding public env")
	}
}

// getEnvJS serves the public environment as a script that clients load
// before the app bundle.
func (h *Handler) getEnvJS(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	body, err := json.Marshal(h.cfg.Public().Env())
	if err != nil {
		log.Err(err).Msg("error encoding public env")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/javascript")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write([]byte("window.env = "))
	w.Write(body)
	w.Write([]byte(";\n"))
}

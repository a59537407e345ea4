package http

import (
	"net/http"
)

// getVersion writes the deployed commit hash, or an empty body when unset.
func (h *Handler) getVersion(w http.ResponseWriter, r *http.Request) {
	commitHash, _ := h.cfg.CommitHash()

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(commitHash))
}

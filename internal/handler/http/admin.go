package http

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/world-server/internal/auth"
	"github.com/MKhiriev/world-server/internal/logger"
)

type adminTokenRequest struct {
	Code string `json:"code"`
}

type adminTokenResponse struct {
	Token string `json:"token"`
}

// issueAdminToken exchanges the configured admin code for a signed token with
// the admin role.
func (h *Handler) issueAdminToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req adminTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	adminCode, _ := h.cfg.Auth().AdminCode()
	switch {
	case !h.cfg.Auth().HasAdminCode():
		log.Warn().Err(ErrAdminDisabled).Send()
		http.Error(w, ErrAdminDisabled.Error(), http.StatusForbidden)
		return
	case subtle.ConstantTimeCompare([]byte(req.Code), []byte(adminCode)) != 1:
		log.Warn().Err(ErrWrongAdminCode).Send()
		http.Error(w, ErrWrongAdminCode.Error(), http.StatusForbidden)
		return
	}

	token, err := h.tokens.Sign(ctx, auth.Claims{"role": "admin"})
	if err != nil {
		log.Err(err).Msg("error signing admin token")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(adminTokenResponse{Token: token}); err != nil {
		log.Err(err).Msg("error encoding admin token response")
	}
}
